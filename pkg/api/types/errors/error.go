package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ErrorMessage is the body of non-2xx responses of the platform API.
type ErrorMessage struct {
	Code      string `json:"Code"`
	Message   string `json:"Message"`
	RequestId string `json:"RequestId,omitempty"`
	Cause     error  `json:"-"`
}

func (em *ErrorMessage) UnmarshalJSON(bytes []byte) error {
	f := new(struct {
		Code      *string `json:"Code"`
		Message   *string `json:"Message"`
		RequestId *string `json:"RequestId"`
	})
	if err := json.Unmarshal(bytes, f); err != nil {
		return err
	}

	if f.Code == nil {
		return fmt.Errorf(`required field missing: "Code"`)
	}
	em.Code = *f.Code

	if f.Message != nil {
		em.Message = *f.Message
	}
	if f.RequestId != nil {
		em.RequestId = *f.RequestId
	}
	return nil
}

func (e ErrorMessage) String() string {
	lines := []string{e.Code}
	if e.Message != "" {
		lines[0] = e.Code + ": " + e.Message
	}
	if e.RequestId != "" {
		lines = append(lines, "(request id: "+e.RequestId+")")
	}
	if e.Cause != nil {
		lines = append(lines, fmt.Sprint(" caused by:", e.Cause.Error()))
	}
	return strings.Join(lines, "\n")
}

func (e ErrorMessage) Error() string {
	return e.String()
}

func (e ErrorMessage) Unwrap() error {
	return e.Cause
}

type ErrorMessageOption func(in *ErrorMessage) *ErrorMessage

func WithRequestId(requestId string) ErrorMessageOption {
	return func(in *ErrorMessage) *ErrorMessage {
		in.RequestId = requestId
		return in
	}
}

func WithError(err error) ErrorMessageOption {
	return func(in *ErrorMessage) *ErrorMessage {
		if err != nil {
			in.Cause = err
		}
		return in
	}
}

// NewErrorMessage builds an error for echo's HTTPErrorHandler.
func NewErrorMessage(status int, code string, message string, opts ...ErrorMessageOption) *echo.HTTPError {
	msg := ErrorMessage{Code: code, Message: message}
	for _, opt := range opts {
		msg = *opt(&msg)
	}
	return echo.NewHTTPError(status, msg).SetInternal(msg)
}

func NotFound(message string, opts ...ErrorMessageOption) *echo.HTTPError {
	return NewErrorMessage(http.StatusNotFound, "EntityNotFound", message, opts...)
}

func BadRequest(message string, opts ...ErrorMessageOption) *echo.HTTPError {
	return NewErrorMessage(http.StatusBadRequest, "InvalidParameter", message, opts...)
}

func Conflict(message string, opts ...ErrorMessageOption) *echo.HTTPError {
	return NewErrorMessage(http.StatusConflict, "InvalidStatus", message, opts...)
}
