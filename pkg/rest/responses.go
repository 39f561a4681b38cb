package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	apierr "github.com/opst/paikit/pkg/api/types/errors"
)

// APIError is a non-2xx response of the API.
type APIError struct {
	StatusCode int

	// summary of the error, for the operation.
	Title string

	// error message from the server. nil if the response was not an ErrorMessage.
	Detail *apierr.ErrorMessage

	// raw response body when Detail is nil.
	Body string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s (status code = %d)", e.Title, e.StatusCode)
	switch {
	case e.Detail != nil:
		return msg + "\n" + e.Detail.String()
	case e.Body != "":
		return msg + "\n" + e.Body
	default:
		return msg
	}
}

func (e *APIError) Unwrap() error {
	if e.Detail == nil {
		return nil
	}
	return e.Detail
}

// IsNotFound tells err is caused by 404 response.
func IsNotFound(err error) bool {
	aerr := new(APIError)
	return errors.As(err, &aerr) && aerr.StatusCode == http.StatusNotFound
}

type MessageFor map[StatusCodeRange]string

// unmarshal http response which has json content.
//
// args:
//   - resp: http response to be processed.
//   - v: value which response should be. If nil, the body is discarded.
//   - messageFor: title of error message for HTTP status code range.
//
// return:
//
//	error if...
//	- can not read response body
//	- response body is not shaped of v
//	- status code is in 4xx or 5xx (*APIError)
func unmarshalJsonResponse[T any](resp *http.Response, v *T, messageFor MessageFor) error {
	scr := statusOf(resp)
	if scr == Status2xx {
		if v == nil {
			_, err := io.Copy(io.Discard, resp.Body)
			return err
		}
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return fmt.Errorf("unexpected response: %w (status code = %d)", err, resp.StatusCode)
		}
		return nil
	}

	title, ok := messageFor[scr]
	if !ok {
		title = scr.String()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf(
			"%s (status code = %d)\ncannot read server message: %w",
			title, resp.StatusCode, err,
		)
	}

	apierror := &APIError{StatusCode: resp.StatusCode, Title: title}
	detail := new(apierr.ErrorMessage)
	if err := json.Unmarshal(body, detail); err == nil {
		apierror.Detail = detail
	} else {
		apierror.Body = string(body)
	}
	return apierror
}
