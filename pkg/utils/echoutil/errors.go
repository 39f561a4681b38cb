package echoutil

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	apierr "github.com/opst/paikit/pkg/api/types/errors"
)

// ErrorHandler renders errors as apierr.ErrorMessage.
//
// Errors other than *echo.HTTPError are internal server errors.
func ErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		msg := apierr.ErrorMessage{Code: "InternalError", Message: "internal server error"}

		he := new(echo.HTTPError)
		if errors.As(err, &he) {
			status = he.Code
			switch m := he.Message.(type) {
			case apierr.ErrorMessage:
				msg = m
			case string:
				msg = apierr.ErrorMessage{Code: http.StatusText(status), Message: m}
			default:
				msg = apierr.ErrorMessage{Code: http.StatusText(status), Message: http.StatusText(status)}
			}
		}

		if status >= http.StatusInternalServerError {
			e.Logger.Error(err)
		} else {
			e.Logger.Debug(err)
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, msg)
		}
		if werr != nil {
			e.Logger.Error(werr)
		}
	}
}
