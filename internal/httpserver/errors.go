package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reviewmarket/api/internal/logging"
)

// ErrorHandler translates everything that escapes the handlers into the
// legacy error bodies: unknown routes get "Api address not found", anything
// unexpected a detail-free 500.
func ErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := ""
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if s, ok := he.Message.(string); ok {
				message = s
			}
		}

		var body statusBody
		switch {
		case code == http.StatusNotFound:
			body = statusBody{Status: 404, Errors: "Api address not found"}
		case code >= http.StatusInternalServerError:
			logging.FromContext(c.Request().Context()).Error("unhandled_error", "error", err)
			code = http.StatusInternalServerError
			body = statusBody{Status: 500, Errors: "Internal server error"}
		default:
			if message == "" {
				message = http.StatusText(code)
			}
			body = statusBody{Status: code, Errors: message}
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}
