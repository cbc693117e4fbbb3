package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kingjj-tech/Trackporter/internal/domain"
)

// HTTPErrorHandler maps the domain error taxonomy onto JSON error
// responses. Request-scoped operations surface errors here once; nothing
// retries.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case domain.IsValidation(err), domain.IsTripNotFound(err):
		code = http.StatusBadRequest
		message = err.Error()
	case domain.IsAuthentication(err):
		code = http.StatusUnauthorized
		message = err.Error()
	case domain.IsForbidden(err):
		code = http.StatusForbidden
		message = err.Error()
	case domain.IsNotFound(err):
		code = http.StatusNotFound
		message = err.Error()
	case domain.IsPersistence(err):
		c.Logger().Error(err)
	default:
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if msg, ok := he.Message.(string); ok && msg != "" {
				message = msg
			}
		} else {
			c.Logger().Error(err)
		}
	}

	if err := c.JSON(code, map[string]string{"error": message}); err != nil {
		c.Logger().Error(err)
	}
}
