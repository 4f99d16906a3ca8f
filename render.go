package lawsite

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// renderOr renders cmp when the view is configured and the client did not ask
// for JSON; otherwise it writes data as JSON with the same status.
func renderOr(c echo.Context, code int, cmp templ.Component, data any) error {
	if cmp != nil && !wantsJSON(c) {
		return RenderStatus(c, code, cmp)
	}
	return c.JSON(code, data)
}

func wantsJSON(c echo.Context) bool {
	return c.Request().Header.Get(echo.HeaderAccept) == echo.MIMEApplicationJSON
}

// statusFor maps an action envelope to the HTTP status it is served with.
func statusFor(r Response) int {
	switch r.Failure {
	case FailureUnauthorized:
		return http.StatusForbidden
	case FailureValidation:
		return http.StatusUnprocessableEntity
	case FailureNotFound:
		return http.StatusNotFound
	case FailurePersistence:
		return http.StatusInternalServerError
	}
	return http.StatusOK
}
