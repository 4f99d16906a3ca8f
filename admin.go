package lawsite

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// loginRequest is the admin sign-in form.
type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// handleAdmin renders the dashboard. Callers without the admin role are sent
// to the public landing page.
func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	ctx := c.Request().Context()
	posts, err := a.Service.GetAllBlogs(ctx)
	if err != nil {
		return err
	}
	queries, err := a.Service.GetAllQueries(ctx)
	if err != nil {
		return err
	}
	return renderOr(c, http.StatusOK, a.Views.adminDashboard(posts, queries, CsrfToken(c)), echo.Map{
		"blogs":   posts,
		"queries": queries,
	})
}

func (a *App) handleAdminLoginPage(c echo.Context) error {
	if IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return renderOr(c, http.StatusOK, a.Views.adminLogin(false, CsrfToken(c)), echo.Map{"csrf": CsrfToken(c)})
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "Malformed login request.")
	}
	u, err := Authenticate(c.Request().Context(), a.Store, req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			return err
		}
		a.loginLimiter.Record(ip)
		a.Log.Warn().Str("ip", ip).Msg("failed admin login")
		return renderOr(c, http.StatusUnauthorized, a.Views.adminLogin(true, CsrfToken(c)), fail(FailureUnauthorized, "Invalid email or password."))
	}
	a.loginLimiter.Reset(ip)
	if err := setUserSession(c, u.ID); err != nil {
		return err
	}
	a.Log.Info().Str("user_id", u.ID).Str("role", string(u.Role)).Msg("signed in")
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminLogout(c echo.Context) error {
	if err := InvalidateSession(c.Request().Context()); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *App) handleCreateBlog(c echo.Context) error {
	var in CreateBlogInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, invalid(errors.New("malformed request body")))
	}
	resp := a.Service.CreateBlog(c.Request().Context(), in)
	return c.JSON(statusFor(resp), resp)
}

func (a *App) handleEditBlog(c echo.Context) error {
	var in EditBlogInput
	if err := (&echo.DefaultBinder{}).BindBody(c, &in); err != nil {
		return c.JSON(http.StatusBadRequest, invalid(errors.New("malformed request body")))
	}
	// The path names the post; an id in the body is ignored.
	in.BlogID = c.Param("id")
	resp := a.Service.EditBlog(c.Request().Context(), in)
	return c.JSON(statusFor(resp), resp)
}

func (a *App) handleDeleteBlog(c echo.Context) error {
	resp := a.Service.DeleteBlog(c.Request().Context(), DeleteBlogInput{BlogID: c.Param("id")})
	return c.JSON(statusFor(resp), resp)
}

func (a *App) handleListQueries(c echo.Context) error {
	queries, err := a.Service.GetAllQueries(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, queries)
}
