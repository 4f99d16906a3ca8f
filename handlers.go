package lawsite

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func (a *App) handleHome(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	bp, err := a.Service.GetBlogsPaginated(c.Request().Context(), page, a.Config.PageSize)
	if err != nil {
		return err
	}
	return renderOr(c, http.StatusOK, a.Views.home(bp, a.Config), bp)
}

func (a *App) handlePost(c echo.Context) error {
	post, err := a.Service.GetBlog(c.Request().Context(), BlogLookup{Slug: c.Param("slug")})
	if err != nil {
		return err
	}
	return renderOr(c, http.StatusOK, a.Views.post(post, a.Config), post)
}

func (a *App) handleListBlogs(c echo.Context) error {
	posts, err := a.Service.GetAllBlogs(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

func (a *App) handleBlogPage(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	bp, err := a.Service.GetBlogsPaginated(c.Request().Context(), page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bp)
}

func (a *App) handleGetBlog(c echo.Context) error {
	post, err := a.Service.GetBlog(c.Request().Context(), BlogLookup{
		ID:   c.QueryParam("id"),
		Slug: c.QueryParam("slug"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

func (a *App) handleContact(c echo.Context) error {
	if !a.contactLimiter.Allow(c.RealIP()) {
		return c.JSON(http.StatusTooManyRequests, fail(FailureValidation, "Too many messages. Try again later."))
	}
	var in ContactInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, invalid(errors.New("malformed request body")))
	}
	resp := a.Service.CreateContactQuery(c.Request().Context(), in)
	return c.JSON(statusFor(resp), resp)
}

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\nDisallow: /api/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if errors.Is(err, ErrNotFound) {
		err = echo.ErrNotFound
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = renderOr(c, http.StatusNotFound, a.Views.notFound(), fail(FailureNotFound, "Not found."))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("server error")
		_ = renderOr(c, code, a.Views.serverError(), fail(FailurePersistence, "Something went wrong."))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
