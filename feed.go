package lawsite

import (
	"net/http"
	"time"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"
	"github.com/snabb/sitemap"
)

// maxFeedItems caps the RSS feed to the most recent posts.
const maxFeedItems = 20

func (a *App) handleFeed(c echo.Context) error {
	page, err := a.Service.GetBlogsPaginated(c.Request().Context(), 0, maxFeedItems)
	if err != nil {
		return err
	}
	rss, err := a.buildFeed(page.Posts).ToRss()
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}

func (a *App) buildFeed(posts []BlogPost) *feeds.Feed {
	feed := &feeds.Feed{
		Title:       a.Config.Name,
		Link:        &feeds.Link{Href: a.Config.URL},
		Description: a.Config.Description,
		Created:     a.now(),
	}
	for _, p := range posts {
		postURL := BuildURL(a.Config.URL, "blog", p.Slug)
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          postURL,
			Title:       PlainText(p.Title),
			Link:        &feeds.Link{Href: postURL},
			Description: PlainText(p.Description),
			Created:     p.CreatedAt,
			Updated:     p.UpdatedAt,
		})
	}
	return feed
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Service.GetAllBlogs(c.Request().Context())
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	_, err = a.buildSitemap(posts).WriteTo(c.Response())
	return err
}

func (a *App) buildSitemap(posts []BlogPost) *sitemap.Sitemap {
	sm := sitemap.New()
	sm.Add(&sitemap.URL{Loc: BuildURL(a.Config.URL), ChangeFreq: sitemap.Weekly})
	for _, p := range posts {
		lastMod := p.UpdatedAt.In(time.UTC)
		sm.Add(&sitemap.URL{
			Loc:        BuildURL(a.Config.URL, "blog", p.Slug),
			LastMod:    &lastMod,
			ChangeFreq: sitemap.Monthly,
		})
	}
	return sm
}
