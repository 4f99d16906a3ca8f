package lawsite

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"html"
	"math/big"
	"net/url"
	"path"
	"strings"

	"github.com/gosimple/slug"
	"github.com/microcosm-cc/bluemonday"
)

// plainPolicy is safe for concurrent use once built.
var plainPolicy = bluemonday.StrictPolicy()

const (
	idLength        = 7
	idAlphabet      = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	maxSlugAttempts = 50
)

// GenerateID returns a random 7-character alphanumeric identifier.
// Collisions are not checked.
func GenerateID() (string, error) {
	max := big.NewInt(int64(len(idAlphabet)))
	b := make([]byte, idLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate id: %w", err)
		}
		b[i] = idAlphabet[n.Int64()]
	}
	return string(b), nil
}

// Slugify converts a title to a lowercase, hyphenated, URL-safe slug.
func Slugify(s string) string {
	return slug.Make(strings.TrimSpace(s))
}

// SlugChecker reports whether a slug is already taken.
type SlugChecker interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// GenerateUniqueSlug derives a slug from title. The bare slug is used when
// free; otherwise id is appended, then a counter, until a free one is found.
// Uniqueness only holds at the moment of the check.
func GenerateUniqueSlug(ctx context.Context, sc SlugChecker, title, id string) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = strings.ToLower(id)
	}
	candidate := base
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		switch attempt {
		case 0:
		case 1:
			candidate = base + "-" + strings.ToLower(id)
		default:
			candidate = fmt.Sprintf("%s-%s-%d", base, strings.ToLower(id), attempt)
		}
		taken, err := sc.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrSlugExhausted
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// PlainText drops every tag from v for output that must not carry markup,
// such as meta tags, structured data and feed items. Stored text is never
// rewritten; this runs where it is rendered.
func PlainText(v string) string {
	return html.UnescapeString(plainPolicy.Sanitize(v))
}

// BlogPostingJsonLD returns a JSON-LD string for a BlogPosting published by the firm.
func BlogPostingJsonLD(post BlogPost, cfg SiteConfig) string {
	postURL := BuildURL(cfg.URL, "blog", post.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      PlainText(post.Title),
		"description":   PlainText(post.Description),
		"datePublished": post.CreatedAt.UTC().Format("2006-01-02"),
		"dateModified":  post.UpdatedAt.UTC().Format("2006-01-02"),
		"url":           postURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if cfg.Name != "" {
		data["publisher"] = map[string]string{
			"@type": "LegalService",
			"name":  cfg.Name,
		}
	}
	if len(post.Images) > 0 {
		data["image"] = post.Images
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
