package lawsite

import "time"

// Role is the closed set of actor roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// BlogPost is a published article on the firm's blog.
type BlogPost struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	AuthorID    string    `json:"authorId"`
	Slug        string    `json:"slug"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Link is the public path of the post.
func (p BlogPost) Link() string {
	return "/blog/" + p.Slug
}

// ContactQuery is a message left by a visitor through the contact form.
type ContactQuery struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// User is an account that can sign in to the admin panel.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Image is an uploaded picture that blog posts can reference by URL.
type Image struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Size         int    `json:"size"`
	UploadedAt   string `json:"uploadedAt"`
}

// URL is the public path of the uploaded image.
func (i Image) URL() string {
	return "/public/" + uploadsSubdir + "/" + i.Filename
}

// BlogPage is one page of posts plus the total number of posts.
type BlogPage struct {
	Posts    []BlogPost `json:"posts"`
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// Meta returns the page metadata of the post page.
func (p BlogPost) Meta(cfg SiteConfig) PageMeta {
	return PageMeta{
		Title:       PlainText(p.Title) + " | " + cfg.Name,
		Description: PlainText(p.Description),
		URL:         BuildURL(cfg.URL, "blog", p.Slug),
		OGType:      "article",
	}
}

// HomeMeta returns the page metadata of the landing page.
func HomeMeta(cfg SiteConfig) PageMeta {
	return PageMeta{
		Title:       cfg.Name,
		Description: cfg.Description,
		URL:         BuildURL(cfg.URL),
		OGType:      "website",
	}
}
