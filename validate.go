package lawsite

import (
	"net/url"
	"regexp"
	"strings"
)

const minDescriptionLen = 5

var reBlogID = regexp.MustCompile(`^[A-Za-z0-9]{7}$`)

// CreateBlogInput is the admin form for a new post.
type CreateBlogInput struct {
	Title       string   `json:"title" form:"title"`
	Description string   `json:"description" form:"description"`
	Images      []string `json:"images" form:"images"`
}

// Validate trims the fields in place and collects every failing rule.
func (in *CreateBlogInput) Validate() error {
	errs := FieldErrors{}
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" {
		errs.Add("title", "Title is required.")
	}
	if len([]rune(in.Description)) < minDescriptionLen {
		errs.Add("description", "Description must be at least 5 characters.")
	}
	in.Images = validateImages(in.Images, errs)
	return errs.Err()
}

// EditBlogInput is a partial patch. Nil fields are left untouched.
type EditBlogInput struct {
	BlogID      string    `json:"blogId"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Images      *[]string `json:"images,omitempty"`
}

// Validate trims the present fields in place and collects every failing rule.
func (in *EditBlogInput) Validate() error {
	errs := FieldErrors{}
	in.BlogID = strings.TrimSpace(in.BlogID)
	if !ValidID(in.BlogID) {
		errs.Add("blogId", "Invalid blog ID.")
	}
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		in.Title = &t
		if t == "" {
			errs.Add("title", "Title is required.")
		}
	}
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		in.Description = &d
		if len([]rune(d)) < minDescriptionLen {
			errs.Add("description", "Description must be at least 5 characters.")
		}
	}
	if in.Images != nil {
		imgs := validateImages(*in.Images, errs)
		in.Images = &imgs
	}
	return errs.Err()
}

// DeleteBlogInput identifies the post to remove.
type DeleteBlogInput struct {
	BlogID string `json:"blogId"`
}

// Validate checks the identifier format.
func (in *DeleteBlogInput) Validate() error {
	in.BlogID = strings.TrimSpace(in.BlogID)
	if !ValidID(in.BlogID) {
		return FieldErrors{"blogId": {"Invalid blog ID."}}
	}
	return nil
}

// ContactInput is the public contact form.
type ContactInput struct {
	Name    string `json:"name" form:"name"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

// Validate trims the fields in place and requires all three.
func (in *ContactInput) Validate() error {
	errs := FieldErrors{}
	in.Name = strings.TrimSpace(in.Name)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	if in.Name == "" {
		errs.Add("name", "Name is required.")
	}
	if in.Subject == "" {
		errs.Add("subject", "Subject is required.")
	}
	if in.Message == "" {
		errs.Add("message", "Message is required.")
	}
	return errs.Err()
}

// ValidID reports whether id has the shape produced by GenerateID.
func ValidID(id string) bool {
	return reBlogID.MatchString(id)
}

// validateImages trims each entry, drops blanks and records one error per bad URL.
func validateImages(images []string, errs FieldErrors) []string {
	out := make([]string, 0, len(images))
	for _, raw := range images {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		if !validImageURL(s) {
			errs.Add("images", "Invalid image URL: "+s)
			continue
		}
		out = append(out, s)
	}
	return out
}

// validImageURL accepts absolute http(s) URLs and site-relative upload paths.
func validImageURL(s string) bool {
	if strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//") {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
