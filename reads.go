package lawsite

import (
	"context"
	"fmt"
	"math"
)

const (
	defaultPageSize = 3
	maxPageSize     = 100
)

// GetAllBlogs returns every post. Callers decide the display order.
func (s *Service) GetAllBlogs(ctx context.Context) ([]BlogPost, error) {
	posts, err := s.repo.ListBlogs(ctx, ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return posts, nil
}

// GetBlog returns the post matching the lookup, or ErrNotFound.
func (s *Service) GetBlog(ctx context.Context, l BlogLookup) (BlogPost, error) {
	if l.ID == "" && l.Slug == "" {
		return BlogPost{}, ErrNotFound
	}
	return s.repo.FindBlog(ctx, l)
}

// GetBlogsPaginated returns the zero-based page of posts, newest first,
// together with the total number of posts. The page and the count are two
// independent reads.
func (s *Service) GetBlogsPaginated(ctx context.Context, page, pageSize int) (BlogPage, error) {
	if page < 0 {
		page = 0
	}
	if pageSize <= 0 {
		pageSize = s.pageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	// A page whose offset does not fit in an int lies past any stored post.
	if page > math.MaxInt/pageSize {
		total, err := s.repo.CountBlogs(ctx)
		if err != nil {
			return BlogPage{}, fmt.Errorf("count blogs: %w", err)
		}
		return BlogPage{Posts: []BlogPost{}, Total: total, Page: page, PageSize: pageSize}, nil
	}
	posts, err := s.repo.ListBlogs(ctx, ListOptions{
		Limit:       pageSize,
		Offset:      page * pageSize,
		NewestFirst: true,
	})
	if err != nil {
		return BlogPage{}, fmt.Errorf("list blog page %d: %w", page, err)
	}
	total, err := s.repo.CountBlogs(ctx)
	if err != nil {
		return BlogPage{}, fmt.Errorf("count blogs: %w", err)
	}
	return BlogPage{Posts: posts, Total: total, Page: page, PageSize: pageSize}, nil
}

// GetAllQueries returns every contact query to an admin. Any other caller
// gets an empty list and is signed out.
func (s *Service) GetAllQueries(ctx context.Context) ([]ContactQuery, error) {
	if _, err := RequireAdmin(ctx); err != nil {
		if err := InvalidateSession(ctx); err != nil {
			s.log.Warn().Err(err).Msg("invalidate session failed")
		}
		return []ContactQuery{}, nil
	}
	queries, err := s.repo.ListContactQueries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contact queries: %w", err)
	}
	return queries, nil
}
