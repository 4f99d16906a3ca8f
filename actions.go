package lawsite

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// Envelope messages returned to the presentation layer.
const (
	MsgNotAuthorized    = "Not authorized to perform this action."
	MsgValidationFailed = "Validation failed."
	MsgBlogNotFound     = "Blog not found."
)

// Failure classifies a failed Response so transports can pick a status code.
type Failure int

const (
	FailureNone Failure = iota
	FailureUnauthorized
	FailureValidation
	FailureNotFound
	FailurePersistence
)

// Response is the uniform envelope returned by every mutation action.
type Response struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Errors  map[string]FieldErrors `json:"errors,omitempty"`

	Failure Failure `json:"-"`
}

func ok(msg string) Response {
	return Response{Success: true, Message: msg}
}

func fail(kind Failure, msg string) Response {
	return Response{Success: false, Message: msg, Failure: kind}
}

func invalid(err error) Response {
	var fe FieldErrors
	if !errors.As(err, &fe) {
		fe = FieldErrors{"form": {err.Error()}}
	}
	return Response{
		Success: false,
		Message: MsgValidationFailed,
		Errors:  map[string]FieldErrors{"fieldErrors": fe},
		Failure: FailureValidation,
	}
}

// Repository is the persistence surface the actions and readers depend on.
type Repository interface {
	SlugChecker
	InsertBlog(ctx context.Context, p BlogPost) error
	UpdateBlog(ctx context.Context, id string, patch BlogPatch) error
	DeleteBlog(ctx context.Context, id string) error
	FindBlog(ctx context.Context, l BlogLookup) (BlogPost, error)
	ListBlogs(ctx context.Context, opts ListOptions) ([]BlogPost, error)
	CountBlogs(ctx context.Context) (int, error)
	InsertContactQuery(ctx context.Context, q ContactQuery) error
	ListContactQueries(ctx context.Context) ([]ContactQuery, error)
}

// Service runs the blog and contact actions: authorize, validate, derive
// identifiers, persist, respond.
type Service struct {
	repo     Repository
	log      zerolog.Logger
	now      func() time.Time
	pageSize int
}

// NewService creates a Service over repo.
func NewService(repo Repository, log zerolog.Logger, now func() time.Time, pageSize int) *Service {
	if now == nil {
		now = time.Now
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Service{
		repo:     repo,
		log:      log,
		now:      now,
		pageSize: pageSize,
	}
}

// CreateBlog stores a new post authored by the calling admin.
func (s *Service) CreateBlog(ctx context.Context, in CreateBlogInput) Response {
	sess, err := RequireAdmin(ctx)
	if err != nil {
		return fail(FailureUnauthorized, MsgNotAuthorized)
	}
	if err := in.Validate(); err != nil {
		return invalid(err)
	}

	id, err := GenerateID()
	if err != nil {
		s.log.Error().Err(err).Str("entity", "blog").Msg("generate id failed")
		return fail(FailurePersistence, "Failed to create blog.")
	}
	slug, err := GenerateUniqueSlug(ctx, s.repo, in.Title, id)
	if err != nil {
		s.log.Error().Err(err).Str("entity", "blog").Str("title", in.Title).Msg("generate slug failed")
		return fail(FailurePersistence, "Failed to create blog.")
	}

	now := s.now().UTC()
	post := BlogPost{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Images:      in.Images,
		AuthorID:    sess.User.ID,
		Slug:        slug,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.InsertBlog(ctx, post); err != nil {
		s.log.Error().Err(err).Str("entity", "blog").Str("blog_id", id).Msg("insert failed")
		return fail(FailurePersistence, "Failed to create blog.")
	}

	s.log.Info().Str("blog_id", id).Str("slug", slug).Str("author_id", sess.User.ID).Msg("blog created")
	return ok("Blog created successfully.")
}

// EditBlog applies a partial patch to an existing post. The slug is kept.
func (s *Service) EditBlog(ctx context.Context, in EditBlogInput) Response {
	if _, err := RequireAdmin(ctx); err != nil {
		return fail(FailureUnauthorized, MsgNotAuthorized)
	}
	if err := in.Validate(); err != nil {
		return invalid(err)
	}

	patch := BlogPatch{
		Title:       in.Title,
		Description: in.Description,
		Images:      in.Images,
		UpdatedAt:   s.now().UTC(),
	}
	if err := s.repo.UpdateBlog(ctx, in.BlogID, patch); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(FailureNotFound, MsgBlogNotFound)
		}
		s.log.Error().Err(err).Str("entity", "blog").Str("blog_id", in.BlogID).Msg("update failed")
		return fail(FailurePersistence, "Failed to update blog.")
	}

	s.log.Info().Str("blog_id", in.BlogID).Msg("blog updated")
	return ok("Blog updated successfully.")
}

// DeleteBlog physically removes a post.
func (s *Service) DeleteBlog(ctx context.Context, in DeleteBlogInput) Response {
	if _, err := RequireAdmin(ctx); err != nil {
		return fail(FailureUnauthorized, MsgNotAuthorized)
	}
	if err := in.Validate(); err != nil {
		return invalid(err)
	}

	if err := s.repo.DeleteBlog(ctx, in.BlogID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(FailureNotFound, MsgBlogNotFound)
		}
		s.log.Error().Err(err).Str("entity", "blog").Str("blog_id", in.BlogID).Msg("delete failed")
		return fail(FailurePersistence, "Failed to delete blog.")
	}

	s.log.Info().Str("blog_id", in.BlogID).Msg("blog deleted")
	return ok("Blog deleted successfully.")
}

// CreateContactQuery stores a visitor message as written. No session is required.
func (s *Service) CreateContactQuery(ctx context.Context, in ContactInput) Response {
	if err := in.Validate(); err != nil {
		return invalid(err)
	}

	id, err := GenerateID()
	if err != nil {
		s.log.Error().Err(err).Str("entity", "contact_query").Msg("generate id failed")
		return fail(FailurePersistence, "Failed to send message.")
	}
	q := ContactQuery{
		ID:        id,
		Name:      in.Name,
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.InsertContactQuery(ctx, q); err != nil {
		s.log.Error().Err(err).Str("entity", "contact_query").Str("query_id", id).Msg("insert failed")
		return fail(FailurePersistence, "Failed to send message.")
	}

	s.log.Info().Str("query_id", id).Msg("contact query received")
	return ok("Message sent successfully.")
}
