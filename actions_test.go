package lawsite

import (
	"context"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock returns a time that advances one second per call.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func newStepClock() *stepClock {
	return &stepClock{t: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func adminCtx() context.Context {
	return WithSession(context.Background(), &Session{User: SessionUser{ID: "admin-1", Role: RoleAdmin}}, nil)
}

func userCtx() context.Context {
	return WithSession(context.Background(), &Session{User: SessionUser{ID: "user-1", Role: RoleUser}}, nil)
}

func setupTestService(t *testing.T) (*Service, *Store) {
	t.Helper()
	s := setupTestStore(t)
	return NewService(s, zerolog.Nop(), newStepClock().Now, 3), s
}

func mustCreate(t *testing.T, svc *Service, title string) {
	t.Helper()
	resp := svc.CreateBlog(adminCtx(), CreateBlogInput{Title: title, Description: "Body of " + title})
	require.True(t, resp.Success, resp.Message)
}

func TestCreateBlog(t *testing.T) {
	svc, store := setupTestService(t)

	resp := svc.CreateBlog(adminCtx(), CreateBlogInput{
		Title:       "  Hello World ",
		Description: "A first post",
		Images:      []string{"https://cdn.example.com/a.jpg"},
	})
	assert.Equal(t, Response{Success: true, Message: "Blog created successfully."}, resp)

	posts, err := svc.GetAllBlogs(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	p := posts[0]
	assert.True(t, ValidID(p.ID))
	assert.Equal(t, "Hello World", p.Title)
	assert.Equal(t, "hello-world", p.Slug)
	assert.Equal(t, "admin-1", p.AuthorID)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, p.Images)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)

	n, err := store.CountBlogs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCreateBlogSameTitleGetsDistinctSlug(t *testing.T) {
	svc, _ := setupTestService(t)
	mustCreate(t, svc, "Hello World")
	mustCreate(t, svc, "Hello World")

	posts, err := svc.GetAllBlogs(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)

	slugs := map[string]bool{posts[0].Slug: true, posts[1].Slug: true}
	assert.Len(t, slugs, 2)
	assert.True(t, slugs["hello-world"])
	for _, p := range posts {
		if p.Slug != "hello-world" {
			assert.Equal(t, "hello-world-"+strings.ToLower(p.ID), p.Slug)
		}
	}
}

func TestCreateBlogRejectsNonAdmin(t *testing.T) {
	svc, store := setupTestService(t)
	in := CreateBlogInput{Title: "Hello", Description: "A first post"}

	for name, ctx := range map[string]context.Context{
		"anonymous":   context.Background(),
		"nil session": WithSession(context.Background(), nil, nil),
		"user role":   userCtx(),
	} {
		t.Run(name, func(t *testing.T) {
			resp := svc.CreateBlog(ctx, in)
			assert.False(t, resp.Success)
			assert.Equal(t, MsgNotAuthorized, resp.Message)
			assert.Equal(t, FailureUnauthorized, resp.Failure)
		})
	}

	n, err := store.CountBlogs(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n, "nothing persisted")
}

func TestCreateBlogGateBeforeValidation(t *testing.T) {
	svc, _ := setupTestService(t)
	resp := svc.CreateBlog(context.Background(), CreateBlogInput{})
	assert.Equal(t, MsgNotAuthorized, resp.Message)
	assert.Nil(t, resp.Errors)
}

func TestCreateBlogValidationFailure(t *testing.T) {
	svc, store := setupTestService(t)

	resp := svc.CreateBlog(adminCtx(), CreateBlogInput{Title: "", Description: "A first post"})
	assert.False(t, resp.Success)
	assert.Equal(t, MsgValidationFailed, resp.Message)
	assert.Equal(t, FailureValidation, resp.Failure)
	require.Contains(t, resp.Errors, "fieldErrors")
	assert.Equal(t, []string{"Title is required."}, resp.Errors["fieldErrors"]["title"])

	n, err := store.CountBlogs(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateBlogPersistenceFailure(t *testing.T) {
	svc, store := setupTestService(t)
	require.NoError(t, store.Close())

	resp := svc.CreateBlog(adminCtx(), CreateBlogInput{Title: "Hello", Description: "A first post"})
	assert.False(t, resp.Success)
	assert.Equal(t, "Failed to create blog.", resp.Message)
	assert.Equal(t, FailurePersistence, resp.Failure)
}

func TestEditBlogKeepsSlug(t *testing.T) {
	svc, _ := setupTestService(t)
	mustCreate(t, svc, "Old Title")
	posts, err := svc.GetAllBlogs(context.Background())
	require.NoError(t, err)
	before := posts[0]

	title := "New Title"
	resp := svc.EditBlog(adminCtx(), EditBlogInput{BlogID: before.ID, Title: &title})
	assert.Equal(t, Response{Success: true, Message: "Blog updated successfully."}, resp)

	after, err := svc.GetBlog(context.Background(), BlogLookup{ID: before.ID})
	require.NoError(t, err)
	assert.Equal(t, "New Title", after.Title)
	assert.Equal(t, before.Slug, after.Slug)
	assert.Equal(t, before.Description, after.Description)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
}

func TestEditBlogFailures(t *testing.T) {
	svc, _ := setupTestService(t)
	title := "New Title"

	resp := svc.EditBlog(userCtx(), EditBlogInput{BlogID: "abc1234", Title: &title})
	assert.Equal(t, MsgNotAuthorized, resp.Message)

	resp = svc.EditBlog(adminCtx(), EditBlogInput{BlogID: "short", Title: &title})
	assert.Equal(t, MsgValidationFailed, resp.Message)
	assert.Equal(t, []string{"Invalid blog ID."}, resp.Errors["fieldErrors"]["blogId"])

	resp = svc.EditBlog(adminCtx(), EditBlogInput{BlogID: "abc1234", Title: &title})
	assert.Equal(t, MsgBlogNotFound, resp.Message)
	assert.Equal(t, FailureNotFound, resp.Failure)
}

func TestDeleteBlogTwiceReportsNotFound(t *testing.T) {
	svc, _ := setupTestService(t)
	mustCreate(t, svc, "Doomed")
	posts, err := svc.GetAllBlogs(context.Background())
	require.NoError(t, err)
	id := posts[0].ID

	resp := svc.DeleteBlog(adminCtx(), DeleteBlogInput{BlogID: id})
	assert.Equal(t, Response{Success: true, Message: "Blog deleted successfully."}, resp)

	resp = svc.DeleteBlog(adminCtx(), DeleteBlogInput{BlogID: id})
	assert.False(t, resp.Success)
	assert.Equal(t, MsgBlogNotFound, resp.Message)

	_, err = svc.GetBlog(context.Background(), BlogLookup{ID: id})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteBlogRejectsNonAdmin(t *testing.T) {
	svc, _ := setupTestService(t)
	mustCreate(t, svc, "Survivor")
	posts, err := svc.GetAllBlogs(context.Background())
	require.NoError(t, err)

	resp := svc.DeleteBlog(context.Background(), DeleteBlogInput{BlogID: posts[0].ID})
	assert.Equal(t, MsgNotAuthorized, resp.Message)

	_, err = svc.GetBlog(context.Background(), BlogLookup{ID: posts[0].ID})
	assert.NoError(t, err)
}

func TestCreateContactQuery(t *testing.T) {
	svc, store := setupTestService(t)

	resp := svc.CreateContactQuery(context.Background(), ContactInput{Name: "Jo", Subject: "Hi", Message: "Test message"})
	assert.Equal(t, Response{Success: true, Message: "Message sent successfully."}, resp)

	queries, err := store.ListContactQueries(context.Background())
	require.NoError(t, err)
	require.Len(t, queries, 1)
	assert.Equal(t, "Jo", queries[0].Name)
	assert.Equal(t, "Hi", queries[0].Subject)
	assert.Equal(t, "Test message", queries[0].Message)
	assert.True(t, ValidID(queries[0].ID))
}

func TestCreateContactQueryStoresTextAsWritten(t *testing.T) {
	svc, store := setupTestService(t)

	resp := svc.CreateContactQuery(context.Background(), ContactInput{
		Name:    "<Jo>",
		Subject: "Q & A",
		Message: "Please reply to <jo@example.com>",
	})
	require.True(t, resp.Success, resp.Message)

	queries, err := store.ListContactQueries(context.Background())
	require.NoError(t, err)
	require.Len(t, queries, 1)
	assert.Equal(t, "<Jo>", queries[0].Name)
	assert.Equal(t, "Q & A", queries[0].Subject)
	assert.Equal(t, "Please reply to <jo@example.com>", queries[0].Message)
}

func TestCreateContactQueryFailures(t *testing.T) {
	svc, store := setupTestService(t)

	resp := svc.CreateContactQuery(context.Background(), ContactInput{Name: "Jo", Subject: "", Message: "x"})
	assert.Equal(t, MsgValidationFailed, resp.Message)
	assert.Equal(t, []string{"Subject is required."}, resp.Errors["fieldErrors"]["subject"])

	require.NoError(t, store.Close())
	resp = svc.CreateContactQuery(context.Background(), ContactInput{Name: "Jo", Subject: "Hi", Message: "x"})
	assert.Equal(t, "Failed to send message.", resp.Message)
	assert.Equal(t, FailurePersistence, resp.Failure)
}

func TestGetBlog(t *testing.T) {
	svc, _ := setupTestService(t)
	mustCreate(t, svc, "Findable")

	p, err := svc.GetBlog(context.Background(), BlogLookup{Slug: "findable"})
	require.NoError(t, err)
	assert.Equal(t, "Findable", p.Title)

	_, err = svc.GetBlog(context.Background(), BlogLookup{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetBlog(context.Background(), BlogLookup{Slug: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetBlogsPaginated(t *testing.T) {
	svc, _ := setupTestService(t)
	for _, title := range []string{"One", "Two", "Three", "Four", "Five"} {
		mustCreate(t, svc, title)
	}
	ctx := context.Background()

	first, err := svc.GetBlogsPaginated(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, first.Total)
	assert.Equal(t, 3, first.PageSize)
	require.Len(t, first.Posts, 3)
	assert.Equal(t, "Five", first.Posts[0].Title)
	assert.Equal(t, "Three", first.Posts[2].Title)

	second, err := svc.GetBlogsPaginated(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, second.Total)
	require.Len(t, second.Posts, 2)
	assert.Equal(t, "Two", second.Posts[0].Title)
	assert.Equal(t, "One", second.Posts[1].Title)

	ids := map[string]bool{}
	for _, p := range append(first.Posts, second.Posts...) {
		assert.False(t, ids[p.ID], "post %s on both pages", p.ID)
		ids[p.ID] = true
	}

	beyond, err := svc.GetBlogsPaginated(ctx, 9, 0)
	require.NoError(t, err)
	assert.Empty(t, beyond.Posts)
	assert.Equal(t, 5, beyond.Total)

	for _, page := range []int{math.MaxInt/3 + 1, 6148914691236517206, math.MaxInt} {
		huge, err := svc.GetBlogsPaginated(ctx, page, 3)
		require.NoError(t, err)
		assert.Empty(t, huge.Posts, "page %d", page)
		assert.Equal(t, 5, huge.Total)
		assert.Equal(t, page, huge.Page)
	}

	negative, err := svc.GetBlogsPaginated(ctx, -1, 1000)
	require.NoError(t, err)
	assert.Equal(t, 0, negative.Page)
	assert.Equal(t, maxPageSize, negative.PageSize)
	assert.Len(t, negative.Posts, 5)
}

func TestGetAllQueries(t *testing.T) {
	svc, _ := setupTestService(t)
	resp := svc.CreateContactQuery(context.Background(), ContactInput{Name: "Jo", Subject: "Hi", Message: "Test message"})
	require.True(t, resp.Success)

	queries, err := svc.GetAllQueries(adminCtx())
	require.NoError(t, err)
	assert.Len(t, queries, 1)
}

func TestGetAllQueriesUnauthorizedSignsOut(t *testing.T) {
	svc, _ := setupTestService(t)
	resp := svc.CreateContactQuery(context.Background(), ContactInput{Name: "Jo", Subject: "Hi", Message: "Test message"})
	require.True(t, resp.Success)

	invalidated := 0
	ctx := WithSession(context.Background(), &Session{User: SessionUser{ID: "user-1", Role: RoleUser}}, func() error {
		invalidated++
		return nil
	})

	queries, err := svc.GetAllQueries(ctx)
	require.NoError(t, err)
	assert.NotNil(t, queries)
	assert.Empty(t, queries)
	assert.Equal(t, 1, invalidated)

	queries, err = svc.GetAllQueries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, queries, "anonymous callers without a hook get an empty list")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, 200, statusFor(ok("done")))
	assert.Equal(t, 403, statusFor(fail(FailureUnauthorized, MsgNotAuthorized)))
	assert.Equal(t, 422, statusFor(invalid(FieldErrors{"title": {"Title is required."}})))
	assert.Equal(t, 404, statusFor(fail(FailureNotFound, MsgBlogNotFound)))
	assert.Equal(t, 500, statusFor(fail(FailurePersistence, "Failed to create blog.")))
}
