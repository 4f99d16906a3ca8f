package lawsite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const blogColumns = "id, title, description, images, author_id, slug, created_at, updated_at"

// Store wraps a SQLite database and provides the persistence operations for
// blog posts, contact queries, users and uploaded images.
type Store struct {
	db *sql.DB
}

// BlogLookup selects a single post by exactly one of ID or Slug.
type BlogLookup struct {
	ID   string
	Slug string
}

// BlogPatch lists the writable fields of a post. Nil fields are not written.
type BlogPatch struct {
	Title       *string
	Description *string
	Images      *[]string
	UpdatedAt   time.Time
}

// ListOptions bounds a listing. Zero Limit means no limit.
type ListOptions struct {
	Limit       int
	Offset      int
	NewestFirst bool
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and applies the embedded migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	// Pragmas go in the DSN so every pooled connection gets them. WAL lets
	// readers proceed while a writer holds the lock; busy_timeout makes
	// writers wait instead of failing with SQLITE_BUSY.
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)" +
		"&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	fsys, err := fs.Sub(Migrations, "migrations")
	if err != nil {
		return fmt.Errorf("migrations fs: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, s.db, fsys)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertBlog stores a new post.
func (s *Store) InsertBlog(ctx context.Context, p BlogPost) error {
	images, err := encodeImages(p.Images)
	if err != nil {
		return err
	}
	query, args, err := sq.Insert("blogs").
		Columns("id", "title", "description", "images", "author_id", "slug", "created_at", "updated_at").
		Values(p.ID, p.Title, p.Description, images, p.AuthorID, p.Slug, p.CreatedAt.UnixNano(), p.UpdatedAt.UnixNano()).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// UpdateBlog writes the non-nil fields of patch plus updated_at to the post
// with the given id. The id and slug are never written.
func (s *Store) UpdateBlog(ctx context.Context, id string, patch BlogPatch) error {
	b := sq.Update("blogs").
		Set("updated_at", patch.UpdatedAt.UnixNano()).
		Where(sq.Eq{"id": id})
	if patch.Title != nil {
		b = b.Set("title", *patch.Title)
	}
	if patch.Description != nil {
		b = b.Set("description", *patch.Description)
	}
	if patch.Images != nil {
		images, err := encodeImages(*patch.Images)
		if err != nil {
			return err
		}
		b = b.Set("images", images)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteBlog removes a post by id. Deleting a missing post returns ErrNotFound.
func (s *Store) DeleteBlog(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// FindBlog returns the first post matching the lookup. A lookup with neither
// key set returns ErrNotFound without querying.
func (s *Store) FindBlog(ctx context.Context, l BlogLookup) (BlogPost, error) {
	where := sq.Eq{}
	switch {
	case l.ID != "":
		where["id"] = l.ID
	case l.Slug != "":
		where["slug"] = l.Slug
	default:
		return BlogPost{}, ErrNotFound
	}
	query, args, err := sq.Select(blogColumns).From("blogs").Where(where).Limit(1).ToSql()
	if err != nil {
		return BlogPost{}, err
	}
	p, err := scanBlog(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return BlogPost{}, ErrNotFound
	}
	return p, err
}

// ListBlogs returns posts bounded by opts.
func (s *Store) ListBlogs(ctx context.Context, opts ListOptions) ([]BlogPost, error) {
	b := sq.Select(blogColumns).From("blogs")
	if opts.NewestFirst {
		b = b.OrderBy("created_at DESC", "rowid DESC")
	}
	if opts.Limit > 0 {
		b = b.Limit(uint64(opts.Limit))
	}
	if opts.Offset > 0 {
		if opts.Limit <= 0 {
			b = b.Limit(uint64(1<<63 - 1))
		}
		b = b.Offset(uint64(opts.Offset))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]BlogPost, 0)
	for rows.Next() {
		p, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// CountBlogs returns the number of stored posts.
func (s *Store) CountBlogs(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blogs`).Scan(&n)
	return n, err
}

// SlugExists reports whether any post already uses slug.
func (s *Store) SlugExists(ctx context.Context, slug string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM blogs WHERE slug = ? LIMIT 1`, slug).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// InsertContactQuery stores a visitor message.
func (s *Store) InsertContactQuery(ctx context.Context, q ContactQuery) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_queries (id, name, subject, message, created_at) VALUES (?, ?, ?, ?, ?)`,
		q.ID, q.Name, q.Subject, q.Message, q.CreatedAt.UnixNano())
	return err
}

// ListContactQueries returns every stored contact query.
func (s *Store) ListContactQueries(ctx context.Context) ([]ContactQuery, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, subject, message, created_at FROM contact_queries`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	queries := make([]ContactQuery, 0)
	for rows.Next() {
		var q ContactQuery
		var created int64
		if err := rows.Scan(&q.ID, &q.Name, &q.Subject, &q.Message, &created); err != nil {
			return nil, err
		}
		q.CreatedAt = time.Unix(0, created).UTC()
		queries = append(queries, q)
	}
	return queries, rows.Err()
}

// CreateUser stores a new account.
func (s *Store) CreateUser(ctx context.Context, u User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, string(u.Role), u.CreatedAt.UnixNano())
	return err
}

// GetUserByID returns the account with the given id.
func (s *Store) GetUserByID(ctx context.Context, id string) (User, error) {
	return s.getUser(ctx, `SELECT id, email, password_hash, role, created_at FROM users WHERE id = ?`, id)
}

// GetUserByEmail returns the account registered under email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return s.getUser(ctx, `SELECT id, email, password_hash, role, created_at FROM users WHERE email = ?`, email)
}

func (s *Store) getUser(ctx context.Context, query string, arg string) (User, error) {
	var u User
	var role string
	var created int64
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	u.Role = Role(role)
	u.CreatedAt = time.Unix(0, created).UTC()
	return u, nil
}

// SaveImage records metadata for an uploaded image.
func (s *Store) SaveImage(ctx context.Context, img Image) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns all uploaded images, newest first.
func (s *Store) ListImages(ctx context.Context) ([]Image, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := make([]Image, 0)
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// ImageExists reports whether filename is already recorded.
func (s *Store) ImageExists(ctx context.Context, filename string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM images WHERE filename = ?`, filename).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// DeleteImage removes image metadata by filename.
func (s *Store) DeleteImage(ctx context.Context, filename string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM images WHERE filename = ?`, filename)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlog(r rowScanner) (BlogPost, error) {
	var p BlogPost
	var images string
	var created, updated int64
	if err := r.Scan(&p.ID, &p.Title, &p.Description, &images, &p.AuthorID, &p.Slug, &created, &updated); err != nil {
		return BlogPost{}, err
	}
	if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
		return BlogPost{}, fmt.Errorf("decode images of %s: %w", p.ID, err)
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	p.CreatedAt = time.Unix(0, created).UTC()
	p.UpdatedAt = time.Unix(0, updated).UTC()
	return p, nil
}

func encodeImages(images []string) (string, error) {
	if images == nil {
		images = []string{}
	}
	b, err := json.Marshal(images)
	if err != nil {
		return "", fmt.Errorf("encode images: %w", err)
	}
	return string(b), nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
