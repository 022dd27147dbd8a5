package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"portfolio-api/internal/blog/entity"
)

// ErrDuplicateSlug signals a unique-constraint violation on the slug column.
var ErrDuplicateSlug = errors.New("duplicate slug")

// Filter narrows blog listings. Published is a pointer so admin queries
// can override the published-only default.
type Filter struct {
	Category  string
	Tag       string
	Search    string
	Published *bool
}

// BlogRepo provides data access for the blogs table using sqlx.
type BlogRepo struct {
	db *sqlx.DB
}

func NewBlogRepo(db *sqlx.DB) *BlogRepo { return &BlogRepo{db: db} }

// EnsureTable creates the blogs table if not exists (idempotent).
func (r *BlogRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS blogs (
  id VARCHAR(27) PRIMARY KEY,
  title VARCHAR(200) NOT NULL,
  slug TEXT UNIQUE NOT NULL,
  excerpt VARCHAR(300) NOT NULL,
  content TEXT NOT NULL,
  author TEXT NOT NULL DEFAULT 'Admin',
  cover_image TEXT NOT NULL DEFAULT '',
  tags TEXT[] NOT NULL DEFAULT '{}',
  category TEXT NOT NULL DEFAULT 'Web Development',
  published BOOLEAN NOT NULL DEFAULT false,
  views BIGINT NOT NULL DEFAULT 0,
  read_time INT NOT NULL DEFAULT 5,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_blogs_published_created ON blogs (published, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_blogs_tags ON blogs USING GIN (tags);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// listColumns leaves content out; detail reads hydrate it separately.
const listColumns = `id, title, slug, excerpt, '' AS content, author, cover_image, tags,
	category, published, views, read_time, created_at, updated_at`

const detailColumns = `id, title, slug, excerpt, content, author, cover_image, tags,
	category, published, views, read_time, created_at, updated_at`

// List returns posts matching the filter, newest first, without content.
// Search is a case-insensitive substring over title and excerpt.
func (r *BlogRepo) List(ctx context.Context, f Filter) ([]entity.Post, error) {
	where := []string{}
	args := []any{}

	if f.Published != nil {
		args = append(args, *f.Published)
		where = append(where, fmt.Sprintf("published = $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Tag != "" {
		args = append(args, f.Tag)
		where = append(where, fmt.Sprintf("$%d = ANY(tags)", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR excerpt ILIKE $%d)", n, n))
	}

	q := "SELECT " + listColumns + " FROM blogs"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC"

	posts := []entity.Post{}
	if err := r.db.SelectContext(ctx, &posts, q, args...); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetBySlug fetches one post with content or sql.ErrNoRows.
func (r *BlogRepo) GetBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	q := "SELECT " + detailColumns + " FROM blogs WHERE slug=$1"
	var p entity.Post
	if err := r.db.GetContext(ctx, &p, q, slug); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID fetches one post with content or sql.ErrNoRows.
func (r *BlogRepo) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	q := "SELECT " + detailColumns + " FROM blogs WHERE id=$1"
	var p entity.Post
	if err := r.db.GetContext(ctx, &p, q, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// IncrementViews bumps the view counter atomically by slug and returns the
// new value, or sql.ErrNoRows when the slug is unmatched.
func (r *BlogRepo) IncrementViews(ctx context.Context, slug string) (int64, error) {
	const q = `UPDATE blogs SET views = views + 1 WHERE slug=$1 RETURNING views`
	var views int64
	if err := r.db.GetContext(ctx, &views, q, slug); err != nil {
		return 0, err
	}
	return views, nil
}

// Create inserts a new post. A slug conflict comes back as ErrDuplicateSlug.
func (r *BlogRepo) Create(ctx context.Context, p *entity.Post) error {
	const q = `INSERT INTO blogs
		(id, title, slug, excerpt, content, author, cover_image, tags, category, published, read_time)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING views, created_at, updated_at`
	row := r.db.QueryRowxContext(ctx, q,
		p.ID, p.Title, p.Slug, p.Excerpt, p.Content, p.Author, p.CoverImage,
		p.Tags, p.Category, p.Published, p.ReadTime)
	if err := row.Scan(&p.Views, &p.CreatedAt, &p.UpdatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateSlug
		}
		return err
	}
	return nil
}

// Update replaces all mutable columns of a post by ID; the view counter
// stays untouched. Returns rows affected.
func (r *BlogRepo) Update(ctx context.Context, p *entity.Post) (int64, error) {
	const q = `UPDATE blogs SET
		title=$2, slug=$3, excerpt=$4, content=$5, author=$6, cover_image=$7,
		tags=$8, category=$9, published=$10, read_time=$11, updated_at=NOW()
		WHERE id=$1`
	res, err := r.db.ExecContext(ctx, q,
		p.ID, p.Title, p.Slug, p.Excerpt, p.Content, p.Author, p.CoverImage,
		p.Tags, p.Category, p.Published, p.ReadTime)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, ErrDuplicateSlug
		}
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes a post by ID and reports the rows removed.
func (r *BlogRepo) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
