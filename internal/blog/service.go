// Package blog implements the blog resource: published-only public
// listing, slug-keyed detail reads with a view counter, admin writes.
package blog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"

	"portfolio-api/internal/blog/entity"
	blogrepo "portfolio-api/internal/blog/repo"
	"portfolio-api/pkg/utilities"
)

var (
	ErrNotFound      = errors.New("blog not found")
	ErrDuplicateSlug = errors.New("a post with this slug already exists")
)

// ValidationError carries a user-facing message for a rejected payload.
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

// readTimeWPM is the words-per-minute rate behind the read time estimate.
const readTimeWPM = 200

// Service holds blog business rules over the repository.
type Service struct {
	repo *blogrepo.BlogRepo
}

func NewService(db *sqlx.DB, r *blogrepo.BlogRepo) *Service {
	if r == nil {
		r = blogrepo.NewBlogRepo(db)
	}
	return &Service{repo: r}
}

func (s *Service) Repo() *blogrepo.BlogRepo { return s.repo }

func (s *Service) List(ctx context.Context, f blogrepo.Filter) ([]entity.Post, error) {
	return s.repo.List(ctx, f)
}

// ByTag lists published posts carrying the tag, newest first.
func (s *Service) ByTag(ctx context.Context, tag string) ([]entity.Post, error) {
	published := true
	return s.repo.List(ctx, blogrepo.Filter{Tag: tag, Published: &published})
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// IncrementViews bumps the counter for a public detail view. Repeated
// views from the same client all count; no deduplication.
func (s *Service) IncrementViews(ctx context.Context, slug string) (int64, error) {
	views, err := s.repo.IncrementViews(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return views, nil
}

// Create validates, derives the slug and read time when absent, and
// persists a new post.
func (s *Service) Create(ctx context.Context, p *entity.Post) error {
	applyDefaults(p)
	if p.Slug == "" {
		p.Slug = utilities.Slugify(p.Title)
	}
	if p.ReadTime <= 0 {
		p.ReadTime = EstimateReadTime(p.Content)
	}
	if err := Validate(p); err != nil {
		return err
	}
	p.ID = utilities.NewKSUID()
	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, blogrepo.ErrDuplicateSlug) {
			return ErrDuplicateSlug
		}
		return err
	}
	return nil
}

// Update validates and replaces the stored post by ID.
func (s *Service) Update(ctx context.Context, p *entity.Post) error {
	applyDefaults(p)
	if p.Slug == "" {
		p.Slug = utilities.Slugify(p.Title)
	}
	if p.ReadTime <= 0 {
		p.ReadTime = EstimateReadTime(p.Content)
	}
	if err := Validate(p); err != nil {
		return err
	}
	rows, err := s.repo.Update(ctx, p)
	if err != nil {
		if errors.Is(err, blogrepo.ErrDuplicateSlug) {
			return ErrDuplicateSlug
		}
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// EstimateReadTime returns the reading time in minutes for the content at
// 200 wpm, minimum one minute.
func EstimateReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + readTimeWPM - 1) / readTimeWPM
	if minutes < 1 {
		return 1
	}
	return minutes
}

func applyDefaults(p *entity.Post) {
	p.Title = strings.TrimSpace(p.Title)
	p.Slug = strings.ToLower(strings.TrimSpace(p.Slug))
	if p.Author == "" {
		p.Author = entity.DefaultAuthor
	}
	if p.CoverImage == "" {
		p.CoverImage = entity.DefaultCoverImage
	}
	if p.Category == "" {
		p.Category = entity.DefaultCategory
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	for i, tag := range p.Tags {
		p.Tags[i] = strings.TrimSpace(tag)
	}
}

// Validate enforces the schema constraints of the blog model.
func Validate(p *entity.Post) error {
	// length caps count characters, not bytes, matching VARCHAR(n)
	switch {
	case p.Title == "":
		return &ValidationError{"Blog title is required"}
	case utf8.RuneCountInString(p.Title) > 200:
		return &ValidationError{"Title cannot exceed 200 characters"}
	case p.Slug == "":
		return &ValidationError{"Slug is required"}
	case p.Excerpt == "":
		return &ValidationError{"Excerpt is required"}
	case utf8.RuneCountInString(p.Excerpt) > 300:
		return &ValidationError{"Excerpt cannot exceed 300 characters"}
	case p.Content == "":
		return &ValidationError{"Content is required"}
	}
	if !slices.Contains(entity.Categories, p.Category) {
		return &ValidationError{fmt.Sprintf("Category must be one of: %s", strings.Join(entity.Categories, ", "))}
	}
	return nil
}
