// Package project implements the portfolio project resource: public
// listing with filters and search, admin-gated writes.
package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"

	"portfolio-api/internal/project/entity"
	projectrepo "portfolio-api/internal/project/repo"
	"portfolio-api/pkg/utilities"
)

var ErrNotFound = errors.New("project not found")

// ValidationError carries a user-facing message for a rejected payload.
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

var urlPattern = regexp.MustCompile(`^https?://.+`)

// featuredLimit caps the homepage subset; a presentation convention, not a
// stored constraint.
const featuredLimit = 3

// Service holds project business rules over the repository.
type Service struct {
	repo *projectrepo.ProjectRepo
}

func NewService(db *sqlx.DB, r *projectrepo.ProjectRepo) *Service {
	if r == nil {
		r = projectrepo.NewProjectRepo(db)
	}
	return &Service{repo: r}
}

func (s *Service) Repo() *projectrepo.ProjectRepo { return s.repo }

func (s *Service) List(ctx context.Context, f projectrepo.Filter) ([]entity.Project, error) {
	return s.repo.List(ctx, f)
}

func (s *Service) Featured(ctx context.Context) ([]entity.Project, error) {
	return s.repo.ListFeatured(ctx, featuredLimit)
}

func (s *Service) ByCategory(ctx context.Context, category string) ([]entity.Project, error) {
	return s.repo.List(ctx, projectrepo.Filter{Category: category})
}

func (s *Service) Get(ctx context.Context, id string) (*entity.Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create validates, applies defaults and persists a new project.
func (s *Service) Create(ctx context.Context, p *entity.Project) error {
	applyDefaults(p)
	if err := Validate(p); err != nil {
		return err
	}
	p.ID = utilities.NewKSUID()
	return s.repo.Create(ctx, p)
}

// Update validates and fully replaces the stored project.
func (s *Service) Update(ctx context.Context, p *entity.Project) error {
	applyDefaults(p)
	if err := Validate(p); err != nil {
		return err
	}
	rows, err := s.repo.Update(ctx, p)
	if err != nil {
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

func applyDefaults(p *entity.Project) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Category == "" {
		p.Category = entity.DefaultCategory
	}
	if p.Status == "" {
		p.Status = entity.DefaultStatus
	}
	if p.ImageURL == "" {
		p.ImageURL = entity.DefaultImageURL
	}
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	if p.Features == nil {
		p.Features = []string{}
	}
}

// Validate enforces the schema constraints of the project model.
func Validate(p *entity.Project) error {
	// length caps count characters, not bytes, matching VARCHAR(n)
	switch {
	case p.Title == "":
		return &ValidationError{"Project title is required"}
	case utf8.RuneCountInString(p.Title) > 100:
		return &ValidationError{"Title cannot exceed 100 characters"}
	case p.Description == "":
		return &ValidationError{"Project description is required"}
	case utf8.RuneCountInString(p.Description) > 500:
		return &ValidationError{"Description cannot exceed 500 characters"}
	case p.DetailedDescription == "":
		return &ValidationError{"Detailed description is required"}
	case utf8.RuneCountInString(p.DetailedDescription) > 2000:
		return &ValidationError{"Detailed description cannot exceed 2000 characters"}
	case utf8.RuneCountInString(p.Challenges) > 1000:
		return &ValidationError{"Challenges cannot exceed 1000 characters"}
	case utf8.RuneCountInString(p.Solutions) > 1000:
		return &ValidationError{"Solutions cannot exceed 1000 characters"}
	}

	if len(p.Technologies) == 0 {
		return &ValidationError{"At least one technology is required"}
	}
	for _, tech := range p.Technologies {
		if strings.TrimSpace(tech) == "" {
			return &ValidationError{"Technologies cannot contain empty entries"}
		}
	}

	if !slices.Contains(entity.Categories, p.Category) {
		return &ValidationError{fmt.Sprintf("Category must be one of: %s", strings.Join(entity.Categories, ", "))}
	}
	if !slices.Contains(entity.Statuses, p.Status) {
		return &ValidationError{fmt.Sprintf("Status must be one of: %s", strings.Join(entity.Statuses, ", "))}
	}

	if p.LiveURL != "" && !urlPattern.MatchString(p.LiveURL) {
		return &ValidationError{"Please provide a valid live URL"}
	}
	if p.GithubURL != "" && !urlPattern.MatchString(p.GithubURL) {
		return &ValidationError{"Please provide a valid source URL"}
	}
	return nil
}
