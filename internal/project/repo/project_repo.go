package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"portfolio-api/internal/project/entity"
)

// Filter narrows project listings. Zero values mean "no constraint".
type Filter struct {
	Category string
	Featured *bool
	Status   string
	Search   string
}

// ProjectRepo provides data access for the projects table using sqlx.
type ProjectRepo struct {
	db *sqlx.DB
}

func NewProjectRepo(db *sqlx.DB) *ProjectRepo { return &ProjectRepo{db: db} }

// EnsureTable creates the projects table if not exists (idempotent).
func (r *ProjectRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS projects (
  id VARCHAR(27) PRIMARY KEY,
  title VARCHAR(100) NOT NULL,
  description VARCHAR(500) NOT NULL,
  detailed_description VARCHAR(2000) NOT NULL,
  technologies TEXT[] NOT NULL DEFAULT '{}',
  category TEXT NOT NULL DEFAULT 'Full Stack',
  image_url TEXT NOT NULL DEFAULT '',
  live_url TEXT NOT NULL DEFAULT '',
  github_url TEXT NOT NULL DEFAULT '',
  features TEXT[] NOT NULL DEFAULT '{}',
  challenges VARCHAR(1000) NOT NULL DEFAULT '',
  solutions VARCHAR(1000) NOT NULL DEFAULT '',
  display_order INT NOT NULL DEFAULT 0,
  featured BOOLEAN NOT NULL DEFAULT false,
  status TEXT NOT NULL DEFAULT 'completed',
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_projects_category_featured ON projects (category, featured DESC, display_order);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

const projectColumns = `id, title, description, detailed_description, technologies, category,
	image_url, live_url, github_url, features, challenges, solutions,
	display_order, featured, status, created_at, updated_at`

// List returns projects matching the filter, sorted by explicit order
// ascending then creation time descending. Search is a case-insensitive
// substring over title, description and the technology list.
func (r *ProjectRepo) List(ctx context.Context, f Filter) ([]entity.Project, error) {
	where := []string{}
	args := []any{}

	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Featured != nil {
		args = append(args, *f.Featured)
		where = append(where, fmt.Sprintf("featured = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(title ILIKE $%d OR description ILIKE $%d OR EXISTS (SELECT 1 FROM unnest(technologies) tech WHERE tech ILIKE $%d))",
			n, n, n))
	}

	q := "SELECT " + projectColumns + " FROM projects"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY display_order ASC, created_at DESC"

	projects := []entity.Project{}
	if err := r.db.SelectContext(ctx, &projects, q, args...); err != nil {
		return nil, err
	}
	return projects, nil
}

// ListFeatured returns the homepage subset: top featured completed
// projects by display order, capped at limit.
func (r *ProjectRepo) ListFeatured(ctx context.Context, limit int) ([]entity.Project, error) {
	q := "SELECT " + projectColumns + ` FROM projects
		WHERE featured = true AND status = 'completed'
		ORDER BY display_order ASC, created_at DESC LIMIT $1`
	projects := []entity.Project{}
	if err := r.db.SelectContext(ctx, &projects, q, limit); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetByID fetches one project or sql.ErrNoRows.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	q := "SELECT " + projectColumns + " FROM projects WHERE id=$1"
	var p entity.Project
	if err := r.db.GetContext(ctx, &p, q, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new project row.
func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	const q = `INSERT INTO projects
		(id, title, description, detailed_description, technologies, category,
		 image_url, live_url, github_url, features, challenges, solutions,
		 display_order, featured, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING created_at, updated_at`
	row := r.db.QueryRowxContext(ctx, q,
		p.ID, p.Title, p.Description, p.DetailedDescription, p.Technologies, p.Category,
		p.ImageURL, p.LiveURL, p.GithubURL, p.Features, p.Challenges, p.Solutions,
		p.Order, p.Featured, p.Status)
	return row.Scan(&p.CreatedAt, &p.UpdatedAt)
}

// Update replaces all mutable columns. Returns the number of rows touched
// so the service can distinguish a missing ID.
func (r *ProjectRepo) Update(ctx context.Context, p *entity.Project) (int64, error) {
	const q = `UPDATE projects SET
		title=$2, description=$3, detailed_description=$4, technologies=$5,
		category=$6, image_url=$7, live_url=$8, github_url=$9, features=$10,
		challenges=$11, solutions=$12, display_order=$13, featured=$14,
		status=$15, updated_at=NOW()
		WHERE id=$1`
	res, err := r.db.ExecContext(ctx, q,
		p.ID, p.Title, p.Description, p.DetailedDescription, p.Technologies,
		p.Category, p.ImageURL, p.LiveURL, p.GithubURL, p.Features,
		p.Challenges, p.Solutions, p.Order, p.Featured, p.Status)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes a project by ID and reports the rows removed.
func (r *ProjectRepo) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
