package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"portfolio-api/internal/contact/entity"
)

// ContactRepo provides data access for the contacts table using sqlx.
type ContactRepo struct {
	db *sqlx.DB
}

func NewContactRepo(db *sqlx.DB) *ContactRepo { return &ContactRepo{db: db} }

// EnsureTable creates the contacts table if not exists (idempotent).
func (r *ContactRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS contacts (
  id TEXT PRIMARY KEY,
  name VARCHAR(100) NOT NULL,
  email TEXT NOT NULL,
  subject VARCHAR(200) NOT NULL DEFAULT '',
  message VARCHAR(1000) NOT NULL,
  ip_address TEXT NOT NULL DEFAULT '',
  user_agent TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'new',
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_contacts_status ON contacts (status);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

const contactColumns = `id, name, email, subject, message, ip_address, user_agent, status, created_at`

// Create persists a validated submission.
func (r *ContactRepo) Create(ctx context.Context, c *entity.Submission) error {
	const q = `INSERT INTO contacts (id, name, email, subject, message, ip_address, user_agent, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING created_at`
	row := r.db.QueryRowxContext(ctx, q,
		c.ID, c.Name, c.Email, c.Subject, c.Message, c.IPAddress, c.UserAgent, c.Status)
	return row.Scan(&c.CreatedAt)
}

// List returns submissions newest first, optionally narrowed by status.
func (r *ContactRepo) List(ctx context.Context, status string) ([]entity.Submission, error) {
	q := "SELECT " + contactColumns + " FROM contacts"
	args := []any{}
	if status != "" {
		q += " WHERE status=$1"
		args = append(args, status)
	}
	q += " ORDER BY created_at DESC"

	subs := []entity.Submission{}
	if err := r.db.SelectContext(ctx, &subs, q, args...); err != nil {
		return nil, err
	}
	return subs, nil
}

// UpdateStatus moves a submission through triage and returns the updated
// row, or sql.ErrNoRows when the ID is unmatched.
func (r *ContactRepo) UpdateStatus(ctx context.Context, id, status string) (*entity.Submission, error) {
	q := `UPDATE contacts SET status=$2 WHERE id=$1 RETURNING ` + contactColumns
	var c entity.Submission
	if err := r.db.GetContext(ctx, &c, q, id, status); err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes a submission by ID and reports the rows removed.
func (r *ContactRepo) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
