// Package contact implements the public contact form and its admin triage.
package contact

import (
	"context"
	"database/sql"
	"errors"
	"slices"

	"github.com/jmoiron/sqlx"

	"portfolio-api/internal/contact/entity"
	contactrepo "portfolio-api/internal/contact/repo"
	"portfolio-api/pkg/utilities"
)

var (
	ErrNotFound      = errors.New("contact not found")
	ErrInvalidStatus = errors.New("invalid status")
)

// Service holds contact business rules over the repository.
type Service struct {
	repo *contactrepo.ContactRepo
}

func NewService(db *sqlx.DB, r *contactrepo.ContactRepo) *Service {
	if r == nil {
		r = contactrepo.NewContactRepo(db)
	}
	return &Service{repo: r}
}

func (s *Service) Repo() *contactrepo.ContactRepo { return s.repo }

// Submit persists a validated submission with the caller's address and
// user agent captured alongside.
func (s *Service) Submit(ctx context.Context, in SubmissionInput, ip, userAgent string) (*entity.Submission, error) {
	c := &entity.Submission{
		ID:        utilities.NewSnowflakeID(),
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		IPAddress: ip,
		UserAgent: userAgent,
		Status:    entity.DefaultStatus,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, status string) ([]entity.Submission, error) {
	return s.repo.List(ctx, status)
}

// UpdateStatus moves a submission through the triage states.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*entity.Submission, error) {
	if !slices.Contains(entity.Statuses, status) {
		return nil, ErrInvalidStatus
	}
	c, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
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
