package repository

import (
	"context"
	"errors"

	"portal-service/internal/domain"
	"portal-service/pkg/xerrors"

	json "github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionStore persists wizard sessions across requests and restarts.
type SessionStore interface {
	Create(ctx context.Context, s *domain.WizardSession) error
	Get(ctx context.Context, id string) (*domain.WizardSession, error)
	GetActive(ctx context.Context, userID string, line domain.InsuranceLine) (*domain.WizardSession, error)
	Update(ctx context.Context, s *domain.WizardSession) error
	Delete(ctx context.Context, id string) error
}

type SessionRepo struct {
	db *pgxpool.Pool
}

func NewSessionRepo(db *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create inserts a new wizard session. The draft travels as jsonb.
func (r *SessionRepo) Create(ctx context.Context, s *domain.WizardSession) error {
	draft, err := json.Marshal(s.Draft)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO wizard_sessions
			(id, user_id, line, current_step, completed_steps, draft, status, seed_source, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, s.ID, s.UserID, s.Draft.Line, s.CurrentStep, s.CompletedSteps, draft, s.Status, s.SeedSource, s.CreatedAt, s.UpdatedAt)
	return err
}

func (r *SessionRepo) Get(ctx context.Context, id string) (*domain.WizardSession, error) {
	return r.scanOne(ctx, `
		SELECT id, user_id, current_step, completed_steps, draft, status, seed_source, created_at, updated_at
		FROM wizard_sessions
		WHERE id=$1
	`, id)
}

// GetActive fetches the newest active session for a user and line, so a
// user returning to the wizard resumes instead of starting over.
func (r *SessionRepo) GetActive(ctx context.Context, userID string, line domain.InsuranceLine) (*domain.WizardSession, error) {
	return r.scanOne(ctx, `
		SELECT id, user_id, current_step, completed_steps, draft, status, seed_source, created_at, updated_at
		FROM wizard_sessions
		WHERE user_id=$1 AND line=$2 AND status='active'
		ORDER BY created_at DESC
		LIMIT 1
	`, userID, line)
}

func (r *SessionRepo) scanOne(ctx context.Context, query string, args ...any) (*domain.WizardSession, error) {
	var (
		s     domain.WizardSession
		draft []byte
	)
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.UserID, &s.CurrentStep, &s.CompletedSteps, &draft,
		&s.Status, &s.SeedSource, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrSessionNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(draft, &s.Draft); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepo) Update(ctx context.Context, s *domain.WizardSession) error {
	draft, err := json.Marshal(s.Draft)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		UPDATE wizard_sessions
		SET current_step=$1, completed_steps=$2, draft=$3, status=$4, updated_at=NOW()
		WHERE id=$5
	`, s.CurrentStep, s.CompletedSteps, draft, s.Status, s.ID)
	return err
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM wizard_sessions WHERE id=$1`, id)
	return err
}
