package service

import (
	"context"
	"errors"
	"log"

	"portal-service/internal/backend"
	"portal-service/internal/domain"
	"portal-service/internal/repository"
	"portal-service/pkg/xerrors"

	"github.com/google/uuid"
)

// WizardBackend is the slice of the backend client the wizard uses.
type WizardBackend interface {
	Profile(ctx context.Context, userID string) (*backend.Profile, error)
	CalculatePremium(ctx context.Context, req backend.PremiumRequest) (float64, error)
	CreateApplication(ctx context.Context, userID string, draft domain.ApplicationDraft) (*backend.ApplicationReceipt, error)
	Applications(ctx context.Context, userID string) ([]backend.ApplicationSummary, error)
	Application(ctx context.Context, userID, id string) (*backend.ApplicationDetail, error)
}

// WizardService owns all wizard session transitions. Handlers translate
// HTTP into the message set below (start, merge, advance, retreat, quote,
// submit) and never touch session state directly.
type WizardService struct {
	resolver *Resolver
	sessions repository.SessionStore
	quotes   repository.QuoteStore
	api      WizardBackend
}

func NewWizardService(resolver *Resolver, sessions repository.SessionStore, quotes repository.QuoteStore, api WizardBackend) *WizardService {
	return &WizardService{
		resolver: resolver,
		sessions: sessions,
		quotes:   quotes,
		api:      api,
	}
}

// Start opens a wizard session. A deep link with a product selection always
// starts fresh; otherwise an active session for the same line is resumed
// before any restoration source is consulted.
func (s *WizardService) Start(ctx context.Context, userID string, line domain.InsuranceLine, nav NavParams) (*domain.WizardSession, error) {
	if !domain.ValidLine(line) {
		return nil, xerrors.ErrInvalidLine
	}

	if !nav.HasSelection() {
		if existing, err := s.sessions.GetActive(ctx, userID, line); err == nil {
			return existing, nil
		} else if !errors.Is(err, xerrors.ErrSessionNotFound) {
			return nil, err
		}
	}

	seed, source := s.resolver.Resolve(ctx, userID, line, nav)
	draft := domain.NewDraft(line, seed)

	// Profile prefill writes only the applicant region, disjoint from the
	// seeded selection. A missing or failing profile leaves it empty.
	if profile, err := s.api.Profile(ctx, userID); err != nil {
		log.Printf("[WARN] profile prefill failed for user=%s: %v", userID, err)
	} else if profile != nil {
		draft.Applicant = profile.Applicant()
	}

	sess := domain.NewWizardSession(uuid.New().String(), userID, draft, source)
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	log.Printf("[INFO] wizard session %s started for user=%s line=%s seed=%s", sess.ID, userID, line, source)
	return sess, nil
}

// Get returns a session owned by userID.
func (s *WizardService) Get(ctx context.Context, userID, sessionID string) (*domain.WizardSession, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, xerrors.ErrSessionNotFound
	}
	return sess, nil
}

func (s *WizardService) loadActive(ctx context.Context, userID, sessionID string) (*domain.WizardSession, error) {
	sess, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status != domain.WizardActive {
		return nil, xerrors.ErrSessionSubmitted
	}
	return sess, nil
}

// MergeStep overlays one step's data onto the draft and persists.
func (s *WizardService) MergeStep(ctx context.Context, userID, sessionID string, partial domain.StepPartial) (*domain.WizardSession, error) {
	sess, err := s.loadActive(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.MergeStep(partial); err != nil {
		return nil, err
	}
	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Advance moves the cursor forward. At the last step nothing changes and
// nothing is persisted.
func (s *WizardService) Advance(ctx context.Context, userID, sessionID string) (*domain.WizardSession, error) {
	sess, err := s.loadActive(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Advance() {
		return sess, nil
	}
	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Retreat moves the cursor back; a step-1 retreat is a no-op.
func (s *WizardService) Retreat(ctx context.Context, userID, sessionID string) (*domain.WizardSession, error) {
	sess, err := s.loadActive(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Retreat() {
		return sess, nil
	}
	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// QuoteInput carries the underwriting inputs the draft does not hold.
type QuoteInput struct {
	Age            int    `json:"age"`
	OccupationRisk string `json:"occupation_risk,omitempty"`
}

// Quote asks the backend to price the current selection for this applicant
// and records the result. This is the only write path for PremiumAmount.
func (s *WizardService) Quote(ctx context.Context, userID, sessionID string, in QuoteInput) (*domain.WizardSession, error) {
	sess, err := s.loadActive(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Draft.PlanID == "" {
		return nil, xerrors.ErrQuoteAbsent
	}

	req := backend.PremiumRequest{
		PlanID:           sess.Draft.PlanID,
		Age:              in.Age,
		Gender:           sess.Draft.Applicant.Gender,
		OccupationRisk:   in.OccupationRisk,
		PaymentFrequency: sess.Draft.PaymentFrequency,
	}
	if sess.Draft.Line == domain.LineLife && sess.Draft.HealthDeclaration != nil {
		req.HealthStatus = sess.Draft.HealthDeclaration.HealthStatus
	}

	premium, err := s.api.CalculatePremium(ctx, req)
	if err != nil {
		return nil, err
	}

	sess.Draft.PremiumAmount = premium
	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Submit sends the accumulated record to the backend. An explicit final
// partial, when given, is merged first so the review step's last edits are
// included. On failure the session and the ephemeral quote are preserved
// for retry; on success the ephemeral quote is purged.
func (s *WizardService) Submit(ctx context.Context, userID, sessionID string, final *domain.StepPartial) (*backend.ApplicationReceipt, error) {
	sess, err := s.loadActive(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if final != nil {
		if err := sess.MergeStep(*final); err != nil {
			return nil, err
		}
		if err := s.sessions.Update(ctx, sess); err != nil {
			return nil, err
		}
	}

	receipt, err := s.api.CreateApplication(ctx, userID, sess.Draft)
	if err != nil {
		log.Printf("[ERROR] submission failed for session=%s user=%s: %v", sessionID, userID, err)
		return nil, err
	}

	sess.Status = domain.WizardSubmitted
	if err := s.sessions.Update(ctx, sess); err != nil {
		log.Printf("[WARN] could not mark session %s submitted: %v", sessionID, err)
	}
	if err := s.quotes.Clear(ctx, userID, sess.Draft.Line); err != nil {
		log.Printf("[WARN] could not clear quote seed for user=%s line=%s: %v", userID, sess.Draft.Line, err)
	}

	log.Printf("[INFO] application %s (%s) submitted for user=%s", receipt.ID, receipt.ApplicationNumber, userID)
	return receipt, nil
}

// Applications lists the user's applications for the dashboard.
func (s *WizardService) Applications(ctx context.Context, userID string) ([]backend.ApplicationSummary, error) {
	return s.api.Applications(ctx, userID)
}

// Application fetches one application's detail for the dashboard.
func (s *WizardService) Application(ctx context.Context, userID, id string) (*backend.ApplicationDetail, error) {
	return s.api.Application(ctx, userID, id)
}
