package service

import (
	"context"
	"log"
	"strings"

	"portal-service/internal/backend"
	"portal-service/internal/domain"
	"portal-service/pkg/xerrors"
)

// ManagerBackend is the slice of the backend client the approval queue uses.
type ManagerBackend interface {
	ManagerQueue(ctx context.Context, managerID string, status domain.ApplicationStatus) ([]backend.ApplicationSummary, error)
	ManagerApplication(ctx context.Context, managerID, id string) (*backend.ApplicationDetail, error)
	SubmitDecision(ctx context.Context, managerID, id string, decision domain.Decision) error
}

// ManagerService drives the approval queue. Decisions are validated here
// once, not per caller; rejections without review notes are hard-blocked.
type ManagerService struct {
	api ManagerBackend
}

func NewManagerService(api ManagerBackend) *ManagerService {
	return &ManagerService{api: api}
}

// Queue lists applications awaiting review; the default view is Submitted.
func (s *ManagerService) Queue(ctx context.Context, managerID string, status domain.ApplicationStatus) ([]backend.ApplicationSummary, error) {
	if status == "" {
		status = domain.StatusSubmitted
	}
	return s.api.ManagerQueue(ctx, managerID, status)
}

func (s *ManagerService) Detail(ctx context.Context, managerID, id string) (*backend.ApplicationDetail, error) {
	return s.api.ManagerApplication(ctx, managerID, id)
}

// Decide records an approval or rejection, then re-fetches the application
// so the caller sees post-decision state. A failed re-fetch degrades to a
// nil detail; the decision itself already succeeded.
func (s *ManagerService) Decide(ctx context.Context, managerID, id string, d domain.Decision) (*backend.ApplicationDetail, error) {
	if d.Status != domain.StatusApproved && d.Status != domain.StatusRejected {
		return nil, xerrors.ErrInvalidDecision
	}
	if d.Status == domain.StatusRejected && strings.TrimSpace(d.ReviewNotes) == "" {
		return nil, xerrors.ErrReviewNotesRequired
	}

	if err := s.api.SubmitDecision(ctx, managerID, id, d); err != nil {
		log.Printf("[ERROR] decision failed for application=%s manager=%s: %v", id, managerID, err)
		return nil, xerrors.ErrDecisionFailed
	}
	log.Printf("[INFO] application %s %s by manager=%s", id, d.Status, managerID)

	refreshed, err := s.api.ManagerApplication(ctx, managerID, id)
	if err != nil {
		log.Printf("[WARN] post-decision refresh failed for application=%s: %v", id, err)
		return nil, nil
	}
	return refreshed, nil
}
