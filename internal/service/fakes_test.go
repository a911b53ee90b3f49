package service

import (
	"context"
	"errors"

	"portal-service/internal/backend"
	"portal-service/internal/domain"
)

// fakeBackend stands in for the insurance backend in service tests. Only
// the function fields a test sets are expected to be called.
type fakeBackend struct {
	latestDraft      func(ctx context.Context, userID string, line domain.InsuranceLine) (*backend.RemoteDraft, error)
	profile          func(ctx context.Context, userID string) (*backend.Profile, error)
	calculatePremium func(ctx context.Context, req backend.PremiumRequest) (float64, error)
	createApp        func(ctx context.Context, userID string, draft domain.ApplicationDraft) (*backend.ApplicationReceipt, error)
	pay              func(ctx context.Context, userID, applicationID string, req backend.PaymentRequest) (*backend.PaymentReceipt, error)
	managerQueue     func(ctx context.Context, managerID string, status domain.ApplicationStatus) ([]backend.ApplicationSummary, error)
	managerApp       func(ctx context.Context, managerID, id string) (*backend.ApplicationDetail, error)
	submitDecision   func(ctx context.Context, managerID, id string, decision domain.Decision) error
}

var errUnexpectedCall = errors.New("unexpected backend call")

func (f *fakeBackend) LatestDraft(ctx context.Context, userID string, line domain.InsuranceLine) (*backend.RemoteDraft, error) {
	if f.latestDraft == nil {
		return nil, nil
	}
	return f.latestDraft(ctx, userID, line)
}

func (f *fakeBackend) Profile(ctx context.Context, userID string) (*backend.Profile, error) {
	if f.profile == nil {
		return nil, errUnexpectedCall
	}
	return f.profile(ctx, userID)
}

func (f *fakeBackend) CalculatePremium(ctx context.Context, req backend.PremiumRequest) (float64, error) {
	if f.calculatePremium == nil {
		return 0, errUnexpectedCall
	}
	return f.calculatePremium(ctx, req)
}

func (f *fakeBackend) CreateApplication(ctx context.Context, userID string, draft domain.ApplicationDraft) (*backend.ApplicationReceipt, error) {
	if f.createApp == nil {
		return nil, errUnexpectedCall
	}
	return f.createApp(ctx, userID, draft)
}

func (f *fakeBackend) Applications(ctx context.Context, userID string) ([]backend.ApplicationSummary, error) {
	return nil, errUnexpectedCall
}

func (f *fakeBackend) Application(ctx context.Context, userID, id string) (*backend.ApplicationDetail, error) {
	return nil, errUnexpectedCall
}

func (f *fakeBackend) Pay(ctx context.Context, userID, applicationID string, req backend.PaymentRequest) (*backend.PaymentReceipt, error) {
	if f.pay == nil {
		return nil, errUnexpectedCall
	}
	return f.pay(ctx, userID, applicationID, req)
}

func (f *fakeBackend) ManagerQueue(ctx context.Context, managerID string, status domain.ApplicationStatus) ([]backend.ApplicationSummary, error) {
	if f.managerQueue == nil {
		return nil, errUnexpectedCall
	}
	return f.managerQueue(ctx, managerID, status)
}

func (f *fakeBackend) ManagerApplication(ctx context.Context, managerID, id string) (*backend.ApplicationDetail, error) {
	if f.managerApp == nil {
		return nil, errUnexpectedCall
	}
	return f.managerApp(ctx, managerID, id)
}

func (f *fakeBackend) SubmitDecision(ctx context.Context, managerID, id string, decision domain.Decision) error {
	if f.submitDecision == nil {
		return errUnexpectedCall
	}
	return f.submitDecision(ctx, managerID, id, decision)
}
