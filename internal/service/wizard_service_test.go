package service

import (
	"context"
	"errors"
	"testing"

	"portal-service/internal/backend"
	"portal-service/internal/domain"
	"portal-service/internal/repository"
	"portal-service/pkg/xerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWizardFixture(api *fakeBackend) (*WizardService, *repository.MemoryQuoteStore, *repository.MemorySessionStore) {
	quotes := repository.NewMemoryQuoteStore()
	sessions := repository.NewMemorySessionStore()
	svc := NewWizardService(NewResolver(quotes, api), sessions, quotes, api)
	return svc, quotes, sessions
}

func noProfile(context.Context, string) (*backend.Profile, error) {
	return nil, errors.New("no profile")
}

func TestStartPrefillsApplicantFromProfile(t *testing.T) {
	api := &fakeBackend{
		profile: func(context.Context, string) (*backend.Profile, error) {
			return &backend.Profile{FirstName: "Jane", LastName: "Doe", Gender: "female"}, nil
		},
	}
	svc, _, _ := newWizardFixture(api)

	sess, err := svc.Start(context.Background(), "u1", domain.LineLife, NavParams{ProductID: "7", PlanID: "42", Frequency: "monthly"})
	require.NoError(t, err)

	assert.Equal(t, 1, sess.CurrentStep)
	assert.Equal(t, SourceNavigation, sess.SeedSource)
	assert.Equal(t, "Jane", sess.Draft.Applicant.FirstName)
	assert.Equal(t, "7", sess.Draft.ProductID)
	assert.Zero(t, sess.Draft.PremiumAmount, "premium is never part of a restored seed")
}

func TestStartToleratesProfileFailure(t *testing.T) {
	svc, _, _ := newWizardFixture(&fakeBackend{profile: noProfile})

	sess, err := svc.Start(context.Background(), "u1", domain.LineMotor, NavParams{})
	require.NoError(t, err)
	assert.Equal(t, domain.Applicant{}, sess.Draft.Applicant)
}

func TestStartRejectsUnknownLine(t *testing.T) {
	svc, _, _ := newWizardFixture(&fakeBackend{profile: noProfile})
	_, err := svc.Start(context.Background(), "u1", domain.InsuranceLine("travel"), NavParams{})
	assert.ErrorIs(t, err, xerrors.ErrInvalidLine)
}

func TestStartResumesActiveSessionWithoutNav(t *testing.T) {
	svc, _, _ := newWizardFixture(&fakeBackend{profile: noProfile})
	ctx := context.Background()

	first, err := svc.Start(ctx, "u1", domain.LineHome, NavParams{})
	require.NoError(t, err)

	again, err := svc.Start(ctx, "u1", domain.LineHome, NavParams{})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID, "no-nav mount resumes the active session")

	// a fresh deep link starts over
	fresh, err := svc.Start(ctx, "u1", domain.LineHome, NavParams{ProductID: "8"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, fresh.ID)
}

func TestStartNeverRestoresPremium(t *testing.T) {
	// restoration via remote draft: the backend also stores a premium, but
	// the portal never carries it into a new wizard.
	api := &fakeBackend{
		profile: noProfile,
		latestDraft: func(context.Context, string, domain.InsuranceLine) (*backend.RemoteDraft, error) {
			return &backend.RemoteDraft{ProductID: "5", PlanID: "11", PaymentFrequency: "annual"}, nil
		},
	}
	svc, _, _ := newWizardFixture(api)

	sess, err := svc.Start(context.Background(), "u1", domain.LineLife, NavParams{})
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, sess.SeedSource)
	assert.Zero(t, sess.Draft.PremiumAmount)
}

func TestMergeAdvanceRetreatPersist(t *testing.T) {
	svc, _, sessions := newWizardFixture(&fakeBackend{profile: noProfile})
	ctx := context.Background()

	sess, err := svc.Start(ctx, "u1", domain.LineMotor, NavParams{})
	require.NoError(t, err)

	vd := domain.VehicleDetails{Make: "Toyota", Model: "Corolla", Year: 2021}
	sess, err = svc.MergeStep(ctx, "u1", sess.ID, domain.StepPartial{VehicleDetails: &vd})
	require.NoError(t, err)
	require.NotNil(t, sess.Draft.VehicleDetails)

	sess, err = svc.Advance(ctx, "u1", sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, sess.CurrentStep)

	stored, err := sessions.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.CurrentStep)
	assert.Equal(t, "Toyota", stored.Draft.VehicleDetails.Make)

	sess, err = svc.Retreat(ctx, "u1", sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, sess.CurrentStep)

	// boundary retreat is a quiet no-op
	sess, err = svc.Retreat(ctx, "u1", sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, sess.CurrentStep)
}

func TestGetEnforcesOwnership(t *testing.T) {
	svc, _, _ := newWizardFixture(&fakeBackend{profile: noProfile})
	ctx := context.Background()

	sess, err := svc.Start(ctx, "u1", domain.LineLife, NavParams{})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "u2", sess.ID)
	assert.ErrorIs(t, err, xerrors.ErrSessionNotFound)
}

func TestQuoteWritesPremium(t *testing.T) {
	api := &fakeBackend{
		profile: noProfile,
		calculatePremium: func(_ context.Context, req backend.PremiumRequest) (float64, error) {
			assert.Equal(t, "42", req.PlanID)
			assert.Equal(t, 34, req.Age)
			return 215.75, nil
		},
	}
	svc, _, _ := newWizardFixture(api)
	ctx := context.Background()

	sess, err := svc.Start(ctx, "u1", domain.LineLife, NavParams{ProductID: "7", PlanID: "42"})
	require.NoError(t, err)

	sess, err = svc.Quote(ctx, "u1", sess.ID, QuoteInput{Age: 34})
	require.NoError(t, err)
	assert.Equal(t, 215.75, sess.Draft.PremiumAmount)
}

func TestQuoteRequiresPlan(t *testing.T) {
	svc, _, _ := newWizardFixture(&fakeBackend{profile: noProfile})
	ctx := context.Background()

	sess, err := svc.Start(ctx, "u1", domain.LineLife, NavParams{})
	require.NoError(t, err)

	_, err = svc.Quote(ctx, "u1", sess.ID, QuoteInput{Age: 34})
	assert.ErrorIs(t, err, xerrors.ErrQuoteAbsent)
}

func TestSubmitFailureLeavesStateForRetry(t *testing.T) {
	// Backend rejects; the session stays active on the same
	// step, the draft survives, and the ephemeral quote is not cleared.
	api := &fakeBackend{
		profile: noProfile,
		createApp: func(context.Context, string, domain.ApplicationDraft) (*backend.ApplicationReceipt, error) {
			return nil, xerrors.ErrSubmissionRejected
		},
	}
	svc, quotes, sessions := newWizardFixture(api)
	ctx := context.Background()

	sess, err := svc.Start(ctx, "u1", domain.LineLife, NavParams{ProductID: "7", PlanID: "42"})
	require.NoError(t, err)
	stepBefore := sess.CurrentStep

	_, err = svc.Submit(ctx, "u1", sess.ID, nil)
	require.ErrorIs(t, err, xerrors.ErrSubmissionRejected)

	stored, err := sessions.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WizardActive, stored.Status)
	assert.Equal(t, stepBefore, stored.CurrentStep)
	assert.Equal(t, "42", stored.Draft.PlanID)

	seed, err := quotes.Load(ctx, "u1", domain.LineLife)
	require.NoError(t, err)
	assert.NotNil(t, seed, "ephemeral quote preserved for retry")
}

func TestSubmitSuccessClearsEphemeralAndIncludesFinalEdits(t *testing.T) {
	var submitted domain.ApplicationDraft
	api := &fakeBackend{
		profile: noProfile,
		createApp: func(_ context.Context, _ string, draft domain.ApplicationDraft) (*backend.ApplicationReceipt, error) {
			submitted = draft
			return &backend.ApplicationReceipt{ID: "app-1", ApplicationNumber: "LI-2026-0001"}, nil
		},
	}
	svc, quotes, sessions := newWizardFixture(api)
	ctx := context.Background()

	sess, err := svc.Start(ctx, "u1", domain.LineLife, NavParams{ProductID: "7", PlanID: "42"})
	require.NoError(t, err)

	// the review step hands its last edits in with the submit call
	bens := []domain.Beneficiary{{FullName: "Ada Obi", SharePercent: 100}}
	receipt, err := svc.Submit(ctx, "u1", sess.ID, &domain.StepPartial{Beneficiaries: &bens})
	require.NoError(t, err)
	assert.Equal(t, "LI-2026-0001", receipt.ApplicationNumber)
	require.Len(t, submitted.Beneficiaries, 1)

	stored, err := sessions.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WizardSubmitted, stored.Status)

	seed, err := quotes.Load(ctx, "u1", domain.LineLife)
	require.NoError(t, err)
	assert.Nil(t, seed, "ephemeral quote purged exactly once, on confirmed success")

	// a submitted session accepts no further transitions
	_, err = svc.Advance(ctx, "u1", sess.ID)
	assert.ErrorIs(t, err, xerrors.ErrSessionSubmitted)
}
