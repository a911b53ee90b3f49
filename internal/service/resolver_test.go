package service

import (
	"context"
	"testing"
	"time"

	"portal-service/internal/backend"
	"portal-service/internal/domain"
	"portal-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveNavigationWinsOverEverything(t *testing.T) {
	ctx := context.Background()
	quotes := repository.NewMemoryQuoteStore()

	// both fallback sources are populated and must be ignored
	require.NoError(t, quotes.Save(ctx, "u1", domain.LineLife, domain.QuoteSeed{ProductID: "3", PlanID: "9"}))
	api := &fakeBackend{
		latestDraft: func(context.Context, string, domain.InsuranceLine) (*backend.RemoteDraft, error) {
			t.Fatal("remote draft must not be consulted when navigation params are present")
			return nil, nil
		},
	}

	r := NewResolver(quotes, api)
	seed, source := r.Resolve(ctx, "u1", domain.LineLife, NavParams{ProductID: "7", PlanID: "42", Frequency: "monthly"})

	assert.Equal(t, SourceNavigation, source)
	assert.Equal(t, "7", seed.ProductID)
	assert.Equal(t, "42", seed.PlanID)
	assert.Equal(t, domain.FrequencyMonthly, seed.PaymentFrequency)
}

func TestResolveNavigationPersistsSeed(t *testing.T) {
	// A deep link with no prior state seeds the wizard AND writes
	// an ephemeral entry under the life key, surviving a login detour.
	ctx := context.Background()
	quotes := repository.NewMemoryQuoteStore()
	r := NewResolver(quotes, &fakeBackend{})

	seed, source := r.Resolve(ctx, "u1", domain.LineLife, NavParams{ProductID: "7", PlanID: "42", Frequency: "monthly"})
	require.Equal(t, SourceNavigation, source)
	require.Equal(t, domain.FrequencyMonthly, seed.PaymentFrequency)

	stored, err := quotes.Load(ctx, "u1", domain.LineLife)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "7", stored.ProductID)
	assert.Equal(t, "42", stored.PlanID)
}

func TestResolveEphemeralConsumedOneShot(t *testing.T) {
	ctx := context.Background()
	quotes := repository.NewMemoryQuoteStore()
	require.NoError(t, quotes.Save(ctx, "u1", domain.LineMotor, domain.QuoteSeed{ProductID: "3", PlanID: "9", PaymentFrequency: domain.FrequencyAnnual}))

	r := NewResolver(quotes, &fakeBackend{})

	seed, source := r.Resolve(ctx, "u1", domain.LineMotor, NavParams{})
	assert.Equal(t, SourceEphemeral, source)
	assert.Equal(t, "3", seed.ProductID)

	// second mount with no new navigation params must not see it again
	_, source = r.Resolve(ctx, "u1", domain.LineMotor, NavParams{})
	assert.Equal(t, SourceBlank, source)
}

func TestResolveExpiredEphemeralFallsThrough(t *testing.T) {
	// A 25h-old seed is treated as absent and deleted.
	ctx := context.Background()
	quotes := repository.NewMemoryQuoteStore()
	stale := domain.QuoteSeed{
		ProductID:        "3",
		PlanID:           "9",
		PaymentFrequency: domain.FrequencyAnnual,
		CreatedAt:        time.Now().Add(-25 * time.Hour).UnixMilli(),
	}
	require.NoError(t, quotes.Save(ctx, "u1", domain.LineLife, stale))

	remoteCalled := false
	api := &fakeBackend{
		latestDraft: func(context.Context, string, domain.InsuranceLine) (*backend.RemoteDraft, error) {
			remoteCalled = true
			return nil, nil
		},
	}

	r := NewResolver(quotes, api)
	seed, source := r.Resolve(ctx, "u1", domain.LineLife, NavParams{})

	assert.True(t, remoteCalled, "expired ephemeral must fall through to remote")
	assert.Equal(t, SourceBlank, source)
	assert.Empty(t, seed.ProductID)

	stored, err := quotes.Load(ctx, "u1", domain.LineLife)
	require.NoError(t, err)
	assert.Nil(t, stored, "expired entry deleted as a side effect")
}

func TestResolveRemoteDraft(t *testing.T) {
	ctx := context.Background()
	api := &fakeBackend{
		latestDraft: func(context.Context, string, domain.InsuranceLine) (*backend.RemoteDraft, error) {
			return &backend.RemoteDraft{ProductID: "5", PlanID: "11", PaymentFrequency: "quarterly"}, nil
		},
	}

	r := NewResolver(repository.NewMemoryQuoteStore(), api)
	seed, source := r.Resolve(ctx, "u1", domain.LineHome, NavParams{})

	assert.Equal(t, SourceRemote, source)
	assert.Equal(t, "5", seed.ProductID)
	assert.Equal(t, "11", seed.PlanID)
	assert.Equal(t, domain.FrequencyQuarterly, seed.PaymentFrequency)
}

func TestResolveBlankDefaults(t *testing.T) {
	r := NewResolver(repository.NewMemoryQuoteStore(), &fakeBackend{})
	seed, source := r.Resolve(context.Background(), "u1", domain.LineHome, NavParams{})

	assert.Equal(t, SourceBlank, source)
	assert.Empty(t, seed.ProductID)
	assert.Empty(t, seed.PlanID)
	assert.Equal(t, domain.FrequencyAnnual, seed.PaymentFrequency)
}
