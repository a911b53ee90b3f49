package service

import (
	"context"
	"log"
	"time"

	"portal-service/internal/backend"
	"portal-service/internal/domain"
	"portal-service/internal/repository"
)

// NavParams are the deep-link parameters a product page sends the wizard.
type NavParams struct {
	ProductID string
	PlanID    string
	Frequency string
}

// HasSelection reports whether the navigation carries a product or plan.
func (n NavParams) HasSelection() bool {
	return n.ProductID != "" || n.PlanID != ""
}

// Seed sources, reported alongside the resolved seed.
const (
	SourceNavigation = "navigation"
	SourceEphemeral  = "ephemeral"
	SourceRemote     = "remote"
	SourceBlank      = "blank"
)

// DraftFetcher is the slice of the backend client the resolver needs.
type DraftFetcher interface {
	LatestDraft(ctx context.Context, userID string, line domain.InsuranceLine) (*backend.RemoteDraft, error)
}

// Resolver picks the seed for a new wizard session from, in strict order:
// navigation params, the ephemeral quote store, the backend's latest draft,
// and finally a blank template. Later sources are not consulted once an
// earlier one yields a selection, and no source ever contributes a premium.
type Resolver struct {
	quotes repository.QuoteStore
	api    DraftFetcher
}

func NewResolver(quotes repository.QuoteStore, api DraftFetcher) *Resolver {
	return &Resolver{quotes: quotes, api: api}
}

// Resolve never fails: every candidate source degrades to absent and the
// blank template is always available.
func (r *Resolver) Resolve(ctx context.Context, userID string, line domain.InsuranceLine, nav NavParams) (domain.QuoteSeed, string) {
	// 1. Navigation parameters win outright. The selection is persisted
	// immediately so a forced login detour can restore it.
	if nav.HasSelection() {
		seed := domain.QuoteSeed{
			ProductID:        nav.ProductID,
			PlanID:           nav.PlanID,
			PaymentFrequency: domain.NormalizeFrequency(nav.Frequency),
			CreatedAt:        time.Now().UnixMilli(),
		}
		if err := r.quotes.Save(ctx, userID, line, seed); err != nil {
			log.Printf("[WARN] could not persist navigation seed for user=%s line=%s: %v", userID, line, err)
		}
		return seed, SourceNavigation
	}

	// 2. Ephemeral quote, consumed one-shot: a second mount without new
	// navigation params must not restore the same entry again.
	if seed, _ := r.quotes.Load(ctx, userID, line); seed != nil && seed.HasSelection() {
		if err := r.quotes.Clear(ctx, userID, line); err != nil {
			log.Printf("[WARN] could not consume quote seed for user=%s line=%s: %v", userID, line, err)
		}
		return *seed, SourceEphemeral
	}

	// 3. Remote latest draft, read path only. Selection fields only; the
	// backend's stored premium is stale by definition and stays behind.
	if remote, _ := r.api.LatestDraft(ctx, userID, line); remote != nil && (remote.ProductID != "" || remote.PlanID != "") {
		return domain.QuoteSeed{
			ProductID:        remote.ProductID,
			PlanID:           remote.PlanID,
			PaymentFrequency: domain.NormalizeFrequency(remote.PaymentFrequency),
		}, SourceRemote
	}

	// 4. Blank template.
	return domain.QuoteSeed{PaymentFrequency: domain.FrequencyAnnual}, SourceBlank
}
