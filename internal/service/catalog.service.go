package service

import (
	"context"
	"log"
	"time"

	"portal-service/internal/backend"
	"portal-service/internal/domain"
	"portal-service/internal/repository"
)

// CatalogBackend is the slice of the backend client the catalog uses.
type CatalogBackend interface {
	Products(ctx context.Context) ([]backend.Product, error)
	Product(ctx context.Context, id string) (*backend.Product, error)
	PlansByProduct(ctx context.Context, productID string) ([]backend.Plan, error)
	CalculatePremium(ctx context.Context, req backend.PremiumRequest) (float64, error)
}

// CatalogService serves the public product catalog and the standalone
// premium calculator. Calculator inputs are remembered per user so the page
// can restore them, but they never seed a wizard draft.
type CatalogService struct {
	api    CatalogBackend
	quotes repository.QuoteStore
}

func NewCatalogService(api CatalogBackend, quotes repository.QuoteStore) *CatalogService {
	return &CatalogService{api: api, quotes: quotes}
}

func (s *CatalogService) Products(ctx context.Context) ([]backend.Product, error) {
	return s.api.Products(ctx)
}

func (s *CatalogService) Product(ctx context.Context, id string) (*backend.Product, error) {
	return s.api.Product(ctx, id)
}

func (s *CatalogService) Plans(ctx context.Context, productID string) ([]backend.Plan, error) {
	return s.api.PlansByProduct(ctx, productID)
}

// Calculate prices a plan for ad-hoc calculator input and remembers the
// parameters. Persisting the params is best-effort.
func (s *CatalogService) Calculate(ctx context.Context, userID string, line domain.InsuranceLine, req backend.PremiumRequest) (float64, error) {
	req.PaymentFrequency = domain.NormalizeFrequency(string(req.PaymentFrequency))

	premium, err := s.api.CalculatePremium(ctx, req)
	if err != nil {
		return 0, err
	}

	if userID != "" {
		params := domain.CalculatorParams{
			PlanID:           req.PlanID,
			Line:             line,
			PaymentFrequency: req.PaymentFrequency,
			PremiumAmount:    premium,
			Source:           "calculator",
			CreatedAt:        time.Now().UnixMilli(),
		}
		if err := s.quotes.SaveCalculatorParams(ctx, userID, params); err != nil {
			log.Printf("[WARN] could not persist calculator params for user=%s: %v", userID, err)
		}
	}

	return premium, nil
}

// CalculatorParams returns the user's remembered calculator input, absent
// when there is none.
func (s *CatalogService) CalculatorParams(ctx context.Context, userID string) (*domain.CalculatorParams, error) {
	return s.quotes.LoadCalculatorParams(ctx, userID)
}
