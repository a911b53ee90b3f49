package repository

import (
	"context"
	"sync"
	"time"

	"portal-service/internal/domain"
)

// MemoryQuoteStore is an in-process QuoteStore with the same expiry and
// degrade-to-absent semantics as the redis-backed store. Used in tests and
// as a fallback when no redis is configured.
type MemoryQuoteStore struct {
	mu         sync.Mutex
	seeds      map[string]domain.QuoteSeed
	calculator map[string]domain.CalculatorParams

	// Now is swappable so expiry behaviour can be tested.
	Now func() time.Time
}

func NewMemoryQuoteStore() *MemoryQuoteStore {
	return &MemoryQuoteStore{
		seeds:      make(map[string]domain.QuoteSeed),
		calculator: make(map[string]domain.CalculatorParams),
		Now:        time.Now,
	}
}

func (s *MemoryQuoteStore) Save(_ context.Context, userID string, line domain.InsuranceLine, seed domain.QuoteSeed) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seed.CreatedAt == 0 {
		seed.CreatedAt = s.Now().UnixMilli()
	}
	s.seeds[quoteKey(userID, line)] = seed
	return nil
}

func (s *MemoryQuoteStore) Load(_ context.Context, userID string, line domain.InsuranceLine) (*domain.QuoteSeed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := quoteKey(userID, line)
	seed, ok := s.seeds[key]
	if !ok {
		return nil, nil
	}
	if seed.Expired(s.Now()) {
		delete(s.seeds, key)
		return nil, nil
	}
	return &seed, nil
}

func (s *MemoryQuoteStore) Clear(_ context.Context, userID string, line domain.InsuranceLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.seeds, quoteKey(userID, line))
	return nil
}

func (s *MemoryQuoteStore) SaveCalculatorParams(_ context.Context, userID string, params domain.CalculatorParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if params.CreatedAt == 0 {
		params.CreatedAt = s.Now().UnixMilli()
	}
	s.calculator[userID] = params
	return nil
}

func (s *MemoryQuoteStore) LoadCalculatorParams(_ context.Context, userID string) (*domain.CalculatorParams, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	params, ok := s.calculator[userID]
	if !ok {
		return nil, nil
	}
	return &params, nil
}
