package repository

import (
	"context"
	"log"
	"time"

	"portal-service/internal/domain"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// QuoteStore is the ephemeral tier of draft persistence: one quote seed per
// user per insurance line, expiring after domain.QuoteTTL. Every read path
// degrades to (nil, nil) on missing, malformed or expired entries so the
// wizard can always fall through to the next restoration source.
type QuoteStore interface {
	Save(ctx context.Context, userID string, line domain.InsuranceLine, seed domain.QuoteSeed) error
	Load(ctx context.Context, userID string, line domain.InsuranceLine) (*domain.QuoteSeed, error)
	Clear(ctx context.Context, userID string, line domain.InsuranceLine) error

	SaveCalculatorParams(ctx context.Context, userID string, params domain.CalculatorParams) error
	LoadCalculatorParams(ctx context.Context, userID string) (*domain.CalculatorParams, error)
}

const (
	quotePrefix      = "quote"
	calculatorPrefix = "calculator"
)

type RedisQuoteStore struct {
	rdb *redis.Client
}

func NewRedisQuoteStore(rdb *redis.Client) *RedisQuoteStore {
	return &RedisQuoteStore{rdb: rdb}
}

func quoteKey(userID string, line domain.InsuranceLine) string {
	return quotePrefix + ":" + string(line) + ":" + userID
}

// Save overwrites any existing seed for the same user and line. The redis
// TTL mirrors the createdAt check on load; the timestamp stays authoritative
// so a seed written by an older client still expires correctly.
func (s *RedisQuoteStore) Save(ctx context.Context, userID string, line domain.InsuranceLine, seed domain.QuoteSeed) error {
	if seed.CreatedAt == 0 {
		seed.CreatedAt = time.Now().UnixMilli()
	}
	raw, err := json.Marshal(seed)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, quoteKey(userID, line), raw, domain.QuoteTTL).Err()
}

// Load returns the stored seed, or (nil, nil) when there is none worth
// using. Malformed and expired entries are deleted on sight.
func (s *RedisQuoteStore) Load(ctx context.Context, userID string, line domain.InsuranceLine) (*domain.QuoteSeed, error) {
	key := quoteKey(userID, line)

	raw, err := s.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		log.Printf("[WARN] quote store read failed for %s: %v", key, err)
		return nil, nil
	}

	var seed domain.QuoteSeed
	if err := json.Unmarshal([]byte(raw), &seed); err != nil {
		log.Printf("[WARN] malformed quote seed at %s, discarding: %v", key, err)
		_ = s.rdb.Del(ctx, key).Err()
		return nil, nil
	}

	if seed.Expired(time.Now()) {
		_ = s.rdb.Del(ctx, key).Err()
		return nil, nil
	}

	return &seed, nil
}

// Clear is idempotent; deleting an absent entry is not an error.
func (s *RedisQuoteStore) Clear(ctx context.Context, userID string, line domain.InsuranceLine) error {
	return s.rdb.Del(ctx, quoteKey(userID, line)).Err()
}

func (s *RedisQuoteStore) SaveCalculatorParams(ctx context.Context, userID string, params domain.CalculatorParams) error {
	if params.CreatedAt == 0 {
		params.CreatedAt = time.Now().UnixMilli()
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, calculatorPrefix+":"+userID, raw, domain.QuoteTTL).Err()
}

func (s *RedisQuoteStore) LoadCalculatorParams(ctx context.Context, userID string) (*domain.CalculatorParams, error) {
	key := calculatorPrefix + ":" + userID

	raw, err := s.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		log.Printf("[WARN] calculator params read failed for %s: %v", key, err)
		return nil, nil
	}

	var params domain.CalculatorParams
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		_ = s.rdb.Del(ctx, key).Err()
		return nil, nil
	}
	return &params, nil
}
