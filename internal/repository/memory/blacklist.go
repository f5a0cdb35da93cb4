package memory

import (
	"context"
	"sync"
	"time"

	"github.com/havenmed/records-api/internal/repository"
)

type blacklist struct {
	mu     sync.Mutex
	tokens map[string]time.Time
}

// NewTokenBlacklist returns an in-memory check-and-set blacklist with
// the same semantics as the redis implementation.
func NewTokenBlacklist() repository.TokenBlacklist {
	return &blacklist{tokens: make(map[string]time.Time)}
}

func (b *blacklist) Blacklist(_ context.Context, token string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if exp, ok := b.tokens[token]; ok && time.Now().Before(exp) {
		return false, nil
	}
	b.tokens[token] = time.Now().Add(ttl)
	return true, nil
}

func (b *blacklist) IsBlacklisted(_ context.Context, token string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	exp, ok := b.tokens[token]
	if !ok {
		return false, nil
	}
	if time.Now().After(exp) {
		delete(b.tokens, token)
		return false, nil
	}
	return true, nil
}
