package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/havenmed/records-api/internal/repository"
)

const blacklistKeyPrefix = "token:blacklist:"

type tokenBlacklist struct {
	client *redis.Client
}

// NewTokenBlacklist connects to Redis and returns a refresh-token
// blacklist. Entries expire together with the token they revoke.
func NewTokenBlacklist(url string) (repository.TokenBlacklist, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &tokenBlacklist{client: client}, nil
}

// NewTokenBlacklistWithClient wraps an existing client, used by tests
func NewTokenBlacklistWithClient(client *redis.Client) repository.TokenBlacklist {
	return &tokenBlacklist{client: client}
}

// Blacklist marks the token revoked. SETNX makes the operation
// check-and-set: the second of two concurrent revocations gets false.
func (b *tokenBlacklist) Blacklist(ctx context.Context, token string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		// token already expired on its own; nothing to revoke
		return false, nil
	}
	ok, err := b.client.SetNX(ctx, blacklistKey(token), 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to blacklist token: %w", err)
	}
	return ok, nil
}

func (b *tokenBlacklist) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return n > 0, nil
}

// blacklistKey hashes the token so raw credentials never land in Redis
func blacklistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return blacklistKeyPrefix + hex.EncodeToString(sum[:])
}
