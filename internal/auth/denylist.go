package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Denylist records revoked token IDs until they expire.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// NopDenylist never revokes anything.
type NopDenylist struct{}

func (NopDenylist) Revoke(context.Context, string, time.Duration) error { return nil }

func (NopDenylist) IsRevoked(context.Context, string) (bool, error) { return false, nil }

// MemoryDenylist keeps revocations in process memory. It is used when Redis is
// disabled; revocations do not survive a restart or span replicas.
type MemoryDenylist struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryDenylist creates an empty in-process denylist.
func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke records tokenID until ttl elapses.
func (d *MemoryDenylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for id, until := range d.entries {
		if !now.Before(until) {
			delete(d.entries, id)
		}
	}
	d.entries[tokenID] = now.Add(ttl)
	return nil
}

// IsRevoked reports whether tokenID is still on the list.
func (d *MemoryDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	until, ok := d.entries[tokenID]
	return ok && d.now().Before(until), nil
}

// redisKeyPrefix namespaces revoked token IDs.
const redisKeyPrefix = "marketplace:revoked:"

// RedisDenylist stores revocations in Redis with a TTL matching the token expiry.
type RedisDenylist struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisDenylist wraps an existing Redis client.
func NewRedisDenylist(client *redis.Client, logger zerolog.Logger) *RedisDenylist {
	return &RedisDenylist{
		client: client,
		logger: logger.With().Str("component", "token-denylist").Logger(),
	}
}

// Revoke writes tokenID with the given TTL.
func (d *RedisDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := d.client.Set(ctx, redisKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		d.logger.Error().Err(err).Str("token_id", tokenID).Msg("failed to revoke token")
		return fmt.Errorf("failed to write revocation: %w", err)
	}

	d.logger.Debug().Str("token_id", tokenID).Dur("ttl", ttl).Msg("token revoked")
	return nil
}

// IsRevoked checks whether tokenID has been written.
func (d *RedisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, redisKeyPrefix+tokenID).Result()
	if err != nil {
		d.logger.Error().Err(err).Str("token_id", tokenID).Msg("failed to check revocation")
		return false, fmt.Errorf("failed to read revocation: %w", err)
	}
	return n > 0, nil
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int, logger zerolog.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info().Str("addr", addr).Int("db", db).Msg("redis connection established")
	return client, nil
}
