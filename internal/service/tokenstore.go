package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TokenStore keeps short-lived auth state: revoked session ids and
// password reset tokens.
type TokenStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	SaveResetToken(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error
	// ConsumeResetToken returns the owner of token and deletes it, so each
	// token works once.
	ConsumeResetToken(ctx context.Context, token string) (uuid.UUID, error)
}

const (
	revokedKeyPrefix = "diacare:session:revoked:"
	resetKeyPrefix   = "diacare:password-reset:"
)

// RedisTokenStore implements TokenStore on Redis with key expiry.
type RedisTokenStore struct {
	redis *redis.Client
}

// NewRedisTokenStore creates a RedisTokenStore.
func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{redis: client}
}

// Revoke marks jti as revoked until ttl elapses.
func (s *RedisTokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.redis.Set(ctx, revokedKeyPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// IsRevoked reports whether jti was revoked.
func (s *RedisTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.redis.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session: %w", err)
	}
	return n > 0, nil
}

// SaveResetToken stores a hash of token pointing at userID.
func (s *RedisTokenStore) SaveResetToken(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	if err := s.redis.Set(ctx, resetKey(token), userID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to save reset token: %w", err)
	}
	return nil
}

// ConsumeResetToken implements TokenStore.
func (s *RedisTokenStore) ConsumeResetToken(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := s.redis.GetDel(ctx, resetKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, ErrInvalidToken
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to read reset token: %w", err)
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}

// resetKey holds a hash of the token, never the token itself.
func resetKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return resetKeyPrefix + hex.EncodeToString(sum[:])
}
