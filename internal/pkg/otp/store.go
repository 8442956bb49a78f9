// Package otp stores short-lived verification codes in Redis. Codes expire
// on their own; nothing is ever left behind for unfinished verifications.
package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

const codeLength = 6

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Issue generates a fresh numeric code for the given purpose and subject,
// replacing any previous one, and stores it with the configured TTL.
func (s *Store) Issue(ctx context.Context, purpose string, subject string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, key(purpose, subject), code, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store verification code: %w", err)
	}
	return code, nil
}

// Verify checks the submitted code and consumes it on success so it cannot
// be replayed. An expired or missing code simply does not match.
func (s *Store) Verify(ctx context.Context, purpose string, subject string, code string) (bool, error) {
	stored, err := s.rdb.Get(ctx, key(purpose, subject)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read verification code: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return false, nil
	}

	if err := s.rdb.Del(ctx, key(purpose, subject)).Err(); err != nil {
		return false, fmt.Errorf("failed to consume verification code: %w", err)
	}
	return true, nil
}

func key(purpose string, subject string) string {
	return fmt.Sprintf("otp:%s:%s", purpose, subject)
}

func generateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeLength; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%0*d", codeLength, n), nil
}
