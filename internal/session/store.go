// Package session implements opaque-token session storage backed by Redis.
// Tokens are random 256-bit values handed to clients in an HttpOnly cookie;
// Redis maps each token to a user ID with a TTL that renews on use, plus a
// per-user set of live tokens so all of a user's sessions can be ended at
// once.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/clairelorenzo/app-backend-6104/internal/observability"

	"github.com/redis/go-redis/v9"
)

const (
	tokenBytes    = 32
	keyPrefix     = "session:"
	userSetPrefix = "user_sessions:"
	defaultTTL    = 168 * time.Hour
	reasonLogout  = "logout"
	reasonEndAll  = "logout_all"
)

var (
	// ErrNotFound indicates the token does not map to a live session.
	ErrNotFound = errors.New("session not found")
	// ErrUnavailable indicates the backing Redis client is not connected.
	ErrUnavailable = errors.New("session store unavailable")
)

// Store manages session tokens in Redis.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore creates a session store with the given TTL. A non-positive TTL
// falls back to seven days.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{rdb: rdb, ttl: ttl}
}

// Available reports whether the store can reach Redis.
func (s *Store) Available() bool {
	return s.rdb != nil
}

// TTL returns the configured session lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Start creates a session for the user and returns the opaque token.
func (s *Store) Start(ctx context.Context, userID uint) (string, error) {
	if s.rdb == nil {
		return "", ErrUnavailable
	}

	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, sessionKey(token), strconv.FormatUint(uint64(userID), 10), s.ttl)
	pipe.SAdd(ctx, userSetKey(userID), token)
	// The set must outlive the longest session it tracks.
	pipe.Expire(ctx, userSetKey(userID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	observability.RecordSessionStart()
	return token, nil
}

// Resolve returns the user ID for a live session token. Each successful
// resolve pushes the session's expiry out by a full TTL, so sessions die
// from inactivity rather than on a fixed schedule.
func (s *Store) Resolve(ctx context.Context, token string) (uint, error) {
	if s.rdb == nil {
		return 0, ErrUnavailable
	}
	if token == "" {
		return 0, ErrNotFound
	}

	val, err := s.rdb.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("resolve session: %w", err)
	}

	parsed, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("corrupt session value %q: %w", val, err)
	}
	userID := uint(parsed)

	pipe := s.rdb.TxPipeline()
	pipe.Expire(ctx, sessionKey(token), s.ttl)
	pipe.Expire(ctx, userSetKey(userID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("refresh session: %w", err)
	}

	return userID, nil
}

// End terminates the session for the given token.
func (s *Store) End(ctx context.Context, token string) error {
	if s.rdb == nil {
		return ErrUnavailable
	}

	val, err := s.rdb.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, sessionKey(token))
	if userID, parseErr := strconv.ParseUint(val, 10, 32); parseErr == nil {
		pipe.SRem(ctx, userSetKey(uint(userID)), token)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("end session: %w", err)
	}

	observability.RecordSessionEnd(reasonLogout)
	return nil
}

// EndAll terminates every live session belonging to the user and returns how
// many were ended.
func (s *Store) EndAll(ctx context.Context, userID uint) (int, error) {
	if s.rdb == nil {
		return 0, ErrUnavailable
	}

	tokens, err := s.rdb.SMembers(ctx, userSetKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("list sessions: %w", err)
	}

	if len(tokens) == 0 {
		return 0, nil
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, sessionKey(token))
	}
	keys = append(keys, userSetKey(userID))

	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return 0, fmt.Errorf("end sessions: %w", err)
	}

	for range tokens {
		observability.RecordSessionEnd(reasonEndAll)
	}
	return len(tokens), nil
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func sessionKey(token string) string {
	return keyPrefix + token
}

func userSetKey(userID uint) string {
	return userSetPrefix + strconv.FormatUint(uint64(userID), 10)
}
