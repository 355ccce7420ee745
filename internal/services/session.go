package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// SessionDuration is 7 days.
	SessionDuration = 7 * 24 * time.Hour
	// SessionKeyPrefix is the Redis key prefix for sessions.
	SessionKeyPrefix = "session:"
	// UserSessionKeyPrefix is the Redis key prefix for the user->session mapping.
	UserSessionKeyPrefix = "user_session:"
)

// Sessions stores login sessions in Redis, keyed by an opaque token mapping
// back to the user's email.
type Sessions struct {
	rdb *redis.Client
}

func NewSessions(rdb *redis.Client) *Sessions {
	return &Sessions{rdb: rdb}
}

// Create issues a new session token for a user. An existing session for the
// same user is invalidated first so the 7-day timer resets on each login.
func (s *Sessions) Create(ctx context.Context, email string) (string, error) {
	s.InvalidateUser(ctx, email)

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	if err := s.rdb.Set(ctx, SessionKeyPrefix+token, email, SessionDuration).Err(); err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, UserSessionKeyPrefix+email, token, SessionDuration).Err(); err != nil {
		return "", err
	}

	return token, nil
}

// Validate returns the email behind a session token, if any.
func (s *Sessions) Validate(ctx context.Context, token string) (string, bool) {
	if token == "" {
		return "", false
	}
	email, err := s.rdb.Get(ctx, SessionKeyPrefix+token).Result()
	if err != nil || email == "" {
		return "", false
	}
	return email, true
}

// Invalidate removes a session by token.
func (s *Sessions) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	email, err := s.rdb.Get(ctx, SessionKeyPrefix+token).Result()
	if err == nil && email != "" {
		s.rdb.Del(ctx, UserSessionKeyPrefix+email)
	}
	return s.rdb.Del(ctx, SessionKeyPrefix+token).Err()
}

// InvalidateUser removes a user's current session, if any.
func (s *Sessions) InvalidateUser(ctx context.Context, email string) error {
	token, err := s.rdb.Get(ctx, UserSessionKeyPrefix+email).Result()
	if err == nil && token != "" {
		s.rdb.Del(ctx, SessionKeyPrefix+token)
	}
	return s.rdb.Del(ctx, UserSessionKeyPrefix+email).Err()
}
