package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"nyumbaBack/internal/models"
)

// SessionStore keeps opaque session tokens and short-lived SMS codes in
// Redis. Expiry is enforced by key TTL, so a hit always means a live session.
type SessionStore struct {
	Rdb *redis.Client
}

func sessionKey(token string) string {
	return "session:" + token
}

func verifyKey(phone string) string {
	return "verify:" + phone
}

func resetKey(phone string) string {
	return "reset:" + phone
}

func attemptsKey(codeKey string) string {
	return codeKey + ":attempts"
}

// maxCodeAttempts bounds guesses per issued SMS code.
const maxCodeAttempts = 5

func (s *SessionStore) SaveSession(ctx context.Context, session models.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.Rdb.Set(ctx, sessionKey(session.Token), data, ttl).Err()
}

func (s *SessionStore) GetSession(ctx context.Context, token string) (models.Session, error) {
	data, err := s.Rdb.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Session{}, models.ErrSessionNotFound
		}
		return models.Session{}, err
	}
	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func (s *SessionStore) DeleteSession(ctx context.Context, token string) error {
	return s.Rdb.Del(ctx, sessionKey(token)).Err()
}

func (s *SessionStore) SaveVerificationCode(ctx context.Context, phone, code string, ttl time.Duration) error {
	return s.Rdb.Set(ctx, verifyKey(phone), code, ttl).Err()
}

func (s *SessionStore) CheckVerificationCode(ctx context.Context, phone, code string) error {
	return s.checkCode(ctx, verifyKey(phone), code, true)
}

func (s *SessionStore) SaveResetCode(ctx context.Context, phone, code string, ttl time.Duration) error {
	return s.Rdb.Set(ctx, resetKey(phone), code, ttl).Err()
}

func (s *SessionStore) CheckResetCode(ctx context.Context, phone, code string) error {
	// not consumed on match; the reset flow re-checks the code when the new
	// password arrives and deletes it afterwards
	return s.checkCode(ctx, resetKey(phone), code, false)
}

func (s *SessionStore) DeleteResetCode(ctx context.Context, phone string) error {
	return s.Rdb.Del(ctx, resetKey(phone), attemptsKey(resetKey(phone))).Err()
}

// checkCode compares a stored SMS code with bounded attempts. A 4-digit code
// could otherwise be brute-forced within its TTL; after maxCodeAttempts
// mismatches the code itself is burned and a fresh one must be requested.
func (s *SessionStore) checkCode(ctx context.Context, key, code string, consume bool) error {
	stored, err := s.Rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.ErrInvalidCode
		}
		return err
	}
	if stored != code {
		attempts, err := s.Rdb.Incr(ctx, attemptsKey(key)).Result()
		if err != nil {
			return err
		}
		if attempts == 1 {
			if ttl, err := s.Rdb.TTL(ctx, key).Result(); err == nil && ttl > 0 {
				s.Rdb.Expire(ctx, attemptsKey(key), ttl)
			}
		}
		if attempts >= maxCodeAttempts {
			s.Rdb.Del(ctx, key, attemptsKey(key))
		}
		return models.ErrInvalidCode
	}
	if consume {
		return s.Rdb.Del(ctx, key, attemptsKey(key)).Err()
	}
	return nil
}
