package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"nyumbaBack/internal/models"
)

func newTestStore(t *testing.T) *SessionStore {
	t.Helper()
	mr := miniredis.RunT(t)
	return &SessionStore{Rdb: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
}

func TestCheckResetCodeBoundedAttempts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	const phone = "237650000001"

	if err := s.SaveResetCode(ctx, phone, "1234", 15*time.Minute); err != nil {
		t.Fatalf("SaveResetCode: %v", err)
	}

	for i := 0; i < maxCodeAttempts; i++ {
		if err := s.CheckResetCode(ctx, phone, "0000"); !errors.Is(err, models.ErrInvalidCode) {
			t.Fatalf("attempt %d: err = %v, want ErrInvalidCode", i+1, err)
		}
	}

	// the code is burned; even the right guess no longer works
	if err := s.CheckResetCode(ctx, phone, "1234"); !errors.Is(err, models.ErrInvalidCode) {
		t.Errorf("after %d misses err = %v, want ErrInvalidCode", maxCodeAttempts, err)
	}
}

func TestCheckResetCodeSurvivesFewMisses(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	const phone = "237650000002"

	if err := s.SaveResetCode(ctx, phone, "4321", 15*time.Minute); err != nil {
		t.Fatalf("SaveResetCode: %v", err)
	}
	for i := 0; i < maxCodeAttempts-1; i++ {
		s.CheckResetCode(ctx, phone, "0000")
	}
	if err := s.CheckResetCode(ctx, phone, "4321"); err != nil {
		t.Errorf("correct code after %d misses: %v", maxCodeAttempts-1, err)
	}
}

func TestCheckVerificationCodeConsumedOnMatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	const phone = "237650000003"

	if err := s.SaveVerificationCode(ctx, phone, "7777", 10*time.Minute); err != nil {
		t.Fatalf("SaveVerificationCode: %v", err)
	}
	if err := s.CheckVerificationCode(ctx, phone, "7777"); err != nil {
		t.Fatalf("CheckVerificationCode: %v", err)
	}
	if err := s.CheckVerificationCode(ctx, phone, "7777"); !errors.Is(err, models.ErrInvalidCode) {
		t.Errorf("replayed code err = %v, want ErrInvalidCode", err)
	}
}
