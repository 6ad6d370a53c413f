package usecase

import (
	"context"
	"errors"
	"testing"

	"daily-chronicle-bot/internal/domain"
)

func TestUserUseCase_RegisterOrFetch(t *testing.T) {
	ctx := context.Background()
	testLogger := newTestLogger()

	t.Run("should register a new user with username mirroring first name", func(t *testing.T) {
		mockUserRepo := newMemUserRepo()
		uc := NewUserUseCase(mockUserRepo, testLogger)

		u, err := uc.RegisterOrFetch(ctx, 12345, "Alice", "Smith", false)
		if err != nil {
			t.Fatalf("RegisterOrFetch failed: %v", err)
		}
		if u.TgID != "12345" {
			t.Errorf("expected tgId '12345', got %q", u.TgID)
		}
		if u.Username != "Alice" {
			t.Errorf("expected username 'Alice', got %q", u.Username)
		}
	})

	t.Run("should be idempotent: replay keeps first-seen attributes", func(t *testing.T) {
		mockUserRepo := newMemUserRepo()
		uc := NewUserUseCase(mockUserRepo, testLogger)

		if _, err := uc.RegisterOrFetch(ctx, 12345, "Alice", "Smith", false); err != nil {
			t.Fatalf("first RegisterOrFetch failed: %v", err)
		}
		got, err := uc.RegisterOrFetch(ctx, 12345, "Mallory", "Evil", true)
		if err != nil {
			t.Fatalf("second RegisterOrFetch failed: %v", err)
		}
		if got.FirstName != "Alice" || got.LastName != "Smith" || got.IsBot {
			t.Errorf("replay overwrote attributes: %+v", got)
		}
		if n, _ := uc.Count(ctx); n != 1 {
			t.Errorf("expected exactly one user record, got %d", n)
		}
	})

	t.Run("should reject invalid telegram profiles", func(t *testing.T) {
		uc := NewUserUseCase(newMemUserRepo(), testLogger)
		if _, err := uc.RegisterOrFetch(ctx, 12345, "", "", false); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("should propagate error on repository failure", func(t *testing.T) {
		mockUserRepo := newMemUserRepo()
		expectedErr := errors.New("database is down")
		mockUserRepo.ensureErr = expectedErr
		uc := NewUserUseCase(mockUserRepo, testLogger)

		_, err := uc.RegisterOrFetch(ctx, 12345, "Alice", "", false)
		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error to wrap %v, got %v", expectedErr, err)
		}
	})

	t.Run("should report missing users", func(t *testing.T) {
		uc := NewUserUseCase(newMemUserRepo(), testLogger)
		if _, err := uc.GetByTgID(ctx, 404); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
