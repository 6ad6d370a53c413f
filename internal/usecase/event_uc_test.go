package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"daily-chronicle-bot/internal/domain"
	"daily-chronicle-bot/internal/domain/model"
)

func TestDayWindow(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	now := time.Date(2024, 3, 10, 14, 33, 12, 0, loc)

	from, to := DayWindow(now)

	if want := time.Date(2024, 3, 10, 0, 0, 0, 0, loc); !from.Equal(want) {
		t.Errorf("window start: got %v, want %v", from, want)
	}
	if want := time.Date(2024, 3, 10, 23, 59, 59, int(999*time.Millisecond), loc); !to.Equal(want) {
		t.Errorf("window end: got %v, want %v", to, want)
	}
	if from.Location() != loc || to.Location() != loc {
		t.Error("window must stay in the instant's location")
	}
}

func TestEventUseCase_Record(t *testing.T) {
	ctx := context.Background()
	testLogger := newTestLogger()

	t.Run("should store the event for the sender", func(t *testing.T) {
		repo := newMemEventRepo()
		uc := NewEventUseCase(repo, testLogger)

		ev, err := uc.Record(ctx, 12345, "had coffee with a friend")
		if err != nil {
			t.Fatalf("Record failed: %v", err)
		}
		if ev.TgID != "12345" {
			t.Errorf("expected owner '12345', got %q", ev.TgID)
		}
		if cnt, _ := repo.CountByOwner(ctx, "12345"); cnt != 1 {
			t.Errorf("expected 1 stored event, got %d", cnt)
		}
	})

	t.Run("should reject empty text", func(t *testing.T) {
		uc := NewEventUseCase(newMemEventRepo(), testLogger)
		if _, err := uc.Record(ctx, 12345, ""); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("should propagate store failures", func(t *testing.T) {
		repo := newMemEventRepo()
		expectedErr := errors.New("insert failed")
		repo.createErr = expectedErr
		uc := NewEventUseCase(repo, testLogger)

		if _, err := uc.Record(ctx, 12345, "anything"); !errors.Is(err, expectedErr) {
			t.Errorf("expected error to wrap %v, got %v", expectedErr, err)
		}
	})

	t.Run("concurrent records become distinct events", func(t *testing.T) {
		repo := newMemEventRepo()
		uc := NewEventUseCase(repo, testLogger)

		const n = 25
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := uc.Record(ctx, 12345, "parallel note"); err != nil {
					t.Errorf("Record failed: %v", err)
				}
			}()
		}
		wg.Wait()

		if cnt, _ := repo.CountByOwner(ctx, "12345"); cnt != n {
			t.Errorf("expected %d events, got %d", n, cnt)
		}
	})
}

func TestEventUseCase_ListForDay(t *testing.T) {
	ctx := context.Background()
	testLogger := newTestLogger()

	repo := newMemEventRepo()
	uc := NewEventUseCase(repo, testLogger)

	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	seed := func(tgID string, text string, at time.Time) {
		t.Helper()
		ev, err := model.NewEvent(tgID, text)
		if err != nil {
			t.Fatalf("NewEvent failed: %v", err)
		}
		ev.CreatedAt = at
		if err := repo.Create(ctx, ev); err != nil {
			t.Fatalf("seed event: %v", err)
		}
	}

	seed("777", "morning run", day.Add(7*time.Hour))
	seed("777", "lunch demo", day.Add(12*time.Hour))
	seed("777", "too late", day.Add(24*time.Hour)) // next day 00:00
	seed("777", "too early", day.Add(-time.Millisecond))
	seed("999", "someone else", day.Add(9*time.Hour))

	got, err := uc.ListForDay(ctx, 777, day.Add(15*time.Hour))
	if err != nil {
		t.Fatalf("ListForDay failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d: %+v", len(got), got)
	}
	if got[0].Text != "morning run" || got[1].Text != "lunch demo" {
		t.Errorf("wrong events or order: %+v", got)
	}
}
