package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"daily-chronicle-bot/internal/domain"
	"daily-chronicle-bot/internal/domain/model"
)

func TestPostUseCase_GeneratePost(t *testing.T) {
	ctx := context.Background()
	testLogger := newTestLogger()
	day := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)

	seed := func(t *testing.T, repo *memEventRepo, tgID, text string, at time.Time) {
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

	t.Run("should not call the synthesizer when the day is empty", func(t *testing.T) {
		repo := newMemEventRepo()
		ai := &fakeAI{reply: "never used"}
		uc := NewPostUseCase(NewEventUseCase(repo, testLogger), ai, "gemini", "gemini-pro", testLogger)

		_, err := uc.GeneratePost(ctx, 777, day)
		if !errors.Is(err, domain.ErrNoEvents) {
			t.Fatalf("expected ErrNoEvents, got %v", err)
		}
		if ai.callCount() != 0 {
			t.Errorf("synthesizer must not be called for an empty day, got %d calls", ai.callCount())
		}
	})

	t.Run("should build the seeded conversation in order", func(t *testing.T) {
		repo := newMemEventRepo()
		seed(t, repo, "777", "finished the migration", day.Add(-8*time.Hour))
		seed(t, repo, "777", "team lunch", day.Add(-4*time.Hour))

		ai := &fakeAI{reply: "A **great** day!"}
		uc := NewPostUseCase(NewEventUseCase(repo, testLogger), ai, "gemini", "gemini-pro", testLogger)

		if _, err := uc.GeneratePost(ctx, 777, day); err != nil {
			t.Fatalf("GeneratePost failed: %v", err)
		}
		if ai.callCount() != 1 {
			t.Fatalf("expected 1 synthesizer call, got %d", ai.callCount())
		}

		msgs := ai.calls[0]
		if len(msgs) != 5 {
			t.Fatalf("expected 5 messages (2 events + instruction + ack + final), got %d", len(msgs))
		}
		if msgs[0].Content != "finished the migration" || msgs[1].Content != "team lunch" {
			t.Errorf("events missing or out of order: %+v", msgs[:2])
		}
		if !strings.Contains(msgs[2].Content, "content creator") || msgs[2].Role != "user" {
			t.Errorf("instruction turn wrong: %+v", msgs[2])
		}
		if msgs[3].Role != "model" || msgs[3].Content != "yes, i can." {
			t.Errorf("acknowledgment turn wrong: %+v", msgs[3])
		}
		if msgs[4].Role != "user" || msgs[4].Content != "Then please generate it more engaging?" {
			t.Errorf("final turn wrong: %+v", msgs[4])
		}
	})

	t.Run("should post-process markdown and entities", func(t *testing.T) {
		repo := newMemEventRepo()
		seed(t, repo, "777", "launched the bot", day.Add(-2*time.Hour))

		ai := &fakeAI{reply: "We shipped the &quot;bot&quot; today!\n\n- [ ] tell everyone"}
		uc := NewPostUseCase(NewEventUseCase(repo, testLogger), ai, "gemini", "gemini-pro", testLogger)

		got, err := uc.GeneratePost(ctx, 777, day)
		if err != nil {
			t.Fatalf("GeneratePost failed: %v", err)
		}
		if !strings.Contains(got, `We shipped the "bot" today!`) {
			t.Errorf("entities not decoded: %q", got)
		}
		if !strings.Contains(got, "tell everyone") || strings.Contains(got, "[ ]") {
			t.Errorf("checkbox item mangled: %q", got)
		}
	})

	t.Run("should surface synthesizer failures as errors", func(t *testing.T) {
		repo := newMemEventRepo()
		seed(t, repo, "777", "something happened", day.Add(-time.Hour))

		expectedErr := errors.New("quota exceeded")
		ai := &fakeAI{chatErr: expectedErr}
		uc := NewPostUseCase(NewEventUseCase(repo, testLogger), ai, "gemini", "gemini-pro", testLogger)

		if _, err := uc.GeneratePost(ctx, 777, day); !errors.Is(err, expectedErr) {
			t.Errorf("expected error to wrap %v, got %v", expectedErr, err)
		}
	})

	t.Run("should exclude other users and other days", func(t *testing.T) {
		repo := newMemEventRepo()
		seed(t, repo, "777", "mine today", day.Add(-time.Hour))
		seed(t, repo, "888", "not mine", day.Add(-time.Hour))
		seed(t, repo, "777", "mine yesterday", day.Add(-30*time.Hour))

		ai := &fakeAI{reply: "post"}
		uc := NewPostUseCase(NewEventUseCase(repo, testLogger), ai, "gemini", "gemini-pro", testLogger)

		if _, err := uc.GeneratePost(ctx, 777, day); err != nil {
			t.Fatalf("GeneratePost failed: %v", err)
		}
		msgs := ai.calls[0]
		for _, m := range msgs {
			if m.Content == "not mine" || m.Content == "mine yesterday" {
				t.Errorf("leaked event into prompt: %q", m.Content)
			}
		}
		if msgs[0].Content != "mine today" {
			t.Errorf("expected only today's own event first, got %+v", msgs[0])
		}
	})
}
