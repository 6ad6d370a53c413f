package repository

import (
	"context"
	"time"

	"daily-chronicle-bot/internal/domain/model"
)

// -----------------------------
// Events
// -----------------------------

type EventRepository interface {
	// Create inserts a new event. Events are independent documents; two
	// concurrent inserts for the same owner never collide.
	Create(ctx context.Context, ev *model.Event) error
	// FindByOwnerBetween returns the owner's events with
	// from <= createdAt <= to, ordered by creation time ascending.
	FindByOwnerBetween(ctx context.Context, tgID string, from, to time.Time) ([]model.Event, error)
	CountByOwner(ctx context.Context, tgID string) (int, error)
}
