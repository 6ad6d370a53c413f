package repository

import (
	"context"

	"daily-chronicle-bot/internal/domain/model"
)

// -----------------------------
// Users
// -----------------------------

type UserRepository interface {
	// EnsureUser creates the user if no record with the same TgID exists,
	// otherwise returns the existing record untouched. Attributes of an
	// existing user are never overwritten.
	EnsureUser(ctx context.Context, u *model.User) (*model.User, error)
	FindByTgID(ctx context.Context, tgID string) (*model.User, error)
	CountUsers(ctx context.Context) (int, error)
}
