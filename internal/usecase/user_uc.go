package usecase

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"daily-chronicle-bot/internal/domain/model"
	"daily-chronicle-bot/internal/domain/ports/repository"
	"daily-chronicle-bot/internal/infra/logging"
)

// Compile-time check
var _ UserUseCase = (*userUC)(nil)

// UserUseCase exposes user-related operations used by the bot flows.
type UserUseCase interface {
	// RegisterOrFetch creates the user at first /start and returns the
	// stored record. Replays never overwrite the first-seen attributes.
	RegisterOrFetch(ctx context.Context, tgID int64, firstName, lastName string, isBot bool) (*model.User, error)
	GetByTgID(ctx context.Context, tgID int64) (*model.User, error)
	Count(ctx context.Context) (int, error)
}

type userUC struct {
	users repository.UserRepository
	log   *zerolog.Logger
}

func NewUserUseCase(users repository.UserRepository, logger *zerolog.Logger) *userUC {
	return &userUC{users: users, log: logger}
}

func (u *userUC) RegisterOrFetch(ctx context.Context, tgID int64, firstName, lastName string, isBot bool) (*model.User, error) {
	defer logging.TraceDuration(u.log, "UserUC.RegisterOrFetch")()

	nu, err := model.NewUser(strconv.FormatInt(tgID, 10), firstName, lastName, isBot)
	if err != nil {
		return nil, err
	}
	user, err := u.users.EnsureUser(ctx, nu)
	if err != nil {
		u.log.Error().Err(err).Int64("tg_id", tgID).Msg("failed to ensure user")
		return nil, err
	}
	return user, nil
}

func (u *userUC) GetByTgID(ctx context.Context, tgID int64) (*model.User, error) {
	defer logging.TraceDuration(u.log, "UserUC.GetByTgID")()
	return u.users.FindByTgID(ctx, strconv.FormatInt(tgID, 10))
}

func (u *userUC) Count(ctx context.Context) (int, error) {
	defer logging.TraceDuration(u.log, "UserUC.Count")()
	return u.users.CountUsers(ctx)
}
