package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"daily-chronicle-bot/internal/domain/model"
	"daily-chronicle-bot/internal/domain/ports/repository"
	"daily-chronicle-bot/internal/infra/logging"
	"daily-chronicle-bot/internal/infra/metrics"
)

// Compile-time check
var _ EventUseCase = (*eventUC)(nil)

// EventUseCase records day events and reads them back per calendar day.
type EventUseCase interface {
	Record(ctx context.Context, tgID int64, text string) (*model.Event, error)
	// ListForDay returns the user's events created within the local
	// calendar day containing `day`, ordered by creation time.
	ListForDay(ctx context.Context, tgID int64, day time.Time) ([]model.Event, error)
}

type eventUC struct {
	events repository.EventRepository
	log    *zerolog.Logger
}

func NewEventUseCase(events repository.EventRepository, logger *zerolog.Logger) *eventUC {
	return &eventUC{events: events, log: logger}
}

func (e *eventUC) Record(ctx context.Context, tgID int64, text string) (*model.Event, error) {
	defer logging.TraceDuration(e.log, "EventUC.Record")()

	ev, err := model.NewEvent(strconv.FormatInt(tgID, 10), text)
	if err != nil {
		return nil, err
	}
	if err := e.events.Create(ctx, ev); err != nil {
		e.log.Error().Err(err).Int64("tg_id", tgID).Msg("failed to store event")
		return nil, err
	}
	metrics.IncEventStored()
	return ev, nil
}

func (e *eventUC) ListForDay(ctx context.Context, tgID int64, day time.Time) ([]model.Event, error) {
	defer logging.TraceDuration(e.log, "EventUC.ListForDay")()

	from, to := DayWindow(day)
	return e.events.FindByOwnerBetween(ctx, strconv.FormatInt(tgID, 10), from, to)
}

// DayWindow returns [00:00:00.000, 23:59:59.999] of t's calendar day in
// t's location. The instant is a parameter so a per-user timezone could be
// threaded through without touching the query.
func DayWindow(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	end := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
	return start, end
}
