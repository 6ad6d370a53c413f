package telegram

import (
	"context"
	"errors"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"daily-chronicle-bot/internal/application"
	"daily-chronicle-bot/internal/config"
	"daily-chronicle-bot/internal/infra/metrics"
)

// Generic failure replies, forwarded verbatim.
const (
	tryAgainReply    = "There is something wrong please try again later."
	serverErrorReply = "Something went wrong in server."
)

// RealBotAdapter uses tgbotapi to receive updates and delegates to BotFacade.
// Updates arrive either from long polling or, in webhook mode, from the
// HTTP server feeding HandleUpdate directly.
type RealBotAdapter struct {
	bot    *tgbotapi.BotAPI
	cfg    *config.BotConfig
	facade *application.BotFacade
	log    *zerolog.Logger

	updateWorkers int
	cancelPolling context.CancelFunc
}

func NewRealBotAdapter(cfg *config.BotConfig, facade *application.BotFacade, logger *zerolog.Logger) (*RealBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	if facade == nil {
		return nil, errors.New("bot facade is nil")
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 5
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}

	return &RealBotAdapter{
		bot:           bot,
		cfg:           cfg,
		facade:        facade,
		log:           logger,
		updateWorkers: workers,
	}, nil
}

func (r *RealBotAdapter) StartPolling(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := r.bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	r.cancelPolling = cancel

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < r.updateWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case up := <-updateChan:
					if err := r.HandleUpdate(ctx, up); err != nil {
						r.log.Error().Err(err).Int("worker", id).Msg("update handling failed")
					}
				}
			}
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			r.bot.StopReceivingUpdates()
			close(updateChan)
			wg.Wait()
			return ctx.Err()
		case up := <-updates:
			updateChan <- up
		}
	}
}

func (r *RealBotAdapter) StopPolling() {
	if r.cancelPolling != nil {
		r.cancelPolling()
	}
}

// SendMessage sends a plain text reply to the chat.
func (r *RealBotAdapter) SendMessage(ctx context.Context, tgID int64, text string) error {
	msg := tgbotapi.NewMessage(tgID, text)
	_, err := r.bot.Send(msg)
	return err
}

// updateKind classifies an update the way the dispatcher routes it.
func updateKind(msg *tgbotapi.Message) string {
	switch {
	case msg == nil || msg.From == nil:
		return ""
	case msg.IsCommand() && msg.Command() == "start":
		return "start"
	case msg.IsCommand() && msg.Command() == "generate":
		return "generate"
	case msg.IsCommand():
		// unknown commands fall through to the event recorder, same as any text
		return "text"
	case msg.Text != "":
		return "text"
	default:
		return ""
	}
}

// HandleUpdate routes one inbound update to exactly one handler. Each
// handler persists what it needs and replies; handler failures are mapped
// to the generic user-facing replies here and still returned to the
// caller for logging.
func (r *RealBotAdapter) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	msg := update.Message
	kind := updateKind(msg)
	if kind == "" {
		return nil
	}
	tgID := msg.From.ID

	switch kind {
	case "start":
		text, err := r.facade.HandleStart(ctx, tgID, msg.From.FirstName, msg.From.LastName, msg.From.IsBot)
		metrics.IncUpdate(kind, err == nil)
		if err != nil {
			_ = r.SendMessage(ctx, tgID, tryAgainReply)
			return err
		}
		return r.SendMessage(ctx, tgID, text)

	case "generate":
		text, err := r.facade.HandleGenerate(ctx, tgID)
		metrics.IncUpdate(kind, err == nil)
		if err != nil {
			_ = r.SendMessage(ctx, tgID, tryAgainReply)
			return err
		}
		return r.SendMessage(ctx, tgID, text)

	default:
		text, err := r.facade.HandleText(ctx, tgID, msg.Text)
		metrics.IncUpdate(kind, err == nil)
		if err != nil {
			_ = r.SendMessage(ctx, tgID, serverErrorReply)
			return err
		}
		return r.SendMessage(ctx, tgID, text)
	}
}
