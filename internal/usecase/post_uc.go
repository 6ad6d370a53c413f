package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"daily-chronicle-bot/internal/domain"
	"daily-chronicle-bot/internal/domain/ports/adapter"
	"daily-chronicle-bot/internal/infra/logging"
	"daily-chronicle-bot/internal/infra/metrics"
	"daily-chronicle-bot/internal/textproc"
)

// Prompt texts carried over from the original bot, verbatim.
const (
	creatorPrompt = `Now Act in the role of a senor content creator. Your task? Write captivating posts for LinkedIn use all the above informaion and write a single post with all above information . Each post should be brimming with creativity, utilizing stickers, hashtags, and engaging content to captivate your audience's attention. Dive deep into the art of storytelling, infusing each word with purpose and flair from the above information. `
	modelAck      = "yes, i can."
	finalPrompt   = "Then please generate it more engaging?"
)

// Compile-time check
var _ PostUseCase = (*postUC)(nil)

// PostUseCase synthesizes a social-media post from a user's events of one
// calendar day.
type PostUseCase interface {
	// GeneratePost returns the post-processed text, or domain.ErrNoEvents
	// when the user has nothing recorded for the day. Provider failures
	// come back as plain errors; nothing is persisted.
	GeneratePost(ctx context.Context, tgID int64, now time.Time) (string, error)
}

type postUC struct {
	events   EventUseCase
	ai       adapter.AIServiceAdapter
	provider string
	model    string
	log      *zerolog.Logger
}

func NewPostUseCase(events EventUseCase, ai adapter.AIServiceAdapter, provider, model string, logger *zerolog.Logger) *postUC {
	return &postUC{
		events:   events,
		ai:       ai,
		provider: provider,
		model:    model,
		log:      logger,
	}
}

func (p *postUC) GeneratePost(ctx context.Context, tgID int64, now time.Time) (string, error) {
	defer logging.TraceDuration(p.log, "PostUC.GeneratePost")()

	events, err := p.events.ListForDay(ctx, tgID, now)
	if err != nil {
		metrics.IncPostGenerated("error")
		return "", err
	}
	if len(events) == 0 {
		metrics.IncPostGenerated("empty")
		return "", domain.ErrNoEvents
	}

	// Seeded two-turn conversation: every event plus the fixed instruction
	// as the first user turn, a canned acknowledgment from the model, then
	// the final instruction turn.
	msgs := make([]adapter.Message, 0, len(events)+3)
	for _, ev := range events {
		msgs = append(msgs, adapter.Message{Role: "user", Content: ev.Text})
	}
	msgs = append(msgs,
		adapter.Message{Role: "user", Content: creatorPrompt},
		adapter.Message{Role: "model", Content: modelAck},
		adapter.Message{Role: "user", Content: finalPrompt},
	)

	start := time.Now()
	text, usage, err := p.ai.ChatWithUsage(ctx, p.model, msgs)
	latency := int(time.Since(start).Milliseconds())
	metrics.ObserveChatUsage(p.provider, p.model, usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens, latency, err == nil)
	if err != nil {
		metrics.IncPostGenerated("error")
		p.log.Error().Err(err).Int64("tg_id", tgID).Msg("synthesizer call failed")
		return "", err
	}
	if text == "" {
		metrics.IncPostGenerated("error")
		return "", errors.New("synthesizer returned empty text")
	}

	metrics.IncPostGenerated("ok")
	return textproc.DecodeEntities(textproc.PlainText(text)), nil
}
