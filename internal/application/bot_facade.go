package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"daily-chronicle-bot/internal/domain"
	"daily-chronicle-bot/internal/usecase"
)

// Fixed reply texts. The chat adapter forwards these verbatim.
const (
	noEventsReply = "No event for the day. Keep adding events to generate."
	notedReply    = "Noted 👍, Keep texting me your thoughts. To generate the posts. simply enter the command: /generate"

	welcomeTemplate = `👋 Welcome to DailyChronicleBot! %s,

🌟 Hey! I'm thrilled to welcome you to DailyChronicleBot – your personal day companion right here on Telegram. 🚀

📝 Let's embark on a journey together where keeping track of your daily activities is as easy as having a conversation. Just chat with me, and I'll help you record your adventures, achievements, and everything in between.

✨ At the end of the day, I'll weave your day's events into a beautifully crafted social media post, making sure your moments worth sharing shine bright.
🎉`
)

// BotFacade composes usecases into high-level bot commands.
// Keep the facade methods returning strings so the Telegram adapter just
// forwards them to the chat.
type BotFacade struct {
	UserUC  usecase.UserUseCase
	EventUC usecase.EventUseCase
	PostUC  usecase.PostUseCase
}

func NewBotFacade(userUC usecase.UserUseCase, eventUC usecase.EventUseCase, postUC usecase.PostUseCase) *BotFacade {
	return &BotFacade{
		UserUC:  userUC,
		EventUC: eventUC,
		PostUC:  postUC,
	}
}

// HandleStart registers the user on first contact and returns the welcome
// text. Replays are harmless: the stored record keeps its original
// attributes.
func (b *BotFacade) HandleStart(ctx context.Context, tgID int64, firstName, lastName string, isBot bool) (string, error) {
	if b.UserUC == nil {
		return "", fmt.Errorf("user usecase not available")
	}
	u, err := b.UserUC.RegisterOrFetch(ctx, tgID, firstName, lastName, isBot)
	if err != nil {
		return "", fmt.Errorf("register/fetch user: %w", err)
	}
	return fmt.Sprintf(welcomeTemplate, u.FirstName), nil
}

// HandleGenerate synthesizes the post for the caller's current calendar
// day. An empty day maps to the fixed no-events notice without touching
// the synthesizer; any other failure propagates to the adapter.
func (b *BotFacade) HandleGenerate(ctx context.Context, tgID int64) (string, error) {
	if b.PostUC == nil {
		return "", fmt.Errorf("post usecase not available")
	}
	text, err := b.PostUC.GeneratePost(ctx, tgID, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNoEvents) {
			return noEventsReply, nil
		}
		return "", fmt.Errorf("generate post: %w", err)
	}
	return text, nil
}

// HandleText records a plain-text message as a day event and returns the
// fixed acknowledgment.
func (b *BotFacade) HandleText(ctx context.Context, tgID int64, text string) (string, error) {
	if b.EventUC == nil {
		return "", fmt.Errorf("event usecase not available")
	}
	if _, err := b.EventUC.Record(ctx, tgID, text); err != nil {
		return "", fmt.Errorf("record event: %w", err)
	}
	return notedReply, nil
}
