package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"daily-chronicle-bot/internal/domain"
)

// Event is one free-text record a user sent during their day. Events are
// insert-only: never updated, never deleted, queried by owner and day.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TgID      string             `bson:"tgId" json:"tgId"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func NewEvent(tgID, text string) (*Event, error) {
	if tgID == "" || text == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Event{TgID: tgID, Text: text}, nil
}
