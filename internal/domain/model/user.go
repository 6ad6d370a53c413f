package model

import (
	"time"

	"daily-chronicle-bot/internal/domain"
)

// User is a domain entity representing a Telegram user in our system.
// TgID is the Telegram-assigned numeric identifier stored as text; it is
// unique and immutable after the first /start.
//
// Username carries the first name rather than the Telegram handle. The
// users collection has a unique index on it, so the source field is kept
// as-is to preserve the uniqueness behavior.
//
// PromptTokens and CompletionTokens are part of the stored schema but are
// not written by any flow today.
type User struct {
	TgID             string    `bson:"tgId" json:"tgId"`
	FirstName        string    `bson:"firstName" json:"firstName"`
	LastName         string    `bson:"lastName" json:"lastName"`
	IsBot            bool      `bson:"isBot" json:"isBot"`
	Username         string    `bson:"username" json:"username"`
	PromptTokens     int       `bson:"promptTokens,omitempty" json:"promptTokens,omitempty"`
	CompletionTokens int       `bson:"completionTokens,omitempty" json:"completionTokens,omitempty"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updatedAt"`
}

func NewUser(tgID, firstName, lastName string, isBot bool) (*User, error) {
	if tgID == "" {
		return nil, domain.ErrInvalidArgument
	}
	if firstName == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &User{
		TgID:      tgID,
		FirstName: firstName,
		LastName:  lastName,
		IsBot:     isBot,
		Username:  firstName,
	}, nil
}

func (u *User) IsZero() bool { return u == nil || u.TgID == "" }
