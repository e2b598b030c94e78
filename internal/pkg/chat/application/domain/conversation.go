package chat

import (
	"time"

	"github.com/google/uuid"

	"go-pairchat/pkg/errors"
)

// Conversation is a 1:1 thread. Participants is stored normalized so that
// Participants[0] < Participants[1]; the pair is unique across conversations.
type Conversation struct {
	ID           string
	Participants [2]string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewConversation opens a conversation between two distinct users.
func NewConversation(a, b string, now time.Time) (Conversation, error) {
	if a == "" || b == "" {
		return Conversation{}, errors.ErrParticipantRequired
	}
	if a == b {
		return Conversation{}, errors.ErrSelfConversation
	}
	now = now.UTC().Truncate(time.Microsecond)
	return Conversation{
		ID:           uuid.NewString(),
		Participants: Pair(a, b),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Pair returns the two ids in canonical order.
func Pair(a, b string) [2]string {
	if b < a {
		return [2]string{b, a}
	}
	return [2]string{a, b}
}

func (c Conversation) HasParticipant(userID string) bool {
	return userID != "" && (c.Participants[0] == userID || c.Participants[1] == userID)
}

// Summary is a conversation as it appears in a participant's inbox.
type Summary struct {
	Conversation Conversation
	LastMessage  *Message
}
