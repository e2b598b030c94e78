package chat

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"go-pairchat/pkg/errors"
)

// MaxMessageLength bounds message text, counted in characters after trimming.
const MaxMessageLength = 1000

// Message is an immutable entry in a conversation. SenderUsername is captured at write time.
// Seq is assigned by storage and breaks timestamp ties.
type Message struct {
	ID             string
	ConversationID string
	SenderID       string
	SenderUsername string
	Text           string
	CreatedAt      time.Time
	Seq            int64
}

func NewMessage(conversationID, senderID, senderUsername, text string, now time.Time) (*Message, error) {
	if conversationID == "" {
		return nil, errors.ErrConversationMissing
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.ErrMessageRequired
	}
	if utf8.RuneCountInString(text) > MaxMessageLength {
		return nil, errors.ErrMessageTooLong
	}
	return &Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       senderID,
		SenderUsername: senderUsername,
		Text:           text,
		CreatedAt:      now.UTC().Truncate(time.Microsecond),
	}, nil
}

// NewMessageEvent is what the notification side learns about an appended message.
type NewMessageEvent struct {
	Message      Message
	Participants [2]string
}

// Recipients returns the participants other than the sender.
func (e NewMessageEvent) Recipients() []string {
	out := make([]string, 0, 1)
	for _, p := range e.Participants {
		if p != "" && p != e.Message.SenderID {
			out = append(out, p)
		}
	}
	return out
}
