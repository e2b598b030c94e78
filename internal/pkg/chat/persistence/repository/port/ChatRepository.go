package port

import (
	"context"
	"errors"
	"time"

	chat "go-pairchat/internal/pkg/chat/application/domain"
)

var (
	ErrConversationNotFound = errors.New("chat repository: conversation not found")
	ErrConversationExists   = errors.New("chat repository: conversation already exists for pair")
)

type ChatRepository interface {
	// CreateConversation returns ErrConversationExists when the pair already has a conversation.
	CreateConversation(ctx context.Context, c chat.Conversation) error
	FindConversationByPair(ctx context.Context, pair [2]string) (*chat.Conversation, error)
	GetConversation(ctx context.Context, conversationID string) (*chat.Conversation, error)
	GetParticipants(ctx context.Context, conversationID string) ([2]string, error)
	// ListConversationsByUser returns the user's conversations, most recently updated first.
	ListConversationsByUser(ctx context.Context, userID string) ([]chat.Summary, error)

	// SaveMessage persists m and returns it as stored, with Seq assigned. CreatedAt is raised to the
	// conversation's newest message time when the clock reads earlier than that.
	SaveMessage(ctx context.Context, m chat.Message) (chat.Message, error)
	// TouchConversation moves updated_at forward to at; it never moves it back.
	TouchConversation(ctx context.Context, conversationID string, at time.Time) error
	// GetMessagesByConversation returns the newest limit messages in ascending order; limit <= 0 means all.
	GetMessagesByConversation(ctx context.Context, conversationID string, limit int) ([]chat.Message, error)
	// GetRecentMessagesForUser returns the newest limit messages across the user's conversations, ascending.
	GetRecentMessagesForUser(ctx context.Context, userID string, limit int) ([]chat.Message, error)
}
