package dto

import (
	"time"

	chat "go-pairchat/internal/pkg/chat/application/domain"
	"go-pairchat/internal/pkg/chat/application/usecase"
	userdto "go-pairchat/internal/pkg/user/presentation/dto"
)

type MessageResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	UserID         string    `json:"userId"`
	Username       string    `json:"username"`
	Text           string    `json:"text"`
	Timestamp      time.Time `json:"timestamp"`
	Edited         bool      `json:"edited"`
}

func NewMessageResponse(m chat.Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		UserID:         m.SenderID,
		Username:       m.SenderUsername,
		Text:           m.Text,
		Timestamp:      m.CreatedAt,
	}
}

func NewMessageResponses(msgs []chat.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, NewMessageResponse(m))
	}
	return out
}

type LastMessageResponse struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Username  string    `json:"username"`
}

type ConversationSummaryResponse struct {
	ID           string                 `json:"id"`
	Participants []userdto.UserResponse `json:"participants"`
	LastMessage  *LastMessageResponse   `json:"lastMessage"`
	UnreadCount  int                    `json:"unreadCount"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

func NewConversationSummaryResponses(views []usecase.ConversationView) []ConversationSummaryResponse {
	out := make([]ConversationSummaryResponse, 0, len(views))
	for _, v := range views {
		s := ConversationSummaryResponse{
			ID:           v.Conversation.ID,
			Participants: userdto.NewUserResponses(v.Participants),
			UpdatedAt:    v.Conversation.UpdatedAt,
		}
		if m := v.LastMessage; m != nil {
			s.LastMessage = &LastMessageResponse{Text: m.Text, Timestamp: m.CreatedAt, Username: m.SenderUsername}
		}
		out = append(out, s)
	}
	return out
}

type ConversationDetailResponse struct {
	ID           string                 `json:"id"`
	Participants []userdto.UserResponse `json:"participants"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

func NewConversationDetailResponse(v usecase.ConversationView) ConversationDetailResponse {
	return ConversationDetailResponse{
		ID:           v.Conversation.ID,
		Participants: userdto.NewUserResponses(v.Participants),
		CreatedAt:    v.Conversation.CreatedAt,
		UpdatedAt:    v.Conversation.UpdatedAt,
	}
}

// MessageSignal is the websocket frame announcing a new message.
type MessageSignal struct {
	Type           string          `json:"type"`
	ConversationID string          `json:"conversationId"`
	Message        MessageResponse `json:"message"`
}

func NewMessageSignal(m chat.Message) MessageSignal {
	return MessageSignal{Type: "message", ConversationID: m.ConversationID, Message: NewMessageResponse(m)}
}
