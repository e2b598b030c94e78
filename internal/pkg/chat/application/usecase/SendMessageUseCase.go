package usecase

import (
	"context"
	"strings"

	auth "go-pairchat/internal/pkg/auth/application/domain"
	chat "go-pairchat/internal/pkg/chat/application/domain"
	repository "go-pairchat/internal/pkg/chat/persistence/repository/port"
	"go-pairchat/pkg/errors"
	"go-pairchat/pkg/logger"
)

type SendMessageInput struct {
	Caller         auth.Identity
	ConversationID string
	Text           string
}

// SendMessageUseCase appends a message and hands it to the notifier.
type SendMessageUseCase struct {
	Repo     repository.ChatRepository
	Notifier MessageNotifier
	logger   logger.Logger
}

func NewSendMessageUseCase(repo repository.ChatRepository, notifier MessageNotifier, log logger.Logger) *SendMessageUseCase {
	return &SendMessageUseCase{Repo: repo, Notifier: notifier, logger: log}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*chat.Message, error) {
	rawID := strings.TrimSpace(in.ConversationID)
	if rawID == "" {
		return nil, errors.ErrConversationMissing
	}
	msg, err := chat.NewMessage(rawID, in.Caller.UserID, in.Caller.Username, in.Text, now())
	if err != nil {
		return nil, err
	}

	id, pair, err := authorizeParticipant(ctx, uc.Repo, uc.logger, in.Caller, rawID)
	if err != nil {
		return nil, err
	}
	msg.ConversationID = id

	stored, err := uc.Repo.SaveMessage(ctx, *msg)
	if err != nil {
		uc.logger.Error("database error saving message", "conversation", id, "err", err)
		return nil, errors.ErrPersistence(err)
	}
	msg = &stored

	if err := uc.Repo.TouchConversation(ctx, id, msg.CreatedAt); err != nil {
		uc.logger.Warn("conversation timestamp not updated", "conversation", id, "err", err)
	}

	if uc.Notifier != nil {
		uc.Notifier.NotifyMessage(ctx, chat.NewMessageEvent{Message: *msg, Participants: pair})
	}
	return msg, nil
}
