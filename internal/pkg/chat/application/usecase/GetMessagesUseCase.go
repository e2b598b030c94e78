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

// DefaultFeedLimit bounds the unscoped feed when the caller gives no limit.
const DefaultFeedLimit = 50

type GetMessagesInput struct {
	Caller auth.Identity
	// ConversationID empty selects the feed across all of the caller's conversations.
	ConversationID string
	Limit          int
}

type GetMessagesUseCase struct {
	Repo   repository.ChatRepository
	logger logger.Logger
}

func NewGetMessagesUseCase(repo repository.ChatRepository, log logger.Logger) *GetMessagesUseCase {
	return &GetMessagesUseCase{Repo: repo, logger: log}
}

// Execute returns messages oldest first. With a conversation, limit <= 0 returns the whole history.
func (uc *GetMessagesUseCase) Execute(ctx context.Context, in GetMessagesInput) ([]chat.Message, error) {
	rawID := strings.TrimSpace(in.ConversationID)
	if rawID == "" {
		limit := in.Limit
		if limit <= 0 {
			limit = DefaultFeedLimit
		}
		msgs, err := uc.Repo.GetRecentMessagesForUser(ctx, in.Caller.UserID, limit)
		if err != nil {
			uc.logger.Error("database error loading message feed", "user", in.Caller.UserID, "err", err)
			return nil, errors.ErrPersistence(err)
		}
		return nonNil(msgs), nil
	}

	id, _, err := authorizeParticipant(ctx, uc.Repo, uc.logger, in.Caller, rawID)
	if err != nil {
		return nil, err
	}
	msgs, err := uc.Repo.GetMessagesByConversation(ctx, id, in.Limit)
	if err != nil {
		uc.logger.Error("database error loading messages", "conversation", id, "err", err)
		return nil, errors.ErrPersistence(err)
	}
	return nonNil(msgs), nil
}

func nonNil(msgs []chat.Message) []chat.Message {
	if msgs == nil {
		return []chat.Message{}
	}
	return msgs
}
