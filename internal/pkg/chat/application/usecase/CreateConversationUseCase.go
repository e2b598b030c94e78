package usecase

import (
	"context"
	stderrors "errors"
	"strings"

	auth "go-pairchat/internal/pkg/auth/application/domain"
	chat "go-pairchat/internal/pkg/chat/application/domain"
	repository "go-pairchat/internal/pkg/chat/persistence/repository/port"
	user "go-pairchat/internal/pkg/user/application/domain"
	userport "go-pairchat/internal/pkg/user/persistence/repository/port"
	"go-pairchat/pkg/errors"
	"go-pairchat/pkg/logger"
)

type CreateConversationInput struct {
	Caller        auth.Identity
	ParticipantID string
}

type CreateConversationOutput struct {
	Conversation chat.Conversation
	Created      bool
}

// CreateConversationUseCase returns the caller's conversation with another user, opening it on first contact.
type CreateConversationUseCase struct {
	Repo   repository.ChatRepository
	Users  UserDirectory
	logger logger.Logger
}

func NewCreateConversationUseCase(repo repository.ChatRepository, users UserDirectory, log logger.Logger) *CreateConversationUseCase {
	return &CreateConversationUseCase{Repo: repo, Users: users, logger: log}
}

func (uc *CreateConversationUseCase) Execute(ctx context.Context, in CreateConversationInput) (*CreateConversationOutput, error) {
	raw := strings.TrimSpace(in.ParticipantID)
	if raw == "" {
		return nil, errors.ErrParticipantRequired
	}
	otherID, ok := user.NormalizeID(raw)
	if !ok {
		return nil, errors.ErrUserNotFound
	}
	if otherID == in.Caller.UserID {
		return nil, errors.ErrSelfConversation
	}

	if _, err := uc.Users.GetUserByID(ctx, otherID); err != nil {
		if stderrors.Is(err, userport.ErrUserNotFound) {
			return nil, errors.ErrUserNotFound
		}
		uc.logger.Error("database error loading participant", "participant", otherID, "err", err)
		return nil, errors.ErrPersistence(err)
	}

	existing, err := uc.Repo.FindConversationByPair(ctx, chat.Pair(in.Caller.UserID, otherID))
	switch {
	case err == nil:
		return &CreateConversationOutput{Conversation: *existing}, nil
	case !stderrors.Is(err, repository.ErrConversationNotFound):
		uc.logger.Error("database error finding conversation", "err", err)
		return nil, errors.ErrPersistence(err)
	}

	conv, err := chat.NewConversation(in.Caller.UserID, otherID, now())
	if err != nil {
		return nil, err
	}
	err = uc.Repo.CreateConversation(ctx, conv)
	if err == nil {
		uc.logger.Info("conversation created", "conversation", conv.ID)
		return &CreateConversationOutput{Conversation: conv, Created: true}, nil
	}
	if !stderrors.Is(err, repository.ErrConversationExists) {
		uc.logger.Error("database error creating conversation", "err", err)
		return nil, errors.ErrPersistence(err)
	}

	// lost the first-contact race; the winner's row is the conversation
	existing, err = uc.Repo.FindConversationByPair(ctx, conv.Participants)
	if err != nil {
		uc.logger.Error("database error re-reading conversation", "err", err)
		return nil, errors.ErrPersistence(err)
	}
	return &CreateConversationOutput{Conversation: *existing}, nil
}
