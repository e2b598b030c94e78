package usecase

import (
	"context"
	stderrors "errors"

	auth "go-pairchat/internal/pkg/auth/application/domain"
	repository "go-pairchat/internal/pkg/chat/persistence/repository/port"
	user "go-pairchat/internal/pkg/user/application/domain"
	"go-pairchat/pkg/errors"
	"go-pairchat/pkg/logger"
)

type GetConversationInput struct {
	Caller         auth.Identity
	ConversationID string
}

type GetConversationUseCase struct {
	Repo   repository.ChatRepository
	Users  UserDirectory
	logger logger.Logger
}

func NewGetConversationUseCase(repo repository.ChatRepository, users UserDirectory, log logger.Logger) *GetConversationUseCase {
	return &GetConversationUseCase{Repo: repo, Users: users, logger: log}
}

// Execute returns the conversation if the caller takes part in it. Anyone else gets
// ErrConversationNotFound, the same as for an id that does not exist.
func (uc *GetConversationUseCase) Execute(ctx context.Context, in GetConversationInput) (*ConversationView, error) {
	id, ok := user.NormalizeID(in.ConversationID)
	if !ok {
		return nil, errors.ErrConversationNotFound
	}
	conv, err := uc.Repo.GetConversation(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrConversationNotFound) {
			return nil, errors.ErrConversationNotFound
		}
		uc.logger.Error("database error loading conversation", "conversation", id, "err", err)
		return nil, errors.ErrPersistence(err)
	}
	if !conv.HasParticipant(in.Caller.UserID) {
		return nil, errors.ErrConversationNotFound
	}

	profiles, err := loadProfiles(ctx, uc.Users, conv.Participants[:])
	if err != nil {
		uc.logger.Error("database error loading participants", "conversation", id, "err", err)
		return nil, errors.ErrPersistence(err)
	}
	return &ConversationView{Conversation: *conv, Participants: participantsOf(*conv, profiles)}, nil
}
