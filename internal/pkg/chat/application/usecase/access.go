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

// authorizeParticipant resolves the conversation's pair and checks the caller is in it.
// Unknown conversations and outsiders both get ErrNotParticipant.
func authorizeParticipant(ctx context.Context, repo repository.ChatRepository, log logger.Logger, caller auth.Identity, rawID string) (string, [2]string, error) {
	if rawID == "" {
		return "", [2]string{}, errors.ErrConversationMissing
	}
	id, ok := user.NormalizeID(rawID)
	if !ok {
		return "", [2]string{}, errors.ErrNotParticipant
	}
	pair, err := repo.GetParticipants(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrConversationNotFound) {
			return "", pair, errors.ErrNotParticipant
		}
		log.Error("database error loading participants", "conversation", id, "err", err)
		return "", pair, errors.ErrPersistence(err)
	}
	if caller.UserID == "" || (pair[0] != caller.UserID && pair[1] != caller.UserID) {
		return "", pair, errors.ErrNotParticipant
	}
	return id, pair, nil
}
