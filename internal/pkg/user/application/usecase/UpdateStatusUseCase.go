package usecase

import (
	"context"
	stderrors "errors"

	auth "go-pairchat/internal/pkg/auth/application/domain"
	repository "go-pairchat/internal/pkg/user/persistence/repository/port"
	"go-pairchat/pkg/errors"
	"go-pairchat/pkg/logger"
)

type UpdateStatusInput struct {
	Caller   auth.Identity
	IsOnline bool
}

type UpdateStatusUseCase struct {
	Repo   repository.UserRepository
	logger logger.Logger
}

func NewUpdateStatusUseCase(repo repository.UserRepository, log logger.Logger) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{Repo: repo, logger: log}
}

// Execute sets the caller's online flag and refreshes last-seen.
func (uc *UpdateStatusUseCase) Execute(ctx context.Context, in UpdateStatusInput) error {
	err := uc.Repo.UpdateStatus(ctx, in.Caller.UserID, in.IsOnline, now())
	if stderrors.Is(err, repository.ErrUserNotFound) {
		return errors.ErrUserNotFound
	}
	if err != nil {
		uc.logger.Error("database error updating status", "user", in.Caller.UserID, "err", err)
		return errors.ErrPersistence(err)
	}
	return nil
}
