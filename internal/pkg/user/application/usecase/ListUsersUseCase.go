package usecase

import (
	"context"

	auth "go-pairchat/internal/pkg/auth/application/domain"
	user "go-pairchat/internal/pkg/user/application/domain"
	repository "go-pairchat/internal/pkg/user/persistence/repository/port"
	"go-pairchat/pkg/errors"
	"go-pairchat/pkg/logger"
)

type ListUsersUseCase struct {
	Repo   repository.UserRepository
	logger logger.Logger
}

func NewListUsersUseCase(repo repository.UserRepository, log logger.Logger) *ListUsersUseCase {
	return &ListUsersUseCase{Repo: repo, logger: log}
}

// Execute returns every other user's public profile.
func (uc *ListUsersUseCase) Execute(ctx context.Context, caller auth.Identity) ([]user.Profile, error) {
	users, err := uc.Repo.ListUsersExcept(ctx, caller.UserID)
	if err != nil {
		uc.logger.Error("database error listing users", "err", err)
		return nil, errors.ErrPersistence(err)
	}
	profiles := make([]user.Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Profile())
	}
	return profiles, nil
}
