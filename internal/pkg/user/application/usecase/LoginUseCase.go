package usecase

import (
	"context"
	stderrors "errors"
	"strings"

	auth "go-pairchat/internal/pkg/auth/application/domain"
	"go-pairchat/internal/pkg/auth/application/password"
	repository "go-pairchat/internal/pkg/user/persistence/repository/port"
	"go-pairchat/pkg/errors"
	"go-pairchat/pkg/logger"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginUseCase struct {
	Repo   repository.UserRepository
	Tokens TokenIssuer
	logger logger.Logger
}

func NewLoginUseCase(repo repository.UserRepository, tokens TokenIssuer, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{Repo: repo, Tokens: tokens, logger: log}
}

// Execute checks the credentials, marks the user online and issues a token.
// Unknown email and wrong password are indistinguishable to the caller.
func (uc *LoginUseCase) Execute(ctx context.Context, in LoginInput) (*AuthOutput, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, errors.ErrCredentialsMissing
	}

	u, err := uc.Repo.GetUserByEmail(ctx, email)
	if stderrors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.ErrInvalidCredentials
	}
	if err != nil {
		uc.logger.Error("database error loading user", "err", err)
		return nil, errors.ErrPersistence(err)
	}
	if !password.Matches(u.PasswordHash, in.Password) {
		uc.logger.Warn("failed login attempt", "user", u.ID)
		return nil, errors.ErrInvalidCredentials
	}

	seen := now()
	if err := uc.Repo.UpdateStatus(ctx, u.ID, true, seen); err != nil {
		uc.logger.Error("database error updating status", "user", u.ID, "err", err)
		return nil, errors.ErrPersistence(err)
	}
	u.IsOnline = true
	u.LastSeen = seen

	token, err := uc.Tokens.Issue(auth.Identity{UserID: u.ID, Username: u.Username, Email: u.Email})
	if err != nil {
		uc.logger.Error("token issue failed", "user", u.ID, "err", err)
		return nil, err
	}
	return &AuthOutput{Token: token, User: u.Profile()}, nil
}
