package usecase

import (
	"context"
	stderrors "errors"
	"strings"
	"unicode/utf8"

	auth "go-pairchat/internal/pkg/auth/application/domain"
	"go-pairchat/internal/pkg/auth/application/password"
	user "go-pairchat/internal/pkg/user/application/domain"
	repository "go-pairchat/internal/pkg/user/persistence/repository/port"
	"go-pairchat/pkg/errors"
	"go-pairchat/pkg/logger"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthOutput is returned by both registration and login.
type AuthOutput struct {
	Token string
	User  user.Profile
}

type RegisterUseCase struct {
	Repo   repository.UserRepository
	Tokens TokenIssuer
	logger logger.Logger
}

func NewRegisterUseCase(repo repository.UserRepository, tokens TokenIssuer, log logger.Logger) *RegisterUseCase {
	return &RegisterUseCase{Repo: repo, Tokens: tokens, logger: log}
}

// Execute creates the account, marks it online and issues a token for it.
func (uc *RegisterUseCase) Execute(ctx context.Context, in RegisterInput) (*AuthOutput, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return nil, errors.ErrMissingFields
	}
	if utf8.RuneCountInString(in.Password) < password.MinLength {
		return nil, errors.ErrPasswordTooShort
	}
	if len(in.Password) > password.MaxBytes {
		return nil, errors.ErrPasswordTooLong
	}

	emailTaken, usernameTaken, err := uc.Repo.FindTaken(ctx, email, username)
	if err != nil {
		uc.logger.Error("database error checking existing user", "err", err)
		return nil, errors.ErrPersistence(err)
	}
	if emailTaken {
		return nil, errors.ErrEmailTaken
	}
	if usernameTaken {
		return nil, errors.ErrUsernameTaken
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		uc.logger.Errorf("error while hashing password: %v", err)
		return nil, errors.ErrRegistrationFailed(err)
	}

	u := user.NewUser(username, email, hash, now())
	if err := uc.Repo.CreateUser(ctx, u); err != nil {
		switch {
		case stderrors.Is(err, repository.ErrEmailTaken):
			return nil, errors.ErrEmailTaken
		case stderrors.Is(err, repository.ErrUsernameTaken):
			return nil, errors.ErrUsernameTaken
		}
		uc.logger.Errorf("error while saving user in db: %v", err)
		return nil, errors.ErrRegistrationFailed(err)
	}

	token, err := uc.Tokens.Issue(auth.Identity{UserID: u.ID, Username: u.Username, Email: u.Email})
	if err != nil {
		uc.logger.Error("token issue failed", "user", u.ID, "err", err)
		return nil, err
	}
	return &AuthOutput{Token: token, User: u.Profile()}, nil
}
