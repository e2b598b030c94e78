package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"

	auth "go-pairchat/internal/pkg/auth/application/domain"
	repository "go-pairchat/internal/pkg/user/persistence/repository/port"
	"go-pairchat/pkg/errors"
	"go-pairchat/pkg/logger"
)

type SubscribeInput struct {
	Caller       auth.Identity
	Subscription json.RawMessage
}

type SubscribeUseCase struct {
	Repo   repository.UserRepository
	logger logger.Logger
}

func NewSubscribeUseCase(repo repository.UserRepository, log logger.Logger) *SubscribeUseCase {
	return &SubscribeUseCase{Repo: repo, logger: log}
}

// Execute stores the caller's push subscription, replacing any previous one.
func (uc *SubscribeUseCase) Execute(ctx context.Context, in SubscribeInput) error {
	sub := bytes.TrimSpace(in.Subscription)
	if len(sub) == 0 || sub[0] != '{' || !json.Valid(sub) {
		return errors.ErrSubscriptionMissing
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, sub); err != nil {
		return errors.ErrSubscriptionMissing
	}

	err := uc.Repo.SetPushSubscription(ctx, in.Caller.UserID, compact.Bytes())
	if stderrors.Is(err, repository.ErrUserNotFound) {
		return errors.ErrUserNotFound
	}
	if err != nil {
		uc.logger.Error("database error saving subscription", "user", in.Caller.UserID, "err", err)
		return errors.ErrPersistence(err)
	}
	return nil
}
