package usecase

import (
	"context"

	auth "go-pairchat/internal/pkg/auth/application/domain"
	chat "go-pairchat/internal/pkg/chat/application/domain"
	repository "go-pairchat/internal/pkg/chat/persistence/repository/port"
	user "go-pairchat/internal/pkg/user/application/domain"
	"go-pairchat/pkg/errors"
	"go-pairchat/pkg/logger"
)

// ConversationView is a conversation with its participants' public profiles resolved.
type ConversationView struct {
	Conversation chat.Conversation
	Participants []user.Profile
	LastMessage  *chat.Message
}

type ListConversationsUseCase struct {
	Repo   repository.ChatRepository
	Users  UserDirectory
	logger logger.Logger
}

func NewListConversationsUseCase(repo repository.ChatRepository, users UserDirectory, log logger.Logger) *ListConversationsUseCase {
	return &ListConversationsUseCase{Repo: repo, Users: users, logger: log}
}

// Execute returns the caller's inbox, most recently active first.
func (uc *ListConversationsUseCase) Execute(ctx context.Context, caller auth.Identity) ([]ConversationView, error) {
	summaries, err := uc.Repo.ListConversationsByUser(ctx, caller.UserID)
	if err != nil {
		uc.logger.Error("database error listing conversations", "user", caller.UserID, "err", err)
		return nil, errors.ErrPersistence(err)
	}
	if len(summaries) == 0 {
		return []ConversationView{}, nil
	}

	ids := make([]string, 0, len(summaries)+1)
	seen := make(map[string]struct{}, len(summaries)+1)
	for _, s := range summaries {
		for _, p := range s.Conversation.Participants {
			if _, ok := seen[p]; !ok {
				seen[p] = struct{}{}
				ids = append(ids, p)
			}
		}
	}
	profiles, err := loadProfiles(ctx, uc.Users, ids)
	if err != nil {
		uc.logger.Error("database error loading participants", "err", err)
		return nil, errors.ErrPersistence(err)
	}

	views := make([]ConversationView, 0, len(summaries))
	for _, s := range summaries {
		views = append(views, ConversationView{
			Conversation: s.Conversation,
			Participants: participantsOf(s.Conversation, profiles),
			LastMessage:  s.LastMessage,
		})
	}
	return views, nil
}

func loadProfiles(ctx context.Context, users UserDirectory, ids []string) (map[string]user.Profile, error) {
	found, err := users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]user.Profile, len(found))
	for _, u := range found {
		out[u.ID] = u.Profile()
	}
	return out, nil
}

// participantsOf keeps the stored pair order and skips users that no longer resolve.
func participantsOf(c chat.Conversation, profiles map[string]user.Profile) []user.Profile {
	out := make([]user.Profile, 0, 2)
	for _, id := range c.Participants {
		if p, ok := profiles[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
