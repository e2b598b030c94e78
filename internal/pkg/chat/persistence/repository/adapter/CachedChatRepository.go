package adapter

import (
	"context"
	"strings"
	"time"

	cacheport "go-pairchat/internal/infrastructure/cache/port"
	chat "go-pairchat/internal/pkg/chat/application/domain"
	"go-pairchat/internal/pkg/chat/persistence/repository/port"
	"go-pairchat/pkg/logger"
)

const participantsTTL = 24 * time.Hour

// CachedChatRepository serves participant pairs from a cache. Pairs never change once a
// conversation exists, so entries need no invalidation. Cache failures fall through to storage.
type CachedChatRepository struct {
	port.ChatRepository
	cache  cacheport.Cache
	logger logger.Logger
}

func NewCachedChatRepository(next port.ChatRepository, cache cacheport.Cache, log logger.Logger) *CachedChatRepository {
	return &CachedChatRepository{ChatRepository: next, cache: cache, logger: log}
}

var _ port.ChatRepository = (*CachedChatRepository)(nil)

func participantsKey(conversationID string) string {
	return "chat:conversation:" + conversationID + ":participants"
}

func (r *CachedChatRepository) GetParticipants(ctx context.Context, conversationID string) ([2]string, error) {
	if v, err := r.cache.Get(ctx, participantsKey(conversationID)); err == nil {
		if a, b, ok := strings.Cut(v, ","); ok && a != "" && b != "" {
			return [2]string{a, b}, nil
		}
	} else if err != cacheport.ErrMiss {
		r.logger.Warn("participant cache read failed", "conversation", conversationID, "err", err)
	}

	pair, err := r.ChatRepository.GetParticipants(ctx, conversationID)
	if err != nil {
		return pair, err
	}
	r.remember(ctx, conversationID, pair)
	return pair, nil
}

func (r *CachedChatRepository) CreateConversation(ctx context.Context, c chat.Conversation) error {
	if err := r.ChatRepository.CreateConversation(ctx, c); err != nil {
		return err
	}
	r.remember(ctx, c.ID, c.Participants)
	return nil
}

func (r *CachedChatRepository) remember(ctx context.Context, conversationID string, pair [2]string) {
	if err := r.cache.Set(ctx, participantsKey(conversationID), pair[0]+","+pair[1], participantsTTL); err != nil {
		r.logger.Warn("participant cache write failed", "conversation", conversationID, "err", err)
	}
}
