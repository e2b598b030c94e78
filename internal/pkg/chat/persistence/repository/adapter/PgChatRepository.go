package adapter

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	chat "go-pairchat/internal/pkg/chat/application/domain"
	"go-pairchat/internal/pkg/chat/persistence/repository/port"
)

const pgMessageColumns = `m.seq, m.id::text, m.conversation_id::text, m.sender_id::text, m.sender_username, m.body, m.created_at`

type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

var _ port.ChatRepository = (*PgChatRepository)(nil)

func (r *PgChatRepository) CreateConversation(ctx context.Context, c chat.Conversation) error {
	ct, err := r.pool.Exec(ctx, `
		INSERT INTO conversations (id, user_low, user_high, created_at, updated_at)
		VALUES ($1::uuid, $2::uuid, $3::uuid, $4, $5)
		ON CONFLICT ON CONSTRAINT conversations_pair_key DO NOTHING
	`, c.ID, c.Participants[0], c.Participants[1], c.CreatedAt, c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return port.ErrConversationExists
		}
		return errors.Wrap(err, "PgChatRepository.CreateConversation")
	}
	if ct.RowsAffected() == 0 {
		return port.ErrConversationExists
	}
	return nil
}

func (r *PgChatRepository) FindConversationByPair(ctx context.Context, pair [2]string) (*chat.Conversation, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id::text, user_low::text, user_high::text, created_at, updated_at
		FROM conversations
		WHERE user_low = $1::uuid AND user_high = $2::uuid
	`, pair[0], pair[1])
	c, err := scanPgConversation(row)
	if err != nil {
		return nil, errors.Wrap(err, "PgChatRepository.FindConversationByPair")
	}
	return c, nil
}

func (r *PgChatRepository) GetConversation(ctx context.Context, conversationID string) (*chat.Conversation, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id::text, user_low::text, user_high::text, created_at, updated_at
		FROM conversations
		WHERE id = $1::uuid
	`, conversationID)
	c, err := scanPgConversation(row)
	if err != nil {
		return nil, errors.Wrap(err, "PgChatRepository.GetConversation")
	}
	return c, nil
}

func (r *PgChatRepository) GetParticipants(ctx context.Context, conversationID string) ([2]string, error) {
	var pair [2]string
	err := r.pool.QueryRow(ctx, `
		SELECT user_low::text, user_high::text FROM conversations WHERE id = $1::uuid
	`, conversationID).Scan(&pair[0], &pair[1])
	if errors.Is(err, pgx.ErrNoRows) {
		return pair, port.ErrConversationNotFound
	}
	if err != nil {
		return pair, errors.Wrap(err, "PgChatRepository.GetParticipants")
	}
	return pair, nil
}

func (r *PgChatRepository) ListConversationsByUser(ctx context.Context, userID string) ([]chat.Summary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id::text, c.user_low::text, c.user_high::text, c.created_at, c.updated_at,
		       lm.seq, lm.id::text, lm.sender_id::text, lm.sender_username, lm.body, lm.created_at
		FROM conversations c
		LEFT JOIN LATERAL (
			SELECT seq, id, sender_id, sender_username, body, created_at
			FROM messages
			WHERE conversation_id = c.id
			ORDER BY created_at DESC, seq DESC
			LIMIT 1
		) lm ON TRUE
		WHERE c.user_low = $1::uuid OR c.user_high = $1::uuid
		ORDER BY c.updated_at DESC, c.id
	`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "PgChatRepository.ListConversationsByUser")
	}
	defer rows.Close()

	var out []chat.Summary
	for rows.Next() {
		var (
			s        chat.Summary
			seq      *int64
			msgID    *string
			senderID *string
			username *string
			body     *string
			sentAt   *time.Time
		)
		c := &s.Conversation
		if err := rows.Scan(&c.ID, &c.Participants[0], &c.Participants[1], &c.CreatedAt, &c.UpdatedAt,
			&seq, &msgID, &senderID, &username, &body, &sentAt); err != nil {
			return nil, errors.Wrap(err, "PgChatRepository.ListConversationsByUser.Scan")
		}
		c.CreatedAt = c.CreatedAt.UTC()
		c.UpdatedAt = c.UpdatedAt.UTC()
		if msgID != nil {
			s.LastMessage = &chat.Message{
				ID:             *msgID,
				ConversationID: c.ID,
				SenderID:       deref(senderID),
				SenderUsername: deref(username),
				Text:           deref(body),
				CreatedAt:      sentAt.UTC(),
				Seq:            *seq,
			}
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "PgChatRepository.ListConversationsByUser.Rows")
	}
	return out, nil
}

func (r *PgChatRepository) SaveMessage(ctx context.Context, m chat.Message) (chat.Message, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO messages (id, conversation_id, sender_id, sender_username, body, created_at)
		SELECT $1::uuid, $2::uuid, $3::uuid, $4, $5,
		       GREATEST($6::timestamptz, COALESCE(MAX(created_at), $6::timestamptz))
		FROM messages WHERE conversation_id = $2::uuid
		RETURNING seq, created_at
	`, m.ID, m.ConversationID, m.SenderID, m.SenderUsername, m.Text, m.CreatedAt).Scan(&m.Seq, &m.CreatedAt)
	if err != nil {
		return chat.Message{}, errors.Wrap(err, "PgChatRepository.SaveMessage")
	}
	m.CreatedAt = m.CreatedAt.UTC()
	return m, nil
}

func (r *PgChatRepository) TouchConversation(ctx context.Context, conversationID string, at time.Time) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE conversations SET updated_at = GREATEST(updated_at, $2) WHERE id = $1::uuid
	`, conversationID, at)
	if err != nil {
		return errors.Wrap(err, "PgChatRepository.TouchConversation")
	}
	if ct.RowsAffected() == 0 {
		return port.ErrConversationNotFound
	}
	return nil
}

func (r *PgChatRepository) GetMessagesByConversation(ctx context.Context, conversationID string, limit int) ([]chat.Message, error) {
	var lim any
	if limit > 0 {
		lim = limit
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+pgMessageColumns+`
		FROM messages m
		WHERE m.conversation_id = $1::uuid
		ORDER BY m.created_at DESC, m.seq DESC
		LIMIT $2
	`, conversationID, lim)
	if err != nil {
		return nil, errors.Wrap(err, "PgChatRepository.GetMessagesByConversation")
	}
	return collectPgMessages(rows, "PgChatRepository.GetMessagesByConversation")
}

func (r *PgChatRepository) GetRecentMessagesForUser(ctx context.Context, userID string, limit int) ([]chat.Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+pgMessageColumns+`
		FROM messages m
		JOIN conversations c ON c.id = m.conversation_id
		WHERE c.user_low = $1::uuid OR c.user_high = $1::uuid
		ORDER BY m.created_at DESC, m.seq DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "PgChatRepository.GetRecentMessagesForUser")
	}
	return collectPgMessages(rows, "PgChatRepository.GetRecentMessagesForUser")
}

func scanPgConversation(row pgx.Row) (*chat.Conversation, error) {
	var c chat.Conversation
	err := row.Scan(&c.ID, &c.Participants[0], &c.Participants[1], &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}

// collectPgMessages reads rows ordered newest first and returns them oldest first.
func collectPgMessages(rows pgx.Rows, op string) ([]chat.Message, error) {
	defer rows.Close()
	var msgs []chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.Seq, &m.ID, &m.ConversationID, &m.SenderID, &m.SenderUsername, &m.Text, &m.CreatedAt); err != nil {
			return nil, errors.Wrap(err, op+".Scan")
		}
		m.CreatedAt = m.CreatedAt.UTC()
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, op+".Rows")
	}
	reverse(msgs)
	return msgs, nil
}

func reverse(msgs []chat.Message) {
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
