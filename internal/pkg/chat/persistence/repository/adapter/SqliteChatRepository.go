package adapter

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	chat "go-pairchat/internal/pkg/chat/application/domain"
	"go-pairchat/internal/pkg/chat/persistence/repository/port"
)

const sqliteMessageColumns = `m.seq, m.id, m.conversation_id, m.sender_id, m.sender_username, m.body, m.created_at`

// SqliteChatRepository stores conversations and messages in SQLite. Timestamps are unix microseconds.
type SqliteChatRepository struct {
	db *sql.DB
}

func NewSqliteChatRepository(db *sql.DB) *SqliteChatRepository {
	return &SqliteChatRepository{db: db}
}

var _ port.ChatRepository = (*SqliteChatRepository)(nil)

func (r *SqliteChatRepository) CreateConversation(ctx context.Context, c chat.Conversation) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO conversations (id, user_low, user_high, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_low, user_high) DO NOTHING
	`, c.ID, c.Participants[0], c.Participants[1], c.CreatedAt.UnixMicro(), c.UpdatedAt.UnixMicro())
	if err != nil {
		return errors.Wrap(err, "SqliteChatRepository.CreateConversation")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "SqliteChatRepository.CreateConversation.RowsAffected")
	}
	if n == 0 {
		return port.ErrConversationExists
	}
	return nil
}

func (r *SqliteChatRepository) FindConversationByPair(ctx context.Context, pair [2]string) (*chat.Conversation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_low, user_high, created_at, updated_at
		FROM conversations
		WHERE user_low = ? AND user_high = ?
	`, pair[0], pair[1])
	c, err := scanSqliteConversation(row)
	if err != nil {
		return nil, errors.Wrap(err, "SqliteChatRepository.FindConversationByPair")
	}
	return c, nil
}

func (r *SqliteChatRepository) GetConversation(ctx context.Context, conversationID string) (*chat.Conversation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_low, user_high, created_at, updated_at
		FROM conversations
		WHERE id = ?
	`, conversationID)
	c, err := scanSqliteConversation(row)
	if err != nil {
		return nil, errors.Wrap(err, "SqliteChatRepository.GetConversation")
	}
	return c, nil
}

func (r *SqliteChatRepository) GetParticipants(ctx context.Context, conversationID string) ([2]string, error) {
	var pair [2]string
	err := r.db.QueryRowContext(ctx, `SELECT user_low, user_high FROM conversations WHERE id = ?`, conversationID).
		Scan(&pair[0], &pair[1])
	if errors.Is(err, sql.ErrNoRows) {
		return pair, port.ErrConversationNotFound
	}
	if err != nil {
		return pair, errors.Wrap(err, "SqliteChatRepository.GetParticipants")
	}
	return pair, nil
}

func (r *SqliteChatRepository) ListConversationsByUser(ctx context.Context, userID string) ([]chat.Summary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.user_low, c.user_high, c.created_at, c.updated_at,
		       m.seq, m.id, m.sender_id, m.sender_username, m.body, m.created_at
		FROM conversations c
		LEFT JOIN messages m ON m.seq = (
			SELECT seq FROM messages
			WHERE conversation_id = c.id
			ORDER BY created_at DESC, seq DESC
			LIMIT 1
		)
		WHERE c.user_low = ? OR c.user_high = ?
		ORDER BY c.updated_at DESC, c.id
	`, userID, userID)
	if err != nil {
		return nil, errors.Wrap(err, "SqliteChatRepository.ListConversationsByUser")
	}
	defer rows.Close()

	var out []chat.Summary
	for rows.Next() {
		var (
			s                    chat.Summary
			createdAt, updatedAt int64
			seq, sentAt          sql.NullInt64
			msgID, senderID      sql.NullString
			username, body       sql.NullString
		)
		c := &s.Conversation
		if err := rows.Scan(&c.ID, &c.Participants[0], &c.Participants[1], &createdAt, &updatedAt,
			&seq, &msgID, &senderID, &username, &body, &sentAt); err != nil {
			return nil, errors.Wrap(err, "SqliteChatRepository.ListConversationsByUser.Scan")
		}
		c.CreatedAt = fromMicros(createdAt)
		c.UpdatedAt = fromMicros(updatedAt)
		if msgID.Valid {
			s.LastMessage = &chat.Message{
				ID:             msgID.String,
				ConversationID: c.ID,
				SenderID:       senderID.String,
				SenderUsername: username.String,
				Text:           body.String,
				CreatedAt:      fromMicros(sentAt.Int64),
				Seq:            seq.Int64,
			}
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "SqliteChatRepository.ListConversationsByUser.Rows")
	}
	return out, nil
}

func (r *SqliteChatRepository) SaveMessage(ctx context.Context, m chat.Message) (chat.Message, error) {
	var createdAt int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO messages (id, conversation_id, sender_id, sender_username, body, created_at)
		SELECT ?1, ?2, ?3, ?4, ?5, MAX(?6, COALESCE(MAX(created_at), ?6))
		FROM messages WHERE conversation_id = ?2
		RETURNING seq, created_at
	`, m.ID, m.ConversationID, m.SenderID, m.SenderUsername, m.Text, m.CreatedAt.UnixMicro()).Scan(&m.Seq, &createdAt)
	if err != nil {
		return chat.Message{}, errors.Wrap(err, "SqliteChatRepository.SaveMessage")
	}
	m.CreatedAt = fromMicros(createdAt)
	return m, nil
}

func (r *SqliteChatRepository) TouchConversation(ctx context.Context, conversationID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE conversations SET updated_at = MAX(updated_at, ?) WHERE id = ?
	`, at.UnixMicro(), conversationID)
	if err != nil {
		return errors.Wrap(err, "SqliteChatRepository.TouchConversation")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "SqliteChatRepository.TouchConversation.RowsAffected")
	}
	if n == 0 {
		return port.ErrConversationNotFound
	}
	return nil
}

func (r *SqliteChatRepository) GetMessagesByConversation(ctx context.Context, conversationID string, limit int) ([]chat.Message, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+sqliteMessageColumns+`
		FROM messages m
		WHERE m.conversation_id = ?
		ORDER BY m.created_at DESC, m.seq DESC
		LIMIT ?
	`, conversationID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "SqliteChatRepository.GetMessagesByConversation")
	}
	return collectSqliteMessages(rows, "SqliteChatRepository.GetMessagesByConversation")
}

func (r *SqliteChatRepository) GetRecentMessagesForUser(ctx context.Context, userID string, limit int) ([]chat.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+sqliteMessageColumns+`
		FROM messages m
		JOIN conversations c ON c.id = m.conversation_id
		WHERE c.user_low = ? OR c.user_high = ?
		ORDER BY m.created_at DESC, m.seq DESC
		LIMIT ?
	`, userID, userID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "SqliteChatRepository.GetRecentMessagesForUser")
	}
	return collectSqliteMessages(rows, "SqliteChatRepository.GetRecentMessagesForUser")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSqliteConversation(row rowScanner) (*chat.Conversation, error) {
	var (
		c                    chat.Conversation
		createdAt, updatedAt int64
	)
	err := row.Scan(&c.ID, &c.Participants[0], &c.Participants[1], &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}
	c.CreatedAt = fromMicros(createdAt)
	c.UpdatedAt = fromMicros(updatedAt)
	return &c, nil
}

func collectSqliteMessages(rows *sql.Rows, op string) ([]chat.Message, error) {
	defer rows.Close()
	var msgs []chat.Message
	for rows.Next() {
		var (
			m      chat.Message
			sentAt int64
		)
		if err := rows.Scan(&m.Seq, &m.ID, &m.ConversationID, &m.SenderID, &m.SenderUsername, &m.Text, &sentAt); err != nil {
			return nil, errors.Wrap(err, op+".Scan")
		}
		m.CreatedAt = fromMicros(sentAt)
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, op+".Rows")
	}
	reverse(msgs)
	return msgs, nil
}

func fromMicros(us int64) time.Time {
	return time.UnixMicro(us).UTC()
}
