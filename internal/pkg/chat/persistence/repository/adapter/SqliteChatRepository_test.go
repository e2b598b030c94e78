package adapter

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pairchat/internal/infrastructure/database"
	chat "go-pairchat/internal/pkg/chat/application/domain"
	"go-pairchat/internal/pkg/chat/persistence/repository/port"
	user "go-pairchat/internal/pkg/user/application/domain"
	useradapter "go-pairchat/internal/pkg/user/persistence/repository/adapter"
)

type sqliteFixture struct {
	db    *sql.DB
	repo  *SqliteChatRepository
	alice user.User
	bob   user.User
	carol user.User
}

func newSqliteFixture(t *testing.T) sqliteFixture {
	t.Helper()
	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, filepath.Join(t.TempDir(), "chat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	users := useradapter.NewSqliteUserRepository(db)
	f := sqliteFixture{db: db, repo: NewSqliteChatRepository(db)}
	now := time.Now()
	f.alice = user.NewUser("alice", "alice@example.com", "hash", now)
	f.bob = user.NewUser("bob", "bob@example.com", "hash", now)
	f.carol = user.NewUser("carol", "carol@example.com", "hash", now)
	for _, u := range []user.User{f.alice, f.bob, f.carol} {
		require.NoError(t, users.CreateUser(ctx, u))
	}
	return f
}

func TestSqliteChatRepository_Conversations(t *testing.T) {
	ctx := context.Background()
	f := newSqliteFixture(t)
	now := time.Now()

	c, err := chat.NewConversation(f.alice.ID, f.bob.ID, now)
	require.NoError(t, err)
	require.NoError(t, f.repo.CreateConversation(ctx, c))

	t.Run("sad path - second conversation for the same pair", func(t *testing.T) {
		dup, err := chat.NewConversation(f.bob.ID, f.alice.ID, now)
		require.NoError(t, err)
		assert.True(t, errors.Is(f.repo.CreateConversation(ctx, dup), port.ErrConversationExists))
	})

	t.Run("happy path - find by pair in either order", func(t *testing.T) {
		got, err := f.repo.FindConversationByPair(ctx, chat.Pair(f.bob.ID, f.alice.ID))
		require.NoError(t, err)
		assert.Equal(t, c.ID, got.ID)
		assert.True(t, c.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("sad path - unknown pair", func(t *testing.T) {
		_, err := f.repo.FindConversationByPair(ctx, chat.Pair(f.alice.ID, f.carol.ID))
		assert.True(t, errors.Is(err, port.ErrConversationNotFound))
	})

	t.Run("happy path - participants", func(t *testing.T) {
		pair, err := f.repo.GetParticipants(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c.Participants, pair)

		_, err = f.repo.GetParticipants(ctx, "missing")
		assert.True(t, errors.Is(err, port.ErrConversationNotFound))
	})
}

func TestSqliteChatRepository_Messages(t *testing.T) {
	ctx := context.Background()
	f := newSqliteFixture(t)
	base := time.Now().UTC()

	ab, err := chat.NewConversation(f.alice.ID, f.bob.ID, base)
	require.NoError(t, err)
	ac, err := chat.NewConversation(f.alice.ID, f.carol.ID, base.Add(time.Second))
	require.NoError(t, err)
	require.NoError(t, f.repo.CreateConversation(ctx, ab))
	require.NoError(t, f.repo.CreateConversation(ctx, ac))

	// two messages share a timestamp so seq decides the order
	same := base.Add(2 * time.Second)
	m1, _ := chat.NewMessage(ab.ID, f.alice.ID, "alice", "hi", same)
	m2, _ := chat.NewMessage(ab.ID, f.bob.ID, "bob", "hello", same)
	m3, _ := chat.NewMessage(ac.ID, f.carol.ID, "carol", "hey alice", base.Add(3*time.Second))
	for _, m := range []*chat.Message{m1, m2, m3} {
		stored, err := f.repo.SaveMessage(ctx, *m)
		require.NoError(t, err)
		assert.Positive(t, stored.Seq)
		assert.True(t, stored.CreatedAt.Equal(m.CreatedAt))
		require.NoError(t, f.repo.TouchConversation(ctx, m.ConversationID, m.CreatedAt))
	}

	t.Run("happy path - ascending with tie break", func(t *testing.T) {
		msgs, err := f.repo.GetMessagesByConversation(ctx, ab.ID, 0)
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Equal(t, "hi", msgs[0].Text)
		assert.Equal(t, "hello", msgs[1].Text)
		assert.Less(t, msgs[0].Seq, msgs[1].Seq)
	})

	t.Run("happy path - limit keeps the newest", func(t *testing.T) {
		msgs, err := f.repo.GetMessagesByConversation(ctx, ab.ID, 1)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, "hello", msgs[0].Text)
	})

	t.Run("happy path - recent messages only from own conversations", func(t *testing.T) {
		msgs, err := f.repo.GetRecentMessagesForUser(ctx, f.bob.ID, 50)
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		for _, m := range msgs {
			assert.Equal(t, ab.ID, m.ConversationID)
		}

		msgs, err = f.repo.GetRecentMessagesForUser(ctx, f.alice.ID, 2)
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Equal(t, "hello", msgs[0].Text)
		assert.Equal(t, "hey alice", msgs[1].Text)
	})

	t.Run("happy path - inbox ordered by activity with last message", func(t *testing.T) {
		summaries, err := f.repo.ListConversationsByUser(ctx, f.alice.ID)
		require.NoError(t, err)
		require.Len(t, summaries, 2)
		assert.Equal(t, ac.ID, summaries[0].Conversation.ID)
		require.NotNil(t, summaries[0].LastMessage)
		assert.Equal(t, "hey alice", summaries[0].LastMessage.Text)
		assert.Equal(t, ab.ID, summaries[1].Conversation.ID)
		assert.Equal(t, "hello", summaries[1].LastMessage.Text)
		assert.Equal(t, "bob", summaries[1].LastMessage.SenderUsername)
	})

	t.Run("happy path - touch never moves backwards", func(t *testing.T) {
		require.NoError(t, f.repo.TouchConversation(ctx, ab.ID, base.Add(-time.Hour)))
		got, err := f.repo.GetConversation(ctx, ab.ID)
		require.NoError(t, err)
		assert.True(t, got.UpdatedAt.Equal(m2.CreatedAt))
	})

	t.Run("sad path - touch unknown conversation", func(t *testing.T) {
		assert.True(t, errors.Is(f.repo.TouchConversation(ctx, "missing", base), port.ErrConversationNotFound))
	})
}

func TestSqliteChatRepository_ClockStepBack(t *testing.T) {
	ctx := context.Background()
	f := newSqliteFixture(t)
	base := time.Now().UTC().Truncate(time.Microsecond)

	ab, err := chat.NewConversation(f.alice.ID, f.bob.ID, base)
	require.NoError(t, err)
	require.NoError(t, f.repo.CreateConversation(ctx, ab))

	first, _ := chat.NewMessage(ab.ID, f.alice.ID, "alice", "before the step", base.Add(time.Minute))
	_, err = f.repo.SaveMessage(ctx, *first)
	require.NoError(t, err)

	// the wall clock stepped back a minute before the reply was written
	reply, _ := chat.NewMessage(ab.ID, f.bob.ID, "bob", "after the step", base)
	stored, err := f.repo.SaveMessage(ctx, *reply)
	require.NoError(t, err)
	assert.True(t, stored.CreatedAt.Equal(first.CreatedAt))

	msgs, err := f.repo.GetMessagesByConversation(ctx, ab.ID, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "before the step", msgs[0].Text)
	assert.Equal(t, "after the step", msgs[1].Text)

	latest, err := f.repo.GetMessagesByConversation(ctx, ab.ID, 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "after the step", latest[0].Text)
}

func TestSqliteChatRepository_EmptyInbox(t *testing.T) {
	ctx := context.Background()
	f := newSqliteFixture(t)

	c, err := chat.NewConversation(f.bob.ID, f.carol.ID, time.Now())
	require.NoError(t, err)
	require.NoError(t, f.repo.CreateConversation(ctx, c))

	summaries, err := f.repo.ListConversationsByUser(ctx, f.bob.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Nil(t, summaries[0].LastMessage)

	summaries, err = f.repo.ListConversationsByUser(ctx, f.alice.ID)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}
