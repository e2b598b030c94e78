package chat

import (
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pairchat/pkg/errors"
)

func TestNewConversation(t *testing.T) {
	now := time.Now()

	t.Run("happy path - normalized pair", func(t *testing.T) {
		c1, err := NewConversation("bbb", "aaa", now)
		require.NoError(t, err)
		c2, err := NewConversation("aaa", "bbb", now)
		require.NoError(t, err)

		assert.Equal(t, [2]string{"aaa", "bbb"}, c1.Participants)
		assert.Equal(t, c1.Participants, c2.Participants)
		assert.Equal(t, c1.CreatedAt, c1.UpdatedAt)
		assert.NotEqual(t, c1.ID, c2.ID)
	})

	t.Run("sad path - self", func(t *testing.T) {
		_, err := NewConversation("aaa", "aaa", now)
		assert.True(t, stderrors.Is(err, errors.ErrSelfConversation))
	})

	t.Run("sad path - missing participant", func(t *testing.T) {
		_, err := NewConversation("aaa", "", now)
		assert.True(t, stderrors.Is(err, errors.ErrParticipantRequired))
	})
}

func TestConversation_Membership(t *testing.T) {
	c := Conversation{Participants: Pair("alice", "bob")}
	assert.True(t, c.HasParticipant("alice"))
	assert.True(t, c.HasParticipant("bob"))
	assert.False(t, c.HasParticipant("carol"))
	assert.False(t, c.HasParticipant(""))
}

func TestNewMessage(t *testing.T) {
	now := time.Now()

	t.Run("happy path - trims text", func(t *testing.T) {
		m, err := NewMessage("c1", "alice", "alice", "  hi \n", now)
		require.NoError(t, err)
		assert.Equal(t, "hi", m.Text)
		assert.Equal(t, "alice", m.SenderUsername)
		assert.NotEmpty(t, m.ID)
	})

	t.Run("happy path - exactly max length", func(t *testing.T) {
		_, err := NewMessage("c1", "alice", "alice", strings.Repeat("a", MaxMessageLength), now)
		assert.NoError(t, err)
	})

	t.Run("happy path - multibyte characters counted as characters", func(t *testing.T) {
		_, err := NewMessage("c1", "alice", "alice", strings.Repeat("é", MaxMessageLength), now)
		assert.NoError(t, err)
	})

	t.Run("sad path - one over max length", func(t *testing.T) {
		_, err := NewMessage("c1", "alice", "alice", strings.Repeat("a", MaxMessageLength+1), now)
		assert.True(t, stderrors.Is(err, errors.ErrMessageTooLong))
	})

	t.Run("sad path - whitespace only", func(t *testing.T) {
		_, err := NewMessage("c1", "alice", "alice", " \t\n ", now)
		assert.True(t, stderrors.Is(err, errors.ErrMessageRequired))
	})

	t.Run("sad path - no conversation", func(t *testing.T) {
		_, err := NewMessage("", "alice", "alice", "hi", now)
		assert.True(t, stderrors.Is(err, errors.ErrConversationMissing))
	})
}

func TestNewMessageEvent_Recipients(t *testing.T) {
	e := NewMessageEvent{Message: Message{SenderID: "alice"}, Participants: Pair("alice", "bob")}
	assert.Equal(t, []string{"bob"}, e.Recipients())
}
