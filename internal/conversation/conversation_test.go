package conversation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthassist/backend/internal/conversation"
	"healthassist/backend/internal/model"
)

var greeting = model.Message{ID: "initial-message", Sender: model.SenderAssistant, Text: "Hello!"}

func user(id, text string) model.Message {
	return model.Message{ID: id, Sender: model.SenderUser, Text: text}
}

func insert(id, text string) model.Event {
	return model.Event{Kind: model.EventInsert, MessageID: id, Message: &model.Message{ID: id, Sender: model.SenderAssistant, Text: text}}
}

func replace(id, text string) model.Event {
	return model.Event{Kind: model.EventReplace, MessageID: id, Text: text}
}

func TestConversation_StreamedReply(t *testing.T) {
	c := conversation.New(greeting)

	require.NoError(t, c.Begin(user("u1", "hi"), "a1"))
	id, ok := c.InFlight()
	assert.True(t, ok)
	assert.Equal(t, "a1", id)

	require.NoError(t, c.Apply(insert("a1", "Hel")))
	require.NoError(t, c.Apply(replace("a1", "Hello")))
	c.Finish(true)

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "initial-message", msgs[0].ID)
	assert.Equal(t, "u1", msgs[1].ID)
	assert.Equal(t, "Hello", msgs[2].Text)

	// The greeting is display-only; history holds the completed exchange.
	assert.Equal(t, []model.Turn{
		{Role: model.SenderUser, Text: "hi"},
		{Role: model.SenderAssistant, Text: "Hello"},
	}, c.History())

	_, ok = c.InFlight()
	assert.False(t, ok)
}

func TestConversation_Invariants(t *testing.T) {
	t.Run("Only one reply in flight", func(t *testing.T) {
		c := conversation.New()
		require.NoError(t, c.Begin(user("u1", "a"), "a1"))
		assert.ErrorIs(t, c.Begin(user("u2", "b"), "a2"), conversation.ErrInFlight)
	})

	t.Run("Insert happens once", func(t *testing.T) {
		c := conversation.New()
		require.NoError(t, c.Begin(user("u1", "a"), "a1"))
		require.NoError(t, c.Apply(insert("a1", "x")))
		assert.ErrorIs(t, c.Apply(insert("a1", "y")), conversation.ErrOutOfOrder)
	})

	t.Run("Replace before insert", func(t *testing.T) {
		c := conversation.New()
		require.NoError(t, c.Begin(user("u1", "a"), "a1"))
		assert.ErrorIs(t, c.Apply(replace("a1", "x")), conversation.ErrOutOfOrder)
	})

	t.Run("Frozen messages cannot be replaced", func(t *testing.T) {
		c := conversation.New()
		require.NoError(t, c.Begin(user("u1", "a"), "a1"))
		require.NoError(t, c.Apply(insert("a1", "first")))
		c.Finish(true)
		require.NoError(t, c.Begin(user("u2", "b"), "a2"))

		assert.ErrorIs(t, c.Apply(replace("a1", "rewritten")), conversation.ErrWrongMessage)
		assert.Equal(t, "first", c.Messages()[1].Text)
	})

	t.Run("No reply in flight", func(t *testing.T) {
		c := conversation.New()
		assert.ErrorIs(t, c.Apply(insert("a1", "x")), conversation.ErrNoReply)
	})

	t.Run("Begin requires a user message", func(t *testing.T) {
		c := conversation.New()
		assert.Error(t, c.Begin(greeting, "a1"))
	})
}

func TestConversation_FailedReplyStaysOutOfHistory(t *testing.T) {
	c := conversation.New()
	require.NoError(t, c.Begin(user("u1", "hi"), "a1"))
	require.NoError(t, c.Apply(insert("a1", "Sorry, I encountered an error. Please try again.")))
	require.NoError(t, c.Apply(model.Event{Kind: model.EventError, MessageID: "a1"}))
	c.Finish(false)

	assert.Len(t, c.Messages(), 2)
	assert.Empty(t, c.History())

	// A manual retry starts a fresh reply.
	require.NoError(t, c.Begin(user("u2", "hi"), "a2"))
}

func TestConversation_CloneIsIndependent(t *testing.T) {
	c := conversation.New(greeting)
	require.NoError(t, c.Begin(user("u1", "hi"), "a1"))

	clone := c.Clone()
	require.NoError(t, c.Apply(insert("a1", "x")))

	assert.Len(t, clone.Messages(), 2)
	assert.Len(t, c.Messages(), 3)
	id, ok := clone.InFlight()
	assert.True(t, ok)
	assert.Equal(t, "a1", id)
}
