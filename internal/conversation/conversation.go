// Package conversation holds the display state of one chat.
package conversation

import (
	"errors"
	"fmt"

	"healthassist/backend/internal/model"
)

var (
	ErrInFlight     = errors.New("conversation: a reply is already in flight")
	ErrNoReply      = errors.New("conversation: no reply in flight")
	ErrWrongMessage = errors.New("conversation: event does not target the in-flight reply")
	ErrOutOfOrder   = errors.New("conversation: event out of order")
)

type reply struct {
	userText string
	id       string
	index    int // position in messages once inserted, -1 before
}

// Conversation is an append-only list of messages. Only the in-flight
// assistant reply may change, and only by whole-text replacement. It is not
// safe for concurrent use; callers serialize access.
type Conversation struct {
	messages []model.Message
	history  []model.Turn
	inFlight *reply
}

// New returns a conversation that starts with the given messages. They are
// shown but not sent to the model.
func New(greeting ...model.Message) *Conversation {
	return &Conversation{messages: append([]model.Message(nil), greeting...)}
}

// Begin appends the user message and opens a reply slot for replyID. Every
// earlier message is frozen from here on.
func (c *Conversation) Begin(user model.Message, replyID string) error {
	if c.inFlight != nil {
		return ErrInFlight
	}
	if user.Sender != model.SenderUser {
		return fmt.Errorf("conversation: begin with %q message", user.Sender)
	}
	c.messages = append(c.messages, user)
	c.inFlight = &reply{userText: user.Text, id: replyID, index: -1}
	return nil
}

// Apply applies an insert or replace event to the in-flight reply. Error and
// done events carry no message change.
func (c *Conversation) Apply(ev model.Event) error {
	switch ev.Kind {
	case model.EventError, model.EventDone:
		return nil
	case model.EventInsert, model.EventReplace:
	default:
		return fmt.Errorf("conversation: unknown event kind %q", ev.Kind)
	}

	if c.inFlight == nil {
		return ErrNoReply
	}
	if ev.MessageID != c.inFlight.id {
		return ErrWrongMessage
	}

	if ev.Kind == model.EventInsert {
		if c.inFlight.index >= 0 || ev.Message == nil {
			return ErrOutOfOrder
		}
		c.inFlight.index = len(c.messages)
		c.messages = append(c.messages, *ev.Message)
		return nil
	}

	if c.inFlight.index < 0 {
		return ErrOutOfOrder
	}
	c.messages[c.inFlight.index].Text = ev.Text
	return nil
}

// Finish closes the in-flight reply. A successful, non-empty reply enters the
// model history together with its user message.
func (c *Conversation) Finish(ok bool) {
	if c.inFlight == nil {
		return
	}
	if ok && c.inFlight.index >= 0 {
		c.history = append(c.history,
			model.Turn{Role: model.SenderUser, Text: c.inFlight.userText},
			model.Turn{Role: model.SenderAssistant, Text: c.messages[c.inFlight.index].Text},
		)
	}
	c.inFlight = nil
}

// InFlight returns the id of the reply being streamed, if any.
func (c *Conversation) InFlight() (string, bool) {
	if c.inFlight == nil {
		return "", false
	}
	return c.inFlight.id, true
}

// Messages returns a copy of the displayed messages in order.
func (c *Conversation) Messages() []model.Message {
	return append([]model.Message(nil), c.messages...)
}

// History returns a copy of the completed model turns.
func (c *Conversation) History() []model.Turn {
	return append([]model.Turn(nil), c.history...)
}

// Clone returns a deep copy.
func (c *Conversation) Clone() *Conversation {
	out := &Conversation{messages: c.Messages(), history: c.History()}
	if c.inFlight != nil {
		r := *c.inFlight
		out.inFlight = &r
	}
	return out
}
