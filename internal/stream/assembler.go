// Package stream turns the fragments of a streamed model reply into
// conversation updates.
//
// An Assembler is scoped to one reply. The first fragment inserts the
// assistant message; every later fragment replaces its text with the full
// accumulated reply, never a delta. Fragments must be fed sequentially.
package stream

import (
	"strings"

	"healthassist/backend/internal/llm"
	"healthassist/backend/internal/model"
)

// ErrorText replaces the model output when a reply fails before its first fragment.
const ErrorText = "Sorry, I encountered an error. Please try again."

// Sink receives the events produced by an Assembler, in order.
type Sink func(model.Event)

// Assembler accumulates fragments of one reply.
type Assembler struct {
	messageID string
	sink      Sink

	acc      strings.Builder
	started  bool
	finished bool
	failed   bool
}

// NewAssembler returns an assembler for the assistant message messageID.
func NewAssembler(messageID string, sink Sink) *Assembler {
	return &Assembler{messageID: messageID, sink: sink}
}

// OnFragment appends fragment and emits an insert (first fragment) or a
// replace carrying the whole accumulated text. Ignored once finished.
func (a *Assembler) OnFragment(fragment string) {
	if a.finished {
		return
	}
	a.acc.WriteString(fragment)
	text := a.acc.String()

	if !a.started {
		a.started = true
		a.sink(model.Event{
			Kind:      model.EventInsert,
			MessageID: a.messageID,
			Message:   &model.Message{ID: a.messageID, Sender: model.SenderAssistant, Text: text},
		})
		return
	}
	a.sink(model.Event{Kind: model.EventReplace, MessageID: a.messageID, Text: text})
}

// OnComplete marks the reply finished. The last emitted text is final.
func (a *Assembler) OnComplete() {
	a.finished = true
}

// OnError terminates the reply. If nothing was shown yet the assistant message
// is inserted with ErrorText; partial text is never overwritten. In both cases
// an error event follows.
func (a *Assembler) OnError(err error) {
	if a.finished {
		return
	}
	a.finished = true
	a.failed = true

	if !a.started {
		a.started = true
		a.sink(model.Event{
			Kind:      model.EventInsert,
			MessageID: a.messageID,
			Message:   &model.Message{ID: a.messageID, Sender: model.SenderAssistant, Text: ErrorText},
		})
	}
	a.sink(model.Event{Kind: model.EventError, MessageID: a.messageID, Error: ErrorText})
}

// MessageID returns the id of the assistant message being assembled.
func (a *Assembler) MessageID() string { return a.messageID }

// Text returns the accumulated reply.
func (a *Assembler) Text() string { return a.acc.String() }

// Started reports whether at least one message event was emitted.
func (a *Assembler) Started() bool { return a.started }

// Finished reports whether the reply completed or failed.
func (a *Assembler) Finished() bool { return a.finished }

// Failed reports whether the reply ended with an error.
func (a *Assembler) Failed() bool { return a.failed }

// Drain feeds every non-empty fragment from a channel-based producer into a,
// then finishes it with the producer's result read from errc. fragments must
// be closed by the producer before it reports on errc.
func Drain(a *Assembler, fragments <-chan llm.StreamResponse, errc <-chan error) error {
	for chunk := range fragments {
		if chunk.Content == "" {
			continue
		}
		a.OnFragment(chunk.Content)
	}
	if err := <-errc; err != nil {
		a.OnError(err)
		return err
	}
	a.OnComplete()
	return nil
}
