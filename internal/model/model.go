package model

import "time"

// Sender identifies who authored a message in the conversation.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is a single entry in the conversation shown to the user.
type Message struct {
	ID     string `json:"id"`
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

// Turn is one entry of the history sent to the language model.
// Only completed exchanges become turns.
type Turn struct {
	Role Sender `json:"role"`
	Text string `json:"text"`
}

// EventKind enumerates the conversation updates produced while a reply streams.
type EventKind string

const (
	// EventInsert appends a new assistant message. Emitted once per reply.
	EventInsert EventKind = "insert"
	// EventReplace swaps the full text of the in-flight assistant message.
	EventReplace EventKind = "replace"
	// EventError signals that the reply failed. It never rewrites a message.
	EventError EventKind = "error"
	// EventDone marks the end of a successful reply.
	EventDone EventKind = "done"
)

// Event is a single conversation update. It is also the SSE payload.
type Event struct {
	Kind      EventKind `json:"kind"`
	Message   *Message  `json:"message,omitempty"`
	MessageID string    `json:"message_id,omitempty"`
	Text      string    `json:"text,omitempty"`
	Error     string    `json:"error,omitempty"`
	HTML      string    `json:"html,omitempty"`
}

// CitationSource is the title/link pair carried by a grounding citation.
type CitationSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Citation is a grounding entry returned alongside a generated answer.
// An entry may carry a web link, a map place, both, or neither.
type Citation struct {
	Web  *CitationSource `json:"web,omitempty"`
	Maps *CitationSource `json:"maps,omitempty"`
}

// Position is a geographic coordinate pair.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Profile is the mock user profile.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SymptomResult is the answer of the symptom checker.
type SymptomResult struct {
	Text string `json:"text"`
	HTML string `json:"html"`
}

// AppointmentResult is the answer of the appointment search.
type AppointmentResult struct {
	Summary string     `json:"summary"`
	HTML    string     `json:"html"`
	Places  []Citation `json:"places"`
}

// Conversation is a read-only view of a session's chat.
type Conversation struct {
	SessionID string    `json:"session_id"`
	Messages  []Message `json:"messages"`
	Streaming bool      `json:"streaming"`
	StartedAt time.Time `json:"started_at"`
}
