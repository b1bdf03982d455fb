// Package entities contains core business entities.
// These are the enterprise business rules - pure domain objects with no external dependencies.
package entities

import "time"

// MaxMessages bounds a conversation history to the last 10 exchanges.
const MaxMessages = 20

// ConversationEntry is one turn in a conversation. Immutable once created.
type ConversationEntry struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationHistory is the bounded per-document message log.
// Owned exclusively by the conversation store; mutate only through it.
type ConversationHistory struct {
	Messages    []ConversationEntry `json:"messages"`
	LastUpdated time.Time           `json:"lastUpdated"`
}

// AskRequest is a question against one uploaded document.
type AskRequest struct {
	DocumentID   string
	Question     string
	ClearHistory bool
}

// AskResponse carries the LLM's whole answer for the blocking path.
type AskResponse struct {
	Answer string
}

// StreamEventType tags events relayed to a streaming client.
type StreamEventType string

const (
	// EventChunk carries one decoded backend chunk.
	EventChunk StreamEventType = "chunk"
	// EventEnd terminates a stream after the backend's done sentinel.
	EventEnd StreamEventType = "end"
	// EventError terminates a stream after a backend or decode failure.
	EventError StreamEventType = "error"
)

// StreamEvent is one typed event on the streaming path. A stream delivers
// zero or more chunk events followed by exactly one end or error event.
type StreamEvent struct {
	Type     StreamEventType
	Response string // incremental answer fragment (chunk only)
	Done     bool   // backend done flag carried by the chunk
	Err      string // human-readable message (error only)
}
