// Package ports defines interfaces for external dependencies.
// Clean Architecture: These are the boundaries - usecases depend on these abstractions,
// not concrete implementations. Adapters implement these interfaces.
// This follows Dependency Inversion Principle (DIP) strictly.
package ports

import (
	"context"
	"time"

	"github.com/0xcro3dile/docchat-go/internal/domain/entities"
)

// LLMService generates text responses from a language model.
// Single Responsibility: Only LLM inference, nothing else.
type LLMService interface {
	// Generate produces the whole response for a prompt (stream disabled).
	Generate(ctx context.Context, prompt string) (string, error)

	// GenerateStream produces a streaming response. Each StreamToken is one
	// decoded backend chunk; the channel closes after the done sentinel or
	// a terminal error token.
	GenerateStream(ctx context.Context, prompt string) (<-chan StreamToken, error)
}

// StreamToken is a single decoded chunk of a streaming LLM response.
type StreamToken struct {
	Response string
	Done     bool
	Err      error
}

// DocumentResolver returns the textual content of an uploaded document.
type DocumentResolver interface {
	// Resolve maps a document ID to its plain-text content.
	// Returns entities.ErrUnsupportedFormat for an unknown extension and
	// entities.ErrDocumentNotFound when no content is available.
	Resolve(ctx context.Context, documentID string) (string, error)
}

// DocumentStore holds the plain-text content of uploaded .txt documents,
// keyed by document ID. Read-mostly: writes come from the upload handler
// and the uploads-dir watcher.
type DocumentStore interface {
	Get(documentID string) (string, bool)
	Set(documentID, content string)
	Delete(documentID string)
}

// PDFExtractor extracts text from a PDF on disk.
// Extraction failure is reported as an error; callers downgrade it to
// a not-found condition rather than propagating it.
type PDFExtractor interface {
	Extract(ctx context.Context, filePath string) (string, error)
}

// ConversationStore owns all per-document conversation histories.
// Implementations must make each operation atomic per document ID;
// operations on different IDs may run concurrently.
type ConversationStore interface {
	// Append records a completed user/assistant exchange, creating the
	// history if absent and trimming to entities.MaxMessages (FIFO).
	Append(documentID, question, answer string)

	// Get returns a copy of the history; empty history if absent.
	Get(documentID string) entities.ConversationHistory

	// Clear removes the history if present. Idempotent.
	Clear(documentID string)

	// SweepExpired removes every history whose lastUpdated is older than
	// ttl relative to now, returning how many were removed.
	SweepExpired(now time.Time, ttl time.Duration) int
}

// FileWatcher monitors a directory for changes.
type FileWatcher interface {
	// Watch starts monitoring the directory and emits events.
	Watch(ctx context.Context, dir string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
)
