package entities

import "errors"

// Request-level failures. The HTTP layer translates these to status codes;
// everything else surfaces as a generic 500.
var (
	// ErrInvalidRequest means the question or document ID is missing.
	ErrInvalidRequest = errors.New("question and documentId are required")

	// ErrUnsupportedFormat means the document ID has an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported file type")

	// ErrDocumentNotFound means no content could be resolved for the ID.
	// PDF extraction failure deliberately maps here rather than to a
	// backend error, so the resolver's contract stays a simple found/not.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrBackendUnavailable means the LLM call failed or returned non-2xx.
	ErrBackendUnavailable = errors.New("llm backend unavailable")

	// ErrStreamDecode means a malformed chunk arrived mid-stream.
	ErrStreamDecode = errors.New("malformed stream chunk")
)
