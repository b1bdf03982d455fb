// Package resolver maps document IDs to textual content.
// Clean Architecture: Adapter implementing ports.DocumentResolver.
// One ContentSource per format; adding a format means adding a source,
// not another branch.
package resolver

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/0xcro3dile/docchat-go/internal/domain/entities"
	"github.com/0xcro3dile/docchat-go/internal/domain/ports"
)

// ContentSource resolves content for one document format.
type ContentSource interface {
	Resolve(ctx context.Context, documentID string) (string, error)
}

// TextSource serves .txt documents from the in-memory document store.
type TextSource struct {
	docs ports.DocumentStore
}

// Resolve looks the ID up in the text map.
func (s *TextSource) Resolve(ctx context.Context, documentID string) (string, error) {
	content, ok := s.docs.Get(documentID)
	if !ok || content == "" {
		return "", entities.ErrDocumentNotFound
	}
	return content, nil
}

// PDFSource serves .pdf documents via the extraction collaborator.
type PDFSource struct {
	uploadsDir string
	extractor  ports.PDFExtractor
}

// Resolve extracts text from the PDF in the uploads directory.
// Extraction failure is downgraded to not-found so downstream logic
// degrades to "document not found" instead of a hard failure.
func (s *PDFSource) Resolve(ctx context.Context, documentID string) (string, error) {
	filePath := filepath.Join(s.uploadsDir, documentID)
	text, err := s.extractor.Extract(ctx, filePath)
	if err != nil {
		slog.Warn("PDF extraction failed", "document_id", documentID, "error", err)
		return "", entities.ErrDocumentNotFound
	}
	if text == "" {
		return "", entities.ErrDocumentNotFound
	}
	return text, nil
}

// Resolver dispatches to a ContentSource by file extension.
type Resolver struct {
	sources map[string]ContentSource
}

// New creates a resolver for .txt and .pdf documents.
func New(docs ports.DocumentStore, extractor ports.PDFExtractor, uploadsDir string) *Resolver {
	return &Resolver{
		sources: map[string]ContentSource{
			".txt": &TextSource{docs: docs},
			".pdf": &PDFSource{uploadsDir: uploadsDir, extractor: extractor},
		},
	}
}

// Resolve returns the content for a document ID. Read-only: no shared
// state is mutated on this path.
func (r *Resolver) Resolve(ctx context.Context, documentID string) (string, error) {
	ext := strings.ToLower(filepath.Ext(documentID))
	source, ok := r.sources[ext]
	if !ok {
		return "", entities.ErrUnsupportedFormat
	}
	return source.Resolve(ctx, documentID)
}
