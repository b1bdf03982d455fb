// Package docstore holds uploaded document text in memory.
// Clean Architecture: Adapter implementing ports.DocumentStore.
package docstore

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/0xcro3dile/docchat-go/internal/domain/ports"
)

// MemoryStore maps document IDs to plain-text content. The upload handler
// and the uploads-dir watcher write; request handling only reads.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]string
}

// NewMemoryStore creates an empty document store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]string)}
}

// Get returns the stored content for a document ID.
func (s *MemoryStore) Get(documentID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.docs[documentID]
	return content, ok
}

// Set stores content under a document ID.
func (s *MemoryStore) Set(documentID, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[documentID] = content
}

// Delete removes a document ID. No-op if absent.
func (s *MemoryStore) Delete(documentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, documentID)
}

// LoadFromDir reads every regular file in dir into the store, keyed by
// filename. Called once at startup so documents survive a restart of the
// process even though in-memory state does not.
func (s *MemoryStore) LoadFromDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("Uploads folder does not exist", "dir", dir)
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			slog.Warn("Skipping unreadable upload", "file", entry.Name(), "error", err)
			continue
		}
		s.Set(entry.Name(), string(content))
	}
	return nil
}

// ApplyEvents consumes file watcher events and keeps the store in sync with
// the uploads directory. Runs until the events channel closes or ctx ends.
func (s *MemoryStore) ApplyEvents(ctx context.Context, events <-chan ports.FileEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			documentID := filepath.Base(event.Path)
			switch event.Operation {
			case ports.FileCreated, ports.FileModified:
				content, err := os.ReadFile(event.Path)
				if err != nil {
					slog.Warn("Failed to read changed upload", "file", documentID, "error", err)
					continue
				}
				s.Set(documentID, string(content))
			case ports.FileDeleted:
				s.Delete(documentID)
			}
		}
	}
}
