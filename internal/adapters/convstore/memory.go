// Package convstore provides the in-process conversation store.
// Clean Architecture: Adapter implementing ports.ConversationStore.
// Swappable for an external cache without changing the usecases.
package convstore

import (
	"hash/fnv"
	"sync"
	"time"

	"github.com/0xcro3dile/docchat-go/internal/domain/entities"
)

const shardCount = 16

// MemoryStore is a sharded-lock map of document ID -> conversation history.
// Each operation is atomic per document ID; different IDs land on
// independent shards so they never contend.
type MemoryStore struct {
	shards [shardCount]shard
}

type shard struct {
	mu        sync.Mutex
	histories map[string]*entities.ConversationHistory
}

// NewMemoryStore creates an empty conversation store.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{}
	for i := range s.shards {
		s.shards[i].histories = make(map[string]*entities.ConversationHistory)
	}
	return s
}

func (s *MemoryStore) shardFor(documentID string) *shard {
	h := fnv.New32a()
	h.Write([]byte(documentID))
	return &s.shards[h.Sum32()%shardCount]
}

// Append records one completed user/assistant exchange. The pair lands
// atomically: no reader ever observes a dangling half-turn.
func (s *MemoryStore) Append(documentID, question, answer string) {
	now := time.Now()
	sh := s.shardFor(documentID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	history, ok := sh.histories[documentID]
	if !ok {
		history = &entities.ConversationHistory{}
		sh.histories[documentID] = history
	}

	history.Messages = append(history.Messages,
		entities.ConversationEntry{Role: "user", Content: question, Timestamp: now},
		entities.ConversationEntry{Role: "assistant", Content: answer, Timestamp: now},
	)

	// Keep only the last 10 exchanges, oldest evicted first.
	if n := len(history.Messages); n > entities.MaxMessages {
		history.Messages = append(history.Messages[:0:0], history.Messages[n-entities.MaxMessages:]...)
	}

	if now.After(history.LastUpdated) {
		history.LastUpdated = now
	}
}

// Get returns a copy of the history for the document; an empty history if
// none exists. Callers may not mutate store state through the result.
func (s *MemoryStore) Get(documentID string) entities.ConversationHistory {
	sh := s.shardFor(documentID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	history, ok := sh.histories[documentID]
	if !ok {
		return entities.ConversationHistory{}
	}

	out := entities.ConversationHistory{
		Messages:    make([]entities.ConversationEntry, len(history.Messages)),
		LastUpdated: history.LastUpdated,
	}
	copy(out.Messages, history.Messages)
	return out
}

// Clear removes the history for the document. No-op if absent.
func (s *MemoryStore) Clear(documentID string) {
	sh := s.shardFor(documentID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	delete(sh.histories, documentID)
}

// SweepExpired removes every history whose lastUpdated is older than ttl
// relative to now. Runs both on the periodic timer and opportunistically
// before a new question, so expiry does not depend on timer scheduling.
func (s *MemoryStore) SweepExpired(now time.Time, ttl time.Duration) int {
	removed := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		for id, history := range sh.histories {
			if now.Sub(history.LastUpdated) > ttl {
				delete(sh.histories, id)
				removed++
			}
		}
		sh.mu.Unlock()
	}
	return removed
}
