package convstore

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xcro3dile/docchat-go/internal/domain/entities"
)

func TestAppend_RecordsPairs(t *testing.T) {
	store := NewMemoryStore()

	store.Append("doc.txt", "What is this?", "A document.")
	store.Append("doc.txt", "Anything else?", "No.")

	history := store.Get("doc.txt")
	require.Len(t, history.Messages, 4)
	assert.Equal(t, "user", history.Messages[0].Role)
	assert.Equal(t, "What is this?", history.Messages[0].Content)
	assert.Equal(t, "assistant", history.Messages[1].Role)
	assert.Equal(t, "user", history.Messages[2].Role)
	assert.Equal(t, "assistant", history.Messages[3].Role)
	assert.False(t, history.LastUpdated.IsZero())
}

func TestAppend_NeverExceedsBound(t *testing.T) {
	store := NewMemoryStore()

	for i := 0; i < 50; i++ {
		store.Append("doc.txt", fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
		history := store.Get("doc.txt")
		assert.LessOrEqual(t, len(history.Messages), entities.MaxMessages)
	}
}

func TestAppend_EvictsOldestFirst(t *testing.T) {
	store := NewMemoryStore()

	// 12 exchanges = 24 messages; only the last 10 exchanges survive.
	for i := 0; i < 12; i++ {
		store.Append("doc.txt", fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}

	history := store.Get("doc.txt")
	require.Len(t, history.Messages, entities.MaxMessages)
	assert.Equal(t, "q2", history.Messages[0].Content)
	assert.Equal(t, "a11", history.Messages[len(history.Messages)-1].Content)
}

func TestGet_AbsentReturnsEmptyHistory(t *testing.T) {
	store := NewMemoryStore()

	history := store.Get("never-seen.txt")

	assert.Empty(t, history.Messages)
	assert.True(t, history.LastUpdated.IsZero())
}

func TestGet_ReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	store.Append("doc.txt", "q", "a")

	history := store.Get("doc.txt")
	history.Messages[0].Content = "tampered"

	assert.Equal(t, "q", store.Get("doc.txt").Messages[0].Content)
}

func TestClear_Idempotent(t *testing.T) {
	store := NewMemoryStore()
	store.Append("doc.txt", "q", "a")

	store.Clear("doc.txt")
	assert.Empty(t, store.Get("doc.txt").Messages)

	// Clearing an absent entry is a no-op, not an error.
	store.Clear("doc.txt")
	store.Clear("never-seen.txt")
}

func TestSweepExpired_RemovesOnlyExpired(t *testing.T) {
	store := NewMemoryStore()
	store.Append("stale.txt", "q", "a")
	store.Append("fresh.txt", "q", "a")

	// Age only stale.txt past the TTL.
	sh := store.shardFor("stale.txt")
	sh.mu.Lock()
	sh.histories["stale.txt"].LastUpdated = time.Now().Add(-2 * time.Hour)
	sh.mu.Unlock()

	removed := store.SweepExpired(time.Now(), time.Hour)

	assert.Equal(t, 1, removed)
	assert.Empty(t, store.Get("stale.txt").Messages)
	assert.Len(t, store.Get("fresh.txt").Messages, 2)
}

func TestSweepExpired_KeepsEntriesAtBoundary(t *testing.T) {
	store := NewMemoryStore()
	store.Append("doc.txt", "q", "a")
	last := store.Get("doc.txt").LastUpdated

	// now - lastUpdated == ttl exactly: not yet expired.
	removed := store.SweepExpired(last.Add(time.Hour), time.Hour)

	assert.Equal(t, 0, removed)
	assert.Len(t, store.Get("doc.txt").Messages, 2)
}

func TestConcurrentAppends_HistoryNeverCorrupts(t *testing.T) {
	store := NewMemoryStore()
	docs := []string{"a.txt", "b.txt", "c.pdf", "d.pdf"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				doc := docs[j%len(docs)]
				store.Append(doc, fmt.Sprintf("q%d-%d", n, j), fmt.Sprintf("a%d-%d", n, j))
				store.Get(doc)
				if j%25 == 0 {
					store.SweepExpired(time.Now(), time.Hour)
				}
			}
		}(i)
	}
	wg.Wait()

	for _, doc := range docs {
		history := store.Get(doc)
		require.LessOrEqual(t, len(history.Messages), entities.MaxMessages)
		require.Equal(t, 0, len(history.Messages)%2, "half-turn persisted for %s", doc)
		for i, msg := range history.Messages {
			want := "user"
			if i%2 == 1 {
				want = "assistant"
			}
			require.Equal(t, want, msg.Role)
		}
	}
}
