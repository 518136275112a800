package timeline

import "github.com/roach88/motion/internal/action"

// QueueCache remembers the one action selected for each key during a mark
// pass. Caching a new action for a key un-marks the previous one, so every
// key carries at most one mark per pass regardless of the order pipelines
// sample in.
type QueueCache struct {
	cache map[action.Key]action.ID
}

// NewQueueCache creates an empty cache.
func NewQueueCache() *QueueCache {
	return &QueueCache{cache: make(map[action.Key]action.ID)}
}

// Cache records id as the selection for key and clears the mark of the
// action it replaces.
func (q *QueueCache) Cache(key action.Key, id action.ID, store *action.Store) {
	if prev, ok := q.cache[key]; ok && prev != id {
		store.ClearMark(prev)
	}
	q.cache[key] = id
}

// Get returns the action cached for key.
func (q *QueueCache) Get(key action.Key) (action.ID, bool) {
	id, ok := q.cache[key]
	return id, ok
}

// Len returns the number of cached keys.
func (q *QueueCache) Len() int {
	return len(q.cache)
}

// Clear empties the cache.
func (q *QueueCache) Clear() {
	clear(q.cache)
}
