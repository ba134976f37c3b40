package repositories

import (
	"sort"
	"sync"
)

// memoryTable is a concurrency-safe map of rows keyed by an auto-incremented ID.
type memoryTable[T any] struct {
	mu     sync.RWMutex
	rows   map[uint]T
	nextID uint
	idOf   func(*T) *uint
}

func newMemoryTable[T any](idOf func(*T) *uint) *memoryTable[T] {
	return &memoryTable[T]{rows: make(map[uint]T), idOf: idOf}
}

func (t *memoryTable[T]) list() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]uint, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *memoryTable[T]) get(id uint) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	return row, ok
}

// insert assigns the next ID to row and stores a copy.
func (t *memoryTable[T]) insert(row *T) uint {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	*t.idOf(row) = t.nextID
	t.rows[t.nextID] = *row
	return t.nextID
}

// replace overwrites an existing row and returns the previous value.
func (t *memoryTable[T]) replace(row T) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := *t.idOf(&row)
	old, ok := t.rows[id]
	if ok {
		t.rows[id] = row
	}
	return old, ok
}

// restore puts row back unconditionally. Used to undo a delete or update.
func (t *memoryTable[T]) restore(row T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[*t.idOf(&row)] = row
}

func (t *memoryTable[T]) remove(id uint) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	old, ok := t.rows[id]
	if ok {
		delete(t.rows, id)
	}
	return old, ok
}

// journal collects undo steps recorded inside a memory transaction.
type journal struct {
	undo []func()
}

func (j *journal) record(step func()) {
	if j != nil {
		j.undo = append(j.undo, step)
	}
}

func (j *journal) rollback() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}
