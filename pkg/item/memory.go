package item

import (
	"context"
	"sync"
)

// MemoryStore keeps items in process memory.
// Its contents live exactly as long as the process.
type MemoryStore struct {
	mu     sync.RWMutex
	items  map[int64]*Item
	nextID int64
}

// NewMemoryStore creates an empty in-memory store whose first id is 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items:  make(map[int64]*Item),
		nextID: 1,
	}
}

// List returns a snapshot of all items ordered by id.
func (s *MemoryStore) List(_ context.Context) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, *it)
	}
	sortByID(out)
	return out, nil
}

// Create inserts a new item under the next unused id.
func (s *MemoryStore) Create(_ context.Context, name string) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it := &Item{ID: s.nextID, Name: name}
	s.items[it.ID] = it
	s.nextID++
	return *it, nil
}

// Get retrieves a single item by id.
func (s *MemoryStore) Get(_ context.Context, id int64) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[id]
	if !ok {
		return Item{}, &NotFoundError{ID: id}
	}
	return *it, nil
}

// Update renames an existing item in place.
func (s *MemoryStore) Update(_ context.Context, id int64, name string) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[id]
	if !ok {
		return Item{}, &NotFoundError{ID: id}
	}
	it.Name = name
	return *it, nil
}

// Delete removes an item. The id is not handed out again.
func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return &NotFoundError{ID: id}
	}
	delete(s.items, id)
	return nil
}

// Count returns the number of stored items.
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
