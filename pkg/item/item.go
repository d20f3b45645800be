package item

import (
	"context"
	"sort"
	"strconv"
)

// Item is a single record in the collection.
type Item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Store defines the operations every item backend supports.
type Store interface {
	// List returns all items ordered by ascending id. Never nil.
	List(ctx context.Context) ([]Item, error)

	// Create assigns the next unused id and inserts a new item.
	Create(ctx context.Context, name string) (Item, error)

	// Get returns the item with the given id or a *NotFoundError.
	Get(ctx context.Context, id int64) (Item, error)

	// Update renames the item with the given id or returns a *NotFoundError.
	Update(ctx context.Context, id int64, name string) (Item, error)

	// Delete removes the item with the given id or returns a *NotFoundError.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of stored items.
	Count(ctx context.Context) (int, error)

	// Close releases any resources held by the store.
	Close() error
}

// ParseID converts a path segment to an item id.
// Anything that is not a positive integer can never name an item,
// so it is reported as a *NotFoundError rather than a validation failure.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, &NotFoundError{Ref: s}
	}
	return id, nil
}

func sortByID(items []Item) {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
}
