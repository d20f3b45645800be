package item

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeFactories lets every behavior test run against each backend.
func storeFactories(t *testing.T) map[string]func() Store {
	t.Helper()
	return map[string]func() Store{
		"memory": func() Store { return NewMemoryStore() },
		"sqlite": func() Store {
			s, err := OpenSQLite(filepath.Join(t.TempDir(), "items.db"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
	}
}

func TestStore_ListInitiallyEmpty(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			items, err := newStore().List(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, items)
			assert.Empty(t, items)
		})
	}
}

func TestStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := newStore()

			created, err := s.Create(ctx, "Item 1")
			require.NoError(t, err)
			assert.Equal(t, int64(1), created.ID)
			assert.Equal(t, "Item 1", created.Name)

			got, err := s.Get(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, created, got)
		})
	}
}

func TestStore_IDsNeverReused(t *testing.T) {
	ctx := context.Background()
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := newStore()

			a, err := s.Create(ctx, "a")
			require.NoError(t, err)
			b, err := s.Create(ctx, "b")
			require.NoError(t, err)
			require.NoError(t, s.Delete(ctx, b.ID))
			require.NoError(t, s.Delete(ctx, a.ID))

			c, err := s.Create(ctx, "c")
			require.NoError(t, err)
			assert.Greater(t, b.ID, a.ID)
			assert.Greater(t, c.ID, b.ID)
		})
	}
}

func TestStore_Update(t *testing.T) {
	ctx := context.Background()
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := newStore()
			created, err := s.Create(ctx, "Old")
			require.NoError(t, err)

			updated, err := s.Update(ctx, created.ID, "New")
			require.NoError(t, err)
			assert.Equal(t, Item{ID: created.ID, Name: "New"}, updated)

			got, err := s.Get(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, "New", got.Name)
		})
	}
}

func TestStore_MissingIDs(t *testing.T) {
	ctx := context.Background()
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := newStore()
			var nf *NotFoundError

			_, err := s.Get(ctx, 42)
			assert.True(t, errors.As(err, &nf))
			assert.Equal(t, int64(42), nf.ID)

			_, err = s.Update(ctx, 42, "x")
			assert.True(t, errors.As(err, &nf))

			err = s.Delete(ctx, 42)
			assert.True(t, errors.As(err, &nf))
		})
	}
}

func TestStore_DeleteThenGet(t *testing.T) {
	ctx := context.Background()
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := newStore()
			created, err := s.Create(ctx, "ToDelete")
			require.NoError(t, err)

			require.NoError(t, s.Delete(ctx, created.ID))

			_, err = s.Get(ctx, created.ID)
			var nf *NotFoundError
			assert.True(t, errors.As(err, &nf))

			n, err := s.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 0, n)
		})
	}
}

func TestStore_ListOrderedByID(t *testing.T) {
	ctx := context.Background()
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := newStore()
			for _, n := range []string{"c", "a", "b"} {
				_, err := s.Create(ctx, n)
				require.NoError(t, err)
			}

			items, err := s.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []Item{{1, "c"}, {2, "a"}, {3, "b"}}, items)
		})
	}
}

func TestMemoryStore_ConcurrentCreates(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	const workers = 50
	ids := make(chan int64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			it, err := s.Create(ctx, "x")
			if err == nil {
				ids <- it.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, workers, n)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "items.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	first, err := s.Create(ctx, "kept")
	require.NoError(t, err)
	gone, err := s.Create(ctx, "gone")
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, gone.ID))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Name)

	next, err := s.Create(ctx, "next")
	require.NoError(t, err)
	assert.Greater(t, next.ID, gone.ID)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{"9876543210", 9876543210, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{"1.5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseID(tt.in)
			if tt.wantErr {
				var nf *NotFoundError
				require.True(t, errors.As(err, &nf))
				assert.Equal(t, tt.in, nf.Ref)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
