package engine

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/itemd/pkg/item"
	"github.com/getmockd/itemd/pkg/metrics"
)

func itemStore() item.Store {
	return item.NewMemoryStore()
}

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	return cfg
}

// ============================================================================
// Server Creation Tests
// ============================================================================

func TestNewServer(t *testing.T) {
	t.Parallel()

	t.Run("nil config uses defaults", func(t *testing.T) {
		t.Parallel()
		srv := NewServer(nil)
		require.NotNil(t, srv)
		assert.Equal(t, "0.0.0.0", srv.cfg.Host)
		assert.Equal(t, 5000, srv.cfg.Port)
		assert.Equal(t, 5*time.Second, srv.cfg.ShutdownTimeout)
		assert.NotNil(t, srv.store)
		assert.NotNil(t, srv.Metrics())
		assert.False(t, srv.IsRunning())
		assert.Empty(t, srv.Addr())
		assert.Zero(t, srv.Uptime())
	})

	t.Run("nil options keep defaults", func(t *testing.T) {
		t.Parallel()
		srv := NewServer(nil, WithLogger(nil), WithStore(nil), WithMetrics(nil))
		assert.NotNil(t, srv.log)
		assert.NotNil(t, srv.store)
		assert.NotNil(t, srv.metrics)
	})

	t.Run("injected dependencies are used", func(t *testing.T) {
		t.Parallel()
		store := item.NewMemoryStore()
		reg := metrics.NewRegistry()
		srv := NewServer(nil, WithStore(store), WithMetrics(reg))
		assert.Same(t, store, srv.store)
		assert.Same(t, reg, srv.Metrics())
	})
}

// ============================================================================
// Lifecycle Tests
// ============================================================================

func TestServer_StartStop(t *testing.T) {
	t.Parallel()

	srv := NewServer(testConfig())
	require.NoError(t, srv.Start())
	assert.True(t, srv.IsRunning())
	assert.ErrorIs(t, srv.Start(), ErrServerRunning)

	base := "http://" + srv.Addr()
	resp, err := http.Get(base + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	require.NoError(t, srv.Stop())
	assert.False(t, srv.IsRunning())
	assert.NoError(t, srv.Stop(), "second stop is a no-op")

	_, err = http.Get(base + "/health")
	assert.Error(t, err)

	select {
	case err, ok := <-srv.Done():
		assert.False(t, ok, "serve loop should exit cleanly, got %v", err)
	case <-time.After(time.Second):
		t.Fatal("serve loop did not exit")
	}
}

func TestServer_ListenError(t *testing.T) {
	t.Parallel()

	first := NewServer(testConfig())
	require.NoError(t, first.Start())
	defer first.Stop()

	_, port, err := net.SplitHostPort(first.Addr())
	require.NoError(t, err)
	cfg := testConfig()
	cfg.Port, err = strconv.Atoi(port)
	require.NoError(t, err)

	second := NewServer(cfg)
	require.Error(t, second.Start())
	assert.False(t, second.IsRunning())
}

func TestServer_ConcurrentCreates(t *testing.T) {
	t.Parallel()

	srv := NewServer(testConfig())
	require.NoError(t, srv.Start())
	defer srv.Stop()
	base := "http://" + srv.Addr()

	const clients = 20
	ids := make([]int64, clients)
	var wg sync.WaitGroup
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := http.Post(base+"/items", "application/json", strings.NewReader(`{"name":"c"}`))
			if err != nil {
				return
			}
			defer resp.Body.Close()
			var it item.Item
			_ = json.NewDecoder(resp.Body).Decode(&it)
			ids[i] = it.ID
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool)
	for _, id := range ids {
		require.NotZero(t, id)
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}

	got, err := srv.Metrics().Requests(http.MethodPost, EndpointCreateItem, http.StatusCreated)
	require.NoError(t, err)
	assert.Equal(t, float64(clients), got)
}
