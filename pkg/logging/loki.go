package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultLokiBatchSize     = 100
	defaultLokiFlushInterval = 5 * time.Second
)

// LokiHandler is a slog.Handler that batches records and pushes them to Loki.
// Handlers derived with WithAttrs or WithGroup share the parent's batch.
type LokiHandler struct {
	sink   *lokiSink
	level  slog.Level
	attrs  []slog.Attr
	prefix string
}

// lokiSink owns the buffered lines and the background flusher.
type lokiSink struct {
	url       string
	labels    map[string]string
	client    *http.Client
	batchSize int
	interval  time.Duration

	mu    sync.Mutex
	batch [][]string

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

type lokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

type lokiPush struct {
	Streams []lokiStream `json:"streams"`
}

// LokiOption configures a LokiHandler.
type LokiOption func(*LokiHandler)

// WithLokiLabels adds stream labels. The job label defaults to "itemd".
func WithLokiLabels(labels map[string]string) LokiOption {
	return func(h *LokiHandler) {
		for k, v := range labels {
			h.sink.labels[k] = v
		}
	}
}

// WithLokiLevel sets the minimum level shipped.
func WithLokiLevel(level slog.Level) LokiOption {
	return func(h *LokiHandler) {
		h.level = level
	}
}

// WithLokiBatchSize sets how many lines are buffered before an early flush.
func WithLokiBatchSize(size int) LokiOption {
	return func(h *LokiHandler) {
		if size > 0 {
			h.sink.batchSize = size
		}
	}
}

// WithLokiFlushInterval sets the periodic flush interval.
func WithLokiFlushInterval(d time.Duration) LokiOption {
	return func(h *LokiHandler) {
		if d > 0 {
			h.sink.interval = d
		}
	}
}

// WithLokiClient replaces the HTTP client used for pushes.
func WithLokiClient(c *http.Client) LokiOption {
	return func(h *LokiHandler) {
		h.sink.client = c
	}
}

// NewLokiHandler creates a handler pushing to url, e.g.
// "http://localhost:3100/loki/api/v1/push". Call Close to stop it.
func NewLokiHandler(url string, opts ...LokiOption) *LokiHandler {
	h := &LokiHandler{
		sink: &lokiSink{
			url:       url,
			labels:    map[string]string{"job": "itemd"},
			client:    &http.Client{Timeout: 5 * time.Second},
			batchSize: defaultLokiBatchSize,
			interval:  defaultLokiFlushInterval,
			stop:      make(chan struct{}),
			done:      make(chan struct{}),
		},
		level: slog.LevelInfo,
	}

	for _, opt := range opts {
		opt(h)
	}

	go h.sink.run()
	return h
}

func (s *lokiSink) run() {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = s.flush(context.Background())
		case <-s.stop:
			return
		}
	}
}

// Enabled implements slog.Handler.
func (h *LokiHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle implements slog.Handler.
func (h *LokiHandler) Handle(_ context.Context, r slog.Record) error {
	line, err := h.format(r)
	if err != nil {
		return err
	}

	s := h.sink
	s.mu.Lock()
	s.batch = append(s.batch, []string{strconv.FormatInt(r.Time.UnixNano(), 10), line})
	full := len(s.batch) >= s.batchSize
	s.mu.Unlock()

	if full {
		go func() { _ = s.flush(context.Background()) }()
	}
	return nil
}

func (h *LokiHandler) format(r slog.Record) (string, error) {
	data := map[string]any{
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	for _, a := range h.attrs {
		data[a.Key] = a.Value.Resolve().Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		data[h.prefix+a.Key] = a.Value.Resolve().Any()
		return true
	})

	b, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode loki line: %w", err)
	}
	return string(b), nil
}

// WithAttrs implements slog.Handler.
func (h *LokiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	for _, a := range attrs {
		next.attrs = append(next.attrs, slog.Attr{Key: h.prefix + a.Key, Value: a.Value})
	}
	return &next
}

// WithGroup implements slog.Handler. Grouped keys are flattened as "group.key".
func (h *LokiHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + strings.TrimSuffix(name, ".") + "."
	return &next
}

// Flush pushes all buffered lines now.
func (h *LokiHandler) Flush(ctx context.Context) error {
	return h.sink.flush(ctx)
}

// Close stops the background flusher and pushes what is left.
func (h *LokiHandler) Close() error {
	s := h.sink
	s.once.Do(func() {
		close(s.stop)
		<-s.done
	})
	return s.flush(context.Background())
}

func (s *lokiSink) flush(ctx context.Context) error {
	s.mu.Lock()
	if len(s.batch) == 0 {
		s.mu.Unlock()
		return nil
	}
	values := s.batch
	s.batch = nil
	s.mu.Unlock()

	body, err := json.Marshal(lokiPush{
		Streams: []lokiStream{{Stream: s.labels, Values: values}},
	})
	if err != nil {
		return fmt.Errorf("marshal loki push: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create loki request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send logs to loki: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("loki returned status %d", resp.StatusCode)
	}
	return nil
}
