package metrics

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
)

// ContentType is the media type of the text exposition format served by Handler.
const ContentType = "text/plain; version=0.0.4; charset=utf-8"

// DefaultDurationBuckets are the latency buckets, in seconds, used for
// http_request_duration_seconds.
var DefaultDurationBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// Registry holds every metric itemd exposes.
type Registry struct {
	reg       *prometheus.Registry
	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	items     prometheus.Gauge
	startTime time.Time
}

// Option configures a Registry.
type Option func(*registryConfig)

type registryConfig struct {
	runtime bool
	buckets []float64
}

// WithRuntimeMetrics registers the Go runtime and process collectors.
func WithRuntimeMetrics() Option {
	return func(c *registryConfig) {
		c.runtime = true
	}
}

// WithDurationBuckets overrides DefaultDurationBuckets.
func WithDurationBuckets(buckets []float64) Option {
	return func(c *registryConfig) {
		c.buckets = buckets
	}
}

// NewRegistry creates a Registry with all itemd metrics registered.
func NewRegistry(opts ...Option) *Registry {
	cfg := registryConfig{buckets: DefaultDurationBuckets}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Registry{
		reg:       prometheus.NewRegistry(),
		startTime: time.Now(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests handled, by method, endpoint and status.",
		}, []string{"method", "endpoint", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request handling latency in seconds.",
			Buckets: cfg.buckets,
		}, []string{"method", "endpoint"}),
		items: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "itemd_items",
			Help: "Number of items currently stored.",
		}),
	}

	uptime := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "itemd_uptime_seconds",
		Help: "Seconds since the process started serving.",
	}, func() float64 {
		return time.Since(r.startTime).Seconds()
	})

	r.reg.MustRegister(r.requests, r.durations, r.items, uptime)
	if cfg.runtime {
		r.reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return r
}

// Record counts one request that finished with the given status.
func (r *Registry) Record(method, endpoint string, status int) {
	r.requests.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
}

// Observe records how long a request took.
func (r *Registry) Observe(method, endpoint string, d time.Duration) {
	r.durations.WithLabelValues(method, endpoint).Observe(d.Seconds())
}

// SetItems sets the stored item gauge.
func (r *Registry) SetItems(n int) {
	r.items.Set(float64(n))
}

// Requests returns the current value of http_requests_total for one series.
func (r *Registry) Requests(method, endpoint string, status int) (float64, error) {
	families, err := r.reg.Gather()
	if err != nil {
		return 0, err
	}
	want := map[string]string{"method": method, "endpoint": endpoint, "status": strconv.Itoa(status)}
	for _, mf := range families {
		if mf.GetName() != "http_requests_total" {
			continue
		}
	series:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want[lp.GetName()] != lp.GetValue() {
					continue series
				}
			}
			return m.GetCounter().GetValue(), nil
		}
	}
	return 0, nil
}

// Render writes a snapshot of every registered metric in Prometheus text
// exposition format. Families come out sorted by name.
func (r *Registry) Render(w io.Writer) error {
	families, err := r.reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("render %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// Handler returns an http.Handler that serves Render output.
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		var buf bytes.Buffer
		if err := r.Render(&buf); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", ContentType)
		_, _ = w.Write(buf.Bytes())
	})
}

// Gatherer exposes the underlying registry, e.g. for a push gateway.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}
