// Package metrics provides Prometheus metrics collection for itemd.
//
// A Registry wraps a private prometheus.Registry. It is constructed once at
// startup and handed to both the request-counting middleware and the
// /metrics handler; nothing is registered with the client_golang default
// registry.
//
// # Metrics
//
//   - http_requests_total: Counter of handled requests (labels: method, endpoint, status)
//   - http_request_duration_seconds: Histogram of handler latency (labels: method, endpoint)
//   - itemd_items: Gauge of items currently stored
//   - itemd_uptime_seconds: Gauge of seconds since the registry was created
//
// WithRuntimeMetrics adds the standard go_* and process_* collectors.
//
// # Label Conventions
//
//   - method: uppercase HTTP method (GET, POST, PUT, DELETE)
//   - endpoint: the route's logical name (health, list_items, get_item, ...),
//     never the raw path, so series cardinality stays bounded
//   - status: numeric HTTP status code (200, 404, ...)
//
// # Usage
//
//	reg := metrics.NewRegistry(metrics.WithRuntimeMetrics())
//	reg.Record("GET", "health", 200)
//	reg.Observe("GET", "health", 3*time.Millisecond)
//
//	mux.Handle("GET /metrics", reg.Handler())
package metrics
