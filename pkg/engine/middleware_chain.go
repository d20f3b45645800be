package engine

import (
	"log/slog"
	"net/http"

	"github.com/getmockd/itemd/pkg/metrics"
)

// MiddlewareChain wraps every route with the same middleware stack.
type MiddlewareChain struct {
	metrics *metrics.Registry
	log     *slog.Logger
}

// NewMiddlewareChain creates a chain recording into reg and logging to log.
func NewMiddlewareChain(reg *metrics.Registry, log *slog.Logger) *MiddlewareChain {
	return &MiddlewareChain{metrics: reg, log: log}
}

// Wrap wraps handler for the named endpoint.
// The order is: request id -> access log -> counting -> recovery -> handler
func (mc *MiddlewareChain) Wrap(endpoint string, handler http.Handler) http.Handler {
	h := handler

	// Recovery (innermost) so counting sees the 500 it writes.
	h = recoverMiddleware(mc.log, h)

	// Counting measures handler time and the final status.
	h = countingMiddleware(mc.metrics, endpoint, h)

	h = accessLogMiddleware(mc.log, endpoint, h)

	// Request id (outermost) so every layer can read it.
	h = requestIDMiddleware(h)

	return h
}
