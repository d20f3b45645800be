// Route table and shared error translation for the item service.

package engine

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/getmockd/itemd/pkg/httputil"
	"github.com/getmockd/itemd/pkg/item"
	"github.com/getmockd/itemd/pkg/logging"
	"github.com/getmockd/itemd/pkg/metrics"
)

// Endpoint names used as the endpoint label of request metrics.
const (
	EndpointHealth     = "health"
	EndpointReady      = "ready"
	EndpointListItems  = "list_items"
	EndpointCreateItem = "create_item"
	EndpointGetItem    = "get_item"
	EndpointUpdateItem = "update_item"
	EndpointDeleteItem = "delete_item"
	EndpointMetrics    = "metrics"
)

// Handler routes requests to the item, health and metrics handlers.
type Handler struct {
	store   item.Store
	metrics *metrics.Registry
	log     *slog.Logger
	chain   *MiddlewareChain
	mux     *http.ServeMux

	// countMu orders Count and SetItems so the last refresh to run also
	// writes the gauge last.
	countMu sync.Mutex
}

// NewHandler builds the routing table. store and reg must not be nil;
// a nil log discards output.
func NewHandler(store item.Store, reg *metrics.Registry, log *slog.Logger) *Handler {
	if log == nil {
		log = logging.Nop()
	}

	h := &Handler{
		store:   store,
		metrics: reg,
		log:     log,
		chain:   NewMiddlewareChain(reg, log),
		mux:     http.NewServeMux(),
	}

	h.route("GET /health", EndpointHealth, http.HandlerFunc(h.handleHealth))
	h.route("GET /ready", EndpointReady, http.HandlerFunc(h.handleReady))
	h.route("GET /items", EndpointListItems, http.HandlerFunc(h.handleListItems))
	h.route("POST /items", EndpointCreateItem, http.HandlerFunc(h.handleCreateItem))
	h.route("GET /items/{id}", EndpointGetItem, http.HandlerFunc(h.handleGetItem))
	h.route("PUT /items/{id}", EndpointUpdateItem, http.HandlerFunc(h.handleUpdateItem))
	h.route("DELETE /items/{id}", EndpointDeleteItem, http.HandlerFunc(h.handleDeleteItem))
	h.route("GET /metrics", EndpointMetrics, reg.Handler())

	h.refreshItemCount(context.Background())
	return h
}

// route registers pattern behind the middleware chain under an endpoint name.
func (h *Handler) route(pattern, endpoint string, next http.Handler) {
	h.mux.Handle(pattern, h.chain.Wrap(endpoint, next))
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// writeError translates err into its status code and JSON body.
// Unexpected errors are logged here; their detail never reaches the client.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := item.ToErrorResponse(err)
	if resp.StatusCode >= http.StatusInternalServerError {
		h.log.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()),
			"error", err,
		)
	}
	httputil.WriteJSON(w, resp.StatusCode, resp)
}

// refreshItemCount keeps the itemd_items gauge in line with the store.
func (h *Handler) refreshItemCount(ctx context.Context) {
	if _, err := h.countItems(ctx); err != nil {
		h.log.Warn("failed to count items", "error", err)
	}
}

// countItems reads the store size and publishes it to the gauge.
func (h *Handler) countItems(ctx context.Context) (int, error) {
	h.countMu.Lock()
	defer h.countMu.Unlock()

	n, err := h.store.Count(ctx)
	if err != nil {
		return 0, err
	}
	h.metrics.SetItems(n)
	return n, nil
}
