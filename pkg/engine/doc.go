// Package engine serves the itemd HTTP API.
//
// # Routes
//
//	GET    /health       liveness, always {"status":"ok"}
//	GET    /ready        readiness, reports the stored item count
//	GET    /items        list items, optional ?name=<glob> filter
//	POST   /items        create an item from {"name": "..."}
//	GET    /items/{id}   fetch one item
//	PUT    /items/{id}   rename an item
//	DELETE /items/{id}   remove an item
//	GET    /metrics      Prometheus text exposition
//
// Every route is registered with a logical endpoint name and wrapped by the
// same MiddlewareChain, so request counting covers all of them. Requests that
// match no route are answered by the mux and are not counted.
//
// # Basic Usage
//
//	reg := metrics.NewRegistry()
//	srv := engine.NewServer(engine.DefaultConfig(),
//	    engine.WithStore(item.NewMemoryStore()),
//	    engine.WithMetrics(reg),
//	    engine.WithLogger(logger),
//	)
//	if err := srv.Start(); err != nil {
//	    return err
//	}
//	defer srv.Stop()
package engine
