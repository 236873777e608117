// Package handler implements the icnview HTTP API.
//
// TopologyHandler serves the aggregated graph to the vis-network renderer,
// reports pipeline status, exports the last snapshot, converts between LIDs
// and IPv6 text, and forwards bootstrapping and monitoring requests to the
// controller.
//
// Errors are returned as JSON with {error, details}. Codec validation
// failures map to 400; controller failures map to 502. When an enrichment
// stage failed the graph is still returned and the X-Degraded-Stages header
// names the failed stages.
//
// Middleware provides panic recovery, request logging, Prometheus
// instrumentation and CORS.
package handler
