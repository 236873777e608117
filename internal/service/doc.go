// Package service runs the topology aggregation pipeline and the controller
// operations exposed over HTTP.
//
// # Aggregation
//
// TopologyService.Aggregate fetches the network topology from a Source,
// builds the graph, filters the management node and then applies the
// optional enrichment stages:
//
//	topology -> inventory -> [bootstrapped] node registry + link registry
//
// Every fetch runs under its own timeout. A failed enrichment is logged and
// recorded in the returned domain.Report; the graph keeps whatever the
// earlier stages produced. Only a topology failure is returned as an error.
//
// The last successful graph is kept as a Snapshot for export and status
// endpoints, and a topology_updated event is published whenever it changes.
//
// # Controller Operations
//
// ControlService activates the ICN bootstrapping application and toggles
// link/traffic monitoring. It owns the bootstrapping flag that every
// aggregation Session is derived from.
//
// # Event System
//
// Services publish events via EventBus; cmd/server forwards them to the SSE
// hub.
package service
