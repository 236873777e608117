// Package domain defines the core types of the icnview topology viewer.
//
// # Graph Model
//
// Graph, GraphNode and GraphEdge are the vis-network view handed to the
// renderer. Node ids are positional strings assigned in insertion order;
// tooltips (Title) carry renderer markup and are kept verbatim.
//
// # Controller Documents
//
// TopologyDocument, InventoryDocument, NodeRegistryDocument and
// LinkRegistryDocument mirror the RESTCONF resources exposed by the
// OpenDaylight controller. Their field names follow the controller's YANG
// models, including the registry's "noneName"/"noneId" spelling.
//
// # Pipeline Reporting
//
// Stage, Outcome, StageReport and FetchError describe what each aggregation
// stage did and why an enrichment was skipped.
package domain
