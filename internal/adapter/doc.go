// Package adapter connects icnview to its data sources.
//
// RestconfSource reads the network topology, OpenFlow inventory and ICN
// registries from an OpenDaylight controller over RESTCONF. FileSource
// serves the same documents from a directory of JSON or YAML fixtures for
// offline use. Both wrap every failure in a *domain.FetchError naming the
// stage it belongs to.
//
// ControllerClient posts the bootstrapping and monitoring RPCs. With the
// file source, OfflineController stands in for it.
package adapter
