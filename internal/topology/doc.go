// Package topology turns controller documents into the rendered graph.
//
// Build converts a network-topology document into nodes and de-duplicated
// edges. FilterManagement and ApplyInventory prune and annotate the graph
// from the OpenFlow inventory. AnnotateNodes and AnnotateLinks attach the
// identifiers assigned by the ICN bootstrapping application, decoding the
// LID lanes of each link id into ABM rules.
//
// Every function here is pure with respect to I/O: the caller fetches the
// documents and decides which stages run.
package topology
