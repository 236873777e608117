package topology

import (
	"icnview/internal/domain"

	"github.com/dustin/go-humanize"
)

// DefaultManagementNode is the controller's own management-plane switch
const DefaultManagementNode = "openflow:4"

// InventoryOptions controls how inventory data changes the graph
type InventoryOptions struct {
	// PruneDownLinks removes edges whose ports report link-down or blocked
	PruneDownLinks bool
	// AnnotateTraffic appends source port byte counters to edge tooltips
	AnnotateTraffic bool
}

// InventoryStats counts what ApplyInventory changed
type InventoryStats struct {
	PrunedEdges    int
	AnnotatedEdges int
}

// FilterManagement removes the management node and every edge touching it.
// It runs whether or not any enrichment succeeded and is idempotent.
func FilterManagement(graph *domain.Graph, managementID string) int {
	if managementID == "" {
		return 0
	}
	return graph.RemoveNodesByLabel(managementID)
}

// ApplyInventory correlates edges with the inventory's node connectors by
// termination-point id
func ApplyInventory(graph *domain.Graph, inv *domain.InventoryDocument, opts InventoryOptions) InventoryStats {
	var stats InventoryStats
	ports := inv.ConnectorIndex()
	if len(ports) == 0 {
		return stats
	}

	if opts.PruneDownLinks {
		stats.PrunedEdges = graph.RemoveEdgesFunc(func(e domain.GraphEdge) bool {
			src, srcOK := ports[e.SourcePort]
			dst, dstOK := ports[e.DestPort]
			return (srcOK && src.Down()) || (dstOK && dst.Down())
		})
	}

	if opts.AnnotateTraffic {
		for i := range graph.Edges {
			port, ok := ports[graph.Edges[i].SourcePort]
			if !ok || port.Statistics == nil {
				continue
			}
			bytes := port.Statistics.Bytes
			graph.Edges[i].Title += trafficLine(humanize.Bytes(bytes.Transmitted), humanize.Bytes(bytes.Received))
			stats.AnnotatedEdges++
		}
	}

	return stats
}
