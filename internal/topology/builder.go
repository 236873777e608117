package topology

import (
	"strconv"

	"icnview/internal/domain"
)

// BuildStats counts the records Build did not turn into graph elements
type BuildStats struct {
	UnnamedNodes    int
	UnresolvedLinks int
	DuplicateLinks  int
}

// Build converts the first topology of doc into a graph. Node ids are
// assigned in record order; links whose endpoints are unknown are skipped,
// as is the reverse direction of a link already drawn.
func Build(doc *domain.TopologyDocument) (*domain.Graph, BuildStats) {
	graph := domain.NewGraph()
	var stats BuildStats

	topo, ok := doc.First()
	if !ok {
		return graph, stats
	}

	for _, rec := range topo.Nodes {
		if rec.NodeID == "" {
			stats.UnnamedNodes++
			continue
		}

		group := domain.ClassifyNode(rec.NodeID)
		title := switchTitle(rec.NodeID)
		if group == domain.NodeGroupHost {
			title = hostTitle(rec.AddressList())
		}

		graph.AddNode(domain.GraphNode{
			ID:    strconv.Itoa(len(graph.Nodes)),
			Label: rec.NodeID,
			Group: group,
			Title: title,
			Value: domain.DefaultNodeValue,
		})
	}

	seen := make(domain.EdgeSet)
	for _, link := range topo.Links {
		srcID, srcOK := graph.NodeIDByLabel(link.Source.Node)
		dstID, dstOK := graph.NodeIDByLabel(link.Destination.Node)
		if !srcOK || !dstOK {
			stats.UnresolvedLinks++
			continue
		}

		key := domain.EdgeKey{From: srcID, To: dstID, Port: link.Source.TP}
		if seen.Contains(key, link.Destination.TP) {
			stats.DuplicateLinks++
			continue
		}

		edgeID := strconv.Itoa(len(graph.Edges))
		graph.AddEdge(domain.GraphEdge{
			ID:         edgeID,
			From:       srcID,
			To:         dstID,
			Title:      edgeTitle(link.Source.TP, link.Destination.TP),
			SourcePort: link.Source.TP,
			DestPort:   link.Destination.TP,
		})
		seen[key] = edgeID
	}

	return graph, stats
}
