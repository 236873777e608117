package topology

import (
	"icnview/internal/codec"
	"icnview/internal/domain"
)

// RegistryStats counts what the registry passes annotated
type RegistryStats struct {
	AnnotatedNodes int
	AnnotatedLinks int
	ABMRules       int
	// MalformedIDs counts matched link ids whose LID lanes could not be decoded
	MalformedIDs int
}

// AnnotateNodes appends the registry node id to every registered node
func AnnotateNodes(graph *domain.Graph, reg *domain.NodeRegistryDocument) RegistryStats {
	var stats RegistryStats
	ids := reg.Lookup()
	for i := range graph.Nodes {
		id, ok := ids[graph.Nodes[i].Label]
		if !ok || id == "" {
			continue
		}
		graph.Nodes[i].Title += nodeIDLine(id)
		stats.AnnotatedNodes++
	}
	return stats
}

// AnnotateLinks appends the registry link id of every edge whose endpoint
// pair is registered, plus the ABM rule carried by its first non-zero LID
// lane (dst before src)
func AnnotateLinks(graph *domain.Graph, reg *domain.LinkRegistryDocument) RegistryStats {
	var stats RegistryStats
	if reg == nil {
		return stats
	}

	for i := range graph.Edges {
		edge := &graph.Edges[i]
		from, ok := graph.NodeByID(edge.From)
		if !ok {
			continue
		}
		to, ok := graph.NodeByID(edge.To)
		if !ok {
			continue
		}

		entry, ok := findLink(reg.Registry.Entries, from.Label, to.Label)
		if !ok {
			continue
		}

		edge.Title += linkIDLine(codec.CompressLinkID(entry.ID))
		stats.AnnotatedLinks++

		rule, err := abmRule(entry.ID)
		if err != nil {
			stats.MalformedIDs++
			continue
		}
		if rule != "" {
			edge.Title += rule
			stats.ABMRules++
		}
	}
	return stats
}

func findLink(entries []domain.LinkRegistryEntry, a, b string) (domain.LinkRegistryEntry, bool) {
	for _, e := range entries {
		if e.Connects(a, b) {
			return e, true
		}
	}
	return domain.LinkRegistryEntry{}, false
}

// abmRule returns the tooltip line for the first non-zero lane of a link id,
// or "" when both lanes are zero
func abmRule(linkID string) (string, error) {
	dst, src, err := codec.SplitLinkID(linkID)
	if err != nil {
		return "", err
	}

	lanes := []struct {
		lid       string
		direction string
	}{
		{dst, "dst"},
		{src, "src"},
	}
	for _, lane := range lanes {
		if codec.IsZeroLID(lane.lid) {
			continue
		}
		addr, err := codec.LIDToIPv6(lane.lid)
		if err != nil {
			return "", err
		}
		return abmRuleLine(addr, lane.direction), nil
	}
	return "", nil
}
