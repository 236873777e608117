package domain

// Graph is the derived view for vis-network visualization
type Graph struct {
	Nodes []GraphNode `json:"nodes" yaml:"nodes"`
	Edges []GraphEdge `json:"edges" yaml:"edges"`
}

// GraphNode represents a node in the visualization
type GraphNode struct {
	ID    string    `json:"id" yaml:"id"`
	Label string    `json:"label" yaml:"label"`
	Group NodeGroup `json:"group" yaml:"group"` // "switch" or "host"
	Title string    `json:"title" yaml:"title"` // Tooltip markup
	Value int       `json:"value" yaml:"value"`
}

// GraphEdge represents an edge in the visualization
type GraphEdge struct {
	ID    string `json:"id" yaml:"id"`
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
	Title string `json:"title" yaml:"title"`

	// Termination points the edge was built from. Used to correlate
	// inventory port state, never rendered.
	SourcePort string `json:"-" yaml:"-"`
	DestPort   string `json:"-" yaml:"-"`
}

// NewGraph creates an empty graph with initialized collections
func NewGraph() *Graph {
	return &Graph{
		Nodes: make([]GraphNode, 0),
		Edges: make([]GraphEdge, 0),
	}
}

// AddNode appends a node to the graph
func (g *Graph) AddNode(node GraphNode) {
	g.Nodes = append(g.Nodes, node)
}

// AddEdge appends an edge to the graph
func (g *Graph) AddEdge(edge GraphEdge) {
	g.Edges = append(g.Edges, edge)
}

// NodeIDByLabel returns the id of the first node carrying label
func (g *Graph) NodeIDByLabel(label string) (string, bool) {
	for _, n := range g.Nodes {
		if n.Label == label {
			return n.ID, true
		}
	}
	return "", false
}

// NodeByID returns the node with the given id
func (g *Graph) NodeByID(id string) (*GraphNode, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// RemoveNodesByLabel drops every node carrying label together with every
// edge touching one of them. Remaining node ids are not renumbered.
// Returns the number of nodes removed.
func (g *Graph) RemoveNodesByLabel(label string) int {
	removed := make(map[string]struct{})
	nodes := g.Nodes[:0]
	for _, n := range g.Nodes {
		if n.Label == label {
			removed[n.ID] = struct{}{}
			continue
		}
		nodes = append(nodes, n)
	}
	g.Nodes = nodes

	if len(removed) == 0 {
		return 0
	}

	g.RemoveEdgesFunc(func(e GraphEdge) bool {
		_, from := removed[e.From]
		_, to := removed[e.To]
		return from || to
	})
	return len(removed)
}

// RemoveEdgesFunc drops every edge for which drop returns true and reports
// how many were removed.
func (g *Graph) RemoveEdgesFunc(drop func(GraphEdge) bool) int {
	edges := g.Edges[:0]
	count := 0
	for _, e := range g.Edges {
		if drop(e) {
			count++
			continue
		}
		edges = append(edges, e)
	}
	g.Edges = edges
	return count
}

// Clone returns a deep copy so a snapshot can be shared after the
// aggregation pass that built it has finished.
func (g *Graph) Clone() *Graph {
	if g == nil {
		return nil
	}
	clone := &Graph{
		Nodes: make([]GraphNode, len(g.Nodes)),
		Edges: make([]GraphEdge, len(g.Edges)),
	}
	copy(clone.Nodes, g.Nodes)
	copy(clone.Edges, g.Edges)
	return clone
}

// Equal reports whether two graphs render identically
func (g *Graph) Equal(other *Graph) bool {
	if g == nil || other == nil {
		return g == other
	}
	if len(g.Nodes) != len(other.Nodes) || len(g.Edges) != len(other.Edges) {
		return false
	}
	for i := range g.Nodes {
		if g.Nodes[i] != other.Nodes[i] {
			return false
		}
	}
	for i := range g.Edges {
		if g.Edges[i] != other.Edges[i] {
			return false
		}
	}
	return true
}
