package domain

import (
	"testing"
)

func sampleGraph() *Graph {
	g := NewGraph()
	g.AddNode(GraphNode{ID: "0", Label: "openflow:1", Group: NodeGroupSwitch})
	g.AddNode(GraphNode{ID: "1", Label: "openflow:4", Group: NodeGroupSwitch})
	g.AddNode(GraphNode{ID: "2", Label: "host:1", Group: NodeGroupHost})
	g.AddEdge(GraphEdge{ID: "0", From: "0", To: "1"})
	g.AddEdge(GraphEdge{ID: "1", From: "1", To: "2"})
	g.AddEdge(GraphEdge{ID: "2", From: "0", To: "2"})
	return g
}

func TestNewGraph(t *testing.T) {
	t.Run("creates empty graph with initialized collections", func(t *testing.T) {
		graph := NewGraph()

		if graph.Nodes == nil || len(graph.Nodes) != 0 {
			t.Errorf("expected empty initialized Nodes, got %v", graph.Nodes)
		}
		if graph.Edges == nil || len(graph.Edges) != 0 {
			t.Errorf("expected empty initialized Edges, got %v", graph.Edges)
		}
	})
}

func TestGraphLookup(t *testing.T) {
	graph := sampleGraph()

	t.Run("finds node id by label", func(t *testing.T) {
		id, ok := graph.NodeIDByLabel("host:1")
		if !ok || id != "2" {
			t.Errorf("NodeIDByLabel(host:1) = %q, %v", id, ok)
		}
	})

	t.Run("unknown label", func(t *testing.T) {
		if _, ok := graph.NodeIDByLabel("openflow:9"); ok {
			t.Error("expected unknown label to be missing")
		}
	})

	t.Run("node by id is addressable", func(t *testing.T) {
		node, ok := graph.NodeByID("0")
		if !ok {
			t.Fatal("expected node 0")
		}
		node.Title = "changed"
		if graph.Nodes[0].Title != "changed" {
			t.Error("expected NodeByID to return a pointer into the graph")
		}
	})
}

func TestRemoveNodesByLabel(t *testing.T) {
	t.Run("removes node and touching edges", func(t *testing.T) {
		graph := sampleGraph()

		if removed := graph.RemoveNodesByLabel("openflow:4"); removed != 1 {
			t.Errorf("expected 1 node removed, got %d", removed)
		}
		if len(graph.Nodes) != 2 {
			t.Errorf("expected 2 nodes, got %d", len(graph.Nodes))
		}
		if len(graph.Edges) != 1 || graph.Edges[0].ID != "2" {
			t.Errorf("expected only edge 2 to remain, got %v", graph.Edges)
		}
	})

	t.Run("ids are not renumbered", func(t *testing.T) {
		graph := sampleGraph()
		graph.RemoveNodesByLabel("openflow:4")

		if graph.Nodes[1].ID != "2" {
			t.Errorf("expected host to keep id 2, got %s", graph.Nodes[1].ID)
		}
	})

	t.Run("missing label is a no-op", func(t *testing.T) {
		graph := sampleGraph()
		if removed := graph.RemoveNodesByLabel("openflow:9"); removed != 0 {
			t.Errorf("expected 0 removed, got %d", removed)
		}
		if len(graph.Edges) != 3 {
			t.Errorf("expected edges untouched, got %d", len(graph.Edges))
		}
	})
}

func TestRemoveEdgesFunc(t *testing.T) {
	graph := sampleGraph()
	count := graph.RemoveEdgesFunc(func(e GraphEdge) bool { return e.From == "0" })

	if count != 2 {
		t.Errorf("expected 2 edges removed, got %d", count)
	}
	if len(graph.Edges) != 1 || graph.Edges[0].ID != "1" {
		t.Errorf("unexpected remaining edges %v", graph.Edges)
	}
}

func TestCloneAndEqual(t *testing.T) {
	t.Run("clone is equal and independent", func(t *testing.T) {
		graph := sampleGraph()
		clone := graph.Clone()

		if !graph.Equal(clone) {
			t.Fatal("expected clone to equal original")
		}

		clone.Nodes[0].Title = "changed"
		if graph.Nodes[0].Title == "changed" {
			t.Error("expected clone not to share node storage")
		}
		if graph.Equal(clone) {
			t.Error("expected modified clone to differ")
		}
	})

	t.Run("nil graphs", func(t *testing.T) {
		var nilGraph *Graph
		if nilGraph.Clone() != nil {
			t.Error("expected nil clone of nil graph")
		}
		if !nilGraph.Equal(nil) {
			t.Error("expected nil graphs to be equal")
		}
		if nilGraph.Equal(NewGraph()) {
			t.Error("expected nil and empty graphs to differ")
		}
	})

	t.Run("edge count differs", func(t *testing.T) {
		a, b := sampleGraph(), sampleGraph()
		b.Edges = b.Edges[:2]
		if a.Equal(b) {
			t.Error("expected graphs with different edges to differ")
		}
	})
}
