package codec

import (
	"bytes"
	"strings"
	"testing"

	"icnview/internal/domain"
)

func sampleGraph() *domain.Graph {
	g := domain.NewGraph()
	g.AddNode(domain.GraphNode{ID: "0", Label: "openflow:1", Group: domain.NodeGroupSwitch, Title: "Name: <b>openflow:1</b><br>Type: <b>Switch</b>", Value: domain.DefaultNodeValue})
	g.AddNode(domain.GraphNode{ID: "1", Label: "host:1", Group: domain.NodeGroupHost, Title: "Type: <b>Host</b>", Value: domain.DefaultNodeValue})
	g.AddEdge(domain.GraphEdge{ID: "0", From: "0", To: "1", Title: "Source Port: <b>openflow:1:1</b><br>Dest Port: <b>host:1</b>", SourcePort: "openflow:1:1"})
	return g
}

func TestExporters(t *testing.T) {
	exporters := Exporters()
	for _, format := range []string{"json", "yaml"} {
		if _, ok := exporters[format]; !ok {
			t.Errorf("expected exporter for %s", format)
		}
	}
}

func TestJSONExport(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONCodec().Export(sampleGraph(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"edges"`) || !strings.Contains(out, `"nodes"`) {
		t.Errorf("expected nodes and edges keys, got %s", out)
	}
	if strings.Contains(out, "SourcePort") {
		t.Error("expected internal port fields to stay out of the export")
	}
	if !strings.Contains(out, "Name: <b>openflow:1</b><br>Type: <b>Switch</b>") {
		t.Error("expected tooltip markup to be exported unescaped")
	}
}

func TestYAMLExport(t *testing.T) {
	var buf bytes.Buffer
	if err := NewYAMLCodec().Export(sampleGraph(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var decoded domain.Graph
	if err := NewYAMLCodec().Decode(&buf, &decoded); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(decoded.Nodes) != 2 || len(decoded.Edges) != 1 {
		t.Fatalf("expected 2 nodes and 1 edge, got %d and %d", len(decoded.Nodes), len(decoded.Edges))
	}
	if decoded.Nodes[1].Group != domain.NodeGroupHost {
		t.Errorf("expected host group, got %s", decoded.Nodes[1].Group)
	}
	if decoded.Edges[0].SourcePort != "" {
		t.Error("expected source port to be omitted from YAML")
	}
}

func TestDecodeTopologyDocument(t *testing.T) {
	doc := `{"topology":[{"topology-id":"flow:1","node":[{"node-id":"host:1","host-tracker-service:addresses":[{"host-tracker-service:ip":"10.0.0.1"}]}],
		"link":[{"link-id":"l1","source":{"source-node":"openflow:1","source-tp":"openflow:1:1"},"destination":{"dest-node":"host:1","dest-tp":"host:1"}}]}]}`

	var td domain.TopologyDocument
	if err := NewJSONCodec().Decode(strings.NewReader(doc), &td); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	topo, ok := td.First()
	if !ok {
		t.Fatal("expected a topology")
	}
	if got := topo.Nodes[0].AddressList()[0].Address(); got != "10.0.0.1" {
		t.Errorf("expected tracker address 10.0.0.1, got %q", got)
	}
	if topo.Links[0].Destination.TP != "host:1" {
		t.Errorf("unexpected dest tp %q", topo.Links[0].Destination.TP)
	}
}
