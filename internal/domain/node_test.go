package domain

import (
	"testing"
)

func TestClassifyNode(t *testing.T) {
	tests := []struct {
		nodeID string
		want   NodeGroup
	}{
		{"openflow:1", NodeGroupSwitch},
		{"host:00:00:00:00:00:01", NodeGroupHost},
		{"host:1", NodeGroupHost},
		{"", NodeGroupSwitch},
	}

	for _, tt := range tests {
		t.Run(tt.nodeID, func(t *testing.T) {
			if got := ClassifyNode(tt.nodeID); got != tt.want {
				t.Errorf("ClassifyNode(%q) = %s, want %s", tt.nodeID, got, tt.want)
			}
		})
	}
}
