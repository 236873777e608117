package domain

import "strings"

// NodeGroup is the vis-network group a node is rendered with
type NodeGroup string

const (
	NodeGroupSwitch NodeGroup = "switch"
	NodeGroupHost   NodeGroup = "host"
)

// DefaultNodeValue is the display weight given to every node
const DefaultNodeValue = 20

// ClassifyNode infers the group from a topology node id. Host tracker
// entries carry "host" in their id (e.g. "host:00:00:00:00:00:01").
func ClassifyNode(nodeID string) NodeGroup {
	if strings.Contains(nodeID, "host") {
		return NodeGroupHost
	}
	return NodeGroupSwitch
}
