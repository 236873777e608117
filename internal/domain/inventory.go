package domain

// InventoryDocument is the RESTCONF opendaylight-inventory:nodes resource
type InventoryDocument struct {
	Nodes InventoryNodes `json:"nodes" yaml:"nodes"`
}

// InventoryNodes wraps the inventory node list
type InventoryNodes struct {
	Node []InventoryNode `json:"node,omitempty" yaml:"node,omitempty"`
}

// InventoryNode is an OpenFlow switch in the inventory
type InventoryNode struct {
	ID         string          `json:"id" yaml:"id"`
	Connectors []NodeConnector `json:"node-connector,omitempty" yaml:"node-connector,omitempty"`
}

// NodeConnector is a switch port
type NodeConnector struct {
	ID         string               `json:"id" yaml:"id"`
	State      *PortState           `json:"flow-node-inventory:state,omitempty" yaml:"flow-node-inventory:state,omitempty"`
	Statistics *ConnectorStatistics `json:"opendaylight-port-statistics:flow-capable-node-connector-statistics,omitempty" yaml:"opendaylight-port-statistics:flow-capable-node-connector-statistics,omitempty"`
}

// PortState carries the operational state of a port
type PortState struct {
	LinkDown bool `json:"link-down" yaml:"link-down"`
	Blocked  bool `json:"blocked" yaml:"blocked"`
	Live     bool `json:"live" yaml:"live"`
}

// ConnectorStatistics carries port counters
type ConnectorStatistics struct {
	Bytes   ByteCounters `json:"bytes" yaml:"bytes"`
	Packets ByteCounters `json:"packets" yaml:"packets"`
}

// ByteCounters is a transmitted/received counter pair
type ByteCounters struct {
	Transmitted uint64 `json:"transmitted" yaml:"transmitted"`
	Received    uint64 `json:"received" yaml:"received"`
}

// Down reports whether the port cannot carry traffic
func (c NodeConnector) Down() bool {
	return c.State != nil && (c.State.LinkDown || c.State.Blocked)
}

// ConnectorIndex maps termination-point ids to connectors
func (d *InventoryDocument) ConnectorIndex() map[string]NodeConnector {
	index := make(map[string]NodeConnector)
	if d == nil {
		return index
	}
	for _, node := range d.Nodes.Node {
		for _, c := range node.Connectors {
			index[c.ID] = c
		}
	}
	return index
}
