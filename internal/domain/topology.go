package domain

// TopologyDocument is the RESTCONF network-topology:topology resource
type TopologyDocument struct {
	Topology []Topology `json:"topology" yaml:"topology"`
}

// Topology is a single topology instance (e.g. "flow:1")
type Topology struct {
	ID    string       `json:"topology-id" yaml:"topology-id"`
	Nodes []NodeRecord `json:"node,omitempty" yaml:"node,omitempty"`
	Links []LinkRecord `json:"link,omitempty" yaml:"link,omitempty"`
}

// NodeRecord is a topology node as reported by the controller. Hosts learned
// by the host tracker carry their addresses under one of two keys depending
// on the controller release.
type NodeRecord struct {
	NodeID           string          `json:"node-id" yaml:"node-id"`
	Addresses        []AddressRecord `json:"addresses,omitempty" yaml:"addresses,omitempty"`
	TrackerAddresses []AddressRecord `json:"host-tracker-service:addresses,omitempty" yaml:"host-tracker-service:addresses,omitempty"`
}

// AddressRecord is one learned host address
type AddressRecord struct {
	ID        int64  `json:"id,omitempty" yaml:"id,omitempty"`
	IP        string `json:"ip,omitempty" yaml:"ip,omitempty"`
	TrackerIP string `json:"host-tracker-service:ip,omitempty" yaml:"host-tracker-service:ip,omitempty"`
	MAC       string `json:"mac,omitempty" yaml:"mac,omitempty"`
}

// LinkRecord is a directed topology link between two termination points
type LinkRecord struct {
	LinkID      string          `json:"link-id" yaml:"link-id"`
	Source      LinkSource      `json:"source" yaml:"source"`
	Destination LinkDestination `json:"destination" yaml:"destination"`
}

// LinkSource is the source end of a link
type LinkSource struct {
	Node string `json:"source-node" yaml:"source-node"`
	TP   string `json:"source-tp" yaml:"source-tp"`
}

// LinkDestination is the destination end of a link
type LinkDestination struct {
	Node string `json:"dest-node" yaml:"dest-node"`
	TP   string `json:"dest-tp" yaml:"dest-tp"`
}

// AddressList returns the host addresses, preferring the plain key and
// falling back to the host-tracker-service key when the former is absent
func (n NodeRecord) AddressList() []AddressRecord {
	if n.Addresses != nil {
		return n.Addresses
	}
	return n.TrackerAddresses
}

// Address returns the IP, falling back to the host-tracker-service key
func (a AddressRecord) Address() string {
	if a.IP != "" {
		return a.IP
	}
	return a.TrackerIP
}

// First returns the first topology in the document, if any
func (d *TopologyDocument) First() (*Topology, bool) {
	if d == nil || len(d.Topology) == 0 {
		return nil, false
	}
	return &d.Topology[0], true
}
