package domain

import "strings"

// NodeRegistryDocument is the RESTCONF registry:node-registry resource
type NodeRegistryDocument struct {
	Registry NodeRegistry `json:"node-registry" yaml:"node-registry"`
}

// NodeRegistry wraps the node registry entries
type NodeRegistry struct {
	Entries []NodeRegistryEntry `json:"node-registry-entry,omitempty" yaml:"node-registry-entry,omitempty"`
}

// NodeRegistryEntry maps a topology node label to its assigned ICN node id.
// The controller's YANG model spells the fields "noneName" and "noneId".
type NodeRegistryEntry struct {
	Name string `json:"noneName" yaml:"noneName"`
	ID   string `json:"noneId" yaml:"noneId"`
}

// LinkRegistryDocument is the RESTCONF registry:link-registry resource
type LinkRegistryDocument struct {
	Registry LinkRegistry `json:"link-registry" yaml:"link-registry"`
}

// LinkRegistry wraps the link registry entries
type LinkRegistry struct {
	Entries []LinkRegistryEntry `json:"link-registry-entry,omitempty" yaml:"link-registry-entry,omitempty"`
}

// LinkRegistryEntry maps a "src,dst" endpoint pair to its 256-bit link id
type LinkRegistryEntry struct {
	Name string `json:"linkName" yaml:"linkName"`
	ID   string `json:"linkId" yaml:"linkId"`
}

// Lookup returns a label -> node id map of the registry. The first entry
// for a label wins.
func (d *NodeRegistryDocument) Lookup() map[string]string {
	ids := make(map[string]string)
	if d == nil {
		return ids
	}
	for _, e := range d.Registry.Entries {
		if _, ok := ids[e.Name]; ok {
			continue
		}
		ids[e.Name] = e.ID
	}
	return ids
}

// Endpoints splits the comma-joined endpoint pair
func (e LinkRegistryEntry) Endpoints() (string, string, bool) {
	parts := strings.Split(e.Name, ",")
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// Connects reports whether the entry names a and b, in either order
func (e LinkRegistryEntry) Connects(a, b string) bool {
	first, second, ok := e.Endpoints()
	if !ok {
		return false
	}
	return (first == a && second == b) || (first == b && second == a)
}
