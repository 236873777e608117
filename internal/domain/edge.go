package domain

// EdgeKey identifies a displayed edge: the directed node pair plus the port
// on the source side. The reciprocal link (to, from, destPort) maps to the
// same physical cable.
type EdgeKey struct {
	From string
	To   string
	Port string
}

// Reverse returns the key the opposite direction of the same cable would use
func (k EdgeKey) Reverse(destPort string) EdgeKey {
	return EdgeKey{From: k.To, To: k.From, Port: destPort}
}

// EdgeSet tracks edge keys already present in a graph
type EdgeSet map[EdgeKey]string

// Contains reports whether key or its reciprocal has been recorded
func (s EdgeSet) Contains(key EdgeKey, destPort string) bool {
	if _, ok := s[key]; ok {
		return true
	}
	_, ok := s[key.Reverse(destPort)]
	return ok
}
