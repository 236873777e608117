package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"icnview/internal/domain"
)

// JSONCodec handles JSON export of graph snapshots and decoding of
// controller documents
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// ContentType returns the MIME type of exported documents
func (c *JSONCodec) ContentType() string {
	return "application/json"
}

// Decode reads a controller document into v
func (c *JSONCodec) Decode(r io.Reader, v any) error {
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

// Export writes the graph as indented JSON
func (c *JSONCodec) Export(graph *domain.Graph, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(graph); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
