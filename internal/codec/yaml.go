package codec

import (
	"fmt"
	"io"

	"icnview/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML export of graph snapshots and decoding of
// controller documents kept as YAML fixtures
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// ContentType returns the MIME type of exported documents
func (c *YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

// Decode reads a controller document into v
func (c *YAMLCodec) Decode(r io.Reader, v any) error {
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// Export writes the graph as YAML
func (c *YAMLCodec) Export(graph *domain.Graph, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(graph); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
