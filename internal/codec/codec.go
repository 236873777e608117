package codec

import (
	"io"

	"icnview/internal/domain"
)

// Exporter writes a graph snapshot in a specific format
type Exporter interface {
	Export(graph *domain.Graph, w io.Writer) error
	Format() string
	ContentType() string
}

// Exporters returns every available exporter keyed by format
func Exporters() map[string]Exporter {
	exporters := make(map[string]Exporter)
	for _, e := range []Exporter{NewJSONCodec(), NewYAMLCodec()} {
		exporters[e.Format()] = e
	}
	return exporters
}
