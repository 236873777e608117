package adapter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"icnview/internal/codec"
	"icnview/internal/domain"
)

// Document base names read by FileSource
const (
	TopologyFile     = "topology"
	InventoryFile    = "inventory"
	NodeRegistryFile = "node-registry"
	LinkRegistryFile = "link-registry"
)

// FileSource serves controller documents from a directory of JSON or YAML
// fixtures. A missing file fails its stage like an unreachable controller.
type FileSource struct {
	dir string
}

// NewFileSource creates a file source reading from dir
func NewFileSource(dir string) (*FileSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("fixture directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("fixture directory: %s is not a directory", dir)
	}
	return &FileSource{dir: dir}, nil
}

// Dir returns the fixture directory
func (s *FileSource) Dir() string {
	return s.dir
}

// FetchTopology reads topology.{json,yaml,yml}. topologyID must match the
// document's first topology unless the document leaves it empty.
func (s *FileSource) FetchTopology(ctx context.Context, topologyID string) (*domain.TopologyDocument, error) {
	var doc domain.TopologyDocument
	if err := s.load(ctx, domain.StageTopology, TopologyFile, &doc); err != nil {
		return nil, err
	}
	if first, ok := doc.First(); ok && topologyID != "" && first.ID != "" && first.ID != topologyID {
		return nil, &domain.FetchError{
			Stage: domain.StageTopology,
			Err:   fmt.Errorf("topology %q not found, fixture holds %q", topologyID, first.ID),
		}
	}
	return &doc, nil
}

// FetchInventory reads inventory.{json,yaml,yml}
func (s *FileSource) FetchInventory(ctx context.Context) (*domain.InventoryDocument, error) {
	var doc domain.InventoryDocument
	if err := s.load(ctx, domain.StageInventory, InventoryFile, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// FetchNodeRegistry reads node-registry.{json,yaml,yml}
func (s *FileSource) FetchNodeRegistry(ctx context.Context) (*domain.NodeRegistryDocument, error) {
	var doc domain.NodeRegistryDocument
	if err := s.load(ctx, domain.StageNodeRegistry, NodeRegistryFile, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// FetchLinkRegistry reads link-registry.{json,yaml,yml}
func (s *FileSource) FetchLinkRegistry(ctx context.Context) (*domain.LinkRegistryDocument, error) {
	var doc domain.LinkRegistryDocument
	if err := s.load(ctx, domain.StageLinkRegistry, LinkRegistryFile, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *FileSource) load(ctx context.Context, stage domain.Stage, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return &domain.FetchError{Stage: stage, Err: err}
	}

	path, err := s.find(name)
	if err != nil {
		return &domain.FetchError{Stage: stage, Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return &domain.FetchError{Stage: stage, Err: err}
	}
	defer f.Close()

	var decodeErr error
	switch filepath.Ext(path) {
	case ".json":
		decodeErr = codec.NewJSONCodec().Decode(f, v)
	default:
		decodeErr = codec.NewYAMLCodec().Decode(f, v)
	}
	if decodeErr != nil {
		return &domain.FetchError{Stage: stage, Err: fmt.Errorf("%s: %w", path, decodeErr)}
	}
	return nil
}

// find returns the first existing fixture for name, preferring JSON
func (s *FileSource) find(name string) (string, error) {
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		path := filepath.Join(s.dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("%s: no %s.json, %s.yaml or %s.yml: %w", s.dir, name, name, name, fs.ErrNotExist)
}

// IsFixture reports whether path is one of the documents FileSource reads
func IsFixture(path string) bool {
	ext := filepath.Ext(path)
	switch ext {
	case ".json", ".yaml", ".yml":
	default:
		return false
	}
	switch filepath.Base(path[:len(path)-len(ext)]) {
	case TopologyFile, InventoryFile, NodeRegistryFile, LinkRegistryFile:
		return true
	}
	return false
}
