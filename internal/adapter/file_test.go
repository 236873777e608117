package adapter

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"icnview/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const linkRegistryYAML = `link-registry:
  link-registry-entry:
    - linkName: openflow:1,openflow:2
      linkId: "0101"
`

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestNewFileSource(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := NewFileSource(filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
	})

	t.Run("not a directory", func(t *testing.T) {
		dir := t.TempDir()
		writeFixture(t, dir, "topology.json", topologyJSON)
		_, err := NewFileSource(filepath.Join(dir, "topology.json"))
		assert.Error(t, err)
	})
}

func TestFileSource(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFixture(t, dir, "topology.json", topologyJSON)
	writeFixture(t, dir, "node-registry.json", nodeRegistryJSON)
	writeFixture(t, dir, "link-registry.yml", linkRegistryYAML)
	writeFixture(t, dir, "inventory.yaml", "nodes: [\n")

	src, err := NewFileSource(dir)
	require.NoError(t, err)

	t.Run("json topology", func(t *testing.T) {
		doc, err := src.FetchTopology(ctx, "flow:1")
		require.NoError(t, err)
		topo, _ := doc.First()
		assert.Len(t, topo.Nodes, 2)
	})

	t.Run("topology id mismatch", func(t *testing.T) {
		_, err := src.FetchTopology(ctx, "flow:9")
		var fetchErr *domain.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, domain.StageTopology, fetchErr.Stage)
	})

	t.Run("yaml registry", func(t *testing.T) {
		doc, err := src.FetchLinkRegistry(ctx)
		require.NoError(t, err)
		require.Len(t, doc.Registry.Entries, 1)
		assert.True(t, doc.Registry.Entries[0].Connects("openflow:2", "openflow:1"))
	})

	t.Run("malformed fixture", func(t *testing.T) {
		_, err := src.FetchInventory(ctx)
		var fetchErr *domain.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, domain.StageInventory, fetchErr.Stage)
	})

	t.Run("missing fixture", func(t *testing.T) {
		empty, err := NewFileSource(t.TempDir())
		require.NoError(t, err)

		_, err = empty.FetchNodeRegistry(ctx)
		assert.True(t, errors.Is(err, fs.ErrNotExist), "got %v", err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := src.FetchNodeRegistry(cctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestIsFixture(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/data/topology.json", true},
		{"/data/link-registry.yml", true},
		{"/data/inventory.yaml", true},
		{"/data/topology.json.swp", false},
		{"/data/notes.json", false},
		{"/data/node-registry", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFixture(tt.path))
		})
	}
}
