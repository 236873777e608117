package adapter

import (
	"context"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfflineController(t *testing.T) {
	ctx := context.Background()

	t.Run("bootstrapping needs a node registry fixture", func(t *testing.T) {
		dir := t.TempDir()
		src, err := NewFileSource(dir)
		require.NoError(t, err)
		ctrl := NewOfflineController(src)

		err = ctrl.ActivateBootstrapping(ctx)
		assert.ErrorIs(t, err, fs.ErrNotExist)

		writeFixture(t, dir, "node-registry.json", nodeRegistryJSON)
		assert.NoError(t, ctrl.ActivateBootstrapping(ctx))
	})

	t.Run("monitoring is unavailable", func(t *testing.T) {
		src, err := NewFileSource(t.TempDir())
		require.NoError(t, err)
		ctrl := NewOfflineController(src)

		assert.ErrorIs(t, ctrl.StartMonitoring(ctx), ErrOffline)
		assert.ErrorIs(t, ctrl.StopMonitoring(ctx), ErrOffline)
	})
}
