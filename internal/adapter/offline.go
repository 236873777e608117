package adapter

import (
	"context"
	"errors"
	"fmt"
)

// ErrOffline is returned for controller RPCs that have no fixture equivalent
var ErrOffline = errors.New("controller rpc unavailable with the file source")

// OfflineController answers controller RPCs when documents come from
// fixtures. Activating bootstrapping succeeds once a node registry fixture
// exists; monitoring is never available.
type OfflineController struct {
	source *FileSource
}

// NewOfflineController creates a controller backed by source's fixtures
func NewOfflineController(source *FileSource) *OfflineController {
	return &OfflineController{source: source}
}

// ActivateBootstrapping checks that registry fixtures can be served
func (c *OfflineController) ActivateBootstrapping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := c.source.find(NodeRegistryFile); err != nil {
		return fmt.Errorf("activate bootstrapping: %w", err)
	}
	return nil
}

// StartMonitoring always fails with ErrOffline
func (c *OfflineController) StartMonitoring(context.Context) error {
	return fmt.Errorf("start monitoring: %w", ErrOffline)
}

// StopMonitoring always fails with ErrOffline
func (c *OfflineController) StopMonitoring(context.Context) error {
	return fmt.Errorf("stop monitoring: %w", ErrOffline)
}
