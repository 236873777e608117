package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	bootstrappingRPC = "/restconf/operations/bootstrapping:activateApplication"
	monitoringRPC    = "/restconf/operations/monitoring:init"
)

// DefaultMonitorPeriod is the traffic monitor sampling period
const DefaultMonitorPeriod = 30 * time.Second

// ControllerClient invokes the ICN applications' RPCs on the controller
type ControllerClient struct {
	source        *RestconfSource
	monitorPeriod time.Duration
}

// NewControllerClient creates a client sharing the source's endpoint and
// HTTP client
func NewControllerClient(source *RestconfSource, monitorPeriod time.Duration) *ControllerClient {
	if monitorPeriod <= 0 {
		monitorPeriod = DefaultMonitorPeriod
	}
	return &ControllerClient{
		source:        source,
		monitorPeriod: monitorPeriod,
	}
}

type bootstrappingInput struct {
	Status bool `json:"status"`
}

type monitoringInput struct {
	TrafficMonitorEnabled bool  `json:"trafficmonitor-enabled"`
	TrafficMonitorPeriod  int64 `json:"trafficmonitor-period"`
	LinkMonitorEnabled    bool  `json:"linkmonitor-enabled"`
}

type rpcRequest struct {
	Input any `json:"input"`
}

// ActivateBootstrapping starts the bootstrapping application, which then
// populates the node and link registries
func (c *ControllerClient) ActivateBootstrapping(ctx context.Context) error {
	return c.post(ctx, bootstrappingRPC, bootstrappingInput{Status: true})
}

// StartMonitoring enables the traffic and link monitors
func (c *ControllerClient) StartMonitoring(ctx context.Context) error {
	return c.post(ctx, monitoringRPC, monitoringInput{
		TrafficMonitorEnabled: true,
		TrafficMonitorPeriod:  c.monitorPeriod.Milliseconds(),
		LinkMonitorEnabled:    true,
	})
}

// StopMonitoring disables both monitors
func (c *ControllerClient) StopMonitoring(ctx context.Context) error {
	return c.post(ctx, monitoringRPC, monitoringInput{})
}

func (c *ControllerClient) post(ctx context.Context, path string, input any) error {
	body, err := json.Marshal(rpcRequest{Input: input})
	if err != nil {
		return fmt.Errorf("encode rpc input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.source.base+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.source.client.Do(req)
	if err != nil {
		return fmt.Errorf("rpc %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("rpc %s: %w", path, statusError(resp))
	}
	return nil
}
