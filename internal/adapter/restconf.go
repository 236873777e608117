package adapter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"icnview/internal/codec"
	"icnview/internal/domain"
)

const (
	topologyPath     = "/restconf/operational/network-topology:network-topology/topology/"
	inventoryPath    = "/restconf/operational/opendaylight-inventory:nodes"
	nodeRegistryPath = "/restconf/operational/registry:node-registry"
	linkRegistryPath = "/restconf/operational/registry:link-registry"

	// maxResponseBytes caps a single RESTCONF document
	maxResponseBytes = 32 << 20
)

// RestconfConfig holds settings for the controller's RESTCONF endpoint
type RestconfConfig struct {
	// BaseURL is the controller root, e.g. http://localhost:8181
	BaseURL string
	// RequestTimeout bounds one HTTP round trip when the caller sets no deadline
	RequestTimeout time.Duration
}

// DefaultRestconfConfig returns settings for a controller on localhost
func DefaultRestconfConfig() RestconfConfig {
	return RestconfConfig{
		BaseURL:        "http://localhost:8181",
		RequestTimeout: 10 * time.Second,
	}
}

// RestconfSource fetches controller documents over RESTCONF
type RestconfSource struct {
	base   string
	client *http.Client
	json   *codec.JSONCodec
}

// NewRestconfSource creates a RESTCONF source
func NewRestconfSource(cfg RestconfConfig) (*RestconfSource, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid controller URL %q: %w", cfg.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid controller URL %q: scheme must be http or https", cfg.BaseURL)
	}
	return &RestconfSource{
		base:   strings.TrimRight(cfg.BaseURL, "/"),
		client: &http.Client{Timeout: cfg.RequestTimeout},
		json:   codec.NewJSONCodec(),
	}, nil
}

// FetchTopology retrieves one network-topology instance
func (s *RestconfSource) FetchTopology(ctx context.Context, topologyID string) (*domain.TopologyDocument, error) {
	var doc domain.TopologyDocument
	path := topologyPath + url.PathEscape(topologyID)
	if err := s.get(ctx, domain.StageTopology, path, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// FetchInventory retrieves the OpenFlow inventory
func (s *RestconfSource) FetchInventory(ctx context.Context) (*domain.InventoryDocument, error) {
	var doc domain.InventoryDocument
	if err := s.get(ctx, domain.StageInventory, inventoryPath, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// FetchNodeRegistry retrieves the ICN node registry
func (s *RestconfSource) FetchNodeRegistry(ctx context.Context) (*domain.NodeRegistryDocument, error) {
	var doc domain.NodeRegistryDocument
	if err := s.get(ctx, domain.StageNodeRegistry, nodeRegistryPath, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// FetchLinkRegistry retrieves the ICN link registry
func (s *RestconfSource) FetchLinkRegistry(ctx context.Context) (*domain.LinkRegistryDocument, error) {
	var doc domain.LinkRegistryDocument
	if err := s.get(ctx, domain.StageLinkRegistry, linkRegistryPath, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *RestconfSource) get(ctx context.Context, stage domain.Stage, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.base+path, nil)
	if err != nil {
		return &domain.FetchError{Stage: stage, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return &domain.FetchError{Stage: stage, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &domain.FetchError{Stage: stage, Err: statusError(resp)}
	}

	if err := s.json.Decode(io.LimitReader(resp.Body, maxResponseBytes), v); err != nil {
		return &domain.FetchError{Stage: stage, Err: err}
	}
	return nil
}

// statusError describes a non-2xx controller response
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return fmt.Errorf("controller returned %s", resp.Status)
	}
	return fmt.Errorf("controller returned %s: %s", resp.Status, msg)
}
