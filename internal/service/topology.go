package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"icnview/internal/domain"
	"icnview/internal/metrics"
	"icnview/internal/topology"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// DefaultFetchTimeout bounds a single controller fetch
const DefaultFetchTimeout = 5 * time.Second

// Source provides the controller documents the pipeline consumes
type Source interface {
	FetchTopology(ctx context.Context, topologyID string) (*domain.TopologyDocument, error)
	FetchInventory(ctx context.Context) (*domain.InventoryDocument, error)
	FetchNodeRegistry(ctx context.Context) (*domain.NodeRegistryDocument, error)
	FetchLinkRegistry(ctx context.Context) (*domain.LinkRegistryDocument, error)
}

// Session carries per-request state into an aggregation pass
type Session struct {
	// Bootstrapped enables the registry stages
	Bootstrapped bool
	// Ephemeral passes answer one caller only and leave the snapshot alone
	Ephemeral bool
}

// Options configures the aggregation pipeline
type Options struct {
	TopologyID     string
	ManagementNode string
	FetchTimeout   time.Duration
	Inventory      topology.InventoryOptions
}

// Snapshot is the result of the last successful aggregation
type Snapshot struct {
	TopologyID   string        `json:"topology_id"`
	Bootstrapped bool          `json:"bootstrapped"`
	Graph        *domain.Graph `json:"graph"`
	Report       domain.Report `json:"report"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// TopologyService aggregates controller resources into a graph
type TopologyService struct {
	source   Source
	opts     Options
	logger   *log.Logger
	metrics  *metrics.Registry
	eventBus *EventBus

	mu   sync.RWMutex
	last *Snapshot
}

// NewTopologyService creates a topology service
func NewTopologyService(source Source, opts Options, logger *log.Logger, m *metrics.Registry, eventBus *EventBus) *TopologyService {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	return &TopologyService{
		source:   source,
		opts:     opts,
		logger:   logger.With("component", "pipeline"),
		metrics:  m,
		eventBus: eventBus,
	}
}

// DefaultTopologyID returns the topology aggregated when a request names none
func (s *TopologyService) DefaultTopologyID() string {
	return s.opts.TopologyID
}

// Aggregate runs one pass of the pipeline. Enrichment failures degrade the
// graph and are reported in the returned Report; a topology failure is
// returned as a *domain.FetchError with no graph. Only non-ephemeral passes
// over the default topology replace the snapshot and publish events.
func (s *TopologyService) Aggregate(ctx context.Context, topologyID string, session Session) (*domain.Graph, domain.Report, error) {
	if topologyID == "" {
		topologyID = s.opts.TopologyID
	}
	var report domain.Report

	doc, err := fetch(ctx, s, domain.StageTopology, func(ctx context.Context) (*domain.TopologyDocument, error) {
		return s.source.FetchTopology(ctx, topologyID)
	})
	if err != nil {
		s.logger.Error("topology fetch failed", "topology", topologyID, "err", err)
		report = s.record(report, domain.StageTopology, domain.OutcomeFailed, err.Error())
		for _, stage := range []domain.Stage{domain.StageInventory, domain.StageNodeRegistry, domain.StageLinkRegistry} {
			report = s.record(report, stage, domain.OutcomeSkipped, "topology unavailable")
		}
		s.metrics.RecordAggregation("error", 0, 0)
		return nil, report, err
	}

	graph, stats := topology.Build(doc)
	report = s.record(report, domain.StageTopology, domain.OutcomeApplied, "")
	if stats.UnresolvedLinks > 0 {
		s.logger.Debug("skipped links with unknown endpoints", "count", stats.UnresolvedLinks)
	}
	s.metrics.RecordSkipped("unnamed_node", stats.UnnamedNodes)
	s.metrics.RecordSkipped("unresolved_link", stats.UnresolvedLinks)
	s.metrics.RecordSkipped("duplicate_link", stats.DuplicateLinks)

	report = s.applyInventory(ctx, graph, report)

	if removed := topology.FilterManagement(graph, s.opts.ManagementNode); removed > 0 {
		s.logger.Debug("removed management node", "node", s.opts.ManagementNode)
	}

	if session.Bootstrapped {
		report = s.applyRegistries(ctx, graph, report)
	} else {
		report = s.record(report, domain.StageNodeRegistry, domain.OutcomeSkipped, "bootstrapping not active")
		report = s.record(report, domain.StageLinkRegistry, domain.OutcomeSkipped, "bootstrapping not active")
	}

	s.metrics.RecordAggregation("ok", len(graph.Nodes), len(graph.Edges))
	if !session.Ephemeral && topologyID == s.opts.TopologyID {
		s.store(topologyID, session, graph, report)
	}
	return graph, report, nil
}

func (s *TopologyService) applyInventory(ctx context.Context, graph *domain.Graph, report domain.Report) domain.Report {
	inv, err := fetch(ctx, s, domain.StageInventory, s.source.FetchInventory)
	if err != nil {
		s.logger.Warn("inventory unavailable, continuing without it", "err", err)
		return s.record(report, domain.StageInventory, domain.OutcomeFailed, err.Error())
	}

	stats := topology.ApplyInventory(graph, inv, s.opts.Inventory)
	if stats.PrunedEdges > 0 {
		s.logger.Info("pruned edges on down ports", "count", stats.PrunedEdges)
	}
	return s.record(report, domain.StageInventory, domain.OutcomeApplied, "")
}

// applyRegistries fetches both registries concurrently and applies them in
// order. Without the node registry the link registry is not applied.
func (s *TopologyService) applyRegistries(ctx context.Context, graph *domain.Graph, report domain.Report) domain.Report {
	var (
		nodes            *domain.NodeRegistryDocument
		links            *domain.LinkRegistryDocument
		nodeErr, linkErr error
	)

	// A node registry failure cancels the link fetch; its result would be skipped
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		nodes, nodeErr = fetch(gctx, s, domain.StageNodeRegistry, s.source.FetchNodeRegistry)
		return nodeErr
	})
	g.Go(func() error {
		links, linkErr = fetch(gctx, s, domain.StageLinkRegistry, s.source.FetchLinkRegistry)
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("node registry unavailable, skipping registry enrichment", "err", err)
		report = s.record(report, domain.StageNodeRegistry, domain.OutcomeFailed, err.Error())
		return s.record(report, domain.StageLinkRegistry, domain.OutcomeSkipped, "node registry unavailable")
	}
	nodeStats := topology.AnnotateNodes(graph, nodes)
	report = s.record(report, domain.StageNodeRegistry, domain.OutcomeApplied, "")

	if linkErr != nil {
		s.logger.Warn("link registry unavailable, keeping node annotations", "err", linkErr)
		return s.record(report, domain.StageLinkRegistry, domain.OutcomeFailed, linkErr.Error())
	}
	linkStats := topology.AnnotateLinks(graph, links)
	if linkStats.MalformedIDs > 0 {
		s.logger.Warn("skipped malformed link ids", "count", linkStats.MalformedIDs)
		s.metrics.RecordSkipped("malformed_link_id", linkStats.MalformedIDs)
	}
	s.logger.Debug("registry enrichment applied",
		"nodes", nodeStats.AnnotatedNodes,
		"links", linkStats.AnnotatedLinks,
		"abm_rules", linkStats.ABMRules)
	return s.record(report, domain.StageLinkRegistry, domain.OutcomeApplied, "")
}

func (s *TopologyService) record(report domain.Report, stage domain.Stage, outcome domain.Outcome, reason string) domain.Report {
	s.metrics.RecordStage(string(stage), string(outcome))
	return append(report, domain.StageReport{Stage: stage, Outcome: outcome, Reason: reason})
}

// store keeps a copy of graph as the latest snapshot and announces it when
// the rendered graph changed
func (s *TopologyService) store(topologyID string, session Session, graph *domain.Graph, report domain.Report) {
	snap := &Snapshot{
		TopologyID:   topologyID,
		Bootstrapped: session.Bootstrapped,
		Graph:        graph.Clone(),
		Report:       append(domain.Report(nil), report...),
		UpdatedAt:    time.Now(),
	}

	s.mu.Lock()
	changed := s.last == nil || s.last.TopologyID != topologyID || !s.last.Graph.Equal(graph)
	s.last = snap
	s.mu.Unlock()

	if changed && s.eventBus != nil {
		s.eventBus.Publish(Event{
			Type: EventTopologyUpdated,
			Payload: map[string]interface{}{
				"topology_id": topologyID,
				"nodes":       len(graph.Nodes),
				"edges":       len(graph.Edges),
			},
		})
	}
}

// Snapshot returns a copy of the last successful aggregation
func (s *TopologyService) Snapshot() (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil, false
	}
	snap := *s.last
	snap.Graph = s.last.Graph.Clone()
	snap.Report = append(domain.Report(nil), s.last.Report...)
	return &snap, true
}

// fetch runs one source call under the configured timeout and wraps
// failures as *domain.FetchError for stage
func fetch[T any](ctx context.Context, s *TopologyService, stage domain.Stage, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.FetchTimeout)
	defer cancel()

	start := time.Now()
	v, err := fn(ctx)
	s.metrics.ObserveFetch(string(stage), time.Since(start))
	if err != nil {
		var fetchErr *domain.FetchError
		if !errors.As(err, &fetchErr) {
			err = &domain.FetchError{Stage: stage, Err: err}
		}
		var zero T
		return zero, err
	}
	return v, nil
}
