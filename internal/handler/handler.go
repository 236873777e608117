package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"icnview/internal/codec"
	"icnview/internal/domain"
	"icnview/internal/service"

	"github.com/charmbracelet/log"
)

// RefreshTrigger requests a background re-aggregation
type RefreshTrigger interface {
	Trigger()
}

// TopologyHandler handles topology, codec and controller API requests
type TopologyHandler struct {
	topology *service.TopologyService
	control  *service.ControlService
	refresh  RefreshTrigger
	logger   *log.Logger
}

// NewTopologyHandler creates a new topology handler
func NewTopologyHandler(topology *service.TopologyService, control *service.ControlService, logger *log.Logger) *TopologyHandler {
	return &TopologyHandler{
		topology: topology,
		control:  control,
		logger:   logger.With("component", "api"),
	}
}

// SetRefreshTrigger sets the refresher poked after controller state changes
func (h *TopologyHandler) SetRefreshTrigger(t RefreshTrigger) {
	h.refresh = t
}

// Register adds every API route to mux
func (h *TopologyHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/topology", h.GetTopology)
	mux.HandleFunc("GET /api/status", h.GetStatus)
	mux.HandleFunc("GET /healthz", h.Health)
	mux.HandleFunc("GET /api/export/{format}", h.Export)
	mux.HandleFunc("GET /api/lid/{lid}", h.ConvertLID)
	mux.HandleFunc("GET /api/ipv6/{addr}", h.ConvertIPv6)
	mux.HandleFunc("POST /api/bootstrapping", h.ActivateBootstrapping)
	mux.HandleFunc("POST /api/monitoring/start", h.StartMonitoring)
	mux.HandleFunc("POST /api/monitoring/stop", h.StopMonitoring)
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// StatusResponse describes the bootstrapping state and the last aggregation
type StatusResponse struct {
	Bootstrapped bool             `json:"bootstrapped"`
	Snapshot     *SnapshotSummary `json:"snapshot,omitempty"`
}

// SnapshotSummary is a snapshot without its graph
type SnapshotSummary struct {
	TopologyID   string        `json:"topology_id"`
	Bootstrapped bool          `json:"bootstrapped"`
	Nodes        int           `json:"nodes"`
	Edges        int           `json:"edges"`
	Report       domain.Report `json:"report"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Health states
const (
	HealthHealthy   = "healthy"
	HealthDegraded  = "degraded"
	HealthUnhealthy = "unhealthy"
)

// HealthResponse reports whether a graph can be served
type HealthResponse struct {
	Status   string   `json:"status"`
	Degraded []string `json:"degraded,omitempty"`
}

// LIDResponse pairs a LID with its IPv6 form
type LIDResponse struct {
	LID  string `json:"lid"`
	IPv6 string `json:"ipv6"`
}

// GetTopology aggregates and returns the graph. The bootstrapped query
// parameter overrides the server's bootstrapping state for this request;
// overridden passes are not shared with other clients.
func (h *TopologyHandler) GetTopology(w http.ResponseWriter, r *http.Request) {
	session, err := h.session(r)
	if err != nil {
		h.writeError(w, "Invalid bootstrapped parameter", err.Error(), http.StatusBadRequest)
		return
	}

	id := r.URL.Query().Get("id")
	if id != "" && id != h.topology.DefaultTopologyID() {
		session.Ephemeral = true
	}

	graph, report, err := h.topology.Aggregate(r.Context(), id, session)
	if err != nil {
		h.writeFetchError(w, err)
		return
	}

	if failed := failedStages(report); failed != "" {
		w.Header().Set("X-Degraded-Stages", failed)
	}
	h.writeJSON(w, graph, http.StatusOK)
}

func (h *TopologyHandler) session(r *http.Request) (service.Session, error) {
	session := h.control.Session()
	if v := r.URL.Query().Get("bootstrapped"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return session, err
		}
		if b != session.Bootstrapped {
			session.Bootstrapped = b
			session.Ephemeral = true
		}
	}
	return session, nil
}

func failedStages(report domain.Report) string {
	var failed []string
	for _, s := range report {
		if s.Outcome == domain.OutcomeFailed {
			failed = append(failed, string(s.Stage))
		}
	}
	return strings.Join(failed, ",")
}

// GetStatus returns the bootstrapping state and last stage report
func (h *TopologyHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{Bootstrapped: h.control.Bootstrapped()}
	if snap, ok := h.topology.Snapshot(); ok {
		resp.Snapshot = &SnapshotSummary{
			TopologyID:   snap.TopologyID,
			Bootstrapped: snap.Bootstrapped,
			Nodes:        len(snap.Graph.Nodes),
			Edges:        len(snap.Graph.Edges),
			Report:       snap.Report,
			UpdatedAt:    snap.UpdatedAt.UTC(),
		}
	}
	h.writeJSON(w, resp, http.StatusOK)
}

// Health reports unhealthy until the first aggregation succeeds and degraded
// while the last one had failed enrichment stages
func (h *TopologyHandler) Health(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.topology.Snapshot()
	if !ok {
		h.writeJSON(w, HealthResponse{Status: HealthUnhealthy}, http.StatusServiceUnavailable)
		return
	}

	resp := HealthResponse{Status: HealthHealthy}
	if failed := failedStages(snap.Report); failed != "" {
		resp.Status = HealthDegraded
		resp.Degraded = strings.Split(failed, ",")
	}
	h.writeJSON(w, resp, http.StatusOK)
}

// Export writes the last snapshot in the requested format, aggregating the
// default topology first when nothing has been aggregated yet
func (h *TopologyHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.PathValue("format")
	exporter, ok := codec.Exporters()[format]
	if !ok {
		h.writeError(w, "Unknown export format", format, http.StatusNotFound)
		return
	}

	snap, ok := h.topology.Snapshot()
	if !ok {
		if _, _, err := h.topology.Aggregate(r.Context(), "", h.control.Session()); err != nil {
			h.writeFetchError(w, err)
			return
		}
		snap, _ = h.topology.Snapshot()
	}

	w.Header().Set("Content-Type", exporter.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=topology.%s", exporter.Format()))
	if err := exporter.Export(snap.Graph, w); err != nil {
		// Can't write error response as we already set headers
		h.logger.Error("export failed", "format", format, "err", err)
	}
}

// ConvertLID returns the IPv6 form of a LID
func (h *TopologyHandler) ConvertLID(w http.ResponseWriter, r *http.Request) {
	lid := r.PathValue("lid")
	addr, err := codec.LIDToIPv6(lid)
	if err != nil {
		h.writeError(w, "Invalid LID", err.Error(), http.StatusBadRequest)
		return
	}
	h.writeJSON(w, LIDResponse{LID: lid, IPv6: addr}, http.StatusOK)
}

// ConvertIPv6 returns the LID encoded by an IPv6 address
func (h *TopologyHandler) ConvertIPv6(w http.ResponseWriter, r *http.Request) {
	addr := r.PathValue("addr")
	lid, err := codec.IPv6ToLID(addr)
	if err != nil {
		h.writeError(w, "Invalid IPv6 address", err.Error(), http.StatusBadRequest)
		return
	}
	h.writeJSON(w, LIDResponse{LID: lid, IPv6: addr}, http.StatusOK)
}

// ActivateBootstrapping starts the bootstrapping application
func (h *TopologyHandler) ActivateBootstrapping(w http.ResponseWriter, r *http.Request) {
	if err := h.control.ActivateBootstrapping(r.Context()); err != nil {
		h.logger.Error("bootstrapping activation failed", "err", err)
		h.writeError(w, "Failed to activate bootstrapping", err.Error(), http.StatusBadGateway)
		return
	}
	h.triggerRefresh()
	h.writeJSON(w, map[string]bool{"bootstrapped": true}, http.StatusOK)
}

// StartMonitoring enables controller monitoring
func (h *TopologyHandler) StartMonitoring(w http.ResponseWriter, r *http.Request) {
	if err := h.control.StartMonitoring(r.Context()); err != nil {
		h.logger.Error("monitoring start failed", "err", err)
		h.writeError(w, "Failed to start monitoring", err.Error(), http.StatusBadGateway)
		return
	}
	h.writeJSON(w, map[string]bool{"monitoring": true}, http.StatusOK)
}

// StopMonitoring disables controller monitoring
func (h *TopologyHandler) StopMonitoring(w http.ResponseWriter, r *http.Request) {
	if err := h.control.StopMonitoring(r.Context()); err != nil {
		h.logger.Error("monitoring stop failed", "err", err)
		h.writeError(w, "Failed to stop monitoring", err.Error(), http.StatusBadGateway)
		return
	}
	h.writeJSON(w, map[string]bool{"monitoring": false}, http.StatusOK)
}

func (h *TopologyHandler) triggerRefresh() {
	if h.refresh != nil {
		h.refresh.Trigger()
	}
}

// Helper methods

func (h *TopologyHandler) writeFetchError(w http.ResponseWriter, err error) {
	var fetchErr *domain.FetchError
	if errors.As(err, &fetchErr) {
		h.writeError(w, fmt.Sprintf("Failed to fetch %s", fetchErr.Stage), fetchErr.Err.Error(), http.StatusBadGateway)
		return
	}
	h.writeError(w, "Failed to aggregate topology", err.Error(), http.StatusInternalServerError)
}

func (h *TopologyHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(data); err != nil {
		h.logger.Error("failed to encode JSON", "err", err)
	}
}

func (h *TopologyHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	h.writeJSON(w, ErrorResponse{Error: error, Details: details}, statusCode)
}
