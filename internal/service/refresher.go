package service

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// Refresher re-aggregates the default topology on a timer and on demand
type Refresher struct {
	svc      *TopologyService
	interval time.Duration
	session  func() Session
	trigger  chan struct{}
	logger   *log.Logger
}

// NewRefresher creates a refresher. An interval of zero disables the timer;
// Trigger still works.
func NewRefresher(svc *TopologyService, interval time.Duration, session func() Session, logger *log.Logger) *Refresher {
	return &Refresher{
		svc:      svc,
		interval: interval,
		session:  session,
		trigger:  make(chan struct{}, 1),
		logger:   logger.With("component", "refresher"),
	}
}

// Trigger requests a refresh without blocking. Requests made while one is
// pending are coalesced.
func (r *Refresher) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// Run refreshes once, then on every tick or trigger until ctx is done
func (r *Refresher) Run(ctx context.Context) {
	var tick <-chan time.Time
	if r.interval > 0 {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	r.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			r.refresh(ctx)
		case <-r.trigger:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	_, report, err := r.svc.Aggregate(ctx, "", r.session())
	if err != nil {
		r.logger.Warn("refresh failed", "err", err)
		return
	}
	r.logger.Debug("refreshed", "report", report)
}
