package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// Controller issues RPCs to the SDN controller
type Controller interface {
	ActivateBootstrapping(ctx context.Context) error
	StartMonitoring(ctx context.Context) error
	StopMonitoring(ctx context.Context) error
}

// ControlService drives controller RPCs and owns the bootstrapping flag
type ControlService struct {
	controller   Controller
	logger       *log.Logger
	eventBus     *EventBus
	bootstrapped atomic.Bool
}

// NewControlService creates a control service. initial is the bootstrapping
// state assumed at startup.
func NewControlService(controller Controller, initial bool, logger *log.Logger, eventBus *EventBus) *ControlService {
	c := &ControlService{
		controller: controller,
		logger:     logger.With("component", "control"),
		eventBus:   eventBus,
	}
	c.bootstrapped.Store(initial)
	return c
}

// Bootstrapped reports whether the bootstrapping application is active
func (c *ControlService) Bootstrapped() bool {
	return c.bootstrapped.Load()
}

// Session returns the aggregation session for the current state
func (c *ControlService) Session() Session {
	return Session{Bootstrapped: c.Bootstrapped()}
}

// ActivateBootstrapping activates the ICN bootstrapping application and
// enables registry enrichment on success. Once active, the RPC is not sent
// again.
func (c *ControlService) ActivateBootstrapping(ctx context.Context) error {
	if c.bootstrapped.Load() {
		c.logger.Info("bootstrapping already active, nothing to do")
		return nil
	}
	if err := c.controller.ActivateBootstrapping(ctx); err != nil {
		return fmt.Errorf("activate bootstrapping: %w", err)
	}
	if !c.bootstrapped.Swap(true) {
		c.logger.Info("bootstrapping activated")
		c.publish(Event{Type: EventBootstrappingActivated})
	}
	return nil
}

// StartMonitoring enables link and traffic monitoring
func (c *ControlService) StartMonitoring(ctx context.Context) error {
	if err := c.controller.StartMonitoring(ctx); err != nil {
		return fmt.Errorf("start monitoring: %w", err)
	}
	c.logger.Info("monitoring started")
	c.publish(Event{Type: EventMonitoringStarted})
	return nil
}

// StopMonitoring disables link and traffic monitoring
func (c *ControlService) StopMonitoring(ctx context.Context) error {
	if err := c.controller.StopMonitoring(ctx); err != nil {
		return fmt.Errorf("stop monitoring: %w", err)
	}
	c.logger.Info("monitoring stopped")
	c.publish(Event{Type: EventMonitoringStopped})
	return nil
}

func (c *ControlService) publish(event Event) {
	if c.eventBus != nil {
		c.eventBus.Publish(event)
	}
}
