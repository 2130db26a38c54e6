// Package schedule drives the periodic dashboard refresh.
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	rcron "github.com/robfig/cron/v3"
)

// RefreshFunc runs one full refresh cycle and reports how many companies
// were processed.
type RefreshFunc func(ctx context.Context) (processed int, err error)

// RunState captures the outcome of the most recent refresh.
type RunState struct {
	LastRunAt  time.Time `json:"last_run_at"`
	LastStatus string    `json:"last_status"`
	LastError  string    `json:"last_error,omitempty"`
	Processed  int       `json:"processed"`
}

// Service registers a single cron entry that refreshes every company.
// Refreshes never overlap: a tick that fires while a run is still in
// flight is dropped.
type Service struct {
	expr      string
	onRefresh RefreshFunc

	mu      sync.Mutex
	state   RunState
	running bool
	cron    *rcron.Cron
	cancel  context.CancelFunc
}

func NewService(cronExpr string, onRefresh RefreshFunc) *Service {
	return &Service{expr: cronExpr, onRefresh: onRefresh}
}

// Start registers the refresh entry and starts the scheduler. Cancelling
// ctx stops the service.
func (s *Service) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.cancel = cancel
	s.cron = rcron.New()
	s.mu.Unlock()

	if _, err := s.cron.AddFunc(s.expr, func() { s.runOnce(runCtx) }); err != nil {
		cancel()
		return fmt.Errorf("invalid cron expression %q: %w", s.expr, err)
	}

	s.cron.Start()
	fmt.Printf("[SCHEDULE] Refresh scheduled with %q\n", s.expr)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

func (s *Service) runOnce(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		fmt.Println("[SCHEDULE] Previous refresh still running, skipping tick")
		return
	}
	s.running = true
	s.mu.Unlock()

	fmt.Println("[SCHEDULE] Starting scheduled refresh...")
	processed, err := s.onRefresh(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.state.LastRunAt = time.Now()
	s.state.Processed = processed
	if err != nil {
		s.state.LastStatus = "error"
		s.state.LastError = err.Error()
		fmt.Printf("[SCHEDULE] Refresh failed: %v\n", err)
		return
	}
	s.state.LastStatus = "ok"
	s.state.LastError = ""
	fmt.Printf("[SCHEDULE] Refresh done, %d companies processed\n", processed)
}

// TriggerNow runs a refresh immediately, outside the cron schedule.
// It respects the same no-overlap rule.
func (s *Service) TriggerNow(ctx context.Context) {
	s.runOnce(ctx)
}

// State returns a copy of the last run's outcome.
func (s *Service) State() RunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Stop halts the scheduler and waits briefly for a running refresh.
func (s *Service) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	cron := s.cron
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if cron != nil {
		stopCtx := cron.Stop()
		select {
		case <-stopCtx.Done():
		case <-time.After(5 * time.Second):
			fmt.Println("[SCHEDULE] Stop timeout waiting for running refresh")
		}
	}
}
