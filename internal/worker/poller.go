// Package worker drives the ambient refresh loop: a fixed-interval poller
// around the sync service with explicit overlap prevention and teardown.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/openmind-services/helpdesk-dashboard/internal/events"
)

// ErrRefreshInFlight rejects a manual refresh requested while a fetch is
// already running. Refreshes are never stacked.
var ErrRefreshInFlight = errors.New("a fetch is already in flight")

// CycleRunner runs one complete fetch cycle and returns the committed
// ticket count.
type CycleRunner interface {
	RunCycle(ctx context.Context) (int, error)
}

// pollState is the scheduler's tagged state. Making Idle/Fetching explicit
// keeps overlap prevention and cancellation testable apart from timer
// mechanics.
type pollState int

const (
	stateIdle pollState = iota
	stateFetching
)

// Poller owns the timer and the single-flight rule: at most one fetch cycle
// is in flight at any time, whether timer-driven or manual.
type Poller struct {
	runner     CycleRunner
	dispatcher events.Dispatcher
	logger     *zap.Logger
	interval   time.Duration

	mu    sync.Mutex
	state pollState

	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller creates a poller. Intervals <= 0 fall back to 30 seconds.
func NewPoller(runner CycleRunner, dispatcher events.Dispatcher, interval time.Duration, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Poller{
		runner:     runner,
		dispatcher: dispatcher,
		logger:     logger,
		interval:   interval,
	}
}

// Start runs an immediate first cycle and then polls on the fixed interval
// until Stop or parent context cancellation.
func (p *Poller) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.loop(ctx)
}

// Stop cancels the timer and waits for the loop to exit. An in-flight fetch
// is not forcibly aborted; the sync service discards its results on seeing
// the cancelled context.
func (p *Poller) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.logger.Info("polling stopped")
}

// Refresh runs a user-initiated cycle. Unlike ambient polling it confirms
// completion unconditionally via a manual refreshed event. Returns
// ErrRefreshInFlight when a fetch is already running.
func (p *Poller) Refresh(ctx context.Context) error {
	if !p.beginCycle() {
		return ErrRefreshInFlight
	}
	defer p.endCycle()

	count, err := p.runner.RunCycle(ctx)
	if err != nil {
		return err
	}
	_ = p.dispatcher.Publish(ctx, events.NewEvent(events.EventTicketsRefreshed,
		events.TicketsRefreshedPayload{Total: count, Manual: true}))
	return nil
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.done)

	p.runScheduled(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.runScheduled(ctx)
		}
	}
}

func (p *Poller) runScheduled(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if !p.beginCycle() {
		// The previous cycle has not completed; this tick is skipped
		// rather than stacked.
		p.logger.Debug("skipping poll, fetch in flight")
		return
	}
	defer p.endCycle()

	count, err := p.runner.RunCycle(ctx)
	if err != nil {
		// The sync service already published the classified failure.
		p.logger.Debug("scheduled cycle failed", zap.Error(err))
		return
	}
	_ = p.dispatcher.Publish(ctx, events.NewEvent(events.EventTicketsRefreshed,
		events.TicketsRefreshedPayload{Total: count, Manual: false}))
}

func (p *Poller) beginCycle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == stateFetching {
		return false
	}
	p.state = stateFetching
	return true
}

func (p *Poller) endCycle() {
	p.mu.Lock()
	p.state = stateIdle
	p.mu.Unlock()
}
