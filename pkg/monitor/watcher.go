package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"agentscrape-go/pkg/cli/logger"
	"agentscrape-go/pkg/models"

	"github.com/go-co-op/gocron"
)

// DefaultInterval is the polling period used when none is configured.
const DefaultInterval = 3 * time.Second

var (
	// ErrStopped is returned by Wait and Start once the watcher was stopped.
	ErrStopped = errors.New("watcher stopped")
	// ErrNoAgent is returned by Start when the watcher has no agent ID.
	ErrNoAgent = errors.New("no agent ID provided")
)

// Fetcher reads the current webpage list of an agent.
type Fetcher interface {
	ListWebpages(ctx context.Context, agentID models.ID) ([]models.Webpage, error)
}

// Hooks receive watcher events. They run on the scheduler goroutine and any
// of them may be nil.
type Hooks struct {
	OnUpdate   func(pages []models.Webpage, progress int)
	OnError    func(err error)
	OnComplete func()
}

// Watcher drives a Machine outside the TUI. A gocron job in singleton mode
// is the polling timer, so tick reads never overlap.
type Watcher struct {
	mu        sync.Mutex
	machine   *Machine
	fetcher   Fetcher
	interval  time.Duration
	hooks     Hooks
	log       *logger.Logger
	scheduler *gocron.Scheduler
	ctx       context.Context

	done     chan struct{}
	stopped  chan struct{}
	doneOnce sync.Once
	stopOnce sync.Once
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherLogger attaches a logger.
func WithWatcherLogger(l *logger.Logger) WatcherOption {
	return func(w *Watcher) { w.log = l.Sub("monitor") }
}

// NewWatcher creates a watcher for agentID. It does nothing until Start.
func NewWatcher(agentID models.ID, fetcher Fetcher, interval time.Duration, hooks Hooks, opts ...WatcherOption) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	w := &Watcher{
		machine:  NewMachine(agentID),
		fetcher:  fetcher,
		interval: interval,
		hooks:    hooks,
		log:      logger.Nop(),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start enters Polling and schedules the first read immediately. Calling
// Start while already polling does nothing.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.machine.AgentID() == "" {
		return ErrNoAgent
	}
	if w.machine.Closed() {
		return ErrStopped
	}

	id, started := w.machine.StartPolling()
	if !started {
		return nil
	}

	s := gocron.NewScheduler(time.UTC)
	if _, err := s.Every(w.interval).SingletonMode().Do(w.tick, id); err != nil {
		w.machine.Close()
		return fmt.Errorf("failed to schedule poll: %w", err)
	}

	w.ctx = ctx
	w.scheduler = s
	w.log.Debug().
		Str("agent_id", w.machine.AgentID().String()).
		Uint64("timer", uint64(id)).
		Dur("interval", w.interval).
		Msg("polling started")
	s.StartAsync()

	go func() {
		select {
		case <-ctx.Done():
			w.Stop()
		case <-w.done:
		case <-w.stopped:
		}
	}()
	return nil
}

func (w *Watcher) tick(id TimerID) {
	w.mu.Lock()
	if !w.machine.Owns(id) {
		w.mu.Unlock()
		return
	}
	ctx := w.ctx
	agentID := w.machine.AgentID()
	w.mu.Unlock()

	pages, err := w.fetcher.ListWebpages(ctx, agentID)

	w.mu.Lock()
	if !w.machine.Owns(id) {
		// Stopped or completed while the read was in flight.
		w.mu.Unlock()
		return
	}
	if err != nil {
		w.mu.Unlock()
		w.log.Warn().Err(err).Str("agent_id", agentID.String()).Msg("poll failed")
		if w.hooks.OnError != nil {
			w.hooks.OnError(err)
		}
		return
	}

	ev := w.machine.Observe(pages)
	progress := w.machine.Progress()
	var s *gocron.Scheduler
	if ev == EventCompleted {
		s = w.scheduler
		w.scheduler = nil
	}
	w.mu.Unlock()

	if w.hooks.OnUpdate != nil {
		w.hooks.OnUpdate(pages, progress)
	}
	if ev != EventCompleted {
		return
	}

	w.log.Info().Str("agent_id", agentID.String()).Msg("scrape completed")
	if w.hooks.OnComplete != nil {
		w.hooks.OnComplete()
	}
	w.doneOnce.Do(func() { close(w.done) })
	if s != nil {
		// Stop waits for running jobs, and this is one.
		go s.Stop()
	}
}

// Stop releases the timer. No read is issued after Stop returns, and results
// of a read already in flight are discarded.
func (w *Watcher) Stop() {
	w.mu.Lock()
	w.machine.Close()
	s := w.scheduler
	w.scheduler = nil
	w.mu.Unlock()

	if s != nil {
		s.Stop()
	}
	w.stopOnce.Do(func() { close(w.stopped) })
}

// Done is closed when the scrape job completes.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// Wait blocks until the job completes, the watcher is stopped, or ctx ends.
func (w *Watcher) Wait(ctx context.Context) error {
	select {
	case <-w.done:
		return nil
	case <-w.stopped:
		select {
		case <-w.done:
			return nil
		default:
		}
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Progress returns the last derived progress.
func (w *Watcher) Progress() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.machine.Progress()
}

// Polling reports whether the watcher still owns a live timer.
func (w *Watcher) Polling() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.machine.IsPolling() && !w.machine.Closed()
}
