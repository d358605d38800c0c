package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Scheduler runs a job at a fixed interval in a background goroutine
type Scheduler struct {
	interval time.Duration
	job      func()
	clock    clockwork.Clock
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
}

// New creates a Scheduler driven by the real clock
func New(interval time.Duration, job func()) *Scheduler {
	return NewWithClock(interval, job, clockwork.NewRealClock())
}

// NewWithClock creates a Scheduler driven by the given clock
func NewWithClock(interval time.Duration, job func(), clock clockwork.Clock) *Scheduler {
	return &Scheduler{
		interval: interval,
		job:      job,
		clock:    clock,
	}
}

// Start begins executing the job every interval. Calling Start twice is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.running = true

	ticker := s.clock.NewTicker(s.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer ticker.Stop()

		for {
			select {
			case <-ticker.Chan():
				s.job()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop terminates the job loop and waits for an in-progress run to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	s.wg.Wait()
	s.running = false
}

// IsRunning returns true if the job loop is active
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
