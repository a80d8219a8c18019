package signal

import (
	"context"
	"sync"

	"github.com/zeusync/zeusui/internal/core/observability/log"
)

// Task is a unit of work run on the scheduler goroutine.
type Task func()

// Scheduler is a single-threaded cooperative executor. Post may be called
// from any goroutine; tasks only ever run on the goroutine driving Tick,
// RunUntilIdle or Run, one at a time and in posting order.
type Scheduler struct {
	mu    sync.Mutex
	queue []Task
	wake  chan struct{}
	log   log.Log
}

// NewScheduler creates an idle scheduler. A nil logger disables logging.
func NewScheduler(logger log.Log) *Scheduler {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Scheduler{
		wake: make(chan struct{}, 1),
		log:  logger.Named("scheduler"),
	}
}

// Post enqueues t for the next turn.
func (s *Scheduler) Post(t Task) {
	if t == nil {
		return
	}
	s.mu.Lock()
	s.queue = append(s.queue, t)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of queued tasks.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Tick runs one turn: every task queued when the turn starts. Tasks posted
// while the turn runs wait for the next one. It reports whether anything ran.
func (s *Scheduler) Tick() bool {
	s.mu.Lock()
	batch := s.queue
	s.queue = nil
	s.mu.Unlock()

	for _, t := range batch {
		t()
	}
	return len(batch) > 0
}

// RunUntilIdle ticks until the queue is empty and returns the number of turns.
func (s *Scheduler) RunUntilIdle() int {
	turns := 0
	for s.Tick() {
		turns++
	}
	return turns
}

// Run drives the scheduler until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.Debug("scheduler started")
	defer s.log.Debug("scheduler stopped")

	for {
		s.RunUntilIdle()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.wake:
		}
	}
}
