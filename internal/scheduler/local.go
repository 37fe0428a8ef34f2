package scheduler

import (
	"context"
	"sync"

	"github.com/onurcolak/whatsapp-session-bridge/internal/domain"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/logger"
)

// LocalScheduler runs tasks on an in-process worker pool.
type LocalScheduler struct {
	registry

	workers int
	queue   chan domain.Task

	// Internal state
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
	stateMu  sync.RWMutex
}

func NewLocalScheduler(workers, queueSize int) *LocalScheduler {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}

	return &LocalScheduler{
		registry: newRegistry(),
		workers:  workers,
		queue:    make(chan domain.Task, queueSize),
	}
}

func (s *LocalScheduler) Enqueue(_ context.Context, task domain.Task) error {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	if !s.running {
		return ErrNotRunning
	}

	prepare(&task)

	select {
	case s.queue <- task:
		s.countEnqueued()
		logger.Debugf("Enqueued task %s (%s) for session %s", task.ID, task.Kind, task.SessionID)
		return nil
	default:
		return ErrQueueFull
	}
}

func (s *LocalScheduler) Start(ctx context.Context) error {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	if s.running {
		logger.Warnf("Scheduler is already running")
		return nil
	}

	s.running = true
	s.stopChan = make(chan struct{})

	logger.Infof("Starting local task scheduler with %d workers", s.workers)

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.run(ctx, s.stopChan)
	}

	return nil
}

func (s *LocalScheduler) run(ctx context.Context, stop <-chan struct{}) {
	defer s.wg.Done()

	for {
		select {
		case task := <-s.queue:
			_ = s.execute(ctx, task)

		case <-stop:
			return

		case <-ctx.Done():
			return
		}
	}
}

// Stop waits for running tasks to finish. Queued tasks are discarded.
func (s *LocalScheduler) Stop() error {
	s.stateMu.Lock()

	if !s.running {
		s.stateMu.Unlock()
		logger.Warnf("Scheduler is not running")
		return nil
	}

	s.running = false
	close(s.stopChan)
	s.stateMu.Unlock()

	s.wg.Wait()

	logger.Infof("Scheduler stopped")
	return nil
}

func (s *LocalScheduler) IsRunning() bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.running
}

func (s *LocalScheduler) GetStatus() SchedulerStatus {
	status := SchedulerStatus{
		Backend:    "local",
		Running:    s.IsRunning(),
		Workers:    s.workers,
		QueueDepth: len(s.queue),
	}
	s.fill(&status)
	return status
}
