package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/onurcolak/whatsapp-session-bridge/internal/domain"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/logger"
)

var (
	ErrNotRunning = errors.New("scheduler is not running")
	ErrQueueFull  = errors.New("task queue is full")
	ErrNoHandler  = errors.New("no handler registered for task kind")
)

// Handler executes one task. ctx carries the task's timeout.
type Handler func(ctx context.Context, task domain.Task) error

// Scheduler runs background tasks submitted with Enqueue.
type Scheduler interface {
	Register(kind domain.TaskKind, h Handler)
	Enqueue(ctx context.Context, task domain.Task) error
	Start(ctx context.Context) error
	Stop() error
	IsRunning() bool
	GetStatus() SchedulerStatus
}

type SchedulerStatus struct {
	Backend             string    `json:"backend"`
	Running             bool      `json:"running"`
	Workers             int       `json:"workers"`
	QueueDepth          int       `json:"queueDepth"`
	Enqueued            int64     `json:"enqueued"`
	Processed           int64     `json:"processed"`
	Failed              int64     `json:"failed"`
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastRunAt           time.Time `json:"lastRunAt,omitempty"`
	LastError           string    `json:"lastError,omitempty"`
}

// registry holds handlers and counters shared by every backend.
type registry struct {
	mu       sync.RWMutex
	handlers map[domain.TaskKind]Handler

	enqueued            int64
	processed           int64
	failed              int64
	consecutiveFailures int
	lastRunAt           time.Time
	lastError           string
}

func newRegistry() registry {
	return registry{handlers: make(map[domain.TaskKind]Handler)}
}

func (r *registry) Register(kind domain.TaskKind, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[kind] = h
}

func (r *registry) handler(kind domain.TaskKind) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[kind]
	return h, ok
}

// prepare fills in the id and enqueue time of a new task.
func prepare(task *domain.Task) {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.EnqueuedAt.IsZero() {
		task.EnqueuedAt = time.Now().UTC()
	}
}

func (r *registry) countEnqueued() {
	r.mu.Lock()
	r.enqueued++
	r.mu.Unlock()
}

// execute runs the task's handler under its timeout and records the outcome.
func (r *registry) execute(ctx context.Context, task domain.Task) (err error) {
	h, ok := r.handler(task.Kind)
	if !ok {
		err = fmt.Errorf("%w: %s", ErrNoHandler, task.Kind)
		r.record(task, err)
		return err
	}

	if task.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, task.Timeout)
		defer cancel()
	}

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("task %s panicked: %v", task.ID, p)
		}
		r.record(task, err)
	}()

	startTime := time.Now()
	err = h(ctx, task)
	logger.Debugf("Task %s (%s) finished in %v", task.ID, task.Kind, time.Since(startTime))

	return err
}

func (r *registry) record(task domain.Task, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastRunAt = time.Now()
	r.processed++

	if err != nil {
		r.failed++
		r.consecutiveFailures++
		r.lastError = err.Error()
		logger.Errorf("Task %s (%s) for session %s failed: %v", task.ID, task.Kind, task.SessionID, err)
		return
	}

	r.consecutiveFailures = 0
}

func (r *registry) fill(status *SchedulerStatus) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	status.Enqueued = r.enqueued
	status.Processed = r.processed
	status.Failed = r.failed
	status.ConsecutiveFailures = r.consecutiveFailures
	status.LastRunAt = r.lastRunAt
	status.LastError = r.lastError
}
