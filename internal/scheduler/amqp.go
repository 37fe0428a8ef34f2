package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/onurcolak/whatsapp-session-bridge/environments"
	"github.com/onurcolak/whatsapp-session-bridge/internal/domain"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/logger"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/queue"
)

type broker interface {
	DeclareExchange(name, kind string) error
	DeclareQueue(queue, exchange, key string) error
	PublishJSON(ctx context.Context, exchange, routingKey string, env queue.Envelope) error
	Consume(ctx context.Context, queue string, prefetch int, handler func(context.Context, amqp.Delivery) error) error
}

type taskEnvelope struct {
	Meta queue.Meta  `json:"meta"`
	Data domain.Task `json:"data"`
}

// AMQPScheduler submits tasks to a RabbitMQ queue and consumes them with
// the same process, so work survives restarts and spreads across replicas.
type AMQPScheduler struct {
	registry

	broker   broker
	exchange string
	queue    string
	workers  int
	prefetch int

	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	stateMu sync.RWMutex
}

func NewAMQPScheduler(b broker, cfg environments.RabbitMQConfig, workers int) *AMQPScheduler {
	if workers <= 0 {
		workers = 1
	}
	return &AMQPScheduler{
		registry: newRegistry(),
		broker:   b,
		exchange: cfg.TaskExchange,
		queue:    cfg.TaskQueue,
		workers:  workers,
		prefetch: cfg.Prefetch,
	}
}

func (s *AMQPScheduler) Enqueue(ctx context.Context, task domain.Task) error {
	if !s.IsRunning() {
		return ErrNotRunning
	}

	prepare(&task)

	env := queue.NewEnvelope(string(task.Kind), task)
	env.Meta.ID = task.ID
	env.Meta.CorrelationID = task.DedupKey

	if err := s.broker.PublishJSON(ctx, s.exchange, string(task.Kind), env); err != nil {
		return fmt.Errorf("publish task: %w", err)
	}

	s.countEnqueued()
	return nil
}

func (s *AMQPScheduler) Start(ctx context.Context) error {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	if s.running {
		logger.Warnf("Scheduler is already running")
		return nil
	}

	if err := s.broker.DeclareExchange(s.exchange, amqp.ExchangeTopic); err != nil {
		return err
	}
	if err := s.broker.DeclareQueue(s.queue, s.exchange, "#"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	logger.Infof("Starting AMQP task scheduler on queue %s with %d consumers", s.queue, s.workers)

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			err := s.broker.Consume(runCtx, s.queue, s.prefetch, s.handleDelivery)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Errorf("Task consumer stopped: %v", err)
			}
		}()
	}

	return nil
}

func (s *AMQPScheduler) handleDelivery(ctx context.Context, d amqp.Delivery) error {
	var env taskEnvelope
	if err := json.Unmarshal(d.Body, &env); err != nil {
		return queue.ErrPoison
	}
	if _, ok := s.handler(env.Data.Kind); !ok {
		return fmt.Errorf("%w: %s", queue.ErrPoison, env.Data.Kind)
	}

	return s.execute(ctx, env.Data)
}

func (s *AMQPScheduler) Stop() error {
	s.stateMu.Lock()
	if !s.running {
		s.stateMu.Unlock()
		logger.Warnf("Scheduler is not running")
		return nil
	}
	s.running = false
	s.cancel()
	s.stateMu.Unlock()

	s.wg.Wait()

	logger.Infof("Scheduler stopped")
	return nil
}

func (s *AMQPScheduler) IsRunning() bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.running
}

func (s *AMQPScheduler) GetStatus() SchedulerStatus {
	status := SchedulerStatus{
		Backend: "amqp",
		Running: s.IsRunning(),
		Workers: s.workers,
	}
	s.fill(&status)
	return status
}
