package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/onurcolak/whatsapp-session-bridge/handlers"
	"github.com/onurcolak/whatsapp-session-bridge/internal/domain"
	"github.com/onurcolak/whatsapp-session-bridge/internal/middlewares"
	"github.com/onurcolak/whatsapp-session-bridge/internal/repository"
	"github.com/onurcolak/whatsapp-session-bridge/internal/scheduler"
	"github.com/onurcolak/whatsapp-session-bridge/internal/service"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/database"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/gateway"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/logger"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/printer"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/queue"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/realtime"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/redis"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/storage"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/validator"
	"github.com/onurcolak/whatsapp-session-bridge/routes"
)

func serve() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Hard-fail if required secrets are missing
	if cfg.Auth.APIKey == "" {
		logger.Fatalf("API_KEY is required but not set")
	}

	logger.Infof("Starting WhatsApp Session Bridge...")

	// Init DB
	db, err := database.Open(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.RunMigrations(db); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Reconnect guard: shared through Valkey when enabled, process-local otherwise
	var redisClient *redis.Client
	var guard service.ReconnectGuard = service.NewMemoryGuard(cfg.Reconnect.LockTTL)
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Warnf("Redis not available, using in-process reconnect guard: %v", err)
			redisClient = nil
		} else {
			guard = service.NewValkeyGuard(redisClient, cfg.Reconnect.LockTTL)
		}
	}

	// RabbitMQ is only dialled when something needs it
	var broker *queue.Client
	if cfg.Tasks.Backend == "amqp" || cfg.RabbitMQ.RealtimeExchange != "" {
		broker, err = queue.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			logger.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
	}

	// Realtime fan-out
	hub := realtime.NewHub()
	var publisher realtime.Publisher = hub
	if cfg.RabbitMQ.RealtimeExchange != "" {
		if err := broker.DeclareExchange(cfg.RabbitMQ.RealtimeExchange, amqp.ExchangeTopic); err != nil {
			logger.Fatalf("Failed to declare realtime exchange: %v", err)
		}
		publisher = realtime.Fanout{hub, realtime.NewBrokerPublisher(broker, cfg.RabbitMQ.RealtimeExchange)}
		logger.Infof("Realtime events mirrored to exchange %s", cfg.RabbitMQ.RealtimeExchange)
	}

	// Background tasks
	var tasks scheduler.Scheduler
	switch cfg.Tasks.Backend {
	case "amqp":
		tasks = scheduler.NewAMQPScheduler(broker, cfg.RabbitMQ, cfg.Tasks.Workers)
	default:
		tasks = scheduler.NewLocalScheduler(cfg.Tasks.Workers, cfg.Tasks.QueueSize)
	}

	// Initialize repositories
	sessionRepo := repository.NewSessionRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	contactRepo := repository.NewContactRepository(db)
	logRepo := repository.NewCommunicationLogRepository(db)

	// Initialize services
	blobs, err := storage.NewLocalStore(cfg.Storage.MediaDir, cfg.Storage.MediaBaseURL)
	if err != nil {
		logger.Fatalf("Failed to prepare media storage: %v", err)
	}

	gatewayClient := gateway.NewClient(cfg.Gateway)
	registry := service.NewSessionRegistry(sessionRepo, publisher, guard)
	store := service.NewMessageStore(messageRepo, contactRepo, service.MediaPolicy(cfg.Message.MediaPolicy))
	media := service.NewMediaService(blobs, cfg.Message.MaxMediaBytes)

	dispatcher := service.NewOutboundDispatcher(service.DispatcherDeps{
		Sessions:  registry,
		Gateway:   gatewayClient,
		Store:     store,
		Media:     media,
		Logs:      logRepo,
		Guard:     guard,
		Scheduler: tasks,
	}, cfg.Gateway, cfg.Reconnect, cfg.Message)

	manager := service.NewSessionManager(registry, gatewayClient, guard, cfg.WebhookURL(), cfg.Gateway, cfg.Reconnect)
	ingestor := service.NewWebhookIngestor(registry, store, media, publisher)
	notifier := service.NewNotifier(dispatcher, contactRepo, printer.NewHTTPRenderer(cfg.Print))
	contacts := service.NewContactDirectory(contactRepo)

	tasks.Register(domain.TaskReconnectSession, manager.Reconnect)

	logger.Infof("Gateway default URL: %s, webhook callback: %s", cfg.Gateway.DefaultURL, cfg.WebhookURL())

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := tasks.Start(ctx); err != nil {
		logger.Fatalf("Failed to start task workers: %v", err)
	}

	// A nil *redis.Client must not reach the handler as a non-nil interface.
	var redisPinger interface {
		Ping(ctx context.Context) error
	}
	if redisClient != nil {
		redisPinger = redisClient
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()

	// Middleware
	e.Use(middlewares.AccessLog(nil))
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			middlewares.APIKeyHeader,
			domain.WebhookTokenHeader,
		},
	}))

	e.Static(cfg.Storage.MediaBaseURL, blobs.Dir())

	// Setup routes
	routes.RegisterRoutes(e, routes.Handlers{
		Health:       handlers.NewHealthHandler(db, redisPinger, tasks),
		Session:      handlers.NewSessionHandler(manager),
		Message:      handlers.NewMessageHandler(dispatcher, store, media),
		Webhook:      handlers.NewWebhookHandler(ingestor),
		Media:        handlers.NewMediaHandler(media),
		Contact:      handlers.NewContactHandler(contacts),
		Realtime:     handlers.NewRealtimeHandler(hub),
		Scheduler:    handlers.NewSchedulerHandler(tasks, ctx),
		Notification: handlers.NewNotificationHandler(notifier),
		Log:          handlers.NewLogHandler(logRepo),
	}, cfg)

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Infof("Server starting on http://localhost%s", addr)
		logger.Infof("Swagger docs available at http://localhost%s/swagger/index.html", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down gracefully...")

	// Cancel context to signal all goroutines to stop
	cancel()

	// Stop task workers first (with timeout)
	if tasks.IsRunning() {
		logger.Infof("Stopping task workers...")
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()

		done := make(chan error, 1)
		go func() {
			done <- tasks.Stop()
		}()

		select {
		case err := <-done:
			if err != nil {
				logger.Errorf("Error stopping task workers: %v", err)
			} else {
				logger.Infof("Task workers stopped successfully")
			}
		case <-stopCtx.Done():
			logger.Warnf("Task worker stop timeout, forcing shutdown")
		}
	}

	// Shutdown HTTP server (with timeout)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	logger.Infof("Shutting down HTTP server...")
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	} else {
		logger.Infof("HTTP server stopped successfully")
	}

	hub.Close()

	if broker != nil {
		logger.Infof("Closing RabbitMQ connection...")
		if err := broker.Close(); err != nil {
			logger.Errorf("Error closing RabbitMQ: %v", err)
		}
	}

	// Close database connection
	logger.Infof("Closing database connection...")
	if err := db.Close(); err != nil {
		logger.Errorf("Error closing database: %v", err)
	}

	// Close Redis connection
	if redisClient != nil {
		logger.Infof("Closing Redis connection...")
		if err := redisClient.Close(); err != nil {
			logger.Errorf("Error closing Redis: %v", err)
		}
	}

	logger.Infof("Graceful shutdown completed")
	return nil
}
