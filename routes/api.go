package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/onurcolak/whatsapp-session-bridge/environments"
	"github.com/onurcolak/whatsapp-session-bridge/handlers"
	"github.com/onurcolak/whatsapp-session-bridge/internal/middlewares"
)

// Handlers bundles every HTTP handler the API exposes.
type Handlers struct {
	Health       *handlers.HealthHandler
	Session      *handlers.SessionHandler
	Message      *handlers.MessageHandler
	Webhook      *handlers.WebhookHandler
	Media        *handlers.MediaHandler
	Contact      *handlers.ContactHandler
	Realtime     *handlers.RealtimeHandler
	Scheduler    *handlers.SchedulerHandler
	Notification *handlers.NotificationHandler
	Log          *handlers.LogHandler
}

// RegisterRoutes registers all API routes with middleware
func RegisterRoutes(e *echo.Echo, h Handlers, cfg *environments.Config) {
	e.GET("/health", h.Health.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 base group
	v1 := e.Group("/api/v1")
	if cfg.Server.BodyLimit != "" {
		v1.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	}

	// The gateway authenticates with the per-session webhook secret instead.
	v1.POST("/whatsapp/webhook", h.Webhook.Receive)

	// Browsers cannot set headers on websocket upgrades.
	v1.GET("/realtime/ws", h.Realtime.Subscribe, middlewares.APIKeyAuthWithQuery(cfg.Auth.APIKey))

	api := v1.Group("", middlewares.APIKeyAuth(cfg.Auth.APIKey))

	sessions := api.Group("/sessions")
	sessions.PUT("", h.Session.ConfigureSession)
	sessions.POST("/connect", h.Session.Connect)
	sessions.GET("/status", h.Session.Status)
	sessions.POST("/logout", h.Session.Logout)
	sessions.POST("/contact-info", h.Session.ContactInfo)

	messages := api.Group("/messages")
	messages.POST("/send", h.Message.SendMessage)
	messages.POST("/voice", h.Message.SendVoiceNote)
	messages.GET("/conversations", h.Message.GetConversations)
	messages.GET("/history", h.Message.GetHistory)
	messages.GET("/stats", h.Message.GetStats)
	messages.POST("/:id/media", h.Message.AttachMedia)

	api.POST("/media", h.Media.Upload)
	api.GET("/contacts/search", h.Contact.Search)

	tasks := api.Group("/tasks")
	tasks.POST("/start", h.Scheduler.StartScheduler)
	tasks.POST("/stop", h.Scheduler.StopScheduler)
	tasks.GET("/status", h.Scheduler.GetSchedulerStatus)

	api.POST("/notifications/invoice", h.Notification.NotifyInvoice)
	api.POST("/documents/send-pdf", h.Notification.SendDocumentPDF)

	api.GET("/communication-logs", h.Log.GetCommunicationLogs)
}
