package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"

	"github.com/onurcolak/whatsapp-session-bridge/internal/scheduler"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health checks.
type HealthHandler struct {
	db           *sqlx.DB
	redis        pinger
	tasks        scheduler.Scheduler
	checkTimeout time.Duration
}

// NewHealthHandler accepts a nil redis when the distributed guard is disabled.
func NewHealthHandler(db *sqlx.DB, redis pinger, tasks scheduler.Scheduler) *HealthHandler {
	return &HealthHandler{
		db:           db,
		redis:        redis,
		tasks:        tasks,
		checkTimeout: 2 * time.Second,
	}
}

// Health returns overall status and basic component statuses.
// @Summary Health check
// @Description Returns overall status with database, Redis and task worker results
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.checkTimeout)
	defer cancel()

	overallStatus := "ok"

	dbStatus := "up"
	if h.db == nil {
		dbStatus = "down"
		overallStatus = "down"
	} else if err := h.db.PingContext(ctx); err != nil {
		dbStatus = "down"
		overallStatus = "down"
	}

	redisStatus := "disabled"
	if h.redis != nil {
		if err := h.redis.Ping(ctx); err != nil {
			redisStatus = "down"
			if overallStatus == "ok" {
				overallStatus = "degraded"
			}
		} else {
			redisStatus = "up"
		}
	}

	tasks := map[string]any{"status": "disabled"}
	if h.tasks != nil {
		st := h.tasks.GetStatus()
		tasks = map[string]any{"status": "stopped", "backend": st.Backend, "queueDepth": st.QueueDepth}
		if st.Running {
			tasks["status"] = "running"
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":    overallStatus,
		"timestamp": time.Now().Format(time.RFC3339),
		"components": map[string]any{
			"database": map[string]any{
				"status": dbStatus,
			},
			"redis": map[string]any{
				"status": redisStatus,
			},
			"tasks": tasks,
		},
	})
}
