package handlers

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/whatsapp-session-bridge/internal/scheduler"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/response"
)

type SchedulerHandler struct {
	scheduler scheduler.Scheduler
	ctx       context.Context
}

func NewSchedulerHandler(sched scheduler.Scheduler, ctx context.Context) *SchedulerHandler {
	return &SchedulerHandler{
		scheduler: sched,
		ctx:       ctx,
	}
}

// StartScheduler godoc
// @Summary Start the task workers
// @Description Starts the background workers that run reconnect tasks
// @Tags tasks
// @Produce json
// @Param x-ins-auth-key header string true "API key"
// @Success 200 {object} response.SuccessResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/tasks/start [post]
func (h *SchedulerHandler) StartScheduler(c echo.Context) error {
	if h.scheduler.IsRunning() {
		return response.OkWithMessage(c, "Task workers are already running", h.scheduler.GetStatus())
	}

	if err := h.scheduler.Start(h.ctx); err != nil {
		return response.InternalServerError(c, err)
	}

	return response.OkWithMessage(c, "Task workers started successfully", h.scheduler.GetStatus())
}

// StopScheduler godoc
// @Summary Stop the task workers
// @Description Stops the background workers; queued tasks wait until they are started again
// @Tags tasks
// @Produce json
// @Param x-ins-auth-key header string true "API key"
// @Success 200 {object} response.SuccessResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/tasks/stop [post]
func (h *SchedulerHandler) StopScheduler(c echo.Context) error {
	if !h.scheduler.IsRunning() {
		return response.OkWithMessage(c, "Task workers are already stopped", h.scheduler.GetStatus())
	}

	if err := h.scheduler.Stop(); err != nil {
		return response.InternalServerError(c, err)
	}

	return response.OkWithMessage(c, "Task workers stopped successfully", h.scheduler.GetStatus())
}

// GetSchedulerStatus godoc
// @Summary Get task worker status
// @Description Returns backend, queue depth and run counters of the task workers
// @Tags tasks
// @Produce json
// @Param x-ins-auth-key header string true "API key"
// @Success 200 {object} response.SuccessResponse
// @Router /api/v1/tasks/status [get]
func (h *SchedulerHandler) GetSchedulerStatus(c echo.Context) error {
	return response.Ok(c, h.scheduler.GetStatus())
}
