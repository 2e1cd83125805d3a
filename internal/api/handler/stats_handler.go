package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martijn/taskman/internal/core/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type StatsHandler struct {
	taskService *service.TaskService
	db          Pinger
}

func NewStatsHandler(taskService *service.TaskService, db Pinger) *StatsHandler {
	return &StatsHandler{
		taskService: taskService,
		db:          db,
	}
}

// DashboardStats handles GET /api/dashboard-stats
func (h *StatsHandler) DashboardStats(c *gin.Context) {
	stats, err := h.taskService.GetDashboardStats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Health handles GET /health. It reports 503 when the database ping fails so
// load balancers can take the instance out of rotation.
func (h *StatsHandler) Health(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if err := h.db.Ping(c.Request.Context()); err != nil {
		status = http.StatusServiceUnavailable
		body["status"] = "unhealthy"
		body["database"] = "disconnected"
	}

	c.JSON(status, body)
}
