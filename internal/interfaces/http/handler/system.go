package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tiendapro/backend/internal/infrastructure/logger"
	"github.com/tiendapro/backend/internal/infrastructure/persistence"
	"github.com/tiendapro/backend/internal/interfaces/http/dto"
)

// SystemHandler handles health and system information endpoints
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database) *SystemHandler {
	return &SystemHandler{
		db:        db,
		startTime: time.Now(),
	}
}

// RegisterRoutes mounts system routes under /system
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	system.GET("/info", h.Info)
	system.GET("/ping", h.Ping)
}

// HealthResponse reports process and dependency health
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// Health reports liveness plus database reachability. It returns 503
// when the database cannot be reached, so load balancers stop routing
// traffic here.
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		Database:  "up",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if err := h.db.Ping(); err != nil {
		logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
		resp.Status = "unhealthy"
		resp.Database = "down"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Info returns basic build and uptime information
func (h *SystemHandler) Info(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      "TiendaPro API",
		Version:   "1.0.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// Ping is a trivial responsiveness check
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"message":   "pong",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}))
}
