package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emuats/recipely/backend/internal/database"
)

// HealthHandler answers liveness probes. When a raw database handle is
// present the response includes a real connectivity check.
type HealthHandler struct {
	db *database.DB
}

func NewHealthHandler(db *database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.HealthCheck)
	router.GET("/api/health", h.HealthCheck)
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	resp := gin.H{
		"status":  "healthy",
		"message": "Recipely API is running",
		"version": "v1.0.0",
	}

	if h.db != nil {
		if err := h.db.HealthCheck(c.Request.Context()); err != nil {
			resp["status"] = "degraded"
			resp["database"] = "unreachable"
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
		resp["database"] = "ok"
	}

	c.JSON(http.StatusOK, resp)
}
