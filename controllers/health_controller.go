package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ilhamriadi/projects.co.id/pkg/resp"
	"gorm.io/gorm"
)

type HealthController struct {
	DB      *gorm.DB
	Timeout time.Duration
}

func NewHealthController(db *gorm.DB, timeout time.Duration) *HealthController {
	return &HealthController{DB: db, Timeout: timeout}
}

// GET /health
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.Timeout)
	defer cancel()

	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, resp.Envelope{Success: false, Message: "database unavailable", Code: "DB_UNAVAILABLE"})
		return
	}
	resp.OK(c, "OK", gin.H{"database": "up", "time": time.Now().UTC()})
}
