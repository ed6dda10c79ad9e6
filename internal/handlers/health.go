package handlers

import (
	"net/http"

	"github.com/brokeradda/adda-admin/internal/service"
	"github.com/gin-gonic/gin"
)

// Health handles GET /health
func Health(env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    env,
		})
	}
}

// Toasts handles GET /api/v1/toasts, draining the queued notifications.
func Toasts(q *service.ToastQueue) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, q.Drain())
	}
}
