package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fortresslabs/garrison/internal/middleware"
)

// RegisterRoutes mounts the API surface. Everything under /api except login
// requires a valid token.
func RegisterRoutes(r *gin.Engine, h *Handlers, jwtSecret string) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/auth/login", h.Auth.Login)

	auth := api.Group("")
	auth.Use(middleware.JWTAuth(jwtSecret))
	{
		auth.GET("/auth/me", h.Auth.Me)

		auth.GET("/users", h.User.List)
		auth.POST("/users", h.User.Create)
		auth.PUT("/users/:id", h.User.Update)
		auth.DELETE("/users/:id", h.User.Delete)

		auth.GET("/bases", h.Base.List)
		auth.POST("/bases", h.Base.Create)

		auth.GET("/purchases", h.Purchase.List)
		auth.POST("/purchases", h.Purchase.Create)

		auth.GET("/transfers", h.Transfer.List)
		auth.POST("/transfers", h.Transfer.Create)

		auth.GET("/assignments", h.Assignment.List)
		auth.POST("/assignments", h.Assignment.Create)

		auth.GET("/inventory", h.Inventory.Overview)
		auth.GET("/metrics", h.Metrics.Get)
		auth.GET("/movements", h.Movement.List)
		auth.GET("/audit-logs", h.Audit.List)
	}
}
