package router

import (
	"time"

	"pharmapos/internal/config"
	"pharmapos/internal/handler"
	"pharmapos/internal/middleware"
	"pharmapos/internal/store"

	"github.com/gin-gonic/gin"
)

// New wires the handlers over the shared store and returns a configured Gin
// engine. The store is the only stateful dependency: handlers never mutate
// collections themselves.
func New(cfg *config.Config, st *store.Store) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	authH := handler.NewAuthHandler(st)
	medicinesH := handler.NewMedicinesHandler(st)
	salesH := handler.NewSalesHandler(st)
	usersH := handler.NewUsersHandler(st)
	settingsH := handler.NewSettingsHandler(st)
	auditH := handler.NewAuditHandler(st)

	r.GET("/health", handler.Health)

	v1 := r.Group("/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
			auth.POST("/logout", authH.Logout)
			auth.GET("/session", authH.Session)
		}

		medicines := v1.Group("/medicines")
		{
			medicines.GET("", medicinesH.List)
			medicines.POST("", medicinesH.Create)
			medicines.GET("/categories", medicinesH.Categories)
			medicines.GET("/:id", medicinesH.Get)
			medicines.PUT("/:id", medicinesH.Update)
			medicines.DELETE("/:id", medicinesH.Delete)
			medicines.PUT("/:id/stock", medicinesH.UpdateStock)
			medicines.POST("/bulk/stock", medicinesH.BulkUpdateStock)
			medicines.POST("/bulk/delete", medicinesH.BulkDelete)
		}

		alerts := v1.Group("/alerts")
		{
			alerts.GET("", medicinesH.Alerts)
			alerts.POST("/read", medicinesH.MarkAlertsRead)
			alerts.POST("/unread", medicinesH.MarkAlertsUnread)
		}

		sales := v1.Group("/sales")
		{
			sales.GET("", salesH.List)
			sales.POST("", salesH.Create)
		}

		users := v1.Group("/users")
		{
			users.GET("", usersH.List)
			users.POST("", usersH.Create)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Delete)
		}

		settings := v1.Group("/settings")
		{
			settings.GET("", settingsH.Get)
			settings.PUT("", settingsH.Update)
		}

		audit := v1.Group("/audit-logs")
		{
			audit.GET("", auditH.List)
			audit.POST("", auditH.Create)
		}
	}

	return r
}
