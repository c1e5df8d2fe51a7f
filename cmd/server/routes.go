package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"cling-reminder.backend/internal/interfaces/http/handlers"
	"cling-reminder.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler      *handlers.AuthHandler
	dashboardHandler *handlers.DashboardHandler
	reminderHandler  *handlers.ReminderHandler
	imageHandler     *handlers.ImageHandler
	session          gin.HandlerFunc
	optionalSession  gin.HandlerFunc
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/send-otp", d.authHandler.SendOTP)
		api.POST("/verify-otp", d.authHandler.VerifyOTP)
		api.POST("/logout", d.authHandler.Logout)

		// Dashboard routes (protected)
		dashboard := api.Group("/dashboard")
		dashboard.Use(d.session)
		{
			dashboard.GET("/userinfo", d.dashboardHandler.UserInfo)
		}

		// Reminder routes (protected)
		reminders := api.Group("/reminders")
		reminders.Use(d.session)
		{
			reminders.POST("", middleware.IdempotencyMiddleware(), d.reminderHandler.Create)
			reminders.GET("", d.reminderHandler.List)
			reminders.GET("/:id", d.reminderHandler.Get)
			reminders.PUT("/:id", d.reminderHandler.Update)
			reminders.DELETE("/:id", d.reminderHandler.Delete)
			reminders.PATCH("/:id/complete", d.reminderHandler.Complete)
		}

		// Reconcile accepts anonymous callers and sweeps globally for them
		api.POST("/reminders/reconcile", d.optionalSession, d.reminderHandler.Reconcile)

		// Image generation proxy (public)
		api.POST("/generate-image", d.imageHandler.GenerateImage)
		api.POST("/generate-icons", d.imageHandler.GenerateIcons)
	}
}

func applyCORSMiddleware(r *gin.Engine, origin string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Idempotency-Key"},
		ExposeHeaders:    []string{"X-Request-ID", "X-Idempotency-Hit"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "cling-reminder-backend",
			"version": "0.1.0",
		})
	})
}
