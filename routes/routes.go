package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fadhlanhapp/volleyleague-backend/handlers"
)

// Handlers groups the HTTP handlers mounted by SetupRoutes
type Handlers struct {
	Payments *handlers.PaymentHandler
	Export   *handlers.ExportHandler
	League   *handlers.LeagueHandler
}

// SetupRoutes configures all API routes for the application
func SetupRoutes(router *gin.Engine, h Handlers, gatherer prometheus.Gatherer) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	{
		// Payment endpoints; static segments are registered before /:id
		payments := v1.Group("/payments")
		payments.POST("", h.Payments.CreatePayment)
		payments.GET("", h.Payments.ListPayments)
		payments.GET("/export", h.Export.ExportPayments)
		payments.POST("/reconcile", h.Payments.ReconcileOverdue)
		payments.GET("/owner/:ownerId", h.Payments.ListByOwner)
		payments.GET("/status/:status", h.Payments.ListByStatus)
		payments.GET("/:id", h.Payments.GetPayment)
		payments.PATCH("/:id/status", h.Payments.UpdateStatus)
		payments.PUT("/:id/notes", h.Payments.ReplaceNotes)
		payments.POST("/:id/settle", h.Payments.SettlePayment)
		payments.DELETE("/:id", h.Payments.DeletePayment)

		// League endpoints
		v1.POST("/registrations", h.League.RegisterTeam)
		v1.POST("/sets/evaluate", h.League.EvaluateSet)
	}
}
