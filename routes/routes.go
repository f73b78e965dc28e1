// File: routes/routes.go
package routes

import (
	"net/http"
	"time"

	"lengolf/handlers"
	"lengolf/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all HTTP endpoints.
func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Channel webhooks post customer messages here.
	api := r.Group("/api")
	{
		api.POST("/assistant/message", handlers.HandleAssistantMessage)
	}

	// Staff-only surface.
	staff := r.Group("/api")
	staff.Use(middleware.StaffAuthMiddleware())
	{
		staff.GET("/approvals", handlers.ListApprovals)
		staff.POST("/approvals/:id/approve", handlers.ApproveRequest)
		staff.POST("/approvals/:id/decline", handlers.DeclineRequest)
		staff.GET("/availability", handlers.GetAvailability)
		staff.POST("/suggestions/:id/feedback", handlers.SubmitSuggestionFeedback)
		staff.GET("/suppliers", handlers.ListSuppliers)
		staff.POST("/suppliers", handlers.AddSupplier)
		staff.GET("/invoices", handlers.ListInvoices)
		staff.POST("/invoices", handlers.GenerateInvoice)
		staff.GET("/invoices/:id/document", handlers.GetInvoiceDocument)
	}
}
