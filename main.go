// File: lengolf/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lengolf/config"
	"lengolf/cron"
	"lengolf/database"
	approvalRepoPkg "lengolf/database/repository/approval"
	bookingRepoPkg "lengolf/database/repository/booking"
	customerRepoPkg "lengolf/database/repository/customer"
	exchangeRepoPkg "lengolf/database/repository/exchange"
	invoiceRepoPkg "lengolf/database/repository/invoice"
	suggestionRepoPkg "lengolf/database/repository/suggestion"
	supplierRepoPkg "lengolf/database/repository/supplier"
	"lengolf/handlers"
	"lengolf/middleware"
	"lengolf/routes"
	"lengolf/services/approval"
	"lengolf/services/assistant"
	"lengolf/services/availability"
	"lengolf/services/billing"
	ai "lengolf/services/intelligence"
	"lengolf/services/notification"
	"lengolf/services/retrieval"
	"lengolf/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

const conversationTTL = 7 * 24 * time.Hour

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitContextCache()
	utils.InitApprovalCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookings := bookingRepoPkg.NewMongoBookingRepo()
	customers := customerRepoPkg.NewMongoCustomerRepo()
	approvals := approvalRepoPkg.NewMongoApprovalRepo()
	suggestions := suggestionRepoPkg.NewMongoSuggestionRepo()
	exchanges := exchangeRepoPkg.NewMongoExchangeRepo()
	suppliers := supplierRepoPkg.NewMongoSupplierRepo()
	invoices := invoiceRepoPkg.NewMongoInvoiceRepo()

	// external collaborators.
	gemini := ai.NewGeminiClient(
		config.AppConfig.GeminiAPIKey,
		config.AppConfig.GeminiModel,
		config.AppConfig.EmbeddingModel,
	)
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisNotifyQueue,
	})
	defer asynqClient.Close()
	notifier := notification.NewQueueNotificationService(asynqClient)

	// services.
	engine := availability.NewDefaultEngine(bookings, config.AppConfig.Timezone)
	retrievalService := retrieval.NewDefaultRetrievalService(gemini, exchanges)
	billingService := billing.NewDefaultBillingService(suppliers, invoices)
	approvalService := approval.NewDefaultApprovalService(
		approvals, bookings, customers, engine, notifier, utils.GetApprovalCacheClient())
	approvalService.Receipts = billingService
	executor := &assistant.DefaultFunctionExecutor{
		Availability: engine,
		Bookings:     bookings,
		Customers:    customers,
		Approvals:    approvalService,
	}
	history := assistant.NewRedisConversationStore(utils.GetContextCacheClient(), conversationTTL)
	assistantService := assistant.NewDefaultAssistantService(
		gemini, retrievalService, history, customers, bookings,
		executor, suggestions, notifier, engine.Loc,
	)

	handlers.Assistant = assistantService
	handlers.Approvals = approvalService
	handlers.Availability = engine
	handlers.Suggestions = suggestions
	handlers.Billing = billingService
	handlers.Suppliers = suppliers
	handlers.Invoices = invoices

	routes.RegisterRoutes(router)

	// Notification worker drains the outbound queue.
	go func() {
		if err := cron.StartNotificationWorker(); err != nil {
			logger.Sugar().Errorf("main: notification worker stopped: %v", err)
		}
	}()

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("main: listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
}
