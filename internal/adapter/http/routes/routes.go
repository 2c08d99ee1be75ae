package routes

import (
	"context"
	"log"
	"net/http"
	"time"

	_ "cobre_payment_plug/docs" // This will be auto-generated
	"cobre_payment_plug/internal/adapter/http/handlers"
	"cobre_payment_plug/internal/adapter/http/middleware"
	"cobre_payment_plug/internal/adapter/persistence/repository"
	"cobre_payment_plug/internal/infrastructure/config"
	"cobre_payment_plug/internal/infrastructure/database"
	"cobre_payment_plug/internal/infrastructure/email"
	"cobre_payment_plug/internal/infrastructure/payments"
	"cobre_payment_plug/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const globalMaxRequests = 100

// Run will start the server
func Run() {
	cfg := config.Load()

	setMiddlewares(cfg)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes(cfg)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes(cfg config.Config) {
	ddb := database.ConnectDynamoDB()

	txRepo := repository.NewTransactionDynamoRepository(ddb)
	inventoryRepo := repository.NewInventoryDynamoRepository(ddb)
	orderRepo := repository.NewOrderDynamoRepository(ddb)

	gateway := payments.NewCobreGateway(cfg)
	dispatcher := email.NewBrevoDispatcher(cfg)

	paymentUseCase := usecase.NewPaymentUseCase(txRepo, gateway)
	webhookUseCase := usecase.NewWebhookUseCase(txRepo, inventoryRepo, orderRepo, dispatcher, cfg.WebhookSecret)

	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)
	webhookHandler := handlers.NewWebhookHandler(webhookUseCase)

	registerWebhookIfRequested(gateway, cfg)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Cobre Payment Plug está funcionando correctamente.")
	})
	addPingRoutes(router.Group(""))

	api := router.Group("/api/pagos/cobre")
	api.Use(middleware.RateLimit(rateLimitWindow, globalMaxRequests))
	addPaymentRoutes(api, paymentHandler, webhookHandler)
}

// registerWebhookIfRequested performs the one-time confirmation-endpoint
// registration with Cobre when REGISTER_WEBHOOK is enabled. Failure is
// logged, not fatal: the service can still serve traffic for an endpoint
// registered on a previous deploy.
func registerWebhookIfRequested(gateway *payments.CobreGateway, cfg config.Config) {
	if !cfg.RegisterWebhook {
		return
	}
	if cfg.WebhookURL == "" {
		log.Printf("REGISTER_WEBHOOK enabled but WEBHOOK_URL is empty, skipping registration")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := gateway.RegisterWebhook(ctx, cfg.WebhookURL, cfg.WebhookSecret); err != nil {
		log.Printf("Cobre webhook registration failed: %v", err)
	}
}

func setMiddlewares(cfg config.Config) {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))

	// Browser clients must come from the configured origin list. Requests
	// without an Origin header (Cobre callbacks, curl) pass through.
	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.AllowedOrigins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}
}
