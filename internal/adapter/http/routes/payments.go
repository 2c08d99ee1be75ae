package routes

import (
	"time"

	"cobre_payment_plug/internal/adapter/http/handlers"
	"cobre_payment_plug/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

// Windows mirror the limits the storefront integration was tuned for: the
// payment-initiation endpoint is throttled harder than the webhook, which
// Cobre itself calls.
const (
	rateLimitWindow    = 15 * time.Minute
	paymentMaxRequests = 20
)

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler, webhookHandler *handlers.WebhookHandler) {
	rg.POST("/process-payment", middleware.RateLimit(rateLimitWindow, paymentMaxRequests), paymentHandler.ProcessPayment)
	rg.POST("/webhook", webhookHandler.HandleConfirmation)
}
