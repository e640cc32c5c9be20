package stripe

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/idris-r/jobs4/config"
	"github.com/idris-r/jobs4/internal/payment/stripe"
	"github.com/idris-r/jobs4/internal/services"
	"github.com/idris-r/jobs4/pkg/logger"
)

// Webhook handles payment-processor notifications. The body is consumed raw:
// the signature covers the exact bytes on the wire, so this route must not go
// through JSON binding before verification.
func Webhook(c *gin.Context) {
	cfg, err := config.LoadConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if cfg.StripeWebhookSecret == "" {
		// Startup validation makes this unreachable in practice.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret not configured"})
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	sigHeader := c.GetHeader(stripe.SignatureHeader)
	if sigHeader == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No Stripe signature found"})
		return
	}

	event, err := stripe.ConstructEvent(payload, sigHeader, cfg.StripeWebhookSecret)
	if err != nil {
		if errors.Is(err, stripe.ErrMissingSecret) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret not configured"})
			return
		}
		logger.Log.Warn("Webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Webhook signature verification failed"})
		return
	}

	if event.Type != stripe.EventCheckoutSessionCompleted {
		// Not a purchase completion; acknowledge so the processor stops
		// re-delivering.
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	granted, userID, err := services.ProcessCheckoutCompleted(event, payload)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEvent) {
			logger.Log.Info("Webhook event already processed",
				zap.String("event_id", event.ID))
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
		logger.Log.Error("Failed to apply token grant",
			zap.String("event_id", event.ID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update token balance"})
		return
	}

	logger.Log.Info("Token purchase completed",
		zap.String("event_id", event.ID),
		zap.Uint("user_id", userID),
		zap.Int64("amount_paid", event.Data.Object.AmountTotal),
		zap.Int("tokens_granted", granted))

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// Test reports whether the webhook route is configured, without exposing the
// secret itself.
func Test(c *gin.Context) {
	cfg, err := config.LoadConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":              "Stripe webhook endpoint is configured",
		"webhookSecretPresent": cfg.StripeWebhookSecret != "",
	})
}
