package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/idris-r/jobs4/config"
	"github.com/idris-r/jobs4/internal/api/auth"
	stripeRoutes "github.com/idris-r/jobs4/internal/api/stripe"
	"github.com/idris-r/jobs4/internal/api/users"
	"github.com/idris-r/jobs4/internal/database"
	"github.com/idris-r/jobs4/internal/middleware"
)

func NewRouter(cfg *config.Config) (*gin.Engine, error) {
	_, err := database.Connect(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	// Redis is optional: without it the user cache and logout denylist are
	// simply inactive.
	if cfg.RedisAddr != "" {
		if err := database.ConnectRedis(cfg); err != nil {
			return nil, err
		}
	}

	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:3001", "http://localhost:3002", "http://localhost:3003"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":               "ok",
			"webhookSecretPresent": cfg.StripeWebhookSecret != "",
			"stripeSecretPresent":  cfg.StripeSecretKey != "",
		})
	})

	api := router.Group("/api")
	{
		auth.RegisterRoutes(api)
		stripeRoutes.RegisterRoutes(api)

		authorized := api.Group("/users")
		authorized.Use(middleware.AuthMiddleware())
		{
			users.RegisterRoutes(authorized)
		}
	}

	return router, nil
}
