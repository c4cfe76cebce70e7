// cmd/api/main.go
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"assessor-financeiro/internal/auth"
	"assessor-financeiro/internal/config"
	"assessor-financeiro/internal/gmail"
	"assessor-financeiro/internal/handler"
	"assessor-financeiro/internal/middleware"
	"assessor-financeiro/internal/storage/postgres"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.MustLoad()

	pool, err := pgxpool.New(context.Background(), cfg.DBConn)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		slog.Error("Invalid redis URL", "error", err)
		os.Exit(1)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	store := postgres.NewStorage(pool)
	tokenService := auth.NewTokenService(cfg)
	gmailService := gmail.NewService(cfg, gmail.NewTokenStore(rdb), store)

	authHandler := handler.NewAuthHandler(store, tokenService)
	accountHandler := handler.NewAccountHandler(store)
	categoryHandler := handler.NewCategoryHandler(store)
	transactionHandler := handler.NewTransactionHandler(store)
	budgetHandler := handler.NewBudgetHandler(store)
	emailHandler := handler.NewEmailHandler(store)
	categorizeHandler := handler.NewCategorizeHandler()
	gmailHandler := handler.NewGmailHandler(gmailService)
	notificationHandler := handler.NewNotificationHandler()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes: registration, login and the OAuth redirect target.
	router.POST("/api/v1/auth/register", authHandler.Register)
	router.POST("/api/v1/auth/login", authHandler.Login)
	router.GET("/api/v1/gmail/callback", gmailHandler.Callback)

	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth())
	{
		v1.GET("/auth/me", authHandler.Me)

		v1.POST("/accounts", accountHandler.Create)
		v1.GET("/accounts", accountHandler.List)
		v1.GET("/accounts/:id", accountHandler.Get)
		v1.PATCH("/accounts/:id", accountHandler.Update)
		v1.DELETE("/accounts/:id", accountHandler.Delete)

		v1.POST("/categories", categoryHandler.Create)
		v1.GET("/categories", categoryHandler.List)
		v1.GET("/categories/:id", categoryHandler.Get)
		v1.POST("/categories/seed", categoryHandler.Seed)

		v1.POST("/transactions", transactionHandler.Create)
		v1.GET("/transactions", transactionHandler.List)
		v1.GET("/transactions/:id", transactionHandler.Get)
		v1.PATCH("/transactions/:id", transactionHandler.Update)
		v1.DELETE("/transactions/:id", transactionHandler.Delete)

		v1.POST("/budgets", budgetHandler.Create)
		v1.GET("/budgets", budgetHandler.List)
		v1.GET("/budgets/:id", budgetHandler.Get)
		v1.GET("/budgets/:id/summary", budgetHandler.Summary)
		v1.PATCH("/budgets/:id", budgetHandler.Update)
		v1.DELETE("/budgets/:id", budgetHandler.Delete)

		v1.POST("/email/ingest", emailHandler.Ingest)
		v1.POST("/email/parse", emailHandler.Parse)
		v1.POST("/email/parse-to-transaction", emailHandler.ParseToTransaction)
		v1.POST("/email/parse-and-create", emailHandler.ParseAndCreate)

		v1.POST("/ai/categorize", categorizeHandler.Categorize)

		v1.GET("/gmail/auth", gmailHandler.InitAuth)
		v1.POST("/gmail/sync", gmailHandler.Sync)
		v1.GET("/gmail/status", gmailHandler.Status)
		v1.DELETE("/gmail/disconnect", gmailHandler.Disconnect)

		v1.POST("/notifications/send", notificationHandler.Send)
	}

	slog.Info("Server starting", "port", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}
}
