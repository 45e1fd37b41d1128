package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/user-gateway/adapters/event"
	httpAdapter "github.com/khoahotran/user-gateway/adapters/http"
	"github.com/khoahotran/user-gateway/adapters/persistence"
	authUC "github.com/khoahotran/user-gateway/internal/application/usecase/auth"
	userUC "github.com/khoahotran/user-gateway/internal/application/usecase/user"
	"github.com/khoahotran/user-gateway/internal/config"
	"github.com/khoahotran/user-gateway/pkg/logger"
	"github.com/khoahotran/user-gateway/pkg/tracing"
)

func main() {
	fmt.Println("Start User Gateway API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	if cfg.Tracing.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "user-gateway")
		if err != nil {
			appLogger.Fatal("cannot init tracer", err)
		}
		defer tp.Shutdown(context.Background())
	}

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Redis: %v", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		log.Fatalf("FATAL: cannot init Kafka: %v", err)
	}
	defer kafkaClient.Close()

	// Repositories and shared components
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	userCache := persistence.NewRedisUserCache(redisClient, cfg.Redis.CacheTTL, appLogger)
	notifier := event.NewNotifier(cfg.Notifier.Buffer)

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(userRepo, appLogger)
	listUsersUseCase := userUC.NewListUsersUseCase(userRepo, userCache, appLogger)
	saveUserUseCase := userUC.NewSaveUserUseCase(userRepo, notifier, userCache, kafkaClient, appLogger)
	deleteUserUseCase := userUC.NewDeleteUserUseCase(userRepo, notifier, userCache, kafkaClient, appLogger)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(loginUseCase)
	userHandler := httpAdapter.NewUserHandler(listUsersUseCase, saveUserUseCase, deleteUserUseCase)
	subscriptionHandler := httpAdapter.NewSubscriptionHandler(notifier, appLogger)

	// Setup Gin router
	router := gin.Default()

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		api.POST("/auth/login", authHandler.Login)

		users := api.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.SaveUser)
			users.DELETE("/:id", userHandler.DeleteUser)
			users.GET("/events", subscriptionHandler.StreamUserEvents)
		}
	}

	appLogger.Info("Server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Cannot run server: %v", err)
	}
}
