package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	handlerHttp "github.com/daniyarm/rosterhub/internal/handler/http"
	redisclient "github.com/daniyarm/rosterhub/internal/infrastructure/cache"
	"github.com/daniyarm/rosterhub/internal/infrastructure/config"
	database "github.com/daniyarm/rosterhub/internal/infrastructure/database"
	"github.com/daniyarm/rosterhub/internal/infrastructure/jwt"
	"github.com/daniyarm/rosterhub/internal/infrastructure/logger"
	passwordservice "github.com/daniyarm/rosterhub/internal/infrastructure/password_service"
	"github.com/daniyarm/rosterhub/internal/infrastructure/repository/mongodb"
	"github.com/daniyarm/rosterhub/internal/infrastructure/store"
	"github.com/daniyarm/rosterhub/internal/infrastructure/telegram"
	"github.com/daniyarm/rosterhub/internal/infrastructure/uuidgen"
	"github.com/daniyarm/rosterhub/internal/infrastructure/validator"
	"github.com/daniyarm/rosterhub/internal/usecase"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI environment variable not set")
	}
	dbName := os.Getenv("MONGODB_DB_NAME")
	if dbName == "" {
		log.Fatal("MONGODB_DB_NAME environment variable not set")
	}
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Fatal("REDIS_URL environment variable not set")
	}
	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		log.Fatal("BOT_TOKEN environment variable not set")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}
	adminPasswordHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminPasswordHash == "" {
		log.Fatal("ADMIN_PASSWORD_HASH environment variable not set")
	}

	// Establish MongoDB connection
	mongoClient, err := database.NewMongoDBClient(mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect()

	// Redis backs the durable local cache
	rdb := redisclient.NewRedisFromURL(context.Background(), redisURL)
	defer redisclient.Close(rdb)

	// Register custom validators
	validator.RegisterCustomValidators()

	// Initialize Gin router
	router := gin.Default()

	// Dependency Injection: Repositories
	userCollection := mongoClient.Client.Database(dbName).Collection("users")
	userRepo := mongodb.NewMongoUserRepository(userCollection)

	// Dependency Injection: Services
	appLogger := logger.NewStdLogger()
	appConfig := config.NewConfig()
	hasher := passwordservice.NewHasher()
	jwtManager := jwt.NewJWTManager(jwtSecret, appConfig.GetAdminSessionTTL())
	uuidGenerator := uuidgen.NewGenerator()
	initDataValidator := telegram.NewValidator(botToken, 24*time.Hour)
	localCache := store.NewLocalCacheStore(redisclient.NewRedisKVStore(rdb))
	rosterWatcher := mongodb.NewRosterWatcher(userCollection, appLogger)

	// Dependency Injection: Usecases
	profileUsecase := usecase.NewProfileUsecase(userRepo, localCache, appLogger, appConfig)
	rosterUsecase := usecase.NewRosterUsecase(rosterWatcher, localCache, uuidGenerator, appLogger, appConfig)
	presenceUsecase := usecase.NewPresenceUsecase(userRepo, appLogger)
	adminUsecase := usecase.NewAdminUsecase(userRepo, localCache, appLogger)
	likeUsecase := usecase.NewLikeUsecase(userRepo)

	// Setup API routes
	appRouter := handlerHttp.NewRouter(
		profileUsecase, rosterUsecase, presenceUsecase, adminUsecase, likeUsecase,
		initDataValidator, jwtManager, hasher, adminPasswordHash, appLogger,
	)
	appRouter.SetupRoutes(router)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
