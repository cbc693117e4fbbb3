package main

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/kingjj-tech/Trackporter/internal/handlers"
	"github.com/kingjj-tech/Trackporter/internal/logger"
	appmw "github.com/kingjj-tech/Trackporter/internal/middleware"
	"github.com/kingjj-tech/Trackporter/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment")
	}

	logger.Setup()

	// Initialize Firebase
	credPath := os.Getenv("FIREBASE_CREDENTIALS_PATH")
	if credPath == "" {
		credPath = "./firebase-service-account.json"
	}
	authClient, err := services.InitFirebase(credPath)
	if err != nil {
		logrus.WithError(err).Warn("Firebase initialization failed; auth will not work until valid credentials are provided")
	}

	// Initialize Database
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logrus.Fatal("DATABASE_URL not set")
	}
	db, err := services.InitDB(databaseURL)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	if err := services.AutoMigrate(db); err != nil {
		logrus.Fatalf("Failed to run database migrations: %v", err)
	}

	// Redis cache is optional; trip views fall through to the database
	// when it is absent.
	var cache *services.RedisCache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err = services.NewRedisCache(redisURL)
		if err != nil {
			logrus.WithError(err).Warn("Redis initialization failed, running without cache")
			cache = nil
		}
	}

	gateway := services.NewSimulatedGatewayFromEnv()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = appmw.HTTPErrorHandler
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authClient, db)
	tripHandler := handlers.NewTripHandler(services.NewTripService(db, cache))
	paymentHandler := handlers.NewPaymentHandler(services.NewPaymentService(db, cache, gateway))
	adminHandler := handlers.NewAdminHandler(services.NewAdminService(db, cache))
	notificationHandler := handlers.NewNotificationHandler(services.NewNotificationService(db))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Public routes
	api := e.Group("/api")
	api.POST("/auth/register", authHandler.Register)

	// Protected routes
	protected := api.Group("", appmw.RequireAuth(authClient, db))

	protected.GET("/trips", tripHandler.List)
	protected.POST("/trips", tripHandler.Create)
	protected.PATCH("/trips/:id/payment", tripHandler.UpdatePaymentStatus)
	protected.GET("/trips/outstanding-balances", tripHandler.OutstandingBalances)

	protected.POST("/payments", paymentHandler.Process)

	protected.POST("/notifications", notificationHandler.Send)
	protected.GET("/notifications", notificationHandler.List)
	protected.PATCH("/notifications/:id/read", notificationHandler.MarkRead)

	protected.PATCH("/admin/trips/:id/override", adminHandler.OverridePaymentStatus)
	protected.GET("/admin/trips", adminHandler.ListTrips)
	protected.GET("/admin/users", adminHandler.ListUsers)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logrus.Infof("TrackPorter server starting on port %s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
