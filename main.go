package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/RaiAraujo30/Complete-Physical-Store/controllers"
	"github.com/RaiAraujo30/Complete-Physical-Store/database"
	"github.com/RaiAraujo30/Complete-Physical-Store/logger"
	"github.com/RaiAraujo30/Complete-Physical-Store/middleware"
	"github.com/RaiAraujo30/Complete-Physical-Store/models"
	awspkg "github.com/RaiAraujo30/Complete-Physical-Store/pkg/aws"
	"github.com/RaiAraujo30/Complete-Physical-Store/providers"
	"github.com/RaiAraujo30/Complete-Physical-Store/repository"
	"github.com/RaiAraujo30/Complete-Physical-Store/routes"
	"github.com/RaiAraujo30/Complete-Physical-Store/services"
)

const serviceName = "physical-store"

func main() {
	envErr := godotenv.Load()
	log := logger.Initialize(os.Getenv("APP_ENV"))
	defer log.Sync() //nolint:errcheck
	if envErr != nil {
		log.Info("No .env file found, using system environment variables")
	}

	ctx := context.Background()
	cfg, err := LoadConfig(ctx)
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}
	if cfg.GoogleMapsAPIKey == "" {
		log.Warn("GOOGLE_MAPS_API_KEY is empty, geocoding and distance requests will be denied")
	}

	mongoClient, mongoDB, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB, log)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer database.DisconnectMongo(mongoClient) //nolint:errcheck

	pg, err := database.ConnectPostgres(cfg.Postgres, log, &models.DeliveryCriterion{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer database.ClosePostgres(pg) //nolint:errcheck

	// Providers
	google := providers.NewGoogleMapsClient(providers.GoogleMapsConfig{
		APIKey:  cfg.GoogleMapsAPIKey,
		BaseURL: cfg.GoogleMapsBaseURL,
		Timeout: cfg.ProviderTimeout,
	})
	openCage := providers.NewOpenCageClient(providers.OpenCageConfig{
		APIKey:  cfg.OpenCageAPIKey,
		BaseURL: cfg.OpenCageBaseURL,
		Timeout: cfg.ProviderTimeout,
	})
	correios := providers.NewCorreiosClient(providers.CorreiosConfig{
		URL:     cfg.CorreiosURL,
		Timeout: cfg.ProviderTimeout,
	})

	var geocoder providers.Geocoder = google
	var distance providers.DistanceClient = providers.NewMapsDistanceClient(google, openCage, log)
	if cfg.RedisURL != "" {
		rdb, err := database.NewRedisClient(ctx, cfg.RedisURL, log)
		if err != nil {
			log.Warn("Redis unavailable, provider cache disabled", zap.Error(err))
		} else {
			defer rdb.Close() //nolint:errcheck
			store := providers.NewRedisCacheStore(rdb)
			geocoder = providers.NewCachedGeocoder(geocoder, store, cfg.CacheTTL, log)
			distance = providers.NewCachedDistanceClient(distance, store, cfg.CacheTTL, log)
		}
	}

	var metrics *awspkg.MetricsClient
	if cfg.CloudWatchEnabled {
		metrics, err = awspkg.NewMetricsClient(ctx)
		if err != nil {
			log.Warn("CloudWatch metrics unavailable", zap.Error(err))
		}
	}

	// DI chain
	storeRepo := repository.NewMongoStoreRepository(mongoDB)
	criteriaRepo := repository.NewGormDeliveryCriteriaRepository(pg)
	resolver := services.NewDistanceResolver(distance, cfg.LocalDeliveryRadiusKm, log)
	quoter := services.NewShippingQuoter(criteriaRepo, correios, cfg.LocalDeliveryRadiusKm, log)
	storeService := services.NewStoreService(storeRepo, geocoder, resolver, quoter, log)
	criteriaService := services.NewDeliveryCriteriaService(criteriaRepo, log)

	if err := controllers.RegisterValidators(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}
	storeController := controllers.NewStoreController(storeService)
	criteriaController := controllers.NewDeliveryCriteriaController(criteriaService)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MetricsMiddleware(metrics, serviceName))
	r.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
	})

	limiter := middleware.NewPerMinuteLimiter(cfg.RateLimitPerMinute)
	defer limiter.Stop()
	routes.RegisterStoreRoutes(r, storeController, middleware.RateLimitMiddleware(limiter))
	routes.RegisterDeliveryCriteriaRoutes(r, criteriaController)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	log.Info("Physical store service started", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
	<-quit
	log.Info("Shutting down physical store service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	log.Info("Server exited cleanly")
}
