package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roadguard/config"
	"roadguard/cron"
	"roadguard/database"
	"roadguard/database/repository"
	"roadguard/handlers"
	"roadguard/metrics"
	"roadguard/middleware"
	"roadguard/realtime"
	"roadguard/routes"
	"roadguard/services/admin"
	"roadguard/services/auth"
	"roadguard/services/notification"
	"roadguard/services/review"
	"roadguard/services/servicerequest"
	"roadguard/services/storage"
	"roadguard/services/workshop"
	"roadguard/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	metrics.Register()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// repositories.
	var (
		repos       *repository.Repositories
		mongoClient *mongo.Client
	)
	if config.UseMemoryStore() {
		logger.Warn("main: using in-memory repositories, data is lost on restart")
		repos = repository.NewMemoryRepositories()
	} else {
		database.InitDB()
		mongoClient = database.MongoClient
		repos = repository.NewMongoRepositories(database.Database())
	}

	// realtime fan-out.
	hub := realtime.NewHub()
	go hub.Run(ctx)

	var (
		local       notification.Publisher = hub
		redisClient *redis.Client
	)
	if config.RedisEnabled() {
		if err := utils.InitPubSub(); err != nil {
			logger.Warn("main: Redis unavailable, realtime events stay on this instance", zap.Error(err))
		} else {
			redisClient = utils.GetPubSubClient()
			relay := realtime.NewRedisRelay(redisClient, config.AppConfig.RedisEventsChannel, hub)
			cron.StartRelayWorker(ctx, "redis-relay", relay, 5)
			local = relay
		}
	}
	publishers := notification.Multi{local}

	if config.FirebaseEnabled() {
		fcm, err := utils.FirebaseInit(ctx)
		if err != nil {
			logger.Warn("main: Firebase unavailable, push mirror disabled", zap.Error(err))
		} else {
			publishers = append(publishers, notification.NewFCMPublisher(fcm, config.FirebaseAdminTopic, config.FirebaseWorkerTopicPrefix))
		}
	}

	var images storage.ImageResolver = storage.PassthroughResolver{}
	if config.CloudinaryEnabled() {
		cld, err := utils.Cloudinary()
		if err != nil {
			logger.Warn("main: Cloudinary unavailable, image references pass through", zap.Error(err))
		} else {
			images = storage.NewCloudinaryResolver(cld)
		}
	}

	// services.
	authService := &auth.DefaultAuthService{
		Repo:          repos.Accounts,
		AdminUsername: config.AppConfig.AdminUsername,
		AdminPassword: config.AppConfig.AdminPassword,
		TokenTTL:      config.AppConfig.TokenTTL,
	}
	workshopService := workshop.NewWorkshopService(repos.Workshops, images)
	lifecycleService := &servicerequest.DefaultLifecycleService{
		Requests:  repos.Requests,
		Accounts:  repos.Accounts,
		Workshops: repos.Workshops,
		Settings:  repos.Settings,
		Notifier:  publishers,
	}
	reviewService := &review.DefaultReviewService{
		Reviews:   repos.Reviews,
		Workshops: repos.Workshops,
		Accounts:  repos.Accounts,
	}
	adminService := &admin.DefaultAdminService{Settings: repos.Settings}

	authHandler := handlers.NewAuthHandler(authService)
	workshopHandler := handlers.NewWorkshopHandler(workshopService)
	requestHandler := handlers.NewServiceRequestHandler(lifecycleService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	realtimeHandler := handlers.NewRealtimeHandler(hub, config.AllowedOrigins())
	metricsHandler := metrics.Handler()

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		AuthService: authService,

		UserLoginHandler:     authHandler.UserLoginHandler,
		AdminLoginHandler:    authHandler.AdminLoginHandler,
		ValidateTokenHandler: authHandler.ValidateTokenHandler,
		GetProfileHandler:    authHandler.GetProfileHandler,

		ListWorkshopsHandler:     workshopHandler.ListWorkshopsHandler,
		GetWorkshopHandler:       workshopHandler.GetWorkshopHandler,
		GetOwnWorkshopHandler:    workshopHandler.GetOwnWorkshopHandler,
		CreateOwnWorkshopHandler: workshopHandler.CreateOwnWorkshopHandler,
		UpdateOwnWorkshopHandler: workshopHandler.UpdateOwnWorkshopHandler,

		CreateServiceRequestHandler: requestHandler.CreateServiceRequestHandler,
		GetServiceRequestHandler:    requestHandler.GetServiceRequestHandler,

		CreateReviewHandler:        reviewHandler.CreateReviewHandler,
		ListWorkshopReviewsHandler: reviewHandler.ListWorkshopReviewsHandler,

		AdminHandler: handlers.NewAdminHandler(lifecycleService, adminService),

		RealtimeHandler: realtimeHandler.ServeWS,
		HealthHandler:   handlers.HealthHandler,
		MetricsHandler:  gin.WrapH(metricsHandler),
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle)
	utils.StartHealthMonitor(ctx, redisClient, mongoClient, 30*time.Second)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	stop()

	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := database.Disconnect(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: failed to disconnect from MongoDB: %v", err)
	}
	logger.Sugar().Info("main: server stopped gracefully")
}
