// File: syncslot/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"syncslot/config"
	"syncslot/cron"
	"syncslot/database"
	"syncslot/database/repository"
	"syncslot/handlers"
	"syncslot/middleware"
	"syncslot/routes"
	"syncslot/services/availability"
	"syncslot/services/calendarsync"
	"syncslot/services/event"
	"syncslot/services/suggestion"
	"syncslot/services/user"
	"syncslot/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	cacheClient := utils.GetCacheClient()
	authCache := utils.GetAuthCacheClient()

	// repositories.
	userRepo := repository.NewMongoUserRepository()
	eventRepo := repository.NewMongoEventRepository()
	slotRepo := repository.NewMongoSlotRepository()

	idxCtx, idxCancel := context.WithTimeout(context.Background(), 15*time.Second)
	for name, ensure := range map[string]func(context.Context) error{
		"users":  userRepo.EnsureIndexes,
		"events": eventRepo.EnsureIndexes,
		"slots":  slotRepo.EnsureIndexes,
	} {
		if err := ensure(idxCtx); err != nil {
			logger.Fatal("main: failed to ensure indexes", zap.String("collection", name), zap.Error(err))
		}
	}
	idxCancel()

	// task queue.
	queue := asynq.NewClient(cron.RedisOpt())
	defer queue.Close()

	// services.
	userService := user.NewUserService(userRepo, authCache)
	eventService := event.NewEventService(eventRepo, queue)
	availabilityService := availability.NewAvailabilityService(eventRepo, slotRepo)

	suggestionService := suggestion.NewSuggestionService(
		eventRepo,
		slotRepo,
		nil,
		suggestion.NewRedisSuggestionCache(cacheClient, config.SuggestionCacheTTL()),
	)
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		gemini, err := suggestion.NewGeminiClient(context.Background(), key, config.AppConfig.GeminiModel)
		if err != nil {
			logger.Warn("main: gemini unavailable, using deterministic suggestions only", zap.Error(err))
		} else {
			defer gemini.Close()
			suggestionService.Generator = gemini
		}
	}

	syncService := calendarsync.NewSyncService(userRepo, eventRepo, availabilityService, nil)
	if id := config.AppConfig.GoogleClientID; id != "" {
		syncService.Google = calendarsync.NewGoogleClient(id, config.AppConfig.GoogleClientSecret, config.AppConfig.GoogleRedirectURL)
	} else {
		logger.Info("main: google calendar sync disabled, GOOGLE_CLIENT_ID not set")
	}

	worker := cron.InitSyncWorker(syncService)

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, []*redis.Client{cacheClient, authCache}, database.MongoClient, 30*time.Second)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	handlerBundle := handlers.NewHandlerBundle(handlers.Services{
		Users:        userService,
		Events:       eventService,
		Availability: availabilityService,
		Suggestions:  suggestionService,
		Sync:         syncService,
	})
	routes.RegisterRoutes(router, handlerBundle, routes.Deps{UserRepo: userRepo, AuthCache: authCache})

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	if err := database.Disconnect(ctx); err != nil {
		logger.Sugar().Warnf("main: mongo disconnect: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
