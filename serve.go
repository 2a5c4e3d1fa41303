package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"showdan/config"
	"showdan/database"
	"showdan/database/repository"
	currencyRepo "showdan/database/repository/currency"
	memoryRepo "showdan/database/repository/memory"
	userRepo "showdan/database/repository/user"
	"showdan/handlers"
	"showdan/middleware"
	"showdan/models"
	"showdan/routes"
	"showdan/services"
	"showdan/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	var seedFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), seedFile)
		},
	}
	cmd.Flags().StringVar(&seedFile, "seed", "", "load users and exchange rates from this file on startup")
	return cmd
}

func serve(ctx context.Context, seedFile string) error {
	config.LoadConfig(configFile)
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	loc := config.Location()

	var (
		repos        *repository.Repositories
		rates        repository.RateTable
		locker       utils.Locker
		redisClients []*redis.Client
		putUser      func(context.Context, models.User) error
		putRate      func(context.Context, models.ExchangeRate) error
	)

	if config.UsesMemoryStore() {
		logger.Warn("using the in-memory store; data is lost on restart")
		store := memoryRepo.NewStore()
		repos = repository.NewMemoryRepositories(store)
		locker = utils.NewLocalLocker()
		putUser = func(ctx context.Context, u models.User) error { store.Users().Put(ctx, u); return nil }
		putRate = store.Rates().Upsert
	} else {
		database.InitDB()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = database.CloseDB(ctx)
		}()
		db := database.Database()
		repos = repository.NewMongoRepositories(database.MongoClient, db)
		if err := repos.EnsureIndexes(ctx); err != nil {
			logger.Error("failed to ensure indexes", zap.Error(err))
			return err
		}

		cache := utils.GetCacheClient()
		lockClient := utils.GetLockClient()
		redisClients = []*redis.Client{cache, lockClient}
		rates = currencyRepo.NewCachedRateTable(repos.Rates, cache, config.AppConfig.RateCacheTTL, logger)
		locker = utils.NewRedisLocker(lockClient, config.AppConfig.LockTTL)

		putUser = userRepo.NewMongoUserRepo(db).Upsert
		putRate = currencyRepo.NewMongoRateRepo(db).Upsert
	}

	if seedFile != "" {
		if err := applySeed(ctx, seedFile, putUser, putRate, logger); err != nil {
			return err
		}
	}

	svc := services.New(repos, rates, locker, loc, logger)
	hb := handlers.NewHandlerBundle(
		handlers.NewEventHandler(svc.Booking),
		handlers.NewOfferHandler(svc.Booking, svc.Inbox),
		handlers.NewBusyTimeHandler(svc.Availability),
		handlers.NewCalendarHandler(svc.Calendar),
	)

	monitorCtx, stopMonitor := context.WithCancel(ctx)
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, 30*time.Second, redisClients, database.MongoClient)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	routes.RegisterRoutes(router, hb)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		logger.Error("server failed to start", zap.Error(err))
		return err
	case <-quit:
	}
	logger.Info("server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return err
	}
	logger.Info("server stopped gracefully")
	return nil
}
