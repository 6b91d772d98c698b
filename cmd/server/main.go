package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/abxglia/farcaster-top-signals-browser/internal/bot"
	"github.com/abxglia/farcaster-top-signals-browser/internal/cache"
	"github.com/abxglia/farcaster-top-signals-browser/internal/chain"
	"github.com/abxglia/farcaster-top-signals-browser/internal/config"
	"github.com/abxglia/farcaster-top-signals-browser/internal/db"
	"github.com/abxglia/farcaster-top-signals-browser/internal/handler"
	"github.com/abxglia/farcaster-top-signals-browser/internal/job"
	"github.com/abxglia/farcaster-top-signals-browser/internal/provider"
	"github.com/abxglia/farcaster-top-signals-browser/internal/repository"
	"github.com/abxglia/farcaster-top-signals-browser/internal/signals"
	"github.com/abxglia/farcaster-top-signals-browser/internal/watchlist"
	"github.com/abxglia/farcaster-top-signals-browser/pkg/tracing"

	_ "github.com/abxglia/farcaster-top-signals-browser/docs"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	initPostgresFunc       = db.InitPostgres
	initRedisFunc          = cache.InitRedis
	initTracerFunc         = tracing.InitTracer
	newViewRepoFunc        = repository.NewTokenViewRepository
	newSignalsProviderFunc = provider.NewSignalsProvider
	newWatchlistStoreFunc  = watchlist.NewStore
	newSignalsServiceFunc  = signals.NewService
	newCounterClientFunc   = chain.NewCounterClient
	newSignalsPollerFunc   = job.NewSignalsPoller
	startPollerFunc        = func(p *job.SignalsPoller, ctx context.Context) { go p.Start(ctx) }
	startTelegramBotFunc   = bot.StartTelegramBot
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Top Signals Browser API
// @version         1.0
// @description     Cached crypto signals with watchlist and on-chain counter.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Postgres is optional: without it view tracking is disabled.
	if cfg.DatabaseURL != "" {
		if err := initPostgresFunc(ctx, cfg.DatabaseURL); err != nil {
			log.Fatalf("failed to connect to Postgres: %v", err)
		}
		defer db.ClosePostgres()
	}

	// Redis is optional: without it the watchlist is session-only.
	if err := initRedisFunc(ctx, cfg.RedisURL); err != nil {
		log.Printf("Redis unavailable, watchlist will not persist: %v", err)
	}

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	var viewRepo *repository.TokenViewRepository
	if db.Pool != nil {
		viewRepo = newViewRepoFunc(db.Pool, tracer)
		if err := viewRepo.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	var redisStore watchlist.RedisClient
	if cache.Client != nil {
		redisStore = cache.Client
	}
	watchlistStore := newWatchlistStoreFunc(ctx, redisStore)

	signalsProvider := newSignalsProviderFunc(tracer, cfg.SignalsBaseURL)
	signalsService := newSignalsServiceFunc(tracer, signalsProvider, watchlistStore,
		time.Duration(cfg.CacheTTLSecs)*time.Second)

	counterClient := newCounterClientFunc(tracer, cfg.ChainRPCURL, cfg.ContractAddress, cfg.ChainFrom)

	// Poller keeps the signals cache warm and prunes old view rows.
	var pruner job.ViewPruner
	if viewRepo != nil {
		pruner = viewRepo
	}
	poller := newSignalsPollerFunc(tracer, signalsService, pruner, cfg.PollSecs, cfg.ViewRetentionDays)
	startPollerFunc(poller, ctx)

	startTelegramBotFunc(cfg.TelegramBotToken, signalsService, watchlistStore)

	var views handler.ViewRecorder
	if viewRepo != nil {
		views = viewRepo
	}
	h := newHandlerFunc(tracer, signalsService, watchlistStore, views, counterClient)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("top-signals-browser"))

	h.RegisterRoutes(r, cfg.APIKey)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
