package main

import (
	"context"
	"fmt"
	"log"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
	gossh "golang.org/x/crypto/ssh"

	"github.com/abxglia/farcaster-top-signals-browser/internal/cache"
	"github.com/abxglia/farcaster-top-signals-browser/internal/chain"
	"github.com/abxglia/farcaster-top-signals-browser/internal/config"
	"github.com/abxglia/farcaster-top-signals-browser/internal/provider"
	"github.com/abxglia/farcaster-top-signals-browser/internal/signals"
	"github.com/abxglia/farcaster-top-signals-browser/internal/tui"
	"github.com/abxglia/farcaster-top-signals-browser/internal/watchlist"
	"github.com/abxglia/farcaster-top-signals-browser/pkg/tracing"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	initRedisFunc          = cache.InitRedis
	initTracerFunc         = tracing.InitTracer
	newSignalsProviderFunc = provider.NewSignalsProvider
	newWatchlistStoreFunc  = watchlist.NewStore
	newSignalsServiceFunc  = signals.NewService
	newCounterClientFunc   = chain.NewCounterClient
	newWishServerFunc      = wish.NewServer
	setupSignalNotify      = ossignal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
)

func main() {
	loadEnvFunc()
	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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

	var redisStore watchlist.RedisClient
	if cache.Client != nil {
		redisStore = cache.Client
	}
	watchlistStore := newWatchlistStoreFunc(ctx, redisStore)

	signalsProvider := newSignalsProviderFunc(tracer, cfg.SignalsBaseURL)
	signalsService := newSignalsServiceFunc(tracer, signalsProvider, watchlistStore,
		time.Duration(cfg.CacheTTLSecs)*time.Second)

	counterClient := newCounterClientFunc(tracer, cfg.ChainRPCURL, cfg.ContractAddress, cfg.ChainFrom)

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.SSHPort)

	srv, err := newWishServerFunc(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
			// The browser is read-mostly, so any key may connect; the
			// fingerprint is logged for the access trail.
			log.Printf("SSH session: user=%s fingerprint=%s", ctx.User(), gossh.FingerprintSHA256(key))
			return true
		}),
		wish.WithMiddleware(
			bubbletea.Middleware(func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
				svc := tui.Services{
					Signals:   signalsService,
					Watchlist: watchlistStore,
					Username:  s.User(),
				}
				if counterClient.Enabled() {
					svc.Counter = counterClient
				}

				model := tui.NewAppModel(svc)
				pty, _, _ := s.Pty()
				model.SetSize(pty.Window.Width, pty.Window.Height)

				return model, []tea.ProgramOption{tea.WithAltScreen()}
			}),
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Fatalf("failed to create SSH server: %v", err)
	}

	if srv != nil {
		go func() {
			log.Printf("SSH server listening on %s", addr)
			if err := srv.ListenAndServe(); err != nil {
				log.Printf("SSH server stopped: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down SSH server...")

	cancel()

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("SSH server shutdown error: %v", err)
		}
	}

	log.Println("SSH server exited")
}
