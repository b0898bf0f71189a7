package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mrwolf/burnout-server/internal/api"
	"github.com/mrwolf/burnout-server/internal/app"
	"github.com/mrwolf/burnout-server/internal/config"
	"github.com/mrwolf/burnout-server/internal/handoff"
	"github.com/mrwolf/burnout-server/internal/logging"
	"github.com/mrwolf/burnout-server/internal/scheduler"
)

func main() {
	config.LoadEnv(os.Getenv("BURNOUT_ENV_FILE"))

	cfg, err := config.Load()
	if err != nil {
		logging.InitLogger(slog.LevelInfo)
		slog.Error("[Main] Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(cfg.Level())
	slog.Info("[Main] Starting burnout-server", slog.String("version", api.Version))

	if err := run(cfg); err != nil {
		slog.Error("[Main] Exiting", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("[Main] Shutdown complete")
}

func run(cfg *config.Config) error {
	a, err := app.Build(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Error("[Main] Close error", slog.String("error", err.Error()))
		}
	}()

	checks := a.HealthChecks()
	sched, err := scheduler.New(scheduler.Config{
		Timezone:       cfg.Timezone,
		HealthInterval: cfg.ModelHealthInterval,
		ProbeTimeout:   cfg.ModelTimeout,
	}, checks...)
	if err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		if err := sched.Stop(); err != nil {
			slog.Error("[Main] Scheduler shutdown error", slog.String("error", err.Error()))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(cfg, a.Tracker, checks),
		ReadHeaderTimeout: 10 * time.Second,
		// history streams end when the process is signalled
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	if cfg.ContactsFile != "" {
		g.Go(func() error {
			if err := handoff.WatchDirectory(gctx, cfg.ContactsFile, a.Tracker.SetContacts); err != nil {
				slog.Warn("[Main] Contacts reload disabled", slog.String("error", err.Error()))
			}
			return nil
		})
	}
	g.Go(func() error {
		slog.Info("[Main] Listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("[Main] Shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
