package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"aiclub/internal/adapters/auth"
	emailPkg "aiclub/internal/adapters/email"
	web "aiclub/internal/adapters/http"
	"aiclub/internal/adapters/http/perf"
	"aiclub/internal/adapters/storage"
	accountStore "aiclub/internal/adapters/storage/account"
	activityStore "aiclub/internal/adapters/storage/activity"
	eventStore "aiclub/internal/adapters/storage/event"
	leaderboardStore "aiclub/internal/adapters/storage/leaderboard"
	outboxStore "aiclub/internal/adapters/storage/outbox"
	scoreStore "aiclub/internal/adapters/storage/score"
	teamStore "aiclub/internal/adapters/storage/team"
	"aiclub/internal/application/orchestrators"
	"aiclub/internal/config"
	"aiclub/internal/domain/outbox"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server_failed", "error", err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	setupLogger(cfg)

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := storage.InitDB(db); err != nil {
		return err
	}
	slog.Info("database_ready", "path", cfg.DBPath)

	// Performance instrumentation: every store goes through the timed DB.
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector, cfg.SlowQueryMs)

	stores := &web.Stores{
		AccountStore:     accountStore.NewSQLiteStore(timedDB),
		EventStore:       eventStore.NewSQLiteStore(timedDB),
		TeamStore:        teamStore.NewSQLiteStore(timedDB),
		ScoreStore:       scoreStore.NewSQLiteStore(timedDB),
		LeaderboardStore: leaderboardStore.NewSQLiteStore(timedDB),
		ActivityStore:    activityStore.NewSQLiteStore(timedDB),
		OutboxStore:      outboxStore.NewSQLiteStore(timedDB),
	}

	ctx := context.Background()
	err = orchestrators.ExecuteSeedSuperAdmin(ctx, orchestrators.SeedSuperAdminInput{
		Name:     cfg.SuperAdminName,
		Email:    cfg.SuperAdminEmail,
		Password: cfg.SuperAdminPassword,
	}, orchestrators.SeedSuperAdminDeps{
		AccountStore: stores.AccountStore,
		BcryptCost:   cfg.BcryptCost,
		GenerateID:   uuid.NewString,
		Now:          time.Now,
	})
	if err != nil {
		return err
	}

	var sender emailPkg.Sender
	if cfg.ResendKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom, cfg.ReplyTo)
		slog.Info("email_sender", "provider", "resend")
	} else {
		sender = emailPkg.NewNoopSender()
		if cfg.IsProduction() {
			slog.Warn("email_sender", "provider", "noop", "note", "CLUB_RESEND_KEY is not set; email delivery is disabled")
		} else {
			slog.Info("email_sender", "provider", "noop")
		}
	}

	processor := orchestrators.NewOutboxProcessor(stores.OutboxStore, map[string]orchestrators.ActionExecutor{
		outbox.ActionTypeEmail: &orchestrators.EmailExecutor{Sender: sender},
	})
	outboxStop := make(chan struct{})
	outboxDone := orchestrators.StartBackgroundWorker(processor, cfg.OutboxInterval, outboxStop)

	srv, err := web.NewServer(web.Deps{
		Config:    cfg,
		Stores:    stores,
		Tokens:    auth.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Collector: collector,
		Outbox:    processor,
	})
	if err != nil {
		close(outboxStop)
		return err
	}
	defer srv.Close()

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server_starting", "version", version, "addr", cfg.Addr, "env", cfg.Env)
		serveErr <- httpServer.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		close(outboxStop)
		<-outboxDone
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-sigCh:
		slog.Info("server_stopping", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	err = httpServer.Shutdown(shutdownCtx)
	close(outboxStop)
	<-outboxDone
	return err
}

// setupLogger installs the process-wide slog handler: JSON in production, text otherwise.
func setupLogger(cfg config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var h slog.Handler
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}
