package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	api "github.com/mind-engage/moocloze/internal/api/http"
	auth "github.com/mind-engage/moocloze/internal/auth/middleware"
	"github.com/mind-engage/moocloze/internal/config"
	"github.com/mind-engage/moocloze/internal/db"
	"github.com/mind-engage/moocloze/internal/export"
	"github.com/mind-engage/moocloze/internal/exportlog"
	"github.com/mind-engage/moocloze/internal/logger"
	"github.com/mind-engage/moocloze/internal/metrics"
	"github.com/mind-engage/moocloze/internal/storage"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	defer func() { _ = log.Sync() }()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatal("db open failed", zap.Error(err))
	}
	defer dbh.Close()

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatal("blob store", zap.Error(err))
	}

	svc := export.New(bs, exportlog.NewRepo(dbh), log)
	svc.Seed = cfg.ShuffleSeed

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.Register(reg)

	if cfg.AuthRequired && cfg.AuthorPassHash == "" {
		log.Warn("AUTH_REQUIRED is set but AUTHOR_PASS_HASH is empty; login is disabled")
	}

	r := api.NewRouter(api.RouterOptions{
		Service:      svc,
		Auth:         auth.NewAuthService(cfg.AuthHMACSecret),
		Credentials:  auth.Credentials{User: cfg.AuthorUser, PassHash: cfg.AuthorPassHash},
		AuthRequired: cfg.AuthRequired,
		CORSOrigins:  cfg.CORSOrigins,
		Gatherer:     reg,
		Ready:        dbh.PingContext,
		Logger:       log,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	log.Info("listening",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("mode", string(cfg.Mode)),
		zap.String("db", cfg.DBDriver),
		zap.Bool("auth", cfg.AuthRequired),
	)

	select {
	case err := <-errCh:
		log.Error("server failed", zap.Error(err))
	case <-sigCtx.Done():
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = server.Shutdown(shutdownCtx)
	log.Info("stopped")
}
