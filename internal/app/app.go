package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ibeloyar/taskmarket/internal/collaborator"
	"github.com/ibeloyar/taskmarket/internal/config"
	"github.com/ibeloyar/taskmarket/internal/lifecycle"
	"github.com/ibeloyar/taskmarket/internal/remote"
	"github.com/ibeloyar/taskmarket/internal/repository/localdb"
	"github.com/ibeloyar/taskmarket/internal/repository/pg"
	"github.com/ibeloyar/taskmarket/internal/store"
	"github.com/ibeloyar/taskmarket/pgk/logger"
	"github.com/ibeloyar/taskmarket/pgk/retryablehttp"
	"go.uber.org/zap"

	httpController "github.com/ibeloyar/taskmarket/internal/controller/http"
)

func Run(cfg config.Config, lg *zap.SugaredLogger) error {
	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	durable, err := openDurable(cfg)
	if err != nil {
		return err
	}

	st, err := store.New(signalCtx, durable, lg)
	if err != nil {
		return err
	}

	var collector lifecycle.Collector
	if cfg.LedgerAddress != "" {
		collector = collaborator.NewLedgerCollector(cfg.LedgerAddress, lg)
	}
	notifier := collaborator.NewLogNotifier(lg)

	machine := lifecycle.New(signalCtx, st, collector, notifier, cfg.StrictDispatch, lg)

	var syncer httpController.Syncer
	if cfg.SnapshotAddress != "" {
		client := remote.NewSnapshotClient(cfg.SnapshotAddress, retryablehttp.RetryConfig{}, lg)
		poller := store.NewPoller(st, client, store.PollerConfig{
			Interval:    cfg.SyncInterval,
			RetryBase:   cfg.SyncRetryBase,
			RetryMax:    cfg.SyncRetryMax,
			MaxFailures: cfg.SyncMaxFailures,
		}, lg)
		go poller.Run(signalCtx)
		syncer = poller
	}

	router := chi.NewRouter()
	router.Use(logger.LoggingMiddleware(lg))
	router.Use(middleware.Recoverer)

	handlers := httpController.New(machine, st, syncer, lg)
	router = httpController.InitRoutes(router, handlers)

	srv := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: router,
	}

	lg.Infof("starting server on %s", cfg.RunAddress)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatalf("server ListenAndServe error: %v", err)
		}
	}()

	<-signalCtx.Done()
	lg.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown (server) error: %v", err)
	}

	if err := st.Close(); err != nil {
		return fmt.Errorf("shutdown (store) error: %v", err)
	}

	lg.Info("server shutdown success")
	return nil
}

func openDurable(cfg config.Config) (store.Durable, error) {
	if cfg.DatabaseURI != "" {
		return pg.New(cfg.DatabaseURI)
	}
	return localdb.New(cfg.LocalDBPath)
}
