package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pbx-insights-go/internal/api"
	"pbx-insights-go/internal/config"
	"pbx-insights-go/internal/history"
	"pbx-insights-go/internal/logger"
	"pbx-insights-go/internal/pipeline"
	"pbx-insights-go/internal/processor"
)

func main() {
	cfg := config.Load() // loads .env

	log := logger.Configure(os.Stdout, cfg.Environment, cfg.LogLevel)
	log.WithField("service", "pbx-insights-go").Info("starting service")

	log.WithField("history_path", cfg.HistoryPath).Info("opening run history")
	store, err := history.Open(cfg.HistoryPath, cfg.SourceRetryMax)
	if err != nil {
		log.WithError(err).Fatal("failed to open history")
	}
	defer store.Close()

	if n, err := store.Prune(time.Now()); err != nil {
		log.WithError(err).Warn("history prune failed")
	} else if n > 0 {
		log.WithField("pruned", n).Info("expired runs removed")
	}

	proc := processor.New(log, pipeline.New(log), store, processor.Options{
		TTL:      cfg.HistoryTTL,
		RetryMax: cfg.SourceRetryMax,
		Workers:  cfg.BatchWorkers,
	})
	handler := api.New(log, proc, store, cfg.MaxBodyBytes)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("shutdown failed")
		}
	}()

	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server terminated")
	}
	log.Info("server stopped")
}
