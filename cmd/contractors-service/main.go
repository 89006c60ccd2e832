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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/nurpe/contractor-form/internal/auth"
	"github.com/nurpe/contractor-form/internal/config"
	"github.com/nurpe/contractor-form/internal/db"
	"github.com/nurpe/contractor-form/internal/excel"
	httphandler "github.com/nurpe/contractor-form/internal/http"
	"github.com/nurpe/contractor-form/internal/http/middleware"
	"github.com/nurpe/contractor-form/internal/logger"
	"github.com/nurpe/contractor-form/internal/metrics"
	"github.com/nurpe/contractor-form/internal/pdf"
	"github.com/nurpe/contractor-form/internal/repository"
	"github.com/nurpe/contractor-form/internal/service"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load(nil)
	if err == nil {
		err = cfg.ValidateServer()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	contractorRepo := repository.NewContractorRepository(database)
	contractorService := service.NewContractorService(
		contractorRepo,
		excel.NewGenerator(),
		pdf.NewGenerator(),
		metrics.NewRecorder(registry),
		log,
	)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(contractorService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, httphandler.RouterOptions{
		Environment:    cfg.Environment,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Gatherer:       registry,
		Log:            log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("starting contractors service")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
