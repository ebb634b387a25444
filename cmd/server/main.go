package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kim-DL/onnuri-inven/internal/config"
	"github.com/kim-DL/onnuri-inven/internal/infra"
	"github.com/kim-DL/onnuri-inven/internal/repository"
	"github.com/kim-DL/onnuri-inven/internal/router"
	"github.com/kim-DL/onnuri-inven/internal/service"
	"github.com/kim-DL/onnuri-inven/internal/storage"
	"github.com/kim-DL/onnuri-inven/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if err := infra.SeedZones(db); err != nil {
		log.Fatal().Err(err).Msg("failed to seed zones")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if rdb == nil {
		log.Warn().Msg("redis disabled, running without caches or background expiry scans")
	}

	store, err := storage.NewFSStore(cfg.StorageRoot, cfg.PublicURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init photo storage")
	}

	// Background workers: the expiry scan runs on a BRPOP pool fed by a cron
	// goroutine, both wired here at the composition root.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	productRepo := repository.NewProductRepository(db)
	zoneRepo := repository.NewZoneRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	settingsSvc := service.NewSettingsService(settingRepo, rdb)
	inventorySvc := service.NewInventoryService(inventoryRepo, productRepo)
	dashboardSvc := service.NewDashboardService(productRepo, zoneRepo, inventorySvc, settingsSvc, rdb)

	if rdb != nil {
		dispatcher := worker.NewDispatcher(rdb)
		worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, worker.Handlers{Dashboard: dashboardSvc})
		worker.StartExpiryCron(ctx, dispatcher, time.Duration(cfg.ExpiryScanIntervalHours)*time.Hour)
	}

	r := router.New(cfg, db, rdb, store)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("onnuri-inven backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
