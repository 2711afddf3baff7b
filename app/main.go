package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/lysyi3m/clan-comb/app/api"
	"github.com/lysyi3m/clan-comb/app/audit"
	"github.com/lysyi3m/clan-comb/app/cfg"
	"github.com/lysyi3m/clan-comb/app/clan"
	"github.com/lysyi3m/clan-comb/app/database"
	"github.com/lysyi3m/clan-comb/app/hiscores"
	"github.com/lysyi3m/clan-comb/app/items"
	"github.com/lysyi3m/clan-comb/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Clan Comb server", "version", appCfg.Version)

	db, err := database.NewConnection(
		appCfg.DBHost, appCfg.DBPort, appCfg.DBUser,
		appCfg.DBPassword, appCfg.DBName)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "migration_version", version, "dirty", dirty)

	trail, err := audit.Open(appCfg.AuditLogPath)
	if err != nil {
		slog.Error("Failed to open audit trail", "path", appCfg.AuditLogPath, "error", err)
		os.Exit(1)
	}
	defer trail.Close()

	configCache := clan.NewConfigCache(appCfg.ClansDir)
	if err := configCache.Run(); err != nil {
		slog.Error("Failed to load clan configurations", "error", err)
		os.Exit(1)
	}
	slog.Info("Clan configurations loaded", "count", configCache.GetConfigCount())

	memberRepo := database.NewMemberRepository(db)
	activityRepo := database.NewActivityRepository(db)
	itemRepo := database.NewItemRepository(db)

	httpClient := resty.New().
		SetTimeout(time.Duration(appCfg.HTTPTimeout) * time.Second).
		SetHeader("User-Agent", appCfg.UserAgent)

	roster := clan.NewRosterLoader(httpClient, "")
	profiles := clan.NewProfileClient(httpClient, "", appCfg.FetchConcurrency, appCfg.FetchRetries)
	catalog := items.NewCatalog(httpClient, "", itemRepo)
	hiscoresClient := hiscores.NewClient(httpClient, "")

	scheduler := tasks.NewScheduler(configCache, roster, profiles, memberRepo, activityRepo, catalog, trail)
	scheduler.Start()
	defer scheduler.Stop()
	slog.Info("Background scheduler started", "workers", appCfg.WorkerCount, "interval", appCfg.SchedulerInterval)

	apiHandler := api.NewHandler(configCache, memberRepo, activityRepo, itemRepo, hiscoresClient, scheduler)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}
