package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"snowrent-backend/internal/config"
	"snowrent-backend/internal/jobs"
	"snowrent-backend/internal/logger"
	"snowrent-backend/internal/repository/jsonfile"
	"snowrent-backend/internal/scheduler"
	"snowrent-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Snowrent backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Data configuration", "dir", cfg.Data.Dir, "config_dir", cfg.Data.ConfigDir)

	// Initialize store
	store, err := jsonfile.NewStore(cfg.Data.Dir)
	if err != nil {
		logger.Error("Failed to initialize data store", "error", err)
		log.Fatalf("Failed to initialize data store: %v", err)
	}

	// Preferences record for the settings layer (admin password, theme).
	// The registries never touch it.
	prefs, err := jsonfile.LoadPrefs(cfg.Data.ConfigDir)
	if err != nil {
		logger.Error("Failed to load preferences", "error", err)
		log.Fatalf("Failed to load preferences: %v", err)
	}
	logger.Info("Preferences loaded", "dark_mode", prefs.DarkMode())

	// Initialize Services
	memberRegistry := service.NewMemberRegistry(store)
	inventory := service.NewInventory(store)
	ledger := service.NewRentalLedger(store, memberRegistry, inventory)
	membershipSvc := service.NewMembershipService(memberRegistry)

	logger.Info("Registries loaded",
		"members", len(membershipSvc.AllMembers()),
		"items", inventory.TotalCount(),
		"active_rentals", len(ledger.ActiveRentals()),
	)

	// Start the autosave loop
	autosaver := jobs.NewAutosaver(ledger)
	autosaver.SetOnSaveCallback(func() {
		logger.Debug("Autosave observer notified")
	})
	sched := scheduler.NewScheduler(autosaver, time.Duration(cfg.Autosave.IntervalSeconds)*time.Second)
	sched.Start()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Shutdown signal received", "signal", sig.String())

	// Stop drains the cadence and performs the final synchronous save.
	sched.Stop()
	logger.Info("Snowrent backend stopped")
}
