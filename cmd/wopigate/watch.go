package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cloudgateways/wopigate/internal/logger"
	"github.com/cloudgateways/wopigate/pkg/config"
	"github.com/cloudgateways/wopigate/pkg/metrics"
	promMetrics "github.com/cloudgateways/wopigate/pkg/metrics/prometheus"
	"github.com/cloudgateways/wopigate/pkg/secret"
)

// runWatch supervises a deployed configuration: it refreshes on the
// original gateway's 300-second cadence and on file changes, logs which
// changes are runtime-refreshable and which need a restart, and exposes the
// outcome as Prometheus metrics when monitoring is enabled.
func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultConfigPath, "Site configuration file")
	defaultsPath := fs.String("defaults", "", "Defaults configuration file (optional)")
	interval := fs.Duration("interval", config.DefaultRefreshInterval, "Periodic refresh interval")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadWithDefaults(*defaultsPath, *configPath)
	if err != nil {
		return err
	}

	logger.SetLevel(cfg.General.LogLevel)
	logger.Info("Configuration loaded from %s", *configPath)
	logger.Info("Storage backend: %s, listening port: %d", cfg.General.StorageType, cfg.General.Port)

	// Secrets are optional here: a watch session on a machine without the
	// production secrets still reports key changes
	secrets, err := secret.LoadPair(cfg.Security.WOPISecretFile, cfg.Security.IOPSecretFile)
	if err != nil {
		logger.Warning("Shared secrets not loaded, rotation detection disabled: %v", err)
		secrets = nil
	} else {
		logger.Info("Shared secrets loaded (wopi: %s, iop: %s)",
			secrets.WOPI.Fingerprint(), secrets.IOP.Fingerprint())
	}

	var cfgMetrics metrics.ConfigMetrics
	var metricsServer *metrics.Server
	if cfg.Monitoring.Enabled {
		metrics.InitRegistry()
		cfgMetrics = promMetrics.NewConfigMetrics()
		metricsServer = metrics.NewServer(metrics.ServerConfig{Port: cfg.Monitoring.Port})
	} else {
		cfgMetrics = metrics.NewNoopConfigMetrics()
	}

	mgr := config.NewManager(config.ManagerConfig{
		DefaultsPath: *defaultsPath,
		ConfigPath:   *configPath,
		Interval:     *interval,
		Watch:        true,
		Secrets:      secrets,
	}, cfg, cfgMetrics)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Run manager and metrics server in background
	managerDone := make(chan error, 1)
	go func() {
		managerDone <- mgr.Run(ctx)
	}()

	serverDone := make(chan error, 1)
	if metricsServer != nil {
		go func() {
			serverDone <- metricsServer.Start(ctx)
		}()
	}

	// Wait for interrupt signal or component error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Watching %s (interval: %v). Press Ctrl+C to stop.", *configPath, *interval)

	select {
	case <-sigChan:
		logger.Info("Shutdown signal received, stopping watcher...")
		cancel()
		<-managerDone
		if metricsServer != nil {
			<-serverDone
		}
	case err := <-managerDone:
		cancel()
		if err != nil {
			return fmt.Errorf("configuration manager failed: %w", err)
		}
	case err := <-serverDone:
		cancel()
		<-managerDone
		if err != nil {
			return fmt.Errorf("metrics server failed: %w", err)
		}
	}

	if mgr.RestartPending() {
		logger.Warning("Restart-required changes were observed during this session")
	}
	return nil
}
