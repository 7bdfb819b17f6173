package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cloudgateways/wopigate/internal/logger"
	"github.com/cloudgateways/wopigate/pkg/metrics"
	"github.com/cloudgateways/wopigate/pkg/secret"
)

// DefaultRefreshInterval matches the original gateway, which re-reads its
// configuration every 300 seconds to catch runtime parameter changes.
const DefaultRefreshInterval = 300 * time.Second

// ManagerConfig configures the reload manager.
type ManagerConfig struct {
	// DefaultsPath and ConfigPath are the files to re-read; same meaning
	// as in LoadWithDefaults.
	DefaultsPath string
	ConfigPath   string

	// Interval between periodic refreshes.
	// Default: DefaultRefreshInterval
	Interval time.Duration

	// Watch additionally triggers a refresh when the site file changes on
	// disk, instead of waiting for the next interval.
	Watch bool

	// Secrets, when set, are checked for on-disk rotation at every
	// refresh. Rotation is reported as restart-required, never applied.
	Secrets *secret.Pair
}

func (c *ManagerConfig) applyDefaults() {
	if c.Interval <= 0 {
		c.Interval = DefaultRefreshInterval
	}
}

// Manager re-reads the configuration at runtime and publishes snapshots.
//
// Only runtime-refreshable keys (per the registry) are applied to the live
// snapshot; restart-required changes are logged, surfaced through
// RestartPending and held back until the process restarts, which mirrors
// how the original gateway treats its secret files and listener settings.
//
// An invalid candidate configuration never replaces the live snapshot.
type Manager struct {
	opts    ManagerConfig
	metrics metrics.ConfigMetrics

	mu             sync.RWMutex
	current        *Config
	restartPending bool
	rotationSeen   bool
	warnedKeys     map[string]bool

	onRefresh []func(*Config)
}

// NewManager creates a reload manager around an initially loaded
// configuration. Pass nil for m to disable metrics.
func NewManager(opts ManagerConfig, initial *Config, m metrics.ConfigMetrics) *Manager {
	opts.applyDefaults()
	if m == nil {
		m = metrics.NewNoopConfigMetrics()
	}
	return &Manager{
		opts:       opts,
		metrics:    m,
		current:    initial.Clone(),
		warnedKeys: make(map[string]bool),
	}
}

// Current returns the live configuration snapshot. The snapshot is
// immutable; a later refresh publishes a new one.
func (m *Manager) Current() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// RestartPending reports whether a restart-required key or a shared-secret
// file changed since the configuration was first loaded.
func (m *Manager) RestartPending() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.restartPending
}

// OnRefresh registers a callback invoked with the new snapshot after every
// applied refresh. Registration is not safe concurrently with Run.
func (m *Manager) OnRefresh(fn func(*Config)) {
	m.onRefresh = append(m.onRefresh, fn)
}

// Run refreshes the configuration periodically (and on file events when
// watching) until the context is cancelled.
func (m *Manager) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.opts.Interval)
	defer ticker.Stop()

	var events chan fsnotify.Event
	if m.opts.Watch {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create config watcher: %w", err)
		}
		defer watcher.Close()

		// Watch the directory: editors and config management tools
		// replace the file, which drops a watch set on the file itself
		if err := watcher.Add(filepath.Dir(m.opts.ConfigPath)); err != nil {
			return fmt.Errorf("failed to watch config directory: %w", err)
		}
		events = make(chan fsnotify.Event, 1)
		go forwardConfigEvents(ctx, watcher, m.opts.ConfigPath, events)
	}

	logger.Info("Configuration manager running (interval: %v, watch: %v)", m.opts.Interval, m.opts.Watch)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Configuration manager stopped")
			return nil
		case <-ticker.C:
			if err := m.Refresh(); err != nil {
				logger.Warning("Periodic refresh failed, keeping previous configuration: %v", err)
			}
		case event := <-events:
			logger.Debug("Configuration file event: %s", event)
			if err := m.Refresh(); err != nil {
				logger.Warning("Refresh after file change failed, keeping previous configuration: %v", err)
			}
		}
	}
}

// forwardConfigEvents filters watcher events down to writes of the config
// file and forwards them, dropping bursts.
func forwardConfigEvents(ctx context.Context, watcher *fsnotify.Watcher, configPath string, out chan<- fsnotify.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(configPath) {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			select {
			case out <- event:
			default:
				// A refresh is already pending; coalesce
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warning("Config watcher error: %v", err)
		}
	}
}

// Refresh re-reads the configuration once and applies runtime-refreshable
// changes.
//
// On any load or validation error the previous snapshot stays live and the
// error is returned.
func (m *Manager) Refresh() error {
	candidate, err := LoadWithDefaults(m.opts.DefaultsPath, m.opts.ConfigPath)
	if err != nil {
		m.metrics.RecordReloadFailure()
		return err
	}

	current := m.Current()
	changes, err := Diff(current, candidate)
	if err != nil {
		m.metrics.RecordReloadFailure()
		return err
	}

	refreshable, restartRequired := Partition(changes)

	merged := applyRefreshable(current, candidate)

	m.mu.Lock()
	m.current = merged
	for _, c := range restartRequired {
		m.restartPending = true
		// The held-back change re-diffs on every cycle; warn only once per
		// key
		path := c.Section + "." + c.Key
		if m.warnedKeys[path] {
			continue
		}
		m.warnedKeys[path] = true
		logger.Warning("Configuration change requires a restart to take effect: %s", c)
	}
	m.checkSecretsLocked()
	pending := m.restartPending
	m.mu.Unlock()

	m.metrics.RecordReload()
	m.metrics.SetRestartPending(pending)

	for _, c := range refreshable {
		logger.Info("Configuration refreshed: %s", c)
	}

	// The original gateway re-applies the log level on every refresh
	logger.SetLevel(merged.General.LogLevel)

	for _, fn := range m.onRefresh {
		fn(merged)
	}
	return nil
}

// checkSecretsLocked flags on-disk secret rotation. Callers hold m.mu.
func (m *Manager) checkSecretsLocked() {
	if m.opts.Secrets == nil || m.rotationSeen {
		return
	}
	if m.opts.Secrets.Changed() {
		m.rotationSeen = true
		m.restartPending = true
		m.metrics.RecordSecretRotation()
		logger.Warning("Shared-secret file changed on disk; restart required for the rotation to take effect")
	}
}

// applyRefreshable builds the next snapshot: the current configuration with
// the runtime-refreshable keys taken from the candidate.
//
// This is the same behavior as the original refresh loop, which re-reads
// the whole file but only ever consults the refreshable parameters again.
func applyRefreshable(current, candidate *Config) *Config {
	merged := current.Clone()
	merged.General.NonOfficeTypes = candidate.General.NonOfficeTypes
	merged.General.LogLevel = candidate.General.LogLevel
	merged.General.TokenValidity = candidate.General.TokenValidity
	merged.General.AllowedClients = candidate.General.AllowedClients
	merged.General.WOPIURL = candidate.General.WOPIURL
	merged.General.DownloadURL = candidate.General.DownloadURL
	return merged
}
