package metrics

// ConfigMetrics provides observability for the configuration reload
// manager.
//
// Implementations count refresh outcomes and expose the restart-pending
// state. This interface is optional - if not provided to the manager, a
// no-op implementation is used with zero overhead.
type ConfigMetrics interface {
	// RecordReload records a completed configuration refresh.
	RecordReload()

	// RecordReloadFailure records a refresh that was discarded because the
	// candidate configuration failed to parse or validate.
	RecordReloadFailure()

	// SetRestartPending updates the restart-pending state, raised when a
	// restart-required key or a shared-secret file changed on disk.
	SetRestartPending(pending bool)

	// RecordSecretRotation records a detected change of a shared-secret
	// file on disk.
	RecordSecretRotation()
}

// noopConfigMetrics discards all observations.
type noopConfigMetrics struct{}

// NewNoopConfigMetrics returns a ConfigMetrics that does nothing.
//
// Used when metrics collection is disabled.
func NewNoopConfigMetrics() ConfigMetrics {
	return noopConfigMetrics{}
}

func (noopConfigMetrics) RecordReload()          {}
func (noopConfigMetrics) RecordReloadFailure()   {}
func (noopConfigMetrics) SetRestartPending(bool) {}
func (noopConfigMetrics) RecordSecretRotation()  {}
