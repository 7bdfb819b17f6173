// Package prometheus contains the Prometheus-backed implementations of the
// metrics interfaces defined in pkg/metrics.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cloudgateways/wopigate/pkg/metrics"
)

// configMetrics is the Prometheus implementation of metrics.ConfigMetrics.
type configMetrics struct {
	reloadsTotal    prometheus.Counter
	reloadFailures  prometheus.Counter
	restartPending  prometheus.Gauge
	secretRotations prometheus.Counter
}

// NewConfigMetrics creates a new Prometheus-backed ConfigMetrics instance.
//
// Returns a no-op implementation if metrics are not enabled (InitRegistry
// not called).
func NewConfigMetrics() metrics.ConfigMetrics {
	if !metrics.IsEnabled() {
		return metrics.NewNoopConfigMetrics()
	}

	factory := promauto.With(metrics.GetRegistry())

	return &configMetrics{
		reloadsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "wopigate",
			Subsystem: "config",
			Name:      "reloads_total",
			Help:      "Total number of applied configuration refreshes.",
		}),
		reloadFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "wopigate",
			Subsystem: "config",
			Name:      "reload_failures_total",
			Help:      "Refreshes discarded because the candidate configuration was invalid.",
		}),
		restartPending: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "wopigate",
			Subsystem: "config",
			Name:      "restart_pending",
			Help:      "1 when a restart-required key or secret file changed on disk, 0 otherwise.",
		}),
		secretRotations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "wopigate",
			Subsystem: "config",
			Name:      "secret_rotations_detected_total",
			Help:      "Detected on-disk changes of the shared-secret files.",
		}),
	}
}

func (m *configMetrics) RecordReload() {
	m.reloadsTotal.Inc()
}

func (m *configMetrics) RecordReloadFailure() {
	m.reloadFailures.Inc()
}

func (m *configMetrics) SetRestartPending(pending bool) {
	if pending {
		m.restartPending.Set(1)
	} else {
		m.restartPending.Set(0)
	}
}

func (m *configMetrics) RecordSecretRotation() {
	m.secretRotations.Inc()
}
