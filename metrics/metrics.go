// Package metrics records scan results as Prometheus metrics and writes them
// to a node_exporter textfile.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"

	"github.com/jongio/scan-patch/cmdutil"
	"github.com/jongio/scan-patch/dispatch"
	"github.com/jongio/scan-patch/probe"
	"github.com/jongio/scan-patch/updates"
)

// Collector owns a registry with every scan-patch metric.
type Collector struct {
	registry *prometheus.Registry
	now      func() time.Time

	probeDuration  *prometheus.HistogramVec
	probeTotal     *prometheus.CounterVec
	probeErrors    *prometheus.CounterVec
	pendingUpdates *prometheus.GaugeVec
	unsupported    prometheus.Gauge
	lastScan       prometheus.Gauge
	breakerState   *prometheus.GaugeVec
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		now:      time.Now,

		probeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scanpatch_probe_duration_seconds",
				Help:    "Duration of platform probes in seconds",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"platform", "outcome"},
		),

		probeTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scanpatch_probe_total",
				Help: "Total number of platform probes performed",
			},
			[]string{"platform", "outcome"},
		),

		probeErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scanpatch_probe_errors_total",
				Help: "Total number of faulted probes by error type",
			},
			[]string{"platform", "error_type"},
		),

		pendingUpdates: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "scanpatch_pending_updates",
				Help: "Number of pending updates reported by the last scan",
			},
			[]string{"platform"},
		),

		unsupported: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "scanpatch_unsupported",
				Help: "1 if the last scan found no working update tool",
			},
		),

		lastScan: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "scanpatch_last_scan_timestamp_seconds",
				Help: "Unix time the last scan finished",
			},
		),

		breakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "scanpatch_circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
			},
			[]string{"name"},
		),
	}
}

// Registry returns the registry metrics are recorded in.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveProbe records one probe attempt. It satisfies dispatch.Observer.
func (c *Collector) ObserveProbe(out probe.Outcome) {
	labels := prometheus.Labels{
		"platform": string(out.Platform),
		"outcome":  out.Status.String(),
	}
	c.probeDuration.With(labels).Observe(out.Duration.Seconds())
	c.probeTotal.With(labels).Inc()

	if out.Status == probe.StatusFaulted {
		c.probeErrors.With(prometheus.Labels{
			"platform":   string(out.Platform),
			"error_type": errorType(out.Err),
		}).Inc()
	}
}

// ObserveResult records the final result of a scan.
func (c *Collector) ObserveResult(res dispatch.Result) {
	c.pendingUpdates.Reset()
	if res.Unsupported() {
		c.unsupported.Set(1)
	} else {
		c.unsupported.Set(0)
		if res.Platform != "" {
			c.pendingUpdates.With(prometheus.Labels{"platform": string(res.Platform)}).Set(float64(len(res.Records)))
		}
	}
	c.lastScan.Set(float64(c.now().Unix()))
}

// RecordBreakerState records the state of a named circuit breaker.
func (c *Collector) RecordBreakerState(name string, state gobreaker.State) {
	var stateValue float64
	switch state {
	case gobreaker.StateClosed:
		stateValue = 0
	case gobreaker.StateHalfOpen:
		stateValue = 1
	case gobreaker.StateOpen:
		stateValue = 2
	}
	c.breakerState.With(prometheus.Labels{"name": name}).Set(stateValue)
}

// WriteTextfile writes every metric to path in the text exposition format.
// The file is replaced atomically so node_exporter never reads a partial file.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

// errorType categorizes probe faults for metrics.
func errorType(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, updates.ErrDateFormat):
		return "date_format"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, cmdutil.ErrToolNotFound):
		return "tool_not_found"
	case containsAny(err.Error(), "timeout", "timed out"):
		return "timeout"
	case containsAny(err.Error(), "permission denied", "access is denied"):
		return "permission_denied"
	default:
		return "unknown"
	}
}

// containsAny checks if s contains any of the given substrings, ignoring case.
func containsAny(s string, substrs ...string) bool {
	s = strings.ToLower(s)
	for _, substr := range substrs {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
