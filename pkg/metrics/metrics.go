// Package metrics exposes Prometheus instrumentation for the VFS
// operation surface: one counter/histogram pair per operation, labeled by
// operation name and result.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Label constants for the metrics below.
const (
	LabelOperation = "operation"
	LabelStatus    = "status"
)

// Status label values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics provides Prometheus instrumentation for VFS operations.
type Metrics struct {
	opTotal    *prometheus.CounterVec
	opDuration *prometheus.HistogramVec
	bytesRead  prometheus.Counter
	bytesWrite prometheus.Counter

	registered bool
}

// NewMetrics creates and, if registry is non-nil, registers the core's
// metrics. A nil registry is useful in tests that want instrumented code
// paths without a live Prometheus registry.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		opTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "nodalfs",
				Subsystem: "ops",
				Name:      "total",
				Help:      "Total number of VFS operations processed",
			},
			[]string{LabelOperation, LabelStatus},
		),
		opDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "nodalfs",
				Subsystem: "ops",
				Name:      "duration_seconds",
				Help:      "VFS operation latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{LabelOperation},
		),
		bytesRead: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "nodalfs",
				Subsystem: "io",
				Name:      "bytes_read_total",
				Help:      "Total bytes returned by read operations",
			},
		),
		bytesWrite: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "nodalfs",
				Subsystem: "io",
				Name:      "bytes_written_total",
				Help:      "Total bytes accepted by write operations",
			},
		),
	}

	if registry != nil {
		registry.MustRegister(m.opTotal, m.opDuration, m.bytesRead, m.bytesWrite)
		m.registered = true
	}

	return m
}

// ObserveOp records the outcome and latency of a single VFS operation.
func (m *Metrics) ObserveOp(operation string, start time.Time, err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.opTotal.WithLabelValues(operation, status).Inc()
	m.opDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// AddBytesRead records n bytes returned by a read operation.
func (m *Metrics) AddBytesRead(n int) {
	m.bytesRead.Add(float64(n))
}

// AddBytesWritten records n bytes accepted by a write operation.
func (m *Metrics) AddBytesWritten(n int) {
	m.bytesWrite.Add(float64(n))
}
