// Package metrics tracks import and store activity with Prometheus metrics.
//
// # Overview
//
// A Collector owns its own prometheus.Registry so that several collectors
// (for example one per test) never clash on metric names. The CLI creates one
// collector per run and, when asked to, dumps it in the node exporter
// textfile format once the run is over.
//
// # Basic Usage
//
//	collector := metrics.NewCollector()
//	collector.Import.RoomImported()
//	timer := metrics.NewTimer()
//	err := repo.Save(ctx, exhibition)
//	collector.Store.Observe("save", timer.Stop(), err)
//	_ = collector.WriteToTextfile("/var/lib/node_exporter/vrem.prom")
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vrem"

// Skip reasons recorded by ImportCollector.Skipped
const (
	SkipReserved    = "reserved"
	SkipUnreadable  = "unreadable"
	SkipWrongFormat = "unsupported_extension"
)

// Collector groups the import and store metrics of one process
type Collector struct {
	registry *prometheus.Registry
	Import   *ImportCollector
	Store    *StoreCollector
}

// NewCollector creates a collector with a fresh registry
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	return &Collector{
		registry: reg,
		Import:   newImportCollector(reg),
		Store:    newStoreCollector(reg),
	}
}

// Registry exposes the underlying registry, e.g. for an HTTP handler
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteToTextfile writes all metrics to path in the text exposition format.
// The file is written atomically.
func (c *Collector) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

// ImportCollector counts what a folder import produced. A nil collector
// records nothing, so importers can run without metrics.
type ImportCollector struct {
	rooms         prometheus.Counter
	walls         prometheus.Counter
	exhibits      *prometheus.CounterVec
	skipped       *prometheus.CounterVec
	sidecarErrors prometheus.Counter
	duration      prometheus.Histogram
}

func newImportCollector(reg prometheus.Registerer) *ImportCollector {
	factory := promauto.With(reg)
	return &ImportCollector{
		rooms: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "rooms_total",
			Help:      "Rooms imported from disk",
		}),
		walls: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "walls_total",
			Help:      "Walls imported from disk",
		}),
		exhibits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "exhibits_total",
			Help:      "Exhibits imported from disk",
		}, []string{"type"}),
		skipped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "skipped_total",
			Help:      "Directories and files skipped during import",
		}, []string{"kind", "reason"}),
		sidecarErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "sidecar_errors_total",
			Help:      "Malformed sidecar files encountered",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "duration_seconds",
			Help:      "Wall clock time of a folder import",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
	}
}

// RoomImported counts one room
func (c *ImportCollector) RoomImported() {
	if c != nil {
		c.rooms.Inc()
	}
}

// WallImported counts one wall
func (c *ImportCollector) WallImported() {
	if c != nil {
		c.walls.Inc()
	}
}

// ExhibitImported counts one exhibit of the given type
func (c *ImportCollector) ExhibitImported(exhibitType string) {
	if c != nil {
		c.exhibits.WithLabelValues(exhibitType).Inc()
	}
}

// Skipped counts a skipped room, wall or exhibit
func (c *ImportCollector) Skipped(kind, reason string) {
	if c != nil {
		c.skipped.WithLabelValues(kind, reason).Inc()
	}
}

// SidecarError counts a malformed sidecar
func (c *ImportCollector) SidecarError() {
	if c != nil {
		c.sidecarErrors.Inc()
	}
}

// ObserveDuration records how long an import took
func (c *ImportCollector) ObserveDuration(d time.Duration) {
	if c != nil {
		c.duration.Observe(d.Seconds())
	}
}

// StoreCollector tracks repository operations
type StoreCollector struct {
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

func newStoreCollector(reg prometheus.Registerer) *StoreCollector {
	factory := promauto.With(reg)
	return &StoreCollector{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Store operations by name and outcome",
		}, []string{"operation", "status"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Store operation latency",
			Buckets: []float64{
				0.001, // 1ms - local server
				0.01,  // 10ms
				0.1,   // 100ms - remote cluster
				1,     // 1s - large exhibitions
				10,
			},
		}, []string{"operation"}),
	}
}

// Observe records one operation and its outcome
func (c *StoreCollector) Observe(operation string, d time.Duration, err error) {
	if c == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	c.operations.WithLabelValues(operation, status).Inc()
	c.latency.WithLabelValues(operation).Observe(d.Seconds())
}

// Timer provides a simple timing mechanism for measuring operation durations.
// It captures the start time on creation and calculates elapsed time on stop.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer and starts timing immediately.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Stop returns the elapsed duration since creation. The timer can be
// stopped multiple times.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}
