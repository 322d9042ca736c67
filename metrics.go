package iscc

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/iscc/codec"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
// Implementations must be safe for concurrent use.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    metaCounter   prometheus.Counter
//	    dataHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordMeta(duration time.Duration, err error) {
//	    p.metaCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordMeta is called after each meta code derivation.
	// duration is the total time taken, err is nil if successful.
	RecordMeta(duration time.Duration, err error)

	// RecordContent is called after each content code derivation with
	// the content kind (text, image, audio, mixed).
	RecordContent(kind codec.Kind, duration time.Duration, err error)

	// RecordData is called after each data code derivation.
	RecordData(duration time.Duration, err error)

	// RecordInstance is called after each instance code derivation.
	RecordInstance(duration time.Duration, err error)

	// RecordCompute is called after each composite derivation.
	// components is the number of component codes derived.
	RecordCompute(components int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordMeta(time.Duration, error)                {}
func (NoopMetricsCollector) RecordContent(codec.Kind, time.Duration, error) {}
func (NoopMetricsCollector) RecordData(time.Duration, error)                {}
func (NoopMetricsCollector) RecordInstance(time.Duration, error)            {}
func (NoopMetricsCollector) RecordCompute(int, time.Duration)               {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	MetaCount          atomic.Int64
	MetaErrors         atomic.Int64
	ContentCount       atomic.Int64
	ContentErrors      atomic.Int64
	DataCount          atomic.Int64
	DataErrors         atomic.Int64
	DataTotalNanos     atomic.Int64
	InstanceCount      atomic.Int64
	InstanceErrors     atomic.Int64
	InstanceTotalNanos atomic.Int64
	ComputeCount       atomic.Int64
	ComputeComponents  atomic.Int64
}

// RecordMeta implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMeta(duration time.Duration, err error) {
	b.MetaCount.Add(1)
	if err != nil {
		b.MetaErrors.Add(1)
	}
}

// RecordContent implements MetricsCollector.
func (b *BasicMetricsCollector) RecordContent(kind codec.Kind, duration time.Duration, err error) {
	b.ContentCount.Add(1)
	if err != nil {
		b.ContentErrors.Add(1)
	}
}

// RecordData implements MetricsCollector.
func (b *BasicMetricsCollector) RecordData(duration time.Duration, err error) {
	b.DataCount.Add(1)
	b.DataTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.DataErrors.Add(1)
	}
}

// RecordInstance implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInstance(duration time.Duration, err error) {
	b.InstanceCount.Add(1)
	b.InstanceTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.InstanceErrors.Add(1)
	}
}

// RecordCompute implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCompute(components int, duration time.Duration) {
	b.ComputeCount.Add(1)
	b.ComputeComponents.Add(int64(components))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		MetaCount:         b.MetaCount.Load(),
		MetaErrors:        b.MetaErrors.Load(),
		ContentCount:      b.ContentCount.Load(),
		ContentErrors:     b.ContentErrors.Load(),
		DataCount:         b.DataCount.Load(),
		DataErrors:        b.DataErrors.Load(),
		DataAvgNanos:      b.getAvgDataNanos(),
		InstanceCount:     b.InstanceCount.Load(),
		InstanceErrors:    b.InstanceErrors.Load(),
		InstanceAvgNanos:  b.getAvgInstanceNanos(),
		ComputeCount:      b.ComputeCount.Load(),
		ComputeComponents: b.ComputeComponents.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgDataNanos() int64 {
	count := b.DataCount.Load()
	if count == 0 {
		return 0
	}
	return b.DataTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgInstanceNanos() int64 {
	count := b.InstanceCount.Load()
	if count == 0 {
		return 0
	}
	return b.InstanceTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	MetaCount         int64
	MetaErrors        int64
	ContentCount      int64
	ContentErrors     int64
	DataCount         int64
	DataErrors        int64
	DataAvgNanos      int64
	InstanceCount     int64
	InstanceErrors    int64
	InstanceAvgNanos  int64
	ComputeCount      int64
	ComputeComponents int64
}

var (
	_ MetricsCollector = NoopMetricsCollector{}
	_ MetricsCollector = (*BasicMetricsCollector)(nil)
)
