package docgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    insertCounter prometheus.Counter
//	    findHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordInsert(duration time.Duration, err error) {
//	    p.insertCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordInsert is called after each insert operation.
	// duration is the total time taken, err is nil if successful.
	RecordInsert(duration time.Duration, err error)

	// RecordFind is called after each find operation.
	// results is the number of documents returned, duration is the time taken,
	// err is nil if successful.
	RecordFind(results int, duration time.Duration, err error)

	// RecordDelete is called after each delete operation.
	RecordDelete(duration time.Duration, err error)

	// RecordUpdate is called after each update operation.
	RecordUpdate(duration time.Duration, err error)

	// RecordBackup is called after each backup operation.
	// bytes is the raw log size streamed out.
	RecordBackup(bytes int64, duration time.Duration, err error)

	// RecordRestore is called after each restore operation.
	// bytes is the decompressed stream size written to the log.
	RecordRestore(bytes int64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(time.Duration, error)         {}
func (NoopMetricsCollector) RecordFind(int, time.Duration, error)      {}
func (NoopMetricsCollector) RecordDelete(time.Duration, error)         {}
func (NoopMetricsCollector) RecordUpdate(time.Duration, error)         {}
func (NoopMetricsCollector) RecordBackup(int64, time.Duration, error)  {}
func (NoopMetricsCollector) RecordRestore(int64, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InsertCount      atomic.Int64
	InsertErrors     atomic.Int64
	InsertTotalNanos atomic.Int64
	FindCount        atomic.Int64
	FindErrors       atomic.Int64
	FindTotalNanos   atomic.Int64
	FindResults      atomic.Int64
	DeleteCount      atomic.Int64
	DeleteErrors     atomic.Int64
	UpdateCount      atomic.Int64
	UpdateErrors     atomic.Int64
	BackupCount      atomic.Int64
	BackupErrors     atomic.Int64
	BackupBytes      atomic.Int64
	RestoreCount     atomic.Int64
	RestoreErrors    atomic.Int64
	RestoreBytes     atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(duration time.Duration, err error) {
	b.InsertCount.Add(1)
	b.InsertTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.InsertErrors.Add(1)
	}
}

// RecordFind implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFind(results int, duration time.Duration, err error) {
	b.FindCount.Add(1)
	b.FindTotalNanos.Add(duration.Nanoseconds())
	b.FindResults.Add(int64(results))
	if err != nil {
		b.FindErrors.Add(1)
	}
}

// RecordDelete implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDelete(duration time.Duration, err error) {
	b.DeleteCount.Add(1)
	if err != nil {
		b.DeleteErrors.Add(1)
	}
}

// RecordUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpdate(duration time.Duration, err error) {
	b.UpdateCount.Add(1)
	if err != nil {
		b.UpdateErrors.Add(1)
	}
}

// RecordBackup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBackup(bytes int64, duration time.Duration, err error) {
	b.BackupCount.Add(1)
	b.BackupBytes.Add(bytes)
	if err != nil {
		b.BackupErrors.Add(1)
	}
}

// RecordRestore implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRestore(bytes int64, duration time.Duration, err error) {
	b.RestoreCount.Add(1)
	b.RestoreBytes.Add(bytes)
	if err != nil {
		b.RestoreErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InsertCount:    b.InsertCount.Load(),
		InsertErrors:   b.InsertErrors.Load(),
		InsertAvgNanos: b.getAvgInsertNanos(),
		FindCount:      b.FindCount.Load(),
		FindErrors:     b.FindErrors.Load(),
		FindAvgNanos:   b.getAvgFindNanos(),
		FindResults:    b.FindResults.Load(),
		DeleteCount:    b.DeleteCount.Load(),
		DeleteErrors:   b.DeleteErrors.Load(),
		UpdateCount:    b.UpdateCount.Load(),
		UpdateErrors:   b.UpdateErrors.Load(),
		BackupCount:    b.BackupCount.Load(),
		BackupErrors:   b.BackupErrors.Load(),
		BackupBytes:    b.BackupBytes.Load(),
		RestoreCount:   b.RestoreCount.Load(),
		RestoreErrors:  b.RestoreErrors.Load(),
		RestoreBytes:   b.RestoreBytes.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgInsertNanos() int64 {
	count := b.InsertCount.Load()
	if count == 0 {
		return 0
	}
	return b.InsertTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgFindNanos() int64 {
	count := b.FindCount.Load()
	if count == 0 {
		return 0
	}
	return b.FindTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InsertCount    int64
	InsertErrors   int64
	InsertAvgNanos int64
	FindCount      int64
	FindErrors     int64
	FindAvgNanos   int64
	FindResults    int64
	DeleteCount    int64
	DeleteErrors   int64
	UpdateCount    int64
	UpdateErrors   int64
	BackupCount    int64
	BackupErrors   int64
	BackupBytes    int64
	RestoreCount   int64
	RestoreErrors  int64
	RestoreBytes   int64
}
