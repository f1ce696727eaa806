package docgo

import (
	"log/slog"

	"github.com/hupe1980/docgo/codec"
	"github.com/hupe1980/docgo/internal/fs"
)

type options struct {
	codec            codec.Codec
	metricsCollector MetricsCollector
	logger           *Logger
	fs               fs.FileSystem
	syncWrites       bool
	maxRecordBytes   int
}

// Option configures Store construction behavior.
//
// Today options primarily exist to avoid exploding the API surface
// (e.g. codec-specific constructor variants).
type Option func(*options)

// WithCodec configures the codec used for encoding record payloads.
//
// If nil is passed, codec.Default is used. The codec must emit payloads
// without raw newlines; both built-in codecs do.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &docgo.BasicMetricsCollector{}
//	store, _ := docgo.Open(path, nil, docgo.WithMetricsCollector(metrics))
//	// ... use store ...
//	stats := metrics.GetStats()
//	fmt.Printf("Inserts: %d, Avg latency: %dns\n", stats.InsertCount, stats.InsertAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
//
// Example with JSON logging:
//
//	logger := docgo.NewJSONLogger(slog.LevelInfo)
//	store, _ := docgo.Open(path, nil, docgo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithSyncWrites forces an fsync after every log rewrite. Durable against
// power loss at a substantial latency cost; off by default.
func WithSyncWrites(sync bool) Option {
	return func(o *options) {
		o.syncWrites = sync
	}
}

// WithMaxRecordBytes bounds the size of a single log line. Loading a file
// with a longer line fails. Values <= 0 keep the default (16 MiB).
func WithMaxRecordBytes(n int) Option {
	return func(o *options) {
		o.maxRecordBytes = n
	}
}

// withFileSystem swaps the file system implementation. Used by tests to
// inject IO faults.
func withFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            nil,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
