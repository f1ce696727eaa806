package docgo

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"golang.org/x/time/rate"
)

// CompressionType defines the compression algorithm used for backup streams.
type CompressionType uint8

const (
	// CompressionNone indicates no compression.
	CompressionNone CompressionType = 0
	// CompressionLZ4 indicates LZ4 stream compression (fast).
	CompressionLZ4 CompressionType = 1
	// CompressionZSTD indicates ZSTD stream compression (better ratio).
	CompressionZSTD CompressionType = 2
)

// BackupOptions contains options for Backup.
type BackupOptions struct {
	// Compression selects the stream compression. Default: CompressionNone.
	Compression CompressionType

	// CompressionLevel is the zstd level (1-22, default 3). Ignored for
	// other compression types.
	CompressionLevel int

	// RateLimitBytesPerSec throttles reading the log file, keeping a large
	// backup from starving concurrent readers. 0 means unlimited.
	RateLimitBytesPerSec int64
}

// RestoreOptions contains options for Restore.
type RestoreOptions struct {
	// Compression states how the stream was compressed. The stream does not
	// self-describe; the caller must pass the type used at backup time.
	Compression CompressionType
}

// Backup streams the raw log to w, optionally compressed and rate limited.
// It holds the write slot for its whole duration, so the stream is a
// consistent point-in-time copy of the log.
func (s *Store) Backup(ctx context.Context, w io.Writer, optFns ...func(o *BackupOptions)) error {
	start := time.Now()
	opts := BackupOptions{
		Compression:      CompressionNone,
		CompressionLevel: 3,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	n, err := s.backup(ctx, w, opts)
	s.metrics.RecordBackup(n, time.Since(start), err)
	s.logger.LogBackup(ctx, n, err)
	return err
}

func (s *Store) backup(ctx context.Context, w io.Writer, opts BackupOptions) (int64, error) {
	if err := s.writeSlot.Acquire(ctx, 1); err != nil {
		return 0, err
	}
	defer s.writeSlot.Release(1)

	dst := w
	var closeCompressor func() error

	switch opts.Compression {
	case CompressionNone:
	case CompressionLZ4:
		zw := lz4.NewWriter(dst)
		dst = zw
		closeCompressor = zw.Close
	case CompressionZSTD:
		level := zstd.EncoderLevelFromZstd(opts.CompressionLevel)
		zw, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(level))
		if err != nil {
			return 0, fmt.Errorf("failed to create compressor: %w", err)
		}
		dst = zw
		closeCompressor = zw.Close
	default:
		return 0, fmt.Errorf("unsupported compression type: %d", opts.Compression)
	}

	// Throttle the log-side bytes, not the compressed stream.
	if opts.RateLimitBytesPerSec > 0 {
		dst = &throttledWriter{
			w:       dst,
			ctx:     ctx,
			limiter: rate.NewLimiter(rate.Limit(opts.RateLimitBytesPerSec), int(opts.RateLimitBytesPerSec)),
		}
	}

	n, err := s.journal.WriteTo(ctx, dst)
	if closeCompressor != nil {
		if cerr := closeCompressor(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close compressor: %w", cerr)
		}
	}
	return n, err
}

// Restore replaces the entire log with the stream's content. The stream is
// decompressed and verified record by record before anything touches disk;
// a stream that does not decode as a log leaves the file unchanged.
func (s *Store) Restore(ctx context.Context, r io.Reader, optFns ...func(o *RestoreOptions)) error {
	start := time.Now()
	opts := RestoreOptions{
		Compression: CompressionNone,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	n, err := s.restore(ctx, r, opts)
	s.metrics.RecordRestore(n, time.Since(start), err)
	s.logger.LogRestore(ctx, n, err)
	return err
}

func (s *Store) restore(ctx context.Context, r io.Reader, opts RestoreOptions) (int64, error) {
	if err := s.writeSlot.Acquire(ctx, 1); err != nil {
		return 0, err
	}
	defer s.writeSlot.Release(1)

	switch opts.Compression {
	case CompressionNone:
	case CompressionLZ4:
		r = lz4.NewReader(r)
	case CompressionZSTD:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return 0, fmt.Errorf("failed to create decompressor: %w", err)
		}
		defer zr.Close()
		r = zr
	default:
		return 0, fmt.Errorf("unsupported compression type: %d", opts.Compression)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("failed to read backup stream: %w", err)
	}

	if err := s.journal.Verify(data); err != nil {
		return int64(len(data)), translateError(err)
	}
	if err := s.journal.Replace(data); err != nil {
		return int64(len(data)), translateError(err)
	}
	return int64(len(data)), nil
}

// throttledWriter limits the byte rate flowing through an io.Writer.
// Writes larger than the limiter burst are split so WaitN never fails
// on chunk size alone.
type throttledWriter struct {
	w       io.Writer
	ctx     context.Context
	limiter *rate.Limiter
}

func (t *throttledWriter) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		chunk := p
		if burst := t.limiter.Burst(); len(chunk) > burst {
			chunk = chunk[:burst]
		}
		if err := t.limiter.WaitN(t.ctx, len(chunk)); err != nil {
			return written, err
		}
		n, err := t.w.Write(chunk)
		written += n
		if err != nil {
			return written, err
		}
		p = p[n:]
	}
	return written, nil
}
