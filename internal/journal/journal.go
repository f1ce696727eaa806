// Package journal owns the on-disk log file: one record per line, tagged
// live or tombstoned, appended in chronological order.
//
// The file is the whole store. Every read loads the full log into memory;
// every mutation is a load-flip-rewrite cycle that reproduces existing
// lines verbatim (except tombstone flips) and adds new lines at the end.
// A failed rewrite can leave the file truncated; there is no atomic-rename
// commit. Callers serialize mutations; the journal itself holds no lock.
package journal

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/docgo/codec"
	"github.com/hupe1980/docgo/document"
	"github.com/hupe1980/docgo/internal/fs"
)

// Options configures a Journal.
type Options struct {
	// FS is the file system implementation. Defaults to the local file system.
	FS fs.FileSystem

	// Codec encodes record payloads. Defaults to codec.Default.
	Codec codec.Codec

	// MaxRecordBytes bounds a single encoded line. Longer lines fail the load.
	MaxRecordBytes int

	// SyncWrites forces an fsync after every rewrite.
	SyncWrites bool
}

// DefaultOptions provides sensible defaults.
var DefaultOptions = Options{
	FS:             nil,
	Codec:          nil,
	MaxRecordBytes: 16 << 20, // 16 MiB
	SyncWrites:     false,
}

// Journal reads and rewrites one log file.
type Journal struct {
	path           string
	fs             fs.FileSystem
	codec          codec.Codec
	maxRecordBytes int
	syncWrites     bool
}

// New creates a journal for the given path.
func New(path string, optFns ...func(o *Options)) *Journal {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.FS == nil {
		opts.FS = fs.Default
	}
	if opts.Codec == nil {
		opts.Codec = codec.Default
	}
	if opts.MaxRecordBytes <= 0 {
		opts.MaxRecordBytes = DefaultOptions.MaxRecordBytes
	}

	return &Journal{
		path:           path,
		fs:             opts.FS,
		codec:          opts.Codec,
		maxRecordBytes: opts.MaxRecordBytes,
		syncWrites:     opts.SyncWrites,
	}
}

// Bootstrap creates the log file if it does not exist yet. Existing content
// is left untouched.
func (j *Journal) Bootstrap() error {
	f, err := j.fs.OpenFile(j.path, os.O_WRONLY|os.O_CREATE, 0600)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}

// ReadAll loads the entire log in file order. Empty lines are tolerated and
// skipped; any undecodable line fails the whole load.
func (j *Journal) ReadAll() ([]Record, error) {
	f, err := j.fs.OpenFile(j.path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	records, err := j.decodeAll(f)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (j *Journal) decodeAll(r io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(r)
	// The scanner caps tokens at max(cap(buf), maxRecordBytes), so the
	// initial buffer must not exceed the configured bound.
	initial := 64 << 10
	if initial > j.maxRecordBytes {
		initial = j.maxRecordBytes
	}
	sc.Buffer(make([]byte, initial), j.maxRecordBytes)

	var records []Record
	lineno := 0
	for sc.Scan() {
		lineno++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		rec, err := decodeLine(j.codec, raw, lineno)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}
	return records, nil
}

// Live materializes the current state: live records only, deduplicated by
// identifier with the last occurrence winning. Records without an integer
// identifier are never deduplicated.
func (j *Journal) Live() ([]document.Document, error) {
	records, err := j.ReadAll()
	if err != nil {
		return nil, err
	}

	last := make(map[int64]int, len(records))
	for i := range records {
		if id, ok := records[i].Doc.ID(); ok {
			last[id] = i
		}
	}

	docs := make([]document.Document, 0, len(records))
	for i := range records {
		if !records[i].Exists {
			continue
		}
		if id, ok := records[i].Doc.ID(); ok && last[id] != i {
			continue
		}
		docs = append(docs, records[i].Doc)
	}
	return docs, nil
}

// Append runs one load-flip-rewrite cycle: existing records whose identifier
// is in deleted have their liveness flipped to tombstoned (payload bytes
// preserved), the new records' lines go at the end, and the whole file is
// rewritten. deleted may be nil.
func (j *Journal) Append(records []Record, deleted *roaring64.Bitmap) error {
	existing, err := j.ReadAll()
	if err != nil {
		return err
	}

	if deleted != nil && !deleted.IsEmpty() {
		for i := range existing {
			if !existing[i].Exists {
				continue
			}
			if id, ok := existing[i].Doc.ID(); ok && deleted.Contains(uint64(id)) {
				existing[i].Exists = false
			}
		}
	}

	existing = append(existing, records...)
	return j.rewrite(existing)
}

func (j *Journal) rewrite(records []Record) error {
	f, err := j.fs.OpenFile(j.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open log file for rewrite: %w", err)
	}

	bw := bufio.NewWriter(f)
	for i := range records {
		line, err := records[i].encode(j.codec)
		if err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to encode record: %w", err)
		}
		if _, err := bw.Write(line); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to write log file: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write log file: %w", err)
	}

	return j.finishWrite(f)
}

func (j *Journal) finishWrite(f fs.File) error {
	if j.syncWrites {
		if err := f.Sync(); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to sync log file: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}

// WriteTo streams the raw log bytes to w, checking ctx between chunks.
func (j *Journal) WriteTo(ctx context.Context, w io.Writer) (int64, error) {
	f, err := j.fs.OpenFile(j.path, os.O_RDONLY, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	buf := make([]byte, 32<<10)
	var written int64
	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		n, rerr := f.Read(buf)
		if n > 0 {
			wn, werr := w.Write(buf[:n])
			written += int64(wn)
			if werr != nil {
				return written, werr
			}
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, fmt.Errorf("failed to read log file: %w", rerr)
		}
	}
}

// Verify checks that data is a decodable log without touching the file.
func (j *Journal) Verify(data []byte) error {
	_, err := j.decodeAll(bytes.NewReader(data))
	return err
}

// Replace overwrites the log file with the given raw bytes.
func (j *Journal) Replace(data []byte) error {
	f, err := j.fs.OpenFile(j.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open log file for rewrite: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write log file: %w", err)
	}
	return j.finishWrite(f)
}

// Stats summarizes the log in a single pass.
type Stats struct {
	LiveDocuments int
	TotalRecords  int
	Tombstones    int
	FileSizeBytes int64
}

// Stat computes log statistics.
func (j *Journal) Stat() (Stats, error) {
	records, err := j.ReadAll()
	if err != nil {
		return Stats{}, err
	}

	var s Stats
	s.TotalRecords = len(records)

	last := make(map[int64]int, len(records))
	for i := range records {
		if id, ok := records[i].Doc.ID(); ok {
			last[id] = i
		}
	}
	for i := range records {
		if !records[i].Exists {
			s.Tombstones++
			continue
		}
		if id, ok := records[i].Doc.ID(); ok && last[id] != i {
			continue
		}
		s.LiveDocuments++
	}

	info, err := j.fs.Stat(j.path)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to stat log file: %w", err)
	}
	s.FileSizeBytes = info.Size()
	return s, nil
}
