package docgo

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"golang.org/x/sync/semaphore"

	"github.com/hupe1980/docgo/document"
	"github.com/hupe1980/docgo/internal/journal"
	"github.com/hupe1980/docgo/query"
)

// Store is an embedded document database backed by a single append-only log file.
type Store struct {
	journal    *journal.Journal
	engine     *query.Engine
	writeSlot  *semaphore.Weighted
	metrics    MetricsCollector
	logger     *Logger
	path       string
	textFields []string
}

// Open opens the store at path, creating the log file if it does not exist.
// textFields names the string fields scanned by $text queries; it may be
// empty, in which case text queries never match.
func Open(path string, textFields []string, optFns ...Option) (*Store, error) {
	o := applyOptions(optFns)

	for _, f := range textFields {
		if f == "" || strings.HasPrefix(f, "$") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTextField, f)
		}
	}

	j := journal.New(path, func(jo *journal.Options) {
		jo.FS = o.fs
		jo.Codec = o.codec
		jo.MaxRecordBytes = o.maxRecordBytes
		jo.SyncWrites = o.syncWrites
	})
	if err := j.Bootstrap(); err != nil {
		return nil, fmt.Errorf("docgo: %w", err)
	}

	return &Store{
		journal:    j,
		engine:     query.NewEngine(textFields...),
		writeSlot:  semaphore.NewWeighted(1),
		metrics:    o.metricsCollector,
		logger:     o.logger,
		path:       path,
		textFields: slices.Clone(textFields),
	}, nil
}

// Path returns the log file path this store operates on.
func (s *Store) Path() string {
	return s.path
}

// Insert appends doc as a new live record. The document must carry an integer
// identifier; no duplicate check is performed, a later record with the same
// identifier supersedes earlier ones in query results.
func (s *Store) Insert(ctx context.Context, doc document.Document) error {
	start := time.Now()
	err := s.insert(ctx, doc)
	id, _ := doc.ID()
	s.metrics.RecordInsert(time.Since(start), err)
	s.logger.LogInsert(ctx, id, err)
	return err
}

func (s *Store) insert(ctx context.Context, doc document.Document) error {
	if _, ok := doc.ID(); !ok {
		return ErrMissingID
	}

	if err := s.writeSlot.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.writeSlot.Release(1)

	rec := journal.Record{Doc: doc, Exists: true}
	return translateError(s.journal.Append([]journal.Record{rec}, nil))
}

// Delete tombstones every live record matching q. A query matching nothing
// leaves the file untouched, so deletes are idempotent.
func (s *Store) Delete(ctx context.Context, q query.Query) error {
	start := time.Now()
	deleted, err := s.deleteMatching(ctx, q)
	s.metrics.RecordDelete(time.Since(start), err)
	s.logger.LogDelete(ctx, deleted, err)
	return err
}

func (s *Store) deleteMatching(ctx context.Context, q query.Query) (int, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}

	if err := s.writeSlot.Acquire(ctx, 1); err != nil {
		return 0, err
	}
	defer s.writeSlot.Release(1)

	docs, err := s.journal.Live()
	if err != nil {
		return 0, translateError(err)
	}

	matched := roaring64.New()
	for _, d := range s.engine.Filter(q, docs) {
		if id, ok := d.ID(); ok {
			matched.Add(uint64(id))
		}
	}
	if matched.IsEmpty() {
		return 0, nil
	}

	if err := s.journal.Append(nil, matched); err != nil {
		return 0, translateError(err)
	}
	return int(matched.GetCardinality()), nil
}

// Update replaces the live document bearing doc's identifier: the old record
// is tombstoned and the new one appended in a single rewrite. Returns
// ErrNotFound if no live record bears the identifier.
func (s *Store) Update(ctx context.Context, doc document.Document) error {
	start := time.Now()
	err := s.update(ctx, doc)
	id, _ := doc.ID()
	s.metrics.RecordUpdate(time.Since(start), err)
	s.logger.LogUpdate(ctx, id, err)
	return err
}

func (s *Store) update(ctx context.Context, doc document.Document) error {
	id, ok := doc.ID()
	if !ok {
		return ErrMissingID
	}

	if err := s.writeSlot.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.writeSlot.Release(1)

	docs, err := s.journal.Live()
	if err != nil {
		return translateError(err)
	}

	found := false
	for _, d := range docs {
		if existing, ok := d.ID(); ok && existing == id {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	deleted := roaring64.New()
	deleted.Add(uint64(id))
	rec := journal.Record{Doc: doc, Exists: true}
	return translateError(s.journal.Append([]journal.Record{rec}, deleted))
}

// Stats describes the current log.
type Stats struct {
	// LiveDocuments is the number of documents queries can see.
	LiveDocuments int

	// TotalRecords counts every line, including tombstones and superseded
	// duplicates.
	TotalRecords int

	// Tombstones counts deleted records still present in the file.
	Tombstones int

	// FileSizeBytes is the log file size on disk.
	FileSizeBytes int64
}

// Stats scans the log and summarizes it. It runs outside the write slot and
// may observe the pre-rewrite state of an in-flight mutation.
func (s *Store) Stats() (Stats, error) {
	js, err := s.journal.Stat()
	if err != nil {
		return Stats{}, translateError(err)
	}
	return Stats{
		LiveDocuments: js.LiveDocuments,
		TotalRecords:  js.TotalRecords,
		Tombstones:    js.Tombstones,
		FileSizeBytes: js.FileSizeBytes,
	}, nil
}
