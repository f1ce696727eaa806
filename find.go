package docgo

import (
	"context"
	"time"

	"github.com/hupe1980/docgo/document"
	"github.com/hupe1980/docgo/query"
)

// FindOptions contains options for Find.
type FindOptions struct {
	// Sort orders the result. The first field decides unless two documents
	// tie on it; later fields break ties in turn.
	Sort []query.SortField

	// Projection keeps only the named fields in each result document.
	// Empty returns full documents.
	Projection []string

	// Deleted is reserved for a future view over tombstoned records.
	// It is currently ignored; queries never return deleted documents.
	Deleted bool
}

// Find returns the live documents matching q, sorted and projected per the
// options. Find never blocks behind mutations; it may observe the
// pre-rewrite state of an in-flight write.
func (s *Store) Find(ctx context.Context, q query.Query, optFns ...func(o *FindOptions)) ([]document.Document, error) {
	start := time.Now()
	opts := FindOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	docs, err := s.find(q, opts)
	s.metrics.RecordFind(len(docs), time.Since(start), err)
	s.logger.LogFind(ctx, len(docs), err)
	return docs, err
}

func (s *Store) find(q query.Query, opts FindOptions) ([]document.Document, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	docs, err := s.journal.Live()
	if err != nil {
		return nil, translateError(err)
	}

	docs = s.engine.Filter(q, docs)
	query.Sort(docs, opts.Sort)
	return query.Project(docs, opts.Projection), nil
}
