// Package docgo provides a minimal embedded document store for Go.
//
// Docgo keeps an entire database in one append-only log file. Each line is a
// record: a one-byte liveness tag ('E' live, 'D' tombstoned) followed by the
// document encoded as plain JSON. Every query loads the file and scans it in
// memory; every mutation rewrites the file in place. The format stays
// human-readable and diffable at the cost of O(n) work per operation, which
// makes the store a fit for small datasets, tooling state, and tests rather
// than high-volume serving.
//
// # Quick Start
//
//	ctx := context.Background()
//	store, err := docgo.Open("./data/docs.log", []string{"title", "body"})
//	if err != nil {
//	    panic(err)
//	}
//
//	err = store.Insert(ctx, document.Document{
//	    document.IDField: document.Int(1),
//	    "title":          document.String("Getting Started"),
//	    "year":           document.Int(2024),
//	})
//
//	results, err := store.Find(ctx, query.Query{
//	    Where: query.Condition{"year": query.Gt(document.Int(2020))},
//	})
//
// # Queries
//
// A query combines four conjunctive parts, all optional:
//
//	query.Query{
//	    Where: query.Condition{"status": query.Eq(document.String("open"))},
//	    And:   []query.Condition{{"age": query.Gt(document.Int(18))}},
//	    Or:    []query.Query{{Where: ...}, {Where: ...}},  // at least one must match
//	    Text:  "database embedded",                        // whole words, any configured field
//	}
//
// The zero Query matches every document. Find supports sorting with
// field-by-field tie-breaks and projection onto a field subset:
//
//	results, err := store.Find(ctx, q, func(o *docgo.FindOptions) {
//	    o.Sort = []query.SortField{{Field: "year", Direction: query.Descending}}
//	    o.Projection = []string{"_id", "title"}
//	})
//
// # Identity and Updates
//
// Documents carry an integer identifier in "_id". Insert never checks for
// duplicates; when several live records share an identifier, queries see only
// the latest one. Delete tombstones every matching record in place, Update
// replaces the record bearing the document's identifier.
//
// # Durability and Concurrency
//
// Mutations on a Store are strictly serialized (FIFO); reads are not and may
// observe the pre-rewrite state of an in-flight mutation. Rewrites are
// whole-file truncate-and-write without an atomic rename, so a crash mid
// rewrite can lose the tail of the log. WithSyncWrites adds an fsync per
// rewrite. There is no cross-process locking: one Store per file per process.
package docgo
