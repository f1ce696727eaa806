package query

import (
	"slices"

	"github.com/hupe1980/docgo/document"
)

// SortDirection orders a sort field ascending or descending.
type SortDirection int

const (
	// Ascending sorts smallest first.
	Ascending SortDirection = 1
	// Descending sorts largest first.
	Descending SortDirection = -1
)

// SortField is one link of a tie-break chain: the field decides the order
// unless two documents tie on it, in which case the next field decides.
type SortField struct {
	Field     string
	Direction SortDirection
}

// Sort orders documents in place by the given tie-break chain. The sort is
// stable; documents that tie on every field keep their relative order.
// Incomparable or missing values count as a tie, never as an ordering.
func Sort(docs []document.Document, fields []SortField) {
	if len(fields) == 0 {
		return
	}

	slices.SortStableFunc(docs, func(a, b document.Document) int {
		for _, f := range fields {
			c, ok := document.Compare(a[f.Field], b[f.Field])
			if !ok || c == 0 {
				continue
			}
			if f.Direction == Descending {
				return -c
			}
			return c
		}
		return 0
	})
}
