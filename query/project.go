package query

import "github.com/hupe1980/docgo/document"

// Project reduces each document to the named fields only. Fields a document
// does not carry are simply omitted. An empty field list returns the input
// unchanged: full entities.
func Project(docs []document.Document, fields []string) []document.Document {
	if len(fields) == 0 {
		return docs
	}

	out := make([]document.Document, len(docs))
	for i, d := range docs {
		p := make(document.Document, len(fields))
		for _, f := range fields {
			if v, ok := d[f]; ok {
				p[f] = v
			}
		}
		out[i] = p
	}
	return out
}
