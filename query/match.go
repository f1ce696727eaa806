package query

import (
	"strings"

	"github.com/hupe1980/docgo/document"
)

// Engine evaluates queries against documents. It carries the store's
// configured full-text search fields; everything else is stateless.
type Engine struct {
	textFields []string
}

// NewEngine creates a query engine with the given text search fields.
func NewEngine(textFields ...string) *Engine {
	return &Engine{textFields: textFields}
}

// Matches reports whether a single document satisfies the query. Stages are
// evaluated in the fixed order And, Or, Text, Where; all must pass.
func (e *Engine) Matches(q Query, doc document.Document) bool {
	for _, c := range q.And {
		if !matchCondition(c, doc) {
			return false
		}
	}

	if len(q.Or) > 0 {
		matched := false
		for _, sub := range q.Or {
			if e.Matches(sub, doc) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if q.Text != "" && !e.matchText(q.Text, doc) {
		return false
	}

	return matchCondition(q.Where, doc)
}

// Filter narrows a candidate set through the query's stages in order.
// The input slice is never mutated.
func (e *Engine) Filter(q Query, docs []document.Document) []document.Document {
	out := docs

	if len(q.And) > 0 {
		out = keep(out, func(d document.Document) bool {
			for _, c := range q.And {
				if !matchCondition(c, d) {
					return false
				}
			}
			return true
		})
	}

	if len(q.Or) > 0 {
		out = keep(out, func(d document.Document) bool {
			for _, sub := range q.Or {
				if e.Matches(sub, d) {
					return true
				}
			}
			return false
		})
	}

	if q.Text != "" {
		out = keep(out, func(d document.Document) bool {
			return e.matchText(q.Text, d)
		})
	}

	if len(q.Where) > 0 {
		out = keep(out, func(d document.Document) bool {
			return matchCondition(q.Where, d)
		})
	}

	return out
}

func keep(docs []document.Document, pred func(document.Document) bool) []document.Document {
	out := make([]document.Document, 0, len(docs))
	for _, d := range docs {
		if pred(d) {
			out = append(out, d)
		}
	}
	return out
}

func matchCondition(c Condition, doc document.Document) bool {
	for field, p := range c {
		// Reserved keys are never entity field names.
		if strings.HasPrefix(field, "$") {
			continue
		}
		value, exists := doc[field]
		if !exists {
			return false
		}
		if !matchPredicate(p, value) {
			return false
		}
	}
	return true
}

func matchPredicate(p Predicate, value document.Value) bool {
	switch p.Op {
	case OpEqual:
		return document.Equal(value, p.Value)
	case OpGreaterThan:
		c, ok := document.Compare(value, p.Value)
		return ok && c > 0
	case OpLessThan:
		c, ok := document.Compare(value, p.Value)
		return ok && c < 0
	case OpIn:
		if p.Value.Kind != document.KindArray {
			return false
		}
		for _, item := range p.Value.A {
			if document.Equal(value, item) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
