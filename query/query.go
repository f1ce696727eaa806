// Package query implements the store's query algebra: field predicates,
// boolean composition, full-text matching, sorting and projection.
//
// A Query is evaluated against typed documents in a fixed stage order, each
// stage narrowing the candidate set: And, then Or, then Text, then the plain
// field predicates in Where. The asymmetry between And and Or is part of the
// contract: And members are bare predicate conditions, while Or members are
// complete sub-queries matched recursively.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/docgo/document"
)

// ErrInvalidQuery is returned when a query fails boundary validation.
var ErrInvalidQuery = errors.New("invalid query")

// Operator represents a comparison operator for field predicates.
type Operator string

const (
	// OpEqual represents the equality operator.
	OpEqual Operator = "eq"
	// OpGreaterThan represents the greater than operator.
	OpGreaterThan Operator = "gt"
	// OpLessThan represents the less than operator.
	OpLessThan Operator = "lt"
	// OpIn represents the set membership operator.
	OpIn Operator = "in"
)

// Predicate is a single comparison applied to one field value.
type Predicate struct {
	Op    Operator
	Value document.Value
}

// Eq matches fields equal to v.
func Eq(v document.Value) Predicate { return Predicate{Op: OpEqual, Value: v} }

// Gt matches fields greater than v under the natural ordering of v's type.
func Gt(v document.Value) Predicate { return Predicate{Op: OpGreaterThan, Value: v} }

// Lt matches fields less than v under the natural ordering of v's type.
func Lt(v document.Value) Predicate { return Predicate{Op: OpLessThan, Value: v} }

// In matches fields equal to any member of vs.
func In(vs ...document.Value) Predicate {
	return Predicate{Op: OpIn, Value: document.Array(vs)}
}

// Condition is a conjunction of field predicates: every predicate must hold.
type Condition map[string]Predicate

// Query describes a filter over stored documents.
type Query struct {
	// Where holds the top-level plain field predicates (logical AND).
	Where Condition

	// And lists predicate-only sub-conditions that must all hold. Members
	// are deliberately bare Conditions: no nested boolean operators.
	And []Condition

	// Or lists sub-queries of which at least one must fully match. Members
	// are complete queries and are evaluated recursively.
	Or []Query

	// Text is a space-separated set of words that must all appear, as
	// whole words, in the store's configured text search fields.
	Text string
}

// Validate checks the query's structure at the boundary: field names must be
// non-empty and must not use the reserved operator prefix, operators must be
// known, and In operands must be arrays. Or members are validated recursively.
func (q Query) Validate() error {
	if err := validateCondition(q.Where); err != nil {
		return err
	}
	for _, c := range q.And {
		if err := validateCondition(c); err != nil {
			return err
		}
	}
	for _, sub := range q.Or {
		if err := sub.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func validateCondition(c Condition) error {
	for field, p := range c {
		if field == "" {
			return fmt.Errorf("%w: empty field name", ErrInvalidQuery)
		}
		if strings.HasPrefix(field, "$") {
			return fmt.Errorf("%w: reserved field name %q", ErrInvalidQuery, field)
		}
		switch p.Op {
		case OpEqual, OpGreaterThan, OpLessThan:
		case OpIn:
			if p.Value.Kind != document.KindArray {
				return fmt.Errorf("%w: in operand for %q must be an array", ErrInvalidQuery, field)
			}
		default:
			return fmt.Errorf("%w: unknown operator %q for field %q", ErrInvalidQuery, p.Op, field)
		}
	}
	return nil
}
