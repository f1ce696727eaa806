package docgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/docgo/internal/journal"
)

var (
	// ErrNotFound is returned when no live document bears the requested identifier.
	ErrNotFound = errors.New("not found")

	// ErrMissingID is returned when a document lacks an integer identifier field.
	ErrMissingID = errors.New("missing or non-integer _id field")

	// ErrInvalidTextField is returned when a configured full-text field name is unusable.
	ErrInvalidTextField = errors.New("invalid text field")
)

// ErrMalformedLine indicates a log line without a recognizable record tag.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrMalformedLine struct {
	Line  int
	cause error
}

func (e *ErrMalformedLine) Error() string {
	return fmt.Sprintf("malformed line %d: missing record tag", e.Line)
}

func (e *ErrMalformedLine) Unwrap() error { return e.cause }

// ErrCorruptRecord indicates a log line whose payload could not be decoded.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrCorruptRecord struct {
	Line  int
	cause error
}

func (e *ErrCorruptRecord) Error() string {
	return fmt.Sprintf("corrupt record at line %d", e.Line)
}

func (e *ErrCorruptRecord) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var ml *journal.ErrMalformedLine
	if errors.As(err, &ml) {
		return &ErrMalformedLine{Line: ml.Line, cause: err}
	}

	var cr *journal.ErrCorruptRecord
	if errors.As(err, &cr) {
		return &ErrCorruptRecord{Line: cr.Line, cause: err}
	}

	return err
}
