package journal

import "fmt"

// ErrMalformedLine indicates a log line without a valid record tag.
type ErrMalformedLine struct {
	Line int
}

func (e *ErrMalformedLine) Error() string {
	return fmt.Sprintf("malformed line %d: missing record tag", e.Line)
}

// ErrCorruptRecord indicates a log line whose payload cannot be decoded.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrCorruptRecord struct {
	Line  int
	cause error
}

func (e *ErrCorruptRecord) Error() string {
	return fmt.Sprintf("corrupt record at line %d: %v", e.Line, e.cause)
}

func (e *ErrCorruptRecord) Unwrap() error { return e.cause }
