package journal

import (
	"bytes"
	"errors"

	"github.com/hupe1980/docgo/codec"
	"github.com/hupe1980/docgo/document"
)

// Line tags. Every non-empty log line starts with exactly one of these.
const (
	tagLive      = 'E'
	tagTombstone = 'D'
)

// Record is one stored entity plus its liveness bit. A record occupies
// exactly one line of the log file.
type Record struct {
	Doc    document.Document
	Exists bool

	// payload holds the encoded form the record was read with. Rewrites
	// reproduce it verbatim so a tombstone flip changes only the tag byte.
	payload []byte
}

// encode renders the record as a tagged, newline-terminated log line.
func (r *Record) encode(c codec.Codec) ([]byte, error) {
	payload := r.payload
	if payload == nil {
		var err error
		payload, err = c.Marshal(r.Doc)
		if err != nil {
			return nil, err
		}
	}
	if bytes.IndexByte(payload, '\n') >= 0 {
		return nil, errors.New("record payload contains a raw newline")
	}

	line := make([]byte, 0, len(payload)+2)
	if r.Exists {
		line = append(line, tagLive)
	} else {
		line = append(line, tagTombstone)
	}
	line = append(line, payload...)
	return append(line, '\n'), nil
}

// decodeLine parses one non-empty log line. lineno is 1-based and counts
// every physical line, including skipped empty ones.
func decodeLine(c codec.Codec, raw []byte, lineno int) (Record, error) {
	var exists bool
	switch raw[0] {
	case tagLive:
		exists = true
	case tagTombstone:
		exists = false
	default:
		return Record{}, &ErrMalformedLine{Line: lineno}
	}

	// The scanner reuses its buffer; the payload must be an owned copy.
	payload := make([]byte, len(raw)-1)
	copy(payload, raw[1:])

	var doc document.Document
	if err := c.Unmarshal(payload, &doc); err != nil {
		return Record{}, &ErrCorruptRecord{Line: lineno, cause: err}
	}

	return Record{Doc: doc, Exists: exists, payload: payload}, nil
}
