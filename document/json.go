package document

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	gojson "github.com/goccy/go-json"
)

// Documents and Values marshal to plain JSON object notation, not a
// kind-tagged envelope: {"_id":1,"name":"x"}. The encoding is deterministic
// (sorted keys, fixed number formats) and kind-preserving: floats always
// carry a fraction or exponent so that 3.0 survives a round trip as a float,
// and integer literals decode back to KindInt. String escaping guarantees
// the output never contains a raw newline.

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.appendJSON(nil)
}

func (v Value) appendJSON(dst []byte) ([]byte, error) {
	switch v.Kind {
	case KindNull:
		return append(dst, "null"...), nil
	case KindInt:
		return strconv.AppendInt(dst, v.I64, 10), nil
	case KindFloat:
		if math.IsNaN(v.F64) || math.IsInf(v.F64, 0) {
			return nil, fmt.Errorf("cannot encode %v as a JSON number", v.F64)
		}
		start := len(dst)
		dst = strconv.AppendFloat(dst, v.F64, 'g', -1, 64)
		if !bytes.ContainsAny(dst[start:], ".eE") {
			// Keep the float kind visible in the encoded form.
			dst = append(dst, '.', '0')
		}
		return dst, nil
	case KindString:
		b, err := gojson.Marshal(v.s.Value())
		if err != nil {
			return nil, err
		}
		return append(dst, b...), nil
	case KindBool:
		if v.B {
			return append(dst, "true"...), nil
		}
		return append(dst, "false"...), nil
	case KindArray:
		dst = append(dst, '[')
		for i := range v.A {
			if i > 0 {
				dst = append(dst, ',')
			}
			var err error
			dst, err = v.A[i].appendJSON(dst)
			if err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil
	default:
		return nil, errors.New("cannot encode invalid value")
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty value")
	}

	switch data[0] {
	case 'n':
		if string(data) != "null" {
			return fmt.Errorf("invalid value %q", data)
		}
		*v = Null()
		return nil
	case 't', 'f':
		switch string(data) {
		case "true":
			*v = Bool(true)
		case "false":
			*v = Bool(false)
		default:
			return fmt.Errorf("invalid value %q", data)
		}
		return nil
	case '"':
		var s string
		if err := gojson.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = String(s)
		return nil
	case '[':
		var elems []gojson.RawMessage
		if err := gojson.Unmarshal(data, &elems); err != nil {
			return err
		}
		arr := make([]Value, len(elems))
		for i := range elems {
			if err := arr[i].UnmarshalJSON(elems[i]); err != nil {
				return err
			}
		}
		*v = Array(arr)
		return nil
	case '{':
		return errors.New("object values are not supported")
	default:
		return v.unmarshalNumber(string(data))
	}
}

// unmarshalNumber decides KindInt vs KindFloat from the literal form:
// a fraction or exponent makes it a float, anything else an integer.
func (v *Value) unmarshalNumber(lit string) error {
	if bytes.ContainsAny([]byte(lit), ".eE") {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", lit)
		}
		*v = Float(f)
		return nil
	}

	i, err := strconv.ParseInt(lit, 10, 64)
	if err == nil {
		*v = Int(i)
		return nil
	}
	// Integer literals beyond int64 range fall back to float.
	if errors.Is(err, strconv.ErrRange) {
		f, ferr := strconv.ParseFloat(lit, 64)
		if ferr == nil {
			*v = Float(f)
			return nil
		}
	}
	return fmt.Errorf("invalid number %q", lit)
}

// MarshalJSON implements json.Marshaler. Keys are emitted in sorted order so
// the encoded form is deterministic.
func (d Document) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	dst := make([]byte, 0, 16+len(d)*16)
	dst = append(dst, '{')
	for i, k := range keys {
		if i > 0 {
			dst = append(dst, ',')
		}
		kb, err := gojson.Marshal(k)
		if err != nil {
			return nil, err
		}
		dst = append(dst, kb...)
		dst = append(dst, ':')
		dst, err = d[k].appendJSON(dst)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
	}
	return append(dst, '}'), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]gojson.RawMessage
	if err := gojson.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return errors.New("expected a JSON object")
	}

	out := make(Document, len(raw))
	for k, rv := range raw {
		var v Value
		if err := v.UnmarshalJSON(rv); err != nil {
			return fmt.Errorf("field %q: %w", k, err)
		}
		out[k] = v
	}
	*d = out
	return nil
}
