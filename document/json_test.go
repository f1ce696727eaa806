package document

import (
	"math"
	"strings"
	"testing"
)

func TestValueJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		wantJSON string
	}{
		{
			name:     "int",
			value:    Int(42),
			wantJSON: "42",
		},
		{
			name:     "negative int",
			value:    Int(-7),
			wantJSON: "-7",
		},
		{
			name:     "integral float keeps fraction",
			value:    Float(3),
			wantJSON: "3.0",
		},
		{
			name:     "fractional float",
			value:    Float(0.5),
			wantJSON: "0.5",
		},
		{
			name:     "string",
			value:    String("cat"),
			wantJSON: `"cat"`,
		},
		{
			name:     "string with newline is escaped",
			value:    String("a\nb"),
			wantJSON: `"a\nb"`,
		},
		{
			name:     "bool",
			value:    Bool(true),
			wantJSON: "true",
		},
		{
			name:     "null",
			value:    Null(),
			wantJSON: "null",
		},
		{
			name:     "array",
			value:    Array([]Value{Int(1), Float(2), String("x")}),
			wantJSON: `[1,2.0,"x"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.value.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() error = %v", err)
			}
			if string(data) != tt.wantJSON {
				t.Fatalf("MarshalJSON() = %s, want %s", data, tt.wantJSON)
			}

			var got Value
			if err := got.UnmarshalJSON(data); err != nil {
				t.Fatalf("UnmarshalJSON() error = %v", err)
			}
			if got.Kind != tt.value.Kind {
				t.Errorf("round trip kind = %v, want %v", got.Kind, tt.value.Kind)
			}
			if !Equal(got, tt.value) {
				t.Errorf("round trip value = %+v, want %+v", got, tt.value)
			}
		})
	}
}

func TestValueJSONNumberKinds(t *testing.T) {
	var v Value
	if err := v.UnmarshalJSON([]byte("3")); err != nil {
		t.Fatal(err)
	}
	if v.Kind != KindInt {
		t.Errorf("literal 3 decoded as %v, want KindInt", v.Kind)
	}

	if err := v.UnmarshalJSON([]byte("3.0")); err != nil {
		t.Fatal(err)
	}
	if v.Kind != KindFloat {
		t.Errorf("literal 3.0 decoded as %v, want KindFloat", v.Kind)
	}

	if err := v.UnmarshalJSON([]byte("1e3")); err != nil {
		t.Fatal(err)
	}
	if v.Kind != KindFloat || v.F64 != 1000 {
		t.Errorf("literal 1e3 decoded as %+v, want Float(1000)", v)
	}

	// Beyond int64 range the integer literal falls back to float.
	if err := v.UnmarshalJSON([]byte("99999999999999999999")); err != nil {
		t.Fatal(err)
	}
	if v.Kind != KindFloat {
		t.Errorf("oversized literal decoded as %v, want KindFloat", v.Kind)
	}
}

func TestValueJSONErrors(t *testing.T) {
	if _, err := Float(math.NaN()).MarshalJSON(); err == nil {
		t.Error("NaN should not encode")
	}
	if _, err := Float(math.Inf(1)).MarshalJSON(); err == nil {
		t.Error("Inf should not encode")
	}
	if _, err := (Value{}).MarshalJSON(); err == nil {
		t.Error("invalid value should not encode")
	}

	var v Value
	if err := v.UnmarshalJSON([]byte(`{"a":1}`)); err == nil {
		t.Error("object values should be rejected")
	}
	if err := v.UnmarshalJSON([]byte("t")); err == nil {
		t.Error("bare t should be rejected")
	}
	if err := v.UnmarshalJSON([]byte("nul")); err == nil {
		t.Error("truncated null should be rejected")
	}
	if err := v.UnmarshalJSON([]byte("1x")); err == nil {
		t.Error("invalid number should be rejected")
	}
}

func TestDocumentJSONDeterministic(t *testing.T) {
	doc := Document{
		"b":     Int(2),
		"a":     Int(1),
		IDField: Int(9),
	}

	data, err := doc.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"_id":9,"a":1,"b":2}`
	if string(data) != want {
		t.Errorf("MarshalJSON() = %s, want %s", data, want)
	}

	var got Document
	if err := got.UnmarshalJSON(data); err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || !Equal(got["a"], Int(1)) || !Equal(got["b"], Int(2)) {
		t.Errorf("round trip = %+v", got)
	}
	if id, ok := got.ID(); !ok || id != 9 {
		t.Errorf("round trip id = %d, %v", id, ok)
	}
}

func TestDocumentJSONNoRawNewline(t *testing.T) {
	doc := Document{"note": String("line one\nline two")}
	data, err := doc.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if strings.ContainsRune(string(data), '\n') {
		t.Errorf("encoded document contains a raw newline: %s", data)
	}
}

func TestDocumentJSONRejectsNonObjects(t *testing.T) {
	for _, payload := range []string{"null", "[1,2]", `"x"`, `{"a":{"b":1}}`} {
		var d Document
		if err := d.UnmarshalJSON([]byte(payload)); err == nil {
			t.Errorf("payload %s should be rejected", payload)
		}
	}
}
