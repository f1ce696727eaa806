package document

import (
	"encoding/json"
	"math"
	"testing"
)

func TestFromAny(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    Value
		wantErr bool
	}{
		{
			name:  "nil",
			input: nil,
			want:  Null(),
		},
		{
			name:  "bool",
			input: true,
			want:  Bool(true),
		},
		{
			name:  "string",
			input: "hello",
			want:  String("hello"),
		},
		{
			name:  "int",
			input: 42,
			want:  Int(42),
		},
		{
			name:  "int64",
			input: int64(-5),
			want:  Int(-5),
		},
		{
			name:  "uint32",
			input: uint32(7),
			want:  Int(7),
		},
		{
			name:  "float64",
			input: 1.5,
			want:  Float(1.5),
		},
		{
			name:  "float32",
			input: float32(2),
			want:  Float(2),
		},
		{
			name:  "value passthrough",
			input: String("x"),
			want:  String("x"),
		},
		{
			name:  "json number integer",
			input: json.Number("3"),
			want:  Int(3),
		},
		{
			name:  "json number fraction",
			input: json.Number("3.5"),
			want:  Float(3.5),
		},
		{
			name:  "json number exponent",
			input: json.Number("1e2"),
			want:  Float(100),
		},
		{
			name:  "any slice",
			input: []any{1, "a", true},
			want:  Array([]Value{Int(1), String("a"), Bool(true)}),
		},
		{
			name:  "string slice",
			input: []string{"a", "b"},
			want:  Array([]Value{String("a"), String("b")}),
		},
		{
			name:  "int slice",
			input: []int{1, 2},
			want:  Array([]Value{Int(1), Int(2)}),
		},
		{
			name:  "float slice",
			input: []float64{0.5},
			want:  Array([]Value{Float(0.5)}),
		},
		{
			name:    "uint64 overflow",
			input:   uint64(math.MaxUint64),
			wantErr: true,
		},
		{
			name:    "nested map unsupported",
			input:   map[string]any{"a": 1},
			wantErr: true,
		},
		{
			name:    "invalid json number",
			input:   json.Number("abc"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromAny(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromAny() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !Equal(got, tt.want) {
				t.Errorf("FromAny() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDocumentFromAny(t *testing.T) {
	doc, err := DocumentFromAny(map[string]any{
		"_id":  1,
		"name": "Ada",
		"tags": []string{"math"},
	})
	if err != nil {
		t.Fatalf("DocumentFromAny() error = %v", err)
	}
	if id, ok := doc.ID(); !ok || id != 1 {
		t.Errorf("id = %d, %v", id, ok)
	}
	if !Equal(doc["name"], String("Ada")) {
		t.Errorf("name = %+v", doc["name"])
	}

	if _, err := DocumentFromAny(map[string]any{"bad": map[string]any{}}); err == nil {
		t.Error("nested map should be rejected")
	}
}
