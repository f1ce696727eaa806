package document

import "testing"

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{
			name: "int match",
			a:    Int(10),
			b:    Int(10),
			want: true,
		},
		{
			name: "int no match",
			a:    Int(10),
			b:    Int(11),
			want: false,
		},
		{
			name: "int float cross kind",
			a:    Int(1),
			b:    Float(1.0),
			want: true,
		},
		{
			name: "float no match",
			a:    Float(1.5),
			b:    Float(2.5),
			want: false,
		},
		{
			name: "string match",
			a:    String("tech"),
			b:    String("tech"),
			want: true,
		},
		{
			name: "string no match",
			a:    String("tech"),
			b:    String("sports"),
			want: false,
		},
		{
			name: "bool match",
			a:    Bool(true),
			b:    Bool(true),
			want: true,
		},
		{
			name: "null matches null",
			a:    Null(),
			b:    Null(),
			want: true,
		},
		{
			name: "null never matches a value",
			a:    Null(),
			b:    Int(0),
			want: false,
		},
		{
			name: "mixed kinds",
			a:    String("1"),
			b:    Int(1),
			want: false,
		},
		{
			name: "array element wise",
			a:    Array([]Value{Int(1), String("a")}),
			b:    Array([]Value{Int(1), String("a")}),
			want: true,
		},
		{
			name: "array length mismatch",
			a:    Array([]Value{Int(1)}),
			b:    Array([]Value{Int(1), Int(2)}),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Equal(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Value
		want   int
		wantOK bool
	}{
		{
			name:   "int less",
			a:      Int(1),
			b:      Int(2),
			want:   -1,
			wantOK: true,
		},
		{
			name:   "int greater",
			a:      Int(3),
			b:      Int(2),
			want:   1,
			wantOK: true,
		},
		{
			name:   "int float cross kind",
			a:      Int(2),
			b:      Float(1.5),
			want:   1,
			wantOK: true,
		},
		{
			name:   "float equal",
			a:      Float(2.5),
			b:      Float(2.5),
			want:   0,
			wantOK: true,
		},
		{
			name:   "string lexicographic",
			a:      String("apple"),
			b:      String("banana"),
			want:   -1,
			wantOK: true,
		},
		{
			name:   "string equal",
			a:      String("x"),
			b:      String("x"),
			want:   0,
			wantOK: true,
		},
		{
			name:   "string vs number incomparable",
			a:      String("5"),
			b:      Int(3),
			wantOK: false,
		},
		{
			name:   "bool incomparable",
			a:      Bool(true),
			b:      Bool(false),
			wantOK: false,
		},
		{
			name:   "missing field incomparable",
			a:      Value{},
			b:      Int(1),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Compare(tt.a, tt.b)
			if ok != tt.wantOK {
				t.Fatalf("Compare() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDocumentID(t *testing.T) {
	tests := []struct {
		name   string
		doc    Document
		want   int64
		wantOK bool
	}{
		{
			name:   "integer id",
			doc:    Document{IDField: Int(42)},
			want:   42,
			wantOK: true,
		},
		{
			name:   "missing id",
			doc:    Document{"name": String("x")},
			wantOK: false,
		},
		{
			name:   "non integer id",
			doc:    Document{IDField: Float(1.0)},
			wantOK: false,
		},
		{
			name:   "nil document",
			doc:    nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.doc.ID()
			if ok != tt.wantOK {
				t.Fatalf("Document.ID() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Document.ID() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDocumentClone(t *testing.T) {
	orig := Document{
		"name": String("Ada"),
		"tags": Array([]Value{String("a"), String("b")}),
	}

	clone := orig.Clone()
	clone["name"] = String("Grace")
	clone["tags"].A[0] = String("z")

	if got := orig["name"].StringValue(); got != "Ada" {
		t.Errorf("original name mutated: %q", got)
	}
	if got := orig["tags"].A[0].StringValue(); got != "a" {
		t.Errorf("original array mutated: %q", got)
	}

	if (Document)(nil).Clone() != nil {
		t.Error("Clone of nil document should be nil")
	}
}

func TestValueAccessors(t *testing.T) {
	if v, ok := Int(7).AsInt64(); !ok || v != 7 {
		t.Errorf("AsInt64() = %d, %v", v, ok)
	}
	if _, ok := Int(7).AsFloat64(); ok {
		t.Error("AsFloat64() on int should not be ok")
	}
	if v, ok := Float(1.5).AsFloat64(); !ok || v != 1.5 {
		t.Errorf("AsFloat64() = %v, %v", v, ok)
	}
	if v, ok := String("x").AsString(); !ok || v != "x" {
		t.Errorf("AsString() = %q, %v", v, ok)
	}
	if String("x").StringValue() != "x" {
		t.Error("StringValue() mismatch")
	}
	if Int(1).StringValue() != "" {
		t.Error("StringValue() on non-string should be empty")
	}
	if v, ok := Bool(true).AsBool(); !ok || !v {
		t.Errorf("AsBool() = %v, %v", v, ok)
	}
	if a, ok := Array([]Value{Int(1)}).AsArray(); !ok || len(a) != 1 {
		t.Errorf("AsArray() = %v, %v", a, ok)
	}
	if Null().Kind != KindNull {
		t.Error("Null() kind mismatch")
	}
}
