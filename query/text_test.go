package query

import (
	"testing"

	"github.com/hupe1980/docgo/document"
)

func TestMatchText(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		text   string
		doc    document.Document
		want   bool
	}{
		{
			name:   "whole word match",
			fields: []string{"bio"},
			text:   "cat",
			doc:    document.Document{"bio": document.String("a cat sat")},
			want:   true,
		},
		{
			name:   "prefix is not a word",
			fields: []string{"bio"},
			text:   "ca",
			doc:    document.Document{"bio": document.String("a cat sat")},
			want:   false,
		},
		{
			name:   "case insensitive",
			fields: []string{"bio"},
			text:   "CAT",
			doc:    document.Document{"bio": document.String("a Cat sat")},
			want:   true,
		},
		{
			name:   "all words required",
			fields: []string{"bio"},
			text:   "cat dog",
			doc:    document.Document{"bio": document.String("a cat sat")},
			want:   false,
		},
		{
			name:   "words may come from different fields",
			fields: []string{"bio", "notes"},
			text:   "cat dog",
			doc: document.Document{
				"bio":   document.String("a cat sat"),
				"notes": document.String("walks the dog"),
			},
			want: true,
		},
		{
			name:   "non-string fields are ignored",
			fields: []string{"bio"},
			text:   "cat",
			doc:    document.Document{"bio": document.Int(7)},
			want:   false,
		},
		{
			name:   "no configured fields",
			fields: nil,
			text:   "cat",
			doc:    document.Document{"bio": document.String("a cat sat")},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(tt.fields...)
			got := e.Matches(Query{Text: tt.text}, tt.doc)
			if got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize("  The Quick\tbrown FOX ")
	want := []string{"the", "quick", "brown", "fox"}
	if len(got) != len(want) {
		t.Fatalf("tokenize() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, got[i], want[i])
		}
	}
}
