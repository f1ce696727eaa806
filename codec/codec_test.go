package codec

import (
	"testing"

	"github.com/hupe1980/docgo/document"
)

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		if !ok {
			t.Fatalf("ByName(%q) not found", name)
		}
		if c.Name() != name {
			t.Errorf("Name() = %q, want %q", c.Name(), name)
		}
	}

	if _, ok := ByName("msgpack"); ok {
		t.Error("unknown codec should not resolve")
	}
}

func TestCodecsAgreeOnDocuments(t *testing.T) {
	doc := document.Document{
		"_id":  document.Int(1),
		"name": document.String("Ada"),
		"year": document.Float(1815),
	}

	std := MustMarshal(JSON{}, doc)
	fast := MustMarshal(GoJSON{}, doc)
	if string(std) != string(fast) {
		t.Fatalf("codecs disagree: %s vs %s", std, fast)
	}

	var got document.Document
	if err := Default.Unmarshal(fast, &got); err != nil {
		t.Fatal(err)
	}
	if !document.Equal(got["name"], document.String("Ada")) {
		t.Errorf("round trip = %+v", got)
	}
	if got["year"].Kind != document.KindFloat {
		t.Errorf("year kind = %v, want KindFloat", got["year"].Kind)
	}
}
