package codec

import (
	"testing"

	"github.com/hupe1980/docgo/document"
)

func benchmarkCodecMarshal(b *testing.B, c Codec, v any) {
	b.Helper()
	b.ReportAllocs()

	warm, err := c.Marshal(v)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(warm)))

	var sink []byte
	b.ResetTimer()
	for b.Loop() {
		out, err := c.Marshal(v)
		if err != nil {
			b.Fatal(err)
		}
		sink = out
	}
	_ = sink
}

func benchmarkCodecUnmarshal[T any](b *testing.B, c Codec, data []byte, dst *T) {
	b.Helper()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	var v T
	b.ResetTimer()
	for b.Loop() {
		if err := c.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
	if dst != nil {
		*dst = v
	}
}

func benchDocument() document.Document {
	return document.Document{
		"_id":     document.Int(42),
		"tenant":  document.String("acme"),
		"rating":  document.Float(4.75),
		"active":  document.Bool(true),
		"tags":    document.Array([]document.Value{document.String("a"), document.String("b"), document.String("c")}),
		"numbers": document.Array([]document.Value{document.Int(1), document.Int(2), document.Int(3), document.Int(4)}),
	}
}

func BenchmarkCodec_Marshal_Document(b *testing.B) {
	d := benchDocument()

	b.Run("stdlib", func(b *testing.B) { benchmarkCodecMarshal(b, JSON{}, d) })
	b.Run("go-json", func(b *testing.B) { benchmarkCodecMarshal(b, GoJSON{}, d) })
}

func BenchmarkCodec_Unmarshal_Document(b *testing.B) {
	jsonData := MustMarshal(JSON{}, benchDocument())

	b.Run("stdlib", func(b *testing.B) {
		var sink document.Document
		benchmarkCodecUnmarshal(b, JSON{}, jsonData, &sink)
		_ = sink
	})
	b.Run("go-json", func(b *testing.B) {
		var sink document.Document
		benchmarkCodecUnmarshal(b, GoJSON{}, jsonData, &sink)
		_ = sink
	})
}
