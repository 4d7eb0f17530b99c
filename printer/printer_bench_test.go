package printer

import (
	"strconv"
	"testing"

	"github.com/stateprinter/stateprinter/render"
)

// benchmarkGraph is a course with n students pointing back at it
func benchmarkGraph(n int) *Course {
	course := &Course{Members: make([]*Student, n)}
	for i := range course.Members {
		course.Members[i] = &Student{Name: "student-" + strconv.Itoa(i), Course: course}
	}
	return course
}

func benchmarkPrint(b *testing.B, format string, v any) {
	cfg := DefaultConfiguration()
	if err := cfg.SetRendererByName(format); err != nil {
		b.Fatal(err)
	}
	p := New(cfg)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := p.Print(v); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPrint_Curly(b *testing.B) {
	benchmarkPrint(b, render.CurlyName, benchmarkGraph(100))
}

func BenchmarkPrint_JSON(b *testing.B) {
	benchmarkPrint(b, render.JSONName, benchmarkGraph(100))
}

func BenchmarkPrint_XML(b *testing.B) {
	benchmarkPrint(b, render.XMLName, benchmarkGraph(100))
}

func BenchmarkPrint_Literal(b *testing.B) {
	benchmarkPrint(b, render.LiteralName, newCar())
}

func BenchmarkPrint_Dictionary(b *testing.B) {
	m := make(map[string]int, 1000)
	for i := 0; i < 1000; i++ {
		m["key-"+strconv.Itoa(i)] = i
	}
	benchmarkPrint(b, render.CurlyName, m)
}
