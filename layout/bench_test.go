package layout

import (
	"strings"
	"testing"
)

func benchmarkSolve(b *testing.B, words int) {
	base := strings.Fields("lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod tempor incididunt ut labore et dolore magna aliqua")
	ws := make([]string, words)
	for i := range ws {
		ws[i] = base[i%len(base)]
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Solve(ws, 60); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSolve50(b *testing.B)  { benchmarkSolve(b, 50) }
func BenchmarkSolve200(b *testing.B) { benchmarkSolve(b, 200) }
