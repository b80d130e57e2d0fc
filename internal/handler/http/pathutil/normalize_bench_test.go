package pathutil

import (
	"fmt"
	"testing"
)

// BenchmarkNormalizePath benchmarks the path normalization function.
func BenchmarkNormalizePath(b *testing.B) {
	paths := []string{
		"/fit",
		"/fit/chart?format=svg",
		"/terms?start=298&end=495&step=30",
		"/terms/csv/",
		"/health",
		"/metrics",
		"/swagger/index.html",
		"/unknown/path/123",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		path := paths[i%len(paths)]
		_ = NormalizePath(path)
	}
}

// BenchmarkNormalizePath_Known benchmarks static routes (common case).
func BenchmarkNormalizePath_Known(b *testing.B) {
	path := "/terms"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = NormalizePath(path)
	}
}

// BenchmarkNormalizePath_WorstCase benchmarks a path that misses the route set
// and every pattern.
func BenchmarkNormalizePath_WorstCase(b *testing.B) {
	path := "/unknown/very/long/path/that/does/not/match/any/pattern/123"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = NormalizePath(path)
	}
}

// BenchmarkNormalizePath_CardinalityReduction shows how many labels scanner
// traffic produces with and without normalization.
func BenchmarkNormalizePath_CardinalityReduction(b *testing.B) {
	paths := make([]string, 10000)
	for i := 0; i < 10000; i++ {
		paths[i] = fmt.Sprintf("/probe/%d.php", i+1)
	}

	b.Run("raw_paths", func(b *testing.B) {
		uniquePaths := make(map[string]bool)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			uniquePaths[paths[i%len(paths)]] = true
		}
		b.StopTimer()
		b.Logf("Raw paths: %d unique paths", len(uniquePaths))
	})

	b.Run("normalized_paths", func(b *testing.B) {
		uniquePaths := make(map[string]bool)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			uniquePaths[NormalizePath(paths[i%len(paths)])] = true
		}
		b.StopTimer()
		b.Logf("Normalized paths: %d unique paths", len(uniquePaths))
	})
}
