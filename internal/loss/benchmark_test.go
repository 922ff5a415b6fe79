// Package loss provides benchmarks for loss functions.
package loss

import (
	"testing"
)

// BenchmarkCrossEntropyForward benchmarks loss over a 10-class output.
func BenchmarkCrossEntropyForward(b *testing.B) {
	ce := CrossEntropy{}
	yPred := []float64{0.05, 0.05, 0.1, 0.4, 0.1, 0.1, 0.05, 0.05, 0.05, 0.05}
	yTrue := []float64{0, 0, 0, 1, 0, 0, 0, 0, 0, 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ce.Forward(yPred, yTrue)
	}
}

// BenchmarkCrossEntropyBackwardInPlace benchmarks the allocation-free gradient.
func BenchmarkCrossEntropyBackwardInPlace(b *testing.B) {
	ce := CrossEntropy{}
	yPred := []float64{0.05, 0.05, 0.1, 0.4, 0.1, 0.1, 0.05, 0.05, 0.05, 0.05}
	yTrue := []float64{0, 0, 0, 1, 0, 0, 0, 0, 0, 0}
	grad := make([]float64, len(yPred))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ce.BackwardInPlace(yPred, yTrue, grad)
	}
}
