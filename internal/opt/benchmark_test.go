// Package opt provides benchmarks for the update rule.
package opt

import (
	"testing"
)

// BenchmarkSGDStepInPlace benchmarks an update of an input-to-hidden weight matrix.
func BenchmarkSGDStepInPlace(b *testing.B) {
	sgd := SGD{LearningRate: 0.01}
	params := make([]float64, 16*784)
	gradients := make([]float64, 16*784)
	for i := range gradients {
		gradients[i] = float64(i%7) * 0.001
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sgd.StepInPlace(params, gradients)
	}
}
