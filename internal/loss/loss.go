// Package loss provides the classification loss used by the network.
package loss

import (
	"fmt"
	"math"

	"github.com/hslt0/Cs-Digit-Recognition-NN/internal/matrix"
)

// Epsilon keeps log away from zero when a predicted probability vanishes.
const Epsilon = 1e-12

// CrossEntropy is categorical cross-entropy over a probability vector.
//
// Backward returns the gradient with respect to the logits that produced
// yPred through softmax, not with respect to yPred itself. The pair is only
// valid when the output layer is softmax.
type CrossEntropy struct{}

// Forward computes cross entropy: -sum(y_true * log(y_pred + eps))
func (c CrossEntropy) Forward(yPred, yTrue []float64) float64 {
	checkLen(yPred, yTrue)

	var sum float64
	for i, p := range yPred {
		sum -= yTrue[i] * math.Log(p+Epsilon)
	}
	return sum
}

// Backward computes gradient for cross entropy with softmax.
// For cross entropy + softmax, gradient simplifies to (y_pred - y_true).
func (c CrossEntropy) Backward(yPred, yTrue []float64) []float64 {
	grad := make([]float64, len(yPred))
	c.BackwardInPlace(yPred, yTrue, grad)
	return grad
}

// BackwardInPlace computes gradient and stores it in the grad slice.
func (c CrossEntropy) BackwardInPlace(yPred, yTrue, grad []float64) {
	checkLen(yPred, yTrue)
	checkLen(yPred, grad)

	for i := range yPred {
		grad[i] = yPred[i] - yTrue[i]
	}
}

func checkLen(a, b []float64) {
	if len(a) != len(b) {
		panic(fmt.Errorf("%w: CrossEntropy: lengths %d and %d", matrix.ErrShapeMismatch, len(a), len(b)))
	}
}
