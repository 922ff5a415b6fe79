// Package activations provides the activation functions used by the network.
//
// ApplyInPlace and ApplyDerivativeInPlace mutate their matrix argument; they
// are meant for intermediate buffers the caller owns exclusively. Softmax
// allocates its result and leaves the input untouched.
package activations

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/hslt0/Cs-Digit-Recognition-NN/internal/matrix"
)

// Activation is an activation function with derivative.
type Activation interface {
	// Activate computes f(x)
	Activate(x float64) float64

	// Derivative computes f'(x)
	Derivative(x float64) float64
}

// ReLU activation function.
type ReLU struct{}

// Activate computes max(0, x)
func (r ReLU) Activate(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// Derivative returns 1 if x > 0, else 0
func (r ReLU) Derivative(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

// ApplyInPlace replaces every element of m with act.Activate(element).
func ApplyInPlace(m *matrix.Matrix, act Activation) {
	data := m.RawData()
	for i, v := range data {
		data[i] = act.Activate(v)
	}
}

// ApplyDerivativeInPlace multiplies every element of delta by
// act.Derivative of the element at the same position in z.
// z and delta must have the same shape.
func ApplyDerivativeInPlace(z, delta *matrix.Matrix, act Activation) {
	zr, zc := z.Dims()
	dr, dc := delta.Dims()
	if zr != dr || zc != dc {
		panic(&matrix.ShapeError{Op: "activation derivative", A: [2]int{zr, zc}, B: [2]int{dr, dc}})
	}

	pre := z.RawData()
	d := delta.RawData()
	for i := range d {
		d[i] *= act.Derivative(pre[i])
	}
}

// ApplyReLU applies ReLU to m in place.
func ApplyReLU(m *matrix.Matrix) {
	ApplyInPlace(m, ReLU{})
}

// ApplyReLUDerivative multiplies delta in place by ReLU'(z).
func ApplyReLUDerivative(z, delta *matrix.Matrix) {
	ApplyDerivativeInPlace(z, delta, ReLU{})
}

// Softmax returns exp(x) / sum(exp(x)) as a new slice.
// The maximum is subtracted first so large inputs do not overflow.
func Softmax(x []float64) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}

	// Find max for numerical stability
	maxVal := floats.Max(x)

	for i, v := range x {
		out[i] = math.Exp(v - maxVal)
	}

	// Normalize
	floats.Scale(1/floats.Sum(out), out)
	return out
}
