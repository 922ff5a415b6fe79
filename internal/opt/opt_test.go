// Package opt provides unit tests for the update rule.
package opt

import (
	"errors"
	"math"
	"testing"

	"github.com/hslt0/Cs-Digit-Recognition-NN/internal/matrix"
)

// TestSGDStepInPlace tests in-place SGD update.
func TestSGDStepInPlace(t *testing.T) {
	sgd := SGD{LearningRate: 0.1}

	params := []float64{1.0, 2.0, 3.0}
	gradients := []float64{0.1, 0.2, 0.3}

	sgd.StepInPlace(params, gradients)

	// params should be updated in-place
	expected := []float64{
		1.0 - 0.1*0.1, // 0.99
		2.0 - 0.1*0.2, // 1.98
		3.0 - 0.1*0.3, // 2.97
	}

	for i := range params {
		if math.Abs(params[i]-expected[i]) > 1e-10 {
			t.Errorf("params[%d] = %v, want %v", i, params[i], expected[i])
		}
	}

	// gradients must be untouched
	if gradients[0] != 0.1 || gradients[2] != 0.3 {
		t.Errorf("gradients modified: %v", gradients)
	}
}

// TestSGDZeroLearningRate tests that lr = 0 leaves params unchanged.
func TestSGDZeroLearningRate(t *testing.T) {
	sgd := SGD{LearningRate: 0}

	params := []float64{1.0, -2.0}
	sgd.StepInPlace(params, []float64{100, 100})

	if params[0] != 1.0 || params[1] != -2.0 {
		t.Errorf("params changed with zero learning rate: %v", params)
	}
}

// TestSGDLengthMismatch expects a shape mismatch panic.
func TestSGDLengthMismatch(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Expected panic for length mismatch")
		}
		if err, ok := r.(error); !ok || !errors.Is(err, matrix.ErrShapeMismatch) {
			t.Errorf("panic = %v, want ErrShapeMismatch", r)
		}
	}()

	SGD{LearningRate: 0.1}.StepInPlace([]float64{1, 2}, []float64{1})
}

// TestSGDUpdate tests the matrix form of the update.
func TestSGDUpdate(t *testing.T) {
	sgd := SGD{LearningRate: 0.5}

	param := matrix.NewWithData(2, 2, []float64{1, 2, 3, 4})
	grad := matrix.NewWithData(2, 2, []float64{2, 2, -2, 0})

	sgd.Update(param, grad)

	want := matrix.NewWithData(2, 2, []float64{0, 1, 4, 4})
	if !param.Equal(want, 1e-12) {
		t.Errorf("Update() = %v, want %v", param.ToNested(), want.ToNested())
	}
}

// TestSGDUpdateShapeMismatch expects a shape mismatch panic.
func TestSGDUpdateShapeMismatch(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Expected panic for shape mismatch")
		}
		if err, ok := r.(error); !ok || !errors.Is(err, matrix.ErrShapeMismatch) {
			t.Errorf("panic = %v, want ErrShapeMismatch", r)
		}
	}()

	// Same element count, different shape
	SGD{LearningRate: 0.1}.Update(matrix.New(2, 3), matrix.New(3, 2))
}
