package matrix

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrShapeMismatch   = errors.New("shape mismatch")
	ErrInvalidInput    = errors.New("invalid input")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// ShapeError reports the operand shapes of a failed operation.
type ShapeError struct {
	Op string // "add", "multiply", ...
	A  [2]int
	B  [2]int
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s: %dx%d and %dx%d", ErrShapeMismatch, e.Op, e.A[0], e.A[1], e.B[0], e.B[1])
}

// Unwrap lets errors.Is match ErrShapeMismatch.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

func shapeError(op string, a, b *Matrix) *ShapeError {
	return &ShapeError{Op: op, A: [2]int{a.rows, a.cols}, B: [2]int{b.rows, b.cols}}
}
