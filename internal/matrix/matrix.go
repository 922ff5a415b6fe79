// Package matrix provides a dense row-major float64 matrix.
//
// Arithmetic operators (Add, Subtract, Scale, Multiply, Transpose, Copy)
// never mutate their operands; they always allocate the result. The only
// sanctioned in-place writers are Set, Randomize and the kernels that work on
// RawData (activation application and the SGD update).
//
// Shape violations in operators panic with an error wrapping
// ErrShapeMismatch; out-of-range element access panics with an error
// wrapping ErrIndexOutOfRange. Constructors fed from external data
// (FromNested) return ErrInvalidInput instead.
package matrix

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"

	"github.com/hslt0/Cs-Digit-Recognition-NN/internal/mathutil"
)

// Matrix is a rows x cols dense matrix stored row-major.
// Element (i, j) lives at data[i*cols+j].
type Matrix struct {
	rows int
	cols int
	data []float64
}

// New creates a zero-filled rows x cols matrix.
func New(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("matrix: negative dimension %dx%d", rows, cols))
	}
	return &Matrix{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols),
	}
}

// NewWithData creates a rows x cols matrix holding a copy of data.
// data must be row-major with exactly rows*cols elements.
func NewWithData(rows, cols int, data []float64) *Matrix {
	m := New(rows, cols)
	if len(data) != len(m.data) {
		panic(fmt.Errorf("%w: %d values for %dx%d matrix", ErrShapeMismatch, len(data), rows, cols))
	}
	copy(m.data, data)
	return m
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (int, int) { return m.rows, m.cols }

// RawData returns the backing slice. Writes through it mutate the matrix.
func (m *Matrix) RawData() []float64 { return m.data }

// At returns the element at (i, j).
func (m *Matrix) At(i, j int) float64 {
	return m.data[m.index(i, j)]
}

// Set assigns v to the element at (i, j).
func (m *Matrix) Set(i, j int, v float64) {
	m.data[m.index(i, j)] = v
}

func (m *Matrix) index(i, j int) int {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Errorf("%w: (%d, %d) in %dx%d matrix", ErrIndexOutOfRange, i, j, m.rows, m.cols))
	}
	return i*m.cols + j
}

func (m *Matrix) sameShape(b *Matrix) bool {
	return m.rows == b.rows && m.cols == b.cols
}

// Add returns m + b.
func (m *Matrix) Add(b *Matrix) *Matrix {
	if !m.sameShape(b) {
		panic(shapeError("add", m, b))
	}
	out := New(m.rows, m.cols)
	floats.AddTo(out.data, m.data, b.data)
	return out
}

// Subtract returns m - b.
func (m *Matrix) Subtract(b *Matrix) *Matrix {
	if !m.sameShape(b) {
		panic(shapeError("subtract", m, b))
	}
	out := New(m.rows, m.cols)
	floats.SubTo(out.data, m.data, b.data)
	return out
}

// Scale returns c * m.
func (m *Matrix) Scale(c float64) *Matrix {
	out := New(m.rows, m.cols)
	floats.ScaleTo(out.data, c, m.data)
	return out
}

// Transpose returns a new cols x rows matrix.
func (m *Matrix) Transpose() *Matrix {
	out := New(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		row := m.data[i*m.cols : (i+1)*m.cols]
		for j, v := range row {
			out.data[j*m.rows+i] = v
		}
	}
	return out
}

// Copy returns a deep copy of m.
func (m *Matrix) Copy() *Matrix {
	return NewWithData(m.rows, m.cols, m.data)
}

// Randomize fills every element independently from U[-1, 1) using rng.
func (m *Matrix) Randomize(rng *rand.Rand) {
	for i := range m.data {
		m.data[i] = mathutil.RandomUniform(rng, -1, 1)
	}
}

// Equal reports whether b has the same shape as m and every element is
// within tol (absolute or relative) of the corresponding element of m.
func (m *Matrix) Equal(b *Matrix, tol float64) bool {
	return m.sameShape(b) && floats.EqualApprox(m.data, b.data, tol)
}

// ToFlat returns a row-major copy of the elements.
func (m *Matrix) ToFlat() []float64 {
	out := make([]float64, len(m.data))
	copy(out, m.data)
	return out
}

// FromFlat returns a len(v) x 1 column vector holding a copy of v.
func FromFlat(v []float64) *Matrix {
	return NewWithData(len(v), 1, v)
}

// ToNested returns the elements as row-major nested slices.
func (m *Matrix) ToNested() [][]float64 {
	out := make([][]float64, m.rows)
	for i := range out {
		out[i] = make([]float64, m.cols)
		copy(out[i], m.data[i*m.cols:(i+1)*m.cols])
	}
	return out
}

// FromNested builds a matrix from row-major nested slices.
// It fails with ErrInvalidInput if rows is empty or ragged.
func FromNested(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: nested array is absent", ErrInvalidInput)
	}
	cols := len(rows[0])
	m := New(len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidInput, i, len(row), cols)
		}
		copy(m.data[i*cols:], row)
	}
	return m, nil
}

// String formats the matrix shape, for debugging.
func (m *Matrix) String() string {
	return fmt.Sprintf("Matrix(%dx%d)", m.rows, m.cols)
}
