package matrix

import "github.com/hslt0/Cs-Digit-Recognition-NN/internal/parallel"

// minParallelWork is the number of multiply-adds below which goroutine
// fan-out costs more than it saves.
const minParallelWork = 1 << 14

// Multiply returns the matrix product m * b.
//
// b is transposed once so every dot product walks two contiguous rows.
// Output rows are split into one contiguous chunk per available execution
// unit; each chunk writes only its own rows and the call returns when all
// chunks are done. Chunking only decides which goroutine computes a row, so
// the result does not depend on the number of workers.
func (m *Matrix) Multiply(b *Matrix) *Matrix {
	if m.cols != b.rows {
		panic(shapeError("multiply", m, b))
	}

	workers := parallel.Workers()
	if m.rows*m.cols*b.cols < minParallelWork {
		workers = 1
	}
	return m.multiply(b, workers)
}

func (m *Matrix) multiply(b *Matrix, workers int) *Matrix {
	out := New(m.rows, b.cols)
	if out.rows == 0 || out.cols == 0 {
		return out
	}

	bt := b.Transpose()
	k := m.cols
	n := out.cols

	parallel.ForChunks(m.rows, workers, func(start, end int) {
		for i := start; i < end; i++ {
			row := m.data[i*k : (i+1)*k]
			dst := out.data[i*n : (i+1)*n]
			for j := range dst {
				dst[j] = dot(row, bt.data[j*k:(j+1)*k])
			}
		}
	})

	return out
}
