package matrix

import "github.com/klauspost/cpuid/v2"

// dotFunc computes the dot product of two equal-length slices.
type dotFunc func(a, b []float64) float64

var (
	// laneWidth is the number of float64 values in one native vector register.
	laneWidth int
	dot       dotFunc
)

func init() {
	laneWidth = detectLaneWidth()
	dot = dotKernel(laneWidth)
}

func detectLaneWidth() int {
	switch {
	case cpuid.CPU.Supports(cpuid.AVX512F):
		return 8
	case cpuid.CPU.Supports(cpuid.AVX):
		return 4
	case cpuid.CPU.Supports(cpuid.SSE2), cpuid.CPU.Supports(cpuid.ASIMD):
		return 2
	}
	return 1
}

// LaneWidth reports the float64 lane count the dot kernel was built for.
func LaneWidth() int {
	return laneWidth
}

func dotKernel(width int) dotFunc {
	switch width {
	case 8:
		return dot8
	case 4:
		return dot4
	case 2:
		return dot2
	}
	return dotScalar
}

func dotScalar(a, b []float64) float64 {
	var sum float64
	for i, v := range a {
		sum += v * b[i]
	}
	return sum
}

// dot2, dot4 and dot8 keep one accumulator per lane over full groups and
// finish the tail with scalar code. Callers guarantee len(b) >= len(a).

func dot2(a, b []float64) float64 {
	n := len(a) &^ 1
	b = b[:len(a)]
	var s0, s1 float64
	for i := 0; i < n; i += 2 {
		x, y := a[i:i+2:i+2], b[i:i+2:i+2]
		s0 += x[0] * y[0]
		s1 += x[1] * y[1]
	}
	sum := s0 + s1
	for i := n; i < len(a); i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func dot4(a, b []float64) float64 {
	n := len(a) &^ 3
	b = b[:len(a)]
	var s0, s1, s2, s3 float64
	for i := 0; i < n; i += 4 {
		x, y := a[i:i+4:i+4], b[i:i+4:i+4]
		s0 += x[0] * y[0]
		s1 += x[1] * y[1]
		s2 += x[2] * y[2]
		s3 += x[3] * y[3]
	}
	sum := (s0 + s1) + (s2 + s3)
	for i := n; i < len(a); i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func dot8(a, b []float64) float64 {
	n := len(a) &^ 7
	b = b[:len(a)]
	var s0, s1, s2, s3, s4, s5, s6, s7 float64
	for i := 0; i < n; i += 8 {
		x, y := a[i:i+8:i+8], b[i:i+8:i+8]
		s0 += x[0] * y[0]
		s1 += x[1] * y[1]
		s2 += x[2] * y[2]
		s3 += x[3] * y[3]
		s4 += x[4] * y[4]
		s5 += x[5] * y[5]
		s6 += x[6] * y[6]
		s7 += x[7] * y[7]
	}
	sum := ((s0 + s1) + (s2 + s3)) + ((s4 + s5) + (s6 + s7))
	for i := n; i < len(a); i++ {
		sum += a[i] * b[i]
	}
	return sum
}
