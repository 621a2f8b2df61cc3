package mathutil

import "math"

// Mat is a 2D float64 matrix stored as row-major [][]float64.
// Decoder inputs use one row per timestep and one column per class.
type Mat = [][]float64

// NewMat creates a rows x cols matrix initialized to zero.
func NewMat(rows, cols int) Mat {
	m := make(Mat, rows)
	data := make([]float64, rows*cols)
	for i := range m {
		m[i] = data[i*cols : (i+1)*cols]
	}
	return m
}

// NewMatFill creates a rows x cols matrix filled with val.
func NewMatFill(rows, cols int, val float64) Mat {
	m := NewMat(rows, cols)
	for i := range m {
		for j := range m[i] {
			m[i][j] = val
		}
	}
	return m
}

// LogMat returns a new matrix holding the natural log of every element of probs.
// Zero (or negative) probabilities map to LogZero.
func LogMat(probs Mat) Mat {
	out := make(Mat, len(probs))
	for i, row := range probs {
		out[i] = make([]float64, len(row))
		for j, p := range row {
			if p <= 0 {
				out[i][j] = LogZero
				continue
			}
			out[i][j] = math.Log(p)
		}
	}
	return out
}

// ArgMax returns the index of the largest element of v, or -1 for an empty slice.
func ArgMax(v []float64) int {
	if len(v) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}
