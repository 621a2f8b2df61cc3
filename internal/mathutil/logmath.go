package mathutil

import "math"

// LogZero represents log(0), used as negative infinity in log-domain arithmetic.
// It is finite so that sums and differences of log-probabilities never produce NaN.
const LogZero = -1e30

// LogAdd returns log(exp(a) + exp(b)) in a numerically stable way.
// Uses threshold-based early exit to skip expensive exp/log1p when the
// smaller value contributes less than float64 precision (exp(-36) ≈ 2.3e-16).
func LogAdd(a, b float64) float64 {
	if a > b {
		if b <= LogZero {
			return a
		}
		d := b - a
		if d < -36.0 {
			return a
		}
		return a + math.Log1p(math.Exp(d))
	}
	if a <= LogZero {
		return b
	}
	d := a - b
	if d < -36.0 {
		return b
	}
	return b + math.Log1p(math.Exp(d))
}

// LogMul returns log(exp(a) * exp(b)). LogZero is absorbing: if either operand
// is LogZero, or the sum falls below it, the result is exactly LogZero.
func LogMul(a, b float64) float64 {
	if a <= LogZero || b <= LogZero {
		return LogZero
	}
	s := a + b
	if s <= LogZero {
		return LogZero
	}
	return s
}

// Clamp maps a log-probability into the range used by the log-domain helpers.
// -Inf, NaN and anything below LogZero become LogZero.
func Clamp(x float64) float64 {
	if math.IsNaN(x) || x <= LogZero {
		return LogZero
	}
	return x
}

// IsLogZero reports whether x carries no probability mass.
func IsLogZero(x float64) bool {
	return x <= LogZero
}
