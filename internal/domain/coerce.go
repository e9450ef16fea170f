package domain

import "strconv"

// CoerceCount parses a free-form numeric input into a non-negative counter.
// Empty or non-numeric input coerces to 0 rather than failing; fractional
// input is truncated and negatives clamp to 0.
func CoerceCount(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		// Accept "7.5" style input the way Number() would.
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0
		}
		n = int(f)
	}
	return ClampNonNegative(n)
}

// ClampNonNegative floors a counter at zero.
func ClampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
