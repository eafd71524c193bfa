package common

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// WrapIndex maps any integer onto [0, n) the way a ring buffer would, so -1 becomes n-1.
// Returns 0 when n <= 0.
//
// Parameters:
//   - i: the index to wrap
//   - n: the ring length
//
// Returns:
//   - int: the wrapped index
func WrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
