package sprite

import "math/bits"

// NextPowerOfTwo returns the smallest power of two greater than or equal
// to n. NextPowerOfTwo(0) is 1.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// NextMultiple returns n when it is already a multiple of m, otherwise the
// smallest multiple of m above it.
func NextMultiple(n, m int) int {
	if r := n % m; r != 0 {
		return n + (m - r)
	}
	return n
}
