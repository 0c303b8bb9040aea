package sieve

import "math"

// isqrt returns floor(sqrt(n)) for a uint64, correcting the float64
// approximation's rounding error at the boundary the way math.Sqrt's
// limited mantissa can get wrong for inputs near 2^64.
func isqrt(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	r := uint64(math.Sqrt(float64(n)))
	for r > 0 && r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n && (r+1) > r {
		r++
	}
	return r
}
