// Package presieve precomputes a buffer with multiples of the first
// few primes already crossed off, so every new segment can start from
// a memcpy instead of a cold all-ones buffer.
package presieve

import (
	"github.com/ezhangle/primesieve/internal/wheel"
)

// MinLimit and MaxLimit bound the configurable presieve limit (§6
// tunable PRIMESIEVE_PRESIEVE_LIMIT).
const (
	MinLimit = 11
	MaxLimit = 23
)

// smallPrimes lists every prime candidate in [7, MaxLimit]; PreSieve
// uses the ones <= its configured limit.
var smallPrimes = []uint64{7, 11, 13, 17, 19, 23}

// PreSieve holds a template byte buffer with multiples of the
// presieved primes already cleared.
type PreSieve struct {
	limit  uint64
	primes []uint64
	buf    []byte // Product(primes) bytes, each covering 30 numbers
	period uint64 // len(buf) * 30, the repeat period in integers
}

// New builds a PreSieve for all primes in [7, limit]. limit must be in
// [MinLimit, MaxLimit]; violating this is a programming error (§7
// "Preconditions on constants are asserted at init").
func New(limit uint64) *PreSieve {
	if limit < MinLimit || limit > MaxLimit {
		panic("presieve: limit out of range")
	}
	ps := &PreSieve{limit: limit}
	product := uint64(1)
	for _, p := range smallPrimes {
		if p > limit {
			break
		}
		ps.primes = append(ps.primes, p)
		product *= p
	}
	numBytes := product // see below
	// The buffer must tile the number line exactly: its length in
	// integers (len(buf)*30) must be a multiple of the product of the
	// presieved primes so Apply's offset arithmetic wraps cleanly.
	// Since all presieved primes are >= 7 (i.e. never 2, 3, or 5), the
	// product itself is coprime to 30, so we size the buffer to
	// `product` bytes, spanning `product*30` integers, which is a
	// multiple of `product`.
	ps.buf = make([]byte, numBytes)
	for i := range ps.buf {
		ps.buf[i] = 0xFF
	}
	ps.period = numBytes * wheel.NumbersPerByte

	for _, p := range ps.primes {
		clearMultiples(ps.buf, p, ps.period)
	}
	return ps
}

// clearMultiples clears every bit in buf representing a multiple of p,
// including p itself, where buf tiles the integers [0, period).
//
// Unlike a sieving prime's cross-off during a real sieve run (which can
// start at p*p because smaller multiples were already crossed off by
// their own smaller prime factors), this template is periodic: it gets
// memcpy'd across the entire range, so p's own residue recurs at every
// m*period+p for m>=1. Leaving p's bit set here would let every such
// value survive as a false prime once the sieve range exceeds one
// period. p is reported as an output prime separately, via Special.
func clearMultiples(buf []byte, p uint64, period uint64) {
	k := uint64(1)
	for {
		m := p * k
		if m >= period {
			break
		}
		byteIdx := m / wheel.NumbersPerByte
		idx, ok := wheel.IndexOf(m % wheel.NumbersPerByte)
		if ok {
			buf[byteIdx] &= wheel.UnsetMask(idx)
		}
		k = wheel.NextCoprime(k + 1)
	}
}

// Limit returns the configured presieve limit.
func (ps *PreSieve) Limit() uint64 { return ps.limit }

// Apply copies the presieve template into segment, which represents
// the integers [lo, lo+len(segment)*30), wrapping around the template
// period as needed. lo must be a multiple of 30.
func (ps *PreSieve) Apply(segment []byte, lo uint64) {
	if lo%wheel.NumbersPerByte != 0 {
		panic("presieve: lo must be a multiple of 30")
	}
	offset := (lo / wheel.NumbersPerByte) % uint64(len(ps.buf))
	n := len(segment)
	copied := 0
	for copied < n {
		chunk := len(ps.buf) - int(offset)
		if chunk > n-copied {
			chunk = n - copied
		}
		copy(segment[copied:copied+chunk], ps.buf[offset:int(offset)+chunk])
		copied += chunk
		offset = 0
	}
}
