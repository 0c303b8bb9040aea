package erat

import "github.com/ezhangle/primesieve/internal/bucket"

// Medium cross-offs sieving primes in
// (segmentBytes*EratSmallFactor, segmentBytes*EratMediumFactor]. It
// shares EratSmall's flat-bucket-list storage and its single
// table-driven cross-off loop (neither engine unrolls it); each prime
// here fires only a handful of times per segment (§4.5).
type Medium struct {
	arena *bucket.Arena
	head  *bucket.Bucket
	tail  *bucket.Bucket
}

// NewMedium creates an EratMedium engine backed by arena.
func NewMedium(arena *bucket.Arena) *Medium {
	return &Medium{arena: arena}
}

// Add registers a sieving prime for cross-off.
func (e *Medium) Add(prime uint64, multipleIndex uint64, wheelIndex uint8) {
	appendWheelPrime(e.arena, &e.head, &e.tail, prime, multipleIndex, wheelIndex)
}

// CrossOff clears every multiple of every registered prime in segment.
func (e *Medium) CrossOff(segment []byte) {
	crossOffList(e.head, segment)
}

// Empty reports whether the engine currently tracks no sieving primes.
func (e *Medium) Empty() bool { return e.head == nil }
