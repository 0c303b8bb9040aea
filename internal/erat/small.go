// Package erat implements the three size-specialized cross-off engines
// (§4.4-4.6): EratSmall for sieving primes that fire many times per
// segment, EratMedium for primes that fire a handful of times, and
// EratBig for primes that fire less than once per segment on average.
package erat

import (
	"github.com/ezhangle/primesieve/internal/bucket"
	"github.com/ezhangle/primesieve/internal/wheel"
)

// Small cross-offs sieving primes p <= segmentBytes * EratSmallFactor.
// It keeps one flat bucket list, walked in full every segment.
type Small struct {
	arena *bucket.Arena
	head  *bucket.Bucket
	tail  *bucket.Bucket
}

// NewSmall creates an EratSmall engine backed by arena.
func NewSmall(arena *bucket.Arena) *Small {
	return &Small{arena: arena}
}

// Add registers a sieving prime whose next cross-off in the segment
// currently being sieved lies at byte multipleIndex, wheel phase
// wheelIndex.
func (e *Small) Add(prime uint64, multipleIndex uint64, wheelIndex uint8) {
	appendWheelPrime(e.arena, &e.head, &e.tail, prime, multipleIndex, wheelIndex)
}

// CrossOff clears every multiple of every registered prime that falls
// in segment, and leaves each prime positioned for the next segment.
func (e *Small) CrossOff(segment []byte) {
	crossOffList(e.head, segment)
}

// Empty reports whether the engine currently tracks no sieving primes.
func (e *Small) Empty() bool { return e.head == nil }

// appendWheelPrime is shared by Small and Medium: both keep a single
// flat bucket list and differ only in how densely their primes fire
// per segment, not in storage layout.
func appendWheelPrime(arena *bucket.Arena, head, tail **bucket.Bucket, prime uint64, multipleIndex uint64, wheelIndex uint8) {
	if *tail == nil || (*tail).Full(arena.BucketSize) {
		b := arena.Alloc()
		if *tail != nil {
			(*tail).SetNext(b)
		} else {
			*head = b
		}
		*tail = b
	}
	(*tail).Add(bucket.WheelPrime{Prime: prime, MultipleIndex: multipleIndex, WheelIndex: wheelIndex})
}

// crossOffList walks a flat bucket list, clearing every prime's
// multiples that land in segment and rewinding MultipleIndex by
// len(segment) bytes for the next call.
func crossOffList(head *bucket.Bucket, segment []byte) {
	segBytes := uint64(len(segment))
	for b := head; b != nil; b = b.Next() {
		items := b.Items()
		for i := range items {
			wp := &items[i]
			steps := wheel.Steps(wp.Prime)
			idx := wp.MultipleIndex
			phase := wp.WheelIndex
			for idx < segBytes {
				st := steps[phase]
				segment[idx] &^= st.Mask
				idx += uint64(st.ByteDelta)
				phase = st.NextIndex
			}
			wp.MultipleIndex = idx - segBytes
			wp.WheelIndex = phase
		}
	}
}
