package erat

import (
	"github.com/ezhangle/primesieve/internal/bucket"
	"github.com/ezhangle/primesieve/internal/wheel"
)

// Big cross-offs sieving primes too large to reliably fire once per
// segment. Rather than scanning every big prime every segment, it
// indexes them by the segment in which they next hit: a ring of
// `segmentSpan+1` bucket lists, one per future segment (§4.6).
type Big struct {
	arena        *bucket.Arena
	segmentBytes uint32
	ring         []*bucket.Bucket
	cur          int
}

// NewBig creates an EratBig engine. maxSievingPrime bounds the ring
// size: between two consecutive hits a prime never waits more than
// ceil(maxSievingPrime/segmentBytes)+1 segments. A first hit can lie
// further ahead; insert parks such an entry until it comes in range.
func NewBig(arena *bucket.Arena, segmentBytes uint32, maxSievingPrime uint64) *Big {
	span := (maxSievingPrime+uint64(segmentBytes)-1)/uint64(segmentBytes) + 1
	return &Big{
		arena:        arena,
		segmentBytes: segmentBytes,
		ring:         make([]*bucket.Bucket, span+1),
	}
}

// Add schedules prime's first cross-off. firstMultipleByteIndex and
// segLoByteIndex are both absolute byte indices (integer value / 30);
// firstMultipleByteIndex must be >= segLoByteIndex.
func (e *Big) Add(prime uint64, firstMultipleByteIndex, segLoByteIndex uint64, wheelIndex uint8) {
	e.insert(prime, firstMultipleByteIndex-segLoByteIndex, wheelIndex)
}

// insert places prime into the ring slot `relativeByteIndex / segmentBytes`
// segments ahead of the slot currently being processed. A first multiple
// further ahead than the ring reaches is parked in the furthest slot with
// its remaining distance, and CrossOff reschedules it from there.
func (e *Big) insert(prime uint64, relativeByteIndex uint64, wheelIndex uint8) {
	segmentsAhead := relativeByteIndex / uint64(e.segmentBytes)
	if last := uint64(len(e.ring)) - 1; segmentsAhead > last {
		segmentsAhead = last
	}
	within := relativeByteIndex - segmentsAhead*uint64(e.segmentBytes)
	slot := (e.cur + int(segmentsAhead)) % len(e.ring)

	head := e.ring[slot]
	if head == nil || head.Full(e.arena.BucketSize) {
		b := e.arena.Alloc()
		b.SetNext(head)
		e.ring[slot] = b
		head = b
	}
	head.Add(bucket.WheelPrime{Prime: prime, MultipleIndex: within, WheelIndex: wheelIndex})
}

// CrossOff clears every due multiple of every prime scheduled against
// the current slot. A prime occasionally fires more than once in the
// same segment even here, so each entry loops like EratSmall/Medium
// until its cursor runs past the segment, then is rescheduled into the
// ring slot that overflow lands in. The slot is detached before the
// walk so rescheduling never mutates the list being drained.
func (e *Big) CrossOff(segment []byte) {
	segBytes := uint64(len(segment))
	slot := e.cur
	list := e.ring[slot]
	e.ring[slot] = nil

	for b := list; b != nil; {
		items := b.Items()
		for i := range items {
			wp := items[i]
			if wp.MultipleIndex >= segBytes {
				// parked entry, not yet due in this segment
				e.insert(wp.Prime, wp.MultipleIndex, wp.WheelIndex)
				continue
			}
			steps := wheel.Steps(wp.Prime)
			idx := wp.MultipleIndex
			phase := wp.WheelIndex
			for {
				st := steps[phase]
				segment[idx] &^= st.Mask
				idx += uint64(st.ByteDelta)
				phase = st.NextIndex
				if idx >= segBytes {
					break
				}
			}
			e.insert(wp.Prime, idx, phase)
		}
		next := b.Next()
		b.SetNext(nil)
		e.arena.Free(b)
		b = next
	}
	e.cur = (e.cur + 1) % len(e.ring)
}

// Empty reports whether the engine currently tracks no sieving primes
// in any ring slot.
func (e *Big) Empty() bool {
	for _, b := range e.ring {
		if b != nil {
			return false
		}
	}
	return true
}
