// Package bucket implements a slab-recycling arena of fixed-capacity
// WheelPrime buckets, so the three cross-off engines never pay a
// per-insert heap allocation. The recycling strategy mirrors the
// sync.Pool-backed segment-buffer reuse in the reference worker-pool
// sieve (pchuck-infinite-series's workerProcessSegment): buckets are
// returned to a pool instead of freed, and reused across segments.
package bucket

import "unsafe"

// WheelPrime is the per-sieving-prime cross-off state the spec
// describes in §3: the prime itself, the byte offset inside the
// current segment where its next multiple lies, and its position in
// its own wheel cycle.
type WheelPrime struct {
	Prime         uint64
	MultipleIndex uint64
	WheelIndex    uint8
}

// Bucket is a fixed-capacity array of WheelPrime plus a link to the
// next bucket in the same list.
type Bucket struct {
	items [capacity]WheelPrime
	n     int
	next  *Bucket
}

// capacity is set at construction time per arena (EratBig uses a
// smaller bucket than EratSmall/Medium per §6 tunables), but the
// backing array needs a single compile-time size; capacity is that
// ceiling and arenas simply use a prefix of each bucket.
const capacity = 4096

// Items returns the live WheelPrime entries in the bucket.
func (b *Bucket) Items() []WheelPrime { return b.items[:b.n] }

// Next returns the next bucket in the list, or nil.
func (b *Bucket) Next() *Bucket { return b.next }

// SetNext links the bucket to its successor.
func (b *Bucket) SetNext(n *Bucket) { b.next = n }

// Full reports whether the bucket has reached the arena's configured
// per-bucket capacity.
func (b *Bucket) Full(limit int) bool { return b.n >= limit }

// Add appends a WheelPrime; callers must check Full first.
func (b *Bucket) Add(wp WheelPrime) {
	b.items[b.n] = wp
	b.n++
}

// Remove deletes the entry at index i (order not preserved).
func (b *Bucket) Remove(i int) {
	b.n--
	b.items[i] = b.items[b.n]
}

// reset clears the bucket for reuse without deallocating its backing
// array.
func (b *Bucket) reset() {
	b.n = 0
	b.next = nil
}

// Arena recycles Buckets across segments instead of letting them be
// garbage collected, per §4.3's "buckets are never individually
// heap-freed" design requirement. BucketSize caps how many of each
// bucket's capacity-4096 backing array are considered "in use" by a
// given engine (EratSmall/Medium default to 4096, EratBig to 1024, per
// the §6 tunables ERATBASE_BUCKETSIZE / ERATBIG_BUCKETSIZE).
//
// When the free list runs dry, the arena allocates a whole slab of
// buckets at once (sized off SlabBuckets) rather than one bucket at a
// time, amortizing allocation the way ERATBIG_MEMORY_PER_ALLOC asks
// for: one larger allocation instead of one per bucket.
type Arena struct {
	BucketSize  int
	SlabBuckets int
	free        *Bucket
}

// NewArena creates an arena whose buckets are considered full once
// they hold bucketSize entries, allocating one bucket at a time.
func NewArena(bucketSize int) *Arena {
	return NewArenaWithSlab(bucketSize, 0)
}

// NewArenaWithSlab is NewArena, additionally sizing each backing
// allocation to hold roughly memoryPerAlloc bytes of buckets at once.
// memoryPerAlloc <= 0 falls back to one bucket per allocation.
func NewArenaWithSlab(bucketSize, memoryPerAlloc int) *Arena {
	if bucketSize <= 0 || bucketSize > capacity {
		bucketSize = capacity
	}
	slab := 1
	if memoryPerAlloc > 0 {
		bucketSizeBytes := int(unsafe.Sizeof(Bucket{}))
		if n := memoryPerAlloc / bucketSizeBytes; n > 1 {
			slab = n
		}
	}
	return &Arena{BucketSize: bucketSize, SlabBuckets: slab}
}

// Alloc returns a fresh, empty bucket, reusing one from the free list
// when available and allocating a fresh slab of SlabBuckets buckets,
// linked onto the free list, when it isn't.
func (a *Arena) Alloc() *Bucket {
	if a.free == nil {
		n := a.SlabBuckets
		if n < 1 {
			n = 1
		}
		slab := make([]Bucket, n)
		for i := range slab {
			slab[i].next = a.free
			a.free = &slab[i]
		}
	}
	b := a.free
	a.free = b.next
	b.reset()
	return b
}

// Free returns b (and the rest of its list, if any) to the arena for
// reuse. Callers that only want to free a single bucket should detach
// it first with b.SetNext(nil).
func (a *Arena) Free(b *Bucket) {
	if b == nil {
		return
	}
	tail := b
	for tail.next != nil {
		tail = tail.next
	}
	tail.next = a.free
	a.free = b
}
