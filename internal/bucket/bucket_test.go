package bucket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArenaAllocAndFreeRecycles(t *testing.T) {
	a := NewArena(4)
	b1 := a.Alloc()
	b1.Add(WheelPrime{Prime: 7})
	a.Free(b1)

	b2 := a.Alloc()
	assert.Same(t, b1, b2, "arena should hand back the freed bucket instead of allocating new")
	assert.Empty(t, b2.Items(), "recycled bucket must be reset")
}

func TestBucketFullAndRemove(t *testing.T) {
	a := NewArena(2)
	b := a.Alloc()
	assert.False(t, b.Full(a.BucketSize))
	b.Add(WheelPrime{Prime: 7})
	assert.False(t, b.Full(a.BucketSize))
	b.Add(WheelPrime{Prime: 11})
	assert.True(t, b.Full(a.BucketSize))

	b.Remove(0)
	assert.Len(t, b.Items(), 1)
	assert.Equal(t, uint64(11), b.Items()[0].Prime)
}

func TestFreeListChain(t *testing.T) {
	a := NewArena(4)
	b1 := a.Alloc()
	b2 := a.Alloc()
	b1.SetNext(b2)
	a.Free(b1)

	out1 := a.Alloc()
	out2 := a.Alloc()
	assert.ElementsMatch(t, []*Bucket{b1, b2}, []*Bucket{out1, out2})
}
