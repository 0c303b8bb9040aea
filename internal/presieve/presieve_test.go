package presieve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezhangle/primesieve/internal/wheel"
)

func TestNewClearsExactMultiples(t *testing.T) {
	ps := New(13) // primes 7, 11, 13
	require.Equal(t, uint64(7*11*13), uint64(len(ps.buf)))

	for n := uint64(1); n < ps.period; n++ {
		idx, ok := wheel.IndexOf(n % wheel.NumbersPerByte)
		if !ok {
			continue
		}
		byteIdx := n / wheel.NumbersPerByte
		bitSet := ps.buf[byteIdx]&wheel.BitMask(idx) != 0
		wantComposite := n%7 == 0 || n%11 == 0 || n%13 == 0
		if wantComposite {
			assert.Falsef(t, bitSet, "expected %d (multiple) to be cleared", n)
		} else {
			assert.Truef(t, bitSet, "expected %d to remain set", n)
		}
	}
}

func TestApplyWrapsAtPeriod(t *testing.T) {
	ps := New(11)
	seg1 := make([]byte, 4)
	seg2 := make([]byte, 4)

	ps.Apply(seg1, 0)
	ps.Apply(seg2, ps.period)
	assert.Equal(t, seg1, seg2)
}

func TestApplyOffsetMatchesDirectClear(t *testing.T) {
	ps := New(11)
	lo := uint64(30 * 100)
	seg := make([]byte, 5)
	ps.Apply(seg, lo)

	for b := 0; b < len(seg); b++ {
		for bit := 0; bit < 8; bit++ {
			n := lo + uint64(b)*wheel.NumbersPerByte + wheel.Residues[bit]
			want := byte(1)
			if n%7 == 0 || n%11 == 0 {
				want = 0
			}
			got := (seg[b] >> uint(bit)) & 1
			assert.Equalf(t, want, got, "n=%d", n)
		}
	}
}

func TestInvalidLimitPanics(t *testing.T) {
	assert.Panics(t, func() { New(5) })
	assert.Panics(t, func() { New(29) })
}
