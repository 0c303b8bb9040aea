package sieve

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezhangle/primesieve/internal/config"
)

func run(t *testing.T, start, stop uint64, f *Finder) *Finder {
	t.Helper()
	cfg := config.New()
	s := New(start, stop, cfg, f)
	require.NoError(t, s.Run())
	f.Finish()
	return f
}

func TestCountPrimesSmallRanges(t *testing.T) {
	cases := []struct {
		start, stop uint64
		want        uint64
	}{
		{1, 30, 10},
		{1, 100, 25},
		{0, 10, 4},
		{2, 2, 1},
		{0, 1, 0},
	}
	for _, c := range cases {
		f := run(t, c.start, c.stop, NewCountPrimesFinder())
		assert.Equal(t, c.want, f.Count(), "count_primes(%d,%d)", c.start, c.stop)
	}
}

func TestCountPrimesAdditivity(t *testing.T) {
	a, b, c := uint64(1), uint64(5000), uint64(20000)
	total := run(t, a, c, NewCountPrimesFinder()).Count()
	left := run(t, a, b, NewCountPrimesFinder()).Count()
	right := run(t, b+1, c, NewCountPrimesFinder()).Count()
	assert.Equal(t, total, left+right)
}

func TestCallbackPrimesMatchesKnownSequence(t *testing.T) {
	var got []uint64
	f := NewCallbackFinder(func(p uint64) error {
		got = append(got, p)
		return nil
	})
	run(t, 1, 30, f)
	want := []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}
	assert.Equal(t, want, got)
}

func TestCallbackErrorStopsSieving(t *testing.T) {
	var got []uint64
	f := NewCallbackFinder(func(p uint64) error {
		got = append(got, p)
		if p == 7 {
			return assert.AnError
		}
		return nil
	})
	cfg := config.New()
	s := New(1, 1000, cfg, f)
	err := s.Run()
	require.Error(t, err)
	assert.Equal(t, []uint64{2, 3, 5, 7}, got)
}

func TestPrintPrimesWritesOnePerLine(t *testing.T) {
	var buf bytes.Buffer
	run(t, 1, 30, NewPrintPrimesFinder(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{"2", "3", "5", "7", "11", "13", "17", "19", "23", "29"}, lines)
}

func TestCountTwinsKnownValue(t *testing.T) {
	f, err := NewCountTupletFinder(2, 1, 30)
	require.NoError(t, err)
	run(t, 1, 30, f)
	// (3,5), (5,7), (11,13), (17,19): 29's partner 31 falls outside
	// [1,30] so the sieve never reconstructs it and (29,31) is not
	// counted, matching count_twins semantics over a closed interval.
	assert.Equal(t, uint64(4), f.Count())
}

func TestPrintTupletFormat(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewPrintTupletFinder(2, 1, 30, &buf)
	require.NoError(t, err)
	run(t, 1, 30, f)
	assert.Contains(t, buf.String(), "(3, 5)")
	assert.Contains(t, buf.String(), "(5, 7)")
}

func TestSegmentSizeInvariance(t *testing.T) {
	want := run(t, 1, 50000, NewCountPrimesFinder()).Count()
	for _, kb := range []int{1, 4, 32} {
		cfg := config.New(config.WithSegmentKB(kb))
		f := NewCountPrimesFinder()
		s := New(1, 50000, cfg, f)
		require.NoError(t, s.Run())
		assert.Equal(t, want, f.Count(), "segment size %dKB", kb)
	}
}

func TestPresieveLimitInvariance(t *testing.T) {
	want := run(t, 1, 50000, NewCountPrimesFinder()).Count()
	for _, limit := range []uint64{11, 13, 19, 23} {
		cfg := config.New(config.WithPresieveLimit(limit))
		f := NewCountPrimesFinder()
		s := New(1, 50000, cfg, f)
		require.NoError(t, s.Run())
		assert.Equal(t, want, f.Count(), "presieve limit %d", limit)
	}
}

func TestEmptyRangeIsNotAnError(t *testing.T) {
	f := run(t, 100, 50, NewCountPrimesFinder())
	assert.Equal(t, uint64(0), f.Count())
}
