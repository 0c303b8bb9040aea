package primesieve

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountPrimesReferenceValues(t *testing.T) {
	cases := []struct {
		n    uint64
		want uint64
	}{
		{10, 4},
		{1000, 168},
		{1000000, 78498},
	}
	for _, c := range cases {
		got, err := CountPrimes(0, c.n)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "count_primes(0, %d)", c.n)
	}
}

func TestCountPrimesReferenceValueLarge(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping pi(10^9) in short mode")
	}
	got, err := CountPrimes(0, 1_000_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(50847534), got)
}

func TestCountTwinsMillionRange(t *testing.T) {
	got, err := CountTwins(1, 1_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(8169), got)
}

func TestCountPrimesTrillionWindow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping count_primes(10^12, 10^12+10^9) in short mode")
	}
	got, err := CountPrimes(1_000_000_000_000, 1_000_000_000_000+1_000_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(36190991), got)
}

func TestCountSextupletsKnownValue(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping count_sextuplets(1, 10^9) in short mode")
	}
	got, err := CountSextuplets(1, 1_000_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(1259), got)
}

func TestNthPrimeReferenceValues(t *testing.T) {
	cases := []struct {
		n    int64
		want uint64
	}{
		{1, 2},
		{25, 97},
	}
	for _, c := range cases {
		got, err := NthPrime(c.n, 0)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "nth_prime(%d, 0)", c.n)
	}
}

func TestNthPrimeReferenceValueLarge(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping nth_prime(10^6, 0) in short mode")
	}
	got, err := NthPrime(1_000_000, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(15485863), got)
}

func TestNthPrimeInverseProperty(t *testing.T) {
	for _, k := range []int64{1, 2, 10, 100, 1000, 9999} {
		p, err := NthPrime(k, 0)
		require.NoError(t, err)
		count, err := CountPrimes(0, p)
		require.NoError(t, err)
		assert.Equal(t, uint64(k), count, "count_primes(0, nth_prime(%d,0)) should equal %d", k, k)
	}
}

func TestEmptyRangeIsNotAnError(t *testing.T) {
	count, err := CountPrimes(100, 50)
	require.NoError(t, err)
	assert.Zero(t, count)

	var buf bytes.Buffer
	require.NoError(t, PrintPrimes(&buf, 100, 50))
	assert.Empty(t, buf.String())
}

func TestStopBeyondMaxStopIsInvalid(t *testing.T) {
	_, err := CountPrimes(0, MaxStop()+1)
	assert.Error(t, err)
}

func TestMaxStopMatchesDocumentedFormula(t *testing.T) {
	want := (uint64(1)<<64 - 1) - (uint64(1)<<32-1)*10
	assert.Equal(t, want, MaxStop())
}

func TestCountTwinsAndTripletsSmallRange(t *testing.T) {
	twins, err := CountTwins(1, 30)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), twins)

	triplets, err := CountTriplets(1, 30)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), triplets)
}

func TestPrintPrimesWritesExpectedPrimes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintPrimes(&buf, 1, 20))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{"2", "3", "5", "7", "11", "13", "17", "19"}, lines)
}

func TestPrintTwinsFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintTwins(&buf, 1, 20))
	assert.Equal(t, "(3, 5)\n(5, 7)\n(11, 13)\n(17, 19)\n", buf.String())
}

func TestCallbackPrimesMatchesCountPrimes(t *testing.T) {
	var collected []uint64
	err := CallbackPrimes(1, 100, func(p uint64) {
		collected = append(collected, p)
	})
	require.NoError(t, err)

	count, err := CountPrimes(1, 100)
	require.NoError(t, err)
	assert.Equal(t, count, uint64(len(collected)))
}

func TestParallelCountPrimesMatchesSerial(t *testing.T) {
	serial, err := CountPrimes(1, 500000)
	require.NoError(t, err)

	parallel, err := ParallelCountPrimes(1, 500000, 4)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
}

func TestParallelCallbackPrimesCollectsFullMultiset(t *testing.T) {
	var mu sync.Mutex
	var collected []uint64
	err := ParallelCallbackPrimes(1, 200000, func(threadID int, p uint64) {
		mu.Lock()
		collected = append(collected, p)
		mu.Unlock()
	}, 4)
	require.NoError(t, err)

	count, err := CountPrimes(1, 200000)
	require.NoError(t, err)
	assert.Equal(t, count, uint64(len(collected)))
}

func TestNthPrimeZeroIsInvalid(t *testing.T) {
	_, err := NthPrime(0, 0)
	assert.Error(t, err)
}
