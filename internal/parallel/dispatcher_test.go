package parallel

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezhangle/primesieve/internal/config"
	"github.com/ezhangle/primesieve/internal/obs"
	"github.com/ezhangle/primesieve/internal/sieve"
)

func serialCount(t *testing.T, start, stop uint64, cfg config.Config) uint64 {
	t.Helper()
	f := sieve.NewCountPrimesFinder()
	s := sieve.New(start, stop, cfg, f)
	require.NoError(t, s.Run())
	return f.Count()
}

func TestParallelCountMatchesSerialAcrossThreadCounts(t *testing.T) {
	cfg := config.New(config.WithMinThreadInterval(1000))
	start, stop := uint64(1), uint64(200000)
	want := serialCount(t, start, stop, cfg)

	for _, threads := range []int{1, 2, 4, 8} {
		got, err := CountPrimes(start, stop, threads, cfg, obs.NopLogger())
		require.NoError(t, err)
		assert.Equal(t, want, got, "threads=%d", threads)
	}
}

func TestCallbackPrimesParallelCollectsFullMultiset(t *testing.T) {
	cfg := config.New(config.WithMinThreadInterval(1000))
	start, stop := uint64(1), uint64(50000)

	var serial []uint64
	f := sieve.NewCallbackFinder(func(p uint64) error {
		serial = append(serial, p)
		return nil
	})
	s := sieve.New(start, stop, cfg, f)
	require.NoError(t, s.Run())

	var mu sync.Mutex
	var parallelResult []uint64
	err := CallbackPrimes(start, stop, func(p uint64, threadID int) error {
		mu.Lock()
		parallelResult = append(parallelResult, p)
		mu.Unlock()
		return nil
	}, 4, cfg, obs.NopLogger())
	require.NoError(t, err)

	assert.ElementsMatch(t, serial, parallelResult)
}
