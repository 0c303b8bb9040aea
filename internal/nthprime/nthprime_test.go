package nthprime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezhangle/primesieve/internal/config"
	"github.com/ezhangle/primesieve/internal/obs"
	"github.com/ezhangle/primesieve/internal/sieveerr"
)

func TestLocateForwardKnownValues(t *testing.T) {
	cfg := config.New()
	cases := []struct {
		n    int64
		want uint64
	}{
		{1, 2},
		{25, 97},
		{500, 3571},
	}
	for _, c := range cases {
		got, err := Locate(c.n, 0, cfg, obs.NopLogger())
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "nth_prime(%d,0)", c.n)
	}
}

func TestLocateZeroIsInvalid(t *testing.T) {
	cfg := config.New()
	_, err := Locate(0, 0, cfg, obs.NopLogger())
	assert.ErrorIs(t, err, sieveerr.ErrInvalidRange)
}

func TestLocateForwardWithOffsetStart(t *testing.T) {
	cfg := config.New()
	// the 1st prime starting the search at 4 is still 5 (4 itself isn't
	// prime but the search is inclusive of start).
	got, err := Locate(1, 4, cfg, obs.NopLogger())
	require.NoError(t, err)
	assert.Equal(t, uint64(5), got)
}

func TestLocateBackwardFromKnownForwardResult(t *testing.T) {
	cfg := config.New()
	// the 3rd prime <= 11 counting down is 5: 11, 7, 5.
	got, err := Locate(-3, 11, cfg, obs.NopLogger())
	require.NoError(t, err)
	assert.Equal(t, uint64(5), got)
}
