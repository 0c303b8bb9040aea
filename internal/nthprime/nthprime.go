// Package nthprime implements NthPrimeLocator: given n and a starting
// point, find the n-th prime from there, searching forward for
// positive n and backward for negative n. It grounds its windowing
// strategy in the teacher's own doubling-upper-bound NthPrime search,
// extended with the prime-counting-function estimate the spec calls
// for and a backward-search branch the teacher never needed.
package nthprime

import (
	"math"

	"github.com/ezhangle/primesieve/internal/config"
	"github.com/ezhangle/primesieve/internal/obs"
	"github.com/ezhangle/primesieve/internal/sieve"
	"github.com/ezhangle/primesieve/internal/sieveerr"
)

// Locate returns the n-th prime starting the search at start: forward
// for n > 0 (the n-th prime >= start), backward for n < 0 (the |n|-th
// prime <= start, counting down). n == 0 is treated as invalid, per
// the unspecified contract the spec calls out as an open question.
func Locate(n int64, start uint64, cfg config.Config, log obs.Logger) (uint64, error) {
	switch {
	case n == 0:
		return 0, sieveerr.ErrInvalidRange
	case n > 0:
		return locateForward(uint64(n), start, cfg, log)
	default:
		return locateBackward(uint64(-n), start, cfg, log)
	}
}

// found is a sentinel error a counting callback returns once it has
// seen the target prime, short-circuiting the rest of the sieve run
// instead of counting all the way to the window's end.
type found struct{ prime uint64 }

func (found) Error() string { return "nthprime: target reached" }

func locateForward(n, start uint64, cfg config.Config, log obs.Logger) (uint64, error) {
	window := estimateWindow(n, start)
	for {
		hi := start + window
		overflow := hi < start || hi > config.MaxStop
		if overflow {
			hi = config.MaxStop
		}

		var count uint64
		f := sieve.NewCallbackFinder(func(p uint64) error {
			count++
			if count == n {
				return found{p}
			}
			return nil
		})
		s := sieve.New(start, hi, cfg, f)
		err := s.Run()
		if fs, ok := sieveerr.Cause(err).(found); ok {
			return fs.prime, nil
		}
		if err != nil {
			return 0, err
		}
		// err == nil means the whole window was sieved without count
		// ever reaching n.
		if overflow {
			return 0, sieveerr.ErrInvalidRange
		}
		log.Debugw("nth prime window too short, widening", "n", n, "start", start, "window", window)
		window *= 2
	}
}

func locateBackward(n, start uint64, cfg config.Config, log obs.Logger) (uint64, error) {
	window := estimateWindow(n, start)
	for {
		var lo uint64
		if window >= start {
			lo = 0
		} else {
			lo = start - window
		}

		var primes []uint64
		f := sieve.NewCallbackFinder(func(p uint64) error {
			primes = append(primes, p)
			return nil
		})
		s := sieve.New(lo, start, cfg, f)
		if err := s.Run(); err != nil {
			return 0, err
		}
		if uint64(len(primes)) >= n {
			return primes[uint64(len(primes))-n], nil
		}
		if lo == 0 {
			return 0, sieveerr.ErrInvalidRange
		}
		log.Debugw("nth prime backward window too short, widening", "n", n, "start", start, "window", window)
		window *= 2
	}
}

// estimateWindow sizes the first search window using pi(x) ~ x/ln(x)
// to approximate how many primes already precede start, then the
// spec's inverse prime-counting-function estimate
// pi^-1(n) ~ n*(ln(n) + ln(ln(n))) to place the n-th prime after that,
// with a safety margin since both approximations are asymptotic.
func estimateWindow(n, start uint64) uint64 {
	priorCount := 0.0
	if start > 2 {
		priorCount = float64(start) / math.Log(float64(start))
	}
	target := priorCount + float64(n)
	if target < 6 {
		target = 6
	}
	lnTarget := math.Log(target)
	pos := target * (lnTarget + math.Log(lnTarget))

	window := pos - float64(start)
	minWindow := float64(n)*10 + 1000
	if window < minWindow {
		window = minWindow
	}
	return uint64(window * 1.5)
}
