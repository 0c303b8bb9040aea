// Package primesieve is a segmented, wheel-factorized sieve of
// Eratosthenes engine: it counts, prints, and callback-enumerates
// primes and prime k-tuplets over [start, stop], and locates the n-th
// prime from a given offset. It is a library; CLI parsing and output
// formatting beyond print_* live in cmd/primesieve.
package primesieve

import (
	"io"

	"github.com/ezhangle/primesieve/internal/config"
	"github.com/ezhangle/primesieve/internal/nthprime"
	"github.com/ezhangle/primesieve/internal/obs"
	"github.com/ezhangle/primesieve/internal/parallel"
	"github.com/ezhangle/primesieve/internal/sieve"
	"github.com/ezhangle/primesieve/internal/sieveerr"
)

// SentinelError mirrors the historical u64::MAX failure contract of
// the library this engine is modeled on. Go callers should check the
// returned error instead; this constant exists only so a future
// C-facing binding can reproduce that contract.
const SentinelError = ^uint64(0)

// MaxStop returns the largest value stop may take.
func MaxStop() uint64 { return config.MaxStop }

var (
	defaultConfig = config.New()
	defaultLogger = obs.NopLogger()
)

func validateRange(stop uint64) error {
	if stop > config.MaxStop {
		return sieveerr.ErrInvalidRange
	}
	return nil
}

// CountPrimes returns the number of primes in [start, stop]. start >
// stop is not an error; it returns 0.
func CountPrimes(start, stop uint64) (uint64, error) {
	if start > stop {
		return 0, nil
	}
	if err := validateRange(stop); err != nil {
		return 0, err
	}
	f := sieve.NewCountPrimesFinder()
	s := sieve.New(start, stop, defaultConfig, f, sieve.WithLogger(defaultLogger))
	if err := s.Run(); err != nil {
		return 0, err
	}
	return f.Count(), nil
}

func countTuplet(k int, start, stop uint64) (uint64, error) {
	if start > stop {
		return 0, nil
	}
	if err := validateRange(stop); err != nil {
		return 0, err
	}
	f, err := sieve.NewCountTupletFinder(k, start, stop)
	if err != nil {
		return 0, err
	}
	s := sieve.New(start, stop, defaultConfig, f, sieve.WithLogger(defaultLogger))
	if err := s.Run(); err != nil {
		return 0, err
	}
	f.Finish()
	return f.Count(), nil
}

// CountTwins returns the number of twin primes (p, p+2) with p in
// [start, stop].
func CountTwins(start, stop uint64) (uint64, error) { return countTuplet(2, start, stop) }

// CountTriplets returns the number of prime triplets whose smallest
// member lies in [start, stop].
func CountTriplets(start, stop uint64) (uint64, error) { return countTuplet(3, start, stop) }

// CountQuadruplets returns the number of prime quadruplets whose
// smallest member lies in [start, stop].
func CountQuadruplets(start, stop uint64) (uint64, error) { return countTuplet(4, start, stop) }

// CountQuintuplets returns the number of prime quintuplets whose
// smallest member lies in [start, stop].
func CountQuintuplets(start, stop uint64) (uint64, error) { return countTuplet(5, start, stop) }

// CountSextuplets returns the number of prime sextuplets whose
// smallest member lies in [start, stop].
func CountSextuplets(start, stop uint64) (uint64, error) { return countTuplet(6, start, stop) }

// CountSeptuplets returns the number of prime septuplets whose
// smallest member lies in [start, stop].
func CountSeptuplets(start, stop uint64) (uint64, error) { return countTuplet(7, start, stop) }

// ParallelCountPrimes is CountPrimes split across up to threads
// concurrent workers (0 means all cores).
func ParallelCountPrimes(start, stop uint64, threads int) (uint64, error) {
	if start > stop {
		return 0, nil
	}
	if err := validateRange(stop); err != nil {
		return 0, err
	}
	return parallel.CountPrimes(start, stop, threads, defaultConfig, defaultLogger)
}

func parallelCountTuplet(k int, start, stop uint64, threads int) (uint64, error) {
	if start > stop {
		return 0, nil
	}
	if err := validateRange(stop); err != nil {
		return 0, err
	}
	return parallel.CountTuplets(k, start, stop, threads, defaultConfig, defaultLogger)
}

// ParallelCountTwins is CountTwins split across up to threads
// concurrent workers.
func ParallelCountTwins(start, stop uint64, threads int) (uint64, error) {
	return parallelCountTuplet(2, start, stop, threads)
}

// ParallelCountTriplets is CountTriplets split across up to threads
// concurrent workers.
func ParallelCountTriplets(start, stop uint64, threads int) (uint64, error) {
	return parallelCountTuplet(3, start, stop, threads)
}

// ParallelCountQuadruplets is CountQuadruplets split across up to
// threads concurrent workers.
func ParallelCountQuadruplets(start, stop uint64, threads int) (uint64, error) {
	return parallelCountTuplet(4, start, stop, threads)
}

// ParallelCountQuintuplets is CountQuintuplets split across up to
// threads concurrent workers.
func ParallelCountQuintuplets(start, stop uint64, threads int) (uint64, error) {
	return parallelCountTuplet(5, start, stop, threads)
}

// ParallelCountSextuplets is CountSextuplets split across up to
// threads concurrent workers.
func ParallelCountSextuplets(start, stop uint64, threads int) (uint64, error) {
	return parallelCountTuplet(6, start, stop, threads)
}

// ParallelCountSeptuplets is CountSeptuplets split across up to
// threads concurrent workers.
func ParallelCountSeptuplets(start, stop uint64, threads int) (uint64, error) {
	return parallelCountTuplet(7, start, stop, threads)
}

// PrintPrimes writes one decimal prime per line to w, for primes in
// [start, stop].
func PrintPrimes(w io.Writer, start, stop uint64) error {
	if start > stop {
		return nil
	}
	if err := validateRange(stop); err != nil {
		return err
	}
	f := sieve.NewPrintPrimesFinder(w)
	s := sieve.New(start, stop, defaultConfig, f, sieve.WithLogger(defaultLogger))
	return s.Run()
}

func printTuplet(k int, w io.Writer, start, stop uint64) error {
	if start > stop {
		return nil
	}
	if err := validateRange(stop); err != nil {
		return err
	}
	f, err := sieve.NewPrintTupletFinder(k, start, stop, w)
	if err != nil {
		return err
	}
	s := sieve.New(start, stop, defaultConfig, f, sieve.WithLogger(defaultLogger))
	if err := s.Run(); err != nil {
		return err
	}
	f.Finish()
	return f.Err()
}

// PrintTwins writes one "(p, p+2)" line per twin in [start, stop].
func PrintTwins(w io.Writer, start, stop uint64) error { return printTuplet(2, w, start, stop) }

// PrintTriplets writes one parenthesized triplet per line.
func PrintTriplets(w io.Writer, start, stop uint64) error { return printTuplet(3, w, start, stop) }

// PrintQuadruplets writes one parenthesized quadruplet per line.
func PrintQuadruplets(w io.Writer, start, stop uint64) error { return printTuplet(4, w, start, stop) }

// PrintQuintuplets writes one parenthesized quintuplet per line.
func PrintQuintuplets(w io.Writer, start, stop uint64) error { return printTuplet(5, w, start, stop) }

// PrintSextuplets writes one parenthesized sextuplet per line.
func PrintSextuplets(w io.Writer, start, stop uint64) error { return printTuplet(6, w, start, stop) }

// PrintSeptuplets writes one parenthesized septuplet per line.
func PrintSeptuplets(w io.Writer, start, stop uint64) error { return printTuplet(7, w, start, stop) }

// CallbackPrimes invokes fn once per prime in [start, stop], in
// ascending order.
func CallbackPrimes(start, stop uint64, fn func(prime uint64)) error {
	if start > stop {
		return nil
	}
	if err := validateRange(stop); err != nil {
		return err
	}
	f := sieve.NewCallbackFinder(func(p uint64) error {
		fn(p)
		return nil
	})
	s := sieve.New(start, stop, defaultConfig, f, sieve.WithLogger(defaultLogger))
	if err := s.Run(); err != nil {
		return err
	}
	return f.Err()
}

// ParallelCallbackPrimes invokes fn once per prime in [start, stop],
// fanned out across up to threads concurrent workers. Primes from
// different workers may interleave arbitrarily; fn must be safe to
// call from multiple goroutines at once.
func ParallelCallbackPrimes(start, stop uint64, fn func(threadID int, prime uint64), threads int) error {
	if start > stop {
		return nil
	}
	if err := validateRange(stop); err != nil {
		return err
	}
	return parallel.CallbackPrimes(start, stop, func(p uint64, threadID int) error {
		fn(threadID, p)
		return nil
	}, threads, defaultConfig, defaultLogger)
}

// NthPrime returns the n-th prime starting the search at start: for
// n > 0, the n-th prime >= start; for n < 0, the |n|-th prime <=
// start counting backward. n == 0 is invalid.
func NthPrime(n int64, start uint64) (uint64, error) {
	return nthprime.Locate(n, start, defaultConfig, defaultLogger)
}

// ParallelNthPrime returns the same result as NthPrime. The search runs
// sequentially on the calling goroutine: threads is not used, and
// nthprime.Locate does not read the narrowed MinThreadInterval.
func ParallelNthPrime(n int64, start uint64, threads int) (uint64, error) {
	cfg := defaultConfig
	cfg.MinThreadInterval = cfg.MinThreadInterval / 4
	if cfg.MinThreadInterval == 0 {
		cfg.MinThreadInterval = 1
	}
	return nthprime.Locate(n, start, cfg, defaultLogger)
}
