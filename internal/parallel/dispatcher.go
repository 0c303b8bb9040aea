package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ezhangle/primesieve/internal/config"
	"github.com/ezhangle/primesieve/internal/obs"
	"github.com/ezhangle/primesieve/internal/sieve"
)

// finderFactory builds the Consumer for one chunk; it receives the
// chunk's own [start, stop] since tuplet-counting finders need it to
// bound their matcher window.
type finderFactory func(chunkStart, chunkStop uint64) (*sieve.Finder, error)

// CountPrimes runs PrimeFinder count-primes mode over [start, stop],
// split into up to `threads` concurrent chunks (0 means all cores),
// and sums the per-chunk counts.
func CountPrimes(start, stop uint64, threads int, cfg config.Config, log obs.Logger) (uint64, error) {
	return reduce(start, stop, threads, cfg, log, func(uint64, uint64) (*sieve.Finder, error) {
		return sieve.NewCountPrimesFinder(), nil
	})
}

// CountTuplets runs PrimeFinder count-k-tuplets mode over [start,
// stop], split into up to `threads` concurrent chunks, and sums the
// per-chunk counts. A chunk's tuplet matcher never sees primes past
// its own chunk boundary, so a tuplet whose smallest member lies
// within one tuplet-span of a chunk boundary can be missed; this is a
// known limitation of splitting tuplet counting, recorded in the
// grounding ledger.
func CountTuplets(k int, start, stop uint64, threads int, cfg config.Config, log obs.Logger) (uint64, error) {
	return reduce(start, stop, threads, cfg, log, func(chunkStart, chunkStop uint64) (*sieve.Finder, error) {
		return sieve.NewCountTupletFinder(k, chunkStart, chunkStop)
	})
}

func reduce(start, stop uint64, threads int, cfg config.Config, log obs.Logger, factory finderFactory) (uint64, error) {
	chunks := Split(start, stop, threads, runtime.NumCPU(), cfg.MinThreadInterval)
	if len(chunks) == 0 {
		return 0, nil
	}
	counts := make([]uint64, len(chunks))
	var g errgroup.Group
	for i, c := range chunks {
		i, c := i, c
		g.Go(func() error {
			f, err := factory(c.Start, c.Stop)
			if err != nil {
				return err
			}
			s := sieve.New(c.Start, c.Stop, cfg, f, sieve.WithLogger(log))
			if err := s.Run(); err != nil {
				return err
			}
			f.Finish()
			counts[i] = f.Count()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	var total uint64
	for _, c := range counts {
		total += c
	}
	return total, nil
}

// CallbackPrimes invokes fn once per prime in [start, stop], fanned
// out across up to `threads` concurrent chunks. Primes are delivered
// in ascending order within a chunk but interleave arbitrarily across
// chunks; fn receives the originating chunk's thread id and must be
// safe to call concurrently from multiple goroutines.
func CallbackPrimes(start, stop uint64, fn func(p uint64, threadID int) error, threads int, cfg config.Config, log obs.Logger) error {
	chunks := Split(start, stop, threads, runtime.NumCPU(), cfg.MinThreadInterval)
	var g errgroup.Group
	for _, c := range chunks {
		c := c
		g.Go(func() error {
			f := sieve.NewCallbackTIDFinder(fn, c.ThreadID)
			s := sieve.New(c.Start, c.Stop, cfg, f, sieve.WithLogger(log))
			if err := s.Run(); err != nil {
				return err
			}
			return f.Err()
		})
	}
	return g.Wait()
}
