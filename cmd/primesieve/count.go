package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ezhangle/primesieve/internal/parallel"
	"github.com/ezhangle/primesieve/internal/sieve"
)

var countKind string

var countCmd = &cobra.Command{
	Use:   "count [start] stop",
	Short: "Count primes or prime k-tuplets in [start, stop]",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runCount,
}

func init() {
	countCmd.Flags().StringVar(&countKind, "kind", "primes",
		"primes, twins, triplets, quadruplets, quintuplets, sextuplets, or septuplets")
}

func runCount(cmd *cobra.Command, args []string) error {
	start, stop, err := parseRange(args)
	if err != nil {
		return err
	}

	k, err := tupletSize(countKind)
	if err != nil {
		return err
	}

	cfg := cliConfig()
	log := cliLogger()
	threads := cliThreads()
	metrics := cliMetrics(log)

	var count uint64
	if threads == 1 {
		var f *sieve.Finder
		if k == 0 {
			f = sieve.NewCountPrimesFinder()
		} else {
			f, err = sieve.NewCountTupletFinder(k, start, stop)
			if err != nil {
				return err
			}
		}
		opts := []sieve.Option{sieve.WithLogger(log)}
		if metrics != nil {
			opts = append(opts, sieve.WithMetrics(metrics))
		}
		s := sieve.New(start, stop, cfg, f, opts...)
		if err := s.Run(); err != nil {
			return err
		}
		f.Finish()
		count = f.Count()
	} else {
		if k == 0 {
			count, err = parallel.CountPrimes(start, stop, threads, cfg, log)
		} else {
			count, err = parallel.CountTuplets(k, start, stop, threads, cfg, log)
		}
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), count)
	return nil
}

func parseRange(args []string) (start, stop uint64, err error) {
	if len(args) == 2 {
		start, err = strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid start %q: %w", args[0], err)
		}
		stop, err = strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid stop %q: %w", args[1], err)
		}
		return start, stop, nil
	}
	stop, err = strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid stop %q: %w", args[0], err)
	}
	return 0, stop, nil
}

func tupletSize(kind string) (int, error) {
	switch kind {
	case "primes":
		return 0, nil
	case "twins":
		return 2, nil
	case "triplets":
		return 3, nil
	case "quadruplets":
		return 4, nil
	case "quintuplets":
		return 5, nil
	case "sextuplets":
		return 6, nil
	case "septuplets":
		return 7, nil
	default:
		return 0, fmt.Errorf("unknown kind %q", kind)
	}
}
