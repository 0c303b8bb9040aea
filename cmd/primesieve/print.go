package main

import (
	"bufio"

	"github.com/spf13/cobra"

	"github.com/ezhangle/primesieve/internal/sieve"
)

var printKind string

var printCmd = &cobra.Command{
	Use:   "print [start] stop",
	Short: "Print primes or prime k-tuplets in [start, stop], one per line",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runPrint,
}

func init() {
	printCmd.Flags().StringVar(&printKind, "kind", "primes",
		"primes, twins, triplets, quadruplets, quintuplets, sextuplets, or septuplets")
}

func runPrint(cmd *cobra.Command, args []string) error {
	start, stop, err := parseRange(args)
	if err != nil {
		return err
	}

	k, err := tupletSize(printKind)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	var f *sieve.Finder
	if k == 0 {
		f = sieve.NewPrintPrimesFinder(out)
	} else {
		f, err = sieve.NewPrintTupletFinder(k, start, stop, out)
		if err != nil {
			return err
		}
	}

	log := cliLogger()
	opts := []sieve.Option{sieve.WithLogger(log)}
	if m := cliMetrics(log); m != nil {
		opts = append(opts, sieve.WithMetrics(m))
	}
	s := sieve.New(start, stop, cliConfig(), f, opts...)
	if err := s.Run(); err != nil {
		return err
	}
	f.Finish()
	return f.Err()
}
