package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ezhangle/primesieve/internal/nthprime"
)

var nthPrimeCmd = &cobra.Command{
	Use:   "nth-prime n [start]",
	Short: "Locate the n-th prime from start (n<0 searches backward)",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runNthPrime,
}

func runNthPrime(cmd *cobra.Command, args []string) error {
	n, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid n %q: %w", args[0], err)
	}

	var start uint64
	if len(args) == 2 {
		start, err = strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid start %q: %w", args[1], err)
		}
	}

	p, err := nthprime.Locate(n, start, cliConfig(), cliLogger())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), p)
	return nil
}
