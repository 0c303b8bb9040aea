// Command primesieve is a thin CLI over the primesieve library: count,
// print, or locate primes and prime k-tuplets from the shell. It is
// deliberately thin — the library, not this binary, is the deliverable.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ezhangle/primesieve/internal/config"
	"github.com/ezhangle/primesieve/internal/obs"
)

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:          "primesieve",
	Short:        "Segmented wheel-factorized prime sieve",
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Int("segment-kb", 32, "sieve segment size in KB (1-8192)")
	flags.Int("l2-cache-kb", 256, "advisory L2 cache size in KB, used to size the sieving-prime generator")
	flags.Uint64("presieve-limit", 19, "largest prime presieved into every segment (11-23)")
	flags.Uint64("min-thread-interval", 100_000_000, "smallest sub-interval handed to one worker")
	flags.Int("threads", 1, "worker count for parallel operations; 0 uses all cores")
	flags.Bool("verbose", false, "enable debug-level structured logging")
	flags.String("metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090)")

	bindOrExit(flags, "segment-kb")
	bindOrExit(flags, "l2-cache-kb")
	bindOrExit(flags, "presieve-limit")
	bindOrExit(flags, "min-thread-interval")
	bindOrExit(flags, "threads")
	bindOrExit(flags, "verbose")
	bindOrExit(flags, "metrics-addr")

	v.SetEnvPrefix("primesieve")
	v.AutomaticEnv()

	rootCmd.AddCommand(countCmd, printCmd, nthPrimeCmd)
}

func bindOrExit(flags *pflag.FlagSet, name string) {
	if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
		fmt.Fprintf(os.Stderr, "primesieve: bind flag %s: %v\n", name, err)
		os.Exit(1)
	}
}

func cliConfig() config.Config {
	return config.New(
		config.WithSegmentKB(v.GetInt("segment-kb")),
		config.WithL2CacheKB(v.GetInt("l2-cache-kb")),
		config.WithPresieveLimit(v.GetUint64("presieve-limit")),
		config.WithMinThreadInterval(v.GetUint64("min-thread-interval")),
	)
}

func cliLogger() obs.Logger {
	var zl *zap.Logger
	var err error
	if v.GetBool("verbose") {
		zl, err = zap.NewDevelopment()
	} else {
		zl, err = zap.NewProduction()
	}
	if err != nil {
		return obs.NopLogger()
	}
	return obs.NewZapLogger(zl)
}

func cliThreads() int {
	return v.GetInt("threads")
}

// cliMetrics starts a Prometheus exposition endpoint when --metrics-addr
// is set and returns the Metrics sieve runs should record into;
// otherwise it returns nil and sieve runs record nothing.
func cliMetrics(log obs.Logger) *obs.Metrics {
	addr := v.GetString("metrics-addr")
	if addr == "" {
		return nil
	}
	reg := prometheus.NewRegistry()
	m := obs.NewMetrics(reg)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Errorw("metrics server stopped", "error", err)
		}
	}()
	return m
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
