// Package config holds the tunable constants that shape the sieve's
// memory layout and parallel behavior, built with the functional-options
// pattern rather than a struct literal so defaults stay centralized and
// callers only spell out the knobs they actually want to change.
package config

// MaxStop is the largest value `stop` may take: (2^64 - 1) - (2^32 -
// 1)*10. The margin below the true uint64 ceiling keeps every sieving
// prime's square, and every wheel-30 byte-index computation derived
// from it, safely within uint64 range.
const MaxStop uint64 = (1<<64 - 1) - (1<<32-1)*10

// Config collects every tunable the sieve, its cross-off engines, and
// the parallel dispatcher consult. Zero-value Config is never used
// directly; always build one with New.
type Config struct {
	L1DCacheSizeKB        int
	L2CacheSizeKB         int
	PresieveLimit         uint64
	MinThreadInterval     uint64
	EratSmallFactor       float64
	EratMediumFactor      float64
	EratBaseBucketSize    int
	EratBigBucketSize     int
	EratBigMemoryPerAlloc int
}

// Option configures a Config under construction.
type Option func(*Config)

// WithSegmentKB sets the sieve segment size, which defaults to
// L1DCacheSizeKB. Valid range is [1, 8192].
func WithSegmentKB(kb int) Option {
	return func(c *Config) { c.L1DCacheSizeKB = kb }
}

// WithL2CacheKB sets the advisory L2 cache size used to size the
// generator's own segment when bootstrapping sieving primes.
func WithL2CacheKB(kb int) Option {
	return func(c *Config) { c.L2CacheSizeKB = kb }
}

// WithPresieveLimit sets the largest prime presieved into every
// segment's initial state. Valid range is [11, 23].
func WithPresieveLimit(limit uint64) Option {
	return func(c *Config) { c.PresieveLimit = limit }
}

// WithMinThreadInterval sets the smallest sub-interval length the
// parallel dispatcher will hand to one worker. Must be >= 10^8.
func WithMinThreadInterval(n uint64) Option {
	return func(c *Config) { c.MinThreadInterval = n }
}

// WithEratSmallFactor sets the EratSmall/EratMedium classification
// boundary multiplier. Must be < 5.
func WithEratSmallFactor(f float64) Option {
	return func(c *Config) { c.EratSmallFactor = f }
}

// WithEratMediumFactor sets the EratMedium/EratBig classification
// boundary multiplier.
func WithEratMediumFactor(f float64) Option {
	return func(c *Config) { c.EratMediumFactor = f }
}

// WithEratBaseBucketSize sets the per-bucket entry cap used by
// EratSmall and EratMedium.
func WithEratBaseBucketSize(n int) Option {
	return func(c *Config) { c.EratBaseBucketSize = n }
}

// WithEratBigBucketSize sets the per-bucket entry cap used by EratBig.
func WithEratBigBucketSize(n int) Option {
	return func(c *Config) { c.EratBigBucketSize = n }
}

// WithEratBigMemoryPerAlloc sets the slab size, in bytes, the bucket
// arena requests at a time.
func WithEratBigMemoryPerAlloc(n int) Option {
	return func(c *Config) { c.EratBigMemoryPerAlloc = n }
}

// New builds a Config from the package defaults, applying opts in
// order.
func New(opts ...Option) Config {
	c := Config{
		L1DCacheSizeKB:        32,
		L2CacheSizeKB:         256,
		PresieveLimit:         19,
		MinThreadInterval:     100_000_000,
		EratSmallFactor:       1.5,
		EratMediumFactor:      9,
		EratBaseBucketSize:    4096,
		EratBigBucketSize:     1024,
		EratBigMemoryPerAlloc: 4 << 20,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// SegmentBytes returns the configured segment size in bytes.
func (c Config) SegmentBytes() uint32 {
	return uint32(c.L1DCacheSizeKB) * 1024
}

// GeneratorSegmentBytes returns the segment size used when sieving for
// sieving primes, sized off the advisory L2 cache since the generator's
// range (up to isqrt(stop)) is typically far smaller than the L1
// default segment would waste memory bandwidth on.
func (c Config) GeneratorSegmentBytes() uint32 {
	return uint32(c.L2CacheSizeKB) * 1024
}
