// Package sieve implements the segmented, wheel-30 bit-packed sieve of
// Eratosthenes driver: per-segment orchestration (SieveOfEratosthenes),
// its self-bootstrapping sieving-prime generator, and the PrimeFinder
// consumer modes built on top of it.
package sieve

import (
	"math/bits"
	"time"

	"github.com/ezhangle/primesieve/internal/bucket"
	"github.com/ezhangle/primesieve/internal/config"
	"github.com/ezhangle/primesieve/internal/erat"
	"github.com/ezhangle/primesieve/internal/obs"
	"github.com/ezhangle/primesieve/internal/presieve"
	"github.com/ezhangle/primesieve/internal/wheel"
)

// Consumer receives a sieve's output. Special is invoked once, before
// any segment, to let the consumer handle the primes 2, 3, and 5 that
// the wheel-30 byte layout cannot represent, plus any presieved primes
// in [7, presieveLimit], whose own residue bit the presieve template
// clears (see presieve.clearMultiples) and which therefore never
// appear as set bits during segment scanning. Segment is invoked once
// per finished segment, in ascending order, with the byte array and its
// base lo, a multiple of 30 (bit j of byte b represents
// lo + 30*b + wheel.Residues[j]).
type Consumer interface {
	Special(start, stop, presieveLimit uint64) error
	Segment(segment []byte, lo uint64) error
}

// Sieve is a segmented, wheel-30 sieve of Eratosthenes over [start,
// stop]. It is the single engine behind both the self-bootstrapping
// sieving-prime generator (a Sieve whose consumer feeds primes back
// into another Sieve) and the prime/tuplet finder (a Sieve whose
// consumer counts, prints, or calls back).
type Sieve struct {
	start, stop  uint64
	segmentBytes uint32
	cfg          config.Config
	consumer     Consumer
	log          obs.Logger
	metrics      *obs.Metrics

	ps         *presieve.PreSieve
	arenaBase  *bucket.Arena
	arenaBig   *bucket.Arena
	small      *erat.Small
	medium     *erat.Medium
	big        *erat.Big
	smallLimit uint64
	mediumLim  uint64

	sqrtStop  uint64
	generator *Sieve

	curSegLo uint64
}

// Option configures a Sieve at construction.
type Option func(*Sieve)

// WithLogger attaches a structured logger. Default is obs.NopLogger().
func WithLogger(l obs.Logger) Option {
	return func(s *Sieve) { s.log = l }
}

// WithMetrics attaches a metrics sink. Default is nil (no metrics).
func WithMetrics(m *obs.Metrics) Option {
	return func(s *Sieve) { s.metrics = m }
}

// withSegmentBytes overrides the segment size computed from cfg. Used
// internally to size the sieving-prime generator off the L2 tunable
// instead of the L1 one the outer finder uses.
func withSegmentBytes(n uint32) Option {
	return func(s *Sieve) { s.segmentBytes = n }
}

// New builds a Sieve over [start, stop] reporting to consumer. If
// start > stop, Run returns nil without invoking the consumer.
func New(start, stop uint64, cfg config.Config, consumer Consumer, opts ...Option) *Sieve {
	s := &Sieve{
		start:        start,
		stop:         stop,
		segmentBytes: cfg.SegmentBytes(),
		cfg:          cfg,
		consumer:     consumer,
		log:          obs.NopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.sqrtStop = isqrt(stop)
	s.smallLimit = uint64(float64(s.segmentBytes) * cfg.EratSmallFactor)
	s.mediumLim = uint64(float64(s.segmentBytes) * cfg.EratMediumFactor)

	s.ps = presieve.New(cfg.PresieveLimit)
	s.arenaBase = bucket.NewArena(cfg.EratBaseBucketSize)
	s.arenaBig = bucket.NewArenaWithSlab(cfg.EratBigBucketSize, cfg.EratBigMemoryPerAlloc)
	s.small = erat.NewSmall(s.arenaBase)
	s.medium = erat.NewMedium(s.arenaBase)
	s.big = erat.NewBig(s.arenaBig, s.segmentBytes, s.sqrtStop)

	s.curSegLo = alignDown30(start)

	if s.sqrtStop >= 7 {
		genStop := s.sqrtStop
		genSegBytes := clampSegmentBytes(cfg.GeneratorSegmentBytes(), genStop)
		s.generator = New(7, genStop, cfg, &generatorFeed{outer: s}, withSegmentBytes(genSegBytes), WithLogger(s.log))
	}

	return s
}

func alignDown30(n uint64) uint64 {
	return (n / wheel.NumbersPerByte) * wheel.NumbersPerByte
}

// clampSegmentBytes avoids allocating a segment far larger than the
// range it will ever sieve, which otherwise happens at every deep
// recursion level of the sieving-prime generator.
func clampSegmentBytes(requested uint32, stop uint64) uint32 {
	needed := stop/wheel.NumbersPerByte + 1
	if needed < uint64(requested) {
		if needed == 0 {
			needed = 1
		}
		return uint32(needed)
	}
	return requested
}

// AddSievingPrime registers p as a sieving prime, classifying it into
// EratSmall, EratMedium, or EratBig by its size relative to the
// segment, and scheduling its first cross-off at the smallest wheel-30
// multiple of p that is >= max(p*p, the segment currently being
// processed).
func (s *Sieve) AddSievingPrime(p uint64) {
	minimum := p * p
	if s.curSegLo > minimum {
		minimum = s.curSegLo
	}
	k := firstWheelMultiple(p, minimum)
	m := p * k
	byteIdx := m / wheel.NumbersPerByte
	segLoByteIdx := s.curSegLo / wheel.NumbersPerByte
	phase := uint8(wheel.ClassOf(k))

	switch {
	case p <= s.smallLimit:
		s.small.Add(p, byteIdx-segLoByteIdx, phase)
	case p <= s.mediumLim:
		s.medium.Add(p, byteIdx-segLoByteIdx, phase)
	default:
		s.big.Add(p, byteIdx, segLoByteIdx, phase)
	}
}

// firstWheelMultiple returns the smallest k, coprime to 30, such that
// p*k >= minimum.
func firstWheelMultiple(p, minimum uint64) uint64 {
	k := wheel.NextCoprime((minimum + p - 1) / p)
	for p*k < minimum {
		k = wheel.NextCoprime(k + 1)
	}
	return k
}

// Run sieves [start, stop], invoking consumer.Special once and then
// consumer.Segment once per segment in ascending order.
func (s *Sieve) Run() error {
	if s.start > s.stop {
		return nil
	}
	runStart := time.Now()
	if s.metrics != nil {
		defer func() {
			s.metrics.SieveDuration.Observe(time.Since(runStart).Seconds())
		}()
	}
	if err := s.consumer.Special(s.start, s.stop, s.ps.Limit()); err != nil {
		return err
	}
	if s.generator != nil {
		if err := s.generator.Run(); err != nil {
			return err
		}
	}

	segLo := s.curSegLo
	firstSegLo := segLo
	buf := make([]byte, s.segmentBytes)
	for segLo <= s.stop {
		s.curSegLo = segLo
		s.ps.Apply(buf, segLo)

		if segLo == firstSegLo {
			clearBelow(buf, segLo, max64(s.start, 7))
		}

		s.small.CrossOff(buf)
		s.medium.CrossOff(buf)
		s.big.CrossOff(buf)

		segHi := segLo + uint64(s.segmentBytes)*wheel.NumbersPerByte - 1
		last := segHi >= s.stop
		if last {
			clearAbove(buf, s.stop, segLo)
		}

		if err := s.consumer.Segment(buf, segLo); err != nil {
			return err
		}
		if s.metrics != nil {
			s.metrics.SegmentsProcessed.Inc()
			s.metrics.PrimesFound.Add(float64(popcount(buf)))
		}

		if last {
			break
		}
		segLo += uint64(s.segmentBytes) * wheel.NumbersPerByte
	}
	return nil
}

// popcount counts the set bits across a finished segment, i.e. the
// number of primes that segment represents, for metrics purposes.
func popcount(segment []byte) int {
	n := 0
	for _, b := range segment {
		n += bits.OnesCount8(b)
	}
	return n
}

func max64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// clearBelow clears every bit in a segment based at lo representing a
// value strictly less than limit.
func clearBelow(segment []byte, lo, limit uint64) {
	for b := 0; b < len(segment); b++ {
		base := lo + uint64(b)*wheel.NumbersPerByte
		if base >= limit {
			return
		}
		for bit, v := range wheel.BitValues(base) {
			if v < limit {
				segment[b] &^= wheel.BitMask(bit)
			}
		}
	}
}

// clearAbove clears every bit in the last segment representing a value
// strictly greater than stop.
func clearAbove(segment []byte, stop, lo uint64) {
	for b := len(segment) - 1; b >= 0; b-- {
		base := lo + uint64(b)*wheel.NumbersPerByte
		if base+wheel.Residues[len(wheel.Residues)-1] <= stop {
			return
		}
		for bit, v := range wheel.BitValues(base) {
			if v > stop {
				segment[b] &^= wheel.BitMask(bit)
			}
		}
	}
}

// generatorFeed adapts a nested Sieve's reconstructed prime stream
// into calls to the outer Sieve's AddSievingPrime. The generator's own
// presieve template clears presieved primes' own bits (see
// presieve.clearMultiples), so they never appear in Segment; the outer
// sieve's Run applies that same template to its own segments, so the
// presieved primes [7, presieveLimit] are already crossed off there
// without needing a sieving prime registered for them.
type generatorFeed struct {
	outer *Sieve
}

func (g *generatorFeed) Special(start, stop, presieveLimit uint64) error {
	// 2, 3, and 5 are never sieving primes in a wheel-30 layout; the
	// generator's range starts at 7, and presieved primes are handled
	// by the outer sieve's own presieve template, not here.
	return nil
}

func (g *generatorFeed) Segment(segment []byte, lo uint64) error {
	for b := 0; b < len(segment); b++ {
		word := segment[b]
		base := lo + uint64(b)*wheel.NumbersPerByte
		for word != 0 {
			bit := trailingZeros8(word)
			word &= word - 1
			p := base + wheel.Residues[bit]
			g.outer.AddSievingPrime(p)
		}
	}
	return nil
}

func trailingZeros8(b byte) int {
	for i := 0; i < 8; i++ {
		if b&(1<<uint(i)) != 0 {
			return i
		}
	}
	return 8
}
