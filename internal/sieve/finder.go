package sieve

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ezhangle/primesieve/internal/sieveerr"
	"github.com/ezhangle/primesieve/internal/tuplet"
	"github.com/ezhangle/primesieve/internal/wheel"
)

// Finder is the Consumer that implements PrimeFinder's five modes:
// counting primes, counting k-tuplets, printing primes, printing
// k-tuplets, and invoking a user callback per prime.
type Finder struct {
	count       uint64
	writer      io.Writer
	callback    func(p uint64) error
	callbackTID func(p uint64, threadID int) error
	threadID    int
	matcher     *tuplet.Matcher
	printTuplet bool
	err         error
}

// NewCountPrimesFinder counts primes in [start, stop].
func NewCountPrimesFinder() *Finder {
	return &Finder{}
}

// NewCountTupletFinder counts k-tuplets (k in 2..7) whose smallest
// member lies in [start, stop].
func NewCountTupletFinder(k int, start, stop uint64) (*Finder, error) {
	patterns := tuplet.ForSize(k)
	if patterns == nil {
		return nil, fmt.Errorf("primesieve: invalid tuplet size %d", k)
	}
	return &Finder{matcher: tuplet.NewMatcher(patterns, start, stop)}, nil
}

// NewPrintPrimesFinder writes one decimal prime per line to w.
func NewPrintPrimesFinder(w io.Writer) *Finder {
	return &Finder{writer: w}
}

// NewPrintTupletFinder writes one parenthesized tuplet per line to w.
func NewPrintTupletFinder(k int, start, stop uint64, w io.Writer) (*Finder, error) {
	patterns := tuplet.ForSize(k)
	if patterns == nil {
		return nil, fmt.Errorf("primesieve: invalid tuplet size %d", k)
	}
	m := tuplet.NewMatcher(patterns, start, stop)
	f := &Finder{matcher: m, writer: w, printTuplet: true}
	m.OnMatch = func(members []uint64) {
		f.writeTuplet(members)
	}
	return f, nil
}

// NewCallbackFinder invokes fn once per prime in ascending order.
func NewCallbackFinder(fn func(p uint64) error) *Finder {
	return &Finder{callback: fn}
}

// NewCallbackTIDFinder invokes fn once per prime, tagging every call
// with threadID. Used by the parallel dispatcher.
func NewCallbackTIDFinder(fn func(p uint64, threadID int) error, threadID int) *Finder {
	return &Finder{callbackTID: fn, threadID: threadID}
}

// Count returns the accumulated prime or tuplet count.
func (f *Finder) Count() uint64 {
	if f.matcher != nil {
		return f.matcher.Count()
	}
	return f.count
}

// Special emits or counts the primes 2, 3, and 5, which the wheel-30
// layout cannot represent, plus any presieved primes in [7, limit]: the
// presieve template clears their own residue bit (so it tiles
// correctly across periods), which means segment scanning never
// reconstructs them and they must be reported here instead.
func (f *Finder) Special(start, stop, presieveLimit uint64) error {
	for _, p := range []uint64{2, 3, 5} {
		if p < start || p > stop {
			continue
		}
		if err := f.emit(p); err != nil {
			return err
		}
	}
	for p := uint64(7); p <= presieveLimit; p = wheel.NextCoprime(p + 1) {
		if p < start || p > stop {
			continue
		}
		if err := f.emit(p); err != nil {
			return err
		}
	}
	return nil
}

// Segment reconstructs every prime in segment and routes it to the
// active mode.
func (f *Finder) Segment(segment []byte, lo uint64) error {
	if f.err != nil {
		return f.err
	}
	for b := 0; b < len(segment); b++ {
		word := segment[b]
		if word == 0 {
			continue
		}
		base := lo + uint64(b)*wheel.NumbersPerByte
		for word != 0 {
			bit := trailingZeros8(word)
			word &= word - 1
			p := base + wheel.Residues[bit]
			if err := f.emit(p); err != nil {
				return err
			}
		}
	}
	return nil
}

// Finish flushes any pending tuplet matches and must be called once
// after the sieve's Run returns, for tuplet-counting and tuplet-
// printing modes.
func (f *Finder) Finish() {
	if f.matcher != nil {
		f.matcher.Finish()
	}
}

func (f *Finder) emit(p uint64) error {
	switch {
	case f.matcher != nil:
		f.matcher.Push(p)
		return nil
	case f.writer != nil:
		if _, err := fmt.Fprintln(f.writer, p); err != nil {
			f.err = sieveerr.Wrap(err, "print prime")
			return f.err
		}
		return nil
	case f.callback != nil:
		if err := f.safeCall(func() error { return f.callback(p) }); err != nil {
			return err
		}
		return nil
	case f.callbackTID != nil:
		if err := f.safeCall(func() error { return f.callbackTID(p, f.threadID) }); err != nil {
			return err
		}
		return nil
	default:
		f.count++
		return nil
	}
}

func (f *Finder) safeCall(call func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = sieveerr.Wrap(sieveerr.ErrUserCallback, fmt.Sprintf("user callback panic: %v", r))
			f.err = err
		}
	}()
	if callErr := call(); callErr != nil {
		err = sieveerr.Wrap(callErr, "user callback")
		f.err = err
	}
	return err
}

func (f *Finder) writeTuplet(members []uint64) {
	if f.writer == nil || f.err != nil {
		return
	}
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = strconv.FormatUint(m, 10)
	}
	if _, err := fmt.Fprintln(f.writer, "("+strings.Join(parts, ", ")+")"); err != nil {
		f.err = sieveerr.Wrap(err, "print tuplet")
	}
}

// Err returns the first error encountered while emitting, if any.
func (f *Finder) Err() error { return f.err }
