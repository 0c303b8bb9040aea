// Package tuplet defines the admissible prime constellation patterns
// (twins through septuplets) and a streaming matcher that recognizes
// them from an ascending sequence of primes. Rather than the original
// library's precomputed byte-value bit-pattern lookup tables, matching
// here works directly off the already-reconstructed ascending prime
// stream PrimeFinder produces for CALLBACK/PRINT modes — the same
// stream is just scanned for the right gaps.
package tuplet

// Pattern lists the offsets, ascending and always starting at 0, of one
// admissible k-tuplet shape relative to its smallest member.
type Pattern []uint64

// Canonical constellation patterns. Several k admit more than one
// admissible shape; a tuplet counts if it matches any of them.
var (
	Twins       = []Pattern{{0, 2}}
	Triplets    = []Pattern{{0, 2, 6}, {0, 4, 6}}
	Quadruplets = []Pattern{{0, 2, 6, 8}}
	Quintuplets = []Pattern{{0, 2, 6, 8, 12}, {0, 4, 6, 10, 12}}
	Sextuplets  = []Pattern{{0, 4, 6, 10, 12, 16}}
	Septuplets  = []Pattern{{0, 2, 6, 8, 12, 18, 20}, {0, 2, 8, 12, 14, 18, 20}}
)

// ForSize returns the canonical pattern set for constellation size k
// (2..7), or nil if k is out of range.
func ForSize(k int) []Pattern {
	switch k {
	case 2:
		return Twins
	case 3:
		return Triplets
	case 4:
		return Quadruplets
	case 5:
		return Quintuplets
	case 6:
		return Sextuplets
	case 7:
		return Septuplets
	default:
		return nil
	}
}

func maxOffset(patterns []Pattern) uint64 {
	var max uint64
	for _, p := range patterns {
		if last := p[len(p)-1]; last > max {
			max = last
		}
	}
	return max
}

// Matcher counts occurrences of patterns whose smallest member lies in
// [from, to], fed one ascending prime at a time via Push.
type Matcher struct {
	patterns []Pattern
	maxSpan  uint64
	from, to uint64
	window   []uint64
	count    uint64

	// OnMatch, if set, is invoked with the full ascending member list
	// of every matched tuplet, in addition to the running Count.
	OnMatch func(members []uint64)
}

// NewMatcher builds a Matcher for the given patterns, counting only
// tuplets whose smallest member falls in [from, to].
func NewMatcher(patterns []Pattern, from, to uint64) *Matcher {
	return &Matcher{
		patterns: patterns,
		maxSpan:  maxOffset(patterns),
		from:     from,
		to:       to,
	}
}

// Push feeds the next prime in ascending order.
func (m *Matcher) Push(p uint64) {
	m.window = append(m.window, p)
	for len(m.window) > 0 && p-m.window[0] > m.maxSpan {
		m.evaluate(m.window[0])
		m.window = m.window[1:]
	}
}

// Finish flushes any candidates still pending after the last Push.
// Call it once after the prime stream for the requested range ends.
func (m *Matcher) Finish() {
	for len(m.window) > 0 {
		m.evaluate(m.window[0])
		m.window = m.window[1:]
	}
}

// Count returns the number of matched tuplets seen so far.
func (m *Matcher) Count() uint64 { return m.count }

func (m *Matcher) evaluate(smallest uint64) {
	if smallest < m.from || smallest > m.to {
		return
	}
	for _, pattern := range m.patterns {
		if m.matchesPattern(smallest, pattern) {
			m.count++
			if m.OnMatch != nil {
				members := make([]uint64, len(pattern))
				for i, offset := range pattern {
					members[i] = smallest + offset
				}
				m.OnMatch(members)
			}
			return
		}
	}
}

func (m *Matcher) matchesPattern(smallest uint64, pattern Pattern) bool {
	for _, offset := range pattern[1:] {
		if !m.contains(smallest + offset) {
			return false
		}
	}
	return true
}

func (m *Matcher) contains(target uint64) bool {
	lo, hi := 0, len(m.window)
	for lo < hi {
		mid := (lo + hi) / 2
		if m.window[mid] < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo < len(m.window) && m.window[lo] == target
}
