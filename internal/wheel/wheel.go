// Package wheel implements the wheel-30 arithmetic that underlies the
// sieve's byte layout: eight bits per byte, one for each residue class
// coprime to 30.
package wheel

// NumbersPerByte is the count of consecutive integers one sieve byte
// represents.
const NumbersPerByte = 30

// Residues holds the eight residues mod 30 that are coprime to 30, in
// ascending order. Bit j of a sieve byte represents Residues[j].
var Residues = [8]uint64{1, 7, 11, 13, 17, 19, 23, 29}

// deltaK is the gap, in units of k, between successive coprime-30
// residues starting from 1: 1->7->11->13->17->19->23->29->31(=1 mod 30).
var deltaK = [8]uint64{6, 4, 2, 4, 2, 4, 6, 2}

// residueIndex maps a residue mod 30 to its index in Residues, or -1 if
// the residue shares a factor with 30.
var residueIndex [30]int8

func init() {
	for i := range residueIndex {
		residueIndex[i] = -1
	}
	for i, r := range Residues {
		residueIndex[r] = int8(i)
	}
}

// IndexOf returns the bit index (0..7) of a residue mod 30 that is
// coprime to 30, and false if it is not representable.
func IndexOf(residueMod30 uint64) (int, bool) {
	idx := residueIndex[residueMod30%NumbersPerByte]
	if idx < 0 {
		return 0, false
	}
	return int(idx), true
}

// BitMask returns the bit mask for the given wheel index.
func BitMask(idx int) byte {
	return 1 << uint(idx)
}

// UnsetMask returns the mask to AND into a byte to clear the bit at idx.
func UnsetMask(idx int) byte {
	return ^BitMask(idx)
}

// Step describes how a sieving prime's cross-off cursor advances by one
// wheel increment: clear bit Mask (segment[idx] &^= Mask) in the
// current byte, then add ByteDelta to the byte index and move to
// NextIndex for the following cross-off.
type Step struct {
	ByteDelta uint32
	Mask      byte
	NextIndex uint8
}

// classResidue returns (residue*Residues[phase]) mod 30, i.e. the
// residue mod 30 of the k-th coprime multiple of a prime whose own
// residue mod 30 is `residue`.
func classResidue(residue uint64, phase int) uint64 {
	return (residue * Residues[phase]) % NumbersPerByte
}

// MaskTable[c][phase] is the single-bit mask selecting the composite
// bit to clear for a sieving prime p with p%30 == Residues[c], on wheel
// phase `phase` (apply with segment[idx] &^= MaskTable[c][phase]). This
// half of the wheel table depends only on p's residue class, not its
// magnitude, so it is safe to precompute once as a static 8x8 table.
var MaskTable [8][8]byte

func init() {
	for c, pr := range Residues {
		for phase := 0; phase < 8; phase++ {
			r := classResidue(pr, phase)
			idx, ok := IndexOf(r)
			if !ok {
				panic("wheel: residue class table is inconsistent")
			}
			MaskTable[c][phase] = BitMask(idx)
		}
	}
}

// ClassOf returns the wheel residue class (0..7) of a sieving prime p,
// i.e. the index such that p%30 == Residues[ClassOf(p)]. p must be
// coprime to 30.
func ClassOf(p uint64) int {
	idx, ok := IndexOf(p % NumbersPerByte)
	if !ok {
		panic("wheel: sieving prime must be coprime to 30")
	}
	return idx
}

// Steps precomputes the 8-phase wheel cycle for a specific sieving
// prime p (coprime to 30). Unlike MaskTable, the byte delta between
// consecutive multiples of p depends on p's magnitude, not just its
// residue class, so this table is computed per prime rather than
// shared; the cross-off loops call it for each prime they walk.
//
// Derivation: let m be the current multiple (coprime to 30) and m' the
// next one, m' = m + p*deltaK[phase]. Both land on fixed residues
// curResidue = (p%30 * Residues[phase]) % 30 and nextResidue =
// (p%30 * Residues[(phase+1)%8]) % 30, independent of m's absolute
// value. Writing m = 30*bi + curResidue and m' = 30*bi' + nextResidue,
// m' - m = p*deltaK[phase] forces
// bi' - bi = (p*deltaK[phase] - (nextResidue - curResidue)) / 30,
// which is always an exact integer.
func Steps(p uint64) [8]Step {
	class := ClassOf(p)
	var steps [8]Step
	for phase := 0; phase < 8; phase++ {
		next := (phase + 1) % 8
		curResidue := classResidue(Residues[class], phase)
		nextResidue := classResidue(Residues[class], next)
		stride := p * deltaK[phase]
		diff := int64(nextResidue) - int64(curResidue)
		byteDelta := (int64(stride) - diff) / NumbersPerByte
		steps[phase] = Step{
			ByteDelta: uint32(byteDelta),
			Mask:      MaskTable[class][phase],
			NextIndex: uint8(next),
		}
	}
	return steps
}

// NextCoprime returns the smallest k >= n with gcd(k, 30) == 1.
func NextCoprime(n uint64) uint64 {
	for {
		if _, ok := IndexOf(n % NumbersPerByte); ok {
			return n
		}
		n++
	}
}

// BitValues returns, for a byte whose base (30 times its absolute byte
// index) is `base`, the eight integers the byte's bits represent, in
// bit order; bit 0 represents base+1.
func BitValues(base uint64) [8]uint64 {
	var vals [8]uint64
	for i, r := range Residues {
		vals[i] = base + r
	}
	return vals
}
