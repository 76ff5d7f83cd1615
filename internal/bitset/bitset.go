// Package bitset provides a fixed-size bitmap used to track slot occupancy
// in datum arrays. One bit per slot, packed into uint64 words so free-slot
// scans can skip 64 slots at a time with math/bits.
package bitset

import "math/bits"

const wordBits = 64

// Bitset is a fixed-capacity bitmap. The zero value is unusable; construct
// with New. Bits beyond the declared size are always zero.
type Bitset struct {
	words []uint64
	size  int
}

// New creates a bitset holding n bits, all clear.
func New(n int) *Bitset {
	if n < 0 {
		n = 0
	}
	return &Bitset{
		words: make([]uint64, (n+wordBits-1)/wordBits),
		size:  n,
	}
}

// Size returns the number of bits the set holds.
func (b *Bitset) Size() int { return b.size }

// Set marks bit i. Out-of-range indices are ignored.
func (b *Bitset) Set(i int) {
	if i < 0 || i >= b.size {
		return
	}
	b.words[i/wordBits] |= 1 << (uint(i) % wordBits)
}

// Clear unmarks bit i. Out-of-range indices are ignored.
func (b *Bitset) Clear(i int) {
	if i < 0 || i >= b.size {
		return
	}
	b.words[i/wordBits] &^= 1 << (uint(i) % wordBits)
}

// Test reports whether bit i is set. Out-of-range indices report false.
func (b *Bitset) Test(i int) bool {
	if i < 0 || i >= b.size {
		return false
	}
	return b.words[i/wordBits]&(1<<(uint(i)%wordBits)) != 0
}

// Count returns the number of set bits.
func (b *Bitset) Count() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Reset clears every bit.
func (b *Bitset) Reset() {
	for i := range b.words {
		b.words[i] = 0
	}
}

// NextSet returns the index of the first set bit in [from, limit), or
// (0, false) if none exists. limit is clamped to the bitset size.
func (b *Bitset) NextSet(from, limit int) (int, bool) {
	return b.scan(from, limit, false)
}

// NextClear returns the index of the first clear bit in [from, limit), or
// (0, false) if none exists. limit is clamped to the bitset size.
func (b *Bitset) NextClear(from, limit int) (int, bool) {
	return b.scan(from, limit, true)
}

func (b *Bitset) scan(from, limit int, invert bool) (int, bool) {
	if limit > b.size {
		limit = b.size
	}
	if from < 0 {
		from = 0
	}
	if from >= limit {
		return 0, false
	}
	wi := from / wordBits
	w := b.words[wi]
	if invert {
		w = ^w
	}
	// Mask off bits below the starting position in the first word.
	w &= ^uint64(0) << (uint(from) % wordBits)
	for {
		if w != 0 {
			i := wi*wordBits + bits.TrailingZeros64(w)
			if i >= limit {
				return 0, false
			}
			return i, true
		}
		wi++
		if wi*wordBits >= limit {
			return 0, false
		}
		w = b.words[wi]
		if invert {
			w = ^w
		}
	}
}
