package format

// Alignment and sizing utilities for engine data arrays. Datum addresses can
// be aligned to a power-of-two boundary given as a bit count (the header's
// Alignment field), with 0 meaning no alignment.

// MaxAlignBits is the largest alignment bit count a header may carry. The
// engine is a 32-bit target, so alignments at or beyond 2^31 are impossible;
// headers claiming more are corrupt and rejected at parse time.
const MaxAlignBits = 30

// AlignPow2 returns n aligned up to the next 2^bits boundary. bits == 0
// returns n unchanged. bits beyond MaxAlignBits is clamped so an untrusted
// byte can never drive the shift into overflow.
func AlignPow2(n int, bits uint8) int {
	if bits == 0 {
		return n
	}
	if bits > MaxAlignBits {
		bits = MaxAlignBits
	}
	mask := (1 << bits) - 1
	return (n + mask) & ^mask
}

// DatumStride returns the per-slot stride for a datum of the given size
// under the given alignment.
func DatumStride(datumSize int, alignBits uint8) int {
	return AlignPow2(datumSize, alignBits)
}

// BitArraySize returns the byte size of the liveness bit array for count
// slots: one bit per slot, packed into 32-bit words.
func BitArraySize(count int) int {
	words := (count + BitsPerWord - 1) / BitsPerWord
	return words * 4
}

// ArraySize returns the total allocation size for a data array: the padded
// header, count datums at their aligned stride, and the liveness bit array.
func ArraySize(datumSize, count int, alignBits uint8) int {
	header := AlignPow2(ArrayHeaderSize, alignBits)
	return header + count*DatumStride(datumSize, alignBits) + BitArraySize(count)
}
