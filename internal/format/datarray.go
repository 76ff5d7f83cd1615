package format

import "fmt"

// ArrayHeader is the decoded form of a data array header. Pointer-typed
// fields (Allocator, Data, ActiveIndices) are kept as raw 32-bit addresses
// from the source address space; they are only meaningful for diagnostics.
type ArrayHeader struct {
	Name             string
	MaxCount         int32
	DatumSize        int32
	Alignment        uint8 // bit to align datum addresses to, 0 = none
	IsValid          bool
	Flags            uint16
	Allocator        uint32
	NextIndex        int32
	FirstUnallocated int32
	ActualCount      int32
	NextSalt         uint16
	AltNextSalt      uint16
	Data             uint32
	ActiveIndices    uint32
	HeaderSize       int32
	TotalSize        int32
}

// ParseArrayHeader decodes and sanity-checks a data array header at the
// start of b.
func ParseArrayHeader(b []byte) (*ArrayHeader, error) {
	if len(b) < ArrayHeaderSize {
		return nil, fmt.Errorf("%w: need %d bytes for array header, have %d",
			ErrShortBuffer, ArrayHeaderSize, len(b))
	}
	if sig := ReadU32(b, OffArraySignature); sig != SigDataArray {
		return nil, fmt.Errorf("%w: expected 'd@t@' (%#08x), got %#08x",
			ErrBadSignature, SigDataArray, sig)
	}

	h := &ArrayHeader{
		Name:             DecodeName(b[OffArrayName : OffArrayName+NameSize]),
		MaxCount:         ReadI32(b, OffArrayMaxCount),
		DatumSize:        ReadI32(b, OffArrayDatumSize),
		Alignment:        b[OffArrayAlignment],
		IsValid:          b[OffArrayIsValid] != 0,
		Flags:            ReadU16(b, OffArrayFlags),
		Allocator:        ReadU32(b, OffArrayAllocator),
		NextIndex:        ReadI32(b, OffArrayNextIndex),
		FirstUnallocated: ReadI32(b, OffArrayFirstUnalloc),
		ActualCount:      ReadI32(b, OffArrayActualCount),
		NextSalt:         ReadU16(b, OffArrayNextSalt),
		AltNextSalt:      ReadU16(b, OffArrayAltNextSalt),
		Data:             ReadU32(b, OffArrayData),
		ActiveIndices:    ReadU32(b, OffArrayActiveBits),
		HeaderSize:       ReadI32(b, OffArrayHeaderSize),
		TotalSize:        ReadI32(b, OffArrayTotalSize),
	}
	if err := h.validate(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *ArrayHeader) validate() error {
	switch {
	case h.MaxCount < 0 || h.MaxCount > MaxIndex:
		return fmt.Errorf("%w: max count %d", ErrBadHeader, h.MaxCount)
	case h.DatumSize < MinDatumSize:
		return fmt.Errorf("%w: datum size %d below minimum %d",
			ErrBadHeader, h.DatumSize, MinDatumSize)
	case h.Alignment > MaxAlignBits:
		return fmt.Errorf("%w: alignment bit %d beyond %d",
			ErrBadHeader, h.Alignment, MaxAlignBits)
	case h.HeaderSize < ArrayHeaderSize:
		return fmt.Errorf("%w: header size %d below %d",
			ErrBadHeader, h.HeaderSize, ArrayHeaderSize)
	case h.ActualCount < 0 || h.ActualCount > h.MaxCount:
		return fmt.Errorf("%w: actual count %d with max count %d",
			ErrBadHeader, h.ActualCount, h.MaxCount)
	case h.NextIndex < 0 || h.NextIndex > h.MaxCount:
		return fmt.Errorf("%w: next index %d", ErrBadHeader, h.NextIndex)
	case h.FirstUnallocated < 0 || h.FirstUnallocated > h.MaxCount:
		return fmt.Errorf("%w: first unallocated %d", ErrBadHeader, h.FirstUnallocated)
	case h.TotalSize < h.HeaderSize:
		return fmt.Errorf("%w: total size %d below header size %d",
			ErrBadHeader, h.TotalSize, h.HeaderSize)
	}
	return nil
}

// EncodeArrayHeader writes h into a fresh ArrayHeaderSize buffer. Used by
// snapshot builders and tests.
func EncodeArrayHeader(h *ArrayHeader) []byte {
	b := make([]byte, ArrayHeaderSize)
	name := EncodeName(h.Name)
	copy(b[OffArrayName:], name[:])
	PutI32(b, OffArrayMaxCount, h.MaxCount)
	PutI32(b, OffArrayDatumSize, h.DatumSize)
	b[OffArrayAlignment] = h.Alignment
	if h.IsValid {
		b[OffArrayIsValid] = 1
	}
	PutU16(b, OffArrayFlags, h.Flags)
	PutU32(b, OffArraySignature, SigDataArray)
	PutU32(b, OffArrayAllocator, h.Allocator)
	PutI32(b, OffArrayNextIndex, h.NextIndex)
	PutI32(b, OffArrayFirstUnalloc, h.FirstUnallocated)
	PutI32(b, OffArrayActualCount, h.ActualCount)
	PutU16(b, OffArrayNextSalt, h.NextSalt)
	PutU16(b, OffArrayAltNextSalt, h.AltNextSalt)
	PutU32(b, OffArrayData, h.Data)
	PutU32(b, OffArrayActiveBits, h.ActiveIndices)
	PutI32(b, OffArrayHeaderSize, h.HeaderSize)
	PutI32(b, OffArrayTotalSize, h.TotalSize)
	return b
}

// Stride returns the per-slot stride under the header's alignment.
func (h *ArrayHeader) Stride() int {
	return DatumStride(int(h.DatumSize), h.Alignment)
}

// DatumOffset returns the offset of slot i's datum relative to the start of
// the array block, assuming the contiguous layout (padded header, then
// datums, then the bit array).
func (h *ArrayHeader) DatumOffset(i int) int {
	return int(h.HeaderSize) + i*h.Stride()
}

// BitArrayOffset returns the offset of the liveness bit array relative to
// the start of the array block under the contiguous layout.
func (h *ArrayHeader) BitArrayOffset() int {
	return int(h.HeaderSize) + int(h.MaxCount)*h.Stride()
}

// BlockSize returns the expected total block size under the contiguous
// layout. A header whose TotalSize matches BlockSize carries its slots and
// bit array inline, which is what snapshot readers rely on.
func (h *ArrayHeader) BlockSize() int {
	return h.BitArrayOffset() + BitArraySize(int(h.MaxCount))
}

// BitSet reports whether bit i is set in a packed 32-bit-word bit array.
func BitSet(bits []byte, i int) bool {
	word := ReadU32(bits, (i/BitsPerWord)*4)
	return word&(1<<(uint(i)%BitsPerWord)) != 0
}

// SetBit sets bit i in a packed 32-bit-word bit array.
func SetBit(bits []byte, i int) {
	off := (i / BitsPerWord) * 4
	PutU32(bits, off, ReadU32(bits, off)|1<<(uint(i)%BitsPerWord))
}
