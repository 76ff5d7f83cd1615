package format

import "fmt"

// PoolHeader is the decoded form of a data pool header. The pool's internal
// invariants are not fully understood; this record is opaque beyond the
// fields below and carries no allocation semantics.
type PoolHeader struct {
	Name      string
	Allocator uint32
	Size      int32
	FreeSize  int32

	// Raw is the full header, for callers that need the unmapped tail.
	Raw [PoolHeaderSize]byte
}

// ParsePoolHeader decodes a data pool header at the start of b.
func ParsePoolHeader(b []byte) (*PoolHeader, error) {
	if len(b) < PoolHeaderSize {
		return nil, fmt.Errorf("%w: need %d bytes for pool header, have %d",
			ErrShortBuffer, PoolHeaderSize, len(b))
	}
	if sig := ReadU32(b, OffPoolSignature); sig != SigPool {
		return nil, fmt.Errorf("%w: expected 'pool' (%#08x), got %#08x",
			ErrBadSignature, SigPool, sig)
	}

	h := &PoolHeader{
		Name:      DecodeName(b[OffPoolName : OffPoolName+NameSize]),
		Allocator: ReadU32(b, OffPoolAllocator),
		Size:      ReadI32(b, OffPoolSize),
		FreeSize:  ReadI32(b, OffPoolFreeSize),
	}
	copy(h.Raw[:], b[:PoolHeaderSize])

	if h.Size < 0 || h.FreeSize < 0 || h.FreeSize > h.Size {
		return nil, fmt.Errorf("%w: pool size %d free %d",
			ErrBadHeader, h.Size, h.FreeSize)
	}
	return h, nil
}
