package format

import "fmt"

// CacheHeader is the decoded form of an LRUV cache header. Apart from the
// name and the 'weee' signature, the layout is unmapped; the record is kept
// purely so snapshot tooling can catalogue caches by name.
type CacheHeader struct {
	Name string

	// Raw is the full header, for callers that need the unmapped fields.
	Raw [CacheHeaderSize]byte
}

// ParseCacheHeader decodes an LRUV cache header at the start of b.
func ParseCacheHeader(b []byte) (*CacheHeader, error) {
	if len(b) < CacheHeaderSize {
		return nil, fmt.Errorf("%w: need %d bytes for cache header, have %d",
			ErrShortBuffer, CacheHeaderSize, len(b))
	}
	if sig := ReadU32(b, OffCacheSignature); sig != SigCache {
		return nil, fmt.Errorf("%w: expected 'weee' (%#08x), got %#08x",
			ErrBadSignature, SigCache, sig)
	}

	h := &CacheHeader{
		Name: DecodeName(b[OffCacheName : OffCacheName+NameSize]),
	}
	copy(h.Raw[:], b[:CacheHeaderSize])
	return h, nil
}
