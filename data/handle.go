package data

import "fmt"

// Handle is an opaque reference to a datum in an Array. The high 16 bits
// hold the salt stamped when the datum was acquired and the low 16 bits
// hold the slot index. Handles are plain values: comparing with == is the
// identity check, and a handle never carries a pointer into the array.
type Handle uint32

// Null is the sentinel handle meaning "no datum". It can never alias a live
// allocation: index 0xFFFF is reserved (see MaxCapacity).
const Null Handle = 0xFFFFFFFF

// Salt is a 16-bit generation tag. Zero marks an empty slot, so live datums
// always carry a nonzero salt.
type Salt = uint16

// Index is a 16-bit slot index into an Array's backing store.
type Index = uint16

// NewHandle packs a salt and an index into a handle. No bounds or liveness
// validation happens here; that is TryGet's job.
func NewHandle(salt Salt, index Index) Handle {
	return Handle(uint32(salt)<<16 | uint32(index))
}

// Salt returns the handle's salt value.
func (h Handle) Salt() Salt { return Salt(h >> 16) }

// Index returns the handle's slot index.
func (h Handle) Index() Index { return Index(h & 0xFFFF) }

// IsNull reports whether the handle is the null sentinel.
func (h Handle) IsNull() bool { return h == Null }

// String renders the handle as salt:index in hex, or "null".
func (h Handle) String() string {
	if h.IsNull() {
		return "null"
	}
	return fmt.Sprintf("%04x:%04x", h.Salt(), h.Index())
}
