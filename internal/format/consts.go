// Package format houses low-level decoders for the fixed in-memory layouts
// the engine uses for its runtime containers. The goal is to keep the
// parsing focused, allocation-free where possible, and independent from the
// public API so higher-level packages can orchestrate the data in a more
// ergonomic form.
//
// Only the data-array layout is fully understood. The pool and LRUV cache
// records are partially reverse engineered and are exposed as opaque
// byte-layout records: signature, name, and a handful of known fields, with
// no behavior attached.
package format

const (
	// SigDataArray is the 'd@t@' signature carried by every data array
	// header. Stored as a 32-bit integer, so the in-memory byte order is
	// '@' 't' '@' 'd' on little-endian targets.
	SigDataArray uint32 = 0x64407440

	// SigPool is the 'pool' signature at the start of a data pool header.
	SigPool uint32 = 0x706F6F6C

	// SigCache is the 'weee' signature inside an LRUV cache header.
	SigCache uint32 = 0x77656565
)

const (
	// ArrayHeaderSize is the size of a data array header in bytes.
	ArrayHeaderSize = 0x54

	// PoolHeaderSize is the size of a data pool header in bytes.
	PoolHeaderSize = 0x44

	// CacheHeaderSize is the size of an LRUV cache header in bytes.
	CacheHeaderSize = 0x84

	// NameSize is the fixed width of the name field in every header.
	NameSize = 0x20

	// SaltSize is the per-datum salt prefix: every datum starts with a
	// 16-bit salt, 0 meaning the slot is empty.
	SaltSize = 2

	// MinDatumSize is the smallest legal datum: nothing but the salt.
	MinDatumSize = SaltSize

	// BitsPerWord is the width of one liveness bit-array word. The engine
	// stores the active-indices bit array as packed 32-bit words.
	BitsPerWord = 32

	// MaxIndex is the largest slot index a handle can encode.
	MaxIndex = 0xFFFF
)

// Data array header field offsets.
const (
	OffArrayName         = 0x00 // char[0x20]
	OffArrayMaxCount     = 0x20 // int32
	OffArrayDatumSize    = 0x24 // int32
	OffArrayAlignment    = 0x28 // uint8, bit to align datum addresses to
	OffArrayIsValid      = 0x29 // bool
	OffArrayFlags        = 0x2A // uint16
	OffArraySignature    = 0x2C // uint32 'd@t@'
	OffArrayAllocator    = 0x30 // uint32 pointer
	OffArrayNextIndex    = 0x34 // int32
	OffArrayFirstUnalloc = 0x38 // int32
	OffArrayActualCount  = 0x3C // int32
	OffArrayNextSalt     = 0x40 // uint16
	OffArrayAltNextSalt  = 0x42 // uint16
	OffArrayData         = 0x44 // uint32 pointer
	OffArrayActiveBits   = 0x48 // uint32 pointer
	OffArrayHeaderSize   = 0x4C // int32, header size including padding
	OffArrayTotalSize    = 0x50 // int32, total size of the allocation
)

// Data pool header field offsets. Fields past FreeSize are unmapped.
const (
	OffPoolSignature = 0x00 // uint32 'pool'
	OffPoolName      = 0x04 // char[0x20]
	OffPoolAllocator = 0x24 // uint32 pointer
	OffPoolSize      = 0x28 // int32
	OffPoolFreeSize  = 0x2C // int32
)

// LRUV cache header field offsets. Everything except the name and the
// signature is unmapped.
const (
	OffCacheName      = 0x00 // char[0x20]
	OffCacheSignature = 0x74 // uint32 'weee'
)
