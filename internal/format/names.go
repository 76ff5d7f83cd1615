package format

import (
	"bytes"

	"golang.org/x/text/encoding/charmap"
)

// DecodeName decodes a fixed-width name field: NUL-terminated, Windows-1252.
// Array names are almost always plain ASCII ("players", "objects"), but
// snapshots occasionally carry high-byte characters, so decode through the
// codepage rather than assuming UTF-8.
func DecodeName(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		// Windows1252 decoding cannot fail on arbitrary input; every byte
		// maps to some rune. Fall back to the raw bytes regardless.
		return string(b)
	}
	return string(decoded)
}

// EncodeName encodes a name into a fixed-width NameSize field, truncating
// and NUL-padding as needed. Used by test fixtures and snapshot builders.
// Truncation happens after codepage encoding, and Windows-1252 is one byte
// per character, so a truncated field always decodes back to a clean prefix
// of the original name (capped at NameSize-1 characters).
func EncodeName(name string) [NameSize]byte {
	var out [NameSize]byte
	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(name))
	if err != nil {
		encoded = []byte(name)
	}
	// Leave at least one NUL terminator.
	copy(out[:NameSize-1], encoded)
	return out
}
