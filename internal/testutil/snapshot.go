// Package testutil builds synthetic engine snapshots for tests: files
// containing data array blocks (and pool/cache headers) in the contiguous
// layout the dump package reads.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joshuapare/datumkit/internal/format"
)

// Slot describes one live slot in a synthetic array.
type Slot struct {
	Salt    uint16
	Payload []byte // bytes after the salt prefix; zero-padded to fit
}

// ArraySpec describes a synthetic data array block.
type ArraySpec struct {
	Name      string
	Capacity  int
	DatumSize int   // includes the 2-byte salt prefix
	Alignment uint8 // datum alignment bit, 0 = none
	Live      map[int]Slot
}

// BuildArrayBlock renders the spec as a contiguous array block: padded
// header, datums, then the liveness bit array.
func BuildArrayBlock(t *testing.T, spec ArraySpec) []byte {
	t.Helper()

	if spec.DatumSize < format.MinDatumSize {
		t.Fatalf("datum size %d below minimum %d", spec.DatumSize, format.MinDatumSize)
	}

	maxSalt := uint16(0)
	first := 0
	for idx, s := range spec.Live {
		if idx < 0 || idx >= spec.Capacity {
			t.Fatalf("live index %d outside capacity %d", idx, spec.Capacity)
		}
		if s.Salt == 0 {
			t.Fatalf("live slot %d needs a nonzero salt", idx)
		}
		if len(s.Payload) > spec.DatumSize-format.SaltSize {
			t.Fatalf("slot %d payload %d bytes exceeds datum size", idx, len(s.Payload))
		}
		if s.Salt > maxSalt {
			maxSalt = s.Salt
		}
		if idx >= first {
			first = idx + 1
		}
	}

	hdr := &format.ArrayHeader{
		Name:             spec.Name,
		MaxCount:         int32(spec.Capacity),
		DatumSize:        int32(spec.DatumSize),
		Alignment:        spec.Alignment,
		IsValid:          true,
		NextIndex:        int32(first),
		FirstUnallocated: int32(first),
		ActualCount:      int32(len(spec.Live)),
		NextSalt:         maxSalt,
		HeaderSize:       int32(format.AlignPow2(format.ArrayHeaderSize, spec.Alignment)),
	}
	hdr.TotalSize = int32(hdr.BlockSize())

	block := make([]byte, hdr.BlockSize())
	copy(block, format.EncodeArrayHeader(hdr))

	bits := block[hdr.BitArrayOffset():]
	for idx, s := range spec.Live {
		off := hdr.DatumOffset(idx)
		format.PutU16(block, off, s.Salt)
		copy(block[off+format.SaltSize:off+hdr.Stride()], s.Payload)
		format.SetBit(bits, idx)
	}
	return block
}

// BuildPoolHeader renders a minimal pool header block.
func BuildPoolHeader(t *testing.T, name string, size, free int32) []byte {
	t.Helper()
	b := make([]byte, format.PoolHeaderSize)
	format.PutU32(b, format.OffPoolSignature, format.SigPool)
	n := format.EncodeName(name)
	copy(b[format.OffPoolName:], n[:])
	format.PutI32(b, format.OffPoolSize, size)
	format.PutI32(b, format.OffPoolFreeSize, free)
	return b
}

// BuildCacheHeader renders a minimal LRUV cache header block.
func BuildCacheHeader(t *testing.T, name string) []byte {
	t.Helper()
	b := make([]byte, format.CacheHeaderSize)
	n := format.EncodeName(name)
	copy(b[format.OffCacheName:], n[:])
	format.PutU32(b, format.OffCacheSignature, format.SigCache)
	return b
}

// WriteSnapshot writes blocks into a temp file separated by junk padding and
// returns its path. Padding keeps scanners honest: blocks never sit at
// predictable offsets.
func WriteSnapshot(t *testing.T, blocks ...[]byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "snapshot.bin")
	var out []byte
	out = append(out, pad(37)...)
	for _, b := range blocks {
		// Keep 4-byte alignment so word-stepped scans can land on headers.
		for len(out)%4 != 0 {
			out = append(out, 0xCC)
		}
		out = append(out, b...)
		out = append(out, pad(53)...)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	return path
}

func pad(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = 0xCC
	}
	return p
}
