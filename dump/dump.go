// Package dump provides read-only access to engine memory snapshots. A
// snapshot is a raw byte capture that may contain data array blocks (header,
// datums, liveness bit array, contiguous), plus pool and LRUV cache headers.
// The package locates blocks by signature scan, validates their headers, and
// exposes the arrays' live slots for inspection — it never mutates a
// snapshot and attaches no allocation semantics to what it finds.
package dump

import (
	"os"

	"github.com/joshuapare/datumkit/internal/format"
)

// Snapshot is an opened snapshot file, backed by a read-only mmap on unix
// systems or an in-memory copy elsewhere.
type Snapshot struct {
	f    *os.File
	data []byte
	size int64
	path string
}

// Bytes returns the raw snapshot contents.
func (s *Snapshot) Bytes() []byte { return s.data }

// Size returns the snapshot size in bytes.
func (s *Snapshot) Size() int64 { return s.size }

// Path returns the path the snapshot was opened from.
func (s *Snapshot) Path() string { return s.path }

// scanStride is the step for signature scans. Engine allocations are at
// least 4-byte aligned, so signatures only occur on word boundaries.
const scanStride = 4

// progressEvery controls how often a scan reports progress.
const progressEvery = 1 << 20

// Arrays locates every valid data array block in the snapshot.
func (s *Snapshot) Arrays() ([]*ArrayView, error) {
	return s.ScanArrays(nil)
}

// ScanArrays is Arrays with a progress callback, invoked with the number of
// bytes scanned so far and the total. onProgress may be nil.
func (s *Snapshot) ScanArrays(onProgress func(done, total int64)) ([]*ArrayView, error) {
	var views []*ArrayView
	total := int64(len(s.data))

	next := int64(progressEvery)
	for off := format.OffArraySignature; off+4 <= len(s.data); off += scanStride {
		if onProgress != nil && int64(off) >= next {
			onProgress(int64(off), total)
			next += progressEvery
		}
		if format.ReadU32(s.data, off) != format.SigDataArray {
			continue
		}

		start := off - format.OffArraySignature
		hdr, err := format.ParseArrayHeader(s.data[start:])
		if err != nil {
			// A stray signature over garbage; keep scanning.
			continue
		}
		if int(hdr.TotalSize) != hdr.BlockSize() {
			// Header is plausible but its slots are not inline; the block
			// can't be walked from this capture.
			continue
		}
		end := start + hdr.BlockSize()
		if end > len(s.data) {
			continue
		}

		views = append(views, &ArrayView{
			hdr:    hdr,
			offset: int64(start),
			block:  s.data[start:end],
		})
		// Resume past the block; datum payloads can contain anything,
		// including signature bytes. The next header can start no earlier
		// than the first word boundary after this block.
		off = alignUp(end, scanStride) + format.OffArraySignature - scanStride
	}
	if onProgress != nil {
		onProgress(total, total)
	}
	return views, nil
}

// Pools locates every pool header in the snapshot.
func (s *Snapshot) Pools() []*format.PoolHeader {
	var pools []*format.PoolHeader
	for off := 0; off+4 <= len(s.data); off += scanStride {
		if format.ReadU32(s.data, off) != format.SigPool {
			continue
		}
		hdr, err := format.ParsePoolHeader(s.data[off:])
		if err != nil {
			continue
		}
		pools = append(pools, hdr)
	}
	return pools
}

// Caches locates every LRUV cache header in the snapshot.
func (s *Snapshot) Caches() []*format.CacheHeader {
	var caches []*format.CacheHeader
	for off := format.OffCacheSignature; off+4 <= len(s.data); off += scanStride {
		if format.ReadU32(s.data, off) != format.SigCache {
			continue
		}
		start := off - format.OffCacheSignature
		hdr, err := format.ParseCacheHeader(s.data[start:])
		if err != nil {
			continue
		}
		caches = append(caches, hdr)
	}
	return caches
}

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}
