package dump

import (
	"io"

	"github.com/joshuapare/datumkit/data"
	"github.com/joshuapare/datumkit/internal/format"
)

// ArrayView is read-only access to one data array block inside a snapshot.
// Handles resolve against the salts captured in the snapshot, so a handle
// logged while the engine ran can be checked against the capture.
type ArrayView struct {
	hdr    *format.ArrayHeader
	offset int64  // block offset within the snapshot
	block  []byte // header + datums + bit array
}

// Header returns the decoded array header.
func (v *ArrayView) Header() *format.ArrayHeader { return v.hdr }

// Name returns the array's diagnostic name.
func (v *ArrayView) Name() string { return v.hdr.Name }

// Offset returns the block's byte offset within the snapshot.
func (v *ArrayView) Offset() int64 { return v.offset }

// Capacity returns the array's slot count.
func (v *ArrayView) Capacity() int { return int(v.hdr.MaxCount) }

// ActiveCount returns the occupied-slot count recorded in the header.
func (v *ArrayView) ActiveCount() int { return int(v.hdr.ActualCount) }

// Live reports whether slot i's bit is set in the captured bit array.
func (v *ArrayView) Live(i int) bool {
	if i < 0 || i >= v.Capacity() {
		return false
	}
	return format.BitSet(v.block[v.hdr.BitArrayOffset():], i)
}

// salt returns the captured salt prefix of slot i.
func (v *ArrayView) salt(i int) uint16 {
	return format.ReadU16(v.block, v.hdr.DatumOffset(i))
}

// payload returns the captured payload bytes of slot i (after the salt).
func (v *ArrayView) payload(i int) []byte {
	off := v.hdr.DatumOffset(i)
	return v.block[off+format.SaltSize : off+int(v.hdr.DatumSize)]
}

// Get resolves a handle against the capture: the index must be in range and
// the captured salt must match the handle's nonzero salt. Returns the
// datum's payload bytes, or (nil, false) for null, out-of-range, or stale
// handles.
func (v *ArrayView) Get(h data.Handle) ([]byte, bool) {
	if h.IsNull() {
		return nil, false
	}
	i := int(h.Index())
	if i >= v.Capacity() {
		return nil, false
	}
	salt := h.Salt()
	if salt == 0 || v.salt(i) != salt || !v.Live(i) {
		return nil, false
	}
	return v.payload(i), true
}

// Slot is one live slot yielded by a SlotIterator.
type Slot struct {
	Index   int
	Handle  data.Handle
	Payload []byte
}

// SlotIterator walks a view's live slots in increasing index order.
type SlotIterator struct {
	view *ArrayView
	next int
}

// Slots returns an iterator over the view's live slots.
func (v *ArrayView) Slots() *SlotIterator {
	return &SlotIterator{view: v}
}

// Next returns the next live slot, or io.EOF once the scan passes the end
// of the array.
func (it *SlotIterator) Next() (Slot, error) {
	v := it.view
	for i := it.next; i < v.Capacity(); i++ {
		if !v.Live(i) {
			continue
		}
		it.next = i + 1
		return Slot{
			Index:   i,
			Handle:  data.NewHandle(v.salt(i), data.Index(i)),
			Payload: v.payload(i),
		}, nil
	}
	it.next = v.Capacity()
	return Slot{}, io.EOF
}
