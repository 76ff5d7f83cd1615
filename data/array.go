package data

import (
	"fmt"
	"os"

	"github.com/joshuapare/datumkit/internal/bitset"
)

// Runtime trace flag - controlled by DATUM_TRACE env var.
var traceData = os.Getenv("DATUM_TRACE") != ""

// MaxCapacity is the largest slot count an Array supports. Index 0xFFFF is
// reserved so the null handle (salt 0xFFFF, index 0xFFFF) can never match a
// live slot.
const MaxCapacity = 0xFFFF

// Array is a fixed-capacity slot store for values of type T. Slots are
// addressed by Handle and reused in roughly lowest-index-first order, with a
// fresh salt stamped on every reuse so stale handles are detected.
//
// Array is not safe for concurrent use.
type Array[T any] struct {
	name     string
	capacity int

	// Salts live in their own slice rather than prefixing each payload, so
	// payload writes can never clobber a tag.
	data  []T            // slot payloads, one per index
	salts []Salt         // per-slot salt, 0 = empty
	live  *bitset.Bitset // occupancy, 1 bit per slot

	next      int // index to resume the free-slot scan from
	firstFree int // slots at or beyond this index are guaranteed free
	active    int // number of occupied slots

	nextSalt    Salt // counter for Acquire
	altNextSalt Salt // counter for AcquireAlt
}

// New creates an empty array with the given diagnostic name and capacity.
// Capacity is fixed for the array's lifetime. The payload size and alignment
// are those of T.
func New[T any](name string, capacity int) (*Array[T], error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if capacity < 1 || capacity > MaxCapacity {
		return nil, fmt.Errorf("%w: got %d", ErrBadCapacity, capacity)
	}
	return &Array[T]{
		name:     name,
		capacity: capacity,
		data:     make([]T, capacity),
		salts:    make([]Salt, capacity),
		live:     bitset.New(capacity),
	}, nil
}

// Name returns the diagnostic name given at construction.
func (a *Array[T]) Name() string { return a.name }

// Capacity returns the fixed slot count.
func (a *Array[T]) Capacity() int { return a.capacity }

// ActiveCount returns the number of currently occupied slots.
func (a *Array[T]) ActiveCount() int { return a.active }

// Acquire allocates a free slot, stamps it with the next salt, and returns
// its handle together with a pointer to the zeroed payload. Returns
// (Null, nil) if every slot is occupied; the array is left unchanged.
func (a *Array[T]) Acquire() (Handle, *T) {
	return a.acquire(&a.nextSalt)
}

// AcquireAlt is Acquire using the alternate salt counter. Subsystems that
// churn through short-lived datums can keep them on a separate salt
// sequence so their handles age independently of the primary stream.
func (a *Array[T]) AcquireAlt() (Handle, *T) {
	return a.acquire(&a.altNextSalt)
}

func (a *Array[T]) acquire(counter *Salt) (Handle, *T) {
	idx, ok := a.findFree()
	if !ok {
		if traceData {
			fmt.Fprintf(os.Stderr, "[DATUM] %s: acquire failed, %d/%d active\n",
				a.name, a.active, a.capacity)
		}
		return Null, nil
	}

	a.live.Set(idx)
	if idx >= a.firstFree {
		a.firstFree = idx + 1
	}
	a.active++
	a.next = idx + 1

	*counter++
	if *counter == 0 {
		// Salt 0 means "empty slot"; skip it on wrap.
		*counter = 1
	}
	a.salts[idx] = *counter

	var zero T
	a.data[idx] = zero
	return NewHandle(*counter, Index(idx)), &a.data[idx]
}

// findFree returns the lowest free index at or after the resume cursor,
// wrapping to the start when the cursor region is exhausted. Slots at or
// beyond the firstFree watermark are free by construction, so scans never
// walk the untouched tail.
func (a *Array[T]) findFree() (int, bool) {
	if a.active >= a.capacity {
		return 0, false
	}
	limit := a.firstFree
	i := a.next
	if i >= a.capacity {
		i = 0
	}
	if i >= limit {
		return i, true
	}
	if idx, ok := a.live.NextClear(i, limit); ok {
		return idx, true
	}
	if limit < a.capacity {
		return limit, true
	}
	return a.live.NextClear(0, limit)
}

// Release frees the slot h refers to. Null, out-of-range, and stale handles
// are ignored: a bad handle must never corrupt array state.
func (a *Array[T]) Release(h Handle) {
	idx, ok := a.lookup(h)
	if !ok {
		if traceData && !h.IsNull() {
			fmt.Fprintf(os.Stderr, "[DATUM] %s: release of invalid handle %s\n",
				a.name, h)
		}
		return
	}
	a.salts[idx] = 0
	a.live.Clear(idx)
	a.active--
	if idx < a.next {
		a.next = idx
	}
}

// TryGet returns a pointer to the payload h refers to, or (nil, false) if h
// is null, out of range, or stale. The pointer stays valid until the slot is
// released.
func (a *Array[T]) TryGet(h Handle) (*T, bool) {
	idx, ok := a.lookup(h)
	if !ok {
		return nil, false
	}
	return &a.data[idx], true
}

// RawGet returns a pointer to the payload slot h indexes WITHOUT checking
// that h is live or that its salt matches. It panics if the index is out of
// range. Use TryGet unless the handle has already been validated on this
// exact array state.
func (a *Array[T]) RawGet(h Handle) *T {
	return &a.data[h.Index()]
}

// Clear releases every datum at once. Outstanding handles all become stale:
// the salt counters are not reset, so handles from before the Clear can
// never match a future occupant until the counter fully wraps.
func (a *Array[T]) Clear() {
	clear(a.salts)
	a.live.Reset()
	a.next = 0
	a.firstFree = 0
	a.active = 0
}

// lookup validates h against current state and returns its slot index.
func (a *Array[T]) lookup(h Handle) (int, bool) {
	if h.IsNull() {
		return 0, false
	}
	idx := int(h.Index())
	if idx >= a.capacity {
		return 0, false
	}
	salt := h.Salt()
	if salt == 0 || a.salts[idx] != salt {
		return 0, false
	}
	return idx, true
}
