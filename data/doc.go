// Package data provides fixed-capacity, generation-checked datum arrays.
//
// # Overview
//
// A datum array hands out compact 32-bit handles to objects stored in a
// contiguous backing store. Each handle encodes a 16-bit slot index and a
// 16-bit salt (generation tag). The salt is re-stamped every time a slot is
// reused, so a handle kept across a Release is detected as stale in O(1)
// instead of silently reading the slot's new occupant. This is the slot-map
// pattern used by entity systems and resource managers.
//
// # Array
//
// The core type is the generic Array:
//
//	players, err := data.New[Player]("players", 16)
//	if err != nil {
//	    return err
//	}
//
//	h, p := players.Acquire()
//	if h.IsNull() {
//	    // capacity exhausted
//	}
//	p.Team = TeamRed
//
//	// Later, from a stored handle:
//	if p, ok := players.TryGet(h); ok {
//	    // p is the same object, still live
//	}
//
//	players.Release(h)
//
// Acquire returns the null handle when every slot is occupied; the caller
// decides whether that is fatal. Release, TryGet, and Iterator tolerate null,
// out-of-range, and stale handles without corrupting array state. RawGet is
// the single unchecked escape hatch for hot paths.
//
// # Allocation policy
//
// Free-slot search resumes from a cursor just past the most recent
// allocation and never scans beyond the first-unallocated watermark, so
// steady-state allocation is amortized O(1) and degrades to O(capacity)
// only when the array is fragmented. Salts count up per array, wrap at 16
// bits, and skip zero: a zero salt always means "empty slot". A stale handle
// can only go undetected if its slot is reused until the salt wraps back to
// the exact same value, an accepted ~1/65535 residual per full wrap.
//
// Payload memory is zeroed on Acquire. Capacity is fixed at construction;
// arrays never grow.
//
// # Iteration
//
//	for it := players.Iter(); ; {
//	    p, ok := it.Next()
//	    if !ok {
//	        break
//	    }
//	    use(it.Handle(), p)
//	}
//
// Iterators walk live slots in increasing index order. Mutating the array
// (Acquire/Release/Clear) mid-traversal leaves the iterator's behavior
// undefined; finish iterating first, or collect handles up front.
//
// # Thread safety
//
// Array instances are not thread-safe. Callers must synchronize access
// externally, or partition work so each goroutine owns its own array.
package data
