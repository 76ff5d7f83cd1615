package data

// Iterator walks an Array's live slots in increasing index order. Construct
// with Array.Iter; the zero value is not usable. Mutating the array between
// Next calls leaves the iterator's behavior undefined.
type Iterator[T any] struct {
	arr     *Array[T]
	index   int    // index of the current datum; -1 before the first Next
	current Handle // handle of the current datum
}

// Iter returns an iterator positioned before the first live slot.
func (a *Array[T]) Iter() *Iterator[T] {
	return &Iterator[T]{
		arr:     a,
		index:   -1,
		current: Null,
	}
}

// Next advances to the next live slot and returns a pointer to its payload.
// Returns (nil, false) once the scan passes the end of the array; after
// that, every call keeps returning (nil, false).
func (it *Iterator[T]) Next() (*T, bool) {
	a := it.arr
	idx, ok := a.live.NextSet(it.index+1, a.capacity)
	if !ok {
		it.index = a.capacity
		it.current = Null
		return nil, false
	}
	it.index = idx
	it.current = NewHandle(a.salts[idx], Index(idx))
	return &a.data[idx], true
}

// Handle returns the handle of the datum the iterator is positioned on, or
// Null before the first Next and after exhaustion.
func (it *Iterator[T]) Handle() Handle { return it.current }

// Index returns the slot index the iterator is positioned on, -1 before the
// first Next, or the array capacity after exhaustion.
func (it *Iterator[T]) Index() int { return it.index }

// Equal reports whether two iterators are over the same array and positioned
// on the same datum.
func (it *Iterator[T]) Equal(other *Iterator[T]) bool {
	return it.arr == other.arr &&
		it.index == other.index &&
		it.current == other.current
}
