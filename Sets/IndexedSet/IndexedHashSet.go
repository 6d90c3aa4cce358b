package IndexedSet

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/containers"
	Go_Indexed "github.com/g-m-twostay/go-indexed"
	"github.com/g-m-twostay/go-indexed/Buckets"
)

// New IndexedHashSet of type T able to hold capacity elements without resizing.
func New[T any](capacity int, hashF func(T) uint, eqF func(T, T) bool) *IndexedHashSet[T] {
	u := new(IndexedHashSet[T])
	u.idx = Buckets.New[T](capacity, hashF, eqF, u)
	return u
}

// NewOf is New for comparable element types.
func NewOf[T comparable](capacity int, hashF func(T) uint) *IndexedHashSet[T] {
	return New[T](capacity, hashF, Go_Indexed.Equal[T])
}

// IndexedHashSet is a hash set that gives every element a stable index. Callers may cache an index and use At
// to reach the element without hashing. Slot order is insertion order only until the first removal.
// It's not thread-safe.
type IndexedHashSet[T any] struct {
	elems []T
	live  Go_Indexed.BitArray
	idx   *Buckets.IndexedBuckets[T]
}

// KeyAt implements Buckets.Storage; it's the same as At.
func (u *IndexedHashSet[T]) KeyAt(i int) (T, bool) {
	return u.At(i)
}

// GrowTo implements Buckets.Storage.
func (u *IndexedHashSet[T]) GrowTo(capacity int) {
	if capacity > len(u.elems) {
		elems := make([]T, capacity)
		copy(elems, u.elems)
		u.elems = elems
	}
	u.live = u.live.Grow(capacity)
}

// Add e to the set and return its index and whether an equal element was already present. The stored element is
// replaced by e in either case.
func (u *IndexedHashSet[T]) Add(e T) (int, bool) {
	i := u.idx.Add(e)
	existed := u.live.Get(i)
	u.elems[i] = e
	u.live.Set(i)
	return i, existed
}

func (u *IndexedHashSet[T]) Has(e T) bool {
	return u.idx.Has(e)
}

// Index of e, or -1.
func (u *IndexedHashSet[T]) Index(e T) int {
	return u.idx.Index(e)
}

// At returns the element at index i without hashing. The second value is false if i is out of range or free.
func (u *IndexedHashSet[T]) At(i int) (e T, ok bool) {
	if i >= 0 && i < len(u.elems) && u.live.Get(i) {
		e, ok = u.elems[i], true
	}
	return
}

// Remove e and return the index it had, or -1 if it wasn't present.
func (u *IndexedHashSet[T]) Remove(e T) int {
	i := u.idx.Remove(e)
	if i >= 0 {
		u.free(i)
	}
	return i
}

func (u *IndexedHashSet[T]) free(i int) {
	var zero T
	u.elems[i] = zero
	u.live.Clr(i)
}

// Size of the set.
func (u *IndexedHashSet[T]) Size() int {
	return u.idx.Size()
}

func (u *IndexedHashSet[T]) Empty() bool {
	return u.idx.Empty()
}

// Clear the set, keeping the allocated capacity.
func (u *IndexedHashSet[T]) Clear() {
	u.idx.Clear()
	clear(u.elems)
	u.live.Reset()
}

// Range calls f on each index and element in index order. Stops when f returns false.
// f may remove the element it's given.
func (u *IndexedHashSet[T]) Range(f func(int, T) bool) {
	for i := u.live.First(); i >= 0; i = u.live.Next(i + 1) {
		if !f(i, u.elems[i]) {
			return
		}
	}
}

// Values in index order.
func (u *IndexedHashSet[T]) Values() []interface{} {
	vs := make([]interface{}, 0, u.Size())
	u.Range(func(_ int, e T) bool {
		vs = append(vs, e)
		return true
	})
	return vs
}

func (u *IndexedHashSet[T]) String() string {
	var sb strings.Builder
	sb.WriteString("IndexedHashSet\n")
	u.Range(func(i int, e T) bool {
		fmt.Fprintf(&sb, "%d: %v\n", i, e)
		return true
	})
	return sb.String()
}

// Iterator over the set in index order, positioned before the first element.
func (u *IndexedHashSet[T]) Iterator() *Iterator[T] {
	return &Iterator[T]{set: u, index: -1}
}

// Iterator is a stateful iterator for IndexedHashSet. The index it reports is the element's slot index.
type Iterator[T any] struct {
	set   *IndexedHashSet[T]
	index int
}

// Next moves to the next live slot and returns true if there was one.
func (it *Iterator[T]) Next() bool {
	if it.index = it.set.live.Next(it.index + 1); it.index < 0 {
		it.index = len(it.set.elems)
		return false
	}
	return true
}

// Value of the current element.
func (it *Iterator[T]) Value() interface{} {
	return it.set.elems[it.index]
}

// Elem is the typed Value.
func (it *Iterator[T]) Elem() T {
	return it.set.elems[it.index]
}

// Index of the current element.
func (it *Iterator[T]) Index() int {
	return it.index
}

// Begin resets the iterator to before the first element.
func (it *Iterator[T]) Begin() {
	it.index = -1
}

// First moves to the first element and returns true if the set isn't empty.
func (it *Iterator[T]) First() bool {
	it.Begin()
	return it.Next()
}

// NextTo moves to the next element satisfying f.
func (it *Iterator[T]) NextTo(f func(index int, value interface{}) bool) bool {
	for it.Next() {
		if f(it.index, it.Value()) {
			return true
		}
	}
	return false
}

// Remove the current element from the set. The iterator stays valid and Next continues with the following slot.
func (it *Iterator[T]) Remove() bool {
	if it.index < 0 || it.index >= len(it.set.elems) || !it.set.live.Get(it.index) {
		return false
	}
	return it.set.Remove(it.set.elems[it.index]) >= 0
}

var (
	_ containers.Container         = (*IndexedHashSet[int])(nil)
	_ containers.IteratorWithIndex = (*Iterator[int])(nil)
)
