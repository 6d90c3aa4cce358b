package HashIndexedArray

import (
	"github.com/emirpasic/gods/containers"
	Go_Indexed "github.com/g-m-twostay/go-indexed"
)

// HashIndexedArray is an immutable hash index over a fixed slice of keys. The index of a key is its position in
// the slice it was built from. There is no insertion or removal, so there's no free list and no resizing.
// Safe for concurrent reads.
type HashIndexedArray[K any] struct {
	keys    []K
	buckets []int32
	hashes  []int32 //per position.
	links   []int32
	HashF   func(K) uint
	EqF     func(K, K) bool
}

// New HashIndexedArray over a copy of keys. keys must not contain duplicates; if they do, only the last of the
// equal keys can be found by Index.
// Panics with *Go_Indexed.CapacityExceededError if keys is too long to index.
func New[K any](keys []K, hashF func(K) uint, eqF func(K, K) bool) *HashIndexedArray[K] {
	n := len(keys)
	if n > Go_Indexed.MaxCapacity-7 {
		panic(&Go_Indexed.CapacityExceededError{Requested: n})
	}
	u := &HashIndexedArray[K]{
		keys:    append(make([]K, 0, n), keys...),
		buckets: make([]int32, Go_Indexed.TableSizeFor(n+7)),
		hashes:  make([]int32, n),
		links:   make([]int32, n),
		HashF:   hashF,
		EqF:     eqF,
	}
	for i := range u.buckets {
		u.buckets[i] = -1
	}
	mask := int32(len(u.buckets) - 1)
	for i, k := range u.keys {
		h := Go_Indexed.Hash32(hashF(k))
		b := h & mask
		u.hashes[i] = h
		u.links[i] = u.buckets[b]
		u.buckets[b] = int32(i)
	}
	return u
}

// NewOf is New for comparable key types.
func NewOf[K comparable](keys []K, hashF func(K) uint) *HashIndexedArray[K] {
	return New[K](keys, hashF, Go_Indexed.Equal[K])
}

// Index of key in the original slice, or -1.
func (u *HashIndexedArray[K]) Index(key K) int {
	h := Go_Indexed.Hash32(u.HashF(key))
	for i := u.buckets[h&int32(len(u.buckets)-1)]; i >= 0; i = u.links[i] {
		if u.hashes[i] == h && u.EqF(u.keys[i], key) {
			return int(i)
		}
	}
	return -1
}

func (u *HashIndexedArray[K]) Has(key K) bool {
	return u.Index(key) >= 0
}

// Get the key at position i. Panics if i is out of range like a slice does.
func (u *HashIndexedArray[K]) Get(i int) K {
	return u.keys[i]
}

// At is Get that reports out of range positions instead of panicking.
func (u *HashIndexedArray[K]) At(i int) (k K, ok bool) {
	if i >= 0 && i < len(u.keys) {
		k, ok = u.keys[i], true
	}
	return
}

func (u *HashIndexedArray[K]) Size() int {
	return len(u.keys)
}

func (u *HashIndexedArray[K]) Empty() bool {
	return len(u.keys) == 0
}

// Keys returns a copy of the indexed keys in their original order.
func (u *HashIndexedArray[K]) Keys() []K {
	return append(make([]K, 0, len(u.keys)), u.keys...)
}

// Range over the keys in original order. Stops when f returns false.
func (u *HashIndexedArray[K]) Range(f func(int, K) bool) {
	for i, k := range u.keys {
		if !f(i, k) {
			return
		}
	}
}

// Iterator over the keys in original order, positioned before the first key.
func (u *HashIndexedArray[K]) Iterator() *Iterator[K] {
	return &Iterator[K]{keys: u.keys, index: -1}
}

// Iterator is a stateful iterator for HashIndexedArray.
type Iterator[K any] struct {
	keys  []K
	index int
}

func (it *Iterator[K]) Next() bool {
	if it.index < len(it.keys) {
		it.index++
	}
	return it.index < len(it.keys)
}

func (it *Iterator[K]) Value() interface{} {
	return it.keys[it.index]
}

func (it *Iterator[K]) Index() int {
	return it.index
}

func (it *Iterator[K]) Begin() {
	it.index = -1
}

func (it *Iterator[K]) First() bool {
	it.Begin()
	return it.Next()
}

func (it *Iterator[K]) NextTo(f func(index int, value interface{}) bool) bool {
	for it.Next() {
		if f(it.index, it.Value()) {
			return true
		}
	}
	return false
}

var _ containers.IteratorWithIndex = (*Iterator[int])(nil)
