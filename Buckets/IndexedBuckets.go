package Buckets

import (
	Go_Indexed "github.com/g-m-twostay/go-indexed"
)

const none int32 = -1

// Storage is implemented by the owner of the key (and value) arrays an IndexedBuckets indexes into.
// The engine never stores keys itself.
type Storage[K any] interface {
	// KeyAt returns the key stored at index, or false if index isn't live.
	KeyAt(index int) (K, bool)
	// GrowTo enlarges the owner's arrays to hold at least capacity slots. It must be done on return.
	GrowTo(capacity int)
}

// IndexedBuckets is a chained hash index that hands out stable slot indices. Each slot has a stored hash and a
// link; the link is the next slot of the same bucket while the slot is live, or the next free slot while it's on
// the free list. An index stays valid for its key until the key is removed.
// It's not thread-safe.
type IndexedBuckets[K any] struct {
	buckets      []int32 //bucket -> first slot of the chain, none if empty.
	hashes       []int32 //slot -> stored Hash32, none after removal.
	links        []int32
	freeList     int32
	count        int
	entriesIndex int //slots in [0,entriesIndex) have been handed out at least once.
	entriesAvail int //length of the slot table.
	HashF        func(K) uint
	EqF          func(K, K) bool
	store        Storage[K]
}

// New IndexedBuckets with room for capacity keys before the first resize. capacity is rounded up to a power of two.
func New[K any](capacity int, hashF func(K) uint, eqF func(K, K) bool, store Storage[K]) *IndexedBuckets[K] {
	u := &IndexedBuckets[K]{HashF: hashF, EqF: eqF, store: store}
	u.init(Go_Indexed.TableSizeFor(capacity))
	return u
}

func (u *IndexedBuckets[K]) init(capacity int) {
	u.buckets = fill(make([]int32, capacity))
	u.hashes = fill(make([]int32, capacity))
	u.links = fill(make([]int32, capacity))
	u.entriesAvail = capacity
	u.freeList = none
	u.store.GrowTo(capacity)
}

func fill(s []int32) []int32 {
	for i := range s {
		s[i] = none
	}
	return s
}

func (u *IndexedBuckets[K]) mask() int32 {
	return int32(len(u.buckets) - 1)
}

// Size is the number of live keys.
func (u *IndexedBuckets[K]) Size() int {
	return u.count
}

func (u *IndexedBuckets[K]) Empty() bool {
	return u.count == 0
}

func (u *IndexedBuckets[K]) NotEmpty() bool {
	return u.count != 0
}

// Capacity of the slot table. Always a power of two.
func (u *IndexedBuckets[K]) Capacity() int {
	return u.entriesAvail
}

func (u *IndexedBuckets[K]) Has(key K) bool {
	return u.Index(key) >= 0
}

// Index of key, or -1 if key isn't present.
func (u *IndexedBuckets[K]) Index(key K) int {
	return int(u.find(key, Go_Indexed.Hash32(u.HashF(key))))
}

func (u *IndexedBuckets[K]) find(key K, h int32) int32 {
	for i := u.buckets[h&u.mask()]; i != none; i = u.links[i] {
		if u.hashes[i] == h {
			if k, ok := u.store.KeyAt(int(i)); ok && u.EqF(k, key) {
				return i
			}
		}
	}
	return none
}

// Add key and return its index. If key is already present, its index is returned and nothing changes.
// The caller must store key at the returned index before the next call to Add, since resizing relies on KeyAt.
func (u *IndexedBuckets[K]) Add(key K) int {
	h := Go_Indexed.Hash32(u.HashF(key))
	if i := u.find(key, h); i != none {
		return int(i)
	}
	var i int32
	if u.freeList != none {
		i = u.freeList
		u.freeList = u.links[i]
	} else {
		if u.entriesIndex == u.entriesAvail {
			u.resize()
		}
		i = int32(u.entriesIndex)
		u.entriesIndex++
	}
	b := h & u.mask() //after a possible resize.
	u.hashes[i] = h
	u.links[i] = u.buckets[b]
	u.buckets[b] = i
	u.count++
	return int(i)
}

// Remove key and return the index it had, or -1 if key isn't present. The index goes to the free list and may
// be handed to a later Add.
func (u *IndexedBuckets[K]) Remove(key K) int {
	h := Go_Indexed.Hash32(u.HashF(key))
	b := h & u.mask()
	for prev, i := none, u.buckets[b]; i != none; prev, i = i, u.links[i] {
		if u.hashes[i] != h {
			continue
		}
		if k, ok := u.store.KeyAt(int(i)); !ok || !u.EqF(k, key) {
			continue
		}
		if prev == none {
			u.buckets[b] = u.links[i]
		} else {
			u.links[prev] = u.links[i]
		}
		u.hashes[i] = none
		u.links[i] = u.freeList
		u.freeList = i
		u.count--
		return int(i)
	}
	return -1
}

// Clear removes all keys. The tables keep their capacity, and indices are handed out from 0 again.
func (u *IndexedBuckets[K]) Clear() {
	fill(u.buckets)
	fill(u.hashes[:u.entriesIndex])
	fill(u.links[:u.entriesIndex])
	u.freeList = none
	u.count = 0
	u.entriesIndex = 0
}

// Range calls f on every live index in ascending order, stopping when f returns false.
// f may remove the key at the index it's given.
func (u *IndexedBuckets[K]) Range(f func(index int) bool) {
	for i := 0; i < u.entriesIndex; i++ {
		if _, ok := u.store.KeyAt(i); ok && !f(i) {
			return
		}
	}
}

func (u *IndexedBuckets[K]) resize() {
	newCap := u.entriesIndex << 1
	if newCap > Go_Indexed.MaxCapacity || newCap <= u.entriesIndex {
		panic(&Go_Indexed.CapacityExceededError{Requested: newCap})
	}
	if !Go_Indexed.IsPowerOfTwo(newCap) {
		panic("Buckets: slot capacity lost its power of two")
	}
	u.buckets = fill(make([]int32, newCap))
	hashes, links := make([]int32, newCap), make([]int32, newCap)
	copy(hashes, u.hashes)
	copy(links, u.links)
	fill(hashes[u.entriesAvail:])
	fill(links[u.entriesAvail:])
	u.hashes, u.links = hashes, links
	u.entriesAvail = newCap
	u.store.GrowTo(newCap)

	mask := u.mask()
	for i := int32(0); i < int32(u.entriesIndex); i++ {
		if _, ok := u.store.KeyAt(int(i)); ok {
			b := u.hashes[i] & mask
			u.links[i] = u.buckets[b]
			u.buckets[b] = i
		}
	}
}
