package IndexedMap

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/containers"
	Go_Indexed "github.com/g-m-twostay/go-indexed"
	"github.com/g-m-twostay/go-indexed/Buckets"
)

// New IndexedHashMap able to hold capacity entries without resizing.
func New[K any, V any](capacity int, hashF func(K) uint, eqF func(K, K) bool) *IndexedHashMap[K, V] {
	u := new(IndexedHashMap[K, V])
	u.idx = Buckets.New[K](capacity, hashF, eqF, u)
	return u
}

// NewOf is New for comparable key types.
func NewOf[K comparable, V any](capacity int, hashF func(K) uint) *IndexedHashMap[K, V] {
	return New[K, V](capacity, hashF, Go_Indexed.Equal[K])
}

// IndexedHashMap keeps keys and values in parallel arrays addressed by the stable index the bucket engine hands
// out. It's not thread-safe.
type IndexedHashMap[K any, V any] struct {
	keys []K
	vals []V
	live Go_Indexed.BitArray
	idx  *Buckets.IndexedBuckets[K]
}

// GrowTo implements Buckets.Storage.
func (u *IndexedHashMap[K, V]) GrowTo(capacity int) {
	if capacity > len(u.keys) {
		keys, vals := make([]K, capacity), make([]V, capacity)
		copy(keys, u.keys)
		copy(vals, u.vals)
		u.keys, u.vals = keys, vals
	}
	u.live = u.live.Grow(capacity)
}

func (u *IndexedHashMap[K, V]) valid(i int) bool {
	return i >= 0 && i < len(u.keys) && u.live.Get(i)
}

// KeyAt returns the key at index i without hashing. It also implements Buckets.Storage.
func (u *IndexedHashMap[K, V]) KeyAt(i int) (k K, ok bool) {
	if u.valid(i) {
		k, ok = u.keys[i], true
	}
	return
}

// ValueAt returns the value at index i without hashing.
func (u *IndexedHashMap[K, V]) ValueAt(i int) (v V, ok bool) {
	if u.valid(i) {
		v, ok = u.vals[i], true
	}
	return
}

// SetValueAt overwrites the value at a live index. Returns false and does nothing if i isn't live.
func (u *IndexedHashMap[K, V]) SetValueAt(i int, v V) bool {
	if !u.valid(i) {
		return false
	}
	u.vals[i] = v
	return true
}

// Add stores k and v, overwriting the key and value of an equal key if present.
// Returns the index and whether k was already present.
func (u *IndexedHashMap[K, V]) Add(k K, v V) (int, bool) {
	i := u.idx.Add(k)
	existed := u.live.Get(i)
	u.keys[i], u.vals[i] = k, v
	u.live.Set(i)
	return i, existed
}

// AddIfAbsent stores k and v only if k isn't present. Returns the index of k and whether it was already present;
// an existing value is left untouched.
func (u *IndexedHashMap[K, V]) AddIfAbsent(k K, v V) (int, bool) {
	i := u.idx.Add(k)
	if u.live.Get(i) {
		return i, true
	}
	u.keys[i], u.vals[i] = k, v
	u.live.Set(i)
	return i, false
}

// Get the value of k.
func (u *IndexedHashMap[K, V]) Get(k K) (v V, ok bool) {
	if i := u.idx.Index(k); i >= 0 {
		v, ok = u.vals[i], true
	}
	return
}

func (u *IndexedHashMap[K, V]) Has(k K) bool {
	return u.idx.Has(k)
}

// Index of k, or -1.
func (u *IndexedHashMap[K, V]) Index(k K) int {
	return u.idx.Index(k)
}

// Remove k and return the index it had, or -1 if absent.
func (u *IndexedHashMap[K, V]) Remove(k K) int {
	i := u.idx.Remove(k)
	if i >= 0 {
		var (
			zk K
			zv V
		)
		u.keys[i], u.vals[i] = zk, zv
		u.live.Clr(i)
	}
	return i
}

func (u *IndexedHashMap[K, V]) Size() int {
	return u.idx.Size()
}

func (u *IndexedHashMap[K, V]) Empty() bool {
	return u.idx.Empty()
}

// Clear the map, keeping the allocated capacity.
func (u *IndexedHashMap[K, V]) Clear() {
	u.idx.Clear()
	clear(u.keys)
	clear(u.vals)
	u.live.Reset()
}

// Range over entries in index order. Stops when f returns false. f may remove the entry it's given.
func (u *IndexedHashMap[K, V]) Range(f func(int, K, V) bool) {
	for i := u.live.First(); i >= 0; i = u.live.Next(i + 1) {
		if !f(i, u.keys[i], u.vals[i]) {
			return
		}
	}
}

// Keys in index order.
func (u *IndexedHashMap[K, V]) Keys() []interface{} {
	ks := make([]interface{}, 0, u.Size())
	u.Range(func(_ int, k K, _ V) bool {
		ks = append(ks, k)
		return true
	})
	return ks
}

// Values in index order.
func (u *IndexedHashMap[K, V]) Values() []interface{} {
	vs := make([]interface{}, 0, u.Size())
	u.Range(func(_ int, _ K, v V) bool {
		vs = append(vs, v)
		return true
	})
	return vs
}

func (u *IndexedHashMap[K, V]) String() string {
	var sb strings.Builder
	sb.WriteString("IndexedHashMap\n")
	u.Range(func(i int, k K, v V) bool {
		fmt.Fprintf(&sb, "%d: %v=%v\n", i, k, v)
		return true
	})
	return sb.String()
}

// Iterator over the map in index order, positioned before the first entry.
func (u *IndexedHashMap[K, V]) Iterator() *Iterator[K, V] {
	return &Iterator[K, V]{m: u, index: -1}
}

// Iterator is a stateful iterator for IndexedHashMap.
type Iterator[K any, V any] struct {
	m     *IndexedHashMap[K, V]
	index int
}

func (it *Iterator[K, V]) Next() bool {
	if it.index = it.m.live.Next(it.index + 1); it.index < 0 {
		it.index = len(it.m.keys)
		return false
	}
	return true
}

func (it *Iterator[K, V]) Key() interface{} {
	return it.m.keys[it.index]
}

func (it *Iterator[K, V]) Value() interface{} {
	return it.m.vals[it.index]
}

// Entry is the typed Key and Value.
func (it *Iterator[K, V]) Entry() (K, V) {
	return it.m.keys[it.index], it.m.vals[it.index]
}

// Index of the current entry.
func (it *Iterator[K, V]) Index() int {
	return it.index
}

func (it *Iterator[K, V]) Begin() {
	it.index = -1
}

func (it *Iterator[K, V]) First() bool {
	it.Begin()
	return it.Next()
}

func (it *Iterator[K, V]) NextTo(f func(key interface{}, value interface{}) bool) bool {
	for it.Next() {
		if f(it.Key(), it.Value()) {
			return true
		}
	}
	return false
}

// Remove the current entry. Next continues with the following index.
func (it *Iterator[K, V]) Remove() bool {
	if !it.m.valid(it.index) {
		return false
	}
	return it.m.Remove(it.m.keys[it.index]) >= 0
}

var (
	_ containers.Container       = (*IndexedHashMap[int, int])(nil)
	_ containers.IteratorWithKey = (*Iterator[int, int])(nil)
)
