package Maps

// IndexedMap is a hash map whose entries each have a stable integer index. The index of a key doesn't change
// while the key is present, so callers can cache it and go through KeyAt and ValueAt instead of hashing.
type IndexedMap[K any, V any] interface {
	Add(K, V) (int, bool)
	AddIfAbsent(K, V) (int, bool)
	Get(K) (V, bool)
	Has(K) bool
	Index(K) int
	KeyAt(int) (K, bool)
	ValueAt(int) (V, bool)
	SetValueAt(int, V) bool
	Remove(K) int
	Size() int
	Clear()
	Range(func(int, K, V) bool)
}
