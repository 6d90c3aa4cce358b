package Sets

// IndexedSet is a set whose elements each have a stable integer index. Index and At are inverse of each other
// for present elements.
type IndexedSet[E any] interface {
	Has(E) bool
	Index(E) int
	At(int) (E, bool)
	Size() int
	Range(func(int, E) bool)
}

// MutableSet is an IndexedSet that supports insertion and removal. Removed indices may be reused.
type MutableSet[E any] interface {
	IndexedSet[E]
	Add(E) (int, bool)
	Remove(E) int
	Clear()
}
