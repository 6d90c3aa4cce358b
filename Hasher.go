package Go_Indexed

import (
	"math/bits"
	_ "runtime"
	"unsafe"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"
)

const (
	// MaxCapacity is the largest bucket array or slot table any index will allocate.
	MaxCapacity = 1 << 30
	// golden is 2^32 divided by the golden ratio.
	golden uint32 = 0x9E3779B9
)

// Hash32 spreads a caller supplied hash code into the 32 bit value the indexes store and mask.
// Poor hash codes, such as small consecutive integers, are avalanched so that the low bits used by the
// bucket mask differ.
func Hash32(h uint) int32 {
	x := uint32(h)
	if bits.UintSize == 64 {
		x ^= uint32(uint64(h) >> 32)
	}
	x *= golden
	return int32(x ^ x>>16)
}

// TableSizeFor returns the smallest power of two that is at least hint. The result is never less than 1 and
// never more than MaxCapacity.
func TableSizeFor(hint int) int {
	if hint <= 1 {
		return 1
	}
	if hint >= MaxCapacity {
		return MaxCapacity
	}
	return 1 << bits.Len(uint(hint-1))
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Equal is the equality function for comparable keys.
func Equal[T comparable](a, b T) bool {
	return a == b
}

// StringHash hashes s with xxhash. It is deterministic across processes.
func StringHash(s string) uint {
	return uint(xxhash.Sum64String(s))
}

// BytesHash hashes b with xxhash.
func BytesHash(b []byte) uint {
	return uint(xxhash.Sum64(b))
}

// IntHash returns v itself; Hash32 does the mixing.
func IntHash[T constraints.Integer](v T) uint {
	return uint(v)
}

//go:linkname rtHash runtime.memhash
//go:noescape
func rtHash(ptr unsafe.Pointer, seed uint, len uintptr) uint

//go:linkname rtStrHash runtime.strhash
//go:noescape
func rtStrHash(ptr unsafe.Pointer, seed uint) uint

// Hasher is an ailas for maphash.Seed, create it using Hasher(maphash.MakeSeed()) or any other random
// number. Hashes produced by it differ between seeds, so they must not be persisted.
type Hasher uint

// HashMem hashes the memory contents in the range [addr, addr+size) as bytes.
func (u Hasher) HashMem(addr unsafe.Pointer, size uintptr) uint {
	return rtHash(addr, uint(u), size)
}

// HashBytes hashes the given byte slice.
func (u Hasher) HashBytes(b []byte) uint {
	if len(b) == 0 {
		return uint(u)
	}
	return u.HashMem(unsafe.Pointer(&b[0]), uintptr(len(b)))
}

// HashInt hashes v.
func (u Hasher) HashInt(v int) uint {
	return u.HashMem(unsafe.Pointer(&v), unsafe.Sizeof(v))
}

// HashString directly hashes a string.
func (u Hasher) HashString(v string) uint {
	return rtStrHash(unsafe.Pointer(&v), uint(u))
}
