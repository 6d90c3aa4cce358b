package Go_Indexed

import (
	"math/bits"
)

// NewBitArray returns a BitArray that can hold at least size bits, all cleared.
func NewBitArray(size int) BitArray {
	return BitArray{bits: make([]uint, (size+bits.UintSize-1)/bits.UintSize)}
}

// BitArray is a fixed length bitmap. The indexed collections use it to mark which storage slots are live.
type BitArray struct {
	bits []uint
}

// Len is the number of bits the array can hold.
func (u BitArray) Len() int {
	return len(u.bits) * bits.UintSize
}

func (u BitArray) Get(i int) bool {
	return (u.bits[i/bits.UintSize]>>(i%bits.UintSize))&1 == 1
}

func (u BitArray) Set(i int) {
	u.bits[i/bits.UintSize] |= 1 << (i % bits.UintSize)
}

func (u BitArray) Clr(i int) {
	u.bits[i/bits.UintSize] &^= 1 << (i % bits.UintSize)
}

// First set bit, -1 if none is set.
func (u BitArray) First() int {
	return u.Next(0)
}

// Next returns the smallest set bit that is >= i, or -1.
func (u BitArray) Next(i int) int {
	if i < 0 {
		i = 0
	}
	w := i / bits.UintSize
	if w >= len(u.bits) {
		return -1
	}
	if x := u.bits[w] >> (i % bits.UintSize); x != 0 {
		return i + bits.TrailingZeros(x)
	}
	for w++; w < len(u.bits); w++ {
		if u.bits[w] != 0 {
			return w*bits.UintSize + bits.TrailingZeros(u.bits[w])
		}
	}
	return -1
}

// Count of set bits.
func (u BitArray) Count() (n int) {
	for _, w := range u.bits {
		n += bits.OnesCount(w)
	}
	return
}

// Reset clears all bits, keeping the backing memory.
func (u BitArray) Reset() {
	clear(u.bits)
}

// Grow returns a BitArray holding at least size bits with the contents of u. u is returned as is if it's
// already large enough.
func (u BitArray) Grow(size int) BitArray {
	if size <= u.Len() {
		return u
	}
	n := NewBitArray(size)
	copy(n.bits, u.bits)
	return n
}
