package game

import "math/bits"

// Bitmap is a set of squares packed into one word: bit k is set iff square k
// is a member. Square 0 is a1, square 63 is h8.
type Bitmap uint64

const (
	BmpEmpty Bitmap = 0
	BmpAll   Bitmap = 0xFFFFFFFFFFFFFFFF
	BmpTraps Bitmap = 0x0000240000240000

	BmpXMin Bitmap = 0x0101010101010101 // file a
	BmpXMax Bitmap = 0x8080808080808080 // file h
	BmpYMin Bitmap = 0x00000000000000FF // rank 1
	BmpYMax Bitmap = 0xFF00000000000000 // rank 8

	bmpNotXMin = ^BmpXMin
	bmpNotXMax = ^BmpXMax
)

// BitmapOf builds a set from a list of squares.
func BitmapOf(locs ...int) Bitmap {
	var b Bitmap
	for _, k := range locs {
		b |= 1 << uint(k)
	}
	return b
}

func (b Bitmap) Has(k int) bool { return b&(1<<uint(k)) != 0 }
func (b *Bitmap) SetOn(k int)   { *b |= 1 << uint(k) }
func (b *Bitmap) SetOff(k int)  { *b &^= 1 << uint(k) }
func (b *Bitmap) Toggle(k int)  { *b ^= 1 << uint(k) }

func (b Bitmap) IsEmpty() bool { return b == 0 }
func (b Bitmap) HasBits() bool { return b != 0 }
func (b Bitmap) Count() int    { return bits.OnesCount64(uint64(b)) }

// IsSingle reports whether exactly one square is set.
func (b Bitmap) IsSingle() bool { return b != 0 && b&(b-1) == 0 }

// Lowest returns the smallest member, or ErrSquare for the empty set.
func (b Bitmap) Lowest() int {
	if b == 0 {
		return ErrSquare
	}
	return bits.TrailingZeros64(uint64(b))
}

// NextBit removes and returns the smallest member. The caller checks HasBits first.
func (b *Bitmap) NextBit() int {
	k := bits.TrailingZeros64(uint64(*b))
	*b &= *b - 1
	return k
}

// Locs lists the members in increasing order.
func (b Bitmap) Locs() []int {
	out := make([]int, 0, b.Count())
	for b != 0 {
		out = append(out, b.NextBit())
	}
	return out
}

func (b Bitmap) ShiftS() Bitmap { return b >> 8 }
func (b Bitmap) ShiftN() Bitmap { return b << 8 }
func (b Bitmap) ShiftW() Bitmap { return (b & bmpNotXMin) >> 1 }
func (b Bitmap) ShiftE() Bitmap { return (b & bmpNotXMax) << 1 }

// Shift moves every member one square in direction dir, dropping squares that
// fall off the board.
func (b Bitmap) Shift(dir int) Bitmap {
	switch dir {
	case DirS:
		return b.ShiftS()
	case DirW:
		return b.ShiftW()
	case DirE:
		return b.ShiftE()
	case DirN:
		return b.ShiftN()
	}
	return 0
}

// Adj is the set of squares orthogonally adjacent to some member.
func (b Bitmap) Adj() Bitmap {
	return b>>8 | b<<8 | (b&bmpNotXMin)>>1 | (b&bmpNotXMax)<<1
}

// Dilate is b together with its adjacent squares.
func (b Bitmap) Dilate() Bitmap { return b | b.Adj() }

// String prints the set as an 8x8 grid, rank 8 first.
func (b Bitmap) String() string {
	buf := make([]byte, 0, 72)
	for y := 7; y >= 0; y-- {
		for x := 0; x < 8; x++ {
			if b.Has(y*8 + x) {
				buf = append(buf, 'x')
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
