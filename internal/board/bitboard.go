package board

import (
	"math/bits"
	"strings"
)

// Bitboard is an 81-bit set of squares split over two words.
// lo holds squares 0-62 (files 1-7), hi holds squares 63-80 (files 8-9)
// at bit offset 63. Bit 63 of lo and bits 18-63 of hi are always zero.
type Bitboard struct {
	lo, hi uint64
}

const (
	loMask   uint64 = 0x7fffffffffffffff
	hiMask   uint64 = 0x3ffff
	hiOffset        = 63
)

// Special masks.
var (
	Empty    = Bitboard{}
	Universe = Bitboard{loMask, hiMask}
)

// NewBitboard builds a bitboard from its two raw words.
func NewBitboard(lo, hi uint64) Bitboard {
	return Bitboard{lo & loMask, hi & hiMask}
}

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	return squareBB[sq]
}

// Words returns the raw low and high words.
func (b Bitboard) Words() (lo, hi uint64) {
	return b.lo, b.hi
}

// And returns the intersection of two bitboards.
func (b Bitboard) And(o Bitboard) Bitboard {
	return Bitboard{b.lo & o.lo, b.hi & o.hi}
}

// Or returns the union of two bitboards.
func (b Bitboard) Or(o Bitboard) Bitboard {
	return Bitboard{b.lo | o.lo, b.hi | o.hi}
}

// Xor returns the symmetric difference of two bitboards.
func (b Bitboard) Xor(o Bitboard) Bitboard {
	return Bitboard{b.lo ^ o.lo, b.hi ^ o.hi}
}

// AndNot returns b with every square of o removed.
func (b Bitboard) AndNot(o Bitboard) Bitboard {
	return Bitboard{b.lo &^ o.lo, b.hi &^ o.hi}
}

// Not returns the complement within the 81 board squares.
func (b Bitboard) Not() Bitboard {
	return Bitboard{b.lo ^ loMask, b.hi ^ hiMask}
}

// Shl shifts each word left by n bits (toward higher ranks within a file).
func (b Bitboard) Shl(n uint) Bitboard {
	return Bitboard{(b.lo << n) & loMask, (b.hi << n) & hiMask}
}

// Shr shifts each word right by n bits (toward lower ranks within a file).
func (b Bitboard) Shr(n uint) Bitboard {
	return Bitboard{b.lo >> n, b.hi >> n}
}

// Set sets a bit at the given square.
func (b Bitboard) Set(sq Square) Bitboard {
	return b.Or(squareBB[sq])
}

// Clear clears a bit at the given square.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b.AndNot(squareBB[sq])
}

// Toggle flips the bit at the given square.
func (b Bitboard) Toggle(sq Square) Bitboard {
	return b.Xor(squareBB[sq])
}

// IsSet returns true if the bit at the given square is set.
func (b Bitboard) IsSet(sq Square) bool {
	if sq < hiOffset {
		return b.lo&(1<<sq) != 0
	}
	return b.hi&(1<<(sq-hiOffset)) != 0
}

// Intersects returns true if the two bitboards share a square.
func (b Bitboard) Intersects(o Bitboard) bool {
	return b.lo&o.lo != 0 || b.hi&o.hi != 0
}

// PopCount returns the number of set squares.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(b.lo) + bits.OnesCount64(b.hi)
}

// LSB returns the lowest set square, or NoSquare when empty.
func (b Bitboard) LSB() Square {
	if b.lo != 0 {
		return Square(bits.TrailingZeros64(b.lo))
	}
	if b.hi != 0 {
		return Square(bits.TrailingZeros64(b.hi) + hiOffset)
	}
	return NoSquare
}

// PopLSB removes and returns the lowest set square.
func (b *Bitboard) PopLSB() Square {
	if b.lo != 0 {
		sq := Square(bits.TrailingZeros64(b.lo))
		b.lo &= b.lo - 1
		return sq
	}
	sq := Square(bits.TrailingZeros64(b.hi) + hiOffset)
	b.hi &= b.hi - 1
	return sq
}

// More returns true if more than one square is set.
func (b Bitboard) More() bool {
	if b.lo != 0 && b.hi != 0 {
		return true
	}
	return b.lo&(b.lo-1) != 0 || b.hi&(b.hi-1) != 0
}

// IsEmpty returns true if no bits are set.
func (b Bitboard) IsEmpty() bool {
	return b.lo == 0 && b.hi == 0
}

// Any returns true if any bit is set.
func (b Bitboard) Any() bool {
	return b.lo != 0 || b.hi != 0
}

// ForEach calls the function for each set square in increasing order.
func (b Bitboard) ForEach(f func(Square)) {
	for b.Any() {
		f(b.PopLSB())
	}
}

// Squares returns a slice of all squares that are set.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.PopCount())
	for b.Any() {
		squares = append(squares, b.PopLSB())
	}
	return squares
}

// String returns a visual representation of the bitboard, Black at the bottom.
func (b Bitboard) String() string {
	var sb strings.Builder
	sb.WriteString("  9 8 7 6 5 4 3 2 1\n")
	for rank := 0; rank < RankNB; rank++ {
		sb.WriteString("  ")
		for file := FileNB - 1; file >= 0; file-- {
			if b.IsSet(NewSquare(file, rank)) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte(byte('a' + rank))
		sb.WriteByte('\n')
	}
	return sb.String()
}
