// Package board implements shogi rules on an 81-square bitboard representation.
package board

import "fmt"

// Square represents a square on the shogi board (0-80).
// Index = file*9 + rank, where file 0 is the 1-file and rank 0 is rank a (一).
// Square 0 is 1a, square 80 is 9i.
type Square uint8

// NoSquare is the sentinel for "no square".
const NoSquare Square = 81

// SquareNB is the number of board squares.
const SquareNB = 81

// Board dimensions.
const (
	FileNB = 9
	RankNB = 9
)

// NewSquare creates a square from file and rank (0-indexed).
func NewSquare(file, rank int) Square {
	return Square(file*9 + rank)
}

// File returns the file of the square (0-8, where 0 is the 1-file).
func (sq Square) File() int {
	return int(sq) / 9
}

// Rank returns the rank of the square (0-8, where 0 is rank a).
func (sq Square) Rank() int {
	return int(sq) % 9
}

// RelativeRank returns the rank from c's point of view.
// Rank 0 is the far rank for the given color.
func (sq Square) RelativeRank(c Color) int {
	if c == Black {
		return sq.Rank()
	}
	return 8 - sq.Rank()
}

// IsValid returns true if the square is on the board.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// String returns the USI notation for the square (e.g., "7g").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", '1'+sq.File(), 'a'+sq.Rank())
}

// ParseSquare parses USI notation (e.g., "7g") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	file := int(s[0]) - '1'
	rank := int(s[1]) - 'a'

	if file < 0 || file > 8 || rank < 0 || rank > 8 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return NewSquare(file, rank), nil
}

// InPromotionZone returns true if sq lies in the enemy camp of c.
func (sq Square) InPromotionZone(c Color) bool {
	return sq.RelativeRank(c) <= 2
}

// Direction is one of the eight compass directions seen from Black.
// North points toward rank a, West toward the 9-file.
type Direction int8

const (
	South     Direction = iota // rank+1
	SouthWest                  // rank+1, file+1
	West                       // file+1
	NorthWest                  // rank-1, file+1
	North                      // rank-1
	NorthEast                  // rank-1, file-1
	East                       // file-1
	SouthEast                  // rank+1, file-1
)

// NoDirection is returned for squares that are not aligned.
const NoDirection Direction = -1

var (
	dirFile = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
	dirRank = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
)

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	return (d + 4) & 7
}

// Step returns the square one step from sq in direction d, or NoSquare off board.
func (sq Square) Step(d Direction) Square {
	f := sq.File() + dirFile[d]
	r := sq.Rank() + dirRank[d]
	if f < 0 || f > 8 || r < 0 || r > 8 {
		return NoSquare
	}
	return NewSquare(f, r)
}

// DirectionOf returns the direction from one square to another when both
// share a file, rank or diagonal, and NoDirection otherwise.
func DirectionOf(from, to Square) Direction {
	if from == to || from >= NoSquare || to >= NoSquare {
		return NoDirection
	}
	df := to.File() - from.File()
	dr := to.Rank() - from.Rank()
	if df != 0 && dr != 0 && abs(df) != abs(dr) {
		return NoDirection
	}
	sf, sr := sign(df), sign(dr)
	for d := South; d <= SouthEast; d++ {
		if dirFile[d] == sf && dirRank[d] == sr {
			return d
		}
	}
	return NoDirection
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
