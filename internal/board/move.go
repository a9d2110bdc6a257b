package board

import (
	"fmt"
	"strings"
)

// Move encodes a shogi move in 16 bits:
// bits 0-6:   to square (0-80)
// bits 7-13:  from square, or the dropped PieceType for drops
// bit 14:     promotion
// bit 15:     drop
type Move uint16

const (
	movePromote Move = 1 << 14
	moveDrop    Move = 1 << 15
	squareMask  Move = 0x7f
)

// Special moves. Win and Resign use from == to, which no board move can.
const (
	NoMove     Move = 0
	MoveWin    Move = 2 | 2<<7
	MoveResign Move = 3 | 3<<7
)

// NewMove creates a board move.
func NewMove(from, to Square, promote bool) Move {
	m := Move(to) | Move(from)<<7
	if promote {
		m |= movePromote
	}
	return m
}

// NewDrop creates a drop of pt onto to.
func NewDrop(pt PieceType, to Square) Move {
	return Move(to) | Move(pt)<<7 | moveDrop
}

// To returns the destination square.
func (m Move) To() Square {
	return Square(m & squareMask)
}

// From returns the origin square (meaningless for drops).
func (m Move) From() Square {
	return Square((m >> 7) & squareMask)
}

// Dropped returns the dropped piece type (only valid if IsDrop() is true).
func (m Move) Dropped() PieceType {
	return PieceType((m >> 7) & squareMask)
}

// IsDrop returns true if this move places a piece from hand.
func (m Move) IsDrop() bool {
	return m&moveDrop != 0
}

// IsPromotion returns true if the moving piece promotes.
func (m Move) IsPromotion() bool {
	return m&movePromote != 0
}

// IsSpecial returns true for NoMove, MoveWin and MoveResign.
func (m Move) IsSpecial() bool {
	return m == NoMove || m == MoveWin || m == MoveResign
}

// String returns the USI format of the move (e.g., "7g7f", "8h2b+", "P*5e").
func (m Move) String() string {
	switch m {
	case NoMove:
		return "none"
	case MoveWin:
		return "win"
	case MoveResign:
		return "resign"
	}
	if m.IsDrop() {
		return string(m.Dropped().Char()) + "*" + m.To().String()
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += "+"
	}
	return s
}

// ParseMove parses a USI format move string. The result is not checked
// against any position.
func ParseMove(s string) (Move, error) {
	switch s {
	case "resign":
		return MoveResign, nil
	case "win":
		return MoveWin, nil
	}

	if len(s) == 4 && s[1] == '*' {
		pt := PieceTypeFromChar(s[0])
		if pt == NoPieceType || pt == King {
			return NoMove, fmt.Errorf("invalid drop piece: %c", s[0])
		}
		to, err := ParseSquare(s[2:4])
		if err != nil {
			return NoMove, err
		}
		return NewDrop(pt, to), nil
	}

	if len(s) != 4 && !(len(s) == 5 && s[4] == '+') {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}
	if from == to {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}
	return NewMove(from, to, len(s) == 5), nil
}

// MarshalText implements encoding.TextMarshaler using USI notation.
func (m Move) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using USI notation.
func (m *Move) UnmarshalText(text []byte) error {
	if string(text) == "none" {
		*m = NoMove
		return nil
	}
	mv, err := ParseMove(string(text))
	if err != nil {
		return err
	}
	*m = mv
	return nil
}

// MaxMoves bounds the number of legal moves in any shogi position (593).
const MaxMoves = 600

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [MaxMoves]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// String joins the moves in USI notation.
func (ml *MoveList) String() string {
	parts := make([]string, ml.count)
	for i, m := range ml.Slice() {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}
