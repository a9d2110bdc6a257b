package board

import (
	"strconv"
	"strings"
)

// Hand counts captured pieces held in reserve, indexed by unpromoted type.
type Hand [Rook + 1]uint8

// Count returns how many pieces of pt are held.
func (h *Hand) Count(pt PieceType) int {
	return int(h[pt])
}

// Add adds one piece of pt.
func (h *Hand) Add(pt PieceType) {
	h[pt]++
}

// Remove removes one piece of pt. Panics if none is held.
func (h *Hand) Remove(pt PieceType) {
	if h[pt] == 0 {
		panic("board: remove from empty hand: " + pt.String())
	}
	h[pt]--
}

// IsEmpty returns true if no piece is held.
func (h *Hand) IsEmpty() bool {
	return *h == Hand{}
}

// HasExceptPawn returns true if any non-pawn piece is held.
func (h *Hand) HasExceptPawn() bool {
	for pt := Lance; pt <= Rook; pt++ {
		if h[pt] != 0 {
			return true
		}
	}
	return false
}

// Total returns the number of pieces held.
func (h *Hand) Total() int {
	n := 0
	for pt := Pawn; pt <= Rook; pt++ {
		n += int(h[pt])
	}
	return n
}

// appendSFEN writes the hand in SFEN order (R B G S N L P) using c's case.
func (h *Hand) appendSFEN(sb *strings.Builder, c Color) {
	for _, pt := range HandTypes {
		n := h[pt]
		if n == 0 {
			continue
		}
		if n > 1 {
			sb.WriteString(strconv.Itoa(int(n)))
		}
		sb.WriteString(NewPiece(pt, c).String())
	}
}
