package board

import (
	"fmt"
	"strings"
)

// ToWestern converts a move to western (Hodges) notation, e.g. "P-7f",
// "Bx2b+", "S*5e", "N-7c=" and "G6i-5h" when another gold could reach 5h.
func (m Move) ToWestern(pos *Position) string {
	if m.IsSpecial() {
		return m.String()
	}
	if m.IsDrop() {
		return string(m.Dropped().Char()) + "*" + m.To().String()
	}

	from := m.From()
	to := m.To()
	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return m.String() // Fallback to USI
	}

	var sb strings.Builder
	if piece.IsPromoted() {
		sb.WriteByte('+')
	}
	sb.WriteByte(piece.Kind().Char())

	if isAmbiguous(pos, m, piece) {
		sb.WriteString(from.String())
	}

	if pos.IsEmpty(to) {
		sb.WriteByte('-')
	} else {
		sb.WriteByte('x')
	}
	sb.WriteString(to.String())

	switch {
	case m.IsPromotion():
		sb.WriteByte('+')
	case canPromote(pos.SideToMove, piece.Type(), from, to):
		sb.WriteByte('=')
	}
	return sb.String()
}

// isAmbiguous reports whether another piece of the same kind can also reach m.To().
func isAmbiguous(pos *Position, m Move, piece Piece) bool {
	for _, other := range pos.GenerateLegalMoves().Slice() {
		if other.IsDrop() || other.To() != m.To() || other.From() == m.From() {
			continue
		}
		if pos.PieceAt(other.From()) == piece {
			return true
		}
	}
	return false
}

// ParseWestern parses western notation and returns the matching legal move.
func ParseWestern(s string, pos *Position) (Move, error) {
	orig := s
	s = strings.TrimSpace(s)

	promoted := strings.HasPrefix(s, "+")
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return NoMove, fmt.Errorf("invalid move: %q", orig)
	}
	pt := PieceTypeFromChar(s[0])
	if pt == NoPieceType {
		return NoMove, fmt.Errorf("invalid piece in move: %q", orig)
	}
	if promoted {
		pt = pt.Promoted()
	}
	s = s[1:]

	// Promotion suffix
	promote, decline := false, false
	switch {
	case strings.HasSuffix(s, "+"):
		promote = true
		s = s[:len(s)-1]
	case strings.HasSuffix(s, "="):
		decline = true
		s = s[:len(s)-1]
	}

	sep := strings.IndexAny(s, "-x*")
	if sep < 0 || len(s)-sep != 3 {
		return NoMove, fmt.Errorf("invalid move: %q", orig)
	}
	to, err := ParseSquare(s[sep+1:])
	if err != nil {
		return NoMove, err
	}
	origin := NoSquare
	if sep > 0 {
		if origin, err = ParseSquare(s[:sep]); err != nil {
			return NoMove, err
		}
	}

	if s[sep] == '*' {
		m := NewDrop(pt, to)
		if promoted || promote || !pos.IsLegalMove(m) {
			return NoMove, fmt.Errorf("illegal drop: %q", orig)
		}
		return m, nil
	}

	var found []Move
	for _, m := range pos.GenerateLegalMoves().Slice() {
		if m.IsDrop() || m.To() != to || pos.PieceAt(m.From()).Type() != pt {
			continue
		}
		if origin != NoSquare && m.From() != origin {
			continue
		}
		if m.IsPromotion() != promote {
			continue
		}
		if decline && !canPromote(pos.SideToMove, pt, m.From(), to) {
			continue
		}
		if s[sep] == 'x' && pos.IsEmpty(to) {
			continue
		}
		found = append(found, m)
	}

	switch len(found) {
	case 0:
		return NoMove, fmt.Errorf("no legal move matches %q", orig)
	case 1:
		return found[0], nil
	}
	return NoMove, fmt.Errorf("ambiguous move %q", orig)
}

// MovesToWestern converts a sequence of moves played from pos to western notation.
func MovesToWestern(pos *Position, moves []Move) []string {
	result := make([]string, len(moves))
	p := pos.Copy()

	for i, m := range moves {
		result[i] = m.ToWestern(p)
		p.MakeMove(m)
	}

	return result
}
