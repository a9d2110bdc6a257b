package board

import (
	"fmt"
	"strings"
)

// undoState stores what MakeMove needs to restore on UnmakeMove.
type undoState struct {
	move     Move
	captured Piece
	hands    [2]Hand
	hash     uint64
	checkers Bitboard
}

// Position represents a complete shogi position with its move history.
type Position struct {
	board [SquareNB]Piece
	hands [2]Hand

	// Piece bitboards: [Color][PieceType], promotion included
	byType  [2][PieceTypeNB]Bitboard
	byColor [2]Bitboard
	occ     Bitboard

	// Game state
	SideToMove Color
	Ply        int // move counter, starts at 1

	kingSquare [2]Square
	checkers   Bitboard
	hash       uint64

	history []undoState
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	pos, err := ParseSFEN(StartSFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

// newEmptyPosition returns a position with no pieces, Black to move.
func newEmptyPosition() *Position {
	return &Position{
		Ply:        1,
		kingSquare: [2]Square{NoSquare, NoSquare},
	}
}

// SetupPosition builds a position from a square-indexed piece array and
// both hands, with the move counter at 1. It fails on the same
// inconsistencies as ParseSFEN.
func SetupPosition(pieces *[SquareNB]Piece, hands [2]Hand, side Color) (*Position, error) {
	pos := newEmptyPosition()
	for sq, piece := range pieces {
		if piece == NoPiece {
			continue
		}
		if piece.Type() == King && pos.kingSquare[piece.Color()] != NoSquare {
			return nil, fmt.Errorf("%s has more than one king", piece.Color())
		}
		pos.setPiece(piece, Square(sq))
	}
	for c := Black; c <= White; c++ {
		for pt := Pawn; pt <= Rook; pt++ {
			if hands[c].Count(pt) > handLimit[pt] {
				return nil, fmt.Errorf("too many %s in hand: %d", pt, hands[c].Count(pt))
			}
		}
	}
	pos.hands = hands
	pos.SideToMove = side

	if err := pos.Validate(); err != nil {
		return nil, err
	}
	pos.hash = pos.ComputeHash()
	pos.updateCheckers()
	return pos, nil
}

// Copy creates a deep, independent copy of the position, history included.
func (p *Position) Copy() *Position {
	newPos := *p
	newPos.history = make([]undoState, len(p.history), cap(p.history))
	copy(newPos.history, p.history)
	return &newPos
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	return p.board[sq]
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.board[sq] == NoPiece
}

// Hand returns a copy of c's pieces in hand.
func (p *Position) Hand(c Color) Hand {
	return p.hands[c]
}

// King returns the square of c's king, or NoSquare if it has none.
func (p *Position) King(c Color) Square {
	return p.kingSquare[c]
}

// Pieces returns the bitboard of c's pieces of exactly type pt.
func (p *Position) Pieces(c Color, pt PieceType) Bitboard {
	return p.byType[c][pt]
}

// ColorBB returns all squares occupied by c.
func (p *Position) ColorBB(c Color) Bitboard {
	return p.byColor[c]
}

// Occupied returns all occupied squares.
func (p *Position) Occupied() Bitboard {
	return p.occ
}

// Hash returns the Zobrist key of board, hands and side to move.
func (p *Position) Hash() uint64 {
	return p.hash
}

// Checkers returns the opponent pieces giving check to the side to move.
func (p *Position) Checkers() Bitboard {
	return p.checkers
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	return p.checkers.Any()
}

// LastMove returns the most recent move, or NoMove at the root.
func (p *Position) LastMove() Move {
	if len(p.history) == 0 {
		return NoMove
	}
	return p.history[len(p.history)-1].move
}

// GamePly returns the number of moves made since the position was set up.
func (p *Position) GamePly() int {
	return len(p.history)
}

// golds returns c's gold-moving pieces other than the king.
func (p *Position) golds(c Color) Bitboard {
	t := &p.byType[c]
	return t[Gold].Or(t[ProPawn]).Or(t[ProLance]).Or(t[ProKnight]).Or(t[ProSilver])
}

// kingLike returns c's pieces that also step one square in every direction.
func (p *Position) kingLike(c Color) Bitboard {
	t := &p.byType[c]
	return t[King].Or(t[Horse]).Or(t[Dragon])
}

// setPiece places a piece on an empty square (updates hash).
func (p *Position) setPiece(piece Piece, sq Square) {
	c := piece.Color()
	bb := squareBB[sq]
	p.board[sq] = piece
	p.byType[c][piece.Type()] = p.byType[c][piece.Type()].Or(bb)
	p.byColor[c] = p.byColor[c].Or(bb)
	p.occ = p.occ.Or(bb)
	p.hash ^= zobristPiece[piece][sq]
	if piece.Type() == King {
		p.kingSquare[c] = sq
	}
}

// removePiece removes and returns the piece on sq (updates hash).
func (p *Position) removePiece(sq Square) Piece {
	piece := p.board[sq]
	if piece == NoPiece {
		return NoPiece
	}
	c := piece.Color()
	bb := squareBB[sq]
	p.board[sq] = NoPiece
	p.byType[c][piece.Type()] = p.byType[c][piece.Type()].AndNot(bb)
	p.byColor[c] = p.byColor[c].AndNot(bb)
	p.occ = p.occ.AndNot(bb)
	p.hash ^= zobristPiece[piece][sq]
	return piece
}

// addHand adds one piece of pt to c's hand (updates hash).
func (p *Position) addHand(c Color, pt PieceType) {
	n := p.hands[c][pt]
	p.hash ^= zobristHand[c][pt][n] ^ zobristHand[c][pt][n+1]
	p.hands[c].Add(pt)
}

// removeHand removes one piece of pt from c's hand (updates hash).
func (p *Position) removeHand(c Color, pt PieceType) {
	n := p.hands[c][pt]
	p.hands[c].Remove(pt)
	p.hash ^= zobristHand[c][pt][n] ^ zobristHand[c][pt][n-1]
}

// AttackersTo returns c's pieces attacking sq with the current occupancy.
func (p *Position) AttackersTo(c Color, sq Square) Bitboard {
	return p.AttackersToOcc(c, sq, p.occ)
}

// AttackersToOcc returns c's pieces attacking sq given occupancy occ.
// Step attacks are looked up from sq with the opposite color's pattern.
func (p *Position) AttackersToOcc(c Color, sq Square, occ Bitboard) Bitboard {
	them := c.Other()
	t := &p.byType[c]
	kingLike := p.kingLike(c)

	att := pawnAttacks[them][sq].And(t[Pawn])
	att = att.Or(LanceAttacks(them, sq, occ).And(t[Lance]))
	att = att.Or(knightAttacks[them][sq].And(t[Knight]))
	att = att.Or(silverAttacks[them][sq].And(t[Silver].Or(kingLike)))
	att = att.Or(goldAttacks[them][sq].And(p.golds(c).Or(kingLike)))
	att = att.Or(BishopAttacks(sq, occ).And(t[Bishop].Or(t[Horse])))
	att = att.Or(RookAttacks(sq, occ).And(t[Rook].Or(t[Dragon])))
	return att
}

// IsAttacked returns true if c attacks sq.
func (p *Position) IsAttacked(c Color, sq Square) bool {
	return p.AttackersTo(c, sq).Any()
}

// PinnedBy returns the pieces of c's opponent that are the only blocker
// between one of c's sliders and the opponent's king.
func (p *Position) PinnedBy(c Color) Bitboard {
	them := c.Other()
	ksq := p.kingSquare[them]
	if ksq == NoSquare {
		return Empty
	}
	t := &p.byType[c]

	snipers := LancePseudoAttacks(them, ksq).And(t[Lance])
	snipers = snipers.Or(bishopPseudo[ksq].And(t[Bishop].Or(t[Horse])))
	snipers = snipers.Or(rookPseudo[ksq].And(t[Rook].Or(t[Dragon])))

	var pinned Bitboard
	for snipers.Any() {
		sq := snipers.PopLSB()
		blockers := betweenBB[ksq][sq].And(p.occ)
		if blockers.Any() && !blockers.More() && blockers.Intersects(p.byColor[them]) {
			pinned = pinned.Or(blockers)
		}
	}
	return pinned
}

// updateCheckers recomputes the checkers of the side to move.
func (p *Position) updateCheckers() {
	us := p.SideToMove
	if ksq := p.kingSquare[us]; ksq != NoSquare {
		p.checkers = p.AttackersTo(us.Other(), ksq)
	} else {
		p.checkers = Empty
	}
}

// Validate checks if the position is consistent.
func (p *Position) Validate() error {
	for c := Black; c <= White; c++ {
		if p.byType[c][King].More() {
			return fmt.Errorf("%s has more than one king", c)
		}
		if p.byType[c][Pawn].Or(p.byType[c][Lance]).Intersects(RelativeRanks(c, 0, 0)) {
			return fmt.Errorf("%s pawn or lance on the last rank", c)
		}
		if p.byType[c][Knight].Intersects(RelativeRanks(c, 0, 1)) {
			return fmt.Errorf("%s knight on the last two ranks", c)
		}
		for f := 0; f < FileNB; f++ {
			if p.byType[c][Pawn].And(fileBB[f]).More() {
				return fmt.Errorf("%s has two pawns on file %d", c, f+1)
			}
		}
	}
	if ksq := p.kingSquare[p.SideToMove.Other()]; ksq != NoSquare && p.IsAttacked(p.SideToMove, ksq) {
		return fmt.Errorf("side not to move is in check")
	}
	return nil
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n   9  8  7  6  5  4  3  2  1\n")
	for rank := 0; rank < RankNB; rank++ {
		sb.WriteString(" ")
		for file := FileNB - 1; file >= 0; file-- {
			piece := p.board[NewSquare(file, rank)]
			switch {
			case piece == NoPiece:
				sb.WriteString("  .")
			case piece.IsPromoted():
				sb.WriteString(" " + piece.String())
			default:
				sb.WriteString("  " + piece.String())
			}
		}
		fmt.Fprintf(&sb, "  %c\n", 'a'+rank)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Black hand: %s\n", handString(&p.hands[Black], Black))
	fmt.Fprintf(&sb, "White hand: %s\n", handString(&p.hands[White], White))
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Ply: %d\n", p.Ply)
	fmt.Fprintf(&sb, "Hash: %016x\n", p.hash)
	return sb.String()
}

func handString(h *Hand, c Color) string {
	if h.IsEmpty() {
		return "-"
	}
	var sb strings.Builder
	h.appendSFEN(&sb, c)
	return sb.String()
}
