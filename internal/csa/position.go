package csa

import (
	"strings"

	"github.com/hailam/shogiplay/internal/board"
)

// pieceSet is the number of pieces of each kind in a full set.
var pieceSet = [board.Rook + 1]int{
	board.Pawn: 18, board.Lance: 4, board.Knight: 4, board.Silver: 4,
	board.Gold: 4, board.Bishop: 2, board.Rook: 2,
}

// setup collects a start position while its lines are read.
type setup struct {
	pieces [board.SquareNB]board.Piece
	hands  [2]board.Hand
}

// hirate fills the even-game position.
func (s *setup) hirate() {
	pos := board.NewPosition()
	for sq := board.Square(0); sq < board.NoSquare; sq++ {
		s.pieces[sq] = pos.PieceAt(sq)
	}
}

// parseLine applies one position line: "PI" with optional removed squares,
// a rank line "P1".."P9", or a per-piece line "P+"/"P-".
func (s *setup) parseLine(line string) error {
	switch {
	case strings.HasPrefix(line, "PI"):
		s.hirate()
		rest := line[2:]
		for ; len(rest) >= 4; rest = rest[4:] {
			sq, err := ParseSquare(rest[:2])
			if err != nil {
				return err
			}
			pt, err := ParsePieceType(rest[2:4])
			if err != nil {
				return err
			}
			if s.pieces[sq].Type() != pt {
				return formatErr("%q: no %s on %s", line, rest[2:4], rest[:2])
			}
			s.pieces[sq] = board.NoPiece
		}
		if rest != "" {
			return formatErr("%q", line)
		}

	case len(line) >= 2 && line[1] >= '1' && line[1] <= '9':
		rank := int(line[1] - '1')
		cells := line[2:]
		if n := 3 * board.FileNB; len(cells) < n {
			// Trailing blanks may be stripped.
			cells += strings.Repeat(" ", n-len(cells))
		}
		if len(cells) != 3*board.FileNB {
			return formatErr("rank line %q", line)
		}
		for i := 0; i < board.FileNB; i++ {
			cell := cells[3*i : 3*i+3]
			sq := board.NewSquare(board.FileNB-1-i, rank)
			if cell == " * " {
				s.pieces[sq] = board.NoPiece
				continue
			}
			p, err := ParsePiece(cell)
			if err != nil {
				return err
			}
			s.pieces[sq] = p
		}

	case strings.HasPrefix(line, "P+"), strings.HasPrefix(line, "P-"):
		c, _ := parseColor(line[1:2])
		rest := line[2:]
		for ; len(rest) >= 4; rest = rest[4:] {
			if rest[:4] == "00AL" {
				s.restToHand(c)
				continue
			}
			pt, err := ParsePieceType(rest[2:4])
			if err != nil {
				return err
			}
			if rest[:2] == "00" {
				if pt < board.Pawn || pt > board.Rook {
					return formatErr("%q: %s cannot be in hand", line, rest[2:4])
				}
				if s.hands[c].Count(pt) >= pieceSet[pt] {
					return formatErr("%q: too many %s in hand", line, rest[2:4])
				}
				s.hands[c].Add(pt)
				continue
			}
			sq, err := ParseSquare(rest[:2])
			if err != nil {
				return err
			}
			s.pieces[sq] = board.NewPiece(pt, c)
		}
		if rest != "" {
			return formatErr("%q", line)
		}

	default:
		return formatErr("position line %q", line)
	}
	return nil
}

// restToHand gives c every piece not yet on the board or in a hand.
func (s *setup) restToHand(c board.Color) {
	var used [board.Rook + 1]int
	for _, p := range s.pieces {
		if kind := p.Kind(); p != board.NoPiece && kind != board.King {
			used[kind]++
		}
	}
	for pt := board.Pawn; pt <= board.Rook; pt++ {
		used[pt] += s.hands[board.Black].Count(pt) + s.hands[board.White].Count(pt)
		for n := used[pt]; n < pieceSet[pt]; n++ {
			s.hands[c].Add(pt)
		}
	}
}

// position validates the collected setup.
func (s *setup) position(side board.Color) (*board.Position, error) {
	pos, err := board.SetupPosition(&s.pieces, s.hands, side)
	if err != nil {
		return nil, formatErr("start position: %v", err)
	}
	return pos, nil
}

// ParsePosition parses a start position block: position lines followed by
// the side-to-move line ("+" or "-").
func ParsePosition(text string) (*board.Position, error) {
	var s setup
	for _, line := range splitLines(text) {
		switch line {
		case "+", "-":
			c, _ := parseColor(line)
			return s.position(c)
		}
		if err := s.parseLine(line); err != nil {
			return nil, err
		}
	}
	return nil, formatErr("missing side to move")
}

// FormatPosition writes pos as rank lines, hand lines and the side to move.
func FormatPosition(pos *board.Position) string {
	var sb strings.Builder
	for rank := 0; rank < board.RankNB; rank++ {
		sb.WriteByte('P')
		sb.WriteByte(byte('1' + rank))
		for file := board.FileNB - 1; file >= 0; file-- {
			p := pos.PieceAt(board.NewSquare(file, rank))
			if p == board.NoPiece {
				sb.WriteString(" * ")
			} else {
				sb.WriteString(FormatPiece(p))
			}
		}
		sb.WriteByte('\n')
	}

	for c := board.Black; c <= board.White; c++ {
		hand := pos.Hand(c)
		if hand.IsEmpty() {
			continue
		}
		sb.WriteString("P" + colorSign(c))
		for _, pt := range board.HandTypes {
			for range hand.Count(pt) {
				sb.WriteString("00" + PieceName(pt))
			}
		}
		sb.WriteByte('\n')
	}

	sb.WriteString(colorSign(pos.SideToMove))
	sb.WriteByte('\n')
	return sb.String()
}
