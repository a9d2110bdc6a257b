package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartSFEN is the SFEN string for the starting position.
const StartSFEN = "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1"

// ParseSFEN parses an SFEN string and returns a Position.
// The move counter field is optional and defaults to 1.
func ParseSFEN(sfen string) (*Position, error) {
	parts := strings.Fields(sfen)
	if len(parts) < 3 {
		return nil, fmt.Errorf("invalid SFEN: need at least 3 fields, got %d", len(parts))
	}

	pos := newEmptyPosition()

	// Parse piece placement (field 0)
	if err := parseBoard(pos, parts[0]); err != nil {
		return nil, err
	}

	// Parse side to move (field 1)
	switch parts[1] {
	case "b":
		pos.SideToMove = Black
	case "w":
		pos.SideToMove = White
	default:
		return nil, fmt.Errorf("invalid side to move: %s", parts[1])
	}

	// Parse pieces in hand (field 2)
	if err := parseHands(pos, parts[2]); err != nil {
		return nil, err
	}

	// Parse move counter (field 3, optional)
	if len(parts) > 3 {
		ply, err := strconv.Atoi(parts[3])
		if err != nil || ply < 1 {
			return nil, fmt.Errorf("invalid move counter: %s", parts[3])
		}
		pos.Ply = ply
	}

	if err := pos.Validate(); err != nil {
		return nil, fmt.Errorf("invalid SFEN %q: %w", sfen, err)
	}
	pos.hash = pos.ComputeHash()
	pos.updateCheckers()

	return pos, nil
}

// parseBoard parses the piece placement section, rank a first, 9-file first.
func parseBoard(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != RankNB {
		return fmt.Errorf("invalid piece placement: need 9 ranks, got %d", len(ranks))
	}

	for rank, rankStr := range ranks {
		file := FileNB - 1
		promoted := false

		for i := 0; i < len(rankStr); i++ {
			c := rankStr[i]
			switch {
			case c >= '1' && c <= '9':
				if promoted {
					return fmt.Errorf("dangling '+' in rank %c", 'a'+rank)
				}
				file -= int(c - '0')
			case c == '+':
				if promoted {
					return fmt.Errorf("dangling '+' in rank %c", 'a'+rank)
				}
				promoted = true
				continue
			default:
				if file < 0 {
					return fmt.Errorf("too many squares in rank %c", 'a'+rank)
				}
				token := string(c)
				if promoted {
					token = "+" + token
				}
				piece := PieceFromUSI(token)
				if piece == NoPiece {
					return fmt.Errorf("invalid piece: %s", token)
				}
				if piece.Type() == King && pos.kingSquare[piece.Color()] != NoSquare {
					return fmt.Errorf("%s has more than one king", piece.Color())
				}
				pos.setPiece(piece, NewSquare(file, rank))
				file--
			}
			promoted = false
		}

		if file != -1 || promoted {
			return fmt.Errorf("invalid number of squares in rank %c", 'a'+rank)
		}
	}

	return nil
}

// parseHands parses the pieces-in-hand section ("-" or e.g. "RB2Pp").
func parseHands(pos *Position, hands string) error {
	if hands == "-" {
		return nil
	}

	digits := ""
	for i := 0; i < len(hands); i++ {
		c := hands[i]
		if c >= '0' && c <= '9' {
			// Counts are 1..18: no leading zero, at most two digits.
			if (digits == "" && c == '0') || len(digits) == 2 {
				return fmt.Errorf("invalid count in hand: %s", hands)
			}
			digits += string(c)
			continue
		}
		piece := PieceFromUSI(string(c))
		if piece == NoPiece || piece.Type() == King {
			return fmt.Errorf("invalid piece in hand: %c", c)
		}
		count := 1
		if digits != "" {
			count, _ = strconv.Atoi(digits)
			digits = ""
		}
		pt := piece.Type()
		n := pos.hands[piece.Color()].Count(pt) + count
		if n > handLimit[pt] {
			return fmt.Errorf("too many %s in hand: %d", pt, n)
		}
		pos.hands[piece.Color()][pt] = uint8(n)
	}
	if digits != "" {
		return fmt.Errorf("invalid hand: %s", hands)
	}

	return nil
}

// SFEN returns the SFEN representation of the position.
func (p *Position) SFEN() string {
	var sb strings.Builder

	// Piece placement
	for rank := 0; rank < RankNB; rank++ {
		empty := 0
		for file := FileNB - 1; file >= 0; file-- {
			piece := p.board[NewSquare(file, rank)]
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank < RankNB-1 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	// Pieces in hand, Black first
	sb.WriteByte(' ')
	if p.hands[Black].IsEmpty() && p.hands[White].IsEmpty() {
		sb.WriteByte('-')
	} else {
		p.hands[Black].appendSFEN(&sb, Black)
		p.hands[White].appendSFEN(&sb, White)
	}

	// Move counter
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.Ply))

	return sb.String()
}
