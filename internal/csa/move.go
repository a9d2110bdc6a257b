// Package csa reads and writes game records in the CSA file format
// (version 2.2) used by computer shogi servers.
package csa

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/shogiplay/internal/board"
)

// ErrFormat is returned for text that is not valid CSA.
var ErrFormat = errors.New("csa: invalid format")

func formatErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrFormat, fmt.Sprintf(format, args...))
}

// pieceNames maps piece types to their two-letter CSA names.
var pieceNames = [board.PieceTypeNB]string{
	board.Pawn:      "FU",
	board.Lance:     "KY",
	board.Knight:    "KE",
	board.Silver:    "GI",
	board.Gold:      "KI",
	board.Bishop:    "KA",
	board.Rook:      "HI",
	board.King:      "OU",
	board.ProPawn:   "TO",
	board.ProLance:  "NY",
	board.ProKnight: "NK",
	board.ProSilver: "NG",
	board.Horse:     "UM",
	board.Dragon:    "RY",
}

// FormatSquare returns the CSA coordinates of sq, file digit first ("77").
func FormatSquare(sq board.Square) string {
	return string([]byte{byte('1' + sq.File()), byte('1' + sq.Rank())})
}

// ParseSquare parses two-digit CSA coordinates. "00" is not a square.
func ParseSquare(s string) (board.Square, error) {
	if len(s) != 2 || s[0] < '1' || s[0] > '9' || s[1] < '1' || s[1] > '9' {
		return board.NoSquare, formatErr("square %q", s)
	}
	return board.NewSquare(int(s[0]-'1'), int(s[1]-'1')), nil
}

// PieceName returns the two-letter CSA name of pt, or "" for none.
func PieceName(pt board.PieceType) string {
	if pt >= board.PieceTypeNB {
		return ""
	}
	return pieceNames[pt]
}

// ParsePieceType parses a two-letter CSA piece name.
func ParsePieceType(s string) (board.PieceType, error) {
	for pt, name := range pieceNames {
		if name != "" && name == s {
			return board.PieceType(pt), nil
		}
	}
	return board.NoPieceType, formatErr("piece %q", s)
}

// FormatPiece returns the signed CSA name of p ("+FU", "-RY").
func FormatPiece(p board.Piece) string {
	return colorSign(p.Color()) + PieceName(p.Type())
}

// ParsePiece parses a signed CSA piece ("+FU", "-RY").
func ParsePiece(s string) (board.Piece, error) {
	if len(s) != 3 {
		return board.NoPiece, formatErr("piece %q", s)
	}
	c, err := parseColor(s[:1])
	if err != nil {
		return board.NoPiece, err
	}
	pt, err := ParsePieceType(s[1:])
	if err != nil {
		return board.NoPiece, err
	}
	return board.NewPiece(pt, c), nil
}

func colorSign(c board.Color) string {
	if c == board.White {
		return "-"
	}
	return "+"
}

func parseColor(s string) (board.Color, error) {
	switch s {
	case "+":
		return board.Black, nil
	case "-":
		return board.White, nil
	}
	return board.NoColor, formatErr("color %q", s)
}

// FormatMove returns m in CSA notation for the side to move in pos, e.g.
// "+7776FU", "-0055KA" or "+8822UM". The piece is the one standing on the
// destination after the move.
func FormatMove(m board.Move, pos *board.Position) string {
	var sb strings.Builder
	sb.WriteString(colorSign(pos.SideToMove))
	if m.IsDrop() {
		sb.WriteString("00")
		sb.WriteString(FormatSquare(m.To()))
		sb.WriteString(PieceName(m.Dropped()))
		return sb.String()
	}

	pt := pos.PieceAt(m.From()).Type()
	if m.IsPromotion() {
		pt = pt.Promoted()
	}
	sb.WriteString(FormatSquare(m.From()))
	sb.WriteString(FormatSquare(m.To()))
	sb.WriteString(PieceName(pt))
	return sb.String()
}

// ParseMove parses a CSA move for the side to move in pos. The result is
// well formed but not checked for legality.
func ParseMove(s string, pos *board.Position) (board.Move, error) {
	if len(s) != 7 {
		return board.NoMove, formatErr("move %q", s)
	}
	c, err := parseColor(s[:1])
	if err != nil {
		return board.NoMove, err
	}
	if c != pos.SideToMove {
		return board.NoMove, formatErr("move %q played out of turn", s)
	}
	to, err := ParseSquare(s[3:5])
	if err != nil {
		return board.NoMove, err
	}
	after, err := ParsePieceType(s[5:7])
	if err != nil {
		return board.NoMove, err
	}

	if s[1:3] == "00" {
		if after < board.Pawn || after > board.Rook {
			return board.NoMove, formatErr("cannot drop %s", after)
		}
		return board.NewDrop(after, to), nil
	}

	from, err := ParseSquare(s[1:3])
	if err != nil {
		return board.NoMove, err
	}
	piece := pos.PieceAt(from)
	if piece == board.NoPiece || piece.Color() != c {
		return board.NoMove, formatErr("move %q: no piece to move on %s", s, FormatSquare(from))
	}
	promote := !piece.IsPromoted() && after.IsPromoted()
	want := piece.Type()
	if promote {
		want = want.Promoted()
	}
	if after != want {
		return board.NoMove, formatErr("move %q: piece on %s is %s", s, FormatSquare(from), PieceName(piece.Type()))
	}
	return board.NewMove(from, to, promote), nil
}

// FormatTime returns a time line with whole seconds ("T12").
func FormatTime(d time.Duration) string {
	return "T" + strconv.FormatInt(int64(d/time.Second), 10)
}

// ParseTime parses a time line ("T12").
func ParseTime(s string) (time.Duration, error) {
	if !strings.HasPrefix(s, "T") {
		return 0, formatErr("time %q", s)
	}
	sec, err := strconv.Atoi(s[1:])
	if err != nil || sec < 0 {
		return 0, formatErr("time %q", s)
	}
	return time.Duration(sec) * time.Second, nil
}
