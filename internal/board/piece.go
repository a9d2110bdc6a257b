package board

import "strings"

// Color represents the side a piece or player belongs to.
type Color uint8

const (
	Black Color = iota // sente, moves first
	White              // gote
)

// NoColor marks a missing color.
const NoColor Color = 2

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "NoColor"
	}
}

// PieceType is a colorless piece kind. Bit 3 marks promotion.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Lance
	Knight
	Silver
	Gold
	Bishop
	Rook
	King
	ProPawn
	ProLance
	ProKnight
	ProSilver
	_ // promoted gold does not exist
	Horse
	Dragon
	PieceTypeNB
)

const (
	kindMask      = 0b00111
	colorlessMask = 0b01111
	demotionMask  = 0b10111
	promotionBit  = 0b01000
	colorBit      = 0b10000
)

// HandTypes lists the piece types that can be held in hand, strongest first.
var HandTypes = [7]PieceType{Rook, Bishop, Gold, Silver, Knight, Lance, Pawn}

// IsPromoted returns true for promoted piece types. King is never promoted.
func (pt PieceType) IsPromoted() bool {
	return pt != King && pt&promotionBit != 0
}

// Promoted returns the promoted form; Gold and King are returned unchanged.
func (pt PieceType) Promoted() PieceType {
	if !pt.CanPromote() {
		return pt
	}
	return pt | promotionBit
}

// Demoted returns the unpromoted form. King is returned unchanged.
func (pt PieceType) Demoted() PieceType {
	if pt == King {
		return King
	}
	return pt & kindMask
}

// CanPromote returns true if the type has a promoted form.
func (pt PieceType) CanPromote() bool {
	return pt >= Pawn && pt <= Rook && pt != Gold
}

var pieceTypeNames = [PieceTypeNB]string{
	"None", "Pawn", "Lance", "Knight", "Silver", "Gold", "Bishop", "Rook", "King",
	"ProPawn", "ProLance", "ProKnight", "ProSilver", "None", "Horse", "Dragon",
}

// String returns the piece type name.
func (pt PieceType) String() string {
	if pt >= PieceTypeNB {
		return "None"
	}
	return pieceTypeNames[pt]
}

// usiChars maps unpromoted piece types to USI letters (Black / uppercase).
const usiChars = " PLNSGBRK"

// Char returns the uppercase USI letter of the unpromoted kind.
func (pt PieceType) Char() byte {
	d := pt.Demoted()
	if d == NoPieceType || d > King {
		return ' '
	}
	return usiChars[d]
}

// PieceTypeFromChar converts an uppercase USI letter to an unpromoted type.
func PieceTypeFromChar(c byte) PieceType {
	i := strings.IndexByte(usiChars, c)
	if i <= 0 {
		return NoPieceType
	}
	return PieceType(i)
}

// Piece is a PieceType combined with a color bit (bit 4).
type Piece uint8

// NoPiece marks an empty square.
const NoPiece Piece = 0

const (
	BlackPawn Piece = Piece(Pawn) + iota
	BlackLance
	BlackKnight
	BlackSilver
	BlackGold
	BlackBishop
	BlackRook
	BlackKing
	BlackProPawn
	BlackProLance
	BlackProKnight
	BlackProSilver
	_
	BlackHorse
	BlackDragon
)

const (
	WhitePawn Piece = Piece(Pawn) + colorBit + iota
	WhiteLance
	WhiteKnight
	WhiteSilver
	WhiteGold
	WhiteBishop
	WhiteRook
	WhiteKing
	WhiteProPawn
	WhiteProLance
	WhiteProKnight
	WhiteProSilver
	_
	WhiteHorse
	WhiteDragon
)

// PieceNB bounds every Piece value.
const PieceNB = 32

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt == NoPieceType || pt >= PieceTypeNB || c >= NoColor {
		return NoPiece
	}
	return Piece(pt) | Piece(c)<<4
}

// Type returns the colorless type, promotion included.
func (p Piece) Type() PieceType {
	return PieceType(p & colorlessMask)
}

// Kind returns the colorless, unpromoted type. King stays King.
func (p Piece) Kind() PieceType {
	return p.Type().Demoted()
}

// Color returns the Color of the piece.
func (p Piece) Color() Color {
	if p == NoPiece {
		return NoColor
	}
	return Color(p >> 4)
}

// Colored returns the piece with its color replaced by c.
func (p Piece) Colored(c Color) Piece {
	return p&colorlessMask | Piece(c)<<4
}

// Promoted returns the piece with the promotion bit set.
func (p Piece) Promoted() Piece {
	return p | promotionBit
}

// Demoted returns the piece with the promotion bit cleared. King is unchanged.
func (p Piece) Demoted() Piece {
	if p.Type() == King {
		return p
	}
	return p & demotionMask
}

// IsPromoted returns true if the piece is promoted.
func (p Piece) IsPromoted() bool {
	return p.Type().IsPromoted()
}

// String returns the USI notation: uppercase for Black, lowercase for White,
// "+" prefix when promoted.
func (p Piece) String() string {
	if p == NoPiece {
		return " "
	}
	c := p.Kind().Char()
	if p.Color() == White {
		c += 'a' - 'A'
	}
	if p.IsPromoted() {
		return "+" + string(c)
	}
	return string(c)
}

// PieceFromUSI converts a USI piece token ("P", "+p", "k") to a Piece.
func PieceFromUSI(s string) Piece {
	promoted := false
	if len(s) == 2 && s[0] == '+' {
		promoted = true
		s = s[1:]
	}
	if len(s) != 1 {
		return NoPiece
	}
	c := Black
	ch := s[0]
	if ch >= 'a' && ch <= 'z' {
		c = White
		ch -= 'a' - 'A'
	}
	pt := PieceTypeFromChar(ch)
	if pt == NoPieceType {
		return NoPiece
	}
	if promoted {
		if !pt.CanPromote() {
			return NoPiece
		}
		pt = pt.Promoted()
	}
	return NewPiece(pt, c)
}

// PieceValue is the declaration-rule point value per type.
var PieceValue = [PieceTypeNB]int{
	Pawn: 1, Lance: 1, Knight: 1, Silver: 1, Gold: 1, Bishop: 5, Rook: 5,
	ProPawn: 1, ProLance: 1, ProKnight: 1, ProSilver: 1, Horse: 5, Dragon: 5,
}
