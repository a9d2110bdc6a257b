package board

import "math/bits"

// Pre-computed tables, built once in init and read-only afterwards.
var (
	squareBB [SquareNB]Bitboard
	fileBB   [FileNB]Bitboard
	rankBB   [RankNB]Bitboard

	rays [SquareNB][8]Bitboard // squares strictly beyond sq in each direction

	pawnAttacks   [2][SquareNB]Bitboard
	knightAttacks [2][SquareNB]Bitboard
	silverAttacks [2][SquareNB]Bitboard
	goldAttacks   [2][SquareNB]Bitboard
	kingAttacks   [SquareNB]Bitboard

	bishopPseudo [SquareNB]Bitboard
	rookPseudo   [SquareNB]Bitboard

	// Between and Line bitboards for pins and interpositions
	betweenBB [SquareNB][SquareNB]Bitboard
	lineBB    [SquareNB][SquareNB]Bitboard

	promotionZone [2]Bitboard
	reachable     [2][Rook + 1]Bitboard
)

// Step patterns from Black's point of view; White uses the reversed directions.
var (
	silverSteps = []Direction{North, NorthEast, NorthWest, SouthEast, SouthWest}
	goldSteps   = []Direction{North, NorthEast, NorthWest, East, West, South}
)

func init() {
	initSquares()
	initRays()
	initStepAttacks()
	initBetweenLine()
	initRankMasks()
}

func initSquares() {
	for sq := Square(0); sq < NoSquare; sq++ {
		if sq < hiOffset {
			squareBB[sq] = Bitboard{lo: 1 << sq}
		} else {
			squareBB[sq] = Bitboard{hi: 1 << (sq - hiOffset)}
		}
		fileBB[sq.File()] = fileBB[sq.File()].Or(squareBB[sq])
		rankBB[sq.Rank()] = rankBB[sq.Rank()].Or(squareBB[sq])
	}
}

func initRays() {
	for sq := Square(0); sq < NoSquare; sq++ {
		for d := South; d <= SouthEast; d++ {
			var ray Bitboard
			for s := sq.Step(d); s != NoSquare; s = s.Step(d) {
				ray = ray.Or(squareBB[s])
			}
			rays[sq][d] = ray
		}
		r := rays[sq]
		bishopPseudo[sq] = r[NorthWest].Or(r[NorthEast]).Or(r[SouthWest]).Or(r[SouthEast])
		rookPseudo[sq] = r[North].Or(r[South]).Or(r[East]).Or(r[West])
	}
}

// stepAttacks collects the squares one step away in each direction,
// mirrored for White.
func stepAttacks(c Color, sq Square, dirs []Direction) Bitboard {
	var bb Bitboard
	for _, d := range dirs {
		if c == White {
			d = d.Reverse()
		}
		if s := sq.Step(d); s != NoSquare {
			bb = bb.Or(squareBB[s])
		}
	}
	return bb
}

func initStepAttacks() {
	for sq := Square(0); sq < NoSquare; sq++ {
		for c := Black; c <= White; c++ {
			pawnAttacks[c][sq] = stepAttacks(c, sq, []Direction{North})
			silverAttacks[c][sq] = stepAttacks(c, sq, silverSteps)
			goldAttacks[c][sq] = stepAttacks(c, sq, goldSteps)

			dr := -2
			if c == White {
				dr = 2
			}
			for _, df := range []int{-1, 1} {
				f, r := sq.File()+df, sq.Rank()+dr
				if f >= 0 && f < FileNB && r >= 0 && r < RankNB {
					knightAttacks[c][sq] = knightAttacks[c][sq].Or(squareBB[NewSquare(f, r)])
				}
			}
		}
		kingAttacks[sq] = silverAttacks[Black][sq].Or(goldAttacks[Black][sq])
	}
}

func initBetweenLine() {
	for a := Square(0); a < NoSquare; a++ {
		for b := Square(0); b < NoSquare; b++ {
			d := DirectionOf(a, b)
			if d == NoDirection {
				continue
			}
			betweenBB[a][b] = rays[a][d].And(rays[b][d.Reverse()])
			lineBB[a][b] = rays[a][d].Or(rays[b][d.Reverse()])
		}
	}
}

func initRankMasks() {
	for c := Black; c <= White; c++ {
		promotionZone[c] = RelativeRanks(c, 0, 2)
		for pt := Pawn; pt <= Rook; pt++ {
			switch pt {
			case Pawn, Lance:
				reachable[c][pt] = RelativeRanks(c, 1, 8)
			case Knight:
				reachable[c][pt] = RelativeRanks(c, 2, 8)
			default:
				reachable[c][pt] = Universe
			}
		}
	}
}

// RelativeRanks returns every square whose rank, seen from c, lies in [from, to].
func RelativeRanks(c Color, from, to int) Bitboard {
	if c == White {
		from, to = 8-to, 8-from
	}
	// One bit per file at rank 0, multiplied out to the rank span.
	const fileHeadsLo uint64 = 0x0040201008040201
	const fileHeadsHi uint64 = 0x201
	span := uint64(1)<<(to-from+1) - 1
	return Bitboard{(fileHeadsLo * span) << from, (fileHeadsHi * span) << from}
}

// ReachableMask returns the squares where a piece of pt dropped by c still has a move.
func ReachableMask(c Color, pt PieceType) Bitboard {
	return reachable[c][pt]
}

// PromotionZone returns the enemy camp of c.
func PromotionZone(c Color) Bitboard {
	return promotionZone[c]
}

// FileBB returns the mask of a file (0-8).
func FileBB(file int) Bitboard {
	return fileBB[file]
}

// RankBB returns the mask of a rank (0-8).
func RankBB(rank int) Bitboard {
	return rankBB[rank]
}

// Ray returns the squares strictly beyond sq in direction d, to the edge.
func Ray(sq Square, d Direction) Bitboard {
	return rays[sq][d]
}

// Between returns the squares strictly between a and b, or Empty if not aligned.
func Between(a, b Square) Bitboard {
	return betweenBB[a][b]
}

// Line returns the union of the two opposing rays through a and b,
// or Empty if not aligned.
func Line(a, b Square) Bitboard {
	return lineBB[a][b]
}

// Aligned returns true if the three squares share a file, rank or diagonal.
func Aligned(a, b, c Square) bool {
	return lineBB[a][b].IsSet(c)
}

// PawnAttacks returns the square attacked by a pawn of color c on sq.
func PawnAttacks(c Color, sq Square) Bitboard {
	return pawnAttacks[c][sq]
}

// KnightAttacks returns squares attacked by a knight of color c.
func KnightAttacks(c Color, sq Square) Bitboard {
	return knightAttacks[c][sq]
}

// SilverAttacks returns squares attacked by a silver of color c.
func SilverAttacks(c Color, sq Square) Bitboard {
	return silverAttacks[c][sq]
}

// GoldAttacks returns squares attacked by a gold (or gold-moving piece) of color c.
func GoldAttacks(c Color, sq Square) Bitboard {
	return goldAttacks[c][sq]
}

// KingAttacks returns squares attacked by a king.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// LancePseudoAttacks returns lance attacks on an empty board.
func LancePseudoAttacks(c Color, sq Square) Bitboard {
	if c == Black {
		return rays[sq][North]
	}
	return rays[sq][South]
}

// BishopPseudoAttacks returns bishop attacks on an empty board.
func BishopPseudoAttacks(sq Square) Bitboard {
	return bishopPseudo[sq]
}

// RookPseudoAttacks returns rook attacks on an empty board.
func RookPseudoAttacks(sq Square) Bitboard {
	return rookPseudo[sq]
}

// slideUp returns the attacks along an increasing-index ray: the ray up to
// and including the first occupied square. The borrow of the low word
// propagates into the high word.
func slideUp(occ, mask Bitboard) Bitboard {
	m0 := occ.lo & mask.lo
	m1 := occ.hi & mask.hi
	var borrow uint64
	if m0 == 0 {
		borrow = 1
	}
	t0 := (m0 - 1) ^ m0
	t1 := (m1 - borrow) ^ m1
	return Bitboard{t0 & mask.lo, t1 & mask.hi}
}

// slideDown handles decreasing-index rays by byte-reversing both words.
// Consecutive ray squares are 8, 9 or 10 bits apart, so each byte holds at
// most one of them and byte order is enough to reverse the ray.
func slideDown(occ, mask Bitboard) Bitboard {
	m0 := bits.ReverseBytes64(occ.hi & mask.hi)
	m1 := bits.ReverseBytes64(occ.lo & mask.lo)
	var borrow uint64
	if m0 == 0 {
		borrow = 1
	}
	t0 := (m0 - 1) ^ m0
	t1 := (m1 - borrow) ^ m1
	return Bitboard{bits.ReverseBytes64(t1) & mask.lo, bits.ReverseBytes64(t0) & mask.hi}
}

// lanceNorth fills toward rank a (decreasing bits) within one word.
func lanceNorth(occ, mask uint64) uint64 {
	m := occ & mask
	m |= m >> 1
	m |= m >> 2
	m |= m >> 4
	m >>= 1
	return ^m & mask
}

// lanceSouth fills toward rank i (increasing bits) within one word.
func lanceSouth(occ, mask uint64) uint64 {
	m := occ & mask
	return (m ^ (m - 1)) & mask
}

// LanceAttacks returns the squares a lance of color c on sq attacks given occupancy.
func LanceAttacks(c Color, sq Square, occ Bitboard) Bitboard {
	if c == Black {
		mask := rays[sq][North]
		if sq < hiOffset {
			return Bitboard{lo: lanceNorth(occ.lo, mask.lo)}
		}
		return Bitboard{hi: lanceNorth(occ.hi, mask.hi)}
	}
	mask := rays[sq][South]
	if sq < hiOffset {
		return Bitboard{lo: lanceSouth(occ.lo, mask.lo)}
	}
	return Bitboard{hi: lanceSouth(occ.hi, mask.hi)}
}

// BishopAttacks returns the squares a bishop on sq attacks given occupancy.
func BishopAttacks(sq Square, occ Bitboard) Bitboard {
	r := &rays[sq]
	return slideUp(occ, r[NorthWest]).
		Or(slideUp(occ, r[SouthWest])).
		Or(slideDown(occ, r[NorthEast])).
		Or(slideDown(occ, r[SouthEast]))
}

// RookAttacks returns the squares a rook on sq attacks given occupancy.
func RookAttacks(sq Square, occ Bitboard) Bitboard {
	r := &rays[sq]
	return slideUp(occ, r[West]).
		Or(slideDown(occ, r[East])).
		Or(LanceAttacks(Black, sq, occ)).
		Or(LanceAttacks(White, sq, occ))
}

// HorseAttacks returns the squares a promoted bishop attacks.
func HorseAttacks(sq Square, occ Bitboard) Bitboard {
	return BishopAttacks(sq, occ).Or(kingAttacks[sq])
}

// DragonAttacks returns the squares a promoted rook attacks.
func DragonAttacks(sq Square, occ Bitboard) Bitboard {
	return RookAttacks(sq, occ).Or(kingAttacks[sq])
}

// PieceAttacks returns the squares attacked by piece p standing on sq.
func PieceAttacks(p Piece, sq Square, occ Bitboard) Bitboard {
	c := p.Color()
	switch p.Type() {
	case Pawn:
		return pawnAttacks[c][sq]
	case Lance:
		return LanceAttacks(c, sq, occ)
	case Knight:
		return knightAttacks[c][sq]
	case Silver:
		return silverAttacks[c][sq]
	case Gold, ProPawn, ProLance, ProKnight, ProSilver:
		return goldAttacks[c][sq]
	case Bishop:
		return BishopAttacks(sq, occ)
	case Rook:
		return RookAttacks(sq, occ)
	case King:
		return kingAttacks[sq]
	case Horse:
		return HorseAttacks(sq, occ)
	case Dragon:
		return DragonAttacks(sq, occ)
	}
	return Empty
}

// PawnDropMask returns the files that hold no pawn in pawns, as full files.
// Each file is 9 bits with its rank-i bit acting as a sentinel; subtracting
// the pawns clears the sentinel of every file that has one.
func PawnDropMask(pawns Bitboard) Bitboard {
	const left0 uint64 = 0x4020100804020100
	const left1 uint64 = 0x0000000000020100
	t0 := left0 - pawns.lo
	t1 := left1 - pawns.hi
	t0 = left0 - ((t0 & left0) >> 8)
	t1 = left1 - ((t1 & left1) >> 8)
	return Bitboard{left0 ^ t0, left1 ^ t1}
}
