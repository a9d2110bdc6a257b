package board

// Zobrist hash keys for repetition detection.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristPiece [PieceNB][SquareNB]uint64
	zobristHand  [2][Rook + 1][maxHandCount + 1]uint64 // [Color][PieceType][count]
	zobristSide  uint64                                // XOR when White to move
)

// maxHandCount is the largest number of one piece type a hand can hold (pawns).
const maxHandCount = 18

// handLimit is the number of pieces of each type in a full set.
var handLimit = [Rook + 1]int{Pawn: 18, Lance: 4, Knight: 4, Silver: 4, Gold: 4, Bishop: 2, Rook: 2}

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x5A0C1B0A2D6E1F37)

	for c := Black; c <= White; c++ {
		for pt := Pawn; pt < PieceTypeNB; pt++ {
			piece := NewPiece(pt, c)
			for sq := Square(0); sq < NoSquare; sq++ {
				zobristPiece[piece][sq] = rng.next()
			}
		}
	}

	// Count 0 keeps key 0 so an empty hand does not perturb the hash.
	for c := Black; c <= White; c++ {
		for pt := Pawn; pt <= Rook; pt++ {
			for n := 1; n <= maxHandCount; n++ {
				zobristHand[c][pt][n] = rng.next()
			}
		}
	}

	zobristSide = rng.next()
}

// ComputeHash computes the Zobrist key from scratch.
func (p *Position) ComputeHash() uint64 {
	var h uint64
	for sq := Square(0); sq < NoSquare; sq++ {
		if piece := p.board[sq]; piece != NoPiece {
			h ^= zobristPiece[piece][sq]
		}
	}
	for c := Black; c <= White; c++ {
		for pt := Pawn; pt <= Rook; pt++ {
			h ^= zobristHand[c][pt][p.hands[c][pt]]
		}
	}
	if p.SideToMove == White {
		h ^= zobristSide
	}
	return h
}
