package board

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(p *Position, depth int) int64 {
	if depth <= 0 {
		return 1
	}

	var ml MoveList
	p.GenerateMovesInto(&ml)
	if depth == 1 {
		return int64(ml.Len())
	}

	var nodes int64
	for _, m := range ml.Slice() {
		p.MakeMove(m)
		nodes += Perft(p, depth-1)
		p.UnmakeMove()
	}
	return nodes
}

// PerftDivide returns the perft count below each root move.
func PerftDivide(p *Position, depth int) map[Move]int64 {
	result := make(map[Move]int64)
	if depth <= 0 {
		return result
	}
	for _, m := range p.GenerateLegalMoves().Slice() {
		p.MakeMove(m)
		result[m] = Perft(p, depth-1)
		p.UnmakeMove()
	}
	return result
}
