package board

// MakeMove applies a legal move and pushes an undo record.
// The move must come from GenerateLegalMoves or pass IsLegalMove.
func (p *Position) MakeMove(m Move) {
	us := p.SideToMove
	st := undoState{
		move:     m,
		captured: NoPiece,
		hands:    p.hands,
		hash:     p.hash,
		checkers: p.checkers,
	}

	to := m.To()
	if m.IsDrop() {
		pt := m.Dropped()
		p.removeHand(us, pt)
		p.setPiece(NewPiece(pt, us), to)
	} else {
		from := m.From()
		piece := p.removePiece(from)
		if captured := p.removePiece(to); captured != NoPiece {
			st.captured = captured
			p.addHand(us, captured.Kind())
		}
		if m.IsPromotion() {
			piece = piece.Promoted()
		}
		p.setPiece(piece, to)
	}

	p.history = append(p.history, st)
	p.SideToMove = us.Other()
	p.hash ^= zobristSide
	p.Ply++
	p.updateCheckers()
}

// UnmakeMove undoes the most recent move. Panics when there is none.
func (p *Position) UnmakeMove() {
	n := len(p.history)
	if n == 0 {
		panic("board: UnmakeMove with empty history")
	}
	st := p.history[n-1]
	p.history = p.history[:n-1]

	us := p.SideToMove.Other()
	m := st.move
	to := m.To()

	piece := p.removePiece(to)
	if !m.IsDrop() {
		if m.IsPromotion() {
			piece = piece.Demoted()
		}
		p.setPiece(piece, m.From())
		if st.captured != NoPiece {
			p.setPiece(st.captured, to)
		}
	}

	p.hands = st.hands
	p.hash = st.hash
	p.checkers = st.checkers
	p.SideToMove = us
	p.Ply--
}
