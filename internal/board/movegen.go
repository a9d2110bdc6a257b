package board

// GenerateLegalMoves generates all legal moves for the position.
func (p *Position) GenerateLegalMoves() *MoveList {
	ml := NewMoveList()
	p.GenerateMovesInto(ml)
	return ml
}

// GenerateMovesInto clears ml and fills it with every legal move.
// The position is not modified.
func (p *Position) GenerateMovesInto(ml *MoveList) {
	ml.Clear()
	if p.InCheck() {
		p.generateEvasions(ml)
	} else {
		p.generateNonEvasions(ml)
	}
}

// HasLegalMoves returns true if the side to move has any legal move.
func (p *Position) HasLegalMoves() bool {
	var ml MoveList
	p.GenerateMovesInto(&ml)
	return ml.Len() > 0
}

// IsMated returns true if the side to move is in check with no legal move.
func (p *Position) IsMated() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// generateNonEvasions generates moves when the side to move is not in check.
// Pinned pieces keep to the line through their king.
func (p *Position) generateNonEvasions(ml *MoveList) {
	us := p.SideToMove
	them := us.Other()
	ksq := p.kingSquare[us]
	target := p.byColor[us].Not()
	pinned := p.PinnedBy(them)

	// Pawns step one rank forward, which is a one-bit shift within the file.
	pawns := p.byType[us][Pawn]
	var pawnTo Bitboard
	delta := 1
	if us == Black {
		pawnTo = pawns.Shr(1).And(target)
	} else {
		pawnTo = pawns.Shl(1).And(target)
		delta = -1
	}
	for pawnTo.Any() {
		to := pawnTo.PopLSB()
		from := Square(int(to) + delta)
		if pinned.IsSet(from) && !lineBB[ksq][from].IsSet(to) {
			continue
		}
		addPieceMoves(ml, us, Pawn, from, to)
	}

	pieces := p.byColor[us].AndNot(pawns).AndNot(p.byType[us][King])
	for pieces.Any() {
		from := pieces.PopLSB()
		piece := p.board[from]
		att := PieceAttacks(piece, from, p.occ).And(target)
		if pinned.IsSet(from) {
			att = att.And(lineBB[ksq][from])
		}
		for att.Any() {
			addPieceMoves(ml, us, piece.Type(), from, att.PopLSB())
		}
	}

	if ksq != NoSquare {
		kingTo := kingAttacks[ksq].And(target)
		for kingTo.Any() {
			to := kingTo.PopLSB()
			if !p.AttackersTo(them, to).Any() {
				ml.Add(NewMove(ksq, to, false))
			}
		}
	}

	p.generateDrops(ml, p.occ.Not())
}

// generateEvasions generates moves when the side to move is in check.
func (p *Position) generateEvasions(ml *MoveList) {
	us := p.SideToMove
	them := us.Other()
	ksq := p.kingSquare[us]

	// The king must not shield squares behind it from the checking slider.
	occ := p.occ.Clear(ksq)
	kingTo := kingAttacks[ksq].AndNot(p.byColor[us])
	for kingTo.Any() {
		to := kingTo.PopLSB()
		if !p.AttackersToOcc(them, to, occ).Any() {
			ml.Add(NewMove(ksq, to, false))
		}
	}

	// Double check: only the king can move.
	if p.checkers.More() {
		return
	}

	checkSq := p.checkers.LSB()
	between := betweenBB[ksq][checkSq]
	p.generateDrops(ml, between)

	pinned := p.PinnedBy(them)
	excluded := pinned.Or(p.byType[us][King])
	targets := between.Set(checkSq)
	for targets.Any() {
		to := targets.PopLSB()
		movers := p.AttackersTo(us, to).AndNot(excluded)
		for movers.Any() {
			from := movers.PopLSB()
			addPieceMoves(ml, us, p.board[from].Type(), from, to)
		}
	}
}

// generateDrops adds every legal drop onto the empty squares of target.
func (p *Position) generateDrops(ml *MoveList, target Bitboard) {
	us := p.SideToMove
	hand := &p.hands[us]
	if hand.IsEmpty() || target.IsEmpty() {
		return
	}
	them := us.Other()

	// Pawns only: skip the other piece types.
	last := Rook
	if !hand.HasExceptPawn() {
		last = Pawn
	}
	for pt := Pawn; pt <= last; pt++ {
		if hand.Count(pt) == 0 {
			continue
		}
		to := target.And(reachable[us][pt])
		if pt == Pawn {
			to = to.And(PawnDropMask(p.byType[us][Pawn]))
			// Only a drop right in front of the enemy king can be a pawn-drop mate.
			if tksq := p.kingSquare[them]; tksq != NoSquare {
				if front := pawnAttacks[them][tksq].And(to); front.Any() {
					if sq := front.LSB(); p.isPawnDropMate(sq) {
						to = to.Clear(sq)
					}
				}
			}
		}
		for to.Any() {
			ml.Add(NewDrop(pt, to.PopLSB()))
		}
	}
}

// isPawnDropMate reports whether a pawn dropped on to by the side to move
// would checkmate the opponent (uchifuzume), which is illegal.
func (p *Position) isPawnDropMate(to Square) bool {
	us := p.SideToMove
	them := us.Other()
	tksq := p.kingSquare[them]

	// Can the pawn be captured by something other than the king?
	defenders := p.AttackersTo(them, to).AndNot(p.byType[them][King])
	if defenders.Any() {
		pinned := p.PinnedBy(us)
		if defenders.AndNot(pinned).Any() {
			return false
		}
		// A pinned defender may still capture along its own pin line.
		if defenders.Intersects(lineBB[tksq][to]) {
			return false
		}
	}

	// Can the king step out, including capturing the pawn?
	occ := p.occ.Set(to).Clear(tksq)
	escapes := kingAttacks[tksq].AndNot(p.byColor[them])
	for escapes.Any() {
		if !p.AttackersToOcc(us, escapes.PopLSB(), occ).Any() {
			return false
		}
	}
	return true
}

// mustPromote returns true if a piece of pt arriving on to would have no
// further move unless promoted.
func mustPromote(c Color, pt PieceType, to Square) bool {
	switch pt {
	case Pawn, Lance:
		return to.RelativeRank(c) == 0
	case Knight:
		return to.RelativeRank(c) <= 1
	}
	return false
}

// canPromote returns true if a piece of pt moving from -> to may promote.
func canPromote(c Color, pt PieceType, from, to Square) bool {
	return pt.CanPromote() && (from.InPromotionZone(c) || to.InPromotionZone(c))
}

// addPieceMoves adds from -> to with the promotion variants the rules allow.
func addPieceMoves(ml *MoveList, c Color, pt PieceType, from, to Square) {
	if canPromote(c, pt, from, to) {
		ml.Add(NewMove(from, to, true))
	}
	if !mustPromote(c, pt, to) {
		ml.Add(NewMove(from, to, false))
	}
}

// IsLegalMove returns true if m can be played in this position. It checks
// the move against the rules independently of the generator, so it accepts
// moves coming from notation.
func (p *Position) IsLegalMove(m Move) bool {
	if m.IsSpecial() {
		return false
	}
	us := p.SideToMove
	to := m.To()
	if !to.IsValid() {
		return false
	}

	if m.IsDrop() {
		pt := m.Dropped()
		if pt < Pawn || pt > Rook || m.IsPromotion() || p.hands[us].Count(pt) == 0 {
			return false
		}
		if !p.IsEmpty(to) || !reachable[us][pt].IsSet(to) {
			return false
		}
		if pt == Pawn && p.byType[us][Pawn].Intersects(fileBB[to.File()]) {
			return false
		}
	} else {
		from := m.From()
		if !from.IsValid() || from == to {
			return false
		}
		piece := p.board[from]
		if piece == NoPiece || piece.Color() != us {
			return false
		}
		if dst := p.board[to]; dst != NoPiece && (dst.Color() == us || dst.Type() == King) {
			return false
		}
		if !PieceAttacks(piece, from, p.occ).IsSet(to) {
			return false
		}
		pt := piece.Type()
		if m.IsPromotion() && !canPromote(us, pt, from, to) {
			return false
		}
		if !m.IsPromotion() && mustPromote(us, pt, to) {
			return false
		}
	}

	p.MakeMove(m)
	defer p.UnmakeMove()
	if ksq := p.kingSquare[us]; ksq != NoSquare && p.IsAttacked(p.SideToMove, ksq) {
		return false
	}
	if m.IsDrop() && m.Dropped() == Pawn && p.IsMated() {
		return false
	}
	return true
}
