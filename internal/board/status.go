package board

// Repetition classifies a fourfold repetition (sennichite) from the point
// of view of the side to move.
type Repetition uint8

const (
	RepetitionNone Repetition = iota
	RepetitionDraw
	RepetitionWin  // the opponent checked on every move of the cycle
	RepetitionLoss // the side to move checked on every move of the cycle
)

// String returns the repetition name.
func (r Repetition) String() string {
	switch r {
	case RepetitionDraw:
		return "draw"
	case RepetitionWin:
		return "win"
	case RepetitionLoss:
		return "loss"
	default:
		return "none"
	}
}

// inCheckAt reports whether the side to move was in check at history index i;
// i == len(history) is the current position.
func (p *Position) inCheckAt(i int) bool {
	if i == len(p.history) {
		return p.InCheck()
	}
	return p.history[i].checkers.Any()
}

// CheckRepetition reports whether the current position has now occurred
// four times with the same side to move, and how the repetition is scored.
func (p *Position) CheckRepetition() Repetition {
	n := len(p.history)
	first := -1
	seen := 0
	for i := n - 2; i >= 0; i -= 2 {
		if p.history[i].hash == p.hash {
			seen++
			if seen == 3 {
				first = i
				break
			}
		}
	}
	if first < 0 {
		return RepetitionNone
	}

	// Positions first, first+2, ..., n have the current side to move; the
	// others were reached by its own moves.
	checkedUs, checkedThem := true, true
	for i := first; i <= n; i++ {
		inCheck := p.inCheckAt(i)
		if (n-i)%2 == 0 {
			checkedUs = checkedUs && inCheck
		} else {
			checkedThem = checkedThem && inCheck
		}
	}
	switch {
	case checkedUs:
		return RepetitionWin
	case checkedThem:
		return RepetitionLoss
	}
	return RepetitionDraw
}

// Declaration thresholds of the 27-point rule.
const (
	declareMinPieces   = 10
	declarePointsBlack = 28
	declarePointsWhite = 27
)

// CanDeclareWin returns true if the side to move may claim a win by
// declaration (nyugyoku, 27-point rule): not in check, king in the enemy
// camp, at least ten other own pieces in the enemy camp, and enough points
// counting those pieces and the hand (rook and bishop 5, others 1).
func (p *Position) CanDeclareWin() bool {
	us := p.SideToMove
	ksq := p.kingSquare[us]
	if ksq == NoSquare || p.InCheck() || !ksq.InPromotionZone(us) {
		return false
	}

	inCamp := p.byColor[us].And(promotionZone[us]).Clear(ksq)
	if inCamp.PopCount() < declareMinPieces {
		return false
	}

	points := 0
	for inCamp.Any() {
		points += PieceValue[p.board[inCamp.PopLSB()].Type()]
	}
	hand := &p.hands[us]
	points += hand.Total() + 4*(hand.Count(Bishop)+hand.Count(Rook))

	if us == Black {
		return points >= declarePointsBlack
	}
	return points >= declarePointsWhite
}
