package board

import "testing"

func TestSquareBBWordBoundary(t *testing.T) {
	tests := []struct {
		sq     Square
		lo, hi uint64
	}{
		{0, 1, 0},
		{62, 1 << 62, 0},
		{63, 0, 1},
		{64, 0, 2},
		{80, 0, 1 << 17},
	}

	for _, tc := range tests {
		lo, hi := SquareBB(tc.sq).Words()
		if lo != tc.lo || hi != tc.hi {
			t.Errorf("SquareBB(%d) = (%#x, %#x), want (%#x, %#x)", tc.sq, lo, hi, tc.lo, tc.hi)
		}
		if !SquareBB(tc.sq).IsSet(tc.sq) {
			t.Errorf("SquareBB(%d).IsSet(%d) = false", tc.sq, tc.sq)
		}
	}
}

func TestBitboardBasics(t *testing.T) {
	if got := Universe.PopCount(); got != 81 {
		t.Errorf("Universe.PopCount() = %d, want 81", got)
	}
	if Empty.Not() != Universe {
		t.Error("Empty.Not() != Universe")
	}
	if Universe.Not() != Empty {
		t.Error("Universe.Not() != Empty")
	}

	bb := Empty.Set(80).Set(0).Set(63).Set(62)
	want := []Square{0, 62, 63, 80}
	got := bb.Squares()
	if len(got) != len(want) {
		t.Fatalf("Squares() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Squares()[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	if !bb.More() || SquareBB(63).More() || Empty.More() {
		t.Error("More() mismatch")
	}
	if bb.Clear(62).Clear(0).LSB() != 63 {
		t.Errorf("LSB across words = %d, want 63", bb.Clear(62).Clear(0).LSB())
	}
	if Empty.LSB() != NoSquare {
		t.Error("Empty.LSB() should be NoSquare")
	}

	n := 0
	bb.ForEach(func(Square) { n++ })
	if n != 4 {
		t.Errorf("ForEach visited %d squares, want 4", n)
	}

	if bb.Toggle(63) != bb.Clear(63) || bb.Toggle(64) != bb.Set(64) {
		t.Error("Toggle should flip one bit")
	}
	if bb.Toggle(5).Toggle(5) != bb {
		t.Error("Toggle twice should restore the board")
	}
}

func TestFileRankMasks(t *testing.T) {
	for i := 0; i < 9; i++ {
		if got := FileBB(i).PopCount(); got != 9 {
			t.Errorf("FileBB(%d).PopCount() = %d, want 9", i, got)
		}
		if got := RankBB(i).PopCount(); got != 9 {
			t.Errorf("RankBB(%d).PopCount() = %d, want 9", i, got)
		}
	}

	if RelativeRanks(Black, 0, 2) != RankBB(0).Or(RankBB(1)).Or(RankBB(2)) {
		t.Error("RelativeRanks(Black, 0, 2) is not ranks a-c")
	}
	if RelativeRanks(White, 0, 2) != RankBB(6).Or(RankBB(7)).Or(RankBB(8)) {
		t.Error("RelativeRanks(White, 0, 2) is not ranks g-i")
	}
	if RelativeRanks(Black, 0, 8) != Universe {
		t.Error("RelativeRanks(Black, 0, 8) is not the whole board")
	}
	if ReachableMask(Black, Knight) != RelativeRanks(Black, 2, 8) {
		t.Error("Black knight reachable mask wrong")
	}
	if ReachableMask(White, Pawn).Intersects(RankBB(8)) {
		t.Error("White pawn reachable mask includes rank i")
	}
}

// slowSlide walks a ray one square at a time, stopping on the first blocker.
func slowSlide(sq Square, d Direction, occ Bitboard) Bitboard {
	var bb Bitboard
	for s := sq.Step(d); s != NoSquare; s = s.Step(d) {
		bb = bb.Set(s)
		if occ.IsSet(s) {
			break
		}
	}
	return bb
}

func randomOccupancy(rng *prng) Bitboard {
	// Sparse enough that long rays are exercised too.
	return NewBitboard(rng.next()&rng.next(), rng.next()&rng.next())
}

func TestSliderAttacks(t *testing.T) {
	rng := newPRNG(0xC0FFEE)

	for i := 0; i < 200; i++ {
		occ := randomOccupancy(rng)
		for sq := Square(0); sq < NoSquare; sq++ {
			bishop := slowSlide(sq, NorthWest, occ).Or(slowSlide(sq, NorthEast, occ)).
				Or(slowSlide(sq, SouthWest, occ)).Or(slowSlide(sq, SouthEast, occ))
			rook := slowSlide(sq, North, occ).Or(slowSlide(sq, South, occ)).
				Or(slowSlide(sq, East, occ)).Or(slowSlide(sq, West, occ))

			if got := BishopAttacks(sq, occ); got != bishop {
				t.Fatalf("BishopAttacks(%s) mismatch\nocc:\n%s\ngot:\n%s\nwant:\n%s", sq, occ, got, bishop)
			}
			if got := RookAttacks(sq, occ); got != rook {
				t.Fatalf("RookAttacks(%s) mismatch\nocc:\n%s\ngot:\n%s\nwant:\n%s", sq, occ, got, rook)
			}
			if got := LanceAttacks(Black, sq, occ); got != slowSlide(sq, North, occ) {
				t.Fatalf("LanceAttacks(Black, %s) mismatch\nocc:\n%s\ngot:\n%s", sq, occ, got)
			}
			if got := LanceAttacks(White, sq, occ); got != slowSlide(sq, South, occ) {
				t.Fatalf("LanceAttacks(White, %s) mismatch\nocc:\n%s\ngot:\n%s", sq, occ, got)
			}
		}
	}
}

func TestSliderAttacksEmptyBoard(t *testing.T) {
	for sq := Square(0); sq < NoSquare; sq++ {
		if BishopAttacks(sq, Empty) != BishopPseudoAttacks(sq) {
			t.Errorf("BishopAttacks(%s, Empty) != pseudo attacks", sq)
		}
		if RookAttacks(sq, Empty) != RookPseudoAttacks(sq) {
			t.Errorf("RookAttacks(%s, Empty) != pseudo attacks", sq)
		}
		if got := RookAttacks(sq, Empty).PopCount(); got != 16 {
			t.Errorf("RookAttacks(%s, Empty).PopCount() = %d, want 16", sq, got)
		}
	}
}

func TestStepAttacks(t *testing.T) {
	sq55 := NewSquare(4, 4)
	tests := []struct {
		name string
		got  Bitboard
		want []string
	}{
		{"black pawn", PawnAttacks(Black, sq55), []string{"5d"}},
		{"white pawn", PawnAttacks(White, sq55), []string{"5f"}},
		{"black knight", KnightAttacks(Black, sq55), []string{"4c", "6c"}},
		{"white knight", KnightAttacks(White, sq55), []string{"4g", "6g"}},
		{"black silver", SilverAttacks(Black, sq55), []string{"4d", "5d", "6d", "4f", "6f"}},
		{"black gold", GoldAttacks(Black, sq55), []string{"4d", "5d", "6d", "4e", "6e", "5f"}},
		{"white gold", GoldAttacks(White, sq55), []string{"4f", "5f", "6f", "4e", "6e", "5d"}},
		{"king", KingAttacks(sq55), []string{"4d", "5d", "6d", "4e", "6e", "4f", "5f", "6f"}},
		{"black knight edge", KnightAttacks(Black, NewSquare(0, 1)), nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var want Bitboard
			for _, s := range tc.want {
				sq, err := ParseSquare(s)
				if err != nil {
					t.Fatal(err)
				}
				want = want.Set(sq)
			}
			if tc.got != want {
				t.Errorf("got\n%s\nwant\n%s", tc.got, want)
			}
		})
	}
}

func TestPawnDropMask(t *testing.T) {
	tests := []struct {
		name  string
		pawns []Square
	}{
		{"none", nil},
		{"low word", []Square{NewSquare(0, 6), NewSquare(4, 3)}},
		{"high word", []Square{NewSquare(7, 1), NewSquare(8, 8)}},
		{"every file", []Square{
			NewSquare(0, 1), NewSquare(1, 2), NewSquare(2, 3), NewSquare(3, 4), NewSquare(4, 5),
			NewSquare(5, 6), NewSquare(6, 7), NewSquare(7, 8), NewSquare(8, 0),
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var pawns Bitboard
			for _, sq := range tc.pawns {
				pawns = pawns.Set(sq)
			}
			var want Bitboard
			for f := 0; f < FileNB; f++ {
				if !pawns.Intersects(FileBB(f)) {
					want = want.Or(FileBB(f))
				}
			}
			if got := PawnDropMask(pawns); got != want {
				t.Errorf("PawnDropMask got\n%s\nwant\n%s", got, want)
			}
		})
	}
}

func TestBetweenLine(t *testing.T) {
	a, b := NewSquare(0, 0), NewSquare(0, 8)
	if got := Between(a, b).PopCount(); got != 7 {
		t.Errorf("Between(1a, 1i).PopCount() = %d, want 7", got)
	}
	if Between(a, b) != Between(b, a) {
		t.Error("Between is not symmetric")
	}
	if line := Line(a, b); line != FileBB(0) {
		t.Errorf("Line(1a, 1i) = \n%s\nwant file 1", line)
	}

	diagA, diagB := NewSquare(1, 1), NewSquare(7, 7) // 2b, 8h
	if got := Between(diagA, diagB).PopCount(); got != 5 {
		t.Errorf("Between(2b, 8h).PopCount() = %d, want 5", got)
	}
	if !Line(diagA, diagB).IsSet(NewSquare(0, 0)) || !Line(diagA, diagB).IsSet(NewSquare(8, 8)) {
		t.Error("Line(2b, 8h) should extend to 1a and 9i")
	}
	if !Aligned(diagA, diagB, NewSquare(4, 4)) {
		t.Error("2b, 8h, 5e should be aligned")
	}

	knightHop := NewSquare(1, 2)
	if Between(a, knightHop).Any() || Line(a, knightHop).Any() {
		t.Error("unaligned squares should have empty Between and Line")
	}
	if Between(a, NewSquare(0, 1)).Any() {
		t.Error("adjacent squares should have empty Between")
	}
}

func TestSquareNotation(t *testing.T) {
	tests := []struct {
		s          string
		file, rank int
	}{
		{"1a", 0, 0},
		{"7g", 6, 6},
		{"9i", 8, 8},
		{"5e", 4, 4},
	}
	for _, tc := range tests {
		sq, err := ParseSquare(tc.s)
		if err != nil {
			t.Fatalf("ParseSquare(%q): %v", tc.s, err)
		}
		if sq.File() != tc.file || sq.Rank() != tc.rank {
			t.Errorf("ParseSquare(%q) = file %d rank %d, want %d %d", tc.s, sq.File(), sq.Rank(), tc.file, tc.rank)
		}
		if sq.String() != tc.s {
			t.Errorf("String() = %q, want %q", sq.String(), tc.s)
		}
	}

	for _, bad := range []string{"", "0a", "1j", "a1", "10a"} {
		if _, err := ParseSquare(bad); err == nil {
			t.Errorf("ParseSquare(%q) should fail", bad)
		}
	}
}

func TestRays(t *testing.T) {
	center := NewSquare(4, 4) // 5e

	tests := []struct {
		name string
		sq   Square
		d    Direction
		want Bitboard
	}{
		{"5e north", center, North, Between(center, NewSquare(4, 0)).Set(NewSquare(4, 0))},
		{"5e west", center, West, Between(center, NewSquare(8, 4)).Set(NewSquare(8, 4))},
		{"5e south east", center, SouthEast, Between(center, NewSquare(0, 8)).Set(NewSquare(0, 8))},
		{"1a east", NewSquare(0, 0), East, Empty},
		{"1a north", NewSquare(0, 0), North, Empty},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Ray(tc.sq, tc.d); got != tc.want {
				t.Errorf("Ray = \n%s\nwant\n%s", got, tc.want)
			}
		})
	}

	if got := Ray(NewSquare(8, 8), NorthEast).PopCount(); got != 8 {
		t.Errorf("Ray(9i, NorthEast).PopCount() = %d, want 8", got)
	}
	for d := South; d <= SouthEast; d++ {
		if Ray(center, d).PopCount() != 4 {
			t.Errorf("Ray(5e, %d).PopCount() = %d, want 4", d, Ray(center, d).PopCount())
		}
	}
}

func TestPromotionZone(t *testing.T) {
	black := RankBB(0).Or(RankBB(1)).Or(RankBB(2))
	white := RankBB(6).Or(RankBB(7)).Or(RankBB(8))
	if PromotionZone(Black) != black {
		t.Errorf("PromotionZone(Black) = \n%s", PromotionZone(Black))
	}
	if PromotionZone(White) != white {
		t.Errorf("PromotionZone(White) = \n%s", PromotionZone(White))
	}

	for sq := Square(0); sq < NoSquare; sq++ {
		for c := Black; c <= White; c++ {
			if PromotionZone(c).IsSet(sq) != sq.InPromotionZone(c) {
				t.Errorf("%s %s: zone mask and InPromotionZone disagree", c, sq)
			}
		}
	}
}

func TestHandCounts(t *testing.T) {
	var h Hand
	if h.Total() != 0 || h.HasExceptPawn() || !h.IsEmpty() {
		t.Fatal("zero hand should be empty")
	}
	h.Add(Pawn)
	h.Add(Pawn)
	if h.Total() != 2 || h.HasExceptPawn() {
		t.Errorf("pawns only: Total=%d HasExceptPawn=%v", h.Total(), h.HasExceptPawn())
	}
	h.Add(Rook)
	if h.Total() != 3 || !h.HasExceptPawn() {
		t.Errorf("with rook: Total=%d HasExceptPawn=%v", h.Total(), h.HasExceptPawn())
	}
	h.Remove(Rook)
	if h.HasExceptPawn() {
		t.Error("HasExceptPawn after removing the rook")
	}
}
