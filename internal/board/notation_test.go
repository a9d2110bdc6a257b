package board

import "testing"

func TestWesternNotation(t *testing.T) {
	pos := NewPosition()
	moves := []string{"7g7f", "3c3d", "8h2b+", "3a2b", "B*4e"}
	want := []string{"P-7f", "P-3d", "Bx2b+", "Sx2b", "B*4e"}

	var played []Move
	for _, s := range moves {
		m, err := ParseMove(s)
		if err != nil {
			t.Fatal(err)
		}
		played = append(played, m)
	}

	got := MovesToWestern(pos, played)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("move %d: got %q, want %q", i, got[i], want[i])
		}
	}

	// Parsing replays the same moves.
	p := NewPosition()
	for i, s := range want {
		m, err := ParseWestern(s, p)
		if err != nil {
			t.Fatalf("ParseWestern(%q): %v", s, err)
		}
		if m != played[i] {
			t.Fatalf("ParseWestern(%q) = %s, want %s", s, m, played[i])
		}
		p.MakeMove(m)
	}
	if p.SFEN() == StartSFEN {
		t.Error("position did not advance")
	}
}

func TestWesternDisambiguation(t *testing.T) {
	pos := NewPosition()
	gold := NewMove(sq(t, "6i"), sq(t, "5h"), false)

	if got := gold.ToWestern(pos); got != "G6i-5h" {
		t.Errorf("ToWestern = %q, want G6i-5h", got)
	}
	if _, err := ParseWestern("G-5h", pos); err == nil {
		t.Error("G-5h should be ambiguous")
	}
	m, err := ParseWestern("G4i-5h", pos)
	if err != nil || m != NewMove(sq(t, "4i"), sq(t, "5h"), false) {
		t.Errorf("ParseWestern(G4i-5h) = %s, %v", m, err)
	}
}

func TestWesternDeclinedPromotion(t *testing.T) {
	pos := mustSFEN(t, "8k/9/9/4P4/9/9/9/9/4K4 b - 1")
	m := NewMove(sq(t, "5d"), sq(t, "5c"), false)

	if got := m.ToWestern(pos); got != "P-5c=" {
		t.Errorf("ToWestern = %q, want P-5c=", got)
	}
	back, err := ParseWestern("P-5c=", pos)
	if err != nil || back != m {
		t.Errorf("ParseWestern(P-5c=) = %s, %v", back, err)
	}
}
