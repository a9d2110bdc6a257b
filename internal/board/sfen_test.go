package board

import "testing"

func TestSFENRoundTrip(t *testing.T) {
	sfens := []string{
		StartSFEN,
		"l6nl/5+P1gk/2np1S3/p1p4Pp/3P2Sp1/1PPb2P1P/P5GS1/R8/LN4bKL w RGgsn5p 1",
		"R8/2K1S1SSk/4B4/9/9/9/9/9/1L1L1L3 b RBGSNLP3g3n17p 1",
		"8k/9/9/9/9/9/9/9/K8 w 2P16p 120",
		"lnsgkgsnl/1r5b1/ppppppppp/9/9/2P6/PP1PPPPPP/1B5R1/LNSGKGSNL w - 2",
		"4k4/9/9/9/9/9/9/9/4K4 b - 1",
	}

	for _, sfen := range sfens {
		t.Run(sfen, func(t *testing.T) {
			pos := mustSFEN(t, sfen)
			if got := pos.SFEN(); got != sfen {
				t.Errorf("SFEN() = %q, want %q", got, sfen)
			}
			again := mustSFEN(t, pos.SFEN())
			if again.board != pos.board || again.hands != pos.hands ||
				again.SideToMove != pos.SideToMove || again.Ply != pos.Ply || again.Hash() != pos.Hash() {
				t.Error("re-parsed position differs")
			}
		})
	}
}

func TestSFENDefaultPly(t *testing.T) {
	pos := mustSFEN(t, "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b -")
	if pos.Ply != 1 {
		t.Errorf("Ply = %d, want 1", pos.Ply)
	}
	if pos.SFEN() != StartSFEN {
		t.Errorf("SFEN() = %q", pos.SFEN())
	}
}

func TestSFENErrors(t *testing.T) {
	tests := []struct {
		name string
		sfen string
	}{
		{"empty", ""},
		{"eight ranks", "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1 b - 1"},
		{"bad side", "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL x - 1"},
		{"short rank", "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSN b - 1"},
		{"long rank", "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNLL b - 1"},
		{"bad hand piece", "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b Q 1"},
		{"too many rooks", "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b 3R 1"},
		{"overflowing hand count", "4k4/9/9/9/9/9/9/9/4K4 b 18446744073709551615P 1"},
		{"three digit hand count", "4k4/9/9/9/9/9/9/9/4K4 b 100P 1"},
		{"zero hand count", "4k4/9/9/9/9/9/9/9/4K4 b 0P 1"},
		{"leading zero hand count", "4k4/9/9/9/9/9/9/9/4K4 b 05P 1"},
		{"too many pawns in hand", "4k4/9/9/9/9/9/9/9/4K4 b 19P 1"},
		{"dangling hand count", "4k4/9/9/9/9/9/9/9/4K4 b P2 1"},
		{"bad ply", "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 0"},
		{"two kings", "4k4/9/9/9/9/9/9/9/3KK4 b - 1"},
		{"dead pawn", "P3k4/9/9/9/9/9/9/9/4K4 b - 1"},
		{"two pawns on a file", "4k4/9/9/9/9/4P4/4P4/9/4K4 b - 1"},
		{"promoted gold", "4k4/9/9/9/9/9/9/9/4K3+G b - 1"},
		{"opponent in check", "4k4/4R4/9/9/9/9/9/9/4K4 b - 1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseSFEN(tc.sfen); err == nil {
				t.Errorf("ParseSFEN(%q) should fail", tc.sfen)
			}
		})
	}
}
