package arena

import (
	"strings"
	"testing"

	arenadom "opening_arena/internal/domain/arena"
)

func TestFormatSANLine(t *testing.T) {
	tests := []struct {
		moves []string
		want  string
	}{
		{nil, ""},
		{[]string{"e4"}, "1.e4"},
		{[]string{"e4", "e5"}, "1.e4 e5"},
		{[]string{"f3", "e5", "g4", "Qh4#"}, "1.f3 e5 2.g4 Qh4#"},
		{[]string{"e4", "e5", "Nf3"}, "1.e4 e5 2.Nf3"},
	}
	for _, tt := range tests {
		if got := FormatSANLine(tt.moves); got != tt.want {
			t.Errorf("FormatSANLine(%v) = %q, want %q", tt.moves, got, tt.want)
		}
	}
}

func TestWriteOverall(t *testing.T) {
	var sb strings.Builder
	WriteOverall(&sb, arenadom.Distribution{White: 1, Draws: 1, Black: 2})
	want := "Overall: 1/1/2 = 4 = 25.0%/25.0%/50.0%\n"
	if sb.String() != want {
		t.Errorf("got %q, want %q", sb.String(), want)
	}
}

func TestWriteMovesTable(t *testing.T) {
	moves := []arenadom.ExplorerMove{
		{UCI: "e2e4", SAN: "e4", White: 6, Draws: 2, Black: 2},
		{UCI: "d2d4", White: 1, Draws: 0, Black: 1},
	}

	var sb strings.Builder
	WriteMovesTable(&sb, moves, 3, false)
	out := sb.String()

	if !strings.Contains(out, "3...e4") {
		t.Errorf("black-to-move prefix missing:\n%s", out)
	}
	if !strings.Contains(out, "3...d2d4") {
		t.Errorf("UCI fallback for missing SAN not rendered:\n%s", out)
	}
	if !strings.Contains(out, "60.0%") {
		t.Errorf("percentage column missing:\n%s", out)
	}
}
