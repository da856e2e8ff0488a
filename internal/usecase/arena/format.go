package arena

import (
	"fmt"
	"io"
	"strings"

	arenadom "opening_arena/internal/domain/arena"
)

// FormatSANLine renders a ply history as a numbered move line, e.g.
// "1.f3 e5 2.g4 Qh4#".
func FormatSANLine(moves []string) string {
	var parts []string
	num := 1
	for i := 0; i < len(moves); i += 2 {
		if i+1 < len(moves) {
			parts = append(parts, fmt.Sprintf("%d.%s %s", num, moves[i], moves[i+1]))
		} else {
			parts = append(parts, fmt.Sprintf("%d.%s", num, moves[i]))
		}
		num++
	}
	return strings.Join(parts, " ")
}

// WriteOverall prints the aggregate W/D/B line.
func WriteOverall(w io.Writer, d arenadom.Distribution) {
	wp, dp, bp := d.Percentages()
	fmt.Fprintf(w, "Overall: %d/%d/%d = %d = %.1f%%/%.1f%%/%.1f%%\n",
		d.White, d.Draws, d.Black, d.Total(), wp, dp, bp)
}

// WriteMovesTable prints the per-candidate table for the final position.
// moveNumber and whiteToMove place the "1." / "1..." prefix.
func WriteMovesTable(w io.Writer, moves []arenadom.ExplorerMove, moveNumber int, whiteToMove bool) {
	header := fmt.Sprintf("%-12s%10s%10s%10s%10s %8s %8s %8s",
		"Move", "White", "Draws", "Black", "Total", "W%", "D%", "B%")
	fmt.Fprintln(w, "\nCandidate Moves:")
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))

	for _, m := range moves {
		san := m.SAN
		if san == "" {
			san = m.UCI
		}
		var label string
		if whiteToMove {
			label = fmt.Sprintf("%d.%s", moveNumber, san)
		} else {
			label = fmt.Sprintf("%d...%s", moveNumber, san)
		}
		d := m.Distribution()
		wp, dp, bp := d.Percentages()
		fmt.Fprintf(w, "%-12s%10d%10d%10d%10d %7.1f%% %7.1f%% %7.1f%%\n",
			label, d.White, d.Draws, d.Black, d.Total(), wp, dp, bp)
	}
}
