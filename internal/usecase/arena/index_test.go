package arena

import (
	"errors"
	"testing"

	"opening_arena/internal/domain/book"
	errs "opening_arena/internal/errors"
	"opening_arena/internal/pgn"
	"opening_arena/internal/rules"
)

// line builds a single-branch game tree from SAN moves.
func line(moves ...string) *book.GameNode {
	root := &book.GameNode{}
	node := root
	for _, m := range moves {
		child := &book.GameNode{Move: m}
		node.Variations = append(node.Variations, child)
		node = child
	}
	return root
}

func startKey(t *testing.T) string {
	t.Helper()
	return rules.NewEngine().Start().Key()
}

func TestBuildRejectsEmptyInput(t *testing.T) {
	ix := NewIndexer(rules.NewEngine(), nil)
	_, _, err := ix.Build(nil, book.White)
	if !errors.Is(err, errs.ErrNoGamesFound) {
		t.Fatalf("err = %v, want ErrNoGamesFound", err)
	}
}

func TestBuildIndexesOnlyOwnSide(t *testing.T) {
	ix := NewIndexer(rules.NewEngine(), nil)
	rep, report, err := ix.Build([]*book.GameNode{line("e4", "e5", "Nf3")}, book.White)
	if err != nil {
		t.Fatal(err)
	}

	if report.Games != 1 {
		t.Errorf("games = %d, want 1", report.Games)
	}
	// e4 and Nf3 are white plies; e5 belongs to black's book.
	if rep.Len() != 2 {
		t.Errorf("indexed positions = %d, want 2", rep.Len())
	}
	cands := rep.Candidates(startKey(t))
	if len(cands) != 1 || cands[0].Move != "e2e4" {
		t.Errorf("start candidates = %v, want [e2e4]", cands)
	}
}

func TestBuildIsIdempotentAcrossGames(t *testing.T) {
	ix := NewIndexer(rules.NewEngine(), nil)
	games := []*book.GameNode{line("e4", "e5"), line("e4", "c5")}
	rep, report, err := ix.Build(games, book.White)
	if err != nil {
		t.Fatal(err)
	}

	cands := rep.Candidates(startKey(t))
	if len(cands) != 1 {
		t.Errorf("start candidates = %v, want a single e2e4", cands)
	}
	if len(report.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", report.Diagnostics)
	}
}

func TestBuildKeepsVariationsAsOrderedCandidates(t *testing.T) {
	games, err := pgn.ReadString(`1. e4 (1. d4 d5 2. c4) e5 2. Nf3 *`)
	if err != nil {
		t.Fatal(err)
	}

	ix := NewIndexer(rules.NewEngine(), nil)
	rep, _, err := ix.Build(games, book.White)
	if err != nil {
		t.Fatal(err)
	}

	cands := rep.Candidates(startKey(t))
	if len(cands) != 2 {
		t.Fatalf("start candidates = %v, want mainline plus variation", cands)
	}
	if cands[0].Move != "e2e4" || cands[1].Move != "d2d4" {
		t.Errorf("candidate order = [%s %s], want mainline e2e4 first", cands[0].Move, cands[1].Move)
	}
}

func TestBuildTruncatesIllegalBranchOnly(t *testing.T) {
	// Second branch opens with an impossible move; its subtree must be
	// dropped without touching the healthy sibling.
	root := &book.GameNode{}
	good := &book.GameNode{Move: "e4", Variations: []*book.GameNode{{Move: "e5"}}}
	bad := &book.GameNode{Move: "Ke2", Variations: []*book.GameNode{{Move: "d5", Variations: []*book.GameNode{{Move: "d4"}}}}}
	root.Variations = []*book.GameNode{good, bad}

	ix := NewIndexer(rules.NewEngine(), nil)
	rep, report, err := ix.Build([]*book.GameNode{root}, book.White)
	if err != nil {
		t.Fatal(err)
	}

	cands := rep.Candidates(startKey(t))
	if len(cands) != 1 || cands[0].Move != "e2e4" {
		t.Errorf("start candidates = %v, want only the legal branch", cands)
	}
	// The d4 below the illegal Ke2 must not appear anywhere in the trie.
	if rep.Len() != 1 {
		t.Errorf("indexed positions = %d, want 1", rep.Len())
	}

	if len(report.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %v, want one IllegalRecordedMove", report.Diagnostics)
	}
	if report.Diagnostics[0].Kind != book.IllegalRecordedMove {
		t.Errorf("diagnostic kind = %s, want %s", report.Diagnostics[0].Kind, book.IllegalRecordedMove)
	}
}

func TestBuildReportsTrieConflict(t *testing.T) {
	// Force a conflicting child key by inserting through a repertoire bridge:
	// the same (position, move) edge cannot disagree when positions come from
	// the rules collaborator, so drive Insert directly.
	rep := book.NewRepertoire(book.White)
	rep.Insert("k", "e2e4", "a")
	if rep.Insert("k", "e2e4", "b") != book.Conflict {
		t.Fatal("expected a conflict outcome")
	}
	if got := rep.Candidates("k")[0].Child; got != "a" {
		t.Errorf("child = %q, want first-recorded %q", got, "a")
	}
}
