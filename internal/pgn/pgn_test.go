package pgn

import (
	"testing"

	"opening_arena/internal/domain/book"
)

func mainline(root *book.GameNode) []string {
	var moves []string
	for node := root; len(node.Variations) > 0; node = node.Variations[0] {
		moves = append(moves, node.Variations[0].Move)
	}
	return moves
}

func TestReadMainline(t *testing.T) {
	games, err := ReadString(`[Event "Test"]
[Result "*"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 *`)
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 1 {
		t.Fatalf("got %d games, want 1", len(games))
	}

	want := []string{"e4", "e5", "Nf3", "Nc6", "Bb5"}
	got := mainline(games[0])
	if len(got) != len(want) {
		t.Fatalf("mainline = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("move %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReadVariationAttachesAtParent(t *testing.T) {
	games, err := ReadString(`1. e4 (1. d4 d5) e5 *`)
	if err != nil {
		t.Fatal(err)
	}

	root := games[0]
	if len(root.Variations) != 2 {
		t.Fatalf("root has %d first-move alternatives, want 2", len(root.Variations))
	}
	if root.Variations[0].Move != "e4" || root.Variations[1].Move != "d4" {
		t.Errorf("alternatives = [%s %s], want mainline e4 before variation d4",
			root.Variations[0].Move, root.Variations[1].Move)
	}
	// d5 belongs inside the variation, e5 continues the mainline.
	if len(root.Variations[1].Variations) != 1 || root.Variations[1].Variations[0].Move != "d5" {
		t.Error("variation d4 lost its reply d5")
	}
	if len(root.Variations[0].Variations) != 1 || root.Variations[0].Variations[0].Move != "e5" {
		t.Error("mainline e4 lost its continuation e5")
	}
}

func TestReadNestedVariations(t *testing.T) {
	games, err := ReadString(`1. e4 e5 (1... c5 2. Nf3 (2. c3 d5)) 2. Nf3 *`)
	if err != nil {
		t.Fatal(err)
	}

	e4 := games[0].Variations[0]
	if len(e4.Variations) != 2 {
		t.Fatalf("after e4: %d replies, want 2", len(e4.Variations))
	}
	c5 := e4.Variations[1]
	if c5.Move != "c5" {
		t.Fatalf("second reply = %q, want c5", c5.Move)
	}
	if len(c5.Variations) != 2 || c5.Variations[1].Move != "c3" {
		t.Errorf("nested variation after c5 not kept: %+v", c5.Variations)
	}
}

func TestReadMultipleGames(t *testing.T) {
	games, err := ReadString(`[Event "One"]

1. e4 e5 1-0

[Event "Two"]

1. d4 d5 1/2-1/2`)
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 2 {
		t.Fatalf("got %d games, want 2", len(games))
	}
	if games[0].Variations[0].Move != "e4" || games[1].Variations[0].Move != "d4" {
		t.Error("games parsed out of order")
	}
}

func TestReadSkipsCommentsAndNAGs(t *testing.T) {
	games, err := ReadString(`1. e4! {best by test} $1 e5 ; rest of line
2. Nf3 {[%clk 0:03:00]} Nc6 *`)
	if err != nil {
		t.Fatal(err)
	}
	got := mainline(games[0])
	want := []string{"e4", "e5", "Nf3", "Nc6"}
	if len(got) != len(want) {
		t.Fatalf("mainline = %v, want %v", got, want)
	}
}

func TestReadCastlingAndPromotion(t *testing.T) {
	games, err := ReadString(`1. e4 e5 2. Nf3 Nf6 3. Bc4 Bc5 4. O-O *`)
	if err != nil {
		t.Fatal(err)
	}
	got := mainline(games[0])
	if got[len(got)-1] != "O-O" {
		t.Errorf("last move = %q, want O-O", got[len(got)-1])
	}

	games, err = ReadString(`1. e8=Q+ *`)
	if err != nil {
		t.Fatal(err)
	}
	if games[0].Variations[0].Move != "e8=Q+" {
		t.Errorf("promotion token = %q, want e8=Q+", games[0].Variations[0].Move)
	}
}

func TestReadEmptyInput(t *testing.T) {
	games, err := ReadString("")
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 0 {
		t.Errorf("got %d games from empty input, want 0", len(games))
	}
}
