package arena

import (
	"time"

	"opening_arena/internal/domain/book"
)

// Termination is the reason the simulated opening stopped.
type Termination string

const (
	// TerminationCheckmateWhite: white delivered mate out of its own book.
	TerminationCheckmateWhite Termination = "CHECKMATE_WHITE"
	// TerminationCheckmateBlack: black delivered mate.
	TerminationCheckmateBlack Termination = "CHECKMATE_BLACK"
	TerminationStalemate      Termination = "STALEMATE"
	TerminationOutOfBookWhite Termination = "OUT_OF_BOOK_WHITE"
	TerminationOutOfBookBlack Termination = "OUT_OF_BOOK_BLACK"
	// TerminationIllegalCandidate: the side to move had candidates recorded
	// for the position key, but none of them is legal on the live board.
	TerminationIllegalCandidate Termination = "ILLEGAL_CANDIDATE"
)

// SimulationResult is the immutable outcome of one lock-step walk of the two
// repertoires.
type SimulationResult struct {
	FinalKey    string      `json:"final_key" bson:"final_key"`
	FinalFEN    string      `json:"final_fen" bson:"final_fen"`
	Moves       []string    `json:"moves" bson:"moves"` // SAN, in played order
	Termination Termination `json:"termination" bson:"termination"`
}

// PlyEvent is emitted once per played half-move for live observers.
type PlyEvent struct {
	Ply  int        `json:"ply"`
	Side book.Color `json:"side"`
	UCI  string     `json:"uci"`
	SAN  string     `json:"san"`
	FEN  string     `json:"fen"`
}

// DuelRequest is what a caller submits: one PGN repertoire per side plus the
// rating brackets for the statistics lookup.
type DuelRequest struct {
	WhitePGN string `json:"white_pgn"`
	BlackPGN string `json:"black_pgn"`
	Ratings  []int  `json:"ratings"`
	MaxPlies int    `json:"max_plies,omitempty"`
}

// Distribution is a win/draw/loss count from white's point of view.
type Distribution struct {
	White int64 `json:"white" bson:"white"`
	Draws int64 `json:"draws" bson:"draws"`
	Black int64 `json:"black" bson:"black"`
}

func (d Distribution) Total() int64 {
	return d.White + d.Draws + d.Black
}

// Percentages returns the white/draw/black shares in percent; zeros when the
// distribution is empty.
func (d Distribution) Percentages() (float64, float64, float64) {
	total := d.Total()
	if total == 0 {
		return 0, 0, 0
	}
	return float64(d.White) / float64(total) * 100,
		float64(d.Draws) / float64(total) * 100,
		float64(d.Black) / float64(total) * 100
}

// ExplorerMove is one candidate continuation reported by the statistics
// service for the final position.
type ExplorerMove struct {
	UCI           string `json:"uci" bson:"uci"`
	SAN           string `json:"san" bson:"san"`
	White         int64  `json:"white" bson:"white"`
	Draws         int64  `json:"draws" bson:"draws"`
	Black         int64  `json:"black" bson:"black"`
	AverageRating int    `json:"averageRating,omitempty" bson:"average_rating,omitempty"`
}

func (m ExplorerMove) Distribution() Distribution {
	return Distribution{White: m.White, Draws: m.Draws, Black: m.Black}
}

// ExplorerStats is the empirical result distribution for a position.
type ExplorerStats struct {
	Distribution `bson:",inline"`
	Moves        []ExplorerMove `json:"moves" bson:"moves"`
}

// DuelRecord is a finished duel as persisted and served.
type DuelRecord struct {
	ID          string            `json:"duel_id" bson:"duel_id"`
	CreatedAt   time.Time         `json:"created_at" bson:"created_at"`
	Ratings     []int             `json:"ratings" bson:"ratings"`
	Result      SimulationResult  `json:"result" bson:"result"`
	Decisive    bool              `json:"decisive" bson:"decisive"`
	Outcome     Distribution      `json:"outcome" bson:"outcome"`
	Stats       *ExplorerStats    `json:"stats,omitempty" bson:"stats,omitempty"`
	Diagnostics []book.Diagnostic `json:"diagnostics,omitempty" bson:"diagnostics,omitempty"`
}
