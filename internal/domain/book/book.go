package book

// Color is the side a repertoire is prepared for.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	return string(c)
}

// GameNode is one move of a recorded game tree. Variations holds the
// alternatives for the NEXT move, mainline first. The root node of a game
// carries no move of its own.
type GameNode struct {
	Move       string `json:"move"` // SAN as written in the source
	Variations []*GameNode
}

// Position is a board state produced by the rules collaborator. Values are
// immutable; applying a move yields a fresh Position.
type Position interface {
	Side() Color
	// Key is the canonical position key: transposing move orders that reach
	// the same state share one key.
	Key() string
	// FEN is the full board serialization including move counters.
	FEN() string
}

// Rules is the chess-rules collaborator. It never mutates a Position.
type Rules interface {
	Start() Position
	// DecodeSAN resolves a SAN token against pos and returns the move in UCI
	// form. Fails for unparsable or illegal moves.
	DecodeSAN(pos Position, san string) (string, error)
	// Apply plays a UCI move and returns the resulting position, leaving pos
	// untouched.
	Apply(pos Position, uci string) (Position, error)
	IsLegal(pos Position, uci string) bool
	IsCheckmate(pos Position) bool
	// IsDraw reports drawn terminal states the rules know about (stalemate).
	IsDraw(pos Position) bool
	// Notate renders a UCI move as SAN in the context of pos.
	Notate(pos Position, uci string) (string, error)
}
