package rules

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"

	"opening_arena/internal/domain/book"
)

// Position wraps a notnil/chess position. chess.Position.Update returns a new
// value, so Position behaves functionally: applying a move never touches the
// receiver.
type Position struct {
	inner *chess.Position
}

func (p Position) Side() book.Color {
	if p.inner.Turn() == chess.White {
		return book.White
	}
	return book.Black
}

// Key drops the halfmove and fullmove counters from the FEN so that
// transpositions reaching the same state share one key.
func (p Position) Key() string {
	fields := strings.Fields(p.inner.String())
	if len(fields) < 4 {
		return p.inner.String()
	}
	return strings.Join(fields[:4], " ")
}

func (p Position) FEN() string {
	return p.inner.String()
}

// Engine implements book.Rules on top of github.com/notnil/chess.
type Engine struct{}

func NewEngine() Engine {
	return Engine{}
}

func (Engine) Start() book.Position {
	return Position{inner: chess.StartingPosition()}
}

// FromFEN builds a position from a full FEN string.
func FromFEN(fen string) (book.Position, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("bad FEN %q: %w", fen, err)
	}
	game := chess.NewGame(opt)
	return Position{inner: game.Position()}, nil
}

func unwrap(pos book.Position) (Position, error) {
	p, ok := pos.(Position)
	if !ok {
		return Position{}, fmt.Errorf("position %T was not produced by this engine", pos)
	}
	return p, nil
}

func (Engine) DecodeSAN(pos book.Position, san string) (string, error) {
	p, err := unwrap(pos)
	if err != nil {
		return "", err
	}
	move, err := chess.AlgebraicNotation{}.Decode(p.inner, san)
	if err != nil {
		return "", fmt.Errorf("cannot decode %q: %w", san, err)
	}
	return chess.UCINotation{}.Encode(p.inner, move), nil
}

func (Engine) Apply(pos book.Position, uci string) (book.Position, error) {
	p, err := unwrap(pos)
	if err != nil {
		return nil, err
	}
	move := findLegal(p.inner, uci)
	if move == nil {
		return nil, fmt.Errorf("move %q is not legal at %s", uci, p.FEN())
	}
	return Position{inner: p.inner.Update(move)}, nil
}

func (Engine) IsLegal(pos book.Position, uci string) bool {
	p, err := unwrap(pos)
	if err != nil {
		return false
	}
	return findLegal(p.inner, uci) != nil
}

func (Engine) IsCheckmate(pos book.Position) bool {
	p, err := unwrap(pos)
	if err != nil {
		return false
	}
	return p.inner.Status() == chess.Checkmate
}

func (Engine) IsDraw(pos book.Position) bool {
	p, err := unwrap(pos)
	if err != nil {
		return false
	}
	return p.inner.Status() == chess.Stalemate
}

func (Engine) Notate(pos book.Position, uci string) (string, error) {
	p, err := unwrap(pos)
	if err != nil {
		return "", err
	}
	move := findLegal(p.inner, uci)
	if move == nil {
		return "", fmt.Errorf("move %q is not legal at %s", uci, p.FEN())
	}
	return chess.AlgebraicNotation{}.Encode(p.inner, move), nil
}

// findLegal matches a UCI string against the live legal moves. Matching is
// done on the encoded valid moves rather than on a decoded move so that a key
// shared by transpositions can never smuggle in an illegal move.
func findLegal(pos *chess.Position, uci string) *chess.Move {
	notation := chess.UCINotation{}
	for _, m := range pos.ValidMoves() {
		if notation.Encode(pos, m) == uci {
			return m
		}
	}
	return nil
}
