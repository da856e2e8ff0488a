// Package pgn reads PGN movetext into book.GameNode trees, keeping every
// recursive variation branch. It deliberately understands just enough PGN for
// repertoire files: tag pairs, SAN tokens, move numbers, NAGs, comments and
// nested RAVs. Legality of the recorded moves is not checked here; that is the
// indexer's job.
package pgn

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"opening_arena/internal/domain/book"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenTag
	tokenMove
	tokenOpenRAV
	tokenCloseRAV
	tokenResult
)

type token struct {
	typ  tokenType
	text string
}

type lexer struct {
	r *bufio.Reader
}

func newLexer(r io.Reader) *lexer {
	return &lexer{r: bufio.NewReader(r)}
}

func (l *lexer) next() (token, error) {
	for {
		ch, _, err := l.r.ReadRune()
		if err == io.EOF {
			return token{typ: tokenEOF}, nil
		}
		if err != nil {
			return token{}, err
		}

		switch {
		case unicode.IsSpace(ch):
			continue
		case ch == '[':
			if err := l.skipUntil(']'); err != nil {
				return token{}, err
			}
			return token{typ: tokenTag}, nil
		case ch == '{':
			if err := l.skipUntil('}'); err != nil {
				return token{}, err
			}
			continue
		case ch == ';': // rest-of-line comment
			if err := l.skipUntil('\n'); err != nil {
				return token{}, err
			}
			continue
		case ch == '(':
			return token{typ: tokenOpenRAV}, nil
		case ch == ')':
			return token{typ: tokenCloseRAV}, nil
		case ch == '$': // NAG
			l.readWhile(func(r rune) bool { return unicode.IsDigit(r) })
			continue
		case ch == '*':
			return token{typ: tokenResult, text: "*"}, nil
		default:
			word := string(ch) + l.readWhile(isSymbolRune)
			return classifyWord(word), nil
		}
	}
}

func (l *lexer) skipUntil(end rune) error {
	for {
		ch, _, err := l.r.ReadRune()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if ch == end {
			return nil
		}
	}
}

func (l *lexer) readWhile(pred func(rune) bool) string {
	var sb strings.Builder
	for {
		ch, _, err := l.r.ReadRune()
		if err != nil {
			return sb.String()
		}
		if !pred(ch) {
			l.r.UnreadRune()
			return sb.String()
		}
		sb.WriteRune(ch)
	}
}

func isSymbolRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) ||
		strings.ContainsRune("_+#=:-/!?.", r)
}

func classifyWord(word string) token {
	switch word {
	case "1-0", "0-1", "1/2-1/2":
		return token{typ: tokenResult, text: word}
	}
	// Move numbers come as "1.", "3...", sometimes glued to the move
	// ("1.e4"). Strip the numeric prefix and keep whatever SAN remains.
	rest := strings.TrimLeft(word, "0123456789")
	rest = strings.TrimLeft(rest, ".")
	if rest == "" {
		return token{typ: tokenMove, text: ""} // bare move number, skipped
	}
	// Annotation suffixes like "e4!?" are not part of SAN proper.
	rest = strings.TrimRight(rest, "!?")
	return token{typ: tokenMove, text: rest}
}

// Read parses every game in r. A game with tags but no moves yields a root
// with no variations; callers decide whether an empty result set is an error.
func Read(r io.Reader) ([]*book.GameNode, error) {
	lex := newLexer(r)

	var games []*book.GameNode
	root := &book.GameNode{}
	cursor := root
	parents := map[*book.GameNode]*book.GameNode{}
	var stack []*book.GameNode
	started := false

	flush := func() {
		if started || len(root.Variations) > 0 {
			games = append(games, root)
		}
		root = &book.GameNode{}
		cursor = root
		parents = map[*book.GameNode]*book.GameNode{}
		stack = stack[:0]
		started = false
	}

	for {
		tok, err := lex.next()
		if err != nil {
			return nil, fmt.Errorf("pgn read: %w", err)
		}

		switch tok.typ {
		case tokenEOF:
			flush()
			return games, nil
		case tokenTag:
			// A tag section after movetext starts the next game.
			if started {
				flush()
			}
		case tokenResult:
			flush()
		case tokenOpenRAV:
			// The variation is an alternative to the last move, so it
			// attaches at the position before it.
			parent, ok := parents[cursor]
			if !ok {
				continue // stray "(" before any move
			}
			stack = append(stack, cursor)
			cursor = parent
		case tokenCloseRAV:
			if len(stack) == 0 {
				continue // unbalanced ")", tolerate
			}
			cursor = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		case tokenMove:
			if tok.text == "" {
				continue
			}
			started = true
			node := &book.GameNode{Move: tok.text}
			cursor.Variations = append(cursor.Variations, node)
			parents[node] = cursor
			cursor = node
		}
	}
}

// ReadString is a convenience wrapper for in-memory PGN payloads.
func ReadString(s string) ([]*book.GameNode, error) {
	return Read(strings.NewReader(s))
}
