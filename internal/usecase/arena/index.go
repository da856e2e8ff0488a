package arena

import (
	"opening_arena/internal/domain/book"
	"opening_arena/internal/errors"
)

// BuildReport summarizes one repertoire build.
type BuildReport struct {
	Games       int
	Positions   int
	Diagnostics []book.Diagnostic
}

// Indexer turns recorded game trees into a position-keyed repertoire trie for
// one side.
type Indexer struct {
	rules book.Rules
	sink  book.DiagnosticSink
}

func NewIndexer(rules book.Rules, sink book.DiagnosticSink) *Indexer {
	return &Indexer{rules: rules, sink: sink}
}

type buildFrame struct {
	node *book.GameNode
	pos  book.Position
}

// Build indexes every game and every variation branch. For each ply belonging
// to side it records position-before -> move -> position-after. A move that
// is illegal at the position its ancestors imply truncates only its own
// subtree; sibling branches are unaffected.
func (ix *Indexer) Build(games []*book.GameNode, side book.Color) (*book.Repertoire, BuildReport, error) {
	if len(games) == 0 {
		return nil, BuildReport{}, errors.ErrNoGamesFound
	}

	rep := book.NewRepertoire(side)
	recorder := &book.RecordingSink{Inner: ix.sink}

	for _, game := range games {
		ix.buildGame(rep, recorder, game, side)
	}

	report := BuildReport{
		Games:       len(games),
		Positions:   rep.Len(),
		Diagnostics: recorder.Diagnostics,
	}
	return rep, report, nil
}

func (ix *Indexer) buildGame(rep *book.Repertoire, sink book.DiagnosticSink, game *book.GameNode, side book.Color) {
	stack := []buildFrame{{node: game, pos: ix.rules.Start()}}

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Walk the alternatives in recorded order so that insertion order,
		// and with it candidate priority, follows the source: mainline
		// first, then the side variations. Positions are immutable values,
		// so "rolling back" to try a sibling is just reusing frame.pos.
		descend := make([]buildFrame, 0, len(frame.node.Variations))
		for _, child := range frame.node.Variations {
			uci, err := ix.rules.DecodeSAN(frame.pos, child.Move)
			if err != nil {
				sink.Emit(book.Diagnostic{
					Kind:     book.IllegalRecordedMove,
					Side:     side,
					Position: frame.pos.Key(),
					Move:     child.Move,
					Detail:   err.Error(),
				})
				continue // truncate this branch, keep the siblings
			}
			next, err := ix.rules.Apply(frame.pos, uci)
			if err != nil {
				sink.Emit(book.Diagnostic{
					Kind:     book.IllegalRecordedMove,
					Side:     side,
					Position: frame.pos.Key(),
					Move:     child.Move,
					Detail:   err.Error(),
				})
				continue
			}

			if frame.pos.Side() == side {
				if rep.Insert(frame.pos.Key(), uci, next.Key()) == book.Conflict {
					sink.Emit(book.Diagnostic{
						Kind:     book.TrieInsertionConflict,
						Side:     side,
						Position: frame.pos.Key(),
						Move:     uci,
						Detail:   "existing edge kept",
					})
				}
			}
			descend = append(descend, buildFrame{node: child, pos: next})
		}
		// LIFO stack: push in reverse to visit the mainline subtree first.
		for i := len(descend) - 1; i >= 0; i-- {
			stack = append(stack, descend[i])
		}
	}
}
