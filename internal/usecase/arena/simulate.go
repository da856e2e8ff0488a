package arena

import (
	arenadom "opening_arena/internal/domain/arena"
	"opening_arena/internal/domain/book"
)

// DefaultMaxPlies bounds the lock-step walk. Two honest repertoires run out
// of theory long before this; the ceiling only guards against pathological
// inputs that keep shuffling inside book.
const DefaultMaxPlies = 500

// repetitionLimit mirrors the threefold rule: once the same position key has
// been on the board three times the walk is a draw.
const repetitionLimit = 3

// Simulator walks two finished repertoires turn by turn. It owns no shared
// state: the repertoires are read-only and the position/history live on the
// stack of Run.
type Simulator struct {
	rules    book.Rules
	maxPlies int
	observer func(arenadom.PlyEvent)
}

// NewSimulator builds a simulator. observer may be nil; maxPlies <= 0 selects
// DefaultMaxPlies.
func NewSimulator(rules book.Rules, maxPlies int, observer func(arenadom.PlyEvent)) *Simulator {
	if maxPlies <= 0 {
		maxPlies = DefaultMaxPlies
	}
	return &Simulator{rules: rules, maxPlies: maxPlies, observer: observer}
}

// Run plays the duel from the standard starting position until a terminal
// state. The result is deterministic: fixed repertoires and insertion order
// admit exactly one walk.
func (s *Simulator) Run(white, black *book.Repertoire) arenadom.SimulationResult {
	pos := s.rules.Start()
	var history []string
	seen := map[string]int{pos.Key(): 1}

	for ply := 1; ply <= s.maxPlies; ply++ {
		side := pos.Side()
		rep := white
		if side == book.Black {
			rep = black
		}

		candidates := rep.Candidates(pos.Key())
		if len(candidates) == 0 {
			return s.result(pos, history, outOfBook(side))
		}

		// First inserted, first legal, wins. Legality is checked on the
		// live board: the recorded child key is no proof, a transposition
		// may share the key with a different legal-move set.
		chosen := ""
		for _, c := range candidates {
			if s.rules.IsLegal(pos, c.Move) {
				chosen = c.Move
				break
			}
		}
		if chosen == "" {
			return s.result(pos, history, arenadom.TerminationIllegalCandidate)
		}

		san, err := s.rules.Notate(pos, chosen)
		if err != nil {
			// Unreachable after the legality check, but never loop on it.
			return s.result(pos, history, arenadom.TerminationIllegalCandidate)
		}
		next, err := s.rules.Apply(pos, chosen)
		if err != nil {
			return s.result(pos, history, arenadom.TerminationIllegalCandidate)
		}

		pos = next
		history = append(history, san)
		if s.observer != nil {
			s.observer(arenadom.PlyEvent{
				Ply:  ply,
				Side: side,
				UCI:  chosen,
				SAN:  san,
				FEN:  pos.FEN(),
			})
		}

		if s.rules.IsCheckmate(pos) {
			if side == book.White {
				return s.result(pos, history, arenadom.TerminationCheckmateWhite)
			}
			return s.result(pos, history, arenadom.TerminationCheckmateBlack)
		}
		if s.rules.IsDraw(pos) {
			return s.result(pos, history, arenadom.TerminationStalemate)
		}

		seen[pos.Key()]++
		if seen[pos.Key()] >= repetitionLimit {
			return s.result(pos, history, arenadom.TerminationStalemate)
		}
	}

	// Ply ceiling hit: terminal draw rather than an unbounded walk.
	return s.result(pos, history, arenadom.TerminationStalemate)
}

func (s *Simulator) result(pos book.Position, history []string, t arenadom.Termination) arenadom.SimulationResult {
	return arenadom.SimulationResult{
		FinalKey:    pos.Key(),
		FinalFEN:    pos.FEN(),
		Moves:       history,
		Termination: t,
	}
}

func outOfBook(side book.Color) arenadom.Termination {
	if side == book.White {
		return arenadom.TerminationOutOfBookWhite
	}
	return arenadom.TerminationOutOfBookBlack
}
