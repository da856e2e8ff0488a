package arena

import (
	arenadom "opening_arena/internal/domain/arena"
)

// Classification says whether a terminal state already decides the duel. A
// decisive state carries its own distribution and needs no statistics lookup;
// anything else defers to the explorer for the final position.
type Classification struct {
	Decisive bool
	Outcome  arenadom.Distribution
}

// Classify is a pure mapping from termination reason to reportable outcome.
func Classify(t arenadom.Termination) Classification {
	switch t {
	case arenadom.TerminationCheckmateWhite:
		return Classification{Decisive: true, Outcome: arenadom.Distribution{White: 1}}
	case arenadom.TerminationCheckmateBlack:
		return Classification{Decisive: true, Outcome: arenadom.Distribution{Black: 1}}
	default:
		return Classification{}
	}
}
