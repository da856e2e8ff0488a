package book

import "go.uber.org/zap"

// DiagnosticKind classifies non-fatal indexing problems.
type DiagnosticKind string

const (
	// IllegalRecordedMove: a recorded move is not legal at the position its
	// ancestors imply. The branch below it is not indexed.
	IllegalRecordedMove DiagnosticKind = "illegal_recorded_move"
	// TrieInsertionConflict: two insertions disagree on the child position
	// for the same (position, move) edge. The first edge wins.
	TrieInsertionConflict DiagnosticKind = "trie_insertion_conflict"
)

type Diagnostic struct {
	Kind     DiagnosticKind `json:"kind" bson:"kind"`
	Side     Color          `json:"side" bson:"side"`
	Position string         `json:"position" bson:"position"`
	Move     string         `json:"move" bson:"move"`
	Detail   string         `json:"detail,omitempty" bson:"detail,omitempty"`
}

// DiagnosticSink receives indexing diagnostics. Implementations must be safe
// for use from a single builder goroutine.
type DiagnosticSink interface {
	Emit(d Diagnostic)
}

// LogSink writes diagnostics to the injected logger.
type LogSink struct {
	Log *zap.SugaredLogger
}

func (s LogSink) Emit(d Diagnostic) {
	if s.Log == nil {
		return
	}
	s.Log.Warnw("repertoire diagnostic",
		"kind", string(d.Kind),
		"side", string(d.Side),
		"position", d.Position,
		"move", d.Move,
		"detail", d.Detail,
	)
}

// RecordingSink collects diagnostics for the build report and forwards them
// to an optional inner sink.
type RecordingSink struct {
	Inner       DiagnosticSink
	Diagnostics []Diagnostic
}

func (s *RecordingSink) Emit(d Diagnostic) {
	s.Diagnostics = append(s.Diagnostics, d)
	if s.Inner != nil {
		s.Inner.Emit(d)
	}
}
