package arena

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"opening_arena/internal/bootstrap"
	arenadom "opening_arena/internal/domain/arena"
	errs "opening_arena/internal/errors"
	"opening_arena/internal/rules"
)

type stubStats struct {
	calls    int
	lastFEN  string
	response arenadom.ExplorerStats
	err      error
}

func (s *stubStats) Lookup(ctx context.Context, fen string, ratings []int) (arenadom.ExplorerStats, error) {
	s.calls++
	s.lastFEN = fen
	return s.response, s.err
}

type memStore struct {
	saved map[string]arenadom.DuelRecord
}

func newMemStore() *memStore {
	return &memStore{saved: make(map[string]arenadom.DuelRecord)}
}

func (m *memStore) GenerateDuelID(ctx context.Context) string { return "duel-1" }

func (m *memStore) SaveDuel(ctx context.Context, record arenadom.DuelRecord) error {
	m.saved[record.ID] = record
	return nil
}

func (m *memStore) GetDuelByID(ctx context.Context, duelID string) (arenadom.DuelRecord, error) {
	record, ok := m.saved[duelID]
	if !ok {
		return arenadom.DuelRecord{}, errs.ErrDuelNotFound
	}
	return record, nil
}

func newTestUseCase(stats StatsProvider, store DuelStore) *ArenaUseCase {
	return NewArenaUseCase(bootstrap.Config{}, zap.NewNop().Sugar(), rules.NewEngine(), stats, store)
}

const foolsMateWhite = "1. f3 e5 2. g4 *"
const foolsMateBlack = "1. f3 e5 2. g4 Qh4# *"

func TestRunDuelMateSkipsLookup(t *testing.T) {
	stats := &stubStats{}
	store := newMemStore()
	uc := newTestUseCase(stats, store)

	record, err := uc.RunDuel(context.Background(), arenadom.DuelRequest{
		WhitePGN: foolsMateWhite,
		BlackPGN: foolsMateBlack,
		Ratings:  []int{1600},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if record.Result.Termination != arenadom.TerminationCheckmateBlack {
		t.Errorf("termination = %s, want CHECKMATE_BLACK", record.Result.Termination)
	}
	if !record.Decisive {
		t.Error("mate record should be decisive")
	}
	if record.Outcome != (arenadom.Distribution{Black: 1}) {
		t.Errorf("outcome = %+v, want 0/0/1", record.Outcome)
	}
	if stats.calls != 0 {
		t.Errorf("stats lookup called %d times for a mate, want 0", stats.calls)
	}
	if _, ok := store.saved["duel-1"]; !ok {
		t.Error("finished duel was not persisted")
	}
}

func TestRunDuelOutOfBookQueriesExplorer(t *testing.T) {
	stats := &stubStats{response: arenadom.ExplorerStats{
		Distribution: arenadom.Distribution{White: 40, Draws: 30, Black: 30},
	}}
	uc := newTestUseCase(stats, nil)

	record, err := uc.RunDuel(context.Background(), arenadom.DuelRequest{
		WhitePGN: "1. e4 *",
		BlackPGN: "1. e4 e5 *",
		Ratings:  []int{1600, 1800},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if record.Result.Termination != arenadom.TerminationOutOfBookWhite {
		t.Errorf("termination = %s, want OUT_OF_BOOK_WHITE", record.Result.Termination)
	}
	if stats.calls != 1 {
		t.Fatalf("stats lookup called %d times, want 1", stats.calls)
	}
	if stats.lastFEN != record.Result.FinalFEN {
		t.Errorf("lookup FEN = %q, want final FEN %q", stats.lastFEN, record.Result.FinalFEN)
	}
	if record.Outcome.Total() != 100 {
		t.Errorf("outcome total = %d, want the explorer distribution", record.Outcome.Total())
	}
}

func TestRunDuelLookupFailureStillYieldsRecord(t *testing.T) {
	stats := &stubStats{err: errors.New("explorer down")}
	uc := newTestUseCase(stats, nil)

	record, err := uc.RunDuel(context.Background(), arenadom.DuelRequest{
		WhitePGN: "1. e4 *",
		BlackPGN: "1. e4 e5 *",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if record.Result.Termination != arenadom.TerminationOutOfBookWhite {
		t.Errorf("termination = %s, want a valid terminal result despite the failed lookup", record.Result.Termination)
	}
	if record.Stats != nil {
		t.Error("failed lookup must not attach stats")
	}
}

func TestRunDuelEmptyRepertoireFailsFast(t *testing.T) {
	uc := newTestUseCase(nil, nil)

	_, err := uc.RunDuel(context.Background(), arenadom.DuelRequest{
		WhitePGN: "[Event \"empty\"]\n\n",
		BlackPGN: "1. e4 e5 *",
	}, nil)
	if !errors.Is(err, errs.ErrNoGamesFound) {
		t.Fatalf("err = %v, want ErrNoGamesFound", err)
	}
}

func TestRunDuelStreamsPlies(t *testing.T) {
	uc := newTestUseCase(nil, nil)

	var plies []arenadom.PlyEvent
	record, err := uc.RunDuel(context.Background(), arenadom.DuelRequest{
		WhitePGN: foolsMateWhite,
		BlackPGN: foolsMateBlack,
	}, func(ev arenadom.PlyEvent) { plies = append(plies, ev) })
	if err != nil {
		t.Fatal(err)
	}

	if len(plies) != len(record.Result.Moves) {
		t.Errorf("observer saw %d plies, history has %d", len(plies), len(record.Result.Moves))
	}
}
