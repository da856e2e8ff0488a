package arena

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"opening_arena/internal/bootstrap"
	arenadom "opening_arena/internal/domain/arena"
	"opening_arena/internal/domain/book"
	"opening_arena/internal/pgn"
)

// StatsProvider is the external win/draw/loss statistics collaborator, keyed
// by the final position and the caller's rating brackets.
type StatsProvider interface {
	Lookup(ctx context.Context, fen string, ratings []int) (arenadom.ExplorerStats, error)
}

// DuelStore persists finished duels.
type DuelStore interface {
	GenerateDuelID(ctx context.Context) string
	SaveDuel(ctx context.Context, record arenadom.DuelRecord) error
	GetDuelByID(ctx context.Context, duelID string) (arenadom.DuelRecord, error)
}

type ArenaUseCase struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	rules book.Rules
	stats StatsProvider
	store DuelStore
}

func NewArenaUseCase(cfg bootstrap.Config, log *zap.SugaredLogger, rules book.Rules, stats StatsProvider, store DuelStore) *ArenaUseCase {
	return &ArenaUseCase{
		cfg:   cfg,
		log:   log,
		rules: rules,
		stats: stats,
		store: store,
	}
}

type buildOutput struct {
	rep    *book.Repertoire
	report BuildReport
	err    error
}

// RunDuel executes the whole pipeline: parse both PGN payloads, build the two
// repertoire tries, walk them in lock-step and classify the terminal state.
// The two builds share no state and run concurrently; the simulator waits on
// both. observer, when non-nil, receives every played ply.
func (a *ArenaUseCase) RunDuel(ctx context.Context, req arenadom.DuelRequest, observer func(arenadom.PlyEvent)) (arenadom.DuelRecord, error) {
	whiteGames, err := pgn.ReadString(req.WhitePGN)
	if err != nil {
		return arenadom.DuelRecord{}, fmt.Errorf("white repertoire: %w", err)
	}
	blackGames, err := pgn.ReadString(req.BlackPGN)
	if err != nil {
		return arenadom.DuelRecord{}, fmt.Errorf("black repertoire: %w", err)
	}

	var (
		wg          sync.WaitGroup
		whiteResult buildOutput
		blackResult buildOutput
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		ix := NewIndexer(a.rules, book.LogSink{Log: a.log})
		whiteResult.rep, whiteResult.report, whiteResult.err = ix.Build(whiteGames, book.White)
	}()
	go func() {
		defer wg.Done()
		ix := NewIndexer(a.rules, book.LogSink{Log: a.log})
		blackResult.rep, blackResult.report, blackResult.err = ix.Build(blackGames, book.Black)
	}()
	wg.Wait()

	if whiteResult.err != nil {
		return arenadom.DuelRecord{}, fmt.Errorf("white repertoire: %w", whiteResult.err)
	}
	if blackResult.err != nil {
		return arenadom.DuelRecord{}, fmt.Errorf("black repertoire: %w", blackResult.err)
	}

	a.log.Infow("repertoires built",
		"white_games", whiteResult.report.Games,
		"white_positions", whiteResult.report.Positions,
		"black_games", blackResult.report.Games,
		"black_positions", blackResult.report.Positions,
	)

	sim := NewSimulator(a.rules, a.pickMaxPlies(req.MaxPlies), observer)
	result := sim.Run(whiteResult.rep, blackResult.rep)

	record := arenadom.DuelRecord{
		CreatedAt:   time.Now().UTC(),
		Ratings:     req.Ratings,
		Result:      result,
		Diagnostics: append(whiteResult.report.Diagnostics, blackResult.report.Diagnostics...),
	}

	classification := Classify(result.Termination)
	record.Decisive = classification.Decisive
	if classification.Decisive {
		record.Outcome = classification.Outcome
	} else if a.stats != nil {
		stats, err := a.stats.Lookup(ctx, result.FinalFEN, req.Ratings)
		if err != nil {
			// The core contract is fulfilled with a terminal result; a
			// failed lookup degrades the record, it does not void it.
			a.log.Errorw("explorer lookup failed", "fen", result.FinalFEN, "error", err)
		} else {
			record.Outcome = stats.Distribution
			record.Stats = &stats
		}
	}

	if a.store != nil {
		record.ID = a.store.GenerateDuelID(ctx)
		if err := a.store.SaveDuel(ctx, record); err != nil {
			a.log.Errorw("failed to persist duel", "duel_id", record.ID, "error", err)
		}
	}

	return record, nil
}

func (a *ArenaUseCase) GetDuelByID(ctx context.Context, duelID string) (arenadom.DuelRecord, error) {
	return a.store.GetDuelByID(ctx, duelID)
}

func (a *ArenaUseCase) pickMaxPlies(requested int) int {
	if requested > 0 {
		return requested
	}
	if a.cfg.MaxPlies > 0 {
		return a.cfg.MaxPlies
	}
	return DefaultMaxPlies
}
