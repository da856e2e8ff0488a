// Command arena runs one duel from the command line: two repertoire PGN
// files, one per side, and a list of rating brackets for the explorer lookup.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"opening_arena/internal/bootstrap"
	arenadom "opening_arena/internal/domain/arena"
	"opening_arena/internal/repository"
	"opening_arena/internal/rules"
	arenauc "opening_arena/internal/usecase/arena"
)

func main() {
	whiteFile := flag.String("w", "", "White repertoire PGN file")
	blackFile := flag.String("b", "", "Black repertoire PGN file")
	elo := flag.String("e", "", "Comma separated rating brackets (e.g. 1200,1400,1600,1800)")
	explorerURL := flag.String("explorer", "https://explorer.lichess.ovh/lichess", "Opening explorer endpoint")
	maxPlies := flag.Int("max-plies", 0, "Ply ceiling for the simulation (0 = default)")
	verbose := flag.Bool("v", false, "Log every played ply")
	flag.Parse()

	if *whiteFile == "" || *blackFile == "" {
		fmt.Fprintln(os.Stderr, "usage: arena -w white.pgn -b black.pgn [-e 1600,1800]")
		os.Exit(2)
	}

	logger := newLogger(*verbose)
	defer logger.Sync()

	whitePGN, err := os.ReadFile(*whiteFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot read white PGN:", err)
		os.Exit(1)
	}
	blackPGN, err := os.ReadFile(*blackFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot read black PGN:", err)
		os.Exit(1)
	}

	ratings, err := parseRatings(*elo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bad rating list:", err)
		os.Exit(2)
	}

	cfg := bootstrap.Config{
		ExplorerUrl: *explorerURL,
		MaxPlies:    *maxPlies,
	}

	// One-shot run: explorer without cache, no duel archive.
	explorerRepo := repository.NewExplorerRepository(cfg, logger, nil)
	uc := arenauc.NewArenaUseCase(cfg, logger, rules.NewEngine(), explorerRepo, nil)

	var observer func(arenadom.PlyEvent)
	if *verbose {
		observer = func(ev arenadom.PlyEvent) {
			logger.Debugw("ply played", "ply", ev.Ply, "side", ev.Side, "san", ev.SAN, "fen", ev.FEN)
		}
	}

	record, err := uc.RunDuel(context.Background(), arenadom.DuelRequest{
		WhitePGN: string(whitePGN),
		BlackPGN: string(blackPGN),
		Ratings:  ratings,
		MaxPlies: *maxPlies,
	}, observer)
	if err != nil {
		fmt.Fprintln(os.Stderr, "duel failed:", err)
		os.Exit(1)
	}

	printReport(*whiteFile, *blackFile, record)
}

func newLogger(verbose bool) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func parseRatings(s string) ([]int, error) {
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return nil, nil
	}
	var ratings []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%q is not a rating", part)
		}
		ratings = append(ratings, n)
	}
	return ratings, nil
}

func printReport(whiteFile, blackFile string, record arenadom.DuelRecord) {
	fmt.Println("White:", whiteFile)
	fmt.Println("Black:", blackFile)
	fmt.Println("Termination:", record.Result.Termination)
	fmt.Println("Final FEN:", record.Result.FinalFEN)

	fmt.Println("\nMoves played to reach this position:")
	if len(record.Result.Moves) > 0 {
		fmt.Println(arenauc.FormatSANLine(record.Result.Moves))
	} else {
		fmt.Println("(No moves played)")
	}

	if record.Decisive {
		fmt.Println("\nResult (Mate):")
		arenauc.WriteOverall(os.Stdout, record.Outcome)
		fmt.Println("\n(Mate reached; no candidate moves table available.)")
		return
	}

	if record.Stats == nil {
		fmt.Println("\nNo statistics available for the final position.")
		return
	}

	fmt.Println("\nOverall Result from Opening Explorer:")
	arenauc.WriteOverall(os.Stdout, record.Stats.Distribution)

	if len(record.Stats.Moves) == 0 {
		fmt.Println("No candidate moves available in the explorer response.")
		return
	}
	moveNumber, whiteToMove := moveContext(record.Result.FinalFEN)
	arenauc.WriteMovesTable(os.Stdout, record.Stats.Moves, moveNumber, whiteToMove)
}

// moveContext pulls the side to move and fullmove number out of a FEN.
func moveContext(fen string) (int, bool) {
	fields := strings.Fields(fen)
	if len(fields) < 6 {
		return 1, true
	}
	num, err := strconv.Atoi(fields[5])
	if err != nil {
		num = 1
	}
	return num, fields[1] == "w"
}
