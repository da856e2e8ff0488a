package errors

import "errors"

var (
	ErrNoGamesFound        = errors.New("no games found in repertoire input")
	ErrDuelNotFound        = errors.New("duel not found")
	ErrSaveDuelFailed      = errors.New("save duel failed")
	ErrExplorerUnavailable = errors.New("opening explorer unavailable")
	ErrInternal            = errors.New("internal error")
)
