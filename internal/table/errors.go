package table

import "errors"

// Configuration errors reported by New. A table that fails construction is
// not usable; every other failure in this package is a sentinel return
// value, never an error.
var (
	// ErrMinPlayers is returned when the configured minimum is below two.
	ErrMinPlayers = errors.New("table: minPlayers must be at least 2")
	// ErrMaxPlayers is returned when the configured maximum exceeds the
	// ten-seat hard limit.
	ErrMaxPlayers = errors.New("table: maxPlayers must be at most 10")
	// ErrPlayerBounds is returned when minPlayers exceeds maxPlayers.
	ErrPlayerBounds = errors.New("table: minPlayers must not exceed maxPlayers")
)
