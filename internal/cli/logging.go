// Package cli holds the bits every command shares: logger setup and loading
// positions from files or random generation.
package cli

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"arimaa_go/internal/game"
)

// InitLogger points the global zerolog logger at stderr with a console
// writer and sets the level by name ("debug", "info", ...).
func InitLogger(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "log level %q", level)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	return nil
}

// LoadBoard reads a diagram from path, or returns a random setup drawn from
// seed when path is empty.
func LoadBoard(path string, seed string) (*game.Board, error) {
	if path == "" {
		return game.RandomSetup(game.NewSeededRand(seed)), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read position")
	}
	b, err := game.ParseBoard(string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "position %s", path)
	}
	return b, nil
}

// LoadMoves reads a move list, one turn per line. An empty path gives no moves.
func LoadMoves(path string) ([]game.Move, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read moves")
	}
	moves, err := game.ParseMoveList(string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "moves %s", path)
	}
	return moves, nil
}
