package game

import "github.com/pkg/errors"

var (
	ErrGameOver    = errors.New("game is over")
	ErrIllegalMove = errors.New("illegal move")
	ErrNoChange    = errors.New("move leaves the position unchanged")
	ErrRepetition  = errors.New("move repeats a position for the third time")
)

// GameState 记录整局对局：当前局面、历史和胜负
type GameState struct {
	Board    *Board
	Moves    []Move  // one entry per completed turn
	History  []Board // position at the start of each turn in Moves
	GameOver bool
	Winner   Player

	reps map[uint64]int // situation hash at turn start -> times seen
}

// NewGameState starts a game from b, which should be at step 0.
func NewGameState(b *Board) *GameState {
	gs := &GameState{
		Board:  b.Clone(),
		Winner: NoPlayer,
		reps:   make(map[uint64]int),
	}
	gs.Board.RefreshStartHash()
	gs.reps[gs.Board.SitCurrentHash]++
	gs.updateWinner()
	return gs
}

func (gs *GameState) updateWinner() {
	gs.Winner = gs.Board.GetWinner()
	gs.GameOver = gs.Winner != NoPlayer
}

// MakeMove plays a whole turn for the side to move. Moves shorter than four
// steps are completed with a pass. On error the state is unchanged.
func (gs *GameState) MakeMove(m Move) error {
	if gs.GameOver {
		return ErrGameOver
	}
	start := *gs.Board
	next := start
	m = m.CompleteTurn()
	if !next.MakeMoveLegal(m) {
		return errors.Wrapf(ErrIllegalMove, "%s", start.MoveString(m))
	}
	if next.Step != 0 || next.Player == start.Player {
		return errors.Wrapf(ErrIllegalMove, "%s does not end the turn", start.MoveString(m))
	}
	if next.PosCurrentHash == start.PosCurrentHash {
		return ErrNoChange
	}
	if gs.reps[next.SitCurrentHash] >= 2 {
		return ErrRepetition
	}

	gs.History = append(gs.History, start)
	gs.Moves = append(gs.Moves, m)
	*gs.Board = next
	gs.reps[next.SitCurrentHash]++
	gs.updateWinner()
	return nil
}

// MakeMoveString parses and plays a move in standard notation.
func (gs *GameState) MakeMoveString(text string) error {
	m, err := ParseMove(text)
	if err != nil {
		return errors.Wrap(err, "parse move")
	}
	return gs.MakeMove(m)
}

// Undo takes back the last turn. It reports false when there is nothing to undo.
func (gs *GameState) Undo() bool {
	n := len(gs.Moves)
	if n == 0 {
		return false
	}
	gs.reps[gs.Board.SitCurrentHash]--
	*gs.Board = gs.History[n-1]
	gs.History = gs.History[:n-1]
	gs.Moves = gs.Moves[:n-1]
	gs.updateWinner()
	return true
}

// LastMove returns the last completed turn, ErrorMove if none.
func (gs *GameState) LastMove() Move {
	if len(gs.Moves) == 0 {
		return ErrorMove
	}
	return gs.Moves[len(gs.Moves)-1]
}

// PreviousBoard returns the position before the last turn, nil if none.
func (gs *GameState) PreviousBoard() *Board {
	if len(gs.History) == 0 {
		return nil
	}
	return &gs.History[len(gs.History)-1]
}

// Reset goes back to the first position.
func (gs *GameState) Reset() {
	for gs.Undo() {
	}
}
