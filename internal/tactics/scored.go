// Package tactics holds the short forced-tactic searches: captures, capture
// defense, goals and rabbit elimination. Every search mutates the board it is
// given through temporary steps and leaves it exactly as it found it.
package tactics

import (
	"sort"

	"arimaa_go/internal/game"
)

// ScoredMove is a generated move with its ordering heuristic. For captures Hm
// is the type of the captured piece, for goal threats 5 minus the goal distance.
type ScoredMove struct {
	Move game.Move
	Hm   int
}

// Moves strips the heuristics.
func Moves(sm []ScoredMove) []game.Move {
	out := make([]game.Move, len(sm))
	for i, s := range sm {
		out[i] = s.Move
	}
	return out
}

// SortByHm orders moves best first, shorter moves first among equal values.
func SortByHm(sm []ScoredMove) {
	sort.SliceStable(sm, func(i, j int) bool {
		if sm[i].Hm != sm[j].Hm {
			return sm[i].Hm > sm[j].Hm
		}
		return sm[i].Move.NumSteps() < sm[j].Move.NumSteps()
	})
}

func containsMove(sm []ScoredMove, m game.Move) bool {
	for _, s := range sm {
		if s.Move == m {
			return true
		}
	}
	return false
}

// victimOf returns where the enemy piece of push or pull u starts and ends.
func victimOf(b *game.Board, pla game.Player, u game.Move) (src, dest int) {
	s0, s1 := u.StepAt(0), u.StepAt(1)
	if b.Owners[s0.K0()] != pla {
		return s0.K0(), s0.K1()
	}
	return s1.K0(), s1.K1()
}
