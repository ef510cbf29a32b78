package tactics

import "arimaa_go/internal/game"

// The Brute* functions answer the same questions as the trees by trying every
// distinct position reachable in up to steps steps. They are exponential and
// only meant for checking the trees on small positions.

// BruteCaps reports whether some move of up to steps steps captures an enemy piece.
func BruteCaps(b *game.Board, pla game.Player, steps int) bool {
	opp := pla.Opp()
	return bruteAny(b, pla, steps, func(c *game.Board) bool {
		return c.PieceCounts[opp][0] < b.PieceCounts[opp][0]
	})
}

// BruteGoal returns the fewest steps that get a pla rabbit to goal, or NoGoal.
func BruteGoal(b *game.Board, pla game.Player, steps int) int {
	if b.IsGoal(pla) {
		return 0
	}
	for d := 1; d <= steps; d++ {
		if bruteAny(b, pla, d, func(c *game.Board) bool { return c.IsGoal(pla) }) {
			return d
		}
	}
	return NoGoal
}

// BruteElim reports whether some move of up to steps steps leaves the
// opponent without rabbits.
func BruteElim(b *game.Board, pla game.Player, steps int) bool {
	opp := pla.Opp()
	if b.PieceCounts[opp][game.Rabbit] == 0 {
		return true
	}
	return bruteAny(b, pla, steps, func(c *game.Board) bool {
		return c.PieceCounts[opp][game.Rabbit] == 0
	})
}

func bruteAny(b *game.Board, pla game.Player, steps int, ok func(*game.Board) bool) bool {
	for _, m := range game.GenFullMoves(b, pla, steps) {
		c := *b
		c.MakeMove(m)
		if ok(&c) {
			return true
		}
	}
	return false
}
