package tactics

import "arimaa_go/internal/game"

func isRabbit(p game.Piece) bool { return p == game.Rabbit }

// CanElim reports whether pla can capture every enemy rabbit within steps
// steps. An opponent already without rabbits counts as eliminated. Only one or
// two remaining rabbits are searched; with three or more it reports false.
// Like the capture tree, a budget over MaxCapSteps finds nothing.
func CanElim(b *game.Board, pla game.Player, steps int) bool {
	opp := pla.Opp()
	if b.PieceCounts[opp][game.Rabbit] == 0 {
		return true
	}
	if steps > MaxCapSteps {
		return false
	}
	switch b.PieceCounts[opp][game.Rabbit] {
	case 1:
		return canCapsTarget(b, pla, steps, isRabbit)
	case 2:
		return canElimTwo(b, pla, steps)
	}
	return false
}

// canElimTwo tries every rabbit capture as the first one and looks for a
// second capture with the steps left over.
// 两只兔子：先吃一只，剩下的步数再吃另一只
func canElimTwo(b *game.Board, pla game.Player, steps int) bool {
	opp := pla.Opp()
	var recs []game.TempRecord
	for d := 2; d <= steps; d++ {
		for _, kt := range game.TrapLocs {
			for _, sm := range genCapsTargetExact(b, pla, d, kt, isRabbit) {
				recs = b.TempMove(sm.Move, recs[:0])
				left := b.PieceCounts[opp][game.Rabbit]
				ok := left == 0 || (steps-d >= 2 && canCapsTarget(b, pla, steps-d, isRabbit))
				b.UndoTempMove(recs)
				if left == 2 {
					game.Violation("canElim: rabbit capture %s left both rabbits", sm.Move)
				}
				if ok {
					return true
				}
			}
		}
	}
	return false
}
