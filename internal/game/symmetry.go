package game

// Flipped returns the color-swapped position: ranks mirrored through PSymLoc,
// gold pieces become silver and the other way round, and the side to move is
// swapped too. Every tactic for pla on b holds for pla.Opp() on the flip.
func (b *Board) Flipped() *Board {
	return b.remap(func(k int) int { return PSymLoc[Silver][k] }, true)
}

// Mirrored returns the position reflected left to right.
func (b *Board) Mirrored() *Board {
	return b.remap(func(k int) int { return Y(k)*8 + 7 - X(k) }, false)
}

func (b *Board) remap(loc func(int) int, swap bool) *Board {
	c := NewBoard()
	for k := 0; k < 64; k++ {
		if b.Owners[k] == NoPlayer {
			continue
		}
		owner := b.Owners[k]
		if swap {
			owner = owner.Opp()
		}
		c.SetPiece(loc(k), owner, b.Pieces[k])
	}
	pla := b.Player
	if swap {
		pla = pla.Opp()
	}
	c.SetPlaStep(pla, b.Step)
	c.TurnNumber = b.TurnNumber
	c.RecalcFrozen()
	c.RefreshStartHash()
	return c
}

// FlipMove maps a move through Flipped.
func FlipMove(m Move) Move {
	return remapMove(m, func(k int) int { return PSymLoc[Silver][k] }, PSymDir[Silver])
}

// MirrorMove maps a move through Mirrored.
func MirrorMove(m Move) Move {
	return remapMove(m, func(k int) int { return Y(k)*8 + 7 - X(k) }, [4]int{DirS, DirE, DirW, DirN})
}

func remapMove(m Move, loc func(int) int, dirs [4]int) Move {
	out := ErrorMove
	for i := 0; i < 4; i++ {
		s := m.StepAt(i)
		if s == ErrStep {
			break
		}
		if s.IsPass() {
			out = out.SetStep(i, s)
			continue
		}
		out = out.SetStep(i, MakeStep(loc(s.K0()), dirs[s.Dir()]))
	}
	return out
}
