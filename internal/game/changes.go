package game

// Change records where a piece that moved during a move ended up. Dest is
// ErrSquare when the piece was captured.
type Change struct {
	Src, Dest int
}

// Changes lists the net effect of m on b: one entry per piece that ended up
// somewhere else, captured pieces included. b is not modified.
func (b *Board) Changes(m Move) []Change {
	ch, _ := b.ChangesWithGuards(m)
	return ch
}

// ChangesWithGuards is Changes that also returns the trap guard counts after m.
func (b *Board) ChangesWithGuards(m Move) ([]Change, [2][4]int) {
	guards := b.TrapGuardCounts
	out := make([]Change, 0, 4)
	for i := 0; i < 4; i++ {
		s := m.StepAt(i)
		if !s.IsReal() {
			break
		}
		k0, k1 := s.K0(), s.K1()

		j := -1
		for c := range out {
			if out[c].Dest == k0 {
				out[c].Dest = k1
				j = c
				break
			}
		}
		if j < 0 {
			out = append(out, Change{Src: k0, Dest: k1})
			j = len(out) - 1
		}
		pla := b.Owners[out[j].Src]

		if kt := AdjacentTrap[k0]; kt != ErrSquare {
			ti := TrapIndex[kt]
			guards[pla][ti]--
			if guards[pla][ti] == 0 {
				out = captureChange(b, out, pla, kt)
			}
		}
		if ti := AdjacentTrapIndex[k1]; ti >= 0 {
			guards[pla][ti]++
		}
	}

	n := 0
	for _, c := range out {
		if c.Src != c.Dest {
			out[n] = c
			n++
		}
	}
	return out[:n], guards
}

// captureChange marks the pla piece standing on kt as captured.
func captureChange(b *Board, out []Change, pla Player, kt int) []Change {
	leftTrap := false
	for c := range out {
		if out[c].Dest == kt && b.Owners[out[c].Src] == pla {
			out[c].Dest = ErrSquare
			return out
		}
		if out[c].Src == kt {
			leftTrap = true
		}
	}
	if b.Owners[kt] == pla && !leftTrap {
		out = append(out, Change{Src: kt, Dest: ErrSquare})
	}
	return out
}

// ChangedSquares is the set of squares touched by the changes: sources and
// destinations.
func ChangedSquares(ch []Change) Bitmap {
	var m Bitmap
	for _, c := range ch {
		m.SetOn(c.Src)
		if c.Dest != ErrSquare {
			m.SetOn(c.Dest)
		}
	}
	return m
}
