package game

import "lukechampine.com/frand"

// army lists one side's pieces, strongest first.
func army() []Piece {
	out := make([]Piece, 0, 16)
	for p := Elephant; p >= Rabbit; p-- {
		for i := 0; i < MaxPieceCounts[p]; i++ {
			out = append(out, p)
		}
	}
	return out
}

// RandomSetup returns a start position with both armies shuffled on their
// home ranks, gold to move.
func RandomSetup(rng *frand.RNG) *Board {
	b := NewBoard()
	for _, pla := range []Player{Gold, Silver} {
		pieces := army()
		rng.Shuffle(len(pieces), func(i, j int) { pieces[i], pieces[j] = pieces[j], pieces[i] })
		base := 0
		if pla == Silver {
			base = 48
		}
		for i, p := range pieces {
			b.SetPiece(base+i, pla, p)
		}
	}
	b.RecalcFrozen()
	b.RefreshStartHash()
	return b
}

// RandomSparse scatters nGold and nSilver pieces drawn from each army over the
// board. Traps stay empty and no rabbit starts on its goal row. The side to
// move is random.
func RandomSparse(rng *frand.RNG, nGold, nSilver int) *Board {
	b := NewBoard()
	free := make([]int, 0, 60)
	for k := 0; k < 64; k++ {
		if TrapIndex[k] < 0 {
			free = append(free, k)
		}
	}
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	for _, side := range []struct {
		pla Player
		n   int
	}{{Gold, nGold}, {Silver, nSilver}} {
		pieces := army()
		rng.Shuffle(len(pieces), func(i, j int) { pieces[i], pieces[j] = pieces[j], pieces[i] })
		if side.n > len(pieces) {
			side.n = len(pieces)
		}
		for _, p := range pieces[:side.n] {
			for i, k := range free {
				if p == Rabbit && IsGoal[side.pla][k] {
					continue
				}
				b.SetPiece(k, side.pla, p)
				free = append(free[:i], free[i+1:]...)
				break
			}
		}
	}
	b.SetPlaStep(Player(rng.Intn(2)), 0)
	b.RecalcFrozen()
	b.RefreshStartHash()
	return b
}

// RandomPlayout plays up to turns random turns from b and returns the moves
// played. It stops early once someone has won.
func RandomPlayout(b *Board, rng *frand.RNG, turns int) []Move {
	var played []Move
	var units []Move
	for t := 0; t < turns && b.GetWinner() == NoPlayer; t++ {
		m := ErrorMove
		for {
			units = GenUnits(b, b.Player, 4-b.Step, units[:0])
			if len(units) == 0 {
				b.MakeMove(PassMove)
				m = m.Append(PassStep)
				break
			}
			u := units[rng.Intn(len(units))]
			m = m.Concat(u)
			b.MakeMove(u)
			if b.Step == 0 {
				break
			}
			if b.GetWinner() != NoPlayer || rng.Intn(4) == 0 {
				b.MakeMove(PassMove)
				m = m.Append(PassStep)
				break
			}
		}
		played = append(played, m)
	}
	return played
}

// RandomBoards plays random games from shuffled setups and from sparse
// scatterings and returns the resulting positions, all at step 0.
func RandomBoards(rng *frand.RNG, n int) []*Board {
	out := make([]*Board, 0, n)
	for i := 0; i < n; i++ {
		var b *Board
		if i%2 == 0 {
			b = RandomSetup(rng)
		} else {
			b = RandomSparse(rng, 4+rng.Intn(12), 4+rng.Intn(12))
		}
		RandomPlayout(b, rng, rng.Intn(30))
		out = append(out, b)
	}
	return out
}
