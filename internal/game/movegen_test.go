package game

import "testing"

func moveSet(ms []Move) map[Move]bool {
	set := make(map[Move]bool, len(ms))
	for _, m := range ms {
		set[m] = true
	}
	return set
}

func TestGenStepsMatchesLegality(t *testing.T) {
	rng := NewSeededRand(t.Name())
	for _, b := range RandomBoards(rng, 80) {
		for _, pla := range []Player{Silver, Gold} {
			c := *b
			c.SetPlaStep(pla, 0)
			got := moveSet(GenSteps(&c, pla, nil))
			want := 0
			for k := 0; k < 64; k++ {
				if c.Owners[k] != pla {
					continue
				}
				for dir := 0; dir < 4; dir++ {
					if !HasNeighbor(k, dir) {
						continue
					}
					s := MakeStep(k, dir)
					legal := c.IsStepLegal(s)
					if legal {
						want++
					}
					if got[MoveOf(s)] != legal {
						t.Fatalf("step %s legal=%v generated=%v\n%s", s, legal, got[MoveOf(s)], c.String())
					}
				}
			}
			if want != len(got) {
				t.Fatalf("generated %d steps, %d legal", len(got), want)
			}
			if CanSteps(&c, pla) != (want > 0) {
				t.Fatalf("CanSteps disagrees with GenSteps")
			}
		}
	}
}

func hasCapture(b *Board, m Move) bool {
	for _, ch := range b.Changes(m) {
		if ch.Dest == ErrSquare {
			return true
		}
	}
	return false
}

func TestGenPushPullsMatchesLegality(t *testing.T) {
	rng := NewSeededRand(t.Name())
	for _, b := range RandomBoards(rng, 80) {
		for _, pla := range []Player{Silver, Gold} {
			c := *b
			c.SetPlaStep(pla, 0)
			gen := GenPushPulls(&c, pla, nil)
			got := moveSet(gen)
			if len(got) != len(gen) {
				t.Fatalf("duplicate push/pull generated")
			}
			for _, m := range gen {
				d := c
				if !d.MakeMoveLegalUpTo(m, 2) {
					t.Fatalf("generated %s is not legal\n%s", c.MoveString(m), c.String())
				}
			}

			// every legal two-step move that moves one enemy piece is generated,
			// save those whose first step captures something
			for k0 := 0; k0 < 64; k0++ {
				if c.Owners[k0] == NoPlayer {
					continue
				}
				for d0 := 0; d0 < 4; d0++ {
					if !HasNeighbor(k0, d0) {
						continue
					}
					s0 := MakeStep(k0, d0)
					for k1 := 0; k1 < 64; k1++ {
						if k1 == k0 || c.Owners[k1] == NoPlayer || (c.Owners[k0] == pla) == (c.Owners[k1] == pla) {
							continue
						}
						for d1 := 0; d1 < 4; d1++ {
							if !HasNeighbor(k1, d1) {
								continue
							}
							m := MoveOf(s0, MakeStep(k1, d1))
							d := c
							if !d.MakeMoveLegalUpTo(m, 2) || hasCapture(&c, MoveOf(s0)) {
								continue
							}
							if !got[m] {
								t.Fatalf("legal %s not generated\n%s", c.MoveString(m), c.String())
							}
						}
					}
				}
			}
			if CanPushPulls(&c, pla) != (len(gen) > 0) {
				t.Fatalf("CanPushPulls=%v with %d generated\n%s", CanPushPulls(&c, pla), len(gen), c.String())
			}
		}
	}
}

func TestRestrictedGenerators(t *testing.T) {
	rng := NewSeededRand(t.Name())
	for _, b := range RandomBoards(rng, 60) {
		pla := b.Player
		rel := Disk[2][rng.Intn(64)]
		steps := GenSteps(b, pla, nil)
		pps := GenPushPulls(b, pla, nil)

		into := moveSet(GenStepsInto(b, pla, nil, rel))
		involving := moveSet(GenStepsInvolving(b, pla, nil, rel))
		for _, m := range steps {
			s := m.StepAt(0)
			if into[m] != rel.Has(s.K1()) {
				t.Fatalf("GenStepsInto wrong for %s", s)
			}
			if involving[m] != (rel.Has(s.K0()) || rel.Has(s.K1())) {
				t.Fatalf("GenStepsInvolving wrong for %s", s)
			}
		}
		if len(into) > len(steps) || len(involving) > len(steps) {
			t.Fatalf("restricted generator produced extra steps")
		}

		ppInv := moveSet(GenPushPullsInvolving(b, pla, nil, rel))
		pushInto := moveSet(GenPushesInto(b, pla, nil, rel))
		for _, m := range pps {
			s0, s1 := m.StepAt(0), m.StepAt(1)
			touches := rel.Has(s0.K0()) || rel.Has(s0.K1()) || rel.Has(s1.K0())
			if ppInv[m] != touches {
				t.Fatalf("GenPushPullsInvolving wrong for %s", m)
			}
			isPush := b.Owners[s0.K0()] != pla
			if pushInto[m] != (isPush && rel.Has(s0.K1())) {
				t.Fatalf("GenPushesInto wrong for %s", b.MoveString(m))
			}
		}

		all := moveSet(steps)
		for _, m := range GenStepsIntoOutTSWF(b, pla, nil, rel) {
			if !all[m] {
				t.Fatalf("GenStepsIntoOutTSWF produced illegal %s", m)
			}
		}
	}
}

func TestNoMovesOnBlockedRabbit(t *testing.T) {
	b := MustParseBoard(`
		........
		........
		..x..x..
		........
		........
		..x..x..
		rD......
		R.......
		silver`)
	if !NoMoves(b, Silver) {
		t.Fatalf("frozen silver rabbit should have no moves\n%s", b)
	}
	if NoMoves(b, Gold) {
		t.Fatalf("gold has moves")
	}
	if got := b.GetWinner(); got != Gold {
		t.Fatalf("winner %v want gold", got)
	}
}

func TestGenFullMovesDistinct(t *testing.T) {
	rng := NewSeededRand(t.Name())
	for _, b := range RandomBoards(rng, 6) {
		before := *b
		moves := GenFullMoves(b, b.Player, 3)
		if *b != before {
			t.Fatalf("GenFullMoves changed the board")
		}
		seen := map[uint64]bool{b.PosCurrentHash: true}
		for _, m := range moves {
			c := *b
			if !c.MakeMoveLegal(m) {
				t.Fatalf("full move %s not legal\n%s", b.MoveString(m), b)
			}
			if seen[c.PosCurrentHash] {
				t.Fatalf("two moves reach the same position: %s", b.MoveString(m))
			}
			seen[c.PosCurrentHash] = true
		}
	}
}

func TestGenLocalComboAndChainMovesAreLegal(t *testing.T) {
	rng := NewSeededRand(t.Name())
	for _, b := range RandomBoards(rng, 20) {
		pla := b.Player
		for _, m := range GenSimpleChainMoves(b, pla, 4, nil, BmpAll) {
			c := *b
			if !c.MakeMoveLegal(m) {
				t.Fatalf("chain move %s not legal\n%s", b.MoveString(m), b)
			}
		}
		for _, m := range GenLocalComboMoves(b, pla, 3, nil) {
			c := *b
			if !c.MakeMoveLegal(m) {
				t.Fatalf("combo move %s not legal\n%s", b.MoveString(m), b)
			}
		}
	}
}
