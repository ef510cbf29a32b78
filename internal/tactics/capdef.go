package tactics

import "arimaa_go/internal/game"

// GenRunawayDefs lists short moves that walk the piece on ploc away: a plain
// step to a square that is not an unsafe trap, or, with two steps, clearing a
// friendly blocker aside or pushing a weaker enemy out of the way first. A
// frozen piece is thawed by a friend stepping next to it, then runs.
func GenRunawayDefs(b *game.Board, pla game.Player, ploc, numSteps int) []game.Move {
	if b.Owners[ploc] != pla {
		game.Violation("GenRunawayDefs: no %v piece on %s", pla, game.SquareName(ploc))
	}
	if b.IsThawed(ploc) {
		return genRunaway(b, pla, ploc, numSteps, game.ErrorMove, nil)
	}
	if numSteps < 2 {
		return nil
	}
	var out []game.Move
	for _, h := range game.GenStepsInto(b, pla, nil, game.Radius[1][ploc]) {
		s := h.StepAt(0)
		if s.K0() == ploc {
			continue
		}
		rec := b.TempStep(s.K0(), s.K1())
		if b.Owners[ploc] == pla && b.IsThawed(ploc) {
			out = genRunaway(b, pla, ploc, numSteps-1, h, out)
		}
		b.UndoTemp(rec)
	}
	return out
}

func genRunaway(b *game.Board, pla game.Player, ploc, numSteps int, prefix game.Move, out []game.Move) []game.Move {
	if numSteps < 1 {
		return out
	}
	rabbit := b.Pieces[ploc] == game.Rabbit
	for dir := 0; dir < 4; dir++ {
		loc := game.Neighbor(ploc, dir)
		if loc == game.ErrSquare || (rabbit && !game.RabbitValid(pla, dir)) {
			continue
		}
		run := game.MakeStep(ploc, dir)
		switch b.Owners[loc] {
		case game.NoPlayer:
			if b.IsTrapSafe2(pla, loc) {
				out = append(out, prefix.Append(run))
			}
		case pla:
			if numSteps < 2 || !b.IsTrapSafe2(pla, ploc) || !b.WouldBeUF(pla, ploc, ploc, game.BitmapOf(loc)) {
				continue
			}
			for d := 0; d < 4; d++ {
				j := game.Neighbor(loc, d)
				if j == game.ErrSquare || b.Owners[j] != game.NoPlayer {
					continue
				}
				if b.Pieces[loc] == game.Rabbit && !game.RabbitValid(pla, d) {
					continue
				}
				out = append(out, prefix.Concat(game.MoveOf(game.MakeStep(loc, d), run)))
			}
		default:
			if numSteps < 2 || b.Pieces[ploc] <= b.Pieces[loc] {
				continue
			}
			for d := 0; d < 4; d++ {
				j := game.Neighbor(loc, d)
				if j == game.ErrSquare || b.Owners[j] != game.NoPlayer {
					continue
				}
				out = append(out, prefix.Concat(game.MoveOf(game.MakeStep(loc, d), run)))
			}
		}
	}
	return out
}

// GenTrapDefs lists the moves of up to numSteps steps, one per resulting
// position, after which pla loses no piece and the opponent has no capture at
// kt within four steps. Only moves whose every step works near the trap are
// tried.
func GenTrapDefs(b *game.Board, pla game.Player, kt, numSteps int) []game.Move {
	if game.TrapIndex[kt] < 0 {
		game.Violation("GenTrapDefs: %d is not a trap", kt)
	}
	opp := pla.Opp()
	count := b.PieceCounts[pla][0]
	seen := map[uint64]bool{b.PosCurrentHash: true}
	var out []game.Move
	var rec func(prefix game.Move, left int)
	rec = func(prefix game.Move, left int) {
		rel := game.Disk[left+1][kt]
		var units []game.Move
		if left >= 2 {
			units = game.GenPushPullsInvolving(b, pla, units, rel)
		}
		units = game.GenStepsInvolving(b, pla, units, rel)
		for _, u := range units {
			recs := b.TempMove(u, nil)
			if !seen[b.PosCurrentHash] {
				seen[b.PosCurrentHash] = true
				m := prefix.Concat(u)
				if b.PieceCounts[pla][0] == count && !CanCapsAt(b, opp, MaxCapSteps, 2, kt) {
					out = append(out, m)
				} else if left-u.NumSteps() > 0 {
					rec(m, left-u.NumSteps())
				}
			}
			b.UndoTempMove(recs)
		}
	}
	rec(game.ErrorMove, numSteps)
	return out
}

// ShortestGoodTrapDef returns the length of the shortest move among moves that
// defends kt without loss, allows the opponent no goal, and exposes no piece
// outside currentCapMap to capture at another trap. It returns 5 when none
// does.
func ShortestGoodTrapDef(b *game.Board, pla game.Player, kt int, moves []game.Move, currentCapMap game.Bitmap) int {
	opp := pla.Opp()
	shortest := 5
	for _, m := range moves {
		ns := m.NumSteps()
		if ns >= shortest {
			continue
		}
		c := *b
		c.MakeMove(m)
		if c.PieceCounts[pla][0] < b.PieceCounts[pla][0] {
			continue
		}
		if CanCapsAt(&c, opp, MaxCapSteps, 2, kt) || GoalDist(&c, opp, MaxGoalSteps) < NoGoal {
			continue
		}
		exposed := false
		for _, other := range game.TrapLocs {
			if other == kt {
				continue
			}
			if _, capMap, _ := GenCapsFull(&c, opp, MaxCapSteps, 2, false, other); capMap&^currentCapMap != 0 {
				exposed = true
				break
			}
		}
		if !exposed {
			shortest = ns
		}
	}
	return shortest
}
