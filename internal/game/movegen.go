package game

// Move generation. Generators append to dst and return it, so callers can
// reuse one buffer across calls.

// pushPullCandidates returns the enemy pieces that can be pushed and the
// pla pieces that can pull, restricted to squares touching rel.
func pushPullCandidates(b *Board, pla Player, rel Bitmap) (pushMap, pullMap Bitmap) {
	opp := pla.Opp()
	// 兔子推不动也拉不动任何子，大象谁也推不动
	movers := b.PieceMaps[pla][0] &^ b.FrozenMap &^ b.PieceMaps[pla][Rabbit]
	victims := b.PieceMaps[opp][0] &^ b.PieceMaps[opp][Elephant]
	nearEmpty := b.EmptyMap().Adj()
	near := rel | rel.Adj()

	pushMap = movers.Adj() & victims & nearEmpty & near
	pullMap = victims.Adj() & movers & nearEmpty & near
	return pushMap, pullMap
}

func involves(rel Bitmap, a, b, c int) bool {
	return rel.Has(a) || rel.Has(b) || rel.Has(c)
}

// GenPushPulls appends every push and pull available to pla.
func GenPushPulls(b *Board, pla Player, dst []Move) []Move {
	return GenPushPullsInvolving(b, pla, dst, BmpAll)
}

// GenPushPullsInvolving appends the pushes and pulls that touch rel with one
// of their three squares.
func GenPushPullsInvolving(b *Board, pla Player, dst []Move, rel Bitmap) []Move {
	pushMap, pullMap := pushPullCandidates(b, pla, rel)
	for pushMap != 0 {
		k := pushMap.NextBit()
		for d := 0; d < 4; d++ {
			src := Neighbor(k, d)
			if src == ErrSquare || b.Owners[src] != pla || b.Pieces[src] <= b.Pieces[k] || b.IsFrozen(src) {
				continue
			}
			for d2 := 0; d2 < 4; d2++ {
				dest := Neighbor(k, d2)
				if dest == ErrSquare || b.Owners[dest] != NoPlayer || !involves(rel, k, src, dest) {
					continue
				}
				dst = append(dst, MoveOf(MakeStep(k, d2), MakeStep(src, OppDir(d))))
			}
		}
	}
	for pullMap != 0 {
		k := pullMap.NextBit()
		for d := 0; d < 4; d++ {
			victim := Neighbor(k, d)
			if victim == ErrSquare || b.Owners[victim] != pla.Opp() || b.Pieces[victim] >= b.Pieces[k] {
				continue
			}
			for d2 := 0; d2 < 4; d2++ {
				dest := Neighbor(k, d2)
				if dest == ErrSquare || b.Owners[dest] != NoPlayer || !involves(rel, k, victim, dest) {
					continue
				}
				dst = append(dst, MoveOf(MakeStep(k, d2), MakeStep(victim, OppDir(d))))
			}
		}
	}
	return dst
}

// GenPushesInto appends the pushes whose pushed piece lands in rel.
func GenPushesInto(b *Board, pla Player, dst []Move, rel Bitmap) []Move {
	pushMap, _ := pushPullCandidates(b, pla, (rel & b.EmptyMap()).Adj())
	for pushMap != 0 {
		k := pushMap.NextBit()
		for d := 0; d < 4; d++ {
			src := Neighbor(k, d)
			if src == ErrSquare || b.Owners[src] != pla || b.Pieces[src] <= b.Pieces[k] || b.IsFrozen(src) {
				continue
			}
			for d2 := 0; d2 < 4; d2++ {
				dest := Neighbor(k, d2)
				if dest == ErrSquare || b.Owners[dest] != NoPlayer || !rel.Has(dest) {
					continue
				}
				dst = append(dst, MoveOf(MakeStep(k, d2), MakeStep(src, OppDir(d))))
			}
		}
	}
	return dst
}

// CanPushPulls reports whether pla has any push or pull.
func CanPushPulls(b *Board, pla Player) bool {
	pushMap, pullMap := pushPullCandidates(b, pla, BmpAll)
	empty := b.EmptyMap()
	for pushMap != 0 {
		k := pushMap.NextBit()
		if Radius[1][k]&empty == 0 {
			continue
		}
		pushers := Radius[1][k] & b.PieceMaps[pla][0] &^ b.FrozenMap
		for pushers != 0 {
			if b.Pieces[pushers.NextBit()] > b.Pieces[k] {
				return true
			}
		}
	}
	for pullMap != 0 {
		k := pullMap.NextBit()
		if Radius[1][k]&b.WeakerMap(pla, b.Pieces[k]) != 0 {
			return true
		}
	}
	return false
}

func stepMovers(b *Board, pla Player, dir int) Bitmap {
	m := b.PieceMaps[pla][0] &^ b.FrozenMap
	if dir == Backward(pla) {
		// 兔子不能后退
		m &^= b.PieceMaps[pla][Rabbit]
	}
	return m
}

// GenSteps appends every single step available to pla.
func GenSteps(b *Board, pla Player, dst []Move) []Move {
	return GenStepsInto(b, pla, dst, BmpAll)
}

// GenStepsInto appends the steps ending in rel.
func GenStepsInto(b *Board, pla Player, dst []Move, rel Bitmap) []Move {
	empRel := b.EmptyMap() & rel
	for dir := 0; dir < 4; dir++ {
		m := stepMovers(b, pla, dir).Shift(dir) & empRel
		for m != 0 {
			k1 := m.NextBit()
			dst = append(dst, MoveOf(MakeStep(k1-DirOffset[dir], dir)))
		}
	}
	return dst
}

// GenStepsInvolving appends the steps starting or ending in rel.
func GenStepsInvolving(b *Board, pla Player, dst []Move, rel Bitmap) []Move {
	empty := b.EmptyMap()
	for dir := 0; dir < 4; dir++ {
		m := stepMovers(b, pla, dir).Shift(dir) & empty & (rel | rel.Shift(dir))
		for m != 0 {
			k1 := m.NextBit()
			dst = append(dst, MoveOf(MakeStep(k1-DirOffset[dir], dir)))
		}
	}
	return dst
}

// GenStepsIntoOutTSWF appends the steps into rel, plus steps out of rel by
// pieces that are in danger where they stand: on an unguarded trap, or
// dominated without two friendly neighbors.
func GenStepsIntoOutTSWF(b *Board, pla Player, dst []Move, rel Bitmap) []Move {
	movers := b.PieceMaps[pla][0] &^ b.FrozenMap
	inMap := movers & rel
	outMap := movers & rel.Adj() &^ inMap
	for inMap != 0 {
		loc := inMap.NextBit()
		unsafe := !b.IsTrapSafe1(pla, loc) || (b.IsDominated(loc) && !b.IsGuarded2(pla, loc))
		for dir := 0; dir < 4; dir++ {
			j := Neighbor(loc, dir)
			if j == ErrSquare || b.Owners[j] != NoPlayer || !b.canStepDir(loc, dir) {
				continue
			}
			if rel.Has(j) || unsafe {
				dst = append(dst, MoveOf(MakeStep(loc, dir)))
			}
		}
	}
	for outMap != 0 {
		loc := outMap.NextBit()
		for dir := 0; dir < 4; dir++ {
			j := Neighbor(loc, dir)
			if j != ErrSquare && b.Owners[j] == NoPlayer && rel.Has(j) && b.canStepDir(loc, dir) {
				dst = append(dst, MoveOf(MakeStep(loc, dir)))
			}
		}
	}
	return dst
}

// CanSteps reports whether pla has any single step.
func CanSteps(b *Board, pla Player) bool {
	empty := b.EmptyMap()
	for dir := 0; dir < 4; dir++ {
		if stepMovers(b, pla, dir).Shift(dir)&empty != 0 {
			return true
		}
	}
	return false
}

// NoMoves reports whether pla can neither step nor push or pull.
func NoMoves(b *Board, pla Player) bool {
	return !CanSteps(b, pla) && !CanPushPulls(b, pla)
}

// GenLocalComboMoves appends sequences of steps and push/pulls of up to
// numSteps steps where each unit touches the squares changed by the previous one.
func GenLocalComboMoves(b *Board, pla Player, numSteps int, dst []Move) []Move {
	return genLocalCombo(b, pla, numSteps, dst, ErrorMove, BmpAll)
}

func genLocalCombo(b *Board, pla Player, numSteps int, dst []Move, prefix Move, rel Bitmap) []Move {
	if numSteps <= 0 {
		return dst
	}
	var units []Move
	if numSteps > 1 {
		units = GenPushPullsInvolving(b, pla, units, rel)
	}
	units = GenStepsInvolving(b, pla, units, rel)
	for _, u := range units {
		dst = append(dst, prefix.Concat(u))
	}
	if numSteps <= 1 {
		return dst
	}
	for _, u := range units {
		ns := u.NumSteps()
		if ns >= numSteps {
			continue
		}
		next := *b
		next.MakeMove(u)
		affected := (next.PieceMaps[Silver][0] ^ b.PieceMaps[Silver][0]) | (next.PieceMaps[Gold][0] ^ b.PieceMaps[Gold][0])
		affected |= affected.Adj()
		affected |= (affected & BmpTraps).Adj()
		dst = genLocalCombo(&next, pla, numSteps-ns, dst, prefix.Concat(u), affected)
	}
	return dst
}

// GenSimpleChainMoves appends moves of up to numSteps steps that all move
// one piece, walking or pushing/pulling its way along.
func GenSimpleChainMoves(b *Board, pla Player, numSteps int, dst []Move, relPla Bitmap) []Move {
	m := b.PieceMaps[pla][0] &^ b.FrozenMap & relPla
	for m != 0 {
		dst = genChain(b, pla, m.NextBit(), numSteps, dst, ErrorMove, ErrSquare)
	}
	return dst
}

func genChain(b *Board, pla Player, ploc, numSteps int, dst []Move, prefix Move, prohibited int) []Move {
	if numSteps <= 0 || b.Owners[ploc] != pla || b.IsFrozenC(ploc) {
		return dst
	}
	opp := pla.Opp()

	for dir := 0; dir < 4; dir++ {
		j := Neighbor(ploc, dir)
		if j != ErrSquare && j != prohibited && b.Owners[j] == NoPlayer && b.canStepDir(ploc, dir) {
			dst = append(dst, prefix.Append(MakeStep(ploc, dir)))
		}
	}

	type unit struct {
		m          Move
		k0, k1, k2 int
		next       int
	}
	var pps []unit
	if numSteps >= 2 && b.Pieces[ploc] > Rabbit {
		for d := 0; d < 4; d++ {
			o := Neighbor(ploc, d)
			if o == ErrSquare || b.Owners[o] != opp || b.Pieces[o] >= b.Pieces[ploc] {
				continue
			}
			// pull: ploc steps away, o follows
			for d2 := 0; d2 < 4; d2++ {
				e := Neighbor(ploc, d2)
				if e != ErrSquare && b.Owners[e] == NoPlayer {
					pps = append(pps, unit{MoveOf(MakeStep(ploc, d2), MakeStep(o, OppDir(d))), o, ploc, e, e})
				}
			}
			// push: o is moved away, ploc follows
			for d2 := 0; d2 < 4; d2++ {
				e := Neighbor(o, d2)
				if e != ErrSquare && b.Owners[e] == NoPlayer {
					pps = append(pps, unit{MoveOf(MakeStep(o, d2), MakeStep(ploc, d)), ploc, o, e, o})
				}
			}
		}
		for _, u := range pps {
			dst = append(dst, prefix.Concat(u.m))
		}
	}

	if numSteps >= 2 {
		newProhib := ploc
		if kt := AdjacentTrap[ploc]; kt != ErrSquare && b.TrapGuardCounts[pla][TrapIndex[kt]] <= 1 {
			newProhib = ErrSquare
		}
		for dir := 0; dir < 4; dir++ {
			j := Neighbor(ploc, dir)
			if j == ErrSquare || j == prohibited || b.Owners[j] != NoPlayer || !b.canStepDir(ploc, dir) {
				continue
			}
			rec := b.TempStep(ploc, j)
			dst = genChain(b, pla, j, numSteps-1, dst, prefix.Append(MakeStep(ploc, dir)), newProhib)
			b.UndoTemp(rec)
		}
	}

	if numSteps >= 3 {
		for _, u := range pps {
			recs := b.TempPP(u.k0, u.k1, u.k2)
			dst = genChain(b, pla, u.next, numSteps-2, dst, prefix.Concat(u.m), ErrSquare)
			b.UndoTempPP(recs)
		}
	}
	return dst
}

// GenUnits appends every step and, with at least two steps left, every
// push and pull: the building blocks of a turn.
func GenUnits(b *Board, pla Player, stepsLeft int, dst []Move) []Move {
	if stepsLeft >= 2 {
		dst = GenPushPulls(b, pla, dst)
	}
	if stepsLeft >= 1 {
		dst = GenSteps(b, pla, dst)
	}
	return dst
}

// GenFullMoves enumerates every position pla can reach with up to maxSteps
// steps and returns one move per distinct resulting position, shortest first
// found. The starting position itself is not included.
func GenFullMoves(b *Board, pla Player, maxSteps int) []Move {
	seen := map[uint64]int{b.PosCurrentHash: 0}
	var out []Move
	var rec func(prefix Move, used int)
	rec = func(prefix Move, used int) {
		units := GenUnits(b, pla, maxSteps-used, nil)
		for _, u := range units {
			ns := u.NumSteps()
			recs := b.TempMove(u, nil)
			h := b.PosCurrentHash
			n := used + ns
			if prev, ok := seen[h]; !ok || prev > n {
				if !ok {
					out = append(out, prefix.Concat(u))
				}
				seen[h] = n
				if n < maxSteps {
					rec(prefix.Concat(u), n)
				}
			}
			b.UndoTempMove(recs)
		}
	}
	rec(ErrorMove, 0)
	return out
}
