package game

// Board queries used throughout move generation and the tactical searches.
// Unless noted they read Owners/Pieces/PieceMaps directly and do not rely on
// FrozenMap, so they stay correct inside temporary mutations.

func (b *Board) IsEmptySq(k int) bool { return b.Owners[k] == NoPlayer }
func (b *Board) IsTrap(k int) bool    { return TrapIndex[k] >= 0 }

// IsFrozen reads FrozenMap.
func (b *Board) IsFrozen(k int) bool { return b.FrozenMap.Has(k) }
func (b *Board) IsThawed(k int) bool { return !b.FrozenMap.Has(k) }

// IsFrozenC computes frozen status of the piece on k from its neighbors.
func (b *Board) IsFrozenC(k int) bool {
	pla := b.Owners[k]
	if pla == NoPlayer {
		return false
	}
	nb := Radius[1][k]
	if nb&b.PieceMaps[pla][0] != 0 {
		return false
	}
	return nb&b.StrongerMap(pla, b.Pieces[k]) != 0
}

func (b *Board) IsThawedC(k int) bool { return !b.IsFrozenC(k) }

// IsDominated reports whether the piece on k touches a stronger enemy.
func (b *Board) IsDominated(k int) bool {
	pla := b.Owners[k]
	return Radius[1][k]&b.StrongerMap(pla, b.Pieces[k]) != 0
}

// IsDominatedByUF reports whether the piece on k touches a stronger unfrozen enemy.
func (b *Board) IsDominatedByUF(k int) bool {
	m := Radius[1][k] & b.StrongerMap(b.Owners[k], b.Pieces[k])
	for m != 0 {
		if b.IsThawedC(m.NextBit()) {
			return true
		}
	}
	return false
}

// IsDominating reports whether the piece on k touches a weaker enemy.
func (b *Board) IsDominating(k int) bool {
	return Radius[1][k]&b.WeakerMap(b.Owners[k], b.Pieces[k]) != 0
}

// GuardCount is the number of pla pieces next to k.
func (b *Board) GuardCount(pla Player, k int) int {
	return (Radius[1][k] & b.PieceMaps[pla][0]).Count()
}

func (b *Board) IsGuarded(pla Player, k int) bool  { return Radius[1][k]&b.PieceMaps[pla][0] != 0 }
func (b *Board) IsGuarded2(pla Player, k int) bool { return b.GuardCount(pla, k) >= 2 }
func (b *Board) IsGuarded3(pla Player, k int) bool { return b.GuardCount(pla, k) >= 3 }

// FindGuard returns a pla piece next to k in direction order, or ErrSquare.
func (b *Board) FindGuard(pla Player, k int) int {
	for dir := 0; dir < 4; dir++ {
		if j := Neighbor(k, dir); j != ErrSquare && b.Owners[j] == pla {
			return j
		}
	}
	return ErrSquare
}

func (b *Board) trapSafe(pla Player, k, n int) bool {
	ti := TrapIndex[k]
	return ti < 0 || b.TrapGuardCounts[pla][ti] >= n
}

// IsTrapSafe1 is true off traps or on a trap with a pla guard.
func (b *Board) IsTrapSafe1(pla Player, k int) bool { return b.trapSafe(pla, k, 1) }

// IsTrapSafe2 is true off traps or with two pla guards, i.e. still safe after
// one of the guards steps onto the trap.
func (b *Board) IsTrapSafe2(pla Player, k int) bool { return b.trapSafe(pla, k, 2) }
func (b *Board) IsTrapSafe3(pla Player, k int) bool { return b.trapSafe(pla, k, 3) }

// IsRabOkayS reports whether the piece on k may step south under the rabbit rule.
func (b *Board) IsRabOkayS(pla Player, k int) bool { return b.Pieces[k] != Rabbit || pla == Silver }

// IsRabOkayN reports whether the piece on k may step north under the rabbit rule.
func (b *Board) IsRabOkayN(pla Player, k int) bool { return b.Pieces[k] != Rabbit || pla == Gold }

// IsRabOkay reports whether the piece on k0 could walk to k1 under the rabbit rule.
func (b *Board) IsRabOkay(pla Player, k0, k1 int) bool {
	return b.IsRabOkayFrom(pla, k0, k0, k1)
}

// IsRabOkayFrom is IsRabOkay for the piece on ploc travelling from k0 to k1.
func (b *Board) IsRabOkayFrom(pla Player, ploc, k0, k1 int) bool {
	if b.Pieces[ploc] != Rabbit {
		return true
	}
	if pla == Silver {
		return Y(k1) <= Y(k0)
	}
	return Y(k1) >= Y(k0)
}

// canStepDir reports whether the piece on k may step in dir, ignoring freezing.
func (b *Board) canStepDir(k, dir int) bool {
	if b.Pieces[k] != Rabbit {
		return true
	}
	return RabbitValid(b.Owners[k], dir)
}

// IsOpen reports whether k has an empty neighbor.
func (b *Board) IsOpen(k int) bool { return Radius[1][k]&b.EmptyMap() != 0 }

// IsOpenIgn is IsOpen treating ign as occupied.
func (b *Board) IsOpenIgn(k, ign int) bool {
	m := Radius[1][k] & b.EmptyMap()
	if ign != ErrSquare {
		m.SetOff(ign)
	}
	return m != 0
}

func (b *Board) IsOpen2(k int) bool   { return b.CountOpen(k) >= 2 }
func (b *Board) CountOpen(k int) int  { return (Radius[1][k] & b.EmptyMap()).Count() }
func (b *Board) IsBlocked(k int) bool { return !b.IsOpen(k) }

// FindOpen returns an empty neighbor of k in direction order, or ErrSquare.
func (b *Board) FindOpen(k int) int { return b.FindOpenIgnoring(k, ErrSquare) }

// FindOpenIgnoring is FindOpen skipping ign.
func (b *Board) FindOpenIgnoring(k, ign int) int {
	for dir := 0; dir < 4; dir++ {
		j := Neighbor(k, dir)
		if j != ErrSquare && j != ign && b.Owners[j] == NoPlayer {
			return j
		}
	}
	return ErrSquare
}

// FindOpenToStep returns a neighbor the piece on k could step to, or ErrSquare.
func (b *Board) FindOpenToStep(k int) int {
	for dir := 0; dir < 4; dir++ {
		j := Neighbor(k, dir)
		if j != ErrSquare && b.Owners[j] == NoPlayer && b.canStepDir(k, dir) {
			return j
		}
	}
	return ErrSquare
}

// IsOpenToStep reports whether the piece on k has a square to step to,
// ignoring freezing and treating ign as occupied.
func (b *Board) IsOpenToStep(k, ign int) bool {
	for dir := 0; dir < 4; dir++ {
		j := Neighbor(k, dir)
		if j != ErrSquare && j != ign && b.Owners[j] == NoPlayer && b.canStepDir(k, dir) {
			return true
		}
	}
	return false
}

// IsOpenToPush reports whether the piece on k could push a weaker neighbor somewhere.
func (b *Board) IsOpenToPush(k int) bool {
	if b.Pieces[k] == Rabbit {
		return false
	}
	m := Radius[1][k] & b.WeakerMap(b.Owners[k], b.Pieces[k])
	for m != 0 {
		if b.IsOpen(m.NextBit()) {
			return true
		}
	}
	return false
}

// IsOpenToMove reports whether the piece on k can get away within two steps by
// stepping, pushing, or having a friend step aside. Trap safety is not checked.
func (b *Board) IsOpenToMove(k int) bool {
	if b.IsOpenToStep(k, ErrSquare) || b.IsOpenToPush(k) {
		return true
	}
	m := Radius[1][k] & b.PieceMaps[b.Owners[k]][0]
	for m != 0 {
		if b.IsOpenToStep(m.NextBit(), ErrSquare) {
			return true
		}
	}
	return false
}

// WouldRabbitBeDomAt reports whether a pla rabbit on k would touch a non-rabbit enemy.
func (b *Board) WouldRabbitBeDomAt(pla Player, k int) bool {
	return Radius[1][k]&b.StrongerMap(pla, Rabbit) != 0
}

// WouldRabbitBeUFAt reports whether a pla rabbit on k would be unfrozen.
func (b *Board) WouldRabbitBeUFAt(pla Player, k int) bool {
	nb := Radius[1][k]
	return nb&b.PieceMaps[pla][0] != 0 || nb&b.StrongerMap(pla, Rabbit) == 0
}

// WouldBeUF reports whether a pla piece as strong as the one on ploc would be
// unfrozen standing on k. Pieces on squares in ign are disregarded.
func (b *Board) WouldBeUF(pla Player, ploc, k int, ign Bitmap) bool {
	nb := Radius[1][k] &^ ign
	if nb&b.PieceMaps[pla][0] != 0 {
		return true
	}
	return nb&b.StrongerMap(pla, b.Pieces[ploc]) == 0
}

// WouldBeG reports whether k has a pla neighbor outside ign.
func (b *Board) WouldBeG(pla Player, k int, ign Bitmap) bool {
	return Radius[1][k]&^ign&b.PieceMaps[pla][0] != 0
}

// WouldBeDom reports whether a piece as strong as the one on ploc would touch a
// stronger enemy on k, disregarding pieces in ign.
func (b *Board) WouldBeDom(pla Player, ploc, k int, ign Bitmap) bool {
	return Radius[1][k]&^ign&b.StrongerMap(pla, b.Pieces[ploc]) != 0
}

// CanStepAndOccupy reports whether some unfrozen pla piece can step onto loc.
// Trap safety is not checked.
func (b *Board) CanStepAndOccupy(pla Player, loc int) bool {
	for dir := 0; dir < 4; dir++ {
		j := Neighbor(loc, dir)
		if j == ErrSquare || b.Owners[j] != pla || b.IsFrozenC(j) {
			continue
		}
		if b.canStepDir(j, OppDir(dir)) {
			return true
		}
	}
	return false
}

// SacLoc returns the trap square whose pla piece would die if the piece on loc
// stepped away, or ErrSquare.
func (b *Board) SacLoc(pla Player, loc int) int {
	kt := AdjacentTrap[loc]
	if kt == ErrSquare {
		return ErrSquare
	}
	if b.Owners[kt] == pla && b.TrapGuardCounts[pla][TrapIndex[kt]] <= 1 {
		return kt
	}
	return ErrSquare
}

// StrongestAdjacentPla returns the strongest pla piece next to loc, Empty if none.
func (b *Board) StrongestAdjacentPla(pla Player, loc int) Piece {
	best := Empty
	m := Radius[1][loc] & b.PieceMaps[pla][0]
	for m != 0 {
		if p := b.Pieces[m.NextBit()]; p > best {
			best = p
		}
	}
	return best
}
