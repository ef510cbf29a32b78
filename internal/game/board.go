// File game/board.go
package game

// Board is the full game state. It is a plain value: copying it with *b gives
// an independent position, which is how searches branch when undo is not wanted.
type Board struct {
	Owners [64]Player // NoPlayer on empty squares
	Pieces [64]Piece  // Empty on empty squares

	// PieceMaps[pla][0] is the union of pla's pieces.
	PieceMaps   [2][NumPieceTypes]Bitmap
	PieceCounts [2][NumPieceTypes]int
	FrozenMap   Bitmap

	// TrapGuardCounts[pla][trapIndex] is the number of pla pieces next to the trap.
	TrapGuardCounts [2][4]int

	Player     Player
	Step       int // 0-3 within the turn
	TurnNumber int

	PosStartHash   uint64 // pieces at the start of the turn
	PosCurrentHash uint64 // pieces only
	SitCurrentHash uint64 // pieces, side and step

	// GoalTreeMove holds the move found by the last goal search, ErrorMove if none.
	GoalTreeMove Move
}

// NewBoard returns an empty board with gold to move.
func NewBoard() *Board {
	b := &Board{}
	b.Clear()
	return b
}

// Clear empties the board and resets turn state to gold, step 0, turn 0.
func (b *Board) Clear() {
	*b = Board{}
	for k := 0; k < 64; k++ {
		b.Owners[k] = NoPlayer
	}
	b.Player = Gold
	b.SitCurrentHash = HashPla[Gold] ^ HashStep[0]
	b.GoalTreeMove = ErrorMove
}

// Clone returns an independent copy.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// SetPiece puts piece of owner on k, replacing whatever was there. Pass
// NoPlayer and Empty to clear the square. Invalid input is a contract violation.
func (b *Board) SetPiece(k int, owner Player, piece Piece) {
	if k < 0 || k >= 64 {
		Violation("SetPiece: square %d out of range", k)
	}
	if piece < Empty || piece >= NumPieceTypes {
		Violation("SetPiece: invalid piece %d", piece)
	}
	if (owner == NoPlayer) != (piece == Empty) || owner < Silver || owner > NoPlayer {
		Violation("SetPiece: owner %d does not match piece %d at %s", owner, piece, SquareName(k))
	}
	if b.Owners[k] != NoPlayer {
		b.remove(k)
	}
	if owner != NoPlayer {
		b.place(k, owner, piece)
	}
	b.refreshFrozen(Disk[1][k])
}

// SetPlaStep sets the side to move and the step within the turn.
func (b *Board) SetPlaStep(pla Player, step int) {
	if pla != Silver && pla != Gold {
		Violation("SetPlaStep: invalid player %d", pla)
	}
	if step < 0 || step > 3 {
		Violation("SetPlaStep: invalid step %d", step)
	}
	b.SitCurrentHash ^= HashPla[b.Player] ^ HashStep[b.Step] ^ HashPla[pla] ^ HashStep[step]
	b.Player = pla
	b.Step = step
}

// RefreshStartHash marks the current position as the start of the turn.
func (b *Board) RefreshStartHash() { b.PosStartHash = b.PosCurrentHash }

// place, remove and move keep maps, counts, hashes and guard counts in sync.
// They leave FrozenMap to the caller.

func (b *Board) place(k int, owner Player, piece Piece) {
	b.Owners[k] = owner
	b.Pieces[k] = piece
	bit := Bitmap(1) << uint(k)
	b.PieceMaps[owner][piece] |= bit
	b.PieceMaps[owner][0] |= bit
	b.PieceCounts[owner][piece]++
	b.PieceCounts[owner][0]++
	h := HashPiece[owner][piece][k]
	b.PosCurrentHash ^= h
	b.SitCurrentHash ^= h
	if ti := AdjacentTrapIndex[k]; ti >= 0 {
		b.TrapGuardCounts[owner][ti]++
	}
}

func (b *Board) remove(k int) {
	owner, piece := b.Owners[k], b.Pieces[k]
	bit := Bitmap(1) << uint(k)
	b.PieceMaps[owner][piece] &^= bit
	b.PieceMaps[owner][0] &^= bit
	b.PieceCounts[owner][piece]--
	b.PieceCounts[owner][0]--
	h := HashPiece[owner][piece][k]
	b.PosCurrentHash ^= h
	b.SitCurrentHash ^= h
	if ti := AdjacentTrapIndex[k]; ti >= 0 {
		b.TrapGuardCounts[owner][ti]--
	}
	b.Owners[k] = NoPlayer
	b.Pieces[k] = Empty
}

func (b *Board) move(k0, k1 int) {
	owner, piece := b.Owners[k0], b.Pieces[k0]
	b.Owners[k1], b.Pieces[k1] = owner, piece
	b.Owners[k0], b.Pieces[k0] = NoPlayer, Empty
	bits := Bitmap(1)<<uint(k0) | Bitmap(1)<<uint(k1)
	b.PieceMaps[owner][piece] ^= bits
	b.PieceMaps[owner][0] ^= bits
	h := HashPiece[owner][piece][k0] ^ HashPiece[owner][piece][k1]
	b.PosCurrentHash ^= h
	b.SitCurrentHash ^= h
	if ti := AdjacentTrapIndex[k0]; ti >= 0 {
		b.TrapGuardCounts[owner][ti]--
	}
	if ti := AdjacentTrapIndex[k1]; ti >= 0 {
		b.TrapGuardCounts[owner][ti]++
	}
}

// captureAt removes an unguarded piece standing on trap kt.
func (b *Board) captureAt(kt int) (Player, Piece, bool) {
	owner := b.Owners[kt]
	// 陷阱上有子且没有己方守卫就被吃
	if owner == NoPlayer || b.TrapGuardCounts[owner][TrapIndex[kt]] != 0 {
		return NoPlayer, Empty, false
	}
	piece := b.Pieces[kt]
	b.remove(kt)
	return owner, piece, true
}

// refreshFrozen recomputes the frozen bit of every square in mask.
func (b *Board) refreshFrozen(mask Bitmap) {
	// 只有 mask 里的子可能变了冻结状态
	b.FrozenMap &^= mask
	occ := mask & (b.PieceMaps[Silver][0] | b.PieceMaps[Gold][0])
	for occ != 0 {
		k := occ.NextBit()
		if b.IsFrozenC(k) {
			b.FrozenMap.SetOn(k)
		}
	}
}

// RecalcFrozen rebuilds FrozenMap for the whole board.
func (b *Board) RecalcFrozen() {
	b.FrozenMap = b.dominatedMap(Silver)&^b.PieceMaps[Silver][0].Adj() |
		b.dominatedMap(Gold)&^b.PieceMaps[Gold][0].Adj()
}

// dominatedMap is the set of pla pieces next to a stronger enemy piece.
func (b *Board) dominatedMap(pla Player) Bitmap {
	opp := pla.Opp()
	var dom, power Bitmap
	for p := Elephant; p > Empty; p-- {
		dom |= power.Adj() & b.PieceMaps[pla][p]
		power |= b.PieceMaps[opp][p]
	}
	return dom
}

// StrongerMap is the set of pla's opponent pieces strictly stronger than piece.
func (b *Board) StrongerMap(pla Player, piece Piece) Bitmap {
	opp := pla.Opp()
	var m Bitmap
	for p := Elephant; p > piece; p-- {
		m |= b.PieceMaps[opp][p]
	}
	return m
}

// WeakerMap is the set of pla's opponent pieces strictly weaker than piece.
func (b *Board) WeakerMap(pla Player, piece Piece) Bitmap {
	opp := pla.Opp()
	var m Bitmap
	for p := Rabbit; p < piece; p++ {
		m |= b.PieceMaps[opp][p]
	}
	return m
}

// StrongerMaps fills m[pla][p] with the enemy pieces stronger than a pla piece of rank p.
func (b *Board) StrongerMaps() (m [2][NumPieceTypes]Bitmap) {
	for pla := Silver; pla <= Gold; pla++ {
		opp := pla.Opp()
		for p := Camel; p >= Empty; p-- {
			m[pla][p] = m[pla][p+1] | b.PieceMaps[opp][p+1]
		}
	}
	return m
}

func (b *Board) NumStronger(pla Player, piece Piece) int {
	n := 0
	for p := Elephant; p > piece; p-- {
		n += b.PieceCounts[pla.Opp()][p]
	}
	return n
}

func (b *Board) NumEqual(pla Player, piece Piece) int { return b.PieceCounts[pla.Opp()][piece] }

func (b *Board) NumWeaker(pla Player, piece Piece) int {
	n := 0
	for p := Rabbit; p < piece; p++ {
		n += b.PieceCounts[pla.Opp()][p]
	}
	return n
}

// FindElephant returns the square of pla's elephant or ErrSquare.
func (b *Board) FindElephant(pla Player) int {
	return b.PieceMaps[pla][Elephant].Lowest()
}

// NearestDominator finds the closest enemy piece stronger than piece within maxRad of loc.
func (b *Board) NearestDominator(pla Player, piece Piece, loc, maxRad int) int {
	if maxRad > 15 {
		maxRad = 15
	}
	m := b.StrongerMap(pla, piece) & Disk[maxRad][loc]
	if m.IsEmpty() {
		return ErrSquare
	}
	for r := 1; r <= maxRad; r++ {
		if hit := m & Radius[r][loc]; hit.HasBits() {
			return hit.Lowest()
		}
	}
	return ErrSquare
}

// IsGoal reports whether one of pla's rabbits stands on its goal row.
func (b *Board) IsGoal(pla Player) bool {
	return b.PieceMaps[pla][Rabbit]&GoalMask[pla] != 0
}

// IsRabbitless reports whether pla has no rabbits left.
func (b *Board) IsRabbitless(pla Player) bool {
	return b.PieceMaps[pla][Rabbit].IsEmpty()
}

// Occupied is the set of squares holding any piece.
func (b *Board) Occupied() Bitmap { return b.PieceMaps[Silver][0] | b.PieceMaps[Gold][0] }

// EmptyMap is the set of empty squares.
func (b *Board) EmptyMap() Bitmap { return ^b.Occupied() }

func (b *Board) endTurn() {
	b.SitCurrentHash ^= HashStep[b.Step] ^ HashStep[0] ^ HashPla[Silver] ^ HashPla[Gold]
	b.Player = b.Player.Opp()
	b.Step = 0
	b.TurnNumber++
}

// IsStepLegal reports whether s can be played now. Pushes and pulls of enemy
// pieces are accepted here; MakeMoveLegal checks their pairing.
func (b *Board) IsStepLegal(s Step) bool {
	if s == ErrStep {
		return false
	}
	if s.IsPass() {
		return true
	}
	if !s.Valid() {
		return false
	}
	k0, k1 := s.K0(), s.K1()
	if b.Owners[k0] == NoPlayer || b.Owners[k1] != NoPlayer {
		return false
	}
	if b.Owners[k0] == b.Player {
		if b.IsFrozen(k0) || (b.Pieces[k0] == Rabbit && !RabbitValid(b.Player, s.Dir())) {
			return false
		}
	}
	return true
}

// MakeStepRaw applies one step without refreshing FrozenMap.
func (b *Board) MakeStepRaw(s Step) {
	if s == QPassStep {
		return
	}
	if b.Step == 0 {
		b.PosStartHash = b.PosCurrentHash
	}
	if s == PassStep || b.Step == 3 {
		b.endTurn()
	} else {
		b.SitCurrentHash ^= HashStep[b.Step] ^ HashStep[b.Step+1]
		b.Step++
	}
	if s == PassStep {
		return
	}
	k0, k1 := s.K0(), s.K1()
	b.move(k0, k1)
	if kt := AdjacentTrap[k0]; kt != ErrSquare {
		b.captureAt(kt)
	}
}

// MakeStep applies one step and rebuilds FrozenMap.
func (b *Board) MakeStep(s Step) {
	b.MakeStepRaw(s)
	if s.IsReal() {
		b.RecalcFrozen()
	}
}

// MakeStepLegal applies s if it is legal.
func (b *Board) MakeStepLegal(s Step) bool {
	if !b.IsStepLegal(s) {
		return false
	}
	b.MakeStep(s)
	return true
}

// MakeMove applies every step of m without legality checks.
func (b *Board) MakeMove(m Move) {
	recalc := false
	for i := 0; i < 4; i++ {
		s := m.StepAt(i)
		if s == ErrStep || s == QPassStep {
			break
		}
		b.MakeStepRaw(s)
		if s == PassStep {
			break
		}
		recalc = true
	}
	if recalc {
		b.RecalcFrozen()
	}
}

// MakeMoveLegal applies m if every step is legal and every push is completed.
// On failure the board is left unchanged.
func (b *Board) MakeMoveLegal(m Move) bool {
	return b.MakeMoveLegalUpTo(m, 4)
}

// MakeMoveLegalUpTo applies the first numSteps steps of m with legality
// checks, going past numSteps only to finish a push or pull in progress.
// On failure the board is left unchanged.
func (b *Board) MakeMoveLegalUpTo(m Move, numSteps int) bool {
	if m == ErrorMove {
		return false
	}
	c := *b
	if !c.applyLegal(m, numSteps) {
		return false
	}
	*b = c
	return true
}

func (b *Board) applyLegal(m Move, numSteps int) bool {
	pushK, pullK := ErrSquare, ErrSquare
	var pushPower, pullPower Piece
	pla := b.Player
	opp := pla.Opp()

	for i := 0; i < 4; i++ {
		s := m.StepAt(i)
		if s == ErrStep || s == QPassStep {
			return pushK == ErrSquare
		}
		if s == PassStep {
			if pushK != ErrSquare {
				return false
			}
			if i < numSteps {
				b.MakeStep(s)
			}
			return true
		}
		if !b.IsStepLegal(s) {
			return false
		}
		k0, k1 := s.K0(), s.K1()
		if b.Owners[k0] == opp {
			if pushK != ErrSquare {
				return false
			}
			if pullK == k1 && pullPower > b.Pieces[k0] {
				pullK, pullPower = ErrSquare, Empty
			} else {
				if i >= numSteps {
					return true
				}
				pushK, pushPower = k0, b.Pieces[k0]
			}
		} else {
			if pushK != ErrSquare {
				if k1 != pushK || b.Pieces[k0] <= pushPower {
					return false
				}
				pushK, pushPower = ErrSquare, Empty
			} else {
				if i >= numSteps {
					return true
				}
				pullK, pullPower = k0, b.Pieces[k0]
			}
		}
		b.MakeStep(s)
	}
	return pushK == ErrSquare
}

// GetWinner returns the side that has won, or NoPlayer.
func (b *Board) GetWinner() Player {
	pla := b.Player
	opp := pla.Opp()
	if b.Step == 0 {
		switch {
		case b.IsGoal(opp):
			return opp
		case b.IsGoal(pla):
			return pla
		case b.IsRabbitless(pla):
			return opp
		case b.IsRabbitless(opp):
			return pla
		case NoMoves(b, pla):
			return opp
		}
		return NoPlayer
	}
	switch {
	case b.IsGoal(pla):
		return pla
	case b.IsRabbitless(opp):
		return pla
	case NoMoves(b, opp) && b.PosCurrentHash != b.PosStartHash && !b.IsGoal(opp) && !b.IsRabbitless(pla):
		return pla
	}
	return NoPlayer
}

// ApproachDir picks a direction from src that gets closer to dest.
func ApproachDir(src, dest int) int {
	dx := X(dest) - X(src)
	dy := Y(dest) - Y(src)
	u, v := dx+dy, dx-dy
	switch {
	case u < 0:
		if v < 0 {
			return DirW
		}
		return DirS
	case u > 0:
		if v > 0 {
			return DirE
		}
		return DirN
	}
	if v > 0 {
		return DirS
	}
	return DirN
}

// RetreatDirs returns up to two directions leading from src away from dest,
// -1 for a missing one.
func RetreatDirs(src, dest int) (int, int) {
	dx := X(dest) - X(src)
	dy := Y(dest) - Y(src)
	switch {
	case dx == 0 && dy == 0:
		return -1, -1
	case dx == 0:
		if dy > 0 {
			return DirS, -1
		}
		return DirN, -1
	case dy == 0:
		if dx > 0 {
			return DirW, -1
		}
		return DirE, -1
	}
	d1, d2 := DirN, DirE
	if dy > 0 {
		d1 = DirS
	}
	if dx > 0 {
		d2 = DirW
	}
	return d1, d2
}
