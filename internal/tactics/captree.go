package tactics

import "arimaa_go/internal/game"

// MaxCapSteps is the deepest capture the tree looks for. Larger budgets find nothing.
const MaxCapSteps = 4

// capSearch looks for captures of an enemy piece at one trap.
//
// The enemy only loses a guard when one of its own pieces moves, and that only
// happens on the enemy half of a push or pull. So every capture ends with a
// push or pull, and the search is a fixed set of patterns chosen by how many
// defenders stand next to the trap and who holds the trap:
//
//	2 steps, 1 defender: push/pull it onto the trap, or away when the enemy holds it
//	3 steps, 1 defender: one preparing step (thaw, approach, step off the trap,
//	                     clear a square), then the 2 step case
//	4 steps, 0 defenders: bring a piece from two squares out next to the trap, then push it in
//	4 steps, 1 defender: a local step then the 3 step case, or a push/pull of
//	                     some other enemy piece then the 2 step case
//	4 steps, 2 defenders: move one defender, then the 2 step case on the other, both orders
//
// Three defenders, or an elephant among them, cannot be beaten in four steps.
// Captures outside these patterns are not found; every move reported is played
// out and checked, so nothing is reported that does not capture.
type capSearch struct {
	b        *game.Board
	pla, opp game.Player
	kt       int
	target   func(game.Piece) bool // nil: any piece
	all      bool

	out   []ScoredMove
	units [4][]game.Move
	recs  [4][4]game.TempRecord
}

// cont carries a search on after a preparing step, given the move so far and
// the next free buffer.
type cont func(prefix game.Move, ply int) bool

func newCapSearch(b *game.Board, pla game.Player, kt int) *capSearch {
	if kt < 0 || kt >= 64 || game.TrapIndex[kt] < 0 {
		game.Violation("capture search: %d is not a trap", kt)
	}
	return &capSearch{b: b, pla: pla, opp: pla.Opp(), kt: kt}
}

func (s *capSearch) defenders() (n int, elephant bool) {
	n = s.b.TrapGuardCounts[s.opp][game.TrapIndex[s.kt]]
	elephant = game.Radius[1][s.kt]&s.b.PieceMaps[s.opp][game.Elephant] != 0
	return n, elephant
}

// lone returns the single non-elephant defender of the trap, or ErrSquare.
func (s *capSearch) lone() int {
	adj := game.Radius[1][s.kt] & s.b.PieceMaps[s.opp][0]
	if !adj.IsSingle() {
		return game.ErrSquare
	}
	e := adj.Lowest()
	if s.b.Pieces[e] == game.Elephant {
		return game.ErrSquare
	}
	return e
}

// strongerNext is the pla pieces next to eloc that outrank it.
func (s *capSearch) strongerNext(eloc int) game.Bitmap {
	var out game.Bitmap
	adj := game.Radius[1][eloc] & s.b.PieceMaps[s.pla][0]
	for adj != 0 {
		p := adj.NextBit()
		if s.b.Pieces[p] > s.b.Pieces[eloc] {
			out.SetOn(p)
		}
	}
	return out
}

// capturedBy returns the enemy piece captured at the trap by recs, or Empty.
func (s *capSearch) capturedBy(recs []game.TempRecord) game.Piece {
	for _, r := range recs {
		if r.CapLoc == s.kt && r.CapOwner == s.opp && (s.target == nil || s.target(r.CapPiece)) {
			return r.CapPiece
		}
	}
	return game.Empty
}

// found records m and reports whether the search may stop.
func (s *capSearch) found(m game.Move, piece game.Piece) bool {
	if !containsMove(s.out, m) {
		s.out = append(s.out, ScoredMove{Move: m, Hm: int(piece)})
	}
	return !s.all
}

// apply plays u, then either checks for a capture (next == nil) or hands over
// to next, and undoes u.
func (s *capSearch) apply(prefix game.Move, ply int, u game.Move, next cont) bool {
	recs := s.b.TempMove(u, s.recs[ply][:0])
	done := false
	if next == nil {
		if piece := s.capturedBy(recs); piece != game.Empty {
			done = s.found(prefix.Concat(u), piece)
		}
	} else {
		done = next(prefix.Concat(u), ply+1)
	}
	s.b.UndoTempMove(recs)
	return done
}

// stepThen tries every pla step touching rel that keep accepts.
func (s *capSearch) stepThen(prefix game.Move, ply int, rel game.Bitmap, keep func(k0, k1 int) bool, next cont) bool {
	s.units[ply] = game.GenStepsInvolving(s.b, s.pla, s.units[ply][:0], rel)
	for _, u := range s.units[ply] {
		st := u.StepAt(0)
		if keep != nil && !keep(st.K0(), st.K1()) {
			continue
		}
		if s.apply(prefix, ply, u, next) {
			return true
		}
	}
	return false
}

// ppThen tries every push and pull touching rel whose enemy piece moves in a
// way keep accepts.
func (s *capSearch) ppThen(prefix game.Move, ply int, rel game.Bitmap, keep func(src, dest int) bool, next cont) bool {
	s.units[ply] = game.GenPushPullsInvolving(s.b, s.pla, s.units[ply][:0], rel)
	for _, u := range s.units[ply] {
		if keep != nil {
			if src, dest := victimOf(s.b, s.pla, u); !keep(src, dest) {
				continue
			}
		}
		if s.apply(prefix, ply, u, next) {
			return true
		}
	}
	return false
}

// pp moves the enemy piece on eloc to dest, anywhere when dest is ErrSquare.
func (s *capSearch) pp(prefix game.Move, ply, eloc, dest int, next cont) bool {
	return s.ppThen(prefix, ply, game.BitmapOf(eloc), func(src, to int) bool {
		return src == eloc && (dest == game.ErrSquare || to == dest)
	}, next)
}

// 2 STEP --------------------------------------------------------------------

// twoStep finishes with a push or pull of the lone defender.
func (s *capSearch) twoStep(prefix game.Move, ply int) bool {
	eloc := s.lone()
	if eloc == game.ErrSquare {
		return false
	}
	if s.b.Owners[s.kt] == s.opp {
		return s.removeDef2(prefix, ply, eloc)
	}
	return s.ppIntoTrap2(prefix, ply, eloc)
}

func (s *capSearch) ppIntoTrap2(prefix game.Move, ply, eloc int) bool {
	return s.pp(prefix, ply, eloc, s.kt, nil)
}

// removeDef2 drags the last defender off so the piece on the trap falls.
func (s *capSearch) removeDef2(prefix game.Move, ply, eloc int) bool {
	return s.pp(prefix, ply, eloc, game.ErrSquare, nil)
}

// 3 STEP --------------------------------------------------------------------

func (s *capSearch) threeStep(prefix game.Move, ply int) bool {
	eloc := s.lone()
	if eloc == game.ErrSquare {
		return false
	}
	switch s.b.Owners[s.kt] {
	case game.NoPlayer:
		return s.ppIntoTrapTE3(prefix, ply, eloc)
	case s.pla:
		return s.ppIntoTrapTP3(prefix, ply, eloc)
	}
	return s.removeDef3(prefix, ply, eloc)
}

func (s *capSearch) intoTrap(eloc int) cont {
	return func(prefix game.Move, ply int) bool { return s.ppIntoTrap2(prefix, ply, eloc) }
}

// thawSquares is where a step would unfreeze one of the frozen pieces in m.
func (s *capSearch) thawSquares(m game.Bitmap) game.Bitmap {
	var out game.Bitmap
	m &= s.b.FrozenMap
	for m != 0 {
		out |= game.Radius[1][m.NextBit()]
	}
	return out
}

// ppIntoTrapTE3: empty trap. Thaw a stronger piece that is already next to the
// defender, or step a stronger piece next to it. Stepping onto the trap itself
// is only tried when two pla pieces guard it.
func (s *capSearch) ppIntoTrapTE3(prefix game.Move, ply, eloc int) bool {
	thaw := s.thawSquares(s.strongerNext(eloc))
	approach := game.Radius[1][eloc]
	if s.b.GuardCount(s.pla, s.kt) < 2 {
		approach &^= game.BitmapOf(s.kt)
	}
	ev := s.b.Pieces[eloc]
	keep := func(k0, k1 int) bool {
		return thaw.Has(k1) || approach.Has(k1) && s.b.Pieces[k0] > ev
	}
	return s.stepThen(prefix, ply, thaw|approach, keep, s.intoTrap(eloc))
}

// ppIntoTrapTP3: pla piece on the trap. A piece no stronger than the defender
// steps off to make room for a push; with a single guard, that guard may also
// walk over to the defender and let the trap piece die. A stronger trap piece
// is only short of room to pull, so one of its neighbours steps away.
func (s *capSearch) ppIntoTrapTP3(prefix game.Move, ply, eloc int) bool {
	ev := s.b.Pieces[eloc]
	ring := game.Radius[1][s.kt]
	var keep func(k0, k1 int) bool
	if s.b.Pieces[s.kt] <= ev {
		unsafe := !s.b.IsTrapSafe2(s.pla, s.kt)
		keep = func(k0, k1 int) bool {
			if k0 == s.kt {
				return true
			}
			// 守卫走开，陷阱上的子送掉
			return unsafe && ring.Has(k0) && s.b.Pieces[k0] > ev && game.Radius[1][eloc].Has(k1)
		}
	} else {
		keep = func(k0, k1 int) bool { return ring.Has(k0) }
	}
	return s.stepThen(prefix, ply, game.Disk[1][s.kt], keep, s.intoTrap(eloc))
}

// removeDef3: enemy piece on the trap. Thaw a stronger neighbour of the
// defender, clear a square it needs to push or pull, or step a stronger piece
// next to the defender.
func (s *capSearch) removeDef3(prefix game.Move, ply, eloc int) bool {
	ev := s.b.Pieces[eloc]
	strong := s.strongerNext(eloc)
	thaw := s.thawSquares(strong)
	vacate := game.Radius[1][eloc]
	for m := strong &^ s.b.FrozenMap; m != 0; {
		vacate |= game.Radius[1][m.NextBit()]
	}
	approach := game.Radius[1][eloc] &^ game.BitmapOf(s.kt)
	keep := func(k0, k1 int) bool {
		switch {
		case thaw.Has(k1), vacate.Has(k0):
			return true
		}
		return approach.Has(k1) && s.b.Pieces[k0] > ev
	}
	return s.stepThen(prefix, ply, thaw|vacate|approach, keep, func(p game.Move, ply int) bool {
		return s.removeDef2(p, ply, eloc)
	})
}

// 4 STEP --------------------------------------------------------------------

func (s *capSearch) fourStep(prefix game.Move, ply int) bool {
	n, _ := s.defenders()
	switch n {
	case 0:
		return s.trails(prefix, ply)
	case 1:
		eloc := s.lone()
		if eloc == game.ErrSquare {
			return false
		}
		switch s.b.Owners[s.kt] {
		case game.NoPlayer:
			return s.ppIntoTrapTE4(prefix, ply, eloc)
		case s.pla:
			return s.ppIntoTrapTP4(prefix, ply, eloc)
		}
		return s.removeDef4(prefix, ply, eloc)
	case 2:
		return s.twoDefenders(prefix, ply)
	}
	return false
}

// trails: nobody guards the trap. An enemy piece two squares out is pushed or
// pulled onto a square next to the trap, then into it.
func (s *capSearch) trails(prefix game.Move, ply int) bool {
	ring := game.Radius[2][s.kt] & s.b.PieceMaps[s.opp][0] &^ s.b.PieceMaps[s.opp][game.Elephant]
	for ring != 0 {
		eloc := ring.NextBit()
		trs := game.Radius[1][s.kt] & game.Radius[1][eloc]
		for trs != 0 {
			if s.pp(prefix, ply, eloc, trs.NextBit(), s.twoStep) {
				return true
			}
		}
	}
	return false
}

func notMoving(eloc int) func(src, dest int) bool {
	return func(src, _ int) bool { return src != eloc }
}

// ppIntoTrapTE4: empty trap. Any step near the defender followed by the three
// step patterns, or shoving some other enemy piece near it out of the way.
func (s *capSearch) ppIntoTrapTE4(prefix game.Move, ply, eloc int) bool {
	near := game.Disk[2][eloc]
	if s.stepThen(prefix, ply, near, nil, s.threeStep) {
		return true
	}
	return s.ppThen(prefix, ply, near, notMoving(eloc), s.twoStep)
}

// ppIntoTrapTP4: pla piece on the trap. The first step has to involve the trap
// square, its guards or the defender's neighbours.
func (s *capSearch) ppIntoTrapTP4(prefix game.Move, ply, eloc int) bool {
	near := game.Disk[1][s.kt] | game.Disk[1][eloc]
	if s.stepThen(prefix, ply, near, nil, s.threeStep) {
		return true
	}
	return s.ppThen(prefix, ply, near, notMoving(eloc), s.twoStep)
}

// removeDef4: enemy piece on the trap. Same shape as ppIntoTrapTE4 but the
// first push or pull may also move the trap piece itself.
func (s *capSearch) removeDef4(prefix game.Move, ply, eloc int) bool {
	near := game.Disk[2][eloc]
	if s.stepThen(prefix, ply, near, nil, s.threeStep) {
		return true
	}
	return s.ppThen(prefix, ply, near, notMoving(eloc), s.twoStep)
}

// twoDefenders removes one defender with a push or pull (onto the trap is
// fine, the other one still guards it), then beats the other in two. Both
// orders are tried.
func (s *capSearch) twoDefenders(prefix game.Move, ply int) bool {
	defs := game.Radius[1][s.kt] & s.b.PieceMaps[s.opp][0]
	e1 := defs.Lowest()
	e2 := (defs &^ game.BitmapOf(e1)).Lowest()
	return s.twoPieceAdj(prefix, ply, e1) || s.twoPieceAdj(prefix, ply, e2)
}

func (s *capSearch) twoPieceAdj(prefix game.Move, ply, first int) bool {
	return s.pp(prefix, ply, first, game.ErrSquare, s.twoStep)
}

// depth searches captures that take exactly d steps.
func (s *capSearch) depth(d int) bool {
	n, eleph := s.defenders()
	if n >= 3 || eleph || (d < 4 && n != 1) {
		return false
	}
	switch d {
	case 2:
		return s.twoStep(game.ErrorMove, 0)
	case 3:
		return s.threeStep(game.ErrorMove, 0)
	case 4:
		return s.fourStep(game.ErrorMove, 0)
	}
	return false
}

// run searches depths minSteps..steps and stops at the first depth that
// captures anything. A budget over MaxCapSteps finds nothing.
func (s *capSearch) run(steps, minSteps int) int {
	if steps > MaxCapSteps {
		return 0
	}
	for d := max(2, minSteps); d <= steps; d++ {
		s.depth(d)
		if len(s.out) > 0 {
			return d
		}
	}
	return 0
}

// CanCaps reports whether pla can capture an enemy piece with at most steps steps.
func CanCaps(b *game.Board, pla game.Player, steps int) bool {
	for _, kt := range game.TrapLocs {
		if CanCapsAt(b, pla, steps, 2, kt) {
			return true
		}
	}
	return false
}

// CanCapsAt is CanCaps restricted to one trap and to captures of at least
// minSteps steps.
func CanCapsAt(b *game.Board, pla game.Player, steps, minSteps, kt int) bool {
	s := newCapSearch(b, pla, kt)
	return s.run(steps, minSteps) > 0
}

// GenCaps appends, trap by trap, the shortest captures pla has within steps.
func GenCaps(b *game.Board, pla game.Player, steps int, dst []ScoredMove) []ScoredMove {
	for _, kt := range game.TrapLocs {
		dst = GenCapsAt(b, pla, steps, 2, kt, dst)
	}
	return dst
}

// GenCapsAt appends every capture at kt of the smallest length in
// minSteps..steps.
func GenCapsAt(b *game.Board, pla game.Player, steps, minSteps, kt int, dst []ScoredMove) []ScoredMove {
	s := newCapSearch(b, pla, kt)
	s.all = true
	s.run(steps, minSteps)
	return append(dst, s.out...)
}

// GenCapsOption is GenCapsAt that, with suicideExtend, keeps looking one step
// deeper while every capture found also loses a pla piece. Captures losing a
// piece at least as valuable as the one taken are dropped in that mode, the
// rest are kept across depths. It also returns the length of the deepest
// captures examined, 0 if none.
func GenCapsOption(b *game.Board, pla game.Player, steps, minSteps int, suicideExtend bool, kt int, dst []ScoredMove) ([]ScoredMove, int) {
	if steps > MaxCapSteps {
		return dst, 0
	}
	used := 0
	for d := max(2, minSteps); d <= steps; d++ {
		s := newCapSearch(b, pla, kt)
		s.all = true
		s.depth(d)
		if len(s.out) == 0 {
			continue
		}
		used = d
		if !suicideExtend {
			return append(dst, s.out...), used
		}
		kept, only := IsOnlySuicides(b, pla, s.out)
		dst = append(dst, kept...)
		if !only {
			break
		}
	}
	return dst, used
}

// GenCapsFull is GenCapsOption that also reports which enemy pieces can be
// captured (by starting square) and the length of the shortest capture, 5 if
// none. Moves shorter than the deepest length searched that do not capture on
// their own are finished with the captures they lead to.
func GenCapsFull(b *game.Board, pla game.Player, steps, minSteps int, suicideExtend bool, kt int) ([]ScoredMove, game.Bitmap, int) {
	moves, used := GenCapsOption(b, pla, steps, minSteps, suicideExtend, kt, nil)
	moves = completeCaps(b, pla, kt, used, moves)
	var capMap game.Bitmap
	capDist := 5
	opp := pla.Opp()
	for _, sm := range moves {
		capDist = min(capDist, sm.Move.NumSteps())
		for _, ch := range b.Changes(sm.Move) {
			if ch.Dest == game.ErrSquare && b.Owners[ch.Src] == opp {
				capMap.SetOn(ch.Src)
			}
		}
	}
	return moves, capMap, capDist
}

// completeCaps keeps every move that captures and extends each shorter one
// that does not with the captures at kt that fit in the rest of used.
func completeCaps(b *game.Board, pla game.Player, kt, used int, moves []ScoredMove) []ScoredMove {
	if used <= 2 {
		return moves
	}
	opp := pla.Opp()
	out := make([]ScoredMove, 0, len(moves))
	var recs []game.TempRecord
	for _, sm := range moves {
		ns := sm.Move.NumSteps()
		if ns >= used {
			out = append(out, sm)
			continue
		}
		count := b.PieceCounts[opp][0]
		recs = b.TempMove(sm.Move, recs[:0])
		if b.PieceCounts[opp][0] < count {
			out = append(out, sm)
		} else {
			// 只是准备步，补完剩下的吃子
			rest, _ := GenCapsOption(b, pla, used-ns, 2, false, kt, nil)
			for _, r := range rest {
				out = append(out, ScoredMove{Move: sm.Move.Concat(r.Move), Hm: r.Hm})
			}
		}
		b.UndoTempMove(recs)
	}
	return out
}

// IsOnlySuicides filters out captures that lose a pla piece worth at least the
// captured one, and reports whether every given capture loses some pla piece,
// however cheap.
func IsOnlySuicides(b *game.Board, pla game.Player, moves []ScoredMove) ([]ScoredMove, bool) {
	var kept []ScoredMove
	only := len(moves) > 0
	for _, sm := range moves {
		lost := lostPiece(b, pla, sm.Move)
		if lost == game.Empty {
			only = false
		}
		if lost == game.Empty || int(lost) < sm.Hm {
			kept = append(kept, sm)
		}
	}
	return kept, only
}

// lostPiece is the strongest pla piece m sacrifices, Empty if none.
func lostPiece(b *game.Board, pla game.Player, m game.Move) game.Piece {
	lost := game.Empty
	for _, ch := range b.Changes(m) {
		if ch.Dest == game.ErrSquare && b.Owners[ch.Src] == pla {
			lost = max(lost, b.Pieces[ch.Src])
		}
	}
	return lost
}

// canCapsTarget reports whether a piece accepted by target can be captured
// within steps at any trap.
func canCapsTarget(b *game.Board, pla game.Player, steps int, target func(game.Piece) bool) bool {
	for _, kt := range game.TrapLocs {
		s := newCapSearch(b, pla, kt)
		s.target = target
		if s.run(steps, 2) > 0 {
			return true
		}
	}
	return false
}

// genCapsTargetExact lists captures of target pieces at kt that take exactly d steps.
func genCapsTargetExact(b *game.Board, pla game.Player, d, kt int, target func(game.Piece) bool) []ScoredMove {
	s := newCapSearch(b, pla, kt)
	s.target = target
	s.all = true
	s.depth(d)
	return s.out
}
