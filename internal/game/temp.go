package game

// TempRecord undoes one TempStep: the step itself and the capture it caused.
type TempRecord struct {
	K0, K1   int
	CapLoc   int // ErrSquare when nothing was captured
	CapOwner Player
	CapPiece Piece

	prevFrozen Bitmap
}

// Captured reports whether the step captured a piece.
func (r TempRecord) Captured() bool { return r.CapLoc != ErrSquare }

// TempStep moves the piece on k0 to k1 and resolves a capture at the trap next
// to k0. Pieces, maps, counts, guard counts, hashes and FrozenMap are all kept
// current; side to move, step and PosStartHash are not touched.
func (b *Board) TempStep(k0, k1 int) TempRecord {
	rec := TempRecord{K0: k0, K1: k1, CapLoc: ErrSquare, prevFrozen: b.FrozenMap}
	b.move(k0, k1)
	mask := Disk[1][k0] | Disk[1][k1]
	if kt := AdjacentTrap[k0]; kt != ErrSquare {
		if owner, piece, ok := b.captureAt(kt); ok {
			rec.CapLoc, rec.CapOwner, rec.CapPiece = kt, owner, piece
			mask |= Disk[1][kt]
		}
	}
	b.refreshFrozen(mask)
	return rec
}

// UndoTemp reverts a TempStep. Records must be undone in reverse order.
func (b *Board) UndoTemp(rec TempRecord) {
	// 先放回被吃的子：自杀步时 K1 就是陷阱，此时已空
	if rec.CapLoc != ErrSquare {
		b.place(rec.CapLoc, rec.CapOwner, rec.CapPiece)
	}
	b.move(rec.K1, rec.K0)
	b.FrozenMap = rec.prevFrozen
}

// TempPP plays a push or pull as two steps: the piece on k1 goes to k2, then
// the piece on k0 follows into k1.
func (b *Board) TempPP(k0, k1, k2 int) [2]TempRecord {
	first := b.TempStep(k1, k2)
	second := b.TempStep(k0, k1)
	return [2]TempRecord{first, second}
}

// UndoTempPP reverts a TempPP.
func (b *Board) UndoTempPP(recs [2]TempRecord) {
	b.UndoTemp(recs[1])
	b.UndoTemp(recs[0])
}

// TempMove applies the real steps of m one by one, appending their records.
func (b *Board) TempMove(m Move, recs []TempRecord) []TempRecord {
	for i := 0; i < 4; i++ {
		s := m.StepAt(i)
		if s == ErrStep {
			break
		}
		if !s.IsReal() {
			continue
		}
		recs = append(recs, b.TempStep(s.K0(), s.K1()))
	}
	return recs
}

// UndoTempMove reverts the records of a TempMove, last first.
func (b *Board) UndoTempMove(recs []TempRecord) {
	for i := len(recs) - 1; i >= 0; i-- {
		b.UndoTemp(recs[i])
	}
}

// WithStep runs f with the step k0->k1 applied and always undoes it.
func (b *Board) WithStep(k0, k1 int, f func() bool) bool {
	rec := b.TempStep(k0, k1)
	defer b.UndoTemp(rec)
	return f()
}

// WithPP runs f with the push/pull (k0,k1,k2) applied and always undoes it.
func (b *Board) WithPP(k0, k1, k2 int, f func() bool) bool {
	recs := b.TempPP(k0, k1, k2)
	defer b.UndoTempPP(recs)
	return f()
}

// WithRemoved runs f with the piece on k lifted off the board.
func (b *Board) WithRemoved(k int, f func() bool) bool {
	owner, piece := b.Owners[k], b.Pieces[k]
	if owner == NoPlayer {
		return f()
	}
	prev := b.FrozenMap
	b.remove(k)
	b.refreshFrozen(Disk[1][k])
	defer func() {
		b.place(k, owner, piece)
		b.FrozenMap = prev
	}()
	return f()
}

// WithPiece runs f with a piece placed on the empty square k.
func (b *Board) WithPiece(k int, owner Player, piece Piece, f func() bool) bool {
	if b.Owners[k] != NoPlayer {
		Violation("WithPiece: %s is occupied", SquareName(k))
	}
	prev := b.FrozenMap
	b.place(k, owner, piece)
	b.refreshFrozen(Disk[1][k])
	defer func() {
		b.remove(k)
		b.FrozenMap = prev
	}()
	return f()
}
