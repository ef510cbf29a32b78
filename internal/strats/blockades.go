package strats

import (
	"fmt"

	"arimaa_go/internal/game"
)

// Tightness of a blockade along one side, summed over the sides of the
// blockaded piece.
const (
	FullBlockade  = 0 // cannot get through at all
	LooseBlockade = 1 // can push through, then is stuck
	LeakyBlockade = 2 // gets through only at a cost, e.g. onto a guarded trap
	OpenBlockade  = 3
)

// BlockadeThreat is an enemy piece (the elephant) walled in.
type BlockadeThreat struct {
	PinnedLoc int
	Tightness int
	HolderMap game.Bitmap
}

func (t BlockadeThreat) String() string {
	return fmt.Sprintf("blockade %s tightness %d\n%v", game.SquareName(t.PinnedLoc), t.Tightness, t.HolderMap)
}

// edge and corner squares are good enough as they are
var autoBlockade = [64]int{
	1, 1, 1, 1, 1, 1, 1, 1,
	2, 3, 3, 3, 3, 3, 3, 2,
	3, 3, 3, 3, 3, 3, 3, 3,
	3, 3, 3, 3, 3, 3, 3, 3,
	3, 3, 3, 3, 3, 3, 3, 3,
	3, 3, 3, 3, 3, 3, 3, 3,
	2, 3, 3, 3, 3, 3, 3, 2,
	1, 1, 1, 1, 1, 1, 1, 1,
}

// FindBlockades reports pla's blockade of the opp elephant. The board is
// mutated temporarily and restored before returning.
func FindBlockades(b *game.Board, pla game.Player) (BlockadeThreat, bool) {
	eloc := b.FindElephant(pla.Opp())
	if eloc == game.ErrSquare {
		return BlockadeThreat{}, false
	}
	return isBlockade(b, pla, eloc)
}

// stepBlockMap: the squares that keep the opp piece on loc from stepping, loc
// included.
func stepBlockMap(b *game.Board, pla game.Player, oloc, loc int) game.Bitmap {
	m := game.Disk[1][loc]
	if back := game.Neighbor(loc, game.Backward(pla.Opp())); back != game.ErrSquare && b.Pieces[loc] == game.Rabbit {
		m.SetOff(back)
	}
	m.SetOff(oloc)
	return m
}

// stepPushBlockMap extends stepBlockMap to pieces that could also push.
func stepPushBlockMap(b *game.Board, pla game.Player, oloc, loc int) game.Bitmap {
	if b.Pieces[loc] == game.Rabbit {
		return stepBlockMap(b, pla, oloc, loc)
	}
	opp := pla.Opp()
	var m game.Bitmap
	for dir := 0; dir < 4; dir++ {
		j := game.Neighbor(loc, dir)
		if j == game.ErrSquare || j == oloc {
			continue
		}
		switch {
		case b.Owners[j] == opp:
			m |= stepBlockMap(b, pla, loc, j)
		case b.Owners[j] == pla && b.Pieces[j] >= b.Pieces[loc]:
			m.SetOn(j)
		case b.Owners[j] == pla:
			m |= game.Disk[1][j] &^ game.BitmapOf(loc)
		}
	}
	return m
}

// blockedBeyond reports whether, with the opp piece now standing on loc, every
// side of loc except the way back to oloc is a full blockade.
func blockedBeyond(b *game.Board, pla game.Player, oloc, loc int, defMap *game.Bitmap) bool {
	for dir := 0; dir < 4; dir++ {
		j := game.Neighbor(loc, dir)
		if j == game.ErrSquare || j == oloc {
			continue
		}
		if blockadeStr(b, pla, loc, j, defMap, FullBlockade) > FullBlockade {
			return false
		}
	}
	return true
}

// blockadeStr grades how well loc keeps the unfrozen opp piece on oloc from
// escaping through it, adding the squares that hold it to defMap. Grades worse
// than limit are not searched for and come back as OpenBlockade.
func blockadeStr(b *game.Board, pla game.Player, oloc, loc int, defMap *game.Bitmap, limit int) int {
	opp := pla.Opp()
	switch b.Owners[loc] {
	case pla:
		if b.Pieces[loc] >= b.Pieces[oloc] || !b.IsTrapSafe2(opp, loc) {
			defMap.SetOn(loc)
			return FullBlockade
		}
		if !b.IsOpen(loc) {
			*defMap |= game.Disk[1][loc] &^ game.BitmapOf(oloc)
			return FullBlockade
		}
		if limit <= FullBlockade {
			return OpenBlockade
		}
		if autoBlockade[loc] <= LooseBlockade {
			defMap.SetOn(loc)
			return LooseBlockade
		}
		if !b.IsOpen2(loc) {
			// push the blocker into its one hole and see if we are stuck there
			open := b.FindOpen(loc)
			var tmp game.Bitmap
			good := b.WithPP(oloc, loc, open, func() bool {
				return blockedBeyond(b, pla, oloc, loc, &tmp)
			})
			if good {
				tmp.SetOff(open)
				tmp.SetOn(loc)
				*defMap |= tmp
				return LooseBlockade
			}
		}
		if limit <= LooseBlockade {
			return OpenBlockade
		}
		if autoBlockade[loc] <= LeakyBlockade || b.IsTrap(loc) {
			defMap.SetOn(loc)
			return LeakyBlockade
		}

	case opp:
		if !b.IsOpenToStep(loc, game.ErrSquare) && !b.IsOpenToMove(loc) {
			*defMap |= stepPushBlockMap(b, pla, oloc, loc)
			return FullBlockade
		}
		if limit <= FullBlockade {
			return OpenBlockade
		}
		if autoBlockade[loc] <= LooseBlockade {
			defMap.SetOn(loc)
			return LooseBlockade
		}
		if open := b.FindOpenToStep(loc); open != game.ErrSquare {
			// the friend steps out of the way and the piece follows
			var tmp game.Bitmap
			good := b.WithPP(oloc, loc, open, func() bool {
				return blockedBeyond(b, pla, oloc, loc, &tmp)
			})
			if good {
				tmp.SetOff(open)
				*defMap |= tmp
				return LooseBlockade
			}
		}
		if limit <= LooseBlockade {
			return OpenBlockade
		}
		if autoBlockade[loc] <= LeakyBlockade {
			defMap.SetOn(loc)
			return LeakyBlockade
		}
		if b.IsTrap(loc) && !b.IsOpenToStep(loc, game.ErrSquare) {
			*defMap |= stepBlockMap(b, pla, oloc, loc)
			return LeakyBlockade
		}

	default:
		if !b.IsTrapSafe2(opp, loc) {
			defMap.SetOn(loc)
			return FullBlockade
		}
		if limit <= FullBlockade {
			return OpenBlockade
		}
		if autoBlockade[loc] <= LooseBlockade {
			return LooseBlockade
		}
		var tmp game.Bitmap
		good := b.WithStep(oloc, loc, func() bool {
			return blockedBeyond(b, pla, oloc, loc, &tmp)
		})
		if good {
			tmp.SetOff(loc)
			*defMap |= tmp
			return LooseBlockade
		}
		if limit <= LooseBlockade {
			return OpenBlockade
		}
		if autoBlockade[loc] <= LeakyBlockade {
			return LeakyBlockade
		}
		if b.IsTrap(loc) && !b.IsTrapSafe3(opp, loc) {
			defMap.SetOn(loc)
			return LeakyBlockade
		}
	}
	return OpenBlockade
}

// isBlockade sums the side grades around oloc. A frozen piece must also be
// unfrozen first, so its weakest side is not counted.
func isBlockade(b *game.Board, pla game.Player, oloc int) (BlockadeThreat, bool) {
	if b.IsThawed(oloc) {
		var def game.Bitmap
		sum := 0
		for dir := 0; dir < 4; dir++ {
			j := game.Neighbor(oloc, dir)
			if j == game.ErrSquare {
				continue
			}
			sum += blockadeStr(b, pla, oloc, j, &def, OpenBlockade)
			if sum >= 3 {
				return BlockadeThreat{}, false
			}
		}
		return BlockadeThreat{PinnedLoc: oloc, Tightness: sum, HolderMap: def}, true
	}

	var maps [4]game.Bitmap
	sum, worst, worstDir := 0, -1, 0
	for dir := 0; dir < 4; dir++ {
		j := game.Neighbor(oloc, dir)
		if j == game.ErrSquare {
			continue
		}
		s := blockadeStr(b, pla, oloc, j, &maps[dir], OpenBlockade)
		sum += s
		if s > worst {
			worst, worstDir = s, dir
		}
	}
	sum -= worst
	if sum >= 3 {
		return BlockadeThreat{}, false
	}
	// TODO: when every side is full this drops a side that may hold the freezer
	var def game.Bitmap
	for dir, m := range maps {
		if dir != worstDir {
			def |= m
		}
	}
	return BlockadeThreat{PinnedLoc: oloc, Tightness: sum, HolderMap: def}, true
}
