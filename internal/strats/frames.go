package strats

import (
	"fmt"

	"arimaa_go/internal/game"
)

// FrameThreat is an enemy piece sitting on a trap that cannot step off.
type FrameThreat struct {
	Kt        int
	PinnedLoc int  // the single enemy neighbour keeping the piece alive, ErrSquare if none
	IsPartial bool // one blocker is weaker and could be pushed aside, but the piece would refreeze
	HolderMap game.Bitmap
}

func (t FrameThreat) String() string {
	kind := "full"
	if t.IsPartial {
		kind = "partial"
	}
	return fmt.Sprintf("frame %s pinned %s %s", game.SquareName(t.Kt), game.SquareName(t.PinnedLoc), kind)
}

// FindFrame reports whether pla holds the opp piece on trap kt in a frame.
// Every neighbour of the trap must be occupied (or be a square the piece's
// rabbit rule forbids), at most one of them by the piece's own side, and at
// most one by a weaker pla piece with room to be pushed, provided the framed
// piece would still be frozen after pushing it.
func FindFrame(b *game.Board, pla game.Player, kt int) (FrameThreat, bool) {
	if game.TrapIndex[kt] < 0 {
		game.Violation("FindFrame: %s is not a trap", game.SquareName(kt))
	}
	opp := pla.Opp()
	if b.Owners[kt] != opp {
		return FrameThreat{}, false
	}

	t := FrameThreat{Kt: kt, PinnedLoc: game.ErrSquare}
	partial, oppCount := 0, 0
	for dir := 0; dir < 4; dir++ {
		j := kt + game.DirOffset[dir]
		switch b.Owners[j] {
		case game.NoPlayer:
			if canStep(b, opp, kt, dir) {
				return FrameThreat{}, false
			}
		case opp:
			oppCount++
			t.PinnedLoc = j
			if oppCount > 1 {
				return FrameThreat{}, false
			}
		default:
			// 比被困子弱、旁边又有空位的守子可以被推开
			if b.Pieces[j] < b.Pieces[kt] && b.IsOpen(j) {
				partial++
				if partial > 1 || b.WouldBeUF(opp, kt, j, game.BitmapOf(kt)) {
					return FrameThreat{}, false
				}
			}
		}
	}
	t.IsPartial = partial > 0
	t.HolderMap = frameHolderMap(b, pla, kt)
	return t, true
}

// frameHolderMap is the trap's non-enemy neighbours plus the neighbours of any
// holder too weak to stand on its own.
func frameHolderMap(b *game.Board, pla game.Player, kt int) game.Bitmap {
	weak := b.PieceMaps[pla][0] & b.WeakerMap(pla.Opp(), b.Pieces[kt])
	m := game.Radius[1][kt] &^ b.PieceMaps[pla.Opp()][0]
	m |= (m & weak).Adj()
	m.SetOff(kt)
	return m
}
