package strats

import (
	"fmt"

	"arimaa_go/internal/game"
)

// ImmoType grades an elephant blockade.
type ImmoType int

const (
	TotalImmo        ImmoType = iota // no way out at all
	AlmostImmo                       // out only through a loose square, or one edge side open
	CentralBlock                     // both central sides shut, an edge side open
	CentralBlockWeak                 // like CentralBlock near the side edge with one central side open
)

func (t ImmoType) String() string {
	switch t {
	case TotalImmo:
		return "total"
	case AlmostImmo:
		return "almost"
	case CentralBlock:
		return "central"
	case CentralBlockWeak:
		return "central-weak"
	}
	return fmt.Sprintf("ImmoType(%d)", int(t))
}

// EBlockade describes the opp elephant walled in by pla.
type EBlockade struct {
	Loc      int
	ImmoType ImmoType
	// every piece or trap the search looked through, interior blockers included
	RecursedMap game.Bitmap
	// pieces that form the wall
	HolderHeldMap game.Bitmap
	// enemy pieces that have to stay frozen for the wall to hold
	FreezeHeldMap game.Bitmap
}

// Neighbours of each square ordered by how much they matter to a blockade:
// toward the centre vertically, toward the centre horizontally, then the two
// edge-facing sides. Missing neighbours map to the square itself.
var (
	centralAdj1 = [64]int{
		8, 9, 10, 11, 12, 13, 14, 15,
		16, 17, 18, 19, 20, 21, 22, 23,
		24, 25, 26, 27, 28, 29, 30, 31,
		25, 26, 34, 35, 36, 37, 29, 30,
		33, 34, 26, 27, 28, 29, 37, 38,
		32, 33, 34, 35, 36, 37, 38, 39,
		40, 41, 42, 43, 44, 45, 46, 47,
		48, 49, 50, 51, 52, 53, 54, 55,
	}
	centralAdj2 = [64]int{
		1, 2, 3, 4, 3, 4, 5, 6,
		9, 10, 11, 12, 11, 12, 13, 14,
		17, 18, 19, 20, 19, 20, 21, 22,
		32, 33, 27, 28, 27, 28, 38, 39,
		24, 25, 35, 36, 35, 36, 30, 31,
		41, 42, 43, 44, 43, 44, 45, 46,
		49, 50, 51, 52, 51, 52, 53, 54,
		57, 58, 59, 60, 59, 60, 61, 62,
	}
	edgeAdj1 = [64]int{
		0, 0, 1, 2, 5, 6, 7, 7,
		8, 8, 9, 10, 13, 14, 15, 15,
		16, 16, 17, 18, 21, 22, 23, 23,
		24, 24, 25, 26, 29, 30, 31, 31,
		32, 32, 33, 34, 37, 38, 39, 39,
		40, 40, 41, 42, 45, 46, 47, 47,
		48, 48, 49, 50, 53, 54, 55, 55,
		56, 56, 57, 58, 61, 62, 63, 63,
	}
	edgeAdj2 = [64]int{
		0, 1, 2, 3, 4, 5, 6, 7,
		0, 1, 2, 3, 4, 5, 6, 7,
		8, 9, 10, 11, 12, 13, 14, 15,
		16, 17, 18, 19, 20, 21, 22, 23,
		40, 41, 42, 43, 44, 45, 46, 47,
		48, 49, 50, 51, 52, 53, 54, 55,
		56, 57, 58, 59, 60, 61, 62, 63,
		56, 57, 58, 59, 60, 61, 62, 63,
	}

	// a4 b4 g4 h4 a5 b5 g5 h5
	weakCentralBlockOK = game.BitmapOf(24, 25, 30, 31, 32, 33, 38, 39)
)

func blockOrder(loc int) [4]int {
	return [4]int{centralAdj1[loc], centralAdj2[loc], edgeAdj1[loc], edgeAdj2[loc]}
}

type eblockMaps struct {
	allowRecheck game.Bitmap
	recursed     game.Bitmap
	holderHeld   game.Bitmap
	freezeHeld   game.Bitmap
}

type eblockSearch struct {
	b        *game.Board
	pla, opp game.Player
	uf       *[64]int
	m        eblockMaps
	loose    bool // a loose square was crossed since the last reset
}

// FindEBlockade reports whether pla has the opp elephant blockaded. uf is the
// UFDist of the position. The board is mutated temporarily and restored.
func FindEBlockade(b *game.Board, pla game.Player, uf *[64]int) (EBlockade, bool) {
	eloc := b.FindElephant(pla.Opp())
	if eloc == game.ErrSquare {
		return EBlockade{}, false
	}
	s := &eblockSearch{b: b, pla: pla, opp: pla.Opp(), uf: uf}
	immo, ok := s.eleBlockade(eloc)
	if !ok {
		return EBlockade{}, false
	}
	return EBlockade{
		Loc:           eloc,
		ImmoType:      immo,
		RecursedMap:   s.m.recursed,
		HolderHeldMap: s.m.holderHeld & b.Occupied(),
		FreezeHeldMap: s.m.freezeHeld,
	}, true
}

// try runs one top-level side of the search, keeping its maps only when the
// side holds.
func (s *eblockSearch) try(eloc, next int, everLoose *bool) bool {
	saved := s.m
	s.loose = false
	if s.rec(eloc, eloc, next, true) {
		*everLoose = *everLoose || s.loose
		return true
	}
	s.m = saved
	return false
}

func (s *eblockSearch) eleBlockade(eloc int) (ImmoType, bool) {
	b := s.b
	s.m.allowRecheck = b.PieceMaps[s.pla][0]
	s.m.recursed.SetOn(eloc)
	s.m.holderHeld.SetOn(eloc)

	immo := TotalImmo
	everLoose := false
	if !s.try(eloc, centralAdj1[eloc], &everLoose) {
		return immo, false
	}
	c2 := centralAdj2[eloc]
	if !s.try(eloc, c2, &everLoose) {
		immo = CentralBlock
	}

	if e1 := edgeAdj1[eloc]; e1 != eloc && !s.try(eloc, e1, &everLoose) {
		if immo != CentralBlock {
			return CentralBlock, true
		}
		// both sides leak; near the edge a half blocked centre still counts
		if weakCentralBlockOK.Has(eloc) &&
			(b.Owners[c2] != game.NoPlayer && b.IsBlocked(c2) || b.Owners[e1] != game.NoPlayer && b.IsBlocked(e1)) {
			return CentralBlockWeak, true
		}
		return immo, false
	}
	if immo == CentralBlock {
		return immo, true
	}

	if e2 := edgeAdj2[eloc]; e2 != eloc && !s.try(eloc, e2, &everLoose) {
		return AlmostImmo, true
	}
	if everLoose {
		return AlmostImmo, true
	}
	return TotalImmo, true
}

// rec reports whether the opp piece that was on oloc, having come from
// prevloc, is stopped at loc. allowLoose lets loc be an empty or pushable
// square as long as everything behind it holds.
func (s *eblockSearch) rec(oloc, prevloc, loc int, allowLoose bool) bool {
	b, pla, opp := s.b, s.pla, s.opp
	// a piece that blocks one opp piece may be too weak for another, so pla
	// squares can be visited twice
	if (s.m.recursed &^ s.m.allowRecheck).Has(loc) {
		return true
	}
	s.m.recursed.SetOn(loc)

	if b.Owners[loc] != opp && !b.IsTrapSafe2(opp, loc) {
		return true
	}

	switch b.Owners[loc] {
	case opp:
		s.m.holderHeld.SetOn(loc)
		for _, next := range blockOrder(loc) {
			if next == prevloc || next == loc || !b.IsRabOkay(opp, loc, next) {
				continue
			}
			if !s.rec(loc, loc, next, false) {
				return false
			}
		}
		return true

	case game.NoPlayer:
		if !allowLoose {
			return false
		}
		s.loose = true
		return b.WithPiece(loc, opp, game.Elephant, func() bool {
			return s.beyond(loc, prevloc)
		})
	}

	s.m.holderHeld.SetOn(loc)
	if b.Pieces[loc] >= b.Pieces[oloc] {
		return true
	}
	s.m.allowRecheck.SetOff(loc)

	if n := b.CountOpen(loc); n > 0 {
		if !allowLoose || n >= 2 {
			return false
		}
		// pretend the blocker was pushed into its hole and an elephant took its place
		open := b.FindOpen(loc)
		piece := b.Pieces[loc]
		s.loose = true
		return b.WithRemoved(loc, func() bool {
			return b.WithPiece(open, pla, piece, func() bool {
				return b.WithPiece(loc, opp, game.Elephant, func() bool {
					return s.beyond(loc, prevloc)
				})
			})
		})
	}

	// a blocked pla piece on a trap the opp cannot guard thrice stays put
	if !b.IsTrapSafe3(opp, loc) {
		s.m.holderHeld |= game.Radius[1][loc] & b.PieceMaps[pla][0]
		return true
	}

	// phalanx: every other neighbour has to hold too
	for _, next := range blockOrder(loc) {
		if next == prevloc || next == loc {
			continue
		}
		if b.Owners[next] == opp {
			switch {
			case !s.loose && b.IsFrozenC(next):
				s.m.holderHeld.SetOn(next)
				s.m.freezeHeld.SetOn(next)
			case s.uf[next] == 0 || !s.rec(oloc, loc, next, false):
				return false
			default:
				s.m.holderHeld.SetOn(next)
			}
			continue
		}
		s.m.holderHeld.SetOn(next)
	}
	return true
}

// beyond checks every side of loc other than prevloc, for a pretend elephant on loc.
func (s *eblockSearch) beyond(loc, prevloc int) bool {
	for _, next := range blockOrder(loc) {
		if next == prevloc || next == loc {
			continue
		}
		if !s.rec(loc, loc, next, false) {
			return false
		}
	}
	return true
}
