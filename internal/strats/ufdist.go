// Package strats recognises longer term threat patterns (frames, hostages,
// blockades) on top of the board queries and the short tactical searches.
// Everything here is a heuristic: the answers guide move ordering and
// evaluation but make no exactness promise the way the trees do.
package strats

import "arimaa_go/internal/game"

// MaxUFDist caps the estimates returned by UFDist.
const MaxUFDist = 6

// using the one remaining escape square costs this much extra
const immoFrozenCost = 2

type ufStatus int

const (
	ufNeedDefender ufStatus = 1 + iota // a friend must arrive; badLoc is the one escape square
	ufNeedSpace                        // room must be made; badLoc must stay where it is
	ufNeedSpaceAndDefender
)

// UFDist estimates, for every piece on the board, how many steps its owner
// needs before the piece can move again. Thawed mobile pieces get 0; frozen
// pieces and pieces boxed in by their own side get 1..MaxUFDist. Empty squares
// are 0.
func UFDist(b *game.Board) [64]int {
	var uf [64]int
	solveUFDist(b, game.Gold, &uf)
	solveUFDist(b, game.Silver, &uf)
	return uf
}

// canStep reports whether the piece on k may step in dir under the rabbit rule.
func canStep(b *game.Board, pla game.Player, k, dir int) bool {
	return b.Pieces[k] != game.Rabbit || game.RabbitValid(pla, dir)
}

// canWalk reports whether the piece on k may travel along path under the
// rabbit rule.
func canWalk(b *game.Board, pla game.Player, k int, path ...int) bool {
	prev := k
	for _, next := range path {
		if !b.IsRabOkayFrom(pla, k, prev, next) {
			return false
		}
		prev = next
	}
	return true
}

// isImmo reports whether a thawed piece still has nowhere to go: no empty
// neighbour, no friend that could step aside, no weaker enemy to push.
func isImmo(b *game.Board, pla game.Player, ploc int) bool {
	opp := pla.Opp()
	for dir := 0; dir < 4; dir++ {
		j := game.Neighbor(ploc, dir)
		if j == game.ErrSquare || !canStep(b, pla, ploc, dir) || !b.IsTrapSafe2(pla, j) {
			continue
		}
		switch b.Owners[j] {
		case game.NoPlayer:
			return false
		case pla:
			if b.IsOpenToStep(j, game.ErrSquare) && b.WouldBeUF(pla, ploc, ploc, game.BitmapOf(j)) {
				return false
			}
		case opp:
			if b.IsOpen(j) && b.Pieces[j] < b.Pieces[ploc] {
				return false
			}
		}
	}
	return true
}

func thawedImmoStatus(b *game.Board, pla game.Player, ploc int) (int, ufStatus) {
	bad := game.ErrSquare
	// a rabbit cannot use space that opens up behind it
	if b.Pieces[ploc] == game.Rabbit {
		bad = game.Neighbor(ploc, game.Backward(pla))
	}
	def, dom := game.ErrSquare, 0
	for dir := 0; dir < 4; dir++ {
		j := game.Neighbor(ploc, dir)
		if j == game.ErrSquare {
			continue
		}
		switch b.Owners[j] {
		case pla:
			if def != game.ErrSquare {
				return bad, ufNeedSpace
			}
			def = j
		case pla.Opp():
			if b.Pieces[j] > b.Pieces[ploc] {
				dom++
			}
		}
	}
	if dom == 0 {
		return bad, ufNeedSpace
	}
	// dominated with a single defender: that defender may not leave
	return def, ufNeedSpace
}

func frozenStatus(b *game.Board, pla game.Player, ploc int) (int, ufStatus) {
	opp := pla.Opp()
	escape := game.ErrSquare
	for dir := 0; dir < 4; dir++ {
		j := game.Neighbor(ploc, dir)
		if j == game.ErrSquare || !canStep(b, pla, ploc, dir) || !b.IsTrapSafe2(pla, j) {
			continue
		}
		ok := b.Owners[j] == game.NoPlayer ||
			b.Owners[j] == opp && b.Pieces[j] < b.Pieces[ploc] && b.IsOpen(j) ||
			b.Owners[j] == opp && b.IsDominatedByUF(j)
		if !ok {
			continue
		}
		if escape != game.ErrSquare {
			return game.ErrSquare, ufNeedDefender
		}
		escape = j
	}
	if escape == game.ErrSquare {
		return game.ErrSquare, ufNeedSpaceAndDefender
	}
	return escape, ufNeedDefender
}

// ufQuery holds one stuck piece while its distance is refined.
type ufQuery struct {
	b      *game.Board
	pla    game.Player
	uf     *[64]int
	ploc   int
	bad    int
	status ufStatus
	dist   int
}

// the rad functions return the best distance found through helpers at that
// radius. They stop early once lo is reached and skip paths that cannot beat hi.
type ufRad func(q *ufQuery, lo, hi, minNew int) int

func (q *ufQuery) friendsWithin(r int) bool {
	return q.b.PieceMaps[q.pla][0]&game.Disk[r][q.ploc]&^game.BitmapOf(q.ploc) != 0
}

func (q *ufQuery) badCost(loc int) int {
	if loc == q.bad {
		return immoFrozenCost
	}
	return 0
}

func ufRad2(q *ufQuery, lo, hi, minNew int) int {
	b, pla, opp := q.b, q.pla, q.pla.Opp()
	best := MaxUFDist
	try := func(d int) bool {
		if d < best {
			best = d
		}
		return best <= lo
	}

	// a mobile neighbour only has to step away
	if q.status == ufNeedSpace {
		for dir := 0; dir < 4; dir++ {
			j := game.Neighbor(q.ploc, dir)
			if j != game.ErrSquare && j != q.bad && b.Owners[j] == pla && try(q.uf[j]+1) {
				return best
			}
		}
	}
	if !q.friendsWithin(2) {
		return best
	}

	for dir := 0; dir < 4; dir++ {
		loc := game.Neighbor(q.ploc, dir)
		if loc == game.ErrSquare {
			continue
		}
		extra := q.badCost(loc)
		switch b.Owners[loc] {
		case game.NoPlayer:
			if q.status == ufNeedSpace {
				extra++
			}
			if minNew+extra+1 >= hi {
				continue
			}
			for d := 0; d < 4; d++ {
				j := game.Neighbor(loc, d)
				if j == game.ErrSquare || j == q.ploc || b.Owners[j] != pla || !canStep(b, pla, j, game.OppDir(d)) {
					continue
				}
				if try(q.uf[j] + 1 + extra) {
					return best
				}
			}
		case opp:
			if b.WouldBeUF(pla, q.ploc, loc, 0) {
				extra = 0
			} else if !b.IsOpen(loc) {
				continue
			}
			if minNew+extra+2 >= hi {
				continue
			}
			for d := 0; d < 4; d++ {
				j := game.Neighbor(loc, d)
				if j == game.ErrSquare || j == q.ploc || b.Owners[j] != pla || b.Pieces[j] <= b.Pieces[loc] {
					continue
				}
				if try(q.uf[j] + 2 + extra) {
					return best
				}
			}
		}
	}
	return best
}

func ufRad3(q *ufQuery, lo, hi, minNew int) int {
	if !q.friendsWithin(3) {
		return MaxUFDist
	}
	b, pla, opp := q.b, q.pla, q.pla.Opp()
	best := MaxUFDist
	try := func(d int) bool {
		if d < best {
			best = d
		}
		return best <= lo
	}

	for dir := 0; dir < 4; dir++ {
		loc := game.Neighbor(q.ploc, dir)
		if loc == game.ErrSquare {
			continue
		}
		ifExtra := q.badCost(loc)
		switch b.Owners[loc] {
		case game.NoPlayer:
			if q.status == ufNeedSpace {
				ifExtra++
			}
			for d := 0; d < 4; d++ {
				loc2 := game.Neighbor(loc, d)
				if loc2 == game.ErrSquare || loc2 == q.ploc {
					continue
				}
				switch b.Owners[loc2] {
				case game.NoPlayer:
					extra := 2
					if !b.IsTrapSafe2(pla, loc2) {
						if b.TrapGuardCounts[pla][game.TrapIndex[loc2]] == 0 {
							extra += 2
						} else {
							extra++
						}
					}
					if minNew+extra+ifExtra >= hi {
						continue
					}
					for e := 0; e < 4; e++ {
						j := game.Neighbor(loc2, e)
						if j == game.ErrSquare || j == loc || b.Owners[j] != pla || !canWalk(b, pla, j, loc2, loc) {
							continue
						}
						extra2 := 0
						if !b.WouldBeUF(pla, j, loc2, game.BitmapOf(j)) {
							extra2 = 1
						}
						if try(q.uf[j] + extra + extra2 + ifExtra) {
							return best
						}
					}
				case opp:
					if !b.IsTrapSafe2(pla, loc2) || minNew+3+ifExtra >= hi {
						continue
					}
					for e := 0; e < 4; e++ {
						j := game.Neighbor(loc2, e)
						if j == game.ErrSquare || j == loc || b.Owners[j] != pla || b.Pieces[j] <= b.Pieces[loc2] {
							continue
						}
						if try(q.uf[j] + 3 + ifExtra) {
							return best
						}
					}
				}
			}
		case opp:
			if b.WouldBeUF(pla, q.ploc, loc, 0) {
				ifExtra = 0
			} else if !b.IsOpen2(loc) {
				continue
			}
			if minNew+3+ifExtra >= hi {
				continue
			}
			for d := 0; d < 4; d++ {
				loc2 := game.Neighbor(loc, d)
				if loc2 == game.ErrSquare || loc2 == q.ploc || b.Owners[loc2] != game.NoPlayer || !b.IsTrapSafe2(pla, loc2) {
					continue
				}
				for e := 0; e < 4; e++ {
					j := game.Neighbor(loc2, e)
					if j == game.ErrSquare || j == loc || b.Owners[j] != pla || b.Pieces[j] <= b.Pieces[loc] {
						continue
					}
					extra2 := 0
					if !b.WouldBeUF(pla, j, loc2, game.BitmapOf(j)) {
						extra2 = 1
					}
					if try(q.uf[j] + 3 + extra2 + ifExtra) {
						return best
					}
				}
			}
		}
	}
	return best
}

func ufRad4(q *ufQuery, lo, hi, minNew int) int {
	if !q.friendsWithin(4) {
		return MaxUFDist
	}
	b, pla, opp := q.b, q.pla, q.pla.Opp()
	best := MaxUFDist

	for dir := 0; dir < 4; dir++ {
		loc := game.Neighbor(q.ploc, dir)
		if loc == game.ErrSquare || b.Owners[loc] == pla {
			continue
		}
		ifExtra := q.badCost(loc)
		strReq := game.Empty
		extra := 3
		if b.Owners[loc] == opp {
			strReq = b.Pieces[loc] + 1
			extra++
		} else if q.status == ufNeedSpace {
			extra++
		}
		if minNew+extra+ifExtra >= hi {
			continue
		}
		for d := 0; d < 4; d++ {
			loc2 := game.Neighbor(loc, d)
			if loc2 == game.ErrSquare || loc2 == q.ploc || b.Owners[loc2] != game.NoPlayer || !b.IsTrapSafe1(pla, loc2) {
				continue
			}
			for e := 0; e < 4; e++ {
				loc3 := game.Neighbor(loc2, e)
				if loc3 == game.ErrSquare || loc3 == loc || b.Owners[loc3] != game.NoPlayer || !b.IsTrapSafe2(pla, loc3) {
					continue
				}
				for f := 0; f < 4; f++ {
					j := game.Neighbor(loc3, f)
					if j == game.ErrSquare || j == loc2 || b.Owners[j] != pla || b.Pieces[j] < strReq {
						continue
					}
					if !canWalk(b, pla, j, loc3, loc2, loc) {
						continue
					}
					if !b.WouldBeUF(pla, j, loc3, game.BitmapOf(j)) || !b.WouldBeUF(pla, j, loc2, 0) {
						continue
					}
					if d := q.uf[j] + extra + ifExtra; d < best {
						best = d
						if best <= lo {
							return best
						}
					}
				}
			}
		}
	}
	return best
}

// each round widens the helper radius; pieces already settled at min+1 or
// less drop out before the next round
var ufRounds = [...]struct {
	min  int
	rads []ufRad
}{
	{1, []ufRad{ufRad2}},
	{2, []ufRad{ufRad2, ufRad3}},
	{3, []ufRad{ufRad2, ufRad3, ufRad4}},
}

func solveUFDist(b *game.Board, pla game.Player, uf *[64]int) {
	pieces := b.PieceMaps[pla][0]
	var stuck []ufQuery
	// 先处理没冻住但动不了的子，再处理冻住的
	for m := pieces &^ b.FrozenMap; m != 0; {
		ploc := m.NextBit()
		if !isImmo(b, pla, ploc) {
			uf[ploc] = 0
			continue
		}
		bad, st := thawedImmoStatus(b, pla, ploc)
		stuck = append(stuck, ufQuery{b: b, pla: pla, uf: uf, ploc: ploc, bad: bad, status: st, dist: MaxUFDist})
		uf[ploc] = MaxUFDist
	}
	for m := pieces & b.FrozenMap; m != 0; {
		ploc := m.NextBit()
		bad, st := frozenStatus(b, pla, ploc)
		stuck = append(stuck, ufQuery{b: b, pla: pla, uf: uf, ploc: ploc, bad: bad, status: st, dist: MaxUFDist})
		uf[ploc] = MaxUFDist
	}

	for round, r := range ufRounds {
		kept := stuck[:0]
		for _, q := range stuck {
			extraCost := 0
			if q.status == ufNeedSpaceAndDefender {
				extraCost = 1
			}
			settled := false
			for i, rad := range r.rads {
				d := min(rad(&q, r.min, q.dist, round-i)+extraCost, MaxUFDist)
				if d < q.dist {
					q.dist = d
					uf[q.ploc] = d
					if d <= r.min+1 {
						settled = true
						break
					}
				}
			}
			if !settled {
				kept = append(kept, q)
			}
		}
		stuck = kept
	}
}
