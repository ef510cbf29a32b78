package strats

import (
	"fmt"

	"arimaa_go/internal/game"
)

// HostageThreat is an enemy piece held frozen near a trap, waiting to be
// dragged in.
type HostageThreat struct {
	Kt          int
	HostageLoc  int
	HolderLoc   int
	HolderLoc2  int // a second dominating neighbour, ErrSquare if none
	ThreatSteps int // estimated steps to capture
}

func (t HostageThreat) String() string {
	return fmt.Sprintf("hostage %s held by %s %s trap %s in %d",
		game.SquareName(t.HostageLoc), game.SquareName(t.HolderLoc), game.SquareName(t.HolderLoc2),
		game.SquareName(t.Kt), t.ThreatSteps)
}

// hostage squares per trap, the pla's back corner around each trap
var hostageLocs = [4][9]int{
	{25, 16, 9, 2, 11, 8, 1, 0, 3},       // c3
	{30, 23, 14, 5, 12, 15, 6, 7, 4},     // f3
	{33, 40, 49, 58, 51, 48, 57, 56, 59}, // c6
	{38, 47, 54, 61, 52, 55, 62, 63, 60}, // f6
}

// FindHostages lists the opp pieces around trap kt that a stronger pla piece
// dominates while they cannot move (uf[loc] > 0), with an estimate of how many
// steps the capture at kt would take.
func FindHostages(b *game.Board, pla game.Player, kt int, uf *[64]int) []HostageThreat {
	ti := game.TrapIndex[kt]
	if ti < 0 {
		game.Violation("FindHostages: %s is not a trap", game.SquareName(kt))
	}
	opp := pla.Opp()
	var out []HostageThreat
	for _, loc := range hostageLocs[ti] {
		if b.Owners[loc] != opp {
			continue
		}
		holder, holder2 := game.ErrSquare, game.ErrSquare
		for dir := 0; dir < 4; dir++ {
			h := game.Neighbor(loc, dir)
			if h != game.ErrSquare && b.Owners[h] == pla && b.Pieces[h] > b.Pieces[loc] {
				holder2 = holder
				holder = h
			}
		}
		if holder == game.ErrSquare || uf[loc] <= 0 {
			continue
		}
		out = append(out, HostageThreat{
			Kt:          kt,
			HostageLoc:  loc,
			HolderLoc:   holder,
			HolderLoc2:  holder2,
			ThreatSteps: hostageThreatDist(b, pla, loc, holder, holder2, kt, uf),
		})
	}
	return out
}

func hostageThreatDist(b *game.Board, pla game.Player, hloc, holder, holder2, kt int, uf *[64]int) int {
	d := game.Manhattan[hloc][kt]*2 + capInterferePathCost(b, pla, kt, hloc)
	// our own piece must leave the trap first
	if b.Owners[kt] == pla && b.Pieces[kt] <= b.Pieces[hloc] {
		d++
	}
	ufd := uf[holder]
	if holder2 != game.ErrSquare && ufd > 0 {
		ufd = min(ufd, uf[holder2])
	}
	return d + ufd
}

// capInterfereCost is the extra work a pla piece on loc causes when the
// hostage on eloc has to be dragged through.
func capInterfereCost(b *game.Board, pla game.Player, eloc, loc int) int {
	if b.Owners[loc] != pla {
		return 0
	}
	cost := 0
	if b.Pieces[loc] <= b.Pieces[eloc] {
		cost++
	}
	if b.IsFrozen(loc) {
		cost++
	}
	return cost
}

// capInterferePathCost sums capInterfereCost along the path from eloc to kt:
// the trap itself, the trap's neighbour toward eloc and, for longer paths,
// eloc's neighbour toward kt. On a diagonal the cheaper of the two candidate
// squares is used.
func capInterferePathCost(b *game.Board, pla game.Player, kt, eloc int) int {
	if game.Manhattan[kt][eloc] < 2 {
		return 0
	}
	dx := game.X(eloc) - game.X(kt)
	dy := game.Y(eloc) - game.Y(kt)
	cost := capInterfereCost(b, pla, eloc, kt)
	cost += towardCost(b, pla, eloc, kt, dx, dy)
	if game.Manhattan[kt][eloc] > 2 {
		cost += towardCost(b, pla, eloc, eloc, -dx, -dy)
	}
	return cost
}

// towardCost is the interference on the neighbour of from in the direction
// (dx, dy), the cheaper option when both dx and dy are non-zero.
func towardCost(b *game.Board, pla game.Player, eloc, from, dx, dy int) int {
	var vert, horiz int
	switch {
	case dy < 0:
		vert = from - 8
	case dy > 0:
		vert = from + 8
	}
	switch {
	case dx < 0:
		horiz = from - 1
	case dx > 0:
		horiz = from + 1
	}
	switch {
	case dx == 0:
		return capInterfereCost(b, pla, eloc, vert)
	case dy == 0:
		return capInterfereCost(b, pla, eloc, horiz)
	}
	return min(capInterfereCost(b, pla, eloc, vert), capInterfereCost(b, pla, eloc, horiz))
}
