package tactics

import (
	"sync"

	"arimaa_go/internal/game"
)

// NoGoal is the goal distance reported when no goal exists within the budget.
const NoGoal = 5

// MaxGoalSteps is the deepest goal the tree looks for.
const MaxGoalSteps = 4

// goalSearch follows one rabbit at a time through a cascade of per-distance
// cases. With d steps and the rabbit gdist rows out:
//
//	d == gdist:     walk straight in
//	d == gdist + 1: one spare step, for a sidestep or a helper step
//	d >= gdist + 2: also a push or pull that clears or thaws the path
//
// Helper steps must touch the rabbit's two-square neighbourhood and pushes or
// pulls the squares next to the rabbit or in front of it. Goals that need
// help from further away are not found.
type goalSearch struct {
	b     *game.Board
	pla   game.Player
	fwd   int
	cache *FailCache
	move  game.Move

	units [MaxGoalSteps + 1][]game.Move
	recs  [MaxGoalSteps + 1][4]game.TempRecord
}

func (g *goalSearch) isRabbit(r int) bool {
	return g.b.Owners[r] == g.pla && g.b.Pieces[r] == game.Rabbit
}

// extraCost is the lower bound on steps beyond gdist: one for being frozen,
// one for a taken forward square.
func (g *goalSearch) extraCost(r int) int {
	extra := 0
	if g.b.IsFrozen(r) {
		extra++
	}
	if g.b.Owners[game.Neighbor(r, g.fwd)] != game.NoPlayer {
		extra++
	}
	return extra
}

// within reports whether the rabbit on r reaches goal in at most n steps,
// trying the shorter distances first.
func (g *goalSearch) within(r, n int, prefix game.Move, ply int) bool {
	if !g.isRabbit(r) {
		return false
	}
	gd := game.GoalYDist[g.pla][r]
	if gd == 0 {
		g.move = prefix
		return true
	}
	if n <= 0 || gd+g.extraCost(r) > n {
		return false
	}
	var key uint64
	if n >= 3 && g.cache != nil {
		key = g.cache.key(g.b, g.pla, r)
		if g.cache.probe(key, n) {
			return false
		}
	}
	for d := 1; d <= n; d++ {
		if g.exact(r, d, prefix, ply) {
			return true
		}
	}
	if n >= 3 && g.cache != nil {
		g.cache.store(key, n)
	}
	return false
}

func (g *goalSearch) exact(r, d int, prefix game.Move, ply int) bool {
	switch d {
	case 1:
		return g.goal1S(r, prefix)
	case 2:
		return g.goal2S(r, prefix, ply)
	case 3:
		return g.goal3S(r, prefix, ply)
	case 4:
		return g.goal4S(r, prefix, ply)
	}
	return false
}

// goal1S: one row out, thawed, nothing in front.
func (g *goalSearch) goal1S(r int, prefix game.Move) bool {
	if game.GoalYDist[g.pla][r] != 1 || g.b.IsFrozen(r) {
		return false
	}
	if g.b.Owners[game.Neighbor(r, g.fwd)] != game.NoPlayer {
		return false
	}
	g.move = prefix.Append(game.MakeStep(r, g.fwd))
	return true
}

func (g *goalSearch) goal2S(r int, prefix game.Move, ply int) bool {
	switch game.GoalYDist[g.pla][r] {
	case 1:
		f := game.Neighbor(r, g.fwd)
		if g.b.Owners[f] == game.NoPlayer {
			// 前面是空的，那就是被冻住了：走一步解冻
			return g.helperStep(r, 1, game.Radius[1][r], prefix, ply)
		}
		if g.b.IsFrozen(r) {
			return false
		}
		if g.b.Owners[f] == g.pla && g.helperStep(r, 1, game.BitmapOf(f), prefix, ply) {
			return true
		}
		return g.rabbitStep(r, 1, false, prefix, ply)
	case 2:
		return g.rabbitStep(r, 1, true, prefix, ply)
	}
	return false
}

func (g *goalSearch) goal3S(r int, prefix game.Move, ply int) bool {
	switch game.GoalYDist[g.pla][r] {
	case 1:
		return g.helperStep(r, 2, game.Disk[2][r], prefix, ply) ||
			g.rabbitStep(r, 2, false, prefix, ply) ||
			g.clearPath(r, 1, prefix, ply)
	case 2:
		return g.rabbitStep(r, 2, false, prefix, ply) ||
			g.helperStep(r, 2, game.Disk[2][r], prefix, ply)
	case 3:
		return g.rabbitStep(r, 2, true, prefix, ply)
	}
	return false
}

func (g *goalSearch) goal4S(r int, prefix game.Move, ply int) bool {
	switch game.GoalYDist[g.pla][r] {
	case 1, 2:
		return g.helperStep(r, 3, game.Disk[2][r], prefix, ply) ||
			g.rabbitStep(r, 3, false, prefix, ply) ||
			g.clearPath(r, 2, prefix, ply)
	case 3:
		return g.rabbitStep(r, 3, false, prefix, ply) ||
			g.helperStep(r, 3, game.Disk[2][r], prefix, ply)
	case 4:
		return g.rabbitStep(r, 3, true, prefix, ply)
	}
	return false
}

// rabbitStep moves the rabbit one square, forward only when straight is set,
// and continues from its new square with rem steps.
func (g *goalSearch) rabbitStep(r, rem int, straight bool, prefix game.Move, ply int) bool {
	if g.b.IsFrozen(r) {
		return false
	}
	back := game.Backward(g.pla)
	for dir := 0; dir < 4; dir++ {
		if dir == back || straight && dir != g.fwd {
			continue
		}
		k1 := game.Neighbor(r, dir)
		if k1 == game.ErrSquare || g.b.Owners[k1] != game.NoPlayer {
			continue
		}
		u := game.MoveOf(game.MakeStep(r, dir))
		if g.apply(u, prefix, ply, func(p game.Move, ply int) bool { return g.within(k1, rem, p, ply) }) {
			return true
		}
	}
	return false
}

// helperStep steps some other pla piece touching rel and continues with the
// rabbit where it is.
func (g *goalSearch) helperStep(r, rem int, rel game.Bitmap, prefix game.Move, ply int) bool {
	g.units[ply] = game.GenStepsInvolving(g.b, g.pla, g.units[ply][:0], rel)
	for _, u := range g.units[ply] {
		if u.StepAt(0).K0() == r {
			continue
		}
		if g.apply(u, prefix, ply, func(p game.Move, ply int) bool { return g.within(r, rem, p, ply) }) {
			return true
		}
	}
	return false
}

// clearPath pushes or pulls an enemy piece next to the rabbit or its forward
// square: the blocker, or the freezer.
func (g *goalSearch) clearPath(r, rem int, prefix game.Move, ply int) bool {
	rel := game.Radius[1][r] | game.Disk[1][game.Neighbor(r, g.fwd)]
	g.units[ply] = game.GenPushPullsInvolving(g.b, g.pla, g.units[ply][:0], rel)
	for _, u := range g.units[ply] {
		if src, _ := victimOf(g.b, g.pla, u); !rel.Has(src) {
			continue
		}
		if g.apply(u, prefix, ply, func(p game.Move, ply int) bool { return g.within(r, rem, p, ply) }) {
			return true
		}
	}
	return false
}

func (g *goalSearch) apply(u, prefix game.Move, ply int, next func(game.Move, int) bool) bool {
	recs := g.b.TempMove(u, g.recs[ply][:0])
	ok := next(prefix.Concat(u), ply+1)
	g.b.UndoTempMove(recs)
	return ok
}

// run returns the goal distance over the rabbits in cand, keeping the move of
// the shortest in b.GoalTreeMove.
func (g *goalSearch) run(cand game.Bitmap, steps int) int {
	g.b.GoalTreeMove = game.ErrorMove
	if cand&game.GoalMask[g.pla] != 0 {
		return 0
	}
	steps = min(steps, MaxGoalSteps)
	best := NoGoal
	cand &= game.PGoalMasks[max(steps, 0)][g.pla]
	for cand != 0 && best > 1 {
		r := cand.NextBit()
		if g.within(r, min(steps, best-1), game.ErrorMove, 0) {
			best = g.move.NumSteps()
			g.b.GoalTreeMove = g.move
		}
	}
	return best
}

var cachePool = sync.Pool{New: func() any { return NewFailCache() }}

// GoalDist returns the fewest steps, 0 to 4, pla needs to get any rabbit to
// goal from b, or NoGoal if steps are not enough. The move found is left in
// b.GoalTreeMove, ErrorMove when there is none. Each call borrows its own
// failure cache, so concurrent calls on different boards do not share state.
func GoalDist(b *game.Board, pla game.Player, steps int) int {
	c := cachePool.Get().(*FailCache)
	defer cachePool.Put(c)
	return c.GoalDist(b, pla, steps)
}

// GoalDistAt is GoalDist for the single rabbit on rloc.
func GoalDistAt(b *game.Board, pla game.Player, steps, rloc int) int {
	c := cachePool.Get().(*FailCache)
	defer cachePool.Put(c)
	return c.GoalDistAt(b, pla, steps, rloc)
}

// GoalDist is the package GoalDist using c. A nil cache searches without one.
func (c *FailCache) GoalDist(b *game.Board, pla game.Player, steps int) int {
	g := goalSearch{b: b, pla: pla, fwd: game.Forward(pla), cache: c}
	return g.run(b.PieceMaps[pla][game.Rabbit], steps)
}

// GoalDistAt is the package GoalDistAt using c.
func (c *FailCache) GoalDistAt(b *game.Board, pla game.Player, steps, rloc int) int {
	if rloc < 0 || rloc >= 64 || b.Owners[rloc] != pla || b.Pieces[rloc] != game.Rabbit {
		game.Violation("GoalDistAt: no %v rabbit on %d", pla, rloc)
	}
	g := goalSearch{b: b, pla: pla, fwd: game.Forward(pla), cache: c}
	return g.run(game.BitmapOf(rloc), steps)
}

// GenGoalThreats lists the moves of up to steps steps that do not score now
// but leave pla a goal within a full turn if the opponent passes. Hm is
// 5 minus that goal distance.
func GenGoalThreats(b *game.Board, pla game.Player, steps int) []ScoredMove {
	saved := b.GoalTreeMove
	defer func() { b.GoalTreeMove = saved }()

	c := cachePool.Get().(*FailCache)
	defer cachePool.Put(c)
	var out []ScoredMove
	var recs []game.TempRecord
	for _, m := range game.GenFullMoves(b, pla, steps) {
		recs = b.TempMove(m, recs[:0])
		if !b.IsGoal(pla) {
			if d := c.GoalDist(b, pla, MaxGoalSteps); d < NoGoal {
				out = append(out, ScoredMove{Move: m, Hm: NoGoal - d})
			}
		}
		b.UndoTempMove(recs)
	}
	return out
}
