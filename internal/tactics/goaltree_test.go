package tactics

import (
	"fmt"
	"testing"

	"golang.org/x/sync/errgroup"

	"arimaa_go/internal/game"
)

func TestGoalDistClearPath(t *testing.T) {
	b := game.MustParseBoard(`
		........
		........
		..x.Rx..
		........
		........
		..x..x..
		.r......
		........
		gold`)
	if d := GoalDist(b, game.Gold, 1); d != NoGoal {
		t.Fatalf("one step is not enough, got %d", d)
	}
	if b.GoalTreeMove != game.ErrorMove {
		t.Fatalf("failed search left a move")
	}
	if d := GoalDist(b, game.Gold, 4); d != 2 {
		t.Fatalf("GoalDist=%d want 2", d)
	}
	m := b.GoalTreeMove
	if m.NumSteps() != 2 {
		t.Fatalf("recorded move %s", m)
	}
	c := mustLegal(t, b, game.Gold, m)
	if w := c.GetWinner(); w != game.Gold {
		t.Fatalf("winner %v after %s", w, b.MoveString(m))
	}
	c.MakeMove(game.PassMove)
	if w := c.GetWinner(); w != game.Gold {
		t.Fatalf("winner %v after the turn ends", w)
	}
	if d := GoalDist(b, game.Silver, 4); d != 1 {
		t.Fatalf("silver rabbit on b2 is one step away, got %d", d)
	}
}

func TestGoalDistMatchesBruteForce(t *testing.T) {
	rng := game.NewSeededRand(t.Name())
	for i, b := range sparseBoards(rng, 60, 10) {
		steps := 3
		if i%5 == 0 {
			steps = 4
		}
		for _, pla := range []game.Player{game.Silver, game.Gold} {
			before := *b
			got := GoalDist(b, pla, steps)
			move := b.GoalTreeMove
			b.GoalTreeMove = before.GoalTreeMove
			if *b != before {
				t.Fatalf("GoalDist changed the board\n%s", b)
			}
			// the tree may miss goals but must never report one that is not there
			want := BruteGoal(b, pla, steps)
			if got < want {
				t.Fatalf("GoalDist(%v, %d)=%d, brute force %d\n%s", pla, steps, got, want, b)
			}
			if want <= 1 && got != want {
				t.Fatalf("one step goal missed: %d vs %d\n%s", got, want, b)
			}
			if got == 0 || got == NoGoal {
				continue
			}
			if move.NumSteps() != got {
				t.Fatalf("move %s for distance %d", move, got)
			}
			if c := mustLegal(t, b, pla, move); !c.IsGoal(pla) {
				t.Fatalf("%s does not reach goal\n%s", b.MoveString(move), b)
			}
		}
	}
}

func TestGoalDistAtSingleRabbit(t *testing.T) {
	rng := game.NewSeededRand(t.Name())
	for _, b := range sparseBoards(rng, 40, 12) {
		pla := b.Player
		best := NoGoal
		rabbits := b.PieceMaps[pla][game.Rabbit]
		for rabbits != 0 {
			r := rabbits.NextBit()
			d := GoalDistAt(b, pla, 3, r)
			if d < NoGoal {
				mustLegal(t, b, pla, b.GoalTreeMove)
				if !game.IsGoal[pla][follow(b.GoalTreeMove, r)] {
					t.Fatalf("%s does not take the rabbit on %s to goal", b.MoveString(b.GoalTreeMove), game.SquareName(r))
				}
			}
			best = min(best, d)
		}
		if got := GoalDist(b, pla, 3); got != best {
			t.Fatalf("GoalDist %d, best single rabbit %d\n%s", got, best, b)
		}
	}
}

// follow tracks the piece starting on k through the steps of m.
func follow(m game.Move, k int) int {
	for _, st := range m.Steps() {
		if st.IsReal() && st.K0() == k {
			k = st.K1()
		}
	}
	return k
}

func TestGoalDistSymmetry(t *testing.T) {
	rng := game.NewSeededRand(t.Name())
	for _, b := range sparseBoards(rng, 40, 12) {
		flip, mirror := b.Flipped(), b.Mirrored()
		for _, pla := range []game.Player{game.Silver, game.Gold} {
			want := GoalDist(b, pla, 4)
			if got := GoalDist(flip, pla.Opp(), 4); got != want {
				t.Fatalf("color flip: %d vs %d\n%s", want, got, b)
			}
			if got := GoalDist(mirror, pla, 4); got != want {
				t.Fatalf("mirror: %d vs %d\n%s", want, got, b)
			}
		}
	}
}

func TestGenGoalThreats(t *testing.T) {
	b := game.MustParseBoard(`
		.......r
		........
		..x..x..
		........
		........
		..x.Rx..
		........
		........
		gold`)
	if d := GoalDist(b, game.Gold, 4); d != NoGoal {
		t.Fatalf("rabbit on e3 is five steps out, got %d", d)
	}
	threats := GenGoalThreats(b, game.Gold, 1)
	want := game.MoveOf(game.MakeStep(20, game.DirN))
	found := false
	for _, sm := range threats {
		if sm.Move == want {
			found = sm.Hm == 1
		}
		c := mustLegal(t, b, game.Gold, sm.Move)
		if c.IsGoal(game.Gold) || GoalDist(c, game.Gold, 4) != NoGoal-sm.Hm {
			t.Fatalf("%s is not a threat of value %d", b.MoveString(sm.Move), sm.Hm)
		}
	}
	if !found {
		t.Fatalf("Re3n should threaten a four step goal, got %v", threats)
	}
}

func TestFailCacheStats(t *testing.T) {
	c := NewFailCache()
	b := game.MustParseBoard(`
		........
		........
		..x..x..
		...R....
		........
		..x..x..
		........
		........
		gold`)
	if d := c.GoalDist(b, game.Gold, 4); d != 3 {
		t.Fatalf("GoalDist=%d want 3", d)
	}
	probes, _, _ := c.Stats()
	if probes == 0 {
		t.Fatalf("search never probed the cache")
	}
	// same position again: the cached failures are hit, the answer is the same
	if d := c.GoalDist(b, game.Gold, 4); d != 3 {
		t.Fatalf("second GoalDist=%d want 3", d)
	}
	c.Clear()
	if p, h, _ := c.Stats(); p != 0 || h != 0 {
		t.Fatalf("stats not cleared")
	}
	if d := c.GoalDist(b, game.Gold, 2); d != NoGoal {
		t.Fatalf("two steps from d5, got %d", d)
	}
}

func TestGoalDistConcurrentCallers(t *testing.T) {
	rng := game.NewSeededRand(t.Name())
	boards := sparseBoards(rng, 40, 12)
	want := make([][2]int, len(boards))
	for i, b := range boards {
		for _, pla := range []game.Player{game.Silver, game.Gold} {
			want[i][pla] = GoalDist(b, pla, 4)
		}
	}
	var g errgroup.Group
	for w := 0; w < 4; w++ {
		g.Go(func() error {
			for i, b := range boards {
				c := *b
				for _, pla := range []game.Player{game.Silver, game.Gold} {
					if d := GoalDist(&c, pla, 4); d != want[i][pla] {
						return fmt.Errorf("board %d %v: %d, alone %d", i, pla, d, want[i][pla])
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}
