package tactics

import (
	"testing"

	"arimaa_go/internal/game"
)

func TestCanElimPositions(t *testing.T) {
	cases := []struct {
		name  string
		board string
		steps int
		want  bool
	}{
		{"no rabbits left", `
			........
			........
			..x..x..
			........
			........
			..x..x..
			...c....
			R.......
			gold`, 2, true},
		{"last rabbit on the trap edge", `
			........
			........
			..x..x..
			........
			..rD....
			..x..x..
			........
			R.......
			gold`, 2, true},
		{"second rabbit out of reach", `
			.......r
			........
			..x..x..
			........
			..rD....
			..x..x..
			........
			R.......
			gold`, 4, false},
		{"two rabbits at two traps", `
			........
			........
			..x..x..
			........
			..rD.rE.
			..x..x..
			........
			R.......
			gold`, 4, true},
		{"two rabbits, three steps", `
			........
			........
			..x..x..
			........
			..rD.rE.
			..x..x..
			........
			R.......
			gold`, 3, false},
		{"three rabbits", `
			r.......
			........
			..x..x..
			........
			..rD.rE.
			..x..x..
			........
			R.......
			gold`, 4, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := game.MustParseBoard(tc.board)
			before := *b
			if got := CanElim(b, game.Gold, tc.steps); got != tc.want {
				t.Fatalf("CanElim=%v want %v\n%s", got, tc.want, b)
			}
			if *b != before {
				t.Fatalf("CanElim changed the board")
			}
			if got := BruteElim(b, game.Gold, tc.steps); got != tc.want {
				t.Fatalf("brute force disagrees with the expected %v", tc.want)
			}
		})
	}
}

func TestCanElimMatchesBruteForce(t *testing.T) {
	rng := game.NewSeededRand(t.Name())
	checked := 0
	for checked < 30 {
		b := game.RandomSparse(rng, 3+rng.Intn(7), 2+rng.Intn(5))
		if b.GetWinner() != game.NoPlayer {
			continue
		}
		pla := b.Player
		if n := b.PieceCounts[pla.Opp()][game.Rabbit]; n == 0 || n > 2 {
			continue
		}
		checked++
		if CanElim(b, pla, 4) && !BruteElim(b, pla, 4) {
			t.Fatalf("CanElim found an elimination brute force does not\n%s", b)
		}
		if got, want := CanElim(b, pla, 2), BruteElim(b, pla, 2); got != want {
			t.Fatalf("CanElim(2)=%v brute force %v\n%s", got, want, b)
		}
	}
}

func TestCanElimBudgetOverFour(t *testing.T) {
	b := game.MustParseBoard(`
		........
		........
		..x..x..
		........
		..rD....
		..x..x..
		........
		R.......
		gold`)
	if !CanElim(b, game.Gold, 4) {
		t.Fatalf("last rabbit should fall in four")
	}
	if CanElim(b, game.Gold, 5) {
		t.Fatalf("a five step budget should find nothing")
	}
}
