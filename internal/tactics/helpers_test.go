package tactics

import (
	"testing"

	"arimaa_go/internal/game"
	"lukechampine.com/frand"
)

// sparseBoards returns played-out positions with few pieces, where short
// tactics are common and brute force stays cheap.
func sparseBoards(rng *frand.RNG, n, maxPieces int) []*game.Board {
	out := make([]*game.Board, 0, n)
	for len(out) < n {
		b := game.RandomSparse(rng, 3+rng.Intn(maxPieces-2), 3+rng.Intn(maxPieces-2))
		game.RandomPlayout(b, rng, rng.Intn(8))
		if b.GetWinner() != game.NoPlayer {
			continue
		}
		out = append(out, b)
	}
	return out
}

func asPla(b *game.Board, pla game.Player) *game.Board {
	c := *b
	c.SetPlaStep(pla, 0)
	return &c
}

func mirrorLoc(k int) int { return game.Y(k)*8 + 7 - game.X(k) }

// mustLegal plays m for pla on a copy of b and fails the test if it is illegal.
func mustLegal(t *testing.T, b *game.Board, pla game.Player, m game.Move) *game.Board {
	t.Helper()
	c := asPla(b, pla)
	if !c.MakeMoveLegal(m) {
		t.Fatalf("%s is not legal for %v\n%s", b.MoveString(m), pla, b)
	}
	return c
}
