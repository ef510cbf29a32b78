package game

import "testing"

func TestChangesMatchPlayedMoves(t *testing.T) {
	rng := NewSeededRand(t.Name())
	for _, b := range RandomBoards(rng, 12) {
		moves := GenFullMoves(b, b.Player, 4)
		for i := 0; i < len(moves); i += 1 + rng.Intn(7) {
			m := moves[i]
			after := *b
			after.MakeMove(m)
			changes := b.Changes(m)

			var captured [2][NumPieceTypes]int
			var touched Bitmap
			for _, ch := range changes {
				owner, piece := b.Owners[ch.Src], b.Pieces[ch.Src]
				if owner == NoPlayer {
					t.Fatalf("%s: change from empty square %s", b.MoveString(m), SquareName(ch.Src))
				}
				touched.SetOn(ch.Src)
				if ch.Dest == ErrSquare {
					captured[owner][piece]++
					continue
				}
				touched.SetOn(ch.Dest)
				if after.Owners[ch.Dest] != owner || after.Pieces[ch.Dest] != piece {
					t.Fatalf("%s: %s should end on %s\n%s", b.MoveString(m), SquareName(ch.Src), SquareName(ch.Dest), b)
				}
			}
			for pla := Silver; pla <= Gold; pla++ {
				for p := Rabbit; p < NumPieceTypes; p++ {
					lost := b.PieceCounts[pla][p] - after.PieceCounts[pla][p]
					if lost != captured[pla][p] {
						t.Fatalf("%s: %v lost %d of %v, changes say %d\n%s", b.MoveString(m), pla, lost, p, captured[pla][p], b)
					}
				}
			}
			for k := 0; k < 64; k++ {
				differs := b.Owners[k] != after.Owners[k] || b.Pieces[k] != after.Pieces[k]
				if differs && !touched.Has(k) {
					t.Fatalf("%s: square %s changed but is not listed\n%s", b.MoveString(m), SquareName(k), b)
				}
			}
			if ChangedSquares(changes)&^touched != 0 {
				t.Fatalf("ChangedSquares reports extra squares")
			}
		}
	}
}

func TestChangesCaptureOnTrap(t *testing.T) {
	// the gold cat on c3 is held only by the dog on d3
	c := MustParseBoard(`
		........
		........
		..x..x..
		........
		........
		..CD.x..
		........
		.......R
		gold`)
	d3 := 19
	m := MoveOf(MakeStep(d3, DirN))
	ch := c.Changes(m)
	if len(ch) != 2 {
		t.Fatalf("want the dog move and the cat capture, got %v", ch)
	}
	found := false
	for _, x := range ch {
		if x.Src == 18 && x.Dest == ErrSquare {
			found = true
		}
	}
	if !found {
		t.Fatalf("cat on c3 not reported captured: %v", ch)
	}
}
