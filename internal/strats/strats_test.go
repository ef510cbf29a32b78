package strats

import (
	"testing"

	"arimaa_go/internal/game"
)

func TestFindFrame(t *testing.T) {
	cases := []struct {
		name    string
		board   string
		ok      bool
		pinned  int
		partial bool
		holders game.Bitmap
	}{
		{"full frame", `
			........
			........
			..x..x..
			........
			..r.....
			.HdM.x..
			..E.....
			........`, true, 26, false, game.BitmapOf(10, 17, 19)},
		{"weak cat on b3 refrozen by the horse", `
			........
			........
			..x..x..
			........
			..r.....
			HCdM.x..
			..E.....
			........`, true, 26, true, game.BitmapOf(10, 17, 19, 9, 16, 25)},
		{"open below", `
			........
			........
			..x..x..
			........
			..r.....
			.HdM.x..
			........
			........`, false, 0, false, 0},
		{"rabbit cannot retreat north", `
			........
			........
			..x..x..
			........
			........
			.HrM.x..
			..c.....
			........`, true, 10, false, game.BitmapOf(17, 19, 26)},
		{"two friends next to the trap", `
			........
			........
			..x..x..
			........
			..r.....
			.HdM.x..
			..c.....
			........`, false, 0, false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := game.MustParseBoard(tc.board)
			ft, ok := FindFrame(b, game.Gold, 18)
			if ok != tc.ok {
				t.Fatalf("FindFrame=%v want %v\n%s", ok, tc.ok, b)
			}
			if !ok {
				return
			}
			if ft.PinnedLoc != tc.pinned || ft.IsPartial != tc.partial {
				t.Fatalf("got %v", ft)
			}
			if ft.HolderMap != tc.holders {
				t.Fatalf("holders\n%v\nwant\n%v", ft.HolderMap, tc.holders)
			}
		})
	}
}

func TestFindFrameSymmetry(t *testing.T) {
	rng := game.NewSeededRand(t.Name())
	for _, b := range game.RandomBoards(rng, 40) {
		flip := b.Flipped()
		for _, pla := range []game.Player{game.Silver, game.Gold} {
			for _, kt := range game.TrapLocs {
				want, wok := FindFrame(b, pla, kt)
				got, gok := FindFrame(flip, pla.Opp(), game.PSymLoc[game.Silver][kt])
				if wok != gok || wok && want.IsPartial != got.IsPartial {
					t.Fatalf("color flip changed the frame at %s: %v %v vs %v %v\n%s", game.SquareName(kt), wok, want, gok, got, b)
				}
			}
		}
	}
}

func TestUFDist(t *testing.T) {
	// the silver cat on d5 is frozen by the dog; the rabbit on f5 can step
	// next to it. The cat on b2 has no friend anywhere near.
	b := game.MustParseBoard(`
		........
		........
		..x..x..
		...c.r..
		...D....
		..x..x..
		Hc......
		R.......`)
	uf := UFDist(b)
	want := map[int]int{35: 1, 37: 0, 27: 0, 9: MaxUFDist, 8: 0, 0: 0}
	for k, d := range want {
		if uf[k] != d {
			t.Errorf("UFDist[%s]=%d want %d", game.SquareName(k), uf[k], d)
		}
	}
}

func TestUFDistRandom(t *testing.T) {
	rng := game.NewSeededRand(t.Name())
	for _, b := range game.RandomBoards(rng, 40) {
		before := *b
		uf := UFDist(b)
		if *b != before {
			t.Fatalf("UFDist changed the board")
		}
		for k := 0; k < 64; k++ {
			switch {
			case uf[k] < 0 || uf[k] > MaxUFDist:
				t.Fatalf("UFDist[%s]=%d out of range", game.SquareName(k), uf[k])
			case b.Owners[k] == game.NoPlayer && uf[k] != 0:
				t.Fatalf("empty square %s has distance %d", game.SquareName(k), uf[k])
			case b.Owners[k] != game.NoPlayer && b.IsFrozen(k) && uf[k] == 0:
				t.Fatalf("frozen piece on %s has distance 0\n%s", game.SquareName(k), b)
			}
		}
	}
}

func TestFindHostages(t *testing.T) {
	b := game.MustParseBoard(`
		.......r
		........
		..x..x..
		........
		........
		..x..x..
		Hc......
		R.......`)
	uf := UFDist(b)
	got := FindHostages(b, game.Gold, 18, &uf)
	want := HostageThreat{Kt: 18, HostageLoc: 9, HolderLoc: 8, HolderLoc2: game.ErrSquare, ThreatSteps: 4}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("got %v want %v", got, want)
	}
	if h := FindHostages(b, game.Gold, 21, &uf); len(h) != 0 {
		t.Fatalf("nothing near f3, got %v", h)
	}
	if h := FindHostages(b, game.Silver, 18, &uf); len(h) != 0 {
		t.Fatalf("silver holds nothing, got %v", h)
	}
}

func TestCapInterferePathCost(t *testing.T) {
	// the cat on c1 has to be dragged past the gold rabbits on c2 and c3
	b := game.MustParseBoard(`
		.......r
		........
		..x..x..
		........
		........
		..RD.x..
		..R.....
		.Hc.....`)
	if got := capInterferePathCost(b, game.Gold, 18, 17); got != 0 {
		t.Fatalf("adjacent square should cost 0, got %d", got)
	}
	if got := capInterferePathCost(b, game.Gold, 18, 2); got != 2 {
		t.Fatalf("path cost %d want 2", got)
	}
	uf := UFDist(b)
	h := FindHostages(b, game.Gold, 18, &uf)
	if len(h) != 1 || h[0].HostageLoc != 2 || h[0].HolderLoc != 1 {
		t.Fatalf("got %v", h)
	}
	// two rows, the path, and the rabbit that has to leave the trap
	if h[0].ThreatSteps != 7 {
		t.Fatalf("threat steps %d want 7", h[0].ThreatSteps)
	}
}

const cornered = `
	eE......
	HD......
	D.x..x..
	........
	........
	..x..x..
	........
	.......R`

func TestFindBlockadesCorner(t *testing.T) {
	b := game.MustParseBoard(cornered)
	before := *b
	bt, ok := FindBlockades(b, game.Gold)
	if *b != before {
		t.Fatalf("FindBlockades changed the board")
	}
	if !ok {
		t.Fatalf("elephant on a8 should be blockaded\n%s", b)
	}
	if bt.PinnedLoc != 56 || bt.Tightness != FullBlockade {
		t.Fatalf("got %v", bt)
	}
	if want := game.BitmapOf(57, 48, 40, 49); bt.HolderMap != want {
		t.Fatalf("holders\n%v\nwant\n%v", bt.HolderMap, want)
	}
}

func TestFindEBlockadeCorner(t *testing.T) {
	b := game.MustParseBoard(cornered)
	before := *b
	uf := UFDist(b)
	eb, ok := FindEBlockade(b, game.Gold, &uf)
	if *b != before {
		t.Fatalf("FindEBlockade changed the board")
	}
	if !ok || eb.Loc != 56 || eb.ImmoType != TotalImmo {
		t.Fatalf("got %v %+v", ok, eb)
	}
	if want := game.BitmapOf(56, 57, 48, 40, 49); eb.HolderHeldMap != want {
		t.Fatalf("holders\n%v\nwant\n%v", eb.HolderHeldMap, want)
	}
	if eb.FreezeHeldMap != 0 {
		t.Fatalf("nothing needs to stay frozen")
	}
}

func TestNoBlockadeInTheOpen(t *testing.T) {
	b := game.MustParseBoard(`
		.......r
		........
		..x..x..
		...e....
		........
		..x..x..
		........
		.......R`)
	if bt, ok := FindBlockades(b, game.Gold); ok {
		t.Fatalf("free elephant reported as %v", bt)
	}
	uf := UFDist(b)
	if eb, ok := FindEBlockade(b, game.Gold, &uf); ok {
		t.Fatalf("free elephant reported as %+v", eb)
	}
	if _, ok := FindBlockades(b, game.Silver); ok {
		t.Fatalf("gold has no elephant")
	}
}

func TestBlockadesLeaveBoardUnchanged(t *testing.T) {
	rng := game.NewSeededRand(t.Name())
	for _, b := range game.RandomBoards(rng, 60) {
		before := *b
		uf := UFDist(b)
		for _, pla := range []game.Player{game.Silver, game.Gold} {
			FindBlockades(b, pla)
			FindEBlockade(b, pla, &uf)
			for _, kt := range game.TrapLocs {
				FindFrame(b, pla, kt)
				for _, h := range FindHostages(b, pla, kt, &uf) {
					if b.Owners[h.HostageLoc] != pla.Opp() || b.Owners[h.HolderLoc] != pla {
						t.Fatalf("bad hostage %v\n%s", h, b)
					}
					if h.ThreatSteps < 2 {
						t.Fatalf("hostage %v cannot be captured that fast", h)
					}
				}
			}
			if *b != before {
				t.Fatalf("threat search changed the board\n%s", b)
			}
		}
	}
}
