package game

import "testing"

func TestBoardStringRoundTrip(t *testing.T) {
	rng := NewSeededRand(t.Name())
	for _, b := range RandomBoards(rng, 40) {
		c, err := ParseBoard(b.String())
		if err != nil {
			t.Fatalf("parse back: %v\n%s", err, b)
		}
		if c.PosCurrentHash != b.PosCurrentHash || c.SitCurrentHash != b.SitCurrentHash || c.FrozenMap != b.FrozenMap {
			t.Fatalf("round trip changed the position\n%s\n%s", b, c)
		}
	}
}

func TestParseBoardErrors(t *testing.T) {
	bad := []string{
		"",
		"........\n........",
		"........\n........\n..x..x..\n........\n........\n..x..x..\n........\n.......Q\n",
		"........\n........\n..x..x..\n........\n........\n..x..x..\n........\n........\nblue\n",
		// unguarded piece on a trap
		"........\n........\n..x..x..\n........\n........\n..R..x..\n........\n........\n",
	}
	for _, s := range bad {
		if _, err := ParseBoard(s); err == nil {
			t.Fatalf("ParseBoard accepted %q", s)
		}
	}
}

func TestMoveStringRoundTrip(t *testing.T) {
	rng := NewSeededRand(t.Name())
	for _, b := range RandomBoards(rng, 20) {
		moves := GenFullMoves(b, b.Player, 2)
		for _, m := range moves {
			text := b.MoveString(m)
			back, err := ParseMove(text)
			if err != nil {
				t.Fatalf("ParseMove(%q): %v", text, err)
			}
			if back != m {
				t.Fatalf("ParseMove(%q)=%s want %s", text, back, m)
			}
		}
	}
}

func TestMoveStringCapture(t *testing.T) {
	b := MustParseBoard(`
		........
		........
		..x..x..
		........
		........
		..CD.x..
		........
		.......R
		gold`)
	got := b.MoveString(MoveOf(MakeStep(19, DirN)))
	if got != "Dd3n Cc3x" {
		t.Fatalf("got %q", got)
	}
	m, err := ParseMove("Dd3n Cc3x")
	if err != nil || m != MoveOf(MakeStep(19, DirN)) {
		t.Fatalf("ParseMove capture: %v %v", m, err)
	}
}

func TestParseMoveErrors(t *testing.T) {
	for _, s := range []string{"", "Ra1s", "Qa1n", "Ra9n", "Ra1q", "Ra2n Ra3n Ra4n Ra5n Ra6n"} {
		if _, err := ParseMove(s); err == nil {
			t.Fatalf("ParseMove accepted %q", s)
		}
	}
}

func TestParseMoveList(t *testing.T) {
	text := `
		# opening
		2g Ed2n Ed3n Ed4n pass
		2s rc7s

		3g Ra2n Rb2n`
	moves, err := ParseMoveList(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(moves) != 3 {
		t.Fatalf("got %d moves", len(moves))
	}
	if n := moves[0].NumSteps(); n != 4 || moves[0].StepAt(3) != PassStep {
		t.Fatalf("first move %v", moves[0])
	}
	if moves[1] != MoveOf(MakeStep(50, 0)) {
		t.Fatalf("second move %v", moves[1])
	}
	if _, err := ParseMoveList("1g Ed2q"); err == nil {
		t.Fatalf("bad direction accepted")
	}
}
