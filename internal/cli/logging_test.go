package cli

import (
	"os"
	"path/filepath"
	"testing"

	"arimaa_go/internal/game"
)

func TestInitLogger(t *testing.T) {
	if err := InitLogger("debug"); err != nil {
		t.Fatal(err)
	}
	if err := InitLogger("loud"); err == nil {
		t.Fatalf("bad level accepted")
	}
}

func TestLoadBoardAndMoves(t *testing.T) {
	dir := t.TempDir()
	pos := filepath.Join(dir, "pos.txt")
	diagram := "rrrrrrrr\n........\n..x..x..\n........\n........\n..x..x..\n........\nRRRRRRRR\ngold\n"
	if err := os.WriteFile(pos, []byte(diagram), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := LoadBoard(pos, "")
	if err != nil {
		t.Fatal(err)
	}
	if b.PieceCounts[game.Gold][game.Rabbit] != 8 || b.Player != game.Gold {
		t.Fatalf("loaded\n%s", b)
	}

	mv := filepath.Join(dir, "moves.txt")
	if err := os.WriteFile(mv, []byte("1g Ra1n Rb1n\n1s ra8s\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	moves, err := LoadMoves(mv)
	if err != nil || len(moves) != 2 {
		t.Fatalf("LoadMoves=%v, %v", moves, err)
	}
	gs := game.NewGameState(b)
	for _, m := range moves {
		if err := gs.MakeMove(m); err != nil {
			t.Fatalf("replay %s: %v", b.MoveString(m), err)
		}
	}

	if _, err := LoadBoard(filepath.Join(dir, "missing"), ""); err == nil {
		t.Fatalf("missing file accepted")
	}
	r1, _ := LoadBoard("", "seed")
	r2, _ := LoadBoard("", "seed")
	if r1.PosCurrentHash != r2.PosCurrentHash {
		t.Fatalf("random setup not reproducible")
	}
}
