package strats

import (
	"strings"
	"testing"

	"arimaa_go/internal/game"
	"arimaa_go/internal/tactics"
)

func TestAnalyze(t *testing.T) {
	b := game.MustParseBoard(`
		.......r
		R.......
		..x..x..
		..E.....
		..c.....
		..x..x..
		........
		........`)
	before := *b
	r := Analyze(b, game.Gold)
	if *b != before {
		t.Fatalf("Analyze changed the board")
	}
	if r.CapDist != 2 || r.CapMap != game.BitmapOf(26) {
		t.Fatalf("capture %d %v", r.CapDist, r.CapMap)
	}
	if r.GoalDist != 1 || r.GoalMove.StepAt(0) != game.MakeStep(48, game.DirN) {
		t.Fatalf("goal %d %s", r.GoalDist, b.MoveString(r.GoalMove))
	}
	lines := strings.Join(r.Lines(b), "\n")
	for _, want := range []string{"capture in 2: c4", "goal in 1: Ra7n"} {
		if !strings.Contains(lines, want) {
			t.Fatalf("report lacks %q:\n%s", want, lines)
		}
	}

	if s := Analyze(b, game.Silver); s.CapDist != 5 || s.GoalDist != tactics.NoGoal {
		t.Fatalf("silver has nothing, got %+v", s)
	}
}

func TestAnalyzeBlockade(t *testing.T) {
	b := game.MustParseBoard(cornered)
	r := Analyze(b, game.Gold)
	if r.Blockade == nil || r.EBlockade == nil {
		t.Fatalf("corner blockade not reported: %+v", r)
	}
	if !strings.Contains(strings.Join(r.Lines(b), "\n"), "elephant a8 immobile (total)") {
		t.Fatalf("lines %q", r.Lines(b))
	}
}
