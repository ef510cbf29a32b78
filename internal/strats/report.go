package strats

import (
	"fmt"
	"strings"

	"arimaa_go/internal/game"
	"arimaa_go/internal/tactics"
)

// Report gathers every tactic and threat pla has in one position.
type Report struct {
	Pla game.Player

	// CapMap holds the enemy pieces pla can capture this turn, CapDist the
	// fewest steps needed (5 when none).
	CapMap  game.Bitmap
	CapDist int

	GoalDist int
	GoalMove game.Move

	Frames    []FrameThreat
	Hostages  []HostageThreat
	Blockade  *BlockadeThreat
	EBlockade *EBlockade

	UF [64]int
}

// Analyze builds the report for pla with the steps left in the current turn
// when pla is to move, or a full turn otherwise. The board is restored.
func Analyze(b *game.Board, pla game.Player) Report {
	steps := 4
	if b.Player == pla {
		steps = 4 - b.Step
	}
	r := Report{Pla: pla, CapDist: 5, UF: UFDist(b)}

	for _, kt := range game.TrapLocs {
		if _, capMap, d := tactics.GenCapsFull(b, pla, steps, 2, false, kt); d < 5 {
			r.CapMap |= capMap
			r.CapDist = min(r.CapDist, d)
		}
	}

	// 进底树会覆盖 GoalTreeMove，算完还原
	saved := b.GoalTreeMove
	r.GoalDist = tactics.GoalDist(b, pla, steps)
	r.GoalMove = b.GoalTreeMove
	b.GoalTreeMove = saved

	for _, kt := range game.TrapLocs {
		if ft, ok := FindFrame(b, pla, kt); ok {
			r.Frames = append(r.Frames, ft)
		}
		r.Hostages = append(r.Hostages, FindHostages(b, pla, kt, &r.UF)...)
	}
	if bt, ok := FindBlockades(b, pla); ok {
		r.Blockade = &bt
	}
	if eb, ok := FindEBlockade(b, pla, &r.UF); ok {
		r.EBlockade = &eb
	}
	return r
}

// Lines renders the report as short human readable lines.
func (r Report) Lines(b *game.Board) []string {
	var out []string
	if r.CapDist < 5 {
		out = append(out, fmt.Sprintf("capture in %d: %s", r.CapDist, squareList(r.CapMap)))
	}
	if r.GoalDist < tactics.NoGoal {
		out = append(out, fmt.Sprintf("goal in %d: %s", r.GoalDist, b.MoveString(r.GoalMove)))
	}
	for _, f := range r.Frames {
		out = append(out, f.String())
	}
	for _, h := range r.Hostages {
		out = append(out, h.String())
	}
	if r.Blockade != nil {
		out = append(out, fmt.Sprintf("blockade %s tightness %d", game.SquareName(r.Blockade.PinnedLoc), r.Blockade.Tightness))
	}
	if r.EBlockade != nil {
		out = append(out, fmt.Sprintf("elephant %s immobile (%v)", game.SquareName(r.EBlockade.Loc), r.EBlockade.ImmoType))
	}
	return out
}

func squareList(m game.Bitmap) string {
	var names []string
	for _, k := range m.Locs() {
		names = append(names, game.SquareName(k))
	}
	return strings.Join(names, " ")
}
