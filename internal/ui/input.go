// File ui/input.go
package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"arimaa_go/internal/game"
)

// pixelToSquare 把屏幕像素坐标反算成格子下标
func pixelToSquare(px, py int) (int, bool) {
	x := px - boardOrgX
	y := py - boardOrgY
	if x < 0 || y < 0 || x >= 8*squareSize || y >= 8*squareSize {
		return game.ErrSquare, false
	}
	return x/squareSize + 8*(7-y/squareSize), true
}

// targets lists the squares the piece on k can step to right now.
func (gs *GameScreen) targets(k int) []int {
	var out []int
	for dir := 0; dir < 4; dir++ {
		if j := game.Neighbor(k, dir); j != game.ErrSquare && gs.work.IsStepLegal(game.MakeStep(k, dir)) {
			out = append(out, j)
		}
	}
	return out
}

// handleInput 处理鼠标点击：选中棋子，再点相邻空格走一步
func (gs *GameScreen) handleInput() bool {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	k, ok := pixelToSquare(ebiten.CursorPosition())
	if !ok {
		gs.selected = game.ErrSquare
		return true
	}

	b := &gs.work
	// 尚未选中：任何棋子都可以选（推拉时要动对方棋子）
	if gs.selected == game.ErrSquare {
		if b.Owners[k] != game.NoPlayer {
			gs.selected = k
		}
		return true
	}

	if b.Owners[k] != game.NoPlayer {
		gs.selected = k
		return true
	}
	s := game.StepBetween(gs.selected, k)
	if s == game.ErrStep || !gs.applyStep(s) {
		gs.selected = game.ErrSquare
		return true
	}
	// 走完仍留在棋盘上就继续选中它
	if gs.work.Owners[k] != game.NoPlayer && gs.pending.NumSteps() > 0 {
		gs.selected = k
	} else {
		gs.selected = game.ErrSquare
	}
	return true
}

// handleKeys 键盘：提交、撤销、回放和高亮开关
func (gs *GameScreen) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		gs.commit()
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		gs.undoStep()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		gs.resetTurn()
	case inpututil.IsKeyJustPressed(ebiten.KeyU):
		gs.undoTurn()
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		gs.replayForward()
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		gs.undoTurn()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		gs.showCaps = !gs.showCaps
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		gs.showGoal = !gs.showGoal
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		gs.showThreats = !gs.showThreats
	}
}
