// File /ui/render.go
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"arimaa_go/internal/game"
)

// 渐变 shader：左上亮，右下暗
const gradKage = `
package main

var UBright float
var UDark   float

func Fragment(pos vec4, uv vec2, col vec4) vec4 {
    c := imageSrc0At(uv)
    t := clamp((uv.x + uv.y) * 0.5, 0.0, 1.0)
    f := mix(UBright, UDark, t)
    return vec4(c.rgb * f, c.a)
}
`

var gradShader *ebiten.Shader

func init() {
	s, err := ebiten.NewShader([]byte(gradKage))
	if err != nil {
		panic(err)
	}
	gradShader = s
}

var (
	lightSquare = color.RGBA{0xd8, 0xc3, 0x9a, 0xff}
	darkSquare  = color.RGBA{0xb8, 0x9c, 0x6e, 0xff}

	selectColor = color.NRGBA{0xff, 0xe0, 0x40, 0xff}
	targetColor = color.NRGBA{0x30, 0xc0, 0x50, 0x70}
	lastColor   = color.NRGBA{0x60, 0x90, 0xff, 0xc0}
	capColor    = color.NRGBA{0xe0, 0x30, 0x30, 0x80}
	goalColor   = color.NRGBA{0x30, 0x60, 0xe0, 0x90}
	holderColor = color.NRGBA{0xff, 0x90, 0x20, 0xff}
	pinColor    = color.NRGBA{0xb0, 0x40, 0xe0, 0x90}
)

// squareOrigin returns the top-left pixel of square k, rank 8 at the top.
func squareOrigin(k int) (float32, float32) {
	return float32(boardOrgX + game.X(k)*squareSize), float32(boardOrgY + (7-game.Y(k))*squareSize)
}

// drawBoard 把棋盘底图烘焙一次，之后每帧直接贴图
func (gs *GameScreen) drawBoard(dst *ebiten.Image) {
	if gs.boardBaked == nil {
		layer := ebiten.NewImage(WindowWidth, WindowHeight)
		for k := 0; k < 64; k++ {
			x, y := squareOrigin(k)
			c := lightSquare
			if (game.X(k)+game.Y(k))%2 == 0 {
				c = darkSquare
			}
			vector.DrawFilledRect(layer, x, y, squareSize, squareSize, c, false)
			if game.TrapIndex[k] >= 0 {
				op := &ebiten.DrawImageOptions{}
				op.GeoM.Translate(float64(x), float64(y))
				layer.DrawImage(gs.trapImage, op)
			}
		}
		for i := 0; i < 8; i++ {
			x, _ := squareOrigin(i)
			_, y := squareOrigin(8 * i)
			drawTextCentered(layer, string(rune('a'+i)), float64(x)+squareSize/2, boardOrgY+8*squareSize+10, color.White)
			drawTextCentered(layer, string(rune('1'+i)), boardOrgX-10, float64(y)+squareSize/2, color.White)
		}

		gs.boardBaked = ebiten.NewImage(WindowWidth, WindowHeight)
		op := &ebiten.DrawRectShaderOptions{}
		op.Images[0] = layer
		op.Uniforms = map[string]any{
			"UBright": float32(1.15),
			"UDark":   float32(0.80),
		}
		gs.boardBaked.DrawRectShader(WindowWidth, WindowHeight, gradShader, op)
	}
	dst.DrawImage(gs.boardBaked, nil)
}

func fillSquare(dst *ebiten.Image, k int, c color.Color) {
	x, y := squareOrigin(k)
	vector.DrawFilledRect(dst, x, y, squareSize, squareSize, c, false)
}

func outlineSquare(dst *ebiten.Image, k int, width float32, c color.Color) {
	x, y := squareOrigin(k)
	vector.StrokeRect(dst, x+width/2, y+width/2, squareSize-width, squareSize-width, width, c, false)
}

func dotSquare(dst *ebiten.Image, k int, c color.Color) {
	x, y := squareOrigin(k)
	vector.DrawFilledCircle(dst, x+squareSize/2, y+squareSize/2, squareSize/8, c, true)
}

// drawOverlays 画上一手、选中格、可走格以及三类威胁高亮
func (gs *GameScreen) drawOverlays(dst *ebiten.Image) {
	if prev := gs.state.PreviousBoard(); prev != nil && gs.pending.NumSteps() == 0 {
		for _, ch := range prev.Changes(gs.state.LastMove()) {
			outlineSquare(dst, ch.Src, 2, lastColor)
			if ch.Dest != game.ErrSquare {
				outlineSquare(dst, ch.Dest, 2, lastColor)
			}
		}
	}

	r := &gs.report
	if gs.showCaps {
		for _, k := range r.CapMap.Locs() {
			fillSquare(dst, k, capColor)
		}
	}
	if gs.showGoal && r.GoalMove != game.ErrorMove {
		for _, s := range r.GoalMove.Steps() {
			if s.IsReal() {
				dotSquare(dst, s.K1(), goalColor)
			}
		}
	}
	if gs.showThreats {
		var holders game.Bitmap
		for _, f := range r.Frames {
			fillSquare(dst, f.PinnedLoc, pinColor)
			holders |= f.HolderMap
		}
		for _, h := range r.Hostages {
			fillSquare(dst, h.HostageLoc, pinColor)
			holders.SetOn(h.HolderLoc)
		}
		if r.Blockade != nil {
			fillSquare(dst, r.Blockade.PinnedLoc, pinColor)
			holders |= r.Blockade.HolderMap
		}
		if r.EBlockade != nil {
			holders |= r.EBlockade.HolderHeldMap &^ game.BitmapOf(r.EBlockade.Loc)
		}
		for _, k := range holders.Locs() {
			outlineSquare(dst, k, 3, holderColor)
		}
	}

	if gs.selected != game.ErrSquare {
		outlineSquare(dst, gs.selected, 3, selectColor)
		for _, k := range gs.targets(gs.selected) {
			fillSquare(dst, k, targetColor)
		}
	}
}

// drawPieces 画棋子底盘和字母
func (gs *GameScreen) drawPieces(dst *ebiten.Image, b *game.Board) {
	for k := 0; k < 64; k++ {
		owner := b.Owners[k]
		if owner == game.NoPlayer {
			continue
		}
		img := gs.pieceImages[owner][b.Pieces[k]]
		x, y := squareOrigin(k)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(x)+4, float64(y)+4)
		if b.IsFrozen(k) {
			op.ColorScale.Scale(0.6, 0.6, 0.6, 1)
		}
		dst.DrawImage(img, op)

		label := string(game.PieceLetter(owner, b.Pieces[k]))
		drawTextCentered(dst, label, float64(x)+squareSize/2, float64(y)+squareSize/2, color.Black)
	}
}

// 居中绘制文本（用 basicfont）
// x, y 传入"目标中心点"的屏幕坐标
func drawTextCentered(dst *ebiten.Image, s string, x, y float64, col color.Color) {
	face := basicfont.Face7x13
	b := text.BoundString(face, s)
	w := float64(b.Dx())
	h := float64(b.Dy())
	text.Draw(dst, s, face, int(x-w/2), int(y+h/2)-2, col)
}
