package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"arimaa_go/internal/game"
)

// 棋子底盘：金方暖色，银方冷色
const discSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
<circle cx="50" cy="50" r="44" fill="%s" stroke="%s" stroke-width="6"/>
<circle cx="50" cy="50" r="%d" fill="none" stroke="%s" stroke-width="3"/>
</svg>`

// 陷阱格标记
const trapSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
<rect x="8" y="8" width="84" height="84" fill="#8a3b2e" stroke="#5a1f16" stroke-width="4"/>
<path d="M 20 20 L 80 80 M 80 20 L 20 80" stroke="#5a1f16" stroke-width="6"/>
</svg>`

var discColors = [2][2]string{
	game.Silver: {"#c8ccd4", "#50555e"},
	game.Gold:   {"#e8b94a", "#7a5512"},
}

type imgKey struct {
	name string
	size int
}

// 简单缓存，避免重复渲染 SVG
var imgCache = map[imgKey]*ebiten.Image{}

// PieceImage renders the disc for owner's piece at size x size pixels. The
// inner ring grows with rank so pieces stay apart even without their letter.
func PieceImage(owner game.Player, piece game.Piece, size int) (*ebiten.Image, error) {
	key := imgKey{fmt.Sprintf("%v-%d", owner, piece), size}
	if img := imgCache[key]; img != nil {
		return img, nil
	}
	if owner != game.Silver && owner != game.Gold {
		return nil, fmt.Errorf("no disc for %v", owner)
	}
	c := discColors[owner]
	svg := fmt.Sprintf(discSVG, c[0], c[1], 10+4*int(piece), c[1])
	img, err := rasterizeSVG([]byte(svg), size, size)
	if err != nil {
		return nil, fmt.Errorf("渲染棋子 %s 失败: %w", key.name, err)
	}
	imgCache[key] = img
	return img, nil
}

// TrapImage renders the trap square marker.
func TrapImage(size int) (*ebiten.Image, error) {
	key := imgKey{"trap", size}
	if img := imgCache[key]; img != nil {
		return img, nil
	}
	img, err := rasterizeSVG([]byte(trapSVG), size, size)
	if err != nil {
		return nil, fmt.Errorf("渲染陷阱失败: %w", err)
	}
	imgCache[key] = img
	return img, nil
}

// 把 SVG 字节渲染为 Ebiten Image
func rasterizeSVG(svgData []byte, targetW, targetH int) (*ebiten.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, err
	}
	vb := icon.ViewBox

	// 决定像素尺寸（保持比例）
	w := float64(targetW)
	h := float64(targetH)
	switch {
	case w <= 0 && h <= 0:
		w, h = vb.W, vb.H
	case w <= 0:
		w = h * vb.W / vb.H
	case h <= 0:
		h = w * vb.H / vb.W
	}
	w, h = max(w, 1), max(h, 1)

	icon.SetTarget(0, 0, w, h)

	dstW, dstH := int(w+0.5), int(h+0.5)
	rgba := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	// 透明底
	draw.Draw(rgba, rgba.Bounds(), image.Transparent, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(dstW, dstH, rgba, rgba.Bounds())
	dasher := rasterx.NewDasher(dstW, dstH, scanner)
	icon.Draw(dasher, 1.0)

	return ebiten.NewImageFromImage(rgba), nil
}
