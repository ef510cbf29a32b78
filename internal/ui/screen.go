// File /ui/screen.go
package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"arimaa_go/internal/assets"
	"arimaa_go/internal/game"
	"arimaa_go/internal/strats"
)

const (
	// 窗口尺寸
	WindowWidth  = 960
	WindowHeight = 600

	squareSize = 64
	boardOrgX  = 24
	boardOrgY  = 44
	panelX     = boardOrgX + 8*squareSize + 20
)

// Options configures a GameScreen.
type Options struct {
	Replay      []game.Move // turns to step through with Left/Right
	ShowCaps    bool
	ShowGoal    bool
	ShowThreats bool
	Logger      zerolog.Logger
}

// GameScreen 实现 ebiten.Game 接口：显示局面、威胁高亮、逐步走子
type GameScreen struct {
	state *game.GameState

	// work is state.Board with the steps of pending applied
	work     game.Board
	pending  game.Move
	selected int // ErrSquare when nothing is selected

	showCaps, showGoal, showThreats bool

	replay    []game.Move
	replayIdx int // number of replay turns already played

	report      strats.Report
	reportDirty bool
	status      string
	power       powerState

	pieceImages [2][game.NumPieceTypes]*ebiten.Image
	trapImage   *ebiten.Image
	offscreen   *ebiten.Image
	boardBaked  *ebiten.Image
	fontFace    font.Face
	log         zerolog.Logger
}

// NewGameScreen 构造并初始化界面
func NewGameScreen(b *game.Board, opts Options) (*GameScreen, error) {
	if err := b.TestConsistency(); err != nil {
		return nil, fmt.Errorf("起始局面不一致: %w", err)
	}
	gs := &GameScreen{
		state:       game.NewGameState(b),
		selected:    game.ErrSquare,
		showCaps:    opts.ShowCaps,
		showGoal:    opts.ShowGoal,
		showThreats: opts.ShowThreats,
		replay:      opts.Replay,
		fontFace:    basicfont.Face7x13,
		log:         opts.Logger,
	}
	for _, pla := range []game.Player{game.Silver, game.Gold} {
		for p := game.Rabbit; p <= game.Elephant; p++ {
			img, err := assets.PieceImage(pla, p, squareSize-8)
			if err != nil {
				return nil, err
			}
			gs.pieceImages[pla][p] = img
		}
	}
	var err error
	if gs.trapImage, err = assets.TrapImage(squareSize); err != nil {
		return nil, err
	}

	// 画板缓冲
	gs.offscreen = ebiten.NewImage(WindowWidth, WindowHeight)
	gs.resetTurn()
	return gs, nil
}

// resetTurn drops the pending steps and starts the turn over from state.Board.
func (gs *GameScreen) resetTurn() {
	gs.work = *gs.state.Board
	gs.pending = game.ErrorMove
	gs.selected = game.ErrSquare
	gs.reportDirty = true
}

// applyStep plays s on the working board and commits the turn once it is full.
func (gs *GameScreen) applyStep(s game.Step) bool {
	if gs.state.GameOver || !gs.work.MakeStepLegal(s) {
		return false
	}
	gs.pending = gs.pending.Append(s)
	gs.reportDirty = true
	gs.log.Debug().Str("step", s.String()).Int("stepsTaken", gs.pending.NumSteps()).Msg("step")
	if gs.pending.NumSteps() == 4 {
		gs.commit()
	}
	return true
}

// undoStep takes back the last pending step by replaying the others.
func (gs *GameScreen) undoStep() {
	n := gs.pending.NumSteps()
	if n == 0 {
		return
	}
	steps := gs.pending.Prefix(n - 1)
	gs.resetTurn()
	for _, s := range steps.Steps() {
		gs.work.MakeStep(s)
		gs.pending = gs.pending.Append(s)
	}
}

// commit hands the pending steps to the game state as one turn.
func (gs *GameScreen) commit() {
	if gs.pending.NumSteps() == 0 {
		return
	}
	mv := gs.state.Board.MoveString(gs.pending)
	if err := gs.state.MakeMove(gs.pending); err != nil {
		gs.status = err.Error()
		gs.log.Info().Err(err).Str("move", mv).Msg("move rejected")
	} else {
		gs.status = mv
		gs.log.Info().Str("move", mv).Int("turn", len(gs.state.Moves)).Msg("move played")
		if gs.state.GameOver {
			gs.status = fmt.Sprintf("%s  %v wins", mv, gs.state.Winner)
		}
	}
	gs.resetTurn()
}

func (gs *GameScreen) undoTurn() {
	if gs.state.Undo() {
		if gs.replayIdx > 0 {
			gs.replayIdx--
		}
		gs.status = "undo"
	}
	gs.resetTurn()
}

// replayForward plays the next recorded turn.
func (gs *GameScreen) replayForward() {
	if gs.replayIdx >= len(gs.replay) {
		return
	}
	gs.resetTurn()
	m := gs.replay[gs.replayIdx]
	mv := gs.state.Board.MoveString(m)
	if err := gs.state.MakeMove(m); err != nil {
		gs.status = fmt.Sprintf("replay %d: %v", gs.replayIdx+1, err)
		gs.log.Warn().Err(err).Int("turn", gs.replayIdx+1).Str("move", mv).Msg("replay stopped")
		gs.replay = gs.replay[:gs.replayIdx]
		return
	}
	gs.replayIdx++
	gs.status = fmt.Sprintf("%d/%d %s", gs.replayIdx, len(gs.replay), mv)
	gs.resetTurn()
}

// Update 处理输入，必要时重算威胁
func (gs *GameScreen) Update() error {
	active := gs.handleInput()
	gs.handleKeys()
	gs.power.tick(active, gs.reportDirty, gs.pending.NumSteps())

	if gs.reportDirty {
		b := gs.work
		gs.report = strats.Analyze(&b, b.Player)
		gs.reportDirty = false
	}
	return nil
}

// Draw 每帧渲染：棋盘、高亮、棋子，再画右侧信息栏
func (gs *GameScreen) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	gs.offscreen.Fill(color.RGBA{0x20, 0x1c, 0x18, 0xff})

	gs.drawBoard(gs.offscreen)
	gs.drawOverlays(gs.offscreen)
	gs.drawPieces(gs.offscreen, &gs.work)
	gs.drawPanel(gs.offscreen)

	// 把 offscreen 缩放、居中到 screen
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	scale := math.Min(float64(w)/WindowWidth, float64(h)/WindowHeight)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((float64(w)-WindowWidth*scale)/2, (float64(h)-WindowHeight*scale)/2)
	screen.DrawImage(gs.offscreen, op)
}

func (gs *GameScreen) drawPanel(dst *ebiten.Image) {
	b := &gs.work
	y := boardOrgY + 12
	line := func(s string, col color.Color) {
		text.Draw(dst, s, gs.fontFace, panelX, y, col)
		y += 16
	}
	line(fmt.Sprintf("turn %d  %v to move  step %d", b.TurnNumber, b.Player, b.Step), color.White)
	if gs.pending.NumSteps() > 0 {
		line("pending: "+gs.state.Board.MoveString(gs.pending), color.RGBA{0xe8, 0xb9, 0x4a, 0xff})
	}
	if gs.status != "" {
		line(gs.status, color.RGBA{0xc0, 0xc0, 0xc0, 0xff})
	}
	y += 8
	line(fmt.Sprintf("C caps:%v  G goal:%v  T threats:%v", onOff(gs.showCaps), onOff(gs.showGoal), onOff(gs.showThreats)), color.RGBA{0x90, 0x90, 0x90, 0xff})
	y += 8
	for _, s := range gs.report.Lines(b) {
		if y > WindowHeight-20 {
			break
		}
		line(s, color.RGBA{0xff, 0xa0, 0x80, 0xff})
	}

	info := "click: step   Enter: end turn   Bksp: undo step   U: undo turn   Left/Right: replay"
	text.Draw(dst, info, gs.fontFace, boardOrgX, 24, color.White)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// Layout 定义窗口尺寸
func (gs *GameScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}
