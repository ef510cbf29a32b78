package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"arimaa_go/internal/cli"
	"arimaa_go/internal/ui"
)

func main() {
	posFlag := flag.String("position", "", "局面图文件（为空则随机布局）")
	movesFlag := flag.String("moves", "", "回放用的着法文件，每行一回合")
	seedFlag := flag.String("seed", "arimaaview", "随机布局的种子")
	capsFlag := flag.Bool("caps", true, "高亮可吃子")
	goalFlag := flag.Bool("goal", true, "显示进底线路线")
	threatsFlag := flag.Bool("threats", false, "显示 frame/hostage/blockade")
	levelFlag := flag.String("loglevel", "info", "日志级别")
	flag.Parse()

	if err := cli.InitLogger(*levelFlag); err != nil {
		log.Fatal().Err(err).Msg("logger")
	}
	b, err := cli.LoadBoard(*posFlag, *seedFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("load position")
	}
	moves, err := cli.LoadMoves(*movesFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("load moves")
	}
	log.Info().Str("side", b.Player.String()).Int("replay", len(moves)).Msg("starting viewer")

	screen, err := ui.NewGameScreen(b, ui.Options{
		Replay:      moves,
		ShowCaps:    *capsFlag,
		ShowGoal:    *goalFlag,
		ShowThreats: *threatsFlag,
		Logger:      log.Logger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("init screen")
	}
	ebiten.SetVsyncEnabled(true)
	ebiten.SetTPS(60)
	ebiten.SetWindowSize(ui.WindowWidth, ui.WindowHeight)
	ebiten.SetWindowTitle("Arimaa")

	if err := ebiten.RunGame(screen); err != nil {
		log.Fatal().Err(err).Msg("run")
	}
}
