// cmd/bench_perf/main.go
package main

import (
	"flag"
	"os"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog/log"

	"arimaa_go/internal/cli"
	"arimaa_go/internal/game"
	"arimaa_go/internal/strats"
	"arimaa_go/internal/tactics"
)

func main() {
	profFlag := flag.String("cpuprofile", "cpu_trees.prof", "CPU profile 输出文件（为空则不采样）")
	nFlag := flag.Int("positions", 2000, "随机局面数")
	roundsFlag := flag.Int("rounds", 5, "每个局面重复次数")
	seedFlag := flag.String("seed", "bench_perf", "随机种子")
	levelFlag := flag.String("loglevel", "info", "日志级别")
	flag.Parse()

	if err := cli.InitLogger(*levelFlag); err != nil {
		log.Fatal().Err(err).Msg("logger")
	}

	// 开启 CPU Profile
	if *profFlag != "" {
		f, err := os.Create(*profFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
	}

	boards := game.RandomBoards(game.NewSeededRand(*seedFlag), *nFlag)
	log.Info().Int("positions", len(boards)).Int("rounds", *roundsFlag).Msg("benchmarking trees")

	cache := tactics.NewFailCache()
	type bench struct {
		name string
		run  func(b *game.Board, pla game.Player) bool
	}
	benches := []bench{
		{"canCaps", func(b *game.Board, pla game.Player) bool { return tactics.CanCaps(b, pla, 4) }},
		{"goalDist", func(b *game.Board, pla game.Player) bool { return cache.GoalDist(b, pla, 4) < tactics.NoGoal }},
		{"canElim", func(b *game.Board, pla game.Player) bool { return tactics.CanElim(b, pla, 4) }},
		{"genCaps", func(b *game.Board, pla game.Player) bool { return len(tactics.GenCaps(b, pla, 4, nil)) > 0 }},
		{"ufDist", func(b *game.Board, pla game.Player) bool { return strats.UFDist(b)[0] > 0 }},
		{"eblockade", func(b *game.Board, pla game.Player) bool {
			uf := strats.UFDist(b)
			_, ok := strats.FindEBlockade(b, pla, &uf)
			return ok
		}},
	}

	total := time.Now()
	for _, bm := range benches {
		start := time.Now()
		hits, calls := 0, 0
		for r := 0; r < *roundsFlag; r++ {
			for _, b := range boards {
				for _, pla := range []game.Player{game.Silver, game.Gold} {
					if bm.run(b, pla) {
						hits++
					}
					calls++
				}
			}
		}
		el := time.Since(start)
		log.Info().Str("tree", bm.name).Int("calls", calls).Int("hits", hits).
			Dur("elapsed", el).Float64("usPerCall", float64(el.Microseconds())/float64(max(calls, 1))).
			Msg("bench")
	}
	probes, ttHits, rate := cache.Stats()
	log.Info().Uint64("ttProbes", probes).Uint64("ttHits", ttHits).Float64("ttHitRate", rate).
		Dur("total", time.Since(total)).Msg("done")
	if *profFlag != "" {
		log.Info().Msgf("profile saved to %s, view with: go tool pprof -http=:8080 %s", *profFlag, *profFlag)
	}
}
