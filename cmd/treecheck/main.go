// cmd/treecheck/main.go
// 用穷举法核对吃子树、进底树和消灭树：随机稀疏局面，多 worker 并行
// 树报出而穷举没有的是错误；穷举有而树没找到的只计数（树只覆盖固定的几种形状）
package main

import (
	"context"
	"flag"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"arimaa_go/internal/cli"
	"arimaa_go/internal/game"
	"arimaa_go/internal/strats"
	"arimaa_go/internal/tactics"
)

type counters struct {
	checked    atomic.Int64
	mismatches atomic.Int64
	missed     atomic.Int64
}

func main() {
	nFlag := flag.Int("positions", 500, "检查的局面数")
	workersFlag := flag.Int("workers", runtime.NumCPU(), "并行 worker 数")
	seedFlag := flag.String("seed", "treecheck", "随机种子")
	stepsFlag := flag.Int("steps", 4, "最大步数 (1-4)")
	piecesFlag := flag.Int("maxpieces", 8, "每方最多棋子数")
	failFast := flag.Bool("failfast", false, "发现第一个不一致就停止")
	levelFlag := flag.String("loglevel", "info", "日志级别")
	flag.Parse()

	if err := cli.InitLogger(*levelFlag); err != nil {
		log.Fatal().Err(err).Msg("logger")
	}
	steps := min(max(*stepsFlag, 1), 4)
	boards := sparseBoards(*seedFlag, *nFlag, max(*piecesFlag, 3))
	log.Info().Int("positions", len(boards)).Int("workers", *workersFlag).Int("steps", steps).Msg("checking trees")

	var cnt counters
	start := time.Now()
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(*workersFlag, 1))
	for i, b := range boards {
		if ctx.Err() != nil {
			break
		}
		i, b := i, b
		g.Go(func() error {
			bad, missed, err := checkBoard(b, steps)
			cnt.checked.Add(1)
			cnt.missed.Add(int64(missed))
			if err != nil {
				return errors.Wrapf(err, "position %d\n%s", i, b)
			}
			if bad > 0 {
				cnt.mismatches.Add(int64(bad))
				if *failFast {
					return errors.Errorf("position %d disagrees with brute force", i)
				}
			}
			return nil
		})
	}
	err := g.Wait()
	log.Info().
		Int64("checked", cnt.checked.Load()).
		Int64("mismatches", cnt.mismatches.Load()).
		Int64("missed", cnt.missed.Load()).
		Dur("elapsed", time.Since(start)).
		Msg("done")
	if err != nil {
		log.Fatal().Err(err).Msg("stopped")
	}
	if cnt.mismatches.Load() > 0 {
		log.Fatal().Msg("trees disagree with brute force")
	}
}

// sparseBoards plays a few random turns from sparse scatterings, skipping
// positions that are already decided.
func sparseBoards(seed string, n, maxPieces int) []*game.Board {
	rng := game.NewSeededRand(seed)
	out := make([]*game.Board, 0, n)
	for len(out) < n {
		b := game.RandomSparse(rng, 3+rng.Intn(maxPieces-2), 3+rng.Intn(maxPieces-2))
		game.RandomPlayout(b, rng, rng.Intn(8))
		if b.GetWinner() != game.NoPlayer {
			continue
		}
		out = append(out, b)
	}
	return out
}

// checkBoard compares every tree against brute force for both sides and all
// budgets up to steps. It returns the number of answers the tree got wrong
// (a capture, goal or elimination that is not there, or any miss at two steps
// or fewer) and the number of longer tactics it did not find; a contract
// violation inside a tree comes back as the error.
func checkBoard(orig *game.Board, steps int) (bad, missed int, err error) {
	defer game.RecoverContract(&err)
	cache := tactics.NewFailCache()
	for _, pla := range []game.Player{game.Silver, game.Gold} {
		b := *orig
		b.SetPlaStep(pla, 0)
		before := b
		report := func(tree string, n int, got, want any) {
			bad++
			log.Warn().Str("tree", tree).Str("side", pla.String()).Int("steps", n).
				Interface("got", got).Interface("want", want).
				Msgf("mismatch\n%s", &b)
		}
		miss := func(tree string, n int, got, want any) {
			if n <= 2 {
				report(tree, n, got, want)
				return
			}
			missed++
			log.Debug().Str("tree", tree).Str("side", pla.String()).Int("steps", n).
				Interface("got", got).Interface("want", want).Msg("not found")
		}
		for n := 1; n <= steps; n++ {
			switch got, want := tactics.CanCaps(&b, pla, n), tactics.BruteCaps(&b, pla, n); {
			case got && !want:
				report("caps", n, got, want)
			case want && !got:
				miss("caps", n, got, want)
			}
			switch got, want := cache.GoalDist(&b, pla, n), tactics.BruteGoal(&b, pla, n); {
			case got < want:
				report("goal", n, got, want)
			case got > want:
				miss("goal", n, got, want)
			}
			switch got, want := tactics.CanElim(&b, pla, n), tactics.BruteElim(&b, pla, n); {
			case got && !want:
				report("elim", n, got, want)
			case want && !got:
				miss("elim", n, got, want)
			}
		}
		strats.Analyze(&b, pla)

		b.GoalTreeMove = before.GoalTreeMove
		if b != before {
			return bad, missed, errors.Errorf("search left the %v board changed", pla)
		}
		if cerr := b.TestConsistency(); cerr != nil {
			return bad, missed, errors.Wrap(cerr, "after search")
		}
	}
	log.Debug().Uint64("hash", orig.PosCurrentHash).Int("mismatches", bad).Int("missed", missed).Msg("checked")
	return bad, missed, nil
}
