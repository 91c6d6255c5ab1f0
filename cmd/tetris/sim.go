package main

import (
	"context"
	"runtime"
	"time"

	"github.com/plus3/tetris/config"
	"github.com/plus3/tetris/loop"
	"github.com/plus3/tetris/tetris"
	"go.uber.org/zap"
)

const simTPS = 60

// tickStage advances the game one frame, tallies pieces that lock on
// their own and ends the run on game over or at the piece limit.
type tickStage struct {
	game      *tetris.Game
	maxPieces int
	tally     *Tally
	log       *zap.Logger
}

func (s *tickStage) Step(frame *loop.Frame) {
	s.tally.Observe(s.game, s.game.Tick)
	if s.game.Over() {
		frame.Stop()
		return
	}
	stopAtLimit(frame, s.game, s.maxPieces, s.log)
}

// autopilotStage places the active piece where the hint engine suggests,
// once every dropEvery frames.
type autopilotStage struct {
	game      *tetris.Game
	dropEvery int
	maxPieces int
	tally     *Tally
	log       *zap.Logger
}

func (s *autopilotStage) Step(frame *loop.Frame) {
	if s.game.Over() || atLimit(s.game, s.maxPieces) {
		return
	}
	if s.dropEvery > 0 && frame.Index%int64(s.dropEvery) != 0 {
		return
	}
	if !s.game.ApplyHint() {
		return
	}

	s.tally.Observe(s.game, func() { s.game.HardDrop() })
	stopAtLimit(frame, s.game, s.maxPieces, s.log)
}

func atLimit(game *tetris.Game, maxPieces int) bool {
	return maxPieces > 0 && game.Stats().Pieces >= maxPieces
}

func stopAtLimit(frame *loop.Frame, game *tetris.Game, maxPieces int, log *zap.Logger) {
	if atLimit(game, maxPieces) {
		log.Info("piece limit reached", zap.Int("pieces", maxPieces))
		frame.Stop()
	}
}

// simulate runs a headless game until it ends, the piece limit is hit or ctx
// expires.
func simulate(ctx context.Context, cfg *config.Config, log *zap.Logger) *Report {
	game := tetris.New(gameOptions(cfg, log)...)
	tally := NewTally()

	scheduler := loop.NewScheduler()
	scheduler.Register(&tickStage{
		game:      game,
		maxPieces: cfg.Autoplay.MaxPieces,
		tally:     tally,
		log:       log,
	})
	scheduler.Register(&autopilotStage{
		game:      game,
		dropEvery: cfg.Autoplay.DropEvery,
		maxPieces: cfg.Autoplay.MaxPieces,
		tally:     tally,
		log:       log,
	})

	report := &Report{
		Seed:      cfg.Seed,
		Lockdown:  cfg.LockdownMode(),
		DropEvery: cfg.Autoplay.DropEvery,
		MaxPieces: cfg.Autoplay.MaxPieces,
		Tally:     tally,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("simulation started",
		zap.Uint64("seed", cfg.Seed),
		zap.Stringer("lockdown", cfg.LockdownMode()))

	startTime := time.Now()
Loop:
	for {
		select {
		case <-ctx.Done():
			log.Info("simulation timed out")
			break Loop
		default:
			updateStart := time.Now()
			running := scheduler.Once(1.0 / simTPS)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			if !running {
				break Loop
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Final = game.Snapshot()
	report.Scheduler = scheduler.GetStats()

	log.Info("simulation finished",
		zap.Int("score", report.Final.Score),
		zap.Int("lines", report.Final.Lines),
		zap.Int("pieces", report.Final.Stats.Pieces),
		zap.Bool("game_over", report.Final.GameOver))

	return report
}
