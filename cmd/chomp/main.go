// Command chomp plays a level headlessly: it drives the subject along the
// level script, advances the collision world once per frame and logs the
// game outcomes.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/akmonengine/chomp"
	"github.com/akmonengine/chomp/actor"
	"github.com/akmonengine/chomp/scene"
	"github.com/go-gl/mathgl/mgl64"
)

func main() {
	var levelPath string
	var frames int
	var dt float64
	var watch, verbose bool
	flag.StringVar(&levelPath, "level", "maze.yaml", "Path to the level manifest")
	flag.IntVar(&frames, "frames", 0, "Frames to simulate, 0 runs the whole script")
	flag.Float64Var(&dt, "dt", 1.0/60.0, "Seconds per frame")
	flag.BoolVar(&watch, "watch", false, "Replay the level whenever its files change")
	flag.BoolVar(&verbose, "v", false, "Log push-out corrections")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	play(logger, levelPath, frames, dt)
	if !watch {
		return
	}

	watcher, err := scene.NewWatcher(filepath.Dir(levelPath))
	if err != nil {
		logger.Error("watch failed", "err", err)
		os.Exit(1)
	}
	defer watcher.Close()

	watchLoop(ctx, watcher.Events, watcher.Errors, logger, func(name string) {
		logger.Info("level changed", "file", name)
		play(logger, levelPath, frames, dt)
	})
}

// watchLoop calls reload for every changed file until ctx is done or the
// watcher shuts down.
func watchLoop(ctx context.Context, events <-chan string, errs <-chan error, logger *slog.Logger, reload func(name string)) {
	for {
		select {
		case name, ok := <-events:
			if !ok {
				return
			}
			reload(name)
		case err, ok := <-errs:
			if !ok {
				return
			}
			logger.Warn("watcher error", "err", err)
		case <-ctx.Done():
			return
		}
	}
}

func play(logger *slog.Logger, levelPath string, frames int, dt float64) {
	s, err := scene.Load(levelPath)
	if err != nil {
		logger.Error("failed to load level", "err", err)
		return
	}

	result := run(s, frames, dt, logger)
	logger.Info("run finished",
		"level", s.Name,
		"frames", result.Frames,
		"collected", result.Collected,
		"remaining", result.Remaining,
		"won", result.Won,
		"lost", result.Lost,
	)
}

type Result struct {
	Frames    int
	Collected int
	Remaining int
	Won       bool
	Lost      bool
}

// run plays the scene script until it ends, the game is over or frames
// have elapsed (when frames > 0).
func run(s *scene.Scene, frames int, dt float64, logger *slog.Logger) Result {
	world := chomp.NewWorld(s.Subject, s.Companion, s.Nodes())
	world.Logger = logger

	var result Result
	world.Events.Subscribe(chomp.WIN, func(chomp.Event) { result.Won = true })
	world.Events.Subscribe(chomp.LOSS, func(event chomp.Event) {
		result.Lost = true
		logger.Info("game over", "node", event.(chomp.LossEvent).Node.Name)
	})
	world.Events.Subscribe(chomp.SCORE_CHANGED, func(event chomp.Event) {
		e := event.(chomp.ScoreChangedEvent)
		logger.Info("score", "collected", e.Collected, "remaining", e.Remaining)
	})

	for _, segment := range s.Script {
		velocity := mgl64.Vec3(segment.Velocity)
		for i := 0; i < segment.Frames; i++ {
			if frames > 0 && result.Frames >= frames {
				break
			}
			step(s, world, velocity, dt)
			result.Frames++
			if result.Won || result.Lost {
				break
			}
		}
		if result.Won || result.Lost {
			break
		}
	}

	result.Collected = world.Collected()
	result.Remaining = world.Remaining()

	return result
}

// step is one frame of the driver: input, movement, hazards, then collisions
func step(s *scene.Scene, world *chomp.World, velocity mgl64.Vec3, dt float64) {
	s.Subject.Velocity = velocity
	s.Subject.Advance(dt)
	if s.Companion != nil {
		s.Companion.Velocity = velocity
		s.Companion.Advance(dt)
	}

	s.Root.Traverse(func(node *actor.Node) {
		if r, ok := node.Behavior.(*actor.Rotator); ok {
			r.Update(node, dt)
		}
	}, nil)

	world.Update(dt)
}
