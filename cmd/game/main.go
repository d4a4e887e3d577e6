package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/younwookim/flume/internal/application/game"
	"github.com/younwookim/flume/internal/application/replay"
	"github.com/younwookim/flume/internal/application/scene/riding"
	"github.com/younwookim/flume/internal/application/runner"
	"github.com/younwookim/flume/internal/infrastructure/config"
	"github.com/younwookim/flume/internal/infrastructure/logging"
	"github.com/younwookim/flume/internal/infrastructure/telemetry"
)

//go:embed configs
var configsFS embed.FS

const (
	screenW = 640
	screenH = 480
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "inspect" {
		if err := runInspect(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	var (
		seed       = flag.Int64("seed", time.Now().UnixNano(), "simulation seed")
		courseName = flag.String("course", "main", "course name under configs/courses")
		recordFile = flag.String("record", "", "record inputs to this file")
		replayFile = flag.String("replay", "", "replay inputs from this file")
		telemAddr  = flag.String("telemetry", "", "serve the websocket telemetry feed on this address")
		logFile    = flag.String("log", "flume.log", "log file path")
		logLevel   = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	log, err := logging.New(*logFile, *logLevel, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(log, *seed, *courseName, *recordFile, *replayFile, *telemAddr); err != nil {
		log.Fatal("game exited", zap.Error(err))
	}
}

func run(log *zap.Logger, seed int64, courseName, recordFile, replayFile, telemAddr string) error {
	cfgFS, err := fs.Sub(configsFS, "configs")
	if err != nil {
		return fmt.Errorf("embedded configs: %w", err)
	}
	loader := config.NewFSLoader(cfgFS, "configs")

	cfg, err := loader.LoadAll()
	if err != nil {
		return fmt.Errorf("loading configs: %w", err)
	}

	var replayer *replay.Replayer
	if replayFile != "" {
		data, err := replay.Load(replayFile)
		if err != nil {
			return err
		}
		replayer = replay.NewReplayer(*data)
		seed = replayer.Seed()
		courseName = replayer.Course()
		log.Info("replaying", zap.String("file", replayFile), zap.Int("frames", replayer.TotalFrames()))
	}

	courseCfg, err := loader.LoadCourse(courseName)
	if err != nil {
		return fmt.Errorf("loading course: %w", err)
	}

	var recorder *replay.Recorder
	if recordFile != "" && replayer == nil {
		recorder = replay.NewRecorder(seed, courseName)
	}

	var publish func(runner.Snapshot)
	if telemAddr != "" {
		server := telemetry.NewServer(log.Named("telemetry"), telemetry.DefaultInterval)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := server.Run(ctx, telemAddr); err != nil {
				log.Warn("telemetry server stopped", zap.Error(err))
			}
		}()
		publish = func(s runner.Snapshot) { server.Publish(s) }
		log.Info("telemetry feed up", zap.String("addr", telemAddr))
	}

	ride := riding.New(riding.Params{
		Tuning:   cfg.Tuning,
		Pickups:  cfg.Pickups,
		Course:   courseCfg,
		Seed:     seed,
		Replayer: replayer,
		Recorder: recorder,
		Publish:  publish,
		Log:      log,
		ScreenW:  screenW,
		ScreenH:  screenH,
	})

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("flume")

	runErr := ebiten.RunGame(game.New(ride, screenW, screenH))

	if recorder != nil && recorder.FrameCount() > 0 {
		if err := recorder.Save(recordFile); err != nil {
			log.Warn("saving recording failed", zap.Error(err))
		} else {
			log.Info("recording saved", zap.String("file", recordFile), zap.Int("frames", recorder.FrameCount()))
		}
	}

	if runErr != nil && runErr != ebiten.Termination {
		return runErr
	}
	return nil
}
