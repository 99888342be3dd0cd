package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"led-shapes/internal/capture"
	"led-shapes/internal/config"
	"led-shapes/internal/detection"
	"led-shapes/internal/display"
	"led-shapes/internal/logger"
	"led-shapes/internal/models"
	"led-shapes/internal/pipeline"
	"led-shapes/internal/runner"
	"led-shapes/internal/shutdown"
)

const (
	AppName    = "LED Shapes"
	AppID      = "com.imageprocessing.led-shapes"
	AppVersion = "1.0.0"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Parse(args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	runID := uuid.NewString()
	log := newLogger(determineLogLevel()).With("run_id", runID)

	log.Info("Main", "starting", map[string]interface{}{
		"version":    AppVersion,
		"pipeline":   string(cfg.Pipeline),
		"source":     cfg.Source,
		"ui":         cfg.UI,
		"go_version": runtime.Version(),
	})

	mgr := shutdown.NewManager(context.Background(), log)
	mgr.Listen()
	defer mgr.Shutdown()

	src, err := openSource(cfg)
	if err != nil {
		log.Error("Main", err, map[string]interface{}{"source": cfg.Source})
		return 1
	}
	mgr.Register("source", closer(log, "source", src))

	proc, thresholds, err := openProcessor(cfg, log)
	if err != nil {
		log.Error("Main", err, map[string]interface{}{"pipeline": string(cfg.Pipeline)})
		return 1
	}
	mgr.Register("processor", closer(log, "processor", proc))

	opts := runner.DefaultOptions(cfg.Pipeline)
	opts.RunID = runID

	switch cfg.UI {
	case config.UIFyne:
		err = runPanel(mgr, cfg, src, proc, thresholds, opts, log)
	default:
		err = runHighGUI(mgr, cfg, src, proc, thresholds, opts, log)
	}
	if err != nil {
		log.Error("Main", err, nil)
		return 1
	}
	return 0
}

func runHighGUI(mgr *shutdown.Manager, cfg *config.Config, src runner.Source, proc pipeline.FrameProcessor,
	thresholds *models.Thresholds, opts runner.Options, log logger.Logger) error {
	pres, err := display.NewHighGUI(cfg.Pipeline, thresholds, log)
	if err != nil {
		return err
	}
	mgr.Register("presenter", closer(log, "presenter", pres))

	return runner.New(src, proc, pres, opts, log).Run(mgr.Context())
}

// runPanel keeps fyne on the main goroutine and drives the loop from another.
// The loop closing the panel quits the app, and closing the window stops the loop.
func runPanel(mgr *shutdown.Manager, cfg *config.Config, src runner.Source, proc pipeline.FrameProcessor,
	thresholds *models.Thresholds, opts runner.Options, log logger.Logger) error {
	fyneApp := app.NewWithID(AppID)
	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})

	panel := display.NewPanel(fyneApp, cfg.Pipeline, thresholds, log)
	mgr.Register("presenter", closer(log, "presenter", panel))

	ctl := runner.New(src, proc, panel, opts, log)

	done := make(chan error, 1)
	go func() {
		done <- ctl.Run(mgr.Context())
	}()

	panel.Show()
	fyneApp.Run()

	ctl.Stop()
	return <-done
}

func openSource(cfg *config.Config) (runner.Source, error) {
	switch cfg.Source {
	case config.SourceStills:
		stills, err := capture.OpenStills(capture.StillsConfig{
			Pattern: cfg.Stills,
			Width:   cfg.Width,
			Height:  cfg.Height,
			Loop:    cfg.Loop,
		})
		if err != nil {
			return nil, err
		}
		return stills, nil
	case config.SourceScreen:
		screen, err := capture.NewScreen(cfg.Screen)
		if err != nil {
			return nil, err
		}
		return screen, nil
	default:
		camera, err := capture.OpenCamera(capture.CameraConfig{
			Device: cfg.Device,
			Width:  cfg.Width,
			Height: cfg.Height,
		})
		if err != nil {
			return nil, err
		}
		return camera, nil
	}
}

// closer releases a component on shutdown and logs a failed Close. The
// runner closes the same components on its own exit path; every Close is
// idempotent, so this only matters when setup fails before the run starts.
func closer(log logger.Logger, name string, c interface{ Close() error }) shutdown.Func {
	return func() {
		if err := c.Close(); err != nil {
			log.Error("Shutdown", fmt.Errorf("close %s: %w", name, err), nil)
		}
	}
}

// openProcessor returns the live thresholds for the color pipeline, nil for the model pipeline
func openProcessor(cfg *config.Config, log logger.Logger) (pipeline.FrameProcessor, *models.Thresholds, error) {
	if cfg.Pipeline == pipeline.Model {
		detCfg := detection.DefaultConfig()
		detCfg.ModelPath = cfg.ModelPath

		det, err := detection.NewYOLO(detCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("load detector: %w", err)
		}
		return pipeline.NewModelPipeline(det, detCfg, log), nil, nil
	}

	thresholds := models.NewThresholds(models.DefaultHSVRange())
	thresholds.OnSet(func(c models.Channel, v int) {
		log.Debug("Thresholds", "bound changed", map[string]interface{}{
			"channel": c.String(),
			"value":   v,
		})
	})
	return pipeline.NewColorPipeline(thresholds, log), thresholds, nil
}

func newLogger(level zerolog.Level) *logger.ZerologAdapter {
	if os.Getenv("LOG_FORMAT") == "json" {
		return logger.NewJSONLogger(level)
	}
	return logger.NewConsoleLogger(level)
}

// determineLogLevel determines appropriate log level from environment
func determineLogLevel() zerolog.Level {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		return logger.ParseLevel(level)
	}
	if os.Getenv("DEBUG") == "1" {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}
