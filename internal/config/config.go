package config

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"led-shapes/internal/pipeline"
)

const (
	SourceCamera = "camera"
	SourceStills = "stills"
	SourceScreen = "screen"

	UIHighGUI = "highgui"
	UIFyne    = "fyne"
)

// Config holds the run configuration. It is filled from command-line flags only.
type Config struct {
	Pipeline pipeline.Kind

	Source string
	Device int
	Width  int // 0 keeps the source's native size
	Height int
	Stills string // glob of image files
	Loop   bool
	Screen image.Rectangle // empty means the whole primary screen

	ModelPath string
	UI        string
}

// Default returns the device and frame size each pipeline expects
func Default(kind pipeline.Kind) *Config {
	cfg := &Config{
		Pipeline:  kind,
		Source:    SourceCamera,
		Device:    2,
		ModelPath: "best.onnx",
		UI:        UIHighGUI,
	}
	if kind == pipeline.Model {
		cfg.Device = 1
		cfg.Width = 640
		cfg.Height = 480
	}
	return cfg
}

// Validate clamps sizes and rejects unknown choices
func (c *Config) Validate() error {
	if _, err := pipeline.ParseKind(string(c.Pipeline)); err != nil {
		return err
	}

	switch c.Source {
	case SourceCamera:
		if c.Device < 0 {
			return fmt.Errorf("invalid camera device %d", c.Device)
		}
	case SourceStills:
		if c.Stills == "" {
			return errors.New("stills source needs -stills")
		}
	case SourceScreen:
	default:
		return fmt.Errorf("unknown source %q", c.Source)
	}

	switch c.UI {
	case UIHighGUI, UIFyne:
	default:
		return fmt.Errorf("unknown ui %q", c.UI)
	}

	if c.Width < 0 {
		c.Width = 0
	}
	if c.Height < 0 {
		c.Height = 0
	}
	if c.Pipeline == pipeline.Model && c.ModelPath == "" {
		c.ModelPath = "best.onnx"
	}
	return nil
}

// Parse reads flags from args (without the program name). Flags that are not
// given fall back to the selected pipeline's defaults.
func Parse(args []string, output io.Writer) (*Config, error) {
	fs := flag.NewFlagSet("led-shapes", flag.ContinueOnError)
	fs.SetOutput(output)

	var (
		kind   = fs.String("pipeline", string(pipeline.Color), "detection pipeline: color or model")
		source = fs.String("source", SourceCamera, "frame source: camera, stills or screen")
		device = fs.Int("device", 0, "camera device index (default 2 for color, 1 for model)")
		width  = fs.Int("width", 0, "frame width (default 640 for model)")
		height = fs.Int("height", 0, "frame height (default 480 for model)")
		stills = fs.String("stills", "", "glob of image files for the stills source")
		loop   = fs.Bool("loop", false, "replay stills forever")
		screen = fs.String("screen", "", "screen region x,y,w,h for the screen source")
		model  = fs.String("model", "best.onnx", "ONNX detector for the model pipeline")
		ui     = fs.String("ui", UIHighGUI, "presenter: highgui or fyne")
	)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	k, err := pipeline.ParseKind(*kind)
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg := Default(k)
	cfg.Source = *source
	cfg.Stills = *stills
	cfg.Loop = *loop
	cfg.ModelPath = *model
	cfg.UI = *ui
	if set["device"] {
		cfg.Device = *device
	}
	if set["width"] {
		cfg.Width = *width
	}
	if set["height"] {
		cfg.Height = *height
	}
	if *screen != "" {
		if cfg.Screen, err = ParseRect(*screen); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseRect parses "x,y,w,h"
func ParseRect(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("screen region %q: want x,y,w,h", s)
	}

	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("screen region %q: %w", s, err)
		}
		v[i] = n
	}
	if v[2] <= 0 || v[3] <= 0 {
		return image.Rectangle{}, fmt.Errorf("screen region %q: size must be positive", s)
	}
	return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]), nil
}
