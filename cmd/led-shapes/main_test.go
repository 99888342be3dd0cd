package main

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"led-shapes/internal/capture"
	"led-shapes/internal/config"
	"led-shapes/internal/runner"
)

var (
	_ runner.Source = (*capture.Camera)(nil)
	_ runner.Source = (*capture.Stills)(nil)
	_ runner.Source = (*capture.Screen)(nil)
)

type recordingLogger struct {
	errs []error
}

func (r *recordingLogger) Debug(string, string, map[string]interface{})   {}
func (r *recordingLogger) Info(string, string, map[string]interface{})    {}
func (r *recordingLogger) Warning(string, string, map[string]interface{}) {}
func (r *recordingLogger) Error(_ string, err error, _ map[string]interface{}) {
	r.errs = append(r.errs, err)
}

type closeFunc func() error

func (f closeFunc) Close() error { return f() }

func TestCloserLogsCloseError(t *testing.T) {
	busy := errors.New("device busy")
	log := &recordingLogger{}

	closer(log, "source", closeFunc(func() error { return busy })).Shutdown()

	if len(log.errs) != 1 || !errors.Is(log.errs[0], busy) {
		t.Fatalf("logged %v, want wrapped %v", log.errs, busy)
	}
	if got := log.errs[0].Error(); got != "close source: device busy" {
		t.Errorf("message = %q", got)
	}

	closer(log, "presenter", closeFunc(func() error { return nil })).Shutdown()
	if len(log.errs) != 1 {
		t.Errorf("successful close should not log, got %v", log.errs)
	}
}

func TestOpenSourceMissingStills(t *testing.T) {
	src, err := openSource(&config.Config{Source: config.SourceStills, Stills: t.TempDir() + "/*.png"})
	if err == nil {
		t.Fatal("expected error for empty glob")
	}
	if src != nil {
		t.Errorf("source = %#v, want nil interface", src)
	}
}

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		level string
		debug string
		want  zerolog.Level
	}{
		{"", "", zerolog.InfoLevel},
		{"", "1", zerolog.DebugLevel},
		{"debug", "", zerolog.DebugLevel},
		{"warn", "1", zerolog.WarnLevel},
		{"error", "", zerolog.ErrorLevel},
		{"verbose", "", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Setenv("LOG_LEVEL", tt.level)
		t.Setenv("DEBUG", tt.debug)
		if got := determineLogLevel(); got != tt.want {
			t.Errorf("LOG_LEVEL=%q DEBUG=%q: got %v, want %v", tt.level, tt.debug, got, tt.want)
		}
	}
}

func TestRunRejectsBadFlags(t *testing.T) {
	if code := run([]string{"-pipeline", "hough"}); code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}

func TestRunFailsWithoutFrames(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	dir := t.TempDir()
	code := run([]string{"-pipeline", "model", "-source", "stills", "-stills", dir + "/*.png"})
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}
