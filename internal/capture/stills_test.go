package capture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"gocv.io/x/gocv"
)

func writePNG(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestStillsReadsInOrderThenRunsDry(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "b.png"), 8, 6, color.RGBA{0, 0, 255, 255})
	writePNG(t, filepath.Join(dir, "a.png"), 8, 6, color.RGBA{255, 255, 0, 255})

	src, err := OpenStills(StillsConfig{Pattern: filepath.Join(dir, "*.png")})
	if err != nil {
		t.Fatalf("OpenStills: %v", err)
	}
	defer src.Close()

	if len(src.files) != 2 {
		t.Fatalf("files: got %d, want 2", len(src.files))
	}

	frame := gocv.NewMat()
	defer frame.Close()

	if !src.Read(&frame) {
		t.Fatal("first Read failed")
	}
	if frame.Cols() != 8 || frame.Rows() != 6 || frame.Channels() != 3 {
		t.Fatalf("frame: %dx%d with %d channels", frame.Cols(), frame.Rows(), frame.Channels())
	}
	// a.png is yellow, stored as BGR
	if b, g, r := frame.GetUCharAt3(0, 0, 0), frame.GetUCharAt3(0, 0, 1), frame.GetUCharAt3(0, 0, 2); b != 0 || g != 255 || r != 255 {
		t.Errorf("first pixel BGR: got (%d,%d,%d), want (0,255,255)", b, g, r)
	}

	if !src.Read(&frame) {
		t.Fatal("second Read failed")
	}
	if src.Read(&frame) {
		t.Error("Read after the last file should report no frame")
	}
}

func TestStillsLoopAndResize(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "only.png"), 20, 10, color.White)

	src, err := OpenStills(StillsConfig{Pattern: filepath.Join(dir, "*.png"), Width: 16, Height: 12, Loop: true})
	if err != nil {
		t.Fatalf("OpenStills: %v", err)
	}

	frame := gocv.NewMat()
	defer frame.Close()

	for i := 0; i < 3; i++ {
		if !src.Read(&frame) {
			t.Fatalf("Read %d failed while looping", i)
		}
		if frame.Cols() != 16 || frame.Rows() != 12 {
			t.Errorf("Read %d size: got %dx%d, want 16x12", i, frame.Cols(), frame.Rows())
		}
	}

	src.Close()
	if src.Read(&frame) {
		t.Error("Read after Close should report no frame")
	}
}

func TestOpenStillsNoMatch(t *testing.T) {
	if _, err := OpenStills(StillsConfig{Pattern: filepath.Join(t.TempDir(), "*.jpg")}); err == nil {
		t.Error("expected error when nothing matches")
	}
}
