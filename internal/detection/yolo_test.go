package detection

import (
	"os"
	"path/filepath"
	"testing"

	"gocv.io/x/gocv"
)

func TestNewYOLOInvalidPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModelPath = "/nonexistent/path/best.onnx"

	if _, err := NewYOLO(cfg); err == nil {
		t.Error("Expected error for invalid model path")
	}
}

func TestYOLODetectSolidFrame(t *testing.T) {
	modelPath := findModelPath()
	if modelPath == "" {
		t.Skip("LED model not found, skipping test")
	}

	cfg := DefaultConfig()
	cfg.ModelPath = modelPath

	detector, err := NewYOLO(cfg)
	if err != nil {
		t.Fatalf("NewYOLO failed: %v", err)
	}
	defer detector.Close()

	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(40, 40, 40, 0), 480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	dets, err := detector.Detect(frame)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	for _, d := range dets {
		if d.ClassID < 0 || d.ClassID >= len(cfg.ClassNames) {
			t.Errorf("class id out of range: %+v", d)
		}
		if d.Confidence < float64(cfg.ConfidenceThresh) {
			t.Errorf("detection below candidate floor: %+v", d)
		}
	}
}

func TestYOLODetectEmptyFrame(t *testing.T) {
	modelPath := findModelPath()
	if modelPath == "" {
		t.Skip("LED model not found, skipping test")
	}

	cfg := DefaultConfig()
	cfg.ModelPath = modelPath

	detector, err := NewYOLO(cfg)
	if err != nil {
		t.Fatalf("NewYOLO failed: %v", err)
	}
	defer detector.Close()

	empty := gocv.NewMat()
	defer empty.Close()

	if _, err := detector.Detect(empty); err == nil {
		t.Error("Expected error for empty frame")
	}
}

func TestYOLOCloseTwice(t *testing.T) {
	modelPath := findModelPath()
	if modelPath == "" {
		t.Skip("LED model not found, skipping test")
	}

	cfg := DefaultConfig()
	cfg.ModelPath = modelPath

	detector, err := NewYOLO(cfg)
	if err != nil {
		t.Fatalf("NewYOLO failed: %v", err)
	}
	if err := detector.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := detector.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 64, 64, gocv.MatTypeCV8UC3)
	defer frame.Close()
	if _, err := detector.Detect(frame); err == nil {
		t.Error("Detect after Close should fail")
	}
}

func findModelPath() string {
	if p := os.Getenv("LED_MODEL"); p != "" {
		return p
	}

	if cwd, err := os.Getwd(); err == nil {
		for dir := cwd; dir != "/"; dir = filepath.Dir(dir) {
			modelPath := filepath.Join(dir, "models", "best.onnx")
			if _, err := os.Stat(modelPath); err == nil {
				return modelPath
			}
		}
	}

	return ""
}
