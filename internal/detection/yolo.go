package detection

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"led-shapes/internal/shape"
)

// YOLODetector runs a YOLOv8/YOLO11 ONNX export through OpenCV DNN
type YOLODetector struct {
	net       gocv.Net
	config    Config
	mu        sync.Mutex
	inputSize image.Point
	closed    bool
}

// NewYOLO loads the model
func NewYOLO(cfg Config) (*YOLODetector, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	net := gocv.ReadNetFromONNX(cfg.ModelPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load YOLO model from %s", cfg.ModelPath)
	}

	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	return &YOLODetector{
		net:       net,
		config:    cfg,
		inputSize: image.Pt(cfg.InputWidth, cfg.InputHeight),
	}, nil
}

// Config returns the detector configuration
func (d *YOLODetector) Config() Config {
	return d.config
}

// Detect runs one forward pass over a BGR frame
func (d *YOLODetector) Detect(frame gocv.Mat) ([]shape.Detection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, errors.New("detector closed")
	}
	if frame.Empty() {
		return nil, fmt.Errorf("empty frame")
	}

	blob := gocv.BlobFromImage(frame, 1.0/255.0, d.inputSize, gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")

	output := d.net.Forward("")
	defer output.Close()

	// Output shape: [1, 4+classes, anchors]
	dims := output.Size()
	if len(dims) != 3 || dims[1] <= 4 {
		return nil, fmt.Errorf("unexpected YOLO output shape %v", dims)
	}

	data, err := output.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("read output tensor: %w", err)
	}

	scale := Scale{
		X: float32(frame.Cols()) / float32(d.config.InputWidth),
		Y: float32(frame.Rows()) / float32(d.config.InputHeight),
	}
	cands := decodeCandidates(data, dims[1], dims[2], scale, d.config.ConfidenceThresh)

	return d.suppress(cands), nil
}

// classOffset shifts each class into its own coordinate band so that boxes
// of different classes never overlap during suppression.
const classOffset = 7680

// suppress applies non-maximum suppression within each class. A circle and a
// square over the same LED both survive.
func (d *YOLODetector) suppress(cands []candidate) []shape.Detection {
	if len(cands) == 0 {
		return nil
	}

	boxes := make([]image.Rectangle, len(cands))
	scores := make([]float32, len(cands))
	for i, c := range cands {
		off := c.classID * classOffset
		boxes[i] = c.box.Add(image.Pt(off, off))
		scores[i] = c.score
	}

	indices := gocv.NMSBoxes(boxes, scores, d.config.ConfidenceThresh, d.config.NMSThresh)

	detections := make([]shape.Detection, 0, len(indices))
	for _, idx := range indices {
		c := cands[idx]
		detections = append(detections, shape.Detection{
			Box:        c.box,
			ClassID:    c.classID,
			Confidence: float64(c.score),
		})
	}
	return detections
}

// Close releases the network. Later calls are no-ops.
func (d *YOLODetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	return d.net.Close()
}
