// Package capture provides the frame sources the run loop reads from. Each
// source fills a caller-owned Mat per Read and reports false when no frame is
// available.
package capture

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// CameraConfig selects a capture device
type CameraConfig struct {
	Device int
	Width  int // 0 keeps the device default
	Height int // 0 keeps the device default
}

// Camera reads frames from a local video device
type Camera struct {
	vc   *gocv.VideoCapture
	cfg  CameraConfig
	once sync.Once
}

// OpenCamera opens the device and applies the requested frame size
func OpenCamera(cfg CameraConfig) (*Camera, error) {
	vc, err := gocv.VideoCaptureDevice(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", cfg.Device, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("camera %d is not available", cfg.Device)
	}

	if cfg.Width > 0 {
		vc.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	}
	if cfg.Height > 0 {
		vc.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	}

	return &Camera{vc: vc, cfg: cfg}, nil
}

func (c *Camera) Read(dst *gocv.Mat) bool {
	if !c.vc.Read(dst) {
		return false
	}
	return !dst.Empty()
}

func (c *Camera) String() string {
	return fmt.Sprintf("camera:%d", c.cfg.Device)
}

// Close releases the device. Safe to call more than once.
func (c *Camera) Close() error {
	var err error
	c.once.Do(func() {
		err = c.vc.Close()
	})
	return err
}
