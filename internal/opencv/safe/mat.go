package safe

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"gocv.io/x/gocv"
)

// Mat owns one gocv.Mat for the lifetime of a frame step. Close is
// idempotent and a finalizer releases the native memory if it is skipped.
type Mat struct {
	mat     gocv.Mat
	isValid int32
	mu      sync.RWMutex
	tag     string
}

func NewMat(rows, cols int, matType gocv.MatType, tag string) (*Mat, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", cols, rows)
	}

	mat := gocv.NewMatWithSize(rows, cols, matType)
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("failed to create Mat with size %dx%d", cols, rows)
	}

	return Wrap(mat, tag), nil
}

// NewMatFromMat clones src so the caller keeps ownership of its own buffer
func NewMatFromMat(srcMat gocv.Mat, tag string) (*Mat, error) {
	if srcMat.Empty() {
		return nil, fmt.Errorf("source Mat is empty")
	}

	clonedMat := srcMat.Clone()
	if clonedMat.Empty() {
		clonedMat.Close()
		return nil, fmt.Errorf("failed to clone Mat")
	}

	return Wrap(clonedMat, tag), nil
}

// Wrap takes ownership of mat
func Wrap(mat gocv.Mat, tag string) *Mat {
	safeMat := &Mat{
		mat:     mat,
		isValid: 1,
		tag:     tag,
	}

	runtime.SetFinalizer(safeMat, (*Mat).finalize)
	return safeMat
}

func (sm *Mat) IsValid() bool {
	return atomic.LoadInt32(&sm.isValid) == 1
}

// inspect reads a property of the underlying Mat, or returns zero once released
func inspect[T any](sm *Mat, zero T, read func(gocv.Mat) T) T {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return zero
	}
	return read(sm.mat)
}

func (sm *Mat) Empty() bool {
	return inspect(sm, true, func(m gocv.Mat) bool { return m.Empty() })
}

func (sm *Mat) Rows() int {
	return inspect(sm, 0, func(m gocv.Mat) int { return m.Rows() })
}

func (sm *Mat) Cols() int {
	return inspect(sm, 0, func(m gocv.Mat) int { return m.Cols() })
}

func (sm *Mat) Channels() int {
	return inspect(sm, 0, func(m gocv.Mat) int { return m.Channels() })
}

func (sm *Mat) Type() gocv.MatType {
	return inspect(sm, gocv.MatTypeCV8UC1, func(m gocv.Mat) gocv.MatType { return m.Type() })
}

func (sm *Mat) Clone() (*Mat, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return nil, fmt.Errorf("cannot clone invalid Mat")
	}

	return NewMatFromMat(sm.mat, sm.tag+"_clone")
}

// GetMat exposes the underlying Mat. It stays owned by sm.
func (sm *Mat) GetMat() gocv.Mat {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.mat
}

// Detach hands the underlying Mat to the caller, who must Close it
func (sm *Mat) Detach() (gocv.Mat, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !atomic.CompareAndSwapInt32(&sm.isValid, 1, 0) {
		return gocv.Mat{}, fmt.Errorf("cannot detach invalid Mat %s", sm.tag)
	}

	runtime.SetFinalizer(sm, nil)
	return sm.mat, nil
}

func (sm *Mat) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if atomic.CompareAndSwapInt32(&sm.isValid, 1, 0) {
		sm.mat.Close()
		runtime.SetFinalizer(sm, nil)
	}
}

func (sm *Mat) finalize() {
	if atomic.LoadInt32(&sm.isValid) == 1 {
		sm.Close()
	}
}
