package capture

import (
	"fmt"
	"image"
	"path/filepath"
	"sort"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"
)

// StillsConfig replays image files as if they came from a camera
type StillsConfig struct {
	Pattern string // filepath.Glob pattern
	Width   int    // 0 keeps the file size
	Height  int    // 0 keeps the file size
	Loop    bool   // restart after the last file instead of running dry
}

// Stills is a Source backed by image files, loaded in lexical order
type Stills struct {
	files []string
	next  int
	cfg   StillsConfig
}

// OpenStills resolves the glob. It fails when nothing matches.
func OpenStills(cfg StillsConfig) (*Stills, error) {
	files, err := filepath.Glob(cfg.Pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid stills pattern %q: %w", cfg.Pattern, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no images match %q", cfg.Pattern)
	}
	sort.Strings(files)

	return &Stills{files: files, cfg: cfg}, nil
}

// Read decodes the next file into dst. Files that fail to decode end the
// run like a camera that stops delivering.
func (s *Stills) Read(dst *gocv.Mat) bool {
	if s.next >= len(s.files) {
		if !s.cfg.Loop {
			return false
		}
		s.next = 0
	}

	path := s.files[s.next]
	s.next++

	img, err := Load(path, s.cfg.Width, s.cfg.Height)
	if err != nil {
		return false
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return false
	}
	defer mat.Close()

	mat.CopyTo(dst)
	return !dst.Empty()
}

func (s *Stills) Close() error {
	s.next = len(s.files)
	s.cfg.Loop = false
	return nil
}

// Load opens an image honouring EXIF orientation and fits it to width x
// height when both are set.
func Load(path string, width, height int) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	if width > 0 && height > 0 {
		b := img.Bounds()
		if b.Dx() != width || b.Dy() != height {
			img = imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)
		}
	}

	return img, nil
}
