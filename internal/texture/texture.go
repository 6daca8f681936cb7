// Package texture probes texture images for the aspect ratio used by UV projection.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNotImage is returned when a file is not a recognized image.
var ErrNotImage = errors.New("not an image file")

// sniffLen is how many leading bytes filetype needs to classify a file.
const sniffLen = 261

// Aspect returns width/height, or 1 when the height is zero.
func Aspect(width, height int) float32 {
	if height == 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// ImageSize returns the pixel dimensions of an image file without decoding its pixels.
// PNG, JPEG, GIF, BMP, TIFF, WebP and TGA are supported.
func ImageSize(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".tga") {
		cfg, err := DecodeTGAConfig(f)
		if err != nil {
			return 0, 0, fmt.Errorf("%s: %w", path, err)
		}
		return cfg.Width, cfg.Height, nil
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return 0, 0, err
	}
	head = head[:n]

	if !filetype.IsImage(head) {
		return 0, 0, fmt.Errorf("%s: %w", path, ErrNotImage)
	}

	cfg, _, err := image.DecodeConfig(io.MultiReader(bytes.NewReader(head), f))
	if err != nil {
		kind, _ := filetype.Match(head)
		return 0, 0, fmt.Errorf("%s: decoding %s header: %w", path, kind.Extension, err)
	}
	return cfg.Width, cfg.Height, nil
}

// ImageAspect returns the width/height ratio of an image file.
func ImageAspect(path string) (float32, error) {
	w, h, err := ImageSize(path)
	if err != nil {
		return 0, err
	}
	return Aspect(w, h), nil
}

// Settings is the texture selection that feeds the projection aspect.
type Settings struct {
	Image      string
	AutoAspect bool
	Aspect     float32
}

// SetImage selects a texture image. With AutoAspect on, Aspect is re-derived from the image size.
func (s *Settings) SetImage(path string) error {
	s.Image = path
	if !s.AutoAspect || path == "" {
		return nil
	}

	aspect, err := ImageAspect(path)
	if err != nil {
		return err
	}
	s.Aspect = aspect
	return nil
}

// EffectiveAspect returns the aspect to project with. An unset (zero) aspect reads as 1.
func (s *Settings) EffectiveAspect() float32 {
	if s.Aspect == 0 {
		return 1
	}
	return s.Aspect
}
