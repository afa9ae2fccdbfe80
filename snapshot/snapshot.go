// This file is part of osrdemo.
//
// osrdemo is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// osrdemo is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with osrdemo.  If not, see <https://www.gnu.org/licenses/>.

package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/draw"

	"github.com/jetsetilly/osrdemo/logger"
)

// ErrFormat is returned by Save() when the filename extension does not name a
// supported image format.
var ErrFormat = errors.New("unsupported image format")

// UniqueFilename creates a filename that (assuming a functioning clock) should
// not collide with any existing file. Note that the function does not test for
// this.
//
// Format of returned string is:
//
//	prepend_YYYYMMDD_HHMMSS.ext
func UniqueFilename(prepend string, ext string) string {
	n := time.Now()
	timestamp := fmt.Sprintf("%04d%02d%02d_%02d%02d%02d", n.Year(), n.Month(), n.Day(), n.Hour(), n.Minute(), n.Second())
	return fmt.Sprintf("%s_%s.%s", prepend, timestamp, strings.TrimPrefix(ext, "."))
}

// Scale returns a copy of the image resized by the scale factor with bilinear
// filtering. A scale of 1.0 returns the image unchanged.
func Scale(img image.Image, scale float64) image.Image {
	if scale == 1.0 || scale <= 0 {
		return img
	}

	b := img.Bounds()
	w := max(1, int(float64(b.Dx())*scale))
	h := max(1, int(float64(b.Dy())*scale))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Save writes the image to path, scaled by the scale factor. The format is
// chosen by the filename extension: ".png", ".jpg" or ".jpeg".
func Save(img image.Image, path string, scale float64) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", ".jpg", ".jpeg":
	default:
		return fmt.Errorf("snapshot: %w: %q", ErrFormat, ext)
	}

	img = Scale(img, scale)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	switch ext {
	case ".png":
		err = png.Encode(f, img)
	default:
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 100})
	}
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("snapshot: %w", err)
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	b := img.Bounds()
	logger.Logf(logger.Allow, "snapshot", "saved: %s (%dx%d)", path, b.Dx(), b.Dy())

	return nil
}

// Differing returns the number of pixels in the image that are not the
// specified colour.
func Differing(img *image.RGBA, col color.RGBA) int {
	var n int
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) != col {
				n++
			}
		}
	}
	return n
}
