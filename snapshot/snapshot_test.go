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

package snapshot_test

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/osrdemo/snapshot"
	"github.com/jetsetilly/osrdemo/test"
)

func checkerboard(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{A: 255})
			}
		}
	}
	return img
}

func TestDiffering(t *testing.T) {
	img := checkerboard(4, 4)
	test.ExpectEquality(t, snapshot.Differing(img, color.RGBA{A: 255}), 8)
	test.ExpectEquality(t, snapshot.Differing(img, color.RGBA{R: 1}), 16)
}

func TestScale(t *testing.T) {
	img := checkerboard(10, 6)

	test.ExpectSuccess(t, snapshot.Scale(img, 1.0) == image.Image(img))

	half := snapshot.Scale(img, 0.5)
	test.ExpectEquality(t, half.Bounds().Dx(), 5)
	test.ExpectEquality(t, half.Bounds().Dy(), 3)

	tiny := snapshot.Scale(img, 0.01)
	test.ExpectEquality(t, tiny.Bounds().Dx(), 1)
	test.ExpectEquality(t, tiny.Bounds().Dy(), 1)
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	img := checkerboard(8, 8)

	pth := filepath.Join(dir, "frame.png")
	test.DemandSuccess(t, snapshot.Save(img, pth, 2.0))

	f, err := os.Open(pth)
	test.DemandSuccess(t, err)
	defer f.Close()

	saved, err := png.Decode(f)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, saved.Bounds().Dx(), 16)
	test.ExpectEquality(t, saved.Bounds().Dy(), 16)

	test.ExpectSuccess(t, snapshot.Save(img, filepath.Join(dir, "frame.JPG"), 1.0))

	err = snapshot.Save(img, filepath.Join(dir, "frame.bmp"), 1.0)
	test.ExpectSuccess(t, errors.Is(err, snapshot.ErrFormat))
}

func TestUniqueFilename(t *testing.T) {
	fn := snapshot.UniqueFilename("headless", ".png")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "headless_"))
	test.ExpectSuccess(t, strings.HasSuffix(fn, ".png"))
	test.ExpectFailure(t, strings.Contains(fn, ".."))
}
