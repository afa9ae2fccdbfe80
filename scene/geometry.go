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

package scene

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// two triangles covering normalised device coordinates. each record is a two
// float position followed by a two float texture coordinate
var screenQuad = [...]float32{
	-1.0, 1.0, 0.0, 1.0,
	-1.0, -1.0, 0.0, 0.0,
	1.0, -1.0, 1.0, 0.0,

	-1.0, 1.0, 0.0, 1.0,
	1.0, -1.0, 1.0, 0.0,
	1.0, 1.0, 1.0, 1.0,
}

// same layout as screenQuad but smaller, so that it can be seen to move when
// drawn with a model transform
var wireQuad = [...]float32{
	-0.8, 0.8, 0.0, 0.8,
	-0.8, -0.8, 0.0, 0.0,
	0.8, -0.8, 0.8, 0.0,

	-0.8, 0.8, 0.0, 0.8,
	0.8, -0.8, 0.8, 0.0,
	0.8, 0.8, 0.8, 0.8,
}

const quadStride = 4

// ScreenQuad returns a copy of the full-screen quad. Each record is a two
// float position followed by a two float texture coordinate.
func ScreenQuad() []float32 {
	q := screenQuad
	return q[:]
}

// WireQuad returns a copy of the quad drawn by NewWireQuad(). It has the same
// layout as ScreenQuad().
func WireQuad() []float32 {
	q := wireQuad
	return q[:]
}

// RandomPoints returns n points distributed uniformly in the cube [lo, hi).
func RandomPoints(rng *rand.Rand, n int, lo float32, hi float32) []mgl32.Vec3 {
	points := make([]mgl32.Vec3, n)
	span := hi - lo
	for i := range points {
		points[i] = mgl32.Vec3{
			lo + span*rng.Float32(),
			lo + span*rng.Float32(),
			lo + span*rng.Float32(),
		}
	}
	return points
}

func flatten(points []mgl32.Vec3) []float32 {
	data := make([]float32, 0, len(points)*3)
	for _, p := range points {
		data = append(data, p[0], p[1], p[2])
	}
	return data
}
