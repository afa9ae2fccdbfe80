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

package scene_test

import (
	"errors"
	"image/color"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jetsetilly/osrdemo/framebuffer"
	"github.com/jetsetilly/osrdemo/gpu"
	"github.com/jetsetilly/osrdemo/gpu/softgpu"
	"github.com/jetsetilly/osrdemo/scene"
	"github.com/jetsetilly/osrdemo/test"
)

const width = 64
const height = 40

func setup(t *testing.T, kind gpu.ProgramKind) *softgpu.Device {
	t.Helper()

	dev, err := softgpu.NewDevice(width, height)
	test.DemandSuccess(t, err)

	prog, err := dev.CreateProgram(kind)
	test.DemandSuccess(t, err)
	dev.UseProgram(prog)

	return dev
}

// lit returns true if any pixel in column x between rows ylo and yhi
// (inclusive) differs from the black background.
func lit(dev *softgpu.Device, x int, ylo int, yhi int) bool {
	for y := ylo; y <= yhi; y++ {
		c, ok := dev.Pixel(gpu.DefaultFramebuffer, x, y)
		if ok && c != (color.RGBA{A: 255}) {
			return true
		}
	}
	return false
}

func TestNoPointsNoOffscreen(t *testing.T) {
	dev := setup(t, gpu.SceneProgram)

	r, err := scene.NewRenderer(dev, nil, width, height, false)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, r.Offscreen() == nil)
	test.ExpectEquality(t, r.Count(), 0)

	dev.Clear(gpu.Color{A: 1})
	r.DrawScene()

	draws := dev.Draws()
	test.DemandEquality(t, len(draws), 1)
	test.ExpectEquality(t, draws[0].Primitive, gpu.Points)
	test.ExpectEquality(t, draws[0].Count, 0)
	test.ExpectEquality(t, dev.Stats().Errors, 0)

	img, _ := dev.Image(gpu.DefaultFramebuffer)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			test.DemandEquality(t, img.RGBAAt(x, y), color.RGBA{A: 255})
		}
	}

	// no quad is drawn without an off-screen target
	err = r.DrawQuadScreen()
	test.ExpectSuccess(t, errors.Is(err, scene.ErrNoOffscreen))
	test.ExpectEquality(t, len(dev.Draws()), 1)

	r.Destroy()
	test.ExpectEquality(t, dev.Stats().Live(), 1)
}

func TestDrawCallCount(t *testing.T) {
	dev := setup(t, gpu.SceneProgram)

	rng := rand.New(rand.NewPCG(1, 2))
	points := scene.RandomPoints(rng, 1000, -1, 1)

	r, err := scene.NewRenderer(dev, points, width, height, true)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, r.Offscreen() != nil)

	r.DrawScene()
	draws := dev.Draws()
	test.DemandEquality(t, len(draws), 1)
	test.ExpectEquality(t, draws[0].Primitive, gpu.Points)
	test.ExpectEquality(t, draws[0].First, 0)
	test.ExpectEquality(t, draws[0].Count, 1000)

	quad, err := dev.CreateProgram(gpu.QuadProgram)
	test.DemandSuccess(t, err)
	dev.UseProgram(quad)
	dev.ResetDraws()

	test.ExpectSuccess(t, r.DrawQuadScreen())
	draws = dev.Draws()
	test.DemandEquality(t, len(draws), 1)
	test.ExpectEquality(t, draws[0].Primitive, gpu.Triangles)
	test.ExpectEquality(t, draws[0].First, 0)
	test.ExpectEquality(t, draws[0].Count, 6)
	test.ExpectEquality(t, draws[0].Program, gpu.QuadProgram)

	r.Destroy()
}

func TestDestroy(t *testing.T) {
	dev := setup(t, gpu.SceneProgram)
	before := dev.Stats().Live()

	r, err := scene.NewRenderer(dev, make([]mgl32.Vec3, 10), width, height, true)
	test.DemandSuccess(t, err)

	// two vertex buffers of two objects each, plus texture, renderbuffer and
	// framebuffer
	test.ExpectEquality(t, dev.Stats().Live(), before+7)

	r.Destroy()
	test.ExpectEquality(t, dev.Stats().Live(), before)

	r.Destroy()
	test.ExpectEquality(t, dev.Stats().Live(), before)
	test.ExpectEquality(t, dev.Stats().DoubleDeletes, 0)

	// nothing is drawn after destruction
	dev.ResetDraws()
	r.DrawScene()
	test.ExpectFailure(t, r.DrawQuadScreen())
	test.ExpectEquality(t, len(dev.Draws()), 0)
}

func TestConstructionFailure(t *testing.T) {
	dev := setup(t, gpu.SceneProgram)
	before := dev.Stats().Live()

	_, err := scene.NewRenderer(dev, make([]mgl32.Vec3, 10), 0, height, true)
	test.ExpectSuccess(t, errors.Is(err, framebuffer.ErrIncomplete))
	test.ExpectEquality(t, dev.Stats().Live(), before)
	test.ExpectEquality(t, dev.Stats().DoubleDeletes, 0)

	// a zero sized target is of no consequence if it is not requested
	r, err := scene.NewRenderer(dev, make([]mgl32.Vec3, 10), 0, 0, false)
	test.ExpectSuccess(t, err)
	r.Destroy()
}

func TestWireQuad(t *testing.T) {
	dev := setup(t, gpu.SceneProgram)

	r, err := scene.NewWireQuad(dev)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, r.Offscreen() == nil)
	test.ExpectEquality(t, r.Count(), 6)

	dev.Clear(gpu.Color{A: 1})
	r.DrawScene()

	draws := dev.Draws()
	test.DemandEquality(t, len(draws), 1)
	test.ExpectEquality(t, draws[0].Primitive, gpu.Triangles)
	test.ExpectEquality(t, draws[0].Count, 6)
	test.ExpectSuccess(t, draws[0].Wireframe)

	// the bottom and top edges are drawn. the edges lie on pixel boundaries
	// so either row either side of the boundary may be lit
	test.ExpectSuccess(t, lit(dev, width/2, 3, 4))
	test.ExpectSuccess(t, lit(dev, width/2, 35, 36))

	// the middle of the quad is not drawn
	test.ExpectFailure(t, lit(dev, 20, 12, 12))

	// wireframe mode does not leak into later draw calls
	r.DrawScene()
	cloud, err := scene.NewRenderer(dev, make([]mgl32.Vec3, 1), width, height, false)
	test.DemandSuccess(t, err)
	cloud.DrawScene()
	draws = dev.Draws()
	test.DemandEquality(t, len(draws), 3)
	test.ExpectFailure(t, draws[2].Wireframe)

	test.ExpectFailure(t, r.DrawQuadScreen())

	r.Destroy()
	cloud.Destroy()
}

func TestQuadGeometry(t *testing.T) {
	q := scene.ScreenQuad()
	test.DemandEquality(t, len(q), 24)
	q[0] = 100
	test.ExpectEquality(t, scene.ScreenQuad()[0], float32(-1))

	w := scene.WireQuad()
	test.DemandEquality(t, len(w), 24)
	w[0] = 100
	test.ExpectEquality(t, scene.WireQuad()[0], float32(-0.8))
}

func TestRandomPoints(t *testing.T) {
	rng := rand.New(rand.NewPCG(10, 20))
	points := scene.RandomPoints(rng, 500, -1, 1)
	test.DemandEquality(t, len(points), 500)

	for _, p := range points {
		for _, v := range p {
			test.DemandSuccess(t, v >= -1 && v < 1)
		}
	}

	// same seed gives the same points
	again := scene.RandomPoints(rand.New(rand.NewPCG(10, 20)), 500, -1, 1)
	for i := range points {
		test.DemandEquality(t, again[i], points[i])
	}

	test.ExpectEquality(t, len(scene.RandomPoints(rng, 0, -1, 1)), 0)
}

func TestMotion(t *testing.T) {
	test.ExpectSuccess(t, scene.Motion(0).ApproxEqual(mgl32.Ident4()))

	const tm = 0.75
	m := scene.Motion(tm)

	// translation is applied last
	test.ExpectApproximate(t, m.At(0, 3), float32(math.Sin(tm)), 0.0001)
	test.ExpectApproximate(t, m.At(1, 3), 0, 0.0001)
	test.ExpectApproximate(t, m.At(2, 3), 0, 0.0001)

	// rotation is a rigid transform
	v := m.Mul4x1(mgl32.Vec4{1, 0, 0, 0})
	test.ExpectApproximate(t, v.Len(), 1, 0.0001)

	var anim scene.Animation
	anim.Step()
	anim.Step()
	test.ExpectApproximate(t, anim.T, 2*scene.MotionStep, 0.0001)

	anim.Toggle()
	anim.Step()
	test.ExpectApproximate(t, anim.T, 2*scene.MotionStep, 0.0001)
	test.ExpectSuccess(t, anim.Model().ApproxEqual(scene.Motion(anim.T)))

	anim.Toggle()
	anim.Step()
	test.ExpectApproximate(t, anim.T, 3*scene.MotionStep, 0.0001)
}
