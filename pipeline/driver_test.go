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

package pipeline_test

import (
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jetsetilly/osrdemo/gpu"
	"github.com/jetsetilly/osrdemo/gpu/softgpu"
	"github.com/jetsetilly/osrdemo/pipeline"
	"github.com/jetsetilly/osrdemo/scene"
	"github.com/jetsetilly/osrdemo/snapshot"
	"github.com/jetsetilly/osrdemo/test"
)

var (
	background = color.RGBA{A: 255}
	backdrop   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func viewProjection(width, height int) mgl32.Mat4 {
	proj := mgl32.Perspective(mgl32.DegToRad(45), float32(width)/float32(height), 0.01, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

type fixture struct {
	dev *softgpu.Device
	r   *scene.Renderer
	d   *pipeline.Driver
	vp  mgl32.Mat4
}

func newFixture(t *testing.T, width, height, points int, offscreen bool) fixture {
	t.Helper()

	dev, err := softgpu.NewDevice(width, height)
	test.DemandSuccess(t, err)

	rng := rand.New(rand.NewPCG(1280, 800))
	r, err := scene.NewRenderer(dev, scene.RandomPoints(rng, points, -1, 1), int32(width), int32(height), offscreen)
	test.DemandSuccess(t, err)

	d, err := pipeline.NewDriver(dev, r, dev)
	test.DemandSuccess(t, err)

	t.Cleanup(func() {
		d.Destroy()
		r.Destroy()
		test.ExpectEquality(t, dev.Stats().Live(), 0)
		test.ExpectEquality(t, dev.Stats().DoubleDeletes, 0)
	})

	return fixture{dev: dev, r: r, d: d, vp: viewProjection(width, height)}
}

func TestOffscreenCycle(t *testing.T) {
	f := newFixture(t, 1280, 800, 10000, true)

	test.DemandSuccess(t, f.d.Cycle(f.vp))
	test.ExpectEquality(t, f.d.Frames(), 1)
	test.ExpectEquality(t, f.dev.Stats().Errors, 0)

	// default target is current after the cycle and depth testing is off
	test.ExpectEquality(t, f.dev.CurrentFramebuffer(), gpu.DefaultFramebuffer)
	test.ExpectFailure(t, f.dev.DepthTest())

	// scene went to the off-screen target and the quad to the default target
	target := f.r.Offscreen().Framebuffer()
	draws := f.dev.Draws()
	test.DemandEquality(t, len(draws), 2)
	test.ExpectEquality(t, draws[0].Framebuffer, target)
	test.ExpectEquality(t, draws[0].Primitive, gpu.Points)
	test.ExpectEquality(t, draws[0].Count, 10000)
	test.ExpectEquality(t, draws[1].Framebuffer, gpu.DefaultFramebuffer)
	test.ExpectEquality(t, draws[1].Primitive, gpu.Triangles)
	test.ExpectEquality(t, draws[1].Count, 6)

	// points are visible in the colour attachment
	offscreen, ok := f.dev.Image(target)
	test.DemandSuccess(t, ok)
	lit := snapshot.Differing(offscreen, background)
	test.ExpectInequality(t, lit, 0)

	// and the colour attachment has propagated to the presented image
	front := f.dev.Front()
	test.ExpectInequality(t, snapshot.Differing(front, backdrop), 0)
	test.ExpectEquality(t, snapshot.Differing(front, background), lit)

	// same result on the next frame
	f.dev.ResetDraws()
	test.DemandSuccess(t, f.d.Cycle(f.vp))
	test.ExpectEquality(t, len(f.dev.Draws()), 2)
	test.ExpectEquality(t, snapshot.Differing(f.dev.Front(), background), lit)
}

func TestDirectCycle(t *testing.T) {
	f := newFixture(t, 320, 200, 500, false)

	test.DemandSuccess(t, f.d.Cycle(f.vp))

	draws := f.dev.Draws()
	test.DemandEquality(t, len(draws), 1)
	test.ExpectEquality(t, draws[0].Framebuffer, gpu.DefaultFramebuffer)
	test.ExpectEquality(t, draws[0].Count, 500)

	// no backdrop in the direct mode
	front := f.dev.Front()
	test.ExpectInequality(t, snapshot.Differing(front, background), 0)
	test.ExpectEquality(t, snapshot.Differing(front, backdrop), 320*200)
}

func TestTargetRestoration(t *testing.T) {
	f := newFixture(t, 64, 40, 100, true)

	test.DemandSuccess(t, f.d.Cycle(f.vp))

	// a draw call made after the cycle reaches the presented image
	prog, err := f.dev.CreateProgram(gpu.SceneProgram)
	test.DemandSuccess(t, err)
	defer prog.Destroy()

	vb, err := gpu.NewVertexBuffer(f.dev, []float32{0, 0, 0}, 3, gpu.Attrib{Index: gpu.AttribPosition, Size: 3})
	test.DemandSuccess(t, err)
	defer vb.Destroy()

	f.dev.Clear(pipeline.DefaultBackdrop)
	f.dev.UseProgram(prog)
	vb.Draw(gpu.Points)
	f.dev.Present()

	test.ExpectEquality(t, snapshot.Differing(f.dev.Front(), backdrop), 1)
}

// the composite pass drawn before the off-screen target is unbound
func misordered(f fixture) {
	target := f.r.Offscreen()

	prog, _ := f.dev.CreateProgram(gpu.SceneProgram)
	quad, _ := f.dev.CreateProgram(gpu.QuadProgram)
	defer prog.Destroy()
	defer quad.Destroy()

	target.Bind()
	f.dev.SetDepthTest(true)
	f.dev.Clear(pipeline.DefaultBackground)
	f.dev.UseProgram(prog)
	prog.SetMVP(f.vp)
	f.r.DrawScene()

	f.dev.SetDepthTest(false)
	f.dev.UseProgram(quad)
	quad.SetSampler(0)
	_ = f.r.DrawQuadScreen()

	target.Unbind()
	f.dev.Clear(pipeline.DefaultBackdrop)
	f.dev.Present()
}

func TestCompositeOrdering(t *testing.T) {
	f := newFixture(t, 64, 40, 1000, true)

	misordered(f)
	test.ExpectEquality(t, snapshot.Differing(f.dev.Front(), backdrop), 0)

	// the quad was drawn into the off-screen target
	draws := f.dev.Draws()
	test.DemandEquality(t, len(draws), 2)
	test.ExpectEquality(t, draws[1].Framebuffer, f.r.Offscreen().Framebuffer())

	f.dev.ResetDraws()
	test.DemandSuccess(t, f.d.Cycle(f.vp))
	test.ExpectInequality(t, snapshot.Differing(f.dev.Front(), backdrop), 0)
}

func TestWireQuadCycle(t *testing.T) {
	dev, err := softgpu.NewDevice(64, 40)
	test.DemandSuccess(t, err)

	r, err := scene.NewWireQuad(dev)
	test.DemandSuccess(t, err)
	defer r.Destroy()

	d, err := pipeline.NewDriver(dev, r, dev)
	test.DemandSuccess(t, err)
	defer d.Destroy()

	var anim scene.Animation
	for i := 0; i < 3; i++ {
		anim.Step()
		test.DemandSuccess(t, d.Cycle(viewProjection(64, 40).Mul4(anim.Model())))
	}
	test.ExpectEquality(t, d.Frames(), 3)
	test.ExpectEquality(t, dev.Stats().Frames, 3)

	draws := dev.Draws()
	test.DemandEquality(t, len(draws), 3)
	for _, dc := range draws {
		test.ExpectEquality(t, dc.Primitive, gpu.Triangles)
		test.ExpectEquality(t, dc.Count, 6)
		test.ExpectSuccess(t, dc.Wireframe)
	}

	test.ExpectInequality(t, snapshot.Differing(dev.Front(), background), 0)
}
