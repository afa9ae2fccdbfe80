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

package softgpu_test

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jetsetilly/osrdemo/gpu"
	"github.com/jetsetilly/osrdemo/gpu/softgpu"
	"github.com/jetsetilly/osrdemo/test"
)

var (
	black = gpu.Color{R: 0, G: 0, B: 0, A: 1}
	white = gpu.Color{R: 1, G: 1, B: 1, A: 1}
	red   = gpu.Color{R: 1, G: 0, B: 0, A: 1}
)

func newDevice(t *testing.T, w, h int) *softgpu.Device {
	t.Helper()
	dev, err := softgpu.NewDevice(w, h)
	test.DemandSuccess(t, err)
	return dev
}

func upload(t *testing.T, dev *softgpu.Device, data []float32, stride int32, attribs ...gpu.Attrib) *gpu.VertexBuffer {
	t.Helper()
	vb, err := gpu.NewVertexBuffer(dev, data, stride, attribs...)
	test.DemandSuccess(t, err)
	return vb
}

var (
	position3 = gpu.Attrib{Index: gpu.AttribPosition, Size: 3}
	position2 = gpu.Attrib{Index: gpu.AttribPosition, Size: 2}
	texCoord  = gpu.Attrib{Index: gpu.AttribTexCoord, Size: 2, Offset: 2}
)

var fullscreen = []float32{
	-1, 1, 0, 1,
	-1, -1, 0, 0,
	1, -1, 1, 0,
	-1, 1, 0, 1,
	1, -1, 1, 0,
	1, 1, 1, 1,
}

func TestNewDevice(t *testing.T) {
	_, err := softgpu.NewDevice(0, 10)
	test.ExpectFailure(t, err)
	_, err = softgpu.NewDevice(10, -1)
	test.ExpectFailure(t, err)

	dev := newDevice(t, 4, 3)
	w, h := dev.Size()
	test.ExpectEquality(t, w, 4)
	test.ExpectEquality(t, h, 3)

	x, y, vw, vh := dev.GetViewport()
	test.ExpectEquality(t, x, 0)
	test.ExpectEquality(t, y, 0)
	test.ExpectEquality(t, vw, 4)
	test.ExpectEquality(t, vh, 3)

	test.ExpectEquality(t, dev.CurrentFramebuffer(), gpu.DefaultFramebuffer)
	test.ExpectEquality(t, dev.CheckFramebufferStatus(), gpu.StatusComplete)
}

func TestObjectLifetimes(t *testing.T) {
	dev := newDevice(t, 4, 4)

	tex := dev.CreateTexture()
	test.ExpectInequality(t, tex, 0)
	rb := dev.CreateRenderbuffer()
	fb := dev.CreateFramebuffer()
	test.ExpectEquality(t, dev.Stats().Created, 3)
	test.ExpectEquality(t, dev.Stats().Live(), 3)

	// deleting zero is silently ignored
	dev.DeleteTexture(0)
	dev.DeleteRenderbuffer(0)
	dev.DeleteFramebuffer(0)
	test.ExpectEquality(t, dev.Stats().Deleted, 0)
	test.ExpectEquality(t, dev.Stats().DoubleDeletes, 0)

	dev.DeleteTexture(tex)
	dev.DeleteRenderbuffer(rb)
	dev.DeleteFramebuffer(fb)
	test.ExpectEquality(t, dev.Stats().Live(), 0)
	test.ExpectEquality(t, dev.Stats().DoubleDeletes, 0)

	// second deletion is detected
	dev.DeleteTexture(tex)
	test.ExpectEquality(t, dev.Stats().DoubleDeletes, 1)
	test.ExpectEquality(t, dev.Stats().Deleted, 3)

	// destroying a program twice is not a double delete
	prog, err := dev.CreateProgram(gpu.SceneProgram)
	test.DemandSuccess(t, err)
	prog.Destroy()
	prog.Destroy()
	test.ExpectEquality(t, dev.Stats().DoubleDeletes, 1)
	test.ExpectEquality(t, dev.Stats().Live(), 0)
}

func TestFramebufferStatus(t *testing.T) {
	dev := newDevice(t, 8, 8)

	fb := dev.CreateFramebuffer()
	dev.BindFramebuffer(fb)
	test.ExpectEquality(t, dev.CurrentFramebuffer(), fb)
	test.ExpectEquality(t, dev.CheckFramebufferStatus(), gpu.StatusIncompleteMissingAttachment)

	// texture with no storage
	tex := dev.CreateTexture()
	dev.BindTexture(tex)
	dev.FramebufferTexture(tex)
	test.ExpectEquality(t, dev.CheckFramebufferStatus(), gpu.StatusIncompleteAttachment)

	dev.TexImage2D(8, 8)
	test.ExpectEquality(t, dev.CheckFramebufferStatus(), gpu.StatusComplete)

	// renderbuffer of a different size
	rb := dev.CreateRenderbuffer()
	dev.BindRenderbuffer(rb)
	dev.RenderbufferStorage(4, 4)
	dev.FramebufferRenderbuffer(rb)
	test.ExpectEquality(t, dev.CheckFramebufferStatus(), gpu.StatusIncompleteDimensions)

	dev.RenderbufferStorage(8, 8)
	test.ExpectEquality(t, dev.CheckFramebufferStatus(), gpu.StatusComplete)

	// deleted attachment
	dev.DeleteTexture(tex)
	test.ExpectEquality(t, dev.CheckFramebufferStatus(), gpu.StatusIncompleteAttachment)

	// deleting the bound framebuffer rebinds the default
	dev.DeleteFramebuffer(fb)
	test.ExpectEquality(t, dev.CurrentFramebuffer(), gpu.DefaultFramebuffer)
}

func TestClearAndPresent(t *testing.T) {
	dev := newDevice(t, 4, 4)

	dev.Clear(red)
	c, ok := dev.Pixel(gpu.DefaultFramebuffer, 3, 3)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, c, color.RGBA{R: 255, A: 255})

	// nothing presented yet
	test.ExpectEquality(t, dev.Front().RGBAAt(0, 0), color.RGBA{})

	dev.Present()
	test.ExpectEquality(t, dev.Front().RGBAAt(0, 0), color.RGBA{R: 255, A: 255})
	test.ExpectEquality(t, dev.Stats().Frames, 1)

	_, ok = dev.Pixel(gpu.DefaultFramebuffer, 4, 0)
	test.ExpectFailure(t, ok)
}

func TestPointsAndDepth(t *testing.T) {
	dev := newDevice(t, 10, 10)

	prog, err := dev.CreateProgram(gpu.SceneProgram)
	test.DemandSuccess(t, err)
	dev.UseProgram(prog)
	prog.SetMVP(mgl32.Ident4())

	// two points at the same pixel. the first is nearer
	vb := upload(t, dev, []float32{0, 0, -0.5, 0, 0, 0.5}, 3, position3)

	dev.Clear(black)
	dev.SetDepthTest(true)
	vb.Draw(gpu.Points)

	near := color.RGBA{R: 159, G: 159, B: 112, A: 255}
	c, _ := dev.Pixel(gpu.DefaultFramebuffer, 5, 5)
	test.ExpectEquality(t, c, near)

	// without depth testing the last point wins
	dev.Clear(black)
	dev.SetDepthTest(false)
	vb.Draw(gpu.Points)

	far := color.RGBA{R: 159, G: 159, B: 207, A: 255}
	c, _ = dev.Pixel(gpu.DefaultFramebuffer, 5, 5)
	test.ExpectEquality(t, c, far)

	draws := dev.Draws()
	test.DemandEquality(t, len(draws), 2)
	test.ExpectEquality(t, draws[0].Primitive, gpu.Points)
	test.ExpectEquality(t, draws[0].Count, 2)
	test.ExpectEquality(t, draws[0].Framebuffer, gpu.DefaultFramebuffer)
	test.ExpectEquality(t, draws[0].Program, gpu.SceneProgram)

	dev.ResetDraws()
	test.ExpectEquality(t, len(dev.Draws()), 0)
}

func TestPointOutsideClipVolume(t *testing.T) {
	dev := newDevice(t, 10, 10)

	prog, err := dev.CreateProgram(gpu.SceneProgram)
	test.DemandSuccess(t, err)
	dev.UseProgram(prog)

	vb := upload(t, dev, []float32{2, 0, 0, 0, 0, -2}, 3, position3)
	dev.Clear(black)
	vb.Draw(gpu.Points)

	img, ok := dev.Image(gpu.DefaultFramebuffer)
	test.DemandSuccess(t, ok)
	for i := 0; i < len(img.Pix); i += 4 {
		test.DemandEquality(t, img.Pix[i], 0)
	}
}

func TestRenderToTexture(t *testing.T) {
	dev := newDevice(t, 16, 16)

	tex := dev.CreateTexture()
	dev.BindTexture(tex)
	dev.TexImage2D(16, 16)
	dev.TexFilter(true)

	fb := dev.CreateFramebuffer()
	dev.BindFramebuffer(fb)
	dev.FramebufferTexture(tex)
	test.DemandEquality(t, dev.CheckFramebufferStatus(), gpu.StatusComplete)

	dev.Clear(red)
	dev.BindFramebuffer(gpu.DefaultFramebuffer)
	dev.Clear(white)

	prog, err := dev.CreateProgram(gpu.QuadProgram)
	test.DemandSuccess(t, err)
	dev.UseProgram(prog)
	prog.SetSampler(0)

	dev.ActiveTexture(0)
	dev.BindTexture(tex)
	vb := upload(t, dev, fullscreen, 4, position2, texCoord)
	vb.Draw(gpu.Triangles)

	for _, p := range [][2]int{{0, 0}, {15, 15}, {8, 3}, {3, 12}} {
		c, ok := dev.Pixel(gpu.DefaultFramebuffer, p[0], p[1])
		test.ExpectSuccess(t, ok)
		test.ExpectEquality(t, c, color.RGBA{R: 255, A: 255}, p)
	}
}

func TestWireframe(t *testing.T) {
	dev := newDevice(t, 21, 21)

	prog, err := dev.CreateProgram(gpu.SceneProgram)
	test.DemandSuccess(t, err)
	dev.UseProgram(prog)

	vb := upload(t, dev, []float32{
		-0.5, -0.5, 0,
		0.5, -0.5, 0,
		0.5, 0.5, 0,
	}, 3, position3)

	dev.Clear(black)
	dev.SetWireframe(true)
	vb.Draw(gpu.Triangles)

	// an edge is drawn but the interior is not
	c, _ := dev.Pixel(gpu.DefaultFramebuffer, 10, 5)
	test.ExpectInequality(t, c, color.RGBA{A: 255})
	c, _ = dev.Pixel(gpu.DefaultFramebuffer, 13, 9)
	test.ExpectEquality(t, c, color.RGBA{A: 255})

	dev.Clear(black)
	dev.SetWireframe(false)
	vb.Draw(gpu.Triangles)
	c, _ = dev.Pixel(gpu.DefaultFramebuffer, 13, 9)
	test.ExpectInequality(t, c, color.RGBA{A: 255})

	test.ExpectSuccess(t, dev.Draws()[0].Wireframe)
	test.ExpectFailure(t, dev.Draws()[1].Wireframe)
}

func TestDisabledAttribute(t *testing.T) {
	dev := newDevice(t, 4, 4)

	tex := dev.CreateTexture()
	dev.BindTexture(tex)
	dev.TexImage2D(2, 2)
	fb := dev.CreateFramebuffer()
	dev.BindFramebuffer(fb)
	dev.FramebufferTexture(tex)
	dev.Clear(white)
	dev.Viewport(0, 0, 1, 1)

	prog, err := dev.CreateProgram(gpu.QuadProgram)
	test.DemandSuccess(t, err)
	dev.UseProgram(prog)
	blank := dev.CreateTexture()
	dev.BindTexture(blank)

	// a texture with no storage samples as black. the viewport limits drawing
	// to the bottom left texel
	quad := upload(t, dev, fullscreen, 4, position2, texCoord)
	quad.Draw(gpu.Triangles)
	c, _ := dev.Pixel(fb, 0, 0)
	test.ExpectEquality(t, c, color.RGBA{A: 255})
	c, _ = dev.Pixel(fb, 1, 1)
	test.ExpectEquality(t, c, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	// the texture coordinate attribute is not enabled so every fragment
	// samples the black texel at (0, 0)
	dev.BindFramebuffer(gpu.DefaultFramebuffer)
	dev.Viewport(0, 0, 4, 4)
	dev.Clear(red)
	dev.BindTexture(tex)
	posOnly := upload(t, dev, fullscreen, 4, position2)
	posOnly.Draw(gpu.Triangles)
	c, _ = dev.Pixel(gpu.DefaultFramebuffer, 3, 3)
	test.ExpectEquality(t, c, color.RGBA{A: 255})
}

func TestMisuse(t *testing.T) {
	dev := newDevice(t, 4, 4)

	// no program
	vb := upload(t, dev, []float32{0, 0, 0}, 3, position3)
	vb.Draw(gpu.Points)
	test.ExpectEquality(t, dev.Stats().Errors, 1)
	test.ExpectEquality(t, len(dev.Draws()), 0)

	// incomplete framebuffer
	prog, err := dev.CreateProgram(gpu.SceneProgram)
	test.DemandSuccess(t, err)
	dev.UseProgram(prog)
	fb := dev.CreateFramebuffer()
	dev.BindFramebuffer(fb)
	vb.Draw(gpu.Points)
	dev.Clear(red)
	test.ExpectEquality(t, dev.Stats().Errors, 3)
	test.ExpectEquality(t, len(dev.Draws()), 0)

	// unknown program
	_, err = dev.CreateProgram(gpu.ProgramKind(99))
	test.ExpectFailure(t, err)

	// uniforms on a program that is not in use
	other, err := dev.CreateProgram(gpu.QuadProgram)
	test.DemandSuccess(t, err)
	other.SetSampler(0)
	test.ExpectEquality(t, dev.Stats().Errors, 4)
}
