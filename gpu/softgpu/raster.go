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

package softgpu

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jetsetilly/osrdemo/gpu"
)

// the destination of draw calls and clears
type target struct {
	color *image.RGBA
	depth []float32
	w, h  int

	// texture attachments are RGB and always opaque
	opaque bool
}

// the currently bound target. returns false if the bound framebuffer is not
// complete
func (dev *Device) target() (target, bool) {
	if dev.boundFramebuffer == gpu.DefaultFramebuffer {
		return target{color: dev.color, depth: dev.depth, w: dev.width, h: dev.height}, true
	}

	fb := dev.framebuffers[dev.boundFramebuffer]
	if dev.status(fb) != gpu.StatusComplete {
		return target{}, false
	}

	var tgt target
	if t := dev.textures[fb.color]; t != nil {
		tgt.color = t.img
		tgt.w, tgt.h = t.size()
		tgt.opaque = true
	}
	if rb := dev.renderbuffers[fb.depthStencil]; rb != nil {
		tgt.depth = rb.depth
		tgt.w, tgt.h = rb.width, rb.height
	}
	return tgt, true
}

// output of the vertex stage
type vertex struct {
	clip mgl32.Vec4
	vary mgl32.Vec4

	// window coordinates
	x, y, z float32
}

func (v vertex) visible() bool {
	w := v.clip.W()
	if w <= 0 {
		return false
	}
	for i := 0; i < 3; i++ {
		if v.clip[i] < -w || v.clip[i] > w {
			return false
		}
	}
	return true
}

// DrawArrays implements the gpu.Device interface.
func (dev *Device) DrawArrays(prim gpu.Primitive, first int32, count int32) {
	if first < 0 || count < 0 {
		dev.errorf("draw with negative range (first=%d count=%d)", first, count)
		return
	}
	if dev.current == nil {
		dev.errorf("draw with no program in use")
		return
	}
	va := dev.vertexArrays[dev.boundVertexArray]
	if va == nil {
		dev.errorf("draw with no vertex array bound")
		return
	}
	tgt, ok := dev.target()
	if !ok {
		dev.errorf("draw to incomplete framebuffer (%d)", dev.boundFramebuffer)
		return
	}

	dev.draws = append(dev.draws, DrawCall{
		Framebuffer: dev.boundFramebuffer,
		Program:     dev.current.kind,
		Primitive:   prim,
		First:       first,
		Count:       count,
		Wireframe:   dev.wireframe,
	})

	verts := make([]vertex, count)
	for i := range verts {
		verts[i] = dev.shade(va, first+int32(i))
	}

	// fragments outside the viewport or the target are discarded
	clip := image.Rect(int(dev.viewport[0]), int(dev.viewport[1]),
		int(dev.viewport[0]+dev.viewport[2]), int(dev.viewport[1]+dev.viewport[3]))
	clip = clip.Intersect(image.Rect(0, 0, tgt.w, tgt.h))

	switch prim {
	case gpu.Points:
		for _, v := range verts {
			if v.visible() {
				dev.fragment(tgt, clip, int(v.x), int(v.y), v.z, v.vary)
			}
		}
	case gpu.Lines:
		for i := 0; i+1 < len(verts); i += 2 {
			dev.line(tgt, clip, verts[i], verts[i+1])
		}
	case gpu.Triangles:
		for i := 0; i+2 < len(verts); i += 3 {
			if dev.wireframe {
				dev.line(tgt, clip, verts[i], verts[i+1])
				dev.line(tgt, clip, verts[i+1], verts[i+2])
				dev.line(tgt, clip, verts[i+2], verts[i])
			} else {
				dev.triangle(tgt, clip, verts[i], verts[i+1], verts[i+2])
			}
		}
	default:
		dev.errorf("unsupported primitive %s", prim)
	}
}

// read an attribute for vertex n. disabled attributes read (0, 0, 0, 1)
func (dev *Device) fetch(va *vertexArray, index uint32, n int32) mgl32.Vec4 {
	v := mgl32.Vec4{0, 0, 0, 1}

	a, ok := va.attribs[index]
	if !ok || !a.enabled {
		return v
	}

	data := dev.buffers[a.buffer]
	base := int(a.offset + n*a.stride)
	for c := 0; c < int(a.size); c++ {
		if base+c < len(data) {
			v[c] = data[base+c]
		} else {
			v[c] = 0
		}
	}
	return v
}

// the vertex stage of the current program
func (dev *Device) shade(va *vertexArray, n int32) vertex {
	var v vertex

	pos := dev.fetch(va, gpu.AttribPosition, n)

	switch dev.current.kind {
	case gpu.SceneProgram:
		v.clip = dev.current.mvp.Mul4x1(mgl32.Vec4{pos[0], pos[1], pos[2], 1})
		v.vary = mgl32.Vec4{
			0.25 + 0.75*(pos[0]*0.5+0.5),
			0.25 + 0.75*(pos[1]*0.5+0.5),
			0.25 + 0.75*(pos[2]*0.5+0.5),
			1.0,
		}
	case gpu.QuadProgram:
		v.clip = mgl32.Vec4{pos[0], pos[1], 0, 1}
		v.vary = dev.fetch(va, gpu.AttribTexCoord, n)
	}

	// perspective divide and viewport transform
	w := v.clip.W()
	if w != 0 {
		vx, vy := float32(dev.viewport[0]), float32(dev.viewport[1])
		vw, vh := float32(dev.viewport[2]), float32(dev.viewport[3])
		v.x = vx + (v.clip.X()/w+1)*0.5*vw
		v.y = vy + (v.clip.Y()/w+1)*0.5*vh
		v.z = (v.clip.Z()/w + 1) * 0.5
	}

	return v
}

// the fragment stage of the current program, followed by the depth test and
// the write to the colour buffer
func (dev *Device) fragment(tgt target, clip image.Rectangle, x int, y int, z float32, vary mgl32.Vec4) {
	if !(image.Point{X: x, Y: y}).In(clip) {
		return
	}
	if z < 0 || z > 1 {
		return
	}

	idx := (tgt.h-1-y)*tgt.w + x

	if dev.depthTest && tgt.depth != nil {
		if z >= tgt.depth[idx] {
			return
		}
		tgt.depth[idx] = z
	}

	if tgt.color == nil {
		return
	}

	var col gpu.Color
	switch dev.current.kind {
	case gpu.SceneProgram:
		col = gpu.Color{R: vary[0], G: vary[1], B: vary[2], A: vary[3]}
	case gpu.QuadProgram:
		var t *texture
		if s := dev.current.sampler; s >= 0 && s < maxTextureUnits {
			t = dev.textures[dev.units[s]]
		}
		col = t.sample(vary[0], vary[1])
	}

	c := toRGBA(col)
	if tgt.opaque {
		c.A = 255
	}
	tgt.color.SetRGBA(x, tgt.h-1-y, c)
}

func (dev *Device) line(tgt target, clip image.Rectangle, a vertex, b vertex) {
	if a.clip.W() <= 0 || b.clip.W() <= 0 {
		return
	}

	dx := b.x - a.x
	dy := b.y - a.y
	steps := int(math.Ceil(math.Max(math.Abs(float64(dx)), math.Abs(float64(dy)))))
	if steps == 0 {
		dev.fragment(tgt, clip, int(a.x), int(a.y), a.z, a.vary)
		return
	}

	for s := 0; s <= steps; s++ {
		t := float32(s) / float32(steps)
		x := a.x + dx*t
		y := a.y + dy*t
		z := a.z + (b.z-a.z)*t
		vary := a.vary.Add(b.vary.Sub(a.vary).Mul(t))
		dev.fragment(tgt, clip, int(math.Floor(float64(x))), int(math.Floor(float64(y))), z, vary)
	}
}

func edge(a vertex, b vertex, px float32, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

func (dev *Device) triangle(tgt target, clip image.Rectangle, v0 vertex, v1 vertex, v2 vertex) {
	if v0.clip.W() <= 0 || v1.clip.W() <= 0 || v2.clip.W() <= 0 {
		return
	}

	area := edge(v0, v1, v2.x, v2.y)
	if area == 0 {
		return
	}

	minX := int(math.Floor(float64(min(v0.x, v1.x, v2.x))))
	maxX := int(math.Ceil(float64(max(v0.x, v1.x, v2.x))))
	minY := int(math.Floor(float64(min(v0.y, v1.y, v2.y))))
	maxY := int(math.Ceil(float64(max(v0.y, v1.y, v2.y))))

	minX = max(minX, clip.Min.X)
	minY = max(minY, clip.Min.Y)
	maxX = min(maxX, clip.Max.X-1)
	maxY = min(maxY, clip.Max.Y-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			py := float32(y) + 0.5

			w0 := edge(v1, v2, px, py)
			w1 := edge(v2, v0, px, py)
			w2 := edge(v0, v1, px, py)

			// accept both windings
			if area > 0 && (w0 < 0 || w1 < 0 || w2 < 0) {
				continue
			}
			if area < 0 && (w0 > 0 || w1 > 0 || w2 > 0) {
				continue
			}

			l0 := w0 / area
			l1 := w1 / area
			l2 := w2 / area

			z := v0.z*l0 + v1.z*l1 + v2.z*l2
			vary := v0.vary.Mul(l0).Add(v1.vary.Mul(l1)).Add(v2.vary.Mul(l2))
			dev.fragment(tgt, clip, x, y, z, vary)
		}
	}
}

// sample the texture at u, v with clamp to edge wrapping. a texture with no
// storage samples as opaque black
func (t *texture) sample(u float32, v float32) gpu.Color {
	if t == nil || t.img == nil {
		return gpu.Color{A: 1}
	}

	w, h := t.size()
	u = mgl32.Clamp(u, 0, 1)
	v = mgl32.Clamp(v, 0, 1)

	if !t.linear {
		x := min(int(u*float32(w)), w-1)
		y := min(int(v*float32(h)), h-1)
		return t.texel(x, y)
	}

	fx := u*float32(w) - 0.5
	fy := v*float32(h) - 0.5
	x0 := float32(math.Floor(float64(fx)))
	y0 := float32(math.Floor(float64(fy)))
	ax := fx - x0
	ay := fy - y0

	clampX := func(x int) int { return max(0, min(x, w-1)) }
	clampY := func(y int) int { return max(0, min(y, h-1)) }
	ix0, ix1 := clampX(int(x0)), clampX(int(x0)+1)
	iy0, iy1 := clampY(int(y0)), clampY(int(y0)+1)

	c00 := t.texel(ix0, iy0)
	c10 := t.texel(ix1, iy0)
	c01 := t.texel(ix0, iy1)
	c11 := t.texel(ix1, iy1)

	mix := func(a, b, c, d float32) float32 {
		top := a + (b-a)*ax
		bot := c + (d-c)*ax
		return top + (bot-top)*ay
	}

	return gpu.Color{
		R: mix(c00.R, c10.R, c01.R, c11.R),
		G: mix(c00.G, c10.G, c01.G, c11.G),
		B: mix(c00.B, c10.B, c01.B, c11.B),
		A: mix(c00.A, c10.A, c01.A, c11.A),
	}
}

// texel at x, y with the origin at the bottom left
func (t *texture) texel(x int, y int) gpu.Color {
	c := t.img.RGBAAt(x, t.img.Bounds().Dy()-1-y)
	return gpu.Color{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(c.A) / 255,
	}
}
