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
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jetsetilly/osrdemo/framebuffer"
	"github.com/jetsetilly/osrdemo/gpu"
	"github.com/jetsetilly/osrdemo/logger"
)

// ErrNoOffscreen is returned by DrawQuadScreen() when the Renderer was created
// without an off-screen target.
var ErrNoOffscreen = errors.New("no off-screen target")

// Renderer draws the scene and, optionally, composites the off-screen target
// onto the screen.
type Renderer struct {
	dev gpu.Device

	scene     *gpu.VertexBuffer
	scenePrim gpu.Primitive
	wireframe bool

	quad   *gpu.VertexBuffer
	target *framebuffer.Target
}

// NewRenderer uploads the point cloud and the screen quad. If offscreen is
// true a framebuffer.Target of width by height is created as well.
//
// Every object created before an error is released before the function
// returns.
func NewRenderer(dev gpu.Device, points []mgl32.Vec3, width int32, height int32, offscreen bool) (*Renderer, error) {
	r := &Renderer{
		dev:       dev,
		scenePrim: gpu.Points,
	}

	var err error

	r.scene, err = gpu.NewVertexBuffer(dev, flatten(points), 3,
		gpu.Attrib{Index: gpu.AttribPosition, Size: 3})
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	r.quad, err = gpu.NewVertexBuffer(dev, ScreenQuad(), quadStride,
		gpu.Attrib{Index: gpu.AttribPosition, Size: 2},
		gpu.Attrib{Index: gpu.AttribTexCoord, Size: 2, Offset: 2})
	if err != nil {
		r.Destroy()
		return nil, fmt.Errorf("scene: %w", err)
	}

	if offscreen {
		r.target, err = framebuffer.New(dev, width, height)
		if err != nil {
			r.Destroy()
			return nil, fmt.Errorf("scene: %w", err)
		}
	}

	logger.Logf(logger.Allow, "scene", "%d points (offscreen %v)", len(points), offscreen)

	return r, nil
}

// NewWireQuad creates a Renderer whose scene is a quad drawn in wireframe.
// The quad records carry texture coordinates but only the position is read.
// The Renderer has no off-screen target.
func NewWireQuad(dev gpu.Device) (*Renderer, error) {
	r := &Renderer{
		dev:       dev,
		scenePrim: gpu.Triangles,
		wireframe: true,
	}

	var err error

	r.scene, err = gpu.NewVertexBuffer(dev, WireQuad(), quadStride,
		gpu.Attrib{Index: gpu.AttribPosition, Size: 2})
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	return r, nil
}

// Offscreen returns the off-screen target. Returns nil if the Renderer was
// created without one.
func (r *Renderer) Offscreen() *framebuffer.Target {
	return r.target
}

// Count returns the number of vertices drawn by DrawScene().
func (r *Renderer) Count() int32 {
	if r.scene == nil {
		return 0
	}
	return r.scene.Count()
}

// DrawScene draws the scene to the current render target with a single draw
// call. Depth testing and the shader program must be set up by the caller.
func (r *Renderer) DrawScene() {
	if r.scene == nil {
		return
	}
	if r.wireframe {
		r.dev.SetWireframe(true)
		defer r.dev.SetWireframe(false)
	}
	r.scene.Draw(r.scenePrim)
}

// DrawQuadScreen draws the screen quad to the current render target, sampling
// the off-screen target's colour attachment on texture unit 0.
func (r *Renderer) DrawQuadScreen() error {
	if r.target == nil || r.quad == nil {
		return fmt.Errorf("scene: %w", ErrNoOffscreen)
	}
	r.dev.ActiveTexture(0)
	r.dev.BindTexture(r.target.Texture())
	r.quad.Draw(gpu.Triangles)
	r.dev.BindTexture(0)
	return nil
}

// Destroy releases the vertex buffers and the off-screen target. Calling
// Destroy more than once has no effect.
func (r *Renderer) Destroy() {
	if r.scene != nil {
		r.scene.Destroy()
		r.scene = nil
	}
	if r.quad != nil {
		r.quad.Destroy()
		r.quad = nil
	}
	if r.target != nil {
		r.target.Destroy()
		r.target = nil
	}
}
