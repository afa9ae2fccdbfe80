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

package gpu

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// VertexArray is a handle to a vertex array object.
type VertexArray uint32

// Buffer is a handle to a vertex buffer object.
type Buffer uint32

// Texture is a handle to a 2D texture.
type Texture uint32

// Renderbuffer is a handle to a renderbuffer.
type Renderbuffer uint32

// Framebuffer is a handle to a framebuffer object.
type Framebuffer uint32

// DefaultFramebuffer is the on-screen render target.
const DefaultFramebuffer Framebuffer = 0

// Color is an RGBA colour with components in the range 0.0 to 1.0.
type Color struct {
	R, G, B, A float32
}

// Primitive is the type of geometry drawn by DrawArrays().
type Primitive int

// List of valid Primitive values.
const (
	Points Primitive = iota
	Lines
	Triangles
)

func (p Primitive) String() string {
	switch p {
	case Points:
		return "points"
	case Lines:
		return "lines"
	case Triangles:
		return "triangles"
	}
	return fmt.Sprintf("primitive(%d)", int(p))
}

// FramebufferStatus is the result of a completeness check.
type FramebufferStatus int

// List of valid FramebufferStatus values.
const (
	StatusComplete FramebufferStatus = iota
	StatusIncompleteAttachment
	StatusIncompleteMissingAttachment
	StatusIncompleteDimensions
	StatusUnsupported
	StatusUndefined
)

func (s FramebufferStatus) String() string {
	switch s {
	case StatusComplete:
		return "complete"
	case StatusIncompleteAttachment:
		return "incomplete attachment"
	case StatusIncompleteMissingAttachment:
		return "missing attachment"
	case StatusIncompleteDimensions:
		return "incomplete dimensions"
	case StatusUnsupported:
		return "unsupported"
	case StatusUndefined:
		return "undefined"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// ProgramKind selects one of the fixed shader programs.
type ProgramKind int

// List of valid ProgramKind values.
//
// SceneProgram reads a position at attribute location 0, transforms it by the
// MVP uniform and colours it by its position.
//
// QuadProgram reads a position at location 0 and a texture coordinate at
// location 1, passes the position through untransformed and samples the
// texture bound to the sampler unit.
const (
	SceneProgram ProgramKind = iota
	QuadProgram
)

func (k ProgramKind) String() string {
	switch k {
	case SceneProgram:
		return "scene"
	case QuadProgram:
		return "quad"
	}
	return fmt.Sprintf("program(%d)", int(k))
}

// Attribute locations shared by both programs.
const (
	AttribPosition = 0
	AttribTexCoord = 1
)

// Program is a linked shader program created by Device.CreateProgram().
type Program interface {
	Kind() ProgramKind

	// SetMVP sets the model-view-projection matrix. The program must be
	// current.
	SetMVP(mvp mgl32.Mat4)

	// SetSampler sets the texture unit sampled by the program. The program
	// must be current.
	SetSampler(unit int32)

	// Destroy releases the program. Calling Destroy more than once has no
	// effect.
	Destroy()
}

// Device is the graphics API used by the renderer. Binding functions change
// device-wide state in the same way as the equivalent OpenGL calls. A Device
// must only be used from the goroutine that created it.
type Device interface {
	CreateVertexArray() VertexArray
	DeleteVertexArray(VertexArray)
	BindVertexArray(VertexArray)

	CreateBuffer() Buffer
	DeleteBuffer(Buffer)
	BindBuffer(Buffer)

	// BufferData uploads float data to the bound buffer.
	BufferData(data []float32)

	// VertexAttribPointer describes attribute index of the bound vertex array
	// as reading size floats from the bound buffer. The stride and offset
	// values are measured in floats, not bytes.
	VertexAttribPointer(index uint32, size int32, stride int32, offset int32)
	EnableVertexAttribArray(index uint32)

	CreateTexture() Texture
	DeleteTexture(Texture)
	ActiveTexture(unit uint32)
	BindTexture(Texture)

	// TexImage2D allocates uninitialised RGB8 storage for the bound texture.
	TexImage2D(width int32, height int32)

	// TexFilter sets the min and mag filter of the bound texture to bilinear
	// (linear is true) or nearest.
	TexFilter(linear bool)

	CreateRenderbuffer() Renderbuffer
	DeleteRenderbuffer(Renderbuffer)
	BindRenderbuffer(Renderbuffer)

	// RenderbufferStorage allocates combined depth24/stencil8 storage for the
	// bound renderbuffer.
	RenderbufferStorage(width int32, height int32)

	CreateFramebuffer() Framebuffer
	DeleteFramebuffer(Framebuffer)
	BindFramebuffer(Framebuffer)
	CurrentFramebuffer() Framebuffer

	// FramebufferTexture attaches the texture to colour attachment 0 of the
	// bound framebuffer.
	FramebufferTexture(Texture)

	// FramebufferRenderbuffer attaches the renderbuffer to the depth-stencil
	// attachment point of the bound framebuffer.
	FramebufferRenderbuffer(Renderbuffer)

	CheckFramebufferStatus() FramebufferStatus

	Viewport(x int32, y int32, width int32, height int32)
	GetViewport() (x int32, y int32, width int32, height int32)

	SetDepthTest(enable bool)
	SetWireframe(enable bool)

	// Clear the colour, depth and stencil buffers of the bound target.
	Clear(col Color)

	CreateProgram(kind ProgramKind) (Program, error)
	UseProgram(Program)

	DrawArrays(prim Primitive, first int32, count int32)
}

// Presenter is implemented by anything that can make the default target
// visible. For a window this is the buffer swap.
type Presenter interface {
	Present()
}
