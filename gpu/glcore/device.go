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

package glcore

import (
	"fmt"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/jetsetilly/osrdemo/gpu"
	"github.com/jetsetilly/osrdemo/logger"
)

// Device is the OpenGL implementation of gpu.Device.
type Device struct {
	current *program
}

// NewDevice initialises the OpenGL bindings for the current context.
func NewDevice() (*Device, error) {
	err := gl.Init()
	if err != nil {
		return nil, fmt.Errorf("glcore: %w", err)
	}

	// log GPU vendor information
	logger.Logf(logger.Allow, "glcore", "vendor: %s", gl.GoStr(gl.GetString(gl.VENDOR)))
	logger.Logf(logger.Allow, "glcore", "renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))
	logger.Logf(logger.Allow, "glcore", "driver: %s", gl.GoStr(gl.GetString(gl.VERSION)))
	logger.Logf(logger.Allow, "glcore", "glsl: %s", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)))

	return &Device{}, nil
}

func (dev *Device) CreateVertexArray() gpu.VertexArray {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return gpu.VertexArray(id)
}

func (dev *Device) DeleteVertexArray(va gpu.VertexArray) {
	id := uint32(va)
	gl.DeleteVertexArrays(1, &id)
}

func (dev *Device) BindVertexArray(va gpu.VertexArray) {
	gl.BindVertexArray(uint32(va))
}

func (dev *Device) CreateBuffer() gpu.Buffer {
	var id uint32
	gl.GenBuffers(1, &id)
	return gpu.Buffer(id)
}

func (dev *Device) DeleteBuffer(b gpu.Buffer) {
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

func (dev *Device) BindBuffer(b gpu.Buffer) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
}

func (dev *Device) BufferData(data []float32) {
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (dev *Device) VertexAttribPointer(index uint32, size int32, stride int32, offset int32) {
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, stride*4, uintptr(offset*4))
}

func (dev *Device) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (dev *Device) CreateTexture() gpu.Texture {
	var id uint32
	gl.GenTextures(1, &id)
	return gpu.Texture(id)
}

func (dev *Device) DeleteTexture(t gpu.Texture) {
	id := uint32(t)
	gl.DeleteTextures(1, &id)
}

func (dev *Device) ActiveTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
}

func (dev *Device) BindTexture(t gpu.Texture) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
}

func (dev *Device) TexImage2D(width int32, height int32) {
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB8, width, height, 0, gl.RGB, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

func (dev *Device) TexFilter(linear bool) {
	var f int32 = gl.NEAREST
	if linear {
		f = gl.LINEAR
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, f)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, f)
}

func (dev *Device) CreateRenderbuffer() gpu.Renderbuffer {
	var id uint32
	gl.GenRenderbuffers(1, &id)
	return gpu.Renderbuffer(id)
}

func (dev *Device) DeleteRenderbuffer(rb gpu.Renderbuffer) {
	id := uint32(rb)
	gl.DeleteRenderbuffers(1, &id)
}

func (dev *Device) BindRenderbuffer(rb gpu.Renderbuffer) {
	gl.BindRenderbuffer(gl.RENDERBUFFER, uint32(rb))
}

func (dev *Device) RenderbufferStorage(width int32, height int32) {
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, width, height)
}

func (dev *Device) CreateFramebuffer() gpu.Framebuffer {
	var id uint32
	gl.GenFramebuffers(1, &id)
	return gpu.Framebuffer(id)
}

func (dev *Device) DeleteFramebuffer(fb gpu.Framebuffer) {
	id := uint32(fb)
	gl.DeleteFramebuffers(1, &id)
}

func (dev *Device) BindFramebuffer(fb gpu.Framebuffer) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(fb))
}

func (dev *Device) CurrentFramebuffer() gpu.Framebuffer {
	var id int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &id)
	return gpu.Framebuffer(id)
}

func (dev *Device) FramebufferTexture(t gpu.Texture) {
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, uint32(t), 0)
}

func (dev *Device) FramebufferRenderbuffer(rb gpu.Renderbuffer) {
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, uint32(rb))
}

func (dev *Device) CheckFramebufferStatus() gpu.FramebufferStatus {
	switch gl.CheckFramebufferStatus(gl.FRAMEBUFFER) {
	case gl.FRAMEBUFFER_COMPLETE:
		return gpu.StatusComplete
	case gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:
		return gpu.StatusIncompleteAttachment
	case gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT:
		return gpu.StatusIncompleteMissingAttachment
	case gl.FRAMEBUFFER_UNSUPPORTED:
		return gpu.StatusUnsupported
	}

	// core profile has no FRAMEBUFFER_INCOMPLETE_DIMENSIONS. everything else
	// is reported as undefined
	return gpu.StatusUndefined
}

func (dev *Device) Viewport(x int32, y int32, width int32, height int32) {
	gl.Viewport(x, y, width, height)
}

func (dev *Device) GetViewport() (int32, int32, int32, int32) {
	var v [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &v[0])
	return v[0], v[1], v[2], v[3]
}

func (dev *Device) SetDepthTest(enable bool) {
	if enable {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LESS)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
}

func (dev *Device) SetWireframe(enable bool) {
	if enable {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func (dev *Device) Clear(col gpu.Color) {
	gl.ClearColor(col.R, col.G, col.B, col.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
}

func (dev *Device) DrawArrays(prim gpu.Primitive, first int32, count int32) {
	var mode uint32
	switch prim {
	case gpu.Points:
		mode = gl.POINTS
	case gpu.Lines:
		mode = gl.LINES
	case gpu.Triangles:
		mode = gl.TRIANGLES
	default:
		logger.Logf(logger.Allow, "glcore", "unsupported primitive %s", prim)
		return
	}
	gl.DrawArrays(mode, first, count)
}
