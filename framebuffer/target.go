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

package framebuffer

import (
	"errors"
	"fmt"

	"github.com/jetsetilly/osrdemo/gpu"
	"github.com/jetsetilly/osrdemo/logger"
)

// ErrIncomplete is returned by New() when the attachments do not form a
// complete framebuffer.
var ErrIncomplete = errors.New("incomplete")

// Target is an off-screen render target.
type Target struct {
	dev gpu.Device

	fbo     gpu.Framebuffer
	texture gpu.Texture
	rbo     gpu.Renderbuffer

	width  int32
	height int32

	// the viewport in use when Bind() was called. restored by Unbind()
	bound    bool
	viewport [4]int32
}

// New is the preferred method of initialisation for the Target type. The
// default target is bound when the function returns, whether or not there was
// an error.
func New(dev gpu.Device, width int32, height int32) (*Target, error) {
	fb := &Target{
		dev:    dev,
		width:  width,
		height: height,
	}

	// colour attachment. contents are left uninitialised
	fb.texture = dev.CreateTexture()
	dev.BindTexture(fb.texture)
	dev.TexImage2D(width, height)
	dev.TexFilter(true)
	dev.BindTexture(0)

	// depth and stencil attachment
	fb.rbo = dev.CreateRenderbuffer()
	dev.BindRenderbuffer(fb.rbo)
	dev.RenderbufferStorage(width, height)
	dev.BindRenderbuffer(0)

	fb.fbo = dev.CreateFramebuffer()
	dev.BindFramebuffer(fb.fbo)
	dev.FramebufferTexture(fb.texture)
	dev.FramebufferRenderbuffer(fb.rbo)
	status := dev.CheckFramebufferStatus()
	dev.BindFramebuffer(gpu.DefaultFramebuffer)

	if status != gpu.StatusComplete {
		fb.Destroy()
		return nil, fmt.Errorf("framebuffer: %w: %s (%dx%d)", ErrIncomplete, status, width, height)
	}

	logger.Logf(logger.Allow, "framebuffer", "created %dx%d target", width, height)

	return fb, nil
}

// Bind makes the Target the current render target and sets the viewport to
// cover it.
func (fb *Target) Bind() {
	if !fb.bound {
		x, y, w, h := fb.dev.GetViewport()
		fb.viewport = [4]int32{x, y, w, h}
		fb.bound = true
	}
	fb.dev.BindFramebuffer(fb.fbo)
	fb.dev.Viewport(0, 0, fb.width, fb.height)
}

// Unbind makes the default target current and restores the viewport that was
// in use when Bind() was called.
func (fb *Target) Unbind() {
	fb.dev.BindFramebuffer(gpu.DefaultFramebuffer)
	if fb.bound {
		fb.dev.Viewport(fb.viewport[0], fb.viewport[1], fb.viewport[2], fb.viewport[3])
		fb.bound = false
	}
}

// Bound returns true if the Target is the current render target.
func (fb *Target) Bound() bool {
	return fb.fbo != 0 && fb.dev.CurrentFramebuffer() == fb.fbo
}

// Process calls the draw function with the Target bound. The default target
// is current once Process() returns, even if draw panics.
func (fb *Target) Process(draw func()) {
	fb.Bind()
	defer fb.Unbind()
	draw()
}

// Framebuffer returns the framebuffer object.
func (fb *Target) Framebuffer() gpu.Framebuffer {
	return fb.fbo
}

// Texture returns the colour attachment.
func (fb *Target) Texture() gpu.Texture {
	return fb.texture
}

// Dimensions returns the width and height of the Target.
func (fb *Target) Dimensions() (width int32, height int32) {
	return fb.width, fb.height
}

// Destroy releases the framebuffer, texture and renderbuffer. Calling Destroy
// more than once has no effect.
func (fb *Target) Destroy() {
	if fb.fbo == 0 && fb.texture == 0 && fb.rbo == 0 {
		return
	}

	if fb.Bound() {
		fb.Unbind()
	}

	fb.dev.DeleteFramebuffer(fb.fbo)
	fb.dev.DeleteTexture(fb.texture)
	fb.dev.DeleteRenderbuffer(fb.rbo)
	fb.fbo = 0
	fb.texture = 0
	fb.rbo = 0
}
