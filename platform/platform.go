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

package platform

import (
	"github.com/jetsetilly/osrdemo/gpu"
	"github.com/jetsetilly/osrdemo/userinput"
)

// Config describes the window to create.
type Config struct {
	Title      string
	Width      int32
	Height     int32
	Fullscreen bool
	VSync      bool
}

// Platform is a window with a current OpenGL 3.2 core context. All functions
// must be called from the thread that created the platform.
type Platform interface {
	gpu.Presenter

	// FramebufferSize returns the size in pixels of the default target. This
	// can differ from the window size on high DPI displays
	FramebufferSize() (int32, int32)

	// PollEvents drains pending window events into the input state
	PollEvents(state *userinput.State)

	SetTitle(title string)

	// Destroy closes the window and releases the context. Calling it more
	// than once has no effect
	Destroy()
}
