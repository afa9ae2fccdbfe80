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

// Package glfwplatform implements platform.Platform with GLFW.
package glfwplatform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/jetsetilly/osrdemo/logger"
	"github.com/jetsetilly/osrdemo/platform"
	"github.com/jetsetilly/osrdemo/userinput"
)

// Platform is the GLFW implementation of platform.Platform.
type Platform struct {
	window *glfw.Window

	// input state being filled by the callbacks. only valid for the duration
	// of PollEvents()
	state *userinput.State

	// last cursor position. cursor deltas are measured from here
	cursorX   float64
	cursorY   float64
	cursorSet bool
}

// NewPlatform is the preferred method of initialisation for the Platform type.
func NewPlatform(cfg platform.Config) (*Platform, error) {
	// GLFW requires that all calls are made from the main thread
	runtime.LockOSThread()

	err := glfw.Init()
	if err != nil {
		return nil, fmt.Errorf("glfw: %w", err)
	}
	logger.Logf(logger.Allow, "glfw", "version %s", glfw.GetVersionString())

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.DepthBits, 24)

	var monitor *glfw.Monitor
	width, height := int(cfg.Width), int(cfg.Height)
	if cfg.Fullscreen {
		// matching the video mode of the monitor gives a "windowed
		// fullscreen" window without a mode change
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()
		glfw.WindowHint(glfw.RedBits, mode.RedBits)
		glfw.WindowHint(glfw.GreenBits, mode.GreenBits)
		glfw.WindowHint(glfw.BlueBits, mode.BlueBits)
		glfw.WindowHint(glfw.RefreshRate, mode.RefreshRate)
		glfw.WindowHint(glfw.Decorated, glfw.False)
		width, height = mode.Width, mode.Height
		logger.Logf(logger.Allow, "glfw", "refresh rate: %dHz", mode.RefreshRate)
	}

	plt := &Platform{}

	plt.window, err = glfw.CreateWindow(width, height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw: %w", err)
	}
	plt.window.MakeContextCurrent()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	// camera is driven by relative mouse movement
	plt.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	plt.window.SetKeyCallback(plt.keyEvent)
	plt.window.SetCursorPosCallback(plt.cursorPosEvent)

	w, h := plt.FramebufferSize()
	logger.Logf(logger.Allow, "glfw", "framebuffer size: %dx%d", w, h)

	return plt, nil
}

// Destroy implements the platform.Platform interface.
func (plt *Platform) Destroy() {
	if plt.window == nil {
		return
	}
	plt.window.Destroy()
	plt.window = nil
	glfw.Terminate()
}

// FramebufferSize implements the platform.Platform interface.
func (plt *Platform) FramebufferSize() (int32, int32) {
	w, h := plt.window.GetFramebufferSize()
	return int32(w), int32(h)
}

// SetTitle implements the platform.Platform interface.
func (plt *Platform) SetTitle(title string) {
	plt.window.SetTitle(title)
}

// Present implements the gpu.Presenter interface.
func (plt *Platform) Present() {
	plt.window.SwapBuffers()
}

// PollEvents implements the platform.Platform interface.
func (plt *Platform) PollEvents(state *userinput.State) {
	plt.state = state
	glfw.PollEvents()
	plt.state = nil

	if plt.window.ShouldClose() {
		state.Quit = true
	}
}

func (plt *Platform) keyEvent(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if plt.state == nil || action == glfw.Repeat {
		return
	}
	plt.state.KeyEvent(translateKey(key), action == glfw.Press)
}

func (plt *Platform) cursorPosEvent(_ *glfw.Window, x float64, y float64) {
	// the first event after the cursor is captured is not a movement
	if !plt.cursorSet {
		plt.cursorX, plt.cursorY = x, y
		plt.cursorSet = true
		return
	}

	dx := x - plt.cursorX
	dy := y - plt.cursorY
	plt.cursorX, plt.cursorY = x, y

	if plt.state != nil {
		plt.state.MouseMotion(float32(dx), float32(dy))
	}
}

func translateKey(key glfw.Key) userinput.Key {
	switch key {
	case glfw.KeyW, glfw.KeyUp:
		return userinput.KeyForward
	case glfw.KeyS, glfw.KeyDown:
		return userinput.KeyBackward
	case glfw.KeyA, glfw.KeyLeft:
		return userinput.KeyLeft
	case glfw.KeyD, glfw.KeyRight:
		return userinput.KeyRight
	case glfw.KeyE:
		return userinput.KeyUp
	case glfw.KeyQ:
		return userinput.KeyDown
	case glfw.KeySpace:
		return userinput.KeyStopMotion
	case glfw.KeyEscape:
		return userinput.KeyQuit
	}
	return userinput.KeyNone
}
