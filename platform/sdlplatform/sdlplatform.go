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

// Package sdlplatform implements platform.Platform with SDL2.
package sdlplatform

import (
	"fmt"
	"runtime"

	"github.com/jetsetilly/osrdemo/logger"
	"github.com/jetsetilly/osrdemo/platform"
	"github.com/jetsetilly/osrdemo/userinput"
	"github.com/veandco/go-sdl2/sdl"
)

// Platform is the SDL2 implementation of platform.Platform.
type Platform struct {
	window  *sdl.Window
	context sdl.GLContext
	mode    sdl.DisplayMode
}

// NewPlatform is the preferred method of initialisation for the Platform type.
func NewPlatform(cfg platform.Config) (*Platform, error) {
	// the SDL package calls LockOSThread() but we call it here too. it can't
	// hurt and we never unlock it in any case
	runtime.LockOSThread()

	err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS)
	if err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 3)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: %w", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 2)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: %w", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: %w", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: %w", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	var sdlVersion sdl.Version
	sdl.VERSION(&sdlVersion)
	logger.Logf(logger.Allow, "sdl", "version %d.%d.%d", sdlVersion.Major, sdlVersion.Minor, sdlVersion.Patch)

	plt := &Platform{}

	plt.mode, err = sdl.GetCurrentDisplayMode(0)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: %w", err)
	}
	logger.Logf(logger.Allow, "sdl", "refresh rate: %dHz", plt.mode.RefreshRate)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_ALLOW_HIGHDPI)
	width, height := cfg.Width, cfg.Height
	if cfg.Fullscreen {
		flags |= uint32(sdl.WINDOW_FULLSCREEN_DESKTOP | sdl.WINDOW_BORDERLESS)
		width, height = plt.mode.W, plt.mode.H
	}

	plt.window, err = sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		width, height, flags)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	plt.context, err = plt.window.GLCreateContext()
	if err != nil {
		plt.Destroy()
		return nil, fmt.Errorf("sdl: %w", err)
	}
	err = plt.window.GLMakeCurrent(plt.context)
	if err != nil {
		plt.Destroy()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	major, err := sdl.GLGetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION)
	if err != nil {
		plt.Destroy()
		return nil, fmt.Errorf("sdl: %w", err)
	}
	minor, err := sdl.GLGetAttribute(sdl.GL_CONTEXT_MINOR_VERSION)
	if err != nil {
		plt.Destroy()
		return nil, fmt.Errorf("sdl: %w", err)
	}
	logger.Logf(logger.Allow, "sdl", "using GL version %d.%d core", major, minor)

	plt.setSwapInterval(cfg.VSync)

	// camera is driven by relative mouse movement
	sdl.SetRelativeMouseMode(true)

	w, h := plt.FramebufferSize()
	logger.Logf(logger.Allow, "sdl", "framebuffer size: %dx%d", w, h)

	return plt, nil
}

func (plt *Platform) setSwapInterval(vsync bool) {
	i := 0
	if vsync {
		i = 1
	}
	err := sdl.GLSetSwapInterval(i)
	if err != nil {
		logger.Logf(logger.Allow, "sdl", "GLSetSwapInterval(%d): %s", i, err.Error())
	}
}

// Destroy implements the platform.Platform interface.
func (plt *Platform) Destroy() {
	if plt.context != nil {
		sdl.GLDeleteContext(plt.context)
		plt.context = nil
	}
	if plt.window != nil {
		err := plt.window.Destroy()
		if err != nil {
			logger.Log(logger.Allow, "sdl", err)
		}
		plt.window = nil
		sdl.Quit()
	}
}

// FramebufferSize implements the platform.Platform interface.
func (plt *Platform) FramebufferSize() (int32, int32) {
	return plt.window.GLGetDrawableSize()
}

// SetTitle implements the platform.Platform interface.
func (plt *Platform) SetTitle(title string) {
	plt.window.SetTitle(title)
}

// Present implements the gpu.Presenter interface.
func (plt *Platform) Present() {
	plt.window.GLSwap()
}

// PollEvents implements the platform.Platform interface.
func (plt *Platform) PollEvents(state *userinput.State) {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			state.Quit = true

		case *sdl.KeyboardEvent:
			// key repeat does not change the state of a held key
			if ev.Repeat != 0 {
				break // switch
			}
			state.KeyEvent(translateKey(ev.Keysym.Scancode), ev.Type == sdl.KEYDOWN)

		case *sdl.MouseMotionEvent:
			state.MouseMotion(float32(ev.XRel), float32(ev.YRel))
		}
	}
}

func translateKey(sc sdl.Scancode) userinput.Key {
	switch sc {
	case sdl.SCANCODE_W, sdl.SCANCODE_UP:
		return userinput.KeyForward
	case sdl.SCANCODE_S, sdl.SCANCODE_DOWN:
		return userinput.KeyBackward
	case sdl.SCANCODE_A, sdl.SCANCODE_LEFT:
		return userinput.KeyLeft
	case sdl.SCANCODE_D, sdl.SCANCODE_RIGHT:
		return userinput.KeyRight
	case sdl.SCANCODE_E:
		return userinput.KeyUp
	case sdl.SCANCODE_Q:
		return userinput.KeyDown
	case sdl.SCANCODE_SPACE:
		return userinput.KeyStopMotion
	case sdl.SCANCODE_ESCAPE:
		return userinput.KeyQuit
	}
	return userinput.KeyNone
}
