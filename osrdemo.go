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

package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/jetsetilly/osrdemo/camera"
	"github.com/jetsetilly/osrdemo/gpu/glcore"
	"github.com/jetsetilly/osrdemo/logger"
	"github.com/jetsetilly/osrdemo/modalflag"
	"github.com/jetsetilly/osrdemo/performance"
	"github.com/jetsetilly/osrdemo/pipeline"
	"github.com/jetsetilly/osrdemo/platform"
	"github.com/jetsetilly/osrdemo/platform/glfwplatform"
	"github.com/jetsetilly/osrdemo/platform/sdlplatform"
	"github.com/jetsetilly/osrdemo/prefs"
	"github.com/jetsetilly/osrdemo/resources"
	"github.com/jetsetilly/osrdemo/scene"
	"github.com/jetsetilly/osrdemo/statsview"
	"github.com/jetsetilly/osrdemo/userinput"
	"github.com/jetsetilly/osrdemo/version"
)

// number of log entries to print when the program ends with an error.
const errorLogTail = 20

// #mainthread
func main() {
	// the windowing platforms and the OpenGL context must be used from the
	// thread that created them. everything runs on the main thread
	runtime.LockOSThread()
	os.Exit(launch(os.Args[1:], os.Stdout))
}

// launch parses the command line and runs the selected mode. returns the
// value to use with os.Exit().
func launch(args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("POINTS", "QUAD", "HEADLESS")
	showVersion := md.AddBool("version", false, "print version information and exit")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return 10
	}

	if *showVersion {
		fmt.Fprintln(output, version.String())
		return 0
	}

	switch md.Mode() {
	case "POINTS":
		err = interactive(md, false)

	case "QUAD":
		err = interactive(md, true)

	case "HEADLESS":
		err = headless(md)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		logger.Tail(os.Stderr, errorLogTail)
		return 20
	}

	return 0
}

// flags common to all modes. a flag that has been set on the command line
// overrides the preference value for the session.
type sessionFlags struct {
	offscreen *bool
	points    *int
	width     *int
	height    *int
	prefs     *string
	echo      *bool

	// display flags. only added by the interactive modes
	vsync      *bool
	fullscreen *bool
}

func addSessionFlags(md *modalflag.Modes) sessionFlags {
	return sessionFlags{
		offscreen: md.AddBool("osr", true, "render the scene to an off-screen target and composite it with a quad"),
		points:    md.AddInt("points", 10000, "number of points in the scene"),
		width:     md.AddInt("width", 1280, "width of the window or off-screen target"),
		height:    md.AddInt("height", 800, "height of the window or off-screen target"),
		prefs:     md.AddString("prefs", "", "preferences for this session only: \"key::value; key::value\""),
		echo:      md.AddBool("echo", false, "echo log to stdout"),
	}
}

// preferences loads the preferences file and applies any flags that have
// been set on the command line.
func (f sessionFlags) preferences(md *modalflag.Modes) (*preferences, error) {
	if *f.echo {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	pth, err := resources.JoinPath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	prf, err := newPreferences(pth)
	if err != nil {
		return nil, err
	}
	err = prf.load(*f.prefs)
	if err != nil {
		return nil, err
	}

	type override struct {
		flag string
		set  func(prefs.Value) error
		v    prefs.Value
	}
	overrides := []override{
		{"osr", prf.offscreen.Set, *f.offscreen},
		{"points", prf.points.Set, *f.points},
		{"width", prf.width.Set, *f.width},
		{"height", prf.height.Set, *f.height},
	}
	if f.vsync != nil {
		overrides = append(overrides, override{"vsync", prf.vsync.Set, *f.vsync})
	}
	if f.fullscreen != nil {
		overrides = append(overrides, override{"fullscreen", prf.fullscreen.Set, *f.fullscreen})
	}

	for _, o := range overrides {
		if md.IsSet(o.flag) {
			err = o.set(o.v)
			if err != nil {
				return nil, fmt.Errorf("-%s: %w", o.flag, err)
			}
		}
	}

	return prf, nil
}

func interactive(md *modalflag.Modes, quad bool) error {
	md.NewMode()

	session := addSessionFlags(md)
	session.vsync = md.AddBool("vsync", true, "synchronise with the display refresh")
	session.fullscreen = md.AddBool("fullscreen", false, "use the whole of the display")
	plat := md.AddString("platform", "sdl", "windowing platform: sdl, glfw")
	statsHelp := "stats server (not available in this build)"
	if statsview.Available() {
		statsHelp = fmt.Sprintf("run stats server (%s)", statsview.Address)
	}
	stats := md.AddBool("statsview", false, statsHelp)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	prf, err := session.preferences(md)
	if err != nil {
		return err
	}

	if *stats {
		statsview.Launch(os.Stdout)
	}

	cfg := platform.Config{
		Title:      version.String(),
		Width:      int32(prf.width.Get().(int)),
		Height:     int32(prf.height.Get().(int)),
		Fullscreen: prf.fullscreen.Get().(bool),
		VSync:      prf.vsync.Get().(bool),
	}

	var plt platform.Platform
	switch *plat {
	case "sdl":
		plt, err = sdlplatform.NewPlatform(cfg)
	case "glfw":
		plt, err = glfwplatform.NewPlatform(cfg)
	default:
		return fmt.Errorf("unknown platform (%s)", *plat)
	}
	if err != nil {
		return err
	}
	defer plt.Destroy()

	dev, err := glcore.NewDevice()
	if err != nil {
		return err
	}

	// the off-screen target matches the size of the default framebuffer
	width, height := plt.FramebufferSize()
	dev.Viewport(0, 0, width, height)

	var renderer *scene.Renderer
	if quad {
		renderer, err = scene.NewWireQuad(dev)
	} else {
		rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
		points := scene.RandomPoints(rng, prf.points.Get().(int), -1, 1)
		renderer, err = scene.NewRenderer(dev, points, width, height, prf.offscreen.Get().(bool))
	}
	if err != nil {
		return err
	}
	defer renderer.Destroy()

	drv, err := pipeline.NewDriver(dev, renderer, plt)
	if err != nil {
		return err
	}
	defer drv.Destroy()

	// #ctrlc
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	cam := camera.NewCamera(prf.camera(), int(width), int(height))
	anim := &scene.Animation{}
	fps := performance.NewCounter(time.Now)

	var input userinput.State
	for !input.Quit {
		select {
		case <-intChan:
			input.Quit = true
			continue // for loop
		default:
		}

		if fps.Tick() {
			plt.SetTitle(fps.Title())
		}

		plt.PollEvents(&input)
		cam.Look(input.MouseDX, input.MouseDY)
		cam.Move(input.Axes())
		if input.ToggleMotion {
			anim.Toggle()
		}

		err = drv.Cycle(cam.ViewProjection().Mul4(anim.Model()))
		if err != nil {
			return err
		}

		anim.Step()
		input.EndFrame()
	}

	logger.Logf(logger.Allow, "osrdemo", "%d frames rendered", drv.Frames())

	return nil
}
