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
	"image/color"
	"math/rand/v2"
	"os"
	"time"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/osrdemo/camera"
	"github.com/jetsetilly/osrdemo/gpu"
	"github.com/jetsetilly/osrdemo/gpu/softgpu"
	"github.com/jetsetilly/osrdemo/logger"
	"github.com/jetsetilly/osrdemo/modalflag"
	"github.com/jetsetilly/osrdemo/performance"
	"github.com/jetsetilly/osrdemo/pipeline"
	"github.com/jetsetilly/osrdemo/resources"
	"github.com/jetsetilly/osrdemo/scene"
	"github.com/jetsetilly/osrdemo/snapshot"
)

const headlessHelp = `Frames are rendered with the software device. No window or OpenGL context is
required. The final presented image is saved and the number of pixels that
differ from the background colour is reported.`

// headless renders frames with the software device and saves the final
// presented image.
func headless(md *modalflag.Modes) error {
	md.NewMode()

	session := addSessionFlags(md)
	frames := md.AddInt("frames", 60, "number of frames to render")
	out := md.AddString("out", "", "snapshot filename (.png, .jpg). defaults to a unique name in the snapshots folder")
	scale := md.AddFloat64("scale", 1.0, "scale the snapshot before saving")
	memvizFile := md.AddString("memviz", "", "write the renderer object graph to a graphviz dot file (best used with small -width, -height and -points values)")
	profile := md.AddBool("profile", false, "produce cpu and memory profiling reports")
	seed := md.AddInt64("seed", 0, "seed for the point cloud. zero uses the current time")
	md.AdditionalHelp(headlessHelp)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}
	if *frames < 1 {
		return fmt.Errorf("-frames must be at least one")
	}

	prf, err := session.preferences(md)
	if err != nil {
		return err
	}

	path := *out
	if path == "" {
		path, err = resources.JoinPath("snapshots", snapshot.UniqueFilename("osrdemo", "png"))
		if err != nil {
			return err
		}
	}

	s := uint64(*seed)
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}

	h := headlessRun{
		width:     prf.width.Get().(int),
		height:    prf.height.Get().(int),
		points:    prf.points.Get().(int),
		offscreen: prf.offscreen.Get().(bool),
		camera:    prf.camera(),
		frames:    *frames,
		rng:       rand.New(rand.NewPCG(s, 0)),
		memviz:    *memvizFile,
	}

	run := func() error {
		return h.run()
	}
	if *profile {
		err = performance.Profile("cpu.profile", "mem.profile", run)
	} else {
		err = run()
	}
	if err != nil {
		return err
	}

	err = snapshot.Save(h.dev.Front(), path, *scale)
	if err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "%d frames rendered\n", h.rendered)
	fmt.Fprintf(md.Output, "%d pixels differ from the background\n", h.differing)
	fmt.Fprintf(md.Output, "snapshot saved to %s\n", path)

	return nil
}

type headlessRun struct {
	width     int
	height    int
	points    int
	offscreen bool
	camera    camera.Preferences
	frames    int
	rng       *rand.Rand

	// graphviz output for the renderer object graph. may be empty
	memviz string

	dev       *softgpu.Device
	renderer  *scene.Renderer
	rendered  int
	differing int
}

func (h *headlessRun) run() error {
	var err error

	h.dev, err = softgpu.NewDevice(h.width, h.height)
	if err != nil {
		return err
	}

	points := scene.RandomPoints(h.rng, h.points, -1, 1)
	h.renderer, err = scene.NewRenderer(h.dev, points, int32(h.width), int32(h.height), h.offscreen)
	if err != nil {
		return err
	}
	defer h.renderer.Destroy()

	drv, err := pipeline.NewDriver(h.dev, h.renderer, h.dev)
	if err != nil {
		return err
	}
	defer drv.Destroy()

	cam := camera.NewCamera(h.camera, h.width, h.height)
	anim := &scene.Animation{}

	for range h.frames {
		err = drv.Cycle(cam.ViewProjection().Mul4(anim.Model()))
		if err != nil {
			return err
		}
		anim.Step()
	}

	h.rendered = drv.Frames()

	// when compositing, the quad covers the whole of the default target so
	// every pixel comes from the off-screen target
	h.differing = snapshot.Differing(h.dev.Front(), rgba(drv.Background))

	logger.Logf(logger.Allow, "osrdemo", "%d frames rendered: %s", h.rendered, h.dev.Stats())

	if h.memviz != "" {
		err = h.writeMemviz(h.memviz)
		if err != nil {
			return err
		}
	}

	return nil
}

// writeMemviz writes the object graph of the renderer to a graphviz dot file.
func (h *headlessRun) writeMemviz(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	memviz.Map(f, h.renderer)
	return f.Close()
}

func rgba(col gpu.Color) color.RGBA {
	return color.RGBA{
		R: uint8(col.R*255 + 0.5),
		G: uint8(col.G*255 + 0.5),
		B: uint8(col.B*255 + 0.5),
		A: uint8(col.A*255 + 0.5),
	}
}
