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

package pipeline

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jetsetilly/osrdemo/gpu"
	"github.com/jetsetilly/osrdemo/scene"
)

// Default clear colours.
var (
	DefaultBackground = gpu.Color{R: 0, G: 0, B: 0, A: 1}
	DefaultBackdrop   = gpu.Color{R: 1, G: 1, B: 1, A: 1}
)

// Driver runs the per-frame render sequence.
type Driver struct {
	dev       gpu.Device
	renderer  *scene.Renderer
	presenter gpu.Presenter

	sceneProg gpu.Program
	quadProg  gpu.Program

	// Background is the clear colour of the scene pass. Backdrop is the clear
	// colour of the default target in the composite pass.
	Background gpu.Color
	Backdrop   gpu.Color

	frames int
}

// NewDriver creates the shader programs used by Cycle().
func NewDriver(dev gpu.Device, renderer *scene.Renderer, presenter gpu.Presenter) (*Driver, error) {
	d := &Driver{
		dev:        dev,
		renderer:   renderer,
		presenter:  presenter,
		Background: DefaultBackground,
		Backdrop:   DefaultBackdrop,
	}

	var err error

	d.sceneProg, err = dev.CreateProgram(gpu.SceneProgram)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	if renderer.Offscreen() != nil {
		d.quadProg, err = dev.CreateProgram(gpu.QuadProgram)
		if err != nil {
			d.Destroy()
			return nil, fmt.Errorf("pipeline: %w", err)
		}
	}

	return d, nil
}

// Cycle renders and presents one frame with the model-view-projection
// transform. The default target is current when Cycle() returns.
func (d *Driver) Cycle(mvp mgl32.Mat4) error {
	target := d.renderer.Offscreen()

	if target == nil {
		d.scenePass(mvp)
	} else {
		target.Process(func() {
			d.dev.SetDepthTest(true)
			d.scenePass(mvp)
		})

		// the quad has no depth information and must never be discarded by
		// the depth test
		d.dev.SetDepthTest(false)
		d.dev.Clear(d.Backdrop)

		d.dev.UseProgram(d.quadProg)
		d.quadProg.SetSampler(0)
		if err := d.renderer.DrawQuadScreen(); err != nil {
			return fmt.Errorf("pipeline: %w", err)
		}
	}

	d.dev.UseProgram(nil)
	d.presenter.Present()
	d.frames++

	return nil
}

func (d *Driver) scenePass(mvp mgl32.Mat4) {
	d.dev.Clear(d.Background)
	d.dev.UseProgram(d.sceneProg)
	d.sceneProg.SetMVP(mvp)
	d.renderer.DrawScene()
}

// Frames returns the number of frames presented.
func (d *Driver) Frames() int {
	return d.frames
}

// Destroy releases the shader programs. It does not destroy the Renderer.
func (d *Driver) Destroy() {
	if d.sceneProg != nil {
		d.sceneProg.Destroy()
		d.sceneProg = nil
	}
	if d.quadProg != nil {
		d.quadProg.Destroy()
		d.quadProg = nil
	}
}
