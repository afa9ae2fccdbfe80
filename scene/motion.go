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
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MotionStep is the amount by which the motion counter advances every frame.
const MotionStep = 0.01

// Motion returns the model transform for the motion counter t. The model
// slides from side to side while it tumbles.
func Motion(t float32) mgl32.Mat4 {
	translate := mgl32.Translate3D(float32(math.Sin(float64(t))), 0, 0)
	return translate.Mul4(mgl32.HomogRotate3DX(t)).
		Mul4(mgl32.HomogRotate3DY(-t)).
		Mul4(mgl32.HomogRotate3DZ(-t))
}

// Animation is the motion counter. The zero value is ready to use.
type Animation struct {
	T       float32
	Stopped bool
}

// Step advances the counter unless the animation has been stopped.
func (a *Animation) Step() {
	if !a.Stopped {
		a.T += MotionStep
	}
}

// Toggle stops a running animation or restarts a stopped one.
func (a *Animation) Toggle() {
	a.Stopped = !a.Stopped
}

// Model returns the model transform for the current value of the counter.
func (a *Animation) Model() mgl32.Mat4 {
	return Motion(a.T)
}
