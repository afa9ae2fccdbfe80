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

package camera_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jetsetilly/osrdemo/camera"
	"github.com/jetsetilly/osrdemo/test"
)

func TestInitialView(t *testing.T) {
	c := camera.NewCamera(camera.DefaultPreferences, 1280, 800)

	front := c.Front()
	test.ExpectApproximate(t, front.X(), 0, 0.0001)
	test.ExpectApproximate(t, front.Y(), 0, 0.0001)
	test.ExpectApproximate(t, front.Z(), -1, 0.0001)

	// origin is in the centre of the view
	clip := c.ViewProjection().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	test.ExpectApproximate(t, clip.X()/clip.W(), 0, 0.0001)
	test.ExpectApproximate(t, clip.Y()/clip.W(), 0, 0.0001)

	// and in front of the camera at a distance of 5
	test.ExpectApproximate(t, clip.W(), 5, 0.0001)

	expected := mgl32.Perspective(mgl32.DegToRad(45), 1.6, 0.01, 100).Mul4(
		mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 4}, mgl32.Vec3{0, 1, 0}))
	vp := c.ViewProjection()
	for i := range vp {
		// absolute tolerance. elements of the matrix that should be zero
		// carry rounding error from the yaw/pitch trigonometry
		test.ExpectApproximate(t, vp[i]-expected[i], 0, 0.00001, i)
	}
}

func TestLook(t *testing.T) {
	c := camera.NewCamera(camera.DefaultPreferences, 100, 100)

	// 900 units of mouse movement at a sensitivity of 0.1 turns the camera 90
	// degrees to the right
	c.Look(900, 0)
	front := c.Front()
	test.ExpectApproximate(t, front.X(), 1, 0.0001)
	test.ExpectApproximate(t, front.Z(), 0, 0.0001)

	// pitch is constrained
	c.Look(0, -10000)
	test.ExpectApproximate(t, c.Pitch, 89, 0.0001)
	c.Look(0, 20000)
	test.ExpectApproximate(t, c.Pitch, -89, 0.0001)
}

func TestMove(t *testing.T) {
	c := camera.NewCamera(camera.DefaultPreferences, 100, 100)

	// one frame of forward movement is keyboard sensitivity * 10
	c.Move(1, 0, 0)
	test.ExpectApproximate(t, c.Position.Z(), 4.9, 0.0001)

	c.Move(0, 1, 0)
	test.ExpectApproximate(t, c.Position.X(), 0.1, 0.0001)

	c.Move(0, 0, -1)
	test.ExpectApproximate(t, c.Position.Y(), -0.1, 0.0001)

	c.Move(-1, -1, 1)
	for i := range c.Position {
		test.ExpectApproximate(t, c.Position[i]-camera.DefaultPosition[i], 0, 0.00001, i)
	}
}

func TestAspect(t *testing.T) {
	c := camera.NewCamera(camera.DefaultPreferences, 200, 100)
	wide := c.Projection()

	c.SetAspect(100, 100)
	square := c.Projection()

	// doubling the aspect ratio halves the horizontal scale
	test.ExpectApproximate(t, wide.At(0, 0)*2, square.At(0, 0), 0.0001)
	test.ExpectApproximate(t, wide.At(1, 1), square.At(1, 1), 0.0001)

	// zero height does not divide by zero
	c.SetAspect(100, 0)
	test.ExpectApproximate(t, c.Projection().At(0, 0)*100, square.At(0, 0), 0.0001)
}
