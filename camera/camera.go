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

package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// maximum pitch in degrees. looking straight up or down makes the view matrix
// degenerate
const maxPitch = 89.0

// movement per frame is the keyboard sensitivity multiplied by this value
const speedFactor = 10.0

// Preferences for the camera. These are normally taken from the prefs
// package.
type Preferences struct {
	Fov                 float32
	ZNear               float32
	ZFar                float32
	MouseSensitivity    float32
	KeyboardSensitivity float32
}

// DefaultPreferences are the values used when no preferences file exists.
var DefaultPreferences = Preferences{
	Fov:                 45,
	ZNear:               0.01,
	ZFar:                100,
	MouseSensitivity:    0.1,
	KeyboardSensitivity: 0.01,
}

// DefaultPosition is the initial position of the camera.
var DefaultPosition = mgl32.Vec3{0, 0, 5}

// Camera is a first-person camera looking along the negative Z axis when
// created.
type Camera struct {
	prefs Preferences

	Position mgl32.Vec3

	// angles in degrees
	Yaw   float32
	Pitch float32

	aspect float32
}

// NewCamera is the preferred method of initialisation for the Camera type.
func NewCamera(prefs Preferences, width int, height int) *Camera {
	c := &Camera{
		prefs:    prefs,
		Position: DefaultPosition,
		Yaw:      -90,
	}
	c.SetAspect(width, height)
	return c
}

// SetAspect sets the aspect ratio of the projection from the size of the
// target. A zero height is treated as one.
func (c *Camera) SetAspect(width int, height int) {
	c.aspect = float32(width) / float32(max(height, 1))
}

// Front returns the unit vector in the direction the camera is looking.
func (c *Camera) Front() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))
	return mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
}

// Right returns the unit vector to the right of the camera, parallel to the
// ground.
func (c *Camera) Right() mgl32.Vec3 {
	return c.Front().Cross(mgl32.Vec3{0, 1, 0}).Normalize()
}

// Look turns the camera by the mouse movement. Moving the mouse up (a
// negative dy) raises the view.
func (c *Camera) Look(dx float32, dy float32) {
	c.Yaw += dx * c.prefs.MouseSensitivity
	c.Pitch -= dy * c.prefs.MouseSensitivity
	c.Pitch = mgl32.Clamp(c.Pitch, -maxPitch, maxPitch)
}

// Move the camera. Each argument is in the range -1 to 1 and gives the
// direction of movement along the view direction, to the right and upwards.
func (c *Camera) Move(forward float32, right float32, up float32) {
	speed := c.prefs.KeyboardSensitivity * speedFactor
	c.Position = c.Position.Add(c.Front().Mul(forward * speed))
	c.Position = c.Position.Add(c.Right().Mul(right * speed))
	c.Position = c.Position.Add(mgl32.Vec3{0, 1, 0}.Mul(up * speed))
}

// View returns the view transform.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), mgl32.Vec3{0, 1, 0})
}

// Projection returns the perspective projection.
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.prefs.Fov), c.aspect, c.prefs.ZNear, c.prefs.ZFar)
}

// ViewProjection returns the projection multiplied by the view.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}
