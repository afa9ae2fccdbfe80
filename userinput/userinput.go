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

package userinput

// Key is a key that has meaning to the program.
type Key int

// List of valid Key values.
const (
	KeyNone Key = iota
	KeyForward
	KeyBackward
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyStopMotion
	KeyQuit
)

func (k Key) String() string {
	switch k {
	case KeyForward:
		return "forward"
	case KeyBackward:
		return "backward"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyStopMotion:
		return "stop motion"
	case KeyQuit:
		return "quit"
	}
	return "none"
}

// State of user input for the current frame.
type State struct {
	// mouse movement since the last call to EndFrame()
	MouseDX float32
	MouseDY float32

	// direction keys currently held
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Up       bool
	Down     bool

	// stop motion has been toggled an odd number of times since the last
	// call to EndFrame()
	ToggleMotion bool

	// quit has been requested. never reset by EndFrame()
	Quit bool
}

// KeyEvent updates the state for a key press (down is true) or release.
func (s *State) KeyEvent(k Key, down bool) {
	switch k {
	case KeyForward:
		s.Forward = down
	case KeyBackward:
		s.Backward = down
	case KeyLeft:
		s.Left = down
	case KeyRight:
		s.Right = down
	case KeyUp:
		s.Up = down
	case KeyDown:
		s.Down = down
	case KeyStopMotion:
		if down {
			s.ToggleMotion = !s.ToggleMotion
		}
	case KeyQuit:
		if down {
			s.Quit = true
		}
	}
}

// MouseMotion accumulates relative mouse movement.
func (s *State) MouseMotion(dx float32, dy float32) {
	s.MouseDX += dx
	s.MouseDY += dy
}

// Axes returns the movement requested by the direction keys. Each value is
// -1, 0 or 1. Opposing keys cancel each other out.
func (s *State) Axes() (forward float32, right float32, up float32) {
	return axis(s.Forward, s.Backward), axis(s.Right, s.Left), axis(s.Up, s.Down)
}

func axis(pos bool, neg bool) float32 {
	var v float32
	if pos {
		v++
	}
	if neg {
		v--
	}
	return v
}

// EndFrame resets the values that accumulate over a frame. Held keys and the
// quit request are kept.
func (s *State) EndFrame() {
	s.MouseDX = 0
	s.MouseDY = 0
	s.ToggleMotion = false
}
