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

package performance

import (
	"fmt"
	"time"
)

// the period over which frames are counted
const period = time.Second

// Counter counts frames and calculates frames-per-second once every period.
type Counter struct {
	now func() time.Time

	t0     time.Time
	frames int
	fps    float64
}

// NewCounter is the preferred method of initialisation for the Counter type.
// The now argument can be nil, in which case time.Now() is used.
func NewCounter(now func() time.Time) *Counter {
	if now == nil {
		now = time.Now
	}
	return &Counter{
		now: now,
		t0:  now(),
	}
}

// Tick should be called once at the start of every frame. It returns true
// when a new measurement has been made, which is on the first frame and then
// whenever more than a second has elapsed since the previous measurement.
func (c *Counter) Tick() bool {
	t := c.now()

	measured := false
	if d := t.Sub(c.t0); d > period || c.frames == 0 {
		if d > 0 {
			c.fps = float64(c.frames) / d.Seconds()
		}
		c.t0 = t
		c.frames = 0
		measured = true
	}

	c.frames++
	return measured
}

// FPS returns the most recent measurement.
func (c *Counter) FPS() float64 {
	return c.fps
}

// Title returns the most recent measurement formatted for the window title.
func (c *Counter) Title() string {
	return fmt.Sprintf("FPS = %.1f", c.fps)
}
