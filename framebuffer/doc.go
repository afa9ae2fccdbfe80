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

// Package framebuffer provides an off-screen render target. A Target is made
// of a colour texture and a combined depth/stencil renderbuffer attached to a
// framebuffer object.
//
// Targets are created once at a fixed size and checked for completeness
// before they are returned. There is no resize operation. A change of
// dimensions requires a new Target.
//
// Draw calls made between Bind() and Unbind() go to the Target. The Process()
// function wraps a draw function in the Bind()/Unbind() pair, which means the
// default target is always restored when the draw function returns:
//
//	fb.Process(func() {
//		dev.Clear(background)
//		scn.DrawScene()
//	})
//
// The colour texture can then be sampled with the Texture() handle.
package framebuffer
