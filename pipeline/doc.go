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

// Package pipeline drives the renderer one frame at a time.
//
// With an off-screen target, Cycle() renders the scene into the target with
// depth testing, returns to the default target, clears it to the backdrop and
// composites the target's colour attachment onto the screen with a
// full-screen quad. Without an off-screen target the scene is rendered
// straight to the default target. In both cases the frame is presented last.
//
// The off-screen pass is drawn through framebuffer.Target.Process(), so the
// default target is always current by the time the composite pass begins.
package pipeline
