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

// Package softgpu implements gpu.Device on the CPU. It needs no display and
// no OpenGL context, so it is used by the tests and by the HEADLESS mode.
//
// The device follows OpenGL semantics closely enough for the renderer to
// behave identically on both devices: binding a framebuffer redirects draw
// calls, depth testing uses LESS against a buffer cleared to 1.0, disabled
// attributes read (0, 0, 0, 1) and the completeness check reports the same
// conditions that OpenGL does.
//
// In addition, the device records every draw call and counts every object
// created and deleted. Deleting an object that does not exist, or no longer
// exists, is counted as a double delete. Tests use these records to check
// that draw calls reached the intended target and that resources are
// released exactly once.
//
// Rasterisation is simple. Points are a single pixel. Triangles are filled
// with edge functions sampled at pixel centres, or outlined when wireframe
// mode is enabled. Attributes are interpolated linearly in screen space.
package softgpu
