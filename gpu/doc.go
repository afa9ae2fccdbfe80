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

// Package gpu defines the graphics device used by the renderer. The Device
// interface is a small, explicit rendition of the parts of OpenGL that
// osrdemo needs: vertex arrays and buffers, textures, renderbuffers,
// framebuffers, two fixed programs and DrawArrays.
//
// GPU objects are referred to by typed handles. The zero value of every
// handle type means "none" and, for Framebuffer, the default on-screen target.
//
// Two implementations exist. The glcore package drives a real OpenGL 3.2 core
// context. The softgpu package rasterises on the CPU and is used by the tests
// and by the HEADLESS mode.
//
// Handles are not owned by the Device. Types that allocate GPU objects, such as
// VertexBuffer in this package or framebuffer.Target, own them and release them
// exactly once.
package gpu
