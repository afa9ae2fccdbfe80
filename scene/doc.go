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

// Package scene owns the geometry drawn by osrdemo and the off-screen target
// it is drawn into.
//
// A Renderer created with NewRenderer() holds a point cloud, a quad covering
// the screen and, when off-screen rendering is enabled, a framebuffer.Target.
// DrawScene() draws the point cloud to whichever target is current and
// DrawQuadScreen() draws the quad textured with the Target's colour
// attachment.
//
// A Renderer created with NewWireQuad() draws a smaller quad in wireframe
// instead of the point cloud and has no off-screen target.
//
// The Renderer does not manage the current render target, depth testing or
// the shader program. That is the responsibility of the caller, normally the
// pipeline package.
package scene
