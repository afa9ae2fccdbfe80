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

// Package shaders contains the GLSL sources for the glcore device. The sources
// target GLSL 1.50, which is the version that accompanies OpenGL 3.2.
package shaders

import (
	_ "embed"
)

//go:embed "scene.vert"
var SceneVertexShader []byte

//go:embed "scene.frag"
var SceneFragmentShader []byte

//go:embed "quad.vert"
var QuadVertexShader []byte

//go:embed "quad.frag"
var QuadFragmentShader []byte
