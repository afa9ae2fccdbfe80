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

// Package camera implements a first-person camera. The camera is turned by
// mouse movement and moved by the direction keys. ViewProjection() returns the
// combined projection and view transform for the scene shader.
package camera
