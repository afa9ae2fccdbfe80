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

// Package userinput collects input from the platform into a State that is
// consumed once per frame.
//
// It is a translation layer between the platform implementation and the rest
// of the program. The platform translates its own key codes into Key values
// and forwards them, along with mouse movement, to the State. This package
// knows nothing about SDL or GLFW.
package userinput
