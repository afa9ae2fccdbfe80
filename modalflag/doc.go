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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It handles program modes and allows different flags for each
// mode.
//
// Arguments are given to NewArgs() and then parsed with Parse(). Flags for
// the current mode are added before calling Parse():
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("POINTS", "QUAD", "HEADLESS")
//	p, err := md.Parse()
//
// The first sub-mode is the default and is selected if the first non-flag
// argument is not the name of a sub-mode. Sub-mode names are case
// insensitive.
//
// Once the mode has been decided a new set of flags can be added for that
// mode by calling NewMode() and then Parse() again:
//
//	switch md.Mode() {
//	case "HEADLESS":
//		md.NewMode()
//		frames := md.AddInt("frames", 1, "number of frames to render")
//		p, err := md.Parse()
//		...
//	}
//
// The Parse() function returns ParseHelp if the -help flag was given. In that
// case the help text has already been written to the Output writer.
package modalflag
