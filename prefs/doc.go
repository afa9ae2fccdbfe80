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

// Package prefs facilitates the storage of preferential values in the
// osrdemo system. It is used for the display, render and camera settings.
//
// Preference values are of the types Bool, Int, Float or String. Each value
// is added to a Disk instance with a unique key:
//
//	dsk, err := prefs.NewDisk(pth)
//	var vsync prefs.Bool
//	err = dsk.Add("display.vsync", &vsync)
//	err = dsk.Load()
//
// Values read from disk are converted from their string representation by
// the Set() function of the value type. Hooks can be attached to a value to
// validate or react to changes.
//
// The command line stack allows preference values to be overridden for the
// duration of a session. Values from the top of the stack are applied by
// Disk.Load() but are never saved to disk unless the value is subsequently
// changed and Save() is called.
package prefs
