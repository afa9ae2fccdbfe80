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

package performance

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Profile runs the function with CPU profiling written to cpuFile and writes a
// heap profile to memFile once the function has returned. An empty filename
// disables that profile.
func Profile(cpuFile string, memFile string, run func() error) error {
	if cpuFile != "" {
		f, err := os.Create(cpuFile)
		if err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		defer f.Close()

		err = pprof.StartCPUProfile(f)
		if err != nil {
			return fmt.Errorf("performance: %w", err)
		}
	}

	err := run()

	if cpuFile != "" {
		pprof.StopCPUProfile()
	}

	if err != nil {
		return err
	}

	if memFile != "" {
		f, err := os.Create(memFile)
		if err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		runtime.GC()
		err = pprof.WriteHeapProfile(f)
		if err != nil {
			_ = f.Close()
			return fmt.Errorf("performance: %w", err)
		}
		err = f.Close()
		if err != nil {
			return fmt.Errorf("performance: %w", err)
		}
	}

	return nil
}
