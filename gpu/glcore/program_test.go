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

package glcore

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jetsetilly/osrdemo/gpu"
	"github.com/jetsetilly/osrdemo/logger"
	"github.com/jetsetilly/osrdemo/test"
)

// the checks in this file return before any OpenGL function is called so no
// context is required.
func TestUniformsRequireCurrentProgram(t *testing.T) {
	logger.Clear()
	t.Cleanup(logger.Clear)

	dev := &Device{}
	scene := &program{dev: dev, kind: gpu.SceneProgram}
	quad := &program{dev: dev, kind: gpu.QuadProgram}

	scene.SetMVP(mgl32.Ident4())
	dev.current = scene
	quad.SetSampler(0)

	w := &strings.Builder{}
	logger.Write(w)
	test.ExpectEquality(t, w.String(),
		"glcore: SetMVP on scene program that is not in use\n"+
			"glcore: SetSampler on quad program that is not in use\n")

	// destroying the current program leaves no current program
	scene.Destroy()
	test.ExpectEquality(t, dev.current, nil)
	quad.Destroy()
}
