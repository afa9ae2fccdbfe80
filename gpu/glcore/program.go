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
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jetsetilly/osrdemo/gpu"
	"github.com/jetsetilly/osrdemo/gpu/glcore/shaders"
	"github.com/jetsetilly/osrdemo/logger"
)

type program struct {
	dev    *Device
	kind   gpu.ProgramKind
	handle uint32

	mvp     int32
	texture int32
}

// CreateProgram compiles and links one of the fixed programs. Attribute
// locations are bound before linking so that both programs agree with
// gpu.AttribPosition and gpu.AttribTexCoord.
func (dev *Device) CreateProgram(kind gpu.ProgramKind) (gpu.Program, error) {
	var vert, frag []byte
	switch kind {
	case gpu.SceneProgram:
		vert = shaders.SceneVertexShader
		frag = shaders.SceneFragmentShader
	case gpu.QuadProgram:
		vert = shaders.QuadVertexShader
		frag = shaders.QuadFragmentShader
	default:
		return nil, fmt.Errorf("glcore: %w: unknown program %s", gpu.ErrProgram, kind)
	}

	p := &program{dev: dev, kind: kind}
	if err := p.createProgram(string(vert), string(frag)); err != nil {
		return nil, fmt.Errorf("glcore: %s: %w", kind, err)
	}

	return p, nil
}

func (dev *Device) UseProgram(p gpu.Program) {
	if p == nil {
		gl.UseProgram(0)
		dev.current = nil
		return
	}
	if gp, ok := p.(*program); ok {
		gl.UseProgram(gp.handle)
		dev.current = gp
	}
}

// compile and link shader program
func (p *program) createProgram(vertProgram string, fragProgram string) error {
	p.handle = gl.CreateProgram()

	vertHandle := gl.CreateShader(gl.VERTEX_SHADER)
	fragHandle := gl.CreateShader(gl.FRAGMENT_SHADER)

	// shaders are no longer needed once the program has linked, or failed to
	defer gl.DeleteShader(fragHandle)
	defer gl.DeleteShader(vertHandle)

	glShaderSource := func(handle uint32, source string) {
		csource, free := gl.Strs(source + "\x00")
		defer free()

		gl.ShaderSource(handle, 1, csource, nil)
	}

	glShaderSource(vertHandle, vertProgram)
	glShaderSource(fragHandle, fragProgram)

	gl.CompileShader(vertHandle)
	if log := getShaderCompileError(vertHandle); log != "" {
		p.Destroy()
		return fmt.Errorf("%w: vertex shader: %s", gpu.ErrProgram, log)
	}

	gl.CompileShader(fragHandle)
	if log := getShaderCompileError(fragHandle); log != "" {
		p.Destroy()
		return fmt.Errorf("%w: fragment shader: %s", gpu.ErrProgram, log)
	}

	gl.AttachShader(p.handle, vertHandle)
	gl.AttachShader(p.handle, fragHandle)

	gl.BindAttribLocation(p.handle, gpu.AttribPosition, gl.Str("Position"+"\x00"))
	if p.kind == gpu.QuadProgram {
		gl.BindAttribLocation(p.handle, gpu.AttribTexCoord, gl.Str("UV"+"\x00"))
	}
	gl.BindFragDataLocation(p.handle, 0, gl.Str("Out_Color"+"\x00"))

	gl.LinkProgram(p.handle)
	if log := getProgramLinkError(p.handle); log != "" {
		p.Destroy()
		return fmt.Errorf("%w: link: %s", gpu.ErrProgram, log)
	}

	// get references to uniform variables. a uniform that is not used by the
	// program has a location of -1, which is ignored by the Uniform functions
	p.mvp = gl.GetUniformLocation(p.handle, gl.Str("MVP"+"\x00"))
	p.texture = gl.GetUniformLocation(p.handle, gl.Str("Texture"+"\x00"))

	return nil
}

func (p *program) Kind() gpu.ProgramKind {
	return p.kind
}

// inUse returns false and logs the misuse if the program is not the current
// program. glUniform calls apply to the current program and not to p.
func (p *program) inUse(what string) bool {
	if p.dev.current != p {
		logger.Logf(logger.Allow, "glcore", "%s on %s program that is not in use", what, p.kind)
		return false
	}
	return true
}

func (p *program) SetMVP(mvp mgl32.Mat4) {
	if !p.inUse("SetMVP") {
		return
	}
	gl.UniformMatrix4fv(p.mvp, 1, false, &mvp[0])
}

func (p *program) SetSampler(unit int32) {
	if !p.inUse("SetSampler") {
		return
	}
	gl.Uniform1i(p.texture, unit)
}

func (p *program) Destroy() {
	if p.dev.current == p {
		p.dev.current = nil
	}
	if p.handle == 0 {
		return
	}
	gl.DeleteProgram(p.handle)
	p.handle = 0
}

// getShaderCompileError returns the most recent error generated by the shader
// compiler.
func getShaderCompileError(shader uint32) string {
	var isCompiled int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &isCompiled)
	if isCompiled == 0 {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		if logLength > 0 {
			// the length includes the NULL character
			log := strings.Repeat("\x00", int(logLength+1))
			gl.GetShaderInfoLog(shader, logLength, &logLength, gl.Str(log))
			return strings.TrimRight(log, "\x00")
		}
		return "unknown compile error"
	}
	return ""
}

func getProgramLinkError(handle uint32) string {
	var isLinked int32
	gl.GetProgramiv(handle, gl.LINK_STATUS, &isLinked)
	if isLinked == 0 {
		var logLength int32
		gl.GetProgramiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		if logLength > 0 {
			log := strings.Repeat("\x00", int(logLength+1))
			gl.GetProgramInfoLog(handle, logLength, &logLength, gl.Str(log))
			return strings.TrimRight(log, "\x00")
		}
		return "unknown link error"
	}
	return ""
}
