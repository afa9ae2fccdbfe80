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

package softgpu

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jetsetilly/osrdemo/gpu"
)

type program struct {
	dev     *Device
	id      uint32
	kind    gpu.ProgramKind
	mvp     mgl32.Mat4
	sampler int32
}

// CreateProgram implements the gpu.Device interface.
func (dev *Device) CreateProgram(kind gpu.ProgramKind) (gpu.Program, error) {
	switch kind {
	case gpu.SceneProgram, gpu.QuadProgram:
	default:
		return nil, fmt.Errorf("softgpu: %w: unknown program %s", gpu.ErrProgram, kind)
	}

	p := &program{
		dev:  dev,
		id:   dev.id(),
		kind: kind,
		mvp:  mgl32.Ident4(),
	}
	dev.programs[p.id] = p
	return p, nil
}

// UseProgram implements the gpu.Device interface.
func (dev *Device) UseProgram(p gpu.Program) {
	if p == nil {
		dev.current = nil
		return
	}
	sp, ok := p.(*program)
	if !ok || sp.dev != dev || dev.programs[sp.id] == nil {
		dev.errorf("use of program not created by this device")
		return
	}
	dev.current = sp
}

func (p *program) Kind() gpu.ProgramKind {
	return p.kind
}

func (p *program) SetMVP(mvp mgl32.Mat4) {
	if p.dev.current != p {
		p.dev.errorf("uniform set on %s program that is not in use", p.kind)
		return
	}
	p.mvp = mvp
}

func (p *program) SetSampler(unit int32) {
	if p.dev.current != p {
		p.dev.errorf("uniform set on %s program that is not in use", p.kind)
		return
	}
	p.sampler = unit
}

func (p *program) Destroy() {
	if p.id == 0 {
		return
	}
	_, ok := p.dev.programs[p.id]
	delete(p.dev.programs, p.id)
	if p.dev.current == p {
		p.dev.current = nil
	}
	p.dev.deleted(ok, "program", p.id)
	p.id = 0
}
