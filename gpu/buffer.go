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

package gpu

import (
	"fmt"
)

// Attrib describes one attribute stream of a VertexBuffer. Size and Offset
// are measured in floats.
type Attrib struct {
	Index  uint32
	Size   int32
	Offset int32
}

// VertexBuffer owns a vertex array and the buffer holding its data. The data
// is uploaded once and never changes.
type VertexBuffer struct {
	dev Device

	vao VertexArray
	vbo Buffer

	stride int32
	count  int32
}

// NewVertexBuffer uploads data as records of stride floats. Only the listed
// attributes are enabled. Parts of the record that no attribute refers to are
// uploaded but never read.
func NewVertexBuffer(dev Device, data []float32, stride int32, attribs ...Attrib) (*VertexBuffer, error) {
	if stride <= 0 {
		return nil, fmt.Errorf("vertex buffer: %w: stride must be positive", ErrVertexData)
	}
	if len(data)%int(stride) != 0 {
		return nil, fmt.Errorf("vertex buffer: %w: %d floats is not a multiple of stride %d", ErrVertexData, len(data), stride)
	}
	for _, a := range attribs {
		if a.Size < 1 || a.Size > 4 || a.Offset < 0 || a.Offset+a.Size > stride {
			return nil, fmt.Errorf("vertex buffer: %w: attribute %d does not fit record", ErrVertexData, a.Index)
		}
	}

	vb := &VertexBuffer{
		dev:    dev,
		stride: stride,
		count:  int32(len(data)) / stride,
	}

	vb.vao = dev.CreateVertexArray()
	vb.vbo = dev.CreateBuffer()

	dev.BindVertexArray(vb.vao)
	dev.BindBuffer(vb.vbo)
	dev.BufferData(data)
	for _, a := range attribs {
		dev.VertexAttribPointer(a.Index, a.Size, stride, a.Offset)
		dev.EnableVertexAttribArray(a.Index)
	}
	dev.BindBuffer(0)
	dev.BindVertexArray(0)

	return vb, nil
}

// Count returns the number of vertices in the buffer.
func (vb *VertexBuffer) Count() int32 {
	return vb.count
}

// Draw issues a single draw call over every vertex in the buffer.
func (vb *VertexBuffer) Draw(prim Primitive) {
	vb.dev.BindVertexArray(vb.vao)
	vb.dev.DrawArrays(prim, 0, vb.count)
	vb.dev.BindVertexArray(0)
}

// Destroy releases the vertex array and buffer. Calling Destroy more than once
// has no effect.
func (vb *VertexBuffer) Destroy() {
	if vb.vao == 0 && vb.vbo == 0 {
		return
	}
	vb.dev.DeleteBuffer(vb.vbo)
	vb.dev.DeleteVertexArray(vb.vao)
	vb.vbo = 0
	vb.vao = 0
}
