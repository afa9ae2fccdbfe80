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

package gpu_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/osrdemo/gpu"
	"github.com/jetsetilly/osrdemo/gpu/softgpu"
	"github.com/jetsetilly/osrdemo/test"
)

func TestVertexBuffer(t *testing.T) {
	dev, err := softgpu.NewDevice(8, 8)
	test.DemandSuccess(t, err)

	// records of five floats. only the first three are used
	data := []float32{
		0, 0, 0, 9, 9,
		1, 1, 1, 9, 9,
	}

	vb, err := gpu.NewVertexBuffer(dev, data, 5, gpu.Attrib{Index: gpu.AttribPosition, Size: 3})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, vb.Count(), 2)
	test.ExpectEquality(t, dev.Stats().Live(), 2)

	// vertex array and buffer are not left bound
	vb2, err := gpu.NewVertexBuffer(dev, nil, 3)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, vb2.Count(), 0)

	vb.Destroy()
	vb.Destroy()
	vb2.Destroy()
	test.ExpectEquality(t, dev.Stats().Live(), 0)
	test.ExpectEquality(t, dev.Stats().DoubleDeletes, 0)
}

func TestVertexBufferErrors(t *testing.T) {
	dev, err := softgpu.NewDevice(8, 8)
	test.DemandSuccess(t, err)

	_, err = gpu.NewVertexBuffer(dev, []float32{0, 0, 0}, 0)
	test.ExpectSuccess(t, errors.Is(err, gpu.ErrVertexData))

	_, err = gpu.NewVertexBuffer(dev, []float32{0, 0, 0, 0}, 3)
	test.ExpectSuccess(t, errors.Is(err, gpu.ErrVertexData))

	_, err = gpu.NewVertexBuffer(dev, []float32{0, 0, 0}, 3, gpu.Attrib{Index: 1, Size: 2, Offset: 2})
	test.ExpectSuccess(t, errors.Is(err, gpu.ErrVertexData))

	// nothing was allocated for the failed buffers
	test.ExpectEquality(t, dev.Stats().Created, 0)
}
