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
	"image"
	"image/color"

	"github.com/jetsetilly/osrdemo/gpu"
	"github.com/jetsetilly/osrdemo/logger"
)

const maxTextureUnits = 16

// DrawCall is a record of a single call to DrawArrays().
type DrawCall struct {
	Framebuffer gpu.Framebuffer
	Program     gpu.ProgramKind
	Primitive   gpu.Primitive
	First       int32
	Count       int32
	Wireframe   bool
}

func (dc DrawCall) String() string {
	return fmt.Sprintf("fb=%d %s %s first=%d count=%d", dc.Framebuffer, dc.Program, dc.Primitive, dc.First, dc.Count)
}

// Stats about object lifetimes and API misuse.
type Stats struct {
	Created       int
	Deleted       int
	DoubleDeletes int
	Errors        int
	Frames        int
}

func (s Stats) String() string {
	return fmt.Sprintf("created=%d deleted=%d live=%d double deletes=%d errors=%d frames=%d",
		s.Created, s.Deleted, s.Live(), s.DoubleDeletes, s.Errors, s.Frames)
}

// Live returns the number of objects that have been created but not deleted.
func (s Stats) Live() int {
	return s.Created - s.Deleted
}

type attrib struct {
	buffer  gpu.Buffer
	size    int32
	stride  int32
	offset  int32
	enabled bool
}

type vertexArray struct {
	attribs map[uint32]attrib
}

type texture struct {
	img    *image.RGBA
	linear bool
}

func (t *texture) size() (int, int) {
	if t.img == nil {
		return 0, 0
	}
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

type renderbuffer struct {
	width  int
	height int
	depth  []float32
}

type framebuffer struct {
	color        gpu.Texture
	depthStencil gpu.Renderbuffer
}

// Device is a software implementation of gpu.Device.
type Device struct {
	width  int
	height int

	// the default render target
	color *image.RGBA
	depth []float32

	// the presented image
	front *image.RGBA

	nextID uint32

	buffers       map[gpu.Buffer][]float32
	vertexArrays  map[gpu.VertexArray]*vertexArray
	textures      map[gpu.Texture]*texture
	renderbuffers map[gpu.Renderbuffer]*renderbuffer
	framebuffers  map[gpu.Framebuffer]*framebuffer
	programs      map[uint32]*program

	boundBuffer       gpu.Buffer
	boundVertexArray  gpu.VertexArray
	activeUnit        uint32
	units             [maxTextureUnits]gpu.Texture
	boundRenderbuffer gpu.Renderbuffer
	boundFramebuffer  gpu.Framebuffer
	viewport          [4]int32
	depthTest         bool
	wireframe         bool
	current           *program

	draws []DrawCall
	stats Stats
}

// NewDevice creates a software device with a default target of the specified
// size. Width and height must be positive.
func NewDevice(width int, height int) (*Device, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("softgpu: default target must have a positive size (%dx%d)", width, height)
	}

	dev := &Device{
		width:         width,
		height:        height,
		color:         image.NewRGBA(image.Rect(0, 0, width, height)),
		depth:         make([]float32, width*height),
		front:         image.NewRGBA(image.Rect(0, 0, width, height)),
		buffers:       make(map[gpu.Buffer][]float32),
		vertexArrays:  make(map[gpu.VertexArray]*vertexArray),
		textures:      make(map[gpu.Texture]*texture),
		renderbuffers: make(map[gpu.Renderbuffer]*renderbuffer),
		framebuffers:  make(map[gpu.Framebuffer]*framebuffer),
		programs:      make(map[uint32]*program),
		viewport:      [4]int32{0, 0, int32(width), int32(height)},
	}
	for i := range dev.depth {
		dev.depth[i] = 1.0
	}

	logger.Logf(logger.Allow, "softgpu", "default target is %dx%d", width, height)

	return dev, nil
}

// Size returns the size of the default target.
func (dev *Device) Size() (int, int) {
	return dev.width, dev.height
}

func (dev *Device) errorf(format string, args ...any) {
	dev.stats.Errors++
	logger.Logf(logger.Allow, "softgpu", format, args...)
}

func (dev *Device) id() uint32 {
	dev.nextID++
	dev.stats.Created++
	return dev.nextID
}

func (dev *Device) deleted(ok bool, what string, id uint32) {
	if ok {
		dev.stats.Deleted++
		return
	}
	dev.stats.DoubleDeletes++
	logger.Logf(logger.Allow, "softgpu", "delete of non-existent %s (%d)", what, id)
}

// CreateVertexArray implements the gpu.Device interface.
func (dev *Device) CreateVertexArray() gpu.VertexArray {
	id := gpu.VertexArray(dev.id())
	dev.vertexArrays[id] = &vertexArray{attribs: make(map[uint32]attrib)}
	return id
}

// DeleteVertexArray implements the gpu.Device interface.
func (dev *Device) DeleteVertexArray(id gpu.VertexArray) {
	if id == 0 {
		return
	}
	_, ok := dev.vertexArrays[id]
	delete(dev.vertexArrays, id)
	if dev.boundVertexArray == id {
		dev.boundVertexArray = 0
	}
	dev.deleted(ok, "vertex array", uint32(id))
}

// BindVertexArray implements the gpu.Device interface.
func (dev *Device) BindVertexArray(id gpu.VertexArray) {
	if _, ok := dev.vertexArrays[id]; !ok && id != 0 {
		dev.errorf("bind of non-existent vertex array (%d)", id)
		return
	}
	dev.boundVertexArray = id
}

// CreateBuffer implements the gpu.Device interface.
func (dev *Device) CreateBuffer() gpu.Buffer {
	id := gpu.Buffer(dev.id())
	dev.buffers[id] = nil
	return id
}

// DeleteBuffer implements the gpu.Device interface.
func (dev *Device) DeleteBuffer(id gpu.Buffer) {
	if id == 0 {
		return
	}
	_, ok := dev.buffers[id]
	delete(dev.buffers, id)
	if dev.boundBuffer == id {
		dev.boundBuffer = 0
	}
	dev.deleted(ok, "buffer", uint32(id))
}

// BindBuffer implements the gpu.Device interface.
func (dev *Device) BindBuffer(id gpu.Buffer) {
	if _, ok := dev.buffers[id]; !ok && id != 0 {
		dev.errorf("bind of non-existent buffer (%d)", id)
		return
	}
	dev.boundBuffer = id
}

// BufferData implements the gpu.Device interface.
func (dev *Device) BufferData(data []float32) {
	if dev.boundBuffer == 0 {
		dev.errorf("buffer data with no buffer bound")
		return
	}
	dev.buffers[dev.boundBuffer] = append([]float32(nil), data...)
}

// VertexAttribPointer implements the gpu.Device interface.
func (dev *Device) VertexAttribPointer(index uint32, size int32, stride int32, offset int32) {
	va, ok := dev.vertexArrays[dev.boundVertexArray]
	if !ok {
		dev.errorf("vertex attribute %d with no vertex array bound", index)
		return
	}
	if dev.boundBuffer == 0 {
		dev.errorf("vertex attribute %d with no buffer bound", index)
		return
	}
	a := va.attribs[index]
	a.buffer = dev.boundBuffer
	a.size = size
	a.stride = stride
	a.offset = offset
	va.attribs[index] = a
}

// EnableVertexAttribArray implements the gpu.Device interface.
func (dev *Device) EnableVertexAttribArray(index uint32) {
	va, ok := dev.vertexArrays[dev.boundVertexArray]
	if !ok {
		dev.errorf("enable attribute %d with no vertex array bound", index)
		return
	}
	a := va.attribs[index]
	a.enabled = true
	va.attribs[index] = a
}

// CreateTexture implements the gpu.Device interface.
func (dev *Device) CreateTexture() gpu.Texture {
	id := gpu.Texture(dev.id())
	dev.textures[id] = &texture{}
	return id
}

// DeleteTexture implements the gpu.Device interface.
func (dev *Device) DeleteTexture(id gpu.Texture) {
	if id == 0 {
		return
	}
	_, ok := dev.textures[id]
	delete(dev.textures, id)
	for i := range dev.units {
		if dev.units[i] == id {
			dev.units[i] = 0
		}
	}
	dev.deleted(ok, "texture", uint32(id))
}

// ActiveTexture implements the gpu.Device interface.
func (dev *Device) ActiveTexture(unit uint32) {
	if unit >= maxTextureUnits {
		dev.errorf("texture unit %d out of range", unit)
		return
	}
	dev.activeUnit = unit
}

// BindTexture implements the gpu.Device interface.
func (dev *Device) BindTexture(id gpu.Texture) {
	if _, ok := dev.textures[id]; !ok && id != 0 {
		dev.errorf("bind of non-existent texture (%d)", id)
		return
	}
	dev.units[dev.activeUnit] = id
}

func (dev *Device) boundTexture() *texture {
	return dev.textures[dev.units[dev.activeUnit]]
}

// TexImage2D implements the gpu.Device interface.
func (dev *Device) TexImage2D(width int32, height int32) {
	t := dev.boundTexture()
	if t == nil {
		dev.errorf("texture image with no texture bound")
		return
	}
	if width < 0 || height < 0 {
		dev.errorf("texture image with negative size (%dx%d)", width, height)
		return
	}
	if width == 0 || height == 0 {
		t.img = nil
		return
	}
	t.img = image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
}

// TexFilter implements the gpu.Device interface.
func (dev *Device) TexFilter(linear bool) {
	t := dev.boundTexture()
	if t == nil {
		dev.errorf("texture filter with no texture bound")
		return
	}
	t.linear = linear
}

// CreateRenderbuffer implements the gpu.Device interface.
func (dev *Device) CreateRenderbuffer() gpu.Renderbuffer {
	id := gpu.Renderbuffer(dev.id())
	dev.renderbuffers[id] = &renderbuffer{}
	return id
}

// DeleteRenderbuffer implements the gpu.Device interface.
func (dev *Device) DeleteRenderbuffer(id gpu.Renderbuffer) {
	if id == 0 {
		return
	}
	_, ok := dev.renderbuffers[id]
	delete(dev.renderbuffers, id)
	if dev.boundRenderbuffer == id {
		dev.boundRenderbuffer = 0
	}
	dev.deleted(ok, "renderbuffer", uint32(id))
}

// BindRenderbuffer implements the gpu.Device interface.
func (dev *Device) BindRenderbuffer(id gpu.Renderbuffer) {
	if _, ok := dev.renderbuffers[id]; !ok && id != 0 {
		dev.errorf("bind of non-existent renderbuffer (%d)", id)
		return
	}
	dev.boundRenderbuffer = id
}

// RenderbufferStorage implements the gpu.Device interface.
func (dev *Device) RenderbufferStorage(width int32, height int32) {
	rb := dev.renderbuffers[dev.boundRenderbuffer]
	if rb == nil {
		dev.errorf("renderbuffer storage with no renderbuffer bound")
		return
	}
	if width < 0 || height < 0 {
		dev.errorf("renderbuffer storage with negative size (%dx%d)", width, height)
		return
	}
	rb.width = int(width)
	rb.height = int(height)
	rb.depth = make([]float32, rb.width*rb.height)
	for i := range rb.depth {
		rb.depth[i] = 1.0
	}
}

// CreateFramebuffer implements the gpu.Device interface.
func (dev *Device) CreateFramebuffer() gpu.Framebuffer {
	id := gpu.Framebuffer(dev.id())
	dev.framebuffers[id] = &framebuffer{}
	return id
}

// DeleteFramebuffer implements the gpu.Device interface. Deleting the bound
// framebuffer rebinds the default target.
func (dev *Device) DeleteFramebuffer(id gpu.Framebuffer) {
	if id == gpu.DefaultFramebuffer {
		return
	}
	_, ok := dev.framebuffers[id]
	delete(dev.framebuffers, id)
	if dev.boundFramebuffer == id {
		dev.boundFramebuffer = gpu.DefaultFramebuffer
	}
	dev.deleted(ok, "framebuffer", uint32(id))
}

// BindFramebuffer implements the gpu.Device interface.
func (dev *Device) BindFramebuffer(id gpu.Framebuffer) {
	if _, ok := dev.framebuffers[id]; !ok && id != gpu.DefaultFramebuffer {
		dev.errorf("bind of non-existent framebuffer (%d)", id)
		return
	}
	dev.boundFramebuffer = id
}

// CurrentFramebuffer implements the gpu.Device interface.
func (dev *Device) CurrentFramebuffer() gpu.Framebuffer {
	return dev.boundFramebuffer
}

// FramebufferTexture implements the gpu.Device interface.
func (dev *Device) FramebufferTexture(id gpu.Texture) {
	fb := dev.framebuffers[dev.boundFramebuffer]
	if fb == nil {
		dev.errorf("texture attachment with no framebuffer bound")
		return
	}
	fb.color = id
}

// FramebufferRenderbuffer implements the gpu.Device interface.
func (dev *Device) FramebufferRenderbuffer(id gpu.Renderbuffer) {
	fb := dev.framebuffers[dev.boundFramebuffer]
	if fb == nil {
		dev.errorf("renderbuffer attachment with no framebuffer bound")
		return
	}
	fb.depthStencil = id
}

// CheckFramebufferStatus implements the gpu.Device interface.
func (dev *Device) CheckFramebufferStatus() gpu.FramebufferStatus {
	if dev.boundFramebuffer == gpu.DefaultFramebuffer {
		return gpu.StatusComplete
	}
	return dev.status(dev.framebuffers[dev.boundFramebuffer])
}

func (dev *Device) status(fb *framebuffer) gpu.FramebufferStatus {
	if fb == nil {
		return gpu.StatusUndefined
	}
	if fb.color == 0 && fb.depthStencil == 0 {
		return gpu.StatusIncompleteMissingAttachment
	}

	w, h := -1, -1

	if fb.color != 0 {
		t := dev.textures[fb.color]
		if t == nil {
			return gpu.StatusIncompleteAttachment
		}
		w, h = t.size()
		if w == 0 || h == 0 {
			return gpu.StatusIncompleteAttachment
		}
	}

	if fb.depthStencil != 0 {
		rb := dev.renderbuffers[fb.depthStencil]
		if rb == nil || rb.width == 0 || rb.height == 0 {
			return gpu.StatusIncompleteAttachment
		}
		if w != -1 && (rb.width != w || rb.height != h) {
			return gpu.StatusIncompleteDimensions
		}
	}

	return gpu.StatusComplete
}

// Viewport implements the gpu.Device interface.
func (dev *Device) Viewport(x int32, y int32, width int32, height int32) {
	if width < 0 || height < 0 {
		dev.errorf("viewport with negative size (%dx%d)", width, height)
		return
	}
	dev.viewport = [4]int32{x, y, width, height}
}

// GetViewport implements the gpu.Device interface.
func (dev *Device) GetViewport() (int32, int32, int32, int32) {
	return dev.viewport[0], dev.viewport[1], dev.viewport[2], dev.viewport[3]
}

// SetDepthTest implements the gpu.Device interface.
func (dev *Device) SetDepthTest(enable bool) {
	dev.depthTest = enable
}

// DepthTest returns true if depth testing is enabled.
func (dev *Device) DepthTest() bool {
	return dev.depthTest
}

// SetWireframe implements the gpu.Device interface.
func (dev *Device) SetWireframe(enable bool) {
	dev.wireframe = enable
}

// Clear implements the gpu.Device interface.
func (dev *Device) Clear(col gpu.Color) {
	tgt, ok := dev.target()
	if !ok {
		dev.errorf("clear of incomplete framebuffer (%d)", dev.boundFramebuffer)
		return
	}

	c := toRGBA(col)
	if tgt.color != nil {
		pix := tgt.color.Pix
		for i := 0; i < len(pix); i += 4 {
			pix[i] = c.R
			pix[i+1] = c.G
			pix[i+2] = c.B
			pix[i+3] = c.A
		}
	}
	for i := range tgt.depth {
		tgt.depth[i] = 1.0
	}
}

// Present copies the default target to the front image.
func (dev *Device) Present() {
	copy(dev.front.Pix, dev.color.Pix)
	dev.stats.Frames++
}

// Front returns a copy of the most recently presented image.
func (dev *Device) Front() *image.RGBA {
	img := image.NewRGBA(dev.front.Bounds())
	copy(img.Pix, dev.front.Pix)
	return img
}

// Image returns a copy of the colour buffer of the framebuffer. For
// gpu.DefaultFramebuffer this is the back buffer of the default target, which
// is not necessarily what has been presented.
func (dev *Device) Image(id gpu.Framebuffer) (*image.RGBA, bool) {
	src := dev.colorImage(id)
	if src == nil {
		return nil, false
	}
	img := image.NewRGBA(src.Bounds())
	copy(img.Pix, src.Pix)
	return img, true
}

// Pixel returns the colour at x, y of the framebuffer's colour buffer. The
// coordinates follow OpenGL convention, with the origin at the bottom left.
func (dev *Device) Pixel(id gpu.Framebuffer, x int, y int) (color.RGBA, bool) {
	img := dev.colorImage(id)
	if img == nil {
		return color.RGBA{}, false
	}
	b := img.Bounds()
	if x < 0 || y < 0 || x >= b.Dx() || y >= b.Dy() {
		return color.RGBA{}, false
	}
	return img.RGBAAt(x, b.Dy()-1-y), true
}

func (dev *Device) colorImage(id gpu.Framebuffer) *image.RGBA {
	if id == gpu.DefaultFramebuffer {
		return dev.color
	}
	fb := dev.framebuffers[id]
	if fb == nil {
		return nil
	}
	if t := dev.textures[fb.color]; t != nil {
		return t.img
	}
	return nil
}

// Draws returns the draw calls made since the last call to ResetDraws().
func (dev *Device) Draws() []DrawCall {
	return append([]DrawCall(nil), dev.draws...)
}

// ResetDraws forgets all recorded draw calls.
func (dev *Device) ResetDraws() {
	dev.draws = dev.draws[:0]
}

// Stats returns object lifetime statistics.
func (dev *Device) Stats() Stats {
	return dev.stats
}

func toRGBA(col gpu.Color) color.RGBA {
	return color.RGBA{
		R: toByte(col.R),
		G: toByte(col.G),
		B: toByte(col.B),
		A: toByte(col.A),
	}
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
