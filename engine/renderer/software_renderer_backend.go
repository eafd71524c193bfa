package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/debug"

	"github.com/go-gl/mathgl/mgl32"
	xdraw "golang.org/x/image/draw"
)

// clipPlanes are the six homogeneous clip planes; a clip-space point p is inside when plane.Dot(p) >= 0.
var clipPlanes = [6]mgl32.Vec4{
	{1, 0, 0, 1},
	{-1, 0, 0, 1},
	{0, 1, 0, 1},
	{0, -1, 0, 1},
	{0, 0, 1, 1},
	{0, 0, -1, 1},
}

// softwareRendererBackend rasterizes lines into an RGBA image at supersample times the output size.
type softwareRendererBackend struct {
	width       int
	height      int
	supersample int
	lineWidth   float32
	clear       color.RGBA

	target *image.RGBA
	output *image.RGBA
}

var _ RendererBackend = &softwareRendererBackend{}

// newSoftwareRendererBackend creates the CPU line rasterizer.
//
// Parameters:
//   - width: the output width in pixels
//   - height: the output height in pixels
//   - ss: the per-axis supersample factor
//   - lineWidth: the line width in output pixels
//
// Returns:
//   - *softwareRendererBackend: the backend
func newSoftwareRendererBackend(width, height int, ss Supersample, lineWidth float32) *softwareRendererBackend {
	b := &softwareRendererBackend{
		supersample: int(ss),
		lineWidth:   lineWidth,
		clear:       color.RGBA{A: 0xff},
	}
	b.Resize(width, height)
	return b
}

func (b *softwareRendererBackend) BeginFrame() error {
	xdraw.Draw(b.target, b.target.Bounds(), &image.Uniform{C: b.clear}, image.Point{}, xdraw.Src)
	return nil
}

func (b *softwareRendererBackend) DrawLines(viewProj mgl32.Mat4, vertices []debug.LineVertex) {
	for i := 0; i+1 < len(vertices); i += 2 {
		b.drawSegment(viewProj, vertices[i], vertices[i+1])
	}
}

func (b *softwareRendererBackend) EndFrame() {
	if b.supersample == 1 {
		copy(b.output.Pix, b.target.Pix)
		return
	}
	xdraw.CatmullRom.Scale(b.output, b.output.Bounds(), b.target, b.target.Bounds(), xdraw.Src, nil)
}

func (b *softwareRendererBackend) Resize(width, height int) {
	b.width, b.height = width, height
	b.target = image.NewRGBA(image.Rect(0, 0, width*b.supersample, height*b.supersample))
	b.output = image.NewRGBA(image.Rect(0, 0, width, height))
}

func (b *softwareRendererBackend) SetClearColor(c mgl32.Vec4) {
	b.clear = toRGBA(c)
}

func (b *softwareRendererBackend) Snapshot() *image.RGBA {
	out := image.NewRGBA(b.output.Bounds())
	copy(out.Pix, b.output.Pix)
	return out
}

func (b *softwareRendererBackend) Release() {
	b.target, b.output = nil, nil
}

// drawSegment transforms one segment to clip space, clips it to the view volume, and rasterizes what is left.
func (b *softwareRendererBackend) drawSegment(viewProj mgl32.Mat4, va, vb debug.LineVertex) {
	p0 := viewProj.Mul4x1(va.Position.Vec4(1))
	p1 := viewProj.Mul4x1(vb.Position.Vec4(1))

	t0, t1, ok := clipSegment(p0, p1)
	if !ok {
		return
	}
	c0, c1 := common.Lerp4(p0, p1, t0), common.Lerp4(p0, p1, t1)
	if c0[3] <= 1e-6 || c1[3] <= 1e-6 {
		return
	}
	col0 := common.Lerp4(va.Color, vb.Color, t0)
	col1 := common.Lerp4(va.Color, vb.Color, t1)

	x0, y0 := b.toScreen(c0)
	x1, y1 := b.toScreen(c1)
	b.rasterize(x0, y0, x1, y1, col0, col1)
}

// clipSegment clips the clip-space segment p0-p1 against every clip plane.
//
// Returns:
//   - float32: the parameter where the visible part starts
//   - float32: the parameter where the visible part ends
//   - bool: false when no part of the segment is visible
func clipSegment(p0, p1 mgl32.Vec4) (float32, float32, bool) {
	t0, t1 := float32(0), float32(1)
	for _, plane := range clipPlanes {
		d0, d1 := plane.Dot(p0), plane.Dot(p1)
		switch {
		case d0 < 0 && d1 < 0:
			return 0, 0, false
		case d0 < 0:
			t0 = max(t0, d0/(d0-d1))
		case d1 < 0:
			t1 = min(t1, d0/(d0-d1))
		}
	}
	return t0, t1, t0 <= t1
}

// toScreen maps a clip-space point to target pixel coordinates with y pointing down.
func (b *softwareRendererBackend) toScreen(c mgl32.Vec4) (float32, float32) {
	w := float32(b.target.Rect.Dx())
	h := float32(b.target.Rect.Dy())
	nx, ny := c[0]/c[3], c[1]/c[3]
	return (nx*0.5 + 0.5) * w, (0.5 - ny*0.5) * h
}

// rasterize walks the segment one target pixel at a time, stamping a square of the line width.
func (b *softwareRendererBackend) rasterize(x0, y0, x1, y1 float32, c0, c1 mgl32.Vec4) {
	dx, dy := x1-x0, y1-y0
	steps := int(math.Ceil(float64(max(mgl32.Abs(dx), mgl32.Abs(dy)))))
	if steps == 0 {
		steps = 1
	}
	size := max(1, int(math.Round(float64(b.lineWidth)*float64(b.supersample))))
	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(steps)
		x := int(math.Floor(float64(x0+dx*t))) - (size-1)/2
		y := int(math.Floor(float64(y0+dy*t))) - (size-1)/2
		c := common.Lerp4(c0, c1, t)
		for sy := y; sy < y+size; sy++ {
			for sx := x; sx < x+size; sx++ {
				b.blend(sx, sy, c)
			}
		}
	}
}

// blend composites c over the target pixel at (x, y). Pixels outside the target are ignored.
func (b *softwareRendererBackend) blend(x, y int, c mgl32.Vec4) {
	if !(image.Point{X: x, Y: y}).In(b.target.Rect) {
		return
	}
	a := mgl32.Clamp(c[3], 0, 1)
	off := b.target.PixOffset(x, y)
	px := b.target.Pix[off : off+4 : off+4]
	for k := 0; k < 3; k++ {
		src := mgl32.Clamp(c[k], 0, 1) * 255
		px[k] = uint8(src*a + float32(px[k])*(1-a) + 0.5)
	}
	px[3] = uint8(255*a + float32(px[3])*(1-a) + 0.5)
}

// toRGBA converts a [0, 1] float color to 8-bit RGBA.
func toRGBA(c mgl32.Vec4) color.RGBA {
	conv := func(v float32) uint8 {
		return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
	}
	return color.RGBA{R: conv(c[0]), G: conv(c[1]), B: conv(c[2]), A: conv(c[3])}
}
