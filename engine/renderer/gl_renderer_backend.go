package renderer

import (
	_ "embed"
	"image"
	"log"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/debug"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

//go:embed shaders/lines.vert
var lineVertexShader string

//go:embed shaders/lines.frag
var lineFragmentShader string

// glRendererBackend draws line lists with a single streamed vertex buffer.
type glRendererBackend struct {
	width  int
	height int
	clear  mgl32.Vec4

	program        uint32
	vertexShader   uint32
	fragmentShader uint32
	uViewProj      int32

	vao uint32
	vbo uint32
	// vboSize is the current buffer store size in bytes; the store only grows.
	vboSize int
}

var _ RendererBackend = &glRendererBackend{}

// newGLRendererBackend initializes OpenGL on the current context and builds the line program.
//
// Parameters:
//   - width: the framebuffer width in pixels
//   - height: the framebuffer height in pixels
//   - lineWidth: the requested line width (core profiles may only honor 1)
//
// Returns:
//   - *glRendererBackend: the backend
//   - error: an error if OpenGL or the shaders fail to initialize
func newGLRendererBackend(width, height int, lineWidth float32) (*glRendererBackend, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "renderer: init opengl")
	}
	log.Printf("[Renderer] OpenGL %s, %s", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))

	b := &glRendererBackend{}
	if err := b.loadProgram(lineVertexShader, lineFragmentShader); err != nil {
		return nil, err
	}
	b.uViewProj = gl.GetUniformLocation(b.program, gl.Str("uViewProj\x00"))

	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	stride := int32(unsafe.Sizeof(debug.LineVertex{}))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, unsafe.Offsetof(debug.LineVertex{}.Position))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, stride, unsafe.Offsetof(debug.LineVertex{}.Color))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.LineWidth(lineWidth)

	b.Resize(width, height)
	return b, nil
}

// loadProgram compiles and links the vertex and fragment shaders into b.program.
func (b *glRendererBackend) loadProgram(vertexText, fragmentText string) error {
	vs, err := compileShader(gl.VERTEX_SHADER, vertexText)
	if err != nil {
		return errors.Wrap(err, "vertex shader")
	}
	fs, err := compileShader(gl.FRAGMENT_SHADER, fragmentText)
	if err != nil {
		gl.DeleteShader(vs)
		return errors.Wrap(err, "fragment shader")
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var linked int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &linked)
	if linked == gl.FALSE {
		var logSize int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logSize)
		buf := make([]uint8, logSize+1)
		gl.GetProgramInfoLog(program, int32(len(buf)), &logSize, &buf[0])
		gl.DeleteProgram(program)
		gl.DeleteShader(vs)
		gl.DeleteShader(fs)
		return errors.Errorf("renderer: link program: %q", string(buf[:logSize]))
	}

	b.program, b.vertexShader, b.fragmentShader = program, vs, fs
	return nil
}

// compileShader compiles a single shader stage.
func compileShader(xtype uint32, text string) (uint32, error) {
	shader := gl.CreateShader(xtype)
	csource, free := gl.Strs(text + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var ok int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &ok)
	if ok == gl.FALSE {
		var logSize int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logSize)
		buf := make([]uint8, logSize+1)
		gl.GetShaderInfoLog(shader, int32(len(buf)), &logSize, &buf[0])
		gl.DeleteShader(shader)
		return 0, errors.Errorf("renderer: compile shader: %q", string(buf[:logSize]))
	}
	return shader, nil
}

func (b *glRendererBackend) BeginFrame() error {
	gl.Viewport(0, 0, int32(b.width), int32(b.height))
	gl.ClearColor(b.clear[0], b.clear[1], b.clear[2], b.clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	return nil
}

func (b *glRendererBackend) DrawLines(viewProj mgl32.Mat4, vertices []debug.LineVertex) {
	data := common.SliceToBytes(vertices)

	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(data) > b.vboSize {
		gl.BufferData(gl.ARRAY_BUFFER, len(data), gl.Ptr(data), gl.STREAM_DRAW)
		b.vboSize = len(data)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data), gl.Ptr(data))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.UseProgram(b.program)
	gl.UniformMatrix4fv(b.uViewProj, 1, false, &viewProj[0])
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.LINES, 0, int32(len(vertices)))
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// EndFrame flushes queued commands; the window presents the frame with SwapBuffers.
func (b *glRendererBackend) EndFrame() {
	gl.Flush()
}

func (b *glRendererBackend) Resize(width, height int) {
	b.width, b.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (b *glRendererBackend) SetClearColor(c mgl32.Vec4) {
	b.clear = c
}

// Snapshot reads the back buffer and flips it so row 0 is the top of the image.
func (b *glRendererBackend) Snapshot() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	if b.width == 0 || b.height == 0 {
		return img
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(b.width), int32(b.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	row := make([]byte, img.Stride)
	for top, bottom := 0, b.height-1; top < bottom; top, bottom = top+1, bottom-1 {
		t := img.Pix[top*img.Stride : (top+1)*img.Stride]
		btm := img.Pix[bottom*img.Stride : (bottom+1)*img.Stride]
		copy(row, t)
		copy(t, btm)
		copy(btm, row)
	}
	return img
}

func (b *glRendererBackend) Release() {
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DetachShader(b.program, b.vertexShader)
	gl.DetachShader(b.program, b.fragmentShader)
	gl.DeleteProgram(b.program)
	gl.DeleteShader(b.vertexShader)
	gl.DeleteShader(b.fragmentShader)
}
