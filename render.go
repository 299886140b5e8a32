package main

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v3.1/gles2"

	"github.com/cellux/infiniboard/internal/board"
	"github.com/cellux/infiniboard/internal/poincare"
)

const (
	// lineVertexShader moves every vertex by the pan translation
	// (z + pan) / (1 + conj(pan) z) and fits the disk into the window.
	lineVertexShader = `
    precision highp float;
    attribute vec2 position;
    uniform vec2 pan;
    uniform float screen_ratio;
    uniform float screen_zoom;
    vec2 cmul(vec2 a, vec2 b) {
      return vec2(a.x*b.x - a.y*b.y, a.x*b.y + a.y*b.x);
    }
    vec2 cdiv(vec2 a, vec2 b) {
      return vec2(a.x*b.x + a.y*b.y, a.y*b.x - a.x*b.y) / dot(b, b);
    }
    void main(void) {
      vec2 z = cdiv(position + pan, vec2(1.0, 0.0) + cmul(vec2(pan.x, -pan.y), position));
      gl_Position = vec4(z.x * screen_zoom / screen_ratio, z.y * screen_zoom, 0.0, 1.0);
    }` + "\x00"
	lineFragmentShader = `
    precision mediump float;
    void main(void) {
      gl_FragColor = vec4(1.0);
    }` + "\x00"
)

// glStrokeDevice is the device side of the stroke buffer: one buffer
// allocated for the full capacity up front.
type glStrokeDevice struct {
	buf Buffer
}

func createStrokeDevice(capacity int) (*glStrokeDevice, error) {
	buf, err := CreateBuffer(capacity*board.PointSize, nil, gl.DYNAMIC_DRAW)
	if err != nil {
		return nil, fmt.Errorf("stroke buffer: %w", err)
	}
	return &glStrokeDevice{buf: buf}, nil
}

func (d *glStrokeDevice) Write(offset int, pts []board.Point) {
	if len(pts) == 0 {
		return
	}
	d.buf.Update(offset*board.PointSize, len(pts)*board.PointSize, unsafe.Pointer(&pts[0]))
}

func (d *glStrokeDevice) Close() error {
	return d.buf.Close()
}

// LineRenderer draws the background tiling and the strokes with the same
// program; only the vertex buffer changes between the two draws.
type LineRenderer struct {
	program       Program
	position      int32
	pan           int32
	screenRatio   int32
	screenZoom    int32
	background    Buffer
	backgroundLen int32
}

func CreateLineRenderer(vp board.Viewport, tiling []poincare.Point) (*LineRenderer, error) {
	if len(tiling) == 0 {
		return nil, fmt.Errorf("empty background tiling")
	}
	program, err := CreateProgram(lineVertexShader, lineFragmentShader)
	if err != nil {
		return nil, err
	}
	background, err := CreateBuffer(len(tiling)*board.PointSize, unsafe.Pointer(&tiling[0]), gl.STATIC_DRAW)
	if err != nil {
		program.Close()
		return nil, fmt.Errorf("background buffer: %w", err)
	}
	lr := &LineRenderer{
		program:       program,
		position:      program.GetAttribLocation("position\x00"),
		pan:           program.GetUniformLocation("pan\x00"),
		screenRatio:   program.GetUniformLocation("screen_ratio\x00"),
		screenZoom:    program.GetUniformLocation("screen_zoom\x00"),
		background:    background,
		backgroundLen: int32(len(tiling)),
	}
	if lr.position < 0 {
		lr.Close()
		return nil, fmt.Errorf("line program has no position attribute")
	}
	program.Use()
	gl.Uniform1f(lr.screenRatio, vp.Ratio())
	gl.Uniform1f(lr.screenZoom, vp.Zoom)
	glCheck()
	return lr, nil
}

func (lr *LineRenderer) drawLines(buf Buffer, count int32) {
	if count == 0 {
		return
	}
	buf.Bind()
	gl.VertexAttribPointer(uint32(lr.position), 2, gl.FLOAT, false, 0, nil)
	gl.DrawArrays(gl.LINES, 0, count)
}

// Render draws the tiling and the first count points of strokes as seen
// with the given pan offset.
func (lr *LineRenderer) Render(pan board.Point, strokes *glStrokeDevice, count int) {
	lr.program.Use()
	gl.Uniform2f(lr.pan, real(pan), imag(pan))
	gl.EnableVertexAttribArray(uint32(lr.position))
	lr.drawLines(lr.background, lr.backgroundLen)
	lr.drawLines(strokes.buf, int32(count))
	gl.DisableVertexAttribArray(uint32(lr.position))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	glCheck()
}

func (lr *LineRenderer) Close() error {
	lr.background.Close()
	return lr.program.Close()
}
