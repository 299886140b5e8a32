package main

import (
	"fmt"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v3.1/gles2"
)

type Texture struct {
	tex uint32
}

func (t Texture) Bind() {
	gl.BindTexture(gl.TEXTURE_2D, t.tex)
}

func CreateTexture() (Texture, error) {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	glCheck()
	return Texture{tex}, nil
}

func (t Texture) Close() error {
	if t.tex != 0 {
		gl.DeleteTextures(1, &t.tex)
	}
	return nil
}

// Buffer is a vertex buffer object in device memory.
type Buffer struct {
	buf uint32
}

// CreateBuffer allocates size bytes on the device, initialised from data
// unless data is nil.
func CreateBuffer(size int, data unsafe.Pointer, usage uint32) (Buffer, error) {
	if size <= 0 {
		return Buffer{}, fmt.Errorf("invalid buffer size: %d", size)
	}
	var buf uint32
	gl.GenBuffers(1, &buf)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf)
	gl.BufferData(gl.ARRAY_BUFFER, size, data, usage)
	if e := gl.GetError(); e == gl.OUT_OF_MEMORY {
		gl.DeleteBuffers(1, &buf)
		return Buffer{}, fmt.Errorf("cannot allocate %d bytes of device memory", size)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return Buffer{buf: buf}, nil
}

func (b Buffer) Bind() {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.buf)
}

// Update overwrites the bytes at offset.
func (b Buffer) Update(offset, size int, data unsafe.Pointer) {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.buf)
	gl.BufferSubData(gl.ARRAY_BUFFER, offset, size, data)
	glCheck()
}

func (b Buffer) Close() error {
	if b.buf != 0 {
		gl.DeleteBuffers(1, &b.buf)
	}
	return nil
}

type Shader struct {
	shader uint32
}

func GetShaderInfoLog(shader uint32) string {
	var length int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &length)
	if length == 0 {
		return ""
	}
	log := make([]uint8, length)
	var logLen int32
	gl.GetShaderInfoLog(shader, length, &logLen, &log[0])
	return string(log[:logLen])
}

func CreateShader(shaderType uint32, source string) (Shader, error) {
	shader := gl.CreateShader(shaderType)
	data := gl.Str(source)
	length := int32(len(strings.TrimSuffix(source, "\x00")))
	gl.ShaderSource(shader, 1, &data, &length)
	gl.CompileShader(shader)
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		infoLog := GetShaderInfoLog(shader)
		gl.DeleteShader(shader)
		return Shader{}, fmt.Errorf("shader compilation failed: %s", infoLog)
	}
	return Shader{shader}, nil
}

func (s Shader) Close() error {
	if s.shader != 0 {
		gl.DeleteShader(s.shader)
	}
	return nil
}

type Program struct {
	program        uint32
	vertexShader   Shader
	fragmentShader Shader
}

func GetProgramInfoLog(program uint32) string {
	var length int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &length)
	if length == 0 {
		return ""
	}
	log := make([]uint8, length)
	var logLen int32
	gl.GetProgramInfoLog(program, length, &logLen, &log[0])
	return string(log[:logLen])
}

func CreateProgram(vertexShader string, fragmentShader string) (Program, error) {
	vs, err := CreateShader(gl.VERTEX_SHADER, vertexShader)
	if err != nil {
		return Program{}, err
	}
	fs, err := CreateShader(gl.FRAGMENT_SHADER, fragmentShader)
	if err != nil {
		vs.Close()
		return Program{}, err
	}
	program := gl.CreateProgram()
	gl.AttachShader(program, vs.shader)
	gl.AttachShader(program, fs.shader)
	gl.LinkProgram(program)
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		infoLog := GetProgramInfoLog(program)
		gl.DeleteProgram(program)
		vs.Close()
		fs.Close()
		return Program{}, fmt.Errorf("program link failed: %s", infoLog)
	}
	return Program{program, vs, fs}, nil
}

func (p Program) GetAttribLocation(name string) int32 {
	return gl.GetAttribLocation(p.program, gl.Str(name))
}

func (p Program) GetUniformLocation(name string) int32 {
	return gl.GetUniformLocation(p.program, gl.Str(name))
}

func (p Program) Use() {
	gl.UseProgram(p.program)
}

func (p Program) Close() error {
	if err := p.vertexShader.Close(); err != nil {
		return err
	}
	if err := p.fragmentShader.Close(); err != nil {
		return err
	}
	if p.program != 0 {
		gl.DeleteProgram(p.program)
	}
	return nil
}
