package main

import (
	"fmt"
	"runtime"
	"time"

	gl "github.com/go-gl/gl/v3.1/gles2"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/cellux/infiniboard/internal/frame"
)

const (
	screenWidth  = 800
	screenHeight = 600
	screenZoom   = 0.99

	// drawCost is the time kept free for rendering before each vsync.
	drawCost = 4 * time.Millisecond
	// sampleEvery sets how often frame timing is logged.
	sampleEvery = 256
)

func init() {
	runtime.LockOSThread()
}

type glfwClock struct{}

func (glfwClock) Now() time.Duration {
	return time.Duration(glfw.GetTime() * float64(time.Second))
}

func GetTime() float64 {
	return glfw.GetTime()
}

type GlfwApp interface {
	Init() error
	IsRunning() bool
	OnKey(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey)
	OnCursorPos(x, y float64)
	OnMouseButton(button glfw.MouseButton, action glfw.Action, x, y float64)
	DispatchEvents() error
	Render() error
	Close() error
}

type glfwSurface struct {
	window *glfw.Window
	app    GlfwApp
}

func (s glfwSurface) SwapBuffers() {
	s.window.SwapBuffers()
}

func (s glfwSurface) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
	glCheck()
}

func (s glfwSurface) WaitEventsTimeout(timeout time.Duration) {
	glfw.WaitEventsTimeout(timeout.Seconds())
}

func (s glfwSurface) PollEvents() {
	glfw.PollEvents()
}

func (s glfwSurface) Finish() {
	gl.Finish()
	glCheck()
}

func (s glfwSurface) ShouldClose() bool {
	return s.window.ShouldClose() || !s.app.IsRunning()
}

func refreshPeriod(monitor *glfw.Monitor) (time.Duration, error) {
	if monitor == nil {
		return 0, fmt.Errorf("no monitors found")
	}
	mode := monitor.GetVideoMode()
	if mode == nil {
		return 0, fmt.Errorf("video mode cannot be determined")
	}
	if mode.RefreshRate <= 0 {
		return 0, fmt.Errorf("invalid refresh rate: %d", mode.RefreshRate)
	}
	return time.Second / time.Duration(mode.RefreshRate), nil
}

func WithGL(windowTitle string, app GlfwApp) error {
	err := glfw.Init()
	if err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	period, err := refreshPeriod(glfw.GetPrimaryMonitor())
	if err != nil {
		return err
	}
	logger.Info("display", "T", period)

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 0)
	window, err := glfw.CreateWindow(screenWidth, screenHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		app.OnKey(key, scancode, action, mods)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		app.OnCursorPos(x, y)
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		x, y := w.GetCursorPos()
		app.OnMouseButton(button, action, x, y)
	})
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	glfw.SwapInterval(1)
	width, height := window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(0, 0, 0, 1)

	if err := app.Init(); err != nil {
		app.Close()
		return err
	}
	defer app.Close()

	scheduler := &frame.Scheduler{
		Clock:       glfwClock{},
		Surface:     glfwSurface{window: window, app: app},
		Period:      period,
		DrawCost:    drawCost,
		SampleEvery: sampleEvery,
		Logger:      logger,
	}
	return scheduler.Run(app)
}
