package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/cellux/infiniboard/internal/board"
	"github.com/cellux/infiniboard/internal/keys"
	"github.com/cellux/infiniboard/internal/poincare"
)

const (
	// strokeMemory is the device memory reserved for strokes.
	strokeMemory = 16 << 20

	tilingP       = 3
	tilingQ       = 7
	tilingDepth   = 5
	tilingSamples = 6
)

type App struct {
	viewport   board.Viewport
	session    *board.Session
	lines      *LineRenderer
	strokes    *glStrokeDevice
	hud        *HUD
	showHUD    bool
	keyMap     *keys.KeyMap
	shouldExit bool
	// events collects input delivered by glfw callbacks until the next
	// DispatchEvents call.
	events     []board.Event
	lastRender float64
	frameTime  float64
}

func CreateApp() *App {
	return &App{
		viewport: board.Viewport{
			Width:  screenWidth,
			Height: screenHeight,
			Zoom:   screenZoom,
		},
		events: make([]board.Event, 0, 256),
	}
}

func (app *App) Init() error {
	tiling, err := poincare.Tiling(tilingP, tilingQ, tilingDepth, tilingSamples)
	if err != nil {
		return err
	}
	logger.Debug("background tiling", "points", len(tiling))
	lines, err := CreateLineRenderer(app.viewport, tiling)
	if err != nil {
		return err
	}
	app.lines = lines

	capacity := board.CapacityFor(strokeMemory)
	strokes, err := createStrokeDevice(capacity)
	if err != nil {
		return err
	}
	app.strokes = strokes
	app.session = board.NewSession(app.viewport, board.NewStrokeBuffer(capacity, strokes))
	logger.Debug("stroke buffer", "capacity", capacity)

	hud, err := CreateHUD()
	if err != nil {
		return err
	}
	app.hud = hud

	keyMap := keys.New()
	keyMap.BindAnyMods("q", app.Quit)
	keyMap.BindAnyMods("Escape", app.Quit)
	keyMap.Bind("F1", app.ToggleHUD)
	keyMap.Bind("C-c", app.CopyStatus)
	app.keyMap = keyMap
	return nil
}

func (app *App) IsRunning() bool {
	return !app.shouldExit
}

func (app *App) Quit() {
	app.shouldExit = true
}

func (app *App) ToggleHUD() {
	app.showHUD = !app.showHUD
}

func (app *App) CopyStatus() {
	if err := clipboard.WriteAll(StatusLine(app.session, app.frameTime)); err != nil {
		logger.Warn("clipboard", "error", err)
	}
}

func (app *App) OnKey(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	app.keyMap.HandleKey(baseKeyName(key, scancode), keyMods(mods))
}

func (app *App) OnCursorPos(x, y float64) {
	app.events = append(app.events, board.Move{X: x, Y: y})
}

func (app *App) OnMouseButton(button glfw.MouseButton, action glfw.Action, x, y float64) {
	var b board.Button
	switch button {
	case glfw.MouseButtonLeft:
		b = board.ButtonLeft
	case glfw.MouseButtonRight:
		b = board.ButtonRight
	case glfw.MouseButtonMiddle:
		b = board.ButtonMiddle
	default:
		return
	}
	var a board.Action
	switch action {
	case glfw.Press:
		a = board.Press
	case glfw.Release:
		a = board.Release
	default:
		return
	}
	app.events = append(app.events, board.ButtonEvent{Button: b, Action: a, X: x, Y: y})
}

func (app *App) DispatchEvents() error {
	events := app.events
	app.events = app.events[:0]
	for _, ev := range events {
		prev := app.session.Tool()
		if err := app.session.Handle(ev); err != nil {
			return fmt.Errorf("handle %T: %w", ev, err)
		}
		if tool := app.session.Tool(); tool != prev {
			logger.Debug("tool", "from", prev, "to", tool)
		}
	}
	return nil
}

func (app *App) Render() error {
	now := GetTime()
	if app.lastRender > 0 {
		app.frameTime = now - app.lastRender
	}
	app.lastRender = now
	app.lines.Render(app.session.Pan(), app.strokes, app.session.Strokes().Len())
	if app.showHUD {
		width, height := glfw.GetCurrentContext().GetFramebufferSize()
		app.hud.Render(StatusLine(app.session, app.frameTime), Size{X: width, Y: height})
	}
	return nil
}

func (app *App) Close() error {
	logger.Debug("Close")
	if app.hud != nil {
		app.hud.Close()
	}
	if app.strokes != nil {
		app.strokes.Close()
	}
	if app.lines != nil {
		app.lines.Close()
	}
	return nil
}
