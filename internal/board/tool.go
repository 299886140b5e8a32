package board

import "fmt"

type Tool int

const (
	Idle Tool = iota
	Panning
	Drawing
)

func (t Tool) String() string {
	switch t {
	case Idle:
		return "idle"
	case Panning:
		return "pan"
	case Drawing:
		return "draw"
	default:
		return fmt.Sprintf("Tool(%d)", int(t))
	}
}

type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

type Action int

const (
	Release Action = iota
	Press
)

// Event is an input event in window coordinates.
type Event interface {
	isEvent()
}

// Move reports the pointer moving to X, Y.
type Move struct {
	X, Y float64
}

// ButtonEvent reports a press or release; X, Y is the pointer position at
// the time the event was delivered.
type ButtonEvent struct {
	Button Button
	Action Action
	X, Y   float64
}

func (Move) isEvent()        {}
func (ButtonEvent) isEvent() {}

// Effect is a change to board state requested by a transition.
type Effect interface {
	isEffect()
}

// SetPan replaces the pan offset.
type SetPan struct {
	Pan Point
}

// AppendSegment asks for a segment from P0 to P1 to be stored. The points
// are in view space; the current pan has not been removed yet.
type AppendSegment struct {
	P0, P1 Point
}

func (SetPan) isEffect()        {}
func (AppendSegment) isEffect() {}

// Machine is the state of the interaction state machine.
type Machine struct {
	Tool Tool
	// Start is the open end of the stroke being drawn.
	Start Point
}

// Step applies one event. Events that have no transition from the current
// tool leave the machine unchanged and produce no effects.
func Step(vp Viewport, m Machine, ev Event) (Machine, []Effect) {
	switch ev := ev.(type) {
	case Move:
		p := vp.ScreenToBoard(ev.X, ev.Y)
		switch m.Tool {
		case Panning:
			return m, []Effect{SetPan{Pan: p}}
		case Drawing:
			seg := AppendSegment{P0: m.Start, P1: p}
			m.Start = p
			return m, []Effect{seg}
		}
	case ButtonEvent:
		p := vp.ScreenToBoard(ev.X, ev.Y)
		switch m.Tool {
		case Idle:
			if ev.Action != Press {
				break
			}
			switch ev.Button {
			case ButtonMiddle:
				return Machine{Tool: Panning}, []Effect{SetPan{Pan: p}}
			case ButtonLeft:
				return Machine{Tool: Drawing, Start: p}, nil
			}
		case Panning:
			if ev.Action == Release && ev.Button == ButtonMiddle {
				return Machine{Tool: Idle}, nil
			}
		case Drawing:
			if ev.Action == Release && ev.Button == ButtonLeft {
				return Machine{Tool: Idle}, []Effect{AppendSegment{P0: m.Start, P1: p}}
			}
		}
	}
	return m, nil
}
