package board

import "github.com/cellux/infiniboard/internal/poincare"

// Session is the mutable state of one board: tool, pan offset and strokes.
// It is not safe for concurrent use; the frame loop owns it.
type Session struct {
	viewport Viewport
	machine  Machine
	pan      Point
	strokes  *StrokeBuffer
}

func NewSession(vp Viewport, strokes *StrokeBuffer) *Session {
	return &Session{
		viewport: vp,
		strokes:  strokes,
	}
}

func (s *Session) Tool() Tool {
	return s.machine.Tool
}

func (s *Session) Pan() Point {
	return s.pan
}

func (s *Session) Strokes() *StrokeBuffer {
	return s.strokes
}

// Handle feeds one event through the state machine and applies its effects.
// The only possible error wraps ErrCapacity.
func (s *Session) Handle(ev Event) error {
	next, effects := Step(s.viewport, s.machine, ev)
	s.machine = next
	for _, e := range effects {
		switch e := e.(type) {
		case SetPan:
			s.pan = e.Pan
		case AppendSegment:
			if err := s.appendSegment(e.P0, e.P1); err != nil {
				return err
			}
		}
	}
	return nil
}

// appendSegment stores a view-space segment in board space by undoing the
// current pan.
func (s *Session) appendSegment(p0, p1 Point) error {
	return s.strokes.Append(
		poincare.Translate(-s.pan, p0),
		poincare.Translate(-s.pan, p1),
	)
}
