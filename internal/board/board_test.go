package board

import (
	"errors"
	"math/cmplx"
	"testing"

	"github.com/cellux/infiniboard/internal/poincare"
)

var testViewport = Viewport{Width: 800, Height: 600, Zoom: 0.99}

func near(a, b Point) bool {
	return cmplx.Abs(complex128(a-b)) < 1e-5
}

// recordingDevice keeps its own copy of everything written to it.
type recordingDevice struct {
	mem    []Point
	writes int
}

func (d *recordingDevice) Write(offset int, pts []Point) {
	for len(d.mem) < offset+len(pts) {
		d.mem = append(d.mem, 0)
	}
	copy(d.mem[offset:], pts)
	d.writes++
}

func TestScreenToBoardCentre(t *testing.T) {
	viewports := []Viewport{
		testViewport,
		{Width: 1920, Height: 1080, Zoom: 0.5},
		{Width: 300, Height: 900, Zoom: 0.9},
	}
	for _, vp := range viewports {
		got := vp.ScreenToBoard(float64(vp.Width)/2, float64(vp.Height)/2)
		if got != 0 {
			t.Errorf("%+v: centre maps to %v, want 0", vp, got)
		}
	}
}

func TestScreenToBoardDeterministic(t *testing.T) {
	for _, xy := range [][2]float64{{0, 0}, {12.5, 599}, {799, 1}, {400, 300}} {
		a := testViewport.ScreenToBoard(xy[0], xy[1])
		b := testViewport.ScreenToBoard(xy[0], xy[1])
		if a != b {
			t.Errorf("ScreenToBoard(%v) gave %v then %v", xy, a, b)
		}
	}
}

func TestScreenToBoardOrientation(t *testing.T) {
	right := testViewport.ScreenToBoard(500, 300)
	if real(right) <= 0 || imag(right) != 0 {
		t.Errorf("right of centre = %v", right)
	}
	up := testViewport.ScreenToBoard(400, 0)
	if imag(up) <= 1 || real(up) != 0 {
		t.Errorf("top edge = %v, want imag slightly above 1", up)
	}
}

func TestStrokeBufferAppend(t *testing.T) {
	dev := &recordingDevice{}
	b := NewStrokeBuffer(10, dev)
	segs := [][2]Point{{0, 0.1}, {0.1, 0.2i}, {-0.3, 0.4 - 0.1i}, {0.5, 0.5}, {0, 0}}
	for i, s := range segs {
		if err := b.Append(s[0], s[1]); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if b.Len() != 2*(i+1) {
			t.Fatalf("after %d appends Len = %d", i+1, b.Len())
		}
	}
	for i, s := range segs {
		p0, p1 := b.Segment(i)
		if p0 != s[0] || p1 != s[1] {
			t.Errorf("segment %d = (%v, %v), want %v", i, p0, p1, s)
		}
	}
	if dev.writes != len(segs) {
		t.Errorf("device writes = %d, want %d", dev.writes, len(segs))
	}
	if len(dev.mem) != b.Len() {
		t.Fatalf("device holds %d points, host %d", len(dev.mem), b.Len())
	}
	for i, p := range b.Points() {
		if dev.mem[i] != p {
			t.Errorf("device[%d] = %v, host %v", i, dev.mem[i], p)
		}
	}

	err := b.Append(1, 1)
	if !errors.Is(err, ErrCapacity) {
		t.Fatalf("append past capacity: err = %v, want ErrCapacity", err)
	}
	if b.Len() != 10 || dev.writes != len(segs) {
		t.Errorf("failed append changed state: Len = %d, writes = %d", b.Len(), dev.writes)
	}
}

func TestStrokeBufferOddCapacity(t *testing.T) {
	b := NewStrokeBuffer(3, nil)
	if err := b.Append(0, 1); err != nil {
		t.Fatal(err)
	}
	if err := b.Append(1, 2); !errors.Is(err, ErrCapacity) {
		t.Errorf("err = %v, want ErrCapacity", err)
	}
}

func TestCapacityFor(t *testing.T) {
	if PointSize != 8 {
		t.Fatalf("PointSize = %d, want 8", PointSize)
	}
	if got := CapacityFor(16 << 20); got != 2<<20 {
		t.Errorf("CapacityFor(16MiB) = %d", got)
	}
}

func TestTransitionTable(t *testing.T) {
	const x, y = 123, 456
	events := map[string]Event{
		"left press":     ButtonEvent{Button: ButtonLeft, Action: Press, X: x, Y: y},
		"left release":   ButtonEvent{Button: ButtonLeft, Action: Release, X: x, Y: y},
		"middle press":   ButtonEvent{Button: ButtonMiddle, Action: Press, X: x, Y: y},
		"middle release": ButtonEvent{Button: ButtonMiddle, Action: Release, X: x, Y: y},
		"right press":    ButtonEvent{Button: ButtonRight, Action: Press, X: x, Y: y},
		"right release":  ButtonEvent{Button: ButtonRight, Action: Release, X: x, Y: y},
		"move":           Move{X: x, Y: y},
	}
	enabled := map[Tool]map[string]Tool{
		Idle:    {"left press": Drawing, "middle press": Panning},
		Panning: {"middle release": Idle, "move": Panning},
		Drawing: {"left release": Idle, "move": Drawing},
	}
	for _, from := range []Tool{Idle, Panning, Drawing} {
		for name, ev := range events {
			start := Machine{Tool: from, Start: 0.25}
			next, effects := Step(testViewport, start, ev)
			if want, ok := enabled[from][name]; ok {
				if next.Tool != want {
					t.Errorf("%v + %s: tool = %v, want %v", from, name, next.Tool, want)
				}
				continue
			}
			if next != start || len(effects) != 0 {
				t.Errorf("%v + %s: got %+v %v, want no-op", from, name, next, effects)
			}
		}
	}
}

func TestIgnoredEventsLeaveSessionUnchanged(t *testing.T) {
	s := NewSession(testViewport, NewStrokeBuffer(64, nil))
	ignored := []Event{
		ButtonEvent{Button: ButtonLeft, Action: Release, X: 10, Y: 10},
		ButtonEvent{Button: ButtonMiddle, Action: Release, X: 10, Y: 10},
		ButtonEvent{Button: ButtonRight, Action: Press, X: 10, Y: 10},
		Move{X: 700, Y: 20},
	}
	for _, ev := range ignored {
		if err := s.Handle(ev); err != nil {
			t.Fatal(err)
		}
		if s.Tool() != Idle || s.Pan() != 0 || s.Strokes().Len() != 0 {
			t.Fatalf("after %+v: tool %v pan %v len %d", ev, s.Tool(), s.Pan(), s.Strokes().Len())
		}
	}

	// a second press while drawing is ignored
	if err := s.Handle(ButtonEvent{Button: ButtonLeft, Action: Press, X: 400, Y: 300}); err != nil {
		t.Fatal(err)
	}
	if err := s.Handle(ButtonEvent{Button: ButtonMiddle, Action: Press, X: 600, Y: 100}); err != nil {
		t.Fatal(err)
	}
	if s.Tool() != Drawing || s.Pan() != 0 {
		t.Errorf("middle press while drawing: tool %v pan %v", s.Tool(), s.Pan())
	}
}

func TestDrawScenario(t *testing.T) {
	s := NewSession(testViewport, NewStrokeBuffer(64, nil))
	steps := []Event{
		ButtonEvent{Button: ButtonLeft, Action: Press, X: 400, Y: 300},
		Move{X: 500, Y: 300},
		ButtonEvent{Button: ButtonLeft, Action: Release, X: 500, Y: 300},
	}
	if err := s.Handle(steps[0]); err != nil {
		t.Fatal(err)
	}
	if s.Tool() != Drawing || s.Strokes().Len() != 0 {
		t.Fatalf("after press: tool %v len %d", s.Tool(), s.Strokes().Len())
	}
	if err := s.Handle(steps[1]); err != nil {
		t.Fatal(err)
	}
	dx := Point(complex(float32(100)/300/0.99, 0))
	if s.Strokes().Len() != 2 {
		t.Fatalf("after move: len %d, want 2", s.Strokes().Len())
	}
	p0, p1 := s.Strokes().Segment(0)
	if p0 != 0 || !near(p1, dx) {
		t.Errorf("first segment = (%v, %v), want (0, %v)", p0, p1, dx)
	}
	if err := s.Handle(steps[2]); err != nil {
		t.Fatal(err)
	}
	if s.Tool() != Idle || s.Strokes().Len() != 4 {
		t.Fatalf("after release: tool %v len %d", s.Tool(), s.Strokes().Len())
	}
	p0, p1 = s.Strokes().Segment(1)
	if p0 != p1 || !near(p0, dx) {
		t.Errorf("closing segment = (%v, %v), want zero length at %v", p0, p1, dx)
	}
}

func TestDragMakesConsecutiveSegments(t *testing.T) {
	s := NewSession(testViewport, NewStrokeBuffer(64, nil))
	events := []Event{
		ButtonEvent{Button: ButtonLeft, Action: Press, X: 100, Y: 100},
		Move{X: 150, Y: 120},
		Move{X: 220, Y: 160},
		Move{X: 300, Y: 250},
		ButtonEvent{Button: ButtonLeft, Action: Release, X: 310, Y: 260},
	}
	for _, ev := range events {
		if err := s.Handle(ev); err != nil {
			t.Fatal(err)
		}
	}
	if n := s.Strokes().Len() / 2; n != 4 {
		t.Fatalf("segments = %d, want 4", n)
	}
	for i := 1; i < 4; i++ {
		_, prevEnd := s.Strokes().Segment(i - 1)
		start, _ := s.Strokes().Segment(i)
		if prevEnd != start {
			t.Errorf("segment %d starts at %v, previous ends at %v", i, start, prevEnd)
		}
	}
}

func TestPanScenario(t *testing.T) {
	s := NewSession(testViewport, NewStrokeBuffer(64, nil))
	if err := s.Handle(ButtonEvent{Button: ButtonMiddle, Action: Press, X: 450, Y: 250}); err != nil {
		t.Fatal(err)
	}
	if want := testViewport.ScreenToBoard(450, 250); s.Tool() != Panning || s.Pan() != want {
		t.Fatalf("after press: tool %v pan %v, want pan %v", s.Tool(), s.Pan(), want)
	}
	if err := s.Handle(Move{X: 380, Y: 330}); err != nil {
		t.Fatal(err)
	}
	if want := testViewport.ScreenToBoard(380, 330); s.Pan() != want {
		t.Errorf("after move: pan %v, want %v", s.Pan(), want)
	}
	if err := s.Handle(ButtonEvent{Button: ButtonLeft, Action: Release, X: 0, Y: 0}); err != nil {
		t.Fatal(err)
	}
	if s.Tool() != Panning {
		t.Errorf("left release while panning changed tool to %v", s.Tool())
	}
	if err := s.Handle(ButtonEvent{Button: ButtonMiddle, Action: Release, X: 380, Y: 330}); err != nil {
		t.Fatal(err)
	}
	if s.Tool() != Idle || s.Strokes().Len() != 0 {
		t.Errorf("after release: tool %v len %d", s.Tool(), s.Strokes().Len())
	}
}

func TestStoredStrokesArePanInvariant(t *testing.T) {
	s := NewSession(testViewport, NewStrokeBuffer(64, nil))
	for _, ev := range []Event{
		ButtonEvent{Button: ButtonMiddle, Action: Press, X: 480, Y: 220},
		ButtonEvent{Button: ButtonMiddle, Action: Release, X: 480, Y: 220},
		ButtonEvent{Button: ButtonLeft, Action: Press, X: 300, Y: 350},
		Move{X: 360, Y: 410},
	} {
		if err := s.Handle(ev); err != nil {
			t.Fatal(err)
		}
	}
	pan := s.Pan()
	if pan == 0 {
		t.Fatal("pan not set")
	}
	b0 := testViewport.ScreenToBoard(300, 350)
	b1 := testViewport.ScreenToBoard(360, 410)

	// the same segment drawn unpanned on geometry already moved by -pan
	ref := NewSession(testViewport, NewStrokeBuffer(64, nil))
	if err := ref.appendSegment(poincare.Translate(-pan, b0), poincare.Translate(-pan, b1)); err != nil {
		t.Fatal(err)
	}
	got0, got1 := s.Strokes().Segment(0)
	want0, want1 := ref.Strokes().Segment(0)
	if got0 != want0 || got1 != want1 {
		t.Errorf("stored (%v, %v), want (%v, %v)", got0, got1, want0, want1)
	}

	// re-applying the live pan brings the points back under the cursor
	if !near(poincare.Translate(pan, got0), b0) || !near(poincare.Translate(pan, got1), b1) {
		t.Errorf("rendered (%v, %v), want (%v, %v)",
			poincare.Translate(pan, got0), poincare.Translate(pan, got1), b0, b1)
	}
}

func TestSessionReportsCapacity(t *testing.T) {
	s := NewSession(testViewport, NewStrokeBuffer(4, nil))
	events := []Event{
		ButtonEvent{Button: ButtonLeft, Action: Press, X: 400, Y: 300},
		Move{X: 410, Y: 300},
		Move{X: 420, Y: 300},
	}
	for _, ev := range events {
		if err := s.Handle(ev); err != nil {
			t.Fatal(err)
		}
	}
	err := s.Handle(Move{X: 430, Y: 300})
	if !errors.Is(err, ErrCapacity) {
		t.Fatalf("err = %v, want ErrCapacity", err)
	}
	if s.Strokes().Len() != 4 {
		t.Errorf("Len = %d after overflow", s.Strokes().Len())
	}
}

func TestToolString(t *testing.T) {
	for tool, want := range map[Tool]string{Idle: "idle", Panning: "pan", Drawing: "draw", Tool(7): "Tool(7)"} {
		if got := tool.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(tool), got, want)
		}
	}
}
