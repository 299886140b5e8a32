// Package frame paces the render loop against the display refresh.
//
// Each iteration waits for the previous frame to be presented, spends
// everything but a fixed draw allowance of the refresh period on input, and
// then renders once. Input therefore shapes the next frame as late as
// possible while the draw still completes before the following vsync.
package frame

import (
	"log/slog"
	"time"
)

// Clock is a monotonic time source.
type Clock interface {
	Now() time.Duration
}

// Surface is the windowing side of the loop.
type Surface interface {
	// SwapBuffers presents the last rendered frame. Together with Clear
	// it blocks until that frame is on screen.
	SwapBuffers()
	Clear()
	// WaitEventsTimeout delivers pending input, waiting at most timeout
	// for some to arrive. It may return early.
	WaitEventsTimeout(timeout time.Duration)
	// PollEvents delivers pending input without blocking.
	PollEvents()
	// Finish blocks until all submitted draw commands are complete.
	Finish()
	ShouldClose() bool
}

// Handler is the application driven by the loop.
type Handler interface {
	// DispatchEvents handles input collected by the last wait.
	DispatchEvents() error
	Render() error
}

// Budget returns how long input may be processed in one refresh period
// when drawing takes drawCost. It is never negative.
func Budget(period, drawCost time.Duration) time.Duration {
	if d := period - drawCost; d > 0 {
		return d
	}
	return 0
}

// ProcessEventsFor waits for and dispatches events until at least d has
// elapsed. It returns the time actually spent. Input is dispatched at least
// once even when d leaves no time to wait.
func ProcessEventsFor(clock Clock, surface Surface, h Handler, d time.Duration) (time.Duration, error) {
	start := clock.Now()
	deadline := start + d
	for waited := false; ; waited = true {
		now := clock.Now()
		remaining := deadline - now
		if remaining <= 0 {
			if !waited {
				surface.PollEvents()
				if err := h.DispatchEvents(); err != nil {
					return clock.Now() - start, err
				}
			}
			return clock.Now() - start, nil
		}
		surface.WaitEventsTimeout(remaining)
		if err := h.DispatchEvents(); err != nil {
			return clock.Now() - start, err
		}
	}
}

// Stats describes one iteration of the loop.
type Stats struct {
	Frame     uint64
	Vsync     time.Duration
	Duration  time.Duration
	Events    time.Duration
	Draw      time.Duration
	Presented time.Duration
}

// Scheduler runs the frame loop.
type Scheduler struct {
	Clock   Clock
	Surface Surface
	// Period is the display refresh period.
	Period time.Duration
	// DrawCost is the time reserved for rendering before the next vsync.
	DrawCost time.Duration
	// SampleEvery sets how often timing samples are logged; 0 disables them.
	SampleEvery uint64
	Logger      *slog.Logger

	frames    uint64
	lastFrame time.Duration
	window    *durationWindow
}

// Run steps the loop until the surface asks to close or an iteration fails.
func (s *Scheduler) Run(h Handler) error {
	s.lastFrame = s.Clock.Now()
	for !s.Surface.ShouldClose() {
		if _, err := s.Step(h); err != nil {
			return err
		}
	}
	return nil
}

// Step runs one iteration: present, clear, process input, render, finish.
func (s *Scheduler) Step(h Handler) (Stats, error) {
	st := Stats{Frame: s.frames}
	t0 := s.Clock.Now()
	s.Surface.SwapBuffers()
	s.Surface.Clear()
	t1 := s.Clock.Now()
	st.Vsync = t1 - t0
	st.Duration = t1 - s.lastFrame
	st.Presented = t1
	s.lastFrame = t1
	s.frames++

	events, err := ProcessEventsFor(s.Clock, s.Surface, h, Budget(s.Period, s.DrawCost))
	st.Events = events
	if err != nil {
		return st, err
	}

	t2 := s.Clock.Now()
	if err := h.Render(); err != nil {
		return st, err
	}
	s.Surface.Finish()
	st.Draw = s.Clock.Now() - t2

	s.sample(st)
	return st, nil
}

func (s *Scheduler) sample(st Stats) {
	if s.SampleEvery == 0 || s.Logger == nil {
		return
	}
	if s.window == nil {
		s.window = newDurationWindow(int(s.SampleEvery))
	}
	if st.Frame > 0 {
		s.window.add(st.Duration)
	}
	if st.Frame%s.SampleEvery != 0 {
		return
	}
	mean, stddev := s.window.meanStdDev()
	s.Logger.Debug("frame timing",
		"frame", st.Frame,
		"vsync", st.Vsync,
		"duration", st.Duration,
		"events", st.Events,
		"draw", st.Draw,
		"mean", mean,
		"stddev", stddev,
	)
}
