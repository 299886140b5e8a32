package frame

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// durationWindow keeps the most recent n durations, in milliseconds.
type durationWindow struct {
	ms   []float64
	next int
	full bool
}

func newDurationWindow(n int) *durationWindow {
	if n < 1 {
		n = 1
	}
	return &durationWindow{ms: make([]float64, n)}
}

func (w *durationWindow) add(d time.Duration) {
	w.ms[w.next] = float64(d) / float64(time.Millisecond)
	w.next++
	if w.next == len(w.ms) {
		w.next = 0
		w.full = true
	}
}

func (w *durationWindow) values() []float64 {
	if w.full {
		return w.ms
	}
	return w.ms[:w.next]
}

// meanStdDev returns the mean and sample standard deviation of the window.
func (w *durationWindow) meanStdDev() (mean, stddev time.Duration) {
	v := w.values()
	switch len(v) {
	case 0:
		return 0, 0
	case 1:
		return fromMillis(v[0]), 0
	}
	m, s := stat.MeanStdDev(v, nil)
	return fromMillis(m), fromMillis(s)
}

func fromMillis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
