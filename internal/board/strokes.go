package board

import (
	"errors"
	"fmt"
	"unsafe"
)

var ErrCapacity = errors.New("stroke buffer full")

// PointSize is the size in bytes of one stored point, host and device side.
const PointSize = int(unsafe.Sizeof(Point(0)))

// CapacityFor returns how many points fit in a buffer of the given size.
func CapacityFor(bytes int) int {
	return bytes / PointSize
}

// Device mirrors the stroke buffer in GPU memory.
type Device interface {
	// Write stores pts starting at point index offset.
	Write(offset int, pts []Point)
}

// StrokeBuffer is a fixed-capacity, append-only list of segment endpoints.
// Every append goes to the host copy and to the device at the same offset.
type StrokeBuffer struct {
	points []Point
	dev    Device
}

func NewStrokeBuffer(capacity int, dev Device) *StrokeBuffer {
	return &StrokeBuffer{
		points: make([]Point, 0, capacity),
		dev:    dev,
	}
}

// Append stores one segment. It fails with ErrCapacity, writing nothing,
// when the segment does not fit.
func (b *StrokeBuffer) Append(p0, p1 Point) error {
	n := len(b.points)
	if n+2 > cap(b.points) {
		return fmt.Errorf("%w: %d of %d points used", ErrCapacity, n, cap(b.points))
	}
	b.points = append(b.points, p0, p1)
	if b.dev != nil {
		b.dev.Write(n, b.points[n:n+2])
	}
	return nil
}

// Len returns the number of stored points, twice the number of segments.
func (b *StrokeBuffer) Len() int {
	return len(b.points)
}

func (b *StrokeBuffer) Cap() int {
	return cap(b.points)
}

// Points returns the stored points. The slice must not be modified.
func (b *StrokeBuffer) Points() []Point {
	return b.points[:len(b.points):len(b.points)]
}

// Segment returns the i-th stored segment.
func (b *StrokeBuffer) Segment(i int) (Point, Point) {
	return b.points[2*i], b.points[2*i+1]
}
