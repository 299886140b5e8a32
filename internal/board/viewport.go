// Package board holds the drawing state of the hyperbolic board: the
// screen-to-board transform, the tool state machine and the append-only
// stroke buffer.
package board

import "github.com/cellux/infiniboard/internal/poincare"

type Point = poincare.Point

// Viewport describes the window the disk is shown in. Zoom < 1 insets the
// disk from the top and bottom edges.
type Viewport struct {
	Width  int
	Height int
	Zoom   float32
}

// Ratio is the aspect ratio passed to the line shader.
func (v Viewport) Ratio() float32 {
	return float32(v.Width) / float32(v.Height)
}

// ScreenToBoard converts window coordinates (origin top-left, y down) to
// board coordinates (origin centre, y up, half height = 1/Zoom).
func (v Viewport) ScreenToBoard(x, y float64) Point {
	halfW := float32(v.Width) / 2
	halfH := float32(v.Height) / 2
	re := (float32(x) - halfW) / halfH / v.Zoom
	im := -(float32(y) - halfH) / halfH / v.Zoom
	return complex(re, im)
}
