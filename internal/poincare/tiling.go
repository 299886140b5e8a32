package poincare

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

var ErrInvalidTiling = errors.New("invalid tiling")

// keyScale sets the resolution used to recognise tiles and edges reached
// along different paths.
const keyScale = 1e7

type pointKey struct {
	x, y int64
}

func keyOf(z complex128) pointKey {
	return pointKey{
		x: int64(math.Round(real(z) * keyScale)),
		y: int64(math.Round(imag(z) * keyScale)),
	}
}

// pointSet matches points up to rounding noise, including across the
// boundary of two grid cells.
type pointSet map[pointKey]bool

func (s pointSet) has(z complex128) bool {
	k := keyOf(z)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			if s[pointKey{k.x + dx, k.y + dy}] {
				return true
			}
		}
	}
	return false
}

func (s pointSet) add(z complex128) {
	s[keyOf(z)] = true
}

// circumradius returns the Euclidean distance from the origin to a vertex of
// the central p-gon of a {p,q} tiling.
func circumradius(p, q int) float64 {
	a := math.Pi / float64(p)
	b := math.Pi / float64(q)
	return math.Sqrt(math.Cos(a+b) / math.Cos(a-b))
}

// Tiling returns the edges of the regular {p,q} tiling (p-gons, q meeting at
// each vertex) as consecutive point pairs ready to be drawn as GL_LINES.
//
// The central polygon is layer 0; depth more layers are added by stepping
// across edges. Each geodesic edge is sampled at samples+1 points.
func Tiling(p, q, depth, samples int) ([]Point, error) {
	if p < 3 || q < 3 || (p-2)*(q-2) <= 4 {
		return nil, fmt.Errorf("%w: {%d,%d} is not hyperbolic", ErrInvalidTiling, p, q)
	}
	if depth < 0 {
		return nil, fmt.Errorf("%w: negative depth %d", ErrInvalidTiling, depth)
	}
	if samples < 1 {
		return nil, fmt.Errorf("%w: need at least one sample per edge, got %d", ErrInvalidTiling, samples)
	}

	r := circumradius(p, q)
	vertices := make([]complex128, p)
	for k := range p {
		vertices[k] = cmplx.Rect(r, 2*math.Pi*float64(k)/float64(p))
	}
	mids := make([]complex128, p)
	steps := make([]mobius, p)
	for k := range p {
		mids[k] = midpoint(vertices[k], vertices[(k+1)%p])
		steps[k] = halfTurn(mids[k])
	}

	seenTiles := pointSet{}
	seenTiles.add(0)
	seenEdges := pointSet{}
	var out []Point

	layer := []mobius{identity}
	for level := 0; level <= depth; level++ {
		var next []mobius
		for _, f := range layer {
			for k := range p {
				mid := f.apply(mids[k])
				if !seenEdges.has(mid) {
					seenEdges.add(mid)
					u := f.apply(vertices[k])
					v := f.apply(vertices[(k+1)%p])
					out = append(out, LineStripToLines(geodesic(u, v, samples))...)
				}
				if level == depth {
					continue
				}
				g := f.then(steps[k])
				c := g.apply(0)
				if seenTiles.has(c) {
					continue
				}
				seenTiles.add(c)
				next = append(next, g)
			}
		}
		layer = next
	}
	return out, nil
}

// geodesic samples the hyperbolic line segment from u to v at n+1 points.
func geodesic(u, v complex128, n int) []Point {
	w := translate(-u, v)
	pts := make([]Point, n+1)
	for i := range pts {
		t := float64(i) / float64(n)
		pts[i] = Point(translate(u, w*complex(t, 0)))
	}
	return pts
}

// LineStripToLines converts a polyline into independent segments, repeating
// every interior point.
func LineStripToLines(strip []Point) []Point {
	if len(strip) < 2 {
		return nil
	}
	lines := make([]Point, 0, 2*len(strip)-2)
	for i := 0; i < len(strip)-1; i++ {
		lines = append(lines, strip[i], strip[i+1])
	}
	return lines
}
