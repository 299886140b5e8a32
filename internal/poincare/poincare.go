// Package poincare implements the bits of hyperbolic geometry the board
// needs: Möbius translations of the Poincaré disk and {p,q} tilings.
package poincare

import (
	"math"
	"math/cmplx"
)

// Point is a point of the Poincaré disk, x in the real part, y in the
// imaginary part.
type Point = complex64

// Translate maps z by the disk automorphism that moves the origin to pan.
// Translate(-pan, ·) is its inverse.
func Translate(pan, z Point) Point {
	return Point(translate(complex128(pan), complex128(z)))
}

func translate(a, z complex128) complex128 {
	return (z + a) / (1 + cmplx.Conj(a)*z)
}

// mobius is a disk automorphism z -> (a z + b) / (conj(b) z + conj(a)).
type mobius struct {
	a, b complex128
}

var identity = mobius{a: 1}

func translation(m complex128) mobius {
	return mobius{a: 1, b: m}
}

func rotation(theta float64) mobius {
	return mobius{a: cmplx.Rect(1, theta/2)}
}

func (f mobius) apply(z complex128) complex128 {
	return (f.a*z + f.b) / (cmplx.Conj(f.b)*z + cmplx.Conj(f.a))
}

// then returns f∘g.
func (f mobius) then(g mobius) mobius {
	return mobius{
		a: f.a*g.a + f.b*cmplx.Conj(g.b),
		b: f.a*g.b + f.b*cmplx.Conj(g.a),
	}
}

func (f mobius) inverse() mobius {
	return mobius{a: cmplx.Conj(f.a), b: -f.b}
}

// halfTurn rotates the disk by pi around m.
func halfTurn(m complex128) mobius {
	t := translation(m)
	return t.then(rotation(math.Pi)).then(t.inverse())
}

// midpoint returns the hyperbolic midpoint of the geodesic from u to v.
func midpoint(u, v complex128) complex128 {
	w := translate(-u, v)
	r := cmplx.Abs(w)
	if r == 0 {
		return u
	}
	half := math.Tanh(math.Atanh(r) / 2)
	return translate(u, w*complex(half/r, 0))
}
