package hpgeom

import (
	"iter"
	"math"

	"github.com/golang/geo/r3"
)

// Position of the point with fractional face coordinates (x, y), each in
// [0, 1], on a base face.
func xyf2loc(x, y float64, face int) (z, phi, sth float64, haveSth bool) {
	jr := float64(jrll[face]) - x - y
	var nr float64
	switch {
	case jr < 1:
		nr = jr
		tmp := nr * nr / 3.
		z = 1 - tmp
		if z > 0.99 {
			sth = math.Sqrt(tmp * (2.0 - tmp))
			haveSth = true
		}
	case jr > 3:
		nr = 4 - jr
		tmp := nr * nr / 3.
		z = tmp - 1
		if z < -0.99 {
			sth = math.Sqrt(tmp * (2.0 - tmp))
			haveSth = true
		}
	default:
		nr = 1
		z = (2 - jr) * 2. / 3.
	}

	tmp := float64(jpll[face])*nr + x - y
	if tmp < 0 {
		tmp += 8
	}
	if tmp >= 8 {
		tmp -= 8
	}
	if nr >= 1e-15 {
		phi = 0.5 * halfPi * tmp / nr
	}
	return z, phi, sth, haveSth
}

// Returns the outline of a pixel as 4*step unit vectors, step per edge,
// starting at the north corner and running through the west, south and east
// corners. The returned sequence computes vertices on demand and may be
// iterated any number of times.
func (h Pixelization) Boundaries(pix int64, step int) (iter.Seq[r3.Vector], error) {
	if err := h.checkPixel(pix); err != nil {
		return nil, err
	}
	if step < 1 {
		return nil, NewStepError(step)
	}
	return h.boundaries(pix, step), nil
}

func (h Pixelization) boundaries(pix int64, step int) iter.Seq[r3.Vector] {
	ix, iy, face := h.pix2xyf(pix)
	n := float64(h.nside)
	dc := 0.5 / n
	xc, yc := (float64(ix)+0.5)/n, (float64(iy)+0.5)/n
	d := 1. / (float64(step) * n)

	return func(yield func(r3.Vector) bool) {
		edges := [4]func(i float64) (x, y float64){
			func(i float64) (float64, float64) { return xc + dc - i*d, yc + dc },
			func(i float64) (float64, float64) { return xc - dc, yc + dc - i*d },
			func(i float64) (float64, float64) { return xc - dc + i*d, yc - dc },
			func(i float64) (float64, float64) { return xc + dc, yc - dc + i*d },
		}
		for _, edge := range edges {
			for i := 0; i < step; i++ {
				x, y := edge(float64(i))
				if !yield(locToVector(xyf2loc(x, y, face))) {
					return
				}
			}
		}
	}
}
