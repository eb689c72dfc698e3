package hpgeom

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

func collect(t *testing.T, h Pixelization, pix int64, step int) []r3.Vector {
	t.Helper()
	seq, err := h.Boundaries(pix, step)
	if err != nil {
		t.Fatal(err)
	}
	var out []r3.Vector
	for v := range seq {
		out = append(out, v)
	}
	return out
}

func TestBoundariesKnown(t *testing.T) {
	h := mustNew(t, 1, RingScheme)
	got := collect(t, h, 0, 1)
	s := math.Sqrt(5) / 3
	expected := []r3.Vector{
		{X: 0, Y: 0, Z: 1},
		{X: s, Y: 0, Z: 2. / 3.},
		{X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2, Z: 0},
		{X: 0, Y: s, Z: 2. / 3.},
	}
	if len(got) != len(expected) {
		t.Fatalf("expected %d vertices, got %d", len(expected), len(got))
	}
	for i := range expected {
		if got[i].Sub(expected[i]).Norm() > 1e-15 {
			t.Errorf("vertex %d: expected %v, got %v", i, expected[i], got[i])
		}
	}
}

func TestBoundariesEnclosePixel(t *testing.T) {
	for _, scheme := range []Scheme{RingScheme, NestScheme} {
		h := mustNew(t, 4, scheme)
		for p := int64(0); p < h.Npix(); p++ {
			vs := collect(t, h, p, 3)
			if len(vs) != 12 {
				t.Fatalf("expected 12 vertices, got %d", len(vs))
			}
			center := h.pix2vec(p)
			for i, v := range vs {
				if math.Abs(v.Norm()-1) > 1e-14 {
					t.Errorf("pixel %d vertex %d not unit length", p, i)
				}
				// a point moved from the outline toward the center is inside
				inner := v.Mul(0.9).Add(center.Mul(0.1)).Normalize()
				if got := h.vec2pix(inner); got != p {
					t.Errorf("%s pixel %d: point inside vertex %d falls in %d", scheme, p, i, got)
				}
			}
		}
	}
}

func TestBoundariesRestartable(t *testing.T) {
	h := mustNew(t, 8, NestScheme)
	seq, err := h.Boundaries(100, 2)
	if err != nil {
		t.Fatal(err)
	}
	var first, second []r3.Vector
	for v := range seq {
		first = append(first, v)
	}
	for v := range seq {
		second = append(second, v)
		if len(second) == 3 {
			break
		}
	}
	if len(first) != 8 || len(second) != 3 {
		t.Fatalf("unexpected lengths %d and %d", len(first), len(second))
	}
	for i := range second {
		if first[i] != second[i] {
			t.Errorf("vertex %d differs between iterations", i)
		}
	}
}

func TestBoundariesValidation(t *testing.T) {
	h := mustNew(t, 2, RingScheme)
	var stepErr *StepError
	if _, err := h.Boundaries(0, 0); !errors.As(err, &stepErr) {
		t.Errorf("expected step error, got %v", err)
	}
	if _, err := h.Boundaries(-1, 1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected pixel range error, got %v", err)
	}
}
