package hpgeom

import (
	"errors"
	"slices"
	"testing"
)

func TestNeighborsKnown(t *testing.T) {
	h := mustNew(t, 1, RingScheme)
	got, err := h.Neighbors(4)
	if err != nil {
		t.Fatal(err)
	}
	expected := [8]int64{11, 7, 3, -1, 0, 5, 8, -1}
	if got != expected {
		t.Errorf("expected neighbors %v of base pixel 4, got %v", expected, got)
	}

	// nest and ring agree at nside 1
	nest := mustNew(t, 1, NestScheme)
	nestGot, _ := nest.Neighbors(4)
	if nestGot != expected {
		t.Errorf("expected nest neighbors %v, got %v", expected, nestGot)
	}
}

func TestNeighborsInterior(t *testing.T) {
	h := mustNew(t, 8, NestScheme)
	// face 0 pixel at (ix, iy) = (3, 3)
	p := h.xyf2nest(3, 3, 0)
	got, err := h.Neighbors(p)
	if err != nil {
		t.Fatal(err)
	}
	for m, nb := range got {
		want := h.xyf2nest(3+nbXOffset[m], 3+nbYOffset[m], 0)
		if nb != want {
			t.Errorf("direction %d: expected %d, got %d", m, want, nb)
		}
	}
}

func TestNeighborsSymmetric(t *testing.T) {
	for _, tc := range []struct {
		nside  int64
		scheme Scheme
	}{{2, RingScheme}, {4, NestScheme}, {8, RingScheme}, {8, NestScheme}, {5, RingScheme}} {
		h := mustNew(t, tc.nside, tc.scheme)
		missing := 0
		rad := maxPixelRadius(tc.nside).Radians()
		for p := int64(0); p < h.Npix(); p++ {
			nbs, err := h.Neighbors(p)
			if err != nil {
				t.Fatal(err)
			}
			center := h.pix2vec(p)
			seen := map[int64]bool{}
			for _, q := range nbs {
				if q == InvalidPixel {
					missing++
					continue
				}
				if q == p || seen[q] {
					t.Errorf("nside %d %s: pixel %d has repeated or self neighbor %d in %v", tc.nside, tc.scheme, p, q, nbs)
				}
				seen[q] = true
				back, _ := h.Neighbors(q)
				if !slices.Contains(back[:], p) {
					t.Errorf("nside %d %s: %d neighbors %d but not the reverse", tc.nside, tc.scheme, p, q)
				}
				if d := center.Angle(h.pix2vec(q)).Radians(); d > 2*rad+1e-12 {
					t.Errorf("nside %d %s: neighbor %d of %d is %v away", tc.nside, tc.scheme, q, p, d)
				}
			}
		}
		// one pixel at each of the eight corners where only three faces meet,
		// on each of its three faces
		if missing != 24 {
			t.Errorf("nside %d %s: expected 24 missing neighbors, got %d", tc.nside, tc.scheme, missing)
		}
	}
}

func TestNeighborsValidation(t *testing.T) {
	h := mustNew(t, 2, NestScheme)
	if _, err := h.Neighbors(48); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected out of range pixel to be rejected, got %v", err)
	}
}
