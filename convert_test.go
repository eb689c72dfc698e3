package hpgeom

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/owlpinetech/healpix"
)

func TestRingNestKnown(t *testing.T) {
	testCases := []struct {
		nside int64
		nest  int64
		ring  int64
	}{
		{1, 0, 0},
		{1, 11, 11},
		{2, 3, 0},
		{2, 0, 13},
		{2, 44, 47},
	}

	for _, tc := range testCases {
		h := mustNew(t, tc.nside, NestScheme)
		ring, err := h.NestToRing(tc.nest)
		if err != nil {
			t.Fatal(err)
		}
		if ring != tc.ring {
			t.Errorf("expected nest %d at nside %d to be ring %d, got %d", tc.nest, tc.nside, tc.ring, ring)
		}
		nest, err := h.RingToNest(tc.ring)
		if err != nil {
			t.Fatal(err)
		}
		if nest != tc.nest {
			t.Errorf("expected ring %d at nside %d to be nest %d, got %d", tc.ring, tc.nside, tc.nest, nest)
		}
	}
}

func TestRingNestBijection(t *testing.T) {
	for _, nside := range []int64{1, 2, 4, 8, 16, 64} {
		h := mustNew(t, nside, NestScheme)
		seen := make([]bool, h.Npix())
		for p := int64(0); p < h.Npix(); p++ {
			nest := h.ringToNest(p)
			if nest < 0 || nest >= h.Npix() {
				t.Fatalf("nside %d: ring %d maps out of range to %d", nside, p, nest)
			}
			if seen[nest] {
				t.Fatalf("nside %d: nest %d reached twice", nside, nest)
			}
			seen[nest] = true
			if back := h.nestToRing(nest); back != p {
				t.Errorf("nside %d: ring %d -> nest %d -> ring %d", nside, p, nest, back)
			}
		}
	}
}

func TestRingNestSampledLargeNside(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for _, nside := range []int64{2048, 1 << 20, MaxNside} {
		h := mustNew(t, nside, RingScheme)
		check := func(p int64) {
			nest, err := h.RingToNest(p)
			if err != nil {
				t.Fatal(err)
			}
			ring, err := h.NestToRing(nest)
			if err != nil {
				t.Fatal(err)
			}
			if ring != p {
				t.Errorf("nside %d: ring %d -> nest %d -> ring %d", nside, p, nest, ring)
			}
		}
		for _, p := range []int64{0, 1, h.ncap - 1, h.ncap, h.npix - h.ncap - 1, h.npix - h.ncap, h.npix - 1} {
			check(p)
		}
		for i := 0; i < 20000; i++ {
			check(rng.Int64N(h.Npix()))
		}
	}
}

func TestRingNestFullSweep2048(t *testing.T) {
	if testing.Short() {
		t.Skip("full sweep of 50M pixels")
	}
	h := mustNew(t, 2048, RingScheme)
	b := NewBatch()
	ctx := context.Background()
	const block = 1 << 20
	pix := make([]int64, block)
	seen := make([]uint64, (h.Npix()+63)/64)
	for start := int64(0); start < h.Npix(); start += block {
		n := min(block, h.Npix()-start)
		in := pix[:n]
		for i := range in {
			in[i] = start + int64(i)
		}
		nest, err := b.RingToNest(ctx, h, in)
		if err != nil {
			t.Fatal(err)
		}
		ring, err := b.NestToRing(ctx, h, nest)
		if err != nil {
			t.Fatal(err)
		}
		for i, p := range ring {
			if p != in[i] {
				t.Fatalf("ring %d -> nest %d -> ring %d", in[i], nest[i], p)
			}
			q := nest[i]
			if seen[q/64]&(1<<(q%64)) != 0 {
				t.Fatalf("nest %d reached twice", q)
			}
			seen[q/64] |= 1 << (q % 64)
		}
	}
}

// Both orderings must place a pixel at the same position.
func TestRingNestSameCenter(t *testing.T) {
	for _, nside := range []int64{1, 2, 8, 32} {
		ring := mustNew(t, nside, RingScheme)
		nest := mustNew(t, nside, NestScheme)
		for p := int64(0); p < ring.Npix(); p++ {
			rv := ring.pix2vec(p)
			nv := nest.pix2vec(ring.ringToNest(p))
			if rv.Sub(nv).Norm() > 1e-13 {
				t.Errorf("nside %d: ring %d center %v differs from its nest center %v", nside, p, rv, nv)
			}
		}
	}
}

func TestRingToNestMatchesHealpixLibrary(t *testing.T) {
	for order := 0; order <= 4; order++ {
		h := mustNew(t, int64(1)<<order, NestScheme)
		horder := healpix.HealpixOrder(order)
		if int64(horder.Pixels()) != h.Npix() {
			t.Fatalf("order %d: pixel counts differ, %d vs %d", order, horder.Pixels(), h.Npix())
		}
		for p := int64(0); p < h.Npix(); p++ {
			want := healpix.RingPixel(int(p)).PixelId(horder, healpix.NestScheme)
			if got := h.ringToNest(p); got != int64(want) {
				t.Errorf("order %d: ring %d expected nest %d, got %d", order, p, want, got)
			}
		}
	}
}

func TestFaceDecomposition(t *testing.T) {
	for _, scheme := range []Scheme{RingScheme, NestScheme} {
		h := mustNew(t, 4, scheme)
		for p := int64(0); p < h.Npix(); p++ {
			face, ix, iy, err := h.PixToFace(p)
			if err != nil {
				t.Fatal(err)
			}
			back, err := h.FaceToPix(face, ix, iy)
			if err != nil {
				t.Fatal(err)
			}
			if back != p {
				t.Errorf("%s: pixel %d -> (%d, %d, %d) -> %d", scheme, p, face, ix, iy, back)
			}
			if scheme == NestScheme && int64(face) != p/16 {
				t.Errorf("expected nest pixel %d on face %d, got %d", p, p/16, face)
			}
		}
	}

	h := mustNew(t, 4, NestScheme)
	for _, c := range [][3]int64{{12, 0, 0}, {-1, 0, 0}, {0, 4, 0}, {0, 0, -1}} {
		if _, err := h.FaceToPix(int(c[0]), c[1], c[2]); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected face coordinates %v to be rejected, got %v", c, err)
		}
	}
}

func TestRingNestRequiresPowerOfTwo(t *testing.T) {
	h := mustNew(t, 3, RingScheme)
	if _, err := h.RingToNest(0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected conversion at nside 3 to fail, got %v", err)
	}
	h = mustNew(t, 4, RingScheme)
	if _, err := h.RingToNest(h.Npix()); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected out of range pixel to fail, got %v", err)
	}
}

func TestSpreadCompressBits(t *testing.T) {
	for _, v := range []int64{0, 1, 2, 3, 0x5555, 1<<29 - 1, 123456789} {
		s := spreadBits(v)
		if s&^0x5555555555555555 != 0 {
			t.Errorf("spread of %d has odd bits set: %x", v, s)
		}
		if back := compressBits(s); back != v {
			t.Errorf("compress(spread(%d)) = %d", v, back)
		}
	}
}
