package hpgeom

import (
	"errors"
	"math"
	"testing"
)

func TestCheckNside(t *testing.T) {
	testCases := []struct {
		name   string
		nside  int64
		scheme Scheme
		valid  bool
	}{
		{"ring one", 1, RingScheme, true},
		{"ring odd", 3, RingScheme, true},
		{"ring large odd", 1001, RingScheme, true},
		{"nest power", 1024, NestScheme, true},
		{"nest max", MaxNside, NestScheme, true},
		{"nest odd", 3, NestScheme, false},
		{"zero", 0, RingScheme, false},
		{"negative", -4, NestScheme, false},
		{"too large", MaxNside * 2, RingScheme, false},
		{"unknown scheme", 4, Scheme(7), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckNside(tc.nside, tc.scheme)
			if tc.valid && err != nil {
				t.Errorf("expected nside %d to be valid, got %v", tc.nside, err)
			}
			if !tc.valid {
				if err == nil {
					t.Fatalf("expected nside %d to be rejected", tc.nside)
				}
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("expected invalid argument, got %v", err)
				}
			}
		})
	}
}

func TestNsideNpix(t *testing.T) {
	for _, nside := range []int64{1, 2, 3, 4, 7, 16, 2048, MaxNside} {
		npix, err := NsideToNpix(nside)
		if err != nil {
			t.Fatal(err)
		}
		if npix != 12*nside*nside {
			t.Errorf("expected %d pixels at nside %d, got %d", 12*nside*nside, nside, npix)
		}
		back, err := NpixToNside(npix)
		if err != nil {
			t.Fatal(err)
		}
		if back != nside {
			t.Errorf("expected nside %d back from %d pixels, got %d", nside, npix, back)
		}
	}

	for _, npix := range []int64{0, -12, 11, 13, 24, 100, 12 * 3 * 4} {
		if _, err := NpixToNside(npix); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected %d pixels to be rejected, got %v", npix, err)
		}
	}
}

func TestNsideOrder(t *testing.T) {
	for order := 0; order <= MaxOrder; order++ {
		nside, err := OrderToNside(order)
		if err != nil {
			t.Fatal(err)
		}
		back, err := NsideToOrder(nside)
		if err != nil {
			t.Fatal(err)
		}
		if back != order {
			t.Errorf("expected order %d, got %d", order, back)
		}
	}
	if _, err := OrderToNside(MaxOrder + 1); err == nil {
		t.Error("expected order above max to be rejected")
	}
	if _, err := NsideToOrder(12); err == nil {
		t.Error("expected non power of two nside to have no order")
	}
}

func TestPixelAreaAndResolution(t *testing.T) {
	area, err := NsideToPixelArea(1, false)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(area-math.Pi/3) > 1e-15 {
		t.Errorf("expected base pixel area pi/3, got %v", area)
	}

	deg, err := NsideToPixelArea(1, true)
	if err != nil {
		t.Fatal(err)
	}
	// the full sky is 41252.96 square degrees
	if math.Abs(deg*12-41252.96124941928) > 1e-6 {
		t.Errorf("expected full sky area, got %v", deg*12)
	}

	arcmin, err := NsideToResolution(2048, Arcminutes)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(arcmin-1.7177) > 1e-3 {
		t.Errorf("expected about 1.718 arcmin at nside 2048, got %v", arcmin)
	}
}

func TestMaxPixelRadius(t *testing.T) {
	prev := math.Inf(1)
	for _, nside := range []int64{1, 2, 4, 8, 16, 3, 1000} {
		r, err := MaxPixelRadius(nside)
		if err != nil {
			t.Fatal(err)
		}
		res, _ := NsideToResolution(nside, Radians)
		if r.Radians() < res/2 || r.Radians() > 2*res {
			t.Errorf("max pixel radius %v out of proportion to resolution %v at nside %d", r.Radians(), res, nside)
		}
		if isPowerOfTwo(nside) {
			if r.Radians() >= prev {
				t.Errorf("expected max pixel radius to shrink with nside, got %v at %d", r.Radians(), nside)
			}
			prev = r.Radians()
		}
	}

	// every pixel corner lies within the radius of its center
	for _, nside := range []int64{1, 2, 5, 8} {
		h := newPixelization(nside, RingScheme)
		rad := maxPixelRadius(nside).Radians()
		for p := int64(0); p < h.npix; p++ {
			center := h.pix2vec(p)
			for v := range h.boundaries(p, 1) {
				if d := center.Angle(v).Radians(); d > rad+1e-12 {
					t.Errorf("nside %d pixel %d has corner %v away, beyond %v", nside, p, d, rad)
				}
			}
		}
	}
}

func TestIsqrt(t *testing.T) {
	for _, v := range []int64{0, 1, 2, 3, 4, 15, 16, 17, 1 << 40, 1<<62 - 1} {
		r := isqrt(v)
		if r*r > v || (r+1)*(r+1) <= v {
			t.Errorf("isqrt(%d) = %d", v, r)
		}
	}
}
