package hpgeom

import (
	"math"
	"math/bits"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

const (
	// Largest nside whose pixel indices fit comfortably in an int64.
	MaxOrder = 29
	MaxNside = int64(1) << MaxOrder
)

// Units for NsideToResolution.
type AngleUnit int

const (
	Radians AngleUnit = iota
	Degrees
	Arcminutes
)

// Checks that nside is usable under the given scheme: positive, not above
// MaxNside, and a power of two when nested.
func CheckNside(nside int64, scheme Scheme) error {
	if !scheme.valid() {
		return NewNsideError(nside, scheme, "unknown scheme")
	}
	if nside <= 0 {
		return NewNsideError(nside, scheme, "nside must be positive")
	}
	if nside > MaxNside {
		return NewNsideError(nside, scheme, "nside must not be greater than 2**29")
	}
	if scheme == NestScheme && !isPowerOfTwo(nside) {
		return NewNsideError(nside, scheme, "nside must be a power of 2 for nest ordering")
	}
	return nil
}

func isPowerOfTwo(v int64) bool {
	return v > 0 && v&(v-1) == 0
}

// Returns log2(nside), or -1 when nside is not a power of two.
func nsideToOrder(nside int64) int {
	if !isPowerOfTwo(nside) {
		return -1
	}
	return bits.TrailingZeros64(uint64(nside))
}

func NsideToNpix(nside int64) (int64, error) {
	if err := CheckNside(nside, RingScheme); err != nil {
		return 0, err
	}
	return 12 * nside * nside, nil
}

func NpixToNside(npix int64) (int64, error) {
	if npix <= 0 || npix%12 != 0 {
		return 0, NewNpixError(npix)
	}
	nside := isqrt(npix / 12)
	if nside*nside*12 != npix || nside > MaxNside {
		return 0, NewNpixError(npix)
	}
	return nside, nil
}

func NsideToOrder(nside int64) (int, error) {
	if err := CheckNside(nside, NestScheme); err != nil {
		return 0, err
	}
	return nsideToOrder(nside), nil
}

func OrderToNside(order int) (int64, error) {
	if order < 0 || order > MaxOrder {
		return 0, NewNsideError(-1, NestScheme, "order must be in [0, 29]")
	}
	return int64(1) << order, nil
}

// The area of a single pixel, in steradians or square degrees.
func NsideToPixelArea(nside int64, degrees bool) (float64, error) {
	npix, err := NsideToNpix(nside)
	if err != nil {
		return 0, err
	}
	area := 4 * math.Pi / float64(npix)
	if degrees {
		area *= (180 / math.Pi) * (180 / math.Pi)
	}
	return area, nil
}

// The approximate pixel size, the square root of the pixel area.
func NsideToResolution(nside int64, units AngleUnit) (float64, error) {
	area, err := NsideToPixelArea(nside, false)
	if err != nil {
		return 0, err
	}
	res := s1.Angle(math.Sqrt(area))
	switch units {
	case Degrees:
		return res.Degrees(), nil
	case Arcminutes:
		return res.Degrees() * 60, nil
	}
	return res.Radians(), nil
}

// The maximum angular distance between any pixel center and its corners.
// The region query engine pads its ring band by this much in inclusive mode.
func MaxPixelRadius(nside int64) (s1.Angle, error) {
	if err := CheckNside(nside, RingScheme); err != nil {
		return 0, err
	}
	return maxPixelRadius(nside), nil
}

func maxPixelRadius(nside int64) s1.Angle {
	va := vectorFromZPhi(2./3., math.Pi/float64(4*nside))
	t1 := 1. - 1./float64(nside)
	t1 *= t1
	vb := vectorFromZPhi(1-t1/3, 0)
	return va.Angle(vb)
}

func vectorFromZPhi(z float64, phi float64) r3.Vector {
	sth := math.Sqrt((1 - z) * (1 + z))
	return r3.Vector{X: sth * math.Cos(phi), Y: sth * math.Sin(phi), Z: z}
}

// Exact integer square root, floor(sqrt(v)) for v >= 0.
func isqrt(v int64) int64 {
	r := int64(math.Sqrt(float64(v) + 0.5))
	for r*r > v {
		r--
	}
	for (r+1)*(r+1) <= v {
		r++
	}
	return r
}
