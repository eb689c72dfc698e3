package hpgeom

import (
	"math"

	"github.com/golang/geo/r3"
)

// Marks a missing neighbor, or an invalid batch element when skipping.
const InvalidPixel int64 = -1

func (h Pixelization) loc2pix(z, phi, sth float64, haveSth bool) int64 {
	if h.scheme == RingScheme {
		return h.ringLoc2pix(z, phi, sth, haveSth)
	}
	return h.nestLoc2pix(z, phi, sth, haveSth)
}

func (h Pixelization) pix2loc(pix int64) (z, phi, sth float64, haveSth bool) {
	if h.scheme == RingScheme {
		return h.ringPix2loc(pix)
	}
	return h.nestPix2loc(pix)
}

func (h Pixelization) ang2pix(theta, phi float64) int64 {
	if theta < 0.01 || theta > math.Pi-0.01 {
		return h.loc2pix(math.Cos(theta), phi, math.Sin(theta), true)
	}
	return h.loc2pix(math.Cos(theta), phi, 0, false)
}

func (h Pixelization) vec2pix(v r3.Vector) int64 {
	xl := 1. / v.Norm()
	phi := safeAtan2(v.Y, v.X)
	nz := v.Z * xl
	if math.Abs(nz) > 0.99 {
		return h.loc2pix(nz, phi, math.Hypot(v.X, v.Y)*xl, true)
	}
	return h.loc2pix(nz, phi, 0, false)
}

func (h Pixelization) pix2ang(pix int64) (theta, phi float64) {
	z, phi, sth, haveSth := h.pix2loc(pix)
	if haveSth {
		return math.Atan2(sth, z), phi
	}
	return math.Acos(z), phi
}

func (h Pixelization) pix2vec(pix int64) r3.Vector {
	z, phi, sth, haveSth := h.pix2loc(pix)
	return locToVector(z, phi, sth, haveSth)
}

func locToVector(z, phi, sth float64, haveSth bool) r3.Vector {
	if !haveSth {
		sth = math.Sqrt((1 - z) * (1 + z))
	}
	return r3.Vector{X: sth * math.Cos(phi), Y: sth * math.Sin(phi), Z: z}
}

// Returns the pixel containing the position at colatitude theta and
// longitude phi, both in radians. Theta must lie in [0, pi]; phi is wrapped.
func (h Pixelization) AngToPix(theta, phi float64) (int64, error) {
	if err := checkThetaPhi(theta, phi); err != nil {
		return 0, err
	}
	return h.ang2pix(theta, phi), nil
}

// Returns the pixel containing the direction of v, which need not be
// normalized.
func (h Pixelization) VecToPix(v r3.Vector) (int64, error) {
	if !finite(v.X) || !finite(v.Y) || !finite(v.Z) || v.Norm2() == 0 {
		return 0, ErrZeroVector
	}
	return h.vec2pix(v), nil
}

// Returns the pixel containing the given longitude and latitude, in degrees
// when degrees is set, otherwise radians.
func (h Pixelization) LonLatToPix(lon, lat float64, degrees bool) (int64, error) {
	theta, phi, err := LonLatToThetaPhi(lon, lat, degrees)
	if err != nil {
		return 0, err
	}
	return h.ang2pix(theta, phi), nil
}

// Returns the colatitude and longitude of the center of a pixel, in radians.
func (h Pixelization) PixToAng(pix int64) (theta, phi float64, err error) {
	if err := h.checkPixel(pix); err != nil {
		return 0, 0, err
	}
	theta, phi = h.pix2ang(pix)
	return theta, phi, nil
}

// Returns the unit vector to the center of a pixel.
func (h Pixelization) PixToVec(pix int64) (r3.Vector, error) {
	if err := h.checkPixel(pix); err != nil {
		return r3.Vector{}, err
	}
	return h.pix2vec(pix), nil
}

// Returns the longitude and latitude of a pixel center.
func (h Pixelization) PixToLonLat(pix int64, degrees bool) (lon, lat float64, err error) {
	if err := h.checkPixel(pix); err != nil {
		return 0, 0, err
	}
	theta, phi := h.pix2ang(pix)
	lon, lat = thetaPhiToLonLat(theta, phi, degrees)
	return lon, lat, nil
}
