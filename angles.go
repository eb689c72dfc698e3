package hpgeom

import (
	"math"

	"github.com/golang/geo/r3"
)

const (
	halfPi   = math.Pi / 2
	twoPi    = 2 * math.Pi
	twoThird = 2. / 3.
	d2r      = math.Pi / 180
	r2d      = 180 / math.Pi
)

// Wraps v into [0, m). Exactly m maps to 0.
func fmodulo(v float64, m float64) float64 {
	if v >= 0 {
		if v < m {
			return v
		}
		return math.Mod(v, m)
	}
	tmp := math.Mod(v, m) + m
	if tmp == m {
		return 0
	}
	return tmp
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func checkThetaPhi(theta, phi float64) error {
	if !finite(theta) || theta < 0 || theta > math.Pi {
		return NewAngleError("colatitude (theta)", theta, "[0, pi]")
	}
	if !finite(phi) {
		return NewAngleError("longitude (phi)", phi, "(-inf, inf)")
	}
	return nil
}

// Converts a colatitude/longitude pair in radians to a unit vector.
func AngleToVector(theta, phi float64) (r3.Vector, error) {
	if err := checkThetaPhi(theta, phi); err != nil {
		return r3.Vector{}, err
	}
	return angleToVector(theta, phi), nil
}

func angleToVector(theta, phi float64) r3.Vector {
	sth := math.Sin(theta)
	return r3.Vector{X: sth * math.Cos(phi), Y: sth * math.Sin(phi), Z: math.Cos(theta)}
}

// Converts a vector, which need not be normalized, to colatitude and
// longitude in radians with phi in [0, 2pi).
func VectorToAngle(v r3.Vector) (theta, phi float64, err error) {
	if !finite(v.X) || !finite(v.Y) || !finite(v.Z) || v.Norm2() == 0 {
		return 0, 0, ErrZeroVector
	}
	theta, phi = vectorToAngle(v)
	return theta, phi, nil
}

func vectorToAngle(v r3.Vector) (theta, phi float64) {
	theta = math.Atan2(math.Hypot(v.X, v.Y), v.Z)
	phi = safeAtan2(v.Y, v.X)
	if phi < 0 {
		phi += twoPi
	}
	if phi >= twoPi {
		phi -= twoPi
	}
	return theta, phi
}

func safeAtan2(y, x float64) float64 {
	if x == 0 && y == 0 {
		return 0
	}
	return math.Atan2(y, x)
}

// Converts longitude/latitude to colatitude/longitude in radians, with phi
// wrapped into [0, 2pi). Inputs are degrees when degrees is set, otherwise
// radians.
func LonLatToThetaPhi(lon, lat float64, degrees bool) (theta, phi float64, err error) {
	if degrees {
		if !finite(lat) || lat < -90 || lat > 90 {
			return 0, 0, NewAngleError("latitude", lat, "[-90, 90]")
		}
		lon *= d2r
		lat *= d2r
	} else if !finite(lat) || lat < -halfPi || lat > halfPi {
		return 0, 0, NewAngleError("latitude", lat, "[-pi/2, pi/2]")
	}
	if !finite(lon) {
		return 0, 0, NewAngleError("longitude", lon, "(-inf, inf)")
	}
	theta = halfPi - lat
	// lat = +-90 must give an exact pole.
	if theta < 0 {
		theta = 0
	} else if theta > math.Pi {
		theta = math.Pi
	}
	return theta, fmodulo(lon, twoPi), nil
}

// Converts colatitude/longitude in radians to longitude/latitude, in degrees
// when degrees is set. Longitude is wrapped into [0, 360) (or [0, 2pi)).
func ThetaPhiToLonLat(theta, phi float64, degrees bool) (lon, lat float64, err error) {
	if err := checkThetaPhi(theta, phi); err != nil {
		return 0, 0, err
	}
	lon, lat = thetaPhiToLonLat(theta, phi, degrees)
	return lon, lat, nil
}

func thetaPhiToLonLat(theta, phi float64, degrees bool) (lon, lat float64) {
	if degrees {
		return fmodulo(phi*r2d, 360), 90 - theta*r2d
	}
	return fmodulo(phi, twoPi), halfPi - theta
}
