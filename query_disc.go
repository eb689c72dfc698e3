package hpgeom

import (
	"math"
	"time"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

func ifloor(v float64) int64 {
	return int64(math.Floor(v))
}

// Largest integer strictly below v.
func ibelow(v float64) int64 {
	return int64(math.Ceil(v)) - 1
}

// Returns the sorted pixels, in this pixelization's scheme, whose centers lie
// within radius of center. With Inclusive, returns every pixel overlapping
// the disc instead.
func (h Pixelization) QueryDisc(center r3.Vector, radius s1.Angle, opts ...QueryOption) ([]int64, error) {
	start := time.Now()
	cfg := newQueryConfig(opts)
	rs, err := h.queryDisc(center, radius, cfg)
	if err != nil {
		h.report("disc", cfg, start, 0, err)
		return nil, err
	}
	pixels := h.fromRingPixels(rs)
	h.report("disc", cfg, start, len(pixels), nil)
	return pixels, nil
}

// Like QueryDisc, returning the result as ranges of pixel indices.
func (h Pixelization) QueryDiscRanges(center r3.Vector, radius s1.Angle, opts ...QueryOption) (RangeSet, error) {
	start := time.Now()
	cfg := newQueryConfig(opts)
	rs, err := h.queryDisc(center, radius, cfg)
	if err != nil {
		h.report("disc", cfg, start, 0, err)
		return RangeSet{}, err
	}
	rs = h.fromRingRanges(rs)
	h.report("disc", cfg, start, int(rs.Npix()), nil)
	return rs, nil
}

func checkRadius(radius s1.Angle) error {
	r := radius.Radians()
	if !finite(r) || r <= 0 {
		return NewRadiusError(r)
	}
	return nil
}

func (h Pixelization) queryDisc(center r3.Vector, radius s1.Angle, cfg queryConfig) (RangeSet, error) {
	if !finite(center.X) || !finite(center.Y) || !finite(center.Z) || center.Norm2() == 0 {
		return RangeSet{}, ErrZeroVector
	}
	if err := checkRadius(radius); err != nil {
		return RangeSet{}, err
	}
	if err := h.validateQuery(cfg); err != nil {
		return RangeSet{}, err
	}
	theta, phi := vectorToAngle(center)
	return h.ringLayout().discRanges(theta, phi, radius.Radians(), cfg.fact), nil
}

// Core disc query on a RING pixelization. fact is 0 for the exact (pixel
// center) query.
func (h Pixelization) discRanges(theta0, phi0, radius float64, fact int64) RangeSet {
	nside := h.nside
	inclusive := fact != 0
	fct := int64(1)
	if inclusive {
		fct = fact
	}

	var fine Pixelization
	var rsmall, rbig float64
	switch {
	case fct > 1:
		fine = newPixelization(fct*nside, RingScheme)
		rsmall = radius + maxPixelRadius(fine.nside).Radians()
		rbig = radius + maxPixelRadius(nside).Radians()
	case inclusive:
		rsmall = radius + maxPixelRadius(nside).Radians()
		rbig = rsmall
	default:
		rsmall, rbig = radius, radius
	}

	var rs RangeSet
	if rsmall >= math.Pi {
		rs.Append(0, h.npix)
		return rs
	}
	rbig = min(math.Pi, rbig)

	cosrsmall := math.Cos(rsmall)
	cosrbig := math.Cos(rbig)

	z0 := math.Cos(theta0)
	xa := 1. / math.Sqrt((1-z0)*(1+z0))

	var cpix int64
	if fct > 1 {
		cpix = h.loc2pix(z0, phi0, 0, false)
	}
	geom := h.ringGeometry()

	rlat1 := theta0 - rsmall
	irmin := h.ringAbove(math.Cos(rlat1)) + 1
	if rlat1 <= 0 && irmin > 1 {
		// north pole inside the disc
		info := geom.info(irmin - 1)
		rs.Append(0, info.startpix+info.ringpix)
	}
	if fct > 1 && rlat1 > 0 {
		irmin = max(1, irmin-1)
	}

	rlat2 := theta0 + rsmall
	irmax := h.ringAbove(math.Cos(rlat2))
	if fct > 1 && rlat2 < math.Pi {
		irmax = min(4*nside-1, irmax+1)
	}

	Logger().Debug("disc query ring band",
		"nside", nside,
		"ring_min", irmin,
		"ring_max", irmax,
		"inclusive", inclusive,
	)

	for iz := irmin; iz <= irmax; iz++ {
		z := geom.z(iz)
		x := (cosrbig - z*z0) * xa
		ysq := 1 - z*z - x*x
		info := geom.info(iz)
		nr, ipix1 := info.ringpix, info.startpix
		shift := 0.
		if info.shifted {
			shift = 0.5
		}
		ipix2 := ipix1 + nr - 1

		var ipLo, ipHi int64
		switch {
		case ysq > 0:
			dphi := math.Atan2(math.Sqrt(ysq), x)
			ipLo = ifloor(float64(nr)/twoPi*(phi0-dphi)-shift) + 1
			ipHi = ibelow(float64(nr)/twoPi*(phi0+dphi) - shift)
		case fct > 1:
			// ring entirely inside the coarse disc: a full turn centered on
			// phi0, trimmed against the fine disc below
			ipLo = ifloor(float64(nr)/twoPi*(phi0-math.Pi)-shift) + 1
			ipHi = ipLo + nr - 1
		default:
			// ring entirely inside or outside the disc
			continue
		}

		if fct > 1 {
			for ipLo <= ipHi && h.pixelOutsideRing(fine, ipLo, nr, ipix1, fct, z0, phi0, cosrsmall, cpix) {
				ipLo++
			}
			for ipHi > ipLo && h.pixelOutsideRing(fine, ipHi, nr, ipix1, fct, z0, phi0, cosrsmall, cpix) {
				ipHi--
			}
		}

		if ipLo <= ipHi {
			if ipHi >= nr {
				ipLo -= nr
				ipHi -= nr
			}
			if ipLo < 0 {
				rs.Append(ipix1, ipix1+ipHi+1)
				rs.Append(ipix1+ipLo+nr, ipix2+1)
			} else {
				rs.Append(ipix1+ipLo, ipix1+ipHi+1)
			}
		}
	}

	if rlat2 >= math.Pi && irmax+1 < 4*nside {
		// south pole inside the disc
		info := geom.info(irmax + 1)
		rs.Append(info.startpix, h.npix)
	}
	return rs
}
