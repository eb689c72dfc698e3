package hpgeom

import (
	"math"
	"time"
)

// Returns the sorted pixels whose centers lie between colatitudes theta1 and
// theta2, in radians. When theta1 >= theta2 the strip wraps through both
// poles, covering [0, theta2] and [theta1, pi]. With Inclusive, the rings
// bordering the strip are added as well.
func (h Pixelization) QueryStrip(theta1, theta2 float64, opts ...QueryOption) ([]int64, error) {
	start := time.Now()
	cfg := newQueryConfig(opts)
	rs, err := h.queryStrip(theta1, theta2, cfg)
	if err != nil {
		h.report("strip", cfg, start, 0, err)
		return nil, err
	}
	pixels := h.fromRingPixels(rs)
	h.report("strip", cfg, start, len(pixels), nil)
	return pixels, nil
}

// Like QueryStrip, returning the result as ranges of pixel indices.
func (h Pixelization) QueryStripRanges(theta1, theta2 float64, opts ...QueryOption) (RangeSet, error) {
	start := time.Now()
	cfg := newQueryConfig(opts)
	rs, err := h.queryStrip(theta1, theta2, cfg)
	if err != nil {
		h.report("strip", cfg, start, 0, err)
		return RangeSet{}, err
	}
	rs = h.fromRingRanges(rs)
	h.report("strip", cfg, start, int(rs.Npix()), nil)
	return rs, nil
}

func (h Pixelization) queryStrip(theta1, theta2 float64, cfg queryConfig) (RangeSet, error) {
	if !finite(theta1) || theta1 < 0 || theta1 > math.Pi {
		return RangeSet{}, NewAngleError("theta1", theta1, "[0, pi]")
	}
	if !finite(theta2) || theta2 < 0 || theta2 > math.Pi {
		return RangeSet{}, NewAngleError("theta2", theta2, "[0, pi]")
	}
	if err := h.validateQuery(cfg); err != nil {
		return RangeSet{}, err
	}
	r := h.ringLayout()
	inclusive := cfg.fact != 0
	if theta1 < theta2 {
		return r.stripRanges(theta1, theta2, inclusive), nil
	}
	rs := r.stripRanges(0, theta2, inclusive)
	rs.AppendSet(r.stripRanges(theta1, math.Pi, inclusive))
	return rs, nil
}

// Rings whose centers lie in [theta1, theta2] always form a single
// contiguous RING index range.
func (h Pixelization) stripRanges(theta1, theta2 float64, inclusive bool) RangeSet {
	nrings := 4*h.nside - 1
	z1, z2 := math.Cos(theta1), math.Cos(theta2)
	ring1 := max(1, 1+h.ringAbove(z1))
	ring2 := min(nrings, h.ringAbove(z2))
	geom := h.ringGeometry()
	if inclusive {
		ring1 = max(1, ring1-1)
		ring2 = min(nrings, ring2+1)
	} else {
		// settle the band edges on the ring colatitudes themselves; a ring
		// lying exactly on a bound is outside
		for ring1 > 1 && geom.z(ring1-1) < z1 {
			ring1--
		}
		for ring1 <= nrings && geom.z(ring1) >= z1 {
			ring1++
		}
		for ring2 < nrings && geom.z(ring2+1) > z2 {
			ring2++
		}
		for ring2 >= 1 && geom.z(ring2) <= z2 {
			ring2--
		}
	}
	var rs RangeSet
	if ring1 > ring2 {
		return rs
	}
	first, last := geom.info(ring1), geom.info(ring2)
	rs.Append(first.startpix, last.startpix+last.ringpix)
	Logger().Debug("strip query ring band", "nside", h.nside, "ring_min", ring1, "ring_max", ring2)
	return rs
}
