package hpgeom

import (
	"math"
	"time"

	"github.com/golang/geo/r3"
)

// Returns the sorted pixels whose centers lie inside the convex spherical
// polygon with the given vertices, in order. A closing vertex equal to the
// first is ignored. With Inclusive, returns every pixel overlapping the
// polygon instead.
func (h Pixelization) QueryPolygon(vertices []r3.Vector, opts ...QueryOption) ([]int64, error) {
	start := time.Now()
	cfg := newQueryConfig(opts)
	rs, err := h.queryPolygon(vertices, cfg)
	if err != nil {
		h.report("polygon", cfg, start, 0, err)
		return nil, err
	}
	pixels := h.fromRingPixels(rs)
	h.report("polygon", cfg, start, len(pixels), nil)
	return pixels, nil
}

// Like QueryPolygon, returning the result as ranges of pixel indices.
func (h Pixelization) QueryPolygonRanges(vertices []r3.Vector, opts ...QueryOption) (RangeSet, error) {
	start := time.Now()
	cfg := newQueryConfig(opts)
	rs, err := h.queryPolygon(vertices, cfg)
	if err != nil {
		h.report("polygon", cfg, start, 0, err)
		return RangeSet{}, err
	}
	rs = h.fromRingRanges(rs)
	h.report("polygon", cfg, start, int(rs.Npix()), nil)
	return rs, nil
}

func (h Pixelization) queryPolygon(vertices []r3.Vector, cfg queryConfig) (RangeSet, error) {
	if err := h.validateQuery(cfg); err != nil {
		return RangeSet{}, err
	}
	normals, err := polygonNormals(vertices)
	if err != nil {
		return RangeSet{}, err
	}
	rads := make([]float64, len(normals), len(normals)+1)
	for i := range rads {
		rads[i] = halfPi
	}
	if cfg.fact != 0 {
		center, cosrad := findEnclosingCircle(normalizeVertices(vertices))
		normals = append(normals, center)
		rads = append(rads, math.Acos(cosrad))
	}
	return h.ringLayout().multiDiscRanges(normals, rads, cfg.fact), nil
}

func normalizeVertices(vertices []r3.Vector) []r3.Vector {
	nv := len(vertices)
	if nv > 3 && vertices[0] == vertices[nv-1] {
		nv--
	}
	out := make([]r3.Vector, nv)
	for i := range out {
		out[i] = vertices[i].Normalize()
	}
	return out
}

// Returns the inward normals of the polygon's edges. Each edge's great
// circle bounds a hemisphere; the polygon is the intersection of them.
func polygonNormals(vertices []r3.Vector) ([]r3.Vector, error) {
	for _, v := range vertices {
		if !finite(v.X) || !finite(v.Y) || !finite(v.Z) || v.Norm2() == 0 {
			return nil, ErrZeroVector
		}
	}
	vv := normalizeVertices(vertices)
	nv := len(vv)
	if nv < 3 {
		return nil, NewPolygonError("polygon must have at least 3 vertices")
	}

	normals := make([]r3.Vector, nv)
	flip := 0.
	for i := 0; i < nv; i++ {
		n := vv[i].Cross(vv[(i+1)%nv])
		norm := n.Norm()
		if norm == 0 {
			return nil, NewPolygonError("polygon has a zero length edge")
		}
		n = n.Mul(1 / norm)
		hnd := n.Dot(vv[(i+2)%nv])
		if math.Abs(hnd) <= 1e-10 {
			return nil, NewPolygonError("polygon has a degenerate corner")
		}
		if i == 0 {
			flip = 1
			if hnd < 0 {
				flip = -1
			}
		} else if flip*hnd <= 0 {
			return nil, NewPolygonError("polygon is not convex")
		}
		normals[i] = n.Mul(flip)
	}

	// A star polygon turns the same way at every corner; reject it by
	// requiring every vertex to lie inside every edge's hemisphere.
	for i, n := range normals {
		for j, v := range vv {
			if j == i || j == (i+1)%nv {
				continue
			}
			if n.Dot(v) < -1e-10 {
				return nil, NewPolygonError("polygon edges intersect")
			}
		}
	}
	return normals, nil
}

// Smallest-circle search over unit vectors, returning the circle center and
// the cosine of its radius.
func findEnclosingCircle(points []r3.Vector) (center r3.Vector, cosrad float64) {
	center = points[0].Add(points[1]).Normalize()
	cosrad = points[0].Dot(center)
	for i := 2; i < len(points); i++ {
		if points[i].Dot(center) < cosrad {
			center, cosrad = circleThrough(points, i)
		}
	}
	return center, cosrad
}

func circleThrough(points []r3.Vector, q int) (center r3.Vector, cosrad float64) {
	center = points[0].Add(points[q]).Normalize()
	cosrad = points[0].Dot(center)
	for i := 1; i < q; i++ {
		if points[i].Dot(center) < cosrad {
			center, cosrad = circleThrough2(points, i, q)
		}
	}
	return center, cosrad
}

func circleThrough2(points []r3.Vector, q1, q2 int) (center r3.Vector, cosrad float64) {
	center = points[q1].Add(points[q2]).Normalize()
	cosrad = points[q1].Dot(center)
	for i := 0; i < q1; i++ {
		if points[i].Dot(center) < cosrad {
			center = points[q1].Sub(points[i]).Cross(points[q2].Sub(points[i])).Normalize()
			cosrad = points[i].Dot(center)
			if cosrad < 0 {
				center = center.Mul(-1)
				cosrad = -cosrad
			}
		}
	}
	return center, cosrad
}

type discConstraint struct {
	z0, phi0  float64
	xa        float64
	cosrsmall float64
	cosrbig   float64
	cpix      int64
}

// Pixels inside the intersection of the discs (norm[i], rad[i]) on a RING
// pixelization. fact is 0 for the exact query.
func (h Pixelization) multiDiscRanges(norm []r3.Vector, rad []float64, fact int64) RangeSet {
	nside := h.nside
	inclusive := fact != 0
	fct := int64(1)
	if inclusive {
		fct = fact
	}

	var fine Pixelization
	var rpsmall, rpbig float64
	switch {
	case fct > 1:
		fine = newPixelization(fct*nside, RingScheme)
		rpsmall = maxPixelRadius(fine.nside).Radians()
		rpbig = maxPixelRadius(nside).Radians()
	case inclusive:
		rpsmall = maxPixelRadius(nside).Radians()
		rpbig = rpsmall
	}

	irmin, irmax := int64(1), 4*nside-1
	discs := make([]discConstraint, 0, len(norm))
	for i := range norm {
		rsmall := rad[i] + rpsmall
		if rsmall >= math.Pi {
			// covers the whole sphere
			continue
		}
		rbig := min(math.Pi, rad[i]+rpbig)
		theta, phi := vectorToAngle(norm[i])
		cth := math.Cos(theta)
		d := discConstraint{
			z0:        cth,
			phi0:      phi,
			xa:        1. / math.Sqrt((1-cth)*(1+cth)),
			cosrsmall: math.Cos(rsmall),
			cosrbig:   math.Cos(rbig),
		}
		if fct > 1 {
			d.cpix = h.loc2pix(cth, phi, 0, false)
		}
		discs = append(discs, d)

		rlat1 := theta - rsmall
		irminT := int64(1)
		if rlat1 > 0 {
			irminT = h.ringAbove(math.Cos(rlat1)) + 1
			if fct > 1 {
				irminT = max(1, irminT-1)
			}
		}
		rlat2 := theta + rsmall
		irmaxT := 4*nside - 1
		if rlat2 < math.Pi {
			irmaxT = h.ringAbove(math.Cos(rlat2))
			if fct > 1 {
				irmaxT = min(4*nside-1, irmaxT+1)
			}
		}
		irmin = max(irmin, irminT)
		irmax = min(irmax, irmaxT)
	}

	Logger().Debug("polygon query ring band",
		"nside", nside,
		"ring_min", irmin,
		"ring_max", irmax,
		"constraints", len(discs),
	)

	geom := h.ringGeometry()
	var rs RangeSet
	for iz := irmin; iz <= irmax; iz++ {
		z := geom.z(iz)
		info := geom.info(iz)
		nr, ipix1 := info.ringpix, info.startpix
		shift := 0.
		if info.shifted {
			shift = 0.5
		}

		var tr RangeSet
		tr.Append(ipix1, ipix1+nr)
		for _, d := range discs {
			x := (d.cosrbig - z*d.z0) * d.xa
			ysq := 1 - z*z - x*x
			var ipLo, ipHi int64
			switch {
			case ysq > 0:
				dphi := math.Atan2(math.Sqrt(ysq), x)
				ipLo = ifloor(float64(nr)/twoPi*(d.phi0-dphi)-shift) + 1
				ipHi = ibelow(float64(nr)/twoPi*(d.phi0+dphi) - shift)
			case fct > 1:
				// inside the coarse disc: a full turn centered on phi0,
				// trimmed against the fine disc below
				ipLo = ifloor(float64(nr)/twoPi*(d.phi0-math.Pi)-shift) + 1
				ipHi = ipLo + nr - 1
			default:
				// the ring passed this disc's band cut without crossing its
				// boundary, so it lies wholly inside
				continue
			}
			if fct > 1 {
				for ipLo <= ipHi && h.pixelOutsideRing(fine, ipLo, nr, ipix1, fct, d.z0, d.phi0, d.cosrsmall, d.cpix) {
					ipLo++
				}
				for ipHi > ipLo && h.pixelOutsideRing(fine, ipHi, nr, ipix1, fct, d.z0, d.phi0, d.cosrsmall, d.cpix) {
					ipHi--
				}
			}
			if ipHi >= nr {
				ipLo -= nr
				ipHi -= nr
			}
			if ipLo < 0 {
				tr.Remove(ipix1+ipHi+1, ipix1+ipLo+nr)
			} else {
				tr.Intersect(ipix1+ipLo, ipix1+ipHi+1)
			}
			if tr.Empty() {
				break
			}
		}
		rs.AppendSet(tr)
	}
	return rs
}
