package hpgeom

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
)

// Returns the outline of a pixel as a closed lon/lat polygon in degrees,
// step points per edge. Longitudes are unwrapped to within 180 degrees of
// the pixel center, so pixels straddling lon=0 stay contiguous; a vertex on
// a pole takes the center's longitude.
func (h Pixelization) PixelPolygon(pix int64, step int) (orb.Polygon, error) {
	seq, err := h.Boundaries(pix, step)
	if err != nil {
		return nil, err
	}
	ctheta, cphi := h.pix2ang(pix)
	ref, _ := thetaPhiToLonLat(ctheta, cphi, true)
	ring := make(orb.Ring, 0, 4*step+1)
	for v := range seq {
		theta, phi := vectorToAngle(v)
		lon, lat := thetaPhiToLonLat(theta, phi, true)
		switch {
		case theta == 0 || theta == math.Pi:
			lon = ref
		case lon-ref > 180:
			lon -= 360
		case ref-lon > 180:
			lon += 360
		}
		ring = append(ring, orb.Point{lon, lat})
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}, nil
}

// Runs QueryPolygon on a lon/lat ring in degrees. A closing point equal to
// the first is ignored; the vertices may run in either direction.
func (h Pixelization) QueryLonLatPolygon(ring orb.Ring, opts ...QueryOption) ([]int64, error) {
	vertices, err := ringVertices(ring)
	if err != nil {
		return nil, err
	}
	return h.QueryPolygon(vertices, opts...)
}

func ringVertices(ring orb.Ring) ([]r3.Vector, error) {
	if ring.Closed() && len(ring) > 1 {
		ring = ring[:len(ring)-1]
	}
	vertices := make([]r3.Vector, len(ring))
	for i, p := range ring {
		theta, phi, err := LonLatToThetaPhi(p.Lon(), p.Lat(), true)
		if err != nil {
			return nil, err
		}
		vertices[i] = angleToVector(theta, phi)
	}
	return vertices, nil
}

// Returns the bounding box in lon/lat degrees of the pixel's outline, for
// coarse spatial indexing. Pixels touching a pole reach latitude +-90 through
// their pole corner.
func (h Pixelization) PixelBound(pix int64) (orb.Bound, error) {
	poly, err := h.PixelPolygon(pix, 1)
	if err != nil {
		return orb.Bound{}, err
	}
	return poly.Bound(), nil
}
