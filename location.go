package hpgeom

import "github.com/golang/geo/r3"

// Any of the location kinds below. A LocationIndexer resolves the kinds it
// supports to a pixel index.
type Location interface{}

// A pixel index already in the indexer's own scheme.
type IndexLocation int64

type RingLocation int64

type NestLocation int64

// A NUNIQ encoded pixel, see NestToUniq.
type UniqueLocation int64

// A pixel given by base face and in-face coordinates, each in [0, nside).
type FaceLocation struct {
	Face int
	X    int64
	Y    int64
}

// Latitude and longitude in radians.
type SphericalLocation struct {
	Latitude  float64
	Longitude float64
}

// A point in the plane of the HEALPix standard projection.
type ProjectedLocation struct {
	X float64
	Y float64
}

// A direction in space, not necessarily normalized.
type RectangularLocation struct {
	X float64
	Y float64
	Z float64
}

func (r RectangularLocation) Vector() r3.Vector {
	return r3.Vector{X: r.X, Y: r.Y, Z: r.Z}
}

func (r RectangularLocation) ToSpherical() SphericalLocation {
	theta, phi := vectorToAngle(r.Vector())
	lon, lat := thetaPhiToLonLat(theta, phi, false)
	return SphericalLocation{Latitude: lat, Longitude: lon}
}
