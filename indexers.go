package hpgeom

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/owlpinetech/flatsphere"
)

// Common functionality for resolving the various location kinds to a pixel
// index.
type LocationIndexer interface {
	ToIndex(Location) (int64, error)
	Projection() flatsphere.Projection
	Name() string
	Size() int64
}

// Resolves locations to pixels of a single HEALPix pixelization, numbered
// in its scheme. Projected locations are interpreted in the plane of the
// HEALPix standard projection.
type HealpixIndexer struct {
	Nside  int64  `json:"nside"`
	Scheme Scheme `json:"scheme"`
	pix    Pixelization
	proj   flatsphere.HEALPixStandard
}

func NewHealpixIndexer(nside int64, scheme Scheme) (HealpixIndexer, error) {
	pix, err := New(nside, scheme)
	if err != nil {
		return HealpixIndexer{}, err
	}
	return HealpixIndexer{
		Nside:  nside,
		Scheme: scheme,
		pix:    pix,
		proj:   flatsphere.NewHEALPixStandard(),
	}, nil
}

func (h HealpixIndexer) Name() string {
	return "healpix"
}

func (h HealpixIndexer) Projection() flatsphere.Projection {
	return h.proj
}

func (h HealpixIndexer) Size() int64 {
	return h.pix.Npix()
}

func (h HealpixIndexer) Pixelization() Pixelization {
	return h.pix
}

func (h HealpixIndexer) ToIndex(loc Location) (int64, error) {
	switch val := loc.(type) {
	case IndexLocation:
		return h.inBounds(loc, int64(val), h.pix.checkPixel(int64(val)))
	case RingLocation:
		if h.Scheme == RingScheme {
			return h.inBounds(loc, int64(val), h.pix.checkPixel(int64(val)))
		}
		ind, err := h.pix.RingToNest(int64(val))
		return h.inBounds(loc, ind, err)
	case NestLocation:
		if h.Scheme == NestScheme {
			return h.inBounds(loc, int64(val), h.pix.checkPixel(int64(val)))
		}
		ring, err := h.pix.NestToRing(int64(val))
		return h.inBounds(loc, ring, err)
	case UniqueLocation:
		nside, nest, err := UniqToNest(int64(val))
		if err == nil && nside != h.Nside {
			err = NewUniqError(int64(val))
		}
		if err != nil {
			return h.inBounds(loc, -1, err)
		}
		return h.ToIndex(NestLocation(nest))
	case FaceLocation:
		ind, err := h.pix.FaceToPix(val.Face, val.X, val.Y)
		return h.inBounds(loc, ind, err)
	case SphericalLocation:
		ind, err := h.pix.LonLatToPix(val.Longitude, val.Latitude, false)
		return h.inBounds(loc, ind, err)
	case ProjectedLocation:
		if !finite(val.X) || !finite(val.Y) {
			return -1, NewLocationOutOfBoundsError(loc, nil)
		}
		// the plane repeats every full turn in x; western longitudes
		// project to negative x
		bounds := h.proj.PlanarBounds()
		x := bounds.XMin + fmodulo(val.X-bounds.XMin, bounds.Width())
		if !bounds.Within(x, val.Y) {
			return -1, NewLocationOutOfBoundsError(loc, nil)
		}
		lat, lon := h.proj.Inverse(x, val.Y)
		if math.IsNaN(lat) || math.IsNaN(lon) {
			return -1, NewLocationOutOfBoundsError(loc, nil)
		}
		return h.ToIndex(SphericalLocation{Latitude: lat, Longitude: lon})
	case RectangularLocation:
		ind, err := h.pix.VecToPix(val.Vector())
		return h.inBounds(loc, ind, err)
	default:
		return -1, NewLocationNotSupportedError(h.Name(), loc)
	}
}

func (h HealpixIndexer) inBounds(loc Location, ind int64, err error) (int64, error) {
	if err == nil {
		return ind, nil
	}
	if errors.Is(err, ErrInvalidArgument) {
		return -1, NewLocationOutOfBoundsError(loc, err)
	}
	return -1, err
}

func (h *HealpixIndexer) UnmarshalJSON(b []byte) error {
	var raw struct {
		Nside  int64  `json:"nside"`
		Scheme Scheme `json:"scheme"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	ind, err := NewHealpixIndexer(raw.Nside, raw.Scheme)
	if err != nil {
		return err
	}
	*h = ind
	return nil
}

type indexerEnvelope struct {
	IndexerName string          `json:"indexerName"`
	Indexer     json.RawMessage `json:"indexer"`
}

// Serializes an indexer together with its name, so UnmarshalIndexer can
// reconstruct the right kind.
func MarshalIndexer(indexer LocationIndexer) ([]byte, error) {
	body, err := json.Marshal(indexer)
	if err != nil {
		return nil, err
	}
	return json.Marshal(indexerEnvelope{IndexerName: indexer.Name(), Indexer: body})
}

func UnmarshalIndexer(b []byte) (LocationIndexer, error) {
	var env indexerEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, err
	}

	// now we can construct the right indexer
	switch env.IndexerName {
	case "healpix":
		var h HealpixIndexer
		if err := json.Unmarshal(env.Indexer, &h); err != nil {
			return nil, err
		}
		return h, nil
	default:
		return nil, fmt.Errorf("hpgeom: unknown indexer %q", env.IndexerName)
	}
}
