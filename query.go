package hpgeom

import (
	"math"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

type queryConfig struct {
	fact    int64 // 0 unless inclusive
	metrics MetricsCollector
}

// Configures a region query.
type QueryOption func(*queryConfig)

// Returns every pixel overlapping the region instead of only those whose
// center lies inside it. Overlap is tested along the pixel edges at
// resolution fact*nside, so the result may hold a few extra pixels. Under
// NEST, fact must be a power of two.
func Inclusive(fact int64) QueryOption {
	return func(c *queryConfig) {
		c.fact = fact
	}
}

// Reports the query to the collector.
func WithQueryMetrics(m MetricsCollector) QueryOption {
	return func(c *queryConfig) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		c.metrics = m
	}
}

func newQueryConfig(opts []QueryOption) queryConfig {
	cfg := queryConfig{metrics: NoopMetricsCollector{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (h Pixelization) checkFact(fact int64) error {
	if fact <= 0 {
		return NewFactError(fact, h.nside, "fact must be positive")
	}
	if h.scheme == NestScheme && !isPowerOfTwo(fact) {
		return NewFactError(fact, h.nside, "fact must be a power of 2 for nest ordering")
	}
	if fact > MaxNside/h.nside {
		return NewFactError(fact, h.nside, "nside*fact must not be greater than 2**29")
	}
	return nil
}

func (h Pixelization) validateQuery(cfg queryConfig) error {
	if cfg.fact != 0 {
		return h.checkFact(cfg.fact)
	}
	return nil
}

// The query algorithms walk rings, so they always run on the RING layout of
// the resolution.
func (h Pixelization) ringLayout() Pixelization {
	if h.scheme == RingScheme {
		return h
	}
	r := h
	r.scheme = RingScheme
	return r
}

// Converts a RING range set into the pixelization's own scheme.
func (h Pixelization) fromRingRanges(rs RangeSet) RangeSet {
	if h.scheme == RingScheme {
		return rs
	}
	bm := h.nestBitmap(rs)
	var out RangeSet
	it := bm.Iterator()
	for it.HasNext() {
		p := int64(it.Next())
		out.Append(p, p+1)
	}
	return out
}

func (h Pixelization) nestBitmap(rs RangeSet) *roaring64.Bitmap {
	bm := roaring64.New()
	for start, end := range rs.All() {
		for p := start; p < end; p++ {
			bm.Add(uint64(h.ringToNest(p)))
		}
	}
	return bm
}

// Expands a RING range set into sorted unique pixels of the pixelization's
// own scheme.
func (h Pixelization) fromRingPixels(rs RangeSet) []int64 {
	if h.scheme == RingScheme {
		return rs.Pixels()
	}
	bm := h.nestBitmap(rs)
	out := make([]int64, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, int64(it.Next()))
	}
	return out
}

func (h Pixelization) report(kind string, cfg queryConfig, start time.Time, pixels int, err error) {
	cfg.metrics.RecordQuery(kind, pixels, time.Since(start), err)
	if err != nil {
		Logger().Debug("region query rejected", "kind", kind, "nside", h.nside, "error", err)
	}
}

// Cosine of the angle between two positions given as (z, phi).
func cosDistZPhi(z1, phi1, z2, phi2 float64) float64 {
	return z1*z2 + math.Cos(phi1-phi2)*math.Sqrt((1-z1*z1)*(1-z2*z2))
}

func (h Pixelization) pix2zphi(pix int64) (z, phi float64) {
	z, phi, _, _ = h.pix2loc(pix)
	return z, phi
}

// Reports whether the ring pixel at in-ring offset pix can be dropped from an
// inclusive query: true when none of the sub-pixels along its edges at the
// finer resolution fine lie within the padded radius (cosine cosrp2) of the
// center (cz, cphi). cpix is the pixel holding the center, which always
// overlaps.
func (h Pixelization) pixelOutsideRing(fine Pixelization, pix, nr, ipix1, fct int64,
	cz, cphi, cosrp2 float64, cpix int64) bool {
	if pix >= nr {
		pix -= nr
	}
	if pix < 0 {
		pix += nr
	}
	pix += ipix1
	if pix == cpix {
		return false
	}
	px, py, pf := h.ring2xyf(pix)
	ox, oy := fct*px, fct*py
	for i := int64(0); i < fct-1; i++ {
		// walk the four edges
		corners := [4][2]int64{
			{ox + i, oy},
			{ox + fct - 1, oy + i},
			{ox + fct - 1 - i, oy + fct - 1},
			{ox, oy + fct - 1 - i},
		}
		for _, c := range corners {
			pz, pphi := fine.pix2zphi(fine.xyf2ring(c[0], c[1], pf))
			if cosDistZPhi(pz, pphi, cz, cphi) > cosrp2 {
				return false
			}
		}
	}
	return true
}
