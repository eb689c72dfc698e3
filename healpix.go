package hpgeom

import (
	"encoding/json"
)

// A HEALPix pixelization of the sphere at a single resolution and numbering
// scheme. Values are immutable and safe to share between goroutines; the zero
// value is not usable, construct with New.
type Pixelization struct {
	nside  int64
	scheme Scheme
	order  int // log2(nside), -1 when nside is not a power of two
	npface int64
	ncap   int64 // number of pixels in the north polar cap
	npix   int64
	fact1  float64
	fact2  float64
}

func New(nside int64, scheme Scheme) (Pixelization, error) {
	if err := CheckNside(nside, scheme); err != nil {
		return Pixelization{}, err
	}
	return newPixelization(nside, scheme), nil
}

// Builds a pixelization without validating nside. Callers must have checked.
func newPixelization(nside int64, scheme Scheme) Pixelization {
	npface := nside * nside
	npix := 12 * npface
	fact2 := 4. / float64(npix)
	return Pixelization{
		nside:  nside,
		scheme: scheme,
		order:  nsideToOrder(nside),
		npface: npface,
		ncap:   (npface - nside) << 1,
		npix:   npix,
		fact2:  fact2,
		fact1:  float64(nside<<1) * fact2,
	}
}

func (h Pixelization) Nside() int64 {
	return h.nside
}

func (h Pixelization) Scheme() Scheme {
	return h.scheme
}

// log2(nside), or -1 when nside is not a power of two.
func (h Pixelization) Order() int {
	return h.order
}

func (h Pixelization) Npix() int64 {
	return h.npix
}

// Returns the same resolution under another scheme.
func (h Pixelization) WithScheme(scheme Scheme) (Pixelization, error) {
	return New(h.nside, scheme)
}

func (h Pixelization) checkPixel(pix int64) error {
	if pix < 0 || pix >= h.npix {
		return NewPixelRangeError(pix, h.npix)
	}
	return nil
}

type pixelizationJSON struct {
	Nside  int64  `json:"nside"`
	Scheme Scheme `json:"scheme"`
}

func (h Pixelization) MarshalJSON() ([]byte, error) {
	return json.Marshal(pixelizationJSON{Nside: h.nside, Scheme: h.scheme})
}

func (h *Pixelization) UnmarshalJSON(b []byte) error {
	var raw pixelizationJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	p, err := New(raw.Nside, raw.Scheme)
	if err != nil {
		return err
	}
	*h = p
	return nil
}
