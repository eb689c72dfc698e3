package hpgeom

import "math/bits"

// The NUNIQ scheme packs (nside, nest pixel) into a single integer,
// 4*nside^2 + pix, unique across all resolutions.

func NestToUniq(nside int64, pix int64) (int64, error) {
	h, err := New(nside, NestScheme)
	if err != nil {
		return 0, err
	}
	if err := h.checkPixel(pix); err != nil {
		return 0, err
	}
	return 4*h.npface + pix, nil
}

func RingToUniq(nside int64, pix int64) (int64, error) {
	h, err := New(nside, NestScheme)
	if err != nil {
		return 0, err
	}
	nest, err := h.RingToNest(pix)
	if err != nil {
		return 0, err
	}
	return 4*h.npface + nest, nil
}

// Decodes a NUNIQ value into its nside and NEST pixel.
func UniqToNest(uniq int64) (nside int64, pix int64, err error) {
	if uniq < 4 {
		return 0, 0, NewUniqError(uniq)
	}
	order := (bits.Len64(uint64(uniq))-1)/2 - 1
	if order > MaxOrder {
		return 0, 0, NewUniqError(uniq)
	}
	nside = int64(1) << order
	return nside, uniq - 4*nside*nside, nil
}

func UniqToRing(uniq int64) (nside int64, pix int64, err error) {
	nside, nest, err := UniqToNest(uniq)
	if err != nil {
		return 0, 0, err
	}
	h := newPixelization(nside, NestScheme)
	return nside, h.nestToRing(nest), nil
}
