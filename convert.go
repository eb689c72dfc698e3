package hpgeom

// Conversions between the two numbering schemes go through the shared
// (face, ix, iy) decomposition and use integer arithmetic only, so they are
// exact at every resolution.

func (h Pixelization) ring2xyf(pix int64) (ix, iy int64, face int) {
	nside := h.nside
	nl2 := 2 * nside
	var iring, iphi, kshift, nr int64

	switch {
	case pix < h.ncap:
		// north polar cap
		iring = (1 + isqrt(1+2*pix)) >> 1
		iphi = (pix + 1) - 2*iring*(iring-1)
		nr = iring
		face = int((iphi - 1) / nr)
	case pix < h.npix-h.ncap:
		// equatorial belt
		ip := pix - h.ncap
		var tmp int64
		if h.order >= 0 {
			tmp = ip >> (h.order + 2)
		} else {
			tmp = ip / (4 * nside)
		}
		iring = tmp + nside
		iphi = ip - tmp*4*nside + 1
		kshift = (iring + nside) & 1
		nr = nside
		ire := tmp + 1
		irm := nl2 + 1 - tmp
		ifm := iphi - (ire >> 1) + nside - 1
		ifp := iphi - (irm >> 1) + nside - 1
		if h.order >= 0 {
			ifm >>= h.order
			ifp >>= h.order
		} else {
			ifm /= nside
			ifp /= nside
		}
		switch {
		case ifp == ifm:
			face = int(ifp | 4)
		case ifp < ifm:
			face = int(ifp)
		default:
			face = int(ifm + 8)
		}
	default:
		// south polar cap
		ip := h.npix - pix
		iring = (1 + isqrt(2*ip-1)) >> 1
		iphi = 4*iring + 1 - (ip - 2*iring*(iring-1))
		nr = iring
		iring = 2*nl2 - iring
		face = int((iphi-1)/nr) + 8
	}

	irt := iring - jrll[face]*nside + 1
	ipt := 2*iphi - jpll[face]*nr - kshift - 1
	if ipt >= nl2 {
		ipt -= 8 * nside
	}

	return (ipt - irt) >> 1, (-ipt - irt) >> 1, face
}

func (h Pixelization) xyf2ring(ix, iy int64, face int) int64 {
	jr := jrll[face]*h.nside - ix - iy - 1

	info := h.ringInfoSmall(jr)
	nr := info.ringpix >> 2
	var kshift int64
	if !info.shifted {
		kshift = 1
	}
	jp := (jpll[face]*nr + ix - iy + 1 + kshift) / 2
	if jp > 4*nr {
		jp -= 4 * nr
	} else if jp < 1 {
		jp += 4 * nr
	}
	return info.startpix + jp - 1
}

func (h Pixelization) pix2xyf(pix int64) (ix, iy int64, face int) {
	if h.scheme == RingScheme {
		return h.ring2xyf(pix)
	}
	return h.nest2xyf(pix)
}

func (h Pixelization) xyf2pix(ix, iy int64, face int) int64 {
	if h.scheme == RingScheme {
		return h.xyf2ring(ix, iy, face)
	}
	return h.xyf2nest(ix, iy, face)
}

// Converts a RING index at this resolution to its NEST index. The
// pixelization's own scheme is irrelevant; nside must be a power of two.
func (h Pixelization) RingToNest(pix int64) (int64, error) {
	if h.order < 0 {
		return 0, NewNsideError(h.nside, NestScheme, "nside must be a power of 2 for nest ordering")
	}
	if err := h.checkPixel(pix); err != nil {
		return 0, err
	}
	return h.ringToNest(pix), nil
}

// Converts a NEST index at this resolution to its RING index.
func (h Pixelization) NestToRing(pix int64) (int64, error) {
	if h.order < 0 {
		return 0, NewNsideError(h.nside, NestScheme, "nside must be a power of 2 for nest ordering")
	}
	if err := h.checkPixel(pix); err != nil {
		return 0, err
	}
	return h.nestToRing(pix), nil
}

func (h Pixelization) ringToNest(pix int64) int64 {
	ix, iy, face := h.ring2xyf(pix)
	return h.xyf2nest(ix, iy, face)
}

func (h Pixelization) nestToRing(pix int64) int64 {
	ix, iy, face := h.nest2xyf(pix)
	return h.xyf2ring(ix, iy, face)
}

// Returns the face and in-face coordinates of a pixel in this scheme.
func (h Pixelization) PixToFace(pix int64) (face int, ix, iy int64, err error) {
	if err := h.checkPixel(pix); err != nil {
		return 0, 0, 0, err
	}
	ix, iy, face = h.pix2xyf(pix)
	return face, ix, iy, nil
}

// Returns the pixel at the given face and in-face coordinates.
func (h Pixelization) FaceToPix(face int, ix, iy int64) (int64, error) {
	if face < 0 || face >= 12 {
		return 0, NewPixelRangeError(int64(face), 12)
	}
	if ix < 0 || ix >= h.nside {
		return 0, NewPixelRangeError(ix, h.nside)
	}
	if iy < 0 || iy >= h.nside {
		return 0, NewPixelRangeError(iy, h.nside)
	}
	return h.xyf2pix(ix, iy, face), nil
}
