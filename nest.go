package hpgeom

import "math"

// Ring number (in units of nside) of the southernmost corner of each base
// face, and the longitude (in units of pi/4) of its center.
var (
	jrll = [12]int64{2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4}
	jpll = [12]int64{1, 3, 5, 7, 0, 2, 4, 6, 1, 3, 5, 7}
)

func (h Pixelization) nestLoc2pix(z, phi, sth float64, haveSth bool) int64 {
	za := math.Abs(z)
	tt := fmodulo(phi/halfPi, 4) // in [0,4)
	nside := h.nside

	if za <= twoThird {
		// equatorial belt
		temp1 := float64(nside) * (0.5 + tt)
		temp2 := float64(nside) * (z * 0.75)
		jp := int64(temp1 - temp2) // ascending edge line
		jm := int64(temp1 + temp2) // descending edge line
		ifp := jp >> h.order       // in [0,4]
		ifm := jm >> h.order
		var face int
		switch {
		case ifp == ifm:
			face = int(ifp | 4)
		case ifp < ifm:
			face = int(ifp)
		default:
			face = int(ifm + 8)
		}
		ix := jm & (nside - 1)
		iy := nside - (jp & (nside - 1)) - 1
		return h.xyf2nest(ix, iy, face)
	}

	// polar caps
	ntt := min(3, int(tt))
	tp := tt - float64(ntt)
	var tmp float64
	if za < 0.99 || !haveSth {
		tmp = float64(nside) * math.Sqrt(3*(1-za))
	} else {
		tmp = float64(nside) * sth / math.Sqrt((1+za)/3)
	}

	jp := int64(tp * tmp)
	jm := int64((1.0 - tp) * tmp)
	// points right on the face boundary
	jp = min(jp, nside-1)
	jm = min(jm, nside-1)
	if z >= 0 {
		return h.xyf2nest(nside-jm-1, nside-jp-1, ntt)
	}
	return h.xyf2nest(jp, jm, ntt+8)
}

func (h Pixelization) nestPix2loc(pix int64) (z, phi, sth float64, haveSth bool) {
	nside := h.nside
	ix, iy, face := h.nest2xyf(pix)

	jr := (jrll[face] << h.order) - ix - iy - 1

	var nr int64
	switch {
	case jr < nside:
		nr = jr
		tmp := float64(nr*nr) * h.fact2
		z = 1 - tmp
		if z > 0.99 {
			sth = math.Sqrt(tmp * (2.0 - tmp))
			haveSth = true
		}
	case jr > 3*nside:
		nr = 4*nside - jr
		tmp := float64(nr*nr) * h.fact2
		z = tmp - 1
		if z < -0.99 {
			sth = math.Sqrt(tmp * (2.0 - tmp))
			haveSth = true
		}
	default:
		nr = nside
		z = float64(2*nside-jr) * h.fact1
	}

	tmp := jpll[face]*nr + ix - iy
	if tmp < 0 {
		tmp += 8 * nr
	}
	if nr == nside {
		phi = 0.75 * halfPi * float64(tmp) * h.fact1
	} else {
		phi = (0.5 * halfPi * float64(tmp)) / float64(nr)
	}
	return z, phi, sth, haveSth
}

func (h Pixelization) xyf2nest(ix, iy int64, face int) int64 {
	return (int64(face) << (2 * h.order)) + spreadBits(ix) + (spreadBits(iy) << 1)
}

func (h Pixelization) nest2xyf(pix int64) (ix, iy int64, face int) {
	face = int(pix >> (2 * h.order))
	pix &= h.npface - 1
	return compressBits(pix), compressBits(pix >> 1), face
}
