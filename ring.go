package hpgeom

import "math"

// Ring numbers are 1-based internally: ring 1 is the northernmost ring and
// ring 4*nside-1 the southernmost.

func (h Pixelization) ringLoc2pix(z, phi, sth float64, haveSth bool) int64 {
	za := math.Abs(z)
	tt := fmodulo(phi/halfPi, 4) // in [0,4)
	nside := h.nside

	if za <= twoThird {
		// equatorial belt
		nl4 := 4 * nside
		temp1 := float64(nside) * (0.5 + tt)
		temp2 := float64(nside) * z * 0.75
		jp := int64(temp1 - temp2) // ascending edge line
		jm := int64(temp1 + temp2) // descending edge line

		ir := nside + 1 + jp - jm // ring counted from z=2/3, in [1, 2nside+1]
		kshift := 1 - (ir & 1)

		t1 := jp + jm - nside + kshift + 1 + nl4 + nl4
		var ip int64
		if h.order > 0 {
			ip = (t1 >> 1) & (nl4 - 1)
		} else {
			ip = (t1 >> 1) % nl4
		}
		return h.ncap + (ir-1)*nl4 + ip
	}

	// polar caps
	tp := tt - math.Trunc(tt)
	var tmp float64
	if za < 0.99 || !haveSth {
		tmp = float64(nside) * math.Sqrt(3*(1-za))
	} else {
		tmp = float64(nside) * sth / math.Sqrt((1+za)/3)
	}

	jp := int64(tp * tmp)         // increasing edge line
	jm := int64((1.0 - tp) * tmp) // decreasing edge line

	ir := jp + jm + 1 // ring counted from the closest pole
	ip := int64(tt * float64(ir))
	if ip >= 4*ir {
		ip = 4*ir - 1
	}
	if z > 0 {
		return 2*ir*(ir-1) + ip
	}
	return h.npix - 2*ir*(ir+1) + ip
}

func (h Pixelization) ringPix2loc(pix int64) (z, phi, sth float64, haveSth bool) {
	nside := h.nside
	switch {
	case pix < h.ncap:
		// north polar cap
		iring := (1 + isqrt(1+2*pix)) >> 1
		iphi := (pix + 1) - 2*iring*(iring-1)

		tmp := float64(iring*iring) * h.fact2
		z = 1.0 - tmp
		if z > 0.99 {
			sth = math.Sqrt(tmp * (2.0 - tmp))
			haveSth = true
		}
		phi = (float64(iphi) - 0.5) * halfPi / float64(iring)
	case pix < h.npix-h.ncap:
		// equatorial belt
		nl4 := 4 * nside
		ip := pix - h.ncap
		var tmp int64
		if h.order >= 0 {
			tmp = ip >> (h.order + 2)
		} else {
			tmp = ip / nl4
		}
		iring := tmp + nside
		iphi := ip - nl4*tmp + 1
		// 1 if iring+nside is odd, 1/2 otherwise
		fodd := 0.5
		if (iring+nside)&1 != 0 {
			fodd = 1
		}
		z = float64(2*nside-iring) * h.fact1
		phi = (float64(iphi) - fodd) * math.Pi * 0.75 * h.fact1
	default:
		// south polar cap
		ip := h.npix - pix
		iring := (1 + isqrt(2*ip-1)) >> 1
		iphi := 4*iring + 1 - (ip - 2*iring*(iring-1))

		tmp := float64(iring*iring) * h.fact2
		z = tmp - 1.0
		if z < -0.99 {
			sth = math.Sqrt(tmp * (2.0 - tmp))
			haveSth = true
		}
		phi = (float64(iphi) - 0.5) * halfPi / float64(iring)
	}
	return z, phi, sth, haveSth
}

// Number of the ring on or north of z, 0 when z is north of ring 1.
func (h Pixelization) ringAbove(z float64) int64 {
	az := math.Abs(z)
	if az <= twoThird {
		return int64(float64(h.nside) * (2 - 1.5*z))
	}
	iring := int64(float64(h.nside) * math.Sqrt(3*(1-az)))
	if z > 0 {
		return iring
	}
	return 4*h.nside - iring - 1
}

// The z coordinate (cos theta) of the pixel centers on a ring.
func (h Pixelization) ring2z(ring int64) float64 {
	nside := h.nside
	if ring < nside {
		return 1 - float64(ring*ring)*h.fact2
	}
	if ring <= 3*nside {
		return float64(2*nside-ring) * h.fact1
	}
	ring = 4*nside - ring
	return float64(ring*ring)*h.fact2 - 1
}

// Describes one iso-latitude ring: the first pixel index, pixel count, and
// whether its pixel centers are offset by half a pixel from phi=0.
type ringInfo struct {
	startpix int64
	ringpix  int64
	shifted  bool
}

func (h Pixelization) ringInfoSmall(ring int64) ringInfo {
	nside := h.nside
	if ring < nside {
		return ringInfo{
			startpix: 2 * ring * (ring - 1),
			ringpix:  4 * ring,
			shifted:  true,
		}
	}
	if ring < 3*nside {
		return ringInfo{
			startpix: h.ncap + (ring-nside)*4*nside,
			ringpix:  4 * nside,
			shifted:  (ring-nside)&1 == 0,
		}
	}
	nr := 4*nside - ring
	return ringInfo{
		startpix: h.npix - 2*nr*(nr+1),
		ringpix:  4 * nr,
		shifted:  true,
	}
}

// Like ringInfoSmall, also returning the colatitude of the ring.
func (h Pixelization) ringInfoTheta(ring int64) (ringInfo, float64) {
	nside := h.nside
	northring := ring
	if ring > 2*nside {
		northring = 4*nside - ring
	}
	var info ringInfo
	var theta float64
	if northring < nside {
		tmp := float64(northring*northring) * h.fact2
		costheta := 1 - tmp
		sintheta := math.Sqrt(tmp * (2 - tmp))
		theta = math.Atan2(sintheta, costheta)
		info = ringInfo{
			startpix: 2 * northring * (northring - 1),
			ringpix:  4 * northring,
			shifted:  true,
		}
	} else {
		theta = math.Acos(float64(2*nside-northring) * h.fact1)
		info = ringInfo{
			startpix: h.ncap + (northring-nside)*4*nside,
			ringpix:  4 * nside,
			shifted:  (northring-nside)&1 == 0,
		}
	}
	if northring != ring {
		theta = math.Pi - theta
		info.startpix = h.npix - info.startpix - info.ringpix
	}
	return info, theta
}

// Returns the ring number of a RING scheme pixel.
func (h Pixelization) pixelRing(pix int64) int64 {
	nside := h.nside
	if pix < h.ncap {
		return (1 + isqrt(1+2*pix)) >> 1
	}
	if pix < h.npix-h.ncap {
		return (pix-h.ncap)/(4*nside) + nside
	}
	ip := h.npix - pix
	return 4*nside - ((1 + isqrt(2*ip-1)) >> 1)
}
