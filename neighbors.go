package hpgeom

// In-face offsets of the eight neighbors, in the order SW, W, NW, N, NE, E,
// SE, S.
var (
	nbXOffset = [8]int64{-1, -1, 0, 1, 1, 1, 0, -1}
	nbYOffset = [8]int64{0, 1, 1, 1, 0, -1, -1, -1}
)

// Face across each edge or corner of each base face, indexed by the
// direction 3*dy+dx+4 (dx, dy in -1..1) and the face. -1 where no face
// touches that corner.
var nbFaceArray = [9][12]int{
	{8, 9, 10, 11, -1, -1, -1, -1, 10, 11, 8, 9}, // S
	{5, 6, 7, 4, 8, 9, 10, 11, 9, 10, 11, 8},     // SE
	{-1, -1, -1, -1, 5, 6, 7, 4, -1, -1, -1, -1}, // E
	{4, 5, 6, 7, 11, 8, 9, 10, 11, 8, 9, 10},     // SW
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},       // center
	{1, 2, 3, 0, 0, 1, 2, 3, 5, 6, 7, 4},         // NE
	{-1, -1, -1, -1, 7, 4, 5, 6, -1, -1, -1, -1}, // W
	{3, 0, 1, 2, 3, 0, 1, 2, 4, 5, 6, 7},         // NW
	{2, 3, 0, 1, -1, -1, -1, -1, 0, 1, 2, 3},     // N
}

// Coordinate transform on crossing into the neighbor face, per direction and
// face row (face/4): bit 1 mirrors x, bit 2 mirrors y, bit 4 swaps x and y.
var nbSwapArray = [9][3]int{
	{0, 0, 3}, // S
	{0, 0, 6}, // SE
	{0, 0, 0}, // E
	{0, 0, 5}, // SW
	{0, 0, 0}, // center
	{5, 0, 0}, // NE
	{0, 0, 0}, // W
	{6, 0, 0}, // NW
	{3, 0, 0}, // N
}

// Returns the eight neighbors of a pixel in the order SW, W, NW, N, NE, E,
// SE, S. Pixels at the corners of the polar and equatorial faces have only
// seven neighbors; the missing one is InvalidPixel.
func (h Pixelization) Neighbors(pix int64) ([8]int64, error) {
	if err := h.checkPixel(pix); err != nil {
		var none [8]int64
		return none, err
	}
	return h.neighbors(pix), nil
}

func (h Pixelization) neighbors(pix int64) [8]int64 {
	var result [8]int64
	ix, iy, face := h.pix2xyf(pix)
	nside := h.nside
	nsm1 := nside - 1

	if ix > 0 && ix < nsm1 && iy > 0 && iy < nsm1 {
		for m := range result {
			result[m] = h.xyf2pix(ix+nbXOffset[m], iy+nbYOffset[m], face)
		}
		return result
	}

	for i := range result {
		x, y := ix+nbXOffset[i], iy+nbYOffset[i]
		nbnum := 4
		if x < 0 {
			x += nside
			nbnum--
		} else if x >= nside {
			x -= nside
			nbnum++
		}
		if y < 0 {
			y += nside
			nbnum -= 3
		} else if y >= nside {
			y -= nside
			nbnum += 3
		}

		f := nbFaceArray[nbnum][face]
		if f < 0 {
			result[i] = InvalidPixel
			continue
		}
		bits := nbSwapArray[nbnum][face>>2]
		if bits&1 != 0 {
			x = nside - x - 1
		}
		if bits&2 != 0 {
			y = nside - y - 1
		}
		if bits&4 != 0 {
			x, y = y, x
		}
		result[i] = h.xyf2pix(x, y, f)
	}
	return result
}
