package hpgeom

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurfaceAngPix(t *testing.T) {
	theta := []float32{0.1, 1.0, 2.5}
	phi := []float32{0.3}

	pix, err := AngToPix(64, theta, phi, NestScheme, false)
	require.NoError(t, err)
	h := mustNew(t, 64, NestScheme)
	for i, th := range theta {
		want, _ := h.AngToPix(float64(th), float64(phi[0]))
		assert.Equal(t, want, pix[i])
	}

	small := []int32{int32(pix[0]), int32(pix[1]), int32(pix[2])}
	lon, lat, err := PixToAng(64, small, NestScheme, true)
	require.NoError(t, err)
	back, err := AngToPix(64, lon, lat, NestScheme, true)
	require.NoError(t, err)
	assert.Equal(t, pix, back)

	_, err = AngToPix(3, theta, phi, NestScheme, false)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, _, err = PixToAng(4, []uint8{200}, RingScheme, false)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSurfaceVecPix(t *testing.T) {
	vecs := []r3.Vector{{X: 1}, {Y: -3}, {Z: 0.5}, {X: 1, Y: 1, Z: 1}}
	pix, err := VecToPix(5, vecs, RingScheme)
	require.NoError(t, err)

	centers, err := PixToVec(5, []uint16{uint16(pix[0]), uint16(pix[1]), uint16(pix[2]), uint16(pix[3])}, RingScheme)
	require.NoError(t, err)
	back, err := VecToPix(5, centers, RingScheme)
	require.NoError(t, err)
	assert.Equal(t, pix, back)

	_, err = VecToPix(5, []r3.Vector{{}}, RingScheme)
	assert.ErrorIs(t, err, ErrZeroVector)
}

func TestSurfaceRingNestKeepsType(t *testing.T) {
	ring := []int32{0, 13, 47}
	nest, err := RingToNest(2, ring)
	require.NoError(t, err)
	assert.Equal(t, []int32{3, 0, 44}, nest)

	back, err := NestToRing(2, nest)
	require.NoError(t, err)
	assert.Equal(t, ring, back)

	_, err = RingToNest(3, ring)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NestToRing(2, []int64{48})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSurfaceRingNestOverflow(t *testing.T) {
	_, err := RingToNest(16, []uint8{0, 200})
	var batchErr *BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, 1, batchErr.Index)
	var overflow *OverflowError
	require.ErrorAs(t, err, &overflow)
	assert.EqualValues(t, 702, overflow.Value)
	assert.Equal(t, "uint8", overflow.TypeName)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// the north pole pixel is the last of face 0 in nest ordering
	ring, err := NestToRing(16, []uint8{255})
	require.NoError(t, err)
	assert.Equal(t, []uint8{0}, ring)
	nest, err := RingToNest(16, []int16{200})
	require.NoError(t, err)
	assert.Equal(t, []int16{702}, nest)
}

func TestSurfaceQueries(t *testing.T) {
	for _, scheme := range []Scheme{RingScheme, NestScheme} {
		h := mustNew(t, 16, scheme)

		want, _ := h.QueryDisc(vec(1, 2), s1.Angle(0.2))
		got, err := QueryDisc(16, vec(1, 2), s1.Angle(0.2), scheme)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		poly := []r3.Vector{vec(1, 1), vec(1.3, 1), vec(1.2, 1.4)}
		want, _ = h.QueryPolygon(poly, Inclusive(2))
		got, err = QueryPolygon(16, poly, scheme, Inclusive(2))
		require.NoError(t, err)
		assert.Equal(t, want, got)

		want, _ = h.QueryStrip(0.5, 0.6)
		got, err = QueryStrip(16, 0.5, 0.6, scheme)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		nbs, err := Neighbors(16, 100, scheme)
		require.NoError(t, err)
		wantNbs, _ := h.Neighbors(100)
		assert.Equal(t, wantNbs, nbs)
	}

	_, err := QueryDisc(0, vec(1, 1), s1.Angle(0.1), RingScheme)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = QueryStrip(4, math.Pi+1, 0, RingScheme)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = Neighbors(4, 192, NestScheme)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
