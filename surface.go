package hpgeom

import (
	"context"
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"golang.org/x/exp/constraints"
)

// Package level shortcuts taking nside and scheme explicitly. Slice inputs
// are converted by a default Batch, which fails on the first invalid
// element; build a Batch directly for other behavior.

func toFloat64[F constraints.Float](s []F) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}

func toInt64[I constraints.Integer](s []I) []int64 {
	out := make([]int64, len(s))
	for i, v := range s {
		out[i] = int64(v)
	}
	return out
}

func lonLatBatch(lonlat bool) *Batch {
	if lonlat {
		return NewBatch(WithLonLat(true))
	}
	return NewBatch()
}

// Converts positions to pixels. a and b are colatitude and longitude in
// radians, or longitude and latitude in degrees when lonlat is set; either
// may have length 1 and is then broadcast.
func AngToPix[F constraints.Float](nside int64, a, b []F, scheme Scheme, lonlat bool) ([]int64, error) {
	h, err := New(nside, scheme)
	if err != nil {
		return nil, err
	}
	return lonLatBatch(lonlat).AngToPix(context.Background(), h, toFloat64(a), toFloat64(b))
}

// Returns pixel centers as colatitude and longitude in radians, or longitude
// and latitude in degrees when lonlat is set.
func PixToAng[I constraints.Integer](nside int64, pix []I, scheme Scheme, lonlat bool) (a, b []float64, err error) {
	h, err := New(nside, scheme)
	if err != nil {
		return nil, nil, err
	}
	return lonLatBatch(lonlat).PixToAng(context.Background(), h, toInt64(pix))
}

func VecToPix(nside int64, vecs []r3.Vector, scheme Scheme) ([]int64, error) {
	h, err := New(nside, scheme)
	if err != nil {
		return nil, err
	}
	return NewBatch().VecToPix(context.Background(), h, vecs)
}

func PixToVec[I constraints.Integer](nside int64, pix []I, scheme Scheme) ([]r3.Vector, error) {
	h, err := New(nside, scheme)
	if err != nil {
		return nil, err
	}
	return NewBatch().PixToVec(context.Background(), h, toInt64(pix))
}

func convertIndices[I constraints.Integer](nside int64, pix []I,
	convert func(*Batch, context.Context, Pixelization, []int64) ([]int64, error)) ([]I, error) {
	h, err := New(nside, NestScheme)
	if err != nil {
		return nil, err
	}
	conv, err := convert(NewBatch(), context.Background(), h, toInt64(pix))
	if err != nil {
		return nil, err
	}
	out := make([]I, len(conv))
	for i, p := range conv {
		out[i] = I(p)
		if int64(out[i]) != p {
			return nil, NewBatchError(i, NewOverflowError(p, fmt.Sprintf("%T", out[i])))
		}
	}
	return out, nil
}

// Converts RING indices to NEST, keeping the element type.
func RingToNest[I constraints.Integer](nside int64, pix []I) ([]I, error) {
	return convertIndices(nside, pix, (*Batch).RingToNest)
}

func NestToRing[I constraints.Integer](nside int64, pix []I) ([]I, error) {
	return convertIndices(nside, pix, (*Batch).NestToRing)
}

func QueryDisc(nside int64, center r3.Vector, radius s1.Angle, scheme Scheme, opts ...QueryOption) ([]int64, error) {
	h, err := New(nside, scheme)
	if err != nil {
		return nil, err
	}
	return h.QueryDisc(center, radius, opts...)
}

func QueryPolygon(nside int64, vertices []r3.Vector, scheme Scheme, opts ...QueryOption) ([]int64, error) {
	h, err := New(nside, scheme)
	if err != nil {
		return nil, err
	}
	return h.QueryPolygon(vertices, opts...)
}

func QueryStrip(nside int64, theta1, theta2 float64, scheme Scheme, opts ...QueryOption) ([]int64, error) {
	h, err := New(nside, scheme)
	if err != nil {
		return nil, err
	}
	return h.QueryStrip(theta1, theta2, opts...)
}

func Neighbors(nside int64, pix int64, scheme Scheme) ([8]int64, error) {
	h, err := New(nside, scheme)
	if err != nil {
		var none [8]int64
		return none, err
	}
	return h.Neighbors(pix)
}
