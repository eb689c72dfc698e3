package hpgeom

import (
	"context"
	"math"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/golang/geo/r3"
	"golang.org/x/sync/errgroup"
)

// Elements per worker task. Smaller inputs run on the calling goroutine.
const batchChunk = 4096

// Applies the single-element conversions to slices of inputs. Two input
// slices must have the same length, or one of them length 1, in which case
// it is broadcast against the other. A Batch holds only configuration and is
// safe for concurrent use.
type Batch struct {
	workers     int
	skipInvalid bool
	lonlat      bool
	degrees     bool
	metrics     MetricsCollector
}

type BatchOption func(*Batch)

// Limits the number of goroutines converting at once. Defaults to
// GOMAXPROCS.
func WithWorkers(n int) BatchOption {
	return func(b *Batch) {
		if n > 0 {
			b.workers = n
		}
	}
}

// Replaces invalid elements with InvalidPixel or NaN instead of failing the
// whole batch.
func WithSkipInvalid() BatchOption {
	return func(b *Batch) {
		b.skipInvalid = true
	}
}

// Angles are longitude/latitude rather than colatitude/longitude, in degrees
// when degrees is set, otherwise radians.
func WithLonLat(degrees bool) BatchOption {
	return func(b *Batch) {
		b.lonlat = true
		b.degrees = degrees
	}
}

func WithMetrics(m MetricsCollector) BatchOption {
	return func(b *Batch) {
		if m != nil {
			b.metrics = m
		}
	}
}

func NewBatch(opts ...BatchOption) *Batch {
	b := &Batch{
		workers: runtime.GOMAXPROCS(0),
		metrics: NoopMetricsCollector{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Output length of two broadcast inputs.
func broadcastLen(a, b int) (int, error) {
	switch {
	case a == b:
		return a, nil
	case a == 1:
		return b, nil
	case b == 1:
		return a, nil
	}
	return 0, NewBroadcastError(a, b)
}

func at[T any](s []T, i int) T {
	if len(s) == 1 {
		return s[0]
	}
	return s[i]
}

// Runs fn over [0, n). A failing element either aborts the batch, reported
// as a BatchError for the lowest failing index, or is passed to invalid when
// skipping.
func (b *Batch) run(ctx context.Context, op string, n int, fn func(i int) error, invalid func(i int)) error {
	start := time.Now()
	var failed atomic.Int64

	chunks := (n + batchChunk - 1) / batchChunk
	firstErr := make([]*BatchError, chunks)
	process := func(c int) {
		lo, hi := c*batchChunk, min(n, (c+1)*batchChunk)
		for i := lo; i < hi; i++ {
			if err := fn(i); err != nil {
				if !b.skipInvalid {
					firstErr[c] = NewBatchError(i, err)
					return
				}
				invalid(i)
				failed.Add(1)
			}
		}
	}

	if chunks <= 1 || b.workers == 1 {
		for c := 0; c < chunks; c++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			process(c)
			if firstErr[c] != nil {
				break
			}
		}
	} else {
		Logger().Debug("batch fan-out", "op", op, "elements", n, "chunks", chunks, "workers", b.workers)
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(b.workers)
		for c := 0; c < chunks; c++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				process(c)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	for _, err := range firstErr {
		if err != nil {
			b.metrics.RecordBatch(op, n, 1, time.Since(start))
			return err
		}
	}
	if f := failed.Load(); f > 0 {
		Logger().Warn("batch elements replaced by sentinels", "op", op, "invalid", f, "elements", n)
	}
	b.metrics.RecordBatch(op, n, int(failed.Load()), time.Since(start))
	return nil
}

// Converts positions to pixels. a and c are (theta, phi), or (lon, lat)
// under WithLonLat.
func (b *Batch) AngToPix(ctx context.Context, h Pixelization, a, c []float64) ([]int64, error) {
	n, err := broadcastLen(len(a), len(c))
	if err != nil {
		return nil, err
	}
	out := make([]int64, n)
	err = b.run(ctx, "ang2pix", n, func(i int) error {
		var pix int64
		var err error
		if b.lonlat {
			pix, err = h.LonLatToPix(at(a, i), at(c, i), b.degrees)
		} else {
			pix, err = h.AngToPix(at(a, i), at(c, i))
		}
		out[i] = pix
		return err
	}, func(i int) { out[i] = InvalidPixel })
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Returns the pixel centers as (theta, phi), or (lon, lat) under
// WithLonLat.
func (b *Batch) PixToAng(ctx context.Context, h Pixelization, pix []int64) (a, c []float64, err error) {
	n := len(pix)
	a, c = make([]float64, n), make([]float64, n)
	err = b.run(ctx, "pix2ang", n, func(i int) error {
		var err error
		if b.lonlat {
			a[i], c[i], err = h.PixToLonLat(pix[i], b.degrees)
		} else {
			a[i], c[i], err = h.PixToAng(pix[i])
		}
		return err
	}, func(i int) { a[i], c[i] = math.NaN(), math.NaN() })
	if err != nil {
		return nil, nil, err
	}
	return a, c, nil
}

func (b *Batch) VecToPix(ctx context.Context, h Pixelization, vecs []r3.Vector) ([]int64, error) {
	out := make([]int64, len(vecs))
	err := b.run(ctx, "vec2pix", len(vecs), func(i int) error {
		var err error
		out[i], err = h.VecToPix(vecs[i])
		return err
	}, func(i int) { out[i] = InvalidPixel })
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b *Batch) PixToVec(ctx context.Context, h Pixelization, pix []int64) ([]r3.Vector, error) {
	out := make([]r3.Vector, len(pix))
	err := b.run(ctx, "pix2vec", len(pix), func(i int) error {
		var err error
		out[i], err = h.PixToVec(pix[i])
		return err
	}, func(i int) {
		out[i] = r3.Vector{X: math.NaN(), Y: math.NaN(), Z: math.NaN()}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Converts RING indices to NEST at the resolution of h; h's scheme is
// ignored.
func (b *Batch) RingToNest(ctx context.Context, h Pixelization, pix []int64) ([]int64, error) {
	out := make([]int64, len(pix))
	err := b.run(ctx, "ring2nest", len(pix), func(i int) error {
		var err error
		out[i], err = h.RingToNest(pix[i])
		return err
	}, func(i int) { out[i] = InvalidPixel })
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b *Batch) NestToRing(ctx context.Context, h Pixelization, pix []int64) ([]int64, error) {
	out := make([]int64, len(pix))
	err := b.run(ctx, "nest2ring", len(pix), func(i int) error {
		var err error
		out[i], err = h.NestToRing(pix[i])
		return err
	}, func(i int) { out[i] = InvalidPixel })
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Invalid elements yield a row of InvalidPixel when skipping.
func (b *Batch) Neighbors(ctx context.Context, h Pixelization, pix []int64) ([][8]int64, error) {
	out := make([][8]int64, len(pix))
	err := b.run(ctx, "neighbors", len(pix), func(i int) error {
		var err error
		out[i], err = h.Neighbors(pix[i])
		return err
	}, func(i int) {
		for k := range out[i] {
			out[i][k] = InvalidPixel
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
