package hpgeom

import (
	"errors"
	"fmt"
)

var (
	// All argument validation failures match this sentinel with errors.Is.
	ErrInvalidArgument = errors.New("invalid argument")

	ErrZeroVector = fmt.Errorf("%w: vector must have non-zero length", ErrInvalidArgument)
)

type NsideError struct {
	Nside  int64
	Scheme Scheme
	Reason string
}

func NewNsideError(nside int64, scheme Scheme, reason string) *NsideError {
	return &NsideError{
		Nside:  nside,
		Scheme: scheme,
		Reason: reason,
	}
}

func (n NsideError) Error() string {
	return fmt.Sprintf("invalid nside %d for %s scheme: %s", n.Nside, n.Scheme, n.Reason)
}

func (n NsideError) Is(target error) bool { return target == ErrInvalidArgument }

type NpixError struct {
	Npix int64
}

func NewNpixError(npix int64) *NpixError {
	return &NpixError{Npix: npix}
}

func (n NpixError) Error() string {
	return fmt.Sprintf("illegal number of pixels %d: not 12*nside^2", n.Npix)
}

func (n NpixError) Is(target error) bool { return target == ErrInvalidArgument }

type PixelRangeError struct {
	Pixel int64
	Npix  int64
}

func NewPixelRangeError(pix int64, npix int64) *PixelRangeError {
	return &PixelRangeError{
		Pixel: pix,
		Npix:  npix,
	}
}

func (p PixelRangeError) Error() string {
	return fmt.Sprintf("pixel %d out of range [0, %d)", p.Pixel, p.Npix)
}

func (p PixelRangeError) Is(target error) bool { return target == ErrInvalidArgument }

// Raised for colatitudes outside [0, pi], latitudes outside [-90, 90] and
// non-finite angles. Name identifies the offending coordinate.
type AngleError struct {
	Name  string
	Value float64
	Range string
}

func NewAngleError(name string, value float64, validRange string) *AngleError {
	return &AngleError{
		Name:  name,
		Value: value,
		Range: validRange,
	}
}

func (a AngleError) Error() string {
	return fmt.Sprintf("%s %v out of range %s", a.Name, a.Value, a.Range)
}

func (a AngleError) Is(target error) bool { return target == ErrInvalidArgument }

type RadiusError struct {
	Radius float64
}

func NewRadiusError(radius float64) *RadiusError {
	return &RadiusError{Radius: radius}
}

func (r RadiusError) Error() string {
	return fmt.Sprintf("radius %v must be positive and finite", r.Radius)
}

func (r RadiusError) Is(target error) bool { return target == ErrInvalidArgument }

type PolygonError struct {
	Reason string
}

func NewPolygonError(reason string) *PolygonError {
	return &PolygonError{Reason: reason}
}

func (p PolygonError) Error() string {
	return "invalid polygon: " + p.Reason
}

func (p PolygonError) Is(target error) bool { return target == ErrInvalidArgument }

type FactError struct {
	Fact   int64
	Nside  int64
	Reason string
}

func NewFactError(fact int64, nside int64, reason string) *FactError {
	return &FactError{
		Fact:   fact,
		Nside:  nside,
		Reason: reason,
	}
}

func (f FactError) Error() string {
	return fmt.Sprintf("invalid inclusive factor %d at nside %d: %s", f.Fact, f.Nside, f.Reason)
}

func (f FactError) Is(target error) bool { return target == ErrInvalidArgument }

type StepError struct {
	Step int
}

func NewStepError(step int) *StepError {
	return &StepError{Step: step}
}

func (s StepError) Error() string {
	return fmt.Sprintf("boundary step %d must be at least 1", s.Step)
}

func (s StepError) Is(target error) bool { return target == ErrInvalidArgument }

type UniqError struct {
	Uniq int64
}

func NewUniqError(uniq int64) *UniqError {
	return &UniqError{Uniq: uniq}
}

func (u UniqError) Error() string {
	return fmt.Sprintf("invalid unique pixel %d", u.Uniq)
}

func (u UniqError) Is(target error) bool { return target == ErrInvalidArgument }

type BroadcastError struct {
	LenA int
	LenB int
}

func NewBroadcastError(lenA int, lenB int) *BroadcastError {
	return &BroadcastError{
		LenA: lenA,
		LenB: lenB,
	}
}

func (b BroadcastError) Error() string {
	return fmt.Sprintf("cannot broadcast inputs of length %d and %d", b.LenA, b.LenB)
}

func (b BroadcastError) Is(target error) bool { return target == ErrInvalidArgument }

// A converted index that does not fit the caller's element type.
type OverflowError struct {
	Value    int64
	TypeName string
}

func NewOverflowError(value int64, typeName string) *OverflowError {
	return &OverflowError{
		Value:    value,
		TypeName: typeName,
	}
}

func (o OverflowError) Error() string {
	return fmt.Sprintf("index %d does not fit in %s", o.Value, o.TypeName)
}

func (o OverflowError) Is(target error) bool { return target == ErrInvalidArgument }

// Wraps the failure of a single element of a batch operation.
type BatchError struct {
	Index int
	Err   error
}

func NewBatchError(index int, err error) *BatchError {
	return &BatchError{
		Index: index,
		Err:   err,
	}
}

func (b BatchError) Error() string {
	return fmt.Sprintf("element %d: %v", b.Index, b.Err)
}

func (b BatchError) Unwrap() error { return b.Err }

type LocationNotSupportedError struct {
	Indexer  string
	Location Location
}

func NewLocationNotSupportedError(indexer string, location Location) *LocationNotSupportedError {
	return &LocationNotSupportedError{
		Indexer:  indexer,
		Location: location,
	}
}

func (l LocationNotSupportedError) Error() string {
	return fmt.Sprintf("location %v not supported by indexer %s", l.Location, l.Indexer)
}

type LocationOutOfBoundsError struct {
	Location Location
	Err      error
}

func NewLocationOutOfBoundsError(location Location, err error) LocationOutOfBoundsError {
	return LocationOutOfBoundsError{Location: location, Err: err}
}

func (l LocationOutOfBoundsError) Error() string {
	if l.Err != nil {
		return fmt.Sprintf("location %v was out of bounds: %v", l.Location, l.Err)
	}
	return fmt.Sprintf("location %v was out of bounds", l.Location)
}

func (l LocationOutOfBoundsError) Unwrap() error { return l.Err }
