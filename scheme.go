package hpgeom

import "fmt"

// The pixel numbering scheme of a HEALPix map. The same pixel has different
// indices under the two schemes, so an index is meaningless without both its
// scheme and nside.
type Scheme int8

const (
	// Pixels numbered ring by ring from the north pole, increasing in
	// longitude within a ring.
	RingScheme Scheme = iota
	// Pixels numbered hierarchically within each of the 12 base faces.
	NestScheme
)

func (s Scheme) String() string {
	switch s {
	case RingScheme:
		return "ring"
	case NestScheme:
		return "nest"
	}
	return fmt.Sprintf("Scheme(%d)", int8(s))
}

func (s Scheme) MarshalText() ([]byte, error) {
	switch s {
	case RingScheme, NestScheme:
		return []byte(s.String()), nil
	}
	return nil, fmt.Errorf("hpgeom: cannot marshal unknown scheme %d", int8(s))
}

func (s *Scheme) UnmarshalText(text []byte) error {
	switch string(text) {
	case "ring", "RING":
		*s = RingScheme
	case "nest", "NEST", "nested", "NESTED":
		*s = NestScheme
	default:
		return fmt.Errorf("hpgeom: unknown scheme %q", string(text))
	}
	return nil
}

func (s Scheme) valid() bool {
	return s == RingScheme || s == NestScheme
}
