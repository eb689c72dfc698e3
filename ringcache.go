package hpgeom

import "sync"

// Rings of resolutions above this are computed on demand instead of tabled.
const maxTabledNside = 8192

type ringTable struct {
	info []ringInfo // indexed by ring-1
	z    []float64
}

type ringTableEntry struct {
	once  sync.Once
	table *ringTable
}

// Keyed by nside. Tables are built once and never mutated afterwards.
var ringTables sync.Map

func buildRingTable(h Pixelization) *ringTable {
	nrings := 4*h.nside - 1
	t := &ringTable{
		info: make([]ringInfo, nrings),
		z:    make([]float64, nrings),
	}
	for ring := int64(1); ring <= nrings; ring++ {
		t.info[ring-1] = h.ringInfoSmall(ring)
		t.z[ring-1] = h.ring2z(ring)
	}
	Logger().Debug("built ring geometry table", "nside", h.nside, "rings", nrings)
	return t
}

func lookupRingTable(h Pixelization) *ringTable {
	if h.nside > maxTabledNside {
		return nil
	}
	v, _ := ringTables.LoadOrStore(h.nside, &ringTableEntry{})
	entry := v.(*ringTableEntry)
	entry.once.Do(func() {
		entry.table = buildRingTable(h)
	})
	return entry.table
}

// Read-only view of the ring layout of one resolution, backed by the shared
// table when one exists.
type ringGeometry struct {
	h     Pixelization
	table *ringTable
}

func (h Pixelization) ringGeometry() ringGeometry {
	return ringGeometry{h: h, table: lookupRingTable(h)}
}

func (g ringGeometry) info(ring int64) ringInfo {
	if g.table != nil {
		return g.table.info[ring-1]
	}
	return g.h.ringInfoSmall(ring)
}

func (g ringGeometry) z(ring int64) float64 {
	if g.table != nil {
		return g.table.z[ring-1]
	}
	return g.h.ring2z(ring)
}
