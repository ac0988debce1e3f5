// Package hod populates dark-matter halo catalogs with mock galaxies using a
// parametric Halo Occupation Distribution model. Centrals are drawn per halo
// and satellites per subsampled halo particle; each generated galaxy belongs
// to exactly one tracer class (LRG, ELG or QSO), decided competitively from a
// single pre-thrown uniform random number per object.
package hod

// Tracer identifies the galaxy population class an object was assigned to.
type Tracer uint8

const (
	TracerNone Tracer = iota // object hosts no galaxy
	TracerLRG
	TracerELG
	TracerQSO
)

// numTracers is the number of active tracer classes (TracerNone excluded).
const numTracers = 3

func (t Tracer) String() string {
	switch t {
	case TracerLRG:
		return "LRG"
	case TracerELG:
		return "ELG"
	case TracerQSO:
		return "QSO"
	}
	return "none"
}

// slot maps an active tracer to its index in per-tracer count and catalog
// arrays. Calling slot on TracerNone is a programming error.
func (t Tracer) slot() int {
	return int(t) - 1
}

// GalaxyCatalog holds one tracer population as eight equal-length columns.
// Buffers are sized exactly once by the partition engine and written exactly
// once during the fill pass.
type GalaxyCatalog struct {
	X, Y, Z    []float64 // positions in box units
	VX, VY, VZ []float64 // velocities in km/s
	Mass       []float64 // parent halo mass in solar masses
	ID         []int64   // parent halo id
}

func newGalaxyCatalog(n int64) *GalaxyCatalog {
	return &GalaxyCatalog{
		X:    make([]float64, n),
		Y:    make([]float64, n),
		Z:    make([]float64, n),
		VX:   make([]float64, n),
		VY:   make([]float64, n),
		VZ:   make([]float64, n),
		Mass: make([]float64, n),
		ID:   make([]int64, n),
	}
}

// Len returns the number of galaxies in the catalog.
func (c *GalaxyCatalog) Len() int { return len(c.Mass) }

// TracerSet groups the per-tracer catalogs produced by one generator pass.
type TracerSet struct {
	LRG *GalaxyCatalog
	ELG *GalaxyCatalog
	QSO *GalaxyCatalog
}

func newTracerSet(totals [numTracers]int64) TracerSet {
	return TracerSet{
		LRG: newGalaxyCatalog(totals[TracerLRG.slot()]),
		ELG: newGalaxyCatalog(totals[TracerELG.slot()]),
		QSO: newGalaxyCatalog(totals[TracerQSO.slot()]),
	}
}

// Catalog returns the catalog for an active tracer, or nil for TracerNone.
func (s TracerSet) Catalog(tr Tracer) *GalaxyCatalog {
	switch tr {
	case TracerLRG:
		return s.LRG
	case TracerELG:
		return s.ELG
	case TracerQSO:
		return s.QSO
	}
	return nil
}

// Total returns the number of galaxies across all tracers.
func (s TracerSet) Total() int {
	return s.LRG.Len() + s.ELG.Len() + s.QSO.Len()
}

// Wrap maps x into the periodic interval [-L/2, L/2). Redshift-space
// displacements are small compared to the box, so the loops almost never run
// more than once.
func Wrap(x, l float64) float64 {
	half := l / 2
	for x >= half {
		x -= l
	}
	for x < -half {
		x += l
	}
	return x
}
