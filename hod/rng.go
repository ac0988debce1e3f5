package hod

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Random columns are inputs to the generators, thrown once per object before
// any tracer evaluation and shared across all tracer checks. Catalogs read
// from preprocessed subsample files already carry them; the helpers here
// attach them deterministically for catalogs that do not.

// AttachRandoms fills the halo uniform-draw column from seed. Existing draws
// are kept.
func (h *HaloCatalog) AttachRandoms(seed uint64) {
	if h.Randoms != nil {
		return
	}
	u := distuv.Uniform{Min: 0, Max: 1, Src: rand.NewPCG(seed, 0)}
	h.Randoms = make([]float64, h.Len())
	for i := range h.Randoms {
		h.Randoms[i] = u.Rand()
	}
}

// AttachVelocityDeviates fills the halo velocity-dispersion deviate column
// from seed. vrms may supply a per-halo 3D dispersion in km/s, in which case
// each deviate is drawn with standard deviation vrms/sqrt(3) (the
// line-of-sight dispersion); with vrms nil, deviates are standard normal.
// Existing deviates are kept.
func (h *HaloCatalog) AttachVelocityDeviates(seed uint64, vrms []float64) {
	if h.VelDev != nil {
		return
	}
	n := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewPCG(seed, 1)}
	h.VelDev = make([]float64, h.Len())
	for i := range h.VelDev {
		d := n.Rand()
		if vrms != nil {
			d *= vrms[i] / math.Sqrt(3)
		}
		h.VelDev[i] = d
	}
}

// AttachRandoms fills the particle uniform-draw column from seed. Existing
// draws are kept.
func (p *ParticleCatalog) AttachRandoms(seed uint64) {
	if p.Randoms != nil {
		return
	}
	u := distuv.Uniform{Min: 0, Max: 1, Src: rand.NewPCG(seed, 2)}
	p.Randoms = make([]float64, p.Len())
	for i := range p.Randoms {
		p.Randoms[i] = u.Rand()
	}
}
