package hod

import (
	"fmt"
	"runtime"
)

// HaloCatalog is the struct-of-arrays halo input to the central generator.
// All columns must have equal length; every column is read-only during a
// population pass.
type HaloCatalog struct {
	Pos  [][3]float64 // positions in box units
	Vel  [][3]float64 // velocities in km/s
	Mass []float64    // halo mass in solar masses
	ID   []int64

	Multis  []float64 // inverse halo subsample probability
	Randoms []float64 // uniform draw in [0,1), fixed before tracer evaluation
	VelDev  []float64 // Gaussian velocity-dispersion deviate, km/s

	DeltacRank []float64 // concentration rank in [-0.5, 0.5]
	FenvRank   []float64 // environment density rank in [-0.5, 0.5]
}

// Len returns the number of halos.
func (h *HaloCatalog) Len() int { return len(h.Mass) }

type column struct {
	name string
	len  int
}

// Validate checks that every column covers all halos.
func (h *HaloCatalog) Validate() error {
	n := h.Len()
	cols := []column{
		{"position", len(h.Pos)},
		{"velocity", len(h.Vel)},
		{"id", len(h.ID)},
		{"multiplicity", len(h.Multis)},
		{"random_draw", len(h.Randoms)},
		{"velocity_deviate", len(h.VelDev)},
		{"deltac_rank", len(h.DeltacRank)},
		{"fenv_rank", len(h.FenvRank)},
	}
	for _, c := range cols {
		if c.len != n {
			return fmt.Errorf("halo catalog: column %s has %d rows, want %d", c.name, c.len, n)
		}
	}
	return nil
}

// ParticleCatalog is the struct-of-arrays particle input to the satellite
// generator. Each particle carries its parent halo's velocity, mass, id and
// secondary-bias ranks. The four decoration rank columns are optional and
// only consulted when RunConfig.EnableRanks is set.
type ParticleCatalog struct {
	Pos     [][3]float64 // particle positions in box units
	Vel     [][3]float64 // particle velocities in km/s
	HaloVel [][3]float64 // parent halo velocities in km/s

	HaloMass []float64 // parent halo mass in solar masses
	HaloID   []int64

	Weights []float64 // inverse particle subsample probability
	Randoms []float64 // uniform draw in [0,1), fixed before tracer evaluation

	DeltacRank []float64 // parent halo concentration rank
	FenvRank   []float64 // parent halo environment rank

	// Decoration ranks, each normalized to zero mean and unit
	// mean-absolute-rank scale.
	Ranks  []float64 // radial-distance rank
	RanksV []float64 // velocity-magnitude rank
	RanksP []float64 // perihelion-distance rank
	RanksR []float64 // radial-velocity rank
}

// Len returns the number of particles.
func (p *ParticleCatalog) Len() int { return len(p.HaloMass) }

// Validate checks column lengths. Rank columns are validated only when
// withRanks is set; they may be nil otherwise.
func (p *ParticleCatalog) Validate(withRanks bool) error {
	n := p.Len()
	cols := []column{
		{"position", len(p.Pos)},
		{"velocity", len(p.Vel)},
		{"halo_velocity", len(p.HaloVel)},
		{"halo_id", len(p.HaloID)},
		{"weight", len(p.Weights)},
		{"random_draw", len(p.Randoms)},
		{"halo_deltac_rank", len(p.DeltacRank)},
		{"halo_fenv_rank", len(p.FenvRank)},
	}
	if withRanks {
		cols = append(cols,
			column{"rank", len(p.Ranks)},
			column{"rank_v", len(p.RanksV)},
			column{"rank_p", len(p.RanksP)},
			column{"rank_r", len(p.RanksR)},
		)
	}
	for _, c := range cols {
		if c.len != n {
			return fmt.Errorf("particle catalog: column %s has %d rows, want %d", c.name, c.len, n)
		}
	}
	return nil
}

// RunConfig groups the simulation-scoped parameters of one population pass.
// The zero value is not usable: LBox and VelZToKms must be positive when RSD
// is requested.
type RunConfig struct {
	WantLRG bool
	WantELG bool
	WantQSO bool

	RSD         bool // apply line-of-sight redshift-space displacement
	EnableRanks bool // apply per-particle rank decorations to satellites

	LBox         float64 // periodic box size, box units
	VelZToKms    float64 // km/s per unit line-of-sight displacement, H(z)/(1+z)
	ParticleMass float64 // simulation particle mass in solar masses

	Workers int // worker partitions per pass; <= 0 means runtime.NumCPU()
}

func (c RunConfig) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// validate rejects configurations the generators cannot run with.
func (c RunConfig) validate() error {
	if c.RSD && (c.VelZToKms <= 0 || c.LBox <= 0) {
		return fmt.Errorf("run config: RSD requires positive velz2kms and Lbox, got velz2kms=%v Lbox=%v",
			c.VelZToKms, c.LBox)
	}
	return nil
}
