package hod

import (
	"time"

	"github.com/sirupsen/logrus"
)

// GenerateCentrals populates central galaxies from a halo catalog. Each halo
// is tested once against cumulative tracer markers built from the occupation
// models: the LRG marker carries the assembly-bias shift of logM_cut, the
// incompleteness correction and the halo's subsample multiplier; disabled
// tracers leave their marker at the previous cumulative value. Central
// velocities pick up an isotropic velocity bias, the same dispersion deviate
// on all three axes, and RSD (when on) displaces only the line-of-sight
// position with a periodic wrap.
func GenerateCentrals(halos *HaloCatalog, p HODParams, cfg RunConfig) (TracerSet, error) {
	if err := cfg.validate(); err != nil {
		return TracerSet{}, err
	}
	if err := halos.Validate(); err != nil {
		return TracerSet{}, err
	}

	d, dec, e, q := p.LRG, p.LRGDecor, p.ELG, p.QSO
	invVelZ := 0.0
	if cfg.RSD {
		invVelZ = 1 / cfg.VelZToKms
	}

	markers := func(i int) (lrg, elg, qso float64) {
		if cfg.WantLRG {
			logMCut := d.LogMCut + dec.ACent*halos.DeltacRank[i] + dec.BCent*halos.FenvRank[i]
			lrg += NCenLRG(halos.Mass[i], logMCut, d.Sigma) * dec.IC * halos.Multis[i]
		}
		elg = lrg
		if cfg.WantELG {
			elg += NCenELGv1(halos.Mass[i], e.PMax, e.Q, e.LogMCut, e.Sigma, e.Gamma) * halos.Multis[i]
		}
		qso = elg
		if cfg.WantQSO {
			qso += NCenQSO(halos.Mass[i], q.PMax, q.LogMCut, q.Sigma)
		}
		return lrg, elg, qso
	}

	start := time.Now()
	plan, err := planPartition(halos.Len(), cfg.workers(), halos.Randoms, markers)
	if err != nil {
		return TracerSet{}, err
	}

	set := newTracerSet(plan.totals())
	err = plan.fill(func(i int, tr Tracer, row int64) {
		out := set.Catalog(tr)
		vb := dec.AlphaC * halos.VelDev[i]
		vx := halos.Vel[i][0] + vb
		vy := halos.Vel[i][1] + vb
		vz := halos.Vel[i][2] + vb
		z := halos.Pos[i][2]
		if cfg.RSD {
			z = Wrap(z+vz*invVelZ, cfg.LBox)
		}
		out.X[row] = halos.Pos[i][0]
		out.Y[row] = halos.Pos[i][1]
		out.Z[row] = z
		out.VX[row] = vx
		out.VY[row] = vy
		out.VZ[row] = vz
		out.Mass[row] = halos.Mass[i]
		out.ID[row] = halos.ID[i]
	})
	if err != nil {
		return TracerSet{}, err
	}

	logrus.Infof("generated %d centrals (%d LRG, %d ELG, %d QSO) from %d halos in %v",
		set.Total(), set.LRG.Len(), set.ELG.Len(), set.QSO.Len(), halos.Len(), time.Since(start))
	return set, nil
}
