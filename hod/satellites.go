package hod

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// GenerateSatellites populates satellite galaxies from a particle catalog.
// The LRG expected count shifts both logM_cut and logM1 by the parent halo's
// secondary-bias ranks and, when rank decorations are on, multiplies in the
// linear decorator 1 + s*rank + s_v*rank_v + s_p*rank_p + s_r*rank_r. The
// decorator can drive the expected count negative and the mass power law can
// produce NaN below kappa*M_cut; neither is clamped, since a draw in [0,1)
// never matches such a marker contribution. Satellite velocities relax from
// the parent halo velocity toward the particle velocity by alpha_s.
func GenerateSatellites(parts *ParticleCatalog, p HODParams, cfg RunConfig) (TracerSet, error) {
	if err := cfg.validate(); err != nil {
		return TracerSet{}, err
	}
	if err := parts.Validate(cfg.EnableRanks); err != nil {
		return TracerSet{}, err
	}

	d, dec, e, q := p.LRG, p.LRGDecor, p.ELG, p.QSO
	invVelZ := 0.0
	if cfg.RSD {
		invVelZ = 1 / cfg.VelZToKms
	}
	mCutE, m1E := math.Pow(10, e.LogMCut), math.Pow(10, e.LogM1)
	mCutQ, m1Q := math.Pow(10, q.LogMCut), math.Pow(10, q.LogM1)

	markers := func(i int) (lrg, elg, qso float64) {
		if cfg.WantLRG {
			logMCut := d.LogMCut + dec.ACent*parts.DeltacRank[i] + dec.BCent*parts.FenvRank[i]
			m1 := math.Pow(10, d.LogM1+dec.ASat*parts.DeltacRank[i]+dec.BSat*parts.FenvRank[i])
			base := NSatLRG(parts.HaloMass[i], logMCut, math.Pow(10, logMCut), m1, d.Sigma, d.Alpha, d.Kappa) *
				parts.Weights[i] * dec.IC
			if cfg.EnableRanks {
				base *= 1 + dec.S*parts.Ranks[i] + dec.SV*parts.RanksV[i] +
					dec.SP*parts.RanksP[i] + dec.SR*parts.RanksR[i]
			}
			lrg += base
		}
		elg = lrg
		if cfg.WantELG {
			elg += NSatGeneric(parts.HaloMass[i], mCutE, e.Kappa, m1E, e.Alpha, e.AS) * parts.Weights[i]
		}
		qso = elg
		if cfg.WantQSO {
			qso += NSatGeneric(parts.HaloMass[i], mCutQ, q.Kappa, m1Q, q.Alpha, q.AS) * parts.Weights[i]
		}
		return lrg, elg, qso
	}

	start := time.Now()
	plan, err := planPartition(parts.Len(), cfg.workers(), parts.Randoms, markers)
	if err != nil {
		return TracerSet{}, err
	}

	set := newTracerSet(plan.totals())
	err = plan.fill(func(i int, tr Tracer, row int64) {
		out := set.Catalog(tr)
		vx := parts.HaloVel[i][0] + dec.AlphaS*(parts.Vel[i][0]-parts.HaloVel[i][0])
		vy := parts.HaloVel[i][1] + dec.AlphaS*(parts.Vel[i][1]-parts.HaloVel[i][1])
		vz := parts.HaloVel[i][2] + dec.AlphaS*(parts.Vel[i][2]-parts.HaloVel[i][2])
		z := parts.Pos[i][2]
		if cfg.RSD {
			z = Wrap(z+vz*invVelZ, cfg.LBox)
		}
		out.X[row] = parts.Pos[i][0]
		out.Y[row] = parts.Pos[i][1]
		out.Z[row] = z
		out.VX[row] = vx
		out.VY[row] = vy
		out.VZ[row] = vz
		out.Mass[row] = parts.HaloMass[i]
		out.ID[row] = parts.HaloID[i]
	})
	if err != nil {
		return TracerSet{}, err
	}

	logrus.Infof("generated %d satellites (%d LRG, %d ELG, %d QSO) from %d particles in %v",
		set.Total(), set.LRG.Len(), set.ELG.Len(), set.QSO.Len(), parts.Len(), time.Since(start))
	return set, nil
}
