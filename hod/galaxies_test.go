package hod

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

// buildTestInputs makes a seeded synthetic halo and particle catalog large
// enough to exercise every tracer branch and several worker partitions.
func buildTestInputs(nHalo, nPart int, seed uint64) (*HaloCatalog, *ParticleCatalog) {
	rng := rand.New(rand.NewPCG(seed, 0))
	h := &HaloCatalog{
		Pos:        make([][3]float64, nHalo),
		Vel:        make([][3]float64, nHalo),
		Mass:       make([]float64, nHalo),
		ID:         make([]int64, nHalo),
		Multis:     make([]float64, nHalo),
		Randoms:    make([]float64, nHalo),
		VelDev:     make([]float64, nHalo),
		DeltacRank: make([]float64, nHalo),
		FenvRank:   make([]float64, nHalo),
	}
	for i := 0; i < nHalo; i++ {
		for k := 0; k < 3; k++ {
			h.Pos[i][k] = (rng.Float64() - 0.5) * 32
			h.Vel[i][k] = (rng.Float64() - 0.5) * 1000
		}
		h.Mass[i] = 1e11 * rng.Float64() * 1e3
		h.ID[i] = int64(i)
		h.Multis[i] = 1
		h.Randoms[i] = rng.Float64()
		h.VelDev[i] = rng.NormFloat64() * 100
		h.DeltacRank[i] = rng.Float64() - 0.5
		h.FenvRank[i] = rng.Float64() - 0.5
	}
	p := &ParticleCatalog{
		Pos:        make([][3]float64, nPart),
		Vel:        make([][3]float64, nPart),
		HaloVel:    make([][3]float64, nPart),
		HaloMass:   make([]float64, nPart),
		HaloID:     make([]int64, nPart),
		Weights:    make([]float64, nPart),
		Randoms:    make([]float64, nPart),
		DeltacRank: make([]float64, nPart),
		FenvRank:   make([]float64, nPart),
	}
	for i := 0; i < nPart; i++ {
		for k := 0; k < 3; k++ {
			p.Pos[i][k] = (rng.Float64() - 0.5) * 32
			p.Vel[i][k] = (rng.Float64() - 0.5) * 1000
			p.HaloVel[i][k] = (rng.Float64() - 0.5) * 800
		}
		p.HaloMass[i] = 1e12 * rng.Float64() * 1e3
		p.HaloID[i] = int64(i)
		p.Weights[i] = 1 + 30*rng.Float64()
		p.Randoms[i] = rng.Float64()
		p.DeltacRank[i] = rng.Float64() - 0.5
		p.FenvRank[i] = rng.Float64() - 0.5
	}
	return h, p
}

func multiTracerParams() HODParams {
	return HODParams{
		LRG:      LRGDesign{LogMCut: 13.3, LogM1: 14.3, Sigma: 0.3, Alpha: 1.0, Kappa: 0.4},
		LRGDecor: LRGDecorations{AlphaC: 0.3, AlphaS: 0.9, IC: 0.97, ACent: 0.2, BCent: -0.1, ASat: 0.1, BSat: 0.05},
		ELG:      ELGDesign{PMax: 0.33, Q: 100, LogMCut: 11.7, Kappa: 1, Sigma: 0.58, LogM1: 13.5, Alpha: 1, Gamma: 4.12, AS: 0.6},
		QSO:      QSODesign{PMax: 0.33, LogMCut: 12.2, Kappa: 1, Sigma: 0.56, LogM1: 13.9, Alpha: 0.4, AS: 0.3},
	}
}

func TestPopulateGalaxiesConservation(t *testing.T) {
	halos, parts := buildTestInputs(500, 800, 11)
	cfg := RunConfig{
		WantLRG: true, WantELG: true, WantQSO: true,
		RSD: true, LBox: 32, VelZToKms: 100,
		Workers: 5,
	}

	mock, err := PopulateGalaxies(halos, parts, multiTracerParams(), cfg)
	require.NoError(t, err)

	// Every output object came from exactly one input object.
	assert.LessOrEqual(t, mock.Centrals.Total(), halos.Len())
	assert.LessOrEqual(t, mock.Satellites.Total(), parts.Len())
	assert.Greater(t, mock.Centrals.Total(), 0, "test inputs should produce some centrals")

	// RSD keeps every line-of-sight position inside the box.
	for _, c := range []*GalaxyCatalog{mock.Centrals.LRG, mock.Centrals.ELG, mock.Centrals.QSO,
		mock.Satellites.LRG, mock.Satellites.ELG, mock.Satellites.QSO} {
		if c.Len() == 0 {
			continue
		}
		assert.GreaterOrEqual(t, floats.Min(c.Z), -16.0)
		assert.Less(t, floats.Max(c.Z), 16.0)
	}
}

func TestPopulateGalaxiesWorkerCountInvariance(t *testing.T) {
	// The catalog content must not depend on how the index range is split.
	halos, parts := buildTestInputs(300, 400, 23)
	p := multiTracerParams()
	base := RunConfig{WantLRG: true, WantELG: true, WantQSO: true, Workers: 1}

	ref, err := PopulateGalaxies(halos, parts, p, base)
	require.NoError(t, err)
	for _, workers := range []int{2, 3, 8, 301} {
		cfg := base
		cfg.Workers = workers
		got, err := PopulateGalaxies(halos, parts, p, cfg)
		require.NoError(t, err)
		assert.Equal(t, ref, got, "workers=%d", workers)
	}
}

func TestPopulateGalaxiesByteIdenticalRerun(t *testing.T) {
	halos, parts := buildTestInputs(300, 400, 42)
	p := multiTracerParams()
	cfg := RunConfig{
		WantLRG: true, WantELG: true, WantQSO: true,
		RSD: true, LBox: 32, VelZToKms: 100, Workers: 4,
	}

	dirA, dirB := t.TempDir(), t.TempDir()
	for _, dir := range []string{dirA, dirB} {
		mock, err := PopulateGalaxies(halos, parts, p, cfg)
		require.NoError(t, err)
		_, err = mock.WriteFiles(dir, p, cfg)
		require.NoError(t, err)
	}

	sub := OutputDirName(p, true)
	for _, tr := range []Tracer{TracerLRG, TracerELG, TracerQSO} {
		for _, pop := range []string{"cent", "sat"} {
			name := tr.String() + "s_" + pop + ".dat"
			a, err := os.ReadFile(filepath.Join(dirA, sub, name))
			require.NoError(t, err)
			b, err := os.ReadFile(filepath.Join(dirB, sub, name))
			require.NoError(t, err)
			assert.Equal(t, a, b, "rerun must be byte-identical for %s", name)
		}
	}
}
