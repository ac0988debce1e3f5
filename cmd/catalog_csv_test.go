package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestCSV(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const haloCSV = `x,y,z,vx,vy,vz,mass,id,multis,deltac_rank,fenv_rank,randoms
1.0,2.0,3.0,10,20,30,1e13,42,1.0,0.1,-0.2,0.3
-4.0,5.0,-6.0,40,50,60,2e14,43,2.0,-0.5,0.5,0.7
`

func TestReadHaloCSV(t *testing.T) {
	h, err := ReadHaloCSV(writeTestCSV(t, "halos.csv", haloCSV))
	require.NoError(t, err)

	require.Equal(t, 2, h.Len())
	assert.Equal(t, [3]float64{1, 2, 3}, h.Pos[0])
	assert.Equal(t, [3]float64{40, 50, 60}, h.Vel[1])
	assert.Equal(t, 1e13, h.Mass[0])
	assert.Equal(t, int64(43), h.ID[1])
	assert.Equal(t, []float64{0.3, 0.7}, h.Randoms)
	assert.Nil(t, h.VelDev, "absent optional column stays nil")
}

func TestReadHaloCSVMissingColumn(t *testing.T) {
	_, err := ReadHaloCSV(writeTestCSV(t, "halos.csv", "x,y,z\n1,2,3\n"))
	assert.ErrorContains(t, err, "missing required column")
}

func TestReadHaloCSVBadValue(t *testing.T) {
	body := `x,y,z,vx,vy,vz,mass,id,multis,deltac_rank,fenv_rank
1,2,3,4,5,6,oops,7,1,0,0
`
	_, err := ReadHaloCSV(writeTestCSV(t, "halos.csv", body))
	assert.ErrorContains(t, err, `column "mass"`)
}

const particleCSV = `x,y,z,vx,vy,vz,hvx,hvy,hvz,hmass,hid,weight,deltac_rank,fenv_rank,rank,rank_v,rank_p,rank_r
1,2,3,10,20,30,11,21,31,1e14,7,32.5,0.1,0.2,0.4,-0.3,0.0,0.1
`

func TestReadParticleCSV(t *testing.T) {
	p, err := ReadParticleCSV(writeTestCSV(t, "particles.csv", particleCSV))
	require.NoError(t, err)

	require.Equal(t, 1, p.Len())
	assert.Equal(t, [3]float64{1, 2, 3}, p.Pos[0])
	assert.Equal(t, [3]float64{11, 21, 31}, p.HaloVel[0])
	assert.Equal(t, 1e14, p.HaloMass[0])
	assert.Equal(t, int64(7), p.HaloID[0])
	assert.Equal(t, 32.5, p.Weights[0])
	assert.Equal(t, []float64{0.4}, p.Ranks)
	assert.Equal(t, []float64{-0.3}, p.RanksV)
	assert.Nil(t, p.Randoms)
}

func TestReadParticleCSVWithoutRanks(t *testing.T) {
	body := `x,y,z,vx,vy,vz,hvx,hvy,hvz,hmass,hid,weight,deltac_rank,fenv_rank
1,2,3,10,20,30,11,21,31,1e14,7,32.5,0.1,0.2
`
	p, err := ReadParticleCSV(writeTestCSV(t, "particles.csv", body))
	require.NoError(t, err)
	assert.Nil(t, p.Ranks)
	assert.Nil(t, p.RanksR)
}

func TestReadParticleCSVMissingColumn(t *testing.T) {
	_, err := ReadParticleCSV(writeTestCSV(t, "particles.csv", "x,y,z\n1,2,3\n"))
	assert.ErrorContains(t, err, "missing required column")
}
