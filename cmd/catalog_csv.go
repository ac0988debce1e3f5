package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/galmock/galmock/hod"
)

// CSV ingestion for preprocessed catalog tables. Columns are located by
// header name so the preprocessing scripts are free to reorder or append
// columns.

type csvTable struct {
	path string
	cols map[string]int
	rows [][]string
}

func readCSVTable(path string, required []string) (*csvTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header of %s: %w", path, err)
	}
	t := &csvTable{path: path, cols: make(map[string]int, len(header))}
	for i, name := range header {
		t.cols[name] = i
	}
	for _, name := range required {
		if _, ok := t.cols[name]; !ok {
			return nil, fmt.Errorf("%s: missing required column %q", path, name)
		}
	}

	for row := 0; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: reading row %d: %w", path, row, err)
		}
		t.rows = append(t.rows, record)
	}
	return t, nil
}

func (t *csvTable) has(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// floatCol parses one column as float64 across all rows.
func (t *csvTable) floatCol(name string) ([]float64, error) {
	idx := t.cols[name]
	out := make([]float64, len(t.rows))
	for i, row := range t.rows {
		v, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: column %q row %d: %w", t.path, name, i, err)
		}
		out[i] = v
	}
	return out, nil
}

// intCol parses one column as int64 across all rows.
func (t *csvTable) intCol(name string) ([]int64, error) {
	idx := t.cols[name]
	out := make([]int64, len(t.rows))
	for i, row := range t.rows {
		v, err := strconv.ParseInt(row[idx], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: column %q row %d: %w", t.path, name, i, err)
		}
		out[i] = v
	}
	return out, nil
}

// vecCol zips three float columns into one 3-vector column.
func (t *csvTable) vecCol(xName, yName, zName string) ([][3]float64, error) {
	x, err := t.floatCol(xName)
	if err != nil {
		return nil, err
	}
	y, err := t.floatCol(yName)
	if err != nil {
		return nil, err
	}
	z, err := t.floatCol(zName)
	if err != nil {
		return nil, err
	}
	out := make([][3]float64, len(x))
	for i := range out {
		out[i] = [3]float64{x[i], y[i], z[i]}
	}
	return out, nil
}

// optFloatCol parses an optional column, returning nil when absent.
func (t *csvTable) optFloatCol(name string) ([]float64, error) {
	if !t.has(name) {
		return nil, nil
	}
	return t.floatCol(name)
}

// ReadHaloCSV loads a halo catalog table. Required columns:
// x y z vx vy vz mass id multis deltac_rank fenv_rank; the randoms and
// veldev columns are optional and can be attached from a seed instead.
func ReadHaloCSV(path string) (*hod.HaloCatalog, error) {
	t, err := readCSVTable(path, []string{
		"x", "y", "z", "vx", "vy", "vz", "mass", "id", "multis", "deltac_rank", "fenv_rank",
	})
	if err != nil {
		return nil, err
	}

	h := &hod.HaloCatalog{}
	if h.Pos, err = t.vecCol("x", "y", "z"); err != nil {
		return nil, err
	}
	if h.Vel, err = t.vecCol("vx", "vy", "vz"); err != nil {
		return nil, err
	}
	if h.Mass, err = t.floatCol("mass"); err != nil {
		return nil, err
	}
	if h.ID, err = t.intCol("id"); err != nil {
		return nil, err
	}
	if h.Multis, err = t.floatCol("multis"); err != nil {
		return nil, err
	}
	if h.DeltacRank, err = t.floatCol("deltac_rank"); err != nil {
		return nil, err
	}
	if h.FenvRank, err = t.floatCol("fenv_rank"); err != nil {
		return nil, err
	}
	if h.Randoms, err = t.optFloatCol("randoms"); err != nil {
		return nil, err
	}
	if h.VelDev, err = t.optFloatCol("veldev"); err != nil {
		return nil, err
	}
	return h, nil
}

// ReadParticleCSV loads a particle catalog table. Required columns:
// x y z vx vy vz hvx hvy hvz hmass hid weight deltac_rank fenv_rank; the
// randoms column and the four decoration rank columns are optional.
func ReadParticleCSV(path string) (*hod.ParticleCatalog, error) {
	t, err := readCSVTable(path, []string{
		"x", "y", "z", "vx", "vy", "vz", "hvx", "hvy", "hvz",
		"hmass", "hid", "weight", "deltac_rank", "fenv_rank",
	})
	if err != nil {
		return nil, err
	}

	p := &hod.ParticleCatalog{}
	if p.Pos, err = t.vecCol("x", "y", "z"); err != nil {
		return nil, err
	}
	if p.Vel, err = t.vecCol("vx", "vy", "vz"); err != nil {
		return nil, err
	}
	if p.HaloVel, err = t.vecCol("hvx", "hvy", "hvz"); err != nil {
		return nil, err
	}
	if p.HaloMass, err = t.floatCol("hmass"); err != nil {
		return nil, err
	}
	if p.HaloID, err = t.intCol("hid"); err != nil {
		return nil, err
	}
	if p.Weights, err = t.floatCol("weight"); err != nil {
		return nil, err
	}
	if p.DeltacRank, err = t.floatCol("deltac_rank"); err != nil {
		return nil, err
	}
	if p.FenvRank, err = t.floatCol("fenv_rank"); err != nil {
		return nil, err
	}
	if p.Randoms, err = t.optFloatCol("randoms"); err != nil {
		return nil, err
	}
	if p.Ranks, err = t.optFloatCol("rank"); err != nil {
		return nil, err
	}
	if p.RanksV, err = t.optFloatCol("rank_v"); err != nil {
		return nil, err
	}
	if p.RanksP, err = t.optFloatCol("rank_p"); err != nil {
		return nil, err
	}
	if p.RanksR, err = t.optFloatCol("rank_r"); err != nil {
		return nil, err
	}
	return p, nil
}
