package hod

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// galaxyHeader is the column header of the text tables, matching the layout
// the downstream clustering scripts expect.
var galaxyHeader = []string{
	"x_gal", "y_gal", "z_gal", "vx_gal", "vy_gal", "vz_gal", "mass_halo", "id_halo",
}

// sig formats a parameter value to 6 significant figures for directory names.
func sig(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// OutputDirName encodes the LRG design and decoration values into the mock
// directory name, with an _rsd suffix when redshift-space distortions were
// applied. One parameter set maps to exactly one directory.
func OutputDirName(p HODParams, rsd bool) string {
	d, dec := p.LRG, p.LRGDecor
	parts := []string{
		"galaxies",
		sig(d.LogMCut), sig(d.LogM1), sig(d.Sigma), sig(d.Alpha), sig(d.Kappa),
		"decor",
		sig(dec.AlphaC), sig(dec.AlphaS), sig(dec.S), sig(dec.SV), sig(dec.SP), sig(dec.SR),
		sig(dec.ACent), sig(dec.ASat), sig(dec.BCent), sig(dec.BSat),
	}
	name := strings.Join(parts, "_")
	if rsd {
		name += "_rsd"
	}
	return name
}

// WriteFiles serializes the mock to whitespace-delimited text under
// saveDir/OutputDirName, one file per active tracer and population
// (for example LRGs_cent.dat and LRGs_sat.dat). I/O errors are returned to
// the caller unretried.
func (m *MockCatalog) WriteFiles(saveDir string, p HODParams, cfg RunConfig) (string, error) {
	outDir := filepath.Join(saveDir, OutputDirName(p, cfg.RSD))
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	for _, tr := range []Tracer{TracerLRG, TracerELG, TracerQSO} {
		if !tracerWanted(tr, cfg) {
			continue
		}
		centPath := filepath.Join(outDir, tr.String()+"s_cent.dat")
		if err := writeGalaxyTable(centPath, m.Centrals.Catalog(tr)); err != nil {
			return "", err
		}
		satPath := filepath.Join(outDir, tr.String()+"s_sat.dat")
		if err := writeGalaxyTable(satPath, m.Satellites.Catalog(tr)); err != nil {
			return "", err
		}
	}
	return outDir, nil
}

func tracerWanted(tr Tracer, cfg RunConfig) bool {
	switch tr {
	case TracerLRG:
		return cfg.WantLRG
	case TracerELG:
		return cfg.WantELG
	case TracerQSO:
		return cfg.WantQSO
	}
	return false
}

// writeGalaxyTable writes one catalog as a space-delimited table with a
// header row. Floats use the shortest round-trip representation so a reread
// reproduces the buffers bit for bit.
func writeGalaxyTable(path string, c *GalaxyCatalog) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	w := bufio.NewWriter(f)

	if _, err := w.WriteString(strings.Join(galaxyHeader, " ") + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	for i := 0; i < c.Len(); i++ {
		row := []string{
			strconv.FormatFloat(c.X[i], 'g', -1, 64),
			strconv.FormatFloat(c.Y[i], 'g', -1, 64),
			strconv.FormatFloat(c.Z[i], 'g', -1, 64),
			strconv.FormatFloat(c.VX[i], 'g', -1, 64),
			strconv.FormatFloat(c.VY[i], 'g', -1, 64),
			strconv.FormatFloat(c.VZ[i], 'g', -1, 64),
			strconv.FormatFloat(c.Mass[i], 'g', -1, 64),
			strconv.FormatInt(c.ID[i], 10),
		}
		if _, err := w.WriteString(strings.Join(row, " ") + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
