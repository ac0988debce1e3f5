package hod

import "fmt"

// MockCatalog is the result of one full population pass: six catalogs, three
// tracers times centrals and satellites.
type MockCatalog struct {
	Centrals   TracerSet
	Satellites TracerSet
}

// PopulateGalaxies runs the central generator over the halo catalog and the
// satellite generator over the particle catalog with a shared parameter set.
// Both inputs stay untouched; the same inputs and parameters always produce
// identical output buffers, since every random draw is carried by the
// catalogs themselves.
func PopulateGalaxies(halos *HaloCatalog, parts *ParticleCatalog, p HODParams, cfg RunConfig) (*MockCatalog, error) {
	cents, err := GenerateCentrals(halos, p, cfg)
	if err != nil {
		return nil, fmt.Errorf("centrals: %w", err)
	}
	sats, err := GenerateSatellites(parts, p, cfg)
	if err != nil {
		return nil, fmt.Errorf("satellites: %w", err)
	}
	return &MockCatalog{Centrals: cents, Satellites: sats}, nil
}
