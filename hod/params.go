package hod

import (
	"fmt"
	"sort"
)

// Parameter vector lengths. The flat-vector field orders below are a wire
// contract: callers supplying plain arrays instead of named maps rely on
// these exact positions.
const (
	LRGDesignLen      = 5
	LRGDecorationsLen = 11
	ELGDesignLen      = 9
	QSODesignLen      = 7
)

// LRGDesign holds the five baseline Zheng et al. (2005) HOD parameters.
// Vector order: [logM_cut, logM1, sigma, alpha, kappa].
type LRGDesign struct {
	LogMCut float64
	LogM1   float64
	Sigma   float64
	Alpha   float64
	Kappa   float64
}

// LRGDecorations holds the generalized HOD parameters for the LRG tracer
// family. Vector order:
// [alpha_c, alpha_s, s, s_v, s_p, s_r, A_cent, A_sat, B_cent, B_sat, ic].
// Some older parameter files omit alpha_s and expect it to mirror alpha_c;
// see LRGDecorationsFromMap.
type LRGDecorations struct {
	AlphaC float64 // central velocity bias
	AlphaS float64 // satellite velocity bias
	S      float64 // radial-distance rank modifier
	SV     float64 // velocity-magnitude rank modifier
	SP     float64 // perihelion-distance rank modifier
	SR     float64 // radial-velocity rank modifier
	ACent  float64 // central assembly bias, concentration rank
	ASat   float64 // satellite assembly bias, concentration rank
	BCent  float64 // central environment bias
	BSat   float64 // satellite environment bias
	IC     float64 // incompleteness correction
}

// ELGDesign holds the ELG tracer parameters.
// Vector order: [p_max, Q, logM_cut, kappa, sigma, logM1, alpha, gamma, A_s].
type ELGDesign struct {
	PMax    float64
	Q       float64
	LogMCut float64
	Kappa   float64
	Sigma   float64
	LogM1   float64
	Alpha   float64
	Gamma   float64
	AS      float64
}

// QSODesign holds the QSO tracer parameters.
// Vector order: [p_max, logM_cut, kappa, sigma, logM1, alpha, A_s].
type QSODesign struct {
	PMax    float64
	LogMCut float64
	Kappa   float64
	Sigma   float64
	LogM1   float64
	Alpha   float64
	AS      float64
}

// HODParams bundles the full parameter set for one population pass.
type HODParams struct {
	LRG      LRGDesign
	LRGDecor LRGDecorations
	ELG      ELGDesign
	QSO      QSODesign
}

// ParseLRGDesignVector interprets a flat array in the LRGDesign field order.
func ParseLRGDesignVector(v []float64) (LRGDesign, error) {
	if len(v) != LRGDesignLen {
		return LRGDesign{}, fmt.Errorf("LRG design vector has %d elements, want %d", len(v), LRGDesignLen)
	}
	return LRGDesign{LogMCut: v[0], LogM1: v[1], Sigma: v[2], Alpha: v[3], Kappa: v[4]}, nil
}

// Vector returns the design in its contractual flat order.
func (d LRGDesign) Vector() []float64 {
	return []float64{d.LogMCut, d.LogM1, d.Sigma, d.Alpha, d.Kappa}
}

// ParseLRGDecorationVector interprets a flat array in the LRGDecorations
// field order. Slot 0 feeds the central velocity bias and slot 1 the
// satellite velocity bias.
func ParseLRGDecorationVector(v []float64) (LRGDecorations, error) {
	if len(v) != LRGDecorationsLen {
		return LRGDecorations{}, fmt.Errorf("LRG decoration vector has %d elements, want %d", len(v), LRGDecorationsLen)
	}
	return LRGDecorations{
		AlphaC: v[0], AlphaS: v[1],
		S: v[2], SV: v[3], SP: v[4], SR: v[5],
		ACent: v[6], ASat: v[7], BCent: v[8], BSat: v[9],
		IC: v[10],
	}, nil
}

// Vector returns the decorations in their contractual flat order.
func (d LRGDecorations) Vector() []float64 {
	return []float64{d.AlphaC, d.AlphaS, d.S, d.SV, d.SP, d.SR, d.ACent, d.ASat, d.BCent, d.BSat, d.IC}
}

// ParseELGDesignVector interprets a flat array in the ELGDesign field order.
func ParseELGDesignVector(v []float64) (ELGDesign, error) {
	if len(v) != ELGDesignLen {
		return ELGDesign{}, fmt.Errorf("ELG design vector has %d elements, want %d", len(v), ELGDesignLen)
	}
	return ELGDesign{
		PMax: v[0], Q: v[1], LogMCut: v[2], Kappa: v[3], Sigma: v[4],
		LogM1: v[5], Alpha: v[6], Gamma: v[7], AS: v[8],
	}, nil
}

// Vector returns the design in its contractual flat order.
func (d ELGDesign) Vector() []float64 {
	return []float64{d.PMax, d.Q, d.LogMCut, d.Kappa, d.Sigma, d.LogM1, d.Alpha, d.Gamma, d.AS}
}

// ParseQSODesignVector interprets a flat array in the QSODesign field order.
func ParseQSODesignVector(v []float64) (QSODesign, error) {
	if len(v) != QSODesignLen {
		return QSODesign{}, fmt.Errorf("QSO design vector has %d elements, want %d", len(v), QSODesignLen)
	}
	return QSODesign{
		PMax: v[0], LogMCut: v[1], Kappa: v[2], Sigma: v[3],
		LogM1: v[4], Alpha: v[5], AS: v[6],
	}, nil
}

// Vector returns the design in its contractual flat order.
func (d QSODesign) Vector() []float64 {
	return []float64{d.PMax, d.LogMCut, d.Kappa, d.Sigma, d.LogM1, d.Alpha, d.AS}
}

// mapFields pulls the named keys out of m, recording any that are absent so
// parameter files fail fast instead of defaulting a field to zero.
func mapFields(m map[string]float64, keys []string) ([]float64, []string) {
	vals := make([]float64, len(keys))
	var missing []string
	for i, k := range keys {
		v, ok := m[k]
		if !ok {
			missing = append(missing, k)
			continue
		}
		vals[i] = v
	}
	sort.Strings(missing)
	return vals, missing
}

// LRGDesignFromMap builds an LRGDesign from a named parameter map.
func LRGDesignFromMap(m map[string]float64) (LRGDesign, error) {
	vals, missing := mapFields(m, []string{"logM_cut", "logM1", "sigma", "alpha", "kappa"})
	if len(missing) > 0 {
		return LRGDesign{}, fmt.Errorf("LRG design parameters missing keys %v", missing)
	}
	return ParseLRGDesignVector(vals)
}

// LRGDecorationsFromMap builds LRGDecorations from a named parameter map.
// A missing alpha_s falls back to alpha_c, which keeps parameter files
// written for older mock generators reproducible.
func LRGDecorationsFromMap(m map[string]float64) (LRGDecorations, error) {
	vals, missing := mapFields(m, []string{
		"alpha_c", "alpha_s", "s", "s_v", "s_p", "s_r",
		"Acent", "Asat", "Bcent", "Bsat", "ic",
	})
	if len(missing) == 1 && missing[0] == "alpha_s" {
		if ac, ok := m["alpha_c"]; ok {
			vals[1] = ac
			missing = nil
		}
	}
	if len(missing) > 0 {
		return LRGDecorations{}, fmt.Errorf("LRG decoration parameters missing keys %v", missing)
	}
	return ParseLRGDecorationVector(vals)
}

// ELGDesignFromMap builds an ELGDesign from a named parameter map.
func ELGDesignFromMap(m map[string]float64) (ELGDesign, error) {
	vals, missing := mapFields(m, []string{"p_max", "Q", "logM_cut", "kappa", "sigma", "logM1", "alpha", "gamma", "A_s"})
	if len(missing) > 0 {
		return ELGDesign{}, fmt.Errorf("ELG design parameters missing keys %v", missing)
	}
	return ParseELGDesignVector(vals)
}

// QSODesignFromMap builds a QSODesign from a named parameter map.
func QSODesignFromMap(m map[string]float64) (QSODesign, error) {
	vals, missing := mapFields(m, []string{"p_max", "logM_cut", "kappa", "sigma", "logM1", "alpha", "A_s"})
	if len(missing) > 0 {
		return QSODesign{}, fmt.Errorf("QSO design parameters missing keys %v", missing)
	}
	return ParseQSODesignVector(vals)
}
