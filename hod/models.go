package hod

import "math"

// Occupation models. All masses are in solar masses, all logarithms base 10
// unless a function notes otherwise. The numeric constants (1.41421356 for
// sqrt(2), 2.5066283 for sqrt(2*pi), the erf steepness factor 100) are kept
// exactly as published so that catalogs are reproducible against existing
// mocks.

// NCenLRG is the Zheng et al. (2005) central occupation probability for
// LRG-type tracers: a symmetric erfc step centered at 10^logMCut with width
// sigma in log-mass.
func NCenLRG(mh, logMCut, sigma float64) float64 {
	return 0.5 * math.Erfc((logMCut-math.Log10(mh))/(1.41421356*sigma))
}

// NSatLRG is the Zheng et al. (2005) satellite expected count for LRG-type
// tracers, modulated by the central occupation step. mCut must equal
// 10^logMCut; callers that shift logMCut for secondary bias pass the shifted
// pair. For mh < kappa*mCut and non-integer alpha the power term is NaN,
// which downstream draw comparison treats as "not kept".
func NSatLRG(mh, logMCut, mCut, m1, sigma, alpha, kappa float64) float64 {
	return math.Pow((mh-kappa*mCut)/m1, alpha) *
		0.5 * math.Erfc((logMCut-math.Log10(mh))/(1.41421356*sigma))
}

// NSatGeneric is the satellite expected count used for ELG and QSO tracers,
// a plain power law with amplitude aS.
func NSatGeneric(mh, mCut, kappa, m1, alpha, aS float64) float64 {
	return aS * math.Pow((mh-kappa*mCut)/m1, alpha)
}

// NCenELGv1 is the ELG central occupation model of arXiv:1910.05095: a
// Gaussian-weighted term times an erf sigmoid, plus a sharp erf threshold
// approximating the high-mass plateau at 0.5/Q. Note the reference model
// evaluates the mass in natural log, not log10.
func NCenELGv1(mh, pMax, q, logMCut, sigma, gamma float64) float64 {
	logMh := math.Log(mh)
	phi := gaussianPDF(logMh, logMCut, sigma)
	bigPhi := 0.5 * (1 + math.Erf(gamma*(logMh-logMCut)/sigma/math.Sqrt2))
	a := pMax - 1/q
	return 2*a*phi*bigPhi + 0.5/q*(1+math.Erf((logMh-logMCut)*100))
}

// NCenELGv2 is the ELG central occupation model of arXiv:2007.09012:
// Gaussian below the mass cutoff, power-law decay above it. The two branches
// meet continuously at logMh == logMCut.
func NCenELGv2(mh, pMax, logMCut, sigma, gamma float64) float64 {
	logMh := math.Log10(mh)
	if logMh <= logMCut {
		return pMax * gaussianPDF(logMh, logMCut, sigma)
	}
	return pMax * math.Pow(mh/math.Pow(10, logMCut), gamma) / (2.5066283 * sigma)
}

// NCenQSO is the QSO central occupation model of arXiv:2007.09012, a half-erf
// step scaled by the saturation probability pMax.
func NCenQSO(mh, pMax, logMCut, sigma float64) float64 {
	return 0.5 * pMax * (1 + math.Erf((math.Log10(mh)-logMCut)/1.41421356/sigma))
}

// gaussianPDF is the normal density with mean mean and standard deviation
// sigma; 0.3989422804014327 is 1/sqrt(2*pi).
func gaussianPDF(x, mean, sigma float64) float64 {
	d := x - mean
	return 0.3989422804014327 / sigma * math.Exp(-d*d/2/sigma/sigma)
}
