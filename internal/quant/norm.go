package quant

import "gonum.org/v1/gonum/stat/distuv"

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// NormCDF returns the standard normal cumulative distribution function N(x)
func NormCDF(x float64) float64 {
	return stdNormal.CDF(x)
}

// NormPDF returns the standard normal probability density function at x
func NormPDF(x float64) float64 {
	return stdNormal.Prob(x)
}
