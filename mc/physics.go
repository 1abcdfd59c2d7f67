package mc

import (
	"errors"
	"math"
)

const avogadroPerMol = 6.022141e23

// ScreeningParameter computes the screening parameter α(E, Z).
func ScreeningParameter(eKev, z float64) float64 {
	return 3.4e-3 * math.Pow(z, 0.67) / eKev
}

// ElasticCrossSection computes the screened-Rutherford elastic cross-section
// σ(E, Z, α), in nm².
func ElasticCrossSection(eKev, z, alpha float64) float64 {
	rel := (eKev + 511) / (eKev + 1022)
	return 5.21e-7 * z * z / (eKev * eKev) * 4 * math.Pi / (alpha * (1 + alpha)) * rel * rel
}

// ElasticMeanFreePath computes the mean free path λ between elastic
// scattering events, in nm.
func ElasticMeanFreePath(eKev, z, rho, a, alpha float64) float64 {
	sigma := ElasticCrossSection(eKev, z, alpha)
	return a / (avogadroPerMol * rho * 1e-21 * sigma)
}

// sampleStepLength draws the next elastic-scattering step length from the
// exponential distribution implied by the mean free path.
func sampleStepLength(meanFreePath float64, rng *rngSource) float64 {
	u := rng.uniform(1e-5, 1-1e-5)
	return -math.Log(u) * meanFreePath
}

// IonizationPotentialKeV computes J(Z), the mean ionisation potential. Used
// by config loading to fill in an Element's IonPotentialKeV when a material
// fixture doesn't supply it explicitly.
func IonizationPotentialKeV(z float64) float64 {
	return (9.76*z + 58.5*math.Pow(z, -0.19)) * 1e-3
}

// BetheEnergyLossPerNm computes dE/ds under the continuous-slowing-down
// approximation, in keV/nm. The result is clamped to <= 0: below
// J*(1/1.166-0.85) the raw formula would evaluate positive, which would let
// energy increase, so callers never see that case.
func BetheEnergyLossPerNm(eKev, rho, z, a, j float64) float64 {
	dEds := -7.85e-3 * rho * z / (a * eKev) * math.Log(1.166*(eKev/j+0.85))
	if dEds > 0 {
		return 0
	}
	return dEds
}

var errScatteringAnglesNaN = errors.New("NaN in scattering angle sampling")

// scatteringAngles draws the next elastic-scattering deflection (cos θ, sin θ,
// ψ) given the screening parameter α. The cos θ downcast-and-back-up clips
// the O(1e-12) numerical oscillation that can otherwise push it below -1.
func scatteringAngles(alpha float64, rng *rngSource) (cosTheta, sinTheta, psi float64, err error) {
	r1 := rng.uniform01()
	r2 := rng.uniform01()

	cosTheta = 1 - 2*alpha*r1/(1+alpha-r1)
	cosTheta = float64(float32(cosTheta))

	sinTheta = math.Sqrt(1 - cosTheta*cosTheta)
	psi = 2 * math.Pi * r2

	if math.IsNaN(cosTheta) || math.IsNaN(sinTheta) || math.IsNaN(psi) {
		return 0, 0, 0, errScatteringAnglesNaN
	}
	return cosTheta, sinTheta, psi, nil
}
