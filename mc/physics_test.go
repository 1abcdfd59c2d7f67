package mc

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScreeningParameterDecreasesWithEnergy(t *testing.T) {
	lo := ScreeningParameter(1, 14)
	hi := ScreeningParameter(10, 14)
	assert.Greater(t, lo, hi)
}

func TestElasticMeanFreePathPositive(t *testing.T) {
	alpha := ScreeningParameter(5, 14)
	lambda := ElasticMeanFreePath(5, 14, 2.3e-24, 28.09, alpha)
	assert.Greater(t, lambda, 0.0)
}

func TestBetheEnergyLossNeverPositive(t *testing.T) {
	j := IonizationPotentialKeV(14)
	for _, e := range []float64{0.05, 0.1, 1, 5, 20} {
		loss := BetheEnergyLossPerNm(e, 2.3e-24, 14, 28.09, j)
		assert.LessOrEqualf(t, loss, 0.0, "energy loss positive at E=%v", e)
	}
}

func TestScatteringAnglesStayInRange(t *testing.T) {
	src := rand.NewSource(99)
	rng := &rngSource{src: src}
	alpha := ScreeningParameter(5, 14)
	for i := 0; i < 1000; i++ {
		cosTheta, sinTheta, psi, err := scatteringAngles(alpha, rng)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, cosTheta, -1.0)
		assert.LessOrEqual(t, cosTheta, 1.0)
		assert.False(t, math.IsNaN(sinTheta))
		assert.GreaterOrEqual(t, psi, 0.0)
		assert.LessOrEqual(t, psi, 2*math.Pi)
	}
}

func TestSeedForIsDeterministicAndSplits(t *testing.T) {
	a := seedFor(1, 0)
	b := seedFor(1, 1)
	c := seedFor(1, 0)
	assert.Equal(t, a, c)
	assert.NotEqual(t, a, b)
}
