package mc

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// rngSource is one electron's private uniform random source. Each electron
// traced within a Simulate call gets its own source, seeded deterministically
// from the call-level seed and the electron's index, so results never depend
// on goroutine scheduling or worker count. The global math/rand functions are
// never used -- every draw goes through an explicit rand.Source.
type rngSource struct {
	src rand.Source
}

// seedFor derives a per-electron seed from the call seed using the splitmix64
// finalizer mix, giving a splittable counter-based scheme in place of the
// source's process-wide, wall-clock-seeded PRNG.
func seedFor(callSeed int64, electronIndex int) int64 {
	x := uint64(callSeed) + uint64(electronIndex)*0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	x = x ^ (x >> 31)
	return int64(x)
}

func newRNG(callSeed int64, electronIndex int) *rngSource {
	return &rngSource{src: rand.NewSource(seedFor(callSeed, electronIndex))}
}

// uniform draws from Uniform[lo, hi) via gonum's distuv, reusing this
// source's rand.Source so every draw for this electron is reproducible.
func (r *rngSource) uniform(lo, hi float64) float64 {
	return distuv.Uniform{Min: lo, Max: hi, Src: r.src}.Rand()
}

func (r *rngSource) uniform01() float64 {
	return r.uniform(0, 1)
}
