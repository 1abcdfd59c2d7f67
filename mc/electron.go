package mc

import (
	"errors"
	"math"

	"github.com/kjhughes/febidmc/vec3"
)

var errDirectionNaN = errors.New("NaN in direction update")

// ElectronState is one electron's current position, previous position, unit
// direction, energy, and the scratch scattering angles from the most recent
// sample.
type ElectronState struct {
	Point    vec3.Vec
	Previous vec3.Vec
	Dir      vec3.Vec // unit direction cosines (d_z, d_y, d_x)
	Energy   float64

	CosTheta, SinTheta, Psi float64
}

func newElectronState(p vec3.Vec, energy float64, dir vec3.Vec) *ElectronState {
	return &ElectronState{Point: p, Previous: p, Dir: dir, Energy: energy}
}

// recordPoint advances the electron to p, pushing the current point to Previous.
func (s *ElectronState) recordPoint(p vec3.Vec) {
	s.Previous = s.Point
	s.Point = p
}

// sampleAngles draws this step's scattering deflection.
func (s *ElectronState) sampleAngles(alpha float64, rng *rngSource) error {
	cosTheta, sinTheta, psi, err := scatteringAngles(alpha, rng)
	if err != nil {
		return err
	}
	s.CosTheta, s.SinTheta, s.Psi = cosTheta, sinTheta, psi
	return nil
}

// updateDirection rotates Dir by the last-sampled scattering angles.
func (s *ElectronState) updateDirection() error {
	dz, dy, dx := s.Dir.Z, s.Dir.Y, s.Dir.X
	if dz == 0 {
		dz = 1e-5
	}

	am := -dx / dz
	an := 1 / math.Sqrt(1+am*am)

	v1 := an * s.SinTheta
	v2 := an * am * s.SinTheta
	cosPsi := math.Cos(s.Psi)
	sinPsi := math.Sin(s.Psi)

	newDx := dx*s.CosTheta + v1*cosPsi + dy*v2*sinPsi
	newDy := dy*s.CosTheta + sinPsi*(dz*v1-dx*v2)
	newDz := dz*s.CosTheta + v2*cosPsi - dy*v1*sinPsi

	if math.IsNaN(newDx) || math.IsNaN(newDy) || math.IsNaN(newDz) {
		return errDirectionNaN
	}

	if newDx == 0 {
		newDx = 1e-7
	}
	if newDy == 0 {
		newDy = 1e-7
	}
	if newDz == 0 {
		newDz = 1e-7
	}

	s.Dir = vec3.Vec{Z: newDz, Y: newDy, X: newDx}
	return nil
}

// proposeNext returns the candidate next point at the given step length.
func (s *ElectronState) proposeNext(step float64) vec3.Vec {
	return s.Point.Add(s.Dir.Scale(step))
}

const boundaryEps = 1e-6

// clampToBox clamps each coordinate of p that lies outside [ε, axis_abs):
// below ε it becomes ε, at or above axis_abs it becomes axis_abs-ε. It reports
// whether any coordinate needed clamping -- which doubles as the "electron
// exited the volume" signal.
func clampToBox(p vec3.Vec, box vec3.Vec) (vec3.Vec, bool) {
	exited := false
	clampAxis := func(v, axisAbs float64) float64 {
		if v < boundaryEps {
			exited = true
			return boundaryEps
		}
		if v >= axisAbs {
			exited = true
			return axisAbs - boundaryEps
		}
		return v
	}
	clamped := vec3.Vec{
		Z: clampAxis(p.Z, box.Z),
		Y: clampAxis(p.Y, box.Y),
		X: clampAxis(p.X, box.X),
	}
	return clamped, exited
}

// boxExitPoint finds where a ray from p0 along dir leaves the bounding box,
// and clamps the result onto the face with the standard boundary jitter.
// It generalizes clampToBox's "is this coordinate outside the box" check
// into a full ray-box intersection, needed when a void segment's surface
// search misses entirely and the electron has to be recorded exiting
// through the nearest face instead.
func boxExitPoint(p0, dir, box vec3.Vec) vec3.Vec {
	tBest := math.Inf(1)
	axisT := func(p0a, da, hi float64) (float64, bool) {
		switch {
		case da > 0:
			return (hi - boundaryEps - p0a) / da, true
		case da < 0:
			return (boundaryEps - p0a) / da, true
		default:
			return 0, false
		}
	}
	if t, ok := axisT(p0.Z, dir.Z, box.Z); ok && t >= 0 && t < tBest {
		tBest = t
	}
	if t, ok := axisT(p0.Y, dir.Y, box.Y); ok && t >= 0 && t < tBest {
		tBest = t
	}
	if t, ok := axisT(p0.X, dir.X, box.X); ok && t >= 0 && t < tBest {
		tBest = t
	}
	if math.IsInf(tBest, 1) {
		tBest = 0
	}
	exit := p0.Add(dir.Scale(tBest))
	clamped, _ := clampToBox(exit, box)
	return clamped
}
