package mc

import (
	"math"

	"github.com/kjhughes/febidmc/vec3"
)

// ddaState holds the per-axis Amanatides-Woo marching state for one ray. It
// can be driven forward in two calls to next with different predicates so
// the solid-crossing search picks up wherever the surface-crossing search
// left off ("the solid crossing beyond c_s"), rather than restarting the ray.
type ddaState struct {
	t     [3]float64 // next candidate crossing distance, per axis (z, y, x)
	stepT [3]float64 // distance between successive crossings, per axis
}

// newDDAState initializes the marching state for a ray starting at p0 along
// dir through a grid of cell size h. The z-component is negated for this
// computation only (downward counting), so the first z-axis distance is
// measured to the cell face behind the ray rather than the one ahead of it;
// actual positions are always computed with the real (non-negated) direction.
func newDDAState(p0, dir vec3.Vec, h float64, rng *rngSource) *ddaState {
	countDir := vec3.Vec{Z: -dir.Z, Y: dir.Y, X: dir.X}
	p0c := [3]float64{p0.Z, p0.Y, p0.X}
	dc := [3]float64{countDir.Z, countDir.Y, countDir.X}

	var st ddaState
	for a := 0; a < 3; a++ {
		d := dc[a]
		if d == 0 {
			// sign recovered to avoid division by zero; this also stands in
			// for d_a itself in the formulas below.
			d = rng.uniform(-1e-6, 1e-6)
		}
		sign := 1.0
		if d < 0 {
			sign = -1.0
		}
		delta := -math.Mod(p0c[a], h)
		indPlus := 0.0
		if sign > 0 {
			indPlus = h
		}
		indZero := 0.0
		if delta == 0 {
			indZero = sign * h
		}
		st.t[a] = math.Abs((delta + indPlus + indZero) / d)
		st.stepT[a] = math.Abs(h / d)
	}
	return &st
}

// next advances the march to the next boundary crossing satisfying
// predicate, mutating st in place so a later call continues from here. It
// reports a miss once the ray leaves the grid's extent without satisfying
// predicate (see DESIGN.md for why this, rather than a literal "t > 1",
// is the termination condition: t_a is a physical nm distance, not a
// normalized [0,1] parameter, so only the grid's own extent bounds the
// search).
func (st *ddaState) next(p0, dir vec3.Vec, grid *GridSnapshot, predicate func(i, j, k int) bool) (hit bool, t float64, point vec3.Vec) {
	h := grid.CellDim
	for {
		aStar := 0
		if st.t[1] < st.t[aStar] {
			aStar = 1
		}
		if st.t[2] < st.t[aStar] {
			aStar = 2
		}

		tCandidate := st.t[aStar]
		p := p0.Add(dir.Scale(tCandidate))
		st.t[aStar] += st.stepT[aStar]

		iz := int(math.Floor(p.Z / h))
		iy := int(math.Floor(p.Y / h))
		ix := int(math.Floor(p.X / h))
		if !grid.InBounds(iz, iy, ix) {
			return false, 0, vec3.Vec{}
		}
		if predicate(iz, iy, ix) {
			return true, tCandidate, p
		}
	}
}

// signNonzero returns the sign of v, treating 0 as +1 (direction components
// are never exactly zero by construction -- see ElectronState.updateDirection).
func signNonzero(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// nudge shifts p by delta nm along each axis independently, in the sign of
// that axis's direction component -- i.e. symmetrically on z, y, and x. A
// negative delta pushes backward (toward void, used after a surface
// crossing); a positive delta pushes forward (into solid, used after a
// solid crossing).
func nudge(p, dir vec3.Vec, delta float64) vec3.Vec {
	return vec3.Vec{
		Z: p.Z + signNonzero(dir.Z)*delta,
		Y: p.Y + signNonzero(dir.Y)*delta,
		X: p.X + signNonzero(dir.X)*delta,
	}
}

// FindCrossings runs the dual grid traversal for a void segment
// starting at p0 along dir: the first surface crossing, then the first
// solid-interior crossing beyond it. flag is 0 if both were found, 1 if the
// surface was found but no solid interior follows it (a grazed, effectively
// zero-thickness surface layer), or 2 if the surface search itself missed.
func FindCrossings(p0, dir vec3.Vec, grid *GridSnapshot, rng *rngSource) (flag int, cs, c0 vec3.Vec) {
	st := newDDAState(p0, dir, grid.CellDim, rng)

	hitSurface, _, pSurface := st.next(p0, dir, grid, func(i, j, k int) bool {
		return grid.SurfaceAt(i, j, k) != 0
	})
	if !hitSurface {
		return 2, vec3.Vec{}, vec3.Vec{}
	}
	cs = nudge(pSurface, dir, -1e-3)

	hitSolid, _, pSolid := st.next(p0, dir, grid, func(i, j, k int) bool {
		return grid.At(i, j, k) <= -1
	})
	if !hitSolid {
		return 1, cs, vec3.Vec{}
	}
	c0 = nudge(pSolid, dir, 1e-3)
	return 0, cs, c0
}
