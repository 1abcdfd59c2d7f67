package mc

import (
	"math"

	"github.com/kjhughes/febidmc/vec3"
)

func floorIdx(p vec3.Vec, h float64) (i, j, k int) {
	return int(math.Floor(p.Z / h)), int(math.Floor(p.Y / h)), int(math.Floor(p.X / h))
}

func materialForMark(mark float64, materials []Element) (Element, bool) {
	for _, m := range materials {
		if m.Mark == mark {
			return m, true
		}
	}
	return Element{}, false
}

func energyLoss(e float64, mat Element) float64 {
	return BetheEnergyLossPerNm(e, mat.Density, mat.AtomicNumber, mat.AtomicWeight, mat.IonPotentialKeV)
}

// traceElectron traces one incident electron's full scattering trajectory,
// alternating scattering steps and void/solid segment classification until
// the energy drops to E_min or the electron leaves the volume.
func traceElectron(electronIndex int, y0, x0, e0, eMin float64, grid *GridSnapshot, materials []Element, rng *rngSource) (Trajectory, error) {
	h := grid.CellDim
	box := grid.AbsBox()

	entry := vec3.Vec{Z: box.Z - 1e-3, Y: y0, X: x0}
	b := newTrajectoryBuilder(16)
	b.push(entry, e0, 0.0)

	startPoint := entry
	iz, iy, ix := floorIdx(entry, h)
	if grid.InBounds(iz, iy, ix) && grid.At(iz, iy, ix) > -1 {
		topSolidIdx := -1
		for zi := grid.Shape.Nz - 1; zi >= 0; zi-- {
			if grid.At(zi, iy, ix) < 0 {
				topSolidIdx = zi
				break
			}
		}

		var dropZ float64
		if topSolidIdx == -1 {
			// No solid anywhere along this column: the drop leaves z = h,
			// which is this core's signal to close the trajectory immediately.
			dropZ = h
		} else {
			dropZ = float64(topSolidIdx+1)*h - 1e-3
		}

		dropPoint := vec3.Vec{Z: dropZ, Y: y0, X: x0}
		b.push(dropPoint, e0, 0.0)
		if dropZ == h {
			return b.build(), nil
		}
		startPoint = dropPoint
	}

	activeMaterial := materials[0]
	state := newElectronState(startPoint, e0, vec3.Vec{Z: -1, Y: 0, X: 0})
	energy := e0

	for energy > eMin {
		alpha := ScreeningParameter(energy, activeMaterial.AtomicNumber)
		lambda := ElasticMeanFreePath(energy, activeMaterial.AtomicNumber, activeMaterial.Density, activeMaterial.AtomicWeight, alpha)
		step := sampleStepLength(lambda, rng)

		if err := state.sampleAngles(alpha, rng); err != nil {
			return Trajectory{}, &PhysicsInvariantBrokenError{ElectronIndex: electronIndex, LastState: *state, Reason: err.Error()}
		}
		if err := state.updateDirection(); err != nil {
			return Trajectory{}, &PhysicsInvariantBrokenError{ElectronIndex: electronIndex, LastState: *state, Reason: err.Error()}
		}

		proposed := state.proposeNext(step)
		exiting := false
		next := proposed
		if clamped, didClamp := clampToBox(proposed, box); didClamp {
			step = state.Point.Dist(clamped)
			next = clamped
			exiting = true
		}

		niz, niy, nix := floorIdx(next, h)
		label := 0.0
		if grid.InBounds(niz, niy, nix) {
			label = grid.At(niz, niy, nix)
		}

		if label < 0 {
			energy += energyLoss(energy, activeMaterial) * step
			if energy < 0 {
				return Trajectory{}, &PhysicsInvariantBrokenError{ElectronIndex: electronIndex, LastState: *state, Reason: "energy became negative"}
			}
			state.Energy = energy
			state.recordPoint(next)
			b.push(next, energy, 1.0)
			if mat, ok := materialForMark(label, materials); ok {
				activeMaterial = mat
			}
		} else {
			flag, cs, c0 := FindCrossings(state.Point, state.Dir, grid, rng)
			switch flag {
			case 2:
				exitPoint := boxExitPoint(state.Point, state.Dir, box)
				state.recordPoint(exitPoint)
				b.push(exitPoint, energy, 0.0)
				return b.build(), nil
			case 1:
				dist := state.Point.Dist(cs)
				energy += energyLoss(energy, activeMaterial) * dist
				if energy < 0 {
					return Trajectory{}, &PhysicsInvariantBrokenError{ElectronIndex: electronIndex, LastState: *state, Reason: "energy became negative"}
				}
				state.Energy = energy
				state.recordPoint(cs)
				b.push(cs, energy, 1.0)
				// Grazed surface layer with no interior beyond it: treat as
				// zero solid thickness and re-exit at the same point.
				b.push(cs, energy, 0.0)
				state.recordPoint(cs)
			default: // flag == 0
				dist := state.Point.Dist(cs)
				energy += energyLoss(energy, activeMaterial) * dist
				if energy < 0 {
					return Trajectory{}, &PhysicsInvariantBrokenError{ElectronIndex: electronIndex, LastState: *state, Reason: "energy became negative"}
				}
				state.Energy = energy
				state.recordPoint(cs)
				b.push(cs, energy, 1.0)

				solidIz, solidIy, solidIx := floorIdx(c0, h)
				if grid.InBounds(solidIz, solidIy, solidIx) {
					solidLabel := grid.At(solidIz, solidIy, solidIx)
					if _, ok := materialForMark(solidLabel, materials); !ok {
						return Trajectory{}, &GridConsistencyError{ElectronIndex: electronIndex, LastState: *state, Label: solidLabel}
					}
				}
				state.recordPoint(c0)
				b.push(c0, energy, 0.0) // exit back into void, no further energy loss
			}
		}

		if exiting {
			return b.build(), nil
		}
	}

	return b.build(), nil
}
