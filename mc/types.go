// Package mc implements the Monte Carlo electron-scattering core: given a
// voxelized material grid and a set of beam entry points, it traces each
// primary electron's full scattering trajectory through the volume.
package mc

import "github.com/kjhughes/febidmc/vec3"

// Shape is the grid dimensions in cells, (Nz, Ny, Nx).
type Shape struct {
	Nz, Ny, Nx int
}

// Element is an immutable material record. Index 0 of a material table is
// the primary deposit, index 1 the substrate.
type Element struct {
	Density         float64 // ρ, kg/nm³
	AtomicNumber    float64 // Z
	AtomicWeight    float64 // A, g/mol
	IonPotentialKeV float64 // J, keV
	EParam          float64 // e, reserved for secondary-electron modeling (out of scope for this core)
	EscapeLenNm     float64 // λ_esc, nm
	Mark            float64 // grid label identifying this material, e.g. -2 (deposit) or -1 (substrate)
}

// GridSnapshot is a read-only voxel grid classifying every cell as void,
// surface, or solid. It is supplied fresh for each Simulate call and never
// mutated by this package.
type GridSnapshot struct {
	Shape   Shape
	CellDim float64 // nm, isotropic voxel edge
	// Grid is row-major (Nz, Ny, Nx); negative values are solid (-2 deposit,
	// -1 substrate), non-negative values are void.
	Grid []float64
	// Surface is row-major (Nz, Ny, Nx); non-zero marks a surface cell.
	Surface []byte
	ZTop    float64
}

func (g *GridSnapshot) index(i, j, k int) int {
	return (i*g.Shape.Ny+j)*g.Shape.Nx + k
}

// At returns the grid label at voxel (i, j, k) where i is the z-index.
func (g *GridSnapshot) At(i, j, k int) float64 {
	return g.Grid[g.index(i, j, k)]
}

// SurfaceAt returns the surface flag at voxel (i, j, k).
func (g *GridSnapshot) SurfaceAt(i, j, k int) byte {
	return g.Surface[g.index(i, j, k)]
}

// InBounds reports whether (i, j, k) addresses a cell of this grid.
func (g *GridSnapshot) InBounds(i, j, k int) bool {
	return i >= 0 && i < g.Shape.Nz && j >= 0 && j < g.Shape.Ny && k >= 0 && k < g.Shape.Nx
}

// AbsBox returns the absolute bounding box (Z_abs, Y_abs, X_abs) in nm.
func (g *GridSnapshot) AbsBox() vec3.Vec {
	return vec3.Vec{
		Z: float64(g.Shape.Nz) * g.CellDim,
		Y: float64(g.Shape.Ny) * g.CellDim,
		X: float64(g.Shape.Nx) * g.CellDim,
	}
}

// Trajectory is one incident electron's full scattering record. The three
// slices are parallel and of equal length; Points is row-major (L, 3) with
// each row in (z, y, x) order. They are returned directly from the backing
// arrays built during tracing -- the caller takes ownership, nothing is
// copied a second time.
type Trajectory struct {
	Points   []float64
	Energies []float64
	Masks    []float64
}

// Len returns the number of recorded points.
func (t Trajectory) Len() int {
	return len(t.Energies)
}

// Point returns the i-th recorded point.
func (t Trajectory) Point(i int) vec3.Vec {
	return vec3.Vec{Z: t.Points[i*3], Y: t.Points[i*3+1], X: t.Points[i*3+2]}
}

// trajectoryBuilder accumulates a trajectory's three parallel sequences with
// geometric growth: no fixed cap, slices grow themselves and are handed to
// the caller as-is.
type trajectoryBuilder struct {
	points   []float64
	energies []float64
	masks    []float64
}

func newTrajectoryBuilder(capHint int) *trajectoryBuilder {
	return &trajectoryBuilder{
		points:   make([]float64, 0, capHint*3),
		energies: make([]float64, 0, capHint),
		masks:    make([]float64, 0, capHint),
	}
}

func (b *trajectoryBuilder) push(p vec3.Vec, energy, mask float64) {
	b.points = append(b.points, p.Z, p.Y, p.X)
	b.energies = append(b.energies, energy)
	b.masks = append(b.masks, mask)
}

func (b *trajectoryBuilder) build() Trajectory {
	return Trajectory{Points: b.points, Energies: b.energies, Masks: b.masks}
}
