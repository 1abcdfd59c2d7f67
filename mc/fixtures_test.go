package mc

// buildGrid fills a uniform-cell grid of the given shape from a per-cell
// label function. Label < 0 marks solid; a non-negative label marks void.
// Surface flags the topmost solid cell of each column (the first one found
// scanning down from the top).
func buildGrid(shape Shape, cellDim float64, label func(i, j, k int) float64) *GridSnapshot {
	n := shape.Nz * shape.Ny * shape.Nx
	grid := &GridSnapshot{
		Shape:   shape,
		CellDim: cellDim,
		Grid:    make([]float64, n),
		Surface: make([]byte, n),
	}
	for i := 0; i < shape.Nz; i++ {
		for j := 0; j < shape.Ny; j++ {
			for k := 0; k < shape.Nx; k++ {
				grid.Grid[grid.index(i, j, k)] = label(i, j, k)
			}
		}
	}
	for j := 0; j < shape.Ny; j++ {
		for k := 0; k < shape.Nx; k++ {
			for i := shape.Nz - 1; i >= 0; i-- {
				if grid.At(i, j, k) < 0 {
					grid.Surface[grid.index(i, j, k)] = 1
					break
				}
			}
		}
	}
	return grid
}

func testMaterials() []Element {
	return []Element{
		{Density: 2.3e-24, AtomicNumber: 14, AtomicWeight: 28.09, IonPotentialKeV: IonizationPotentialKeV(14), Mark: -2},
		{Density: 19.3e-24, AtomicNumber: 74, AtomicWeight: 183.84, IonPotentialKeV: IonizationPotentialKeV(74), Mark: -1},
	}
}

// pureVoidGrid (S1): no solid anywhere.
func pureVoidGrid() *GridSnapshot {
	return buildGrid(Shape{Nz: 8, Ny: 8, Nx: 8}, 5.0, func(i, j, k int) float64 {
		return 0
	})
}

// uniformSolidGrid (S2): solid (deposit) in every cell.
func uniformSolidGrid() *GridSnapshot {
	return buildGrid(Shape{Nz: 8, Ny: 8, Nx: 8}, 5.0, func(i, j, k int) float64 {
		return -2
	})
}

// slabSubstrateGrid (S3): void above the midplane, substrate below it.
func slabSubstrateGrid() *GridSnapshot {
	shape := Shape{Nz: 10, Ny: 10, Nx: 10}
	return buildGrid(shape, 5.0, func(i, j, k int) float64 {
		if i < shape.Nz/2 {
			return -1
		}
		return 0
	})
}

// cavityGrid (S5): a solid block with a void pocket carved out of its middle.
func cavityGrid() *GridSnapshot {
	shape := Shape{Nz: 10, Ny: 10, Nx: 10}
	return buildGrid(shape, 5.0, func(i, j, k int) float64 {
		if i >= 3 && i <= 5 && j >= 3 && j <= 6 && k >= 3 && k <= 6 {
			return 0
		}
		return -2
	})
}
