package preview

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjhughes/febidmc/mc"
)

func sampleGrid() *mc.GridSnapshot {
	shape := mc.Shape{Nz: 4, Ny: 4, Nx: 4}
	n := shape.Nz * shape.Ny * shape.Nx
	grid := &mc.GridSnapshot{Shape: shape, CellDim: 5, Grid: make([]float64, n), Surface: make([]byte, n)}
	return grid
}

func sampleTraj() mc.Trajectory {
	return mc.Trajectory{
		Points:   []float64{18, 10, 10, 12, 10, 10, 6, 10, 10},
		Energies: []float64{10, 7, 4},
		Masks:    []float64{0, 1, 1},
	}
}

func TestRenderSliceWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slice.png")
	err := RenderSlice(sampleGrid(), []mc.Trajectory{sampleTraj()}, 2, path)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestRenderSliceRejectsOutOfRangeIndex(t *testing.T) {
	err := RenderSlice(sampleGrid(), nil, 99, filepath.Join(t.TempDir(), "x.png"))
	assert.Error(t, err)
}

func TestRenderTrajectorySVGWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traj.svg")
	err := RenderTrajectorySVG(sampleTraj(), 2.0, path)
	require.NoError(t, err)
	assert.FileExists(t, path)
}
