package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjhughes/febidmc/mc"
	"github.com/kjhughes/febidmc/vec3"
)

func TestNearFindsNearbyPoints(t *testing.T) {
	trajs := []mc.Trajectory{
		{Points: []float64{10, 10, 10, 20, 20, 20}, Energies: []float64{5, 4}, Masks: []float64{0, 1}},
		{Points: []float64{100, 100, 100}, Energies: []float64{3}, Masks: []float64{1}},
	}
	idx := New(trajs)

	hits := idx.Near(vec3.Vec{Z: 10, Y: 10, X: 10}, 1.0)
	require.Len(t, hits, 1)
	assert.Equal(t, 0, hits[0].TrajectoryIndex)
	assert.Equal(t, 0, hits[0].PointIndex)
}

func TestNearReturnsNothingFarAway(t *testing.T) {
	trajs := []mc.Trajectory{
		{Points: []float64{10, 10, 10}, Energies: []float64{5}, Masks: []float64{0}},
	}
	idx := New(trajs)

	hits := idx.Near(vec3.Vec{Z: 500, Y: 500, X: 500}, 1.0)
	assert.Empty(t, hits)
}
