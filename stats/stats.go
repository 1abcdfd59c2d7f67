// Package stats computes aggregate batch statistics over a traced set of
// electron trajectories, built on gonum's stat package.
package stats

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/kjhughes/febidmc/mc"
)

// BatchSummary aggregates a Simulate call's trajectories for reporting.
type BatchSummary struct {
	ElectronCount     int
	MeanFinalEnergy   float64
	MedianFinalEnergy float64
	P90FinalEnergy    float64
	MeanTrajLen       float64
	SolidFraction     float64 // fraction of all recorded points with mask == 1
	Duration          time.Duration
}

// Summarize computes a BatchSummary over trajs. elapsed is the wall-clock
// duration of the Simulate call that produced them, supplied by the caller
// since this package has no notion of when tracing started.
func Summarize(trajs []mc.Trajectory, elapsed time.Duration) BatchSummary {
	if len(trajs) == 0 {
		return BatchSummary{Duration: elapsed}
	}

	finals := make([]float64, len(trajs))
	lens := make([]float64, len(trajs))
	var solidPoints, totalPoints float64

	for i, t := range trajs {
		n := t.Len()
		finals[i] = t.Energies[n-1]
		lens[i] = float64(n)
		totalPoints += float64(n)
		for _, m := range t.Masks {
			solidPoints += m
		}
	}

	sortedFinals := append([]float64(nil), finals...)
	sort.Float64s(sortedFinals)

	summary := BatchSummary{
		ElectronCount:     len(trajs),
		MeanFinalEnergy:   stat.Mean(finals, nil),
		MedianFinalEnergy: stat.Quantile(0.5, stat.LinInterp, sortedFinals, nil),
		P90FinalEnergy:    stat.Quantile(0.9, stat.LinInterp, sortedFinals, nil),
		MeanTrajLen:       stat.Mean(lens, nil),
		Duration:          elapsed,
	}
	if totalPoints > 0 {
		summary.SolidFraction = solidPoints / totalPoints
	}
	return summary
}
