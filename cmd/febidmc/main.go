//-----------------------------------------------------------------------------
/*

febidmc

Trace primary-electron trajectories through a voxelized FEBID grid from a
YAML run description, report batch statistics, and optionally export the
traced trajectories to preview and interchange formats.

*/
//-----------------------------------------------------------------------------

package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kjhughes/febidmc/config"
	"github.com/kjhughes/febidmc/export"
	"github.com/kjhughes/febidmc/mc"
	"github.com/kjhughes/febidmc/preview"
	"github.com/kjhughes/febidmc/stats"
)

//-----------------------------------------------------------------------------

func main() {
	runPath := flag.String("config", "", "path to the run's YAML config")
	svgOut := flag.String("svg", "", "optional path to write the first trajectory as SVG")
	meshOut := flag.String("mesh3mf", "", "optional path to write the first trajectory as a 3MF mesh")
	sliceOut := flag.String("slice", "", "optional path to write a PNG preview of the entry-level grid slice")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if *runPath == "" {
		log.Fatal().Msg("missing required -config flag")
	}

	if err := run(*runPath, *svgOut, *meshOut, *sliceOut); err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

func run(runPath, svgOut, meshOut, sliceOut string) error {
	cfg, err := config.Load(runPath)
	if err != nil {
		return err
	}
	grid, err := config.LoadGrid(cfg.GridFile)
	if err != nil {
		return err
	}

	log.Info().
		Int("entries", len(cfg.Entries)).
		Int("materials", len(cfg.Materials)).
		Float64("e_min_kev", cfg.EMinKeV).
		Msg("starting trace")

	start := time.Now()
	trajs, err := mc.Simulate(cfg.EntriesToMC(), cfg.EMinKeV, grid, cfg.Elements(), cfg.Seed)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	summary := stats.Summarize(trajs, elapsed)
	log.Info().
		Int("electrons", summary.ElectronCount).
		Float64("mean_final_energy_kev", summary.MeanFinalEnergy).
		Float64("median_final_energy_kev", summary.MedianFinalEnergy).
		Float64("solid_fraction", summary.SolidFraction).
		Dur("duration", summary.Duration).
		Msg("trace complete")

	if len(trajs) == 0 {
		return nil
	}
	first := trajs[0]

	if svgOut != "" {
		if err := preview.RenderTrajectorySVG(first, 2.0, svgOut); err != nil {
			return err
		}
	}
	if meshOut != "" {
		if err := export.ToMesh3MF(first, 0.5, meshOut); err != nil {
			return err
		}
	}
	if sliceOut != "" {
		entryZ := int(first.Point(0).Z / grid.CellDim)
		if err := preview.RenderSlice(grid, trajs, entryZ, sliceOut); err != nil {
			return err
		}
	}

	return nil
}

//-----------------------------------------------------------------------------

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
