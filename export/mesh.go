// Package export renders traced trajectories to interchange mesh formats:
// build the in-memory representation, open the output file, hand it to the
// format's encoder.
package export

import (
	"fmt"
	"math"
	"os"

	"github.com/hpinc/go3mf"
	"github.com/yofu/dxf"

	"github.com/kjhughes/febidmc/mc"
)

// ToMesh3MF renders traj's solid-segment polyline (the runs of consecutive
// points with Masks == 1, skipping the void/entry points between and around
// them) as thin tubes of quads, one mesh object per run, and writes them as
// a single 3MF package to path. radius is the tube's half-width in nm.
func ToMesh3MF(traj mc.Trajectory, radius float64, path string) error {
	runs := solidRuns(traj)
	if len(runs) == 0 {
		return fmt.Errorf("export: trajectory has no solid segment of 2 or more points")
	}

	model := new(go3mf.Model)
	const ringsPerPoint = 4

	for _, run := range runs {
		mesh := new(go3mf.Mesh)
		for _, i := range run {
			p := traj.Point(i)
			for r := 0; r < ringsPerPoint; r++ {
				ang := 2 * math.Pi * float64(r) / float64(ringsPerPoint)
				mesh.Vertices.Vertex = append(mesh.Vertices.Vertex, go3mf.Point3D{
					X: float32(p.X + radius*math.Cos(ang)),
					Y: float32(p.Y + radius*math.Sin(ang)),
					Z: float32(p.Z),
				})
			}
		}

		for i := 0; i < len(run)-1; i++ {
			base := i * ringsPerPoint
			next := (i + 1) * ringsPerPoint
			for r := 0; r < ringsPerPoint; r++ {
				r2 := (r + 1) % ringsPerPoint
				mesh.Triangles.Triangle = append(mesh.Triangles.Triangle,
					go3mf.Triangle{V1: base + r, V2: base + r2, V3: next + r},
					go3mf.Triangle{V1: base + r2, V2: next + r2, V3: next + r},
				)
			}
		}

		id := uint32(len(model.Resources.Objects)) + 1
		model.Resources.Objects = append(model.Resources.Objects, &go3mf.Object{ID: id, Mesh: mesh})
		model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: id})
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return go3mf.NewEncoder(f).Encode(model)
}

// solidRuns returns the index runs of traj's consecutive Masks == 1 points,
// omitting any run shorter than 2 points (too short to form a tube segment).
func solidRuns(traj mc.Trajectory) [][]int {
	var runs [][]int
	var current []int
	for i := 0; i < traj.Len(); i++ {
		if traj.Masks[i] == 1 {
			current = append(current, i)
			continue
		}
		if len(current) >= 2 {
			runs = append(runs, current)
		}
		current = nil
	}
	if len(current) >= 2 {
		runs = append(runs, current)
	}
	return runs
}

// ToDXF writes traj's polyline as a 3D LINE entity chain, one segment per
// consecutive point pair.
func ToDXF(traj mc.Trajectory, path string) error {
	if traj.Len() < 2 {
		return fmt.Errorf("export: trajectory has fewer than 2 points")
	}

	d := dxf.NewDrawing()
	for i := 0; i < traj.Len()-1; i++ {
		a := traj.Point(i)
		b := traj.Point(i + 1)
		d.Line(a.X, a.Y, a.Z, b.X, b.Y, b.Z)
	}
	return d.SaveAs(path)
}
