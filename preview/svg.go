package preview

import (
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/kjhughes/febidmc/mc"
)

// RenderTrajectorySVG draws traj's (x, z) projection as a connected
// polyline, solid-mask points in gray and void-mask points in black, scaled
// by scale pixels per nm.
func RenderTrajectorySVG(traj mc.Trajectory, scale float64, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	width, height := 800, 800
	canvas := svg.New(f)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")

	for i := 0; i < traj.Len()-1; i++ {
		a := traj.Point(i)
		b := traj.Point(i + 1)
		style := "stroke:black;stroke-width:1"
		if traj.Masks[i] != 0 {
			style = "stroke:gray;stroke-width:1"
		}
		canvas.Line(int(a.X*scale), int(a.Z*scale), int(b.X*scale), int(b.Z*scale), style)
	}
	canvas.End()
	return nil
}
