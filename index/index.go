// Package index builds a spatial index over traced trajectory points so a
// caller can answer proximity queries (e.g. "which trajectory points lie
// within r nm of this voxel") without a linear scan. Built on rtreego's
// R-tree, applied here to trajectory point clouds rather than mesh geometry.
package index

import (
	"github.com/dhconnelly/rtreego"

	"github.com/kjhughes/febidmc/mc"
	"github.com/kjhughes/febidmc/vec3"
)

// Hit identifies one indexed trajectory point.
type Hit struct {
	TrajectoryIndex int
	PointIndex      int
	Point           vec3.Vec
}

// point is the rtreego.Spatial wrapper for a single trajectory point. Points
// have no extent, but rtreego rejects zero-size rectangles, so its bounding
// box is a tiny cube of side epsSide with the point at its lower corner.
type point struct {
	hit Hit
	rect *rtreego.Rect
}

func (p *point) Bounds() *rtreego.Rect {
	return p.rect
}

const epsSide = 1e-6

func newPoint(hit Hit) *point {
	loc := rtreego.Point{hit.Point.Z, hit.Point.Y, hit.Point.X}
	rect, err := rtreego.NewRect(loc, []float64{epsSide, epsSide, epsSide})
	if err != nil {
		// Only possible if epsSide were non-positive, which it never is.
		panic(err)
	}
	return &point{hit: hit, rect: rect}
}

// Index is a queryable spatial index over one batch's trajectory points.
type Index struct {
	tree *rtreego.Rtree
}

// New builds an Index over every point of every trajectory in trajs.
func New(trajs []mc.Trajectory) *Index {
	tree := rtreego.NewTree(3, 25, 50)
	for ti, traj := range trajs {
		for pi := 0; pi < traj.Len(); pi++ {
			tree.Insert(newPoint(Hit{TrajectoryIndex: ti, PointIndex: pi, Point: traj.Point(pi)}))
		}
	}
	return &Index{tree: tree}
}

// Near returns every indexed point within radius nm of center.
func (idx *Index) Near(center vec3.Vec, radius float64) []Hit {
	loc := rtreego.Point{center.Z - radius, center.Y - radius, center.X - radius}
	side := 2 * radius
	bb, err := rtreego.NewRect(loc, []float64{side, side, side})
	if err != nil {
		return nil
	}

	var hits []Hit
	for _, sp := range idx.tree.SearchIntersect(bb) {
		p := sp.(*point)
		if p.hit.Point.Dist(center) <= radius {
			hits = append(hits, p.hit)
		}
	}
	return hits
}
