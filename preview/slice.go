// Package preview renders 2D previews of a traced batch: a raster slice
// through the grid with trajectory points overlaid, and a standalone SVG
// of a single trajectory's polyline.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/golang/freetype/raster"
	"github.com/llgcode/draw2d/draw2dimg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/kjhughes/febidmc/mc"
)

var (
	colorSolid = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	colorVoid  = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	colorTrack = color.RGBA{R: 220, G: 40, B: 40, A: 255}
)

// RenderSlice rasters the z = zIndex horizontal slice of grid, with every
// trajectory point whose voxel falls in that slice drawn on top, and writes
// it as a PNG to path.
func RenderSlice(grid *mc.GridSnapshot, trajs []mc.Trajectory, zIndex int, path string) error {
	if zIndex < 0 || zIndex >= grid.Shape.Nz {
		return fmt.Errorf("preview: z index %d out of range", zIndex)
	}

	img := image.NewRGBA(image.Rect(0, 0, grid.Shape.Nx, grid.Shape.Ny))
	for j := 0; j < grid.Shape.Ny; j++ {
		for k := 0; k < grid.Shape.Nx; k++ {
			c := colorVoid
			if grid.At(zIndex, j, k) < 0 {
				c = colorSolid
			}
			img.Set(k, j, c)
		}
	}

	gc := draw2dimg.NewGraphicContext(img)
	gc.SetStrokeColor(colorTrack)
	gc.SetLineWidth(1)

	h := grid.CellDim
	for _, traj := range trajs {
		var xs, ys []float64
		for i := 0; i < traj.Len(); i++ {
			p := traj.Point(i)
			if int(p.Z/h) != zIndex {
				continue
			}
			px, py := p.X/h, p.Y/h
			xs = append(xs, px)
			ys = append(ys, py)

			gc.MoveTo(px-0.5, py)
			gc.LineTo(px+0.5, py)
			gc.Stroke()
		}
		// Connect this trajectory's in-slice points with freetype's scanline
		// rasterizer, a second pass distinct from draw2d's per-point ticks above.
		rasterizeTrack(img, xs, ys, colorTrack)
	}

	drawLabel(img, fmt.Sprintf("z=%d", zIndex), 4, 12)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func drawLabel(img *image.RGBA, text string, x, y int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// rasterizeTrack draws a polyline between consecutive (x, y) pixel
// coordinates onto img using freetype's scanline rasterizer, an alternate
// path to draw2d's for thin single-pixel strokes.
func rasterizeTrack(img *image.RGBA, xs, ys []float64, col color.Color) {
	if len(xs) < 2 {
		return
	}
	b := img.Bounds()
	r := raster.NewRasterizer(b.Dx(), b.Dy())
	r.Start(raster.Point{X: raster.Fix32(xs[0] * 256), Y: raster.Fix32(ys[0] * 256)})
	for i := 1; i < len(xs); i++ {
		r.Add1(raster.Point{X: raster.Fix32(xs[i] * 256), Y: raster.Fix32(ys[i] * 256)})
	}
	painter := raster.NewRGBAPainter(img)
	painter.SetColor(col)
	r.Rasterize(painter)
}
