//Package vplot renders axis-aligned cross-sections of cube scalar fields
//as heat-map PNGs. It is a diagnostics aid: a quick look at a slice of a
//field without sending the grid to a full volumetric renderer.
package vplot

import (
	"fmt"

	cube "github.com/rmera/gocube"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//Axes, by the index of the basis vector normal to the slice.
const (
	X = iota
	Y
	Z
)

//fieldSlice adapts one axis-aligned slice of a Field to plotter.GridXYZ.
//Coordinates are voxel indices; the world-space transform doesn't enter a
//diagnostic plot.
type fieldSlice struct {
	f     *cube.Field
	axis  int
	index int
}

func (s fieldSlice) Dims() (int, int) {
	n1, n2, n3 := s.f.Dims()
	switch s.axis {
	case X:
		return n2, n3
	case Y:
		return n1, n3
	default:
		return n1, n2
	}
}

func (s fieldSlice) Z(c, r int) float64 {
	switch s.axis {
	case X:
		return s.f.At(s.index, c, r)
	case Y:
		return s.f.At(c, s.index, r)
	default:
		return s.f.At(c, r, s.index)
	}
}

func (s fieldSlice) X(c int) float64 { return float64(c) }

func (s fieldSlice) Y(r int) float64 { return float64(r) }

//axis labels for each slice orientation.
var labels = map[int][2]string{
	X: {"j (Y axis)", "k (Z axis)"},
	Y: {"i (X axis)", "k (Z axis)"},
	Z: {"i (X axis)", "j (Y axis)"},
}

//SlicePNG draws the cross-section of f normal to the given axis (X, Y or
//Z) at the given voxel index, as a heat map, and saves it to
//plotname.png (the extension is added here, as in goChem's plots).
func SlicePNG(f *cube.Field, axis, index int, title, plotname string) error {
	if f == nil {
		return fmt.Errorf("goCube/vplot: given nil field")
	}
	if axis < X || axis > Z {
		return fmt.Errorf("goCube/vplot: bad axis %d", axis)
	}
	dims := [3]int{}
	dims[0], dims[1], dims[2] = f.Dims()
	if index < 0 || index >= dims[axis] {
		return fmt.Errorf("goCube/vplot: slice index %d out of %d", index, dims[axis])
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = labels[axis][0]
	p.Y.Label.Text = labels[axis][1]
	h := plotter.NewHeatMap(fieldSlice{f: f, axis: axis, index: index}, palette.Heat(256, 1))
	p.Add(h)
	filename := fmt.Sprintf("%s.png", plotname)
	if err := p.Save(12*vg.Centimeter, 12*vg.Centimeter, filename); err != nil {
		return err
	}
	return nil
}

//MidSlicePNG draws the middle Z cross-section of a grid's field, titled
//with the grid's name. Handy for a one-call look at an imported batch.
func MidSlicePNG(g *cube.Grid, plotname string) error {
	if g == nil || g.Field == nil {
		return fmt.Errorf("goCube/vplot: given nil grid")
	}
	_, _, n3 := g.Field.Dims()
	return SlicePNG(g.Field, Z, n3/2, g.Name, plotname)
}
