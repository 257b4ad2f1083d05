package minimap

import (
	"math"

	"camconsole/entity"

	"github.com/paulmach/orb"
	"github.com/samber/lo"
)

// Marker is a camera placed on the character grid.
type Marker struct {
	Camera entity.Camera
	Col    int
	Row    int
}

// Viewport is the part of the map drawn into a Width x Height grid.
type Viewport struct {
	Bound  orb.Bound
	Width  int
	Height int
}

// Bounds returns the bounding box of the cameras' map positions.
func Bounds(cameras []entity.Camera) orb.Bound {
	points := lo.Map(cameras, func(c entity.Camera, _ int) orb.Point {
		return orb.Point{float64(c.X), float64(c.Y)}
	})
	return orb.MultiPoint(points).Bound()
}

// NewViewport frames the layer's bounding box at zoom 1 and a 1/zoom share
// of it around center when zoomed in. Map y grows northwards, rows grow downwards.
func NewViewport(layer orb.Bound, center orb.Point, zoom, width, height int) Viewport {
	zoom = max(zoom, 1)
	if zoom == 1 {
		center = layer.Center()
	}
	spanX := math.Max(layer.Right()-layer.Left(), 1) / float64(zoom)
	spanY := math.Max(layer.Top()-layer.Bottom(), 1) / float64(zoom)

	return Viewport{
		Bound: orb.Bound{
			Min: orb.Point{center.X() - spanX/2, center.Y() - spanY/2},
			Max: orb.Point{center.X() + spanX/2, center.Y() + spanY/2},
		},
		Width:  width,
		Height: height,
	}
}

// Cell maps a map position to a grid cell; ok is false outside the viewport.
func (v Viewport) Cell(x, y int) (col, row int, ok bool) {
	p := orb.Point{float64(x), float64(y)}
	if !v.Bound.Contains(p) {
		return 0, 0, false
	}
	fx := (p.X() - v.Bound.Left()) / (v.Bound.Right() - v.Bound.Left())
	fy := (v.Bound.Top() - p.Y()) / (v.Bound.Top() - v.Bound.Bottom())
	col = int(math.Round(fx * float64(v.Width-1)))
	row = int(math.Round(fy * float64(v.Height-1)))
	return col, row, true
}

// Project places every camera that falls inside the viewport.
func (v Viewport) Project(cameras []entity.Camera) []Marker {
	markers := make([]Marker, 0, len(cameras))
	for _, c := range cameras {
		if col, row, ok := v.Cell(c.X, c.Y); ok {
			markers = append(markers, Marker{Camera: c, Col: col, Row: row})
		}
	}
	return markers
}
