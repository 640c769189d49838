package overlay

import (
	"image"
	"image/color"

	"github.com/user/textify/pkg/placement"
)

// corner describes one rounded corner: the arc center and the rotation at
// which its 90 degree sweep starts.
type corner struct {
	Center   image.Point
	Rotation float64
}

// roundedPolygon returns the octagon tracing the straight edges of a
// rounded rectangle, each corner cut by radius on both axes, clockwise from
// the top edge.
func roundedPolygon(start, end image.Point, radius int) []image.Point {
	return []image.Point{
		{start.X + radius, start.Y},
		{end.X - radius, start.Y},
		{end.X, start.Y + radius},
		{end.X, end.Y - radius},
		{end.X - radius, end.Y},
		{start.X + radius, end.Y},
		{start.X, end.Y - radius},
		{start.X, start.Y + radius},
	}
}

// corners returns the arcs rounding a rectangle, in order top-left,
// top-right, bottom-right, bottom-left.
func corners(start, end image.Point, radius int) [4]corner {
	return [4]corner{
		{image.Pt(start.X+radius, start.Y+radius), 180},
		{image.Pt(end.X-radius, start.Y+radius), 270},
		{image.Pt(end.X-radius, end.Y-radius), 0},
		{image.Pt(start.X+radius, end.Y-radius), 90},
	}
}

// edges returns the four straight segments of a rounded outline:
// top, right, bottom, left.
func edges(start, end image.Point, radius int) [4][2]image.Point {
	return [4][2]image.Point{
		{{start.X + radius, start.Y}, {end.X - radius, start.Y}},
		{{end.X, start.Y + radius}, {end.X, end.Y - radius}},
		{{end.X - radius, end.Y}, {start.X + radius, end.Y}},
		{{start.X, end.Y - radius}, {start.X, start.Y + radius}},
	}
}

// DrawRoundedRectangle draws a rectangle from start to end whose corners
// are quarter circles of the given radius. A negative thickness (Filled)
// fills the interior; otherwise the outline is stroked with that width.
func (r *Renderer) DrawRoundedRectangle(start, end image.Point, radius int, c color.Color, thickness int) {
	if thickness < 0 {
		r.canvas.FillPolygon(roundedPolygon(start, end, radius), c, r.style.LineType)
	} else {
		for _, e := range edges(start, end, radius) {
			r.canvas.DrawLine(e[0].X, e[0].Y, e[1].X, e[1].Y, c, float64(thickness), r.style.LineType)
		}
	}
	for _, k := range corners(start, end, radius) {
		r.canvas.DrawArc(k.Center, radius, k.Rotation, 0, 90, c, thickness, r.style.LineType)
	}
}

// DrawBBox draws a rounded outline around bbox using the style's corner
// radius. The stroke is one pixel wider than thickness.
func (r *Renderer) DrawBBox(bbox placement.BBox, c color.Color, thickness int) {
	thickness++
	start, end := bbox.Min(), bbox.Max()
	radius := r.style.CornerRadius

	for _, e := range edges(start, end, radius) {
		r.canvas.DrawLine(e[0].X, e[0].Y, e[1].X, e[1].Y, c, float64(thickness), r.style.LineType)
	}
	for _, k := range corners(start, end, radius) {
		r.canvas.DrawArc(k.Center, radius, k.Rotation, 0, 90, c, thickness, r.style.LineType)
	}
}
