package overlay

import (
	"image"
	"image/color"
	"math"

	"github.com/user/textify/pkg/placement"
)

// Placement reports where PutText put a text block.
type Placement struct {
	Requested placement.Anchor `json:"requested"`
	Anchor    placement.Anchor `json:"anchor"` // anchor actually used
	Fallback  bool             `json:"fallback"`
	X         int              `json:"x"`
	Y         int              `json:"y"`
	Block     placement.Block  `json:"block"`
	Lines     int              `json:"lines"`
}

// Layout is the measured arrangement of a text block, before drawing.
type Layout struct {
	Sizes     []image.Point // measured (width, height) of each line
	Block     placement.Block
	Baselines []float64 // baseline offset of each line from the block top
}

// Measure lays out lines under the current style without drawing.
func (r *Renderer) Measure(texts []string) Layout {
	ts := r.textStyle()
	sizes := make([]image.Point, len(texts))
	for i, text := range texts {
		w, h := r.canvas.MeasureText(text, ts)
		sizes[i] = image.Pt(int(math.Round(w)), int(math.Round(h)))
	}

	bg := r.style.BackgroundPadding
	// The first baseline sits one line height below the top inset; each
	// following baseline steps by the previous line's height plus padding.
	baselines := make([]float64, len(texts))
	if len(sizes) > 0 {
		baseline := float64(bg) - 0.5*float64(bg) + float64(sizes[0].Y)
		for i, s := range sizes {
			baselines[i] = baseline
			baseline += float64(s.Y + r.style.Padding)
		}
	}

	return Layout{
		Sizes:     sizes,
		Block:     placement.Measure(sizes, r.style.Padding, bg),
		Baselines: baselines,
	}
}

// PutText draws lines of text on a rounded background panel anchored to
// bbox and returns the buffer.
//
// A non-zero bbox is outlined with bboxColor first; a zero bbox stands for
// the whole image and is not outlined. An outside anchor whose block would
// leave the image is replaced once by its inside counterpart. An empty
// texts slice leaves the buffer untouched.
func (r *Renderer) PutText(texts []string, bbox placement.BBox, anchor placement.Anchor, bboxColor color.Color) (image.Image, Placement) {
	if len(texts) == 0 {
		r.logger.Debug("No text lines to draw, skipping")
		return r.Image(), Placement{Requested: anchor, Anchor: anchor}
	}

	width, height := r.canvas.Size()
	if bbox.IsZero() {
		bbox = placement.BBox{Width: width, Height: height}
	} else {
		if bboxColor == nil {
			bboxColor = DefaultBBoxColor
		}
		r.DrawBBox(bbox, bboxColor, r.style.Thickness)
	}

	layout := r.Measure(texts)
	used, p := placement.Fit(anchor, bbox, layout.Block, r.style.Margin, width, height)
	if used != anchor {
		r.logger.Debug("Anchor %s does not fit, using %s", anchor, used)
	}

	bg := r.style.BackgroundPadding
	r.DrawRoundedRectangle(
		image.Pt(p.X-bg, p.Y-bg),
		image.Pt(p.X+layout.Block.Width, p.Y+layout.Block.Height),
		r.style.CornerRadius,
		r.style.BackgroundColor,
		Filled,
	)

	ts := r.textStyle()
	for i, text := range texts {
		r.canvas.DrawText(text, p.X, int(float64(p.Y)+layout.Baselines[i]), ts)
	}

	return r.Image(), Placement{
		Requested: anchor,
		Anchor:    used,
		Fallback:  used != anchor,
		X:         p.X,
		Y:         p.Y,
		Block:     layout.Block,
		Lines:     len(texts),
	}
}
