package placement

import "image"

// BBox is a region of interest in image pixel coordinates.
// The zero value means "no box".
type BBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// IsZero reports whether the box is the zero value.
func (b BBox) IsZero() bool {
	return b == BBox{}
}

// Min returns the top-left corner of the box.
func (b BBox) Min() image.Point {
	return image.Pt(b.X, b.Y)
}

// Max returns the bottom-right corner of the box.
func (b BBox) Max() image.Point {
	return image.Pt(b.X+b.Width, b.Y+b.Height)
}

// Block is the size of a measured text block, including background padding.
type Block struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Measure computes the block size for lines of the given sizes.
// Each size is (width, height) of one line; padding separates lines and
// bgPadding is added on every side.
func Measure(sizes []image.Point, padding, bgPadding int) Block {
	if len(sizes) == 0 {
		return Block{}
	}
	maxWidth, sumHeight := 0, 0
	for i, s := range sizes {
		if i == 0 || s.X > maxWidth {
			maxWidth = s.X
		}
		sumHeight += s.Y
	}
	return Block{
		Width:  maxWidth + 2*bgPadding,
		Height: sumHeight + (len(sizes)-1)*padding + 2*bgPadding,
	}
}

// Resolve returns the top-left corner of a block anchored to box.
func Resolve(a Anchor, box BBox, block Block, margin int) image.Point {
	left := box.X + margin
	center := box.X + floorDiv(box.Width-block.Width, 2)
	right := box.X + box.Width - block.Width - margin

	switch a {
	case InsideTopLeft:
		return image.Pt(left, box.Y+margin)
	case InsideTopCenter:
		return image.Pt(center, box.Y+margin)
	case InsideTopRight:
		return image.Pt(right, box.Y+margin)
	case InsideBottomLeft:
		return image.Pt(left, box.Y+box.Height-block.Height-margin)
	case InsideBottomCenter:
		return image.Pt(center, box.Y+box.Height-block.Height-margin)
	case InsideBottomRight:
		return image.Pt(right, box.Y+box.Height-block.Height-margin)
	case OutsideTopLeft:
		return image.Pt(left, box.Y-block.Height-margin)
	case OutsideTopCenter:
		return image.Pt(center, box.Y-block.Height-margin)
	case OutsideTopRight:
		return image.Pt(right, box.Y-block.Height-margin)
	case OutsideBottomLeft:
		return image.Pt(left, box.Y+box.Height+margin)
	case OutsideBottomCenter:
		return image.Pt(center, box.Y+box.Height+margin)
	case OutsideBottomRight:
		return image.Pt(right, box.Y+box.Height+margin)
	case OutsideLeft:
		return image.Pt(box.X-block.Width-margin, box.Y+floorDiv(box.Height-block.Height, 2))
	case OutsideRight:
		return image.Pt(box.X+box.Width+margin, box.Y+floorDiv(box.Height-block.Height, 2))
	}
	return image.Pt(margin, margin)
}

// Fits reports whether a block at p lies entirely within width x height.
func Fits(p image.Point, block Block, width, height int) bool {
	return p.X >= 0 && p.X+block.Width <= width && p.Y >= 0 && p.Y+block.Height <= height
}

// Fit resolves an anchor and, when an outside anchor would push the block
// off a width x height image, resolves its inside counterpart instead.
// The substitution happens at most once. The returned anchor is the one
// actually used.
func Fit(a Anchor, box BBox, block Block, margin, width, height int) (Anchor, image.Point) {
	p := Resolve(a, box, block, margin)
	if !a.IsOutside() || Fits(p, block, width, height) {
		return a, p
	}
	inside := a.Inside()
	return inside, Resolve(inside, box, block, margin)
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
