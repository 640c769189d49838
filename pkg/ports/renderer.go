package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts image codec and canvas creation.
type Renderer interface {
	// NewCanvas wraps an existing image buffer in a drawing canvas.
	// Drawing on the canvas mutates the buffer returned by Canvas.ToImage.
	NewCanvas(img image.Image) Canvas

	// DecodeImage decodes image data into an image.Image.
	DecodeImage(data []byte, format ImageFormat) (image.Image, error)

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// FormatForPath returns the format implied by a file extension.
	FormatForPath(path string) (ImageFormat, error)
}

// Canvas provides the drawing primitives consumed by the overlay renderer.
//
// Geometry falling partly or wholly outside the canvas is clipped silently.
type Canvas interface {
	// Size returns the canvas dimensions in pixels.
	Size() (width, height int)

	// FillPolygon fills the closed polygon described by points.
	FillPolygon(points []image.Point, c color.Color, lt LineType)

	// DrawArc draws a circular arc of the given radius around center.
	// Angles are in degrees, measured clockwise from the positive x axis
	// (image coordinates). The arc spans [rotation+start, rotation+end].
	// A negative thickness fills the pie sector instead of stroking the arc.
	DrawArc(center image.Point, radius int, rotation, start, end float64, c color.Color, thickness int, lt LineType)

	// DrawLine draws a line between two points.
	DrawLine(x1, y1, x2, y2 int, c color.Color, width float64, lt LineType)

	// DrawText draws text with its baseline starting at (x, y).
	DrawText(text string, x, y int, style TextStyle)

	// MeasureText returns the width and the height above the baseline of the text.
	MeasureText(text string, style TextStyle) (width, height float64)

	// ToImage returns the image buffer backing the canvas.
	ToImage() image.Image
}

// TextStyle defines text rendering properties.
type TextStyle struct {
	Font      Font
	FontPath  string  // optional TrueType font file; overrides Font
	Scale     float64 // 1.0 renders at DefaultFontSize points
	Color     color.Color
	Thickness int
	LineType  LineType
}

// DefaultFontSize is the point size of a font rendered at scale 1.0.
const DefaultFontSize = 24.0

// Font selects one of the built-in font faces.
type Font int

const (
	FontRegular Font = iota
	FontBold
	FontMono
)

// String returns the configuration name of the font.
func (f Font) String() string {
	switch f {
	case FontRegular:
		return "regular"
	case FontBold:
		return "bold"
	case FontMono:
		return "mono"
	default:
		return "unknown"
	}
}

// ParseFont parses a font name, defaulting to FontRegular.
func ParseFont(s string) Font {
	switch s {
	case "bold":
		return FontBold
	case "mono":
		return FontMono
	default:
		return FontRegular
	}
}

// LineType selects how strokes are rasterized.
type LineType int

const (
	// LineAA draws anti-aliased strokes.
	LineAA LineType = iota
	// LineSolid draws strokes without anti-aliasing: pixels are either
	// fully painted or left untouched.
	LineSolid
)

// ParseLineType parses "aa" or "solid", defaulting to LineAA.
func ParseLineType(s string) LineType {
	if s == "solid" {
		return LineSolid
	}
	return LineAA
}

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
	FormatGIF
	FormatBMP
	FormatTIFF
	// FormatAuto lets the decoder detect the format from the data.
	FormatAuto
)

// String returns the lower-case name of the format.
func (f ImageFormat) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	case FormatGIF:
		return "gif"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	default:
		return "auto"
	}
}
