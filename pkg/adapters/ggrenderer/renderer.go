// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/user/textify/pkg/ports"
)

// Renderer implements ports.Renderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// NewCanvas wraps img in a drawing canvas.
// An *image.RGBA whose bounds start at the origin is drawn on in place;
// any other image is first copied into a new *image.RGBA.
func (r *Renderer) NewCanvas(img image.Image) ports.Canvas {
	rgba := toRGBA(img)
	return &Canvas{
		dc:    gg.NewContextForRGBA(rgba),
		img:   rgba,
		faces: make(map[faceKey]font.Face),
	}
}

// DecodeImage decodes image data into an image.Image.
// The format is detected from the data; EXIF orientation is applied.
func (r *Renderer) DecodeImage(data []byte, format ports.ImageFormat) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	return img, nil
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var f imaging.Format
	switch format {
	case ports.FormatJPEG:
		f = imaging.JPEG
	case ports.FormatPNG:
		f = imaging.PNG
	case ports.FormatGIF:
		f = imaging.GIF
	case ports.FormatBMP:
		f = imaging.BMP
	case ports.FormatTIFF:
		f = imaging.TIFF
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	if quality <= 0 {
		quality = 95
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, f, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// FormatForPath returns the image format implied by a file extension.
func (r *Renderer) FormatForPath(path string) (ports.ImageFormat, error) {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return ports.FormatAuto, fmt.Errorf("%s: %w", path, err)
	}
	switch f {
	case imaging.JPEG:
		return ports.FormatJPEG, nil
	case imaging.PNG:
		return ports.FormatPNG, nil
	case imaging.GIF:
		return ports.FormatGIF, nil
	case imaging.BMP:
		return ports.FormatBMP, nil
	case imaging.TIFF:
		return ports.FormatTIFF, nil
	}
	return ports.FormatAuto, fmt.Errorf("unsupported format: %s", f)
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context.
type Canvas struct {
	dc    *gg.Context
	img   *image.RGBA
	faces map[faceKey]font.Face
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (int, int) {
	return c.dc.Width(), c.dc.Height()
}

// FillPolygon fills a closed polygon.
func (c *Canvas) FillPolygon(points []image.Point, col color.Color, lt ports.LineType) {
	if len(points) < 3 {
		return
	}
	c.paint(col, lt, func(dc *gg.Context) {
		dc.MoveTo(float64(points[0].X), float64(points[0].Y))
		for _, p := range points[1:] {
			dc.LineTo(float64(p.X), float64(p.Y))
		}
		dc.ClosePath()
		dc.Fill()
	})
}

// DrawArc draws a circular arc or, with a negative thickness, a filled sector.
func (c *Canvas) DrawArc(center image.Point, radius int, rotation, start, end float64, col color.Color, thickness int, lt ports.LineType) {
	if radius <= 0 {
		return
	}
	cx, cy := float64(center.X), float64(center.Y)
	a1 := gg.Radians(rotation + start)
	a2 := gg.Radians(rotation + end)

	c.paint(col, lt, func(dc *gg.Context) {
		if thickness < 0 {
			dc.MoveTo(cx, cy)
			dc.DrawArc(cx, cy, float64(radius), a1, a2)
			dc.ClosePath()
			dc.Fill()
			return
		}
		dc.NewSubPath()
		dc.DrawArc(cx, cy, float64(radius), a1, a2)
		dc.SetLineWidth(float64(thickness))
		dc.Stroke()
	})
}

// DrawLine draws a line between two points.
func (c *Canvas) DrawLine(x1, y1, x2, y2 int, col color.Color, width float64, lt ports.LineType) {
	c.paint(col, lt, func(dc *gg.Context) {
		dc.SetLineWidth(width)
		dc.DrawLine(float64(x1), float64(y1), float64(x2), float64(y2))
		dc.Stroke()
	})
}

// DrawText draws text with its baseline starting at (x, y).
// Thickness above one is emulated by stamping the glyphs over a small disc.
func (c *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	face := c.face(style)
	r := strokeRadius(style.Thickness)

	c.paint(style.Color, style.LineType, func(dc *gg.Context) {
		dc.SetFontFace(face)
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx*dx+dy*dy > r*r {
					continue
				}
				dc.DrawString(text, float64(x+dx+r), float64(y+dy))
			}
		}
	})
}

// MeasureText returns the advance width and ascent of the text.
func (c *Canvas) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	face := c.face(style)
	r := strokeRadius(style.Thickness)

	width := float64(font.MeasureString(face, text).Ceil() + 2*r)
	height := float64(face.Metrics().Ascent.Ceil() + r)
	return width, height
}

// ToImage returns the canvas as an image.Image.
func (c *Canvas) ToImage() image.Image {
	return c.img
}

// paint runs fn with col as the current color. With LineSolid the shape is
// rasterized into a scratch mask first and every partially covered pixel is
// either painted fully or dropped.
func (c *Canvas) paint(col color.Color, lt ports.LineType, fn func(dc *gg.Context)) {
	if lt != ports.LineSolid {
		c.dc.SetColor(col)
		fn(c.dc)
		return
	}

	scratch := gg.NewContext(c.dc.Width(), c.dc.Height())
	scratch.SetColor(color.White)
	fn(scratch)

	cover := scratch.Image().(*image.RGBA)
	mask := image.NewAlpha(cover.Bounds())
	for i := 0; i < len(mask.Pix); i++ {
		if cover.Pix[i*4+3] >= 0x80 {
			mask.Pix[i] = 0xff
		}
	}
	draw.DrawMask(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, mask, image.Point{}, draw.Over)
}

// strokeRadius converts a text thickness to the radius of the stamping disc.
func strokeRadius(thickness int) int {
	if thickness <= 1 {
		return 0
	}
	return int(math.Floor(float64(thickness-1) / 2))
}

// toRGBA returns img itself when it can be drawn on directly, or an
// origin-anchored RGBA copy otherwise.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Ensure Canvas implements ports.Canvas
var _ ports.Canvas = (*Canvas)(nil)
