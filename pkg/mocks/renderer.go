package mocks

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"sync"

	"github.com/user/textify/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	mu sync.Mutex

	NewCanvasFunc     func(img image.Image) ports.Canvas
	DecodeImageFunc   func(data []byte, format ports.ImageFormat) (image.Image, error)
	EncodeImageFunc   func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	FormatForPathFunc func(path string) (ports.ImageFormat, error)

	// Canvases holds every canvas created by NewCanvas when NewCanvasFunc is nil.
	Canvases []*Canvas
}

func (m *Renderer) NewCanvas(img image.Image) ports.Canvas {
	if m.NewCanvasFunc != nil {
		return m.NewCanvasFunc(img)
	}
	c := NewCanvas(img)
	m.mu.Lock()
	m.Canvases = append(m.Canvases, c)
	m.mu.Unlock()
	return c
}

func (m *Renderer) DecodeImage(data []byte, format ports.ImageFormat) (image.Image, error) {
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data, format)
	}
	return image.NewRGBA(image.Rect(0, 0, 100, 100)), nil
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{}, nil
}

// FormatForPath maps .jpg and .jpeg to JPEG, .png to PNG and reports an
// error for anything else.
func (m *Renderer) FormatForPath(path string) (ports.ImageFormat, error) {
	if m.FormatForPathFunc != nil {
		return m.FormatForPathFunc(path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return ports.FormatJPEG, nil
	case ".png":
		return ports.FormatPNG, nil
	}
	return ports.FormatAuto, fmt.Errorf("unsupported extension: %s", path)
}

var _ ports.Renderer = (*Renderer)(nil)

// PolygonCall records a FillPolygon call.
type PolygonCall struct {
	Points []image.Point
	Color  color.Color
}

// ArcCall records a DrawArc call.
type ArcCall struct {
	Center     image.Point
	Radius     int
	Rotation   float64
	Start, End float64
	Color      color.Color
	Thickness  int
}

// LineCall records a DrawLine call.
type LineCall struct {
	From, To image.Point
	Color    color.Color
	Width    float64
}

// TextCall records a DrawText call.
type TextCall struct {
	Text  string
	X, Y  int
	Style ports.TextStyle
}

// Canvas is a mock implementation of ports.Canvas that records draw calls.
// By default MeasureText reports 10 pixels per byte of width and a height
// of 20.
type Canvas struct {
	img *image.RGBA

	MeasureTextFunc func(text string, style ports.TextStyle) (float64, float64)

	Polygons []PolygonCall
	Arcs     []ArcCall
	Lines    []LineCall
	Texts    []TextCall
}

// NewCanvas creates a mock canvas backed by img when it is an *image.RGBA,
// or by a blank RGBA of the same size otherwise.
func NewCanvas(img image.Image) *Canvas {
	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(img.Bounds())
	}
	return &Canvas{img: rgba}
}

func (m *Canvas) Size() (int, int) {
	b := m.img.Bounds()
	return b.Dx(), b.Dy()
}

func (m *Canvas) FillPolygon(points []image.Point, c color.Color, lt ports.LineType) {
	m.Polygons = append(m.Polygons, PolygonCall{Points: points, Color: c})
}

func (m *Canvas) DrawArc(center image.Point, radius int, rotation, start, end float64, c color.Color, thickness int, lt ports.LineType) {
	m.Arcs = append(m.Arcs, ArcCall{
		Center:    center,
		Radius:    radius,
		Rotation:  rotation,
		Start:     start,
		End:       end,
		Color:     c,
		Thickness: thickness,
	})
}

func (m *Canvas) DrawLine(x1, y1, x2, y2 int, c color.Color, width float64, lt ports.LineType) {
	m.Lines = append(m.Lines, LineCall{From: image.Pt(x1, y1), To: image.Pt(x2, y2), Color: c, Width: width})
}

func (m *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	m.Texts = append(m.Texts, TextCall{Text: text, X: x, Y: y, Style: style})
}

func (m *Canvas) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	if m.MeasureTextFunc != nil {
		return m.MeasureTextFunc(text, style)
	}
	return float64(10 * len(text)), 20
}

func (m *Canvas) ToImage() image.Image {
	return m.img
}

// DrawCount returns the total number of recorded draw calls.
func (m *Canvas) DrawCount() int {
	return len(m.Polygons) + len(m.Arcs) + len(m.Lines) + len(m.Texts)
}

var _ ports.Canvas = (*Canvas)(nil)
