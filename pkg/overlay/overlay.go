// Package overlay draws text labels with rounded backgrounds and rounded
// bounding boxes onto an image buffer.
//
// A Renderer owns one buffer and is not safe for concurrent use. Callers
// annotating several images concurrently use one Renderer per image.
package overlay

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"reflect"

	"github.com/user/textify/pkg/ports"
)

// ErrInvalidImage is returned by New when the buffer cannot be drawn on.
var ErrInvalidImage = errors.New("invalid image buffer")

// Filled is the thickness value that fills a shape instead of stroking it.
const Filled = -1

// Style holds the drawing parameters of a Renderer.
type Style struct {
	FontScale         float64
	FontColor         color.Color
	Thickness         int
	LineType          ports.LineType
	Font              ports.Font
	FontPath          string
	Margin            int // distance between the text block and its anchor edge
	Padding           int // vertical gap between text lines
	BackgroundPadding int // inner padding of the background panel
	CornerRadius      int
	BackgroundColor   color.Color
}

// DefaultStyle returns the style a new Renderer starts with.
func DefaultStyle() Style {
	return Style{
		FontScale:         1.0,
		FontColor:         color.Black,
		Thickness:         2,
		LineType:          ports.LineAA,
		Font:              ports.FontRegular,
		Margin:            20,
		Padding:           20,
		BackgroundPadding: 10,
		CornerRadius:      10,
		BackgroundColor:   color.White,
	}
}

// DefaultBBoxColor is the outline color used when none is given.
var DefaultBBoxColor color.Color = color.RGBA{G: 255, A: 255}

// Renderer draws overlays onto a single image buffer.
type Renderer struct {
	canvas ports.Canvas
	style  Style
	logger ports.Logger
}

// New creates a Renderer drawing onto img.
// An *image.RGBA anchored at the origin is modified in place; other image
// types are copied once and the copy is returned by Image.
func New(img image.Image, r ports.Renderer, logger ports.Logger) (*Renderer, error) {
	if err := validate(img); err != nil {
		return nil, err
	}
	return &Renderer{
		canvas: r.NewCanvas(img),
		style:  DefaultStyle(),
		logger: logger.WithComponent("overlay"),
	}, nil
}

func validate(img image.Image) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	if v := reflect.ValueOf(img); v.Kind() == reflect.Ptr && v.IsNil() {
		return fmt.Errorf("%w: nil %T", ErrInvalidImage, img)
	}
	if img.Bounds().Empty() {
		return fmt.Errorf("%w: empty bounds %v", ErrInvalidImage, img.Bounds())
	}
	return nil
}

// Configure overwrites the font scale, font color, thickness and background
// color. Other style fields are left alone. Values are not validated.
func (r *Renderer) Configure(fontScale float64, fontColor color.Color, thickness int, backgroundColor color.Color) {
	r.style.FontScale = fontScale
	r.style.FontColor = fontColor
	r.style.Thickness = thickness
	r.style.BackgroundColor = backgroundColor
}

// SetStyle replaces the whole style. Nil colors take their default values.
func (r *Renderer) SetStyle(s Style) {
	def := DefaultStyle()
	if s.FontColor == nil {
		s.FontColor = def.FontColor
	}
	if s.BackgroundColor == nil {
		s.BackgroundColor = def.BackgroundColor
	}
	r.style = s
}

// Style returns the current style.
func (r *Renderer) Style() Style {
	return r.style
}

// Image returns the buffer being drawn on.
func (r *Renderer) Image() image.Image {
	return r.canvas.ToImage()
}

// Size returns the buffer dimensions.
func (r *Renderer) Size() (width, height int) {
	return r.canvas.Size()
}

func (r *Renderer) textStyle() ports.TextStyle {
	return ports.TextStyle{
		Font:      r.style.Font,
		FontPath:  r.style.FontPath,
		Scale:     r.style.FontScale,
		Color:     r.style.FontColor,
		Thickness: r.style.Thickness,
		LineType:  r.style.LineType,
	}
}
