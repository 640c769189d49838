package textify

import (
	"image/color"

	"github.com/user/textify/pkg/overlay"
	"github.com/user/textify/pkg/ports"
)

// Preset names a starting style.
type Preset string

const (
	// PresetLight draws black text on white panels.
	PresetLight Preset = "light"
	// PresetDark draws white text on dark panels.
	PresetDark Preset = "dark"
)

// StyleBuilder provides a fluent interface for building an overlay.Style.
type StyleBuilder struct {
	style overlay.Style
}

// NewStyleBuilder creates a StyleBuilder with the light preset.
func NewStyleBuilder() *StyleBuilder {
	return &StyleBuilder{style: overlay.DefaultStyle()}
}

// NewPresetStyleBuilder creates a StyleBuilder starting from a preset.
// Unknown presets start from the light preset.
func NewPresetStyleBuilder(p Preset) *StyleBuilder {
	b := NewStyleBuilder()
	if p == PresetDark {
		b.style.FontColor = color.White
		b.style.BackgroundColor = color.RGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 255} // #1a1a2e
	}
	return b
}

// Build returns the final style. Negative spacing values are raised to 0;
// font scale and thickness pass through as given.
func (b *StyleBuilder) Build() overlay.Style {
	s := b.style
	for _, v := range []*int{&s.Margin, &s.Padding, &s.BackgroundPadding, &s.CornerRadius} {
		if *v < 0 {
			*v = 0
		}
	}
	return s
}

// WithFontScale sets the font scale factor.
func (b *StyleBuilder) WithFontScale(scale float64) *StyleBuilder {
	b.style.FontScale = scale
	return b
}

// WithFontColor sets the text color.
func (b *StyleBuilder) WithFontColor(c color.Color) *StyleBuilder {
	b.style.FontColor = c
	return b
}

// WithThickness sets the stroke thickness of text and boxes.
func (b *StyleBuilder) WithThickness(t int) *StyleBuilder {
	b.style.Thickness = t
	return b
}

// WithBackgroundColor sets the text panel color.
func (b *StyleBuilder) WithBackgroundColor(c color.Color) *StyleBuilder {
	b.style.BackgroundColor = c
	return b
}

// WithFont selects a built-in font.
func (b *StyleBuilder) WithFont(f ports.Font) *StyleBuilder {
	b.style.Font = f
	return b
}

// WithFontPath sets a TrueType font file used instead of the built-in fonts.
func (b *StyleBuilder) WithFontPath(path string) *StyleBuilder {
	b.style.FontPath = path
	return b
}

// WithLineType sets the rasterization mode.
func (b *StyleBuilder) WithLineType(lt ports.LineType) *StyleBuilder {
	b.style.LineType = lt
	return b
}

// WithMargin sets the gap between a text block and its anchor edge.
func (b *StyleBuilder) WithMargin(margin int) *StyleBuilder {
	b.style.Margin = margin
	return b
}

// WithPadding sets the vertical gap between lines.
func (b *StyleBuilder) WithPadding(padding int) *StyleBuilder {
	b.style.Padding = padding
	return b
}

// WithBackgroundPadding sets the inner padding of the text panel.
func (b *StyleBuilder) WithBackgroundPadding(padding int) *StyleBuilder {
	b.style.BackgroundPadding = padding
	return b
}

// WithCornerRadius sets the corner radius of panels and boxes.
func (b *StyleBuilder) WithCornerRadius(radius int) *StyleBuilder {
	b.style.CornerRadius = radius
	return b
}
