package ggrenderer

import (
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/user/textify/pkg/ports"
)

// faceKey identifies a cached face within a canvas.
type faceKey struct {
	font ports.Font
	path string
	size float64
}

var (
	parseOnce sync.Once
	fonts     map[ports.Font]*opentype.Font
)

// builtinFonts parses the embedded Go fonts once per process.
// Parsed fonts are safe for concurrent use; faces are not.
func builtinFonts() map[ports.Font]*opentype.Font {
	parseOnce.Do(func() {
		fonts = make(map[ports.Font]*opentype.Font)
		for f, ttf := range map[ports.Font][]byte{
			ports.FontRegular: goregular.TTF,
			ports.FontBold:    gobold.TTF,
			ports.FontMono:    gomono.TTF,
		} {
			parsed, err := opentype.Parse(ttf)
			if err != nil {
				continue
			}
			fonts[f] = parsed
		}
	})
	return fonts
}

// face returns the font face for a text style, creating it on first use.
// Falls back to the built-in regular font when a font file cannot be loaded,
// and to basicfont when even that fails.
func (c *Canvas) face(style ports.TextStyle) font.Face {
	scale := style.Scale
	if scale <= 0 {
		scale = 1
	}
	key := faceKey{font: style.Font, path: style.FontPath, size: ports.DefaultFontSize * scale}
	if f, ok := c.faces[key]; ok {
		return f
	}

	var face font.Face
	if key.path != "" {
		if f, err := gg.LoadFontFace(key.path, key.size); err == nil {
			face = f
		}
	}
	if face == nil {
		face = builtinFace(key.font, key.size)
	}

	c.faces[key] = face
	return face
}

func builtinFace(f ports.Font, size float64) font.Face {
	all := builtinFonts()
	parsed, ok := all[f]
	if !ok {
		parsed, ok = all[ports.FontRegular]
	}
	if !ok {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
