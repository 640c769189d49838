// Package config loads annotation jobs and drawing style from YAML or TOML.
package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/user/textify/pkg/orchestrator"
	"github.com/user/textify/pkg/overlay"
	"github.com/user/textify/pkg/pipeline"
	"github.com/user/textify/pkg/placement"
	"github.com/user/textify/pkg/ports"
)

// Config represents a job file.
type Config struct {
	Style   StyleConfig `yaml:"style" toml:"style"`
	Workers int         `yaml:"workers" toml:"workers"`
	Quality int         `yaml:"quality" toml:"quality"` // default JPEG quality for jobs that set none

	// Debug
	Debug    bool   `yaml:"debug" toml:"debug"`
	DebugDir string `yaml:"debug_dir" toml:"debug_dir"`

	Jobs []JobConfig `yaml:"jobs" toml:"jobs"`
}

// StyleConfig represents the drawing style shared by all jobs.
type StyleConfig struct {
	FontScale         float64 `yaml:"font_scale" toml:"font_scale"`
	FontColor         string  `yaml:"font_color" toml:"font_color"`
	Thickness         int     `yaml:"thickness" toml:"thickness"`
	LineType          string  `yaml:"line_type" toml:"line_type"`
	Font              string  `yaml:"font" toml:"font"`
	FontPath          string  `yaml:"font_path" toml:"font_path"`
	Margin            int     `yaml:"margin" toml:"margin"`
	Padding           int     `yaml:"padding" toml:"padding"`
	BackgroundPadding int     `yaml:"background_padding" toml:"background_padding"`
	CornerRadius      int     `yaml:"corner_radius" toml:"corner_radius"`
	BackgroundColor   string  `yaml:"background_color" toml:"background_color"`
}

// JobConfig represents one image to annotate.
type JobConfig struct {
	Input       string             `yaml:"input" toml:"input"`
	Output      string             `yaml:"output" toml:"output"`
	Quality     int                `yaml:"quality" toml:"quality"`
	Annotations []AnnotationConfig `yaml:"annotations" toml:"annotations"`
}

// AnnotationConfig represents one labelled box.
type AnnotationConfig struct {
	Texts     []string `yaml:"texts" toml:"texts"`
	BBox      []int    `yaml:"bbox" toml:"bbox"` // [x, y, width, height]; omit for the whole image
	Position  string   `yaml:"position" toml:"position"`
	BBoxColor string   `yaml:"bbox_color" toml:"bbox_color"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Style: StyleConfig{
			FontScale:         1.0,
			FontColor:         "#000000",
			Thickness:         2,
			LineType:          "aa",
			Font:              "regular",
			Margin:            20,
			Padding:           20,
			BackgroundPadding: 10,
			CornerRadius:      10,
			BackgroundColor:   "#ffffff",
		},
		Workers:  4,
		Quality:  95,
		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file, or from a TOML file
// when path ends in .toml.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults(), err
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ParseTOML(data)
	}
	return Parse(data)
}

// Parse parses a YAML document over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ParseTOML parses a TOML document over the defaults.
func ParseTOML(data []byte) (Config, error) {
	cfg := Defaults()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ParseColor parses "#rgb", "#rrggbb" (the '#' is optional) or an SVG color
// name. Anything else yields black.
func ParseColor(s string) color.Color {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return color.Black
	}
	if c, ok := colornames.Map[s]; ok {
		return c
	}
	if s[0] != '#' {
		s = "#" + s
	}
	// colorful.Hex scans with fmt, which tolerates short and overlong input.
	if len(s) != 4 && len(s) != 7 {
		return color.Black
	}
	if strings.Trim(s[1:], "0123456789abcdef") != "" {
		return color.Black
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.Black
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// ToStyle converts the style section to an overlay.Style.
func (s StyleConfig) ToStyle() overlay.Style {
	return overlay.Style{
		FontScale:         s.FontScale,
		FontColor:         ParseColor(s.FontColor),
		Thickness:         s.Thickness,
		LineType:          ports.ParseLineType(s.LineType),
		Font:              ports.ParseFont(s.Font),
		FontPath:          s.FontPath,
		Margin:            s.Margin,
		Padding:           s.Padding,
		BackgroundPadding: s.BackgroundPadding,
		CornerRadius:      s.CornerRadius,
		BackgroundColor:   ParseColor(s.BackgroundColor),
	}
}

// ToAnnotation converts an annotation entry. A bbox must have four values
// or none.
func (a AnnotationConfig) ToAnnotation() (pipeline.Annotation, error) {
	ann := pipeline.Annotation{
		Texts:  a.Texts,
		Anchor: placement.ParseAnchor(a.Position),
	}
	switch len(a.BBox) {
	case 0:
	case 4:
		ann.BBox = placement.BBox{X: a.BBox[0], Y: a.BBox[1], Width: a.BBox[2], Height: a.BBox[3]}
	default:
		return ann, fmt.Errorf("bbox needs 4 values [x, y, width, height], got %d", len(a.BBox))
	}
	if a.BBoxColor != "" {
		ann.BBoxColor = ParseColor(a.BBoxColor)
	}
	return ann, nil
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() (orchestrator.Config, error) {
	out := orchestrator.Config{
		Style:   c.Style.ToStyle(),
		Workers: c.Workers,
		Jobs:    make([]pipeline.Job, 0, len(c.Jobs)),
	}
	for i, j := range c.Jobs {
		job := pipeline.Job{
			Input:       j.Input,
			Output:      j.Output,
			Quality:     j.Quality,
			Annotations: make([]pipeline.Annotation, 0, len(j.Annotations)),
		}
		if job.Quality <= 0 {
			job.Quality = c.Quality
		}
		for k, a := range j.Annotations {
			ann, err := a.ToAnnotation()
			if err != nil {
				return out, fmt.Errorf("job %d annotation %d: %w", i, k, err)
			}
			job.Annotations = append(job.Annotations, ann)
		}
		out.Jobs = append(out.Jobs, job)
	}
	return out, nil
}

// UnknownPositions returns the position names that do not name an anchor.
func (c Config) UnknownPositions() []string {
	var unknown []string
	for _, j := range c.Jobs {
		for _, a := range j.Annotations {
			if placement.ParseAnchor(a.Position) == placement.AnchorUnknown {
				unknown = append(unknown, a.Position)
			}
		}
	}
	return unknown
}
