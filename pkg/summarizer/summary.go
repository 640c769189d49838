// Package summarizer produces a human-readable report of an annotation run.
package summarizer

import (
	"time"

	"github.com/user/textify/pkg/overlay"
	"github.com/user/textify/pkg/pipeline"
)

// Summary contains everything reported about one run.
type Summary struct {
	GeneratedAt time.Time `json:"generatedAt"`
	Settings    Settings  `json:"settings"`
	Jobs        []JobInfo `json:"jobs"`
}

// Settings contains the style and concurrency used for the run.
type Settings struct {
	Preset    string  `json:"preset"`
	FontScale float64 `json:"fontScale"`
	Thickness int     `json:"thickness"`
	Font      string  `json:"font"`
	Margin    int     `json:"margin"`
	Workers   int     `json:"workers"`
}

// JobInfo describes one annotated image.
type JobInfo struct {
	Input       string           `json:"input"`
	Output      string           `json:"output"`
	Width       int              `json:"width"`
	Height      int              `json:"height"`
	FileSize    int64            `json:"fileSize"`
	Annotations []AnnotationInfo `json:"annotations"`
}

// AnnotationInfo describes where one text block was drawn.
type AnnotationInfo struct {
	Text      string `json:"text"` // first line
	Lines     int    `json:"lines"`
	Requested string `json:"requested"`
	Anchor    string `json:"anchor"`
	Fallback  bool   `json:"fallback"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSettings sets the run settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithStyle fills the style-derived settings.
func (b *Builder) WithStyle(s overlay.Style) *Builder {
	b.summary.Settings.FontScale = s.FontScale
	b.summary.Settings.Thickness = s.Thickness
	b.summary.Settings.Font = s.Font.String()
	b.summary.Settings.Margin = s.Margin
	return b
}

// AddJob appends a job result. Annotation texts come from job, placements
// from result; both are in annotation order.
func (b *Builder) AddJob(job pipeline.Job, result pipeline.JobResult) *Builder {
	info := JobInfo{
		Input:    result.Input,
		Output:   result.Output,
		Width:    result.Width,
		Height:   result.Height,
		FileSize: result.Bytes,
	}
	for i, p := range result.Placements {
		a := AnnotationInfo{
			Lines:     p.Lines,
			Requested: p.Requested.String(),
			Anchor:    p.Anchor.String(),
			Fallback:  p.Fallback,
			X:         p.X,
			Y:         p.Y,
			Width:     p.Block.Width,
			Height:    p.Block.Height,
		}
		if i < len(job.Annotations) && len(job.Annotations[i].Texts) > 0 {
			a.Text = job.Annotations[i].Texts[0]
		}
		info.Annotations = append(info.Annotations, a)
	}
	b.summary.Jobs = append(b.summary.Jobs, info)
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
