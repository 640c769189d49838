// Package annotate implements the stage that draws labelled boxes on an image.
package annotate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/user/textify/pkg/overlay"
	"github.com/user/textify/pkg/pipeline"
	"github.com/user/textify/pkg/ports"
)

// Stage applies the annotations of one image in order.
type Stage struct {
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new annotate stage.
func NewStage(renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("annotate"),
	}
}

// Execute draws every annotation onto input.Image. When the image is an
// *image.RGBA anchored at the origin it is modified in place.
func (s *Stage) Execute(ctx context.Context, input pipeline.AnnotateInput) (pipeline.AnnotateResult, error) {
	o, err := overlay.New(input.Image, s.renderer, s.logger)
	if err != nil {
		return pipeline.AnnotateResult{}, fmt.Errorf("create overlay: %w", err)
	}
	o.SetStyle(input.Style)

	w, h := o.Size()
	s.logger.Debug("Applying %d annotations to %dx%d image", len(input.Annotations), w, h)

	placements := make([]overlay.Placement, 0, len(input.Annotations))
	for i, a := range input.Annotations {
		if err := ctx.Err(); err != nil {
			return pipeline.AnnotateResult{}, err
		}
		_, p := o.PutText(a.Texts, a.BBox, a.Anchor, a.BBoxColor)
		placements = append(placements, p)
		if p.Lines > 0 {
			s.logger.Debug("Annotation %d placed at (%d, %d) using %s", i, p.X, p.Y, p.Anchor)
		}
	}

	result := pipeline.AnnotateResult{
		Image:      o.Image(),
		Placements: placements,
	}

	if s.sink.Enabled() {
		s.saveDebug(input.Index, result)
	}

	return result, nil
}

// saveDebug writes debug artifacts. Failures are logged, never returned.
func (s *Stage) saveDebug(index int, result pipeline.AnnotateResult) {
	data, err := json.MarshalIndent(result.Placements, "", "  ")
	if err == nil {
		err = s.sink.SavePlacementsJSON(index, data)
	}
	if err == nil {
		err = s.sink.SaveAnnotated(index, result.Image)
	}
	if err != nil {
		s.logger.Warn("Failed to save debug output: %v", err)
	}
}

// Ensure Stage implements pipeline.Stage
var _ pipeline.Stage[pipeline.AnnotateInput, pipeline.AnnotateResult] = (*Stage)(nil)
