// Package textify provides a high-level API for labelling images with
// rounded text panels and bounding boxes.
//
// Most callers need only Annotate:
//
//	style := textify.NewStyleBuilder().WithFontScale(0.8).Build()
//	img, placements, err := textify.Annotate(ctx, src, style,
//		pipeline.Annotation{
//			Texts:  []string{"person", "0.93"},
//			BBox:   placement.BBox{X: 50, Y: 50, Width: 60, Height: 40},
//			Anchor: placement.OutsideTopLeft,
//		})
package textify

import (
	"context"
	"image"

	"github.com/user/textify/pkg/adapters/ggrenderer"
	"github.com/user/textify/pkg/adapters/logger"
	"github.com/user/textify/pkg/adapters/nullsink"
	"github.com/user/textify/pkg/overlay"
	"github.com/user/textify/pkg/pipeline"
	"github.com/user/textify/pkg/ports"
	"github.com/user/textify/pkg/stages/annotate"
)

// Option customizes Annotate.
type Option func(*options)

type options struct {
	renderer ports.Renderer
	logger   ports.Logger
}

// WithRenderer replaces the gg renderer.
func WithRenderer(r ports.Renderer) Option {
	return func(o *options) { o.renderer = r }
}

// WithLogger sets the logger; by default nothing is logged.
func WithLogger(l ports.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Annotate draws annotations onto img in order and returns the annotated
// image with one placement per annotation. An *image.RGBA anchored at the
// origin is modified in place; other images are copied first.
func Annotate(ctx context.Context, img image.Image, style overlay.Style, annotations ...pipeline.Annotation) (image.Image, []overlay.Placement, error) {
	return AnnotateWith(ctx, img, style, annotations)
}

// AnnotateWith is Annotate with options.
func AnnotateWith(ctx context.Context, img image.Image, style overlay.Style, annotations []pipeline.Annotation, opts ...Option) (image.Image, []overlay.Placement, error) {
	o := options{
		renderer: ggrenderer.New(),
		logger:   logger.NewNoop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	stage := annotate.NewStage(o.renderer, nullsink.New(), o.logger)
	result, err := stage.Execute(ctx, pipeline.AnnotateInput{
		Image:       img,
		Style:       style,
		Annotations: annotations,
	})
	if err != nil {
		return nil, nil, err
	}
	return result.Image, result.Placements, nil
}
