package pipeline

import (
	"image"
	"image/color"

	"github.com/user/textify/pkg/overlay"
	"github.com/user/textify/pkg/placement"
)

// =============================================================================
// Annotation Types
// =============================================================================

// Annotation is one labelled box to draw on an image.
type Annotation struct {
	Texts     []string         // Lines of text, top to bottom
	BBox      placement.BBox   // Zero value anchors the text to the whole image
	Anchor    placement.Anchor // Where the text block goes relative to BBox
	BBoxColor color.Color      // Outline color (default: green)
}

// =============================================================================
// Annotate Stage Types
// =============================================================================

// AnnotateInput contains one decoded image and the annotations to draw on it.
type AnnotateInput struct {
	Index       int // Job index, used to name debug artifacts
	Image       image.Image
	Style       overlay.Style
	Annotations []Annotation
}

// AnnotateResult contains the annotated image and where each text block
// landed, in annotation order.
type AnnotateResult struct {
	Image      image.Image
	Placements []overlay.Placement
}

// =============================================================================
// Job Types
// =============================================================================

// Job describes one input file to annotate and where to write the result.
type Job struct {
	Input       string
	Output      string
	Quality     int // JPEG quality 1-100 (default: 95)
	Annotations []Annotation
}

// JobResult reports the outcome of one job.
type JobResult struct {
	Input      string
	Output     string
	Width      int
	Height     int
	Bytes      int64 // Encoded output size
	Placements []overlay.Placement
}
