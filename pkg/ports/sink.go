package ports

import (
	"image"
)

// DebugSink receives intermediate results for inspection.
// Index identifies the job an artifact belongs to.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SavePlacementsJSON saves where each annotation of a job was placed.
	SavePlacementsJSON(index int, data []byte) error

	// SaveAnnotated saves a PNG preview of an annotated image.
	SaveAnnotated(index int, img image.Image) error
}
