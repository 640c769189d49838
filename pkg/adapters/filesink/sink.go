// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/textify/pkg/ports"
)

// Sink saves debug output under baseDir:
//
//	placements/job-0000.json
//	annotated/job-0000.png
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new file sink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SavePlacementsJSON saves the placements of one job.
func (s *Sink) SavePlacementsJSON(index int, data []byte) error {
	dir := filepath.Join(s.baseDir, "placements")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	return s.fs.WriteFile(filepath.Join(dir, fmt.Sprintf("job-%04d.json", index)), data)
}

// SaveAnnotated saves the annotated image of one job as PNG.
func (s *Sink) SaveAnnotated(index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, "annotated")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode annotated image: %w", err)
	}
	return s.fs.WriteFile(filepath.Join(dir, fmt.Sprintf("job-%04d.png", index)), data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
