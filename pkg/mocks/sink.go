package mocks

import (
	"image"
	"sync"

	"github.com/user/textify/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	Placements map[int][]byte
	Annotated  map[int]image.Image

	SavePlacementsJSONFunc func(index int, data []byte) error
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:    enabled,
		Placements: make(map[int][]byte),
		Annotated:  make(map[int]image.Image),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SavePlacementsJSON(index int, data []byte) error {
	if m.SavePlacementsJSONFunc != nil {
		return m.SavePlacementsJSONFunc(index, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Placements[index] = data
	return nil
}

func (m *DebugSink) SaveAnnotated(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Annotated[index] = img
	return nil
}

// PlacementsFor returns the saved placement JSON of a job.
func (m *DebugSink) PlacementsFor(index int) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.Placements[index]
	return data, ok
}

var _ ports.DebugSink = (*DebugSink)(nil)
