package summarizer

import (
	"testing"
	"time"

	"github.com/user/textify/pkg/overlay"
	"github.com/user/textify/pkg/pipeline"
	"github.com/user/textify/pkg/placement"
	"github.com/user/textify/pkg/ports"
)

func TestNewSummary(t *testing.T) {
	before := time.Now()
	s := NewSummary()
	after := time.Now()

	if s.GeneratedAt.Before(before) || s.GeneratedAt.After(after) {
		t.Error("GeneratedAt should be set to current time")
	}
}

func TestBuilder_WithStyle(t *testing.T) {
	style := overlay.DefaultStyle()
	style.FontScale = 0.7
	style.Font = ports.FontMono

	s := NewBuilder().WithSettings(Settings{Preset: "dark", Workers: 3}).WithStyle(style).Build()

	if s.Settings.Preset != "dark" || s.Settings.Workers != 3 {
		t.Errorf("expected settings to be kept, got %+v", s.Settings)
	}
	if s.Settings.FontScale != 0.7 || s.Settings.Font != "mono" || s.Settings.Margin != 20 {
		t.Errorf("unexpected style settings %+v", s.Settings)
	}
}

func TestBuilder_AddJob(t *testing.T) {
	job := pipeline.Job{
		Input:  "in.jpg",
		Output: "out.jpg",
		Annotations: []pipeline.Annotation{
			{Texts: []string{"person", "0.93"}},
			{},
		},
	}
	result := pipeline.JobResult{
		Input:  "in.jpg",
		Output: "out.jpg",
		Width:  640,
		Height: 480,
		Bytes:  2048,
		Placements: []overlay.Placement{
			{
				Requested: placement.OutsideTopLeft,
				Anchor:    placement.InsideTopLeft,
				Fallback:  true,
				X:         70,
				Y:         70,
				Block:     placement.Block{Width: 80, Height: 40},
				Lines:     2,
			},
			{Requested: placement.InsideTopLeft, Anchor: placement.InsideTopLeft},
		},
	}

	s := NewBuilder().AddJob(job, result).Build()

	if len(s.Jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(s.Jobs))
	}
	j := s.Jobs[0]
	if j.Width != 640 || j.Height != 480 || j.FileSize != 2048 {
		t.Errorf("unexpected job info %+v", j)
	}
	if len(j.Annotations) != 2 {
		t.Fatalf("expected 2 annotations, got %d", len(j.Annotations))
	}
	a := j.Annotations[0]
	if a.Text != "person" || a.Lines != 2 || a.Anchor != "inside_top_left" || a.Requested != "outside_top_left" || !a.Fallback {
		t.Errorf("unexpected annotation info %+v", a)
	}
	if a.Width != 80 || a.Height != 40 {
		t.Errorf("expected block 80x40, got %dx%d", a.Width, a.Height)
	}
	if j.Annotations[1].Text != "" {
		t.Errorf("expected empty text for annotation without lines, got %q", j.Annotations[1].Text)
	}
}
