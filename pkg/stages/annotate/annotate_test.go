package annotate

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/user/textify/pkg/adapters/logger"
	"github.com/user/textify/pkg/mocks"
	"github.com/user/textify/pkg/overlay"
	"github.com/user/textify/pkg/pipeline"
	"github.com/user/textify/pkg/placement"
)

func newInput(annotations ...pipeline.Annotation) pipeline.AnnotateInput {
	return pipeline.AnnotateInput{
		Index:       7,
		Image:       image.NewRGBA(image.Rect(0, 0, 400, 300)),
		Style:       overlay.DefaultStyle(),
		Annotations: annotations,
	}
}

func TestStage_Execute(t *testing.T) {
	renderer := &mocks.Renderer{}
	stage := NewStage(renderer, mocks.NewDebugSink(false), logger.NewNoop())

	input := newInput(
		pipeline.Annotation{Texts: []string{"title"}, Anchor: placement.InsideTopLeft},
		pipeline.Annotation{
			Texts:  []string{"person", "0.93"},
			BBox:   placement.BBox{X: 100, Y: 100, Width: 120, Height: 80},
			Anchor: placement.OutsideTopLeft,
		},
	)

	result, err := stage.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Placements) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(result.Placements))
	}
	if result.Image != input.Image {
		t.Error("expected the input buffer to be annotated in place")
	}

	first := result.Placements[0]
	if first.X != 20 || first.Y != 20 || first.Lines != 1 {
		t.Errorf("unexpected first placement: %+v", first)
	}

	second := result.Placements[1]
	if second.Anchor != placement.OutsideTopLeft || second.Fallback {
		t.Errorf("expected outside_top_left without fallback, got %+v", second)
	}
	if second.Lines != 2 {
		t.Errorf("expected 2 lines, got %d", second.Lines)
	}

	if len(renderer.Canvases) != 1 {
		t.Fatalf("expected one canvas, got %d", len(renderer.Canvases))
	}
	texts := renderer.Canvases[0].Texts
	want := []string{"title", "person", "0.93"}
	if len(texts) != len(want) {
		t.Fatalf("expected %d text draws, got %d", len(want), len(texts))
	}
	for i, w := range want {
		if texts[i].Text != w {
			t.Errorf("text %d: expected %q, got %q", i, w, texts[i].Text)
		}
	}
}

func TestStage_Execute_AppliesStyle(t *testing.T) {
	renderer := &mocks.Renderer{}
	stage := NewStage(renderer, mocks.NewDebugSink(false), logger.NewNoop())

	input := newInput(pipeline.Annotation{Texts: []string{"x"}})
	input.Style.FontScale = 2.5
	input.Style.FontColor = color.RGBA{R: 255, A: 255}
	input.Style.Margin = 5

	result, err := stage.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ts := renderer.Canvases[0].Texts[0].Style
	if ts.Scale != 2.5 {
		t.Errorf("expected scale 2.5, got %v", ts.Scale)
	}
	if ts.Color != input.Style.FontColor {
		t.Errorf("expected font color %v, got %v", input.Style.FontColor, ts.Color)
	}
	if p := result.Placements[0]; p.X != 5 || p.Y != 5 {
		t.Errorf("expected placement at margin 5, got (%d, %d)", p.X, p.Y)
	}
}

func TestStage_Execute_NoAnnotations(t *testing.T) {
	renderer := &mocks.Renderer{}
	stage := NewStage(renderer, mocks.NewDebugSink(false), logger.NewNoop())

	result, err := stage.Execute(context.Background(), newInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Placements) != 0 {
		t.Errorf("expected no placements, got %d", len(result.Placements))
	}
	if n := renderer.Canvases[0].DrawCount(); n != 0 {
		t.Errorf("expected no draw calls, got %d", n)
	}
}

func TestStage_Execute_InvalidImage(t *testing.T) {
	stage := NewStage(&mocks.Renderer{}, mocks.NewDebugSink(false), logger.NewNoop())

	input := newInput(pipeline.Annotation{Texts: []string{"x"}})
	input.Image = image.NewRGBA(image.Rectangle{})

	_, err := stage.Execute(context.Background(), input)
	if !errors.Is(err, overlay.ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
}

func TestStage_Execute_Cancelled(t *testing.T) {
	renderer := &mocks.Renderer{}
	stage := NewStage(renderer, mocks.NewDebugSink(false), logger.NewNoop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := stage.Execute(ctx, newInput(pipeline.Annotation{Texts: []string{"x"}}))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if n := renderer.Canvases[0].DrawCount(); n != 0 {
		t.Errorf("expected nothing drawn after cancellation, got %d calls", n)
	}
}

func TestStage_Execute_DebugSink(t *testing.T) {
	sink := mocks.NewDebugSink(true)
	stage := NewStage(&mocks.Renderer{}, sink, logger.NewNoop())

	input := newInput(pipeline.Annotation{Texts: []string{"hello"}, Anchor: placement.InsideBottomRight})
	if _, err := stage.Execute(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, ok := sink.PlacementsFor(7)
	if !ok {
		t.Fatal("expected placements JSON for job 7")
	}
	var decoded []struct {
		Anchor string `json:"anchor"`
		Lines  int    `json:"lines"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid placements JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Anchor != "inside_bottom_right" || decoded[0].Lines != 1 {
		t.Errorf("unexpected placements: %s", data)
	}
	if sink.Annotated[7] == nil {
		t.Error("expected annotated preview for job 7")
	}
}

func TestStage_Execute_DebugSinkFailureIsNotFatal(t *testing.T) {
	sink := mocks.NewDebugSink(true)
	sink.SavePlacementsJSONFunc = func(index int, data []byte) error {
		return errors.New("disk full")
	}
	stage := NewStage(&mocks.Renderer{}, sink, logger.NewNoop())

	if _, err := stage.Execute(context.Background(), newInput(pipeline.Annotation{Texts: []string{"x"}})); err != nil {
		t.Fatalf("expected sink failure to be ignored, got %v", err)
	}
}
