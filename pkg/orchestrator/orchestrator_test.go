package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"io/fs"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ideamans/go-l10n"

	"github.com/user/textify/pkg/adapters/ggrenderer"
	"github.com/user/textify/pkg/adapters/logger"
	"github.com/user/textify/pkg/mocks"
	"github.com/user/textify/pkg/overlay"
	"github.com/user/textify/pkg/pipeline"
	"github.com/user/textify/pkg/placement"
	"github.com/user/textify/pkg/ports"
	"github.com/user/textify/pkg/stages/annotate"
)

// mockAnnotateStage records its inputs and returns the input image.
type mockAnnotateStage struct {
	mu     sync.Mutex
	inputs []pipeline.AnnotateInput
	err    error
}

func (m *mockAnnotateStage) Execute(ctx context.Context, input pipeline.AnnotateInput) (pipeline.AnnotateResult, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()
	if m.err != nil {
		return pipeline.AnnotateResult{}, m.err
	}
	placements := make([]overlay.Placement, len(input.Annotations))
	for i, a := range input.Annotations {
		placements[i] = overlay.Placement{Requested: a.Anchor, Anchor: a.Anchor, Lines: len(a.Texts)}
	}
	return pipeline.AnnotateResult{Image: input.Image, Placements: placements}, nil
}

func seededFS(paths ...string) *mocks.FileSystem {
	mockFS := mocks.NewFileSystem()
	for _, p := range paths {
		mockFS.SetFile(p, []byte{0xFF, 0xD8})
	}
	return mockFS
}

func TestOrchestrator_Run(t *testing.T) {
	stage := &mockAnnotateStage{}
	mockFS := seededFS("a.jpg", "b.png")

	var mu sync.Mutex
	formats := map[ports.ImageFormat]int{}
	renderer := &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			mu.Lock()
			formats[format]++
			mu.Unlock()
			return []byte{byte(format)}, nil
		},
	}

	orch := New(stage, renderer, mockFS, logger.NewNoop())

	config := DefaultConfig()
	config.Workers = 2
	config.Jobs = []pipeline.Job{
		{Input: "a.jpg", Output: "out/a.jpg", Annotations: []pipeline.Annotation{{Texts: []string{"a"}}}},
		{Input: "b.png", Output: "out/b.png", Annotations: []pipeline.Annotation{{Texts: []string{"b", "c"}}}},
	}

	result, err := orch.Run(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Jobs) != 2 {
		t.Fatalf("expected 2 job results, got %d", len(result.Jobs))
	}
	for i, job := range config.Jobs {
		got := result.Jobs[i]
		if got.Input != job.Input || got.Output != job.Output {
			t.Errorf("job %d: unexpected result %+v", i, got)
		}
		if got.Width != 100 || got.Height != 100 {
			t.Errorf("job %d: expected 100x100, got %dx%d", i, got.Width, got.Height)
		}
		if _, ok := mockFS.GetFile(job.Output); !ok {
			t.Errorf("job %d: expected output %s to be written", i, job.Output)
		}
	}
	if result.Jobs[1].Placements[0].Lines != 2 {
		t.Errorf("expected placements to be carried through, got %+v", result.Jobs[1].Placements)
	}
	if formats[ports.FormatJPEG] != 1 || formats[ports.FormatPNG] != 1 {
		t.Errorf("expected one JPEG and one PNG encode, got %v", formats)
	}
}

func TestOrchestrator_Run_PassesStyleAndIndex(t *testing.T) {
	stage := &mockAnnotateStage{}
	orch := New(stage, &mocks.Renderer{}, seededFS("in.png"), logger.NewNoop())

	config := DefaultConfig()
	config.Style.FontScale = 3
	config.Jobs = []pipeline.Job{{Input: "in.png", Output: "out.png"}}

	if _, err := orch.Run(context.Background(), config); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stage.inputs) != 1 {
		t.Fatalf("expected 1 stage call, got %d", len(stage.inputs))
	}
	if stage.inputs[0].Style.FontScale != 3 {
		t.Errorf("expected font scale 3, got %v", stage.inputs[0].Style.FontScale)
	}
	if stage.inputs[0].Index != 0 {
		t.Errorf("expected index 0, got %d", stage.inputs[0].Index)
	}
}

func TestOrchestrator_Run_NoJobs(t *testing.T) {
	orch := New(&mockAnnotateStage{}, &mocks.Renderer{}, mocks.NewFileSystem(), logger.NewNoop())

	result, err := orch.Run(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Jobs) != 0 {
		t.Errorf("expected no results, got %d", len(result.Jobs))
	}
}

func TestOrchestrator_Run_ReadError(t *testing.T) {
	orch := New(&mockAnnotateStage{}, &mocks.Renderer{}, mocks.NewFileSystem(), logger.NewNoop())

	config := DefaultConfig()
	config.Jobs = []pipeline.Job{{Input: "missing.png", Output: "out.png"}}

	_, err := orch.Run(context.Background(), config)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestOrchestrator_Run_StageError(t *testing.T) {
	stageErr := errors.New("stage failed")
	mockFS := seededFS("in.png")
	orch := New(&mockAnnotateStage{err: stageErr}, &mocks.Renderer{}, mockFS, logger.NewNoop())

	config := DefaultConfig()
	config.Jobs = []pipeline.Job{{Input: "in.png", Output: "out.png"}}

	_, err := orch.Run(context.Background(), config)
	if !errors.Is(err, stageErr) {
		t.Fatalf("expected stage error, got %v", err)
	}
	if _, ok := mockFS.GetFile("out.png"); ok {
		t.Error("expected no output after a stage failure")
	}
}

func TestOrchestrator_Run_UnsupportedOutputFailsBeforeRead(t *testing.T) {
	mockFS := seededFS("in.png")
	read := false
	mockFS.ReadFileFunc = func(path string) ([]byte, error) {
		read = true
		return nil, nil
	}
	orch := New(&mockAnnotateStage{}, &mocks.Renderer{}, mockFS, logger.NewNoop())

	config := DefaultConfig()
	config.Jobs = []pipeline.Job{{Input: "in.png", Output: "out.webp"}}

	if _, err := orch.Run(context.Background(), config); err == nil {
		t.Fatal("expected an error for an unsupported output extension")
	}
	if read {
		t.Error("expected input not to be read")
	}
}

func TestOrchestrator_Run_MissingPaths(t *testing.T) {
	orch := New(&mockAnnotateStage{}, &mocks.Renderer{}, mocks.NewFileSystem(), logger.NewNoop())

	config := DefaultConfig()
	config.Jobs = []pipeline.Job{{Input: "in.png"}}

	if _, err := orch.Run(context.Background(), config); err == nil {
		t.Fatal("expected an error for a job without output")
	}
}

func TestOrchestrator_Run_RespectsWorkerLimit(t *testing.T) {
	var active, peak int32
	stage := pipeline.StageFunc[pipeline.AnnotateInput, pipeline.AnnotateResult](
		func(ctx context.Context, input pipeline.AnnotateInput) (pipeline.AnnotateResult, error) {
			n := atomic.AddInt32(&active, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&active, -1)
			return pipeline.AnnotateResult{Image: input.Image}, nil
		},
	)

	paths := []string{"1.png", "2.png", "3.png", "4.png", "5.png", "6.png"}
	config := DefaultConfig()
	config.Workers = 2
	for _, p := range paths {
		config.Jobs = append(config.Jobs, pipeline.Job{Input: p, Output: "out/" + p})
	}

	orch := New(stage, &mocks.Renderer{}, seededFS(paths...), logger.NewNoop())
	if _, err := orch.Run(context.Background(), config); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if peak > 2 {
		t.Errorf("expected at most 2 concurrent jobs, saw %d", peak)
	}
}

func TestOrchestrator_Run_Cancelled(t *testing.T) {
	stage := &mockAnnotateStage{}
	mockFS := seededFS("in.png")
	orch := New(stage, &mocks.Renderer{}, mockFS, logger.NewNoop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	config := DefaultConfig()
	config.Jobs = []pipeline.Job{{Input: "in.png", Output: "out.png"}}

	_, err := orch.Run(ctx, config)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(stage.inputs) != 0 {
		t.Error("expected no job to start after cancellation")
	}
}

func TestOrchestrator_Run_LogsCompletedCount(t *testing.T) {
	var buf bytes.Buffer
	orch := New(&mockAnnotateStage{}, &mocks.Renderer{}, seededFS("a.png", "b.png", "c.png"), logger.NewWriter(ports.LevelInfo, &buf))

	config := DefaultConfig()
	config.Jobs = []pipeline.Job{
		{Input: "a.png", Output: "a-out.png"},
		{Input: "b.png", Output: "b-out.png"},
		{Input: "c.png", Output: "c-out.png"},
	}

	if _, err := orch.Run(context.Background(), config); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := l10n.F("Annotated %d images", 3); !strings.Contains(buf.String(), want) {
		t.Errorf("expected %q in log, got %q", want, buf.String())
	}

	// A failed run reports the error instead of a completion count.
	buf.Reset()
	config.Jobs = append(config.Jobs, pipeline.Job{Input: "missing.png", Output: "d-out.png"})
	if _, err := orch.Run(context.Background(), config); err == nil {
		t.Fatal("expected an error for the missing input")
	}
	if done := l10n.F("Annotated %d images", 3); strings.Contains(buf.String(), done) {
		t.Errorf("expected no completion line after a failure, got %q", buf.String())
	}
}

func TestOrchestrator_Run_MissingFontFallsBack(t *testing.T) {
	stage := &mockAnnotateStage{}
	orch := New(stage, &mocks.Renderer{}, seededFS("in.png"), logger.NewNoop())

	config := DefaultConfig()
	config.Style.FontPath = "/nonexistent/font.ttf"
	config.Jobs = []pipeline.Job{{Input: "in.png", Output: "out.png"}}

	if _, err := orch.Run(context.Background(), config); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := stage.inputs[0].Style.FontPath; got != "" {
		t.Errorf("expected font path to be cleared, got %q", got)
	}
}

func TestOrchestrator_Run_EndToEnd(t *testing.T) {
	renderer := ggrenderer.New()

	src := image.NewRGBA(image.Rect(0, 0, 240, 160))
	for i := range src.Pix {
		src.Pix[i] = 0x80
	}
	data, err := renderer.EncodeImage(src, ports.FormatPNG, 0)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}

	mockFS := mocks.NewFileSystem()
	mockFS.SetFile("in.png", data)

	stage := annotate.NewStage(renderer, mocks.NewDebugSink(false), logger.NewNoop())
	orch := New(stage, renderer, mockFS, logger.NewNoop())

	config := DefaultConfig()
	config.Jobs = []pipeline.Job{{
		Input:  "in.png",
		Output: "out.png",
		Annotations: []pipeline.Annotation{{
			Texts:     []string{"cat"},
			BBox:      placement.BBox{X: 60, Y: 60, Width: 100, Height: 80},
			Anchor:    placement.OutsideTopLeft,
			BBoxColor: color.RGBA{R: 255, A: 255},
		}},
	}}

	result, err := orch.Run(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, ok := mockFS.GetFile("out.png")
	if !ok {
		t.Fatal("expected output to be written")
	}
	if bytes.Equal(out, data) {
		t.Error("expected output to differ from input")
	}
	decoded, err := renderer.DecodeImage(out, ports.FormatAuto)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 240 || b.Dy() != 160 {
		t.Errorf("expected 240x160 output, got %v", b)
	}
	if p := result.Jobs[0].Placements[0]; p.Lines != 1 {
		t.Errorf("unexpected placement %+v", p)
	}
}
