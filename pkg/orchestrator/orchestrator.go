// Package orchestrator runs annotation jobs from input file to output file.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/user/textify/pkg/overlay"
	"github.com/user/textify/pkg/pipeline"
	"github.com/user/textify/pkg/ports"
)

// Config contains all configuration for a run.
type Config struct {
	Style   overlay.Style
	Workers int // Jobs processed concurrently (default: number of CPUs)
	Jobs    []pipeline.Job
}

// DefaultConfig returns a Config with default values and no jobs.
func DefaultConfig() Config {
	return Config{
		Style:   overlay.DefaultStyle(),
		Workers: runtime.NumCPU(),
	}
}

// Orchestrator reads, annotates, encodes and writes images.
type Orchestrator struct {
	annotateStage pipeline.Stage[pipeline.AnnotateInput, pipeline.AnnotateResult]
	renderer      ports.Renderer
	fs            ports.FileSystem
	logger        ports.Logger
}

// New creates a new Orchestrator.
func New(
	annotateStage pipeline.Stage[pipeline.AnnotateInput, pipeline.AnnotateResult],
	renderer ports.Renderer,
	fs ports.FileSystem,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		annotateStage: annotateStage,
		renderer:      renderer,
		fs:            fs,
		logger:        logger,
	}
}

// RunResult contains the outcome of every job, in job order.
type RunResult struct {
	Jobs []pipeline.JobResult
}

// Run processes all jobs. Up to config.Workers jobs run at once, each with
// its own image buffer. The first failure cancels jobs that have not
// started and is returned.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	if len(config.Jobs) == 0 {
		return RunResult{Jobs: []pipeline.JobResult{}}, nil
	}

	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(config.Jobs) {
		workers = len(config.Jobs)
	}

	style := o.resolveFont(config.Style)

	o.logger.Info("Annotating %d images with %d workers", len(config.Jobs), workers)

	results := make([]pipeline.JobResult, len(config.Jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range config.Jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := o.runJob(gctx, i, job, style)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					o.logger.Error("Failed to annotate %s: %v", job.Input, err)
				}
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return RunResult{}, err
	}

	o.logger.Info("Annotated %d images", len(results))
	return RunResult{Jobs: results}, nil
}

func (o *Orchestrator) runJob(ctx context.Context, index int, job pipeline.Job, style overlay.Style) (pipeline.JobResult, error) {
	if job.Input == "" || job.Output == "" {
		return pipeline.JobResult{}, fmt.Errorf("job %d: input and output are required", index)
	}

	// Resolve the output format first so a bad extension fails before any work.
	format, err := o.renderer.FormatForPath(job.Output)
	if err != nil {
		return pipeline.JobResult{}, fmt.Errorf("output format: %w", err)
	}

	o.logger.Info("Annotating %s", job.Input)

	data, err := o.fs.ReadFile(job.Input)
	if err != nil {
		return pipeline.JobResult{}, fmt.Errorf("read input %s: %w", job.Input, err)
	}

	img, err := o.renderer.DecodeImage(data, ports.FormatAuto)
	if err != nil {
		return pipeline.JobResult{}, fmt.Errorf("decode input %s: %w", job.Input, err)
	}

	annotated, err := o.annotateStage.Execute(ctx, pipeline.AnnotateInput{
		Index:       index,
		Image:       img,
		Style:       style,
		Annotations: job.Annotations,
	})
	if err != nil {
		return pipeline.JobResult{}, fmt.Errorf("annotate stage: %w", err)
	}

	encoded, err := o.renderer.EncodeImage(annotated.Image, format, job.Quality)
	if err != nil {
		return pipeline.JobResult{}, fmt.Errorf("encode output %s: %w", job.Output, err)
	}

	if err := o.fs.WriteFile(job.Output, encoded); err != nil {
		return pipeline.JobResult{}, fmt.Errorf("write output: %w", err)
	}
	o.logger.Info("Output saved to %s", job.Output)

	b := annotated.Image.Bounds()
	return pipeline.JobResult{
		Input:      job.Input,
		Output:     job.Output,
		Width:      b.Dx(),
		Height:     b.Dy(),
		Bytes:      int64(len(encoded)),
		Placements: annotated.Placements,
	}, nil
}

// resolveFont drops a font path that does not exist so every job falls
// back to the built-in font with a single warning.
func (o *Orchestrator) resolveFont(style overlay.Style) overlay.Style {
	if style.FontPath == "" {
		return style
	}
	if ok, err := o.fs.Exists(style.FontPath); err != nil || !ok {
		o.logger.Warn("Font file %s not found, using built-in font", style.FontPath)
		style.FontPath = ""
	}
	return style
}
