// Package main provides the CLI entry point for textify.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/textify/pkg/adapters/filesink"
	"github.com/user/textify/pkg/adapters/ggrenderer"
	"github.com/user/textify/pkg/adapters/logger"
	"github.com/user/textify/pkg/adapters/nullsink"
	"github.com/user/textify/pkg/adapters/osfilesystem"
	"github.com/user/textify/pkg/config"
	"github.com/user/textify/pkg/orchestrator"
	"github.com/user/textify/pkg/overlay"
	"github.com/user/textify/pkg/pipeline"
	"github.com/user/textify/pkg/placement"
	"github.com/user/textify/pkg/ports"
	"github.com/user/textify/pkg/stages/annotate"
	"github.com/user/textify/pkg/summarizer"
	"github.com/user/textify/pkg/textify"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Annotate  AnnotateCmd  `cmd:"" help:"${annotate_help}"`
	Run       RunCmd       `cmd:"" help:"${run_help}"`
	Positions PositionsCmd `cmd:"" help:"${positions_help}"`
	Version   VersionCmd   `cmd:"" help:"${version_help}"`
}

// LogFlags are shared by commands that process images.
type LogFlags struct {
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"${log_level_help}"`
	Quiet    bool   `short:"Q" help:"${quiet_help}"`
}

func (f LogFlags) newLogger() ports.Logger {
	if f.Quiet {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(f.LogLevel))
}

// OutputFlags control debug artifacts and the Markdown summary.
type OutputFlags struct {
	Debug    bool   `short:"d" help:"${debug_help}"`
	DebugDir string `default:"./debug" help:"${debug_dir_help}"`
	Summary  string `short:"s" help:"${summary_help}"`
}

// StyleFlags override the preset style.
type StyleFlags struct {
	Preset            string   `default:"light" enum:"light,dark" help:"${preset_help}"`
	FontScale         *float64 `help:"${font_scale_help}"`
	FontColor         *string  `help:"${font_color_help}"`
	Thickness         *int     `help:"${thickness_help}"`
	BackgroundColor   *string  `help:"${background_color_help}"`
	Font              *string  `help:"${font_help}"`
	FontPath          *string  `help:"${font_path_help}"`
	LineType          *string  `help:"${line_type_help}"`
	Margin            *int     `help:"${margin_help}"`
	Padding           *int     `help:"${padding_help}"`
	BackgroundPadding *int     `help:"${background_padding_help}"`
	CornerRadius      *int     `help:"${corner_radius_help}"`
}

// AnnotateCmd draws one annotation on one image.
type AnnotateCmd struct {
	Input     string   `arg:"" type:"existingfile" help:"${input_help}"`
	Output    string   `short:"o" required:"" help:"${output_help}"`
	Texts     []string `name:"text" short:"t" sep:"none" help:"${text_help}"`
	BBox      []int    `name:"bbox" short:"b" help:"${bbox_help}"`
	Position  string   `short:"p" default:"inside_top_left" help:"${position_help}"`
	BBoxColor string   `name:"bbox-color" default:"#00ff00" help:"${bbox_color_help}"`
	Quality   int      `short:"q" default:"95" help:"${quality_help}"`

	StyleFlags  `embed:""`
	OutputFlags `embed:""`
	LogFlags    `embed:""`
}

// RunCmd runs every job of a job file.
type RunCmd struct {
	Config  string `arg:"" type:"existingfile" help:"${config_help}"`
	Workers *int   `short:"w" help:"${workers_help}"`

	OutputFlags `embed:""`
	LogFlags    `embed:""`
}

// PositionsCmd lists the anchor names.
type PositionsCmd struct{}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

const defaultDebugDir = "./debug"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("textify"),
		kong.Description(l10n.T("Draw labelled boxes and text panels on images")),
		kong.UsageOnError(),
		helpVars(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Validate checks flag combinations kong cannot express.
func (cmd *AnnotateCmd) Validate() error {
	if len(cmd.BBox) != 0 && len(cmd.BBox) != 4 {
		return fmt.Errorf("%s", l10n.F("--bbox needs 4 values x,y,width,height, got %d", len(cmd.BBox)))
	}
	if cmd.Quality < 1 || cmd.Quality > 100 {
		return fmt.Errorf("%s", l10n.F("--quality must be between 1 and 100, got %d", cmd.Quality))
	}
	return nil
}

// Run executes the annotate command.
func (cmd *AnnotateCmd) Run() error {
	log := cmd.newLogger()

	anchor := placement.ParseAnchor(cmd.Position)
	if anchor == placement.AnchorUnknown {
		log.Warn("Unknown position %q, using top-left margin", cmd.Position)
	}

	ann := pipeline.Annotation{
		Texts:     cmd.Texts,
		Anchor:    anchor,
		BBoxColor: config.ParseColor(cmd.BBoxColor),
	}
	if len(cmd.BBox) == 4 {
		ann.BBox = placement.BBox{X: cmd.BBox[0], Y: cmd.BBox[1], Width: cmd.BBox[2], Height: cmd.BBox[3]}
	}

	cfg := orchestrator.DefaultConfig()
	cfg.Style = cmd.buildStyle()
	cfg.Workers = 1
	cfg.Jobs = []pipeline.Job{{
		Input:       cmd.Input,
		Output:      cmd.Output,
		Quality:     cmd.Quality,
		Annotations: []pipeline.Annotation{ann},
	}}

	return execute(log, cfg, cmd.OutputFlags, cmd.Preset)
}

// buildStyle applies flag overrides on top of the preset.
func (f StyleFlags) buildStyle() overlay.Style {
	b := textify.NewPresetStyleBuilder(textify.Preset(f.Preset))
	if f.FontScale != nil {
		b.WithFontScale(*f.FontScale)
	}
	if f.FontColor != nil {
		b.WithFontColor(config.ParseColor(*f.FontColor))
	}
	if f.Thickness != nil {
		b.WithThickness(*f.Thickness)
	}
	if f.BackgroundColor != nil {
		b.WithBackgroundColor(config.ParseColor(*f.BackgroundColor))
	}
	if f.Font != nil {
		b.WithFont(ports.ParseFont(*f.Font))
	}
	if f.FontPath != nil {
		b.WithFontPath(*f.FontPath)
	}
	if f.LineType != nil {
		b.WithLineType(ports.ParseLineType(*f.LineType))
	}
	if f.Margin != nil {
		b.WithMargin(*f.Margin)
	}
	if f.Padding != nil {
		b.WithPadding(*f.Padding)
	}
	if f.BackgroundPadding != nil {
		b.WithBackgroundPadding(*f.BackgroundPadding)
	}
	if f.CornerRadius != nil {
		b.WithCornerRadius(*f.CornerRadius)
	}
	return b.Build()
}

// Run executes the run command.
func (cmd *RunCmd) Run() error {
	log := cmd.newLogger()

	fileCfg, err := config.LoadFromFile(cmd.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	for _, p := range fileCfg.UnknownPositions() {
		log.Warn("Unknown position %q, using top-left margin", p)
	}

	cfg, err := fileCfg.ToOrchestratorConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Workers != nil {
		cfg.Workers = *cmd.Workers
	}

	return execute(log, cfg, cmd.OutputFlags.withFileDefaults(fileCfg), "")
}

// withFileDefaults enables debug output when the job file asks for it.
// The file's debug_dir is used only if --debug-dir was left at its default.
func (f OutputFlags) withFileDefaults(fileCfg config.Config) OutputFlags {
	if fileCfg.Debug {
		f.Debug = true
	}
	if f.DebugDir == defaultDebugDir && fileCfg.DebugDir != "" {
		f.DebugDir = fileCfg.DebugDir
	}
	return f
}

// Run executes the positions command.
func (cmd *PositionsCmd) Run() error {
	for _, a := range placement.Anchors() {
		fmt.Println(a)
	}
	return nil
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("textify version %s", version))
	return nil
}

// execute wires the adapters, runs the orchestrator and writes the summary.
func execute(log ports.Logger, cfg orchestrator.Config, out OutputFlags, preset string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	fs := osfilesystem.New()
	renderer := ggrenderer.New()

	var sink ports.DebugSink
	if out.Debug {
		if err := fs.MkdirAll(out.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(out.DebugDir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	annotateStage := annotate.NewStage(renderer, sink, log)
	orch := orchestrator.New(annotateStage, renderer, fs, log)

	result, err := orch.Run(ctx, cfg)
	if err != nil {
		return err
	}

	if out.Summary != "" {
		b := summarizer.NewBuilder().
			WithSettings(summarizer.Settings{Preset: preset, Workers: cfg.Workers}).
			WithStyle(cfg.Style)
		for i, job := range cfg.Jobs {
			b.AddJob(job, result.Jobs[i])
		}
		formatter := summarizer.ForPath(out.Summary,
			summarizer.WithTranslator(l10n.T),
			summarizer.WithVersion(version),
		)
		if err := summarizer.NewWriter(formatter, fs).Write(out.Summary, b.Build()); err != nil {
			log.Error("Failed to write summary: %v", err)
			return err
		}
		log.Info("Summary saved to %s", out.Summary)
	}

	return nil
}
