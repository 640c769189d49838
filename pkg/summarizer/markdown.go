package summarizer

import (
	"fmt"
	"strings"
)

// MarkdownFormatter renders a Summary as Markdown tables.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption customizes a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the function used to translate headings and labels.
func WithTranslator(t func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) { f.translate = t }
}

// WithVersion sets the version shown in the footer.
func WithVersion(v string) MarkdownOption {
	return func(f *MarkdownFormatter) { f.version = v }
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Annotation Summary"))
	fmt.Fprintf(&b, "%s: %s\n\n", t("Generated"), s.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	if s.Settings.Preset != "" {
		fmt.Fprintf(&b, "| %s | %s |\n", t("Preset"), s.Settings.Preset)
	}
	fmt.Fprintf(&b, "| %s | %.2f |\n", t("Font Scale"), s.Settings.FontScale)
	fmt.Fprintf(&b, "| %s | %d |\n", t("Thickness"), s.Settings.Thickness)
	if s.Settings.Font != "" {
		fmt.Fprintf(&b, "| %s | %s |\n", t("Font"), s.Settings.Font)
	}
	fmt.Fprintf(&b, "| %s | %d |\n", t("Margin"), s.Settings.Margin)
	if s.Settings.Workers > 0 {
		fmt.Fprintf(&b, "| %s | %d |\n", t("Workers"), s.Settings.Workers)
	}

	fmt.Fprintf(&b, "\n## %s\n", t("Images"))
	for _, job := range s.Jobs {
		fmt.Fprintf(&b, "\n### %s\n\n", job.Output)
		fmt.Fprintf(&b, "- %s: %s\n", t("Input"), job.Input)
		fmt.Fprintf(&b, "- %s: %dx%d\n", t("Image Size"), job.Width, job.Height)
		fmt.Fprintf(&b, "- %s: %s\n\n", t("File Size"), formatBytes(job.FileSize))

		if len(job.Annotations) == 0 {
			fmt.Fprintf(&b, "%s\n", t("No annotations"))
			continue
		}

		fmt.Fprintf(&b, "| # | %s | %s | %s | %s | %s |\n",
			t("Text"), t("Lines"), t("Position"), t("Origin"), t("Block"))
		b.WriteString("|---|---|---|---|---|---|\n")
		for i, a := range job.Annotations {
			position := a.Anchor
			if a.Fallback {
				position = fmt.Sprintf("%s (%s %s)", a.Anchor, t("requested"), a.Requested)
			}
			fmt.Fprintf(&b, "| %d | %s | %d | %s | (%d, %d) | %dx%d |\n",
				i, escapeCell(a.Text), a.Lines, position, a.X, a.Y, a.Width, a.Height)
		}
	}

	b.WriteString("\n---\n")
	if f.version != "" {
		fmt.Fprintf(&b, "%s textify %s\n", t("Generated by"), f.version)
	} else {
		fmt.Fprintf(&b, "%s textify\n", t("Generated by"))
	}

	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// formatBytes formats a byte count with binary units.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}

// Ensure MarkdownFormatter implements Formatter
var _ Formatter = (*MarkdownFormatter)(nil)
