// Package export writes wrap results as JSON, YAML or Markdown reports.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/klauern/gfxwrap/internal/logging"
)

// Format is a report output format.
type Format string

const (
	// FormatJSON writes a JSON array of records.
	FormatJSON Format = "json"
	// FormatYAML writes a YAML sequence of records.
	FormatYAML Format = "yaml"
	// FormatMarkdown writes one section per record.
	FormatMarkdown Format = "markdown"
)

// IsValid returns true if the format is recognized.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatMarkdown:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// AllFormats returns all supported formats.
func AllFormats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatMarkdown}
}

// ParseFormat parses a string into a Format.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(s)))
	if !format.IsValid() {
		return "", fmt.Errorf("unsupported format %q (valid: json, yaml, markdown)", s)
	}
	return format, nil
}

// Record is the outcome of wrapping one input.
type Record struct {
	Name         string   `json:"name" yaml:"name"`
	Profile      string   `json:"profile,omitempty" yaml:"profile,omitempty"`
	Font         string   `json:"font" yaml:"font"`
	MaxWidth     int      `json:"max_width" yaml:"max_width"`
	Capacity     int      `json:"capacity" yaml:"capacity"`
	Text         string   `json:"text" yaml:"text"`
	Lines        []string `json:"lines" yaml:"lines"`
	Breaks       []int    `json:"breaks" yaml:"breaks"`
	Written      int      `json:"written" yaml:"written"`
	Truncated    bool     `json:"truncated" yaml:"truncated"`
	Measurements int      `json:"measurements" yaml:"measurements"`
	// Clipped is set only when the result was checked against the panel.
	Clipped *int `json:"clipped,omitempty" yaml:"clipped,omitempty"`
}

// Options configures the exporter.
type Options struct {
	Format Format
	// Pretty indents JSON and YAML.
	Pretty bool
}

// DefaultOptions returns pretty JSON.
func DefaultOptions() Options {
	return Options{Format: FormatJSON, Pretty: true}
}

// Exporter writes records in one format.
type Exporter struct {
	opts Options
}

// New creates a new Exporter with the given options.
func New(opts Options) *Exporter {
	return &Exporter{opts: opts}
}

// Export writes records to w.
func (e *Exporter) Export(records []Record, w io.Writer) error {
	logging.Debug("exporting wrap results",
		slog.String("format", string(e.opts.Format)),
		logging.Count(len(records)),
		logging.Operation("export"),
	)

	var err error
	switch e.opts.Format {
	case FormatJSON:
		err = e.exportJSON(records, w)
	case FormatYAML:
		err = e.exportYAML(records, w)
	case FormatMarkdown:
		err = exportMarkdown(records, w)
	default:
		err = fmt.Errorf("unsupported format: %s", e.opts.Format)
	}
	if err != nil {
		logging.Error("export failed", slog.String("format", string(e.opts.Format)), logging.Err(err))
	}
	return err
}

func (e *Exporter) exportJSON(records []Record, w io.Writer) error {
	enc := json.NewEncoder(w)
	if e.opts.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(nonNil(records))
}

func (e *Exporter) exportYAML(records []Record, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	if e.opts.Pretty {
		enc.SetIndent(2)
	}
	if err := enc.Encode(nonNil(records)); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// nonNil makes empty slices encode as [] rather than null.
func nonNil(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		if r.Lines == nil {
			r.Lines = []string{}
		}
		if r.Breaks == nil {
			r.Breaks = []int{}
		}
		out[i] = r
	}
	return out
}

func exportMarkdown(records []Record, w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("# Wrapped Text\n\n")
	fmt.Fprintf(&sb, "Total: %d input(s)\n\n", len(records))

	for i, r := range records {
		if i > 0 {
			sb.WriteString("\n---\n\n")
		}
		writeMarkdownRecord(&sb, r)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeMarkdownRecord(sb *strings.Builder, r Record) {
	fmt.Fprintf(sb, "## %s\n\n", r.Name)

	sb.WriteString("| Property | Value |\n")
	sb.WriteString("|----------|-------|\n")
	if r.Profile != "" {
		fmt.Fprintf(sb, "| Profile | %s |\n", r.Profile)
	}
	fmt.Fprintf(sb, "| Font | %s |\n", r.Font)
	fmt.Fprintf(sb, "| Max width | %dpx |\n", r.MaxWidth)
	fmt.Fprintf(sb, "| Lines | %d |\n", len(r.Lines))
	fmt.Fprintf(sb, "| Bytes | %d of capacity %d |\n", r.Written, r.Capacity)
	if r.Truncated {
		sb.WriteString("| Truncated | yes |\n")
	}
	if r.Clipped != nil {
		fmt.Fprintf(sb, "| Clipped glyphs | %d |\n", *r.Clipped)
	}
	sb.WriteString("\n")

	if r.Text == "" {
		sb.WriteString("*No text*\n")
		return
	}
	sb.WriteString("```\n")
	sb.WriteString(r.Text)
	sb.WriteString("\n```\n")
}
