package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/klauern/gfxwrap/internal/export"
	"github.com/klauern/gfxwrap/internal/logging"
	"github.com/klauern/gfxwrap/internal/progress"
	"github.com/klauern/gfxwrap/internal/ui"
	"github.com/klauern/gfxwrap/internal/wrap"
)

func wrapCommand() *cli.Command {
	flags := append(panelFlags(), limitFlags()...)
	flags = append(flags,
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "Fail on truncation and, with --check, on clipped glyphs",
		},
		&cli.BoolFlag{
			Name:  "check",
			Usage: "Print the result on the panel and report glyphs it clips",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"F"},
			Value:   "text",
			Usage:   "Output format: text, json, yaml, markdown",
		},
		&cli.BoolFlag{
			Name:    "show-breaks",
			Aliases: []string{"b"},
			Usage:   "Mark inserted line breaks and list their byte offsets",
		},
	)

	return &cli.Command{
		Name:  "wrap",
		Usage: "Wrap text to the display's pixel width",
		UsageText: `gfxwrap wrap [options] [file...]
   echo "The quick brown fox" | gfxwrap wrap --width 54
   gfxwrap --profile st7735 wrap --font goregular --size 12 notes.txt
   gfxwrap wrap --check --show-breaks message.txt`,
		Description: `Replace spaces with newlines so that each line fits within the maximum
   pixel width when printed from the cursor with the configured font.

   Words are never split: a word wider than the limit stays on a line of its
   own. Output is limited to --capacity bytes including the terminator; longer
   text is truncated with a warning, or an error with --strict.

   With no files, text is read from stdin. A single trailing newline is
   dropped from each input.

   Newlines already in the text are kept, but each input is wrapped as one
   piece: when a line overflows, the break may land on the last space before
   an earlier newline. Wrap paragraphs as separate files to keep them apart.

   --format json, yaml or markdown prints a report per input with the
   wrapped lines, break offsets and byte counts instead of the bare text.`,
		Flags: flags,
		Action: func(_ context.Context, cmd *cli.Command) error {
			return runWrap(cmd)
		},
	}
}

// wrapOptions holds the wrap command's reporting switches.
type wrapOptions struct {
	strict     bool
	check      bool
	showBreaks bool
	// report is the export format, or "" for plain text.
	report export.Format
}

func runWrap(cmd *cli.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	inputs, err := readInputs(cmd.Args().Slice())
	if err != nil {
		return err
	}

	opts := wrapOptions{
		strict:     s.cfg.Wrap.Strict || cmd.Bool("strict"),
		check:      cmd.Bool("check"),
		showBreaks: cmd.Bool("show-breaks"),
	}
	if format := cmd.String("format"); format != "text" {
		if opts.report, err = export.ParseFormat(format); err != nil {
			return err
		}
	}

	multi := len(inputs) > 1
	var bar *progress.Bar
	if multi {
		bar = progress.New(progress.Options{
			Max:         int64(len(inputs)),
			Description: "Wrapping",
		})
	}

	var records []export.Record
	for i, in := range inputs {
		if multi {
			bar.Describe("Wrapping " + in.name)
			if opts.report == "" {
				if i > 0 {
					fmt.Println()
				}
				fmt.Println(ui.Header("==> " + in.name + " <=="))
			}
		}
		rec, err := s.wrapOne(in, opts)
		if err != nil {
			if opts.report == "" {
				return err
			}
			// Strict failures still carry a record; report what was done.
			if rec.Name != "" {
				records = append(records, rec)
			}
			if xerr := exportRecords(records, opts.report); xerr != nil {
				logging.Error("failed to write report", logging.Err(xerr))
			}
			return err
		}
		records = append(records, rec)
		if multi {
			_ = bar.Add(1)
		}
	}

	if multi {
		if err := bar.Finish(); err != nil {
			return err
		}
	}
	if opts.report != "" {
		return exportRecords(records, opts.report)
	}
	return nil
}

func exportRecords(records []export.Record, format export.Format) error {
	return export.New(export.Options{Format: format, Pretty: true}).Export(records, os.Stdout)
}

// wrapOne wraps a single input and, for plain text output, prints it.
func (s *session) wrapOne(in input, opts wrapOptions) (export.Record, error) {
	s.reset()
	out, res, err := s.wrapper().Wrap(in.text, s.cfg.Wrap.MaxWidth, s.cfg.Wrap.Capacity)
	truncated := errors.Is(err, wrap.ErrTruncated)
	if err != nil && !truncated {
		return export.Record{}, fmt.Errorf("%s: %w", in.name, err)
	}

	logging.Info("wrapped",
		logging.Path(in.name),
		logging.Count(len(res.Breaks)),
		slog.Int("measurements", res.Measurements),
		slog.Bool("truncated", res.Truncated),
	)

	rec := export.Record{
		Name:         in.name,
		Profile:      s.cfg.Display.Profile,
		Font:         s.font.Name(),
		MaxWidth:     s.cfg.Wrap.MaxWidth,
		Capacity:     s.cfg.Wrap.Capacity,
		Text:         out,
		Lines:        strings.Split(out, "\n"),
		Breaks:       res.Breaks,
		Written:      res.Written,
		Truncated:    res.Truncated,
		Measurements: res.Measurements,
	}
	if out == "" {
		rec.Lines = nil
	}

	switch {
	case opts.report != "":
	case opts.showBreaks:
		fmt.Println(ui.MarkBreaks(out, res.Breaks))
		fmt.Println(ui.Dim("breaks: " + formatOffsets(res.Breaks)))
	default:
		fmt.Println(out)
	}

	if truncated {
		if opts.strict {
			return rec, fmt.Errorf("%s: %w", in.name, err)
		}
		fmt.Fprintln(os.Stderr, ui.StatusWarning(fmt.Sprintf(
			"%s: truncated to %d of %d bytes (capacity %d)",
			in.name, res.Written, len(in.text), s.cfg.Wrap.Capacity,
		)))
	}

	if opts.check {
		clipped, err := s.check(in.name, out, opts.strict)
		rec.Clipped = &clipped
		return rec, err
	}
	return rec, nil
}

// check prints text on the panel and reports glyphs that land outside it.
// It returns the number of clipped glyphs.
func (s *session) check(name, text string, strict bool) (int, error) {
	s.reset()
	s.display.Print(text)
	clipped := s.display.Clipped()
	s.reset()

	w, h := s.display.Width(), s.display.Height()
	if len(clipped) == 0 {
		fmt.Fprintln(os.Stderr, ui.StatusSuccess(fmt.Sprintf("%s: fits the %dx%d panel", name, w, h)))
		return 0, nil
	}

	first := clipped[0]
	detail := fmt.Sprintf("%d glyph(s) outside the %dx%d panel, first %q at (%d,%d)",
		len(clipped), w, h, first.R, first.X, first.Y)
	if strict {
		return len(clipped), fmt.Errorf("%s: %w: %s", name, ErrClipped, detail)
	}
	fmt.Fprintln(os.Stderr, ui.StatusError(fmt.Sprintf("%s: %s", name, detail)))
	return len(clipped), nil
}

// formatOffsets renders break offsets as a comma separated list.
func formatOffsets(offsets []int) string {
	if len(offsets) == 0 {
		return "none"
	}
	parts := make([]string, len(offsets))
	for i, o := range offsets {
		parts[i] = strconv.Itoa(o)
	}
	return strings.Join(parts, ", ")
}
