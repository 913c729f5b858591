package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/klauern/gfxwrap/internal/ui"
	"github.com/klauern/gfxwrap/internal/ui/tui"
	"github.com/klauern/gfxwrap/internal/wrap"
)

func previewCommand() *cli.Command {
	return &cli.Command{
		Name:      "preview",
		Usage:     "Interactively tune the wrap width and capacity",
		ArgsUsage: "[file]",
		Description: `Show the wrapped text framed at the panel's size and re-wrap it as the
   limits change. Press + and - to move the width by one glyph, [ and ] to
   change the capacity, and q to quit. The final limits are printed on exit.`,
		Flags: append(panelFlags(), limitFlags()...),
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() > 1 {
				return errors.New("preview takes at most one file")
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			inputs, err := readInputs(cmd.Args().Slice())
			if err != nil {
				return err
			}
			in := inputs[0]

			var opts []tea.ProgramOption
			if in.name == stdinName {
				// Keys come from the terminal when the text came down a pipe.
				opts = append(opts, tea.WithInputTTY())
			}

			res, err := tui.RunPreview(tui.PreviewSettings{
				Name:     in.name,
				Source:   in.text,
				Display:  s.display,
				CursorX:  s.cfg.Display.CursorX,
				CursorY:  s.cfg.Display.CursorY,
				MaxWidth: s.cfg.Wrap.MaxWidth,
				Capacity: s.cfg.Wrap.Capacity,
			}, opts...)
			if err != nil {
				return fmt.Errorf("preview failed: %w", err)
			}

			fmt.Printf("max_width: %d\ncapacity: %d\n", res.MaxWidth, res.Capacity)
			return nil
		},
	}
}

func renderCommand() *cli.Command {
	flags := append(panelFlags(), limitFlags()...)
	flags = append(flags,
		&cli.IntFlag{
			Name:  "scale-x",
			Value: 1,
			Usage: "Pixels per output column",
		},
		&cli.IntFlag{
			Name:  "scale-y",
			Value: 2,
			Usage: "Pixels per output row",
		},
	)

	return &cli.Command{
		Name:      "render",
		Usage:     "Wrap text and draw the panel as ASCII art",
		ArgsUsage: "[file]",
		Description: `Wrap the input, print it on the panel and show which areas are inked.
   Each output character covers scale-x by scale-y pixels; '#' is ink and '.'
   is blank.`,
		Flags: flags,
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() > 1 {
				return errors.New("render takes at most one file")
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			inputs, err := readInputs(cmd.Args().Slice())
			if err != nil {
				return err
			}
			in := inputs[0]

			out, res, err := s.wrapper().Wrap(in.text, s.cfg.Wrap.MaxWidth, s.cfg.Wrap.Capacity)
			if err != nil && !errors.Is(err, wrap.ErrTruncated) {
				return fmt.Errorf("%s: %w", in.name, err)
			}

			s.reset()
			s.display.Print(out)
			rows := s.display.Raster(cmd.Int("scale-x"), cmd.Int("scale-y"))
			fmt.Println(frame(rows))

			if res.Truncated {
				fmt.Fprintln(os.Stderr, ui.StatusWarning(fmt.Sprintf("%s: truncated to %d bytes", in.name, res.Written)))
			}
			if n := len(s.display.Clipped()); n > 0 {
				fmt.Fprintln(os.Stderr, ui.StatusError(fmt.Sprintf("%s: %d glyph(s) clipped", in.name, n)))
			}
			return nil
		},
	}
}

// frame draws a box around raster rows.
func frame(rows []string) string {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	edge := "+" + strings.Repeat("-", width) + "+"

	var b strings.Builder
	b.WriteString(edge)
	for _, row := range rows {
		b.WriteString("\n|")
		b.WriteString(row)
		b.WriteString("|")
	}
	b.WriteString("\n")
	b.WriteString(edge)
	return b.String()
}
