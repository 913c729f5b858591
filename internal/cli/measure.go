package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/klauern/gfxwrap/internal/font"
	"github.com/klauern/gfxwrap/internal/ui"
)

// Bounds is the measure command's JSON output.
type Bounds struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

func measureCommand() *cli.Command {
	return &cli.Command{
		Name:      "measure",
		Usage:     "Print the bounding box of text drawn from the cursor",
		ArgsUsage: "<text>",
		UsageText: `gfxwrap measure [options] <text>
   gfxwrap measure "The quick"
   gfxwrap measure --font basic --json "Hello"`,
		Flags: append(panelFlags(),
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output in JSON format for scripting",
			},
		),
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return errors.New("measure requires text to measure")
			}
			text := strings.Join(cmd.Args().Slice(), " ")

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			r := s.display.Bounds(text, s.cfg.Display.CursorX, s.cfg.Display.CursorY)
			if cmd.Bool("json") {
				encoder := json.NewEncoder(os.Stdout)
				if err := encoder.Encode(Bounds{X: r.X, Y: r.Y, W: r.W, H: r.H}); err != nil {
					return fmt.Errorf("failed to encode JSON: %w", err)
				}
				return nil
			}
			fmt.Printf("%d %d %d %d\n", r.X, r.Y, r.W, r.H)
			return nil
		},
	}
}

func fontsCommand() *cli.Command {
	return &cli.Command{
		Name:  "fonts",
		Usage: "List available fonts and their metrics",
		Flags: panelFlags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			fmt.Println(ui.Bold("Fonts:"))
			for _, name := range font.Names() {
				spec := font.Spec{Name: name}
				active := name == cfg.Font.Name
				if active {
					spec = cfg.Font
				}

				marker := " "
				if active {
					marker = ui.Success("*")
				}

				f, err := font.Load(spec)
				if err != nil {
					fmt.Printf("%s %-10s %s\n", marker, name, ui.Dim("unavailable: "+err.Error()))
					continue
				}
				fmt.Printf("%s %-10s line height %3d  advance(M) %3d  %s\n",
					marker, name, f.LineHeight(), f.Glyph('M').Advance, ui.Dim(f.Name()))
				closeFont(f)
			}
			return nil
		},
	}
}

func closeFont(f font.Font) {
	if c, ok := f.(io.Closer); ok {
		_ = c.Close()
	}
}
