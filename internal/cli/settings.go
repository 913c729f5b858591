package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/klauern/gfxwrap/internal/config"
	"github.com/klauern/gfxwrap/internal/display"
	"github.com/klauern/gfxwrap/internal/font"
	"github.com/klauern/gfxwrap/internal/logging"
	"github.com/klauern/gfxwrap/internal/ui"
	"github.com/klauern/gfxwrap/internal/util"
	"github.com/klauern/gfxwrap/internal/wrap"
)

// panelFlags describe the display and font. Unset flags fall back to the
// profile, then the config file and environment.
func panelFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "panel-width",
			Usage: "Panel width in pixels",
		},
		&cli.IntFlag{
			Name:  "panel-height",
			Usage: "Panel height in pixels",
		},
		&cli.StringFlag{
			Name:    "font",
			Aliases: []string{"f"},
			Usage:   "Font to measure with (" + strings.Join(font.Names(), ", ") + ")",
		},
		&cli.Float64Flag{
			Name:  "size",
			Usage: "Font size: text size for classic, points for goregular and ttf",
		},
		&cli.StringFlag{
			Name:  "font-path",
			Usage: "Font `FILE` for the ttf font",
		},
		&cli.IntFlag{
			Name:  "cursor-x",
			Usage: "Cursor column text starts at",
		},
		&cli.IntFlag{
			Name:  "cursor-y",
			Usage: "Cursor row text starts at",
		},
	}
}

// limitFlags bound the wrapper.
func limitFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "width",
			Aliases: []string{"w"},
			Usage:   "Maximum pixel width (default: panel width - 1)",
		},
		&cli.IntFlag{
			Name:  "capacity",
			Usage: "Output buffer size in bytes, terminator included",
		},
	}
}

// loadSettings builds the effective configuration: defaults, config file,
// environment, profile, then flags.
func loadSettings(cmd *cli.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := cmd.String("config"); path != "" {
		cfg, err = config.LoadFromPath(util.ExpandPath(path))
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Resolve(cmd.String("profile")); err != nil {
		return nil, err
	}
	applyFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	applyOutput(cmd, cfg)
	return cfg, nil
}

func applyFlags(cmd *cli.Command, cfg *config.Config) {
	if cmd.IsSet("panel-width") {
		cfg.Display.Width = cmd.Int("panel-width")
		cfg.Wrap.MaxWidth = cfg.Display.Width - 1
	}
	if cmd.IsSet("panel-height") {
		cfg.Display.Height = cmd.Int("panel-height")
	}
	if cmd.IsSet("cursor-x") {
		cfg.Display.CursorX = cmd.Int("cursor-x")
	}
	if cmd.IsSet("cursor-y") {
		cfg.Display.CursorY = cmd.Int("cursor-y")
	}
	// A new font starts from its own defaults rather than the old size.
	if cmd.IsSet("font") {
		cfg.Font = font.Spec{Name: cmd.String("font")}
	}
	if cmd.IsSet("size") {
		cfg.Font.Size = cmd.Float64("size")
	}
	if cmd.IsSet("font-path") {
		cfg.Font.Path = util.ExpandPath(cmd.String("font-path"))
		if !cmd.IsSet("font") {
			cfg.Font.Name = font.NameTTF
		}
	}
	if cmd.IsSet("width") {
		cfg.Wrap.MaxWidth = cmd.Int("width")
	}
	if cmd.IsSet("capacity") {
		cfg.Wrap.Capacity = cmd.Int("capacity")
	}
}

// applyOutput honors the config's color and verbosity settings unless a
// flag already decided them.
func applyOutput(cmd *cli.Command, cfg *config.Config) {
	if !cmd.Bool("no-color") {
		switch cfg.Output.Color {
		case config.ColorNever:
			ui.DisableColors()
		case config.ColorAlways:
			ui.EnableColors()
		}
	}
	if cfg.Output.Verbose && !cmd.Bool("verbose") && !cmd.Bool("debug") {
		opts := logging.DefaultOptions()
		opts.Level = slog.LevelInfo
		opts.JSON = cmd.Bool("log-json")
		logging.SetDefault(logging.New(opts))
	}
}

// session is what a layout command works with: the effective config, its
// font and a display to measure and print on.
type session struct {
	cfg     *config.Config
	font    font.Font
	display *display.Display
}

func openSession(cmd *cli.Command) (*session, error) {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}

	f, err := font.Load(cfg.Font)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	s := &session{
		cfg:     cfg,
		font:    f,
		display: display.New(cfg.Display.Width, cfg.Display.Height, f),
	}
	s.display.SetTextWrap(cfg.Display.TextWrap)
	s.reset()

	if cfg.Display.TextWrap {
		logging.Warn("display text wrap is on; measurements fold at the panel edge")
	}
	logging.Info("session ready",
		logging.Profile(cfg.Display.Profile),
		logging.Font(f.Name()),
		logging.Width(cfg.Wrap.MaxWidth),
	)
	return s, nil
}

// reset clears the display and puts the cursor back where text starts.
func (s *session) reset() {
	s.display.Clear()
	s.display.SetCursor(s.cfg.Display.CursorX, s.cfg.Display.CursorY)
}

func (s *session) wrapper() *wrap.Wrapper {
	return wrap.New(s.display, wrap.WithLogger(logging.Default()))
}

// Close releases the font.
func (s *session) Close() error {
	closeFont(s.font)
	return nil
}

// input is one piece of text to lay out.
type input struct {
	name string
	text string
}

const stdinName = "stdin"

// readInputs reads each named file, or stdin when there are none or the
// name is "-". A single trailing newline is dropped; the wrapper would
// otherwise carry it into the output as text.
func readInputs(args []string) ([]input, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	inputs := make([]input, 0, len(args))
	for _, name := range args {
		var (
			data []byte
			err  error
		)
		if name == "-" {
			name = stdinName
			data, err = io.ReadAll(os.Stdin)
		} else {
			// #nosec G304 - path is provided by the user
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		text := strings.TrimSuffix(string(data), "\n")
		text = strings.TrimSuffix(text, "\r")
		inputs = append(inputs, input{name: name, text: text})
	}
	return inputs, nil
}

// ErrClipped reports wrapped text that does not fit on the panel.
var ErrClipped = errors.New("text clipped by the panel edge")
