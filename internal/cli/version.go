package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/klauern/gfxwrap/internal/font"
)

// buildInfo is what the version command reports.
type buildInfo struct {
	Version string   `json:"version"`
	Commit  string   `json:"commit"`
	Built   string   `json:"built"`
	Go      string   `json:"go"`
	Fonts   []string `json:"fonts"`
	Config  string   `json:"config"`
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Display version, build information and the fonts compiled in",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Print as JSON",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			info := buildInfo{
				Version: Version,
				Commit:  Commit,
				Built:   BuildDate,
				Go:      runtime.Version(),
				Fonts:   font.Names(),
				Config:  configPath(cmd),
			}
			if cmd.Bool("json") {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(info)
			}
			fmt.Printf("gfxwrap version %s\n", info.Version)
			fmt.Printf("  commit: %s\n", info.Commit)
			fmt.Printf("  built: %s\n", info.Built)
			fmt.Printf("  go: %s\n", info.Go)
			fmt.Printf("  fonts: %s\n", strings.Join(info.Fonts, ", "))
			fmt.Printf("  config: %s\n", info.Config)
			return nil
		},
	}
}
