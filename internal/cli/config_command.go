package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/klauern/gfxwrap/internal/backup"
	"github.com/klauern/gfxwrap/internal/config"
	"github.com/klauern/gfxwrap/internal/logging"
	"github.com/klauern/gfxwrap/internal/ui"
	"github.com/klauern/gfxwrap/internal/util"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Show or create the configuration",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the effective configuration",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"F"},
						Value:   "yaml",
						Usage:   "Output format: yaml, toml",
					},
				}, append(panelFlags(), limitFlags()...)...),
				Action: func(_ context.Context, cmd *cli.Command) error {
					cfg, err := loadSettings(cmd)
					if err != nil {
						return err
					}
					var data []byte
					switch format := cmd.String("format"); format {
					case "yaml":
						data, err = cfg.YAML()
					case "toml":
						data, err = cfg.TOML()
					default:
						return fmt.Errorf("unsupported format: %s (use yaml or toml)", format)
					}
					if err != nil {
						return fmt.Errorf("failed to encode config: %w", err)
					}
					fmt.Print(string(data))
					return nil
				},
			},
			{
				Name:  "path",
				Usage: "Print the config file path",
				Action: func(_ context.Context, cmd *cli.Command) error {
					fmt.Println(configPath(cmd))
					return nil
				},
			},
			{
				Name:  "init",
				Usage: "Write the default configuration",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing config file",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					path := configPath(cmd)
					if _, err := os.Stat(path); err == nil {
						if !cmd.Bool("force") {
							return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
						}
						if _, err := backupConfig(path, "config init --force"); err != nil {
							return err
						}
					}
					if err := config.Default().SaveToPath(path); err != nil {
						return fmt.Errorf("failed to write config: %w", err)
					}
					pruneBackups()
					logging.Info("config written", logging.Path(path))
					fmt.Println(ui.StatusSuccess("Wrote " + path))
					return nil
				},
			},
			{
				Name:  "backups",
				Usage: "List saved copies of overwritten config files",
				Action: func(_ context.Context, _ *cli.Command) error {
					list, err := backup.List()
					if err != nil {
						return err
					}
					if len(list) == 0 {
						fmt.Println("No backups.")
						return nil
					}
					for _, m := range list {
						fmt.Printf("%s  %s  %s %s\n",
							m.ID, m.CreatedAt.Format(time.DateTime), m.SourcePath, ui.Dim(m.Description))
					}
					return nil
				},
			},
			{
				Name:      "restore",
				Usage:     "Restore a config file from a backup",
				ArgsUsage: "<backup-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "to",
						Usage: "Restore to this path instead of the original location",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return errors.New("restore takes exactly one backup ID (see 'gfxwrap config backups')")
					}
					target := util.ExpandPath(cmd.String("to"))
					id := cmd.Args().First()

					meta, err := backup.Get(id)
					if err != nil {
						return err
					}
					dest := target
					if dest == "" {
						dest = meta.SourcePath
					}
					var saved *backup.Metadata
					if _, err := os.Stat(dest); err == nil {
						if saved, err = backupConfig(dest, "config restore "+id); err != nil {
							return err
						}
					}

					if _, err := backup.Restore(id, target); err != nil {
						if saved != nil {
							if derr := backup.Delete(saved.ID); derr != nil {
								logging.Warn("failed to remove unused backup", logging.Err(derr))
							}
						}
						return err
					}
					// Pruning waits for the restore so that it cannot remove id.
					pruneBackups()
					fmt.Println(ui.StatusSuccess("Restored " + dest))
					return nil
				},
			},
		},
	}
}

// backupConfig saves a copy of path before it is overwritten.
func backupConfig(path, reason string) (*backup.Metadata, error) {
	meta, err := backup.Create(path, reason)
	if err != nil {
		return nil, fmt.Errorf("failed to back up %s: %w", path, err)
	}
	fmt.Println(ui.Info("Backed up " + path + " as " + meta.ID))
	return meta, nil
}

// pruneBackups drops all but the newest backups of each file.
func pruneBackups() {
	if _, err := backup.Prune(backup.DefaultKeep); err != nil {
		logging.Warn("failed to prune backups", logging.Err(err))
	}
}

// configPath is the --config file, or the default location.
func configPath(cmd *cli.Command) string {
	if path := cmd.String("config"); path != "" {
		return util.ExpandPath(path)
	}
	return config.FilePath()
}

func profilesCommand() *cli.Command {
	return &cli.Command{
		Name:  "profiles",
		Usage: "List display profiles",
		Description: `List the built-in display profiles and those defined in profiles.toml
   beside the config file. Select one with the global --profile flag.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Value: "table",
				Usage: "Output format: table, yaml",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			profiles, err := config.LoadProfiles()
			if err != nil {
				return fmt.Errorf("failed to load profiles: %w", err)
			}
			sorted := config.SortedProfiles(profiles)

			switch cmd.String("format") {
			case "yaml":
				data, err := yaml.Marshal(sorted)
				if err != nil {
					return fmt.Errorf("failed to encode YAML: %w", err)
				}
				fmt.Print(string(data))
				return nil
			case "table":
			default:
				return errors.New("invalid format: " + cmd.String("format") + " (use table or yaml)")
			}

			active := cmd.String("profile")
			fmt.Println(ui.Bold("Profiles:"))
			for _, p := range sorted {
				marker := " "
				if p.Name == active {
					marker = ui.Success("*")
				}
				source := "user"
				if p.BuiltIn {
					source = "built-in"
				}
				fontDesc := p.Font.Name
				if p.Font.Size > 0 {
					fontDesc = fmt.Sprintf("%s %g", p.Font.Name, p.Font.Size)
				}
				fmt.Printf("%s %-12s %4dx%-4d %-14s %s %s\n",
					marker, p.Name, p.Width, p.Height, fontDesc, p.Description, ui.Dim("("+source+")"))
			}
			return nil
		},
	}
}
