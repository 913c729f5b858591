package util

import (
	"os"
	"path/filepath"
	"strings"
)

// HomeEnv overrides the gfxwrap home directory.
const HomeEnv = "GFXWRAP_HOME"

// HomeDir returns the user's home directory
func HomeDir() string {
	home, _ := os.UserHomeDir()
	return home
}

// GfxwrapHome returns the directory holding gfxwrap's config and profiles.
// GFXWRAP_HOME wins over the default of ~/.gfxwrap.
func GfxwrapHome() string {
	if v := os.Getenv(HomeEnv); v != "" {
		return ExpandPath(v)
	}
	return filepath.Join(HomeDir(), ".gfxwrap")
}

// ConfigFilePath returns the default YAML config file path.
func ConfigFilePath() string {
	return filepath.Join(GfxwrapHome(), "config.yaml")
}

// ProfilesFilePath returns the TOML file holding user display profiles.
func ProfilesFilePath() string {
	return filepath.Join(GfxwrapHome(), "profiles.toml")
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(p string) string {
	if p == "~" {
		return HomeDir()
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(HomeDir(), p[2:])
	}
	return p
}

// BackupsPath returns the directory holding copies of overwritten config
// files.
func BackupsPath() string {
	return filepath.Join(GfxwrapHome(), "backups")
}
