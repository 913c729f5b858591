package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/klauern/gfxwrap/internal/font"
	"github.com/klauern/gfxwrap/internal/similarity"
	"github.com/klauern/gfxwrap/internal/util"
)

// ErrUnknownProfile is returned when a profile name is not defined.
var ErrUnknownProfile = errors.New("unknown display profile")

// Profile is a named display geometry plus font.
type Profile struct {
	Name        string    `toml:"-" yaml:"name"`
	Description string    `toml:"description" yaml:"description,omitempty"`
	Width       int       `toml:"width" yaml:"width"`
	Height      int       `toml:"height" yaml:"height"`
	Font        font.Spec `toml:"font" yaml:"font"`
	BuiltIn     bool      `toml:"-" yaml:"-"`
}

// profilesFile is the layout of profiles.toml:
//
//	[profiles.badge]
//	description = "e-paper badge"
//	width = 296
//	height = 128
//	font = { name = "goregular", size = 14.0 }
type profilesFile struct {
	Profiles map[string]Profile `toml:"profiles"`
}

func builtinProfiles() map[string]Profile {
	classic := func(size float64) font.Spec { return font.Spec{Name: font.NameClassic, Size: size} }
	return map[string]Profile{
		"ssd1306": {
			Description: "SSD1306 128x64 monochrome OLED",
			Width:       128, Height: 64, Font: classic(1),
		},
		"ssd1306-32": {
			Description: "SSD1306 128x32 monochrome OLED",
			Width:       128, Height: 32, Font: classic(1),
		},
		"st7735": {
			Description: "ST7735 160x128 TFT",
			Width:       160, Height: 128, Font: classic(1),
		},
		"ili9341": {
			Description: "ILI9341 320x240 TFT at text size 2",
			Width:       320, Height: 240, Font: classic(2),
		},
		"hd44780": {
			Description: "HD44780 16x2 character LCD",
			Width:       96, Height: 16,
			Font: font.Spec{Name: font.NameCells, CellWidth: 6, CellHeight: 8},
		},
	}
}

// ProfilesFilePath returns the path to the user profiles file.
func ProfilesFilePath() string {
	return util.ProfilesFilePath()
}

// LoadProfiles returns the built-in profiles merged with those defined in
// the profiles file. User profiles replace built-ins of the same name. A
// missing file is not an error.
func LoadProfiles() (map[string]Profile, error) {
	return LoadProfilesFromPath(ProfilesFilePath())
}

// LoadProfilesFromPath is LoadProfiles reading a specific file.
func LoadProfilesFromPath(path string) (map[string]Profile, error) {
	profiles := builtinProfiles()
	for name, p := range profiles {
		p.Name = name
		p.BuiltIn = true
		profiles[name] = p
	}

	// #nosec G304 - path is constructed from trusted config directory
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return profiles, nil
		}
		return nil, err
	}

	var pf profilesFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for name, p := range pf.Profiles {
		p.Name = name
		if p.Width <= 0 || p.Height <= 0 {
			return nil, &ValidationError{Field: "profiles." + name, Message: "width and height must be positive"}
		}
		profiles[name] = p
	}
	return profiles, nil
}

// LookupProfile finds a profile by name.
func LookupProfile(name string) (Profile, error) {
	profiles, err := LoadProfiles()
	if err != nil {
		return Profile{}, err
	}
	p, ok := profiles[name]
	if !ok {
		names := slices.Collect(maps.Keys(profiles))
		return Profile{}, fmt.Errorf("%w: %q%s", ErrUnknownProfile, name, similarity.Hint(name, names))
	}
	return p, nil
}

// SortedProfiles returns the profiles ordered by name.
func SortedProfiles(profiles map[string]Profile) []Profile {
	out := make([]Profile, 0, len(profiles))
	for _, name := range slices.Sorted(maps.Keys(profiles)) {
		out = append(out, profiles[name])
	}
	return out
}
