package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
)

// ConfigFileName is the preferred name of the Focus configuration file.
const ConfigFileName = "focus.toml"

// HiddenConfigFileName is the dotfile variant, used when ConfigFileName is
// absent from a directory.
const HiddenConfigFileName = ".focus.toml"

// configFilePattern matches both accepted file names in a single directory.
const configFilePattern = "{focus,.focus}.toml"

// FindConfigFile walks up from the given directory to find focus.toml (or
// .focus.toml). Returns the absolute path to the config file, or an empty
// string if not found. Stops at the filesystem root.
func FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	for {
		name, err := configFileIn(dir)
		if err != nil {
			return "", err
		}
		if name != "" {
			return filepath.Join(dir, name), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root.
			return "", nil
		}
		dir = parent
	}
}

// configFileIn returns the config file name present in dir, preferring
// ConfigFileName over HiddenConfigFileName, or "" when neither exists.
func configFileIn(dir string) (string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), configFilePattern, doublestar.WithFilesOnly())
	if err != nil {
		return "", fmt.Errorf("searching %s for config: %w", dir, err)
	}
	for _, name := range []string{ConfigFileName, HiddenConfigFileName} {
		if slices.Contains(matches, name) {
			return name, nil
		}
	}
	return "", nil
}

// LoadFromFile parses the TOML file at the given path and returns the
// configuration and TOML metadata. The metadata can be used to detect
// unknown keys via MetaData.Undecoded().
func LoadFromFile(path string) (*Config, toml.MetaData, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, md, fmt.Errorf("loading config %s: %w", path, err)
	}
	return &cfg, md, nil
}
