package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// FileConfig is the optional on-disk dot.toml layer (§3 FileConfig):
// default directories and booleans a repeat invocation doesn't want to
// restate on the command line. Flags always win over a FileConfig value;
// a FileConfig value always wins over the zero value.
type FileConfig struct {
	StowDir   string   `mapstructure:"stow_dir"`
	TargetDir string   `mapstructure:"target_dir"`
	Dotfiles  bool     `mapstructure:"dotfiles"`
	Adopt     bool     `mapstructure:"adopt"`
	NoFolding bool     `mapstructure:"no_folding"`
	Override  []string `mapstructure:"override"`
	Defer     []string `mapstructure:"defer"`
	Ignore    []string `mapstructure:"ignore"`
}

// LoadFile reads a dot.toml file layer. explicitPath, if non-empty, is used
// directly. Otherwise the search order is <stowDir>/dot.toml, then
// $XDG_CONFIG_HOME/dot/dot.toml. Returns a zero FileConfig, no error, if no
// file is found at any candidate location.
func LoadFile(explicitPath, stowDir string) (FileConfig, error) {
	var fc FileConfig

	path := explicitPath
	if path == "" {
		path = firstExisting(candidatePaths(stowDir))
	}
	if path == "" {
		return fc, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return fc, err
	}
	if err := v.Unmarshal(&fc); err != nil {
		return fc, err
	}
	return fc, nil
}

func candidatePaths(stowDir string) []string {
	var paths []string
	if stowDir != "" {
		paths = append(paths, filepath.Join(stowDir, "dot.toml"))
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "dot", "dot.toml"))
	}
	return paths
}

func firstExisting(paths []string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Merge overlays fc's values onto opts wherever opts has not already been
// given an explicit, non-zero value — flags take precedence over the file.
func Merge(opts Options, fc FileConfig) Options {
	if opts.StowDir == "" {
		opts.StowDir = fc.StowDir
	}
	if opts.TargetDir == "" {
		opts.TargetDir = fc.TargetDir
	}
	if !opts.Dotfile {
		opts.Dotfile = fc.Dotfiles
	}
	if !opts.Adopt {
		opts.Adopt = fc.Adopt
	}
	if !opts.NoFold {
		opts.NoFold = fc.NoFolding
	}
	opts.Override = append(append([]string{}, fc.Override...), opts.Override...)
	opts.Defer = append(append([]string{}, fc.Defer...), opts.Defer...)
	opts.Ignore = append(append([]string{}, fc.Ignore...), opts.Ignore...)
	return opts
}
