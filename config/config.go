// Package config loads editor settings and key-binding overrides from a TOML
// file. A missing file yields the defaults; a malformed one is an error.
package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	"fitplan/editor"
)

// Config holds the host-tunable editor settings.
type Config struct {
	SnapIncrement float64           `toml:"snap_increment"` // feet
	HistoryLimit  int               `toml:"history_limit"`
	Autosave      bool              `toml:"autosave"`
	Keys          map[string]string `toml:"keys"` // key name -> command name
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		SnapIncrement: 0.25,
		HistoryLimit:  editor.DefaultHistoryLimit,
		Autosave:      true,
	}
}

// Load reads a config file, layering it over the defaults. A missing file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	if cfg.SnapIncrement <= 0 {
		cfg.SnapIncrement = Default().SnapIncrement
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = Default().HistoryLimit
	}
	return cfg, nil
}

// Keymap returns the default binding table with the config's overrides
// applied. Unknown command names are dropped rather than bound to a no-op.
func (c Config) Keymap() editor.Keymap {
	if len(c.Keys) == 0 {
		return editor.DefaultKeymap()
	}
	overrides := make(map[string]editor.Command, len(c.Keys))
	for key, name := range c.Keys {
		cmd := editor.Command(name)
		if knownCommand(cmd) {
			overrides[key] = cmd
		}
	}
	return editor.DefaultKeymap().Merge(overrides)
}

func knownCommand(cmd editor.Command) bool {
	switch cmd {
	case editor.CmdUndo, editor.CmdRedo, editor.CmdDeleteSelection,
		editor.CmdNudgeUp, editor.CmdNudgeDown, editor.CmdNudgeLeft, editor.CmdNudgeRight,
		editor.CmdRotate, editor.CmdEscape,
		editor.CmdToolSelect, editor.CmdToolPan, editor.CmdToolWall,
		editor.CmdToolMeasure, editor.CmdToolAnnotate,
		editor.CmdZoomIn, editor.CmdZoomOut:
		return true
	}
	return false
}
