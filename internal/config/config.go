// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads datoviz's optional TOML configuration file: the
// ambient "configuration" layer the distilled spec is silent on
// (default present mode, color format, log level, frame-pool capacity).
package config

import (
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"

	"datoviz.org/dvz/base/iox/tomlx"
)

// FileName is the configuration file's name, looked for under the
// user's config directory.
const FileName = "config.toml"

// DirName is the subdirectory of the user's config directory datoviz
// reads FileName from (~/.config/datoviz on Linux, via go-homedir).
const DirName = "datoviz"

// Config holds the settings datoviz reads from its TOML config file.
// Every field has a zero-value-safe default applied by Default.
type Config struct {
	// PresentMode names a swapchain present mode ("fifo", "mailbox",
	// "immediate"). No canvas.Config is built from it: canvas.Config
	// takes its present mode from the caller.
	PresentMode string `toml:"present_mode"`

	// ColorFormat names a swapchain color format ("bgra8-srgb",
	// "bgra8", "rgba8"). canvas.Config does not read it.
	ColorFormat string `toml:"color_format"`

	// LogLevel holds a DVZ_LOG_LEVEL value (0-5). The logger takes its
	// level from the environment variable alone; the demo command only
	// reports this field in its startup log line.
	LogLevel int `toml:"log_level"`

	// FramePoolCapacity names a frame-timing ring buffer size. The
	// renderer sets canvas.Config.TimingHistory from its own constant
	// (120), not from this field.
	FramePoolCapacity int `toml:"frame_pool_capacity"`
}

// Default returns the built-in configuration used when no config file
// is found.
func Default() Config {
	return Config{
		PresentMode:       "fifo",
		ColorFormat:       "bgra8-srgb",
		LogLevel:          2,
		FramePoolCapacity: 120,
	}
}

// Path returns the default config file path, ~/.config/datoviz/config.toml.
func Path() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", DirName, FileName), nil
}

// Load reads the config file at Path into a Default()-seeded Config.
// A missing file is not an error: Load returns the defaults unchanged.
func Load() (Config, error) {
	cfg := Default()
	path, err := Path()
	if err != nil {
		return cfg, err
	}
	if err := tomlx.Open(&cfg, path); err != nil {
		if ok, statErr := fileMissing(path); ok {
			return cfg, nil
		} else if statErr != nil {
			return cfg, statErr
		}
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg to the default config file path, creating the
// ~/.config/datoviz directory first if needed.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return tomlx.Save(&cfg, path)
}
