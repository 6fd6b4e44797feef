/*
MIT License

Copyright (c) 2025 Yuval Adar <adary@adary.org>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Paths      PathsConfig      `toml:"paths"`
	Grub       GrubConfig       `toml:"grub"`
	Privileged PrivilegedConfig `toml:"privileged"`
	Logging    LoggingConfig    `toml:"logging"`
	Backup     BackupConfig     `toml:"backup"`
	Editor     EditorConfig     `toml:"editor"`
	Theme      ThemeConfig      `toml:"theme"`
}

type PathsConfig struct {
	GrubDefault  string `toml:"grub_default"`
	GrubCfg      string `toml:"grub_cfg"`
	ThemesDir    string `toml:"themes_dir"`
	DefaultTheme string `toml:"default_theme"`
}

// GrubConfig names the command that regenerates grub.cfg after
// /etc/default/grub changed. An empty command skips regeneration.
type GrubConfig struct {
	UpdateCommand string `toml:"update_command"`
}

// PrivilegedConfig controls how root-owned files are written.
type PrivilegedConfig struct {
	Command string `toml:"command"`
	Enabled bool   `toml:"enabled"`
}

type LoggingConfig struct {
	LogFile    string `toml:"log_file"`
	Level      string `toml:"level"`
	MaxAge     int    `toml:"max_age"`
	MaxSize    int    `toml:"max_size"`
	MaxBackups int    `toml:"max_backups"`
}

type BackupConfig struct {
	MaxEntries int `toml:"max_entries"`
}

type EditorConfig struct {
	TextEditor string `toml:"text_editor"`
}

// ThemeConfig holds the colors of the terminal UI itself.
type ThemeConfig struct {
	Header      ColorConfig `toml:"header"`
	Status      ColorConfig `toml:"status"`
	Group       ColorConfig `toml:"group"`
	Selected    ColorConfig `toml:"selected"`
	Virtual     ColorConfig `toml:"virtual"`
	Warning     ColorConfig `toml:"warning"`
	Border      ColorConfig `toml:"border"`
	SyntaxStyle string      `toml:"syntax_style"`
}

type ColorConfig struct {
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
	Bold       bool   `toml:"bold"`
}

// Dir returns ~/.config/grubtamer.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "grubtamer"), nil
}

// Load reads ~/.config/grubtamer/config.toml, creating it on first run.
func Load() (*Config, error) {
	configDir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(filepath.Join(configDir, "config.toml"))
}

// LoadFrom reads the config at configPath, creating a default one if the
// file does not exist.
func LoadFrom(configPath string) (*Config, error) {
	// Create default config if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := createDefaultConfig(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	var config Config
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Paths.GrubDefault == "" {
		c.Paths.GrubDefault = "/etc/default/grub"
	}
	if c.Paths.GrubCfg == "" {
		c.Paths.GrubCfg = "/boot/grub/grub.cfg"
	}
	if c.Paths.ThemesDir == "" {
		c.Paths.ThemesDir = "/boot/grub/themes"
	}
	if c.Paths.DefaultTheme == "" {
		c.Paths.DefaultTheme = filepath.Join(c.Paths.ThemesDir, "GrubTamer", "theme.txt")
	}

	if c.Grub.UpdateCommand == "" {
		c.Grub.UpdateCommand = "update-grub"
	}

	if c.Privileged.Command == "" {
		c.Privileged.Command = "pkexec"
	}

	if c.Logging.LogFile == "" {
		c.Logging.LogFile = "~/.local/state/grubtamer/grubtamer.log"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.MaxAge <= 0 {
		c.Logging.MaxAge = 30
	}
	if c.Logging.MaxSize <= 0 {
		c.Logging.MaxSize = 10
	}
	if c.Logging.MaxBackups <= 0 {
		c.Logging.MaxBackups = 3
	}

	if c.Backup.MaxEntries <= 0 {
		c.Backup.MaxEntries = 50 // Default fallback
	}

	if c.Editor.TextEditor == "" {
		c.Editor.TextEditor = "nano"
	}

	if c.Theme.Header.Foreground == "" {
		c.Theme.Header.Foreground = "13" // bright magenta
		c.Theme.Header.Bold = true
	}
	if c.Theme.Status.Foreground == "" {
		c.Theme.Status.Foreground = "8"
	}
	if c.Theme.Group.Foreground == "" {
		c.Theme.Group.Foreground = "141" // light purple
		c.Theme.Group.Bold = true
	}
	if c.Theme.Selected.Foreground == "" {
		c.Theme.Selected.Foreground = "15"
		c.Theme.Selected.Background = "55"
	}
	if c.Theme.Virtual.Foreground == "" {
		c.Theme.Virtual.Foreground = "6"
	}
	if c.Theme.Warning.Foreground == "" {
		c.Theme.Warning.Foreground = "9"
		c.Theme.Warning.Bold = true
	}
	if c.Theme.Border.Foreground == "" {
		c.Theme.Border.Foreground = "39"
	}
	if c.Theme.SyntaxStyle == "" {
		c.Theme.SyntaxStyle = "monokai"
	}
}

func createDefaultConfig(configPath string) error {
	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	file, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(`[paths]
grub_default = "/etc/default/grub"
grub_cfg = "/boot/grub/grub.cfg"
themes_dir = "/boot/grub/themes"
default_theme = "/boot/grub/themes/GrubTamer/theme.txt"

[grub]
update_command = "update-grub"

[privileged]
command = "pkexec"
enabled = true

[logging]
log_file = "~/.local/state/grubtamer/grubtamer.log"
level = "info"
max_age = 30
max_size = 10
max_backups = 3

[backup]
max_entries = 50

[editor]
text_editor = "nano"

[theme]
syntax_style = "monokai"

[theme.header]
foreground = "13"
bold = true

[theme.status]
foreground = "8"

[theme.group]
foreground = "141"
bold = true

[theme.selected]
foreground = "15"
background = "55"

[theme.virtual]
foreground = "6"

[theme.warning]
foreground = "9"
bold = true

[theme.border]
foreground = "39"
`)

	return err
}
