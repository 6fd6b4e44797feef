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
	"os"
	"path/filepath"
	"testing"
)

func setTestHome(t *testing.T) string {
	tmpDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpDir)
	t.Cleanup(func() {
		os.Setenv("HOME", originalHome)
	})
	return tmpDir
}

func TestConfig_DefaultValues(t *testing.T) {
	tmpDir := setTestHome(t)

	// Load config (should create default)
	config, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, ".config", "grubtamer", "config.toml")); err != nil {
		t.Errorf("Expected default config file to be created: %v", err)
	}

	if config.Grub.UpdateCommand != "update-grub" {
		t.Errorf("Expected UpdateCommand to be 'update-grub', got '%s'", config.Grub.UpdateCommand)
	}
	if config.Paths.GrubDefault != "/etc/default/grub" {
		t.Errorf("Expected GrubDefault to be '/etc/default/grub', got '%s'", config.Paths.GrubDefault)
	}
	if config.Paths.DefaultTheme != "/boot/grub/themes/GrubTamer/theme.txt" {
		t.Errorf("Expected DefaultTheme to be the GrubTamer theme, got '%s'", config.Paths.DefaultTheme)
	}
	if config.Privileged.Command != "pkexec" || !config.Privileged.Enabled {
		t.Errorf("Expected privileged pkexec enabled, got %+v", config.Privileged)
	}
	if config.Backup.MaxEntries != 50 {
		t.Errorf("Expected MaxEntries to be 50, got %d", config.Backup.MaxEntries)
	}
	if config.Logging.Level != "info" {
		t.Errorf("Expected log level 'info', got '%s'", config.Logging.Level)
	}
	if config.Theme.Header.Foreground != "13" || !config.Theme.Header.Bold {
		t.Errorf("Expected bold header color '13', got %+v", config.Theme.Header)
	}
	if config.Theme.SyntaxStyle != "monokai" {
		t.Errorf("Expected syntax style 'monokai', got '%s'", config.Theme.SyntaxStyle)
	}
	if config.Editor.TextEditor != "nano" {
		t.Errorf("Expected TextEditor to be 'nano', got '%s'", config.Editor.TextEditor)
	}
}

func TestConfig_CustomValues(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "custom.toml")
	custom := `[paths]
themes_dir = "/usr/share/grub/themes"

[privileged]
command = "sudo"
enabled = false

[backup]
max_entries = 5

[theme.header]
foreground = "red"
background = "blue"
`
	if err := os.WriteFile(configPath, []byte(custom), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	config, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Paths.ThemesDir != "/usr/share/grub/themes" {
		t.Errorf("Expected ThemesDir override, got '%s'", config.Paths.ThemesDir)
	}
	if config.Paths.DefaultTheme != "/usr/share/grub/themes/GrubTamer/theme.txt" {
		t.Errorf("Expected DefaultTheme to follow ThemesDir, got '%s'", config.Paths.DefaultTheme)
	}
	if config.Privileged.Command != "sudo" || config.Privileged.Enabled {
		t.Errorf("Expected sudo disabled, got %+v", config.Privileged)
	}
	if config.Backup.MaxEntries != 5 {
		t.Errorf("Expected MaxEntries to be 5, got %d", config.Backup.MaxEntries)
	}
	if config.Theme.Header.Foreground != "red" || config.Theme.Header.Background != "blue" {
		t.Errorf("Expected custom header colors, got %+v", config.Theme.Header)
	}

	// Missing values fall back to defaults
	if config.Theme.Group.Foreground != "141" {
		t.Errorf("Expected Group.Foreground to default to '141', got '%s'", config.Theme.Group.Foreground)
	}
}

func TestConfig_InvalidMaxEntries(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[backup]\nmax_entries = -10\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	config, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Backup.MaxEntries != 50 {
		t.Errorf("Expected MaxEntries to fallback to 50, got %d", config.Backup.MaxEntries)
	}
}

func TestConfig_MalformedToml(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	malformed := `[backup
max_entries = 500
invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(malformed), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("Expected error for malformed TOML")
	}
}
