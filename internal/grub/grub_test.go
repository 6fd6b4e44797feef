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

package grub

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleDefaults = `# If you change this file, run 'update-grub' afterwards
GRUB_DEFAULT=0
GRUB_TIMEOUT=5
GRUB_DISTRIBUTOR=` + "`lsb_release -i -s 2> /dev/null || echo Debian`" + `
GRUB_CMDLINE_LINUX_DEFAULT="quiet splash"

# Uncomment to disable graphical terminal
#GRUB_TERMINAL=console
GRUB_THEME='/boot/grub/themes/x/theme.txt'
`

func TestParseDefaults(t *testing.T) {
	s := ParseDefaults(sampleDefaults)

	tests := []struct {
		key      string
		expected string
	}{
		{"GRUB_DEFAULT", "0"},
		{"GRUB_TIMEOUT", "5"},
		{"GRUB_CMDLINE_LINUX_DEFAULT", "quiet splash"},
		{"GRUB_THEME", "/boot/grub/themes/x/theme.txt"},
	}
	for _, test := range tests {
		if got, _ := s.Get(test.key); got != test.expected {
			t.Errorf("Expected %s=%q, got %q", test.key, test.expected, got)
		}
	}

	if _, ok := s.Get("GRUB_TERMINAL"); ok {
		t.Error("Commented settings should not be parsed")
	}

	expectedKeys := []string{"GRUB_DEFAULT", "GRUB_TIMEOUT", "GRUB_DISTRIBUTOR", "GRUB_CMDLINE_LINUX_DEFAULT", "GRUB_THEME"}
	if !reflect.DeepEqual(s.Keys(), expectedKeys) {
		t.Errorf("Expected keys %v, got %v", expectedKeys, s.Keys())
	}
}

func TestSettingsRender(t *testing.T) {
	s := ParseDefaults(sampleDefaults)
	s.Set("GRUB_TIMEOUT", "10")
	s.Set("GRUB_GFXMODE", "1920x1080")
	s.Delete("GRUB_DEFAULT")

	out := s.Render()

	for _, want := range []string{
		"# If you change this file, run 'update-grub' afterwards\n",
		"GRUB_TIMEOUT=10\n",
		"GRUB_CMDLINE_LINUX_DEFAULT=\"quiet splash\"\n",
		"#GRUB_TERMINAL=console\n",
		"GRUB_THEME=\"/boot/grub/themes/x/theme.txt\"\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "GRUB_DEFAULT") {
		t.Errorf("Deleted key should be gone:\n%s", out)
	}
	if !strings.HasSuffix(out, "GRUB_GFXMODE=\"1920x1080\"\n") {
		t.Errorf("New keys should be appended:\n%s", out)
	}

	// Render is stable
	if again := ParseDefaults(out).Render(); again != out {
		t.Errorf("Expected stable render, got:\n%s\nvs\n%s", again, out)
	}
}

func TestFormatSetting(t *testing.T) {
	tests := []struct {
		key, value, expected string
	}{
		{"GRUB_TIMEOUT", "5", "GRUB_TIMEOUT=5"},
		{"GRUB_TIMEOUT", "-1", "GRUB_TIMEOUT=-1"},
		{"GRUB_DEFAULT", "saved", `GRUB_DEFAULT="saved"`},
		{"GRUB_DEFAULT", "", `GRUB_DEFAULT=""`},
		{"GRUB_DEFAULT", `Ubuntu "x"`, `GRUB_DEFAULT='Ubuntu "x"'`},
	}
	for _, test := range tests {
		if got := formatSetting(test.key, test.value); got != test.expected {
			t.Errorf("formatSetting(%q, %q): expected %s, got %s", test.key, test.value, test.expected, got)
		}
	}
}

func TestReadDefaults(t *testing.T) {
	dir := t.TempDir()

	if _, err := ReadDefaults(filepath.Join(dir, "grub")); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	path := filepath.Join(dir, "grub")
	if err := os.WriteFile(path, []byte(sampleDefaults), 0644); err != nil {
		t.Fatalf("Failed to write defaults: %v", err)
	}
	s, err := ReadDefaults(path)
	if err != nil {
		t.Fatalf("ReadDefaults failed: %v", err)
	}
	if v, _ := s.Get("GRUB_TIMEOUT"); v != "5" {
		t.Errorf("Expected GRUB_TIMEOUT=5, got %q", v)
	}
}

func TestParseMenuEntries(t *testing.T) {
	cfg := `### BEGIN /etc/grub.d/10_linux ###
menuentry 'Ubuntu' --class ubuntu --class gnu-linux {
	linux /vmlinuz
}
submenu 'Advanced options for Ubuntu' {
	menuentry "Ubuntu, with Linux 6.8.0" --class ubuntu {
		linux /vmlinuz-6.8.0
	}
}
menuentry 'Windows Boot Manager (on /dev/nvme0n1p1)' {
}
`
	expected := []string{"Ubuntu", "Ubuntu, with Linux 6.8.0", "Windows Boot Manager (on /dev/nvme0n1p1)"}
	if got := ParseMenuEntries(cfg); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestSearchOptions(t *testing.T) {
	results := SearchOptions("gfx")
	if len(results) == 0 || results[0].Key != "GRUB_GFXMODE" {
		t.Errorf("Expected GRUB_GFXMODE first, got %v", results)
	}

	if all := SearchOptions(""); len(all) != len(StandardOptions)+len(DocOptions) {
		t.Errorf("Expected all options for empty query, got %d", len(all))
	}

	if results := SearchOptions("zzzzqqq"); len(results) != 0 {
		t.Errorf("Expected no match, got %v", results)
	}
}

func TestLookupOption(t *testing.T) {
	o, ok := LookupOption("GRUB_TIMEOUT_STYLE")
	if !ok || o.Label != "Timeout Style" {
		t.Errorf("Expected Timeout Style option, got %+v (found=%v)", o, ok)
	}
	if _, ok := LookupOption("GRUB_NOPE"); ok {
		t.Error("Unknown key should not be found")
	}
}
