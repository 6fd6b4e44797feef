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

// Package grub reads and writes the main GRUB settings file
// (/etc/default/grub) and scrapes boot entries from grub.cfg.
package grub

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

var (
	ErrNotFound         = errors.New("grub configuration file not found")
	ErrPermissionDenied = errors.New("permission denied")
)

type lineKind int

const (
	lineRaw lineKind = iota
	lineSetting
)

type line struct {
	kind lineKind
	raw  string
	key  string
}

// Settings is an ordered KEY=value file. Comments and other lines are kept
// so the file can be written back without losing them.
type Settings struct {
	lines  []line
	values map[string]string
}

// ParseDefaults parses the content of /etc/default/grub.
func ParseDefaults(text string) *Settings {
	s := &Settings{values: make(map[string]string)}
	if text == "" {
		return s
	}

	for _, raw := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		raw = strings.TrimSuffix(raw, "\r")
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || !strings.Contains(trimmed, "=") {
			s.lines = append(s.lines, line{kind: lineRaw, raw: raw})
			continue
		}

		key, value, _ := strings.Cut(trimmed, "=")
		key = strings.TrimSpace(key)
		if _, seen := s.values[key]; !seen {
			s.lines = append(s.lines, line{kind: lineSetting, raw: raw, key: key})
		}
		s.values[key] = unquote(strings.TrimSpace(value))
	}
	return s
}

// ReadDefaults reads and parses path.
func ReadDefaults(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		return ParseDefaults(string(data)), nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	case errors.Is(err, fs.ErrPermission):
		return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' && v[len(v)-1] == '"' || v[0] == '\'' && v[len(v)-1] == '\'') {
		return v[1 : len(v)-1]
	}
	return v
}

// Get returns the value of key.
func (s *Settings) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set updates key, appending it if it is new.
func (s *Settings) Set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.lines = append(s.lines, line{kind: lineSetting, key: key})
	}
	s.values[key] = value
}

// Delete removes key.
func (s *Settings) Delete(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	out := s.lines[:0]
	for _, l := range s.lines {
		if l.kind == lineSetting && l.key == key {
			continue
		}
		out = append(out, l)
	}
	s.lines = out
}

// Keys returns the setting keys in file order.
func (s *Settings) Keys() []string {
	var keys []string
	for _, l := range s.lines {
		if l.kind == lineSetting {
			keys = append(keys, l.key)
		}
	}
	return keys
}

// Map returns a copy of all values.
func (s *Settings) Map() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Render writes the settings back. Values that are not plain integers are
// quoted, with single quotes when the value itself holds a double quote.
func (s *Settings) Render() string {
	var b strings.Builder
	for _, l := range s.lines {
		if l.kind == lineRaw {
			b.WriteString(l.raw)
		} else {
			b.WriteString(formatSetting(l.key, s.values[l.key]))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatSetting(key, value string) string {
	if isInteger(value) {
		return key + "=" + value
	}
	if strings.Contains(value, `"`) && !strings.Contains(value, "'") {
		return fmt.Sprintf(`%s='%s'`, key, value)
	}
	return fmt.Sprintf(`%s="%s"`, key, value)
}

func isInteger(v string) bool {
	if strings.HasPrefix(v, "-") {
		v = v[1:]
	}
	if v == "" {
		return false
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
