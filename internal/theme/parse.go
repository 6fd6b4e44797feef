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

package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/adaryorg/grubtamer/internal/logging"
)

var assignmentPattern = regexp.MustCompile(`^([A-Za-z0-9_-]+)\s*:\s*(.*)$`)

// parseAssignment splits a trimmed `key: "value"` or `key: value` line.
func parseAssignment(line string) (key, value string, ok bool) {
	m := assignmentPattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	rest := m[2]
	if strings.HasPrefix(rest, `"`) {
		rest = rest[1:]
		if end := strings.IndexByte(rest, '"'); end >= 0 {
			rest = rest[:end]
		}
		return m[1], rest, true
	}
	return m[1], strings.TrimSpace(rest), true
}

// Parse extracts the known properties from theme.txt content. It never
// fails; unreadable fragments are skipped.
func Parse(text string) Properties {
	props, _ := ParseWithDiagnostics(text)
	return props
}

// ParseWithDiagnostics is Parse plus a list of the fragments it had to skip
// or could only partially read.
func ParseWithDiagnostics(text string) (Properties, []Diagnostic) {
	props := Properties{}
	segs, diags := scan(text)

	var bar, circle, menu *block
	for _, seg := range segs {
		if seg.kind == segBlock {
			switch seg.block.name {
			case BlockProgressBar:
				if bar == nil {
					bar = seg.block
				}
			case BlockCircularProgress:
				if circle == nil {
					circle = seg.block
				}
			case BlockBootMenu:
				if menu == nil {
					menu = seg.block
				}
			}
			continue
		}

		trimmed := strings.TrimSpace(seg.raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		key, value, ok := parseAssignment(trimmed)
		if !ok {
			if !seg.reported && strings.ContainsAny(trimmed, "{}") {
				diags = append(diags, Diagnostic{Line: seg.line, Err: ErrMalformedInput, Detail: trimmed})
			}
			continue
		}
		if _, known := Lookup(key); known {
			props[key] = value
		}
	}

	// Colors cannot be recovered from the bitmap-driven variant.
	switch {
	case circle != nil:
		props[KeyProgressStyle] = StyleCircle
	case bar != nil:
		props[KeyProgressStyle] = StyleBar
		readBlockAttrs(props, bar)
	}

	if menu != nil {
		left, hasLeft := menu.get("left")
		top, hasTop := menu.get("top")
		if hasLeft && hasTop {
			if name, ok := PositionName(left, top); ok {
				props[KeyMenuPosition] = name
			}
		}
		readBlockAttrs(props, menu)
	}

	return props, diags
}

// readBlockAttrs copies attribute values of b into every property that is
// fed into that block. The first listed attribute is the source of truth.
func readBlockAttrs(props Properties, b *block) {
	for _, d := range descriptors {
		if d.Block != b.name || len(d.Attrs) == 0 {
			continue
		}
		if d.Storage != StoredAsAttr && d.Storage != StoredAsLineAndAttr {
			continue
		}
		if v, ok := b.get(d.Attrs[0]); ok {
			props[d.Key] = v
		}
	}
}

// LoadFile reads and parses a theme file. A missing file yields ErrNotFound;
// callers that want "no file" to mean "no properties" check for it.
func LoadFile(path string) (Properties, error) {
	data, err := readThemeFile(path)
	if err != nil {
		return Properties{}, err
	}
	props, diags := ParseWithDiagnostics(string(data))
	for _, d := range diags {
		logging.Warn("theme %s: %v", path, d)
	}
	return props, nil
}

func readThemeFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		return data, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	case errors.Is(err, fs.ErrPermission):
		return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
	default:
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}
}
