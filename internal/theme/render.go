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
	"fmt"
	"strings"
)

// Asset file names referenced by the circular progress block. The caller
// generates them next to theme.txt before saving.
const (
	CenterBitmap = "c_center.png"
	TickBitmap   = "c_tick.png"
)

const (
	defaultProgressColor   = "#fff"
	defaultProgressBgColor = "#000"
	timeoutID              = "__timeout__"
	timeoutFont            = "Sans Regular 12"
)

// Render produces new theme.txt content from the previous content and the
// desired property values.
//
// Known top-level lines are rewritten in place, virtual lines are dropped,
// missing plain properties are appended, and everything else is kept as is.
// The boot_menu block and the timeout block (either variant) are always
// removed and generated again from props, so rendering the output a second
// time with the same props gives the same text.
func Render(original string, props Properties) string {
	segs, _ := scan(original)

	var out []string
	written := make(map[string]bool)
	for _, seg := range segs {
		if seg.kind == segBlock {
			if seg.block.name.Managed() {
				continue
			}
			out = append(out, seg.raw)
			continue
		}

		trimmed := strings.TrimSpace(seg.raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			out = append(out, seg.raw)
			continue
		}
		key, _, ok := parseAssignment(trimmed)
		if !ok {
			out = append(out, seg.raw)
			continue
		}
		d, known := Lookup(key)
		if !known {
			out = append(out, seg.raw)
			continue
		}
		if d.Virtual() {
			continue
		}
		if v, has := props[key]; has {
			out = append(out, formatLine(key, v))
			written[key] = true
			continue
		}
		out = append(out, seg.raw)
	}

	out = trimTrailingBlank(out)
	for _, d := range descriptors {
		if d.Virtual() || written[d.Key] {
			continue
		}
		if v, has := props[d.Key]; has {
			out = append(out, formatLine(d.Key, v))
		}
	}

	var b strings.Builder
	if len(out) > 0 {
		b.WriteString(strings.Join(out, "\n"))
		b.WriteString("\n\n")
	}
	b.WriteString(timeoutBlock(props))
	b.WriteString("\n")
	b.WriteString(bootMenuBlock(props))
	return b.String()
}

// RenderFile is Render with the previous content read from path. The file
// must already exist.
func RenderFile(path string, props Properties) (string, error) {
	data, err := readThemeFile(path)
	if err != nil {
		return "", err
	}
	return Render(string(data), props), nil
}

func formatLine(key, value string) string {
	return fmt.Sprintf(`%s: "%s"`, key, sanitizeValue(value))
}

// sanitizeValue strips characters that cannot live inside a quoted value.
func sanitizeValue(v string) string {
	v = strings.ReplaceAll(v, `"`, "")
	v = strings.ReplaceAll(v, "\r\n", " ")
	v = strings.ReplaceAll(v, "\n", " ")
	return strings.ReplaceAll(v, "\r", " ")
}

func trimTrailingBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// blockAttrValues collects the attribute values props feed into a block.
func blockAttrValues(props Properties, name BlockName) map[string]string {
	values := make(map[string]string)
	for _, d := range descriptors {
		if d.Block != name || (d.Storage != StoredAsAttr && d.Storage != StoredAsLineAndAttr) {
			continue
		}
		v, ok := props[d.Key]
		if !ok {
			continue
		}
		for _, a := range d.Attrs {
			values[a] = sanitizeValue(v)
		}
	}
	return values
}

type blockWriter struct {
	b strings.Builder
}

func newBlockWriter(name BlockName) *blockWriter {
	w := &blockWriter{}
	fmt.Fprintf(&w.b, "+ %s {\n", name)
	return w
}

func (w *blockWriter) bare(name, value string) {
	fmt.Fprintf(&w.b, "    %s = %s\n", name, value)
}

func (w *blockWriter) quoted(name, value string) {
	fmt.Fprintf(&w.b, "    %s = \"%s\"\n", name, value)
}

func (w *blockWriter) String() string {
	return w.b.String() + "}\n"
}

func timeoutBlock(props Properties) string {
	if props[KeyProgressStyle] == StyleCircle {
		w := newBlockWriter(BlockCircularProgress)
		w.quoted("id", timeoutID)
		w.bare("left", "45%")
		w.bare("top", "75%")
		w.bare("width", "10%")
		w.bare("height", "10%")
		w.quoted("center_bitmap", CenterBitmap)
		w.quoted("tick_bitmap", TickBitmap)
		w.bare("num_ticks", "24")
		w.bare("start_angle", "-64")
		w.bare("ticks_disappear", "true")
		return w.String()
	}

	values := blockAttrValues(props, BlockProgressBar)
	withDefault := func(attr, def string) string {
		if v, ok := values[attr]; ok && v != "" {
			return v
		}
		return def
	}

	w := newBlockWriter(BlockProgressBar)
	w.quoted("id", timeoutID)
	w.bare("left", "15%")
	w.bare("top", "90%")
	w.bare("width", "70%")
	w.bare("height", "20")
	w.quoted("fg_color", withDefault("fg_color", defaultProgressColor))
	w.quoted("bg_color", withDefault("bg_color", defaultProgressBgColor))
	w.quoted("border_color", withDefault("border_color", defaultProgressColor))
	w.quoted("text", "@TIMEOUT_NOTIFICATION_LONG@")
	w.quoted("font", timeoutFont)
	w.quoted("text_color", "#ffffff")
	return w.String()
}

func bootMenuBlock(props Properties) string {
	coords, ok := PositionCoordinates(props[KeyMenuPosition])
	if !ok {
		coords, _ = PositionCoordinates(CenterPosition)
	}
	values := blockAttrValues(props, BlockBootMenu)

	w := newBlockWriter(BlockBootMenu)
	w.bare("left", coords.Left)
	w.bare("top", coords.Top)
	w.bare("width", "50%")
	w.bare("height", "40%")
	if v, ok := values["item_color"]; ok {
		w.quoted("item_color", v)
	}
	if v, ok := values["selected_item_color"]; ok {
		w.quoted("selected_item_color", v)
	}
	w.quoted("menu_pixmap_style", "menu_*.png")
	w.bare("item_height", "32")
	w.bare("item_spacing", "8")
	w.bare("icon_width", "32")
	w.bare("icon_height", "32")
	return w.String()
}
