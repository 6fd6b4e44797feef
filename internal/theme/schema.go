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

// Package theme reads and writes GRUB theme.txt files.
//
// A theme file mixes top-level property lines (`title-color: "#fff"`) with
// structured blocks (`+ boot_menu { ... }`). The editor exposes a flat set
// of properties; some of them live as plain lines, others only exist inside
// a block that is regenerated on every save.
package theme

// ValueKind describes how a property value should be edited.
type ValueKind int

const (
	KindText ValueKind = iota
	KindColor
	KindFont
	KindFile
	KindEnum
)

func (k ValueKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindColor:
		return "color"
	case KindFont:
		return "font"
	case KindFile:
		return "file"
	case KindEnum:
		return "enum"
	}
	return "unknown"
}

// Storage says where a property value lives in theme.txt.
type Storage int

const (
	// StoredAsLine is a plain top-level `key: "value"` line.
	StoredAsLine Storage = iota
	// StoredAsLineAndAttr is a plain line whose value is also copied into
	// block attributes when the block is generated.
	StoredAsLineAndAttr
	// StoredAsAttr never appears as a line; it only exists as block attributes.
	StoredAsAttr
	// StoredAsShape never appears as a line; it selects the shape of a block.
	StoredAsShape
)

// BlockName names a `+ name { ... }` region.
type BlockName string

const (
	BlockBootMenu         BlockName = "boot_menu"
	BlockProgressBar      BlockName = "progress_bar"
	BlockCircularProgress BlockName = "circular_progress"
)

// Managed reports whether the block is removed and regenerated on render.
func (b BlockName) Managed() bool {
	switch b {
	case BlockBootMenu, BlockProgressBar, BlockCircularProgress:
		return true
	}
	return false
}

// Property keys known to the editor.
const (
	KeyTitleText         = "title-text"
	KeyTitleFont         = "title-font"
	KeyTitleColor        = "title-color"
	KeyDesktopImage      = "desktop-image"
	KeyDesktopColor      = "desktop-color"
	KeyMenuPosition      = "menu-position"
	KeyTerminalFont      = "terminal-font"
	KeyProgressStyle     = "progress-style"
	KeyProgressColor     = "progress-color"
	KeyProgressBgColor   = "progress-bg-color"
	KeyMessageFont       = "message-font"
	KeyMessageColor      = "message-color"
	KeyBoxBorderColor    = "box-border-color"
	KeySelectedItemColor = "selected-item-color"
)

// Timeout indicator styles.
const (
	StyleBar    = "bar"
	StyleCircle = "circle"
)

// PropertyDescriptor is the static description of one theme property.
type PropertyDescriptor struct {
	Key         string
	Label       string
	Description string
	Group       string
	Kind        ValueKind
	Options     []string // KindEnum only

	Storage Storage
	Block   BlockName // StoredAsLineAndAttr, StoredAsAttr and StoredAsShape
	Attrs   []string  // block attributes fed by the value
}

// Virtual reports whether the property is never written as a top-level line.
func (d PropertyDescriptor) Virtual() bool {
	return d.Storage == StoredAsAttr || d.Storage == StoredAsShape
}

var descriptors = []PropertyDescriptor{
	// General
	{Key: KeyTitleText, Label: "Title Text", Group: "General", Kind: KindText,
		Description: "Text displayed at the top of the screen."},
	{Key: KeyTitleFont, Label: "Title Font", Group: "General", Kind: KindFont,
		Description: "Font used for the title."},
	{Key: KeyTitleColor, Label: "Title Color", Group: "General", Kind: KindColor,
		Description: "Color of the title text."},

	// Appearance
	{Key: KeyDesktopImage, Label: "Desktop Image", Group: "Appearance", Kind: KindFile,
		Description: "Background image for the menu."},
	{Key: KeyDesktopColor, Label: "Desktop Color", Group: "Appearance", Kind: KindColor,
		Description: "Background color if no image is used."},

	// Menu Layout
	{Key: KeyMenuPosition, Label: "Menu Position", Group: "Menu Layout", Kind: KindEnum,
		Options:     PositionNames(),
		Description: "Position of the boot menu on the screen.",
		Storage:     StoredAsShape, Block: BlockBootMenu, Attrs: []string{"left", "top"}},
	{Key: KeyTerminalFont, Label: "Terminal Font", Group: "Menu Layout", Kind: KindFont,
		Description: "Font used in the terminal box."},

	// Progress Bar
	{Key: KeyProgressStyle, Label: "Progress Style", Group: "Progress Bar", Kind: KindEnum,
		Options:     []string{StyleBar, StyleCircle},
		Description: "Style of the timeout indicator.",
		Storage:     StoredAsShape, Block: BlockProgressBar},
	{Key: KeyProgressColor, Label: "Progress Color", Group: "Progress Bar", Kind: KindColor,
		Description: "Color of the filled portion.",
		Storage:     StoredAsAttr, Block: BlockProgressBar, Attrs: []string{"fg_color", "border_color"}},
	{Key: KeyProgressBgColor, Label: "Progress Background", Group: "Progress Bar", Kind: KindColor,
		Description: "Color of the empty portion (track).",
		Storage:     StoredAsAttr, Block: BlockProgressBar, Attrs: []string{"bg_color"}},

	// Styled Box
	{Key: KeyMessageFont, Label: "Message Font", Group: "Styled Box", Kind: KindFont,
		Description: "Font used for footer messages."},
	{Key: KeyMessageColor, Label: "Message Color", Group: "Styled Box", Kind: KindColor,
		Description: "Color of the message text."},
	{Key: KeyBoxBorderColor, Label: "Menu Item Color", Group: "Styled Box", Kind: KindColor,
		Description: "Color of the menu border and normal entries.",
		Storage:     StoredAsLineAndAttr, Block: BlockBootMenu, Attrs: []string{"item_color"}},
	{Key: KeySelectedItemColor, Label: "Selected Item Text", Group: "Styled Box", Kind: KindColor,
		Description: "Text color of the highlighted entry.",
		Storage:     StoredAsLineAndAttr, Block: BlockBootMenu, Attrs: []string{"selected_item_color"}},
}

var descriptorIndex = func() map[string]int {
	idx := make(map[string]int, len(descriptors))
	for i, d := range descriptors {
		idx[d.Key] = i
	}
	return idx
}()

// Descriptors returns every known property in declaration order.
func Descriptors() []PropertyDescriptor {
	out := make([]PropertyDescriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// Lookup returns the descriptor for key.
func Lookup(key string) (PropertyDescriptor, bool) {
	i, ok := descriptorIndex[key]
	if !ok {
		return PropertyDescriptor{}, false
	}
	return descriptors[i], true
}

// Keys returns every known key in declaration order.
func Keys() []string {
	keys := make([]string, len(descriptors))
	for i, d := range descriptors {
		keys[i] = d.Key
	}
	return keys
}

// Groups returns group names in the order they first appear.
func Groups() []string {
	var groups []string
	seen := make(map[string]bool)
	for _, d := range descriptors {
		if !seen[d.Group] {
			seen[d.Group] = true
			groups = append(groups, d.Group)
		}
	}
	return groups
}

// Properties maps property keys to values.
type Properties map[string]string

// Get returns the value for key, or "" if unset.
func (p Properties) Get(key string) string {
	return p[key]
}

// Set stores value under key.
func (p Properties) Set(key, value string) {
	p[key] = value
}

// Clone returns an independent copy.
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
