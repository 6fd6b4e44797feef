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

package ui

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/styles"
)

// grubThemeLexer tokenises theme.txt: top-level `key: "value"` lines and
// `+ name { attr = value }` component blocks.
var grubThemeLexer = chroma.MustNewLexer(
	&chroma.Config{
		Name:      "GRUB theme",
		Aliases:   []string{"grub-theme"},
		Filenames: []string{"theme.txt"},
	},
	func() chroma.Rules {
		return chroma.Rules{
			"root": {
				{Pattern: `\s+`, Type: chroma.Text},
				{Pattern: `#[^\n]*`, Type: chroma.Comment},
				{Pattern: `(\+)(\s*)([A-Za-z_][A-Za-z0-9_]*)(\s*)(\{)`, Type: chroma.ByGroups(chroma.Punctuation, chroma.Text, chroma.NameTag, chroma.Text, chroma.Punctuation), Mutator: chroma.Push("block")},
				{Pattern: `([A-Za-z0-9_-]+)(\s*)(:)`, Type: chroma.ByGroups(chroma.NameAttribute, chroma.Text, chroma.Operator)},
				{Pattern: `"[^"\n]*"?`, Type: chroma.LiteralString},
				{Pattern: `[^\s"#]+`, Type: chroma.Text},
			},
			"block": {
				{Pattern: `\s+`, Type: chroma.Text},
				{Pattern: `#[^\n]*`, Type: chroma.Comment},
				{Pattern: `\}`, Type: chroma.Punctuation, Mutator: chroma.Pop(1)},
				{Pattern: `([A-Za-z0-9_.-]+)(\s*)(=)`, Type: chroma.ByGroups(chroma.NameAttribute, chroma.Text, chroma.Operator)},
				{Pattern: `"[^"\n]*"?`, Type: chroma.LiteralString},
				{Pattern: `-?\d+%?`, Type: chroma.LiteralNumber},
				{Pattern: `[^\s"#}]+`, Type: chroma.Text},
			},
		}
	},
)

// Highlighter colours theme.txt for the preview
type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
}

// NewHighlighter picks the chroma style by name and a formatter that
// matches the terminal. Unknown style names fall back to monokai
func NewHighlighter(styleName string, caps TerminalCapabilities) *Highlighter {
	var style *chroma.Style
	if styleName != "" {
		style = styles.Get(styleName)
	}
	if style == nil {
		style = styles.Get("monokai")
	}
	if style == nil {
		style = styles.Fallback
	}

	var formatter chroma.Formatter
	switch {
	case !caps.SupportsColor:
		formatter = formatters.NoOp
	case caps.SupportsTrueColor:
		formatter = formatters.Get("terminal256")
	default:
		formatter = formatters.Get("terminal")
	}
	if formatter == nil {
		formatter = formatters.Fallback
	}

	return &Highlighter{style: style, formatter: formatter}
}

// Highlight returns the highlighted lines of text. On failure the plain
// lines are returned together with the error
func (h *Highlighter) Highlight(text string) ([]string, error) {
	plain := strings.Split(strings.TrimSuffix(text, "\n"), "\n")

	iterator, err := grubThemeLexer.Tokenise(nil, text)
	if err != nil {
		return plain, err
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return plain, err
	}

	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n"), nil
}
