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
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
)

const highlightSample = `# generated
title-text: "Boot"
desktop-color: "#000000"

+ boot_menu {
    left = 45%
    item_color = "#fff"
}
`

func tokenTypes(t *testing.T, text string) map[string]chroma.TokenType {
	iterator, err := grubThemeLexer.Tokenise(nil, text)
	if err != nil {
		t.Fatalf("Tokenise failed: %v", err)
	}

	types := make(map[string]chroma.TokenType)
	for _, token := range iterator.Tokens() {
		if strings.TrimSpace(token.Value) == "" {
			continue
		}
		types[token.Value] = token.Type
	}
	return types
}

func TestGrubThemeLexer(t *testing.T) {
	types := tokenTypes(t, highlightSample)

	tests := []struct {
		value    string
		expected chroma.TokenType
	}{
		{"# generated", chroma.Comment},
		{"title-text", chroma.NameAttribute},
		{`"Boot"`, chroma.LiteralString},
		{"+", chroma.Punctuation},
		{"boot_menu", chroma.NameTag},
		{"left", chroma.NameAttribute},
		{"45%", chroma.LiteralNumber},
		{`"#fff"`, chroma.LiteralString},
		{"}", chroma.Punctuation},
	}

	for _, test := range tests {
		got, ok := types[test.value]
		if !ok {
			t.Errorf("Token %q not found", test.value)
			continue
		}
		if got != test.expected {
			t.Errorf("Token %q: expected %v, got %v", test.value, test.expected, got)
		}
	}
}

func TestGrubThemeLexer_UnterminatedQuote(t *testing.T) {
	types := tokenTypes(t, "title-text: \"open\nmessage-color: \"#fff\"\n")

	if types["message-color"] != chroma.NameAttribute {
		t.Errorf("Expected next line to lex normally, got %v", types["message-color"])
	}
}

func TestHighlighter_NoColor(t *testing.T) {
	h := NewHighlighter("monokai", TerminalCapabilities{SupportsColor: false})

	lines, err := h.Highlight(highlightSample)
	if err != nil {
		t.Fatalf("Highlight failed: %v", err)
	}

	expected := strings.Split(strings.TrimSuffix(highlightSample, "\n"), "\n")
	if len(lines) != len(expected) {
		t.Fatalf("Expected %d lines, got %d", len(expected), len(lines))
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("Line %d: expected %q, got %q", i, expected[i], lines[i])
		}
	}
}

func TestHighlighter_Color(t *testing.T) {
	tests := []struct {
		name string
		caps TerminalCapabilities
	}{
		{"basic colors", TerminalCapabilities{SupportsColor: true}},
		{"256 colors", TerminalCapabilities{SupportsColor: true, SupportsTrueColor: true}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			h := NewHighlighter("", test.caps)
			lines, err := h.Highlight(highlightSample)
			if err != nil {
				t.Fatalf("Highlight failed: %v", err)
			}

			joined := strings.Join(lines, "\n")
			if !strings.Contains(joined, "\x1b[") {
				t.Error("Expected ANSI escape sequences in highlighted output")
			}
			if !strings.Contains(joined, "boot_menu") {
				t.Error("Expected content to be preserved")
			}
		})
	}
}

func TestHighlighter_UnknownStyle(t *testing.T) {
	h := NewHighlighter("no-such-style", TerminalCapabilities{SupportsColor: true})
	if h.style == nil || h.formatter == nil {
		t.Fatal("Expected fallback style and formatter")
	}
}
