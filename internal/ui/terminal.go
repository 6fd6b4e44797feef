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
	"os"
	"strconv"
	"strings"
)

// TerminalCapabilities holds information about what the terminal can display
type TerminalCapabilities struct {
	SupportsUnicode   bool
	SupportsColor     bool
	SupportsTrueColor bool
	SupportsGraphics  bool
}

// DetectTerminalCapabilities analyzes the current terminal's capabilities
func DetectTerminalCapabilities() TerminalCapabilities {
	term := strings.ToLower(os.Getenv("TERM"))
	termProgram := strings.ToLower(os.Getenv("TERM_PROGRAM"))

	return TerminalCapabilities{
		SupportsUnicode:   detectUnicodeSupport(term, termProgram),
		SupportsColor:     detectColorSupport(term),
		SupportsTrueColor: detectTrueColorSupport(term),
		SupportsGraphics:  detectKittySupport(),
	}
}

// detectUnicodeSupport checks if terminal supports Unicode characters
func detectUnicodeSupport(term, termProgram string) bool {
	// Terminals known to support Unicode well
	unicodeTerminals := []string{
		"xterm-256color", "screen-256color", "tmux-256color",
		"alacritty", "kitty", "iterm2", "vscode",
		"gnome-terminal", "konsole", "terminology",
	}

	for _, supportedTerm := range unicodeTerminals {
		if strings.Contains(term, supportedTerm) || strings.Contains(termProgram, supportedTerm) {
			return true
		}
	}

	// Check for UTF-8 locale
	lang := os.Getenv("LANG")
	lcAll := os.Getenv("LC_ALL")
	if strings.Contains(strings.ToUpper(lang), "UTF-8") ||
		strings.Contains(strings.ToUpper(lcAll), "UTF-8") {
		return true
	}

	// The Linux console is the usual place to fix a broken GRUB
	if term == "" || strings.Contains(term, "dumb") || strings.Contains(term, "linux") {
		return false
	}

	return true
}

// detectColorSupport checks if terminal supports ANSI colors
func detectColorSupport(term string) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	for _, noColorTerm := range []string{"dumb", "unknown"} {
		if strings.Contains(term, noColorTerm) {
			return false
		}
	}

	return true
}

// detectTrueColorSupport checks whether the 256 color chroma formatter can be used
func detectTrueColorSupport(term string) bool {
	colorTerm := os.Getenv("COLORTERM")
	if colorTerm == "truecolor" || colorTerm == "24bit" {
		return true
	}

	if colors := os.Getenv("COLORS"); colors != "" {
		if numColors, err := strconv.Atoi(colors); err == nil && numColors >= 256 {
			return true
		}
	}

	if strings.Contains(term, "256") || strings.Contains(term, "color") {
		return true
	}

	// Known terminals with limited color support
	basicTerminals := []string{"xterm", "screen", "tmux", "linux", "cons25", "vt100", "vt220", "ansi", "dumb"}
	for _, basicTerm := range basicTerminals {
		if strings.HasPrefix(term, basicTerm) {
			return false
		}
	}

	return true
}

// Markers are the row decorations, picked by terminal capability
type Markers struct {
	Cursor  string
	Virtual string
	Dirty   string
}

func GetMarkers(caps TerminalCapabilities) Markers {
	if caps.SupportsUnicode {
		return Markers{Cursor: "▸", Virtual: "◆", Dirty: "●"}
	}
	return Markers{Cursor: ">", Virtual: "*", Dirty: "+"}
}
