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
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/adaryorg/grubtamer/internal/theme"
)

// descriptorSource adapts descriptors for fuzzy matching on key and label
type descriptorSource []theme.PropertyDescriptor

func (s descriptorSource) String(i int) string {
	return s[i].Key + " " + s[i].Label + " " + s[i].Group
}

func (s descriptorSource) Len() int {
	return len(s)
}

// filterDescriptors returns the descriptors matching query, in declaration
// order so groups stay together
func filterDescriptors(query string) []theme.PropertyDescriptor {
	all := theme.Descriptors()
	if strings.TrimSpace(query) == "" {
		return all
	}

	matches := fuzzy.FindFrom(query, descriptorSource(all))
	indexes := make([]int, 0, len(matches))
	for _, match := range matches {
		indexes = append(indexes, match.Index)
	}
	sort.Ints(indexes)

	result := make([]theme.PropertyDescriptor, 0, len(indexes))
	for _, i := range indexes {
		result = append(result, all[i])
	}
	return result
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	switch m.currentMode {
	case modePreview:
		return m.renderPreview()
	case modeBackups:
		return m.renderBackups()
	case modeHelp:
		return m.renderHelp()
	case modeImageView:
		return m.renderImageView()
	}

	return m.renderMainWindow()
}

// renderMainWindow renders the property list with frame
func (m Model) renderMainWindow() string {
	dialogWidth, dialogHeight, contentWidth, contentHeight := m.calculateDialogDimensions()

	headerText := "GrubTamer - " + m.session.Path
	if m.session.Dirty() {
		headerText += " " + m.markers.Dirty
	}
	if m.currentMode == modeFilter {
		headerText += " - Filter: " + m.filterQuery + "█"
	} else if m.filterQuery != "" {
		headerText += " - Filter: " + m.filterQuery + " (press 'c' to clear)"
	}

	mainContent := m.buildMainContent(contentWidth, contentHeight)

	var footerText string
	switch m.currentMode {
	case modeEdit:
		footerText = m.input.View()
	case modeFilter, modeSaveAs:
		footerText = m.input.View()
	default:
		footerText = "enter: edit | ←/→: cycle | p: preview | s: save | b: backups | ?: help"
	}

	// The input line replaces any pending status
	if m.currentMode == modeEdit || m.currentMode == modeFilter || m.currentMode == modeSaveAs {
		m.status = ""
	}

	frameContent := m.buildFrameContent(headerText, mainContent, footerText, contentWidth)
	return m.createFramedDialog(dialogWidth, dialogHeight, frameContent)
}

// buildMainContent renders the grouped property rows, scrolled so the
// cursor row is visible
func (m Model) buildMainContent(contentWidth, contentHeight int) string {
	if len(m.visible) == 0 {
		msg := "No properties match the filter"
		lines := make([]string, contentHeight/2)
		lines = append(lines, strings.Repeat(" ", max(0, (contentWidth-len(msg))/2))+m.styles.Status.Render(msg))
		return padLines(lines, contentHeight)
	}

	labelWidth := 0
	for _, d := range m.visible {
		labelWidth = max(labelWidth, len(d.Label))
	}

	var lines []string
	cursorLine := 0
	group := ""
	for i, d := range m.visible {
		if d.Group != group {
			group = d.Group
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, m.styles.Group.Render(group))
		}

		if i == m.cursor {
			cursorLine = len(lines)
		}
		lines = append(lines, m.renderRow(d, i == m.cursor, labelWidth, contentWidth))
	}

	start := 0
	if cursorLine >= contentHeight {
		start = cursorLine - contentHeight + 1
	}
	return padLines(lines[start:], contentHeight)
}

func (m Model) renderRow(d theme.PropertyDescriptor, selected bool, labelWidth, contentWidth int) string {
	value := m.session.Props.Get(d.Key)

	var shown string
	switch {
	case d.Kind == theme.KindEnum:
		if value == "" && d.Key == theme.KeyMenuPosition {
			value = theme.CenterPosition
		}
		shown = "‹ " + value + " ›"
		if !m.caps.SupportsUnicode {
			shown = "< " + value + " >"
		}
	case value == "":
		shown = "(unset)"
	default:
		shown = value
	}

	virtual := " "
	if d.Virtual() {
		virtual = m.markers.Virtual
	}

	plain := fmt.Sprintf("%-*s %s ", labelWidth, d.Label, virtual)
	room := contentWidth - len(plain) - 4
	shown = truncate(shown, room)

	if selected {
		return m.markers.Cursor + " " + m.styles.Selected.Render(plain+shown)
	}

	row := "  " + fmt.Sprintf("%-*s ", labelWidth, d.Label)
	if d.Virtual() {
		row += m.styles.Virtual.Render(virtual) + " "
	} else {
		row += "  "
	}
	if d.Kind == theme.KindColor {
		row += swatch(value, m.caps)
	}
	if value == "" && d.Kind != theme.KindEnum {
		return row + m.styles.Status.Render(shown)
	}
	return row + shown
}
