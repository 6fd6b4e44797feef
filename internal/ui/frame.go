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

	"github.com/charmbracelet/lipgloss"
)

// createFramedDialog creates a framed dialog using consistent styling
func (m Model) createFramedDialog(width, height int, content string) string {
	dialogStyle := m.styles.Border.
		Border(lipgloss.RoundedBorder()).
		BorderForeground(parseColor(m.config.Theme.Border.Foreground)).
		Padding(0, 1).
		Width(width).
		Height(height)

	dialog := dialogStyle.Render(content)

	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		dialog,
	)
}

// calculateDialogDimensions returns the dialog size and the content area inside it
func (m Model) calculateDialogDimensions() (dialogWidth, dialogHeight, contentWidth, contentHeight int) {
	dialogWidth = m.width - 4
	dialogHeight = m.height - 2
	if dialogWidth < 40 {
		dialogWidth = 40
	}
	if dialogHeight < 10 {
		dialogHeight = 10
	}

	contentWidth = dialogWidth - 2 // horizontal padding
	contentHeight = dialogHeight - 4 // header, two separators, footer
	if contentHeight < 3 {
		contentHeight = 3
	}
	return
}

// buildFrameContent builds content for a framed dialog with header, content area, and footer
func (m Model) buildFrameContent(headerText, contentText, footerText string, contentWidth int) string {
	var content strings.Builder

	content.WriteString(m.styles.Header.Render(truncate(headerText, contentWidth)))
	content.WriteString("\n")
	content.WriteString(strings.Repeat("─", contentWidth))
	content.WriteString("\n")

	content.WriteString(contentText)

	content.WriteString(strings.Repeat("─", contentWidth))
	content.WriteString("\n")

	if m.status != "" {
		style := m.styles.Status
		if m.statusIsError {
			style = m.styles.Warning
		}
		footerText = m.status
		content.WriteString(style.Render(truncate(footerText, contentWidth)))
	} else {
		content.WriteString(m.styles.Status.Render(truncate(footerText, contentWidth)))
	}

	return content.String()
}

// padLines pads content to exactly height lines, each ending in a newline
func padLines(lines []string, height int) string {
	var b strings.Builder
	for i := 0; i < height; i++ {
		if i < len(lines) {
			b.WriteString(lines[i])
		}
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, width int) string {
	if width <= 3 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if len(r) > width-3 {
		r = r[:width-3]
	}
	return string(r) + "..."
}
