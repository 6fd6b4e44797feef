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
	"strings"
)

var helpLines = []string{
	"Property list",
	"  up/down, k/j     move",
	"  left/right, h/l  cycle options of the selected property",
	"  enter, e         edit the selected property",
	"  /                filter properties, esc clears",
	"  c                clear filter",
	"  p                preview the theme.txt that would be written",
	"  y                copy that theme.txt to the clipboard",
	"  s                save (backs up the current file first)",
	"  S                save as a new theme under the themes directory",
	"  R                reset menu position and colors to safe defaults",
	"  r                reload from disk, dropping changes",
	"  b                list backups of this theme",
	"  i                show the selected image",
	"  E                edit the rendered theme.txt in $EDITOR",
	"  q                quit",
	"",
	"Properties marked as virtual have no line of their own in",
	"theme.txt; they are stored in the boot_menu and progress",
	"blocks, which are rewritten on every save.",
	"",
	"Backups",
	"  enter            restore the selected backup",
	"  x                delete the selected backup",
	"  esc              back",
}

func (m Model) renderPreview() string {
	dialogWidth, dialogHeight, contentWidth, contentHeight := m.calculateDialogDimensions()

	end := min(len(m.previewLines), m.previewOffset+contentHeight)
	visible := m.previewLines[min(m.previewOffset, end):end]

	headerText := "Preview - " + m.session.Path
	footerText := "y: copy | esc: back"
	if len(m.previewLines) > contentHeight {
		footerText += fmt.Sprintf(" - %d-%d/%d", m.previewOffset+1, end, len(m.previewLines))
	}

	frameContent := m.buildFrameContent(headerText, padLines(visible, contentHeight), footerText, contentWidth)
	return m.createFramedDialog(dialogWidth, dialogHeight, frameContent)
}

func (m Model) renderBackups() string {
	dialogWidth, dialogHeight, contentWidth, contentHeight := m.calculateDialogDimensions()
	items := m.backups.Items()

	var lines []string
	if len(items) == 0 {
		lines = append(lines, m.styles.Status.Render("No backups yet, one is taken on every save"))
	}

	listHeight := min(len(items), max(3, contentHeight/2))
	start := 0
	if m.backupCursor >= listHeight {
		start = m.backupCursor - listHeight + 1
	}
	for i := start; i < len(items) && i < start+listHeight; i++ {
		item := items[i]
		row := fmt.Sprintf("%s  %-16s %6d bytes", item.CreatedAt.Local().Format("2006-01-02 15:04:05"), item.Note, item.Size)
		if i == m.backupCursor {
			lines = append(lines, m.markers.Cursor+" "+m.styles.Selected.Render(row))
		} else {
			lines = append(lines, "  "+row)
		}
	}

	// Show the head of the selected snapshot below the list
	if m.backupCursor < len(items) {
		content, err := m.backups.Content(items[m.backupCursor].ID)
		lines = append(lines, strings.Repeat("─", contentWidth))
		if err != nil {
			lines = append(lines, m.styles.Warning.Render(err.Error()))
		} else {
			for _, l := range strings.Split(content, "\n") {
				if len(lines) >= contentHeight {
					break
				}
				lines = append(lines, truncate(l, contentWidth))
			}
		}
	}

	headerText := fmt.Sprintf("Backups - %s (%d)", m.session.Path, len(items))
	footerText := "enter: restore | x: delete | esc: back"

	frameContent := m.buildFrameContent(headerText, padLines(lines, contentHeight), footerText, contentWidth)
	return m.createFramedDialog(dialogWidth, dialogHeight, frameContent)
}

func (m Model) renderHelp() string {
	dialogWidth, dialogHeight, contentWidth, contentHeight := m.calculateDialogDimensions()

	start := min(m.helpOffset, len(helpLines))
	end := min(len(helpLines), start+contentHeight)

	var visible []string
	for _, line := range helpLines[start:end] {
		visible = append(visible, truncate(line, contentWidth))
	}

	footerText := "any key: close"
	if len(helpLines) > contentHeight {
		footerText += fmt.Sprintf(" - %d-%d/%d", start+1, end, len(helpLines))
	}

	frameContent := m.buildFrameContent("GrubTamer Help", padLines(visible, contentHeight), footerText, contentWidth)
	return m.createFramedDialog(dialogWidth, dialogHeight, frameContent)
}
